package anyentail

import (
	"fmt"
	"io"
	"os"

	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/serializer"
)

func init() {
	var p Probe
	serializer.RegisterTypedDeserializer(p.SerializerType(), DeserializeProbe)
}

// A Probe is a Layer which reports statistics about the
// values flowing through it, for instance between a
// Combiner and a Classifier.
// It returns its input unchanged.
type Probe struct {
	// Writer receives the report.
	// If nil, os.Stdout is used.
	Writer io.Writer

	Name string

	// RowSums reports the sum of each vector in the batch.
	// For classifier outputs every sum should be 1.
	RowSums bool

	Mean     bool
	Variance bool
}

// DeserializeProbe deserializes a Probe.
// The Writer will be nil.
func DeserializeProbe(d []byte) (*Probe, error) {
	var res Probe
	err := serializer.DeserializeAny(d, &res.Name, &res.RowSums, &res.Mean, &res.Variance)
	if err != nil {
		return nil, essentials.AddCtx("deserialize Probe", err)
	}
	return &res, nil
}

// Apply reports on the batch and returns in.
func (p *Probe) Apply(in anydiff.Res, n int) anydiff.Res {
	out := in.Output()
	cols := out.Len() / n
	if p.RowSums {
		p.report("row sums:", anyvec.SumCols(out, n).Data())
	}
	if p.Mean || p.Variance {
		normalizer := out.Creator().MakeNumeric(1 / float64(n))
		mean := anyvec.SumRows(out, cols)
		mean.Scale(normalizer)
		if p.Mean {
			p.report("mean:", mean.Data())
		}
		if p.Variance {
			two := out.Creator().MakeNumeric(2)
			squared := out.Copy()
			anyvec.Pow(squared, two)
			variance := anyvec.SumRows(squared, cols)
			variance.Scale(normalizer)
			anyvec.Pow(mean, two)
			variance.Sub(mean)
			p.report("variance:", variance.Data())
		}
	}
	return in
}

// SerializerType returns the unique ID used to serialize
// a Probe with the serializer package.
func (p *Probe) SerializerType() string {
	return "github.com/sachuin23/anyentail.Probe"
}

// Serialize serializes the Probe's settings.
func (p *Probe) Serialize() ([]byte, error) {
	return serializer.SerializeAny(p.Name, p.RowSums, p.Mean, p.Variance)
}

func (p *Probe) report(label string, data interface{}) {
	w := p.Writer
	if w == nil {
		w = os.Stdout
	}
	fmt.Fprintf(w, "probe %s: %s %v\n", p.Name, label, data)
}
