package anyentail

import (
	"errors"
	"fmt"
	"math"

	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/anyvec/anyvecsave"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/serializer"
)

func init() {
	var d Dense
	serializer.RegisterTypedDeserializer(d.SerializerType(), DeserializeDense)
}

// Dense is a fully-connected layer followed by an
// activation function.
type Dense struct {
	InCount    int
	OutCount   int
	Weights    *anydiff.Var
	Biases     *anydiff.Var
	Activation Activation
}

// DeserializeDense attempts to deserialize a Dense.
func DeserializeDense(d []byte) (*Dense, error) {
	var weights, biases *anyvecsave.S
	var act Activation
	if err := serializer.DeserializeAny(d, &weights, &biases, &act); err != nil {
		return nil, essentials.AddCtx("deserialize Dense", err)
	}
	outCount := biases.Vector.Len()
	if outCount == 0 {
		return nil, errors.New("deserialize Dense: no outputs")
	}
	inCount := weights.Vector.Len() / outCount
	if inCount*outCount != weights.Vector.Len() {
		return nil, errors.New("deserialize Dense: invalid matrix dimensions")
	}
	return &Dense{
		InCount:    inCount,
		OutCount:   outCount,
		Weights:    anydiff.NewVar(weights.Vector),
		Biases:     anydiff.NewVar(biases.Vector),
		Activation: act,
	}, nil
}

// NewDense creates a randomized Dense layer.
// The weights are scaled so that an input with unit
// variance yields pre-activations with unit variance.
func NewDense(c anyvec.Creator, in, out int, act Activation) *Dense {
	res := &Dense{
		InCount:    in,
		OutCount:   out,
		Weights:    anydiff.NewVar(c.MakeVector(in * out)),
		Biases:     anydiff.NewVar(c.MakeVector(out)),
		Activation: act,
	}
	anyvec.Rand(res.Weights.Vector, anyvec.Normal, nil)
	res.Weights.Vector.Scale(c.MakeNumeric(1 / math.Sqrt(float64(in))))
	return res
}

// Apply applies the layer to a batch of inputs.
func (d *Dense) Apply(in anydiff.Res, batch int) anydiff.Res {
	if batch*d.InCount != in.Output().Len() {
		panic(fmt.Sprintf("input length should be %d, but got %d",
			batch*d.InCount, in.Output().Len()))
	}
	weightMat := &anydiff.Matrix{
		Data: d.Weights,
		Rows: d.OutCount,
		Cols: d.InCount,
	}
	inMat := &anydiff.Matrix{
		Data: in,
		Rows: batch,
		Cols: d.InCount,
	}
	weighted := anydiff.MatMul(false, true, inMat, weightMat)
	return d.Activation.Apply(anydiff.AddRepeated(weighted.Data, d.Biases), batch)
}

// Parameters returns the weights and the biases, in that
// order.
func (d *Dense) Parameters() []*anydiff.Var {
	return []*anydiff.Var{d.Weights, d.Biases}
}

// SerializerType returns the unique ID used to serialize
// a Dense with the serializer package.
func (d *Dense) SerializerType() string {
	return "github.com/sachuin23/anyentail.Dense"
}

// Serialize serializes the layer.
func (d *Dense) Serialize() ([]byte, error) {
	return serializer.SerializeAny(
		&anyvecsave.S{Vector: d.Weights.Vector},
		&anyvecsave.S{Vector: d.Biases.Vector},
		d.Activation,
	)
}
