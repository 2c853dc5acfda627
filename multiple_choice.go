package anyentail

import (
	"errors"
	"fmt"

	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anynet"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/serializer"
)

func init() {
	var m MultipleChoice
	serializer.RegisterTypedDeserializer(m.SerializerType(), DeserializeMultipleChoice)
}

// MultipleChoice is a Classifier which scores each answer
// option with the same MLP and then takes a softmax over
// the options.
//
// Its input packs Options combined vectors per example.
type MultipleChoice struct {
	Options int
	Hidden  anynet.Net

	// Score maps the hidden output of one option to a
	// single value.
	// Its activation is usually Sigmoid.
	Score *Dense
}

// DeserializeMultipleChoice deserializes a MultipleChoice.
func DeserializeMultipleChoice(d []byte) (*MultipleChoice, error) {
	var options serializer.Int
	var res MultipleChoice
	if err := serializer.DeserializeAny(d, &options, &res.Hidden, &res.Score); err != nil {
		return nil, essentials.AddCtx("deserialize MultipleChoice", err)
	}
	if options <= 0 {
		return nil, errors.New("deserialize MultipleChoice: invalid option count")
	}
	res.Options = int(options)
	return &res, nil
}

// LogProbs computes a log-softmax over the option scores.
// The answers argument is ignored.
func (m *MultipleChoice) LogProbs(combined, answers anydiff.Res, batch int) anydiff.Res {
	if combined.Output().Len()%(batch*m.Options) != 0 {
		panic(fmt.Sprintf("input length %d not divisible by %d options times batch %d",
			combined.Output().Len(), m.Options, batch))
	}
	n := batch * m.Options
	scores := m.Score.Apply(m.Hidden.Apply(combined, n), n)
	return anydiff.LogSoftmax(scores, m.Options)
}

// Apply computes the option probabilities, making a
// MultipleChoice usable as a Layer.
func (m *MultipleChoice) Apply(in anydiff.Res, batch int) anydiff.Res {
	return Probs(m, in, nil, batch)
}

// Classes returns m.Options.
func (m *MultipleChoice) Classes() int {
	return m.Options
}

// Parameters returns the hidden parameters followed by the
// score parameters.
func (m *MultipleChoice) Parameters() []*anydiff.Var {
	return allParameters(m.Hidden, m.Score)
}

// SerializerType returns the unique ID used to serialize
// a MultipleChoice with the serializer package.
func (m *MultipleChoice) SerializerType() string {
	return "github.com/sachuin23/anyentail.MultipleChoice"
}

// Serialize serializes the classifier.
func (m *MultipleChoice) Serialize() ([]byte, error) {
	return serializer.SerializeAny(serializer.Int(m.Options), m.Hidden, m.Score)
}
