package anyentail

import (
	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anynet"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/serializer"
)

func init() {
	var t TrueFalse
	serializer.RegisterTypedDeserializer(t.SerializerType(), DeserializeTrueFalse)
}

// TrueFalse is a Classifier which feeds the combined input
// through an MLP and produces a two-way softmax.
//
// The first outcome corresponds to "true", the second to
// "false".
type TrueFalse struct {
	Hidden anynet.Net

	// Score maps the hidden output to two values.
	// Its activation should be LogSoftmax.
	Score *Dense
}

// DeserializeTrueFalse deserializes a TrueFalse.
func DeserializeTrueFalse(d []byte) (*TrueFalse, error) {
	var res TrueFalse
	if err := serializer.DeserializeAny(d, &res.Hidden, &res.Score); err != nil {
		return nil, essentials.AddCtx("deserialize TrueFalse", err)
	}
	return &res, nil
}

// LogProbs computes the log probabilities.
// The answers argument is ignored.
func (t *TrueFalse) LogProbs(combined, answers anydiff.Res, batch int) anydiff.Res {
	return t.Score.Apply(t.Hidden.Apply(combined, batch), batch)
}

// Apply computes the true/false probabilities, making a
// TrueFalse usable as a Layer.
func (t *TrueFalse) Apply(in anydiff.Res, batch int) anydiff.Res {
	return Probs(t, in, nil, batch)
}

// Classes returns 2.
func (t *TrueFalse) Classes() int {
	return 2
}

// Parameters returns the hidden parameters followed by the
// score parameters.
func (t *TrueFalse) Parameters() []*anydiff.Var {
	return allParameters(t.Hidden, t.Score)
}

// SerializerType returns the unique ID used to serialize
// a TrueFalse with the serializer package.
func (t *TrueFalse) SerializerType() string {
	return "github.com/sachuin23/anyentail.TrueFalse"
}

// Serialize serializes the classifier.
func (t *TrueFalse) Serialize() ([]byte, error) {
	return serializer.SerializeAny(t.Hidden, t.Score)
}
