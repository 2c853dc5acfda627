package anyentail

import (
	"fmt"

	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/serializer"
)

func init() {
	var h Head
	serializer.RegisterTypedDeserializer(h.SerializerType(), DeserializeHead)
}

// A Head is a complete entailment head: a Combiner whose
// output is fed to a Classifier.
type Head struct {
	Combiner   Combiner
	Classifier Classifier
}

// DeserializeHead deserializes a Head.
func DeserializeHead(d []byte) (*Head, error) {
	var res Head
	if err := serializer.DeserializeAny(d, &res.Combiner, &res.Classifier); err != nil {
		return nil, essentials.AddCtx("deserialize Head", err)
	}
	return &res, nil
}

// NewHead creates a randomly initialized Head.
func NewHead(c anyvec.Creator, cfg *Config) (*Head, error) {
	if err := cfg.Validate(); err != nil {
		return nil, essentials.AddCtx("new head", err)
	}
	comb, err := NewCombiner(cfg.Combiner, cfg.EncodingDim)
	if err != nil {
		return nil, essentials.AddCtx("new head", err)
	}
	class, err := NewClassifier(c, cfg, comb.OutputSize())
	if err != nil {
		return nil, essentials.AddCtx("new head", err)
	}
	return &Head{Combiner: comb, Classifier: class}, nil
}

// LogProbs combines the inputs and classifies the result.
//
// The in argument packs [sentence, memory, knowledge]
// triples, one per example, or, for a MultipleChoice
// classifier, one per answer option of each example.
// The answers argument is only used by QuestionAnswer.
func (h *Head) LogProbs(in, answers anydiff.Res, batch int) anydiff.Res {
	combBatch := batch
	if mc, ok := h.Classifier.(*MultipleChoice); ok {
		combBatch *= mc.Options
	}
	combined := h.Combiner.Apply(in, combBatch)
	return h.Classifier.LogProbs(combined, answers, batch)
}

// Apply is like LogProbs, but it produces probabilities.
func (h *Head) Apply(in, answers anydiff.Res, batch int) anydiff.Res {
	return anydiff.Exp(h.LogProbs(in, answers, batch))
}

// Parameters returns the classifier's parameters.
// Combiners have no parameters.
func (h *Head) Parameters() []*anydiff.Var {
	return allParameters(h.Combiner, h.Classifier)
}

// SerializerType returns the unique ID used to serialize
// a Head with the serializer package.
func (h *Head) SerializerType() string {
	return "github.com/sachuin23/anyentail.Head"
}

// Serialize serializes the Head.
// Both the combiner and the classifier must implement
// serializer.Serializer.
func (h *Head) Serialize() ([]byte, error) {
	comb, ok := h.Combiner.(serializer.Serializer)
	if !ok {
		return nil, fmt.Errorf("serialize Head: not a Serializer: %T", h.Combiner)
	}
	class, ok := h.Classifier.(serializer.Serializer)
	if !ok {
		return nil, fmt.Errorf("serialize Head: not a Serializer: %T", h.Classifier)
	}
	return serializer.SerializeAny(comb, class)
}
