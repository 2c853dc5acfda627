package anyentail

import (
	"fmt"

	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anynet"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/essentials"
)

// A Classifier turns combined entailment features into a
// distribution over outcomes.
type Classifier interface {
	anynet.Parameterizer

	// LogProbs computes log probabilities for a batch of
	// combined inputs.
	// The answers argument holds encoded answer options and
	// is ignored by classifiers which do not use it.
	LogProbs(combined, answers anydiff.Res, batch int) anydiff.Res

	// Classes returns the number of outcomes per example,
	// or 0 if it is determined by the answers argument.
	Classes() int
}

// NewClassifier creates the classifier selected by cfg.
// The inSize argument is the length of each combined
// input vector, typically a Combiner's OutputSize().
func NewClassifier(c anyvec.Creator, cfg *Config, inSize int) (Classifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, essentials.AddCtx("new classifier", err)
	}
	if inSize <= 0 {
		return nil, fmt.Errorf("new classifier: invalid input size %d", inSize)
	}
	hidden, hiddenOut, err := HiddenStack(c, cfg, inSize)
	if err != nil {
		return nil, essentials.AddCtx("new classifier", err)
	}
	switch cfg.Classifier {
	case TrueFalseMLP:
		return &TrueFalse{
			Hidden: hidden,
			Score:  NewDense(c, hiddenOut, 2, LogSoftmax),
		}, nil
	case MultipleChoiceMLP:
		return &MultipleChoice{
			Options: cfg.NumOptions,
			Hidden:  hidden,
			Score:   NewDense(c, hiddenOut, 1, Sigmoid),
		}, nil
	case QuestionAnswerMLP:
		return &QuestionAnswer{
			Hidden:     hidden,
			Projection: NewDense(c, hiddenOut, cfg.AnswerDim, Linear),
		}, nil
	default:
		return nil, fmt.Errorf("new classifier: unknown kind %d", int(cfg.Classifier))
	}
}

// Probs computes probabilities using c.LogProbs.
// For every example, the probabilities sum to 1.
func Probs(c Classifier, combined, answers anydiff.Res, batch int) anydiff.Res {
	return anydiff.Exp(c.LogProbs(combined, answers, batch))
}
