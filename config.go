package anyentail

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/unixpickle/essentials"
)

// CombinerKind selects a Combiner implementation.
type CombinerKind int

// These are the supported combiners.
const (
	MemoryOnlyCombiner CombinerKind = iota
	HeuristicMatchingCombiner
)

var combinerKindNames = []string{
	MemoryOnlyCombiner:        "memory_only",
	HeuristicMatchingCombiner: "heuristic_matching",
}

// ClassifierKind selects a Classifier implementation.
type ClassifierKind int

// These are the supported classifiers.
const (
	TrueFalseMLP ClassifierKind = iota
	MultipleChoiceMLP
	QuestionAnswerMLP
)

var classifierKindNames = []string{
	TrueFalseMLP:      "true_false_mlp",
	MultipleChoiceMLP: "multiple_choice_mlp",
	QuestionAnswerMLP: "question_answer_mlp",
}

// ParseCombinerKind parses a name like "memory_only".
func ParseCombinerKind(name string) (CombinerKind, error) {
	for i, n := range combinerKindNames {
		if n == name {
			return CombinerKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown combiner: %q", name)
}

// String returns the name accepted by ParseCombinerKind.
func (c CombinerKind) String() string {
	if c < 0 || int(c) >= len(combinerKindNames) {
		return fmt.Sprintf("CombinerKind(%d)", int(c))
	}
	return combinerKindNames[c]
}

// MarshalText encodes the kind by name.
func (c CombinerKind) MarshalText() ([]byte, error) {
	if c < 0 || int(c) >= len(combinerKindNames) {
		return nil, fmt.Errorf("unknown combiner: %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes a kind name.
func (c *CombinerKind) UnmarshalText(text []byte) error {
	k, err := ParseCombinerKind(string(text))
	if err != nil {
		return err
	}
	*c = k
	return nil
}

// ParseClassifierKind parses a name like "true_false_mlp".
func ParseClassifierKind(name string) (ClassifierKind, error) {
	for i, n := range classifierKindNames {
		if n == name {
			return ClassifierKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown classifier: %q", name)
}

// String returns the name accepted by ParseClassifierKind.
func (c ClassifierKind) String() string {
	if c < 0 || int(c) >= len(classifierKindNames) {
		return fmt.Sprintf("ClassifierKind(%d)", int(c))
	}
	return classifierKindNames[c]
}

// MarshalText encodes the kind by name.
func (c ClassifierKind) MarshalText() ([]byte, error) {
	if c < 0 || int(c) >= len(classifierKindNames) {
		return nil, fmt.Errorf("unknown classifier: %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes a kind name.
func (c *ClassifierKind) UnmarshalText(text []byte) error {
	k, err := ParseClassifierKind(string(text))
	if err != nil {
		return err
	}
	*c = k
	return nil
}

// Config describes an entailment head.
type Config struct {
	Combiner   CombinerKind   `json:"combiner"`
	Classifier ClassifierKind `json:"classifier"`

	// EncodingDim is the length of each of the sentence,
	// memory, and knowledge vectors.
	EncodingDim int `json:"encoding_dim"`

	NumHiddenLayers       int    `json:"num_hidden_layers"`
	HiddenLayerWidth      int    `json:"hidden_layer_width"`
	HiddenLayerActivation string `json:"hidden_layer_activation"`

	// AnswerDim is the length of each encoded answer.
	// It is only used by QuestionAnswerMLP.
	AnswerDim int `json:"answer_dim,omitempty"`

	// NumOptions is the number of answer options per
	// example.
	// It is only used by MultipleChoiceMLP.
	NumOptions int `json:"num_options,omitempty"`
}

// ParseConfig decodes a JSON config.
// Every key the selected classifier needs must be present,
// even if its value is zero.
func ParseConfig(data []byte) (*Config, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, essentials.AddCtx("parse config", err)
	}
	var res Config
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, essentials.AddCtx("parse config", err)
	}
	for _, key := range res.requiredKeys() {
		if _, ok := keys[key]; !ok {
			return nil, fmt.Errorf("parse config: missing key %q", key)
		}
	}
	if err := res.Validate(); err != nil {
		return nil, essentials.AddCtx("parse config", err)
	}
	return &res, nil
}

// Validate checks that every field is usable by the
// selected combiner and classifier.
func (c *Config) Validate() error {
	if c.Combiner < 0 || int(c.Combiner) >= len(combinerKindNames) {
		return fmt.Errorf("unknown combiner: %d", int(c.Combiner))
	}
	if c.Classifier < 0 || int(c.Classifier) >= len(classifierKindNames) {
		return fmt.Errorf("unknown classifier: %d", int(c.Classifier))
	}
	if c.EncodingDim <= 0 {
		return errors.New("encoding_dim must be positive")
	}
	if c.NumHiddenLayers < 0 {
		return errors.New("num_hidden_layers must not be negative")
	}
	if c.NumHiddenLayers > 0 && c.HiddenLayerWidth <= 0 {
		return errors.New("hidden_layer_width must be positive")
	}
	if _, err := ParseActivation(c.HiddenLayerActivation); err != nil {
		return essentials.AddCtx("hidden_layer_activation", err)
	}
	switch c.Classifier {
	case MultipleChoiceMLP:
		if c.NumOptions <= 0 {
			return errors.New("num_options must be positive")
		}
	case QuestionAnswerMLP:
		if c.AnswerDim <= 0 {
			return errors.New("answer_dim must be positive")
		}
	}
	return nil
}

func (c *Config) requiredKeys() []string {
	res := []string{"combiner", "classifier", "encoding_dim", "num_hidden_layers",
		"hidden_layer_width", "hidden_layer_activation"}
	switch c.Classifier {
	case MultipleChoiceMLP:
		res = append(res, "num_options")
	case QuestionAnswerMLP:
		res = append(res, "answer_dim")
	}
	return res
}
