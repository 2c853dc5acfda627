package anyentail

import (
	"fmt"
	"strings"

	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/serializer"
)

func init() {
	var a Activation
	serializer.RegisterTypedDeserializer(a.SerializerType(), DeserializeActivation)
}

// An Activation is a component-wise (or, for the softmax
// variants, vector-wise) non-linearity.
type Activation int

// These are the supported activation functions.
const (
	Linear Activation = iota
	Tanh
	Sigmoid
	ReLU
	Sin
	Softmax
	LogSoftmax
)

var activationNames = []string{
	Linear:     "linear",
	Tanh:       "tanh",
	Sigmoid:    "sigmoid",
	ReLU:       "relu",
	Sin:        "sin",
	Softmax:    "softmax",
	LogSoftmax: "log_softmax",
}

// ParseActivation finds the activation with the given
// name, such as "relu" or "tanh".
// Matching is case-insensitive.
func ParseActivation(name string) (Activation, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for i, n := range activationNames {
		if n == lower {
			return Activation(i), nil
		}
	}
	return 0, fmt.Errorf("unknown activation: %q", name)
}

// DeserializeActivation deserializes an Activation.
func DeserializeActivation(d []byte) (Activation, error) {
	if len(d) != 1 {
		return 0, fmt.Errorf("deserialize Activation: data length (%d) should be 1", len(d))
	}
	a := Activation(d[0])
	if a > LogSoftmax {
		return 0, fmt.Errorf("deserialize Activation: unknown activation ID: %d", a)
	}
	return a, nil
}

// String returns the name accepted by ParseActivation.
func (a Activation) String() string {
	if a < 0 || int(a) >= len(activationNames) {
		return fmt.Sprintf("Activation(%d)", int(a))
	}
	return activationNames[a]
}

// Apply applies the activation function.
// The softmax variants normalize each of the n vectors in
// the batch separately.
func (a Activation) Apply(in anydiff.Res, n int) anydiff.Res {
	switch a {
	case Linear:
		return in
	case Tanh:
		return anydiff.Tanh(in)
	case Sigmoid:
		return anydiff.Sigmoid(in)
	case ReLU:
		return anydiff.ClipPos(in)
	case Sin:
		return anydiff.Sin(in)
	case Softmax:
		return anydiff.Exp(logSoftmax(in, n))
	case LogSoftmax:
		return logSoftmax(in, n)
	default:
		panic(fmt.Sprintf("unknown activation: %d", a))
	}
}

// SerializerType returns the unique ID used to serialize
// an Activation.
func (a Activation) SerializerType() string {
	return "github.com/sachuin23/anyentail.Activation"
}

// Serialize serializes the activation.
func (a Activation) Serialize() ([]byte, error) {
	return []byte{byte(a)}, nil
}

func logSoftmax(in anydiff.Res, n int) anydiff.Res {
	inLen := in.Output().Len()
	if n == 0 || inLen%n != 0 {
		panic("batch size must divide input length")
	}
	return anydiff.LogSoftmax(in, inLen/n)
}
