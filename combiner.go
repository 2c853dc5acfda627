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
	var m MemoryOnly
	serializer.RegisterTypedDeserializer(m.SerializerType(), DeserializeMemoryOnly)
	var h HeuristicMatching
	serializer.RegisterTypedDeserializer(h.SerializerType(), DeserializeHeuristicMatching)
}

// A Combiner merges the sentence encoding, the current
// memory, and the attended knowledge into a single
// feature vector.
//
// The input to Apply packs, for every example, the three
// vectors one after another:
//
//	[sentence, memory, knowledge]
//
// where each vector has EncodingDim() components.
// The output packs OutputSize() components per example.
type Combiner interface {
	anynet.Layer
	EncodingDim() int
	OutputSize() int
}

// NewCombiner creates a Combiner of the given kind.
func NewCombiner(kind CombinerKind, encodingDim int) (Combiner, error) {
	if encodingDim <= 0 {
		return nil, fmt.Errorf("new combiner: invalid encoding dimension %d", encodingDim)
	}
	switch kind {
	case MemoryOnlyCombiner:
		return &MemoryOnly{Dim: encodingDim}, nil
	case HeuristicMatchingCombiner:
		return &HeuristicMatching{Dim: encodingDim}, nil
	default:
		return nil, fmt.Errorf("new combiner: unknown kind %d", int(kind))
	}
}

// JoinInputs packs separately computed batches of
// sentence encodings, memories, and knowledge vectors
// into the layout expected by a Combiner.
func JoinInputs(sentence, memory, knowledge anydiff.Res, batch int) anydiff.Res {
	return anydiff.Pool(sentence, func(sentence anydiff.Res) anydiff.Res {
		return anydiff.Pool(memory, func(memory anydiff.Res) anydiff.Res {
			return anydiff.Pool(knowledge, func(knowledge anydiff.Res) anydiff.Res {
				ins := []anydiff.Res{sentence, memory, knowledge}
				var res []anydiff.Res
				for i := 0; i < batch; i++ {
					for _, in := range ins {
						size := in.Output().Len() / batch
						res = append(res, anydiff.Slice(in, i*size, (i+1)*size))
					}
				}
				return anydiff.Concat(res...)
			})
		})
	})
}

// MemoryOnly is a Combiner which ignores everything but
// the current memory.
type MemoryOnly struct {
	Dim int
}

// DeserializeMemoryOnly deserializes a MemoryOnly.
func DeserializeMemoryOnly(d []byte) (*MemoryOnly, error) {
	var dim serializer.Int
	if err := serializer.DeserializeAny(d, &dim); err != nil {
		return nil, essentials.AddCtx("deserialize MemoryOnly", err)
	}
	if dim <= 0 {
		return nil, errors.New("deserialize MemoryOnly: invalid encoding dimension")
	}
	return &MemoryOnly{Dim: int(dim)}, nil
}

// EncodingDim returns m.Dim.
func (m *MemoryOnly) EncodingDim() int {
	return m.Dim
}

// OutputSize returns m.Dim.
func (m *MemoryOnly) OutputSize() int {
	return m.Dim
}

// Apply selects the memory vector of every example.
func (m *MemoryOnly) Apply(in anydiff.Res, batch int) anydiff.Res {
	checkCombinerInput(in, m.Dim, batch)
	return anydiff.Pool(in, func(in anydiff.Res) anydiff.Res {
		var res []anydiff.Res
		for i := 0; i < batch; i++ {
			_, memory, _ := splitCombinerInput(in, m.Dim, i)
			res = append(res, memory)
		}
		return anydiff.Concat(res...)
	})
}

// SerializerType returns the unique ID used to serialize
// a MemoryOnly with the serializer package.
func (m *MemoryOnly) SerializerType() string {
	return "github.com/sachuin23/anyentail.MemoryOnly"
}

// Serialize serializes the encoding dimension.
func (m *MemoryOnly) Serialize() ([]byte, error) {
	return serializer.SerializeAny(serializer.Int(m.Dim))
}

// HeuristicMatching is a Combiner which produces
//
//	[s, m, s*m, s-m]
//
// for the sentence encoding s and memory m.
// The knowledge vector is ignored.
//
// This is the heuristic matching scheme from Mou et al.,
// "Natural Language Inference by Tree-Based Convolution
// and Heuristic Matching" (2016).
type HeuristicMatching struct {
	Dim int
}

// DeserializeHeuristicMatching deserializes a
// HeuristicMatching.
func DeserializeHeuristicMatching(d []byte) (*HeuristicMatching, error) {
	var dim serializer.Int
	if err := serializer.DeserializeAny(d, &dim); err != nil {
		return nil, essentials.AddCtx("deserialize HeuristicMatching", err)
	}
	if dim <= 0 {
		return nil, errors.New("deserialize HeuristicMatching: invalid encoding dimension")
	}
	return &HeuristicMatching{Dim: int(dim)}, nil
}

// EncodingDim returns h.Dim.
func (h *HeuristicMatching) EncodingDim() int {
	return h.Dim
}

// OutputSize returns 4*h.Dim.
func (h *HeuristicMatching) OutputSize() int {
	return 4 * h.Dim
}

// Apply computes the matching features of every example.
func (h *HeuristicMatching) Apply(in anydiff.Res, batch int) anydiff.Res {
	checkCombinerInput(in, h.Dim, batch)
	return anydiff.Pool(in, func(in anydiff.Res) anydiff.Res {
		var res []anydiff.Res
		for i := 0; i < batch; i++ {
			sentence, memory, _ := splitCombinerInput(in, h.Dim, i)
			res = append(res, sentence, memory, anydiff.Mul(sentence, memory),
				anydiff.Sub(sentence, memory))
		}
		return anydiff.Concat(res...)
	})
}

// SerializerType returns the unique ID used to serialize
// a HeuristicMatching with the serializer package.
func (h *HeuristicMatching) SerializerType() string {
	return "github.com/sachuin23/anyentail.HeuristicMatching"
}

// Serialize serializes the encoding dimension.
func (h *HeuristicMatching) Serialize() ([]byte, error) {
	return serializer.SerializeAny(serializer.Int(h.Dim))
}

func checkCombinerInput(in anydiff.Res, dim, batch int) {
	if in.Output().Len() != batch*dim*3 {
		panic(fmt.Sprintf("input length should be %d, but got %d",
			batch*dim*3, in.Output().Len()))
	}
}

func splitCombinerInput(in anydiff.Res, dim, idx int) (sentence, memory,
	knowledge anydiff.Res) {
	start := idx * dim * 3
	sentence = anydiff.Slice(in, start, start+dim)
	memory = anydiff.Slice(in, start+dim, start+2*dim)
	knowledge = anydiff.Slice(in, start+2*dim, start+3*dim)
	return
}
