// Package anyentail implements entailment heads for
// natural language inference models built on anynet.
//
// An entailment head receives three vectors per example:
// a sentence encoding, the current memory of an iterative
// reasoning process, and the attended background
// knowledge.
// A Combiner merges them into one feature vector, and a
// Classifier turns that vector into a distribution over
// true/false or over answer options.
package anyentail

import (
	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anynet"
)

func allParameters(objs ...interface{}) []*anydiff.Var {
	var res []*anydiff.Var
	for _, x := range objs {
		if p, ok := x.(anynet.Parameterizer); ok {
			res = append(res, p.Parameters()...)
		}
	}
	return res
}
