package anyentail

import (
	"fmt"

	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anynet"
	"github.com/unixpickle/anyvec"
)

// OneHot packs a batch of labels into desired
// distributions with the given number of classes, for use
// with Head.Loss.
//
// For a QuestionAnswer head, classes is the number of
// answer options in the batch.
func OneHot(c anyvec.Creator, labels []int, classes int) (anyvec.Vector, error) {
	if classes <= 0 {
		return nil, fmt.Errorf("one-hot: invalid class count %d", classes)
	}
	data := make([]float64, len(labels)*classes)
	for i, label := range labels {
		if label < 0 || label >= classes {
			return nil, fmt.Errorf("one-hot: label %d out of range [0, %d)", label, classes)
		}
		data[i*classes+label] = 1
	}
	return c.MakeVectorData(c.MakeNumericList(data)), nil
}

// Loss applies cost to the head's log probabilities and
// returns one cost per example.
//
// If cost is nil, anynet.DotCost is used, which yields the
// cross-entropy between desired and the predictions.
func (h *Head) Loss(cost anynet.Cost, desired, in, answers anydiff.Res,
	batch int) anydiff.Res {
	if cost == nil {
		cost = anynet.DotCost{}
	}
	logProbs := h.LogProbs(in, answers, batch)
	if desired.Output().Len() != logProbs.Output().Len() {
		panic(fmt.Sprintf("desired length should be %d, but got %d",
			logProbs.Output().Len(), desired.Output().Len()))
	}
	return cost.Cost(desired, logProbs, batch)
}

// NewL2Cost creates a cross-entropy cost with an L2
// penalty on all of h's parameters.
// The penalty is penalty/2 times the sum of the squared
// parameters.
func NewL2Cost(h *Head, penalty float64) *anynet.L2Reg {
	return &anynet.L2Reg{
		Penalty: penalty,
		Params:  h.Parameters(),
		Wrapped: anynet.DotCost{},
	}
}
