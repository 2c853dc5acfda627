package anyentail

import (
	"math"
	"testing"

	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/anyvec/anyvec64"
)

func randomVector(n int) anyvec.Vector {
	v := anyvec64.DefaultCreator{}.MakeVector(n)
	anyvec.Rand(v, anyvec.Normal, nil)
	return v
}

func checkDistributions(t *testing.T, out anyvec.Vector, n int) {
	data := out.Data().([]float64)
	if len(data)%n != 0 {
		t.Fatalf("output length %d not divisible by %d", len(data), n)
	}
	cols := len(data) / n
	for i := 0; i < n; i++ {
		var sum float64
		for _, x := range data[i*cols : (i+1)*cols] {
			if x < 0 || math.IsNaN(x) {
				t.Errorf("example %d: bad probability %f", i, x)
			}
			sum += x
		}
		if math.Abs(sum-1) > 1e-6 {
			t.Errorf("example %d: probabilities sum to %f", i, sum)
		}
	}
}

func testConfig(kind ClassifierKind) *Config {
	return &Config{
		Combiner:              HeuristicMatchingCombiner,
		Classifier:            kind,
		EncodingDim:           3,
		NumHiddenLayers:       2,
		HiddenLayerWidth:      5,
		HiddenLayerActivation: "tanh",
		AnswerDim:             4,
		NumOptions:            3,
	}
}
