package anyentail

import (
	"github.com/unixpickle/anynet"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/essentials"
)

// HiddenStack creates cfg.NumHiddenLayers Dense layers of
// width cfg.HiddenLayerWidth, using the configured hidden
// activation.
//
// It returns the stack and the size of its output, which
// is inSize when there are no hidden layers.
func HiddenStack(c anyvec.Creator, cfg *Config, inSize int) (anynet.Net, int, error) {
	act, err := ParseActivation(cfg.HiddenLayerActivation)
	if err != nil {
		return nil, 0, essentials.AddCtx("hidden stack", err)
	}
	res := anynet.Net{}
	for i := 0; i < cfg.NumHiddenLayers; i++ {
		res = append(res, NewDense(c, inSize, cfg.HiddenLayerWidth, act))
		inSize = cfg.HiddenLayerWidth
	}
	return res, inSize, nil
}
