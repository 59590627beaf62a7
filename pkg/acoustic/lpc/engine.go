package lpc

import (
	"fmt"

	"github.com/RyanBlaney/latency-benchmark-common/logging"

	"github.com/RyanBlaney/acousticsim/pkg/acoustic/analyzers"
	"github.com/RyanBlaney/acousticsim/pkg/acoustic/common"
)

// Engine estimates linear prediction coefficients for analysis frames.
// It composes FFT-based autocorrelation with the Levinson-Durbin solver
// and is the sole LPC entry point used by formant extraction.
type Engine struct {
	autocorr *analyzers.AutocorrelationEstimator
	logger   logging.Logger
}

// NewEngine creates a new LPC engine
func NewEngine() *Engine {
	return &Engine{
		autocorr: analyzers.NewAutocorrelationEstimator(),
		logger: logging.WithFields(logging.Fields{
			"component": "lpc_engine",
		}),
	}
}

// Estimate returns the prediction model of the given order for one frame
func (e *Engine) Estimate(frame []float64, order int) (*PredictionModel, error) {
	if order < 0 || order > len(frame) {
		return nil, common.NewInvalidInputError("lpc.Estimate",
			fmt.Sprintf("order %d outside [0, %d]", order, len(frame)))
	}

	r, err := e.autocorr.Compute(frame, order)
	if err != nil {
		return nil, fmt.Errorf("autocorrelation failed: %w", err)
	}

	model, err := Levinson(r, order)
	if err != nil {
		return nil, err
	}
	return model, nil
}
