package analyzers

import (
	"fmt"
	"math"

	"github.com/mjibson/go-dsp/window"

	"github.com/RyanBlaney/acousticsim/pkg/acoustic/common"
)

// WindowShape identifies an analysis window function
type WindowShape string

const (
	WindowGaussian WindowShape = "gaussian"
	WindowHann     WindowShape = "hann"
)

// WindowGenerator builds analysis windows for frame-based extraction.
// Windows are generated over length+2 points with the first and last
// discarded, so the retained taper never touches zero at the frame edges
// (Praat-style construction).
type WindowGenerator struct{}

// NewWindowGenerator creates a new window generator
func NewWindowGenerator() *WindowGenerator {
	return &WindowGenerator{}
}

// Generate returns a window of the given shape and length in samples
func (wg *WindowGenerator) Generate(shape WindowShape, length int) ([]float64, error) {
	if length <= 0 {
		return nil, common.NewInvalidInputError("window.Generate",
			fmt.Sprintf("window length must be positive, got %d", length))
	}

	switch shape {
	case WindowGaussian:
		return wg.gaussian(length), nil
	case WindowHann:
		return window.Hann(length + 2)[1 : length+1], nil
	default:
		return nil, common.NewInvalidInputError("window.Generate",
			fmt.Sprintf("unknown window shape %q", shape))
	}
}

// gaussian computes a Gaussian window with standard deviation
// 0.45*(length-1)/2 samples, evaluated over length+2 points and trimmed
func (wg *WindowGenerator) gaussian(length int) []float64 {
	std := 0.45 * float64(length-1) / 2.0
	center := float64(length+1) / 2.0 // (M-1)/2 for M = length+2

	w := make([]float64, length)
	for i := range w {
		n := float64(i+1) - center
		if std == 0 {
			if n == 0 {
				w[i] = 1
			}
			continue
		}
		w[i] = math.Exp(-0.5 * (n / std) * (n / std))
	}
	return w
}
