package analyzers

import (
	"fmt"
	"math/cmplx"

	"github.com/RyanBlaney/latency-benchmark-common/logging"
	"github.com/mjibson/go-dsp/dsputils"
	"github.com/mjibson/go-dsp/fft"

	"github.com/RyanBlaney/acousticsim/pkg/acoustic/common"
)

// AutocorrelationEstimator computes the biased autocorrelation of a real
// frame through the power spectrum: the frame is zero-padded to a
// power-of-two length covering the full linear correlation, transformed,
// squared, and inverse-transformed. Equivalent to direct time-domain
// correlation but O(n log n) instead of O(n^2).
type AutocorrelationEstimator struct {
	logger logging.Logger
}

// NewAutocorrelationEstimator creates a new autocorrelation estimator
func NewAutocorrelationEstimator() *AutocorrelationEstimator {
	return &AutocorrelationEstimator{
		logger: logging.WithFields(logging.Fields{
			"component": "autocorrelation_estimator",
		}),
	}
}

// Compute returns the biased autocorrelation of frame for lags 0..maxLag,
// normalized by the frame length. The zero-lag term is the mean signal
// energy of the frame.
func (ae *AutocorrelationEstimator) Compute(frame []float64, maxLag int) ([]float64, error) {
	if len(frame) == 0 {
		return nil, common.NewInvalidInputError("autocorr.Compute", "empty frame")
	}
	if maxLag < 0 || maxLag > len(frame) {
		return nil, common.NewInvalidInputError("autocorr.Compute",
			fmt.Sprintf("max lag %d outside [0, %d]", maxLag, len(frame)))
	}

	n := len(frame)
	// 2n-1 bins cover the full linear correlation, but a one-sample frame
	// at full lag still needs maxLag+1 output bins; extra zero padding
	// leaves the result unchanged.
	size := 2*n - 1
	if size < maxLag+1 {
		size = maxLag + 1
	}
	nfft := dsputils.NextPowerOf2(size)

	padded := dsputils.ZeroPad(dsputils.ToComplex(frame), nfft)
	spectrum := fft.FFT(padded)

	// Power spectrum; the inverse transform of |X|^2 is the circular
	// autocorrelation, and the padding makes it equal the linear one.
	for i, c := range spectrum {
		m := cmplx.Abs(c)
		spectrum[i] = complex(m*m, 0)
	}
	inverse := fft.IFFT(spectrum)

	r := make([]float64, maxLag+1)
	for i := range r {
		r[i] = real(inverse[i]) / float64(n)
	}
	return r, nil
}
