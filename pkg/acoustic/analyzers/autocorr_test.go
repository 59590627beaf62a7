package analyzers

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/acousticsim/pkg/acoustic/common"
)

func testSignal(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2*math.Pi*float64(i)/37) + 0.5*math.Cos(2*math.Pi*float64(i)/11)
	}
	return out
}

// TestComputeMatchesDirect checks the FFT estimator against brute-force
// time-domain correlation over the full lag range.
func TestComputeMatchesDirect(t *testing.T) {
	frame := testSignal(300)
	maxLag := len(frame)

	estimator := NewAutocorrelationEstimator()
	r, err := estimator.Compute(frame, maxLag)
	require.NoError(t, err)
	require.Len(t, r, maxLag+1)

	for lag := 0; lag <= maxLag; lag++ {
		direct := 0.0
		for i := 0; i+lag < len(frame); i++ {
			direct += frame[i] * frame[i+lag]
		}
		direct /= float64(len(frame))
		assert.InDelta(t, direct, r[lag], 1e-9, "lag %d", lag)
	}
}

func TestComputeZeroLagIsMeanEnergy(t *testing.T) {
	frame := testSignal(128)

	estimator := NewAutocorrelationEstimator()
	r, err := estimator.Compute(frame, 0)
	require.NoError(t, err)

	energy := 0.0
	for _, s := range frame {
		energy += s * s
	}
	assert.InDelta(t, energy/float64(len(frame)), r[0], 1e-10)
}

// TestComputeSingleSampleFullLag pins the boundary where the frame is one
// sample and the full lag range is requested: the transform must still
// produce maxLag+1 bins.
func TestComputeSingleSampleFullLag(t *testing.T) {
	estimator := NewAutocorrelationEstimator()

	r, err := estimator.Compute([]float64{0.5}, 1)
	require.NoError(t, err)
	require.Len(t, r, 2)
	assert.InDelta(t, 0.25, r[0], 1e-12)
	assert.InDelta(t, 0.0, r[1], 1e-12)
}

func TestComputeValidation(t *testing.T) {
	estimator := NewAutocorrelationEstimator()

	tests := []struct {
		name   string
		frame  []float64
		maxLag int
	}{
		{"empty frame", nil, 0},
		{"negative lag", testSignal(16), -1},
		{"lag exceeds frame", testSignal(16), 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := estimator.Compute(tt.frame, tt.maxLag)
			require.Error(t, err)
			assert.True(t, common.IsCode(err, common.ErrCodeInvalidInput),
				"expected invalid input, got %v", err)
		})
	}
}
