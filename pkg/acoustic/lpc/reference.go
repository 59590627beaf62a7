package lpc

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/RyanBlaney/acousticsim/pkg/acoustic/common"
)

// Reference computes the order+1 prediction coefficients for signal by
// direct inversion of the autocorrelation Toeplitz matrix. It is a slow
// ground-truth implementation kept for cross-validating the Levinson
// recursion; use Engine.Estimate everywhere else.
func Reference(signal []float64, order int) ([]float64, error) {
	if order < 0 || order > len(signal) {
		return nil, common.NewInvalidInputError("lpc.Reference",
			fmt.Sprintf("order %d exceeds signal length %d", order, len(signal)))
	}
	if order == 0 {
		return []float64{1}, nil
	}

	// Raw time-domain autocorrelation. Lags beyond the signal length
	// stay zero; the Levinson solution is scale-invariant in r so the
	// missing 1/n bias factor does not change the coefficients.
	r := make([]float64, order+1)
	for lag := 0; lag <= order && lag < len(signal); lag++ {
		for i := 0; i+lag < len(signal); i++ {
			r[lag] += signal[i] * signal[i+lag]
		}
	}

	toeplitz := mat.NewDense(order, order, nil)
	for i := range order {
		for j := range order {
			d := i - j
			if d < 0 {
				d = -d
			}
			toeplitz.Set(i, j, r[d])
		}
	}

	rhs := mat.NewVecDense(order, nil)
	for i := range order {
		rhs.SetVec(i, -r[i+1])
	}

	var solution mat.VecDense
	if err := solution.SolveVec(toeplitz, rhs); err != nil {
		return nil, common.NewFeatureError(common.ErrCodeDegenerateResult,
			"lpc.Reference", "singular autocorrelation matrix", err)
	}

	coeffs := make([]float64, order+1)
	coeffs[0] = 1
	for i := range order {
		coeffs[i+1] = solution.AtVec(i)
	}
	return coeffs, nil
}
