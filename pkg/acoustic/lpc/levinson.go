package lpc

import (
	"fmt"
	"math"

	"github.com/RyanBlaney/acousticsim/pkg/acoustic/common"
)

// PredictionModel is the solution of one symmetric Toeplitz system: the
// linear prediction filter for a single analysis frame
type PredictionModel struct {
	Coefficients           []float64 `json:"coefficients"`            // a[0..order], a[0] = 1 by convention
	ResidualEnergy         float64   `json:"residual_energy"`         // Prediction error energy
	ReflectionCoefficients []float64 `json:"reflection_coefficients"` // k[1..order], |k| < 1 for a stable system
	Order                  int       `json:"order"`                   // LPC order used
}

// Levinson solves the symmetric Toeplitz system defined by the
// autocorrelation vector r for the given order using the Levinson-Durbin
// recursion, in O(order^2) instead of the O(order^3) direct inversion.
//
// r[0] must be nonzero with a finite reciprocal and order must not exceed
// len(r)-1. If the running error term collapses to zero or a non-finite
// value mid-recursion the remaining reflection coefficients are undefined,
// and Levinson fails with ErrCodeDegenerateResult rather than letting NaNs
// propagate into the coefficients.
func Levinson(r []float64, order int) (*PredictionModel, error) {
	if len(r) == 0 {
		return nil, common.NewInvalidInputError("lpc.Levinson", "empty autocorrelation vector")
	}
	if order < 0 || order > len(r)-1 {
		return nil, common.NewInvalidInputError("lpc.Levinson",
			fmt.Sprintf("order %d outside [0, %d]", order, len(r)-1))
	}
	if r[0] == 0 || !isFinite(1/r[0]) {
		return nil, common.NewInvalidInputError("lpc.Levinson",
			"zero-lag term must be nonzero with finite reciprocal")
	}

	a := make([]float64, order+1)
	k := make([]float64, order)
	t := make([]float64, order+1) // pre-update snapshot of a
	a[0] = 1
	e := r[0]

	for i := 1; i <= order; i++ {
		if e == 0 || !isFinite(e) {
			return nil, common.NewDegenerateResultError("lpc.Levinson",
				fmt.Sprintf("error term %v at recursion step %d", e, i))
		}

		acc := r[i]
		for j := 1; j < i; j++ {
			acc += a[j] * r[i-j]
		}
		k[i-1] = -acc / e

		// The coefficient update reads mirrored entries that the same
		// step overwrites, so it must run against a snapshot.
		copy(t, a)
		for j := 1; j < i; j++ {
			a[j] += k[i-1] * t[i-j]
		}
		a[i] = k[i-1]

		e *= 1 - k[i-1]*k[i-1]
	}

	return &PredictionModel{
		Coefficients:           a,
		ResidualEnergy:         e,
		ReflectionCoefficients: k,
		Order:                  order,
	}, nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
