package formant

import (
	"gonum.org/v1/gonum/mat"

	"github.com/RyanBlaney/acousticsim/pkg/acoustic/common"
)

// PolynomialRoots returns the complex roots of the polynomial whose
// coefficients are given highest order first, as the eigenvalues of its
// companion matrix. Trailing zero coefficients contribute roots at the
// origin.
func PolynomialRoots(coeffs []float64) ([]complex128, error) {
	// Leading zeros carry no degree information.
	start := 0
	for start < len(coeffs) && coeffs[start] == 0 {
		start++
	}
	c := coeffs[start:]
	if len(c) <= 1 {
		return nil, nil
	}

	zeroRoots := 0
	for len(c) > 1 && c[len(c)-1] == 0 {
		c = c[:len(c)-1]
		zeroRoots++
	}

	degree := len(c) - 1
	roots := make([]complex128, 0, degree+zeroRoots)
	for range zeroRoots {
		roots = append(roots, 0)
	}
	if degree == 0 {
		return roots, nil
	}

	companion := mat.NewDense(degree, degree, nil)
	for j := range degree {
		companion.Set(0, j, -c[j+1]/c[0])
	}
	for i := 1; i < degree; i++ {
		companion.Set(i, i-1, 1)
	}

	var eig mat.Eigen
	if ok := eig.Factorize(companion, mat.EigenNone); !ok {
		return nil, common.NewDegenerateResultError("formant.PolynomialRoots",
			"companion matrix eigendecomposition failed")
	}
	return append(roots, eig.Values(nil)...), nil
}
