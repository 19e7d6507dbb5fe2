package regression

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// AgePoint is one (age, seasonal fantasy points) observation.
type AgePoint struct {
	Age    float64
	Points float64
}

// AgePoly is a fitted polynomial production-by-age curve.
type AgePoly struct {
	// Coeffs are the polynomial coefficients, constant term first.
	Coeffs []float64
	R2     float64
}

// Eval evaluates the polynomial at the given age (Horner's method).
func (c AgePoly) Eval(age float64) float64 {
	out := 0.0
	for i := len(c.Coeffs) - 1; i >= 0; i-- {
		out = out*age + c.Coeffs[i]
	}
	return out
}

// PeakAge scans the plausible career range for the age that maximizes the
// fitted curve.
func (c AgePoly) PeakAge() float64 {
	best, bestAge := c.Eval(20), 20.0
	for age := 20.0; age <= 40; age += 0.25 {
		if v := c.Eval(age); v > best {
			best, bestAge = v, age
		}
	}
	return bestAge
}

// FitAgeCurve fits a degree-d polynomial of points on age by least
// squares. Degree 2 or 3 is the usual choice; the classic running back
// cliff shows up as a steep right tail on a cubic.
func FitAgeCurve(points []AgePoint, degree int) (AgePoly, error) {
	if degree < 1 {
		return AgePoly{}, errors.New("degree must be at least 1")
	}
	if len(points) <= degree {
		return AgePoly{}, fmt.Errorf("need more than %d observations for a degree-%d fit", degree, degree)
	}
	n := len(points)
	x := mat.NewDense(n, degree+1, nil)
	y := make([]float64, n)
	for i, pt := range points {
		v := 1.0
		for j := 0; j <= degree; j++ {
			x.Set(i, j, v)
			v *= pt.Age
		}
		y[i] = pt.Points
	}
	beta, err := OLS(x, y)
	if err != nil {
		return AgePoly{}, err
	}
	curve := AgePoly{Coeffs: beta}
	curve.R2 = RSquared(y, Predict(x, beta))
	return curve, nil
}
