package regression

import (
	"math"
	"testing"

	"github.com/matryer/is"
	"gonum.org/v1/gonum/mat"
	"lukechampine.com/frand"
)

func testRNG() *frand.RNG {
	var key [32]byte
	key[0] = 7
	return frand.NewCustom(key[:], 1024, 12)
}

func TestOLSExactRecovery(t *testing.T) {
	is := is.New(t)
	// y = 2 + 3x, no noise.
	n := 20
	x := mat.NewDense(n, 2, nil)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		xi := float64(i)
		x.Set(i, 0, 1)
		x.Set(i, 1, xi)
		y[i] = 2 + 3*xi
	}
	beta, err := OLS(x, y)
	is.NoErr(err)
	is.True(math.Abs(beta[0]-2) < 1e-9)
	is.True(math.Abs(beta[1]-3) < 1e-9)
	is.True(RSquared(y, Predict(x, beta)) > 0.999999)
}

func TestOLSUnderdetermined(t *testing.T) {
	is := is.New(t)
	x := mat.NewDense(2, 3, nil)
	_, err := OLS(x, []float64{1, 2})
	is.Equal(err, ErrUnderdetermined)
}

func TestRidgeShrinks(t *testing.T) {
	is := is.New(t)
	rng := testRNG()
	n := 50
	x := mat.NewDense(n, 2, nil)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		a := rng.Float64()*10 - 5
		b := rng.Float64()*10 - 5
		x.Set(i, 0, a)
		x.Set(i, 1, b)
		y[i] = 4*a - 2*b + (rng.Float64()-0.5)*0.1
	}
	ols, err := Ridge(x, y, 0)
	is.NoErr(err)
	shrunk, err := Ridge(x, y, 100)
	is.NoErr(err)
	is.True(math.Abs(shrunk[0]) < math.Abs(ols[0]))
	is.True(math.Abs(shrunk[1]) < math.Abs(ols[1]))

	_, err = Ridge(x, y, -1)
	is.True(err != nil)
}

func TestVIF(t *testing.T) {
	is := is.New(t)
	rng := testRNG()
	n := 200

	// Independent predictors: VIF near 1.
	indep := mat.NewDense(n, 2, nil)
	for i := 0; i < n; i++ {
		indep.Set(i, 0, rng.Float64())
		indep.Set(i, 1, rng.Float64())
	}
	vifs, err := VIF(indep)
	is.NoErr(err)
	is.True(vifs[0] < 1.5)
	is.True(vifs[1] < 1.5)

	// Near-duplicate predictors: VIF blows up.
	collinear := mat.NewDense(n, 2, nil)
	for i := 0; i < n; i++ {
		v := rng.Float64()
		collinear.Set(i, 0, v)
		collinear.Set(i, 1, v+0.001*rng.Float64())
	}
	vifs, err = VIF(collinear)
	is.NoErr(err)
	is.True(vifs[0] > 10)
	is.True(vifs[1] > 10)

	_, err = VIF(mat.NewDense(10, 1, nil))
	is.True(err != nil)
}

func TestFitAgeCurvePeak(t *testing.T) {
	is := is.New(t)
	// Synthetic RB curve peaking at 25.
	var pts []AgePoint
	for age := 21.0; age <= 33; age++ {
		pts = append(pts, AgePoint{Age: age, Points: 250 - 4*(age-25)*(age-25)})
	}
	curve, err := FitAgeCurve(pts, 2)
	is.NoErr(err)
	is.True(math.Abs(curve.PeakAge()-25) <= 0.5)
	is.True(curve.R2 > 0.999)
	is.True(curve.Eval(25) > curve.Eval(30))

	_, err = FitAgeCurve(pts[:2], 2)
	is.True(err != nil)
	_, err = FitAgeCurve(pts, 0)
	is.True(err != nil)
}
