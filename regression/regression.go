// Package regression implements the small set of regression tools the
// analytics layer needs: ordinary least squares, ridge regression, the VIF
// multicollinearity diagnostic, and polynomial age-curve fitting.
package regression

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var ErrUnderdetermined = errors.New("fewer observations than predictors")

// OLS fits y = Xβ by least squares (QR). X should already contain an
// intercept column if one is wanted.
func OLS(x *mat.Dense, y []float64) ([]float64, error) {
	r, c := x.Dims()
	if len(y) != r {
		return nil, fmt.Errorf("X has %d rows but y has %d values", r, len(y))
	}
	if r < c {
		return nil, ErrUnderdetermined
	}
	var qr mat.QR
	qr.Factorize(x)
	var sol mat.VecDense
	if err := qr.SolveVecTo(&sol, false, mat.NewVecDense(len(y), y)); err != nil {
		return nil, fmt.Errorf("solving least squares: %w", err)
	}
	beta := make([]float64, c)
	for i := range beta {
		beta[i] = sol.AtVec(i)
	}
	return beta, nil
}

// Ridge fits y = Xβ with an L2 penalty λ on every coefficient, via the
// normal equations (XᵀX + λI)β = Xᵀy. If X carries an intercept column,
// standardize first or accept the (small) intercept shrinkage.
func Ridge(x *mat.Dense, y []float64, lambda float64) ([]float64, error) {
	r, c := x.Dims()
	if len(y) != r {
		return nil, fmt.Errorf("X has %d rows but y has %d values", r, len(y))
	}
	if lambda < 0 {
		return nil, errors.New("lambda must be non-negative")
	}
	var xtx mat.Dense
	xtx.Mul(x.T(), x)
	for i := 0; i < c; i++ {
		xtx.Set(i, i, xtx.At(i, i)+lambda)
	}
	var xty mat.VecDense
	xty.MulVec(x.T(), mat.NewVecDense(len(y), y))

	var sol mat.VecDense
	if err := sol.SolveVec(&xtx, &xty); err != nil {
		return nil, fmt.Errorf("solving ridge system: %w", err)
	}
	beta := make([]float64, c)
	for i := range beta {
		beta[i] = sol.AtVec(i)
	}
	return beta, nil
}

// Predict evaluates Xβ.
func Predict(x *mat.Dense, beta []float64) []float64 {
	r, _ := x.Dims()
	out := make([]float64, r)
	bv := mat.NewVecDense(len(beta), beta)
	var fitted mat.VecDense
	fitted.MulVec(x, bv)
	for i := range out {
		out[i] = fitted.AtVec(i)
	}
	return out
}

// RSquared is the coefficient of determination of fitted against observed.
func RSquared(observed, fitted []float64) float64 {
	if len(observed) != len(fitted) || len(observed) == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range observed {
		mean += v
	}
	mean /= float64(len(observed))

	ssRes, ssTot := 0.0, 0.0
	for i := range observed {
		d := observed[i] - fitted[i]
		ssRes += d * d
		t := observed[i] - mean
		ssTot += t * t
	}
	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}

// VIF computes the variance inflation factor for each predictor column of
// X by regressing it (with an intercept) on all the others. Values near 1
// mean independent predictors; above ~5-10, multicollinearity is inflating
// coefficient variance.
func VIF(x *mat.Dense) ([]float64, error) {
	r, c := x.Dims()
	if c < 2 {
		return nil, errors.New("VIF needs at least two predictors")
	}
	out := make([]float64, c)
	for j := 0; j < c; j++ {
		design := mat.NewDense(r, c, nil) // intercept + the other c-1 columns
		yj := make([]float64, r)
		for i := 0; i < r; i++ {
			design.Set(i, 0, 1)
			col := 1
			for k := 0; k < c; k++ {
				if k == j {
					continue
				}
				design.Set(i, col, x.At(i, k))
				col++
			}
			yj[i] = x.At(i, j)
		}
		beta, err := OLS(design, yj)
		if err != nil {
			return nil, fmt.Errorf("VIF regression for column %d: %w", j, err)
		}
		r2 := RSquared(yj, Predict(design, beta))
		if r2 >= 1 {
			out[j] = math.Inf(1)
		} else {
			out[j] = 1 / (1 - r2)
		}
	}
	return out, nil
}
