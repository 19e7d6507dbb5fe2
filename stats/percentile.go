package stats

import (
	"errors"
	"sort"
)

// Percentile returns the pth percentile (0 to 100) of vals using linear
// interpolation between order statistics. vals does not need to be sorted.
func Percentile(vals []float64, p float64) (float64, error) {
	if len(vals) == 0 {
		return 0, errors.New("no values to take a percentile of")
	}
	if p < 0 || p > 100 {
		return 0, errors.New("percentile must be between 0 and 100")
	}
	c := make([]float64, len(vals))
	copy(c, vals)
	sort.Float64s(c)

	if len(c) == 1 {
		return c[0], nil
	}
	rank := (p / 100) * float64(len(c)-1)
	lo := int(rank)
	if lo == len(c)-1 {
		return c[lo], nil
	}
	frac := rank - float64(lo)
	return c[lo] + frac*(c[lo+1]-c[lo]), nil
}

// Percentiles computes several percentiles in one pass over the sort.
func Percentiles(vals []float64, ps []float64) ([]float64, error) {
	out := make([]float64, len(ps))
	for i, p := range ps {
		v, err := Percentile(vals, p)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
