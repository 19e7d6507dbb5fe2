package stats

import (
	"testing"

	"github.com/matryer/is"
)

func TestRunningStat(t *testing.T) {
	is := is.New(t)
	type tc struct {
		scores []int
		mean   float64
		stdev  float64
	}
	cases := []tc{
		{[]int{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638},
		{[]int{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891},
		{[]int{1}, 1, 0},
		{[]int{}, 0, 0},
		{[]int{1, 1}, 1, 0},
	}
	for _, c := range cases {
		s := &Statistic{}
		for _, score := range c.scores {
			s.Push(float64(score))
		}
		is.True(FuzzyEqual(s.Mean(), c.mean))
		is.True(FuzzyEqual(s.Stdev(), c.stdev))
	}
}

func TestMinMax(t *testing.T) {
	is := is.New(t)
	s := &Statistic{}
	for _, v := range []float64{4, -2, 9, 3.5} {
		s.Push(v)
	}
	is.Equal(s.Min(), -2.0)
	is.Equal(s.Max(), 9.0)
	is.Equal(s.Last(), 3.5)
	is.Equal(s.Iterations(), 4)
}

func TestZVal(t *testing.T) {
	is := is.New(t)
	is.True(FuzzyEqual(ZVal(95), 1.959963984540054))
	is.True(ZVal(99) > ZVal(95))
}

func TestPercentile(t *testing.T) {
	is := is.New(t)
	vals := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	p50, err := Percentile(vals, 50)
	is.NoErr(err)
	is.True(FuzzyEqual(p50, 5.5))
	p0, err := Percentile(vals, 0)
	is.NoErr(err)
	is.Equal(p0, 1.0)
	p100, err := Percentile(vals, 100)
	is.NoErr(err)
	is.Equal(p100, 10.0)

	_, err = Percentile(nil, 50)
	is.True(err != nil)
	_, err = Percentile(vals, 101)
	is.True(err != nil)
}
