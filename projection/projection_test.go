package projection

import (
	"testing"

	"github.com/matryer/is"

	"github.com/gridironlab/dynasty/league"
	"github.com/gridironlab/dynasty/player"
	"github.com/gridironlab/dynasty/stats"
)

func TestStaticSource(t *testing.T) {
	is := is.New(t)
	src := NewStatic(map[string]Dist{"1": {Mean: 15, Stdev: 5}})
	d, ok := src.Weekly(&player.Player{ID: "1"})
	is.True(ok)
	is.Equal(d.Mean, 15.0)
	_, ok = src.Weekly(&player.Player{ID: "2"})
	is.True(!ok)
}

func TestAgeAdjustedDiscountsOldRBs(t *testing.T) {
	is := is.New(t)
	src := NewStatic(map[string]Dist{
		"young": {Mean: 15, Stdev: 5},
		"old":   {Mean: 15, Stdev: 5},
	})
	adj := NewAgeAdjusted(src, nil)

	young := &player.Player{ID: "young", Pos: player.RB, Age: 23}
	old := &player.Player{ID: "old", Pos: player.RB, Age: 29}

	dy, ok := adj.Weekly(young)
	is.True(ok)
	do, ok := adj.Weekly(old)
	is.True(ok)
	// The post-cliff RB loses more of his mean than the ascending one.
	is.True(do.Mean < dy.Mean)
	is.True(do.Mean < 15)
}

func TestAgeCurveShape(t *testing.T) {
	is := is.New(t)
	curve := DefaultCurves()[player.RB]
	is.True(curve.Multiplier(24) > curve.Multiplier(21))
	is.True(curve.Multiplier(24) > curve.Multiplier(27))
	is.True(curve.Multiplier(27) > curve.Multiplier(30))
	is.True(curve.Multiplier(45) >= curve.Floor)
}

func TestRescoredShiftsReceptionPoints(t *testing.T) {
	is := is.New(t)
	src := NewStatic(map[string]Dist{
		"wr":    {Mean: 20, Stdev: 6, Rec: 5},
		"te":    {Mean: 12, Stdev: 5, Rec: 4},
		"rb":    {Mean: 14, Stdev: 6}, // no rec data: passes through
		"scrub": {Mean: 0.5, Stdev: 1, Rec: 1},
	})
	wr := &player.Player{ID: "wr", Pos: player.WR}
	te := &player.Player{ID: "te", Pos: player.TE}
	rb := &player.Player{ID: "rb", Pos: player.RB}

	std := NewRescored(src, league.Standard())
	d, ok := std.Weekly(wr)
	is.True(ok)
	is.True(stats.FuzzyEqual(d.Mean, 15)) // loses 1.0/rec off the PPR baseline
	d, _ = std.Weekly(rb)
	is.True(stats.FuzzyEqual(d.Mean, 14))
	d, _ = std.Weekly(&player.Player{ID: "scrub", Pos: player.WR})
	is.Equal(d.Mean, 0.0) // clamped, never negative

	half := NewRescored(src, league.HalfPPR())
	d, _ = half.Weekly(wr)
	is.True(stats.FuzzyEqual(d.Mean, 17.5))

	// Full PPR is the baseline: a no-op.
	ppr := NewRescored(src, league.PPR())
	d, _ = ppr.Weekly(wr)
	is.True(stats.FuzzyEqual(d.Mean, 20))

	// TE premium adds on top of the PPR delta.
	tep := NewRescored(src, league.SuperflexTEP())
	d, _ = tep.Weekly(te)
	is.True(stats.FuzzyEqual(d.Mean, 14))

	_, ok = std.Weekly(&player.Player{ID: "missing"})
	is.True(!ok)
}

func TestCombinedBlend(t *testing.T) {
	is := is.New(t)
	a := NewStatic(map[string]Dist{"1": {Mean: 10, Stdev: 4}})
	b := NewStatic(map[string]Dist{"1": {Mean: 20, Stdev: 4}})
	c, err := NewCombined([]Source{a, b}, []float64{3, 1})
	is.NoErr(err)
	d, ok := c.Weekly(&player.Player{ID: "1"})
	is.True(ok)
	is.True(stats.FuzzyEqual(d.Mean, 12.5))
	is.True(stats.FuzzyEqual(d.Stdev, 4))
}

func TestCombinedPartialCoverage(t *testing.T) {
	is := is.New(t)
	a := NewStatic(map[string]Dist{"1": {Mean: 10, Stdev: 4}})
	b := NewStatic(map[string]Dist{}) // knows nobody
	c, err := NewCombined([]Source{a, b}, []float64{1, 1})
	is.NoErr(err)
	d, ok := c.Weekly(&player.Player{ID: "1"})
	is.True(ok)
	is.True(stats.FuzzyEqual(d.Mean, 10))
	_, ok = c.Weekly(&player.Player{ID: "missing"})
	is.True(!ok)
}

func TestCombinedValidation(t *testing.T) {
	is := is.New(t)
	a := NewStatic(nil)
	_, err := NewCombined(nil, nil)
	is.True(err != nil)
	_, err = NewCombined([]Source{a}, []float64{0})
	is.True(err != nil)
	_, err = NewCombined([]Source{a}, []float64{-1, 2})
	is.True(err != nil)
}

func TestSamplerDeterminism(t *testing.T) {
	is := is.New(t)
	d := Dist{Mean: 12, Stdev: 6}
	s1 := NewSeededSampler(42)
	s2 := NewSeededSampler(42)
	for i := 0; i < 50; i++ {
		is.Equal(s1.Sample(d), s2.Sample(d))
	}
}

func TestSamplerTruncationAndMoments(t *testing.T) {
	is := is.New(t)
	s := NewSeededSampler(7)
	d := Dist{Mean: 12, Stdev: 6}
	acc := &stats.Statistic{}
	for i := 0; i < 20000; i++ {
		v := s.Sample(d)
		is.True(v >= 0)
		acc.Push(v)
	}
	// Truncation at zero pulls the mean slightly above 12; allow slack.
	is.True(acc.Mean() > 11 && acc.Mean() < 13.5)
	is.True(acc.Stdev() > 4.5 && acc.Stdev() < 7)
}

func TestSamplerPlayProb(t *testing.T) {
	is := is.New(t)
	s := NewSeededSampler(9)
	d := Dist{Mean: 100, Stdev: 0.1, PlayProb: 0.5}
	zeros := 0
	n := 5000
	for i := 0; i < n; i++ {
		if s.Sample(d) == 0 {
			zeros++
		}
	}
	ratio := float64(zeros) / float64(n)
	is.True(ratio > 0.45 && ratio < 0.55)
}
