package projection

import "github.com/gridironlab/dynasty/player"

// AgeCurve maps a player's age to a production multiplier relative to peak.
// The default curves encode the consensus dynasty aging pattern: RBs peak
// early and fall off a cliff, WRs and QBs hold value far longer.
type AgeCurve struct {
	PeakAge   float64
	RiseRate  float64 // multiplier gained per year before the peak
	DecayRate float64 // multiplier lost per year after the peak
	CliffAge  float64
	CliffRate float64 // decay per year after the cliff
	Floor     float64
}

// Multiplier evaluates the curve. Always positive; clamped at Floor.
func (c AgeCurve) Multiplier(age float64) float64 {
	m := 1.0
	switch {
	case age < c.PeakAge:
		m = 1.0 - (c.PeakAge-age)*c.RiseRate
	case age <= c.CliffAge:
		m = 1.0 - (age-c.PeakAge)*c.DecayRate
	default:
		m = 1.0 - (c.CliffAge-c.PeakAge)*c.DecayRate - (age-c.CliffAge)*c.CliffRate
	}
	if m < c.Floor {
		return c.Floor
	}
	return m
}

// DefaultCurves are reasonable priors; regression.FitAgeCurve can replace
// them with curves fitted from historical production.
func DefaultCurves() map[player.Position]AgeCurve {
	return map[player.Position]AgeCurve{
		player.QB:  {PeakAge: 27, RiseRate: 0.03, DecayRate: 0.01, CliffAge: 36, CliffRate: 0.08, Floor: 0.3},
		player.RB:  {PeakAge: 24, RiseRate: 0.05, DecayRate: 0.04, CliffAge: 27, CliffRate: 0.15, Floor: 0.2},
		player.WR:  {PeakAge: 26, RiseRate: 0.04, DecayRate: 0.02, CliffAge: 30, CliffRate: 0.10, Floor: 0.25},
		player.TE:  {PeakAge: 27, RiseRate: 0.05, DecayRate: 0.02, CliffAge: 31, CliffRate: 0.10, Floor: 0.25},
		player.K:   {PeakAge: 28, RiseRate: 0.01, DecayRate: 0.005, CliffAge: 38, CliffRate: 0.05, Floor: 0.5},
		player.DST: {PeakAge: 27, RiseRate: 0, DecayRate: 0, CliffAge: 99, CliffRate: 0, Floor: 1},
	}
}

// AgeAdjusted wraps a Source and shifts means along positional age curves.
// Means already reflect the current season, so the adjustment is relative:
// the wrapped mean is treated as the player's current-age production and the
// multiplier projects where they sit on the curve next.
type AgeAdjusted struct {
	src    Source
	curves map[player.Position]AgeCurve
}

func NewAgeAdjusted(src Source, curves map[player.Position]AgeCurve) *AgeAdjusted {
	if curves == nil {
		curves = DefaultCurves()
	}
	return &AgeAdjusted{src: src, curves: curves}
}

func (a *AgeAdjusted) Weekly(p *player.Player) (Dist, bool) {
	d, ok := a.src.Weekly(p)
	if !ok {
		return d, false
	}
	curve, ok := a.curves[p.Pos]
	if !ok {
		return d, true
	}
	// Adjust relative to where the player sits this year, so a player at
	// their peak is unchanged and an aging one is discounted.
	now := curve.Multiplier(p.Age)
	next := curve.Multiplier(p.Age + 1)
	if now > 0 {
		d.Mean *= next / now
	}
	return d, true
}
