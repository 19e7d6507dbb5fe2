package valuation

import (
	"github.com/gridironlab/dynasty/player"
	"github.com/gridironlab/dynasty/projection"
)

// AgeCurveCalculator discounts (or boosts) another calculator's value along
// positional age curves. This is the dynasty-specific part: a 28-year-old
// RB1 and a 23-year-old RB1 produce the same this year but are worth very
// different amounts going forward.
type AgeCurveCalculator struct {
	base   Calculator
	curves map[player.Position]projection.AgeCurve
}

func NewAgeCurveCalculator(base Calculator, curves map[player.Position]projection.AgeCurve) *AgeCurveCalculator {
	if curves == nil {
		curves = projection.DefaultCurves()
	}
	return &AgeCurveCalculator{base: base, curves: curves}
}

func (a *AgeCurveCalculator) Value(p *player.Player) float64 {
	v := a.base.Value(p)
	curve, ok := a.curves[p.Pos]
	if !ok {
		return v
	}
	// Value forward-looks: weight the next three seasons of the curve
	// against today, so the discount compounds for players near the cliff.
	now := curve.Multiplier(p.Age)
	if now <= 0 {
		return v
	}
	future := (curve.Multiplier(p.Age+1) + curve.Multiplier(p.Age+2) + curve.Multiplier(p.Age+3)) / 3
	return v * (future / now)
}

// ProductionCalculator values players from projected weekly output above
// replacement level, scaled to the market's unit.
type ProductionCalculator struct {
	Source   projection.Source
	Baseline projection.Baseline
	// PointsToValue converts one weekly point above replacement into market
	// value units.
	PointsToValue float64
}

func NewProductionCalculator(src projection.Source, baseline projection.Baseline) *ProductionCalculator {
	return &ProductionCalculator{Source: src, Baseline: baseline, PointsToValue: 600}
}

func (c *ProductionCalculator) Value(p *player.Player) float64 {
	d, ok := c.Source.Weekly(p)
	if !ok {
		return 0
	}
	above := d.Mean - c.Baseline.Replacement(p.Pos)
	if above < 0 {
		return 0
	}
	return above * c.PointsToValue
}
