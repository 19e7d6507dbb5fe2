// Package valuation assigns dynasty trade values to players and draft picks
// and evaluates trades. Calculators are pluggable and blendable, like the
// projection sources.
package valuation

import (
	"errors"

	"github.com/gridironlab/dynasty/player"
)

// Calculator is a calculator of dynasty value.
type Calculator interface {
	// Value is a catch-all number for what a player is worth on the dynasty
	// market. It folds in market consensus, age discounting, and projected
	// production, depending on the calculator.
	Value(p *player.Player) float64
}

// Combined blends calculators with normalized weights.
type Combined struct {
	calcs   []Calculator
	weights []float64
}

func NewCombined(calcs []Calculator, weights []float64) (*Combined, error) {
	if len(calcs) == 0 || len(calcs) != len(weights) {
		return nil, errors.New("need equal non-zero calculators and weights")
	}
	total := 0.0
	for _, w := range weights {
		if w < 0 {
			return nil, errors.New("weights must be non-negative")
		}
		total += w
	}
	if total == 0 {
		return nil, errors.New("weights sum to zero")
	}
	c := &Combined{calcs: calcs, weights: make([]float64, len(weights))}
	for i, w := range weights {
		c.weights[i] = w / total
	}
	return c, nil
}

func (c *Combined) Value(p *player.Player) float64 {
	v := 0.0
	for i, calc := range c.calcs {
		v += c.weights[i] * calc.Value(p)
	}
	return v
}
