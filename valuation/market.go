package valuation

import (
	"math"

	"github.com/gridironlab/dynasty/player"
)

// MarketCalculator anchors value to consensus draft position with an
// exponential decay: pick 1 overall is worth Anchor, and value halves every
// HalfLife picks. Players with an explicit market value use it directly.
type MarketCalculator struct {
	Anchor   float64
	HalfLife float64
}

func NewMarketCalculator() *MarketCalculator {
	return &MarketCalculator{Anchor: 10000, HalfLife: 24}
}

func (m *MarketCalculator) Value(p *player.Player) float64 {
	if p.MarketValue > 0 {
		return p.MarketValue
	}
	if p.ADP <= 0 {
		return 0
	}
	return m.Anchor * math.Pow(0.5, (p.ADP-1)/m.HalfLife)
}
