// Package projection provides pluggable weekly-scoring models for players.
// Sources can be stacked and blended; the simulator only ever sees the
// Source interface.
package projection

import "github.com/gridironlab/dynasty/player"

// Dist is a player's weekly fantasy-point distribution. A PlayProb of zero
// is treated as "always plays" so the zero value stays useful. Rec is the
// player's expected receptions per game; Rescored uses it to move the mean
// between reception-scoring formats.
type Dist struct {
	Mean     float64
	Stdev    float64
	PlayProb float64
	Rec      float64
}

func (d Dist) playProb() float64 {
	if d.PlayProb == 0 {
		return 1
	}
	return d.PlayProb
}

// Source is a calculator of weekly scoring distributions.
type Source interface {
	// Weekly returns the weekly distribution for a player, and whether the
	// source knows the player at all.
	Weekly(p *player.Player) (Dist, bool)
}

// Baseline supplies replacement-level weekly value per position: what a
// freely available waiver player scores. Valuations are measured against it.
type Baseline interface {
	Replacement(pos player.Position) float64
}
