package projection

import "github.com/gridironlab/dynasty/player"

// StaticBaseline is a fixed replacement-level table.
type StaticBaseline struct {
	levels map[player.Position]float64
}

func NewStaticBaseline(levels map[player.Position]float64) *StaticBaseline {
	return &StaticBaseline{levels: levels}
}

// DefaultBaseline approximates waiver-wire weekly output in a 12-team PPR
// league.
func DefaultBaseline() *StaticBaseline {
	return NewStaticBaseline(map[player.Position]float64{
		player.QB:  14.0,
		player.RB:  6.5,
		player.WR:  7.0,
		player.TE:  4.5,
		player.K:   7.0,
		player.DST: 5.5,
	})
}

func (b *StaticBaseline) Replacement(pos player.Position) float64 {
	return b.levels[pos]
}
