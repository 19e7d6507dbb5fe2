package projection

import (
	"github.com/gridironlab/dynasty/league"
	"github.com/gridironlab/dynasty/player"
)

// Projections are published against a full-PPR baseline.
const pprBaseline = 1.0

// Rescored re-baselines a source's means to the league's actual reception
// weighting. Each reception is worth (PPR - baseline) relative to the
// published numbers, plus the TE premium for tight ends. Players with no
// reception volume (or no rec data) pass through unchanged.
type Rescored struct {
	src     Source
	scoring league.ScoringSettings
}

func NewRescored(src Source, scoring league.ScoringSettings) *Rescored {
	return &Rescored{src: src, scoring: scoring}
}

func (r *Rescored) Weekly(p *player.Player) (Dist, bool) {
	d, ok := r.src.Weekly(p)
	if !ok {
		return Dist{}, false
	}
	delta := (r.scoring.PPR - pprBaseline) * d.Rec
	if p.Pos == player.TE {
		delta += r.scoring.TEPremium * d.Rec
	}
	d.Mean += delta
	if d.Mean < 0 {
		d.Mean = 0
	}
	return d, true
}
