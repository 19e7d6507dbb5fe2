package valuation

import (
	"github.com/samber/lo"

	"github.com/gridironlab/dynasty/league"
	"github.com/gridironlab/dynasty/player"
	"github.com/gridironlab/dynasty/projection"
)

// Window is a team's contention timeline.
type Window int

const (
	Rebuild Window = iota
	Retool
	Contend
)

func (w Window) String() string {
	switch w {
	case Rebuild:
		return "rebuild"
	case Retool:
		return "retool"
	case Contend:
		return "contend"
	}
	return "unknown"
}

// ClassifyWindow decides whether a roster should be buying or selling, from
// two signals: value-weighted age at the premium positions, and projected
// weekly starter output. Old and productive means contend; young and cheap
// means the rebuild is on schedule; everything else is a retool.
func ClassifyWindow(r *league.Roster, rules league.RosterRules,
	src projection.Source, calc Calculator) Window {

	premium := lo.Filter(r.Active, func(p *player.Player, _ int) bool {
		return p.Pos.Premium()
	})
	if len(premium) == 0 {
		return Rebuild
	}

	totalValue := lo.SumBy(premium, func(p *player.Player) float64 { return calc.Value(p) })
	weightedAge := 0.0
	if totalValue > 0 {
		for _, p := range premium {
			weightedAge += p.Age * (calc.Value(p) / totalValue)
		}
	} else {
		weightedAge = lo.SumBy(premium, func(p *player.Player) float64 { return p.Age }) /
			float64(len(premium))
	}

	lineup := r.OptimalLineup(rules, func(p *player.Player) float64 {
		d, ok := src.Weekly(p)
		if !ok {
			return 0
		}
		return d.Mean
	})
	starterPoints := 0.0
	for _, p := range lineup.Starters {
		if d, ok := src.Weekly(p); ok {
			starterPoints += d.Mean
		}
	}
	// Thresholds tuned against 12-team PPR weekly medians.
	perStarter := 0.0
	if len(lineup.Starters) > 0 {
		perStarter = starterPoints / float64(len(lineup.Starters))
	}

	switch {
	case perStarter >= 12.5:
		return Contend
	case perStarter >= 10.5 || weightedAge < 25.0:
		return Retool
	default:
		return Rebuild
	}
}
