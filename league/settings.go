// Package league models a dynasty fantasy football league: teams, rosters,
// taxi squads, draft picks, the weekly schedule, standings, and the playoff
// bracket. A League can be deep-copied so each simulation thread gets its
// own mutable copy.
package league

import "fmt"

// ScoringSettings describe how raw production turns into fantasy points.
// Projections are loaded against a full-PPR baseline; the reception values
// here re-baseline their means (see projection.Rescored).
type ScoringSettings struct {
	Name      string
	PPR       float64 // points per reception
	PassYd    float64 // points per passing yard
	PassTD    float64
	RushYd    float64
	RushTD    float64
	RecYd     float64
	RecTD     float64
	TEPremium float64 // extra points per TE reception
	Superflex bool
}

func Standard() ScoringSettings {
	return ScoringSettings{
		Name:   "standard",
		PPR:    0,
		PassYd: 0.04, PassTD: 4,
		RushYd: 0.1, RushTD: 6,
		RecYd: 0.1, RecTD: 6,
	}
}

func HalfPPR() ScoringSettings {
	s := Standard()
	s.Name = "half-ppr"
	s.PPR = 0.5
	return s
}

func PPR() ScoringSettings {
	s := Standard()
	s.Name = "ppr"
	s.PPR = 1
	return s
}

// SuperflexTEP is the deep-league format that dominates the dynasty market:
// full PPR, an extra QB-capable flex, and a tight-end reception premium.
func SuperflexTEP() ScoringSettings {
	s := PPR()
	s.Name = "superflex-tep"
	s.Superflex = true
	s.TEPremium = 0.5
	return s
}

func ParseScoring(name string) (ScoringSettings, error) {
	switch name {
	case "standard":
		return Standard(), nil
	case "half-ppr":
		return HalfPPR(), nil
	case "ppr":
		return PPR(), nil
	case "superflex-tep":
		return SuperflexTEP(), nil
	}
	return ScoringSettings{}, fmt.Errorf("unknown scoring preset %q", name)
}

// RosterRules describe lineup slots and roster limits.
type RosterRules struct {
	SlotQB        int
	SlotRB        int
	SlotWR        int
	SlotTE        int
	SlotFlex      int // RB/WR/TE
	SlotSuperflex int // QB/RB/WR/TE
	Bench         int
	Taxi          int
	IR            int
}

func DefaultRules() RosterRules {
	return RosterRules{
		SlotQB: 1, SlotRB: 2, SlotWR: 3, SlotTE: 1,
		SlotFlex: 1, SlotSuperflex: 0,
		Bench: 15, Taxi: 4, IR: 2,
	}
}

func SuperflexRules() RosterRules {
	r := DefaultRules()
	r.SlotSuperflex = 1
	return r
}

// Starters returns the number of starting lineup slots.
func (r RosterRules) Starters() int {
	return r.SlotQB + r.SlotRB + r.SlotWR + r.SlotTE + r.SlotFlex + r.SlotSuperflex
}

// MaxActive is the active roster cap (starters plus bench).
func (r RosterRules) MaxActive() int {
	return r.Starters() + r.Bench
}
