package league

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/gridironlab/dynasty/player"
)

var (
	ErrNotOnRoster    = errors.New("player is not on this roster")
	ErrRosterFull     = errors.New("active roster is full")
	ErrTaxiFull       = errors.New("taxi squad is full")
	ErrTaxiIneligible = errors.New("player is not taxi eligible")
	ErrAlreadyOwned   = errors.New("player is already on this roster")
	ErrPickNotOwned   = errors.New("pick is not owned by this roster")
)

// DraftPick is a tradeable future rookie pick.
type DraftPick struct {
	Season        int
	Round         int
	OriginalOwner uuid.UUID
}

func (d DraftPick) String() string {
	return fmt.Sprintf("%d round %d", d.Season, d.Round)
}

// Roster holds a team's players and pick assets. Taxi players never count
// against the active cap and never start.
type Roster struct {
	Active []*player.Player
	Taxi   []*player.Player
	IR     []*player.Player
	Picks  []DraftPick
}

func (r *Roster) Copy() *Roster {
	// Player structs are shared (the pool is immutable); only the slices
	// themselves need copying.
	nr := &Roster{
		Active: make([]*player.Player, len(r.Active)),
		Taxi:   make([]*player.Player, len(r.Taxi)),
		IR:     make([]*player.Player, len(r.IR)),
		Picks:  make([]DraftPick, len(r.Picks)),
	}
	copy(nr.Active, r.Active)
	copy(nr.Taxi, r.Taxi)
	copy(nr.IR, r.IR)
	copy(nr.Picks, r.Picks)
	return nr
}

func (r *Roster) Has(id string) bool {
	find := func(p *player.Player) bool { return p.ID == id }
	return lo.ContainsBy(r.Active, find) || lo.ContainsBy(r.Taxi, find) ||
		lo.ContainsBy(r.IR, find)
}

func (r *Roster) AddPlayer(p *player.Player, rules RosterRules) error {
	if r.Has(p.ID) {
		return ErrAlreadyOwned
	}
	if len(r.Active) >= rules.MaxActive() {
		return ErrRosterFull
	}
	r.Active = append(r.Active, p)
	return nil
}

func (r *Roster) DropPlayer(id string) error {
	for i, p := range r.Active {
		if p.ID == id {
			r.Active = append(r.Active[:i], r.Active[i+1:]...)
			return nil
		}
	}
	for i, p := range r.Taxi {
		if p.ID == id {
			r.Taxi = append(r.Taxi[:i], r.Taxi[i+1:]...)
			return nil
		}
	}
	return ErrNotOnRoster
}

// DemoteToTaxi stashes a developmental player. Only works for players within
// the taxi eligibility window.
func (r *Roster) DemoteToTaxi(id string, rules RosterRules) error {
	for i, p := range r.Active {
		if p.ID != id {
			continue
		}
		if !p.TaxiEligible() {
			return ErrTaxiIneligible
		}
		if len(r.Taxi) >= rules.Taxi {
			return ErrTaxiFull
		}
		r.Active = append(r.Active[:i], r.Active[i+1:]...)
		r.Taxi = append(r.Taxi, p)
		return nil
	}
	return ErrNotOnRoster
}

func (r *Roster) PromoteFromTaxi(id string, rules RosterRules) error {
	for i, p := range r.Taxi {
		if p.ID != id {
			continue
		}
		if len(r.Active) >= rules.MaxActive() {
			return ErrRosterFull
		}
		r.Taxi = append(r.Taxi[:i], r.Taxi[i+1:]...)
		r.Active = append(r.Active, p)
		return nil
	}
	return ErrNotOnRoster
}

func (r *Roster) AddPick(p DraftPick) {
	r.Picks = append(r.Picks, p)
}

func (r *Roster) RemovePick(p DraftPick) error {
	for i, owned := range r.Picks {
		if owned == p {
			r.Picks = append(r.Picks[:i], r.Picks[i+1:]...)
			return nil
		}
	}
	return ErrPickNotOwned
}

// takePlayer removes and returns a player from anywhere on the roster.
func (r *Roster) takePlayer(id string) (*player.Player, error) {
	lists := []*[]*player.Player{&r.Active, &r.Taxi, &r.IR}
	for _, list := range lists {
		for i, p := range *list {
			if p.ID == id {
				*list = append((*list)[:i], (*list)[i+1:]...)
				return p, nil
			}
		}
	}
	return nil, ErrNotOnRoster
}

// Lineup is a resolved set of starters.
type Lineup struct {
	Starters []*player.Player
}

// OptimalLineup fills the starting slots greedily by value. The value
// function is typically a projection mean; lineups are set on expectation,
// not with hindsight of sampled outcomes.
func (r *Roster) OptimalLineup(rules RosterRules, value func(*player.Player) float64) Lineup {
	avail := make([]*player.Player, len(r.Active))
	copy(avail, r.Active)
	sort.SliceStable(avail, func(i, j int) bool {
		return value(avail[i]) > value(avail[j])
	})

	var starters []*player.Player
	used := map[string]bool{}

	fill := func(n int, eligible func(player.Position) bool) {
		for _, p := range avail {
			if n == 0 {
				return
			}
			if used[p.ID] || !eligible(p.Pos) {
				continue
			}
			used[p.ID] = true
			starters = append(starters, p)
			n--
		}
	}

	fill(rules.SlotQB, func(pos player.Position) bool { return pos == player.QB })
	fill(rules.SlotRB, func(pos player.Position) bool { return pos == player.RB })
	fill(rules.SlotWR, func(pos player.Position) bool { return pos == player.WR })
	fill(rules.SlotTE, func(pos player.Position) bool { return pos == player.TE })
	fill(rules.SlotFlex, func(pos player.Position) bool {
		return pos == player.RB || pos == player.WR || pos == player.TE
	})
	fill(rules.SlotSuperflex, func(pos player.Position) bool {
		return pos == player.QB || pos == player.RB || pos == player.WR || pos == player.TE
	})

	return Lineup{Starters: starters}
}
