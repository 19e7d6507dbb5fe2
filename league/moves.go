package league

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/gridironlab/dynasty/player"
)

// Move is a roster transaction that can be applied to a league on behalf of
// a team. Moves are what the simulator evaluates: each candidate scenario is
// a bundle of moves applied to a league copy before the seasons are run.
type Move interface {
	Apply(lg *League, team int) error
	String() string
}

// AddDrop is a waiver-style transaction: drop one of ours, add a free agent.
type AddDrop struct {
	Add  *player.Player
	Drop string // player ID; empty if roster space exists
}

func (m *AddDrop) Apply(lg *League, team int) error {
	r := lg.Teams[team].Roster
	if m.Drop != "" {
		if err := r.DropPlayer(m.Drop); err != nil {
			return fmt.Errorf("add/drop: %w", err)
		}
	}
	if err := r.AddPlayer(m.Add, lg.Rules); err != nil {
		return fmt.Errorf("add/drop: %w", err)
	}
	return nil
}

func (m *AddDrop) String() string {
	if m.Drop == "" {
		return fmt.Sprintf("add %s", m.Add.Name)
	}
	return fmt.Sprintf("add %s, drop %s", m.Add.Name, m.Drop)
}

// Trade swaps players and picks with another team in the league.
type Trade struct {
	With         int // counterparty team index
	Give         []string
	Receive      []string
	GivePicks    []DraftPick
	ReceivePicks []DraftPick
}

func (m *Trade) Apply(lg *League, team int) error {
	if m.With == team {
		return fmt.Errorf("trade: cannot trade with yourself")
	}
	if m.With < 0 || m.With >= len(lg.Teams) {
		return fmt.Errorf("trade: no team at index %d", m.With)
	}
	mine := lg.Teams[team].Roster
	theirs := lg.Teams[m.With].Roster

	if err := transferPlayers(mine, theirs, m.Give, lg.Rules); err != nil {
		return fmt.Errorf("trade (outgoing): %w", err)
	}
	if err := transferPlayers(theirs, mine, m.Receive, lg.Rules); err != nil {
		return fmt.Errorf("trade (incoming): %w", err)
	}
	for _, p := range m.GivePicks {
		if err := mine.RemovePick(p); err != nil {
			return fmt.Errorf("trade (outgoing pick): %w", err)
		}
		theirs.AddPick(p)
	}
	for _, p := range m.ReceivePicks {
		if err := theirs.RemovePick(p); err != nil {
			return fmt.Errorf("trade (incoming pick): %w", err)
		}
		mine.AddPick(p)
	}
	return nil
}

func transferPlayers(from, to *Roster, ids []string, rules RosterRules) error {
	for _, id := range ids {
		p, err := from.takePlayer(id)
		if err != nil {
			return fmt.Errorf("player %s: %w", id, err)
		}
		// Trades may not overflow the receiving roster.
		if err := to.AddPlayer(p, rules); err != nil {
			return fmt.Errorf("player %s: %w", id, err)
		}
	}
	return nil
}

func (m *Trade) String() string {
	parts := []string{}
	if len(m.Give) > 0 || len(m.GivePicks) > 0 {
		gives := append(lo.Map(m.GivePicks, func(p DraftPick, _ int) string { return p.String() }), m.Give...)
		parts = append(parts, "give "+strings.Join(gives, ", "))
	}
	if len(m.Receive) > 0 || len(m.ReceivePicks) > 0 {
		gets := append(lo.Map(m.ReceivePicks, func(p DraftPick, _ int) string { return p.String() }), m.Receive...)
		parts = append(parts, "get "+strings.Join(gets, ", "))
	}
	return strings.Join(parts, "; ")
}
