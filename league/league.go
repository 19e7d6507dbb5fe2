package league

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Team is one franchise in the league.
type Team struct {
	ID     uuid.UUID
	Name   string
	Roster *Roster
}

// League is the full league state. Copy it before mutating from multiple
// goroutines; the struct itself is not synchronized.
type League struct {
	Teams        []*Team
	Scoring      ScoringSettings
	Rules        RosterRules
	Schedule     *Schedule
	CurrentWeek  int // zero-indexed; the next unplayed regular-season week
	PlayoffTeams int
	// Records carries already-played results when analyzing mid-season;
	// empty for a fresh season. Indexed by team.
	Records []Record
}

func NewLeague(teamNames []string, scoring ScoringSettings, rules RosterRules,
	regularWeeks, playoffTeams int) (*League, error) {

	if playoffTeams < 2 || playoffTeams > len(teamNames) {
		return nil, fmt.Errorf("playoff team count %d out of range", playoffTeams)
	}
	sched, err := NewRoundRobinSchedule(len(teamNames), regularWeeks)
	if err != nil {
		return nil, err
	}
	lg := &League{
		Scoring:      scoring,
		Rules:        rules,
		Schedule:     sched,
		PlayoffTeams: playoffTeams,
	}
	for _, name := range teamNames {
		lg.Teams = append(lg.Teams, &Team{
			ID:     uuid.New(),
			Name:   name,
			Roster: &Roster{},
		})
	}
	return lg, nil
}

// Copy deep-copies the league. Rosters are copied; the schedule and player
// structs are shared since they are never mutated during a sim.
func (lg *League) Copy() *League {
	nl := &League{
		Scoring:      lg.Scoring,
		Rules:        lg.Rules,
		Schedule:     lg.Schedule,
		CurrentWeek:  lg.CurrentWeek,
		PlayoffTeams: lg.PlayoffTeams,
	}
	if len(lg.Records) > 0 {
		nl.Records = make([]Record, len(lg.Records))
		copy(nl.Records, lg.Records)
	}
	for _, t := range lg.Teams {
		nl.Teams = append(nl.Teams, &Team{
			ID:     t.ID,
			Name:   t.Name,
			Roster: t.Roster.Copy(),
		})
	}
	return nl
}

// TeamIndex finds a team by (case-insensitive) name.
func (lg *League) TeamIndex(name string) (int, error) {
	for i, t := range lg.Teams {
		if strings.EqualFold(t.Name, name) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("no team named %q", name)
}

// RemainingWeeks is the count of unplayed regular-season weeks.
func (lg *League) RemainingWeeks() int {
	return lg.Schedule.RegularSeasonWeeks - lg.CurrentWeek
}

// Record is one team's regular-season results.
type Record struct {
	Team      int
	Wins      int
	Losses    int
	Ties      int
	PointsFor float64
}

// SortRecords orders records into standings: wins first, total points-for as
// the tiebreak (the standard fantasy tiebreaker).
func SortRecords(records []Record) []Record {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Wins != sorted[j].Wins {
			return sorted[i].Wins > sorted[j].Wins
		}
		return sorted[i].PointsFor > sorted[j].PointsFor
	})
	return sorted
}

// PlayoffSeeds returns the team indexes of the top n finishers, best first.
func PlayoffSeeds(records []Record, n int) []int {
	sorted := SortRecords(records)
	if n > len(sorted) {
		n = len(sorted)
	}
	seeds := make([]int, n)
	for i := 0; i < n; i++ {
		seeds[i] = sorted[i].Team
	}
	return seeds
}
