package league

import "fmt"

// Matchup is one head-to-head game in a week. Home/Away are team indexes.
type Matchup struct {
	Home int
	Away int
}

// Schedule is the full season: regular-season weeks of matchups, followed by
// however many playoff weeks the bracket needs.
type Schedule struct {
	Weeks              [][]Matchup
	RegularSeasonWeeks int
}

// NewRoundRobinSchedule builds a regular season with the circle method,
// cycling through repeated round robins until the requested number of weeks
// is filled. Team count must be even so every team plays every week.
func NewRoundRobinSchedule(numTeams, weeks int) (*Schedule, error) {
	if numTeams < 4 || numTeams%2 != 0 {
		return nil, fmt.Errorf("need an even team count of at least 4, got %d", numTeams)
	}
	if weeks < 1 {
		return nil, fmt.Errorf("need at least one week, got %d", weeks)
	}

	// Circle method: fix team 0, rotate the rest.
	rotation := make([]int, numTeams-1)
	for i := range rotation {
		rotation[i] = i + 1
	}

	sched := &Schedule{RegularSeasonWeeks: weeks}
	for w := 0; w < weeks; w++ {
		var matchups []Matchup
		matchups = append(matchups, Matchup{Home: 0, Away: rotation[0]})
		for i := 1; i < numTeams/2; i++ {
			matchups = append(matchups, Matchup{
				Home: rotation[i],
				Away: rotation[len(rotation)-i],
			})
		}
		sched.Weeks = append(sched.Weeks, matchups)

		// rotate
		last := rotation[len(rotation)-1]
		copy(rotation[1:], rotation[:len(rotation)-1])
		rotation[0] = last
	}
	return sched, nil
}

// WeekMatchups returns the matchups for a zero-indexed regular season week.
func (s *Schedule) WeekMatchups(week int) ([]Matchup, error) {
	if week < 0 || week >= len(s.Weeks) {
		return nil, fmt.Errorf("week %d out of range", week)
	}
	return s.Weeks[week], nil
}
