package league

import (
	"testing"

	"github.com/matryer/is"
)

func TestRoundRobinEveryTeamPlaysEveryWeek(t *testing.T) {
	is := is.New(t)
	for _, numTeams := range []int{4, 8, 10, 12} {
		sched, err := NewRoundRobinSchedule(numTeams, 14)
		is.NoErr(err)
		is.Equal(len(sched.Weeks), 14)
		for _, week := range sched.Weeks {
			is.Equal(len(week), numTeams/2)
			seen := map[int]bool{}
			for _, m := range week {
				is.True(m.Home != m.Away)
				is.True(!seen[m.Home])
				is.True(!seen[m.Away])
				seen[m.Home] = true
				seen[m.Away] = true
			}
			is.Equal(len(seen), numTeams)
		}
	}
}

func TestRoundRobinBalanced(t *testing.T) {
	is := is.New(t)
	// One full round robin of a 6-team league is 5 weeks; every pair should
	// meet exactly once.
	sched, err := NewRoundRobinSchedule(6, 5)
	is.NoErr(err)
	pairs := map[[2]int]int{}
	for _, week := range sched.Weeks {
		for _, m := range week {
			a, b := m.Home, m.Away
			if a > b {
				a, b = b, a
			}
			pairs[[2]int{a, b}]++
		}
	}
	is.Equal(len(pairs), 15)
	for _, ct := range pairs {
		is.Equal(ct, 1)
	}
}

func TestScheduleValidation(t *testing.T) {
	is := is.New(t)
	_, err := NewRoundRobinSchedule(5, 14)
	is.True(err != nil)
	_, err = NewRoundRobinSchedule(2, 14)
	is.True(err != nil)
	_, err = NewRoundRobinSchedule(8, 0)
	is.True(err != nil)
}
