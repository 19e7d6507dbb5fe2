package player

import (
	"testing"

	"github.com/matryer/is"
)

func TestParsePosition(t *testing.T) {
	is := is.New(t)
	type tc struct {
		in   string
		want Position
		ok   bool
	}
	cases := []tc{
		{"QB", QB, true},
		{"rb", RB, true},
		{" wr ", WR, true},
		{"D/ST", DST, true},
		{"PK", K, true},
		{"LB", UnknownPosition, false},
	}
	for _, c := range cases {
		got, err := ParsePosition(c.in)
		is.Equal(got, c.want)
		is.Equal(err == nil, c.ok)
	}
}

func TestPoolOrdering(t *testing.T) {
	is := is.New(t)
	pool, err := NewPool([]*Player{
		{ID: "3", Name: "Unranked Guy", Pos: WR},
		{ID: "1", Name: "Stud", Pos: RB, ADP: 1.2},
		{ID: "2", Name: "Solid", Pos: RB, ADP: 14.7},
	})
	is.NoErr(err)
	byADP := pool.ByADP()
	is.Equal(byADP[0].ID, "1")
	is.Equal(byADP[1].ID, "2")
	is.Equal(byADP[2].ID, "3")

	rbs := pool.ByPosition(RB)
	is.Equal(len(rbs), 2)
	is.Equal(rbs[0].Name, "Stud")
}

func TestPoolDuplicates(t *testing.T) {
	is := is.New(t)
	_, err := NewPool([]*Player{{ID: "1"}, {ID: "1"}})
	is.True(err != nil)
}

func TestTaxiEligible(t *testing.T) {
	is := is.New(t)
	is.True((&Player{Experience: 0}).TaxiEligible())
	is.True((&Player{Experience: 1}).TaxiEligible())
	is.True(!(&Player{Experience: 2}).TaxiEligible())
}
