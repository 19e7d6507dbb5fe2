// Package player defines the player universe that leagues, projections, and
// valuations all operate on.
package player

import (
	"fmt"
	"sort"
	"strings"
)

// Position is an NFL fantasy position.
type Position int

const (
	UnknownPosition Position = iota
	QB
	RB
	WR
	TE
	K
	DST
)

var positionNames = map[Position]string{
	QB:  "QB",
	RB:  "RB",
	WR:  "WR",
	TE:  "TE",
	K:   "K",
	DST: "DST",
}

func (p Position) String() string {
	if n, ok := positionNames[p]; ok {
		return n
	}
	return "??"
}

// Premium reports whether this is a premium dynasty position, i.e. one where
// startable production is scarce enough to drive roster construction.
func (p Position) Premium() bool {
	return p == QB || p == RB || p == WR || p == TE
}

func ParsePosition(s string) (Position, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "QB":
		return QB, nil
	case "RB":
		return RB, nil
	case "WR":
		return WR, nil
	case "TE":
		return TE, nil
	case "K", "PK":
		return K, nil
	case "DST", "DEF", "D/ST":
		return DST, nil
	}
	return UnknownPosition, fmt.Errorf("unknown position %q", s)
}

// Player is a single NFL player. ADP and MarketValue come from whatever
// consensus source was loaded; zero means unranked.
type Player struct {
	ID          string
	Name        string
	Team        string
	Pos         Position
	Age         float64
	Experience  int
	ADP         float64
	MarketValue float64
}

func (p *Player) String() string {
	return fmt.Sprintf("%s (%s %s, %.1fy)", p.Name, p.Team, p.Pos, p.Age)
}

// TaxiEligible is the common dynasty rule: only first- and second-year
// players may be stashed on a taxi squad.
func (p *Player) TaxiEligible() bool {
	return p.Experience <= 1
}

// Pool is the player universe, keyed by ID. It is immutable after creation
// so it can be shared freely between simulation threads.
type Pool struct {
	byID    map[string]*Player
	ordered []*Player
}

func NewPool(players []*Player) (*Pool, error) {
	pool := &Pool{byID: make(map[string]*Player, len(players))}
	for _, p := range players {
		if p.ID == "" {
			return nil, fmt.Errorf("player %q has no ID", p.Name)
		}
		if _, ok := pool.byID[p.ID]; ok {
			return nil, fmt.Errorf("duplicate player ID %q", p.ID)
		}
		pool.byID[p.ID] = p
		pool.ordered = append(pool.ordered, p)
	}
	sort.Slice(pool.ordered, func(i, j int) bool {
		// Unranked players sink to the bottom.
		ai, aj := pool.ordered[i].ADP, pool.ordered[j].ADP
		if ai == 0 {
			ai = 1e9
		}
		if aj == 0 {
			aj = 1e9
		}
		return ai < aj
	})
	return pool, nil
}

func (pl *Pool) Get(id string) (*Player, bool) {
	p, ok := pl.byID[id]
	return p, ok
}

func (pl *Pool) MustGet(id string) *Player {
	p, ok := pl.byID[id]
	if !ok {
		panic("player not in pool: " + id)
	}
	return p
}

func (pl *Pool) Len() int {
	return len(pl.ordered)
}

// ByADP returns all players in consensus draft order.
func (pl *Pool) ByADP() []*Player {
	out := make([]*Player, len(pl.ordered))
	copy(out, pl.ordered)
	return out
}

// ByPosition returns players at pos in consensus draft order.
func (pl *Pool) ByPosition(pos Position) []*Player {
	var out []*Player
	for _, p := range pl.ordered {
		if p.Pos == pos {
			out = append(out, p)
		}
	}
	return out
}
