package cluster

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gridironlab/dynasty/player"
	"github.com/gridironlab/dynasty/valuation"
)

// Tier is one value tier of players at a position, best tier first.
type Tier struct {
	Rank    int // 1 = top tier
	Players []*player.Player
	// Centroid is the tier's mean value.
	Centroid float64
}

// TierPosition clusters the players at one position on their calculated
// value and returns tiers ordered best to worst. Players inside a tier are
// sorted by value descending.
func TierPosition(pool *player.Pool, pos player.Position, k int,
	calc valuation.Calculator, seed uint64) ([]Tier, error) {

	players := pool.ByPosition(pos)
	if len(players) == 0 {
		return nil, fmt.Errorf("no players at %s", pos)
	}
	if k > len(players) {
		k = len(players)
	}

	points := make([][]float64, len(players))
	for i, p := range players {
		points[i] = []float64{calc.Value(p)}
	}
	res, err := KMeans(points, k, seed)
	if err != nil {
		return nil, err
	}

	order := rankCentroids(res.Centroids)
	rankOf := make(map[int]int, len(order)) // cluster index -> tier rank
	tiers := make([]Tier, len(order))
	for rank, c := range order {
		rankOf[c] = rank
		tiers[rank] = Tier{Rank: rank + 1, Centroid: res.Centroids[c][0]}
	}
	for i, p := range players {
		r := rankOf[res.Assignment[i]]
		tiers[r].Players = append(tiers[r].Players, p)
	}
	for i := range tiers {
		t := tiers[i]
		sort.Slice(t.Players, func(a, b int) bool {
			return calc.Value(t.Players[a]) > calc.Value(t.Players[b])
		})
	}
	// Drop tiers that ended up empty after reseeding.
	out := tiers[:0]
	for _, t := range tiers {
		if len(t.Players) > 0 {
			out = append(out, t)
		}
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out, nil
}

// FormatTiers renders tiers for the shell.
func FormatTiers(tiers []Tier, calc valuation.Calculator) string {
	var sb strings.Builder
	for _, t := range tiers {
		fmt.Fprintf(&sb, "Tier %d (centroid %.0f)\n", t.Rank, t.Centroid)
		for _, p := range t.Players {
			fmt.Fprintf(&sb, "  %-24s %s  age %.1f  value %.0f\n",
				p.Name, p.Pos, p.Age, calc.Value(p))
		}
	}
	return sb.String()
}
