package valuation

import (
	"math"

	"github.com/gridironlab/dynasty/league"
)

// PickValuer prices future rookie picks. Round bases follow the familiar
// dynasty shape (a mid first is roughly a top-20 player; fourths are
// throw-ins), future seasons are discounted, and there is an optional
// premium window right before the rookie draft when pick prices peak.
type PickValuer struct {
	RoundBase      map[int]float64
	SeasonDiscount float64 // multiplier per season of distance
	CurrentSeason  int
	RookieFever    bool // apply the pre-draft premium
	FeverPremium   float64
}

func NewPickValuer(currentSeason int) *PickValuer {
	return &PickValuer{
		RoundBase: map[int]float64{
			1: 5500,
			2: 2200,
			3: 900,
			4: 350,
		},
		SeasonDiscount: 0.85,
		CurrentSeason:  currentSeason,
		FeverPremium:   1.15,
	}
}

func (v *PickValuer) Value(pick league.DraftPick) float64 {
	base, ok := v.RoundBase[pick.Round]
	if !ok {
		// Rounds past the table decay geometrically from the last known.
		maxRound := 0
		for r := range v.RoundBase {
			if r > maxRound {
				maxRound = r
			}
		}
		base = v.RoundBase[maxRound] * math.Pow(0.4, float64(pick.Round-maxRound))
	}
	seasonsOut := pick.Season - v.CurrentSeason
	if seasonsOut < 0 {
		seasonsOut = 0
	}
	val := base * math.Pow(v.SeasonDiscount, float64(seasonsOut))
	if v.RookieFever && seasonsOut == 0 {
		val *= v.FeverPremium
	}
	return val
}
