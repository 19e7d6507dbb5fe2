// Package stats renders post-sim reports from the simmer's captured
// iteration outcomes: win-total and points histograms, and championship
// counts by team.
package stats

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/rs/zerolog/log"

	"github.com/gridironlab/dynasty/montecarlo"
)

type SimStats struct {
	simmer *montecarlo.Simmer
}

func NewSimStats(simmer *montecarlo.Simmer) *SimStats {
	return &SimStats{simmer: simmer}
}

// scenarioValues extracts one numeric series for a scenario from the
// captured outcome log.
func (ss *SimStats) scenarioValues(scenario string, extract func(montecarlo.LogScenario) float64) ([]float64, error) {
	iters, err := ss.simmer.ReadOutcomes()
	if err != nil {
		return nil, err
	}
	log.Debug().Msgf("Read %d log lines", len(iters))
	var vals []float64
	for i := range iters {
		for j := range iters[i].Scenarios {
			if !strings.EqualFold(iters[i].Scenarios[j].Name, scenario) {
				continue
			}
			vals = append(vals, extract(iters[i].Scenarios[j]))
		}
	}
	if len(vals) == 0 {
		return nil, fmt.Errorf("no outcomes captured for scenario %q", scenario)
	}
	return vals, nil
}

// WinHistogram renders the win-total distribution for a scenario.
func (ss *SimStats) WinHistogram(scenario string) (string, error) {
	vals, err := ss.scenarioValues(scenario, func(l montecarlo.LogScenario) float64 {
		return float64(l.Wins)
	})
	if err != nil {
		return "", err
	}
	return renderHistogram(vals, intBins(vals))
}

// PointsHistogram renders the total points-for distribution for a scenario.
func (ss *SimStats) PointsHistogram(scenario string) (string, error) {
	vals, err := ss.scenarioValues(scenario, func(l montecarlo.LogScenario) float64 {
		return l.PointsFor
	})
	if err != nil {
		return "", err
	}
	return renderHistogram(vals, 15)
}

// ChampionCounts tallies who won the title across iterations for a scenario,
// most frequent first.
func (ss *SimStats) ChampionCounts(scenario string) (string, error) {
	iters, err := ss.simmer.ReadOutcomes()
	if err != nil {
		return "", err
	}
	counts := map[string]int{}
	total := 0
	for i := range iters {
		for j := range iters[i].Scenarios {
			l := iters[i].Scenarios[j]
			if !strings.EqualFold(l.Name, scenario) || l.Champion == "" {
				continue
			}
			counts[l.Champion]++
			total++
		}
	}
	if total == 0 {
		return "", errors.New("no championship outcomes captured")
	}
	type entry struct {
		name string
		ct   int
	}
	var entries []entry
	for n, c := range counts {
		entries = append(entries, entry{n, c})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ct > entries[j].ct })

	var sb strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&sb, "%-24s%6d  (%.1f%%)\n", e.name, e.ct, 100*float64(e.ct)/float64(total))
	}
	return sb.String(), nil
}

func intBins(vals []float64) int {
	lo, hi := vals[0], vals[0]
	for _, v := range vals {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	bins := int(hi-lo) + 1
	if bins < 1 {
		bins = 1
	}
	return bins
}

func renderHistogram(vals []float64, bins int) (string, error) {
	hist := histogram.Hist(bins, vals)
	var sb strings.Builder
	if err := histogram.Fprint(&sb, hist, histogram.Linear(40)); err != nil {
		return "", err
	}
	return sb.String(), nil
}
