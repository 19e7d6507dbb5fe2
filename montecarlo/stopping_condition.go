package montecarlo

import (
	"github.com/rs/zerolog/log"

	"github.com/gridironlab/dynasty/stats"
)

// StoppingCondition determines the confidence level at which trailing
// scenarios are cut off and the sim ends early.
type StoppingCondition int

const (
	StopNone StoppingCondition = iota
	Stop95
	Stop98
	Stop99
)

const (
	// DefaultIterationsCutoff bounds a sim even when nothing separates.
	DefaultIterationsCutoff = 25000
	// DefaultCheckInterval is how many iterations pass between stopping
	// condition checks.
	DefaultCheckInterval = 128
	// MinIterationsBeforeStop avoids cutting scenarios off on noise.
	MinIterationsBeforeStop = 512
)

type AutoStopper struct {
	stoppingCondition          StoppingCondition
	iterationsCutoff           int
	stopConditionCheckInterval uint64
	minIterations              int
}

func newAutostopper() *AutoStopper {
	return &AutoStopper{
		stoppingCondition:          StopNone,
		iterationsCutoff:           DefaultIterationsCutoff,
		stopConditionCheckInterval: DefaultCheckInterval,
		minIterations:              MinIterationsBeforeStop,
	}
}

func (a *AutoStopper) reset() {}

// shouldStop uses the running stats to decide when to stop simming. It also
// marks scenarios whose confidence interval has fallen hopelessly behind the
// leader as ignorable, so later iterations skip them.
func (a *AutoStopper) shouldStop(iterationCount uint64, scenarios *SimmedScenarios) bool {
	scenarios.RLock()
	c := make([]*SimmedScenario, len(scenarios.scenarios))
	copy(c, scenarios.scenarios)
	scenarios.RUnlock()

	if len(c) < 2 {
		return true
	}
	if int(iterationCount) > a.iterationsCutoff {
		return true
	}
	if int(iterationCount) < a.minIterations {
		return false
	}

	var z float64
	switch a.stoppingCondition {
	case Stop95:
		z = stats.Z95
	case Stop98:
		z = stats.Z98
	case Stop99:
		z = stats.Z99
	default:
		return false
	}

	// Find the tentative leader: best title probability, win mean as the
	// tiebreak.
	leader := c[0]
	for _, sp := range c[1:] {
		if better(sp, leader) {
			leader = sp
		}
	}

	leader.RLock()
	μ := leader.titleStats.Mean()
	e := z * leader.titleStats.StandardError()
	μw := leader.winStats.Mean()
	ew := z * leader.winStats.StandardError()
	leader.RUnlock()

	ignored := 0
	newIgnored := 0
	for _, sp := range c {
		if sp == leader {
			continue
		}
		sp.RLock()
		alreadyIgnored := sp.ignore
		μi := sp.titleStats.Mean()
		ei := z * sp.titleStats.StandardError()
		μwi := sp.winStats.Mean()
		ewi := z * sp.winStats.StandardError()
		unignorable := sp.unignorable
		sp.RUnlock()
		if alreadyIgnored {
			ignored++
			continue
		}
		if unignorable {
			continue
		}
		separated := passTest(μ, e, μi, ei)
		if stats.FuzzyEqual(μ, μi) {
			// Both title probabilities are effectively identical (often both
			// zero for a rebuilding team); separate on win totals instead.
			separated = passTest(μw, ew, μwi, ewi)
		}
		if separated {
			sp.Ignore()
			newIgnored++
		}
	}
	if newIgnored > 0 {
		log.Debug().Int("newIgnored", newIgnored).Msg("sim-cut-off")
	}
	// Stop when only the leader remains unignored.
	return ignored+newIgnored >= len(c)-1
}

func better(a, b *SimmedScenario) bool {
	a.RLock()
	ta, wa := a.titleStats.Mean(), a.winStats.Mean()
	a.RUnlock()
	b.RLock()
	tb, wb := b.titleStats.Mean(), b.winStats.Mean()
	b.RUnlock()
	if stats.FuzzyEqual(ta, tb) {
		return wa > wb
	}
	return ta > tb
}

// passTest: determine if a random variable X > Y with the given confidence
// level; return true if X > Y.
func passTest(μ, e, μi, ei float64) bool {
	// X > Y if (μ - e) > (μi + ei)
	return (μ - e) > (μi + ei)
}
