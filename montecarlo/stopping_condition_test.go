package montecarlo

import (
	"testing"

	"github.com/matryer/is"
)

func simmedPair(leaderTitleRate, trailerTitleRate float64, n int) *SimmedScenarios {
	leader := &SimmedScenario{scenario: Scenario{Name: "leader"}}
	trailer := &SimmedScenario{scenario: Scenario{Name: "trailer"}}
	for i := 0; i < n; i++ {
		lt := 0.0
		if float64(i%100) < leaderTitleRate*100 {
			lt = 1.0
		}
		tt := 0.0
		if float64(i%100) < trailerTitleRate*100 {
			tt = 1.0
		}
		leader.titleStats.Push(lt)
		trailer.titleStats.Push(tt)
		leader.winStats.Push(8)
		trailer.winStats.Push(5)
	}
	return &SimmedScenarios{scenarios: []*SimmedScenario{leader, trailer}}
}

func TestShouldStopSeparated(t *testing.T) {
	is := is.New(t)
	a := newAutostopper()
	a.stoppingCondition = Stop95

	scenarios := simmedPair(0.6, 0.1, 2000)
	is.True(a.shouldStop(2000, scenarios))
	is.True(scenarios.scenarios[1].Ignored())
	is.True(!scenarios.scenarios[0].Ignored())
}

func TestShouldNotStopOverlapping(t *testing.T) {
	is := is.New(t)
	a := newAutostopper()
	a.stoppingCondition = Stop99

	// Close title rates on few iterations: the 99% intervals overlap, so
	// neither scenario can be cut off yet.
	scenarios := simmedPair(0.30, 0.29, 600)
	is.True(!a.shouldStop(600, scenarios))
}

func TestUnignorableScenarioNotCutOff(t *testing.T) {
	is := is.New(t)
	a := newAutostopper()
	a.stoppingCondition = Stop95

	// Same separation as TestShouldStopSeparated, but the trailer is
	// protected from pruning, so the sim must keep running it.
	scenarios := simmedPair(0.6, 0.1, 2000)
	scenarios.scenarios[1].unignorable = true
	is.True(!a.shouldStop(2000, scenarios))
	is.True(!scenarios.scenarios[1].Ignored())
}

func TestShouldStopViaWinTiebreak(t *testing.T) {
	is := is.New(t)
	a := newAutostopper()
	a.stoppingCondition = Stop95

	// Rebuilding team: both scenarios never win the title, but one clearly
	// wins more games.
	scenarios := simmedPair(0, 0, 2000)
	is.True(a.shouldStop(2000, scenarios))
}

func TestShouldStopRespectsMinIterations(t *testing.T) {
	is := is.New(t)
	a := newAutostopper()
	a.stoppingCondition = Stop95
	scenarios := simmedPair(0.9, 0.0, 100)
	is.True(!a.shouldStop(100, scenarios))
}

func TestShouldStopIterationCutoff(t *testing.T) {
	is := is.New(t)
	a := newAutostopper()
	a.stoppingCondition = Stop95
	a.iterationsCutoff = 1000
	scenarios := simmedPair(0.31, 0.30, 1500)
	is.True(a.shouldStop(1500, scenarios))
}

func TestStopNoneNeverStopsEarly(t *testing.T) {
	is := is.New(t)
	a := newAutostopper()
	scenarios := simmedPair(0.9, 0.0, 5000)
	is.True(!a.shouldStop(5000, scenarios))
}
