package montecarlo

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gridironlab/dynasty/league"
	"github.com/gridironlab/dynasty/stats"
)

// MaxPercentileSamples caps how many raw win-total samples we keep per
// scenario for percentile reporting. Running stats are unbounded; raw
// samples are not.
const MaxPercentileSamples = 20000

// Scenario is one candidate course of action for the analyzed team: stand
// pat, or a bundle of roster moves applied before the seasons are run.
type Scenario struct {
	Name  string
	Moves []league.Move
}

// StandPat is the null scenario every sim should include; everything else
// is measured against it.
func StandPat() Scenario {
	return Scenario{Name: "stand pat"}
}

func (sc Scenario) String() string {
	if len(sc.Moves) == 0 {
		return sc.Name
	}
	descs := make([]string, len(sc.Moves))
	for i, m := range sc.Moves {
		descs[i] = m.String()
	}
	return fmt.Sprintf("%s (%s)", sc.Name, strings.Join(descs, "; "))
}

// outcome is one simulated season's result for the analyzed team.
type outcome struct {
	wins         int
	weeklyPoints []float64
	madePlayoffs bool
	wonTitle     bool
	champion     string
}

// SimmedScenario tracks running statistics for one scenario across
// iterations.
type SimmedScenario struct {
	sync.RWMutex
	scenario Scenario
	// copyIdx is this scenario's index into the simmer's prepared league
	// copies and lineups. Report rendering reorders the scenario slice, so
	// workers must never use their loop position to find the copies.
	copyIdx int

	winStats     stats.Statistic
	pointsStats  []stats.Statistic // indexed by remaining-week offset
	playoffStats stats.Statistic
	titleStats   stats.Statistic
	winSamples   []float64

	ignore      bool
	unignorable bool
}

func (sp *SimmedScenario) String() string {
	return fmt.Sprintf("<Simmed scenario %q (title %.3f playoff %.3f wins %.2f)>",
		sp.scenario.Name, sp.titleStats.Mean(), sp.playoffStats.Mean(), sp.winStats.Mean())
}

func (sp *SimmedScenario) Scenario() Scenario {
	return sp.scenario
}

func (sp *SimmedScenario) Ignore() {
	sp.Lock()
	sp.ignore = true
	sp.Unlock()
}

func (sp *SimmedScenario) Ignored() bool {
	sp.RLock()
	defer sp.RUnlock()
	return sp.ignore
}

// TitleProb is the championship probability estimate so far.
func (sp *SimmedScenario) TitleProb() float64 {
	sp.RLock()
	defer sp.RUnlock()
	return sp.titleStats.Mean()
}

// PlayoffProb is the playoff-berth probability estimate so far.
func (sp *SimmedScenario) PlayoffProb() float64 {
	sp.RLock()
	defer sp.RUnlock()
	return sp.playoffStats.Mean()
}

// MeanWins is the expected win total over the simmed weeks.
func (sp *SimmedScenario) MeanWins() float64 {
	sp.RLock()
	defer sp.RUnlock()
	return sp.winStats.Mean()
}

func (sp *SimmedScenario) addOutcome(o outcome) {
	sp.Lock()
	defer sp.Unlock()
	sp.winStats.Push(float64(o.wins))
	for w, pts := range o.weeklyPoints {
		if w < len(sp.pointsStats) {
			sp.pointsStats[w].Push(pts)
		}
	}
	b := 0.0
	if o.madePlayoffs {
		b = 1.0
	}
	sp.playoffStats.Push(b)
	b = 0.0
	if o.wonTitle {
		b = 1.0
	}
	sp.titleStats.Push(b)
	if len(sp.winSamples) < MaxPercentileSamples {
		sp.winSamples = append(sp.winSamples, float64(o.wins))
	}
}

// WinPercentiles reports the win-total distribution at the given percentile
// points (0-100).
func (sp *SimmedScenario) WinPercentiles(ps []float64) ([]float64, error) {
	sp.RLock()
	defer sp.RUnlock()
	return stats.Percentiles(sp.winSamples, ps)
}

// SimmedScenarios is the mutex-guarded collection the worker threads write
// into.
type SimmedScenarios struct {
	sync.RWMutex
	scenarios []*SimmedScenario
}

// ScenariosNoLock returns the scenarios without locking.
func (s *SimmedScenarios) ScenariosNoLock() []*SimmedScenario {
	return s.scenarios
}

func (s *SimmedScenarios) trimBottom(n int) {
	s.Lock()
	defer s.Unlock()
	s.scenarios = s.scenarios[:len(s.scenarios)-n]
}

// LogIteration is a struct meant for serializing to a log-file, for debug
// and other purposes.
type LogIteration struct {
	Iteration int           `json:"iteration" yaml:"iteration"`
	Scenarios []LogScenario `json:"scenarios" yaml:"scenarios"`
	Thread    int           `json:"thread" yaml:"thread"`
}

// LogScenario is one scenario's result within a logged iteration.
type LogScenario struct {
	Name         string  `json:"name" yaml:"name"`
	Wins         int     `json:"wins" yaml:"wins"`
	PointsFor    float64 `json:"points_for" yaml:"points_for"`
	MadePlayoffs bool    `json:"made_playoffs,omitempty" yaml:"made_playoffs,omitempty"`
	WonTitle     bool    `json:"won_title,omitempty" yaml:"won_title,omitempty"`
	Champion     string  `json:"champion,omitempty" yaml:"champion,omitempty"`
}
