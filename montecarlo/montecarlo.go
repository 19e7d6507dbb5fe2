// Package montecarlo estimates season-outcome distributions by repeated
// trials. Given a league, a projection source, and a set of candidate
// roster scenarios, it simulates the remainder of the season many times and
// reports win totals, playoff probability, and championship probability per
// scenario, with confidence intervals.
package montecarlo

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/bits"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/gridironlab/dynasty/config"
	"github.com/gridironlab/dynasty/league"
	"github.com/gridironlab/dynasty/player"
	"github.com/gridironlab/dynasty/projection"
	"github.com/gridironlab/dynasty/stats"
)

/*
	How to simulate:

	For iteration in iterations:
		draw one weekly score per (player, week) lazily; the draw is shared
		across scenarios so every scenario faces the identical league
		environment this iteration.
		For scenario in scenarios:
			play out the remaining regular season with the scenario's roster,
			compute standings with the points-for tiebreak, seed the playoff
			bracket, resolve it, record wins / playoff berth / title.

		compute stats so far
*/

// MaxOutcomeLogIterations bounds how many iterations the outcome capture
// keeps; histograms don't get better past this.
const MaxOutcomeLogIterations = 7500

// Simmer runs the look-ahead across candidate scenarios.
type Simmer struct {
	origLeague *league.League
	myTeam     int
	source     projection.Source
	cfg        *config.Config

	// leagueCopies[thread][scenario] is a league with that scenario's moves
	// already applied. lineups[scenario][team] are the starters, fixed for
	// the whole sim since rosters don't change mid-sim.
	leagueCopies [][]*league.League
	lineups      [][][]*player.Player
	samplers     []*projection.Sampler

	remainingWeeks int
	totalWeeks     int
	iterationCount atomic.Uint64
	nodeCount      atomic.Uint64
	threads        int
	seed           uint64

	simming         bool
	readyToSim      bool
	simmedScenarios *SimmedScenarios

	logStream           io.Writer
	collectOutcomes     bool
	tempOutcomeFile     *os.File
	activeOutcomes      []LogIteration
	activeOutcomesFname string

	autostopper *AutoStopper
}

// Init wires the simmer up. team is the index of the team being analyzed.
func (s *Simmer) Init(lg *league.League, team int, source projection.Source, cfg *config.Config) {
	s.origLeague = lg
	s.myTeam = team
	s.source = source
	s.cfg = cfg
	s.threads = max(1, runtime.NumCPU())
	s.autostopper = newAutostopper()
	s.seed = uint64(time.Now().UnixNano())
	if cfg != nil {
		if t := cfg.GetInt("sim-threads"); t > 0 {
			s.threads = t
		}
		if c := cfg.GetInt("sim-iteration-cutoff"); c > 0 {
			s.autostopper.iterationsCutoff = c
		}
	}
}

func (s *Simmer) SetStoppingCondition(sc StoppingCondition) {
	s.autostopper.stoppingCondition = sc
}

func (s *Simmer) SetThreads(threads int) {
	s.threads = threads
}

func (s *Simmer) Threads() int {
	return s.threads
}

// SetSeed makes the whole sim reproducible. Each thread derives its own
// stream from this value.
func (s *Simmer) SetSeed(seed uint64) {
	s.seed = seed
}

func (s *Simmer) SetAutostopIterationsCutoff(i int) {
	s.autostopper.iterationsCutoff = i
}

func (s *Simmer) SetAutostopCheckInterval(i uint64) {
	s.autostopper.stopConditionCheckInterval = i
}

func (s *Simmer) SetLogStream(l io.Writer) {
	s.logStream = l
}

func (s *Simmer) IsSimming() bool {
	return s.simming
}

func (s *Simmer) Ready() bool {
	return s.readyToSim
}

func (s *Simmer) Reset() {
	s.leagueCopies = nil
	s.lineups = nil
	s.readyToSim = false
}

// playoffRounds is the number of bracket weeks PlayoffTeams needs.
func playoffRounds(n int) int {
	if n < 2 {
		return 0
	}
	return bits.Len(uint(n - 1))
}

// PrepareSim applies every scenario to per-thread league copies and resets
// all stats.
func (s *Simmer) PrepareSim(scenarios []Scenario) error {
	if len(scenarios) == 0 {
		return errors.New("need at least one scenario")
	}
	if s.origLeague.RemainingWeeks() <= 0 {
		return errors.New("no regular season weeks remain to simulate")
	}
	s.remainingWeeks = s.origLeague.RemainingWeeks()
	s.totalWeeks = s.origLeague.Schedule.RegularSeasonWeeks + playoffRounds(s.origLeague.PlayoffTeams)

	s.leagueCopies = make([][]*league.League, s.threads)
	s.samplers = make([]*projection.Sampler, s.threads)
	for t := 0; t < s.threads; t++ {
		s.samplers[t] = projection.NewSeededSampler(s.seed + uint64(t)*0x9e3779b97f4a7c15)
		s.leagueCopies[t] = make([]*league.League, len(scenarios))
		for i, sc := range scenarios {
			lg := s.origLeague.Copy()
			for _, mv := range sc.Moves {
				if err := mv.Apply(lg, s.myTeam); err != nil {
					return fmt.Errorf("scenario %q: %w", sc.Name, err)
				}
			}
			s.leagueCopies[t][i] = lg
		}
	}

	// Starters are set on expected points and stay fixed for the sim.
	meanVal := func(p *player.Player) float64 {
		d, ok := s.source.Weekly(p)
		if !ok {
			return 0
		}
		return d.Mean
	}
	s.lineups = make([][][]*player.Player, len(scenarios))
	for i := range scenarios {
		lg := s.leagueCopies[0][i]
		s.lineups[i] = make([][]*player.Player, len(lg.Teams))
		for ti, team := range lg.Teams {
			s.lineups[i][ti] = team.Roster.OptimalLineup(lg.Rules, meanVal).Starters
		}
	}

	s.resetStats(scenarios)
	s.readyToSim = true
	return nil
}

func (s *Simmer) resetStats(scenarios []Scenario) {
	s.iterationCount.Store(0)
	s.nodeCount.Store(0)
	s.simmedScenarios = &SimmedScenarios{scenarios: make([]*SimmedScenario, len(scenarios))}
	for idx, sc := range scenarios {
		s.simmedScenarios.scenarios[idx] = &SimmedScenario{
			scenario:    sc,
			copyIdx:     idx,
			pointsStats: make([]stats.Statistic, s.remainingWeeks),
		}
	}
}

// AvoidPruningScenarios marks scenarios that must never be cut off early.
// Assumes PrepareSim has already been called.
func (s *Simmer) AvoidPruningScenarios(names []string) {
	for _, sp := range s.simmedScenarios.scenarios {
		for _, n := range names {
			if strings.EqualFold(sp.scenario.Name, n) {
				sp.unignorable = true
			}
		}
	}
}

// SetCollectOutcomes turns on gzip capture of per-iteration outcomes to a
// temp file, for histogram reporting after the sim.
func (s *Simmer) SetCollectOutcomes(b bool) error {
	if s.logStream != nil && b {
		return errors.New("cannot collect outcomes if log stream already used")
	}
	s.collectOutcomes = b
	if b {
		s.CleanupTempFile()
		tempFile, err := os.CreateTemp("", "outcomes-*.gz")
		if err != nil {
			return fmt.Errorf("could not create temp file: %w", err)
		}
		s.tempOutcomeFile = tempFile
		s.logStream = gzip.NewWriter(tempFile)
		log.Info().Str("outcome-file", tempFile.Name()).Msg("collecting-outcomes")
	}
	return nil
}

func (s *Simmer) CollectOutcomes() bool {
	return s.collectOutcomes
}

func (s *Simmer) CleanupTempFile() {
	if s.tempOutcomeFile != nil {
		err := os.Remove(s.tempOutcomeFile.Name())
		if err != nil {
			log.Err(err).Str("outcomeFile", s.tempOutcomeFile.Name()).Msg("could not remove temporary file")
		} else {
			log.Info().Str("outcomeFile", s.tempOutcomeFile.Name()).Msg("deleted temp file")
		}
	}
}

func (s *Simmer) closeOutcomeLog(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)
	if s.logStream == nil || !s.collectOutcomes {
		return nil
	}
	logger.Info().Msg("closing outcome writer")
	if gzWriter, ok := s.logStream.(*gzip.Writer); ok {
		if err := gzWriter.Close(); err != nil {
			return fmt.Errorf("could not close gzip writer: %w", err)
		}
	}
	if err := s.tempOutcomeFile.Close(); err != nil {
		return fmt.Errorf("could not close temp file: %w", err)
	}
	s.logStream = nil
	s.collectOutcomes = false
	return nil
}

// ReadOutcomes reads back the gzipped iteration log from the temporary file.
func (s *Simmer) ReadOutcomes() ([]LogIteration, error) {
	if s.tempOutcomeFile == nil {
		return nil, errors.New("no outcome data to read")
	}
	if s.tempOutcomeFile.Name() == s.activeOutcomesFname {
		log.Info().Msg("loading-outcomes-from-cache")
		return s.activeOutcomes, nil
	}
	file, err := os.Open(s.tempOutcomeFile.Name())
	if err != nil {
		return nil, fmt.Errorf("could not open temp file for reading: %w", err)
	}
	defer file.Close()

	gzReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("could not create gzip reader: %w", err)
	}
	defer gzReader.Close()

	scanner := bufio.NewScanner(gzReader)
	var iterations []LogIteration
	for scanner.Scan() {
		var it LogIteration
		if err := json.Unmarshal(scanner.Bytes(), &it); err != nil {
			return nil, fmt.Errorf("could not unmarshal JSON line: %w", err)
		}
		iterations = append(iterations, it)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error while scanning file: %w", err)
	}
	s.activeOutcomes = iterations
	s.activeOutcomesFname = s.tempOutcomeFile.Name()
	return iterations, nil
}

// Simulate sims all the scenarios. It is a blocking function.
func (s *Simmer) Simulate(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	if !s.readyToSim || s.simmedScenarios == nil || len(s.simmedScenarios.scenarios) == 0 {
		return errors.New("please prepare the simulation first")
	}
	// PrepareSim sized the per-thread league copies; never run more workers
	// than were prepared.
	if s.threads > len(s.leagueCopies) {
		s.threads = len(s.leagueCopies)
	}
	s.simming = true
	defer func() {
		s.simming = false
		logger.Info().Int("weeks", s.remainingWeeks).
			Uint64("iterationCt", s.iterationCount.Load()).
			Msg("sim-ended")
	}()

	if !s.collectOutcomes {
		s.tempOutcomeFile = nil
	}

	logger.Debug().Msgf("Simulating with %v threads", s.threads)
	syncExitChan := make(chan bool, s.threads)

	logChan := make(chan []byte)
	done := make(chan bool)

	ctrl := errgroup.Group{}
	writer := errgroup.Group{}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ctrl.Go(func() error {
		defer func() {
			logger.Debug().Msgf("Sim controller thread exiting")
		}()
		<-ctx.Done()
		logger.Debug().Msgf("Context is done: %v", ctx.Err())
		for t := 0; t < s.threads; t++ {
			syncExitChan <- true
		}
		logger.Debug().Msgf("Sent sync messages to children threads...")
		return ctx.Err()
	})

	if s.logStream != nil {
		writer.Go(func() error {
			defer func() {
				logger.Debug().Msgf("Writer routine exiting")
			}()
			for {
				select {
				case bytes := <-logChan:
					s.logStream.Write(bytes)
				case <-done:
					logger.Debug().Msgf("Got quit signal...")
					return nil
				}
			}
		})
	}

	tstart := time.Now()
	g := errgroup.Group{}
	s.autostopper.reset()

	for t := 0; t < s.threads; t++ {
		t := t
		g.Go(func() error {
			defer func() {
				logger.Debug().Msgf("Thread %v exiting sim", t)
			}()
			logger.Debug().Msgf("Thread %v starting sim", t)
			for {
				numIters := s.iterationCount.Add(1)
				err := s.simSingleIteration(ctx, t, numIters-1, logChan)
				if err != nil {
					logger.Err(err).Msg("error simming iteration; canceling")
					cancel()
				}
				if s.autostopper.stoppingCondition != StopNone {
					if numIters%s.autostopper.stopConditionCheckInterval == 0 {
						logger.Debug().Uint64("numIters", numIters).Msg("checking-stopping-condition")
						if s.autostopper.shouldStop(numIters, s.simmedScenarios) {
							logger.Info().Uint64("numIters", numIters).Msg("reached stopping condition")
							cancel()
						}
					}
				}

				select {
				case v := <-syncExitChan:
					logger.Debug().Msgf("Thread %v got sync msg %v", t, v)
					return nil
				default:
					// Do nothing
				}
			}
		})
	}

	err := g.Wait()
	logger.Debug().Msgf("errgroup returned err %v", err)
	elapsed := time.Since(tstart)
	nodes := s.nodeCount.Load()
	nps := float64(nodes) / elapsed.Seconds()
	logger.Info().Msgf("time taken: %v, nps: %f, nodes: %d", elapsed.Seconds(), nps, nodes)

	if s.logStream != nil {
		close(done)
		writer.Wait()
	}
	if err = s.closeOutcomeLog(ctx); err != nil {
		logger.Err(err).Msg("close-outcome-log")
	}

	ctrlErr := ctrl.Wait()
	logger.Debug().Msgf("ctrl errgroup returned err %v", ctrlErr)
	s.sortScenariosByTitleProb(false)
	if errors.Is(ctrlErr, context.Canceled) || errors.Is(ctrlErr, context.DeadlineExceeded) {
		// Not actually an error
		logger.Debug().AnErr("ctrlErr", ctrlErr).Msg("montecarlo-it's ok, not an error")
		return nil
	}
	return ctrlErr
}

// SimSingleThread is a fast utility function to sim on a single thread with
// a fixed number of iterations and an optional stopping condition.
func (s *Simmer) SimSingleThread(iters int) {
	ctx := context.Background()
	s.iterationCount.Store(0)

	writer := &errgroup.Group{}
	logChan := make(chan []byte)
	done := make(chan bool)

	if s.logStream != nil {
		// I lied, it's not single thread if we're debug logging.
		writer.Go(func() error {
			for {
				select {
				case bytes := <-logChan:
					s.logStream.Write(bytes)
				case <-done:
					return nil
				}
			}
		})
	}

	for i := uint64(0); i < uint64(iters); i++ {
		s.iterationCount.Add(1)
		s.simSingleIteration(ctx, 0, i, logChan)
		if s.autostopper.stoppingCondition != StopNone {
			if (i+1)%s.autostopper.stopConditionCheckInterval == 0 {
				if s.autostopper.shouldStop(i+1, s.simmedScenarios) {
					log.Debug().Uint64("numIters", i+1).Msg("reached stopping condition")
					break
				}
			}
		}
	}
	if s.logStream != nil {
		close(done)
		if err := writer.Wait(); err != nil {
			log.Err(err).Msg("simsinglethread-errgroup-error")
		}
	}
}

func (s *Simmer) Iterations() int {
	return int(s.iterationCount.Load())
}

func (s *Simmer) TrimBottom(totrim int) error {
	if s.simming {
		return errors.New("please stop sim before trimming scenarios")
	}
	if totrim > len(s.simmedScenarios.scenarios)-1 {
		return errors.New("there are not that many scenarios to trim away")
	}
	s.simmedScenarios.trimBottom(totrim)
	return nil
}

// scoreEnv lazily draws one score per (player, week) for a single iteration.
// Every scenario in the iteration sees the same draw for the same player,
// even if a trade put that player on a different roster.
type scoreEnv struct {
	sampler *projection.Sampler
	source  projection.Source
	weeks   int
	scores  map[string][]float64
	drawn   map[string][]bool
}

func newScoreEnv(sampler *projection.Sampler, source projection.Source, weeks int) *scoreEnv {
	return &scoreEnv{
		sampler: sampler,
		source:  source,
		weeks:   weeks,
		scores:  make(map[string][]float64),
		drawn:   make(map[string][]bool),
	}
}

func (e *scoreEnv) playerScore(p *player.Player, week int) float64 {
	if week < 0 || week >= e.weeks {
		return 0
	}
	sc, ok := e.scores[p.ID]
	if !ok {
		sc = make([]float64, e.weeks)
		e.scores[p.ID] = sc
		e.drawn[p.ID] = make([]bool, e.weeks)
	}
	if !e.drawn[p.ID][week] {
		d, known := e.source.Weekly(p)
		if known {
			sc[week] = e.sampler.Sample(d)
		}
		e.drawn[p.ID][week] = true
	}
	return sc[week]
}

func (s *Simmer) simSingleIteration(ctx context.Context, thread int, iterationCount uint64, logChan chan []byte) error {
	logger := zerolog.Ctx(ctx)

	env := newScoreEnv(s.samplers[thread], s.source, s.totalWeeks)
	logIter := LogIteration{Iteration: int(iterationCount), Thread: thread}

	for _, simmed := range s.simmedScenarios.ScenariosNoLock() {
		if simmed.Ignored() {
			continue
		}
		lg := s.leagueCopies[thread][simmed.copyIdx]
		o := s.simSeason(lg, s.lineups[simmed.copyIdx], env)
		simmed.addOutcome(o)
		s.nodeCount.Add(uint64(s.totalWeeks - lg.CurrentWeek))

		if s.logStream != nil {
			totalPts := 0.0
			for _, p := range o.weeklyPoints {
				totalPts += p
			}
			logIter.Scenarios = append(logIter.Scenarios, LogScenario{
				Name:         simmed.scenario.Name,
				Wins:         o.wins,
				PointsFor:    totalPts,
				MadePlayoffs: o.madePlayoffs,
				WonTitle:     o.wonTitle,
				Champion:     o.champion,
			})
		}
	}

	if s.logStream != nil {
		var out []byte
		var err error
		if s.collectOutcomes && iterationCount < MaxOutcomeLogIterations {
			// If outcome collection is on, only collect a fixed number of iterations.
			out, err = json.Marshal(logIter)
			if err != nil {
				logger.Error().Err(err).Msg("marshalling log")
				return err
			}
			out = append(out, '\n')
			logChan <- out
		} else if !s.collectOutcomes {
			out, err = yaml.Marshal([]LogIteration{logIter})
			if err != nil {
				logger.Error().Err(err).Msg("marshalling log")
				return err
			}
			logChan <- out
		}
	}
	return nil
}

// simSeason plays out one league's remaining season and returns the analyzed
// team's outcome.
func (s *Simmer) simSeason(lg *league.League, lineups [][]*player.Player, env *scoreEnv) outcome {
	records := make([]league.Record, len(lg.Teams))
	for i := range records {
		records[i].Team = i
	}
	// Carry in any already-played results.
	if len(lg.Records) == len(records) {
		copy(records, lg.Records)
	}

	teamScore := func(team, week int) float64 {
		total := 0.0
		for _, p := range lineups[team] {
			total += env.playerScore(p, week)
		}
		return total
	}

	o := outcome{weeklyPoints: make([]float64, 0, s.remainingWeeks)}

	for w := lg.CurrentWeek; w < lg.Schedule.RegularSeasonWeeks; w++ {
		matchups, _ := lg.Schedule.WeekMatchups(w)
		for _, m := range matchups {
			hs := teamScore(m.Home, w)
			as := teamScore(m.Away, w)
			records[m.Home].PointsFor += hs
			records[m.Away].PointsFor += as
			switch {
			case hs > as:
				records[m.Home].Wins++
				records[m.Away].Losses++
			case as > hs:
				records[m.Away].Wins++
				records[m.Home].Losses++
			default:
				records[m.Home].Ties++
				records[m.Away].Ties++
			}
			if m.Home == s.myTeam {
				o.weeklyPoints = append(o.weeklyPoints, hs)
			} else if m.Away == s.myTeam {
				o.weeklyPoints = append(o.weeklyPoints, as)
			}
		}
	}
	baseWins := 0
	if len(lg.Records) == len(records) {
		baseWins = lg.Records[s.myTeam].Wins
	}
	o.wins = records[s.myTeam].Wins - baseWins

	seeds := league.PlayoffSeeds(records, lg.PlayoffTeams)
	for _, seed := range seeds {
		if seed == s.myTeam {
			o.madePlayoffs = true
			break
		}
	}
	champ, _ := league.RunPlayoffs(seeds, lg.Schedule.RegularSeasonWeeks, teamScore)
	if champ >= 0 {
		o.champion = lg.Teams[champ].Name
		o.wonTitle = champ == s.myTeam
	}
	return o
}

func (s *Simmer) sortScenariosByTitleProb(ignoredAtBottom bool) {
	s.simmedScenarios.Lock()
	defer s.simmedScenarios.Unlock()
	sort.SliceStable(s.simmedScenarios.scenarios, func(i, j int) bool {
		si, sj := s.simmedScenarios.scenarios[i], s.simmedScenarios.scenarios[j]
		if ignoredAtBottom {
			if si.Ignored() {
				return false
			}
			if sj.Ignored() {
				return true
			}
		}
		return better(si, sj)
	})
}

// WinningScenario returns the best scenario by title probability.
func (s *Simmer) WinningScenario() *SimmedScenario {
	s.sortScenariosByTitleProb(true)
	s.simmedScenarios.RLock()
	defer s.simmedScenarios.RUnlock()
	return s.simmedScenarios.scenarios[0]
}

// ScenariosByTitleProb returns the simmed scenarios, best first.
func (s *Simmer) ScenariosByTitleProb() *SimmedScenarios {
	s.sortScenariosByTitleProb(true)
	return s.simmedScenarios
}

// OutcomeStats renders the summary table for all scenarios.
func (s *Simmer) OutcomeStats() string {
	var ss strings.Builder
	s.sortScenariosByTitleProb(false)
	fmt.Fprintf(&ss, "%-28s%-16s%-16s%-16s\n", "Scenario", "Wins", "Playoff%", "Title%")
	s.simmedScenarios.RLock()
	defer s.simmedScenarios.RUnlock()
	for _, sp := range s.simmedScenarios.scenarios {
		sp.RLock()
		winStr := fmt.Sprintf("%.2f±%.2f", sp.winStats.Mean(), stats.Z99*sp.winStats.StandardError())
		playoffStr := fmt.Sprintf("%.1f±%.1f", 100*sp.playoffStats.Mean(), 100*stats.Z99*sp.playoffStats.StandardError())
		titleStr := fmt.Sprintf("%.1f±%.1f", 100*sp.titleStats.Mean(), 100*stats.Z99*sp.titleStats.StandardError())
		ignore := ""
		if sp.ignore {
			ignore = "❌"
		}
		sp.RUnlock()
		fmt.Fprintf(&ss, "%-28s%-16s%-16s%-16s%s\n", sp.scenario.Name, winStr, playoffStr, titleStr, ignore)
	}
	fmt.Fprintf(&ss, "Iterations: %d (intervals are 99%% confidence, ❌ marks scenarios cut off early)\n",
		s.iterationCount.Load())
	return ss.String()
}

// WeeklyDetails renders per-week scoring detail for every scenario.
func (s *Simmer) WeeklyDetails() string {
	if s.simmedScenarios == nil {
		return "No simmed scenarios."
	}
	var ss strings.Builder
	s.sortScenariosByTitleProb(false)
	s.simmedScenarios.RLock()
	defer s.simmedScenarios.RUnlock()

	for w := 0; w < s.remainingWeeks; w++ {
		fmt.Fprintf(&ss, "**Week %d**\n%-28s%10s%10s%10s\n%s\n",
			s.origLeague.CurrentWeek+w+1, "Scenario", "Mean", "Stdev", "Iters",
			strings.Repeat("-", 60))
		for _, sp := range s.simmedScenarios.scenarios {
			sp.RLock()
			fmt.Fprintf(&ss, "%-28s%10.2f%10.2f%10d\n",
				sp.scenario.Name, sp.pointsStats[w].Mean(), sp.pointsStats[w].Stdev(),
				sp.pointsStats[w].Iterations())
			sp.RUnlock()
		}
		ss.WriteString("\n")
	}
	fmt.Fprintf(&ss, "Iterations: %d\n", s.iterationCount.Load())
	return ss.String()
}

// ShortDetails is a one-line-per-scenario summary, for tickers.
func (s *Simmer) ShortDetails(n int) string {
	var ss strings.Builder
	s.sortScenariosByTitleProb(false)

	s.simmedScenarios.RLock()
	defer s.simmedScenarios.RUnlock()

	scenarios := s.simmedScenarios.scenarios
	if len(scenarios) > n {
		scenarios = scenarios[:n]
	}
	for idx, sp := range scenarios {
		sp.RLock()
		fmt.Fprintf(&ss, "%d) %s (title %.1f%%, %.1f wins)  ", idx+1,
			sp.scenario.Name, 100*sp.titleStats.Mean(), sp.winStats.Mean())
		sp.RUnlock()
	}
	fmt.Fprintf(&ss, "; iters = %d", s.iterationCount.Load())
	return ss.String()
}
