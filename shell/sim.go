package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gridironlab/dynasty/montecarlo"
	simstats "github.com/gridironlab/dynasty/montecarlo/stats"
	"github.com/gridironlab/dynasty/store"
)

// sim controls the season simulator:
//
//	sim prepare
//	sim start [-threads n] [-stop 95|98|99] [-iters n] [-collect]
//	sim show | details | hist <scenario> | champions <scenario>
//	sim log <file> | trim <n> | stop
func (sc *ShellController) sim(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: sim prepare|start|show|details|hist|champions|log|trim|stop")
	}
	switch cmd.args[0] {
	case "prepare":
		return sc.simPrepare(cmd)
	case "start":
		return sc.simStart(cmd)
	case "show":
		if sc.simmer == nil {
			return nil, errors.New("no sim prepared")
		}
		return msg(sc.simmer.OutcomeStats()), nil
	case "details":
		if sc.simmer == nil {
			return nil, errors.New("no sim prepared")
		}
		return msg(sc.simmer.WeeklyDetails()), nil
	case "hist":
		return sc.simHist(cmd)
	case "champions":
		return sc.simChampions(cmd)
	case "log":
		if sc.simmer == nil {
			return nil, errors.New("no sim prepared")
		}
		if sc.simmer.IsSimming() {
			return nil, errors.New("stop the sim before changing the log")
		}
		logfile := SimLog
		if len(cmd.args) > 1 {
			logfile = cmd.args[1]
		}
		f, err := os.Create(logfile)
		if err != nil {
			return nil, err
		}
		sc.simLogFile = f
		sc.simmer.SetLogStream(f)
		return msg("sim will log to " + logfile), nil
	case "trim":
		if sc.simmer == nil {
			return nil, errors.New("no sim prepared")
		}
		if len(cmd.args) < 2 {
			return nil, errors.New("usage: sim trim <n>")
		}
		n, err := strconv.Atoi(cmd.args[1])
		if err != nil {
			return nil, err
		}
		if err := sc.simmer.TrimBottom(n); err != nil {
			return nil, err
		}
		return msg(sc.simmer.OutcomeStats()), nil
	case "stop":
		if sc.simmer == nil || !sc.simmer.IsSimming() {
			return nil, errors.New("no running sim to stop")
		}
		sc.stopSim()
		return msg(sc.simmer.OutcomeStats()), nil
	}
	return nil, fmt.Errorf("don't know sim subcommand %q", cmd.args[0])
}

func (sc *ShellController) simPrepare(cmd *shellcmd) (*Response, error) {
	if err := sc.requireLeague(); err != nil {
		return nil, err
	}
	if err := sc.requireProjections(); err != nil {
		return nil, err
	}
	if sc.simmer != nil && sc.simmer.IsSimming() {
		return nil, errors.New("simming already; `sim stop` first")
	}
	sc.simmer = &montecarlo.Simmer{}
	sc.simmer.Init(sc.lg, sc.myTeam, sc.projections, sc.config)
	sc.simmer.SetSeed(sc.seed)

	scenarios := append([]montecarlo.Scenario{montecarlo.StandPat()}, sc.scenarios...)
	if err := sc.simmer.PrepareSim(scenarios); err != nil {
		return nil, err
	}
	// The baseline is what everything else is measured against; never let
	// the autostopper cut it off early.
	sc.simmer.AvoidPruningScenarios([]string{montecarlo.StandPat().Name})
	return msg(fmt.Sprintf("prepared sim: %d scenarios, %d remaining weeks",
		len(scenarios), sc.lg.RemainingWeeks())), nil
}

func (sc *ShellController) simStart(cmd *shellcmd) (*Response, error) {
	if sc.simmer == nil || !sc.simmer.Ready() {
		return nil, errors.New("prepare a sim first with `sim prepare`")
	}
	if sc.simmer.IsSimming() {
		return nil, errors.New("simming already; `sim stop` first")
	}
	if threads, err := cmd.options.IntDefault("threads", 0); err != nil {
		return nil, err
	} else if threads > 0 {
		sc.simmer.SetThreads(threads)
	}
	switch cmd.options.String("stop") {
	case "":
		sc.simmer.SetStoppingCondition(montecarlo.StopNone)
	case "95":
		sc.simmer.SetStoppingCondition(montecarlo.Stop95)
	case "98":
		sc.simmer.SetStoppingCondition(montecarlo.Stop98)
	case "99":
		sc.simmer.SetStoppingCondition(montecarlo.Stop99)
	default:
		return nil, errors.New("-stop must be 95, 98, or 99")
	}
	if iters, err := cmd.options.IntDefault("iters", 0); err != nil {
		return nil, err
	} else if iters > 0 {
		sc.simmer.SetAutostopIterationsCutoff(iters)
	}
	if cmd.options.Bool("collect") {
		if err := sc.simmer.SetCollectOutcomes(true); err != nil {
			return nil, err
		}
	}

	sc.simCtx, sc.simCancel = context.WithCancel(
		log.Logger.WithContext(context.Background()))
	sc.simTicker = time.NewTicker(10 * time.Second)
	sc.simTickerDone = make(chan bool)

	go func() {
		err := sc.simmer.Simulate(sc.simCtx)
		if err != nil {
			sc.showError(err)
		}
		// The sim may end on its own (autostop, iteration cutoff), so this
		// goroutine owns the ticker teardown, not `sim stop`.
		sc.simTicker.Stop()
		close(sc.simTickerDone)
		sc.recordRun()
	}()
	go func() {
		for {
			select {
			case <-sc.simTickerDone:
				return
			case <-sc.simTicker.C:
				log.Info().Int("iterations", sc.simmer.Iterations()).Msg("simming...")
				sc.showMessage(sc.simmer.ShortDetails(4))
			}
		}
	}()
	return msg("simulation started; `sim show` for interim results, `sim stop` to end"), nil
}

func (sc *ShellController) simHist(cmd *shellcmd) (*Response, error) {
	if sc.simmer == nil {
		return nil, errors.New("no sim prepared")
	}
	if len(cmd.args) < 2 {
		return nil, errors.New("usage: sim hist <scenario name>")
	}
	ss := simstats.NewSimStats(sc.simmer)
	wins, err := ss.WinHistogram(cmd.args[1])
	if err != nil {
		return nil, err
	}
	points, err := ss.PointsHistogram(cmd.args[1])
	if err != nil {
		return nil, err
	}
	return msg("wins\n" + wins + "\npoints for\n" + points), nil
}

// simChampions tallies who took the title across captured iterations.
func (sc *ShellController) simChampions(cmd *shellcmd) (*Response, error) {
	if sc.simmer == nil {
		return nil, errors.New("no sim prepared")
	}
	if len(cmd.args) < 2 {
		return nil, errors.New("usage: sim champions <scenario name>")
	}
	ss := simstats.NewSimStats(sc.simmer)
	counts, err := ss.ChampionCounts(cmd.args[1])
	if err != nil {
		return nil, err
	}
	return msg(counts), nil
}

func (sc *ShellController) stopSim() {
	sc.simCancel()
	// Simulate's goroutine stops the ticker and closes the channel on its
	// way out; wait for it so the final stats are complete.
	<-sc.simTickerDone
	if sc.simLogFile != nil {
		if err := sc.simLogFile.Close(); err != nil {
			sc.showError(err)
		}
		sc.simLogFile = nil
	}
}

// recordRun saves the winning scenario's result once a sim finishes, if a
// store is open.
func (sc *ShellController) recordRun() {
	if sc.store == nil || sc.simmer == nil {
		return
	}
	winner := sc.simmer.WinningScenario()
	if winner == nil {
		return
	}
	_, err := sc.store.RecordSimRun(context.Background(), store.SimRun{
		Scenario:    winner.Scenario().Name,
		Iterations:  uint64(sc.simmer.Iterations()),
		Seed:        sc.seed,
		TitleProb:   winner.TitleProb(),
		PlayoffProb: winner.PlayoffProb(),
		MeanWins:    winner.MeanWins(),
	})
	if err != nil {
		log.Err(err).Msg("recording sim run")
	}
}
