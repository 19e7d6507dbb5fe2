// Package shell is the interactive front end: load data, build scenarios,
// run sims, price trades.
package shell

import (
	"context"
	"io"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/gridironlab/dynasty/config"
	"github.com/gridironlab/dynasty/league"
	"github.com/gridironlab/dynasty/montecarlo"
	"github.com/gridironlab/dynasty/player"
	"github.com/gridironlab/dynasty/projection"
	"github.com/gridironlab/dynasty/store"
	"github.com/gridironlab/dynasty/valuation"
)

const SimLog = "/tmp/dynasty-simlog"

type ShellController struct {
	l        *readline.Instance
	config   *config.Config
	execPath string

	pool        *player.Pool
	projections projection.Source
	baseline    projection.Baseline
	calc        valuation.Calculator
	picks       *valuation.PickValuer
	evaluator   *valuation.TradeEvaluator

	lg        *league.League
	myTeam    int
	scenarios []montecarlo.Scenario
	seed      uint64

	simmer        *montecarlo.Simmer
	simCtx        context.Context
	simCancel     context.CancelFunc
	simTicker     *time.Ticker
	simTickerDone chan bool
	simLogFile    *os.File

	store *store.Store
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func NewShellController(cfg *config.Config, execPath string) *ShellController {
	sc := &ShellController{
		config:   cfg,
		execPath: execPath,
		seed:     uint64(time.Now().UnixNano()),
	}
	prompt := "\033[31mdynasty>\033[0m "
	l, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     "/tmp/dynasty_readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
		AutoComplete:        NewShellCompleter(sc),
	})
	if err != nil {
		panic(err)
	}
	sc.l = l

	picks := valuation.NewPickValuer(time.Now().Year())
	sc.picks = picks
	sc.baseline = projection.DefaultBaseline()
	sc.calc = valuation.NewAgeCurveCalculator(valuation.NewMarketCalculator(), nil)
	sc.evaluator = valuation.NewTradeEvaluator(sc.calc, picks)
	return sc
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.l.Stderr())
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// shellcmd is one parsed command line.
type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

// extractFields tokenizes a line with shell quoting rules and splits out
// -option value pairs.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := &shellcmd{cmd: fields[0], options: CmdOptions{}}
	rest := fields[1:]
	for i := 0; i < len(rest); i++ {
		if strings.HasPrefix(rest[i], "-") && len(rest[i]) > 1 {
			key := strings.TrimPrefix(rest[i], "-")
			if i+1 < len(rest) && !strings.HasPrefix(rest[i+1], "-") {
				cmd.options[key] = append(cmd.options[key], rest[i+1])
				i++
			} else {
				cmd.options[key] = append(cmd.options[key], "true")
			}
		} else {
			cmd.args = append(cmd.args, rest[i])
		}
	}
	return cmd, nil
}

// Execute runs a single command line and returns its response text. Used
// both by the loop and by one-shot invocation from main.
func (sc *ShellController) Execute(line string, sig chan os.Signal) string {
	cmd, err := extractFields(line)
	if err != nil {
		if err == errNoData {
			return ""
		}
		return "Error: " + err.Error()
	}
	resp, err := sc.dispatch(cmd, sig)
	if err != nil {
		return "Error: " + err.Error()
	}
	if resp == nil {
		return ""
	}
	return resp.message
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()
	defer sc.Cleanup()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out := sc.Execute(line, sig)
		if out != "" {
			sc.showMessage(out)
		}
		if out == respQuitting {
			break
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Cleanup stops any running sim and closes the store.
func (sc *ShellController) Cleanup() {
	if sc.simmer != nil && sc.simmer.IsSimming() {
		sc.stopSim()
	}
	if sc.simLogFile != nil {
		sc.simLogFile.Close()
		sc.simLogFile = nil
	}
	if sc.simmer != nil {
		sc.simmer.CleanupTempFile()
	}
	if sc.store != nil {
		sc.store.Close()
		sc.store = nil
	}
}
