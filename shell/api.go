package shell

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/gridironlab/dynasty/cluster"
	"github.com/gridironlab/dynasty/dataloaders"
	"github.com/gridironlab/dynasty/league"
	"github.com/gridironlab/dynasty/montecarlo"
	"github.com/gridironlab/dynasty/player"
	"github.com/gridironlab/dynasty/projection"
	"github.com/gridironlab/dynasty/regression"
	"github.com/gridironlab/dynasty/store"
	"github.com/gridironlab/dynasty/valuation"
)

var errNoData = errors.New("no data to parse")

const respQuitting = "quitting"

type Response struct {
	message string
}

func msg(message string) *Response {
	return &Response{message: message}
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) Int(key string) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return 0, errors.New(key + " not found in options")
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) Bool(key string) bool {
	v := c[key]
	if len(v) == 0 {
		return false
	}
	return strings.ToLower(v[0]) == "true"
}

func (sc *ShellController) dispatch(cmd *shellcmd, sig chan os.Signal) (*Response, error) {
	switch cmd.cmd {
	case "load":
		return sc.load(cmd)
	case "standings":
		return sc.standings(cmd)
	case "schedule":
		return sc.scheduleCmd(cmd)
	case "roster":
		return sc.roster(cmd)
	case "sim":
		return sc.sim(cmd)
	case "scenario":
		return sc.scenario(cmd)
	case "trade":
		return sc.trade(cmd)
	case "tiers":
		return sc.tiers(cmd)
	case "curve":
		return sc.curve(cmd)
	case "adp":
		return sc.adp(cmd)
	case "history":
		return sc.history(cmd)
	case "set":
		return sc.set(cmd)
	case "seed":
		return sc.setSeed(cmd)
	case "help":
		return sc.help(cmd)
	case "exit", "bye", "quit":
		sig <- syscall.SIGINT
		return msg(respQuitting), nil
	default:
		return nil, fmt.Errorf("command %q not recognized; try `help`", cmd.cmd)
	}
}

// load wires up data: `load league [-team n]`, `load projections`,
// `load store`.
func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: load league|projections|store")
	}
	switch cmd.args[0] {
	case "league":
		pool, err := dataloaders.LoadPlayerPool(sc.config)
		if err != nil {
			return nil, err
		}
		sc.pool = pool
		team, err := cmd.options.IntDefault("team", 0)
		if err != nil {
			return nil, err
		}
		lg, err := sc.buildLeague()
		if err != nil {
			return nil, err
		}
		if team < 0 || team >= len(lg.Teams) {
			return nil, fmt.Errorf("team index %d out of range", team)
		}
		sc.lg = lg
		sc.myTeam = team
		sc.scenarios = nil
		// Re-baseline any loaded projections to the new league's scoring.
		if sc.projections != nil {
			src, err := dataloaders.LoadProjections(sc.config)
			if err != nil {
				return nil, err
			}
			sc.projections = projection.NewRescored(src, lg.Scoring)
		}
		return msg(fmt.Sprintf("drafted a %d-team league from %d players; you are %s",
			len(lg.Teams), pool.Len(), lg.Teams[team].Name)), nil
	case "projections":
		if err := sc.requireLeague(); err != nil {
			return nil, err
		}
		src, err := dataloaders.LoadProjections(sc.config)
		if err != nil {
			return nil, err
		}
		// Published projections assume full PPR; re-baseline the means to
		// this league's scoring.
		sc.projections = projection.NewRescored(src, sc.lg.Scoring)
		return msg(fmt.Sprintf("loaded %d weekly projections (%s scoring)",
			src.Len(), sc.lg.Scoring.Name)), nil
	case "store":
		if sc.store != nil {
			sc.store.Close()
		}
		st, err := store.Open(sc.config.GetString("db-path"))
		if err != nil {
			return nil, err
		}
		sc.store = st
		return msg("opened store at " + sc.config.GetString("db-path")), nil
	}
	return nil, fmt.Errorf("don't know how to load %q", cmd.args[0])
}

// buildLeague snake-drafts the pool by ADP into a fresh league using the
// configured settings.
func (sc *ShellController) buildLeague() (*league.League, error) {
	scoring, err := league.ParseScoring(sc.config.GetString("scoring"))
	if err != nil {
		return nil, err
	}
	rules := league.DefaultRules()
	if sc.config.GetString("scoring") == "superflex-tep" {
		rules = league.SuperflexRules()
	}
	n := sc.config.GetInt("teams")
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("Team %d", i+1)
	}
	lg, err := league.NewLeague(names, scoring, rules,
		sc.config.GetInt("weeks"), sc.config.GetInt("playoff-teams"))
	if err != nil {
		return nil, err
	}

	// Snake draft by ADP until active rosters are full.
	byADP := sc.pool.ByADP()
	rounds := rules.MaxActive()
	idx := 0
	for round := 0; round < rounds; round++ {
		for slot := 0; slot < n; slot++ {
			team := slot
			if round%2 == 1 {
				team = n - 1 - slot
			}
			for idx < len(byADP) {
				p := byADP[idx]
				idx++
				if err := lg.Teams[team].Roster.AddPlayer(p, rules); err == nil {
					break
				}
			}
		}
	}
	return lg, nil
}

func (sc *ShellController) requireLeague() error {
	if sc.lg == nil {
		return errors.New("load a league first with `load league`")
	}
	return nil
}

func (sc *ShellController) requireProjections() error {
	if sc.projections == nil {
		return errors.New("load projections first with `load projections`")
	}
	return nil
}

func (sc *ShellController) standings(cmd *shellcmd) (*Response, error) {
	if err := sc.requireLeague(); err != nil {
		return nil, err
	}
	records := sc.lg.Records
	if len(records) == 0 {
		records = make([]league.Record, len(sc.lg.Teams))
		for i := range records {
			records[i].Team = i
		}
	}
	sorted := league.SortRecords(records)
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-4s%-16s%4s%4s%4s%10s\n", "#", "team", "W", "L", "T", "PF")
	for i, r := range sorted {
		fmt.Fprintf(&sb, "%-4d%-16s%4d%4d%4d%10.1f\n", i+1,
			sc.lg.Teams[r.Team].Name, r.Wins, r.Losses, r.Ties, r.PointsFor)
	}
	return msg(sb.String()), nil
}

func (sc *ShellController) scheduleCmd(cmd *shellcmd) (*Response, error) {
	if err := sc.requireLeague(); err != nil {
		return nil, err
	}
	week := sc.lg.CurrentWeek
	if len(cmd.args) > 0 {
		w, err := strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, err
		}
		week = w - 1
	}
	matchups, err := sc.lg.Schedule.WeekMatchups(week)
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "week %d\n", week+1)
	for _, m := range matchups {
		fmt.Fprintf(&sb, "  %s at %s\n", sc.lg.Teams[m.Away].Name, sc.lg.Teams[m.Home].Name)
	}
	return msg(sb.String()), nil
}

func (sc *ShellController) roster(cmd *shellcmd) (*Response, error) {
	if err := sc.requireLeague(); err != nil {
		return nil, err
	}
	team := sc.myTeam
	if len(cmd.args) > 0 {
		t, err := strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, err
		}
		team = t
	}
	if team < 0 || team >= len(sc.lg.Teams) {
		return nil, fmt.Errorf("team index %d out of range", team)
	}
	r := sc.lg.Teams[team].Roster
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", sc.lg.Teams[team].Name)
	for _, p := range r.Active {
		fmt.Fprintf(&sb, "  %-24s %-3s age %.1f\n", p.Name, p.Pos, p.Age)
	}
	for _, p := range r.Taxi {
		fmt.Fprintf(&sb, "  %-24s %-3s age %.1f (taxi)\n", p.Name, p.Pos, p.Age)
	}
	for _, pk := range r.Picks {
		fmt.Fprintf(&sb, "  %s\n", pk)
	}
	return msg(sb.String()), nil
}

// parsePickSpecs parses "2027:1,2028:2" into draft picks.
func parsePickSpecs(spec string) ([]league.DraftPick, error) {
	if spec == "" {
		return nil, nil
	}
	var picks []league.DraftPick
	for _, part := range strings.Split(spec, ",") {
		var season, round int
		if _, err := fmt.Sscanf(part, "%d:%d", &season, &round); err != nil {
			return nil, fmt.Errorf("bad pick spec %q (want season:round)", part)
		}
		picks = append(picks, league.DraftPick{Season: season, Round: round})
	}
	return picks, nil
}

func splitIDs(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func (sc *ShellController) resolvePlayers(ids []string) ([]*player.Player, error) {
	if sc.pool == nil {
		return nil, errors.New("load a league first with `load league`")
	}
	players := make([]*player.Player, 0, len(ids))
	for _, id := range ids {
		p, ok := sc.pool.Get(id)
		if !ok {
			return nil, fmt.Errorf("unknown player %q", id)
		}
		players = append(players, p)
	}
	return players, nil
}

// scenario manages the candidate move list:
//
//	scenario trade <team#> -give a,b -get c,d [-givepicks 2027:1] [-getpicks ...]
//	scenario adddrop -add <id> -drop <id>
//	scenario list | clear
func (sc *ShellController) scenario(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: scenario trade|adddrop|list|clear")
	}
	switch cmd.args[0] {
	case "list":
		if len(sc.scenarios) == 0 {
			return msg("no scenarios; stand pat is always included"), nil
		}
		var sb strings.Builder
		for i, s := range sc.scenarios {
			fmt.Fprintf(&sb, "%d: %s\n", i+1, s.Name)
		}
		return msg(sb.String()), nil
	case "clear":
		sc.scenarios = nil
		return msg("cleared scenarios"), nil
	case "trade":
		if err := sc.requireLeague(); err != nil {
			return nil, err
		}
		if len(cmd.args) < 2 {
			return nil, errors.New("usage: scenario trade <team#> -give ... -get ...")
		}
		with, err := strconv.Atoi(cmd.args[1])
		if err != nil {
			return nil, err
		}
		if with < 0 || with >= len(sc.lg.Teams) || with == sc.myTeam {
			return nil, fmt.Errorf("bad counterparty team %d", with)
		}
		givePicks, err := parsePickSpecs(cmd.options.String("givepicks"))
		if err != nil {
			return nil, err
		}
		getPicks, err := parsePickSpecs(cmd.options.String("getpicks"))
		if err != nil {
			return nil, err
		}
		trade := &league.Trade{
			With:         with,
			Give:         splitIDs(cmd.options.String("give")),
			Receive:      splitIDs(cmd.options.String("get")),
			GivePicks:    givePicks,
			ReceivePicks: getPicks,
		}
		sc.scenarios = append(sc.scenarios, montecarlo.Scenario{
			Name:  trade.String(),
			Moves: []league.Move{trade},
		})
		return msg("added scenario: " + trade.String()), nil
	case "adddrop":
		addID := cmd.options.String("add")
		dropID := cmd.options.String("drop")
		if addID == "" || dropID == "" {
			return nil, errors.New("usage: scenario adddrop -add <id> -drop <id>")
		}
		added, err := sc.resolvePlayers([]string{addID})
		if err != nil {
			return nil, err
		}
		move := &league.AddDrop{Add: added[0], Drop: dropID}
		sc.scenarios = append(sc.scenarios, montecarlo.Scenario{
			Name:  move.String(),
			Moves: []league.Move{move},
		})
		return msg("added scenario: " + move.String()), nil
	}
	return nil, fmt.Errorf("don't know scenario subcommand %q", cmd.args[0])
}

// trade prices a trade without simulating:
//
//	trade -give a,b -get c,d [-givepicks 2027:1] [-getpicks ...] [-window contend]
func (sc *ShellController) trade(cmd *shellcmd) (*Response, error) {
	give, err := sc.resolvePlayers(splitIDs(cmd.options.String("give")))
	if err != nil {
		return nil, err
	}
	receive, err := sc.resolvePlayers(splitIDs(cmd.options.String("get")))
	if err != nil {
		return nil, err
	}
	givePicks, err := parsePickSpecs(cmd.options.String("givepicks"))
	if err != nil {
		return nil, err
	}
	getPicks, err := parsePickSpecs(cmd.options.String("getpicks"))
	if err != nil {
		return nil, err
	}
	window := valuation.Retool
	switch w := cmd.options.String("window"); w {
	case "", "retool":
	case "rebuild":
		window = valuation.Rebuild
	case "contend":
		window = valuation.Contend
	case "auto":
		if err := sc.requireLeague(); err != nil {
			return nil, err
		}
		if err := sc.requireProjections(); err != nil {
			return nil, err
		}
		window = valuation.ClassifyWindow(sc.lg.Teams[sc.myTeam].Roster,
			sc.lg.Rules, sc.projections, sc.calc)
	default:
		return nil, fmt.Errorf("unknown window %q", w)
	}
	rep := sc.evaluator.Evaluate(give, receive, givePicks, getPicks, window)
	return msg(rep.String()), nil
}

// tiers clusters a position into value tiers: `tiers RB [-k 5]`.
func (sc *ShellController) tiers(cmd *shellcmd) (*Response, error) {
	if sc.pool == nil {
		return nil, errors.New("load a league first with `load league`")
	}
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: tiers <pos> [-k n]")
	}
	pos, err := player.ParsePosition(cmd.args[0])
	if err != nil {
		return nil, err
	}
	k, err := cmd.options.IntDefault("k", 5)
	if err != nil {
		return nil, err
	}
	tiers, err := cluster.TierPosition(sc.pool, pos, k, sc.calc, sc.seed)
	if err != nil {
		return nil, err
	}
	return msg(cluster.FormatTiers(tiers, sc.calc)), nil
}

// curve fits a production-by-age polynomial for a position from the loaded
// pool and projections: `curve RB [-degree 2]`.
func (sc *ShellController) curve(cmd *shellcmd) (*Response, error) {
	if sc.pool == nil {
		return nil, errors.New("load a league first with `load league`")
	}
	if err := sc.requireProjections(); err != nil {
		return nil, err
	}
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: curve <pos> [-degree n]")
	}
	pos, err := player.ParsePosition(cmd.args[0])
	if err != nil {
		return nil, err
	}
	degree, err := cmd.options.IntDefault("degree", 2)
	if err != nil {
		return nil, err
	}
	var pts []regression.AgePoint
	for _, p := range sc.pool.ByPosition(pos) {
		if d, ok := sc.projections.Weekly(p); ok {
			pts = append(pts, regression.AgePoint{Age: p.Age, Points: d.Mean})
		}
	}
	curve, err := regression.FitAgeCurve(pts, degree)
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s age curve (degree %d, n=%d): peak age %.1f, R²=%.3f\n",
		pos, degree, len(pts), curve.PeakAge(), curve.R2)
	for age := 21.0; age <= 33; age += 2 {
		fmt.Fprintf(&sb, "  age %2.0f: %6.2f proj pts/week\n", age, curve.Eval(age))
	}
	return msg(sb.String()), nil
}

// adp refreshes ADP from a feed: `adp fetch <url>`.
func (sc *ShellController) adp(cmd *shellcmd) (*Response, error) {
	if sc.pool == nil {
		return nil, errors.New("load a league first with `load league`")
	}
	if len(cmd.args) < 2 || cmd.args[0] != "fetch" {
		return nil, errors.New("usage: adp fetch <url>")
	}
	feed, err := dataloaders.FetchADP(context.Background(), http.DefaultClient, cmd.args[1])
	if err != nil {
		return nil, err
	}
	updated := dataloaders.ApplyADP(sc.pool, feed)
	return msg(fmt.Sprintf("updated ADP for %d of %d players", updated, sc.pool.Len())), nil
}

// history lists stored sim runs: `history [-n 10]`.
func (sc *ShellController) history(cmd *shellcmd) (*Response, error) {
	if sc.store == nil {
		return nil, errors.New("open the store first with `load store`")
	}
	n, err := cmd.options.IntDefault("n", 10)
	if err != nil {
		return nil, err
	}
	runs, err := sc.store.ListSimRuns(context.Background(), n)
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	for _, r := range runs {
		fmt.Fprintf(&sb, "%s  %-30s iters %-7d title %.3f playoff %.3f wins %.2f\n",
			r.RanAt.Format("2006-01-02 15:04"), r.Scenario, r.Iterations,
			r.TitleProb, r.PlayoffProb, r.MeanWins)
	}
	if sb.Len() == 0 {
		return msg("no stored sim runs"), nil
	}
	return msg(sb.String()), nil
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		settings := sc.config.SanitizedSettings()
		keys := make([]string, 0, len(settings))
		for k := range settings {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var sb strings.Builder
		for _, k := range keys {
			fmt.Fprintf(&sb, "%s: %v\n", k, settings[k])
		}
		return msg(sb.String()), nil
	}
	if len(cmd.args) < 2 {
		return nil, errors.New("usage: set <key> <value>")
	}
	sc.config.Set(cmd.args[0], cmd.args[1])
	return msg("set " + cmd.args[0] + " to " + cmd.args[1]), nil
}

func (sc *ShellController) setSeed(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(fmt.Sprintf("seed is %d", sc.seed)), nil
	}
	seed, err := strconv.ParseUint(cmd.args[0], 10, 64)
	if err != nil {
		return nil, err
	}
	sc.seed = seed
	log.Debug().Uint64("seed", seed).Msg("set seed")
	return msg(fmt.Sprintf("set seed to %d", seed)), nil
}
