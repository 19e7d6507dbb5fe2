// Package bot runs a NATS responder that prices trades on request, so a
// league chat bot or web frontend can ask for verdicts without linking the
// whole engine.
package bot

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/gridironlab/dynasty/config"
	"github.com/gridironlab/dynasty/league"
	"github.com/gridironlab/dynasty/player"
	"github.com/gridironlab/dynasty/valuation"
)

// EvalChannel is the subject trade evaluation requests arrive on.
const EvalChannel = "dynasty.eval.trade"

// PickRequest is a draft pick in a trade request.
type PickRequest struct {
	Season int `json:"season"`
	Round  int `json:"round"`
}

// TradeRequest asks for a verdict on a trade from one side's perspective.
// Player fields are player ids from the loaded pool.
type TradeRequest struct {
	Give         []string      `json:"give"`
	Receive      []string      `json:"receive"`
	GivePicks    []PickRequest `json:"give_picks,omitempty"`
	ReceivePicks []PickRequest `json:"receive_picks,omitempty"`
	// Window is rebuild, retool, or contend; empty defaults to retool.
	Window string `json:"window,omitempty"`
}

// TradeResponse carries the priced trade, or an error.
type TradeResponse struct {
	Error        string   `json:"error,omitempty"`
	Verdict      string   `json:"verdict,omitempty"`
	GiveValue    float64  `json:"give_value,omitempty"`
	ReceiveValue float64  `json:"receive_value,omitempty"`
	Margin       float64  `json:"margin,omitempty"`
	MarginPct    float64  `json:"margin_pct,omitempty"`
	Notes        []string `json:"notes,omitempty"`
}

type Bot struct {
	config    *config.Config
	pool      *player.Pool
	evaluator *valuation.TradeEvaluator
}

func NewBot(cfg *config.Config, pool *player.Pool, ev *valuation.TradeEvaluator) *Bot {
	return &Bot{config: cfg, pool: pool, evaluator: ev}
}

func errorResponse(message string, err error) *TradeResponse {
	msg := message
	if err != nil {
		msg = fmt.Sprintf("%s: %s", msg, err.Error())
	}
	return &TradeResponse{Error: msg}
}

func (bot *Bot) resolve(ids []string) ([]*player.Player, error) {
	players := make([]*player.Player, 0, len(ids))
	for _, id := range ids {
		p, ok := bot.pool.Get(id)
		if !ok {
			return nil, fmt.Errorf("unknown player %q", id)
		}
		players = append(players, p)
	}
	return players, nil
}

func parseWindow(s string) (valuation.Window, error) {
	switch s {
	case "", "retool":
		return valuation.Retool, nil
	case "rebuild":
		return valuation.Rebuild, nil
	case "contend":
		return valuation.Contend, nil
	}
	return 0, fmt.Errorf("unknown window %q", s)
}

func toPicks(reqs []PickRequest) []league.DraftPick {
	picks := make([]league.DraftPick, len(reqs))
	for i, r := range reqs {
		picks[i] = league.DraftPick{Season: r.Season, Round: r.Round}
	}
	return picks
}

func (bot *Bot) handle(data []byte) *TradeResponse {
	var req TradeRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return errorResponse("Could not parse request", err)
	}
	if len(req.Give)+len(req.GivePicks)+len(req.Receive)+len(req.ReceivePicks) == 0 {
		return errorResponse("empty trade", nil)
	}
	give, err := bot.resolve(req.Give)
	if err != nil {
		return errorResponse("give side", err)
	}
	receive, err := bot.resolve(req.Receive)
	if err != nil {
		return errorResponse("receive side", err)
	}
	window, err := parseWindow(req.Window)
	if err != nil {
		return errorResponse("window", err)
	}

	rep := bot.evaluator.Evaluate(give, receive, toPicks(req.GivePicks),
		toPicks(req.ReceivePicks), window)
	log.Info().Str("verdict", rep.Verdict.String()).
		Float64("margin", rep.Margin).Msg("evaluated trade")

	return &TradeResponse{
		Verdict:      rep.Verdict.String(),
		GiveValue:    rep.GiveValue,
		ReceiveValue: rep.ReceiveValue,
		Margin:       rep.Margin,
		MarginPct:    rep.MarginPct,
		Notes:        rep.Notes,
	}
}

func Main(channel string, bot *Bot) {
	nc, err := nats.Connect(bot.config.GetString("nats-url"))
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to nats")
	}
	// Simple Async Subscriber
	nc.Subscribe(channel, func(m *nats.Msg) {
		log.Info().Msgf("RECV: %d bytes", len(m.Data))
		resp := bot.handle(m.Data)
		data, err := json.Marshal(resp)
		if err != nil {
			// Should never happen, ideally, but we need to do something sensible here.
			m.Respond([]byte(err.Error()))
		} else {
			m.Respond(data)
		}
	})
	nc.Flush()

	if err := nc.LastError(); err != nil {
		log.Fatal().Err(err).Msg("nats subscription")
	}

	log.Info().Msgf("Listening on [%s]", channel)

	runtime.Goexit()
	fmt.Println("exiting")
}
