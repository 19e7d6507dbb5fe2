package valuation

import (
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"

	"github.com/gridironlab/dynasty/league"
	"github.com/gridironlab/dynasty/player"
)

// Verdict classifies a trade from the perspective of the side being
// analyzed.
type Verdict int

const (
	Even Verdict = iota
	Win
	Loss
)

func (v Verdict) String() string {
	switch v {
	case Win:
		return "win"
	case Loss:
		return "loss"
	}
	return "even"
}

// Report is the result of evaluating a trade.
type Report struct {
	GiveValue    float64
	ReceiveValue float64
	Margin       float64 // receive - give
	MarginPct    float64 // margin relative to the larger side
	Verdict      Verdict
	Window       Window
	Notes        []string
}

func (r Report) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "give %.0f, receive %.0f (margin %+.0f, %+.1f%%): %s",
		r.GiveValue, r.ReceiveValue, r.Margin, r.MarginPct*100, r.Verdict)
	for _, n := range r.Notes {
		sb.WriteString("\n  - ")
		sb.WriteString(n)
	}
	return sb.String()
}

// TradeEvaluator prices both sides of a trade and applies the timeline
// adjustment the strategy consensus calls for: contenders should pay up for
// now-production, rebuilders should prefer picks and youth.
type TradeEvaluator struct {
	Calc  Calculator
	Picks *PickValuer
	// EvenBand is the fraction within which a trade is called even.
	EvenBand float64
	// TimelineBonus scales how much window fit moves the needle.
	TimelineBonus float64
}

func NewTradeEvaluator(calc Calculator, picks *PickValuer) *TradeEvaluator {
	return &TradeEvaluator{Calc: calc, Picks: picks, EvenBand: 0.05, TimelineBonus: 0.10}
}

// Evaluate prices a trade for the team whose window is given. givePlayers/
// receivePlayers are resolved players; picks are priced by the PickValuer.
func (e *TradeEvaluator) Evaluate(
	givePlayers, receivePlayers []*player.Player,
	givePicks, receivePicks []league.DraftPick,
	window Window) Report {

	rep := Report{Window: window}

	rep.GiveValue = lo.SumBy(givePlayers, func(p *player.Player) float64 { return e.Calc.Value(p) }) +
		lo.SumBy(givePicks, func(p league.DraftPick) float64 { return e.Picks.Value(p) })
	rep.ReceiveValue = lo.SumBy(receivePlayers, func(p *player.Player) float64 { return e.Calc.Value(p) }) +
		lo.SumBy(receivePicks, func(p league.DraftPick) float64 { return e.Picks.Value(p) })

	// Timeline fit: picks received count extra for rebuilders and less for
	// contenders, and vice versa for the pick side given away.
	pickIn := lo.SumBy(receivePicks, func(p league.DraftPick) float64 { return e.Picks.Value(p) })
	pickOut := lo.SumBy(givePicks, func(p league.DraftPick) float64 { return e.Picks.Value(p) })
	switch window {
	case Rebuild:
		if pickIn > 0 {
			rep.ReceiveValue += pickIn * e.TimelineBonus
			rep.Notes = append(rep.Notes, "rebuild window: incoming picks valued up")
		}
		if pickOut > 0 {
			rep.Notes = append(rep.Notes, "rebuild window: trading picks away cuts against the timeline")
		}
	case Contend:
		if pickIn > 0 {
			rep.ReceiveValue -= pickIn * e.TimelineBonus
			rep.Notes = append(rep.Notes, "contend window: incoming picks valued down; you need production now")
		}
	}

	rep.Margin = rep.ReceiveValue - rep.GiveValue
	larger := math.Max(rep.GiveValue, rep.ReceiveValue)
	if larger > 0 {
		rep.MarginPct = rep.Margin / larger
	}
	switch {
	case math.Abs(rep.MarginPct) <= e.EvenBand:
		rep.Verdict = Even
	case rep.Margin > 0:
		rep.Verdict = Win
	default:
		rep.Verdict = Loss
	}
	return rep
}
