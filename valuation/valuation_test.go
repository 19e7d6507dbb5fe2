package valuation

import (
	"testing"

	"github.com/matryer/is"

	"github.com/gridironlab/dynasty/league"
	"github.com/gridironlab/dynasty/player"
	"github.com/gridironlab/dynasty/projection"
)

func TestMarketCalculatorDecays(t *testing.T) {
	is := is.New(t)
	m := NewMarketCalculator()
	p1 := &player.Player{ADP: 1}
	p25 := &player.Player{ADP: 25}
	p100 := &player.Player{ADP: 100}
	is.Equal(m.Value(p1), 10000.0)
	is.True(m.Value(p25) < m.Value(p1))
	is.True(m.Value(p100) < m.Value(p25))
	is.True(m.Value(p100) > 0)

	explicit := &player.Player{ADP: 1, MarketValue: 1234}
	is.Equal(m.Value(explicit), 1234.0)
	is.Equal(m.Value(&player.Player{}), 0.0)
}

func TestAgeCurveCalculatorDiscountsOldRB(t *testing.T) {
	is := is.New(t)
	base := NewMarketCalculator()
	calc := NewAgeCurveCalculator(base, nil)
	young := &player.Player{Pos: player.RB, Age: 23, ADP: 10}
	old := &player.Player{Pos: player.RB, Age: 29, ADP: 10}
	is.True(calc.Value(old) < calc.Value(young))
	is.True(calc.Value(old) < base.Value(old))
}

func TestProductionCalculator(t *testing.T) {
	is := is.New(t)
	src := projection.NewStatic(map[string]projection.Dist{
		"stud":  {Mean: 18, Stdev: 5},
		"scrub": {Mean: 4, Stdev: 3},
	})
	calc := NewProductionCalculator(src, projection.DefaultBaseline())
	stud := &player.Player{ID: "stud", Pos: player.RB}
	scrub := &player.Player{ID: "scrub", Pos: player.RB}
	is.True(calc.Value(stud) > 0)
	is.Equal(calc.Value(scrub), 0.0) // below replacement
	is.Equal(calc.Value(&player.Player{ID: "unknown"}), 0.0)
}

func TestPickValueMonotonic(t *testing.T) {
	is := is.New(t)
	v := NewPickValuer(2026)
	r1 := league.DraftPick{Season: 2026, Round: 1}
	r2 := league.DraftPick{Season: 2026, Round: 2}
	r5 := league.DraftPick{Season: 2026, Round: 5}
	is.True(v.Value(r1) > v.Value(r2))
	is.True(v.Value(r2) > v.Value(r5))
	is.True(v.Value(r5) > 0)

	future := league.DraftPick{Season: 2028, Round: 1}
	is.True(v.Value(future) < v.Value(r1))

	v.RookieFever = true
	is.True(v.Value(r1) > 5500)
}

func TestCombinedCalculator(t *testing.T) {
	is := is.New(t)
	m := NewMarketCalculator()
	c, err := NewCombined([]Calculator{m, m}, []float64{1, 1})
	is.NoErr(err)
	p := &player.Player{ADP: 10}
	is.Equal(c.Value(p), m.Value(p))

	_, err = NewCombined(nil, nil)
	is.True(err != nil)
	_, err = NewCombined([]Calculator{m}, []float64{0})
	is.True(err != nil)
}

func TestTradeEvaluatorVerdicts(t *testing.T) {
	is := is.New(t)
	calc := NewMarketCalculator()
	ev := NewTradeEvaluator(calc, NewPickValuer(2026))

	stud := &player.Player{Name: "Stud", ADP: 2}
	mid := &player.Player{Name: "Mid", ADP: 40}

	rep := ev.Evaluate([]*player.Player{mid}, []*player.Player{stud}, nil, nil, Retool)
	is.Equal(rep.Verdict, Win)
	is.True(rep.Margin > 0)

	rep = ev.Evaluate([]*player.Player{stud}, []*player.Player{mid}, nil, nil, Retool)
	is.Equal(rep.Verdict, Loss)

	rep = ev.Evaluate([]*player.Player{stud}, []*player.Player{stud}, nil, nil, Retool)
	is.Equal(rep.Verdict, Even)
}

func TestTradeEvaluatorTimeline(t *testing.T) {
	is := is.New(t)
	calc := NewMarketCalculator()
	ev := NewTradeEvaluator(calc, NewPickValuer(2026))

	pick := league.DraftPick{Season: 2027, Round: 1}
	// A rebuilder receiving a pick gets a timeline bonus; a contender
	// receiving the same pick gets docked.
	rebuild := ev.Evaluate(nil, nil, nil, []league.DraftPick{pick}, Rebuild)
	contend := ev.Evaluate(nil, nil, nil, []league.DraftPick{pick}, Contend)
	is.True(rebuild.ReceiveValue > contend.ReceiveValue)
	is.True(len(rebuild.Notes) > 0)
}

func TestClassifyWindow(t *testing.T) {
	is := is.New(t)
	rules := league.RosterRules{SlotQB: 1, SlotRB: 1, SlotWR: 1, Bench: 3}
	calc := NewMarketCalculator()

	contender := &league.Roster{}
	src := projection.NewStatic(nil)
	add := func(r *league.Roster, id string, pos player.Position, age, mean, adp float64) {
		p := &player.Player{ID: id, Name: id, Pos: pos, Age: age, ADP: adp}
		is.NoErr(r.AddPlayer(p, rules))
		src.Set(id, projection.Dist{Mean: mean, Stdev: 4})
	}
	add(contender, "qb", player.QB, 28, 22, 15)
	add(contender, "rb", player.RB, 26, 17, 5)
	add(contender, "wr", player.WR, 27, 16, 8)
	is.Equal(ClassifyWindow(contender, rules, src, calc), Contend)

	rebuilder := &league.Roster{}
	add(rebuilder, "qb2", player.QB, 33, 9, 150)
	add(rebuilder, "rb2", player.RB, 29, 5, 160)
	add(rebuilder, "wr2", player.WR, 30, 6, 170)
	is.Equal(ClassifyWindow(rebuilder, rules, src, calc), Rebuild)

	is.Equal(ClassifyWindow(&league.Roster{}, rules, src, calc), Rebuild)
}
