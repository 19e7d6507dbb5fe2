// The bot binary serves trade evaluations over NATS.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gridironlab/dynasty/bot"
	"github.com/gridironlab/dynasty/config"
	"github.com/gridironlab/dynasty/dataloaders"
	"github.com/gridironlab/dynasty/valuation"
)

func main() {
	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}
	exPath := filepath.Dir(ex)

	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg.AdjustRelativePaths(exPath)

	if cfg.GetBool("debug") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	pool, err := dataloaders.LoadPlayerPool(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("loading player pool")
	}
	calc := valuation.NewAgeCurveCalculator(valuation.NewMarketCalculator(), nil)
	ev := valuation.NewTradeEvaluator(calc, valuation.NewPickValuer(time.Now().Year()))

	b := bot.NewBot(cfg, pool, ev)
	bot.Main(bot.EvalChannel, b)
}
