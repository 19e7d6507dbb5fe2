// import_players loads the players CSV into the sqlite store in one shot.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gridironlab/dynasty/config"
	"github.com/gridironlab/dynasty/dataloaders"
	"github.com/gridironlab/dynasty/store"
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
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	pool, err := dataloaders.LoadPlayerPool(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("loading player pool")
	}

	st, err := store.Open(cfg.GetString("db-path"))
	if err != nil {
		log.Fatal().Err(err).Msg("opening store")
	}
	defer st.Close()

	if err := st.SavePlayers(context.Background(), pool.ByADP()); err != nil {
		log.Fatal().Err(err).Msg("saving players")
	}
	log.Info().Int("players", pool.Len()).
		Str("db", cfg.GetString("db-path")).Msg("imported players")
}
