// Package dataloaders reads player, projection, and ADP data from the data
// directory (and, for ADP, over HTTP), caching parsed objects keyed by a
// content fingerprint so edits to the files are picked up.
package dataloaders

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"

	"github.com/gridironlab/dynasty/cache"
	"github.com/gridironlab/dynasty/config"
	"github.com/gridironlab/dynasty/player"
)

func PlayersPath(cfg *config.Config) string {
	return filepath.Join(cfg.GetString("data-path"), "players.csv")
}

// fingerprint hashes a file's contents so the cache key changes when the
// file does.
func fingerprint(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s@%x", path, h.Sum64()), nil
}

// activeKeys tracks the cache key currently in use per data file. A changed
// file gets a new fingerprint, so the superseded entry is evicted instead of
// lingering in the cache forever.
var activeKeys sync.Map

func expireStale(kind, key string) {
	prev, ok := activeKeys.Load(kind)
	activeKeys.Store(kind, key)
	if ok && prev.(string) != key {
		cache.Expire(prev.(string))
	}
}

// LoadPlayerPool reads players.csv from the data directory, through the
// global object cache.
func LoadPlayerPool(cfg *config.Config) (*player.Pool, error) {
	path := PlayersPath(cfg)
	fp, err := fingerprint(path)
	if err != nil {
		return nil, err
	}
	key := "pool:" + fp
	expireStale("pool", key)
	obj, err := cache.Load(cfg, key, func(cfg *config.Config, _ string) (interface{}, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		players, err := ParsePlayersCSV(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		log.Info().Int("players", len(players)).Str("path", path).Msg("loaded player file")
		return player.NewPool(players)
	})
	if err != nil {
		return nil, err
	}
	return obj.(*player.Pool), nil
}

var playersHeader = []string{"id", "name", "team", "pos", "age", "exp", "adp", "market_value"}

// ParsePlayersCSV parses the players file. Columns: id, name, team, pos,
// age, exp, adp, market_value. adp and market_value may be empty.
func ParsePlayersCSV(r io.Reader) ([]*player.Player, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if err := checkHeader(header, playersHeader); err != nil {
		return nil, err
	}

	var players []*player.Player
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		p := &player.Player{ID: rec[0], Name: rec[1], Team: rec[2]}
		p.Pos, err = player.ParsePosition(rec[3])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if p.Age, err = parseFloat(rec[4], "age", line); err != nil {
			return nil, err
		}
		exp, err := strconv.Atoi(rec[5])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad exp %q", line, rec[5])
		}
		p.Experience = exp
		if rec[6] != "" {
			if p.ADP, err = parseFloat(rec[6], "adp", line); err != nil {
				return nil, err
			}
		}
		if rec[7] != "" {
			if p.MarketValue, err = parseFloat(rec[7], "market_value", line); err != nil {
				return nil, err
			}
		}
		players = append(players, p)
	}
	return players, nil
}

func checkHeader(got, want []string) error {
	if len(got) != len(want) {
		return fmt.Errorf("header has %d columns, want %d (%v)", len(got), len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			return fmt.Errorf("header column %d is %q, want %q", i+1, got[i], want[i])
		}
	}
	return nil
}

func parseFloat(s, field string, line int) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: bad %s %q", line, field, s)
	}
	return v, nil
}
