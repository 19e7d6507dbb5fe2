package dataloaders

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/gridironlab/dynasty/cache"
	"github.com/gridironlab/dynasty/config"
	"github.com/gridironlab/dynasty/projection"
)

func ProjectionsPath(cfg *config.Config) string {
	return filepath.Join(cfg.GetString("data-path"), "projections.csv")
}

// LoadProjections reads projections.csv through the global object cache.
func LoadProjections(cfg *config.Config) (*projection.Static, error) {
	path := ProjectionsPath(cfg)
	fp, err := fingerprint(path)
	if err != nil {
		return nil, err
	}
	key := "proj:" + fp
	expireStale("proj", key)
	obj, err := cache.Load(cfg, key, func(cfg *config.Config, _ string) (interface{}, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		src, err := ParseProjectionsCSV(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		log.Info().Int("projections", src.Len()).Str("path", path).Msg("loaded projection file")
		return src, nil
	})
	if err != nil {
		return nil, err
	}
	return obj.(*projection.Static), nil
}

var projectionsHeader = []string{"player_id", "mean", "stdev", "play_prob", "rec"}

// ParseProjectionsCSV parses the weekly projection file. Columns: player_id,
// mean, stdev, play_prob, rec. play_prob may be empty (treated as 1); rec is
// receptions per game and may be empty for players without reception volume.
func ParseProjectionsCSV(r io.Reader) (*projection.Static, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if err := checkHeader(header, projectionsHeader); err != nil {
		return nil, err
	}

	src := projection.NewStatic(nil)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		var d projection.Dist
		if d.Mean, err = parseFloat(rec[1], "mean", line); err != nil {
			return nil, err
		}
		if d.Stdev, err = parseFloat(rec[2], "stdev", line); err != nil {
			return nil, err
		}
		if d.Stdev < 0 {
			return nil, fmt.Errorf("line %d: negative stdev", line)
		}
		if rec[3] != "" {
			if d.PlayProb, err = parseFloat(rec[3], "play_prob", line); err != nil {
				return nil, err
			}
			if d.PlayProb < 0 || d.PlayProb > 1 {
				return nil, fmt.Errorf("line %d: play_prob out of [0,1]", line)
			}
		}
		if rec[4] != "" {
			if d.Rec, err = parseFloat(rec[4], "rec", line); err != nil {
				return nil, err
			}
			if d.Rec < 0 {
				return nil, fmt.Errorf("line %d: negative rec", line)
			}
		}
		src.Set(rec[0], d)
	}
	return src, nil
}
