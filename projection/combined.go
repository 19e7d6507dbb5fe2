package projection

import (
	"errors"
	"math"

	"github.com/gridironlab/dynasty/player"
)

// Combined blends several sources with normalized weights. A player unknown
// to every source is unknown to the blend; sources that do not know the
// player are simply left out of their share.
type Combined struct {
	sources []Source
	weights []float64
}

func NewCombined(sources []Source, weights []float64) (*Combined, error) {
	if len(sources) == 0 {
		return nil, errors.New("need at least one source")
	}
	if len(sources) != len(weights) {
		return nil, errors.New("sources and weights must have the same length")
	}
	total := 0.0
	for _, w := range weights {
		if w < 0 {
			return nil, errors.New("weights must be non-negative")
		}
		total += w
	}
	if total == 0 {
		return nil, errors.New("weights sum to zero")
	}
	normalized := make([]float64, len(weights))
	for i, w := range weights {
		normalized[i] = w / total
	}
	return &Combined{sources: sources, weights: normalized}, nil
}

func (c *Combined) Weekly(p *player.Player) (Dist, bool) {
	var mean, variance, playProb, used float64
	for i, src := range c.sources {
		d, ok := src.Weekly(p)
		if !ok {
			continue
		}
		w := c.weights[i]
		mean += w * d.Mean
		variance += w * d.Stdev * d.Stdev
		playProb += w * d.playProb()
		used += w
	}
	if used == 0 {
		return Dist{}, false
	}
	return Dist{
		Mean:     mean / used,
		Stdev:    math.Sqrt(variance / used),
		PlayProb: playProb / used,
	}, true
}
