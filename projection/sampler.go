package projection

import (
	"encoding/binary"

	"gonum.org/v1/gonum/stat/distuv"
	"lukechampine.com/frand"
)

// Sampler draws weekly scores from a Source's distributions. Scores are
// normal draws truncated at zero (you cannot score negative points in any
// format we model). With a fixed seed the draw sequence is reproducible,
// which the tests and the sim's debug logs rely on.
type Sampler struct {
	rng *frand.RNG
}

func NewSampler() *Sampler {
	return &Sampler{rng: frand.New()}
}

// NewSeededSampler is deterministic for a given seed.
func NewSeededSampler(seed uint64) *Sampler {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	binary.LittleEndian.PutUint64(key[8:16], ^seed)
	return &Sampler{rng: frand.NewCustom(key[:], 1024, 12)}
}

// Sample draws one weekly score.
func (s *Sampler) Sample(d Dist) float64 {
	if s.rng.Float64() > d.playProb() {
		// Inactive this week.
		return 0
	}
	if d.Stdev <= 0 {
		if d.Mean < 0 {
			return 0
		}
		return d.Mean
	}
	u := s.rng.Float64()
	// Quantile is unbounded at the extremes; keep u strictly inside (0, 1).
	if u < 1e-12 {
		u = 1e-12
	} else if u > 1-1e-12 {
		u = 1 - 1e-12
	}
	x := distuv.Normal{Mu: d.Mean, Sigma: d.Stdev}.Quantile(u)
	if x < 0 {
		return 0
	}
	return x
}

// Float64 exposes the underlying uniform stream for callers that need
// auxiliary randomness (e.g. k-means seeding, tie jitter).
func (s *Sampler) Float64() float64 {
	return s.rng.Float64()
}

// Intn returns a uniform int in [0, n).
func (s *Sampler) Intn(n int) int {
	return s.rng.Intn(n)
}
