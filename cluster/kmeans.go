// Package cluster groups players into tiers with k-means. Tiering on value
// (rather than straight ranking) is what makes "trade down within a tier"
// advice actionable: gaps between tiers matter, gaps within them don't.
package cluster

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"lukechampine.com/frand"
)

var ErrTooFewPoints = errors.New("fewer points than clusters")

// Result is a finished k-means run.
type Result struct {
	Centroids  [][]float64
	Assignment []int // index into Centroids per input point
	WCSS       float64
	Iterations int
}

// KMeans clusters points into k groups, seeding with k-means++ so runs are
// both good and reproducible for a given seed.
func KMeans(points [][]float64, k int, seed uint64) (*Result, error) {
	if k < 1 {
		return nil, errors.New("k must be at least 1")
	}
	if len(points) < k {
		return nil, ErrTooFewPoints
	}
	dim := len(points[0])
	for i, p := range points {
		if len(p) != dim {
			return nil, fmt.Errorf("point %d has dimension %d, want %d", i, len(p), dim)
		}
	}

	var key [32]byte
	for i := 0; i < 8; i++ {
		key[i] = byte(seed >> (8 * i))
	}
	rng := frand.NewCustom(key[:], 1024, 12)

	centroids := seedPlusPlus(points, k, rng)
	assignment := make([]int, len(points))

	const maxIter = 200
	iters := 0
	for ; iters < maxIter; iters++ {
		changed := false
		for i, p := range points {
			best := nearest(p, centroids)
			if assignment[i] != best {
				assignment[i] = best
				changed = true
			}
		}
		if !changed && iters > 0 {
			break
		}

		sums := make([][]float64, k)
		counts := make([]int, k)
		for c := range sums {
			sums[c] = make([]float64, dim)
		}
		for i, p := range points {
			c := assignment[i]
			counts[c]++
			for d, v := range p {
				sums[c][d] += v
			}
		}
		for c := range centroids {
			if counts[c] == 0 {
				// Empty cluster: reseed from the point farthest from its
				// centroid.
				centroids[c] = append([]float64(nil), points[farthest(points, centroids, assignment)]...)
				continue
			}
			for d := range centroids[c] {
				centroids[c][d] = sums[c][d] / float64(counts[c])
			}
		}
	}

	res := &Result{Centroids: centroids, Assignment: assignment, Iterations: iters}
	for i, p := range points {
		res.WCSS += sqDist(p, centroids[assignment[i]])
	}
	return res, nil
}

// seedPlusPlus picks initial centroids with probability proportional to
// squared distance from the nearest already-chosen centroid.
func seedPlusPlus(points [][]float64, k int, rng *frand.RNG) [][]float64 {
	centroids := make([][]float64, 0, k)
	first := rng.Intn(len(points))
	centroids = append(centroids, append([]float64(nil), points[first]...))

	dists := make([]float64, len(points))
	for len(centroids) < k {
		total := 0.0
		for i, p := range points {
			dists[i] = sqDist(p, centroids[nearest(p, centroids)])
			total += dists[i]
		}
		if total == 0 {
			// All remaining points coincide with a centroid.
			centroids = append(centroids, append([]float64(nil), points[rng.Intn(len(points))]...))
			continue
		}
		target := rng.Float64() * total
		acc := 0.0
		pick := len(points) - 1
		for i, d := range dists {
			acc += d
			if acc >= target {
				pick = i
				break
			}
		}
		centroids = append(centroids, append([]float64(nil), points[pick]...))
	}
	return centroids
}

func nearest(p []float64, centroids [][]float64) int {
	best, bestDist := 0, math.Inf(1)
	for c, cent := range centroids {
		if d := sqDist(p, cent); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func farthest(points [][]float64, centroids [][]float64, assignment []int) int {
	best, bestDist := 0, -1.0
	for i, p := range points {
		if d := sqDist(p, centroids[assignment[i]]); d > bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func sqDist(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}
	return s
}

// ElbowWCSS runs k-means for k = 1..maxK and returns the WCSS curve, for
// eyeballing the elbow when choosing a tier count.
func ElbowWCSS(points [][]float64, maxK int, seed uint64) ([]float64, error) {
	if maxK > len(points) {
		maxK = len(points)
	}
	out := make([]float64, 0, maxK)
	for k := 1; k <= maxK; k++ {
		res, err := KMeans(points, k, seed)
		if err != nil {
			return nil, err
		}
		out = append(out, res.WCSS)
	}
	return out, nil
}

// rankCentroids orders cluster indices by descending first-dimension value,
// so tier 1 is always the best cluster.
func rankCentroids(centroids [][]float64) []int {
	order := make([]int, len(centroids))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return centroids[order[a]][0] > centroids[order[b]][0]
	})
	return order
}
