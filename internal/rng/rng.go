// Package rng derives independent, stable child random streams from one
// process-wide seed (spec §9: "sub-stages must take independent child
// streams derived by a stable sub-key so that a new operation added to
// one stage does not perturb another stage's stream").
package rng

import (
	"hash/fnv"
	"math/rand"
	"strconv"
)

// Child returns a *rand.Rand seeded deterministically from root and a
// string sub-key (typically the stage name, optionally plus an index
// such as "erode:3" for the third erosion iteration). Same root + same
// key always yields the same stream, independent of call order of
// sibling keys.
func Child(root int64, key string) *rand.Rand {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	mix := h.Sum64()
	seed := int64(uint64(root)*1099511628211 ^ mix)
	return rand.New(rand.NewSource(seed))
}

// Uniform returns a uniform float64 in [lo, hi).
func Uniform(r *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}

// UniformInt returns a uniform int in [lo, hi] (inclusive upper, unlike
// Uniform, to match the "a..=b" JSON range syntax's inclusive form).
func UniformInt(r *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// SizeVarianceJitter returns the territorial-expansion cost jitter
// `(sizeVariance/10) * uniform(-0.5, 0.5) * baseCost` (SPEC_FULL §12),
// keyed so the same edge always draws the same jitter regardless of
// the order Dijkstra relaxes it in: key should name the caller's stage
// ("culture" or "nation") and ids identify the edge and expanding
// owner. sizeVariance is clamped to [0, 10].
func SizeVarianceJitter(root int64, key string, ids []int, sizeVariance, baseCost float64) float64 {
	if sizeVariance <= 0 {
		return 0
	}
	if sizeVariance > 10 {
		sizeVariance = 10
	}
	sub := key
	for _, id := range ids {
		sub += ":" + strconv.Itoa(id)
	}
	r := Child(root, sub)
	return (sizeVariance / 10) * Uniform(r, -0.5, 0.5) * baseCost
}
