package molasses

import (
	"math/rand"
	"time"

	"gonum.org/v1/gonum/stat/distuv"
)

// RNG is the single process-scoped random source the engine uses for
// parameter sampling and tie-breaking (spec §9 DESIGN NOTES). It is
// seeded once from the wall clock at process start; callers needing
// reproducible runs can construct one directly with NewRNGFromSeed.
type RNG struct {
	src rand.Source
}

// NewRNG seeds a generator from the current wall-clock time.
func NewRNG() *RNG {
	return &RNG{src: rand.NewSource(time.Now().UnixNano())}
}

// NewRNGFromSeed seeds a generator deterministically, for tests.
func NewRNGFromSeed(seed int64) *RNG {
	return &RNG{src: rand.NewSource(seed)}
}

// Uniform draws a sample from the uniform distribution on [a, b].
func (r *RNG) Uniform(a, b float64) float64 {
	return distuv.Uniform{Min: a, Max: b, Src: r.src}.Rand()
}

// UniformInt draws a uniformly distributed integer in [a, b].
func (r *RNG) UniformInt(a, b int) int {
	return a + int(distuv.Uniform{Min: 0, Max: float64(b - a + 1), Src: r.src}.Rand())
}

// Normal draws a sample from the normal distribution with mean mu and
// standard deviation sigma.
func (r *RNG) Normal(mu, sigma float64) float64 {
	return distuv.Normal{Mu: mu, Sigma: sigma, Src: r.src}.Rand()
}

// Shuffle performs an in-place Fisher-Yates shuffle of n elements,
// calling swap(i, j) to exchange elements i and j. Used by the
// Distributor to randomize neighbor donation order (spec §4.6).
func (r *RNG) Shuffle(n int, swap func(i, j int)) {
	rnd := rand.New(r.src)
	rnd.Shuffle(n, swap)
}
