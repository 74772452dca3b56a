package sales

import (
	"math"
	"math/rand/v2"
	"sync"

	apierrors "salespulse/internal/errors"
	"salespulse/pkg/contracts/domain"
)

// Reference generation parameters.
const (
	DefaultCount = 100
	DefaultMin   = 50
	DefaultMax   = 200
)

// Generator draws uniformly distributed daily sales values.
type Generator struct {
	mu  sync.Mutex // rand.Rand is not safe for concurrent use
	rng *rand.Rand
}

// NewGenerator creates a generator over the given random source.
func NewGenerator(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// NewSeededGenerator creates a generator whose output is fully determined by seed.
func NewSeededGenerator(seed uint64) *Generator {
	return NewGenerator(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewRandomGenerator creates a generator seeded from the runtime's entropy source.
func NewRandomGenerator() *Generator {
	return NewGenerator(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Generate returns count independent draws from the closed range [min, max].
func (g *Generator) Generate(count, min, max int) (domain.RawSeries, error) {
	if count <= 0 {
		return nil, apierrors.NewInvalidArgumentError("count must be positive, got %d", count)
	}
	if min > max {
		return nil, apierrors.NewInvalidArgumentError("min %d is greater than max %d", min, max)
	}
	// width is max-min, exact even when the int subtraction would overflow
	width := uint64(max) - uint64(min)

	g.mu.Lock()
	defer g.mu.Unlock()

	series := make(domain.RawSeries, count)
	for i := range series {
		series[i] = min + int(g.draw(width))
	}
	return series, nil
}

// draw returns a uniform value in [0, width]
func (g *Generator) draw(width uint64) uint64 {
	if width == math.MaxUint64 {
		return g.rng.Uint64()
	}
	return g.rng.Uint64N(width + 1)
}
