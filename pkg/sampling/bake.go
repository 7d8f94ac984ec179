package sampling

import (
	"fmt"
	gomath "math"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/meshbake/pkg/mesh"
	"github.com/Faultbox/meshbake/pkg/rand"
)

// Defaults for Options.
const (
	DefaultSeed  = 0x123
	DefaultCount = 2048
)

// Options controls a bake.
type Options struct {
	Seed     int32
	Count    int
	Ordering Ordering
	// Logger receives debug output. Nil disables logging.
	Logger *zap.Logger
}

// DefaultOptions returns the stock seed and count with no reordering.
func DefaultOptions() Options {
	return Options{
		Seed:     DefaultSeed,
		Count:    DefaultCount,
		Ordering: None,
	}
}

// Bake draws opts.Count samples from a generator seeded with opts.Seed.
// The same mesh, seed, count and ordering always produce identical records.
func Bake(data *mesh.Data, opts Options) ([]Record, error) {
	return BakeFrom(data, rand.New(opts.Seed), opts)
}

// BakeFrom draws opts.Count samples from src; opts.Seed is ignored.
// Each sample consumes three draws in order: area target, then x, then y.
func BakeFrom(data *mesh.Data, src rand.Source, opts Options) ([]Record, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	if opts.Count < 1 {
		return nil, fmt.Errorf("%w: sample count %d must be at least 1", ErrConfig, opts.Count)
	}
	if data == nil {
		return nil, fmt.Errorf("%w: no mesh data", ErrConfig)
	}
	if src == nil {
		return nil, fmt.Errorf("%w: no random source", ErrConfig)
	}
	if data.TriangleCount() == 0 {
		return nil, fmt.Errorf("%w: mesh has no triangles", ErrDegenerateMesh)
	}
	total := data.TotalArea()
	if !(total > 0) || gomath.IsInf(total, 1) {
		return nil, fmt.Errorf("%w: total area %v", ErrDegenerateMesh, total)
	}

	start := time.Now()
	samples := make([]Record, opts.Count)
	for i := range samples {
		target := src.Float64() * total
		tri, err := PickTriangle(data.CumulativeArea, target)
		if err != nil {
			return nil, fmt.Errorf("%w: sample %d: %v", ErrInternal, i, err)
		}
		x := float32(src.Float64())
		y := float32(src.Float64())
		samples[i] = Record{Coord: Barycentric(x, y), Index: tri}
	}

	ordered, err := Reorder(data, samples, opts.Ordering)
	if err != nil {
		return nil, err
	}

	log.Debug("bake complete",
		zap.Int("triangles", data.TriangleCount()),
		zap.Float64("area", total),
		zap.Int("samples", len(ordered)),
		zap.String("ordering", opts.Ordering.Name),
		zap.Duration("elapsed", time.Since(start)),
	)
	return ordered, nil
}
