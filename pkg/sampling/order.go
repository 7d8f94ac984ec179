package sampling

import (
	"fmt"
	gomath "math"
	"sort"

	"github.com/Faultbox/meshbake/pkg/math"
	"github.com/Faultbox/meshbake/pkg/mesh"
)

// Ordering names accepted by ParseOrdering.
const (
	OrderNone          = "none"
	OrderUVRadial      = "uv-radial"
	OrderNearestAnchor = "nearest-anchor"
)

// ScoreFunc maps an interpolated vertex to a sort key. It must be pure.
type ScoreFunc func(v mesh.Vertex) float64

// Ordering is a named scoring strategy. A nil Score keeps the sampled order.
type Ordering struct {
	Name  string
	Score ScoreFunc

	// key identifies the built-in orderings including their parameters.
	// Empty for custom score functions, which cannot be compared.
	key string
}

// None keeps samples in draw order.
var None = Ordering{Name: OrderNone, key: OrderNone}

// UVRadial orders samples by squared distance of UV channel 0 from the UV-space center.
// Vertices without a UV channel score 0.
var UVRadial = Ordering{Name: OrderUVRadial, Score: uvRadial, key: OrderUVRadial}

// Equal reports whether o and other are known to produce the same order.
// Orderings without a Score are equal to each other. Custom orderings are
// never equal to anything, since their functions cannot be compared.
func (o Ordering) Equal(other Ordering) bool {
	if o.Score == nil && other.Score == nil {
		return true
	}
	return o.key != "" && o.key == other.key
}

var uvCenter = math.Vec2{X: 0.5, Y: 0.5}

func uvRadial(v mesh.Vertex) float64 {
	if len(v.UVs) == 0 {
		return 0
	}
	return float64(v.UVs[0].XY().Sub(uvCenter).LengthSquared())
}

// NearestAnchor orders samples by squared distance to the closest anchor.
// With no anchors every sample scores 0 and the draw order is kept.
func NearestAnchor(anchors ...math.Vec3) Ordering {
	pts := append([]math.Vec3(nil), anchors...)
	return Ordering{
		Name: OrderNearestAnchor,
		key:  fmt.Sprintf("%s%v", OrderNearestAnchor, pts),
		Score: func(v mesh.Vertex) float64 {
			if len(pts) == 0 {
				return 0
			}
			best := gomath.Inf(1)
			for _, a := range pts {
				if d := float64(v.Position.DistanceSquared(a)); d < best {
					best = d
				}
			}
			return best
		},
	}
}

// Custom wraps a caller-supplied scoring function.
func Custom(name string, fn ScoreFunc) Ordering {
	return Ordering{Name: name, Score: fn}
}

// ParseOrdering resolves a configured ordering name. Anchors are used by nearest-anchor only.
func ParseOrdering(name string, anchors []math.Vec3) (Ordering, error) {
	switch name {
	case "", OrderNone:
		return None, nil
	case OrderUVRadial:
		return UVRadial, nil
	case OrderNearestAnchor:
		return NearestAnchor(anchors...), nil
	default:
		return Ordering{}, fmt.Errorf("%w: unknown ordering %q", ErrConfig, name)
	}
}

// Reorder returns a copy of samples stably sorted by ascending score of each
// sample's interpolated vertex. Neither data nor samples is modified.
func Reorder(data *mesh.Data, samples []Record, ord Ordering) ([]Record, error) {
	out := append([]Record(nil), samples...)
	if ord.Score == nil {
		return out, nil
	}

	type keyed struct {
		key    float64
		sample Record
	}
	keys := make([]keyed, len(out))
	for i, s := range out {
		v, err := Interpolate(data, s)
		if err != nil {
			return nil, fmt.Errorf("%w: ordering %q: %v", ErrInternal, ord.Name, err)
		}
		keys[i] = keyed{key: ord.Score(v), sample: s}
	}

	sort.SliceStable(keys, func(i, j int) bool {
		return keys[i].key < keys[j].key
	})

	for i := range keys {
		out[i] = keys[i].sample
	}
	return out, nil
}

// Interpolate returns the vertex at a sample's location.
func Interpolate(data *mesh.Data, s Record) (mesh.Vertex, error) {
	return data.Interpolate(s.Index, s.Coord)
}
