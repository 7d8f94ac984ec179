package mesh

import (
	"errors"

	"github.com/Faultbox/meshbake/pkg/math"
)

// ErrIncompatibleVertex is returned when combining vertices with different UV channel counts.
var ErrIncompatibleVertex = errors.New("incompatible vertices: uv channel count differs")

// Add returns a + b componentwise, including every UV channel.
func Add(a, b Vertex) (Vertex, error) {
	if len(a.UVs) != len(b.UVs) {
		return Vertex{}, ErrIncompatibleVertex
	}

	r := Vertex{
		Position: a.Position.Add(b.Position),
		Color:    a.Color.Add(b.Color),
		Normal:   a.Normal.Add(b.Normal),
		Tangent:  a.Tangent.Add(b.Tangent),
		UVs:      make([]math.Vec4, len(a.UVs)),
	}
	for i := range a.UVs {
		r.UVs[i] = a.UVs[i].Add(b.UVs[i])
	}
	return r, nil
}

// Scale returns s * v componentwise, including every UV channel.
func Scale(s float32, v Vertex) Vertex {
	r := Vertex{
		Position: v.Position.Scale(s),
		Color:    v.Color.Scale(s),
		Normal:   v.Normal.Scale(s),
		Tangent:  v.Tangent.Scale(s),
		UVs:      make([]math.Vec4, len(v.UVs)),
	}
	for i := range v.UVs {
		r.UVs[i] = v.UVs[i].Scale(s)
	}
	return r
}
