package mesh

import (
	"errors"
	"fmt"

	"github.com/Faultbox/meshbake/pkg/math"
)

// ErrTriangleOutOfRange is returned when interpolating on a triangle the mesh does not have.
var ErrTriangleOutOfRange = errors.New("triangle out of range")

// Interpolate returns u*A + v*B + w*C for triangle tri, with w = 1 - u - v.
// The normal and the tangent direction are renormalized; the tangent
// handedness is re-quantized to +1 or -1 rather than interpolated.
func (d *Data) Interpolate(tri uint32, coord math.Vec2) (Vertex, error) {
	if int(tri) >= len(d.Triangles) {
		return Vertex{}, fmt.Errorf("%w: %d of %d", ErrTriangleOutOfRange, tri, len(d.Triangles))
	}
	t := d.Triangles[tri]
	u := coord.X
	v := coord.Y
	w := 1 - u - v

	r, err := Add(Scale(u, d.Vertices[t.A]), Scale(v, d.Vertices[t.B]))
	if err != nil {
		return Vertex{}, err
	}
	r, err = Add(r, Scale(w, d.Vertices[t.C]))
	if err != nil {
		return Vertex{}, err
	}

	r.Normal = r.Normal.Normalize()
	handedness := float32(-1)
	if r.Tangent.W > 0 {
		handedness = 1
	}
	r.Tangent = math.Vec4From(r.Tangent.XYZ().Normalize(), handedness)

	return r, nil
}
