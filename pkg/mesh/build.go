package mesh

import (
	"errors"
	"fmt"

	"github.com/Faultbox/meshbake/pkg/math"
)

// Build errors.
var (
	ErrNilSnapshot      = errors.New("mesh snapshot is nil")
	ErrNoVertices       = errors.New("mesh has no vertices")
	ErrMalformedIndices = errors.New("index count is not a multiple of 3")
	ErrIndexOutOfRange  = errors.New("triangle index out of range")
)

// Build creates the attribute cache for a snapshot. The snapshot is not modified.
// A mesh without triangles builds successfully with an empty area table.
func Build(s *Snapshot) (*Data, error) {
	if s == nil {
		return nil, ErrNilSnapshot
	}
	count := len(s.Positions)
	if count == 0 {
		return nil, ErrNoVertices
	}
	if len(s.Indices)%3 != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrMalformedIndices, len(s.Indices))
	}

	d := &Data{
		HasNormals:  len(s.Normals) == count,
		HasTangents: len(s.Tangents) == count,
		HasColors:   len(s.Colors) == count,
	}

	// Channels are contiguous from 0; the first short channel ends enumeration.
	for d.UVChannels < len(s.UVs) && d.UVChannels < MaxUVChannels {
		if len(s.UVs[d.UVChannels]) != count {
			break
		}
		d.UVChannels++
	}

	d.Vertices = make([]Vertex, count)
	for i := range d.Vertices {
		v := Vertex{
			Position: s.Positions[i],
			Color:    DefaultColor,
			Normal:   DefaultNormal,
			Tangent:  DefaultTangent,
			UVs:      make([]math.Vec4, d.UVChannels),
		}
		if d.HasColors {
			v.Color = s.Colors[i]
		}
		if d.HasNormals {
			v.Normal = s.Normals[i]
		}
		if d.HasTangents {
			v.Tangent = s.Tangents[i]
		}
		for c := 0; c < d.UVChannels; c++ {
			v.UVs[c] = s.UVs[c][i]
		}
		d.Vertices[i] = v
	}

	d.Triangles = make([]Triangle, len(s.Indices)/3)
	for i := range d.Triangles {
		t := Triangle{
			A: s.Indices[i*3+0],
			B: s.Indices[i*3+1],
			C: s.Indices[i*3+2],
		}
		if int(t.A) >= count || int(t.B) >= count || int(t.C) >= count {
			return nil, fmt.Errorf("%w: triangle %d references %d/%d/%d with %d vertices",
				ErrIndexOutOfRange, i, t.A, t.B, t.C, count)
		}
		d.Triangles[i] = t
	}

	d.CumulativeArea = make([]float64, len(d.Triangles))
	var sum float64
	for i := range d.Triangles {
		sum += d.TriangleArea(i)
		d.CumulativeArea[i] = sum
	}

	return d, nil
}

// TriangleArea returns half the magnitude of the cross product of two edges.
// The cross product is evaluated in float32, matching vertex storage.
func (d *Data) TriangleArea(i int) float64 {
	t := d.Triangles[i]
	a := d.Vertices[t.A].Position
	b := d.Vertices[t.B].Position
	c := d.Vertices[t.C].Position
	return float64(0.5 * b.Sub(a).Cross(c.Sub(a)).Length())
}
