// Package mesh normalizes raw mesh attributes into an immutable cache with
// a per-triangle cumulative area table, and interpolates vertices inside it.
package mesh

import "github.com/Faultbox/meshbake/pkg/math"

// MaxUVChannels is the number of UV channels read from a snapshot.
const MaxUVChannels = 8

// Default attribute values substituted when a mesh does not carry the attribute.
var (
	DefaultColor   = math.One
	DefaultNormal  = math.Up
	DefaultTangent = math.One
)

// Snapshot is a read-only view of raw mesh attributes, as handed over by a host.
// Optional attribute slices are used only when their length equals len(Positions).
type Snapshot struct {
	Positions []math.Vec3
	Normals   []math.Vec3
	Tangents  []math.Vec4 // xyz direction, w handedness
	Colors    []math.Vec4
	UVs       [][]math.Vec4 // indexed by channel
	Indices   []uint32      // triangle list, three per triangle
}

// Vertex is a fully populated mesh vertex.
type Vertex struct {
	Position math.Vec3
	Color    math.Vec4
	Normal   math.Vec3
	Tangent  math.Vec4
	UVs      []math.Vec4
}

// UV returns the given channel, or the zero vector if the vertex has no such channel.
func (v Vertex) UV(channel int) math.Vec4 {
	if channel < 0 || channel >= len(v.UVs) {
		return math.Vec4{}
	}
	return v.UVs[channel]
}

// Triangle indexes three vertices, winding preserved from the source.
type Triangle struct {
	A, B, C uint32
}

// Data is the attribute cache built from a Snapshot. It is not modified after Build.
type Data struct {
	Vertices  []Vertex
	Triangles []Triangle

	// CumulativeArea[i] is the summed area of triangles 0..i.
	CumulativeArea []float64

	HasNormals  bool
	HasTangents bool
	HasColors   bool
	UVChannels  int
}

// TotalArea returns the summed surface area, or 0 for a mesh without triangles.
func (d *Data) TotalArea() float64 {
	if len(d.CumulativeArea) == 0 {
		return 0
	}
	return d.CumulativeArea[len(d.CumulativeArea)-1]
}

// TriangleCount returns the number of triangles.
func (d *Data) TriangleCount() int {
	return len(d.Triangles)
}
