package sampling

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/meshbake/pkg/math"
)

// Barycentric maps two independent uniforms in [0,1) to an area-uniform
// barycentric pair (u, v); the implied third weight is x*sqrt(y).
// All arithmetic is single precision.
func Barycentric(x, y float32) math.Vec2 {
	s := x
	t := math32.Sqrt(y)
	return math.Vec2{
		X: 1 - t,
		Y: (1 - s) * t,
	}
}
