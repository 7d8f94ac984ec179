package math

// Vec4 is a 4D vector. Colors, tangents and UV channels are stored as Vec4.
type Vec4 struct {
	X, Y, Z, W float32
}

// One is the (1,1,1,1) vector, also used as opaque white.
var One = Vec4{1, 1, 1, 1}

// Add returns v + other.
func (v Vec4) Add(other Vec4) Vec4 {
	return Vec4{v.X + other.X, v.Y + other.Y, v.Z + other.Z, v.W + other.W}
}

// Sub returns v - other.
func (v Vec4) Sub(other Vec4) Vec4 {
	return Vec4{v.X - other.X, v.Y - other.Y, v.Z - other.Z, v.W - other.W}
}

// Scale returns v * scalar.
func (v Vec4) Scale(s float32) Vec4 {
	return Vec4{v.X * s, v.Y * s, v.Z * s, v.W * s}
}

// XYZ drops the W component.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// XY returns the first two components.
func (v Vec4) XY() Vec2 {
	return Vec2{v.X, v.Y}
}

// Vec4From extends a Vec3 with w.
func Vec4From(v Vec3, w float32) Vec4 {
	return Vec4{v.X, v.Y, v.Z, w}
}
