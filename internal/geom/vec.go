// Package geom provides the vector type, lazy distances, and the shape
// primitives (circles, planes, boxes, segments) used by the simulation.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec2 is a double-precision 2D vector.
type Vec2 = mgl64.Vec2

// V builds a Vec2 from its components.
func V(x, y float64) Vec2 {
	return Vec2{x, y}
}

// Splat returns a vector with both components set to s.
func Splat(s float64) Vec2 {
	return Vec2{s, s}
}

// LengthSquared returns |v|².
func LengthSquared(v Vec2) float64 {
	return v.Dot(v)
}

// Cross returns the z component of the 3D cross product of a and b.
func Cross(a, b Vec2) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

// RotateCCW rotates v a quarter turn counter-clockwise.
func RotateCCW(v Vec2) Vec2 {
	return Vec2{-v[1], v[0]}
}

// RotateCW rotates v a quarter turn clockwise.
func RotateCW(v Vec2) Vec2 {
	return Vec2{v[1], -v[0]}
}

// SinCos packs the sine and cosine of angle as (sin, cos).
func SinCos(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{sin, cos}
}

// Rotate rotates v counter-clockwise by the angle whose sine and cosine are
// packed in sc (see SinCos).
func Rotate(v, sc Vec2) Vec2 {
	sin, cos := sc[0], sc[1]
	return Vec2{v[0]*cos - v[1]*sin, v[0]*sin + v[1]*cos}
}

// FromAngle returns the unit vector pointing at angle radians.
func FromAngle(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{cos, sin}
}

// MinVec returns the component-wise minimum of a and b.
func MinVec(a, b Vec2) Vec2 {
	return Vec2{math.Min(a[0], b[0]), math.Min(a[1], b[1])}
}

// MaxVec returns the component-wise maximum of a and b.
func MaxVec(a, b Vec2) Vec2 {
	return Vec2{math.Max(a[0], b[0]), math.Max(a[1], b[1])}
}

// Clamp clamps each component of v into [lo, hi].
func Clamp(v, lo, hi Vec2) Vec2 {
	return Vec2{mgl64.Clamp(v[0], lo[0], hi[0]), mgl64.Clamp(v[1], lo[1], hi[1])}
}

// SafeNormalize returns v scaled to unit length, or fallback when v has no
// usable direction (zero, denormal, or non-finite length).
func SafeNormalize(v, fallback Vec2) Vec2 {
	l := v.Len()
	if l < 1e-300 || math.IsInf(l, 0) || math.IsNaN(l) {
		return fallback
	}
	return v.Mul(1 / l)
}

// WrapAngle maps an angle in radians into [0, 2π).
func WrapAngle(angle float64) float64 {
	const tau = 2 * math.Pi
	a := math.Mod(angle, tau)
	if a < 0 {
		a += tau
	}
	// math.Mod can round a tiny negative up to exactly tau.
	if a >= tau {
		a = 0
	}
	return a
}
