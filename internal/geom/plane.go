package geom

import "math"

// Plane2D is the line dot(p, Normal) = D. Points with a positive signed
// distance lie in front of it; the half-space behind is solid.
type Plane2D struct {
	Normal Vec2
	D      float64
}

// NewPlane2D returns a plane with the normal scaled to unit length. A zero
// normal falls back to +Y.
func NewPlane2D(normal Vec2, d float64) Plane2D {
	return Plane2D{Normal: SafeNormalize(normal, Vec2{0, 1}), D: d}
}

// PlaneThrough returns the plane with the given normal passing through p.
func PlaneThrough(normal, p Vec2) Plane2D {
	n := SafeNormalize(normal, Vec2{0, 1})
	return Plane2D{Normal: n, D: p.Dot(n)}
}

// DistanceTo returns the signed distance of p from the plane.
func (p Plane2D) DistanceTo(pt Vec2) float64 {
	return pt.Dot(p.Normal) - p.D
}

// Project returns the point of the plane closest to pt.
func (p Plane2D) Project(pt Vec2) Vec2 {
	return pt.Sub(p.Normal.Mul(p.DistanceTo(pt)))
}

// Tangent returns the in-plane direction.
func (p Plane2D) Tangent() Vec2 {
	return RotateCW(p.Normal)
}

// PlaneIntersection describes a circle crossing a plane.
type PlaneIntersection struct {
	Hit bool
	// Point is the circle origin projected onto the plane.
	Point Vec2
	// HitA and HitB are where the circle boundary crosses the plane.
	HitA Vec2
	HitB Vec2
	// Signed is the signed distance of the origin from the plane.
	Signed float64
	// Depth is how far the circle reaches past the plane, r - d.
	Depth float64
}

// Intersect tests c against the plane. Circles whose origin lies more than
// one radius behind the plane do not intersect it.
func (p Plane2D) Intersect(c Circle) PlaneIntersection {
	d := p.DistanceTo(c.Origin)
	rSq := c.Radius * c.Radius
	if d*d > rSq {
		return PlaneIntersection{Signed: d}
	}
	point := c.Origin.Sub(p.Normal.Mul(d))
	offset := p.Tangent().Mul(math.Sqrt(math.Abs(rSq - d*d)))
	return PlaneIntersection{
		Hit:    true,
		Point:  point,
		HitA:   point.Sub(offset),
		HitB:   point.Add(offset),
		Signed: d,
		Depth:  c.Radius - d,
	}
}
