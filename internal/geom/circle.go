package geom

import "math"

// IntersectionResult classifies how two shapes meet.
type IntersectionResult uint8

const (
	IntersectNone IntersectionResult = 0
	// Overlaps is set when the shapes share any area.
	Overlaps IntersectionResult = 1 << 0
	// Cuts is set when the boundaries cross, i.e. neither shape contains
	// the other. It is only ever reported together with Overlaps.
	Cuts IntersectionResult = 1 << 1
	// IntersectAny matches any non-empty result.
	IntersectAny = Overlaps | Cuts
)

// Has reports whether r carries every bit of want.
func (r IntersectionResult) Has(want IntersectionResult) bool {
	return r&want == want
}

// Matches reports whether r satisfies a generator's requirement. Nothing
// matches without Overlaps; a requirement of IntersectAny is met by any
// overlap.
func (r IntersectionResult) Matches(want IntersectionResult) bool {
	if r&Overlaps == 0 {
		return false
	}
	if want == IntersectAny {
		return true
	}
	return r.Has(want)
}

func (r IntersectionResult) String() string {
	switch r {
	case IntersectNone:
		return "none"
	case Overlaps:
		return "overlaps"
	case Overlaps | Cuts:
		return "cuts"
	default:
		return "invalid"
	}
}

// Circle is a disc.
type Circle struct {
	Origin Vec2
	Radius float64
}

// NewCircle returns a circle at origin with radius r.
func NewCircle(origin Vec2, r float64) Circle {
	return Circle{Origin: origin, Radius: r}
}

// Area returns πr².
func (c Circle) Area() float64 {
	return math.Pi * c.Radius * c.Radius
}

// Bounds returns the axis-aligned box enclosing the circle.
func (c Circle) Bounds() Bound2 {
	r := Splat(c.Radius)
	return Bound2{Min: c.Origin.Sub(r), Max: c.Origin.Add(r)}
}

// Contains reports whether p is inside the circle, boundary included.
func (c Circle) Contains(p Vec2) bool {
	d := p.Sub(c.Origin)
	return d.Dot(d) <= c.Radius*c.Radius
}

// CircleIntersection describes where two circles meet.
type CircleIntersection struct {
	Result IntersectionResult
	// Point lies on the centre axis where the chord crosses it.
	Point Vec2
	// HitA and HitB are the boundary crossing points (equal to Point when
	// the circles touch at one point).
	HitA Vec2
	HitB Vec2
	// Distance is the Euclidean distance between the centres.
	Distance Distance
}

// Intersect classifies c against o and locates the chord between them.
func (c Circle) Intersect(o Circle) CircleIntersection {
	delta := o.Origin.Sub(c.Origin)
	dSq := delta.Dot(delta)
	sum := c.Radius + o.Radius
	diff := c.Radius - o.Radius

	var res IntersectionResult
	if dSq <= sum*sum {
		res |= Overlaps
		if dSq >= diff*diff {
			res |= Cuts
		}
	}

	if dSq == 0 {
		return CircleIntersection{
			Result:   res,
			Point:    c.Origin,
			HitA:     c.Origin,
			HitB:     c.Origin,
			Distance: Euclidean(0),
		}
	}

	d := math.Sqrt(dSq)
	axis := delta.Mul(1 / d)
	a := (dSq + c.Radius*c.Radius - o.Radius*o.Radius) / (2 * d)
	h := math.Sqrt(math.Max(c.Radius*c.Radius-a*a, 0))
	point := c.Origin.Add(axis.Mul(a))
	offset := RotateCCW(axis).Mul(h)

	return CircleIntersection{
		Result:   res,
		Point:    point,
		HitA:     point.Sub(offset),
		HitB:     point.Add(offset),
		Distance: Euclidean(d),
	}
}

// BoundIntersection describes a circle touching a box.
type BoundIntersection struct {
	Hit bool
	// Closest is the point of the box nearest the circle origin.
	Closest Vec2
	// Distance from the origin to Closest, squared.
	Distance Distance
}

// IntersectBound tests the circle against b using the closest point on b.
func (c Circle) IntersectBound(b Bound2) BoundIntersection {
	closest := b.ClosestTo(c.Origin)
	d := closest.Sub(c.Origin)
	dSq := d.Dot(d)
	return BoundIntersection{
		Hit:      dSq <= c.Radius*c.Radius,
		Closest:  closest,
		Distance: Squared(dSq),
	}
}
