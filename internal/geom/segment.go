package geom

import "math"

// LineSegment is the closed segment from Start to End.
type LineSegment struct {
	Start Vec2
	End   Vec2
}

// Direction returns End - Start.
func (s LineSegment) Direction() Vec2 {
	return s.End.Sub(s.Start)
}

// At returns the point at parameter t along the segment.
func (s LineSegment) At(t float64) Vec2 {
	return s.Start.Add(s.Direction().Mul(t))
}

// Bounds returns the box enclosing both endpoints.
func (s LineSegment) Bounds() Bound2 {
	return Bound2{Min: MinVec(s.Start, s.End), Max: MaxVec(s.Start, s.End)}
}

// IntersectSegment returns the crossing point of s and o. Parallel and
// collinear segments never report a crossing.
func (s LineSegment) IntersectSegment(o LineSegment) (Vec2, bool) {
	r := s.Direction()
	q := o.Direction()
	den := Cross(r, q)
	if den == 0 {
		return Vec2{}, false
	}
	w := o.Start.Sub(s.Start)
	t := Cross(w, q) / den
	u := Cross(w, r) / den
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Vec2{}, false
	}
	return s.At(t), true
}

// IntersectPlane returns where s crosses the plane.
func (s LineSegment) IntersectPlane(p Plane2D) (Vec2, bool) {
	d0 := p.DistanceTo(s.Start)
	d1 := p.DistanceTo(s.End)
	if d0 == d1 {
		if d0 == 0 {
			return s.Start, true
		}
		return Vec2{}, false
	}
	t := d0 / (d0 - d1)
	if t < 0 || t > 1 {
		return Vec2{}, false
	}
	return s.At(t), true
}

// IntersectCircle returns the points where s crosses the boundary of c, in
// order along the segment, and how many of them are valid.
func (s LineSegment) IntersectCircle(c Circle) ([2]Vec2, int) {
	var out [2]Vec2
	dir := s.Direction()
	f := s.Start.Sub(c.Origin)
	a := dir.Dot(dir)
	if a == 0 {
		if math.Abs(f.Len()-c.Radius) < 1e-12 {
			out[0] = s.Start
			return out, 1
		}
		return out, 0
	}
	b := 2 * f.Dot(dir)
	k := f.Dot(f) - c.Radius*c.Radius
	disc := b*b - 4*a*k
	if disc < 0 {
		return out, 0
	}
	sq := math.Sqrt(disc)
	n := 0
	for _, t := range [2]float64{(-b - sq) / (2 * a), (-b + sq) / (2 * a)} {
		if t < 0 || t > 1 {
			continue
		}
		if n == 1 && disc == 0 {
			break
		}
		out[n] = s.At(t)
		n++
	}
	return out, n
}
