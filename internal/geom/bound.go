package geom

// Bound2 is an axis-aligned box. It may be degenerate (zero area) or empty
// (Min > Max on some axis) after an intersection.
type Bound2 struct {
	Min Vec2
	Max Vec2
}

// NewBound2 returns the box spanning min..max.
func NewBound2(min, max Vec2) Bound2 {
	return Bound2{Min: min, Max: max}
}

// BoundFromRect returns the box with corner (x, y) and the given size.
func BoundFromRect(x, y, w, h float64) Bound2 {
	return Bound2{Min: Vec2{x, y}, Max: Vec2{x + w, y + h}}
}

// Size returns Max - Min.
func (b Bound2) Size() Vec2 {
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the box.
func (b Bound2) Center() Vec2 {
	return b.Min.Add(b.Size().Mul(0.5))
}

// Area returns width times height. Empty boxes can report a positive product
// of two negative extents, so callers test HasArea first.
func (b Bound2) Area() float64 {
	s := b.Size()
	return s[0] * s[1]
}

// HasArea reports whether Min < Max strictly on both axes.
func (b Bound2) HasArea() bool {
	return b.Min[0] < b.Max[0] && b.Min[1] < b.Max[1]
}

// Intersect returns the overlap of b and o. The result has no area when
// the boxes are disjoint or only touch.
func (b Bound2) Intersect(o Bound2) Bound2 {
	return Bound2{Min: MaxVec(b.Min, o.Min), Max: MinVec(b.Max, o.Max)}
}

// Overlaps reports whether the boxes share a region with non-zero area.
func (b Bound2) Overlaps(o Bound2) bool {
	return b.Intersect(o).HasArea()
}

// Contains reports whether p lies inside b, edges included.
func (b Bound2) Contains(p Vec2) bool {
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] && p[1] >= b.Min[1] && p[1] <= b.Max[1]
}

// ClosestTo returns the point of b nearest to p.
func (b Bound2) ClosestTo(p Vec2) Vec2 {
	return Clamp(p, b.Min, b.Max)
}

// WithPosition moves the box so that Min is at p, keeping its size.
func (b Bound2) WithPosition(p Vec2) Bound2 {
	return Bound2{Min: p, Max: p.Add(b.Size())}
}

// Union returns the smallest box containing both b and o.
func (b Bound2) Union(o Bound2) Bound2 {
	return Bound2{Min: MinVec(b.Min, o.Min), Max: MaxVec(b.Max, o.Max)}
}
