package physics

import "fmt"

// BodyID identifies one body for the lifetime of a World. Zero means
// unassigned; assigned ids start at 1 and are never reused.
type BodyID uint32

// ShapeKind selects the storage a body lives in.
type ShapeKind uint8

const (
	KindNone ShapeKind = iota
	KindEditor
	KindCircle
	KindPlane
	KindExplosion
	KindWindZone
	KindFluidZone

	kindCount
)

// BodyKinds lists every kind that has a body type, in storage order.
var BodyKinds = []ShapeKind{KindCircle, KindPlane, KindExplosion, KindWindZone, KindFluidZone}

func (k ShapeKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindEditor:
		return "editor"
	case KindCircle:
		return "circle"
	case KindPlane:
		return "plane"
	case KindExplosion:
		return "explosion"
	case KindWindZone:
		return "wind"
	case KindFluidZone:
		return "fluid"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// CollisionMask is a set of 32 collision layers.
type CollisionMask uint32

const (
	MaskNone CollisionMask = 0
	MaskAll  CollisionMask = ^CollisionMask(0)
)

// Layer returns the mask with only layer n set.
func Layer(n uint) CollisionMask {
	return 1 << (n & 31)
}

// HasAnyMask reports whether a pair passes filter. A zero filter disables
// filtering; otherwise the filter and both masks must share a layer.
func HasAnyMask(filter, a, b CollisionMask) bool {
	return filter == MaskNone || filter&a&b != 0
}
