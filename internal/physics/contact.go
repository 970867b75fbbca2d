package physics

import (
	"github.com/tomz197/physics2d/internal/geom"
	"github.com/tomz197/physics2d/internal/storage"
)

// Contact2D is one intersection between two bodies.
type Contact2D struct {
	Normal geom.Vec2     // unit, from A towards B
	Point  geom.Vec2     // world space
	Depth  geom.Distance // penetration, non-negative when generated
}

// BodyContact ties a contact to the storage indices of the pair that
// produced it. The indices are only valid during the tick that produced
// them.
type BodyContact struct {
	A, B    int
	Contact Contact2D
}

// ShapeLocation is one result of a spatial query.
type ShapeLocation struct {
	Kind    ShapeKind
	ID      BodyID
	Contact Contact2D
}

// ContactGenerator turns an ordered pair of bodies into at most one contact.
// Generate must not modify either body.
type ContactGenerator[A, B any] interface {
	Kinds() (ShapeKind, ShapeKind)
	Generate(a *A, b *B) (Contact2D, bool)
}

// PairFilter is implemented by generators that can reject a pair before
// doing any geometry.
type PairFilter[A, B any] interface {
	Reject(a *A, b *B) bool
}

// TryGenerate runs gen's pair filter, if it has one, then its geometry.
func TryGenerate[A, B any](gen ContactGenerator[A, B], a *A, b *B) (Contact2D, bool) {
	if f, ok := gen.(PairFilter[A, B]); ok && f.Reject(a, b) {
		return Contact2D{}, false
	}
	return gen.Generate(a, b)
}

// GenerateSelf tests every unordered pair i < j of items once.
func GenerateSelf[T any](gen ContactGenerator[T, T], items []T, out storage.Consumer[BodyContact]) {
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			if c, ok := TryGenerate(gen, &items[i], &items[j]); ok {
				out.Accept(BodyContact{A: i, B: j, Contact: c})
			}
		}
	}
}

// GenerateCross tests every pair of the product as × bs.
func GenerateCross[A, B any](gen ContactGenerator[A, B], as []A, bs []B, out storage.Consumer[BodyContact]) {
	for i := range as {
		for j := range bs {
			if c, ok := TryGenerate(gen, &as[i], &bs[j]); ok {
				out.Accept(BodyContact{A: i, B: j, Contact: c})
			}
		}
	}
}

// fallbackNormal is used when two centres coincide.
var fallbackNormal = geom.V(1, 0)

// CircleCircle collides two circles.
type CircleCircle struct {
	// RequireSharedTrajectory rejects pairs that are already moving apart.
	RequireSharedTrajectory bool
	// Require is the intersection classification a pair must reach.
	// geom.Cuts drops pairs where one circle contains the other.
	Require geom.IntersectionResult
	Mask    CollisionMask
}

var (
	_ ContactGenerator[CircleBody, CircleBody] = CircleCircle{}
	_ PairFilter[CircleBody, CircleBody]       = CircleCircle{}
)

func (CircleCircle) Kinds() (ShapeKind, ShapeKind) { return KindCircle, KindCircle }

func (g CircleCircle) Reject(a, b *CircleBody) bool {
	if !HasAnyMask(g.Mask, a.Mask, b.Mask) {
		return true
	}
	if g.RequireSharedTrajectory {
		relVel := b.Velocity.Sub(a.Velocity)
		if relVel.Dot(b.Position.Sub(a.Position)) > 0 {
			return true
		}
	}
	return false
}

func (g CircleCircle) Generate(a, b *CircleBody) (Contact2D, bool) {
	hit := a.Circle().Intersect(b.Circle())
	if !hit.Result.Matches(g.Require) {
		return Contact2D{}, false
	}
	d := hit.Distance.GetEuclidean()
	return Contact2D{
		Normal: geom.SafeNormalize(b.Position.Sub(a.Position), fallbackNormal),
		Point:  hit.Point,
		Depth:  geom.Euclidean(a.Radius + b.Radius - d),
	}, true
}

// CirclePlane collides a circle with a static plane. The normal points from
// the circle into the plane.
type CirclePlane struct {
	Mask CollisionMask
}

var (
	_ ContactGenerator[CircleBody, PlaneBody] = CirclePlane{}
	_ PairFilter[CircleBody, PlaneBody]       = CirclePlane{}
)

func (CirclePlane) Kinds() (ShapeKind, ShapeKind) { return KindCircle, KindPlane }

func (g CirclePlane) Reject(a *CircleBody, b *PlaneBody) bool {
	return !HasAnyMask(g.Mask, a.Mask, b.Mask)
}

func (CirclePlane) Generate(a *CircleBody, b *PlaneBody) (Contact2D, bool) {
	hit := b.Plane.Intersect(a.Circle())
	if !hit.Hit {
		return Contact2D{}, false
	}
	return Contact2D{
		Normal: b.Plane.Normal.Mul(-1),
		Point:  hit.Point,
		Depth:  geom.Euclidean(hit.Depth),
	}, true
}

// CircleExplosion reports circles touching an explosion's blast radius.
type CircleExplosion struct{}

var _ ContactGenerator[CircleBody, ExplosionBody] = CircleExplosion{}

func (CircleExplosion) Kinds() (ShapeKind, ShapeKind) { return KindCircle, KindExplosion }

func (CircleExplosion) Generate(a *CircleBody, b *ExplosionBody) (Contact2D, bool) {
	hit := a.Circle().Intersect(b.Circle())
	if !hit.Result.Matches(geom.IntersectAny) {
		return Contact2D{}, false
	}
	d := hit.Distance.GetEuclidean()
	return Contact2D{
		Normal: geom.SafeNormalize(b.Position.Sub(a.Position), fallbackNormal),
		Point:  hit.Point,
		Depth:  geom.Euclidean(a.Radius + b.Radius - d),
	}, true
}

// Bounded is a body described by its bounding box.
type Bounded interface {
	Kind() ShapeKind
	Bounds() geom.Bound2
}

// CircleBounds reports circles touching the bounding box of another body.
// The contact point is the closest point of the box; the normal points from
// the circle towards it and is zero when the centre is inside the box.
type CircleBounds[T any, P interface {
	*T
	Bounded
}] struct{}

func (CircleBounds[T, P]) Kinds() (ShapeKind, ShapeKind) {
	var zero T
	return KindCircle, P(&zero).Kind()
}

func (CircleBounds[T, P]) Generate(a *CircleBody, b *T) (Contact2D, bool) {
	hit := a.Circle().IntersectBound(P(b).Bounds())
	if !hit.Hit {
		return Contact2D{}, false
	}
	return Contact2D{
		Normal: geom.SafeNormalize(hit.Closest.Sub(a.Position), geom.Vec2{}),
		Point:  hit.Closest,
		Depth:  geom.Euclidean(a.Radius - hit.Distance.GetEuclidean()),
	}, true
}
