package physics

import (
	"math"

	"github.com/tomz197/physics2d/internal/geom"
)

// Transform2D places a dynamic body.
type Transform2D struct {
	Position geom.Vec2
	Rotation float64 // radians, kept in [0, 2π)
}

// RigidBody2D holds the dynamics state of a body. Zero inverse mass or
// inertia means the body cannot be moved or spun.
type RigidBody2D struct {
	Velocity        geom.Vec2
	Force           geom.Vec2
	Torque          float64
	InverseMass     float64
	AngularVelocity float64
	InverseInertia  float64
	Restitution     float64

	// The body integrates once every SkipFrames+1 ticks.
	SkipFrames   int
	CurrentFrame int
}

// Mass returns 1/InverseMass, or +Inf for an immovable body.
func (rb *RigidBody2D) Mass() float64 {
	if rb.InverseMass == 0 {
		return math.Inf(1)
	}
	return 1 / rb.InverseMass
}

// Immovable reports whether the body has infinite mass.
func (rb *RigidBody2D) Immovable() bool {
	return rb.InverseMass == 0
}

// ApplyForce adds f to the force accumulator.
func (rb *RigidBody2D) ApplyForce(f geom.Vec2) {
	rb.Force = rb.Force.Add(f)
}

// ApplyForceAt adds f acting at offset r from the centre of mass.
func (rb *RigidBody2D) ApplyForceAt(f, r geom.Vec2) {
	rb.Force = rb.Force.Add(f)
	rb.Torque += geom.Cross(r, f)
}

// ApplyImpulse changes velocity by impulse j acting at offset r from the
// centre of mass.
func (rb *RigidBody2D) ApplyImpulse(j, r geom.Vec2) {
	rb.Velocity = rb.Velocity.Add(j.Mul(rb.InverseMass))
	rb.AngularVelocity += rb.InverseInertia * geom.Cross(r, j)
}

func (rb *RigidBody2D) clearForces() {
	rb.Force = geom.Vec2{}
	rb.Torque = 0
}

// CircleBody is a dynamic disc.
type CircleBody struct {
	ID BodyID
	Transform2D
	RigidBody2D
	Radius  float64
	Density float64
	Mask    CollisionMask
}

func (CircleBody) Kind() ShapeKind { return KindCircle }
func (c *CircleBody) identity() *BodyID { return &c.ID }
func (c CircleBody) Circle() geom.Circle { return geom.NewCircle(c.Position, c.Radius) }
func (c CircleBody) Bounds() geom.Bound2 { return c.Circle().Bounds() }
func (c CircleBody) Area() float64 { return c.Circle().Area() }

// Momentum returns mass times velocity, or zero for an immovable body.
func (c CircleBody) Momentum() geom.Vec2 {
	if c.Immovable() {
		return geom.Vec2{}
	}
	return c.Velocity.Mul(c.Mass())
}

// CalculateMass derives the inverse mass and inertia from radius and
// density: m = πr²ρ and I = mr²/2. Either inverse is zero when the
// underlying quantity is zero.
func (c *CircleBody) CalculateMass() {
	m := math.Pi * c.Radius * c.Radius * c.Density
	i := m * c.Radius * c.Radius / 2
	c.InverseMass = reciprocal(m)
	c.InverseInertia = reciprocal(i)
}

func reciprocal(v float64) float64 {
	if v == 0 {
		return 0
	}
	return 1 / v
}

// PlaneBody is a static half-plane. The solid side is behind the normal.
type PlaneBody struct {
	ID    BodyID
	Plane geom.Plane2D
	Mask  CollisionMask
}

func (PlaneBody) Kind() ShapeKind { return KindPlane }
func (p *PlaneBody) identity() *BodyID { return &p.ID }

// NewCircle returns a circle on every collision layer with its mass derived
// from radius and density.
func NewCircle(pos geom.Vec2, radius, density, restitution float64) CircleBody {
	c := CircleBody{
		Transform2D: Transform2D{Position: pos},
		RigidBody2D: RigidBody2D{Restitution: restitution},
		Radius:      radius,
		Density:     density,
		Mask:        MaskAll,
	}
	c.CalculateMass()
	return c
}

// NewPlane returns a plane on every collision layer.
func NewPlane(normal geom.Vec2, d float64) PlaneBody {
	return PlaneBody{Plane: geom.NewPlane2D(normal, d), Mask: MaskAll}
}
