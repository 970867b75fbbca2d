package physics

import (
	"math"

	"github.com/tomz197/physics2d/internal/geom"
)

// ContactFlair is a short-lived marker left by every resolved contact.
type ContactFlair struct {
	Point     geom.Vec2
	Direction geom.Vec2 // contact normal scaled by the penetration depth
	Age       int       // ticks since the contact was resolved
}

// effectiveMass returns the reduced mass of a pair given their inverse
// masses. An immovable side contributes nothing, so the result collapses to
// the other side's mass.
func effectiveMass(invA, invB float64) float64 {
	switch {
	case invA == 0 && invB == 0:
		return 0
	case invA == 0:
		return 1 / invB
	case invB == 0:
		return 1 / invA
	}
	mA, mB := 1/invA, 1/invB
	return mA * mB / (mA + mB)
}

// resolve applies the velocity impulse and positional correction for one
// contact from A to B. It reports whether anything was done; pairs where
// both sides are immovable are skipped.
func resolve(a, b *RigidBody2D, posA, posB *geom.Vec2, c Contact2D, errorReduction float64) bool {
	if a.Immovable() && b.Immovable() {
		return false
	}
	n := c.Normal
	mass := effectiveMass(a.InverseMass, b.InverseMass)

	// Each side bounces by its own restitution.
	impulse := n.Mul(mass * b.Velocity.Sub(a.Velocity).Dot(n))
	a.ApplyImpulse(impulse.Mul(1+a.Restitution), c.Point.Sub(*posA))
	b.ApplyImpulse(impulse.Mul(-(1 + b.Restitution)), c.Point.Sub(*posB))

	depth := c.Depth.GetEuclidean()
	if depth > 0 && !math.IsInf(depth, 0) {
		correction := errorReduction * mass * depth
		*posA = posA.Sub(n.Mul(correction * a.InverseMass))
		*posB = posB.Add(n.Mul(correction * b.InverseMass))
	}
	return true
}

// solveCircles resolves circle-circle contacts.
func (w *World) solveCircles(circles []CircleBody) {
	for _, bc := range w.circleContacts.Items() {
		a, b := &circles[bc.A], &circles[bc.B]
		if resolve(&a.RigidBody2D, &b.RigidBody2D, &a.Position, &b.Position, bc.Contact, w.cfg.ErrorReduction) {
			w.addFlair(bc.Contact)
		}
	}
}

// solvePlanes resolves circle-plane contacts. Planes are immovable.
func (w *World) solvePlanes(circles []CircleBody) {
	for _, bc := range w.planeContacts.Items() {
		a := &circles[bc.A]
		var static RigidBody2D
		anchor := bc.Contact.Point
		if resolve(&a.RigidBody2D, &static, &a.Position, &anchor, bc.Contact, w.cfg.ErrorReduction) {
			w.addFlair(bc.Contact)
		}
	}
}

func (w *World) addFlair(c Contact2D) {
	if w.cfg.FlairLifetime <= 0 {
		return
	}
	w.flairs.Push(ContactFlair{
		Point:     c.Point,
		Direction: c.Normal.Mul(c.Depth.GetEuclidean()),
	})
}

// ageFlairs advances every flair by one tick and drops the expired ones.
func (w *World) ageFlairs() {
	for i := w.flairs.Len() - 1; i >= 0; i-- {
		f := w.flairs.Get(i)
		f.Age++
		if f.Age >= w.cfg.FlairLifetime {
			w.flairs.RemoveAt(i)
		}
	}
}
