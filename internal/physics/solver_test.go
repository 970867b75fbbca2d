package physics

import (
	"math"
	"testing"

	"github.com/tomz197/physics2d/internal/geom"
)

func TestEffectiveMass(t *testing.T) {
	tests := []struct {
		name       string
		invA, invB float64
		want       float64
	}{
		{"equal", 1, 1, 0.5},
		{"a immovable", 0, 0.25, 4},
		{"b immovable", 0.5, 0, 2},
		{"both immovable", 0, 0, 0},
		{"unequal", 1, 0.5, 2.0 / 3},
	}
	for _, tt := range tests {
		if got := effectiveMass(tt.invA, tt.invB); !approx(got, tt.want) {
			t.Errorf("%s: effectiveMass = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestRestitutionAgainstPlane(t *testing.T) {
	tests := []struct {
		restitution float64
		want        geom.Vec2
	}{
		{1, geom.V(0, 5)},
		{0, geom.V(0, 0)},
		{0.5, geom.V(0, 2.5)},
	}
	for _, tt := range tests {
		w := NewWorld(WithGravity(geom.Vec2{}))
		Add(w, NewPlane(geom.V(0, 1), 0))
		_, id := Add(w, CircleBody{
			Transform2D: Transform2D{Position: geom.V(0, 0.95)},
			RigidBody2D: RigidBody2D{InverseMass: 1, Velocity: geom.V(0, -5), Restitution: tt.restitution},
			Radius:      1,
			Mask:        MaskAll,
		})

		w.FixedUpdate(0.01)

		if n := len(w.PlaneContacts()); n != 1 {
			t.Fatalf("e=%v: plane contacts = %d, want 1", tt.restitution, n)
		}
		got := Find[CircleBody](w, id).Velocity
		if !approxVec(got, tt.want) {
			t.Errorf("e=%v: velocity = %v, want %v", tt.restitution, got, tt.want)
		}
	}
}

func TestPlaneCorrectionPushesOut(t *testing.T) {
	w := NewWorld(WithGravity(geom.Vec2{}), WithErrorReduction(0.5))
	Add(w, NewPlane(geom.V(0, 1), 0))
	_, id := Add(w, NewCircle(geom.V(0, 0.5), 1, 1, 0))

	w.FixedUpdate(0.01)

	got := Find[CircleBody](w, id).Position
	if !approxVec(got, geom.V(0, 0.75)) {
		t.Errorf("Position = %v, want (0,0.75)", got)
	}
}

func TestHeadOnElasticExchange(t *testing.T) {
	w := NewWorld(WithGravity(geom.Vec2{}))
	a := NewCircle(geom.V(0, 0), 1, 1, 1)
	a.Velocity = geom.V(1, 0)
	b := NewCircle(geom.V(1.9, 0), 1, 1, 1)
	b.Velocity = geom.V(-1, 0)
	_, idA := Add(w, a)
	_, idB := Add(w, b)

	w.FixedUpdate(0.01)

	gotA, gotB := Find[CircleBody](w, idA), Find[CircleBody](w, idB)
	if !approxVec(gotA.Velocity, geom.V(-1, 0)) {
		t.Errorf("A velocity = %v, want (-1,0)", gotA.Velocity)
	}
	if !approxVec(gotB.Velocity, geom.V(1, 0)) {
		t.Errorf("B velocity = %v, want (1,0)", gotB.Velocity)
	}
	total := gotA.Momentum().Add(gotB.Momentum())
	if !approxVec(total, geom.Vec2{}) {
		t.Errorf("total momentum = %v, want 0", total)
	}
}

func TestMomentumConservedUnequalMasses(t *testing.T) {
	w := NewWorld(WithGravity(geom.Vec2{}))
	a := NewCircle(geom.V(0, 0), 1, 1, 1)
	a.Velocity = geom.V(2, 1)
	b := NewCircle(geom.V(1.5, 0.5), 1, 3, 1)
	b.Velocity = geom.V(-1, 0)
	_, idA := Add(w, a)
	_, idB := Add(w, b)
	before := a.Momentum().Add(b.Momentum())

	w.FixedUpdate(0.001)

	if n := len(w.CircleContacts()); n != 1 {
		t.Fatalf("circle contacts = %d, want 1", n)
	}
	gotA, gotB := Find[CircleBody](w, idA), Find[CircleBody](w, idB)
	after := gotA.Momentum().Add(gotB.Momentum())
	if math.Abs(after[0]-before[0]) > 1e-9 || math.Abs(after[1]-before[1]) > 1e-9 {
		t.Errorf("momentum = %v, want %v", after, before)
	}
	if gotA.Velocity == a.Velocity {
		t.Error("A velocity unchanged by collision")
	}
}

func TestResolveSkipsStaticPairs(t *testing.T) {
	var a, b RigidBody2D
	pa, pb := geom.V(0, 0), geom.V(1, 0)
	c := Contact2D{Normal: geom.V(1, 0), Depth: geom.Euclidean(1)}
	if resolve(&a, &b, &pa, &pb, c, 0.5) {
		t.Error("resolve handled two immovable bodies")
	}
	if pa != geom.V(0, 0) || pb != geom.V(1, 0) {
		t.Errorf("positions moved to %v, %v", pa, pb)
	}
}

func TestResolveSeparatingPair(t *testing.T) {
	a := RigidBody2D{InverseMass: 1, Velocity: geom.V(-1, 0)}
	b := RigidBody2D{InverseMass: 1, Velocity: geom.V(1, 0)}
	pa, pb := geom.V(0, 0), geom.V(1, 0)
	c := Contact2D{Normal: geom.V(1, 0), Point: geom.V(0.5, 0), Depth: geom.Euclidean(1)}

	resolve(&a, &b, &pa, &pb, c, 0.2)

	// reduced mass 0.5, relative normal speed 2: impulse (1,0) on each side
	if !approxVec(a.Velocity, geom.V(0, 0)) || !approxVec(b.Velocity, geom.V(0, 0)) {
		t.Errorf("velocities = %v, %v, want (0,0), (0,0)", a.Velocity, b.Velocity)
	}
	if !approxVec(pa, geom.V(-0.1, 0)) || !approxVec(pb, geom.V(1.1, 0)) {
		t.Errorf("positions = %v, %v, want (-0.1,0), (1.1,0)", pa, pb)
	}
}

func TestPlaneImpulseWhileLeaving(t *testing.T) {
	w := NewWorld(WithGravity(geom.Vec2{}), WithErrorReduction(0))
	Add(w, NewPlane(geom.V(0, 1), 0))
	_, id := Add(w, CircleBody{
		Transform2D: Transform2D{Position: geom.V(0, 0.5)},
		RigidBody2D: RigidBody2D{InverseMass: 1, Velocity: geom.V(0, 2), Restitution: 1},
		Radius:      1,
		Mask:        MaskAll,
	})

	w.FixedUpdate(0.01)

	if n := len(w.PlaneContacts()); n != 1 {
		t.Fatalf("plane contacts = %d, want 1", n)
	}
	if got, want := Find[CircleBody](w, id).Velocity, geom.V(0, -2); !approxVec(got, want) {
		t.Errorf("velocity = %v, want %v", got, want)
	}
}

func TestFlairsExpire(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FlairLifetime = 3
	w := NewWorld(WithConfig(cfg))
	w.addFlair(Contact2D{Point: geom.V(1, 2), Normal: geom.V(0, 1), Depth: geom.Euclidean(0.5)})

	f := w.Flairs()
	if len(f) != 1 || !approxVec(f[0].Direction, geom.V(0, 0.5)) {
		t.Fatalf("Flairs() = %+v, want one flair pointing (0,0.5)", f)
	}
	for i := 1; i < 3; i++ {
		w.ageFlairs()
		if got := len(w.Flairs()); got != 1 {
			t.Fatalf("after %d ticks: %d flairs, want 1", i, got)
		}
	}
	w.ageFlairs()
	if got := len(w.Flairs()); got != 0 {
		t.Errorf("after 3 ticks: %d flairs, want 0", got)
	}

	cfg.FlairLifetime = 0
	w.SetConfig(cfg)
	w.addFlair(Contact2D{})
	if got := len(w.Flairs()); got != 0 {
		t.Errorf("disabled flairs: %d, want 0", got)
	}
}
