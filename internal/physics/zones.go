package physics

import (
	"math"

	"github.com/ojrac/opensimplex-go"

	"github.com/tomz197/physics2d/internal/geom"
)

// Zone is a region that pushes on circles overlapping its bounds. Zones
// only accumulate force; they take no part in contact resolution.
type Zone interface {
	Bounds() geom.Bound2
	// Apply pushes body, whose bounds overlap the zone in overlap.
	Apply(body *CircleBody, overlap geom.Bound2, cfg *Config)
}

// applyZone applies z to every circle whose bounds overlap it with
// non-zero area.
func applyZone(z Zone, circles []CircleBody, cfg *Config) {
	area := z.Bounds()
	for i := range circles {
		c := &circles[i]
		overlap := area.Intersect(c.Bounds())
		if overlap.HasArea() {
			z.Apply(c, overlap, cfg)
		}
	}
}

// Turbulence perturbs a wind zone with a simplex noise field sampled at the
// body position and the zone's clock.
type Turbulence struct {
	Angle     float64   // maximum deflection, radians
	Intensity float64   // maximum relative change in strength
	Scale     geom.Vec2 // spatial frequency
	Depth     float64   // how fast the field evolves over time
	Seed      int64
}

// Enabled reports whether the turbulence changes anything.
func (t Turbulence) Enabled() bool {
	return t.Angle != 0 || t.Intensity != 0
}

// Second noise sample offset, so angle and strength are decorrelated.
var strengthOffset = geom.V(31.7, -47.3)

// WindZone blows along Direction with quadratic drag.
type WindZone struct {
	ID         BodyID
	Area       geom.Bound2
	Direction  geom.Vec2 // unit
	Speed      float64
	Drag       float64
	Density    float64 // of the air
	Turbulence Turbulence
	Time       float64

	noise     opensimplex.Noise
	noiseSeed int64
}

func (WindZone) Kind() ShapeKind { return KindWindZone }
func (z *WindZone) identity() *BodyID { return &z.ID }
func (z *WindZone) Bounds() geom.Bound2 { return z.Area }

func (z *WindZone) advance(dt float64) {
	z.Time += dt
}

// Pressure returns 0.5·ρ·v²·Cd, the force per unit of body area.
func (z *WindZone) Pressure() float64 {
	return 0.5 * z.Density * z.Speed * z.Speed * z.Drag
}

// TurbulenceAt returns the deflection angle and strength multiplier of the
// wind at p.
func (z *WindZone) TurbulenceAt(p geom.Vec2) (angle, strength float64) {
	t := z.Turbulence
	if !t.Enabled() {
		return 0, 1
	}
	if z.noise == nil || z.noiseSeed != t.Seed {
		z.noise = opensimplex.New(t.Seed)
		z.noiseSeed = t.Seed
	}
	x, y, w := p[0]*t.Scale[0], p[1]*t.Scale[1], z.Time*t.Depth
	angle = z.noise.Eval3(x, y, w) * t.Angle
	strength = math.Max(0, 1+z.noise.Eval3(x+strengthOffset[0], y+strengthOffset[1], w)*t.Intensity)
	return angle, strength
}

// ForceAt returns the wind force on a body of the given area at p.
func (z *WindZone) ForceAt(p geom.Vec2, area float64) geom.Vec2 {
	dir := z.Direction
	magnitude := z.Pressure() * area
	if z.Turbulence.Enabled() {
		angle, strength := z.TurbulenceAt(p)
		dir = geom.Rotate(dir, geom.SinCos(angle))
		magnitude *= strength
	}
	return dir.Mul(magnitude)
}

func (z *WindZone) Apply(body *CircleBody, _ geom.Bound2, _ *Config) {
	body.ApplyForce(z.ForceAt(body.Position, body.Area()))
}

// FluidZone buoys bodies against gravity. The submerged area is
// approximated by the overlap of the bounding boxes divided by π.
type FluidZone struct {
	ID      BodyID
	Area    geom.Bound2
	Density float64
}

func (FluidZone) Kind() ShapeKind { return KindFluidZone }
func (z *FluidZone) identity() *BodyID { return &z.ID }
func (z *FluidZone) Bounds() geom.Bound2 { return z.Area }

// Buoyancy returns the force on a body whose bounds overlap the fluid in
// overlap.
func (z *FluidZone) Buoyancy(overlap geom.Bound2, gravity geom.Vec2) geom.Vec2 {
	submerged := overlap.Area() / math.Pi
	return gravity.Mul(-z.Density * submerged)
}

func (z *FluidZone) Apply(body *CircleBody, overlap geom.Bound2, cfg *Config) {
	body.ApplyForce(z.Buoyancy(overlap, cfg.Gravity))
}

// ExplosionBody fires every Interval seconds, pushing every circle within
// Radius away from Position with quadratic falloff.
type ExplosionBody struct {
	ID       BodyID
	Position geom.Vec2
	Radius   float64
	Force    float64
	Interval float64 // seconds; zero never fires on its own

	Time        float64
	ShouldApply bool // set for exactly one tick per firing
}

func (ExplosionBody) Kind() ShapeKind { return KindExplosion }
func (e *ExplosionBody) identity() *BodyID { return &e.ID }

func (e ExplosionBody) Circle() geom.Circle {
	return geom.NewCircle(e.Position, e.Radius)
}

func (e ExplosionBody) Bounds() geom.Bound2 {
	return e.Circle().Bounds()
}

// Progress returns how far the explosion is through its interval, in [0, 1].
func (e ExplosionBody) Progress() float64 {
	if e.Interval <= 0 {
		return 0
	}
	return math.Min(e.Time/e.Interval, 1)
}

// Update advances the timer. The remainder past Interval carries over, so
// the explosion fires once for every Interval of accumulated time.
func (e *ExplosionBody) Update(dt float64) {
	e.ShouldApply = false
	e.Time += dt
	if e.Interval > 0 && e.Time >= e.Interval {
		e.Time -= e.Interval
		e.ShouldApply = true
	}
}

// ForceAt returns the push on a body centred at p.
func (e *ExplosionBody) ForceAt(p geom.Vec2) (geom.Vec2, bool) {
	delta := p.Sub(e.Position)
	distSq := geom.LengthSquared(delta)
	if distSq > e.Radius*e.Radius || e.Radius <= 0 {
		return geom.Vec2{}, false
	}
	dist := math.Sqrt(distSq)
	falloff := 1 - dist/e.Radius
	dir := geom.SafeNormalize(delta, geom.V(0, 1))
	return dir.Mul(e.Force * falloff * falloff), true
}

// Apply pushes body if it lies within the blast radius.
func (e *ExplosionBody) Apply(body *CircleBody) bool {
	f, ok := e.ForceAt(body.Position)
	if ok {
		body.ApplyForce(f)
	}
	return ok
}
