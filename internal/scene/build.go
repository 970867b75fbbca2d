package scene

import (
	"math"
	"math/rand/v2"

	"github.com/tomz197/physics2d/internal/geom"
	"github.com/tomz197/physics2d/internal/physics"
)

// Config returns the physics configuration the scene asks for.
func (s *Scene) Config() physics.Config {
	cfg := physics.DefaultConfig()
	if s.Gravity != nil {
		cfg.Gravity = s.Gravity.Geom()
	}
	if s.ErrorReduction != nil {
		cfg.ErrorReduction = *s.ErrorReduction
	}
	if s.FlairLifetime != nil {
		cfg.FlairLifetime = *s.FlairLifetime
	}
	return cfg
}

// Build creates a world populated with the scene. Random spawns are drawn
// from a generator seeded with seed, so equal seeds build equal worlds.
// opts are applied after the scene configuration.
func (s *Scene) Build(seed uint64, opts ...physics.Option) *physics.World {
	all := append([]physics.Option{physics.WithConfig(s.Config())}, opts...)
	w := physics.NewWorld(all...)

	for _, p := range s.Planes {
		body := physics.NewPlane(p.Normal.Geom(), p.D)
		if len(p.Layers) > 0 {
			body.Mask = layers(p.Layers)
		}
		physics.Add(w, body)
	}
	for _, z := range s.Winds {
		wind := physics.WindZone{
			Area:      z.Area.Geom(),
			Direction: geom.SafeNormalize(z.Direction.Geom(), geom.V(1, 0)),
			Speed:     z.Speed,
			Drag:      z.Drag,
			Density:   z.Density,
		}
		if t := z.Turbulence; t != nil {
			wind.Turbulence = physics.Turbulence{
				Angle:     t.Angle,
				Intensity: t.Intensity,
				Scale:     t.Scale.Geom(),
				Depth:     t.Depth,
				Seed:      t.Seed,
			}
		}
		physics.Add(w, wind)
	}
	for _, f := range s.Fluids {
		physics.Add(w, physics.FluidZone{Area: f.Area.Geom(), Density: f.Density})
	}
	for _, e := range s.Explosions {
		physics.Add(w, physics.ExplosionBody{
			Position: e.Position.Geom(),
			Radius:   e.Radius,
			Force:    e.Force,
			Interval: e.Interval,
		})
	}
	for _, c := range s.Circles {
		physics.Add(w, c.body())
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for _, sp := range s.Spawns {
		for range sp.Count {
			physics.Add(w, sp.body(rng))
		}
	}
	return w
}

func (c Circle) body() physics.CircleBody {
	b := physics.NewCircle(c.Position.Geom(), c.Radius, c.Density, c.Restitution)
	b.Velocity = c.Velocity.Geom()
	b.SkipFrames = c.SkipFrames
	if c.Immovable {
		b.InverseMass = 0
		b.InverseInertia = 0
	}
	if len(c.Layers) > 0 {
		b.Mask = layers(c.Layers)
	}
	return b
}

func (sp Spawn) body(rng *rand.Rand) physics.CircleBody {
	area := sp.Area.Geom()
	size := area.Size()
	pos := area.Min.Add(geom.V(rng.Float64()*size[0], rng.Float64()*size[1]))
	radius := sp.Radius[0] + rng.Float64()*(sp.Radius[1]-sp.Radius[0])
	b := physics.NewCircle(pos, radius, sp.Density, sp.Restitution)
	jitter := geom.V(rng.Float64()*2-1, rng.Float64()*2-1).Mul(sp.Jitter)
	b.Velocity = sp.Velocity.Geom().Add(jitter)
	b.Rotation = rng.Float64() * 2 * math.Pi
	return b
}

func layers(ns []uint) physics.CollisionMask {
	var m physics.CollisionMask
	for _, n := range ns {
		m |= physics.Layer(n)
	}
	return m
}
