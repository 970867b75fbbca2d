package physics

import (
	"github.com/charmbracelet/log"

	"github.com/tomz197/physics2d/internal/geom"
)

// Config holds the tunables of one World.
type Config struct {
	Gravity         geom.Vec2
	ErrorReduction  float64       // share of penetration removed per contact per tick
	CollisionFilter CollisionMask // layer filter for contacts; MaskNone lets every pair collide
	EnableVelocity  bool
	EnableAngular   bool
	FlairLifetime   int     // ticks; zero disables flairs
	TimeScale       float64 // multiplies every dt passed to FixedUpdate; ignored when not positive
}

// DefaultConfig returns Earth gravity along -Y and the default solver
// settings.
func DefaultConfig() Config {
	return Config{
		Gravity:         geom.V(0, -9.82),
		ErrorReduction:  0.05,
		CollisionFilter: MaskAll,
		EnableVelocity:  true,
		EnableAngular:   true,
		FlairLifetime:   20,
		TimeScale:       1,
	}
}

// Option configures a World.
type Option func(*World)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(w *World) {
		w.cfg = cfg
	}
}

// WithGravity sets the gravity vector.
func WithGravity(g geom.Vec2) Option {
	return func(w *World) {
		w.cfg.Gravity = g
	}
}

// WithErrorReduction sets the positional correction factor.
func WithErrorReduction(f float64) Option {
	return func(w *World) {
		w.cfg.ErrorReduction = f
	}
}

// WithLogger sets the logger used for debug events.
func WithLogger(l *log.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.log = l
		}
	}
}
