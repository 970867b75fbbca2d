package physics

import "github.com/tomz197/physics2d/internal/geom"

// integrate advances one circle by a tick of dt seconds. Velocity gets a
// half-step kick around a full-step drift. Bodies that skip frames advance
// once every SkipFrames+1 ticks with a proportionally larger step. Force and
// torque are cleared whether or not the body moved.
func integrate(c *CircleBody, dt float64, cfg *Config) {
	defer c.clearForces()

	if c.CurrentFrame < c.SkipFrames {
		c.CurrentFrame++
		return
	}
	c.CurrentFrame = 0
	step := dt * float64(c.SkipFrames+1)
	half := step / 2

	if cfg.EnableVelocity && !c.Immovable() {
		accel := c.Force.Mul(c.InverseMass).Add(cfg.Gravity)
		c.Velocity = c.Velocity.Add(accel.Mul(half))
		c.Position = c.Position.Add(c.Velocity.Mul(step))
	}

	if cfg.EnableAngular {
		c.AngularVelocity += c.Torque * c.InverseInertia * half
		c.Rotation = geom.WrapAngle(c.Rotation + c.AngularVelocity*step)
	}
}
