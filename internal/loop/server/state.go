package server

import (
	"time"

	"github.com/tomz197/physics2d/internal/geom"
	"github.com/tomz197/physics2d/internal/physics"
)

// WorldSnapshot is an immutable view of the simulation for rendering.
type WorldSnapshot struct {
	physics.Snapshot

	Scene     string
	View      geom.Bound2 // region the scene asks viewers to frame
	Players   int
	Paused    bool
	TimeScale float64
	StepCost  time.Duration // wall time of the last physics step
}

// Bodies returns the number of dynamic and static bodies, zones excluded.
func (s *WorldSnapshot) Bodies() int {
	return len(s.Circles) + len(s.Planes)
}
