package server

import (
	"github.com/tomz197/physics2d/internal/geom"
	"github.com/tomz197/physics2d/internal/physics"
)

// CommandType identifies what a client asks the simulation to do.
type CommandType int

const (
	CmdSpawn     CommandType = iota // add a circle at Pos with Radius
	CmdExplode                      // one-shot blast at Pos with Radius and Value as force
	CmdPause                        // toggle pause
	CmdStep                         // advance one tick while paused
	CmdReset                        // rebuild the scene
	CmdTimeScale                    // multiply the time scale by Value
	CmdResize                       // scale the radius of the circle nearest Pos by Value
	CmdProbe                        // list bodies within Radius of Pos on Reply
)

var commandNames = [...]string{"spawn", "explode", "pause", "step", "reset", "time-scale", "resize", "probe"}

func (t CommandType) String() string {
	if t < 0 || int(t) >= len(commandNames) {
		return "unknown"
	}
	return commandNames[t]
}

// Command is a request executed on the simulation goroutine between ticks.
type Command struct {
	Type     CommandType
	ClientID int
	Pos      geom.Vec2
	Radius   float64
	Value    float64
	Reply    chan<- []physics.ShapeLocation // CmdProbe only; must be buffered
}
