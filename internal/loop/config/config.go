// Package config centralizes the tunable parameters of the simulator and
// its terminal viewer.
package config

import "time"

// View resolution - the visible viewport in logical units.
// Actual rendering scales to fit terminal size.
const (
	ViewWidth  = 120 // Logical viewport width
	ViewHeight = 80  // Logical viewport height (in sub-pixels, so 40 terminal rows)
)

// Maximum render area; larger terminals get a centred, bordered canvas.
const (
	MaxTermWidth  = 200
	MaxTermHeight = 60
)

// Simulation
const (
	TickRate    = 60
	TickTime    = time.Second / TickRate
	TickSeconds = 1.0 / TickRate

	MinTimeScale  = 0.125
	MaxTimeScale  = 8.0
	TimeScaleStep = 2.0
)

// Bodies created from the viewer
const (
	SpawnRadius      = 2.0
	SpawnDensity     = 250.0
	SpawnRestitution = 0.5
	MinRadius        = 0.5
	MaxRadius        = 12.0
	GrowFactor       = 1.25

	BlastRadius = 25.0
	BlastForce  = 3e7
)

// Cursor and camera
const (
	CursorSpeed = 40.0 // Logical units per second while an arrow is held
	ProbeRadius = 1.5  // World units around the cursor
	ZoomStep    = 1.25
	MinZoom     = 0.25
	MaxZoom     = 8.0
)

// Clients
const (
	MaxUsernameLength = 16
	MaxHoverLines     = 6
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)
