package client

import (
	"time"

	"github.com/tomz197/physics2d/internal/draw"
	"github.com/tomz197/physics2d/internal/input"
	"github.com/tomz197/physics2d/internal/physics"
	"github.com/tomz197/physics2d/internal/render"
)

// ViewState is the current phase of a client.
type ViewState int

const (
	ViewStateIntro    ViewState = iota // Title and key reference
	ViewStateRunning                   // Watching and poking the simulation
	ViewStateShutdown                  // Server is shutting down
)

// ClientState holds per-viewer state. Each client has its own instance.
type ClientState struct {
	Input     input.Input
	Camera    render.Camera
	Cursor    draw.Point // logical viewport position
	Hover     []physics.ShapeLocation
	ViewState ViewState
	ShowHelp  bool
	Running   bool

	delta         time.Duration
	prevViewState ViewState
	shutdownTimer float64 // countdown before auto-disconnect on shutdown
	notice        string
	noticeTimer   float64
	isInactive    bool
	wasInactive   bool
}

// NewClientState creates a client state looking at view.
func NewClientState(cam render.Camera, cursor draw.Point) *ClientState {
	return &ClientState{
		Camera:    cam,
		Cursor:    cursor,
		ViewState: ViewStateIntro,
		Running:   true,
	}
}
