// Package client runs one viewer connected to a simulation server.
package client

import (
	"bufio"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/physics2d/internal/draw"
	"github.com/tomz197/physics2d/internal/geom"
	"github.com/tomz197/physics2d/internal/input"
	"github.com/tomz197/physics2d/internal/loop/config"
	"github.com/tomz197/physics2d/internal/loop/server"
	"github.com/tomz197/physics2d/internal/physics"
	"github.com/tomz197/physics2d/internal/render"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.SimServer
	handle       *server.ClientHandle
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter
	hud          *render.HUD
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc

	probeCh chan []physics.ShapeLocation
	probing bool
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	// Renderer styles the HUD. Defaults to one detecting the writer's
	// colour support.
	Renderer *lipgloss.Renderer
}

// NewClient creates a client connected to the given server.
func NewClient(ss server.SimServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = lipgloss.NewRenderer(w)
	}

	cam := render.NewCamera(ss.GetSnapshot().View, config.ViewWidth, config.ViewHeight)
	state := NewClientState(cam, draw.Point{X: config.ViewWidth / 2, Y: config.ViewHeight / 2})

	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.ViewWidth, config.ViewHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client{
		server:       ss,
		handle:       ss.RegisterClient(opts.Username),
		state:        state,
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		hud:          render.NewHUD(renderer),
		writer:       w,
		inputStream:  input.StartStream(r),
		lastInput:    time.Now(),
		termSizeFunc: termSizeFunc,
		probeCh:      make(chan []physics.ShapeLocation, 1),
	}
}

// Run starts the client loop. Blocks until the viewer quits or the server
// goes away.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)
	defer c.server.UnregisterClient(c.handle.ID)

	lastTime := time.Now()
	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processServerEvents()
		c.updateScreen()

		switch c.state.ViewState {
		case ViewStateRunning:
			c.updateRunningState()
		case ViewStateShutdown:
			c.updateShutdownState()
		}

		if err := c.drawFrame(); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads this frame's keys and turns them into commands.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	switch since := time.Since(c.lastInput).Seconds(); {
	case c.state.Input.Active():
		c.lastInput = time.Now()
		c.state.isInactive = false
	case since > config.InactivityDisconnectUser:
		c.state.Running = false
	case since > config.InactivityWarnUser:
		c.state.isInactive = true
	}

	for _, a := range c.state.Input.Actions {
		c.handleAction(a)
	}
}

func (c *Client) handleAction(a input.Action) {
	if a == input.ActionQuit {
		c.state.Running = false
		return
	}
	switch c.state.ViewState {
	case ViewStateIntro:
		if a == input.ActionConfirm || a == input.ActionPause {
			c.state.ViewState = ViewStateRunning
		}
		return
	case ViewStateShutdown:
		return
	}

	pos := c.cursorWorld()
	switch a {
	case input.ActionPause:
		c.send(server.Command{Type: server.CmdPause})
	case input.ActionStep:
		c.send(server.Command{Type: server.CmdStep})
	case input.ActionSpawn:
		c.send(server.Command{Type: server.CmdSpawn, Pos: pos, Radius: config.SpawnRadius})
	case input.ActionExplode:
		c.send(server.Command{Type: server.CmdExplode, Pos: pos, Radius: config.BlastRadius, Value: config.BlastForce})
	case input.ActionReset:
		c.send(server.Command{Type: server.CmdReset})
	case input.ActionGrow:
		c.send(server.Command{Type: server.CmdResize, Pos: pos, Radius: config.ProbeRadius, Value: config.GrowFactor})
	case input.ActionShrink:
		c.send(server.Command{Type: server.CmdResize, Pos: pos, Radius: config.ProbeRadius, Value: 1 / config.GrowFactor})
	case input.ActionFaster:
		c.send(server.Command{Type: server.CmdTimeScale, Value: config.TimeScaleStep})
	case input.ActionSlower:
		c.send(server.Command{Type: server.CmdTimeScale, Value: 1 / config.TimeScaleStep})
	case input.ActionZoomIn:
		c.state.Camera.ZoomTo(c.state.Camera.Zoom*config.ZoomStep, config.MinZoom, config.MaxZoom, 0.2)
	case input.ActionZoomOut:
		c.state.Camera.ZoomTo(c.state.Camera.Zoom/config.ZoomStep, config.MinZoom, config.MaxZoom, 0.2)
	case input.ActionRecenter:
		c.state.Camera.Reset()
	case input.ActionHelp:
		c.state.ShowHelp = !c.state.ShowHelp
	}
}

func (c *Client) send(cmd server.Command) {
	cmd.ClientID = c.handle.ID
	c.server.SendCommand(cmd)
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventSceneReset:
				c.state.notice = "scene reset"
				c.state.noticeTimer = 2
			case server.EventServerShutdown:
				c.state.ViewState = ViewStateShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen follows terminal resizes, clamped to the max render size.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and
// computes the offset that centres the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

func (c *Client) updateRunningState() {
	dt := c.state.delta.Seconds()
	in := c.state.Input
	var dx, dy float64
	if in.Left {
		dx--
	}
	if in.Right {
		dx++
	}
	if in.Up {
		dy--
	}
	if in.Down {
		dy++
	}
	c.moveCursor(dx*config.CursorSpeed*dt, dy*config.CursorSpeed*dt)
	c.state.Camera.Update(float32(dt))

	if c.state.noticeTimer > 0 {
		c.state.noticeTimer -= dt
	}
	c.updateProbe()
}

// moveCursor moves the cursor in logical units. Pushing past the viewport
// edge pans the camera instead.
func (c *Client) moveCursor(dx, dy float64) {
	p := draw.Point{X: c.state.Cursor.X + dx, Y: c.state.Cursor.Y + dy}
	clamped := draw.Point{
		X: max(0, min(config.ViewWidth-1, p.X)),
		Y: max(0, min(config.ViewHeight-1, p.Y)),
	}
	if over := (draw.Point{X: p.X - clamped.X, Y: p.Y - clamped.Y}); over != (draw.Point{}) {
		c.state.Camera.Pan(over.X, over.Y)
	}
	c.state.Cursor = clamped
}

func (c *Client) cursorWorld() geom.Vec2 {
	return c.state.Camera.ToWorld(c.state.Cursor)
}

// updateProbe keeps one hover query in flight and picks up its answer.
func (c *Client) updateProbe() {
	select {
	case hits := <-c.probeCh:
		c.state.Hover = hits
		c.probing = false
	default:
	}
	if c.probing {
		return
	}
	c.probing = c.server.SendCommand(server.Command{
		Type:     server.CmdProbe,
		ClientID: c.handle.ID,
		Pos:      c.cursorWorld(),
		Radius:   config.ProbeRadius,
		Reply:    c.probeCh,
	})
}

// highlight returns the first hovered circle.
func (c *Client) highlight() physics.BodyID {
	for _, hit := range c.state.Hover {
		if hit.Kind == physics.KindCircle {
			return hit.ID
		}
	}
	return 0
}

// updateShutdownState counts down to the automatic disconnect.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
