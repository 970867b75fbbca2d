package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/physics2d/internal/draw"
	"github.com/tomz197/physics2d/internal/loop/config"
	"github.com/tomz197/physics2d/internal/loop/server"
	"github.com/tomz197/physics2d/internal/render"
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// State and inactivity transitions clear the terminal so overlays from
	// the previous state do not linger.
	if c.state.ViewState != c.state.prevViewState || c.state.isInactive != c.state.wasInactive {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevViewState = c.state.ViewState
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()
	snap := c.server.GetSnapshot()

	render.Draw(c.canvas, c.state.Camera, &snap.Snapshot, render.Options{Highlight: c.highlight()})
	if c.state.ViewState == ViewStateRunning {
		c.drawCursor()
	}

	if err := c.canvas.Render(c.chunkWriter); err != nil {
		return err
	}
	if err := c.canvas.RenderBorder(c.chunkWriter); err != nil {
		return err
	}
	c.drawUI(snap)
	return c.chunkWriter.Flush()
}

func (c *Client) drawCursor() {
	p := c.state.Cursor
	c.canvas.SetColor(draw.ColorBrightWhite)
	c.canvas.DrawLine(draw.Point{X: p.X - 2, Y: p.Y}, draw.Point{X: p.X + 2, Y: p.Y})
	c.canvas.DrawLine(draw.Point{X: p.X, Y: p.Y - 2}, draw.Point{X: p.X, Y: p.Y + 2})
}

// writeText writes an overlay line and marks the cells it covers so the
// canvas repaints them once the text is gone.
func (c *Client) writeText(col, row int, s string) {
	if row < 1 || row > c.canvas.TerminalHeight() {
		return
	}
	col = max(col, 1)
	c.chunkWriter.WriteAt(col, row, s)
	c.canvas.MarkTextDirty(col, row, lipgloss.Width(s))
}

// writeCentered writes lines as a block centred on the canvas.
func (c *Client) writeCentered(lines []string) {
	width := 0
	for _, l := range lines {
		width = max(width, lipgloss.Width(l))
	}
	col := (c.canvas.TerminalWidth()-width)/2 + 1
	row := (c.canvas.TerminalHeight()-len(lines))/2 + 1
	for i, l := range lines {
		c.writeText(col, row+i, l)
	}
}

// drawUI draws the text overlay for the current state.
func (c *Client) drawUI(snap *server.WorldSnapshot) {
	switch {
	case c.state.ViewState == ViewStateShutdown:
		c.drawShutdownScreen()
	case c.state.isInactive:
		c.drawInactivityScreen()
	case c.state.ViewState == ViewStateIntro:
		c.drawIntroScreen(snap)
	default:
		c.drawHUD(snap)
	}
}

func (c *Client) status(snap *server.WorldSnapshot) render.Status {
	return render.Status{
		Scene:     snap.Scene,
		Tick:      snap.Tick,
		Elapsed:   snap.Elapsed,
		Bodies:    snap.Bodies(),
		Flairs:    len(snap.Flairs),
		Players:   snap.Players,
		Paused:    snap.Paused,
		TimeScale: snap.TimeScale,
		Zoom:      c.state.Camera.Zoom,
		Cursor:    c.cursorWorld(),
	}
}

func (c *Client) drawHUD(snap *server.WorldSnapshot) {
	st := c.status(snap)
	c.writeText(2, 1, c.hud.Status(st))
	for i, line := range c.hud.Hover(&snap.Snapshot, c.state.Hover, config.MaxHoverLines) {
		c.writeText(2, 2+i, line)
	}
	c.writeText(2, c.canvas.TerminalHeight(), c.hud.Footer(st))

	if c.state.noticeTimer > 0 {
		msg := " " + c.state.notice + " "
		c.writeText(c.canvas.TerminalWidth()-len(msg), 2, msg)
	}
	if c.state.ShowHelp {
		c.writeCentered(c.hud.Help())
	}
}

func (c *Client) drawIntroScreen(snap *server.WorldSnapshot) {
	lines := []string{
		fmt.Sprintf("scene %q, %d bodies", snap.Scene, snap.Bodies()),
		"",
	}
	prompt := ">>  press SPACE to start  <<"
	if time.Now().UnixMilli()/600%2 != 0 {
		prompt = strings.Repeat(" ", len(prompt))
	}
	lines = append(lines, prompt)
	c.writeCentered(c.hud.Box("physics2d", lines...))
}

func (c *Client) drawInactivityScreen() {
	remaining := int(config.InactivityDisconnectUser - time.Since(c.lastInput).Seconds())
	c.writeCentered(c.hud.Box("Inactivity warning",
		fmt.Sprintf("You will be disconnected in %3d seconds.", max(remaining, 0)),
		"Press any key to continue.",
	))
}

func (c *Client) drawShutdownScreen() {
	c.writeCentered(c.hud.Box("Server shutting down",
		"Please reconnect in a moment.",
		fmt.Sprintf("Disconnecting in %2d seconds...", int(c.state.shutdownTimer)+1),
		"Press Q to disconnect now.",
	))
}
