package render

import (
	"io"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/physics2d/internal/draw"
	"github.com/tomz197/physics2d/internal/geom"
	"github.com/tomz197/physics2d/internal/physics"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCameraFramesView(t *testing.T) {
	cam := NewCamera(geom.NewBound2(geom.V(-60, 0), geom.V(60, 80)), 120, 80)
	if got := cam.Scale(); got != 1 {
		t.Fatalf("Scale() = %v, want 1", got)
	}
	tests := []struct {
		world geom.Vec2
		want  draw.Point
	}{
		{geom.V(0, 40), draw.Point{X: 60, Y: 40}},
		{geom.V(-60, 80), draw.Point{X: 0, Y: 0}},
		{geom.V(60, 0), draw.Point{X: 120, Y: 80}},
	}
	for _, tt := range tests {
		got := cam.ToScreen(tt.world)
		if !approx(got.X, tt.want.X) || !approx(got.Y, tt.want.Y) {
			t.Errorf("ToScreen(%v) = %+v, want %+v", tt.world, got, tt.want)
		}
		back := cam.ToWorld(got)
		if !approx(back[0], tt.world[0]) || !approx(back[1], tt.world[1]) {
			t.Errorf("ToWorld(ToScreen(%v)) = %v", tt.world, back)
		}
	}
}

func TestCameraZoomPanReset(t *testing.T) {
	view := geom.NewBound2(geom.V(0, 0), geom.V(100, 100))
	cam := NewCamera(view, 100, 50) // height limits: fit 0.5
	if got := cam.Scale(); got != 0.5 {
		t.Fatalf("Scale() = %v, want 0.5", got)
	}
	cam.SetZoom(100, 0.25, 8)
	if cam.Zoom != 8 {
		t.Errorf("Zoom = %v, want 8", cam.Zoom)
	}
	cam.SetZoom(2, 0.25, 8)
	cam.Pan(10, 10) // logical units; y points down on screen
	if want := geom.V(60, 40); !approx(cam.Center[0], want[0]) || !approx(cam.Center[1], want[1]) {
		t.Errorf("Center = %v, want %v", cam.Center, want)
	}
	vis := cam.Visible()
	if !approx(vis.Size()[0], 100) || !approx(vis.Size()[1], 50) {
		t.Errorf("Visible size = %v, want [100 50]", vis.Size())
	}
	cam.Reset()
	if cam.Zoom != 1 || cam.Center != view.Center() {
		t.Errorf("after Reset zoom %v center %v", cam.Zoom, cam.Center)
	}
}

func TestCameraZoomTo(t *testing.T) {
	cam := NewCamera(geom.NewBound2(geom.V(0, 0), geom.V(10, 10)), 10, 10)
	cam.ZoomTo(4, 0.25, 8, 0.5)
	cam.Update(0.25)
	if cam.Zoom <= 1 || cam.Zoom >= 4 {
		t.Errorf("mid-animation Zoom = %v, want between 1 and 4", cam.Zoom)
	}
	cam.Update(1)
	if math.Abs(cam.Zoom-4) > 1e-4 {
		t.Errorf("final Zoom = %v, want 4", cam.Zoom)
	}
	cam.ZoomTo(0.01, 0.25, 8, 0)
	if cam.Zoom != 0.25 {
		t.Errorf("instant Zoom = %v, want 0.25", cam.Zoom)
	}
}

func TestFlairFade(t *testing.T) {
	tests := []struct {
		age, lifetime int
		want          float64
	}{
		{0, 20, 1},
		{20, 20, 0},
		{25, 20, 0},
		{3, 0, 0},
	}
	for _, tt := range tests {
		if got := flairFade(tt.age, tt.lifetime); !approx(got, tt.want) {
			t.Errorf("flairFade(%d, %d) = %v, want %v", tt.age, tt.lifetime, got, tt.want)
		}
	}
	prev := 1.0
	for age := 1; age < 20; age++ {
		got := flairFade(age, 20)
		if got >= prev {
			t.Fatalf("flairFade(%d) = %v, not below %v", age, got, prev)
		}
		prev = got
	}
}

func TestDrawSnapshot(t *testing.T) {
	w := physics.NewWorld()
	physics.Add(w, physics.NewCircle(geom.V(0, 40), 5, 1, 0))
	physics.Add(w, physics.NewPlane(geom.V(0, 1), 10))
	physics.Add(w, physics.WindZone{
		Area:       geom.NewBound2(geom.V(20, 20), geom.V(50, 60)),
		Direction:  geom.V(0, 1),
		Speed:      1,
		Turbulence: physics.Turbulence{Angle: 1, Intensity: 1, Scale: geom.V(0.1, 0.1), Depth: 1, Seed: 3},
	})
	snap := w.SnapshotInto(nil)

	c := draw.NewScaledCanvas(120, 40, 120, 80)
	cam := NewCamera(geom.NewBound2(geom.V(-60, 0), geom.V(60, 80)), 120, 80)
	Draw(c, cam, snap, Options{Highlight: snap.Circles[0].ID})

	// Circle centre, filled because highlighted.
	if got := c.Pixel(60, 40); got != draw.ColorBrightWhite {
		t.Errorf("circle centre = %v, want %v", got, draw.ColorBrightWhite)
	}
	// Plane at world y=10 is logical y=70.
	if got := c.Pixel(10, 70); got != draw.ColorYellow {
		t.Errorf("plane pixel = %v, want %v", got, draw.ColorYellow)
	}
}

func TestHUD(t *testing.T) {
	h := NewHUD(lipgloss.NewRenderer(io.Discard))
	status := h.Status(Status{Scene: "sandbox", Tick: 42, Bodies: 7, Paused: true, TimeScale: 1})
	for _, want := range []string{"sandbox", "42", "7", "PAUSED"} {
		if !strings.Contains(status, want) {
			t.Errorf("Status() = %q, missing %q", status, want)
		}
	}
	if got := h.Status(Status{Scene: "x"}); strings.Contains(got, "PAUSED") {
		t.Errorf("running Status() = %q, want no PAUSED", got)
	}
	if got := lipgloss.Width(h.Status(Status{Scene: "x"})); got != lipgloss.Width(h.Status(Status{Scene: "x", Paused: true})) {
		t.Error("status width changes when pausing")
	}

	box := h.Help()
	if len(box) < len(helpLines)+2 {
		t.Errorf("Help() = %d lines, want at least %d", len(box), len(helpLines)+2)
	}
}

func TestHUDHover(t *testing.T) {
	w := physics.NewWorld()
	_, id := physics.Add(w, physics.NewCircle(geom.V(0, 0), 2, 1, 0))
	_, pid := physics.Add(w, physics.NewPlane(geom.V(0, 1), -1))
	snap := w.SnapshotInto(nil)
	h := NewHUD(lipgloss.NewRenderer(io.Discard))

	hits := []physics.ShapeLocation{
		{Kind: physics.KindCircle, ID: id},
		{Kind: physics.KindPlane, ID: pid},
		{Kind: physics.KindCircle, ID: 999},
	}
	lines := h.Hover(snap, hits, 2)
	if len(lines) != 2 {
		t.Fatalf("Hover() = %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "r=2.00") {
		t.Errorf("circle line = %q, want radius", lines[0])
	}
	if !strings.Contains(lines[1], "d=-1.0") {
		t.Errorf("plane line = %q, want offset", lines[1])
	}
	if got := h.Hover(snap, hits[2:], 5); len(got) != 1 || strings.Contains(got[0], "r=") {
		t.Errorf("unknown id line = %q, want bare name", got)
	}
}
