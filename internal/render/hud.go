package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/physics2d/internal/geom"
	"github.com/tomz197/physics2d/internal/physics"
)

// Status is the information shown on the HUD's status lines.
type Status struct {
	Scene     string
	Tick      uint64
	Elapsed   float64
	Bodies    int
	Flairs    int
	Players   int
	Paused    bool
	TimeScale float64
	Zoom      float64
	Cursor    geom.Vec2
}

// HUD formats overlay text. Styles come from a per-connection renderer so
// colour support follows the viewer's terminal.
type HUD struct {
	label  lipgloss.Style
	value  lipgloss.Style
	paused lipgloss.Style
	title  lipgloss.Style
	box    lipgloss.Style
	dim    lipgloss.Style
}

func NewHUD(r *lipgloss.Renderer) *HUD {
	return &HUD{
		label:  r.NewStyle().Foreground(lipgloss.Color("8")),
		value:  r.NewStyle().Foreground(lipgloss.Color("14")),
		paused: r.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11")),
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
		box:    r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 2),
		dim:    r.NewStyle().Faint(true),
	}
}

func (h *HUD) field(name, format string, args ...any) string {
	return h.label.Render(name+" ") + h.value.Render(fmt.Sprintf(format, args...))
}

// Status returns the top status line. Values are fixed width so shorter
// numbers overwrite longer ones.
func (h *HUD) Status(s Status) string {
	parts := []string{
		h.title.Render(s.Scene),
		h.field("t", "%-8.2f", s.Elapsed),
		h.field("tick", "%-7d", s.Tick),
		h.field("bodies", "%-4d", s.Bodies),
		h.field("contacts", "%-4d", s.Flairs),
		h.field("x", "%-5.2g", s.TimeScale),
	}
	if s.Paused {
		parts = append(parts, h.paused.Render(" PAUSED "))
	} else {
		parts = append(parts, "        ")
	}
	return strings.Join(parts, "  ")
}

// Footer returns the bottom line: cursor position, zoom and viewer count.
func (h *HUD) Footer(s Status) string {
	return strings.Join([]string{
		h.field("cursor", "%-16s", fmt.Sprintf("%.1f,%.1f", s.Cursor[0], s.Cursor[1])),
		h.field("zoom", "%-5.2f", s.Zoom),
		h.field("viewers", "%-3d", s.Players),
		h.dim.Render("? help"),
	}, "  ")
}

// Hover describes the bodies under the cursor, looking details up in snap.
func (h *HUD) Hover(snap *physics.Snapshot, hits []physics.ShapeLocation, limit int) []string {
	lines := make([]string, 0, min(len(hits), limit))
	for _, hit := range hits {
		if len(lines) == limit {
			break
		}
		lines = append(lines, h.describe(snap, hit))
	}
	return lines
}

func (h *HUD) describe(snap *physics.Snapshot, hit physics.ShapeLocation) string {
	name := fmt.Sprintf("%s #%d", hit.Kind, hit.ID)
	var detail string
	switch hit.Kind {
	case physics.KindCircle:
		if b := findByID(snap.Circles, hit.ID, func(b *physics.CircleBody) physics.BodyID { return b.ID }); b != nil {
			detail = fmt.Sprintf("r=%.2f m=%.0f v=(%.1f, %.1f) w=%.2f", b.Radius, b.Mass(), b.Velocity[0], b.Velocity[1], b.AngularVelocity)
		}
	case physics.KindPlane:
		if p := findByID(snap.Planes, hit.ID, func(p *physics.PlaneBody) physics.BodyID { return p.ID }); p != nil {
			detail = fmt.Sprintf("n=(%.2f, %.2f) d=%.1f", p.Plane.Normal[0], p.Plane.Normal[1], p.Plane.D)
		}
	case physics.KindExplosion:
		if e := findByID(snap.Explosions, hit.ID, func(e *physics.ExplosionBody) physics.BodyID { return e.ID }); e != nil {
			detail = fmt.Sprintf("charge %3.0f%%", e.Progress()*100)
		}
	case physics.KindWindZone:
		if z := findByID(snap.Winds, hit.ID, func(z *physics.WindZone) physics.BodyID { return z.ID }); z != nil {
			detail = fmt.Sprintf("speed %.1f", z.Speed)
		}
	case physics.KindFluidZone:
		if z := findByID(snap.Fluids, hit.ID, func(z *physics.FluidZone) physics.BodyID { return z.ID }); z != nil {
			detail = fmt.Sprintf("density %.0f", z.Density)
		}
	}
	if detail == "" {
		return h.value.Render(name)
	}
	return h.value.Render(name) + " " + h.label.Render(detail)
}

func findByID[T any](items []T, id physics.BodyID, idOf func(*T) physics.BodyID) *T {
	for i := range items {
		if idOf(&items[i]) == id {
			return &items[i]
		}
	}
	return nil
}

var helpLines = []string{
	"arrows / wasd   move cursor",
	"space / p       pause",
	"n               single step",
	"c               spawn circle",
	"x               explode at cursor",
	"+ / -           grow or shrink hovered",
	"[ / ]           slower / faster",
	"z / Z           zoom in / out",
	"0               recenter camera",
	"r               reset scene",
	"q               quit",
}

// Help returns the key reference as a bordered box.
func (h *HUD) Help() []string {
	return h.Box("Controls", helpLines...)
}

// Box renders a bordered message box, one string per terminal row.
func (h *HUD) Box(title string, lines ...string) []string {
	body := h.title.Render(title)
	if len(lines) > 0 {
		body += "\n\n" + strings.Join(lines, "\n")
	}
	return strings.Split(h.box.Render(body), "\n")
}
