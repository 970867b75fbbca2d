package render

import (
	"math"

	"github.com/tanema/gween/ease"

	"github.com/tomz197/physics2d/internal/draw"
	"github.com/tomz197/physics2d/internal/geom"
	"github.com/tomz197/physics2d/internal/physics"
)

// Layout constants, in logical units.
const (
	hatchSpacing = 6.0
	hatchLength  = 2.5
	flowSpacing  = 10.0
	flowLength   = 3.0
	flairMinLen  = 2.0
	maxMarks     = 400
)

// Options adjusts a single frame.
type Options struct {
	Highlight physics.BodyID // drawn filled; zero for none
}

// Draw renders snap as seen through cam. Zones go first so bodies stay on top.
func Draw(c *draw.Canvas, cam Camera, snap *physics.Snapshot, opts Options) {
	for i := range snap.Fluids {
		drawFluid(c, cam, &snap.Fluids[i])
	}
	for i := range snap.Winds {
		drawWind(c, cam, snap.Winds[i])
	}
	for i := range snap.Planes {
		drawPlane(c, cam, &snap.Planes[i])
	}
	for i := range snap.Explosions {
		drawExplosion(c, cam, &snap.Explosions[i])
	}
	for i := range snap.Circles {
		drawCircle(c, cam, &snap.Circles[i], snap.Circles[i].ID == opts.Highlight)
	}
	for _, f := range snap.Flairs {
		drawFlair(c, cam, f, snap.Config.FlairLifetime)
	}
}

func drawCircle(c *draw.Canvas, cam Camera, b *physics.CircleBody, highlight bool) {
	switch {
	case highlight:
		c.SetColor(draw.ColorBrightWhite)
	case b.Immovable():
		c.SetColor(draw.ColorGray)
	default:
		c.SetColor(draw.ColorCyan)
	}
	center := cam.ToScreen(b.Position)
	c.DrawCircle(center, b.Radius*cam.Scale(), highlight)
	spoke := b.Position.Add(geom.FromAngle(b.Rotation).Mul(b.Radius))
	c.DrawLine(center, cam.ToScreen(spoke))
}

func drawPlane(c *draw.Canvas, cam Camera, p *physics.PlaneBody) {
	c.SetColor(draw.ColorYellow)
	view := cam.Visible()
	reach := view.Size().Len() + math.Abs(p.Plane.DistanceTo(view.Center()))
	origin := p.Plane.Project(view.Center())
	tangent := p.Plane.Tangent()
	c.DrawLine(cam.ToScreen(origin.Sub(tangent.Mul(reach))), cam.ToScreen(origin.Add(tangent.Mul(reach))))

	// Hatch the solid side.
	s := cam.Scale()
	step := hatchSpacing / s
	n := min(int(reach/step), maxMarks/2)
	back := p.Plane.Normal.Mul(-hatchLength / s)
	along := tangent.Mul(hatchLength / s)
	for k := -n; k <= n; k++ {
		q := origin.Add(tangent.Mul(float64(k) * step))
		c.DrawLine(cam.ToScreen(q), cam.ToScreen(q.Add(back).Sub(along)))
	}
}

func drawFluid(c *draw.Canvas, cam Camera, z *physics.FluidZone) {
	c.SetColor(draw.ColorBlue)
	drawBox(c, cam, z.Area)
	// Ripple along the surface.
	top := z.Area.Max[1]
	s := cam.Scale()
	step := 2 / s
	for x := z.Area.Min[0]; x < z.Area.Max[0]; x += 2 * step {
		a := cam.ToScreen(geom.V(x, top))
		b := cam.ToScreen(geom.V(math.Min(x+step, z.Area.Max[0]), top-1/s))
		c.DrawLine(a, b)
	}
}

// drawWind takes the zone by value: sampling turbulence may initialise the
// zone's noise source and the snapshot is shared between viewers.
func drawWind(c *draw.Canvas, cam Camera, z physics.WindZone) {
	c.SetColor(draw.ColorGray)
	drawBox(c, cam, z.Area)

	region := z.Area.Intersect(cam.Visible())
	if !region.HasArea() {
		return
	}
	s := cam.Scale()
	step := flowSpacing / s
	size := region.Size()
	if (size[0]/step)*(size[1]/step) > maxMarks {
		step = math.Sqrt(size[0] * size[1] / maxMarks)
	}
	c.SetColor(draw.ColorGreen)
	for y := region.Min[1] + step/2; y < region.Max[1]; y += step {
		for x := region.Min[0] + step/2; x < region.Max[0]; x += step {
			p := geom.V(x, y)
			angle, strength := z.TurbulenceAt(p)
			dir := geom.Rotate(z.Direction, geom.SinCos(angle))
			tip := p.Add(dir.Mul(math.Min(flowLength*strength, 2*flowLength) / s))
			c.DrawLine(cam.ToScreen(p), cam.ToScreen(tip))
		}
	}
}

func drawExplosion(c *draw.Canvas, cam Camera, e *physics.ExplosionBody) {
	c.SetColor(draw.ColorMagenta)
	center := cam.ToScreen(e.Position)
	r := e.Radius * cam.Scale()
	if e.ShouldApply {
		c.DrawCircle(center, r, false)
	}
	if charge := e.Progress(); charge > 0 {
		c.DrawCircle(center, r*charge, false)
	}
	c.DrawLine(draw.Point{X: center.X - 1, Y: center.Y}, draw.Point{X: center.X + 1, Y: center.Y})
	c.DrawLine(draw.Point{X: center.X, Y: center.Y - 1}, draw.Point{X: center.X, Y: center.Y + 1})
}

// flairFade eases a flair from full size at age 0 to nothing at lifetime.
func flairFade(age, lifetime int) float64 {
	if lifetime <= 0 || age >= lifetime {
		return 0
	}
	return float64(ease.OutQuad(float32(age), 1, -1, float32(lifetime)))
}

func drawFlair(c *draw.Canvas, cam Camera, f physics.ContactFlair, lifetime int) {
	fade := flairFade(f.Age, lifetime)
	if fade <= 0 {
		return
	}
	c.SetColor(draw.ColorRed)
	length := (flairMinLen + f.Direction.Len()*cam.Scale()) * fade
	dir := geom.SafeNormalize(f.Direction, geom.V(0, 1)).Mul(length / cam.Scale() / 2)
	c.DrawLine(cam.ToScreen(f.Point.Sub(dir)), cam.ToScreen(f.Point.Add(dir)))
}

func drawBox(c *draw.Canvas, cam Camera, b geom.Bound2) {
	c.DrawRect(cam.ToScreen(b.Min), cam.ToScreen(b.Max), false)
}
