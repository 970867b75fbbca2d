// Package render draws physics snapshots onto a terminal canvas.
package render

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/tomz197/physics2d/internal/draw"
	"github.com/tomz197/physics2d/internal/geom"
)

// Camera maps y-up world coordinates onto a y-down logical viewport.
type Camera struct {
	Center geom.Vec2
	Zoom   float64

	home   geom.Bound2
	fit    float64 // logical units per world unit at zoom 1
	width  float64
	height float64
	zoom   *gween.Tween
}

// NewCamera frames view inside a width x height logical viewport.
func NewCamera(view geom.Bound2, width, height float64) Camera {
	size := view.Size()
	fit := 1.0
	if size[0] > 0 && size[1] > 0 {
		fit = math.Min(width/size[0], height/size[1])
	}
	return Camera{
		Center: view.Center(),
		Zoom:   1,
		home:   view,
		fit:    fit,
		width:  width,
		height: height,
	}
}

// Scale returns logical units per world unit.
func (c Camera) Scale() float64 {
	return c.fit * c.Zoom
}

func (c Camera) ToScreen(p geom.Vec2) draw.Point {
	s := c.Scale()
	return draw.Point{
		X: c.width/2 + (p[0]-c.Center[0])*s,
		Y: c.height/2 - (p[1]-c.Center[1])*s,
	}
}

func (c Camera) ToWorld(p draw.Point) geom.Vec2 {
	s := c.Scale()
	return geom.V(
		c.Center[0]+(p.X-c.width/2)/s,
		c.Center[1]-(p.Y-c.height/2)/s,
	)
}

// Visible returns the world region covered by the viewport.
func (c Camera) Visible() geom.Bound2 {
	return geom.NewBound2(
		c.ToWorld(draw.Point{X: 0, Y: c.height}),
		c.ToWorld(draw.Point{X: c.width, Y: 0}),
	)
}

// SetZoom clamps z into [lo, hi] and applies it immediately.
func (c *Camera) SetZoom(z, lo, hi float64) {
	c.zoom = nil
	c.Zoom = math.Max(lo, math.Min(hi, z))
}

// ZoomTo eases the zoom towards z, clamped into [lo, hi], over duration
// seconds. Call Update every frame to advance it.
func (c *Camera) ZoomTo(z, lo, hi float64, duration float32) {
	z = math.Max(lo, math.Min(hi, z))
	if duration <= 0 {
		c.SetZoom(z, lo, hi)
		return
	}
	c.zoom = gween.New(float32(c.Zoom), float32(z), duration, ease.OutQuad)
}

// Update advances a running zoom animation by dt seconds.
func (c *Camera) Update(dt float32) {
	if c.zoom == nil {
		return
	}
	z, done := c.zoom.Update(dt)
	c.Zoom = float64(z)
	if done {
		c.zoom = nil
	}
}

// Pan moves the camera by a logical-space offset.
func (c *Camera) Pan(dx, dy float64) {
	s := c.Scale()
	c.Center = c.Center.Add(geom.V(dx/s, -dy/s))
}

// Reset returns to the framing the camera was created with.
func (c *Camera) Reset() {
	c.zoom = nil
	c.Center = c.home.Center()
	c.Zoom = 1
}
