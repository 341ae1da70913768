// Package debugview renders an introspection overlay for camera,
// light, and object state as three orthographic mini-viewports. It
// draws exclusively through the render.Renderer contract, with no
// privileged backend access, which also makes it the most complete
// exerciser of the primitive drawing surface.
package debugview

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/duskfall/nocturne/render"
)

// Vec3 is a world-space position.
type Vec3 struct {
	X, Y, Z float32
}

// Camera is the world-space camera state shown in the mini-views.
type Camera struct {
	Position Vec3
	Target   Vec3
}

// Light is a point light.
type Light struct {
	Position Vec3
	Color    render.Color
}

// Object is anything worth plotting: an actor, a prop, a trigger.
type Object struct {
	Name     string
	Position Vec3
	Radius   float32
}

// WorldSnapshot is the immutable world state an overlay frame draws
// from. Callers build it once per frame; the overlay never mutates it.
type WorldSnapshot struct {
	Camera  Camera
	Lights  []Light
	Objects []Object
}

// axisPlane selects which two world axes a mini-view projects onto.
type axisPlane int

const (
	planeTop   axisPlane = iota // X right, Z down
	planeSide                   // Z right, Y up
	planeFront                  // X right, Y up
)

func (p axisPlane) label() string {
	switch p {
	case planeTop:
		return "top"
	case planeSide:
		return "side"
	default:
		return "front"
	}
}

// project maps a world position onto the plane's 2D axes, Y-down.
func (p axisPlane) project(v Vec3) render.Point {
	switch p {
	case planeTop:
		return render.Pt(v.X, v.Z)
	case planeSide:
		return render.Pt(v.Z, -v.Y)
	default:
		return render.Pt(v.X, -v.Y)
	}
}

const (
	panelSize   = 180
	panelMargin = 8
	gridStep    = 5 // world units between grid lines
)

var (
	panelBg     = render.RGBA(0.08, 0.08, 0.1, 0.85)
	panelBorder = render.RGBA(0.35, 0.35, 0.42, 1)
	gridColor   = render.RGBA(0.2, 0.2, 0.25, 1)
	cameraColor = render.RGB(1, 0.85, 0.3)
	objectColor = render.RGB(0.4, 0.75, 1)
	labelStyle  = render.TextStyle{Color: render.RGBA(0.9, 0.9, 0.95, 1)}
)

// Overlay is a toggle-able debug view. Zero value is hidden.
type Overlay struct {
	visible bool
}

func NewOverlay() *Overlay { return &Overlay{} }

func (o *Overlay) Show()         { o.visible = true }
func (o *Overlay) Hide()         { o.visible = false }
func (o *Overlay) Toggle()       { o.visible = !o.visible }
func (o *Overlay) Visible() bool { return o.visible }

// Draw renders the three mini-viewports in the top-right corner of
// viewport. No-op while hidden. Must be called inside a frame bracket.
func (o *Overlay) Draw(r render.Renderer, snap WorldSnapshot, viewport render.Rect) {
	if !o.visible {
		return
	}

	planes := []axisPlane{planeTop, planeSide, planeFront}
	x := viewport.MaxX() - float32(len(planes))*(panelSize+panelMargin)
	y := viewport.Y + panelMargin
	extent := worldExtent(snap)

	for _, plane := range planes {
		panel := render.Rct(x, y, panelSize, panelSize)
		o.drawPanel(r, snap, plane, panel, extent)
		x += panelSize + panelMargin
	}
	// Clear the clip so the overlay never leaks state into later draws.
	r.SetClipRect(nil)
}

// worldExtent finds the largest absolute coordinate in the snapshot so
// every mini-view shares one scale. A floor keeps an empty scene from
// collapsing to zero.
func worldExtent(snap WorldSnapshot) float32 {
	extent := float32(gridStep)
	grow := func(v Vec3, pad float32) {
		extent = math32.Max(extent, math32.Abs(v.X)+pad)
		extent = math32.Max(extent, math32.Abs(v.Y)+pad)
		extent = math32.Max(extent, math32.Abs(v.Z)+pad)
	}
	grow(snap.Camera.Position, 0)
	grow(snap.Camera.Target, 0)
	for _, l := range snap.Lights {
		grow(l.Position, 0)
	}
	for _, obj := range snap.Objects {
		grow(obj.Position, obj.Radius)
	}
	return extent
}

func (o *Overlay) drawPanel(r render.Renderer, snap WorldSnapshot, plane axisPlane, panel render.Rect, extent float32) {
	clip := panel
	r.SetClipRect(&clip)

	r.DrawPath(render.NewPath().AddRect(panel), panelBg)
	r.DrawStroke(render.NewPath().AddRect(panel), panelBorder, 1)

	// World-to-panel mapping: extent maps to half the panel, minus a
	// small inset so radii stay inside the border.
	inner := panel.Inset(6)
	scale := (inner.W / 2) / extent
	center := inner.Center()
	toPanel := func(v Vec3) render.Point {
		p := plane.project(v)
		return render.Pt(center.X+p.X*scale, center.Y+p.Y*scale)
	}

	o.drawGrid(r, inner, center, scale)

	for _, l := range snap.Lights {
		at := toPanel(l.Position)
		r.DrawPath(render.NewPath().AddCircle(at, 3), l.Color)
	}

	for _, obj := range snap.Objects {
		at := toPanel(obj.Position)
		radius := math32.Max(obj.Radius*scale, 2)
		r.DrawStroke(render.NewPath().AddCircle(at, radius), objectColor, 1)
		if obj.Name != "" {
			r.DrawText(obj.Name, render.Pt(at.X, at.Y+radius+2), labelStyle)
		}
	}

	o.drawCamera(r, toPanel(snap.Camera.Position), toPanel(snap.Camera.Target))

	r.DrawText(plane.label(), render.Pt(panel.X+4, panel.Y+2), labelStyle)
}

// drawGrid strokes world-aligned grid lines across the panel interior.
func (o *Overlay) drawGrid(r render.Renderer, inner render.Rect, center render.Point, scale float32) {
	step := gridStep * scale
	// Too dense to read; coarsen until lines are distinguishable.
	for step < 4 {
		step *= 2
	}
	grid := render.NewPath()
	for x := center.X; x <= inner.MaxX(); x += step {
		grid.MoveTo(render.Pt(x, inner.Y)).LineTo(render.Pt(x, inner.MaxY()))
	}
	for x := center.X - step; x >= inner.X; x -= step {
		grid.MoveTo(render.Pt(x, inner.Y)).LineTo(render.Pt(x, inner.MaxY()))
	}
	for y := center.Y; y <= inner.MaxY(); y += step {
		grid.MoveTo(render.Pt(inner.X, y)).LineTo(render.Pt(inner.MaxX(), y))
	}
	for y := center.Y - step; y >= inner.Y; y -= step {
		grid.MoveTo(render.Pt(inner.X, y)).LineTo(render.Pt(inner.MaxX(), y))
	}
	r.DrawStroke(grid, gridColor, 1)
}

// drawCamera renders the camera as a filled triangle at its position
// with an arrow toward its target.
func (o *Overlay) drawCamera(r render.Renderer, at, target render.Point) {
	tri := render.NewPath().
		MoveTo(render.Pt(at.X, at.Y-4)).
		LineTo(render.Pt(at.X+4, at.Y+4)).
		LineTo(render.Pt(at.X-4, at.Y+4)).
		Close()
	r.DrawPath(tri, cameraColor)
	drawArrow(r, at, target, cameraColor)
}

// drawArrow strokes a line from a to b with a two-segment head at b.
func drawArrow(r render.Renderer, a, b render.Point, c render.Color) {
	d := b.Sub(a)
	length := a.Dist(b)
	if length < 1 {
		return
	}
	ux, uy := d.X/length, d.Y/length

	const headLen = 6
	arrow := render.NewPath().MoveTo(a).LineTo(b)
	// Head wings at ±150 degrees from the shaft direction.
	const cosA, sinA = -0.866, 0.5
	arrow.MoveTo(b).LineTo(render.Pt(
		b.X+headLen*(ux*cosA-uy*sinA),
		b.Y+headLen*(ux*sinA+uy*cosA)))
	arrow.MoveTo(b).LineTo(render.Pt(
		b.X+headLen*(ux*cosA+uy*sinA),
		b.Y+headLen*(-ux*sinA+uy*cosA)))
	r.DrawStroke(arrow, c, 1)
}

// Legend returns a one-line summary for HUD display.
func Legend(snap WorldSnapshot) string {
	return fmt.Sprintf("debug: %d objects, %d lights", len(snap.Objects), len(snap.Lights))
}
