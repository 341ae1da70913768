// Package render defines the engine's drawing contract and its OpenGL
// backend. Gameplay, UI, and debug code draw exclusively through the
// Renderer interface; the backend batches primitives per frame and
// defers GPU state changes until EndFrame.
package render

import "github.com/chewxy/math32"

// Color is a straight-alpha RGBA color with components in [0, 1].
// Pure data, no hidden state.
type Color struct {
	R, G, B, A float32
}

// RGB returns an opaque color.
func RGB(r, g, b float32) Color { return Color{r, g, b, 1} }

// RGBA returns a color with explicit alpha.
func RGBA(r, g, b, a float32) Color { return Color{r, g, b, a} }

// WithAlpha returns the color with its alpha replaced.
func (c Color) WithAlpha(a float32) Color {
	c.A = a
	return c
}

var (
	White       = Color{1, 1, 1, 1}
	Black       = Color{0, 0, 0, 1}
	Red         = Color{1, 0, 0, 1}
	Green       = Color{0, 1, 0, 1}
	Blue        = Color{0, 0, 1, 1}
	Transparent = Color{}
)

// Point is a position or size in logical point space. The convention is
// Y-down with the origin at the top left, matching UI coordinates; the
// backend flips to GL's Y-up when converting to device coordinates.
type Point struct {
	X, Y float32
}

func Pt(x, y float32) Point { return Point{x, y} }

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

func (p Point) Scale(s float32) Point { return Point{p.X * s, p.Y * s} }

// Dist returns the distance between two points.
func (p Point) Dist(q Point) float32 {
	return math32.Hypot(q.X-p.X, q.Y-p.Y)
}

// Rect is an axis-aligned rectangle in logical point space.
type Rect struct {
	X, Y, W, H float32
}

func Rct(x, y, w, h float32) Rect { return Rect{x, y, w, h} }

func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

func (r Rect) MaxX() float32 { return r.X + r.W }
func (r Rect) MaxY() float32 { return r.Y + r.H }

func (r Rect) Center() Point { return Point{r.X + r.W/2, r.Y + r.H/2} }

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.MaxX() && p.Y >= r.Y && p.Y < r.MaxY()
}

// Intersect returns the overlap of two rectangles; empty if disjoint.
func (r Rect) Intersect(o Rect) Rect {
	x0 := math32.Max(r.X, o.X)
	y0 := math32.Max(r.Y, o.Y)
	x1 := math32.Min(r.MaxX(), o.MaxX())
	y1 := math32.Min(r.MaxY(), o.MaxY())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// Inset shrinks the rectangle by d on every side.
func (r Rect) Inset(d float32) Rect {
	return Rect{r.X + d, r.Y + d, r.W - 2*d, r.H - 2*d}
}

// Align anchors text relative to its anchor point.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// TextStyle describes how a string is drawn. Zero value draws white,
// left-aligned, at the shaper's native size, with no wrapping.
type TextStyle struct {
	Size  float32
	Color Color
	Align Align
	// Wrap is the maximum line width in points; 0 disables wrapping.
	Wrap float32
}
