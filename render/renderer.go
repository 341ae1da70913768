package render

// Renderer is the drawing contract every other subsystem depends on:
// UI widgets, scene rendering, debug tools. It must stay stable
// regardless of backend.
//
// Frame lifecycle: BeginFrame opens a frame; primitive calls are queued
// until EndFrame flushes and presents. Exactly one frame may be open at
// a time; primitive calls outside the bracket are ignored. Within a
// frame, primitives are presented in submission order, so later calls
// draw over earlier ones.
//
// Clip state set with SetClipRect bounds all subsequent primitives
// until changed or cleared with nil.
type Renderer interface {
	// BeginFrame opens a frame for a viewport of the given logical
	// size, with scale mapping points to pixels.
	BeginFrame(viewport Point, scale float32)
	// EndFrame flushes all queued primitives and presents. It fully
	// completes before the next BeginFrame is accepted.
	EndFrame()

	// SetClipRect establishes a rectangular clip in logical
	// coordinates; nil clears it.
	SetClipRect(r *Rect)
	// SetWireframeMode toggles fill versus line rasterization for
	// path primitives.
	SetWireframeMode(on bool)
	// SetClearColor sets the background applied at the start of the
	// next frame.
	SetClearColor(c Color)

	// DrawImage draws the whole texture into dst, tinted. A zero or
	// unknown texture handle skips the draw silently: a missing asset
	// degrades, it never aborts the frame.
	DrawImage(texture uint32, dst Rect, tint Color)
	// DrawImageRegion draws the src sub-rectangle (in normalized UV
	// coordinates) of the texture into dst.
	DrawImageRegion(texture uint32, src Rect, dst Rect, tint Color)
	// DrawText draws a styled string anchored at anchor.
	DrawText(text string, anchor Point, style TextStyle)
	// DrawPath fills the path (or outlines it in wireframe mode).
	DrawPath(p *Path, fill Color)
	// DrawStroke outlines the path with the given width.
	DrawStroke(p *Path, stroke Color, width float32)
}
