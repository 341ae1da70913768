// Package graphics defines the windowing-context contract the render
// backend draws against, keeping it independent of GLFW.
package graphics

// Context is the interface for a GL window context. The render thread
// owns it; no method may be called from another goroutine.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	// EndFrame presents the frame and pumps window events.
	EndFrame()
	// GetFramebufferSize returns the physical framebuffer size in pixels.
	GetFramebufferSize() (int, int)
	// ContentScale returns the pixels-per-point scale factor.
	ContentScale() float32
	Time() float64
}
