// Package glcontext owns the GLFW window and GL context for the
// engine. All functions must run on the main thread, which the render
// loop pins with runtime.LockOSThread.
package glcontext

import (
	"runtime"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	glfw "github.com/go-gl/glfw/v3.3/glfw"

	nocturne "github.com/duskfall/nocturne"
)

// Context wraps one GLFW window plus per-window input state.
type Context struct {
	window *glfw.Window

	// Registered functions called on key press.
	keyCallbacks map[glfw.Key]func()
}

// New creates a window with a 4.1 core profile context and makes it
// current. Escape closes the window by default.
func New(width, height int, title string, visible bool) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	if visible {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, err
	}

	c := &Context{
		window:       win,
		keyCallbacks: make(map[glfw.Key]func()),
	}
	win.SetKeyCallback(c.glfwKeyCallback)

	win.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		win.Destroy()
		return nil, err
	}
	return c, nil
}

// SetVSync toggles swap-interval synchronization for the current
// context.
func (c *Context) SetVSync(on bool) {
	if on {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
}

// RegisterKeyCallback registers a function to run when key is pressed.
// Used by the demo loop for overlay and wireframe toggles.
func (c *Context) RegisterKeyCallback(key glfw.Key, f func()) {
	c.keyCallbacks[key] = f
}

func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}
	if action == glfw.Press {
		if callback, ok := c.keyCallbacks[key]; ok {
			callback()
		}
	}
}

// MakeCurrent makes the GL context current on the calling thread.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

// Shutdown destroys the window.
func (c *Context) Shutdown() {
	c.window.Destroy()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

// EndFrame swaps buffers and pumps events.
func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

// ContentScale returns the framebuffer-to-window scale, falling back
// to the monitor content scale when the window reports a zero size.
func (c *Context) ContentScale() float32 {
	fbW, _ := c.window.GetFramebufferSize()
	winW, _ := c.window.GetSize()
	if winW > 0 {
		return float32(fbW) / float32(winW)
	}
	sx, _ := c.window.GetContentScale()
	if sx > 0 {
		return sx
	}
	return 1
}

func (c *Context) Time() float64 {
	return glfw.GetTime()
}

// CursorPos returns the cursor position in window coordinates.
func (c *Context) CursorPos() (float64, float64) {
	return c.window.GetCursorPos()
}

// InitGraphics initializes GLFW. Must be called from the main thread,
// which it locks.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	nocturne.Logger().Info("GLFW initialized")
	return nil
}

// TerminateGraphics shuts GLFW down. Main thread only.
func TerminateGraphics() {
	glfw.Terminate()
	nocturne.Logger().Info("GLFW terminated")
}
