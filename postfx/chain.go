// Package postfx renders the scene into an offscreen target and
// composites it back through a stack of effect shaders (vignette,
// frost, fade). Effect fragments are authored in the single-image
// dialect and hot-reload while the game runs.
package postfx

import (
	nocturne "github.com/duskfall/nocturne"
	"github.com/duskfall/nocturne/render"
	"github.com/duskfall/nocturne/shader"
)

// vertexName is the shared fullscreen vertex shader for all effects.
const vertexName = "fullscreen"

// Effect is one post-process pass.
type Effect struct {
	Name      string
	Program   *shader.Program
	Intensity float32
	Enabled   bool
}

// FrameState carries the per-frame uniform values effects consume.
type FrameState struct {
	Time      float64
	TimeDelta float32
	Frame     int32
	Mouse     [4]float32
}

// Chain owns the offscreen framebuffer and the ordered effect list.
// Render thread only.
type Chain struct {
	mgr     *shader.Manager
	fb      *render.Framebuffer
	effects []*Effect
	size    render.Point
	scale   float32
}

// NewChain allocates the offscreen target at the given logical size.
func NewChain(mgr *shader.Manager, size render.Point, scale float32) *Chain {
	return &Chain{
		mgr:   mgr,
		fb:    render.NewFramebuffer(size, scale),
		size:  size,
		scale: scale,
	}
}

// Add loads an effect by fragment name and appends it to the chain.
// The fragment hot-reloads; a broken edit keeps the last good pass.
func (c *Chain) Add(name string) (*Effect, error) {
	prog, err := c.mgr.Create(vertexName, name)
	if err != nil {
		return nil, err
	}
	e := &Effect{Name: name, Program: prog, Intensity: 1, Enabled: true}
	c.effects = append(c.effects, e)
	return e, nil
}

// Effect returns the named effect, nil when absent.
func (c *Chain) Effect(name string) *Effect {
	for _, e := range c.effects {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// Framebuffer exposes the offscreen target, e.g. for debug inspection.
func (c *Chain) Framebuffer() *render.Framebuffer { return c.fb }

// Begin redirects scene rendering into the offscreen target.
func (c *Chain) Begin() {
	c.fb.Bind()
}

// End unbinds the target and composites it to the screen through every
// enabled effect in order. With no enabled effects nothing is drawn;
// callers wanting a raw blit add a pass-through effect.
func (c *Chain) End(state FrameState) {
	c.fb.Unbind()
	full := render.Rct(0, 0, c.size.X, c.size.Y)
	for _, e := range c.effects {
		if !e.Enabled {
			continue
		}
		e.Program.Use()
		e.Program.SetVec3("iResolution", c.size.X, c.size.Y, 1)
		e.Program.SetVec2("iWindowSize", c.size.X*c.scale, c.size.Y*c.scale)
		e.Program.SetFloat("iTime", float32(state.Time))
		e.Program.SetFloat("iTimeDelta", state.TimeDelta)
		e.Program.SetInt("iFrame", state.Frame)
		e.Program.SetVec4("iMouse", state.Mouse[0], state.Mouse[1], state.Mouse[2], state.Mouse[3])
		e.Program.SetFloat("uIntensity", e.Intensity)
		c.fb.DrawTexture(full, e.Program)
	}
}

// Resize recreates the offscreen target for a new size.
func (c *Chain) Resize(size render.Point, scale float32) {
	if size == c.size && scale == c.scale {
		return
	}
	nocturne.Logger().Debug("postfx resize", "width", size.X, "height", size.Y, "scale", scale)
	c.fb.Destroy()
	c.fb = render.NewFramebuffer(size, scale)
	c.size = size
	c.scale = scale
}

// Destroy releases the framebuffer and every effect program.
func (c *Chain) Destroy() {
	for _, e := range c.effects {
		e.Program.Destroy()
	}
	c.effects = nil
	c.fb.Destroy()
}
