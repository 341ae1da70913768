package render

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"

	nocturne "github.com/duskfall/nocturne"
	"github.com/duskfall/nocturne/gpu"
	"github.com/duskfall/nocturne/shader"
)

// Framebuffer is an offscreen render target: a color texture plus a
// combined depth/stencil renderbuffer, sized to size*scale. Used by the
// post-process pipeline to render the scene once and composite it back
// through an effect shader.
//
// Incompleteness is logged, never fatal: draws into an incomplete
// target are visually undefined but must not crash the render loop.
type Framebuffer struct {
	fbo          uint32
	color        *gpu.Texture
	depthStencil *gpu.Renderbuffer
	size         Point
	scale        float32
	complete     bool

	quad    *gpu.VertexBuffer
	indices *gpu.IndexBuffer
}

// NewFramebuffer allocates an offscreen target for a logical size and
// scale. A size that scales to zero in either dimension is logged and
// produces an inert framebuffer whose TextureID is zero.
func NewFramebuffer(size Point, scale float32) *Framebuffer {
	f := &Framebuffer{size: size, scale: scale}

	pw, ph := int(size.X*scale), int(size.Y*scale)
	if pw <= 0 || ph <= 0 {
		nocturne.Logger().Warn("framebuffer size scales to zero",
			"width", size.X, "height", size.Y, "scale", scale)
		return f
	}

	gl.GenFramebuffers(1, &f.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.fbo)

	f.color = gpu.NewTexture(pw, ph)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, f.color.ID(), 0)

	f.depthStencil = gpu.NewDepthStencil(pw, ph)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT, gl.RENDERBUFFER, f.depthStencil.ID())

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	f.complete = status == gl.FRAMEBUFFER_COMPLETE
	if !f.complete {
		nocturne.Logger().Warn("framebuffer incomplete", "status", status)
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	f.quad = gpu.NewVertexBuffer()
	f.quad.Upload(compositeQuad())
	f.indices = gpu.NewIndexBuffer()
	// Upload while the quad VAO is bound so the element binding is
	// recorded in it.
	f.quad.Bind()
	f.indices.Upload(quadIndices())
	f.quad.Unbind()
	return f
}

// compositeQuad is the four corners of a fullscreen quad in NDC with V
// flipped so the offscreen image composites upright. Order: top-left,
// bottom-left, bottom-right, top-right.
func compositeQuad() []float32 {
	return []float32{
		-1, 1, 0, 1, 1, 1, 1, 1,
		-1, -1, 0, 0, 1, 1, 1, 1,
		1, -1, 1, 0, 1, 1, 1, 1,
		1, 1, 1, 1, 1, 1, 1, 1,
	}
}

// quadIndices splits the four-corner quad into two triangles sharing
// the top-left/bottom-right diagonal.
func quadIndices() []uint32 {
	return []uint32{0, 1, 2, 0, 2, 3}
}

// quadVerts builds corner vertices for a quad covering dst in the
// framebuffer's logical space, with the same flipped V as compositeQuad.
func quadVerts(viewport Point, dst Rect) []float32 {
	tl := toNDC(Point{dst.X, dst.Y}, viewport)
	br := toNDC(Point{dst.MaxX(), dst.MaxY()}, viewport)
	return []float32{
		tl.X, tl.Y, 0, 1, 1, 1, 1, 1,
		tl.X, br.Y, 0, 0, 1, 1, 1, 1,
		br.X, br.Y, 1, 0, 1, 1, 1, 1,
		br.X, tl.Y, 1, 1, 1, 1, 1, 1,
	}
}

// Bind redirects draws to the offscreen target and sets the viewport
// to the scaled size.
func (f *Framebuffer) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.fbo)
	gl.Viewport(0, 0, int32(f.size.X*f.scale), int32(f.size.Y*f.scale))
}

// Unbind restores the default framebuffer.
func (f *Framebuffer) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// Complete reports whether GL validated the target.
func (f *Framebuffer) Complete() bool { return f.complete }

// Size returns the logical size the framebuffer was created for.
func (f *Framebuffer) Size() Point { return f.size }

// TextureID returns the color texture handle, zero when the target was
// never allocated or the texture was detached.
func (f *Framebuffer) TextureID() uint32 {
	if f.color == nil {
		return 0
	}
	return f.color.ID()
}

// DetachTexture transfers ownership of the color texture to the
// caller, preventing double-destruction when the texture must outlive
// the framebuffer, e.g. to feed a post-process chain.
func (f *Framebuffer) DetachTexture() *gpu.Texture {
	t := f.color
	f.color = nil
	return t
}

// DrawTexture composites the offscreen color buffer onto the currently
// bound target as a quad covering dst (in the framebuffer's logical
// space), using the given program. Expected to be called after Unbind.
// Callers set effect uniforms on prog before the call; the color
// sampler is bound to unit 0 under both the engine's and the
// single-image dialect's names.
func (f *Framebuffer) DrawTexture(dst Rect, program *shader.Program) {
	if f.color == nil || f.color.ID() == 0 {
		return
	}
	program.Use()
	program.SetInt("u_texture", 0)
	program.SetInt("iChannel0", 0)
	f.color.Bind(0)

	partial := dst != (Rect{0, 0, f.size.X, f.size.Y})
	if partial {
		// Partial-rect composite: rebuild the corner vertices for dst.
		// The index buffer is shared with the fullscreen path.
		f.quad.Upload(quadVerts(f.size, dst))
	}
	f.quad.Bind()
	gl.DrawElements(gl.TRIANGLES, f.indices.Count(), gl.UNSIGNED_INT, gl.PtrOffset(0))
	f.quad.Unbind()
	if partial {
		f.quad.Upload(compositeQuad())
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Destroy releases the framebuffer, color texture, and renderbuffer.
// Handles are zeroed by their owners, so Destroy is idempotent.
func (f *Framebuffer) Destroy() {
	if f.indices != nil {
		f.indices.Destroy()
		f.indices = nil
	}
	if f.quad != nil {
		f.quad.Destroy()
		f.quad = nil
	}
	if f.depthStencil != nil {
		f.depthStencil.Destroy()
		f.depthStencil = nil
	}
	if f.color != nil {
		f.color.Destroy()
		f.color = nil
	}
	if f.fbo != 0 {
		gl.DeleteFramebuffers(1, &f.fbo)
		f.fbo = 0
	}
}
