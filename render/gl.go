package render

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"

	nocturne "github.com/duskfall/nocturne"
	"github.com/duskfall/nocturne/gpu"
	"github.com/duskfall/nocturne/graphics"
	"github.com/duskfall/nocturne/shader"
)

const batchVertexShader = `#version 410 core
layout (location = 0) in vec2 in_pos;
layout (location = 1) in vec2 in_uv;
layout (location = 2) in vec4 in_color;
out vec2 frag_uv;
out vec4 frag_color;
void main() {
    frag_uv = in_uv;
    frag_color = in_color;
    gl_Position = vec4(in_pos, 0.0, 1.0);
}
`

const solidFragmentShader = `#version 410 core
in vec4 frag_color;
out vec4 fragColor;
void main() { fragColor = frag_color; }
`

const texturedFragmentShader = `#version 410 core
in vec2 frag_uv;
in vec4 frag_color;
out vec4 fragColor;
uniform sampler2D u_texture;
void main() { fragColor = texture(u_texture, frag_uv) * frag_color; }
`

// Backend is the OpenGL Renderer. Primitive calls queue vertices; all
// GPU state changes are deferred to EndFrame, which uploads one vertex
// buffer and walks the batches in submission order. Render thread only.
type Backend struct {
	ctx      graphics.Context
	solid    *shader.Program
	textured *shader.Program
	vbuf     *gpu.VertexBuffer
	text     *textCache

	frameOpen  bool
	viewport   Point
	scale      float32
	clip       *Rect
	wireframe  bool
	clearColor Color

	queue frameQueue
}

var _ Renderer = (*Backend)(nil)

// NewBackend compiles the built-in batch programs and allocates the
// shared vertex buffer. The shader manager also serves hot reload for
// any effect programs layered on top.
func NewBackend(ctx graphics.Context, mgr *shader.Manager, shaper TextShaper) (*Backend, error) {
	solid, err := mgr.FromSource(batchVertexShader, solidFragmentShader)
	if err != nil {
		return nil, err
	}
	textured, err := mgr.FromSource(batchVertexShader, texturedFragmentShader)
	if err != nil {
		solid.Destroy()
		return nil, err
	}
	if shaper == nil {
		shaper = NewBasicShaper()
	}
	return &Backend{
		ctx:      ctx,
		solid:    solid,
		textured: textured,
		vbuf:     gpu.NewVertexBuffer(),
		text:     newTextCache(shaper),
	}, nil
}

// BeginFrame opens the frame bracket, sets the GL viewport, and applies
// the clear color. A second BeginFrame before EndFrame is ignored.
func (b *Backend) BeginFrame(viewport Point, scale float32) {
	if b.frameOpen {
		nocturne.Logger().Warn("BeginFrame while a frame is open, ignoring")
		return
	}
	b.frameOpen = true
	b.viewport = viewport
	if scale <= 0 {
		scale = 1
	}
	b.scale = scale
	b.clip = nil
	b.queue.reset()

	gl.Viewport(0, 0, int32(viewport.X*scale), int32(viewport.Y*scale))
	gl.ClearColor(b.clearColor.R, b.clearColor.G, b.clearColor.B, b.clearColor.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
}

// EndFrame uploads the queued vertices, issues the batched draw calls
// in submission order, and presents.
func (b *Backend) EndFrame() {
	if !b.frameOpen {
		return
	}
	b.flush()
	b.frameOpen = false
	b.ctx.EndFrame()
}

// Flush issues the queued draw calls and closes the frame without
// presenting. Used when the frame is rendered into an offscreen target
// that still has to be composited before the swap.
func (b *Backend) Flush() {
	if !b.frameOpen {
		return
	}
	b.flush()
	b.frameOpen = false
}

func (b *Backend) flush() {
	if len(b.queue.verts) == 0 {
		return
	}
	b.vbuf.Upload(b.queue.verts)
	b.vbuf.Bind()

	scissorOn := false
	for _, batch := range b.queue.batches {
		if batch.count == 0 {
			continue
		}

		if batch.clip != nil {
			x, y, w, h, ok := scissorBox(*batch.clip, b.viewport, b.scale)
			if !ok {
				continue
			}
			if !scissorOn {
				gl.Enable(gl.SCISSOR_TEST)
				scissorOn = true
			}
			gl.Scissor(x, y, w, h)
		} else if scissorOn {
			gl.Disable(gl.SCISSOR_TEST)
			scissorOn = false
		}

		if batch.wire {
			gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		} else {
			gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
		}

		if batch.texture != 0 {
			b.textured.Use()
			gl.ActiveTexture(gl.TEXTURE0)
			gl.BindTexture(gl.TEXTURE_2D, batch.texture)
			b.textured.SetInt("u_texture", 0)
		} else {
			b.solid.Use()
		}

		gl.DrawArrays(gl.TRIANGLES, batch.first, batch.count)
	}

	if scissorOn {
		gl.Disable(gl.SCISSOR_TEST)
	}
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	b.vbuf.Unbind()
}

func (b *Backend) SetClipRect(r *Rect) {
	if r == nil {
		b.clip = nil
		return
	}
	c := *r
	b.clip = &c
}

func (b *Backend) SetWireframeMode(on bool) { b.wireframe = on }

func (b *Backend) SetClearColor(c Color) { b.clearColor = c }

func (b *Backend) DrawImage(texture uint32, dst Rect, tint Color) {
	b.DrawImageRegion(texture, Rect{0, 0, 1, 1}, dst, tint)
}

func (b *Backend) DrawImageRegion(texture uint32, src, dst Rect, tint Color) {
	if !b.frameOpen || texture == 0 || dst.Empty() {
		return
	}
	batch := b.queue.batchFor(texture, b.clip, false)
	b.queue.pushQuad(batch, b.viewport, dst, src, tint)
}

func (b *Backend) DrawText(text string, anchor Point, style TextStyle) {
	if !b.frameOpen || text == "" {
		return
	}
	tex, size := b.text.get(text, style)
	if tex == 0 {
		return
	}
	dst := Rect{anchor.X, anchor.Y, size.X, size.Y}
	switch style.Align {
	case AlignCenter:
		dst.X -= size.X / 2
	case AlignRight:
		dst.X -= size.X
	}
	tint := style.Color
	if tint == (Color{}) {
		tint = White
	}
	b.DrawImageRegion(tex, Rect{0, 0, 1, 1}, dst, tint)
}

func (b *Backend) DrawPath(p *Path, fill Color) {
	if !b.frameOpen || p == nil || p.Empty() {
		return
	}
	batch := b.queue.batchFor(0, b.clip, b.wireframe)
	b.queue.pushFill(batch, b.viewport, p.Flatten(), fill)
}

func (b *Backend) DrawStroke(p *Path, stroke Color, width float32) {
	if !b.frameOpen || p == nil || p.Empty() {
		return
	}
	batch := b.queue.batchFor(0, b.clip, false)
	b.queue.pushStroke(batch, b.viewport, p.Flatten(), stroke, width)
}

// Destroy releases the backend's GPU resources.
func (b *Backend) Destroy() {
	b.text.destroy()
	b.vbuf.Destroy()
	b.solid.Destroy()
	b.textured.Destroy()
}
