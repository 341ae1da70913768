// Package gpu wraps raw GL objects in single-owner resource types.
// Each wrapper owns its handle exclusively and zeroes it on Destroy so
// a double-free is a no-op. Handles are only ever touched on the
// render thread.
package gpu

import (
	"image"
	"image/draw"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// Texture owns one 2D GL texture.
type Texture struct {
	id     uint32
	width  int
	height int
}

// NewTexture allocates an empty RGBA8 texture. Linear filtering,
// clamped edges.
func NewTexture(width, height int) *Texture {
	t := &Texture{width: width, height: height}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t
}

// NewTextureFromImage uploads img. Non-RGBA images are converted first.
func NewTextureFromImage(img image.Image, nearest bool) *Texture {
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != rgba.Rect.Dx()*4 {
		rgba = image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	}

	t := &Texture{width: rgba.Rect.Dx(), height: rgba.Rect.Dy()}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	filter := int32(gl.LINEAR)
	if nearest {
		filter = gl.NEAREST
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(t.width), int32(t.height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t
}

// AdoptTexture wraps an already-created GL texture, taking ownership.
func AdoptTexture(id uint32, width, height int) *Texture {
	return &Texture{id: id, width: width, height: height}
}

// ID returns the GL handle, zero after Destroy or Release.
func (t *Texture) ID() uint32 { return t.id }

func (t *Texture) Width() int  { return t.width }
func (t *Texture) Height() int { return t.height }

// Bind binds the texture to the given texture unit.
func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

// Release transfers ownership of the handle to the caller. The texture
// stops tracking it and Destroy becomes a no-op.
func (t *Texture) Release() uint32 {
	id := t.id
	t.id = 0
	return id
}

// Destroy deletes the GL texture. Idempotent.
func (t *Texture) Destroy() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}

// Renderbuffer owns one GL renderbuffer.
type Renderbuffer struct {
	id uint32
}

// NewDepthStencil allocates a combined depth+stencil renderbuffer.
func NewDepthStencil(width, height int) *Renderbuffer {
	rb := &Renderbuffer{}
	gl.GenRenderbuffers(1, &rb.id)
	gl.BindRenderbuffer(gl.RENDERBUFFER, rb.id)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH24_STENCIL8, int32(width), int32(height))
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
	return rb
}

func (rb *Renderbuffer) ID() uint32 { return rb.id }

func (rb *Renderbuffer) Destroy() {
	if rb.id != 0 {
		gl.DeleteRenderbuffers(1, &rb.id)
		rb.id = 0
	}
}
