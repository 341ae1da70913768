package gpu

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// VertexBuffer owns a VAO/VBO pair holding interleaved vertex data:
// position (2f), uv (2f), color (4f). The backend re-uploads it every
// flush with STREAM_DRAW, orphaning the previous storage.
type VertexBuffer struct {
	vao     uint32
	vbo     uint32
	stride  int32
	current int // floats currently uploaded
}

// floatsPerVertex is the interleaved layout width: pos2 + uv2 + rgba4.
const floatsPerVertex = 8

func NewVertexBuffer() *VertexBuffer {
	b := &VertexBuffer{stride: floatsPerVertex * 4}
	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, b.stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, b.stride, gl.PtrOffset(2*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, b.stride, gl.PtrOffset(4*4))

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return b
}

// Upload replaces the buffer contents with data.
func (b *VertexBuffer) Upload(data []float32) {
	if len(data) == 0 {
		b.current = 0
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STREAM_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	b.current = len(data)
}

// VertexCount returns the number of vertices in the last upload.
func (b *VertexBuffer) VertexCount() int32 {
	return int32(b.current / floatsPerVertex)
}

func (b *VertexBuffer) Bind() {
	gl.BindVertexArray(b.vao)
}

func (b *VertexBuffer) Unbind() {
	gl.BindVertexArray(0)
}

func (b *VertexBuffer) Destroy() {
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
		b.vbo = 0
	}
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
}

// IndexBuffer owns one element array buffer.
type IndexBuffer struct {
	ebo   uint32
	count int32
}

func NewIndexBuffer() *IndexBuffer {
	b := &IndexBuffer{}
	gl.GenBuffers(1, &b.ebo)
	return b
}

func (b *IndexBuffer) Upload(indices []uint32) {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STREAM_DRAW)
	b.count = int32(len(indices))
}

func (b *IndexBuffer) Count() int32 { return b.count }

func (b *IndexBuffer) Bind() {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
}

func (b *IndexBuffer) Destroy() {
	if b.ebo != 0 {
		gl.DeleteBuffers(1, &b.ebo)
		b.ebo = 0
	}
}
