package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A size that scales to zero must yield an inert framebuffer, not a
// crash: no GPU allocation happens, TextureID stays zero, and teardown
// is safe.
func TestFramebufferZeroScaledSize(t *testing.T) {
	tests := []struct {
		name  string
		size  Point
		scale float32
	}{
		{"zero width", Pt(0, 720), 1},
		{"zero height", Pt(1280, 0), 1},
		{"zero scale", Pt(1280, 720), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFramebuffer(tt.size, tt.scale)
			require.NotNil(t, f)
			assert.Equal(t, uint32(0), f.TextureID())
			assert.False(t, f.Complete())
			assert.Equal(t, tt.size, f.Size())
			assert.Nil(t, f.DetachTexture())
			f.Destroy()
			f.Destroy()
		})
	}
}

func TestCompositeQuadCoversClipSpace(t *testing.T) {
	verts := compositeQuad()
	require.Equal(t, 4*vertexFloats, len(verts))

	// Every position is a clip-space corner and V is flipped: the
	// top-left vertex (-1, 1) samples uv (0, 1).
	assert.Equal(t, []float32{-1, 1, 0, 1}, verts[:4])
	for i := 0; i < 4; i++ {
		x, y := verts[i*vertexFloats], verts[i*vertexFloats+1]
		assert.Contains(t, []float32{-1, 1}, x)
		assert.Contains(t, []float32{-1, 1}, y)
	}

	// Two triangles over the four corners, sharing the diagonal.
	idx := quadIndices()
	require.Len(t, idx, 6)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, idx)
	for _, i := range idx {
		assert.Less(t, i, uint32(4))
	}
}

func TestQuadVertsFullRectMatchesComposite(t *testing.T) {
	// A dst covering the whole logical size rebuilds the same corners
	// as the precomputed fullscreen quad.
	verts := quadVerts(Pt(1280, 720), Rct(0, 0, 1280, 720))
	assert.Equal(t, compositeQuad(), verts)

	// A half-width dst maps its right edge to NDC x = 0.
	half := quadVerts(Pt(1280, 720), Rct(0, 0, 640, 720))
	assert.InDelta(t, 0, half[2*vertexFloats], 1e-6)
}
