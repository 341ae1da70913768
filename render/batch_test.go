package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToNDC(t *testing.T) {
	vp := Pt(1280, 720)
	tests := []struct {
		name string
		in   Point
		want Point
	}{
		{"top left", Pt(0, 0), Pt(-1, 1)},
		{"bottom right", Pt(1280, 720), Pt(1, -1)},
		{"center", Pt(640, 360), Pt(0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toNDC(tt.in, vp)
			assert.InDelta(t, tt.want.X, got.X, 1e-6)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-6)
		})
	}
}

func TestScissorBox(t *testing.T) {
	vp := Pt(1280, 720)

	x, y, w, h, ok := scissorBox(Rct(0, 0, 100, 100), vp, 1)
	require.True(t, ok)
	assert.Equal(t, int32(0), x)
	assert.Equal(t, int32(620), y, "GL scissor origin is bottom-left")
	assert.Equal(t, int32(100), w)
	assert.Equal(t, int32(100), h)

	// Clip extending past the viewport is intersected first.
	_, _, w, h, ok = scissorBox(Rct(1200, 600, 400, 400), vp, 1)
	require.True(t, ok)
	assert.Equal(t, int32(80), w)
	assert.Equal(t, int32(120), h)

	// Scale multiplies everything.
	x, y, w, h, ok = scissorBox(Rct(10, 10, 50, 50), vp, 2)
	require.True(t, ok)
	assert.Equal(t, int32(20), x)
	assert.Equal(t, int32(1320), y)
	assert.Equal(t, int32(100), w)
	assert.Equal(t, int32(100), h)

	// Fully outside.
	_, _, _, _, ok = scissorBox(Rct(2000, 0, 10, 10), vp, 1)
	assert.False(t, ok)
}

func TestFrameQueueBatching(t *testing.T) {
	var q frameQueue
	vp := Pt(100, 100)

	// Two quads with the same state share one batch.
	b := q.batchFor(5, nil, false)
	q.pushQuad(b, vp, Rct(0, 0, 10, 10), Rct(0, 0, 1, 1), White)
	b = q.batchFor(5, nil, false)
	q.pushQuad(b, vp, Rct(20, 0, 10, 10), Rct(0, 0, 1, 1), White)
	require.Len(t, q.batches, 1)
	assert.Equal(t, int32(12), q.batches[0].count)

	// A texture change starts a new batch.
	b = q.batchFor(6, nil, false)
	q.pushQuad(b, vp, Rct(0, 0, 10, 10), Rct(0, 0, 1, 1), White)
	require.Len(t, q.batches, 2)
	assert.Equal(t, int32(12), q.batches[1].first)

	// A clip change starts a new batch even for the same texture.
	clip := Rct(0, 0, 50, 50)
	b = q.batchFor(6, &clip, false)
	q.pushQuad(b, vp, Rct(0, 0, 10, 10), Rct(0, 0, 1, 1), White)
	require.Len(t, q.batches, 3)
	require.NotNil(t, q.batches[2].clip)
	assert.Equal(t, clip, *q.batches[2].clip)

	// Same clip value continues the batch.
	clip2 := Rct(0, 0, 50, 50)
	b = q.batchFor(6, &clip2, false)
	q.pushQuad(b, vp, Rct(10, 0, 10, 10), Rct(0, 0, 1, 1), White)
	assert.Len(t, q.batches, 3)
}

func TestPushQuadVertices(t *testing.T) {
	var q frameQueue
	vp := Pt(100, 100)
	b := q.batchFor(0, nil, false)
	q.pushQuad(b, vp, Rct(0, 0, 100, 100), Rct(0, 0, 1, 1), Red)

	require.Equal(t, 6*vertexFloats, len(q.verts))
	// First vertex is the top-left corner: NDC (-1, 1), uv (0, 0), red.
	assert.Equal(t, []float32{-1, 1, 0, 0, 1, 0, 0, 1}, q.verts[:vertexFloats])
}

func TestPushFillTriangleCount(t *testing.T) {
	var q frameQueue
	vp := Pt(100, 100)
	b := q.batchFor(0, nil, false)
	lines := NewPath().AddRect(Rct(10, 10, 20, 20)).Flatten()
	q.pushFill(b, vp, lines, Green)
	// A closed rect polyline has 5 points: 3 fan triangles.
	assert.Equal(t, int32(9), b.count)
}

func TestPushStrokeEmitsQuadPerSegment(t *testing.T) {
	var q frameQueue
	vp := Pt(100, 100)
	b := q.batchFor(0, nil, false)
	lines := [][]Point{{Pt(0, 0), Pt(10, 0), Pt(10, 10)}}
	q.pushStroke(b, vp, lines, Blue, 2)
	// Two segments, six vertices each.
	assert.Equal(t, int32(12), b.count)
}

func TestPushStrokeSkipsZeroLengthSegments(t *testing.T) {
	var q frameQueue
	b := q.batchFor(0, nil, false)
	q.pushStroke(b, Pt(100, 100), [][]Point{{Pt(5, 5), Pt(5, 5)}}, Blue, 2)
	assert.Equal(t, int32(0), b.count)
}
