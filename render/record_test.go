package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderFrameBracket(t *testing.T) {
	r := NewRecorder()

	// Draws outside a frame are dropped, not errors.
	r.DrawImage(1, Rct(0, 0, 10, 10), White)
	assert.Empty(t, r.Commands)

	r.BeginFrame(Pt(1280, 720), 1)
	r.DrawImage(1, Rct(0, 0, 10, 10), White)
	r.EndFrame()
	assert.Len(t, r.Commands, 1)
	assert.Equal(t, 1, r.Frames)

	// Draws after EndFrame are dropped too.
	r.DrawImage(1, Rct(0, 0, 10, 10), White)
	assert.Len(t, r.Commands, 1)
}

func TestRecorderSkipsZeroTexture(t *testing.T) {
	r := NewRecorder()
	r.BeginFrame(Pt(100, 100), 1)
	r.DrawImage(0, Rct(0, 0, 10, 10), White)
	r.DrawImageRegion(0, Rct(0, 0, 1, 1), Rct(0, 0, 10, 10), White)
	r.EndFrame()
	assert.Empty(t, r.Commands, "zero texture handle produces no draw and no error")
}

func TestRecorderClipTracking(t *testing.T) {
	r := NewRecorder()
	r.BeginFrame(Pt(1280, 720), 1)

	clip := Rct(0, 0, 100, 100)
	r.SetClipRect(&clip)
	r.DrawImage(7, Rct(50, 50, 100, 100), White)

	r.SetClipRect(nil)
	r.DrawImage(7, Rct(0, 0, 10, 10), White)
	r.EndFrame()

	require.Len(t, r.Commands, 2)
	require.NotNil(t, r.Commands[0].Clip)
	assert.Equal(t, clip, *r.Commands[0].Clip)
	// Visible region under the clip is the 50x50 intersection.
	assert.Equal(t, Rct(50, 50, 50, 50), r.Commands[0].Clip.Intersect(r.Commands[0].Dst))
	assert.Nil(t, r.Commands[1].Clip)
}

func TestRecorderSubmissionOrder(t *testing.T) {
	r := NewRecorder()
	r.BeginFrame(Pt(100, 100), 1)
	r.DrawPath(NewPath().AddRect(Rct(0, 0, 10, 10)), Red)
	r.DrawText("hello", Pt(5, 5), TextStyle{})
	r.DrawStroke(NewPath().AddRect(Rct(0, 0, 10, 10)), Blue, 1)
	r.EndFrame()

	require.Len(t, r.Commands, 3)
	assert.Equal(t, OpPath, r.Commands[0].Op)
	assert.Equal(t, OpText, r.Commands[1].Op)
	assert.Equal(t, OpStroke, r.Commands[2].Op)
}

func TestRecorderDoubleBeginIgnored(t *testing.T) {
	r := NewRecorder()
	r.BeginFrame(Pt(100, 100), 1)
	r.DrawText("a", Pt(0, 0), TextStyle{})
	// A second BeginFrame while open must not reset the frame.
	r.BeginFrame(Pt(200, 200), 1)
	r.DrawText("b", Pt(0, 0), TextStyle{})
	r.EndFrame()
	assert.Len(t, r.Commands, 2)
}

func TestRecorderEmptyPathSkipped(t *testing.T) {
	r := NewRecorder()
	r.BeginFrame(Pt(100, 100), 1)
	r.DrawPath(nil, Red)
	r.DrawPath(NewPath(), Red)
	r.DrawStroke(NewPath(), Red, 1)
	r.EndFrame()
	assert.Empty(t, r.Commands)
}

func TestRecorderNewFrameClearsCommands(t *testing.T) {
	r := NewRecorder()
	r.BeginFrame(Pt(100, 100), 1)
	r.DrawText("stale", Pt(0, 0), TextStyle{})
	r.EndFrame()

	r.BeginFrame(Pt(100, 100), 1)
	r.EndFrame()
	assert.Empty(t, r.Commands)
	assert.Equal(t, 2, r.Frames)
}
