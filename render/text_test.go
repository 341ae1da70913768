package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicShaperMeasure(t *testing.T) {
	s := NewBasicShaper()

	one := s.Measure("hello", 0)
	assert.Greater(t, one.X, float32(0))
	assert.Equal(t, s.LineHeight(), one.Y)

	two := s.Measure("hello\nworld", 0)
	assert.Equal(t, 2*s.LineHeight(), two.Y)

	// Fixed-advance face: a longer string is proportionally wider.
	wide := s.Measure("hellohello", 0)
	assert.InDelta(t, 2*one.X, wide.X, 1)
}

func TestBasicShaperWrap(t *testing.T) {
	s := NewBasicShaper()
	text := "the cold house breathes at night"

	unwrapped := s.Measure(text, 0)
	wrapped := s.Measure(text, unwrapped.X/2)
	assert.Greater(t, wrapped.Y, unwrapped.Y, "wrapping adds lines")
	assert.LessOrEqual(t, wrapped.X, unwrapped.X)

	// A single word longer than the wrap width still occupies one line.
	word := s.Measure("unbreakable", 10)
	assert.Equal(t, s.LineHeight(), word.Y)
}

func TestBasicShaperRender(t *testing.T) {
	s := NewBasicShaper()
	img := s.Render("hi", 0)
	require.NotNil(t, img)
	size := s.Measure("hi", 0)
	assert.Equal(t, int(size.X), img.Rect.Dx())
	assert.Equal(t, int(size.Y), img.Rect.Dy())

	// Some glyph coverage must land in the bitmap.
	var set bool
	for _, a := range img.Pix {
		if a != 0 {
			set = true
			break
		}
	}
	assert.True(t, set, "rendered text must produce non-empty coverage")

	assert.Nil(t, s.Render("", 0))
}

func TestBasicShaperWrapLines(t *testing.T) {
	s := NewBasicShaper().(*basicShaper)
	lines := s.wrapLines("a b c d", 1)
	assert.Equal(t, 4, len(lines), "tiny wrap width forces one word per line")
	assert.Equal(t, "a b c d", strings.Join(lines, " "))

	assert.Equal(t, []string{"x", "", "y"}, s.wrapLines("x\n\ny", 100))
}
