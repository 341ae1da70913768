package render

import (
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/duskfall/nocturne/gpu"
)

// TextShaper is the glyph layout collaborator consumed by DrawText.
// Real clients plug in a proper shaping service; the engine ships a
// fixed-advance fallback so debug labels work out of the box.
type TextShaper interface {
	// Measure returns the pixel bounds of text at the shaper's native
	// size, wrapped at wrap pixels when wrap > 0.
	Measure(text string, wrap float32) Point
	// Render rasterizes text in white on transparent at native size.
	Render(text string, wrap float32) *image.RGBA
	// LineHeight returns the native line height in pixels.
	LineHeight() float32
}

// basicShaper lays text out with the embedded 7x13 bitmap face.
type basicShaper struct {
	face font.Face
}

// NewBasicShaper returns the fallback fixed-advance shaper.
func NewBasicShaper() TextShaper {
	return &basicShaper{face: basicfont.Face7x13}
}

func (s *basicShaper) LineHeight() float32 {
	return float32(s.face.Metrics().Height.Ceil())
}

// wrapLines splits text into lines, breaking greedily on spaces when a
// wrap width is set. Explicit newlines always break.
func (s *basicShaper) wrapLines(text string, wrap float32) []string {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		if wrap <= 0 {
			lines = append(lines, raw)
			continue
		}
		words := strings.Fields(raw)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := words[0]
		for _, word := range words[1:] {
			cand := cur + " " + word
			if float32(font.MeasureString(s.face, cand).Ceil()) > wrap {
				lines = append(lines, cur)
				cur = word
				continue
			}
			cur = cand
		}
		lines = append(lines, cur)
	}
	return lines
}

func (s *basicShaper) Measure(text string, wrap float32) Point {
	lines := s.wrapLines(text, wrap)
	var w float32
	for _, line := range lines {
		lw := float32(font.MeasureString(s.face, line).Ceil())
		if lw > w {
			w = lw
		}
	}
	return Point{w, float32(len(lines)) * s.LineHeight()}
}

func (s *basicShaper) Render(text string, wrap float32) *image.RGBA {
	size := s.Measure(text, wrap)
	if size.X <= 0 || size.Y <= 0 {
		return nil
	}
	img := image.NewRGBA(image.Rect(0, 0, int(size.X), int(size.Y)))
	ascent := s.face.Metrics().Ascent.Ceil()
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: s.face,
	}
	for i, line := range s.wrapLines(text, wrap) {
		d.Dot = fixed.P(0, ascent+i*int(s.LineHeight()))
		d.DrawString(line)
	}
	return img
}

type textKey struct {
	text string
	wrap float32
}

type textEntry struct {
	tex  *gpu.Texture
	size Point
}

// textCache keeps rasterized strings as textures. Debug overlays and
// UI redraw the same labels every frame, so entries live until the
// cache is destroyed with the backend.
type textCache struct {
	shaper  TextShaper
	entries map[textKey]*textEntry
}

func newTextCache(shaper TextShaper) *textCache {
	return &textCache{shaper: shaper, entries: make(map[textKey]*textEntry)}
}

// get returns a texture handle and the logical draw size for text,
// rasterizing and uploading on first use. A zero handle means the text
// produced no visible glyphs.
func (tc *textCache) get(text string, style TextStyle) (uint32, Point) {
	key := textKey{text: text, wrap: style.Wrap}
	e, ok := tc.entries[key]
	if !ok {
		img := tc.shaper.Render(text, style.Wrap)
		if img == nil {
			return 0, Point{}
		}
		e = &textEntry{
			tex:  gpu.NewTextureFromImage(img, true),
			size: Point{float32(img.Rect.Dx()), float32(img.Rect.Dy())},
		}
		tc.entries[key] = e
	}

	size := e.size
	if style.Size > 0 {
		s := style.Size / tc.shaper.LineHeight()
		size = size.Scale(s)
	}
	return e.tex.ID(), size
}

func (tc *textCache) destroy() {
	for _, e := range tc.entries {
		e.tex.Destroy()
	}
	tc.entries = make(map[textKey]*textEntry)
}
