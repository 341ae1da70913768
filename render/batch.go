package render

// Pure geometry for the GL backend: point-space to NDC conversion,
// scissor box computation, stroke expansion, and convex fill
// triangulation. Kept free of GL calls so the coordinate math is
// testable headless.

// vertex layout matches gpu.VertexBuffer: pos2, uv2, rgba4.
const vertexFloats = 8

// toNDC converts a logical point to normalized device coordinates for
// the given viewport. Logical space is Y-down, NDC is Y-up.
func toNDC(p Point, viewport Point) Point {
	return Point{
		X: 2*p.X/viewport.X - 1,
		Y: 1 - 2*p.Y/viewport.Y,
	}
}

// scissorBox converts a logical clip rectangle to a pixel-space GL
// scissor box (origin bottom-left). The clip is intersected with the
// viewport first; callers must skip the draw when the result is empty.
func scissorBox(clip Rect, viewport Point, scale float32) (x, y, w, h int32, ok bool) {
	c := clip.Intersect(Rect{0, 0, viewport.X, viewport.Y})
	if c.Empty() {
		return 0, 0, 0, 0, false
	}
	x = int32(c.X * scale)
	y = int32((viewport.Y - c.MaxY()) * scale)
	w = int32(c.W * scale)
	h = int32(c.H * scale)
	return x, y, w, h, true
}

// drawBatch is one contiguous vertex range sharing texture, clip, and
// rasterization state.
type drawBatch struct {
	texture uint32
	clip    *Rect
	wire    bool
	first   int32
	count   int32
}

// frameQueue accumulates a frame's vertices and batches in submission
// order. Consecutive primitives with identical state share a batch.
type frameQueue struct {
	verts   []float32
	batches []drawBatch
}

func (q *frameQueue) reset() {
	q.verts = q.verts[:0]
	q.batches = q.batches[:0]
}

func sameClip(a, b *Rect) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// batchFor returns a batch compatible with the given state, extending
// the last one when possible so submission order is preserved.
func (q *frameQueue) batchFor(texture uint32, clip *Rect, wire bool) *drawBatch {
	if n := len(q.batches); n > 0 {
		last := &q.batches[n-1]
		if last.texture == texture && last.wire == wire && sameClip(last.clip, clip) {
			return last
		}
	}
	var clipCopy *Rect
	if clip != nil {
		c := *clip
		clipCopy = &c
	}
	q.batches = append(q.batches, drawBatch{
		texture: texture,
		clip:    clipCopy,
		wire:    wire,
		first:   int32(len(q.verts) / vertexFloats),
	})
	return &q.batches[len(q.batches)-1]
}

func (q *frameQueue) vertex(b *drawBatch, pos Point, u, v float32, c Color) {
	q.verts = append(q.verts, pos.X, pos.Y, u, v, c.R, c.G, c.B, c.A)
	b.count++
}

// pushQuad emits two triangles covering dst with the given UV rect.
func (q *frameQueue) pushQuad(b *drawBatch, viewport Point, dst Rect, uv Rect, c Color) {
	tl := toNDC(Point{dst.X, dst.Y}, viewport)
	tr := toNDC(Point{dst.MaxX(), dst.Y}, viewport)
	bl := toNDC(Point{dst.X, dst.MaxY()}, viewport)
	br := toNDC(Point{dst.MaxX(), dst.MaxY()}, viewport)

	q.vertex(b, tl, uv.X, uv.Y, c)
	q.vertex(b, bl, uv.X, uv.MaxY(), c)
	q.vertex(b, br, uv.MaxX(), uv.MaxY(), c)

	q.vertex(b, tl, uv.X, uv.Y, c)
	q.vertex(b, br, uv.MaxX(), uv.MaxY(), c)
	q.vertex(b, tr, uv.MaxX(), uv.Y, c)
}

// pushFill triangulates each flattened subpath as a fan around its
// first vertex. Fill assumes convex subpaths, which covers every shape
// the engine's own callers build (rects, circles, gizmo triangles).
func (q *frameQueue) pushFill(b *drawBatch, viewport Point, lines [][]Point, c Color) {
	for _, line := range lines {
		if len(line) < 3 {
			continue
		}
		origin := toNDC(line[0], viewport)
		for i := 1; i < len(line)-1; i++ {
			q.vertex(b, origin, 0, 0, c)
			q.vertex(b, toNDC(line[i], viewport), 0, 0, c)
			q.vertex(b, toNDC(line[i+1], viewport), 0, 0, c)
		}
	}
}

// pushStroke expands each polyline segment into a width-w quad. Joins
// are butt joins; good enough for gizmos and UI hairlines.
func (q *frameQueue) pushStroke(b *drawBatch, viewport Point, lines [][]Point, c Color, width float32) {
	half := width / 2
	if half <= 0 {
		half = 0.5
	}
	for _, line := range lines {
		for i := 0; i+1 < len(line); i++ {
			a, d := line[i], line[i+1]
			segLen := a.Dist(d)
			if segLen == 0 {
				continue
			}
			// Unit normal to the segment.
			nx := -(d.Y - a.Y) / segLen * half
			ny := (d.X - a.X) / segLen * half

			p0 := Point{a.X + nx, a.Y + ny}
			p1 := Point{a.X - nx, a.Y - ny}
			p2 := Point{d.X - nx, d.Y - ny}
			p3 := Point{d.X + nx, d.Y + ny}

			q.vertex(b, toNDC(p0, viewport), 0, 0, c)
			q.vertex(b, toNDC(p1, viewport), 0, 0, c)
			q.vertex(b, toNDC(p2, viewport), 0, 0, c)

			q.vertex(b, toNDC(p0, viewport), 0, 0, c)
			q.vertex(b, toNDC(p2, viewport), 0, 0, c)
			q.vertex(b, toNDC(p3, viewport), 0, 0, c)
		}
	}
}
