package render

import "github.com/chewxy/math32"

// pathVerb tags one path segment.
type pathVerb uint8

const (
	verbMove pathVerb = iota
	verbLine
	verbQuad
	verbCubic
	verbClose
)

// Path is a sequence of move/line/bezier segments. Paths are transient:
// built, drawn within one frame, and discarded or reused via Reset.
type Path struct {
	verbs  []pathVerb
	points []Point
	start  Point
	cur    Point
}

func NewPath() *Path { return &Path{} }

// Reset clears the path for reuse without reallocating.
func (p *Path) Reset() {
	p.verbs = p.verbs[:0]
	p.points = p.points[:0]
	p.start = Point{}
	p.cur = Point{}
}

func (p *Path) MoveTo(pt Point) *Path {
	p.verbs = append(p.verbs, verbMove)
	p.points = append(p.points, pt)
	p.start = pt
	p.cur = pt
	return p
}

func (p *Path) LineTo(pt Point) *Path {
	p.verbs = append(p.verbs, verbLine)
	p.points = append(p.points, pt)
	p.cur = pt
	return p
}

// QuadTo appends a quadratic bezier through control point c to pt.
func (p *Path) QuadTo(c, pt Point) *Path {
	p.verbs = append(p.verbs, verbQuad)
	p.points = append(p.points, c, pt)
	p.cur = pt
	return p
}

// CubicTo appends a cubic bezier with control points c1, c2 to pt.
func (p *Path) CubicTo(c1, c2, pt Point) *Path {
	p.verbs = append(p.verbs, verbCubic)
	p.points = append(p.points, c1, c2, pt)
	p.cur = pt
	return p
}

// Close joins the current point back to the subpath start.
func (p *Path) Close() *Path {
	p.verbs = append(p.verbs, verbClose)
	p.cur = p.start
	return p
}

// AddRect appends a closed rectangular subpath.
func (p *Path) AddRect(r Rect) *Path {
	p.MoveTo(Point{r.X, r.Y})
	p.LineTo(Point{r.MaxX(), r.Y})
	p.LineTo(Point{r.MaxX(), r.MaxY()})
	p.LineTo(Point{r.X, r.MaxY()})
	return p.Close()
}

// AddCircle appends a closed circular subpath approximated with four
// cubic beziers.
func (p *Path) AddCircle(center Point, radius float32) *Path {
	// Magic constant for a cubic circle approximation.
	const k = 0.5522848
	kr := k * radius
	p.MoveTo(Point{center.X + radius, center.Y})
	p.CubicTo(Point{center.X + radius, center.Y + kr}, Point{center.X + kr, center.Y + radius}, Point{center.X, center.Y + radius})
	p.CubicTo(Point{center.X - kr, center.Y + radius}, Point{center.X - radius, center.Y + kr}, Point{center.X - radius, center.Y})
	p.CubicTo(Point{center.X - radius, center.Y - kr}, Point{center.X - kr, center.Y - radius}, Point{center.X, center.Y - radius})
	p.CubicTo(Point{center.X + kr, center.Y - radius}, Point{center.X + radius, center.Y - kr}, Point{center.X + radius, center.Y})
	return p.Close()
}

// Empty reports whether the path has no segments.
func (p *Path) Empty() bool { return len(p.verbs) == 0 }

// flattenSteps picks a subdivision count for a bezier from its control
// polygon length so near-flat curves cost few segments.
func flattenSteps(chord float32) int {
	steps := int(math32.Ceil(math32.Sqrt(chord * 2)))
	if steps < 4 {
		steps = 4
	}
	if steps > 48 {
		steps = 48
	}
	return steps
}

// Flatten converts the path into polylines, one per subpath. Closed
// subpaths repeat their first point at the end.
func (p *Path) Flatten() [][]Point {
	var out [][]Point
	var line []Point
	var cur, start Point
	i := 0

	flush := func() {
		if len(line) > 1 {
			out = append(out, line)
		}
		line = nil
	}

	for _, v := range p.verbs {
		switch v {
		case verbMove:
			flush()
			cur = p.points[i]
			start = cur
			line = append(line, cur)
			i++
		case verbLine:
			pt := p.points[i]
			line = append(line, pt)
			cur = pt
			i++
		case verbQuad:
			c, pt := p.points[i], p.points[i+1]
			chord := cur.Dist(c) + c.Dist(pt)
			steps := flattenSteps(chord)
			for s := 1; s <= steps; s++ {
				t := float32(s) / float32(steps)
				line = append(line, quadPoint(cur, c, pt, t))
			}
			cur = pt
			i += 2
		case verbCubic:
			c1, c2, pt := p.points[i], p.points[i+1], p.points[i+2]
			chord := cur.Dist(c1) + c1.Dist(c2) + c2.Dist(pt)
			steps := flattenSteps(chord)
			for s := 1; s <= steps; s++ {
				t := float32(s) / float32(steps)
				line = append(line, cubicPoint(cur, c1, c2, pt, t))
			}
			cur = pt
			i += 3
		case verbClose:
			if len(line) > 0 {
				line = append(line, start)
			}
			cur = start
		}
	}
	flush()
	return out
}

func quadPoint(p0, c, p1 Point, t float32) Point {
	u := 1 - t
	return Point{
		X: u*u*p0.X + 2*u*t*c.X + t*t*p1.X,
		Y: u*u*p0.Y + 2*u*t*c.Y + t*t*p1.Y,
	}
}

func cubicPoint(p0, c1, c2, p1 Point, t float32) Point {
	u := 1 - t
	return Point{
		X: u*u*u*p0.X + 3*u*u*t*c1.X + 3*u*t*t*c2.X + t*t*t*p1.X,
		Y: u*u*u*p0.Y + 3*u*u*t*c1.Y + 3*u*t*t*c2.Y + t*t*t*p1.Y,
	}
}
