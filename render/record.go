package render

// Op tags a recorded drawing command.
type Op uint8

const (
	OpImage Op = iota
	OpImageRegion
	OpText
	OpPath
	OpStroke
)

// Command is one recorded primitive with the state that applied to it.
type Command struct {
	Op      Op
	Texture uint32
	Src     Rect
	Dst     Rect
	Text    string
	Anchor  Point
	Style   TextStyle
	Path    *Path
	Color   Color
	Width   float32
	// Clip is the active clip at submission time, nil when unclipped.
	Clip *Rect
}

// Recorder is a Renderer that records commands instead of touching the
// GPU. It enforces the same contract as the real backend (frame
// bracket, clip tracking, missing-texture skips) and is used by tests
// and headless tooling to assert on what would have been drawn.
type Recorder struct {
	Commands []Command

	frameOpen  bool
	viewport   Point
	scale      float32
	clip       *Rect
	wireframe  bool
	clearColor Color

	// Frames counts completed BeginFrame/EndFrame brackets.
	Frames int
}

var _ Renderer = (*Recorder)(nil)

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) BeginFrame(viewport Point, scale float32) {
	if r.frameOpen {
		return
	}
	r.frameOpen = true
	r.viewport = viewport
	r.scale = scale
	r.Commands = r.Commands[:0]
	r.clip = nil
}

func (r *Recorder) EndFrame() {
	if !r.frameOpen {
		return
	}
	r.frameOpen = false
	r.Frames++
}

func (r *Recorder) SetClipRect(rect *Rect) {
	if rect == nil {
		r.clip = nil
		return
	}
	c := *rect
	r.clip = &c
}

func (r *Recorder) SetWireframeMode(on bool) { r.wireframe = on }

func (r *Recorder) SetClearColor(c Color) { r.clearColor = c }

func (r *Recorder) ClearColor() Color { return r.clearColor }

func (r *Recorder) record(cmd Command) {
	if !r.frameOpen {
		return
	}
	if r.clip != nil {
		c := *r.clip
		cmd.Clip = &c
	}
	r.Commands = append(r.Commands, cmd)
}

func (r *Recorder) DrawImage(texture uint32, dst Rect, tint Color) {
	if texture == 0 {
		return
	}
	r.record(Command{Op: OpImage, Texture: texture, Dst: dst, Color: tint})
}

func (r *Recorder) DrawImageRegion(texture uint32, src, dst Rect, tint Color) {
	if texture == 0 {
		return
	}
	r.record(Command{Op: OpImageRegion, Texture: texture, Src: src, Dst: dst, Color: tint})
}

func (r *Recorder) DrawText(text string, anchor Point, style TextStyle) {
	r.record(Command{Op: OpText, Text: text, Anchor: anchor, Style: style})
}

func (r *Recorder) DrawPath(p *Path, fill Color) {
	if p == nil || p.Empty() {
		return
	}
	r.record(Command{Op: OpPath, Path: p, Color: fill})
}

func (r *Recorder) DrawStroke(p *Path, stroke Color, width float32) {
	if p == nil || p.Empty() {
		return
	}
	r.record(Command{Op: OpStroke, Path: p, Color: stroke, Width: width})
}

// CountOp returns how many recorded commands carry the given op.
func (r *Recorder) CountOp(op Op) int {
	n := 0
	for _, c := range r.Commands {
		if c.Op == op {
			n++
		}
	}
	return n
}
