package shader

import (
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	nocturne "github.com/duskfall/nocturne"
)

// Program is a linked vertex+fragment shader pair. The handle is valid
// (non-zero) if and only if the most recent compile+link succeeded; a
// failed recompile never invalidates a handle that is in use.
//
// The handle and uniform cache are owned by the render thread. Only the
// registry is shared with the watch goroutine.
type Program struct {
	mgr        *Manager
	vertPath   string
	fragPath   string
	handle     uint32
	generation int
	uniforms   map[string]int32
	watcher    *Watcher
}

// Handle returns the current GL program handle. It changes across
// successful recompiles; do not cache it across frames.
func (p *Program) Handle() uint32 { return p.handle }

// Generation counts successful compiles, starting at 1 for the initial
// build. Useful for invalidating caches keyed on the old handle.
func (p *Program) Generation() int { return p.generation }

// Use makes the program current.
func (p *Program) Use() {
	gl.UseProgram(p.handle)
}

// Recompile rebuilds the program from its source files. A complete new
// program handle is compiled and linked while the old handle stays fully
// valid and in use. Only on success is the old handle destroyed, the
// registry re-keyed, and the logical program swapped onto the new
// handle. On failure the new handle is discarded and the old one is
// left untouched, so a syntax error introduced mid-edit degrades to
// "keep rendering the last good program". Must run on the render thread.
func (p *Program) Recompile() error {
	vsrc, err := LoadSource(p.vertPath, VertexExt)
	if err != nil {
		return err
	}
	fsrc, err := LoadSource(p.fragPath, FragmentExt)
	if err != nil {
		return err
	}

	newHandle, err := buildProgram(vsrc, fsrc)
	if err != nil {
		return err
	}

	old := p.handle
	gl.DeleteProgram(old)
	p.mgr.registry.rekey(old, newHandle)
	p.handle = newHandle
	p.generation++
	p.uniforms = make(map[string]int32)
	nocturne.Logger().Info("shader recompiled",
		"vertex", p.vertPath, "fragment", p.fragPath, "generation", p.generation)
	return nil
}

// Destroy tears down the program, its watcher, and its registry entry.
// Safe to call once; the handle is zeroed to prevent double-free.
func (p *Program) Destroy() {
	if p.watcher != nil {
		p.watcher.stop()
		p.watcher = nil
	}
	if p.handle != 0 {
		p.mgr.registry.remove(p.handle)
		gl.DeleteProgram(p.handle)
		p.handle = 0
	}
}

// uniformLocation resolves and caches a uniform location. The cache is
// cleared on recompile since locations are per-handle.
func (p *Program) uniformLocation(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.handle, gl.Str(name+"\x00"))
	p.uniforms[name] = loc
	return loc
}

// SetFloat sets a float uniform on the currently bound program. Unknown
// names are ignored, matching GL's -1 location convention.
func (p *Program) SetFloat(name string, v float32) {
	if loc := p.uniformLocation(name); loc != -1 {
		gl.Uniform1f(loc, v)
	}
}

func (p *Program) SetInt(name string, v int32) {
	if loc := p.uniformLocation(name); loc != -1 {
		gl.Uniform1i(loc, v)
	}
}

func (p *Program) SetVec2(name string, x, y float32) {
	if loc := p.uniformLocation(name); loc != -1 {
		gl.Uniform2f(loc, x, y)
	}
}

func (p *Program) SetVec3(name string, x, y, z float32) {
	if loc := p.uniformLocation(name); loc != -1 {
		gl.Uniform3f(loc, x, y, z)
	}
}

func (p *Program) SetVec4(name string, x, y, z, w float32) {
	if loc := p.uniformLocation(name); loc != -1 {
		gl.Uniform4f(loc, x, y, z, w)
	}
}

// buildProgram compiles both units and links them into a new program.
// Any partially constructed handle is destroyed before an error is
// returned; a program is never handed back in a half-built state.
func buildProgram(vertexSource, fragmentSource string) (uint32, error) {
	vert, err := compileUnit(vertexSource, StageVertex)
	if err != nil {
		return 0, err
	}
	frag, err := compileUnit(fragmentSource, StageFragment)
	if err != nil {
		gl.DeleteShader(vert)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vert)
	gl.AttachShader(program, frag)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
		gl.DeleteShader(vert)
		gl.DeleteShader(frag)
		gl.DeleteProgram(program)
		return 0, &LinkError{Log: strings.TrimRight(logText, "\x00")}
	}

	gl.DeleteShader(vert)
	gl.DeleteShader(frag)
	return program, nil
}

// compileUnit compiles one shader stage, reporting the compiler's
// diagnostic text verbatim on failure.
func compileUnit(source string, stage Stage) (uint32, error) {
	var glType uint32
	switch stage {
	case StageVertex:
		glType = gl.VERTEX_SHADER
	case StageFragment:
		glType = gl.FRAGMENT_SHADER
	default:
		return 0, &UnknownTypeError{Type: string(stage)}
	}

	unit := gl.CreateShader(glType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(unit, 1, csources, nil)
	free()
	gl.CompileShader(unit)

	var status int32
	gl.GetShaderiv(unit, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(unit, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(unit, logLength, nil, gl.Str(logText))
		gl.DeleteShader(unit)
		return 0, &CompileError{Stage: stage, Log: strings.TrimRight(logText, "\x00")}
	}
	return unit, nil
}
