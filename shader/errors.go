package shader

import (
	"errors"
	"fmt"
)

// Stage identifies which compilation unit produced a diagnostic.
type Stage string

const (
	StageVertex   Stage = "vertex"
	StageFragment Stage = "fragment"
)

// FileReadError reports a shader source file that could not be read.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("failed to read shader source %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }

// NotFoundError reports a logical shader name that resolved to no file.
type NotFoundError struct {
	Name string
	Ext  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("shader %q not found (looked for %s%s)", e.Name, e.Name, e.Ext)
}

// CompileError carries the GPU compiler's diagnostic text verbatim for
// one compilation unit. No partial recovery is attempted.
type CompileError struct {
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s shader compilation failed: %s", e.Stage, e.Log)
}

// LinkError carries the linker's diagnostic text verbatim.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("program link failed: %s", e.Log)
}

// UnknownTypeError reports a shader stage this manager does not handle.
type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown shader type %q", e.Type)
}

// IsCompileError reports whether err is (or wraps) a compile or link
// failure, as opposed to an I/O problem. Hot-reload callers use this to
// decide between "author is mid-edit" and "file vanished".
func IsCompileError(err error) bool {
	var ce *CompileError
	var le *LinkError
	return errors.As(err, &ce) || errors.As(err, &le)
}
