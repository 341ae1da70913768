package shader

import (
	"os"
	"path/filepath"
	"regexp"
)

const (
	// VertexExt and FragmentExt are the extension conventions used to
	// resolve logical shader names against the shader directory.
	VertexExt   = ".vert"
	FragmentExt = ".frag"
)

// singleImagePreamble declares the standard uniforms available to
// fragment sources authored against the one-pass compositing convention.
// iResolution is the logical render resolution; iWindowSize is the
// physical window size. The synthetic main rescales gl_FragCoord between
// the two so content written for one coordinate space runs in the other.
const singleImagePreamble = `#version 410 core
precision highp float;
precision highp int;

uniform vec3  iResolution;
uniform vec2  iWindowSize;
uniform float iTime;
uniform float iTimeDelta;
uniform int   iFrame;
uniform vec4  iMouse;
uniform vec4  iDate;
uniform float iSampleRate;
uniform float iChannelTime[4];
uniform vec3  iChannelResolution[4];
uniform sampler2D iChannel0;
uniform sampler2D iChannel1;
uniform sampler2D iChannel2;
uniform sampler2D iChannel3;

out vec4 nocturne_fragColor;

`

// singleImageMain delegates to the author's mainImage entry point.
const singleImageMain = `
void main(void)
{
    vec2 nocturne_scale = iResolution.xy / max(iWindowSize.xy, vec2(1.0));
    mainImage(nocturne_fragColor, gl_FragCoord.xy * nocturne_scale);
}
`

var (
	mainImageRe = regexp.MustCompile(`\bvoid\s+mainImage\s*\(`)
	mainRe      = regexp.MustCompile(`\bvoid\s+main\s*\(`)
)

// IsSingleImage reports whether src is authored in the single-image
// dialect: it defines mainImage but no main of its own.
func IsSingleImage(src string) bool {
	return mainImageRe.MatchString(src) && !mainRe.MatchString(src)
}

// WrapSingleImage rewrites a single-image fragment source into a
// conventional one: uniform prelude, the source unmodified, then a
// synthetic main. The transform is pure text; it never touches GL state.
func WrapSingleImage(src string) string {
	return singleImagePreamble + src + singleImageMain
}

// Resolve maps a logical shader name to a source file path under dir
// using the extension convention for the given stage.
func Resolve(dir, name string, ext string) (string, error) {
	path := filepath.Join(dir, name+ext)
	if _, err := os.Stat(path); err != nil {
		return "", &NotFoundError{Name: name, Ext: ext}
	}
	return path, nil
}

// LoadSource reads a shader source file, applying the single-image wrap
// for fragment sources that need it. Vertex sources pass through as-is.
func LoadSource(path string, ext string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &FileReadError{Path: path, Err: err}
	}
	src := string(data)
	if ext == FragmentExt && IsSingleImage(src) {
		src = WrapSingleImage(src)
	}
	return src, nil
}
