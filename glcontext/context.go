// Package glcontext creates an OpenGL context and makes it current on the
// calling thread. The caller must have locked its goroutine to the OS thread.
package glcontext

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/go-gl/gl/v3.3-core/gl"
)

type Backend string

const (
	// BackendGLFW opens a window through GLFW.
	BackendGLFW Backend = "glfw"
	// BackendEGL creates a headless pbuffer context through EGL.
	BackendEGL Backend = "egl"
)

func ParseBackend(s string) (Backend, error) {
	switch b := Backend(s); b {
	case BackendGLFW, BackendEGL:
		return b, nil
	}
	return "", fmt.Errorf("invalid context backend: %q", s)
}

type Profile int

const (
	// AnyProfile leaves the choice of profile to the provider.
	AnyProfile Profile = iota
	CoreProfile
	CompatProfile
)

func ParseProfile(s string) (Profile, error) {
	switch s {
	case "any":
		return AnyProfile, nil
	case "core":
		return CoreProfile, nil
	case "compat":
		return CompatProfile, nil
	}
	return 0, fmt.Errorf("invalid OpenGL profile: %q", s)
}

func (p Profile) String() string {
	switch p {
	case CoreProfile:
		return "core"
	case CompatProfile:
		return "compat"
	default:
		return "any"
	}
}

var versionRe = regexp.MustCompile(`^(\d+)\.(\d+)$`)

// ParseVersion parses an OpenGL version in MAJOR.MINOR format.
func ParseVersion(s string) (major, minor int, err error) {
	matches := versionRe.FindStringSubmatch(s)
	if matches == nil {
		return 0, 0, fmt.Errorf("invalid OpenGL version: %q", s)
	}
	major, _ = strconv.Atoi(matches[1])
	minor, _ = strconv.Atoi(matches[2])
	if major == 0 {
		return 0, 0, fmt.Errorf("invalid OpenGL version: %q", s)
	}
	return major, minor, nil
}

type Options struct {
	Backend Backend

	// The minimum version of the context. A provider may grant any
	// compatible version equal to or greater than this.
	Major, Minor int
	Profile      Profile

	Width, Height int
	Title         string
	Hidden        bool
}

func DefaultOptions() Options {
	return Options{
		Backend: BackendGLFW,
		Major:   3,
		Minor:   3,
		Profile: AnyProfile,
		Width:   800,
		Height:  600,
		Title:   "Hello world",
	}
}

// Context is a current OpenGL context with its function pointers loaded.
type Context interface {
	// Describe returns a human readable description of the provider.
	Describe() string

	// Close destroys the window or surface and shuts the provider down.
	Close() error
}

// Open initializes the provider selected by opts, creates a context, makes it
// current and loads the OpenGL function pointers.
//
// Nothing is torn down if an error is returned.
func Open(opts Options) (Context, error) {
	var ctx Context
	var err error
	switch opts.Backend {
	case BackendGLFW:
		ctx, err = openGLFW(opts)
	case BackendEGL:
		ctx, err = openEGL(opts)
	default:
		err = fmt.Errorf("invalid context backend: %q", opts.Backend)
	}
	if err != nil {
		return nil, err
	}
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to load OpenGL functions: %w", err)
	}
	return ctx, nil
}
