package glcontext

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// platformErrorCode is GLFW_PLATFORM_ERROR.
const platformErrorCode = 0x00010008

// PlatformError is an error reported by GLFW.
type PlatformError struct {
	Code int
	Desc string
}

func (err PlatformError) Error() string {
	return fmt.Sprintf("glfw error %d: %s", err.Code, err.Desc)
}

func platformError(err error) error {
	var gerr *glfw.Error
	if errors.As(err, &gerr) {
		return PlatformError{Code: int(gerr.Code), Desc: gerr.Desc}
	}
	return err
}

// catch turns a panic raised by GLFW into an error. GLFW reports errors
// asynchronously, the bindings raise those that occur inside a call without an
// error return as a panic.
func catch(err *error) {
	r := recover()
	if r == nil {
		return
	}
	rerr, ok := r.(error)
	if !ok {
		panic(r)
	}
	var gerr *glfw.Error
	if !errors.As(rerr, &gerr) {
		panic(r)
	}
	*err = platformError(gerr)
}

// platformLog picks the platform errors out of the standard logger's output.
// The bindings neither return nor panic on GLFW_PLATFORM_ERROR, they only log
// it.
type platformLog struct {
	out  io.Writer
	errs []PlatformError
}

func (l *platformLog) Write(p []byte) (int, error) {
	const marker = "PlatformError: "
	line := string(p)
	i := strings.Index(line, marker)
	if i < 0 {
		return l.out.Write(p)
	}
	l.errs = append(l.errs, PlatformError{
		Code: platformErrorCode,
		Desc: strings.TrimSpace(line[i+len(marker):]),
	})
	return len(p), nil
}

// guard calls fn, which may only use GLFW, and returns the first error GLFW
// reported in any way while it ran: an error return, a panic or a log line.
func guard(fn func() error) (err error) {
	plog := &platformLog{out: log.Writer()}
	log.SetOutput(plog)
	defer func() {
		log.SetOutput(plog.out)
		if err == nil && len(plog.errs) > 0 {
			err = plog.errs[0]
		}
	}()
	defer catch(&err)
	return platformError(fn())
}

type glfwContext struct {
	window *glfw.Window
}

func openGLFW(opts Options) (*glfwContext, error) {
	if err := guard(glfw.Init); err != nil {
		return nil, fmt.Errorf("failed to init glfw: %w", err)
	}

	var window *glfw.Window
	err := guard(func() error {
		glfw.WindowHint(glfw.ContextVersionMajor, opts.Major)
		glfw.WindowHint(glfw.ContextVersionMinor, opts.Minor)
		switch opts.Profile {
		case CoreProfile:
			// Mac requires the forward-compatible flag.
			glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
			glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
		case CompatProfile:
			glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCompatProfile)
		}
		if opts.Hidden {
			glfw.WindowHint(glfw.Visible, glfw.False)
		}

		var err error
		window, err = glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
		return err
	})
	if err == nil && window == nil {
		err = errors.New("no window was created")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	err = guard(func() error {
		window.MakeContextCurrent()
		if glfw.GetCurrentContext() != window {
			return errors.New("the window's context is not current")
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to activate context: %w", err)
	}
	return &glfwContext{window: window}, nil
}

func (c *glfwContext) Describe() string {
	return "glfw " + glfw.GetVersionString()
}

func (c *glfwContext) Close() error {
	return guard(func() error {
		c.window.Destroy()
		glfw.Terminate()
		return nil
	})
}
