package glcontext

import (
	"fmt"

	"github.com/polyfloyd/shadercheck/egl"
)

type eglContext struct {
	display egl.Display
	context egl.Context
}

func openEGL(opts Options) (*eglContext, error) {
	display, err := egl.GetDisplay(egl.DefaultDisplay)
	if err != nil {
		return nil, fmt.Errorf("failed to init egl: %w", err)
	}
	surface, err := display.CreateSurface(uint(opts.Width), uint(opts.Height))
	if err != nil {
		return nil, fmt.Errorf("failed to create surface: %w", err)
	}
	if err := display.BindAPI(egl.OpenGLAPI); err != nil {
		return nil, err
	}

	var profile egl.Profile
	switch opts.Profile {
	case CoreProfile:
		profile = egl.CoreProfile
	case CompatProfile:
		profile = egl.CompatProfile
	}
	context, err := display.CreateContext(surface, opts.Major, opts.Minor, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to create context: %w", err)
	}
	if err := context.MakeCurrent(); err != nil {
		return nil, err
	}
	return &eglContext{display: display, context: context}, nil
}

func (c *eglContext) Describe() string {
	return fmt.Sprintf("egl %s (%s)", c.display.Version(), c.display.Vendor())
}

func (c *eglContext) Close() error {
	c.context.Destroy()
	c.display.Destroy()
	return nil
}
