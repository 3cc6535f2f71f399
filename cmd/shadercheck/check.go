package main

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/muesli/termenv"

	"github.com/polyfloyd/shadercheck/glcontext"
	"github.com/polyfloyd/shadercheck/shader"
)

const successMessage = "compiled shader successfully"

// run performs a single compile-and-report cycle. The context is only torn
// down if the shader compiled.
func run(cfg config, stdout, stderr io.Writer) error {
	ctx, err := glcontext.Open(cfg.context)
	if err != nil {
		return err
	}

	var debug <-chan shader.DebugMessage
	if cfg.verbose {
		info := shader.QueryDriverInfo()
		log.Printf("Context: %s", ctx.Describe())
		log.Printf("OpenGL vendor: %s", info.Vendor)
		log.Printf("OpenGL renderer: %s", info.Renderer)
		log.Printf("OpenGL version: %s", info.Version)
		log.Printf("GLSL version: %s", info.GLSLVersion)

		var ok bool
		if debug, ok = shader.DebugOutput(); !ok {
			log.Printf("Debug output is not supported by this context")
		}
	}

	src, err := shader.ReadSource(cfg.source, cfg.capacity)
	if err != nil {
		return err
	}
	if cfg.verbose {
		log.Printf("Read %d bytes from %s", len(src.Code), src.Name)
	}

	_, err = shader.Compile(cfg.stage, src, cfg.capacity)
	logDebugMessages(debug)
	if err != nil {
		var cerr shader.CompileError
		if cfg.annotate && errors.As(err, &cerr) {
			cerr.PrettyPrint(stderr, !termenv.EnvNoColor())
		}
		return err
	}
	fmt.Fprintln(stdout, successMessage)

	return ctx.Close()
}

func logDebugMessages(debug <-chan shader.DebugMessage) {
	for {
		select {
		case dm := <-debug:
			log.Printf("OpenGL %s", dm)
		default:
			return
		}
	}
}
