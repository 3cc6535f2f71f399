package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"runtime"

	"github.com/polyfloyd/shadercheck/glcontext"
	"github.com/polyfloyd/shadercheck/shader"
)

const (
	sourceEnv     = "SHADERCHECK_SOURCE"
	defaultSource = "../glsl/f-box.glsl"
)

type config struct {
	source   string
	capacity int
	stage    shader.Stage
	context  glcontext.Options
	annotate bool
	verbose  bool
}

func main() {
	log.SetOutput(os.Stderr)
	log.SetFlags(0)
	log.SetPrefix(filepath.Base(os.Args[0]) + ": ")
	// Lock this goroutine to the current thread. This is required because
	// OpenGL contexts are bound to threads.
	runtime.LockOSThread()

	// Usage errors have already been reported along with the usage text.
	cfg, err := parseConfig(os.Args[1:], os.Getenv, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	} else if err != nil {
		os.Exit(2)
	}

	if err := run(cfg, os.Stdout, os.Stderr); err != nil {
		fatal(err)
	}
}

// fatal is the only way the program terminates on an error. No teardown is
// done, process exit reclaims the window and the shader object.
func fatal(err error) {
	log.Print(err)
	os.Exit(1)
}

// parseConfig reports any error to output followed by the usage text, the
// way the flag package does for malformed flags.
func parseConfig(args []string, getenv func(string) string, output io.Writer) (config, error) {
	fs := flag.NewFlagSet("shadercheck", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: shadercheck [flags] [shader file]\n\n")
		fmt.Fprintf(fs.Output(), "The shader file defaults to $%s, or %s if it is not set.\n\n", sourceEnv, defaultSource)
		fs.PrintDefaults()
	}

	defaults := glcontext.DefaultOptions()
	inputFile := fs.String("i", "", "The shader file to compile. \"-\" reads from stdin")
	capacity := fs.Int("max-size", shader.DefaultCapacity, "The shader source must be smaller than this number of bytes. Also bounds the compile log")
	stage := fs.String("stage", string(shader.StageFragment), "The pipeline stage to compile for: vert, geom or frag")
	backend := fs.String("backend", string(defaults.Backend), "The context provider: glfw opens a window, egl is headless")
	version := fs.String("gl", fmt.Sprintf("%d.%d", defaults.Major, defaults.Minor), "The minimum OpenGL context version to request")
	profile := fs.String("profile", defaults.Profile.String(), "The OpenGL profile to request: any, core or compat")
	hidden := fs.Bool("hidden", false, "Do not show the window")
	annotate := fs.Bool("annotate", false, "Print the source lines the compile log refers to")
	verbose := fs.Bool("v", false, "Show verbose output about the context and the driver")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	cfg, err := buildConfig(fs, getenv, configFlags{
		inputFile: *inputFile,
		capacity:  *capacity,
		stage:     *stage,
		backend:   *backend,
		version:   *version,
		profile:   *profile,
		hidden:    *hidden,
		annotate:  *annotate,
		verbose:   *verbose,
	})
	if err != nil {
		fmt.Fprintln(fs.Output(), err)
		fs.Usage()
		return config{}, err
	}
	return cfg, nil
}

type configFlags struct {
	inputFile string
	capacity  int
	stage     string
	backend   string
	version   string
	profile   string
	hidden    bool
	annotate  bool
	verbose   bool
}

func buildConfig(fs *flag.FlagSet, getenv func(string) string, f configFlags) (config, error) {
	cfg := config{
		capacity: f.capacity,
		context:  glcontext.DefaultOptions(),
		annotate: f.annotate,
		verbose:  f.verbose,
	}

	switch {
	case fs.NArg() > 1:
		return config{}, fmt.Errorf("expected at most one shader file, got %d", fs.NArg())
	case fs.NArg() == 1 && f.inputFile != "":
		return config{}, fmt.Errorf("-i and a positional shader file are mutually exclusive")
	case fs.NArg() == 1:
		cfg.source = fs.Arg(0)
	case f.inputFile != "":
		cfg.source = f.inputFile
	case getenv(sourceEnv) != "":
		cfg.source = getenv(sourceEnv)
	default:
		cfg.source = defaultSource
	}

	if cfg.capacity <= 0 || cfg.capacity > math.MaxInt32 {
		return config{}, fmt.Errorf("-max-size must be between 1 and %d, got %d", math.MaxInt32, cfg.capacity)
	}

	var err error
	if cfg.stage, err = shader.ParseStage(f.stage); err != nil {
		return config{}, err
	}
	if cfg.context.Backend, err = glcontext.ParseBackend(f.backend); err != nil {
		return config{}, err
	}
	if cfg.context.Major, cfg.context.Minor, err = glcontext.ParseVersion(f.version); err != nil {
		return config{}, err
	}
	if cfg.context.Profile, err = glcontext.ParseProfile(f.profile); err != nil {
		return config{}, err
	}
	cfg.context.Hidden = f.hidden
	return cfg, nil
}
