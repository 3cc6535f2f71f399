package main

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runMainEnv makes the test binary behave as shadercheck itself.
const runMainEnv = "SHADERCHECK_TEST_RUN_MAIN"

func TestMain(m *testing.M) {
	if os.Getenv(runMainEnv) != "" {
		main()
		os.Exit(0)
	}
	os.Exit(m.Run())
}

type result struct {
	stdout, stderr string
	code           int
}

func runMain(t *testing.T, env []string, args ...string) result {
	cmd := exec.Command(os.Args[0], args...)
	cmd.Env = append(append(os.Environ(), runMainEnv+"=1"), env...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout, cmd.Stderr = &stdout, &stderr
	err := cmd.Run()

	res := result{stdout: stdout.String(), stderr: stderr.String()}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.code = exitErr.ExitCode()
	} else {
		require.NoError(t, err)
	}
	return res
}

func lines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func TestExitSuccess(t *testing.T) {
	testConfig(t, "")

	res := runMain(t, nil, "-backend", "egl", "../../testdata/glsl/f-box.glsl")
	assert.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, successMessage+"\n", res.stdout)
	assert.Empty(t, res.stderr)
}

func TestExitMissingFile(t *testing.T) {
	testConfig(t, "")
	path := filepath.Join(t.TempDir(), "missing.glsl")

	res := runMain(t, nil, "-backend", "egl", path)
	assert.Equal(t, 1, res.code)
	assert.Empty(t, res.stdout)
	if assert.Len(t, lines(res.stderr), 1, res.stderr) {
		assert.Contains(t, res.stderr, ": can't open "+path+": ")
	}
}

func TestExitCompileError(t *testing.T) {
	testConfig(t, "")

	res := runMain(t, nil, "-backend", "egl", "../../testdata/glsl/f-invalid.glsl")
	assert.Equal(t, 1, res.code)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, ": failed to compile shader: ")
}

func TestExitWithoutDisplay(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("only X11 needs DISPLAY")
	}

	res := runMain(t, []string{"DISPLAY=", "WAYLAND_DISPLAY="}, "../../testdata/glsl/f-box.glsl")
	assert.Equal(t, 1, res.code)
	assert.Empty(t, res.stdout)
	if assert.Len(t, lines(res.stderr), 1, res.stderr) {
		assert.Contains(t, res.stderr, ": failed to init glfw: glfw error 65544: ")
	}
}

func TestExitUsage(t *testing.T) {
	tests := map[string][]string{
		"undefined flag":  {"-nonexistent"},
		"invalid stage":   {"-stage", "tess"},
		"max-size bounds": {"-max-size", "0"},
		"two files":       {"a.glsl", "b.glsl"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			res := runMain(t, nil, args...)
			assert.Equal(t, 2, res.code)
			assert.Empty(t, res.stdout)
			assert.Contains(t, res.stderr, "Usage: shadercheck")
		})
	}

	res := runMain(t, nil, "-h")
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stderr, "Usage: shadercheck")
}
