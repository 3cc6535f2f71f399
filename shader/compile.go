package shader

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/muesli/termenv"
)

// Compile creates a shader object for the stage and compiles src into it.
//
// The source is uploaded together with its exact length, so it does not need
// to be terminated. If the driver rejects the source, a CompileError holding
// at most logSize bytes of the driver's info log is returned. The shader
// object is not released in either case.
func Compile(stage Stage, src Source, logSize int) (uint32, error) {
	glStage, err := stage.glEnum()
	if err != nil {
		return 0, err
	}
	if logSize <= 0 {
		logSize = DefaultCapacity
	}
	if logSize > math.MaxInt32 || len(src.Code) > math.MaxInt32 {
		return 0, fmt.Errorf("shader source or log size exceeds %d bytes", math.MaxInt32)
	}

	shader := gl.CreateShader(glStage)
	if shader == 0 {
		return 0, fmt.Errorf("unable to create a %s shader object", stage)
	}
	length := int32(len(src.Code))
	csources, free := gl.Strs(string(src.Code) + "\x00")
	gl.ShaderSource(shader, 1, csources, &length)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		buf := make([]byte, logSize)
		var logLen int32
		gl.GetShaderInfoLog(shader, int32(logSize), &logLen, &buf[0])
		return 0, CompileError{
			shader: shader,
			source: src,
			stage:  stage,
			log:    strings.TrimRight(string(buf[:logLen]), "\x00 \r\n"),
		}
	}
	return shader, nil
}

// CompileError carries the driver's info log for a rejected source.
type CompileError struct {
	shader uint32
	source Source

	stage Stage
	log   string
}

func (err CompileError) Error() string {
	return "failed to compile shader: " + err.log
}

// Log returns the driver's info log.
func (err CompileError) Log() string {
	return err.log
}

// Shader returns the handle of the shader object that failed to compile.
func (err CompileError) Shader() uint32 {
	return err.shader
}

func (err CompileError) Stage() Stage {
	return err.stage
}

// Markers returns the locations the driver reported problems for.
func (err CompileError) Markers() []Marker {
	return ParseMarkers(err.log)
}

// PrettyPrint writes every marker in the log along with the source line it
// refers to. Severities are colored if color is set and out is a terminal.
// Logs the driver formats in an unknown way are written as-is.
func (err CompileError) PrettyPrint(out io.Writer, color bool) {
	o := termenv.NewOutput(out)
	if !color {
		o = termenv.NewOutput(out, termenv.WithProfile(termenv.Ascii))
	}

	markers := err.Markers()
	if len(markers) == 0 {
		fmt.Fprintln(out, err.log)
		return
	}
	lines := strings.Split(string(err.source.Code), "\n")
	for _, m := range markers {
		severity := o.String(m.Severity).Bold()
		switch m.Severity {
		case SeverityError:
			severity = severity.Foreground(o.Color("1"))
		case SeverityWarning:
			severity = severity.Foreground(o.Color("3"))
		}
		fmt.Fprintf(out, "%s:%d: %s: %s\n", err.source.Name, m.Line, severity, m.Message)
		if m.Line >= 1 && m.Line <= len(lines) {
			line := strings.TrimRight(lines[m.Line-1], "\r")
			fmt.Fprintf(out, "%5d | %s\n", m.Line, o.String(line).Faint())
		}
	}
}
