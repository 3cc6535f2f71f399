package shader

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
)

type DebugMessage struct {
	ID       uint32
	Source   uint32
	Type     uint32
	Severity uint32
	Message  string
}

func (dm DebugMessage) SeverityString() string {
	switch dm.Severity {
	case gl.DEBUG_SEVERITY_HIGH:
		return "high"
	case gl.DEBUG_SEVERITY_MEDIUM:
		return "medium"
	case gl.DEBUG_SEVERITY_LOW:
		return "low"
	case gl.DEBUG_SEVERITY_NOTIFICATION:
		return "note"
	default:
		return ""
	}
}

func (dm DebugMessage) String() string {
	return fmt.Sprintf("[%s] %s", dm.SeverityString(), dm.Message)
}

// DebugOutput routes the driver's debug messages to the returned channel.
// Messages are delivered synchronously from within the GL call that caused
// them and dropped once the channel is full.
//
// The second return value is false if the current context does not support
// debug output, in which case the channel is nil.
func DebugOutput() (<-chan DebugMessage, bool) {
	if !debugOutputSupported() {
		return nil, false
	}
	ch := make(chan DebugMessage, 32)
	gl.Enable(gl.DEBUG_OUTPUT)
	gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
	gl.DebugMessageControl(gl.DONT_CARE, gl.DONT_CARE, gl.DONT_CARE, 0, nil, true)
	gl.DebugMessageCallback(func(source uint32, typ uint32, id uint32, severity uint32, length int32, message string, userParam unsafe.Pointer) {
		dm := DebugMessage{
			ID:       id,
			Source:   source,
			Type:     typ,
			Severity: severity,
			Message:  message,
		}
		select {
		case ch <- dm:
		default:
		}
	}, nil)
	return ch, true
}

func debugOutputSupported() bool {
	var major, minor int32
	gl.GetIntegerv(gl.MAJOR_VERSION, &major)
	gl.GetIntegerv(gl.MINOR_VERSION, &minor)
	if major > 4 || major == 4 && minor >= 3 {
		return true
	}
	return hasExtension("GL_KHR_debug")
}

func hasExtension(name string) bool {
	var n int32
	gl.GetIntegerv(gl.NUM_EXTENSIONS, &n)
	for i := int32(0); i < n; i++ {
		if gl.GoStr(gl.GetStringi(gl.EXTENSIONS, uint32(i))) == name {
			return true
		}
	}
	return false
}

// DriverInfo identifies the OpenGL implementation behind the current context.
type DriverInfo struct {
	Vendor      string
	Renderer    string
	Version     string
	GLSLVersion string
}

// QueryDriverInfo requires a current context.
func QueryDriverInfo() DriverInfo {
	return DriverInfo{
		Vendor:      gl.GoStr(gl.GetString(gl.VENDOR)),
		Renderer:    gl.GoStr(gl.GetString(gl.RENDERER)),
		Version:     gl.GoStr(gl.GetString(gl.VERSION)),
		GLSLVersion: gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
	}
}
