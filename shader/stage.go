package shader

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// Stage is a programmable pipeline stage a shader object is created for.
type Stage string

const (
	StageVertex   Stage = "vert"
	StageGeometry Stage = "geom"
	StageFragment Stage = "frag"
)

// ParseStage accepts both the short and the long name of a stage.
func ParseStage(s string) (Stage, error) {
	switch s {
	case "vert", "vertex":
		return StageVertex, nil
	case "geom", "geometry":
		return StageGeometry, nil
	case "frag", "fragment":
		return StageFragment, nil
	}
	return "", fmt.Errorf("invalid pipeline stage: %q", s)
}

func (stage Stage) glEnum() (uint32, error) {
	switch stage {
	case StageVertex:
		return gl.VERTEX_SHADER, nil
	case StageGeometry:
		return gl.GEOMETRY_SHADER, nil
	case StageFragment:
		return gl.FRAGMENT_SHADER, nil
	}
	return 0, fmt.Errorf("invalid pipeline stage: %q", string(stage))
}
