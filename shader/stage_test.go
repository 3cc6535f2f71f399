package shader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStage(t *testing.T) {
	valid := map[string]Stage{
		"vert":     StageVertex,
		"vertex":   StageVertex,
		"geom":     StageGeometry,
		"geometry": StageGeometry,
		"frag":     StageFragment,
		"fragment": StageFragment,
	}
	for input, exp := range valid {
		stage, err := ParseStage(input)
		if assert.NoError(t, err, input) {
			assert.Equal(t, exp, stage)
		}
	}

	for _, input := range []string{"", "tess", "FRAG", " frag"} {
		_, err := ParseStage(input)
		assert.Error(t, err, input)
	}
}
