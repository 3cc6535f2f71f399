package shader

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, size int) string {
	path := filepath.Join(t.TempDir(), "shader.glsl")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte{'x'}, size), 0o644))
	return path
}

func TestReadSource(t *testing.T) {
	src, err := ReadSource("../testdata/glsl/f-box.glsl", DefaultCapacity)
	require.NoError(t, err)
	assert.Equal(t, "../testdata/glsl/f-box.glsl", src.Name)
	assert.Contains(t, string(src.Code), "void main()")

	info, err := os.Stat("../testdata/glsl/f-box.glsl")
	require.NoError(t, err)
	assert.EqualValues(t, info.Size(), len(src.Code))
}

func TestReadSourceEmpty(t *testing.T) {
	src, err := ReadSource("../testdata/glsl/empty.glsl", DefaultCapacity)
	require.NoError(t, err)
	assert.Len(t, src.Code, 0)
}

func TestReadSourceCapacity(t *testing.T) {
	const capacity = 64

	t.Run("one byte margin", func(t *testing.T) {
		src, err := ReadSource(writeTemp(t, capacity-1), capacity)
		require.NoError(t, err)
		assert.Len(t, src.Code, capacity-1)
	})

	for name, size := range map[string]int{"exact": capacity, "larger": capacity * 3} {
		t.Run(name, func(t *testing.T) {
			path := writeTemp(t, size)
			_, err := ReadSource(path, capacity)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNoRoom))
			assert.Equal(t, "not enough room for "+path, err.Error())
		})
	}
}

func TestReadSourceMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.glsl")
	_, err := ReadSource(path, DefaultCapacity)
	require.Error(t, err)

	var serr *SourceError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "open", serr.Op)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.True(t, strings.HasPrefix(err.Error(), "can't open "+path+": "), err.Error())
}

func TestReadSourceDirectory(t *testing.T) {
	dir := t.TempDir()
	_, err := ReadSource(dir, DefaultCapacity)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "can't read "+dir), err.Error())
}

func TestReadSourceInvalidCapacity(t *testing.T) {
	_, err := ReadSource("../testdata/glsl/f-box.glsl", 0)
	assert.Error(t, err)

	capacity := math.MaxInt32
	capacity++
	_, err = ReadSource("../testdata/glsl/f-box.glsl", capacity)
	assert.Error(t, err)
}

func TestReadBounded(t *testing.T) {
	b, err := ReadBounded(strings.NewReader("void main() {}"), 32)
	require.NoError(t, err)
	assert.Equal(t, "void main() {}", string(b))

	b, err = ReadBounded(strings.NewReader(""), 32)
	require.NoError(t, err)
	assert.Empty(t, b)

	_, err = ReadBounded(strings.NewReader(strings.Repeat("x", 32)), 32)
	assert.True(t, errors.Is(err, ErrNoRoom))

	_, err = ReadBounded(strings.NewReader(strings.Repeat("x", 33)), 32)
	assert.True(t, errors.Is(err, ErrNoRoom))
}
