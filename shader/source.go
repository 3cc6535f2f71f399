package shader

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// DefaultCapacity is the number of bytes a shader source must stay below.
const DefaultCapacity = 8192

// ErrNoRoom is reported when a source does not fit in the read buffer with at
// least one byte to spare.
var ErrNoRoom = errors.New("not enough room")

// Source is the contents of a single shader source file.
type Source struct {
	Name string
	Code []byte
}

// SourceError describes a failure to load a shader source.
type SourceError struct {
	Op   string
	Path string
	Err  error
}

func (err *SourceError) Error() string {
	if errors.Is(err.Err, ErrNoRoom) {
		return fmt.Sprintf("not enough room for %s", err.Path)
	}
	return fmt.Sprintf("can't %s %s: %v", err.Op, err.Path, err.Err)
}

func (err *SourceError) Unwrap() error {
	return err.Err
}

// ReadSource loads the shader source at path, which must be strictly smaller
// than capacity bytes. A path of "-" reads from standard input.
//
// Regular files are sized up front and read into a buffer of exactly that
// size. Any difference between the size on disk and the number of bytes read
// is reported as a read error.
func ReadSource(path string, capacity int) (Source, error) {
	if capacity <= 0 || capacity > math.MaxInt32 {
		return Source{}, fmt.Errorf("invalid source capacity: %d", capacity)
	}

	var fd *os.File
	if path == "-" {
		fd = os.Stdin
	} else {
		var err error
		if fd, err = os.Open(path); err != nil {
			return Source{}, &SourceError{Op: "open", Path: path, Err: unwrapPath(err)}
		}
		defer fd.Close()
	}

	code, err := readFile(fd, capacity)
	if err != nil {
		return Source{}, &SourceError{Op: "read", Path: path, Err: unwrapPath(err)}
	}
	return Source{Name: path, Code: code}, nil
}

func readFile(fd *os.File, capacity int) ([]byte, error) {
	info, err := fd.Stat()
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return ReadBounded(fd, capacity)
	}

	size := info.Size()
	if size >= int64(capacity) {
		return nil, ErrNoRoom
	}
	buf := make([]byte, size)
	if n, err := io.ReadFull(fd, buf); err != nil {
		return nil, fmt.Errorf("got %d of %d bytes: %w", n, size, err)
	}
	var extra [1]byte
	if n, _ := fd.Read(extra[:]); n != 0 {
		return nil, fmt.Errorf("file grew beyond %d bytes while reading", size)
	}
	return buf, nil
}

// ReadBounded reads at most capacity bytes from r. Filling the buffer
// completely is treated as ErrNoRoom since a truncated source can not be told
// apart from one that fits exactly.
func ReadBounded(r io.Reader, capacity int) ([]byte, error) {
	buf := make([]byte, capacity)
	n, err := io.ReadFull(r, buf)
	switch {
	case err == nil:
		return nil, ErrNoRoom
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return buf[:n], nil
	default:
		return nil, err
	}
}

// unwrapPath strips the *os.PathError wrapper, the path is already part of
// the SourceError message.
func unwrapPath(err error) error {
	var perr *os.PathError
	if errors.As(err, &perr) {
		return perr.Err
	}
	return err
}
