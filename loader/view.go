package loader

import (
	"io"
	"slices"

	"github.com/enovales/winres"
	"github.com/enovales/winres/errors"
)

// View is a borrowed, read-only window onto resource bytes owned by a
// module. Every read checks that the module is still loaded and fails with
// errors.ErrInvalidHandle otherwise.
type View struct {
	mod  winres.Module
	data []byte
}

// Len returns the number of bytes in the view.
func (v View) Len() int {
	return len(v.data)
}

// Valid reports whether the view can still be read.
func (v View) Valid() bool {
	return v.mod != nil && v.mod.Valid()
}

// At returns the byte at offset i.
func (v View) At(i int) (byte, error) {
	if !v.Valid() {
		return 0, errors.InvalidHandle(errors.PhaseLoad, "view")
	}
	if i < 0 || i >= len(v.data) {
		return 0, errors.InvalidInput(errors.PhaseLoad, "offset out of range")
	}
	return v.data[i], nil
}

// ReadAt implements io.ReaderAt.
func (v View) ReadAt(p []byte, off int64) (int, error) {
	if !v.Valid() {
		return 0, errors.InvalidHandle(errors.PhaseLoad, "view")
	}
	if off < 0 {
		return 0, errors.InvalidInput(errors.PhaseLoad, "negative offset")
	}
	if off >= int64(len(v.data)) {
		return 0, io.EOF
	}
	n := copy(p, v.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Reader returns a sequential reader over the view.
func (v View) Reader() *io.SectionReader {
	return io.NewSectionReader(v, 0, int64(len(v.data)))
}

// Copy returns the bytes in memory owned by the caller.
func (v View) Copy() ([]byte, error) {
	if !v.Valid() {
		return nil, errors.InvalidHandle(errors.PhaseLoad, "view")
	}
	if len(v.data) == 0 {
		return []byte{}, nil
	}
	return slices.Clone(v.data), nil
}
