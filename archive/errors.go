package archive

import (
	"errors"
	"fmt"
)

// ErrNotZip is wrapped by OpenError when the container signature does not
// look like zip.
var ErrNotZip = errors.New("not a zip container")

// OpenError is returned when archive cannot be opened: path does not exist,
// cannot be read or is not a zip container.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("unable to open archive (%s): %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// EntryNotFoundError is returned when requested entry is absent from the
// archive.
type EntryNotFoundError struct {
	Name string
}

func (e *EntryNotFoundError) Error() string {
	return fmt.Sprintf("entry %q not found in archive", e.Name)
}

// EntryReadError is returned when entry exists but its content could not be
// fully decompressed.
type EntryReadError struct {
	Name     string
	Declared uint64
	Read     int
	Err      error
}

func (e *EntryReadError) Error() string {
	return fmt.Sprintf("unable to read entry %q (read %d of %d bytes): %v", e.Name, e.Read, e.Declared, e.Err)
}

func (e *EntryReadError) Unwrap() error { return e.Err }
