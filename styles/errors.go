package styles

import (
	"errors"
	"fmt"

	"dsx/archive"
)

// FileAccessError reports that container does not exist or cannot be opened
// as zip (not a zip, permission denied, etc.).
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("unable to access document (%s): %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

// MissingPartError reports that container was opened but has no styles part,
// which usually means it is not a word-processing document.
type MissingPartError struct {
	Path string
	Part string
	Err  error
}

func (e *MissingPartError) Error() string {
	return fmt.Sprintf("document (%s) has no %s part, not a word-processing document", e.Path, e.Part)
}

func (e *MissingPartError) Unwrap() error { return e.Err }

// CorruptPartError reports that styles part could not be fully decompressed.
type CorruptPartError struct {
	Path string
	Part string
	Err  error
}

func (e *CorruptPartError) Error() string {
	return fmt.Sprintf("document (%s) has corrupted %s part: %v", e.Path, e.Part, e.Err)
}

func (e *CorruptPartError) Unwrap() error { return e.Err }

// MalformedXMLError reports that styles part is not well-formed XML.
type MalformedXMLError struct {
	Path string
	Part string
	Err  error
}

func (e *MalformedXMLError) Error() string {
	return fmt.Sprintf("document (%s) has malformed %s part: %v", e.Path, e.Part, e.Err)
}

func (e *MalformedXMLError) Unwrap() error { return e.Err }

// classifyArchiveError maps archive level failures onto extraction errors.
func classifyArchiveError(path, part string, err error) error {
	var (
		nf *archive.EntryNotFoundError
		re *archive.EntryReadError
	)
	switch {
	case errors.As(err, &nf):
		return &MissingPartError{Path: path, Part: part, Err: err}
	case errors.As(err, &re):
		return &CorruptPartError{Path: path, Part: part, Err: err}
	default:
		return &FileAccessError{Path: path, Err: err}
	}
}
