// Package archive reads named entries from zip containers.
package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/h2non/filetype"
	"go.uber.org/multierr"
)

// DefaultMaxEntrySize limits amount of memory single entry could take after
// decompression.
const DefaultMaxEntrySize = 64 << 20

// enough for any signature filetype knows about
const headSize = 262

// Archive is an open read handle to zip container. It is never modified.
type Archive struct {
	name    string
	r       *zip.Reader
	closer  io.Closer
	maxSize uint64
}

// Option modifies Archive behavior.
type Option func(*Archive)

// WithMaxEntrySize sets maximum declared uncompressed size of entry ReadEntry
// would accept. Zero means DefaultMaxEntrySize.
func WithMaxEntrySize(size uint64) Option {
	return func(a *Archive) {
		if size > 0 {
			a.maxSize = size
		}
	}
}

// Open opens zip container at path. Caller must Close returned archive.
func Open(path string, options ...Option) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}

	fi, err := f.Stat()
	if err != nil {
		return nil, &OpenError{Path: path, Err: multierr.Append(err, f.Close())}
	}
	if !fi.Mode().IsRegular() {
		return nil, &OpenError{Path: path, Err: multierr.Append(fmt.Errorf("unexpected file mode %s", fi.Mode()), f.Close())}
	}

	head := make([]byte, headSize)
	n, err := f.ReadAt(head, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, &OpenError{Path: path, Err: multierr.Append(err, f.Close())}
	}
	if err := checkSignature(head[:n]); err != nil {
		return nil, &OpenError{Path: path, Err: multierr.Append(err, f.Close())}
	}

	r, err := zip.NewReader(f, fi.Size())
	if err != nil {
		return nil, &OpenError{Path: path, Err: multierr.Append(err, f.Close())}
	}
	return newArchive(path, r, f, options), nil
}

// OpenBytes opens in-memory zip container. Name is only used in diagnostics.
func OpenBytes(name string, data []byte, options ...Option) (*Archive, error) {
	if err := checkSignature(data); err != nil {
		return nil, &OpenError{Path: name, Err: err}
	}
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &OpenError{Path: name, Err: err}
	}
	return newArchive(name, r, nil, options), nil
}

func newArchive(name string, r *zip.Reader, closer io.Closer, options []Option) *Archive {
	a := &Archive{name: name, r: r, closer: closer, maxSize: DefaultMaxEntrySize}
	for _, setOpt := range options {
		setOpt(a)
	}
	return a
}

func checkSignature(head []byte) error {
	if filetype.Is(head, "zip") {
		return nil
	}
	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return ErrNotZip
	}
	return fmt.Errorf("%w (detected %s)", ErrNotZip, kind.MIME.Value)
}

// Name returns path or name archive was opened with.
func (a *Archive) Name() string {
	return a.name
}

// Close releases underlying file handle if any. It is safe to call Close more
// than once.
func (a *Archive) Close() error {
	if a == nil || a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}

// Entries returns names of all regular entries in archive order.
func (a *Archive) Entries() []string {
	names := make([]string, 0, len(a.r.File))
	for _, f := range a.r.File {
		if !f.FileInfo().IsDir() {
			names = append(names, f.Name)
		}
	}
	return names
}

// ReadEntry returns decompressed content of the named entry. Package part
// names are case-insensitive, so exact match is preferred but not required.
func (a *Archive) ReadEntry(name string) ([]byte, error) {
	if !isSafePath(name) {
		return nil, &EntryNotFoundError{Name: name}
	}

	f := a.find(name)
	if f == nil {
		return nil, &EntryNotFoundError{Name: name}
	}

	if f.UncompressedSize64 > a.maxSize {
		return nil, &EntryReadError{Name: f.Name, Declared: f.UncompressedSize64,
			Err: fmt.Errorf("declared size exceeds limit of %d bytes", a.maxSize)}
	}

	rc, err := f.Open()
	if err != nil {
		return nil, &EntryReadError{Name: f.Name, Declared: f.UncompressedSize64, Err: err}
	}
	defer rc.Close()

	buf := make([]byte, f.UncompressedSize64)
	n, err := io.ReadFull(rc, buf)
	if err != nil {
		return nil, &EntryReadError{Name: f.Name, Declared: f.UncompressedSize64, Read: n, Err: err}
	}
	// reaching EOF makes zip reader verify checksum and actual size
	if _, err := rc.Read(make([]byte, 1)); err != io.EOF {
		if err == nil {
			err = errors.New("entry is longer than declared")
		}
		return nil, &EntryReadError{Name: f.Name, Declared: f.UncompressedSize64, Read: n, Err: err}
	}
	return buf, nil
}

func (a *Archive) find(name string) *zip.File {
	var folded *zip.File
	for _, f := range a.r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if f.Name == name {
			return f
		}
		if folded == nil && strings.EqualFold(f.Name, name) {
			folded = f
		}
	}
	return folded
}

// ReadEntry opens archive at path, reads single entry and closes archive on
// every path out.
func ReadEntry(path, name string, options ...Option) (data []byte, err error) {
	a, err := Open(path, options...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil && err == nil {
			data, err = nil, &OpenError{Path: path, Err: cerr}
		}
	}()
	return a.ReadEntry(name)
}

// ReadEntryFromBytes is ReadEntry for in-memory containers.
func ReadEntryFromBytes(data []byte, name string, options ...Option) ([]byte, error) {
	a, err := OpenBytes("<memory>", data, options...)
	if err != nil {
		return nil, err
	}
	return a.ReadEntry(name)
}

// isSafePath returns false for names that could escape extraction directory:
// absolute paths and those containing ".." components. Such names are never
// valid package parts.
func isSafePath(name string) bool {
	if len(name) == 0 || path.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
