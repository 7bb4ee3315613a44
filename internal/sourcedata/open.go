package sourcedata

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
)

// ErrMemberNotFound is returned when a zip archive lacks the requested file.
var ErrMemberNotFound = errors.New("archive member not found")

// readCloser closes the decompressing reader and the underlying file.
type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r *readCloser) Close() error {
	var errs []error
	for _, c := range r.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// OpenGzip opens a gzip compressed file for reading.
func OpenGzip(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sourcedata: open %s: %w", path, err)
	}

	zr, err := gzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("sourcedata: gzip %s: %w", path, err)
	}

	return &readCloser{Reader: zr, closers: []io.Closer{zr, f}}, nil
}

// OpenZipMember opens the file named member inside the zip archive.
func OpenZipMember(archive, member string) (io.ReadCloser, error) {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return nil, fmt.Errorf("sourcedata: open %s: %w", archive, err)
	}

	f, err := findMember(&zr.Reader, member)
	if err != nil {
		_ = zr.Close()
		return nil, fmt.Errorf("sourcedata: %s: %w", archive, err)
	}

	rc, err := f.Open()
	if err != nil {
		_ = zr.Close()
		return nil, fmt.Errorf("sourcedata: %s: open %s: %w", archive, member, err)
	}

	return &readCloser{Reader: rc, closers: []io.Closer{rc, zr}}, nil
}

func findMember(r *zip.Reader, member string) (*zip.File, error) {
	for _, f := range r.File {
		if f.Name == member {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrMemberNotFound, member)
}

// checkZipMember verifies that the archive can be read and contains member.
func checkZipMember(archive, member string) error {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("sourcedata: open %s: %w", archive, err)
	}
	defer zr.Close()

	if _, err := findMember(&zr.Reader, member); err != nil {
		return fmt.Errorf("sourcedata: %s: %w", archive, err)
	}
	return nil
}
