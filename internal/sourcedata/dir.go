package sourcedata

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Files names the source files inside the data directory.
type Files struct {
	JMdict          string
	WorldLexArchive string
	WorldLexMember  string
	InnocentArchive string
	InnocentMember  string
}

// Dir is a located source data directory.
type Dir struct {
	root  string
	files Files
}

// Open locates the data directory and checks that every source file is
// present, so that a missing file fails before any parsing starts.
func Open(dir string, files Files) (*Dir, error) {
	root, err := Locate(dir)
	if err != nil {
		return nil, err
	}

	d := &Dir{root: root, files: files}
	if err := d.check(); err != nil {
		return nil, err
	}
	return d, nil
}

// Root returns the absolute path of the directory.
func (d *Dir) Root() string {
	return d.root
}

func (d *Dir) path(name string) string {
	return filepath.Join(d.root, name)
}

func (d *Dir) check() error {
	for _, name := range []string{d.files.JMdict, d.files.WorldLexArchive, d.files.InnocentArchive} {
		if _, err := os.Stat(d.path(name)); err != nil {
			return fmt.Errorf("sourcedata: %w", err)
		}
	}
	if err := checkZipMember(d.path(d.files.WorldLexArchive), d.files.WorldLexMember); err != nil {
		return err
	}
	return checkZipMember(d.path(d.files.InnocentArchive), d.files.InnocentMember)
}

// OpenJMdict opens the decompressed dictionary XML.
func (d *Dir) OpenJMdict() (io.ReadCloser, error) {
	return OpenGzip(d.path(d.files.JMdict))
}

// OpenInnocentCorpus opens the Innocent corpus word frequency report.
func (d *Dir) OpenInnocentCorpus() (io.ReadCloser, error) {
	return OpenZipMember(d.path(d.files.InnocentArchive), d.files.InnocentMember)
}

// OpenWorldLex opens the WorldLex frequency table.
func (d *Dir) OpenWorldLex() (io.ReadCloser, error) {
	return OpenZipMember(d.path(d.files.WorldLexArchive), d.files.WorldLexMember)
}
