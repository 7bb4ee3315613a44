// Package importer orchestrates the dictionary import: it loads the sources,
// ranks every entry and writes the ranked dataset in one transaction.
package importer

import (
	"context"
	"io"
)

// Repository is the storage contract consumed by the pipeline.
// Implemented by dictionary.Repo.
type Repository interface {
	// HasEntries reports whether the destination already holds an import.
	HasEntries(ctx context.Context) (bool, error)

	// WriteDataset stores the whole dataset atomically. On error nothing
	// is written.
	WriteDataset(ctx context.Context, ds *Dataset) error
}

// Sources opens the raw source streams. Implemented by sourcedata.Dir.
type Sources interface {
	OpenJMdict() (io.ReadCloser, error)
	OpenInnocentCorpus() (io.ReadCloser, error)
	OpenWorldLex() (io.ReadCloser, error)
}
