package importer

import (
	"github.com/heartmarshall/kotoba-backend/internal/domain"
	"github.com/heartmarshall/kotoba-backend/internal/frequency"
)

// Dataset is everything an import writes.
type Dataset struct {
	// Entries in rank order; Position runs from 1 to len(Entries).
	Entries []domain.RankedEntry

	Tags      []domain.Tag
	Frequency []frequency.Row
}

// Counts returns the number of form and sense rows the dataset produces.
func (ds *Dataset) Counts() (kanji, reading, sense int) {
	for i := range ds.Entries {
		kanji += len(ds.Entries[i].Kanji)
		reading += len(ds.Entries[i].Reading)
		sense += len(ds.Entries[i].Sense)
	}
	return kanji, reading, sense
}
