// Package frequency loads word frequency corpora and resolves the single
// representative frequency used to rank a dictionary entry.
package frequency

import "cmp"

// Entry is the frequency information known for a single word. A nil field
// means the word is absent from that corpus.
type Entry struct {
	InnocentCorpus *int64
	WorldLex       *WorldLex
}

// WorldLex holds the per-category occurrence counts of a word in the WorldLex
// corpus. The per-million figures are informational and never ranked on.
type WorldLex struct {
	Blog    int64
	News    int64
	Twitter int64

	BlogPerMillion    float64
	NewsPerMillion    float64
	TwitterPerMillion float64
}

// Sum returns the total occurrence count across all categories.
func (w *WorldLex) Sum() int64 {
	if w == nil {
		return 0
	}
	return w.Blog + w.News + w.Twitter
}

func (e *Entry) innocent() int64 {
	if e == nil || e.InnocentCorpus == nil {
		return 0
	}
	return *e.InnocentCorpus
}

func (e *Entry) worldLexSum() int64 {
	if e == nil {
		return 0
	}
	return e.WorldLex.Sum()
}

// IsEmpty reports whether the entry carries no usable frequency: the corpus
// count is absent or zero and every WorldLex count is absent or zero.
// A nil entry is empty.
func (e *Entry) IsEmpty() bool {
	return e.innocent() == 0 && e.worldLexSum() == 0
}

// Merge fills the corpora absent from e with the ones present in other.
func (e *Entry) Merge(other Entry) {
	if e.InnocentCorpus == nil {
		e.InnocentCorpus = other.InnocentCorpus
	}
	if e.WorldLex == nil {
		e.WorldLex = other.WorldLex
	}
}

// CompareTo orders entries by relevance, higher frequency first. It returns a
// negative value when e ranks before other.
//
// The InnocentCorpus count is compared first; on a tie the WorldLex sum
// decides. How the WorldLex sum is split across categories is ignored. Absent
// values count as zero, and either side may be nil.
func (e *Entry) CompareTo(other *Entry) int {
	return cmp.Or(
		cmp.Compare(other.innocent(), e.innocent()),
		cmp.Compare(other.worldLexSum(), e.worldLexSum()),
	)
}
