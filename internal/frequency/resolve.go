package frequency

import "github.com/heartmarshall/kotoba-backend/internal/domain"

// Tables bundles both frequency corpora. Either may be nil.
type Tables struct {
	Innocent *InnocentCorpus
	WorldLex *WorldLexCorpus
}

// Lookup returns the combined frequency of text across both corpora. ok is
// false when neither corpus knows the word.
func (t Tables) Lookup(text string) (Entry, bool) {
	var (
		out   Entry
		found bool
	)
	if n, ok := t.Innocent.Lookup(text); ok {
		out.InnocentCorpus = &n
		found = true
	}
	if rec, ok := t.WorldLex.Lookup(text); ok {
		wl := rec.Frequency()
		out.Merge(Entry{WorldLex: &wl})
		found = true
	}
	return out, found
}

// best returns the most frequent of texts. The first text wins a tie.
func (t Tables) best(texts []string) (Entry, bool) {
	var (
		best  Entry
		found bool
	)
	for _, text := range texts {
		freq, ok := t.Lookup(text)
		if !ok {
			continue
		}
		if !found || freq.CompareTo(&best) < 0 {
			best = freq
			found = true
		}
	}
	return best, found
}

// Resolve picks the single frequency that represents entry, and whether that
// frequency can be trusted for ranking.
//
// Kanji forms are always reliable. Reading forms are reliable only when the
// entry is usually written in kana or has no kanji forms at all. The most
// frequent kanji form and the most frequent reading form compete; the higher
// one wins and carries the reliability of its kind, kanji on a tie.
//
// ok is false when no form of the entry appears in either corpus.
func Resolve(entry *domain.Entry, tables Tables) (freq Entry, reliable, ok bool) {
	kanjiTexts := make([]string, len(entry.Kanji))
	for i := range entry.Kanji {
		kanjiTexts[i] = entry.Kanji[i].Text
	}
	readingTexts := make([]string, len(entry.Reading))
	for i := range entry.Reading {
		readingTexts[i] = entry.Reading[i].Text
	}

	readingReliable := len(entry.Kanji) == 0 || entry.IsUsuallyKana()

	kanji, kanjiOK := tables.best(kanjiTexts)
	reading, readingOK := tables.best(readingTexts)

	switch {
	case !kanjiOK && !readingOK:
		return Entry{}, false, false
	case !readingOK:
		return kanji, true, true
	case !kanjiOK:
		return reading, readingReliable, true
	case reading.CompareTo(&kanji) < 0:
		return reading, readingReliable, true
	default:
		return kanji, true, true
	}
}
