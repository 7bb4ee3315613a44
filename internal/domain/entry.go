package domain

import "slices"

// UsuallyKanaTag marks a sense whose word is usually written using kana alone.
const UsuallyKanaTag = "uk"

// Entry is a single dictionary entry as read from the source dictionary.
type Entry struct {
	// Sequence is the stable external id of the entry, kept as text.
	Sequence string

	Kanji   []Kanji
	Reading []Reading
	Sense   []Sense

	// UsuallyKana is set when a sense in any language carries the
	// "usually kana" tag, including senses not retained in Sense.
	UsuallyKana bool
}

// Kanji is a kanji writing of an entry.
type Kanji struct {
	Text     string
	Priority []string
	Info     []string
}

// Reading is a kana reading of an entry.
type Reading struct {
	Text     string
	Priority []string
	Info     []string
	NoKanji  bool
}

// Sense is one meaning of an entry in a single language.
type Sense struct {
	Language     string
	Misc         []string
	PartOfSpeech []string
	Glossary     []Glossary
}

// Glossary is a single gloss of a sense.
type Glossary struct {
	Type     string
	Text     string
	Language string
}

// RankedEntry is an entry with its position in the global relevance order.
// Position is dense and 1-based.
type RankedEntry struct {
	Entry
	Position int64
}

// Text returns the primary display text: the first kanji text, or the first
// reading text for kana-only entries.
func (e *Entry) Text() string {
	if len(e.Kanji) > 0 {
		return e.Kanji[0].Text
	}
	if len(e.Reading) > 0 {
		return e.Reading[0].Text
	}
	return ""
}

// IsUsuallyKana reports whether any sense carries the "usually kana" tag.
func (e *Entry) IsUsuallyKana() bool {
	if e.UsuallyKana {
		return true
	}
	for i := range e.Sense {
		if slices.Contains(e.Sense[i].Misc, UsuallyKanaTag) {
			return true
		}
	}
	return false
}

// PriorityTags returns the union of the kanji and reading priority tags.
// Order is not significant.
func (e *Entry) PriorityTags() []string {
	var out []string
	seen := make(map[string]struct{})
	add := func(tags []string) {
		for _, tag := range tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	for i := range e.Kanji {
		add(e.Kanji[i].Priority)
	}
	for i := range e.Reading {
		add(e.Reading[i].Priority)
	}
	return out
}

// FormTexts returns the text of every kanji and reading form, kanji first.
func (e *Entry) FormTexts() []string {
	out := make([]string, 0, len(e.Kanji)+len(e.Reading))
	for i := range e.Kanji {
		out = append(out, e.Kanji[i].Text)
	}
	for i := range e.Reading {
		out = append(out, e.Reading[i].Text)
	}
	return out
}

// IsEmpty returns true if the sense has no glossary.
func (s *Sense) IsEmpty() bool {
	return len(s.Glossary) == 0
}
