// Package jmdict reads entries from the JMdict XML dictionary.
//
// Tag-like elements (misc, pos, field, dial, ke_inf, re_inf) hold entity
// references such as "&uk;". The decoder keeps the short entity name as the
// tag value and accumulates the long descriptions declared in the DTD in a
// TagTable that the caller reads once the entries are exhausted.
package jmdict

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"

	"github.com/heartmarshall/kotoba-backend/internal/domain"
)

// DefaultLanguage is the sense language retained when no other is configured.
const DefaultLanguage = "eng"

const entryElement = "entry"

// Option configures a Decoder.
type Option func(*Decoder)

// WithLanguage sets the language of the senses to retain. Senses in other
// languages are still scanned for tags.
func WithLanguage(lang string) Option {
	return func(d *Decoder) {
		if lang != "" {
			d.lang = lang
		}
	}
}

// Decoder is a forward-only reader of dictionary entries.
type Decoder struct {
	xml  *xml.Decoder
	lang string
	tags *TagTable
	err  error
}

// NewDecoder returns a decoder reading the uncompressed JMdict XML from r.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	xd := xml.NewDecoder(r)
	xd.Strict = true
	xd.Entity = map[string]string{}

	d := &Decoder{
		xml:  xd,
		lang: DefaultLanguage,
		tags: newTagTable(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Tags returns the tag table. It is complete once Next has returned io.EOF.
func (d *Decoder) Tags() *TagTable {
	return d.tags
}

// Next returns the next entry. It returns io.EOF when the document ends.
// Any other error is fatal and is returned again by every later call.
func (d *Decoder) Next() (domain.Entry, error) {
	if d.err != nil {
		return domain.Entry{}, d.err
	}
	entry, err := d.next()
	if err != nil {
		d.err = err
		return domain.Entry{}, err
	}
	return entry, nil
}

func (d *Decoder) next() (domain.Entry, error) {
	for {
		tok, err := d.xml.Token()
		if err == io.EOF {
			return domain.Entry{}, io.EOF
		}
		if err != nil {
			return domain.Entry{}, wrapXMLError(err, "")
		}

		switch t := tok.(type) {
		case xml.Directive:
			defs := parseEntities(t)
			if len(defs) == 0 {
				continue
			}
			d.tags.declare(defs)
			d.xml.Entity = identityEntities(d.tags.defs)

		case xml.StartElement:
			if t.Name.Local != entryElement {
				continue
			}
			var raw xmlEntry
			if err := d.xml.DecodeElement(&raw, &t); err != nil {
				return domain.Entry{}, wrapXMLError(err, entryElement)
			}
			return d.convert(&raw)
		}
	}
}

// All returns an iterator over the remaining entries. Iteration stops after
// the first error, which is yielded with a zero entry.
func (d *Decoder) All() iter.Seq2[domain.Entry, error] {
	return func(yield func(domain.Entry, error) bool) {
		for {
			entry, err := d.Next()
			if err == io.EOF {
				return
			}
			if !yield(entry, err) || err != nil {
				return
			}
		}
	}
}

// Result is a fully parsed dictionary.
type Result struct {
	Entries []domain.Entry
	Tags    []domain.Tag
}

// Parse reads every entry from r.
func Parse(r io.Reader, opts ...Option) (*Result, error) {
	d := NewDecoder(r, opts...)

	var entries []domain.Entry
	for entry, err := range d.All() {
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return &Result{Entries: entries, Tags: d.tags.Tags()}, nil
}

func wrapXMLError(err error, element string) error {
	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) {
		if element == "" {
			element = "xml"
		}
		return &domain.SourceFormatError{
			Element: element,
			Detail:  fmt.Sprintf("line %d: %s", syntaxErr.Line, syntaxErr.Msg),
		}
	}
	return fmt.Errorf("jmdict: read: %w", err)
}

func (d *Decoder) convert(raw *xmlEntry) (domain.Entry, error) {
	seq := strings.TrimSpace(raw.Sequence)
	if seq == "" {
		return domain.Entry{}, &domain.SourceFormatError{Element: "ent_seq", Detail: "missing entry sequence"}
	}

	if len(raw.Kanji) == 0 && len(raw.Reading) == 0 {
		return domain.Entry{}, &domain.SourceFormatError{Sequence: seq, Element: "r_ele", Detail: "entry has no kanji or reading form"}
	}

	entry := domain.Entry{Sequence: seq}

	for _, k := range raw.Kanji {
		if err := d.checkPriority(seq, "ke_pri", k.Priority); err != nil {
			return domain.Entry{}, err
		}
		if err := d.recordTags(seq, "ke_inf", k.Info); err != nil {
			return domain.Entry{}, err
		}
		entry.Kanji = append(entry.Kanji, domain.Kanji{
			Text:     k.Text,
			Priority: nonEmpty(k.Priority),
			Info:     nonEmpty(k.Info),
		})
	}

	for _, r := range raw.Reading {
		if err := d.checkPriority(seq, "re_pri", r.Priority); err != nil {
			return domain.Entry{}, err
		}
		if err := d.recordTags(seq, "re_inf", r.Info); err != nil {
			return domain.Entry{}, err
		}
		entry.Reading = append(entry.Reading, domain.Reading{
			Text:     r.Text,
			Priority: nonEmpty(r.Priority),
			Info:     nonEmpty(r.Info),
			NoKanji:  r.NoKanji != nil,
		})
	}

	var pos []string
	for i := range raw.Sense {
		s := &raw.Sense[i]

		// A sense without its own part of speech continues the previous one.
		if len(s.PartOfSpeech) > 0 {
			pos = s.PartOfSpeech
		}

		for _, group := range []struct {
			element string
			names   []string
		}{
			{"pos", s.PartOfSpeech},
			{"field", s.Field},
			{"misc", s.Misc},
			{"dial", s.Dialect},
		} {
			if err := d.recordTags(seq, group.element, group.names); err != nil {
				return domain.Entry{}, err
			}
		}
		if slices.ContainsFunc(s.Misc, isUsuallyKana) {
			entry.UsuallyKana = true
		}

		sense := domain.Sense{
			Language:     d.lang,
			Misc:         nonEmpty(s.Misc),
			PartOfSpeech: nonEmpty(pos),
		}
		for _, g := range s.Gloss {
			lang := g.Language
			if lang == "" {
				lang = DefaultLanguage
			}
			if lang != d.lang {
				continue
			}
			sense.Glossary = append(sense.Glossary, domain.Glossary{
				Type:     g.Type,
				Text:     g.Text,
				Language: lang,
			})
		}
		if sense.IsEmpty() {
			continue
		}
		entry.Sense = append(entry.Sense, sense)
	}

	return entry, nil
}

func (d *Decoder) checkPriority(seq, element string, tags []string) error {
	for _, tag := range tags {
		if !domain.IsPriorityTag(strings.TrimSpace(tag)) {
			return &domain.SourceFormatError{
				Sequence: seq,
				Element:  element,
				Detail:   fmt.Sprintf("invalid priority tag %q", tag),
			}
		}
	}
	return nil
}

func (d *Decoder) recordTags(seq, element string, names []string) error {
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if err := d.tags.record(name); err != nil {
			return &domain.SourceFormatError{Sequence: seq, Element: element, Detail: err.Error()}
		}
	}
	return nil
}

func isUsuallyKana(name string) bool {
	return strings.TrimSpace(name) == domain.UsuallyKanaTag
}

// nonEmpty trims every item and drops the empty ones. It returns nil when
// nothing is left.
func nonEmpty(items []string) []string {
	var out []string
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
