package domain

import (
	"fmt"
	"strings"
)

// Reserved separators for the stored glossary encoding. Neither may appear in
// glossary types or texts; the source data guarantees it, so nothing is escaped.
const (
	GlossaryEntrySeparator = ";;"
	GlossaryFieldSeparator = "::"
)

// EncodeGlossary encodes a sense glossary as "type::text;;type::text".
func EncodeGlossary(glossary []Glossary) string {
	var b strings.Builder
	for i, g := range glossary {
		if i > 0 {
			b.WriteString(GlossaryEntrySeparator)
		}
		b.WriteString(g.Type)
		b.WriteString(GlossaryFieldSeparator)
		b.WriteString(g.Text)
	}
	return b.String()
}

// DecodeGlossary reverses EncodeGlossary. The glossary language is not part of
// the encoding and is set to lang.
func DecodeGlossary(s, lang string) ([]Glossary, error) {
	if s == "" {
		return nil, nil
	}
	items := strings.Split(s, GlossaryEntrySeparator)
	out := make([]Glossary, 0, len(items))
	for _, item := range items {
		if item == "" {
			continue
		}
		typ, text, ok := strings.Cut(item, GlossaryFieldSeparator)
		if !ok {
			return nil, fmt.Errorf("glossary %q: missing field separator: %w", item, ErrValidation)
		}
		out = append(out, Glossary{Type: typ, Text: text, Language: lang})
	}
	return out, nil
}
