package jmdict

import (
	"fmt"

	"github.com/heartmarshall/kotoba-backend/internal/domain"
)

// TagTable accumulates the tags referenced by the dictionary, in order of first
// use, together with the descriptions declared in the DTD.
//
// The table is owned by the Decoder that fills it and is complete once the
// decoder is exhausted.
type TagTable struct {
	defs  map[string]string
	index map[string]int
	tags  []domain.Tag
}

func newTagTable() *TagTable {
	return &TagTable{
		defs:  make(map[string]string),
		index: make(map[string]int),
	}
}

// declare registers DTD entity declarations. Earlier declarations win.
func (t *TagTable) declare(defs map[string]string) {
	for name, info := range defs {
		if _, ok := t.defs[name]; !ok {
			t.defs[name] = info
		}
	}
}

// record adds name to the table the first time it is seen. Recording a name
// that was already seen is a no-op. A name without a DTD declaration is an
// error.
func (t *TagTable) record(name string) error {
	if _, ok := t.index[name]; ok {
		return nil
	}
	info, ok := t.defs[name]
	if !ok {
		return fmt.Errorf("undeclared entity %q", name)
	}
	t.index[name] = len(t.tags)
	t.tags = append(t.tags, domain.Tag{Name: name, Info: info})
	return nil
}

// Lookup returns the tag recorded under name.
func (t *TagTable) Lookup(name string) (domain.Tag, bool) {
	i, ok := t.index[name]
	if !ok {
		return domain.Tag{}, false
	}
	return t.tags[i], true
}

// Tags returns the recorded tags in order of first use.
func (t *TagTable) Tags() []domain.Tag {
	out := make([]domain.Tag, len(t.tags))
	copy(out, t.tags)
	return out
}

// Len returns the number of recorded tags.
func (t *TagTable) Len() int {
	return len(t.tags)
}
