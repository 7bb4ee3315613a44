package importer

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/heartmarshall/kotoba-backend/internal/domain"
	"github.com/heartmarshall/kotoba-backend/internal/frequency"
	"github.com/heartmarshall/kotoba-backend/internal/ranking"
)

// Args computes the ranking arguments of an entry.
func Args(entry *domain.Entry, tables frequency.Tables) ranking.Args {
	args := ranking.Args{Priority: entry.PriorityTags()}
	if freq, reliable, ok := frequency.Resolve(entry, tables); ok {
		args.Frequency = &freq
		args.IsFrequencyReliable = reliable
	}
	return args
}

type rankItem struct {
	entry *domain.Entry
	key   ranking.Key
	text  string
}

// Rank sorts entries by relevance and assigns positions 1..N.
//
// Entries that rank equal are ordered by display text and then by sequence,
// so the result is the same for the same input in any order.
func Rank(entries []domain.Entry, tables frequency.Tables) []domain.RankedEntry {
	items := make([]rankItem, len(entries))
	for i := range entries {
		e := &entries[i]
		items[i] = rankItem{entry: e, key: ranking.NewKey(Args(e, tables)), text: e.Text()}
	}

	slices.SortStableFunc(items, func(a, b rankItem) int {
		return cmp.Or(
			ranking.CompareKeys(a.key, b.key),
			strings.Compare(a.text, b.text),
			compareSequence(a.entry.Sequence, b.entry.Sequence),
		)
	})

	out := make([]domain.RankedEntry, len(items))
	for i, it := range items {
		out[i] = domain.RankedEntry{Entry: *it.entry, Position: int64(i + 1)}
	}
	return out
}

// compareSequence orders numeric sequences by value. Non-numeric sequences
// sort after numeric ones, in string order.
func compareSequence(a, b string) int {
	na, errA := strconv.ParseUint(a, 10, 64)
	nb, errB := strconv.ParseUint(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		return cmp.Compare(na, nb)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}
