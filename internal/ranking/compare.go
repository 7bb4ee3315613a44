package ranking

import (
	"cmp"

	"github.com/heartmarshall/kotoba-backend/internal/frequency"
)

// Compare orders a before b when it returns a negative value. Each key is
// consulted only when every previous key tied. A zero result means the
// entries are equally relevant.
func Compare(a, b Args) int {
	return cmp.Or(
		ComparePriorityGroup(a, b),
		CompareFrequencyRank(a, b),
		CompareReliability(a, b),
		CompareFrequency(a, b),
	)
}

// ComparePriorityGroup compares the best priority group of each side.
// A side without any recognised group sorts last.
func ComparePriorityGroup(a, b Args) int {
	return cmp.Compare(bestPriorityGroup(a.Priority), bestPriorityGroup(b.Priority))
}

// CompareFrequencyRank compares the lowest nfNN suffix of each side.
// A side without an nfNN tag sorts last.
func CompareFrequencyRank(a, b Args) int {
	return cmp.Compare(bestFrequencyRank(a.Priority), bestFrequencyRank(b.Priority))
}

// CompareReliability puts a reliable, non-empty frequency first, regardless
// of its magnitude.
func CompareReliability(a, b Args) int {
	return compareBool(a.hasReliableFrequency(), b.hasReliableFrequency())
}

// CompareFrequency compares resolved frequency magnitudes, higher first.
// An absent frequency counts as empty.
func CompareFrequency(a, b Args) int {
	return a.Frequency.CompareTo(b.Frequency)
}

// compareBool orders true before false.
func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return -1
	default:
		return 1
	}
}

// Key is the precomputed form of Args. Sorting on keys avoids rescanning the
// tag lists on every comparison.
type Key struct {
	PriorityGroup int
	FrequencyRank int
	Reliable      bool
	Frequency     *frequency.Entry
}

// NewKey precomputes the ranking key of args.
func NewKey(args Args) Key {
	return Key{
		PriorityGroup: bestPriorityGroup(args.Priority),
		FrequencyRank: bestFrequencyRank(args.Priority),
		Reliable:      args.hasReliableFrequency(),
		Frequency:     args.Frequency,
	}
}

// CompareKeys is Compare over precomputed keys.
func CompareKeys(a, b Key) int {
	return cmp.Or(
		cmp.Compare(a.PriorityGroup, b.PriorityGroup),
		cmp.Compare(a.FrequencyRank, b.FrequencyRank),
		compareBool(a.Reliable, b.Reliable),
		a.Frequency.CompareTo(b.Frequency),
	)
}
