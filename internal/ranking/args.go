// Package ranking orders dictionary entries by relevance.
//
// The order is a lexicographic chain of keys: priority group, frequency rank
// tag, frequency reliability and resolved frequency magnitude. Each key has
// its own comparator so precedence can be checked one level at a time.
package ranking

import (
	"math"
	"strconv"
	"strings"

	"github.com/heartmarshall/kotoba-backend/internal/frequency"
)

// Args are the sort arguments of a single entry.
type Args struct {
	// Priority is the union of the entry's kanji and reading priority tags.
	Priority []string

	// Frequency is the resolved representative frequency, nil when no form
	// of the entry appears in any corpus.
	Frequency *frequency.Entry

	IsFrequencyReliable bool
}

// unranked sorts after every priority group and frequency rank.
const unranked = math.MaxInt

const frequencyRankPrefix = "nf"

var priorityGroups = map[string]int{
	"news1": 0,
	"ichi1": 0,
	"spec1": 0,
	"spec2": 1,
	"gai1":  2,
	"gai2":  3,
	"news2": 4,
	"ichi2": 5,
}

// PriorityGroup returns the group of a priority tag. Lower groups sort first.
// ok is false for nfNN tags and for unknown tags.
func PriorityGroup(tag string) (group int, ok bool) {
	group, ok = priorityGroups[tag]
	return group, ok
}

// FrequencyRank returns the numeric suffix of an nfNN tag. ok is false for
// any other tag.
func FrequencyRank(tag string) (rank int, ok bool) {
	digits, found := strings.CutPrefix(tag, frequencyRankPrefix)
	if !found || len(digits) != 2 {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}
	rank, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return rank, true
}

// bestPriorityGroup returns the lowest group among tags, or unranked.
func bestPriorityGroup(tags []string) int {
	best := unranked
	for _, tag := range tags {
		if g, ok := PriorityGroup(tag); ok && g < best {
			best = g
		}
	}
	return best
}

// bestFrequencyRank returns the lowest nfNN rank among tags, or unranked.
func bestFrequencyRank(tags []string) int {
	best := unranked
	for _, tag := range tags {
		if r, ok := FrequencyRank(tag); ok && r < best {
			best = r
		}
	}
	return best
}

// hasReliableFrequency reports whether the frequency is present, non-empty
// and marked reliable.
func (a *Args) hasReliableFrequency() bool {
	return a.IsFrequencyReliable && a.Frequency != nil && !a.Frequency.IsEmpty()
}
