package frequency

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// fieldSeparator separates the columns of both corpora.
const fieldSeparator = "\t"

// maxLineSize is the buffer size for bufio.Scanner.
const maxLineSize = 1 << 20

// cancelCheckLines is how many lines are read between context checks.
const cancelCheckLines = 4096

// InnocentCorpus maps a word to its occurrence count in the Innocent novel
// corpus. Total is the sum of all counts.
type InnocentCorpus struct {
	Entries map[string]int64
	Total   int64
}

// Lookup returns the count for word.
func (c *InnocentCorpus) Lookup(word string) (int64, bool) {
	if c == nil {
		return 0, false
	}
	n, ok := c.Entries[word]
	return n, ok
}

// Len returns the number of words in the corpus.
func (c *InnocentCorpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Entries)
}

// ReadInnocentCorpus parses the corpus word frequency report. Each non-blank
// line is "count<TAB>word[<TAB>...]". A malformed count is an error.
// Reading stops with ctx.Err() once ctx is done.
func ReadInnocentCorpus(ctx context.Context, r io.Reader) (*InnocentCorpus, error) {
	corpus := &InnocentCorpus{Entries: make(map[string]int64)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		if lineNo%cancelCheckLines == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("innocent corpus: %w", err)
			}
		}
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, fieldSeparator)
		if len(fields) < 2 {
			return nil, fmt.Errorf("innocent corpus: line %d: expected at least 2 fields, got %d", lineNo, len(fields))
		}

		count, err := strconv.ParseInt(strings.TrimSpace(fields[0]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("innocent corpus: line %d: parse count: %w", lineNo, err)
		}

		word := fields[1]
		if word == "" {
			return nil, fmt.Errorf("innocent corpus: line %d: empty word", lineNo)
		}
		if _, dup := corpus.Entries[word]; dup {
			return nil, fmt.Errorf("innocent corpus: line %d: duplicate word %q", lineNo, word)
		}

		corpus.Entries[word] = count
		corpus.Total += count
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("innocent corpus: scanner error: %w", err)
	}

	return corpus, nil
}
