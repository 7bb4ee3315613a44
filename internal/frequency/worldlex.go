package frequency

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// worldLexStopMarker starts the header line repeated near the end of the
// WorldLex file. Everything from that line on is not data.
const worldLexStopMarker = "Word" + fieldSeparator

// worldLexFields is the column count of a WorldLex line: the word followed by
// four figures for each of blog, twitter and news.
const worldLexFields = 13

// WorldLexInfo holds the figures of one WorldLex category for a word.
type WorldLexInfo struct {
	Frequency                     int64
	PerMillion                    float64
	ContextualDiversity           int64
	ContextualDiversityPercentage float64
}

// WorldLexRecord is a single WorldLex line.
type WorldLexRecord struct {
	Word    string
	Blog    WorldLexInfo
	Twitter WorldLexInfo
	News    WorldLexInfo
}

// Frequency converts the record to the comparator-facing WorldLex value.
func (r *WorldLexRecord) Frequency() WorldLex {
	return WorldLex{
		Blog:              r.Blog.Frequency,
		News:              r.News.Frequency,
		Twitter:           r.Twitter.Frequency,
		BlogPerMillion:    r.Blog.PerMillion,
		NewsPerMillion:    r.News.PerMillion,
		TwitterPerMillion: r.Twitter.PerMillion,
	}
}

// WorldLexTotals holds the per-category sums of all frequencies.
type WorldLexTotals struct {
	Blog    int64
	Twitter int64
	News    int64
}

// WorldLexCorpus maps a word to its WorldLex record.
type WorldLexCorpus struct {
	Entries map[string]WorldLexRecord
	Total   WorldLexTotals
}

// Lookup returns the record for word.
func (c *WorldLexCorpus) Lookup(word string) (WorldLexRecord, bool) {
	if c == nil {
		return WorldLexRecord{}, false
	}
	r, ok := c.Entries[word]
	return r, ok
}

// Len returns the number of words in the corpus.
func (c *WorldLexCorpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Entries)
}

// ReadWorldLex parses a WorldLex frequency file. The first line is a header.
// Reading stops at the repeated header line near the end of the file, or
// with ctx.Err() once ctx is done.
func ReadWorldLex(ctx context.Context, r io.Reader) (*WorldLexCorpus, error) {
	corpus := &WorldLexCorpus{Entries: make(map[string]WorldLexRecord)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		if lineNo%cancelCheckLines == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("worldlex: %w", err)
			}
		}
		lineNo++
		line := scanner.Text()
		if lineNo == 1 || strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(line, worldLexStopMarker) {
			break
		}

		rec, err := parseWorldLexLine(line)
		if err != nil {
			return nil, fmt.Errorf("worldlex: line %d: %w", lineNo, err)
		}
		if _, dup := corpus.Entries[rec.Word]; dup {
			return nil, fmt.Errorf("worldlex: line %d: duplicate word %q", lineNo, rec.Word)
		}

		corpus.Entries[rec.Word] = rec
		corpus.Total.Blog += rec.Blog.Frequency
		corpus.Total.Twitter += rec.Twitter.Frequency
		corpus.Total.News += rec.News.Frequency
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("worldlex: scanner error: %w", err)
	}

	return corpus, nil
}

func parseWorldLexLine(line string) (WorldLexRecord, error) {
	fields := strings.Split(strings.TrimSpace(line), fieldSeparator)
	if len(fields) < worldLexFields {
		return WorldLexRecord{}, fmt.Errorf("expected %d fields, got %d", worldLexFields, len(fields))
	}
	if fields[0] == "" {
		return WorldLexRecord{}, fmt.Errorf("empty word")
	}

	var (
		rec = WorldLexRecord{Word: fields[0]}
		err error
	)
	if rec.Blog, err = parseWorldLexInfo(fields[1:5]); err != nil {
		return rec, fmt.Errorf("blog: %w", err)
	}
	if rec.Twitter, err = parseWorldLexInfo(fields[5:9]); err != nil {
		return rec, fmt.Errorf("twitter: %w", err)
	}
	if rec.News, err = parseWorldLexInfo(fields[9:13]); err != nil {
		return rec, fmt.Errorf("news: %w", err)
	}
	return rec, nil
}

func parseWorldLexInfo(f []string) (WorldLexInfo, error) {
	var (
		info WorldLexInfo
		err  error
	)
	if info.Frequency, err = strconv.ParseInt(f[0], 10, 64); err != nil {
		return info, fmt.Errorf("frequency: %w", err)
	}
	if info.PerMillion, err = strconv.ParseFloat(f[1], 64); err != nil {
		return info, fmt.Errorf("per million: %w", err)
	}
	if info.ContextualDiversity, err = strconv.ParseInt(f[2], 10, 64); err != nil {
		return info, fmt.Errorf("contextual diversity: %w", err)
	}
	if info.ContextualDiversityPercentage, err = strconv.ParseFloat(f[3], 64); err != nil {
		return info, fmt.Errorf("contextual diversity percentage: %w", err)
	}
	return info, nil
}
