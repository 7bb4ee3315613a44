package frequency

import "github.com/heartmarshall/kotoba-backend/internal/domain"

// Row is the stored frequency of one form text. Nil fields are absent from
// their corpus.
type Row struct {
	Text      string
	Innocent  *int64
	Blog      *int64
	News      *int64
	Twitter   *int64
	BlogPM    *float64
	NewsPM    *float64
	TwitterPM *float64
}

// NewRow converts a looked up frequency into a storage row.
func NewRow(text string, e Entry) Row {
	row := Row{Text: text, Innocent: e.InnocentCorpus}
	if wl := e.WorldLex; wl != nil {
		row.Blog, row.News, row.Twitter = &wl.Blog, &wl.News, &wl.Twitter
		row.BlogPM, row.NewsPM, row.TwitterPM = &wl.BlogPerMillion, &wl.NewsPerMillion, &wl.TwitterPerMillion
	}
	return row
}

// Rows returns one row per distinct kanji or reading text of entries that has
// frequency data in either corpus, in order of first appearance.
func Rows(entries []domain.RankedEntry, tables Tables) []Row {
	seen := make(map[string]struct{})
	var rows []Row
	for i := range entries {
		for _, text := range entries[i].FormTexts() {
			if _, ok := seen[text]; ok {
				continue
			}
			seen[text] = struct{}{}
			if freq, ok := tables.Lookup(text); ok {
				rows = append(rows, NewRow(text, freq))
			}
		}
	}
	return rows
}
