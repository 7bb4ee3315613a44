package dictionary

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/kotoba-backend/internal/adapter/postgres"
	"github.com/heartmarshall/kotoba-backend/internal/domain"
	"github.com/heartmarshall/kotoba-backend/internal/importer"
	"github.com/heartmarshall/kotoba-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Bulk write (COPY protocol)
// ---------------------------------------------------------------------------

type copyTable struct {
	name    string
	columns []string
	rows    pgx.CopyFromSource
	want    int
}

// WriteDataset stores a ranked dataset in a single transaction. Tables are
// filled parents first; any failure rolls the whole import back.
// Returns domain.ErrAlreadyImported if entries are already stored.
func (r *Repo) WriteDataset(ctx context.Context, ds *importer.Dataset) error {
	tables := datasetTables(ds)

	return r.txm.RunInTx(ctx, func(txCtx context.Context) error {
		populated, err := r.HasEntries(txCtx)
		if err != nil {
			return err
		}
		if populated {
			return domain.ErrAlreadyImported
		}

		q := postgres.QuerierFromCtx(txCtx, r.pool)

		// Visible in pg_stat_activity until the transaction ends.
		if _, err := q.Exec(txCtx, `SELECT set_config('application_name', $1, true)`, applicationName(txCtx)); err != nil {
			return fmt.Errorf("set application name: %w", err)
		}

		for _, t := range tables {
			n, err := q.CopyFrom(txCtx, pgx.Identifier{t.name}, t.columns, t.rows)
			if err != nil {
				return postgres.MapError(err, "table", t.name)
			}
			if int(n) != t.want {
				return fmt.Errorf("table %s: copied %d rows, want %d", t.name, n, t.want)
			}
		}
		return nil
	})
}

func applicationName(ctx context.Context) string {
	name := "kotoba import"
	if runID, ok := ctxutil.RunIDFromCtx(ctx); ok {
		name += " " + runID.String()
	}
	if phase := ctxutil.PhaseFromCtx(ctx); phase != "" {
		name += " " + phase
	}
	return name
}

func datasetTables(ds *importer.Dataset) []copyTable {
	kanji, reading, sense := formRows(ds.Entries)

	return []copyTable{
		{
			name:    "tags",
			columns: []string{"name", "info"},
			rows: pgx.CopyFromSlice(len(ds.Tags), func(i int) ([]any, error) {
				return []any{ds.Tags[i].Name, ds.Tags[i].Info}, nil
			}),
			want: len(ds.Tags),
		},
		{
			name:    "entries",
			columns: []string{"sequence", "position"},
			rows: pgx.CopyFromSlice(len(ds.Entries), func(i int) ([]any, error) {
				return []any{ds.Entries[i].Sequence, ds.Entries[i].Position}, nil
			}),
			want: len(ds.Entries),
		},
		{
			name:    "entries_kanji",
			columns: []string{"sequence", "position", "text", "priority"},
			rows:    pgx.CopyFromRows(kanji),
			want:    len(kanji),
		},
		{
			name:    "entries_reading",
			columns: []string{"sequence", "position", "text", "priority"},
			rows:    pgx.CopyFromRows(reading),
			want:    len(reading),
		},
		{
			name:    "entries_sense",
			columns: []string{"sequence", "position", "tags_misc", "glossary"},
			rows:    pgx.CopyFromRows(sense),
			want:    len(sense),
		},
		{
			name:    "frequency",
			columns: []string{"entry", "innocent", "blog", "news", "twitter", "blog_pm", "news_pm", "twitter_pm"},
			rows: pgx.CopyFromSlice(len(ds.Frequency), func(i int) ([]any, error) {
				f := ds.Frequency[i]
				return []any{f.Text, f.Innocent, f.Blog, f.News, f.Twitter, f.BlogPM, f.NewsPM, f.TwitterPM}, nil
			}),
			want: len(ds.Frequency),
		},
	}
}

// formRows flattens the child rows of entries. Child positions are 1-based
// within their entry.
func formRows(entries []domain.RankedEntry) (kanji, reading, sense [][]any) {
	for i := range entries {
		e := &entries[i]
		for j, k := range e.Kanji {
			kanji = append(kanji, []any{e.Sequence, int32(j + 1), k.Text, domain.JoinTags(k.Priority)})
		}
		for j, rd := range e.Reading {
			reading = append(reading, []any{e.Sequence, int32(j + 1), rd.Text, domain.JoinTags(rd.Priority)})
		}
		for j := range e.Sense {
			s := &e.Sense[j]
			sense = append(sense, []any{e.Sequence, int32(j + 1), domain.JoinTags(s.Misc), domain.EncodeGlossary(s.Glossary)})
		}
	}
	return kanji, reading, sense
}
