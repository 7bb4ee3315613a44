// Package dictionary implements the dictionary store using PostgreSQL.
// An import writes six tables (entries, its three child tables, tags and
// frequency) as one aggregate; everything else is read-only.
package dictionary

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/kotoba-backend/internal/adapter/postgres"
	"github.com/heartmarshall/kotoba-backend/internal/domain"
	"github.com/heartmarshall/kotoba-backend/internal/frequency"
)

// DefaultPageSize is the List page size used when limit is not positive.
const DefaultPageSize = 25

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides dictionary persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	txm  *postgres.TxManager
	lang string
}

// New creates a dictionary repository. lang is the glossary language of the
// stored senses; the schema does not keep it per row.
func New(pool *pgxpool.Pool, txm *postgres.TxManager, lang string) *Repo {
	return &Repo{pool: pool, txm: txm, lang: lang}
}

type entryRow struct {
	Sequence string `db:"sequence"`
	Position int64  `db:"position"`
}

type formRow struct {
	Sequence string `db:"sequence"`
	Position int32  `db:"position"`
	Text     string `db:"text"`
	Priority string `db:"priority"`
}

type senseRow struct {
	Sequence string `db:"sequence"`
	Position int32  `db:"position"`
	TagsMisc string `db:"tags_misc"`
	Glossary string `db:"glossary"`
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// HasEntries reports whether any entry is stored.
func (r *Repo) HasEntries(ctx context.Context) (bool, error) {
	var exists bool
	err := postgres.QuerierFromCtx(ctx, r.pool).
		QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM entries)`).
		Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check entries: %w", err)
	}
	return exists, nil
}

// Count returns the number of stored entries.
func (r *Repo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := postgres.QuerierFromCtx(ctx, r.pool).
		QueryRow(ctx, `SELECT count(*) FROM entries`).
		Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return n, nil
}

// GetBySequence returns one entry with its forms and senses.
// Returns domain.ErrNotFound if no entry has the sequence.
func (r *Repo) GetBySequence(ctx context.Context, sequence string) (*domain.RankedEntry, error) {
	entries, err := r.GetBySequences(ctx, []string{sequence})
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, postgres.MapError(pgx.ErrNoRows, "entry", sequence)
	}
	return &entries[0], nil
}

// GetBySequences returns the entries with the given sequences in position
// order. Unknown sequences are skipped.
func (r *Repo) GetBySequences(ctx context.Context, sequences []string) ([]domain.RankedEntry, error) {
	if len(sequences) == 0 {
		return []domain.RankedEntry{}, nil
	}

	return r.selectEntries(ctx, psql.
		Select("sequence", "position").
		From("entries").
		Where(squirrel.Eq{"sequence": sequences}).
		OrderBy("position"))
}

// List returns a page of entries in position order. A non-positive limit
// selects DefaultPageSize; offset counts skipped entries.
func (r *Repo) List(ctx context.Context, limit, offset int) ([]domain.RankedEntry, error) {
	if offset < 0 {
		return nil, domain.NewValidationError("offset", "must not be negative")
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}

	return r.selectEntries(ctx, psql.
		Select("sequence", "position").
		From("entries").
		OrderBy("position").
		Limit(uint64(limit)).
		Offset(uint64(offset)))
}

// GetTag returns the tag with the given name. Unknown names yield a
// placeholder tag whose Info is empty.
func (r *Repo) GetTag(ctx context.Context, name string) (domain.Tag, error) {
	query, args, err := psql.
		Select("name", "info").
		From("tags").
		Where(squirrel.Eq{"name": name}).
		ToSql()
	if err != nil {
		return domain.Tag{}, fmt.Errorf("build tag query: %w", err)
	}

	var tag domain.Tag
	err = postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&tag.Name, &tag.Info)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Tag{Name: name}, nil
	}
	if err != nil {
		return domain.Tag{}, postgres.MapError(err, "tag", name)
	}
	return tag, nil
}

// GetFrequency returns the stored frequency of a form text.
// Returns domain.ErrNotFound if the text has no frequency data.
func (r *Repo) GetFrequency(ctx context.Context, text string) (*frequency.Row, error) {
	query, args, err := psql.
		Select("entry", "innocent", "blog", "news", "twitter", "blog_pm", "news_pm", "twitter_pm").
		From("frequency").
		Where(squirrel.Eq{"entry": text}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build frequency query: %w", err)
	}

	var row frequency.Row
	err = postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(
		&row.Text, &row.Innocent,
		&row.Blog, &row.News, &row.Twitter,
		&row.BlogPM, &row.NewsPM, &row.TwitterPM,
	)
	if err != nil {
		return nil, postgres.MapError(err, "frequency", text)
	}
	return &row, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (r *Repo) selectEntries(ctx context.Context, b squirrel.SelectBuilder) ([]domain.RankedEntry, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := queryRows[entryRow](ctx, q, b)
	if err != nil {
		return nil, fmt.Errorf("select entries: %w", err)
	}

	entries := make([]domain.RankedEntry, len(rows))
	index := make(map[string]*domain.RankedEntry, len(rows))
	sequences := make([]string, len(rows))
	for i, row := range rows {
		entries[i] = domain.RankedEntry{
			Entry:    domain.Entry{Sequence: row.Sequence},
			Position: row.Position,
		}
		index[row.Sequence] = &entries[i]
		sequences[i] = row.Sequence
	}

	if len(entries) == 0 {
		return entries, nil
	}

	if err := r.loadChildren(ctx, q, sequences, index); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *Repo) loadChildren(ctx context.Context, q postgres.Querier, sequences []string, index map[string]*domain.RankedEntry) error {
	children := func(table string, columns ...string) squirrel.SelectBuilder {
		return psql.
			Select(columns...).
			From(table).
			Where(squirrel.Eq{"sequence": sequences}).
			OrderBy("sequence", "position")
	}

	kanji, err := queryRows[formRow](ctx, q, children("entries_kanji", "sequence", "position", "text", "priority"))
	if err != nil {
		return fmt.Errorf("select kanji: %w", err)
	}
	for _, row := range kanji {
		e := index[row.Sequence]
		e.Kanji = append(e.Kanji, domain.Kanji{Text: row.Text, Priority: domain.SplitTags(row.Priority)})
	}

	readings, err := queryRows[formRow](ctx, q, children("entries_reading", "sequence", "position", "text", "priority"))
	if err != nil {
		return fmt.Errorf("select readings: %w", err)
	}
	for _, row := range readings {
		e := index[row.Sequence]
		e.Reading = append(e.Reading, domain.Reading{Text: row.Text, Priority: domain.SplitTags(row.Priority)})
	}

	senses, err := queryRows[senseRow](ctx, q, children("entries_sense", "sequence", "position", "tags_misc", "glossary"))
	if err != nil {
		return fmt.Errorf("select senses: %w", err)
	}
	for _, row := range senses {
		glossary, err := domain.DecodeGlossary(row.Glossary, r.lang)
		if err != nil {
			return fmt.Errorf("entry %s sense %d: %w", row.Sequence, row.Position, err)
		}
		e := index[row.Sequence]
		e.Sense = append(e.Sense, domain.Sense{
			Language: r.lang,
			Misc:     domain.SplitTags(row.TagsMisc),
			Glossary: glossary,
		})
	}

	return nil
}

func queryRows[T any](ctx context.Context, q postgres.Querier, b squirrel.SelectBuilder) ([]T, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[T])
}
