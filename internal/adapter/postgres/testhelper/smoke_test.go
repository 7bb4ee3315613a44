package testhelper

import (
	"context"
	"testing"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	var tables int
	err := pool.QueryRow(context.Background(),
		`SELECT count(*) FROM information_schema.tables
		 WHERE table_schema = 'public'
		   AND table_name IN ('tags', 'entries', 'entries_kanji', 'entries_reading', 'entries_sense', 'frequency')`,
	).Scan(&tables)
	if err != nil {
		t.Fatalf("query schema: %v", err)
	}
	if tables != 6 {
		t.Fatalf("expected 6 dictionary tables, got %d", tables)
	}
}

func TestSetupTestDB_Isolated(t *testing.T) {
	first := SetupTestDB(t)
	second := SetupTestDB(t)
	ctx := context.Background()

	if _, err := first.Exec(ctx, `INSERT INTO tags (name, info) VALUES ('n', 'noun')`); err != nil {
		t.Fatalf("insert: %v", err)
	}

	var n int
	if err := second.QueryRow(ctx, `SELECT count(*) FROM tags`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected an empty database, found %d tags", n)
	}
}
