package dictionary

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/kotoba-backend/internal/domain"
	"github.com/heartmarshall/kotoba-backend/pkg/ctxutil"
)

func TestApplicationName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "kotoba import", applicationName(context.Background()))

	id := uuid.MustParse("6f1c2a4e-0b7d-4c1e-9a55-3f2d8e7b9c10")
	ctx := ctxutil.WithPhase(ctxutil.WithRunID(context.Background(), id), "persist")
	assert.Equal(t, "kotoba import 6f1c2a4e-0b7d-4c1e-9a55-3f2d8e7b9c10 persist", applicationName(ctx))
}

func TestFormRows(t *testing.T) {
	t.Parallel()

	entries := []domain.RankedEntry{
		{
			Entry: domain.Entry{
				Sequence: "1000100",
				Kanji:    []domain.Kanji{{Text: "頻繁", Priority: []string{"ichi1", "nf16"}}},
				Reading:  []domain.Reading{{Text: "ひんぱん"}, {Text: "ひんばん"}},
				Sense: []domain.Sense{{
					Misc:     []string{"uk"},
					Glossary: []domain.Glossary{{Text: "frequency"}, {Type: "expl", Text: "often"}},
				}},
			},
			Position: 1,
		},
		{
			Entry:    domain.Entry{Sequence: "1000200", Reading: []domain.Reading{{Text: "ああ"}}},
			Position: 2,
		},
	}

	kanji, reading, sense := formRows(entries)

	assert.Equal(t, [][]any{{"1000100", int32(1), "頻繁", "ichi1,nf16"}}, kanji)
	assert.Equal(t, [][]any{
		{"1000100", int32(1), "ひんぱん", ""},
		{"1000100", int32(2), "ひんばん", ""},
		{"1000200", int32(1), "ああ", ""},
	}, reading)
	assert.Equal(t, [][]any{{"1000100", int32(1), "uk", "::frequency;;expl::often"}}, sense)
}
