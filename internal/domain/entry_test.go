package domain

import (
	"slices"
	"testing"
)

func TestEntry_Text(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		entry Entry
		want  string
	}{
		{
			name:  "kanji first",
			entry: Entry{Kanji: []Kanji{{Text: "言葉"}, {Text: "詞"}}, Reading: []Reading{{Text: "ことば"}}},
			want:  "言葉",
		},
		{
			name:  "reading when no kanji",
			entry: Entry{Reading: []Reading{{Text: "ああ"}, {Text: "あー"}}},
			want:  "ああ",
		},
		{
			name:  "empty entry",
			entry: Entry{},
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.entry.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEntry_IsUsuallyKana(t *testing.T) {
	t.Parallel()

	e := Entry{Sense: []Sense{{Misc: []string{"col"}}, {Misc: []string{"col", "uk"}}}}
	if !e.IsUsuallyKana() {
		t.Error("expected usually kana when any sense has uk")
	}

	e = Entry{Sense: []Sense{{Misc: []string{"col"}}}}
	if e.IsUsuallyKana() {
		t.Error("expected not usually kana")
	}

	e = Entry{UsuallyKana: true}
	if !e.IsUsuallyKana() {
		t.Error("expected usually kana from a sense that was not retained")
	}
}

func TestEntry_PriorityTags(t *testing.T) {
	t.Parallel()

	e := Entry{
		Kanji: []Kanji{
			{Text: "a", Priority: []string{"news1", "nf23"}},
			{Text: "b", Priority: []string{"ichi2"}},
		},
		Reading: []Reading{
			{Text: "c", Priority: []string{"ichi2", "news1", "nf23"}},
		},
	}

	got := e.PriorityTags()
	slices.Sort(got)
	want := []string{"ichi2", "news1", "nf23"}
	if !slices.Equal(got, want) {
		t.Errorf("PriorityTags() = %v, want %v", got, want)
	}

	if tags := (&Entry{}).PriorityTags(); tags != nil {
		t.Errorf("expected nil tags for empty entry, got %v", tags)
	}
}

func TestEntry_FormTexts(t *testing.T) {
	t.Parallel()

	e := Entry{
		Kanji:   []Kanji{{Text: "言葉"}},
		Reading: []Reading{{Text: "ことば"}, {Text: "けとば"}},
	}
	want := []string{"言葉", "ことば", "けとば"}
	if got := e.FormTexts(); !slices.Equal(got, want) {
		t.Errorf("FormTexts() = %v, want %v", got, want)
	}
}

func TestSense_IsEmpty(t *testing.T) {
	t.Parallel()

	if !(&Sense{}).IsEmpty() {
		t.Error("sense without glossary should be empty")
	}
	if (&Sense{Glossary: []Glossary{{Text: "word"}}}).IsEmpty() {
		t.Error("sense with glossary should not be empty")
	}
}
