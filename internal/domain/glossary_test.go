package domain

import (
	"errors"
	"slices"
	"testing"
)

func TestEncodeGlossary(t *testing.T) {
	t.Parallel()

	glossary := []Glossary{
		{Type: "", Text: "language", Language: "eng"},
		{Type: "lit", Text: "one x mark", Language: "eng"},
	}
	want := "::language;;lit::one x mark"
	if got := EncodeGlossary(glossary); got != want {
		t.Errorf("EncodeGlossary() = %q, want %q", got, want)
	}

	if got := EncodeGlossary(nil); got != "" {
		t.Errorf("EncodeGlossary(nil) = %q, want empty", got)
	}
}

func TestDecodeGlossary(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		in := []Glossary{
			{Type: "expl", Text: "(an) explanation: with colon", Language: "eng"},
			{Type: "", Text: "word", Language: "eng"},
		}
		out, err := DecodeGlossary(EncodeGlossary(in), "eng")
		if err != nil {
			t.Fatalf("DecodeGlossary: %v", err)
		}
		if !slices.Equal(out, in) {
			t.Errorf("round trip mismatch: got %+v, want %+v", out, in)
		}
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		out, err := DecodeGlossary("", "eng")
		if err != nil || out != nil {
			t.Errorf("DecodeGlossary(\"\") = %v, %v", out, err)
		}
	})

	t.Run("missing field separator", func(t *testing.T) {
		t.Parallel()
		_, err := DecodeGlossary("broken", "eng")
		if !errors.Is(err, ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})
}
