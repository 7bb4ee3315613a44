package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_SingleField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("import.language", "required")

	if got := err.Error(); got != "validation: import.language: required" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
}

func TestValidationError_MultipleFields(t *testing.T) {
	t.Parallel()

	err := NewValidationErrors([]FieldError{
		{Field: "database.dsn", Message: "required"},
		{Field: "import.timeout", Message: "must be positive"},
	})

	if got := err.Error(); got != "validation: 2 errors" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
	if len(err.Errors) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(err.Errors))
	}
}

func TestSourceFormatError(t *testing.T) {
	t.Parallel()

	t.Run("with sequence", func(t *testing.T) {
		t.Parallel()
		err := &SourceFormatError{Sequence: "1000000", Element: "ke_pri", Detail: `invalid priority tag "news3"`}
		want := `source format: entry 1000000: <ke_pri>: invalid priority tag "news3"`
		if got := err.Error(); got != want {
			t.Errorf("Error() = %q, want %q", got, want)
		}
	})

	t.Run("without sequence", func(t *testing.T) {
		t.Parallel()
		err := &SourceFormatError{Element: "entry", Detail: "missing ent_seq"}
		if got := err.Error(); got != "source format: <entry>: missing ent_seq" {
			t.Errorf("Error() = %q", got)
		}
	})

	t.Run("unwraps through wrapping", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("parse jmdict: %w", &SourceFormatError{Element: "entry"})
		if !errors.Is(err, ErrSourceFormat) {
			t.Fatal("errors.Is(err, ErrSourceFormat) = false")
		}
		var sfe *SourceFormatError
		if !errors.As(err, &sfe) {
			t.Fatal("errors.As should find SourceFormatError")
		}
	})
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		ErrNotFound, ErrAlreadyExists, ErrValidation,
		ErrSourceFormat, ErrAlreadyImported,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel errors %d and %d should not match", i, j)
			}
		}
	}
}
