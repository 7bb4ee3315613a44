package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/heartmarshall/kotoba-backend/internal/domain"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "text"}
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	var errs []domain.FieldError

	if !c.Import.DryRun && strings.TrimSpace(c.Database.DSN) == "" {
		errs = append(errs, domain.FieldError{Field: "database.dsn", Message: "required unless import.dry_run is set"})
	}
	if c.Database.MaxConns <= 0 {
		errs = append(errs, domain.FieldError{Field: "database.max_conns", Message: fmt.Sprintf("must be > 0 (got %d)", c.Database.MaxConns)})
	}
	if c.Database.MinConns < 0 || c.Database.MinConns > c.Database.MaxConns {
		errs = append(errs, domain.FieldError{Field: "database.min_conns", Message: fmt.Sprintf("must be within [0, max_conns] (got %d)", c.Database.MinConns)})
	}

	if !slices.Contains(logLevels, strings.ToLower(c.Log.Level)) {
		errs = append(errs, domain.FieldError{Field: "log.level", Message: fmt.Sprintf("unknown level %q", c.Log.Level)})
	}
	if !slices.Contains(logFormats, strings.ToLower(c.Log.Format)) {
		errs = append(errs, domain.FieldError{Field: "log.format", Message: fmt.Sprintf("unknown format %q", c.Log.Format)})
	}

	errs = append(errs, c.Import.validate()...)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func (c *ImportConfig) validate() []domain.FieldError {
	var errs []domain.FieldError

	required := []struct {
		field string
		value string
	}{
		{"import.source_dir", c.SourceDir},
		{"import.jmdict_file", c.JMdictFile},
		{"import.worldlex_archive", c.WorldLexArchive},
		{"import.worldlex_member", c.WorldLexMember},
		{"import.innocent_archive", c.InnocentArchive},
		{"import.innocent_member", c.InnocentMember},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, domain.FieldError{Field: r.field, Message: "required"})
		}
	}

	if !isLanguageCode(c.Language) {
		errs = append(errs, domain.FieldError{Field: "import.language", Message: fmt.Sprintf("must be a three-letter code (got %q)", c.Language)})
	}
	if c.Timeout <= 0 {
		errs = append(errs, domain.FieldError{Field: "import.timeout", Message: fmt.Sprintf("must be > 0 (got %v)", c.Timeout)})
	}

	return errs
}

func isLanguageCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}
