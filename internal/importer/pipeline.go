package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/kotoba-backend/internal/domain"
	"github.com/heartmarshall/kotoba-backend/internal/frequency"
	"github.com/heartmarshall/kotoba-backend/internal/jmdict"
	"github.com/heartmarshall/kotoba-backend/pkg/ctxutil"
)

// Phase names, in execution order.
const (
	PhaseLoad    = "load"
	PhaseRank    = "rank"
	PhasePersist = "persist"
)

// Config holds pipeline settings.
type Config struct {
	// Language of the senses to keep. Defaults to jmdict.DefaultLanguage.
	Language string

	// DryRun runs the load and rank phases only. No repository is needed.
	DryRun bool
}

// PhaseResult holds the outcome of a single pipeline phase.
type PhaseResult struct {
	Entries  int
	Duration time.Duration
}

// Result is the outcome of a pipeline run.
type Result struct {
	RunID uuid.UUID

	// Skipped is set when the destination already held an import and
	// nothing was done.
	Skipped bool

	Phases  map[string]PhaseResult
	Dataset *Dataset
}

// Pipeline orchestrates the load, rank and persist phases.
type Pipeline struct {
	log     *slog.Logger
	repo    Repository
	sources Sources
	cfg     Config
}

// NewPipeline creates a new Pipeline. repo may be nil for a dry run.
func NewPipeline(log *slog.Logger, repo Repository, sources Sources, cfg Config) *Pipeline {
	if cfg.Language == "" {
		cfg.Language = jmdict.DefaultLanguage
	}
	return &Pipeline{
		log:     log,
		repo:    repo,
		sources: sources,
		cfg:     cfg,
	}
}

// Run executes the import. A destination that already holds data is left
// untouched and reported through Result.Skipped with a nil error.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	res := &Result{
		RunID:  uuid.New(),
		Phases: make(map[string]PhaseResult),
	}
	ctx = ctxutil.WithRunID(ctx, res.RunID)
	log := p.log.With(slog.String("run_id", res.RunID.String()))

	if !p.cfg.DryRun {
		if p.repo == nil {
			return nil, errors.New("importer: repository is required unless dry run")
		}
		populated, err := p.repo.HasEntries(ctx)
		if err != nil {
			return nil, fmt.Errorf("check destination: %w", err)
		}
		if populated {
			log.Info("destination already imported, skipping")
			res.Skipped = true
			return res, nil
		}
	}

	var loaded *loadResult
	err := p.runPhase(ctx, log, res, PhaseLoad, func(ctx context.Context) (int, error) {
		var err error
		loaded, err = p.load(ctx)
		if err != nil {
			return 0, err
		}
		log.Info("sources loaded",
			slog.Int("entries", len(loaded.entries)),
			slog.Int("tags", len(loaded.tags)),
			slog.Int("innocent_words", loaded.tables.Innocent.Len()),
			slog.Int("worldlex_words", loaded.tables.WorldLex.Len()),
		)
		return len(loaded.entries), nil
	})
	if err != nil {
		return nil, err
	}

	err = p.runPhase(ctx, log, res, PhaseRank, func(ctx context.Context) (int, error) {
		ranked := Rank(loaded.entries, loaded.tables)
		res.Dataset = &Dataset{
			Entries:   ranked,
			Tags:      loaded.tags,
			Frequency: frequency.Rows(ranked, loaded.tables),
		}
		return len(ranked), nil
	})
	if err != nil {
		return nil, err
	}

	if p.cfg.DryRun {
		log.Info("dry run, nothing written", slog.Int("entries", len(res.Dataset.Entries)))
		return res, nil
	}

	err = p.runPhase(ctx, log, res, PhasePersist, func(ctx context.Context) (int, error) {
		if err := p.repo.WriteDataset(ctx, res.Dataset); err != nil {
			return 0, fmt.Errorf("write dataset: %w", err)
		}
		return len(res.Dataset.Entries), nil
	})
	if errors.Is(err, domain.ErrAlreadyImported) {
		// Another run populated the destination after the initial check.
		log.Info("destination imported concurrently, skipping")
		res.Skipped = true
		return res, nil
	}
	if err != nil {
		return nil, err
	}

	kanji, reading, sense := res.Dataset.Counts()
	log.Info("pipeline completed",
		slog.Int("entries", len(res.Dataset.Entries)),
		slog.Int("kanji", kanji),
		slog.Int("reading", reading),
		slog.Int("sense", sense),
		slog.Int("tags", len(res.Dataset.Tags)),
		slog.Int("frequency", len(res.Dataset.Frequency)),
	)
	return res, nil
}

func (p *Pipeline) runPhase(
	ctx context.Context,
	log *slog.Logger,
	res *Result,
	phase string,
	fn func(ctx context.Context) (int, error),
) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", phase, err)
	}

	start := time.Now()
	log.Info("starting phase", slog.String("phase", phase))

	n, err := fn(ctxutil.WithPhase(ctx, phase))
	result := PhaseResult{Entries: n, Duration: time.Since(start)}
	if err != nil {
		log.Error("phase failed",
			slog.String("phase", phase),
			slog.String("error", err.Error()),
			slog.Duration("duration", result.Duration),
		)
		return fmt.Errorf("%s: %w", phase, err)
	}

	res.Phases[phase] = result
	log.Info("phase completed",
		slog.String("phase", phase),
		slog.Int("entries", result.Entries),
		slog.Duration("duration", result.Duration),
	)
	return nil
}

type loadResult struct {
	entries []domain.Entry
	tags    []domain.Tag
	tables  frequency.Tables
}

// load reads the dictionary and both corpora concurrently and waits for all
// three.
func (p *Pipeline) load(ctx context.Context) (*loadResult, error) {
	var out loadResult

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		out.entries, out.tags, err = p.loadDictionary(ctx)
		return err
	})

	g.Go(func() error {
		var err error
		out.tables.Innocent, err = readSource(ctx, p.sources.OpenInnocentCorpus, frequency.ReadInnocentCorpus)
		if err != nil {
			return fmt.Errorf("innocent corpus: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		out.tables.WorldLex, err = readSource(ctx, p.sources.OpenWorldLex, frequency.ReadWorldLex)
		if err != nil {
			return fmt.Errorf("worldlex: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *Pipeline) loadDictionary(ctx context.Context) ([]domain.Entry, []domain.Tag, error) {
	rc, err := p.sources.OpenJMdict()
	if err != nil {
		return nil, nil, fmt.Errorf("jmdict: %w", err)
	}
	defer rc.Close()

	dec := jmdict.NewDecoder(rc, jmdict.WithLanguage(p.cfg.Language))

	var entries []domain.Entry
	for entry, err := range dec.All() {
		if err != nil {
			return nil, nil, fmt.Errorf("jmdict: %w", err)
		}
		entries = append(entries, entry)

		if len(entries)%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, nil, fmt.Errorf("jmdict: %w", err)
			}
		}
	}
	return entries, dec.Tags().Tags(), nil
}

// cancelCheckInterval is how many entries are parsed between context checks.
const cancelCheckInterval = 1000

func readSource[T any](ctx context.Context, open func() (io.ReadCloser, error), read func(context.Context, io.Reader) (T, error)) (T, error) {
	var zero T
	rc, err := open()
	if err != nil {
		return zero, err
	}
	defer rc.Close()

	v, err := read(ctx, rc)
	if err != nil {
		return zero, err
	}
	return v, nil
}
