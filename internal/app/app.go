package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/kotoba-backend/internal/adapter/postgres"
	"github.com/heartmarshall/kotoba-backend/internal/adapter/postgres/dictionary"
	"github.com/heartmarshall/kotoba-backend/internal/config"
	"github.com/heartmarshall/kotoba-backend/internal/importer"
	"github.com/heartmarshall/kotoba-backend/internal/sourcedata"
)

// App holds the dependencies shared by the kotoba commands. The database is
// connected on first use, so a dry run never touches it.
type App struct {
	cfg  *config.Config
	log  *slog.Logger
	pool *pgxpool.Pool
	repo *dictionary.Repo
}

// New creates an App from a validated configuration.
func New(cfg *config.Config, log *slog.Logger) *App {
	return &App{cfg: cfg, log: log}
}

// Config returns the configuration the App was built with.
func (a *App) Config() *config.Config {
	return a.cfg
}

// Close releases the database pool, if one was opened.
func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
		a.pool = nil
		a.repo = nil
	}
}

// Repo returns the dictionary repository, connecting to the database first
// if needed.
func (a *App) Repo(ctx context.Context) (*dictionary.Repo, error) {
	if a.repo != nil {
		return a.repo, nil
	}
	if a.cfg.Database.DSN == "" {
		return nil, errors.New("database dsn is not configured")
	}

	pool, err := postgres.NewPool(ctx, a.cfg.Database)
	if err != nil {
		return nil, err
	}

	a.pool = pool
	a.repo = dictionary.New(pool, postgres.NewTxManager(pool), a.cfg.Import.Language)
	return a.repo, nil
}

// Migrate applies pending schema migrations.
func (a *App) Migrate(ctx context.Context) error {
	if _, err := a.Repo(ctx); err != nil {
		return err
	}

	applied, err := postgres.Migrate(ctx, a.pool)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	a.log.Info("schema up to date", slog.Int("applied", applied))
	return nil
}

// Import runs the dictionary import. Outside a dry run the schema is
// migrated first and an already populated database is left untouched.
func (a *App) Import(ctx context.Context) (*importer.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Import.Timeout)
	defer cancel()

	a.log.Info("starting import",
		slog.Any("build", CurrentBuild()),
		slog.String("source_dir", a.cfg.Import.SourceDir),
		slog.String("language", a.cfg.Import.Language),
		slog.Bool("dry_run", a.cfg.Import.DryRun),
	)

	// Missing source files fail before the database is touched.
	src, err := sourcedata.Open(a.cfg.Import.SourceDir, sourceFiles(a.cfg.Import))
	if err != nil {
		return nil, fmt.Errorf("open source data: %w", err)
	}
	a.log.Debug("source data located", slog.String("dir", src.Root()))

	var repo importer.Repository
	if !a.cfg.Import.DryRun {
		if err := a.Migrate(ctx); err != nil {
			return nil, err
		}
		repo = a.repo
	}

	pipeline := importer.NewPipeline(a.log, repo, src, importer.Config{
		Language: a.cfg.Import.Language,
		DryRun:   a.cfg.Import.DryRun,
	})
	return pipeline.Run(ctx)
}

func sourceFiles(cfg config.ImportConfig) sourcedata.Files {
	return sourcedata.Files{
		JMdict:          cfg.JMdictFile,
		WorldLexArchive: cfg.WorldLexArchive,
		WorldLexMember:  cfg.WorldLexMember,
		InnocentArchive: cfg.InnocentArchive,
		InnocentMember:  cfg.InnocentMember,
	}
}
