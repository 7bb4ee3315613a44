// Command kotoba imports the JMdict dictionary and its frequency corpora into
// PostgreSQL and ranks every entry by relevance. It is run offline; the
// import is a one-shot job that does nothing once the database is populated.
//
// Commands:
//
//	import            migrate the schema, then parse, rank and store the dictionary
//	migrate           apply schema migrations only
//	entries count     print the number of stored entries
//	entries list      print a page of entries in rank order
//	entries get SEQ   print entries by sequence
//	tag NAME          print a tag description
//
// Exit codes: 0 = success (including an already imported database), 1 = error.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/heartmarshall/kotoba-backend/internal/adapter/postgres/dictionary"
	"github.com/heartmarshall/kotoba-backend/internal/app"
	"github.com/heartmarshall/kotoba-backend/internal/config"
	"github.com/heartmarshall/kotoba-backend/internal/importer"
	"github.com/heartmarshall/kotoba-backend/internal/sourcedata"
)

// Compile-time interface assertions.
var (
	_ importer.Repository = (*dictionary.Repo)(nil)
	_ importer.Sources    = (*sourcedata.Dir)(nil)
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCLI(os.Stdout).RunContext(ctx, os.Args); err != nil {
		slog.Error("kotoba failed", slog.String("error", err.Error()))
		stop()
		os.Exit(1)
	}
}

func newCLI(out io.Writer) *cli.App {
	return &cli.App{
		Name:    "kotoba",
		Usage:   "JMdict import and relevance ranking",
		Version: app.CurrentBuild().String(),
		Writer:  out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the YAML config file",
				EnvVars: []string{"CONFIG_PATH"},
			},
		},
		Before: func(c *cli.Context) error {
			if path := c.String("config"); path != "" {
				return os.Setenv("CONFIG_PATH", path)
			}
			return nil
		},
		Commands: []*cli.Command{
			importCommand(),
			migrateCommand(),
			entriesCommand(),
			tagCommand(),
		},
	}
}

// setup resolves the configuration, applies command line overrides and
// validates the result.
func setup(override func(*config.Config)) (*app.App, error) {
	cfg, err := config.Read()
	if err != nil {
		return nil, err
	}
	if override != nil {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return app.New(cfg, app.NewLogger(cfg.Log)), nil
}

func importCommand() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "parse, rank and store the dictionary",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "dry-run", Usage: "parse and rank without writing to the database"},
			&cli.StringFlag{Name: "source-dir", Usage: "directory holding the source files"},
			&cli.StringFlag{Name: "language", Usage: "three-letter code of the senses to keep"},
		},
		Action: func(c *cli.Context) error {
			a, err := setup(func(cfg *config.Config) {
				if c.IsSet("dry-run") {
					cfg.Import.DryRun = c.Bool("dry-run")
				}
				if c.IsSet("source-dir") {
					cfg.Import.SourceDir = c.String("source-dir")
				}
				if c.IsSet("language") {
					cfg.Import.Language = c.String("language")
				}
			})
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.Import(c.Context)
			if err != nil {
				return err
			}

			if res.Skipped {
				fmt.Fprintln(c.App.Writer, "dictionary already imported, nothing to do")
				return nil
			}
			for _, phase := range []string{importer.PhaseLoad, importer.PhaseRank, importer.PhasePersist} {
				if pr, ok := res.Phases[phase]; ok {
					fmt.Fprintf(c.App.Writer, "%-8s %8d entries  %s\n", phase, pr.Entries, pr.Duration)
				}
			}
			return nil
		},
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "apply pending schema migrations",
		Action: func(c *cli.Context) error {
			a, err := setup(nil)
			if err != nil {
				return err
			}
			defer a.Close()

			return a.Migrate(c.Context)
		},
	}
}

func entriesCommand() *cli.Command {
	return &cli.Command{
		Name:  "entries",
		Usage: "read stored entries",
		Subcommands: []*cli.Command{
			{
				Name:  "count",
				Usage: "print the number of stored entries",
				Action: func(c *cli.Context) error {
					return withRepo(c, func(repo *dictionary.Repo) error {
						n, err := repo.Count(c.Context)
						if err != nil {
							return err
						}
						_, err = fmt.Fprintln(c.App.Writer, n)
						return err
					})
				},
			},
			{
				Name:  "list",
				Usage: "print a page of entries in rank order",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Value: dictionary.DefaultPageSize, Usage: "page size"},
					&cli.IntFlag{Name: "offset", Usage: "number of entries to skip"},
				},
				Action: func(c *cli.Context) error {
					return withRepo(c, func(repo *dictionary.Repo) error {
						entries, err := repo.List(c.Context, c.Int("limit"), c.Int("offset"))
						if err != nil {
							return err
						}
						return printJSON(c.App.Writer, entries)
					})
				},
			},
			{
				Name:      "get",
				Usage:     "print entries by sequence",
				ArgsUsage: "SEQUENCE...",
				Action: func(c *cli.Context) error {
					if c.NArg() == 0 {
						return errors.New("at least one sequence is required")
					}
					return withRepo(c, func(repo *dictionary.Repo) error {
						if c.NArg() == 1 {
							entry, err := repo.GetBySequence(c.Context, c.Args().First())
							if err != nil {
								return err
							}
							return printJSON(c.App.Writer, entry)
						}
						entries, err := repo.GetBySequences(c.Context, c.Args().Slice())
						if err != nil {
							return err
						}
						return printJSON(c.App.Writer, entries)
					})
				},
			},
		},
	}
}

func tagCommand() *cli.Command {
	return &cli.Command{
		Name:      "tag",
		Usage:     "print the description of a tag",
		ArgsUsage: "NAME",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("exactly one tag name is required")
			}
			return withRepo(c, func(repo *dictionary.Repo) error {
				tag, err := repo.GetTag(c.Context, c.Args().First())
				if err != nil {
					return err
				}
				return printJSON(c.App.Writer, tag)
			})
		},
	}
}

func withRepo(c *cli.Context, fn func(repo *dictionary.Repo) error) error {
	a, err := setup(nil)
	if err != nil {
		return err
	}
	defer a.Close()

	repo, err := a.Repo(c.Context)
	if err != nil {
		return err
	}
	return fn(repo)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
