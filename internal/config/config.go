package config

import "time"

// Config is the root application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Import   ImportConfig   `yaml:"import"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// ImportConfig holds the dictionary import settings.
type ImportConfig struct {
	// SourceDir is the directory holding the source files. A relative path
	// is searched for in the working directory and each of its parents.
	SourceDir string `yaml:"source_dir" env:"IMPORT_SOURCE_DIR" env-default:"source-data"`

	JMdictFile      string `yaml:"jmdict_file"      env:"IMPORT_JMDICT_FILE"      env-default:"JMdict.gz"`
	WorldLexArchive string `yaml:"worldlex_archive" env:"IMPORT_WORLDLEX_ARCHIVE" env-default:"Jap.Freq.2.zip"`
	WorldLexMember  string `yaml:"worldlex_member"  env:"IMPORT_WORLDLEX_MEMBER"  env-default:"Jap.Freq.2.txt"`
	InnocentArchive string `yaml:"innocent_archive" env:"IMPORT_INNOCENT_ARCHIVE" env-default:"Innocent_Novel_Analysis_120526.zip"`
	InnocentMember  string `yaml:"innocent_member"  env:"IMPORT_INNOCENT_MEMBER"  env-default:"Innocent_Novel_Analysis_120526/word_freq_report_jparser.txt"`

	// Language is the three-letter code of the senses to keep.
	Language string        `yaml:"language" env:"IMPORT_LANGUAGE" env-default:"eng"`
	Timeout  time.Duration `yaml:"timeout"  env:"IMPORT_TIMEOUT"  env-default:"30m"`

	// DryRun parses and ranks without writing anything.
	DryRun bool `yaml:"dry_run" env:"IMPORT_DRY_RUN" env-default:"false"`
}
