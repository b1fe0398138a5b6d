package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the config file written by init.
const FileName = "fjledger.yaml"

// Environment overrides applied by ApplyEnv.
const (
	EnvDBPath    = "FJLEDGER_DB_PATH"
	EnvLogLevel  = "FJLEDGER_LOG_LEVEL"
	EnvLogFormat = "FJLEDGER_LOG_FORMAT"
	EnvImportDir = "FJLEDGER_IMPORT_DIR"
)

// Config represents the top-level fjledger.yaml configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	Import   ImportConfig   `yaml:"import"`
	Activity ActivityConfig `yaml:"activity"`
}

// DatabaseConfig locates the SQLite database.
type DatabaseConfig struct {
	Path string `yaml:"path"` // relative paths resolve against the project dir
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// ImportConfig controls the import directory and legacy imports.
type ImportConfig struct {
	Dir                string `yaml:"dir"`
	LegacyAccountName  string `yaml:"legacy_account_name"`
	LegacyAccountNotes string `yaml:"legacy_account_notes"`
}

// ActivityConfig controls the mutation audit log.
type ActivityConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Load reads a fjledger.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadDir loads <dir>/fjledger.yaml, falling back to defaults when the file
// does not exist, then applies <dir>/.env and environment overrides and
// resolves relative paths against dir.
func LoadDir(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = Default(), nil
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(filepath.Join(dir, ".env")); err != nil {
		return nil, err
	}
	cfg.Resolve(dir)
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: filepath.Join("data", "fjledger.db"),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Import: ImportConfig{
			Dir:                "import",
			LegacyAccountName:  "Imported",
			LegacyAccountNotes: "Imported from a CSV file",
		},
		Activity: ActivityConfig{
			Enabled: true,
			Path:    filepath.Join("logs", "activity.csv"),
		},
	}
}

// ApplyEnv loads envFile into the process environment if it exists (without
// overriding variables already set) and applies the FJLEDGER_* overrides.
func (c *Config) ApplyEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	overrides := map[string]*string{
		EnvDBPath:    &c.Database.Path,
		EnvLogLevel:  &c.Logging.Level,
		EnvLogFormat: &c.Logging.Format,
		EnvImportDir: &c.Import.Dir,
	}
	for key, field := range overrides {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*field = v
		}
	}
	return nil
}

// Resolve makes relative file paths absolute against dir.
func (c *Config) Resolve(dir string) {
	for _, p := range []*string{&c.Database.Path, &c.Import.Dir, &c.Activity.Path} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}
