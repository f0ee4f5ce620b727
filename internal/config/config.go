// Package config resolves settings from the config file, RECALL_*
// environment variables and command-line flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/abhisek/recall/internal/store"
	"github.com/abhisek/recall/internal/studyerr"
)

// EnvPrefix prefixes every environment variable read as configuration.
const EnvPrefix = "RECALL_"

// DefaultProfile is the profile used when none is configured.
const DefaultProfile = "User 1"

// Config holds the resolved settings. Keys match the global flag names.
type Config struct {
	Home     string `koanf:"home"`
	Profile  string `koanf:"profile" validate:"required,excludesall=/\\"`
	DB       string `koanf:"db"`
	Format   string `koanf:"format" validate:"oneof=pretty-json json text"`
	LogLevel string `koanf:"log-level" validate:"oneof=debug info warn error"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// DefaultPath returns $XDG_CONFIG_HOME/recall/config.yaml, falling back to
// ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "recall", "config.yaml"), nil
}

// Load layers the config file at path, the environment and flags.
// Flags only override lower layers when set explicitly; otherwise their
// defaults fill keys nothing else provided. A missing file is ignored
// unless required is set.
func Load(flags *pflag.FlagSet, path string, required bool) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if required || !isNotExist(err) {
				return nil, fmt.Errorf("load config %s: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Profile == "" {
		cfg.Profile = DefaultProfile
	}
	if cfg.Format == "" {
		cfg.Format = "pretty-json"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKey maps RECALL_LOG_LEVEL to log-level.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", "-")
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// Validate checks field values and reports the first problem as a
// studyerr.ValidationError.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return studyerr.Invalid("config", "", err.Error())
	}
	fe := verrs[0]
	reason := fmt.Sprintf("failed %q check", fe.Tag())
	switch fe.Tag() {
	case "required":
		reason = "is required"
	case "oneof":
		reason = "expected one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "excludesall":
		reason = "must not contain path separators"
	}
	return &studyerr.ValidationError{
		Field:  fieldKey(fe.StructField()),
		Value:  fmt.Sprint(fe.Value()),
		Reason: reason,
		Err:    err,
	}
}

func fieldKey(structField string) string {
	switch structField {
	case "LogLevel":
		return "log-level"
	case "DB":
		return "db"
	}
	return strings.ToLower(structField)
}

// CollectionPath resolves the collection database file: DB when set,
// otherwise <home>/<profile>/collection.db.
func (c *Config) CollectionPath() (string, error) {
	if c.DB != "" {
		return c.DB, nil
	}
	home := c.Home
	if home == "" {
		var err error
		if home, err = store.DefaultHome(); err != nil {
			return "", err
		}
	}
	return store.CollectionPath(home, c.Profile), nil
}

// Level returns the slog level for LogLevel.
func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return l
}

// NewLogger returns a text logger on w at the configured level.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.Level()}))
}
