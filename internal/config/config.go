// Package config loads the sbomdiff configuration file.
//
// The file lives at $XDG_CONFIG_HOME/sbomdiff/config.toml (or
// ~/.config/sbomdiff/config.toml). A missing file yields [Default]:
//
//	formats = ["xlsx"]
//	output_dir = "reports"
//	parallel = true
//	max_cell_length = 32000
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	prefix = "ci"
//	ttl = "72h"
//
//	[server]
//	addr = ":8080"
//
// Command-line flags override values from the file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/sbomdiff/pkg/cache"
	apperr "github.com/matzehuels/sbomdiff/pkg/errors"
	"github.com/matzehuels/sbomdiff/pkg/render"
	"github.com/matzehuels/sbomdiff/pkg/sink"
)

const appName = "sbomdiff"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the parsed configuration file.
type Config struct {
	Formats         []string `toml:"formats"`
	OutputDir       string   `toml:"output_dir"`
	Parallel        bool     `toml:"parallel"`
	ContinueOnError bool     `toml:"continue_on_error"`
	MaxCellLength   int      `toml:"max_cell_length"`

	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig selects and configures the report cache.
type CacheConfig struct {
	Backend string `toml:"backend"`

	// Dir overrides the file cache directory.
	Dir string `toml:"dir"`

	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`

	// Prefix namespaces keys so several setups can share one backend.
	Prefix string `toml:"prefix"`

	TTL time.Duration `toml:"ttl"`
}

// ServerConfig configures "sbomdiff serve".
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Formats:       []string{sink.FormatXLSX},
		MaxCellLength: render.DefaultMaxCellLength,
		Cache: CacheConfig{
			Backend:   BackendFile,
			RedisAddr: "localhost:6379",
			TTL:       cache.TTLReport,
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// Path returns the configuration file location.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the file at path on top of [Default]. A missing file is not
// an error. Unknown keys are rejected so typos do not pass silently.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "config %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, apperr.New(apperr.ErrCodeInvalidInput, "config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "config %s", path)
	}
	return cfg, nil
}

// LoadDefault loads the file at [Path].
func LoadDefault() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if err := sink.ValidateFormats(c.Formats); err != nil {
		return err
	}
	if c.MaxCellLength < 0 {
		return apperr.New(apperr.ErrCodeInvalidInput, "max_cell_length must not be negative")
	}
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return apperr.New(apperr.ErrCodeInvalidInput, "unknown cache backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return apperr.New(apperr.ErrCodeInvalidInput, "cache ttl must not be negative")
	}
	return nil
}
