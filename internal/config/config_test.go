package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	apperr "github.com/matzehuels/sbomdiff/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
formats = ["json", "text"]
output_dir = "reports"
parallel = true
continue_on_error = true
max_cell_length = 500

[cache]
backend = "redis"
redis_addr = "cache:6379"
redis_db = 2
prefix = "ci"
ttl = "72h"

[server]
addr = "127.0.0.1:9000"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	want := Config{
		Formats:         []string{"json", "text"},
		OutputDir:       "reports",
		Parallel:        true,
		ContinueOnError: true,
		MaxCellLength:   500,
		Cache: CacheConfig{
			Backend:   BackendRedis,
			RedisAddr: "cache:6379",
			RedisDB:   2,
			Prefix:    "ci",
			TTL:       72 * time.Hour,
		},
		Server: ServerConfig{Addr: "127.0.0.1:9000"},
	}
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("Load() = %+v, want %+v", cfg, want)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "parallel = true\n"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	def := Default()
	if !cfg.Parallel {
		t.Error("Parallel should be set from the file")
	}
	if !reflect.DeepEqual(cfg.Formats, def.Formats) || cfg.Cache != def.Cache || cfg.MaxCellLength != def.MaxCellLength {
		t.Errorf("unset values should keep defaults, got %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "formats = [", "config"},
		{"unknown key", "colour = true\n", "unknown keys colour"},
		{"format", `formats = ["pdf"]`, "pdf"},
		{"backend", "[cache]\nbackend = \"memcached\"\n", "memcached"},
		{"negative cell length", "max_cell_length = -1\n", "max_cell_length"},
		{"negative ttl", "[cache]\nttl = \"-1h\"\n", "ttl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if !apperr.Is(err, apperr.ErrCodeInvalidInput) {
				t.Errorf("error code = %q, want INVALID_INPUT", apperr.GetCode(err))
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	path, err := Path()
	if err != nil {
		t.Fatalf("Path() error: %v", err)
	}
	if want := filepath.Join("/tmp/xdg", "sbomdiff", "config.toml"); path != want {
		t.Errorf("Path() = %q, want %q", path, want)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	path, err = Path()
	if err != nil {
		t.Fatalf("Path() error: %v", err)
	}
	if !strings.HasSuffix(path, filepath.Join(".config", "sbomdiff", "config.toml")) {
		t.Errorf("Path() = %q, want it under ~/.config", path)
	}
}

func TestLoadDefaultUsesXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if err := os.MkdirAll(filepath.Join(dir, "sbomdiff"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sbomdiff", "config.toml"), []byte("output_dir = \"out\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() error: %v", err)
	}
	if cfg.OutputDir != "out" {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, "out")
	}
}
