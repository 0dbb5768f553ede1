package config

import (
	"os"
	"path/filepath"
	"testing"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(old) })
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	return dir
}

func TestPath(t *testing.T) {
	t.Setenv(EnvConfig, "/tmp/explicit.yml")
	if got := Path(); got != "/tmp/explicit.yml" {
		t.Fatalf("Path with %s: got %q", EnvConfig, got)
	}
	t.Setenv(EnvConfig, "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got := Path(); got != filepath.Join("/xdg", "bib2apa", "config.yml") {
		t.Fatalf("Path with XDG: got %q", got)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadFile(filepath.Join(dir, "missing.yml"))
	if err != nil || cfg != (Config{}) {
		t.Fatalf("missing file: %+v %v", cfg, err)
	}
	if cfg, err = LoadFile(""); err != nil || cfg != (Config{}) {
		t.Fatalf("empty path: %+v %v", cfg, err)
	}
	p := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(p, []byte("parser: builtin\nin_text: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadFile(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Parser != "builtin" || !cfg.InText {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if err := os.WriteFile(p, []byte("parser: [unclosed\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(p); err == nil {
		t.Fatalf("expected error for malformed yaml")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)
	p := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(p, []byte("parser: builtin\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConfig, p)
	t.Setenv(EnvParser, "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Parser != "builtin" {
		t.Fatalf("file parser: got %q", cfg.Parser)
	}
	t.Setenv(EnvParser, "bibtex")
	if cfg, err = Load(); err != nil || cfg.Parser != "bibtex" {
		t.Fatalf("env parser: %+v %v", cfg, err)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := chdirTemp(t)
	t.Setenv(EnvConfig, filepath.Join(dir, "none.yml"))
	t.Setenv(EnvParser, "")
	os.Unsetenv(EnvParser)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(EnvParser+"=builtin\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Parser != "builtin" {
		t.Fatalf(".env parser: got %q", cfg.Parser)
	}
}

func TestLoad_MalformedFileKeepsEnv(t *testing.T) {
	dir := chdirTemp(t)
	p := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(p, []byte("parser: [unclosed\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConfig, p)
	t.Setenv(EnvParser, "builtin")
	cfg, err := Load()
	if err == nil {
		t.Fatalf("expected error for malformed config")
	}
	if cfg.Parser != "builtin" || cfg.InText {
		t.Fatalf("want env override on default config, got %+v", cfg)
	}
}
