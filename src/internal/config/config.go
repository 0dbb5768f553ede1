// Package config loads bib2apa defaults from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"bib2apa/src/internal/stringsx"
)

const (
	// Dir is the directory name under XDG_CONFIG_HOME.
	Dir = "bib2apa"
	// File is the config file name.
	File = "config.yml"

	// EnvConfig overrides the config file path.
	EnvConfig = "BIB2APA_CONFIG"
	// EnvParser overrides the parser backend set in the config file.
	EnvParser = "BIB2APA_PARSER"
)

// Config holds user defaults. Zero values mean "not set".
type Config struct {
	Parser string `yaml:"parser,omitempty"`
	InText bool   `yaml:"in_text,omitempty"`
}

// Path returns the config file location: $BIB2APA_CONFIG, else
// $XDG_CONFIG_HOME/bib2apa/config.yml, else ~/.config/bib2apa/config.yml.
func Path() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	home := os.Getenv("XDG_CONFIG_HOME")
	if home == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		home = filepath.Join(h, ".config")
	}
	return filepath.Join(home, Dir, File)
}

// Load reads .env from the working directory (without overriding variables
// already set), then the config file, then applies environment overrides.
// A missing config file is not an error. When the file cannot be read or
// decoded the error is returned together with a Config that still carries
// the environment overrides.
func Load() (Config, error) {
	_ = godotenv.Load()
	cfg, err := LoadFile(Path())
	cfg.Parser = stringsx.FirstNonEmpty(os.Getenv(EnvParser), cfg.Parser)
	return cfg, err
}

// LoadFile decodes the YAML config at path; an empty path or missing file
// yields the zero Config.
func LoadFile(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
