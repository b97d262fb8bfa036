// Package config discovers and decodes taglist.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"taglist/internal/diagfmt"
)

// FileName is the name looked up by Find.
const FileName = "taglist.toml"

// ErrNoConfig is returned by Find and Discover when no taglist.toml exists in
// the start directory or any of its parents.
var ErrNoConfig = errors.New("no " + FileName + " found")

type Config struct {
	// Path is the file the config was read from; empty for Default().
	Path   string       `toml:"-"`
	Parse  ParseConfig  `toml:"parse"`
	Output OutputConfig `toml:"output"`
}

type ParseConfig struct {
	MaxTags        int    `toml:"max_tags"`
	Normalize      string `toml:"normalize"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
}

type OutputConfig struct {
	Format string `toml:"format"`
	Color  string `toml:"color"`
	Lang   string `toml:"lang"`
}

var (
	normalizeModes = []string{"nfc", "nfkc", "none"}
	colorModes     = []string{"auto", "on", "off"}
)

// Default returns the settings used when no file is found.
func Default() Config {
	return Config{
		Parse: ParseConfig{
			Normalize:      "nfc",
			MaxDiagnostics: 100,
		},
		Output: OutputConfig{
			Format: "pretty",
			Color:  "auto",
			Lang:   "en",
		},
	}
}

// Find walks up from startDir and returns the first taglist.toml.
func Find(startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoConfig
		}
		dir = parent
	}
}

// Load decodes path on top of Default(). Keys missing from the file keep
// their defaults; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(meta); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Discover is Find followed by Load. When nothing is found it returns
// Default() together with ErrNoConfig.
func Discover(startDir string) (Config, error) {
	path, err := Find(startDir)
	if err != nil {
		return Default(), err
	}
	return Load(path)
}

func (cfg *Config) validate(meta toml.MetaData) error {
	if meta.IsDefined("parse", "max_tags") && cfg.Parse.MaxTags < 0 {
		return fmt.Errorf("[parse].max_tags must not be negative, got %d", cfg.Parse.MaxTags)
	}
	if meta.IsDefined("parse", "max_diagnostics") && cfg.Parse.MaxDiagnostics <= 0 {
		return fmt.Errorf("[parse].max_diagnostics must be positive, got %d", cfg.Parse.MaxDiagnostics)
	}
	cfg.Parse.Normalize = strings.ToLower(strings.TrimSpace(cfg.Parse.Normalize))
	if !slices.Contains(normalizeModes, cfg.Parse.Normalize) {
		return fmt.Errorf("[parse].normalize must be one of %s, got %q", strings.Join(normalizeModes, ", "), cfg.Parse.Normalize)
	}
	cfg.Output.Color = strings.ToLower(strings.TrimSpace(cfg.Output.Color))
	if !slices.Contains(colorModes, cfg.Output.Color) {
		return fmt.Errorf("[output].color must be one of %s, got %q", strings.Join(colorModes, ", "), cfg.Output.Color)
	}
	if _, err := diagfmt.ParseFormat(cfg.Output.Format); err != nil {
		return fmt.Errorf("[output].format: %w", err)
	}
	if _, err := diagfmt.ParseLang(cfg.Output.Lang); err != nil {
		return fmt.Errorf("[output].lang: %w", err)
	}
	return nil
}
