package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"

	"taglist/internal/config"
	"taglist/internal/diagfmt"
	"taglist/internal/driver"
	"taglist/internal/observ"
	"taglist/internal/prof"
)

// settings is taglist.toml merged with the command line. Flags win when they
// were set explicitly.
type settings struct {
	cfg    config.Config
	logger *zap.Logger
	timer  *observ.Timer
	prof   *prof.Session

	colorOut bool // stdout
	colorErr bool // stderr
	lang     language.Tag
	format   diagfmt.Format
	driver   driver.Options
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Flags()
	s := &settings{timer: observ.NewTimer()}

	level, _ := flags.GetString("log-level")
	logger, err := newLogger(level)
	if err != nil {
		return nil, err
	}
	s.logger = logger

	idx := s.timer.Begin("config")
	configPath, _ := flags.GetString("config")
	if configPath != "" {
		s.cfg, err = config.Load(configPath)
	} else {
		s.cfg, err = config.Discover(".")
		if errors.Is(err, config.ErrNoConfig) {
			err = nil
		}
	}
	if err != nil {
		s.timer.End(idx, "failed")
		return nil, err
	}
	s.timer.End(idx, s.cfg.Path)
	if s.cfg.Path != "" {
		logger.Debug("config loaded", zap.String("path", s.cfg.Path))
	}

	colorMode := s.cfg.Output.Color
	if flags.Changed("color") {
		colorMode, _ = flags.GetString("color")
	}
	switch strings.ToLower(colorMode) {
	case "on":
		s.colorOut, s.colorErr = true, true
	case "off":
		s.colorOut, s.colorErr = false, false
	case "auto":
		s.colorOut, s.colorErr = isTerminal(cmd.OutOrStdout()), isTerminal(cmd.ErrOrStderr())
	default:
		return nil, fmt.Errorf("unsupported color mode %q (must be auto, on or off)", colorMode)
	}

	langName := s.cfg.Output.Lang
	if flags.Changed("lang") {
		langName, _ = flags.GetString("lang")
	}
	if s.lang, err = diagfmt.ParseLang(langName); err != nil {
		return nil, err
	}

	formatName := s.cfg.Output.Format
	if f := flags.Lookup("format"); f != nil && f.Changed {
		formatName = f.Value.String()
	}
	if s.format, err = diagfmt.ParseFormat(formatName); err != nil {
		return nil, err
	}

	normName := s.cfg.Parse.Normalize
	if f := flags.Lookup("normalize"); f != nil && f.Changed {
		normName = f.Value.String()
	}
	if s.driver.Normalize, err = driver.ParseNormalization(normName); err != nil {
		return nil, err
	}

	s.driver.MaxTags = s.cfg.Parse.MaxTags
	if flags.Changed("max-tags") {
		s.driver.MaxTags, _ = flags.GetInt("max-tags")
	}
	if s.driver.MaxTags < 0 {
		return nil, fmt.Errorf("--max-tags must not be negative")
	}
	s.driver.MaxDiagnostics = s.cfg.Parse.MaxDiagnostics
	if flags.Changed("max-diagnostics") {
		s.driver.MaxDiagnostics, _ = flags.GetInt("max-diagnostics")
	}
	s.driver.Jobs, _ = flags.GetInt("jobs")
	s.driver.Logger = logger

	if noCache, _ := flags.GetBool("no-cache"); !noCache {
		cache, err := driver.OpenDiskCache("taglist")
		if err != nil {
			logger.Warn("result cache disabled", zap.Error(err))
		} else {
			s.driver.Cache = cache
		}
	}

	var profOpts prof.Options
	profOpts.CPUProfile, _ = flags.GetString("cpu-profile")
	profOpts.MemProfile, _ = flags.GetString("mem-profile")
	profOpts.Trace, _ = flags.GetString("runtime-trace")
	if s.prof, err = prof.Start(profOpts); err != nil {
		return nil, err
	}

	return s, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	cfg.Sampling = nil
	return cfg.Build()
}

// finish stops the profilers, prints timings when --timings is set and
// flushes the logger.
func (s *settings) finish(cmd *cobra.Command) {
	if err := s.prof.Stop(); err != nil {
		s.logger.Warn("profiling", zap.Error(err))
	}
	if show, _ := cmd.Flags().GetBool("timings"); show {
		fmt.Fprint(cmd.ErrOrStderr(), s.timer.Summary())
	}
	_ = s.logger.Sync()
}

func (s *settings) prettyOpts(color bool) diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{Color: color, Lang: s.lang, PathMode: diagfmt.PathModeAuto}
}

func (s *settings) jsonOpts() diagfmt.JSONOpts {
	return diagfmt.JSONOpts{IncludePositions: true, IncludeFixes: true, Lang: s.lang}
}
