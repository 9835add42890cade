// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package logging builds the process-wide [slog.Logger] and its destinations.

The environment mode selects the sinks:

  - every mode writes JSON lines to <dir>/error/error.log (error level only)
    and <dir>/info/info.log (info level and above), both rotated by size;
  - "test" mode swaps the directory base name for test_<name>;
  - development adds a human-readable console handler on stdout.

All entries carry the "app" attribute and a DD-MM-YYYY HH:MM:SS timestamp.
*/
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	slogmulti "github.com/samber/slog-multi"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/taibuivan/characters-gateway/internal/platform/config"
	"github.com/taibuivan/characters-gateway/internal/platform/constants"
)

// timestampLayout mirrors the DD-MM-YYYY HH:mm:ss layout used by the log shippers.
const timestampLayout = "02-01-2006 15:04:05"

// Rotation defaults applied when Options leaves them at zero.
const (
	defaultMaxSizeMB  = 100
	defaultMaxAgeDays = 30
)

// Options configures [New].
type Options struct {
	Environment string
	Dir         string
	Debug       bool

	// MaxSizeMB rotates a sink once it reaches this size. MaxAgeDays prunes
	// rotated files older than this.
	MaxSizeMB  int
	MaxAgeDays int

	// Console receives the development console output. Defaults to os.Stdout.
	Console io.Writer
}

// Logger is the configured logger plus the sinks it owns.
type Logger struct {
	*slog.Logger
	sinks []*lumberjack.Logger
}

// Close closes the file sinks.
func (logger *Logger) Close() error {
	var errs []error
	for _, sink := range logger.sinks {
		if err := sink.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Dir resolves the log directory for the environment mode.
func Dir(environment, dir string) string {
	if environment != config.EnvTest {
		return dir
	}
	return filepath.Join(filepath.Dir(dir), "test_"+filepath.Base(dir))
}

// New prepares the sinks for opts and returns a logger writing to all of them.
func New(opts Options) (*Logger, error) {
	root := Dir(opts.Environment, opts.Dir)

	baseLevel := slog.LevelInfo
	if opts.Debug {
		baseLevel = slog.LevelDebug
	}

	errorSink, err := openSink(filepath.Join(root, "error", "error.log"), opts)
	if err != nil {
		return nil, err
	}

	infoSink, err := openSink(filepath.Join(root, "info", "info.log"), opts)
	if err != nil {
		return nil, err
	}

	handlers := []slog.Handler{
		slog.NewJSONHandler(errorSink, handlerOptions(slog.LevelError)),
		slog.NewJSONHandler(infoSink, handlerOptions(baseLevel)),
	}

	if opts.Environment != config.EnvProduction && opts.Environment != config.EnvTest {
		console := opts.Console
		if console == nil {
			console = os.Stdout
		}
		handlers = append(handlers, slog.NewTextHandler(console, handlerOptions(baseLevel)))
	}

	logger := slog.New(slogmulti.Fanout(handlers...)).With(slog.String(constants.FieldApp, constants.AppName))

	return &Logger{Logger: logger, sinks: []*lumberjack.Logger{errorSink, infoSink}}, nil
}

// openSink creates the sink directory and returns a size-rotated writer for path.
func openSink(path string, opts Options) (*lumberjack.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logging: create %s: %w", filepath.Dir(path), err)
	}

	maxSize, maxAge := opts.MaxSizeMB, opts.MaxAgeDays
	if maxSize <= 0 {
		maxSize = defaultMaxSizeMB
	}
	if maxAge <= 0 {
		maxAge = defaultMaxAgeDays
	}

	return &lumberjack.Logger{
		Filename: path,
		MaxSize:  maxSize,
		MaxAge:   maxAge,
	}, nil
}

func handlerOptions(level slog.Level) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			if len(groups) == 0 && attr.Key == slog.TimeKey && attr.Value.Kind() == slog.KindTime {
				return slog.String(slog.TimeKey, attr.Value.Time().Format(timestampLayout))
			}
			return attr
		},
	}
}
