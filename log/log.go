// Package log sets up the structured logger. The terminal belongs to the
// browser, so records go to a rotating file and never to stderr.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileName is the name of the log file inside Config.Dir.
const FileName = "gitref.log"

// Config holds logging configuration
type Config struct {
	Enabled  bool   `koanf:"enabled"`
	Dir      string `koanf:"dir"`
	MaxSize  int    `koanf:"max_size"`  // megabytes; 0 disables rotation
	MaxFiles int    `koanf:"max_files"` // rotated files kept
	MaxAge   int    `koanf:"max_age"`   // days
	Compress bool   `koanf:"compress"`
}

// DefaultConfig returns the default logging configuration, writing to dir.
func DefaultConfig(dir string) Config {
	return Config{
		Enabled:  true,
		Dir:      dir,
		MaxSize:  10,
		MaxFiles: 5,
		MaxAge:   30,
		Compress: true,
	}
}

// FilePath returns the full path to the log file
func FilePath(cfg Config) string {
	dir := cfg.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, FileName)
}

// New returns a logger writing to the file described by cfg and the closer
// for that file. A disabled config yields a logger that drops everything.
func New(cfg Config) (*slog.Logger, io.Closer, error) {
	if !cfg.Enabled {
		return Discard(), nopCloser{}, nil
	}

	path := FilePath(cfg)
	w, err := createRotatingWriter(path, cfg)
	if err != nil {
		return nil, nil, err
	}
	return slog.New(slog.NewTextHandler(w, nil)), w, nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// createRotatingWriter opens path, rotating it with lumberjack when a
// maximum size is configured.
func createRotatingWriter(path string, cfg Config) (io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("could not create log directory: %w", err)
	}

	if cfg.MaxSize <= 0 {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("could not open log file: %w", err)
		}
		return f, nil
	}

	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxFiles,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
		LocalTime:  true,
	}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
