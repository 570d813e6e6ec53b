// ABOUTME: Structured logging configuration using log/slog
// ABOUTME: CLI commands log to stderr; the TUI logs to debug.log in the config directory

package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileName is the TUI log file inside the config directory
const FileName = "debug.log"

// Options selects level, format, and destination
type Options struct {
	Level   string // debug, info, warn, error (default: info)
	Format  string // text, json (default: text)
	Verbose bool   // forces debug
}

var (
	mu      sync.Mutex
	logFile *os.File
)

// Init configures the default slog logger to write to w
func Init(w io.Writer, opts Options) {
	level := ParseLevel(opts.Level)
	if opts.Verbose {
		level = slog.LevelDebug
	}

	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.ToLower(opts.Format) == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	slog.SetDefault(slog.New(handler))
}

// InitFile points the default logger at configDir/debug.log so the
// terminal stays clean while the TUI runs. An empty configDir discards logs.
func InitFile(configDir string, opts Options) error {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()

	if configDir == "" {
		Init(io.Discard, opts)
		return nil
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		Init(io.Discard, opts)
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(configDir, FileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		Init(io.Discard, opts)
		return fmt.Errorf("opening log file: %w", err)
	}

	logFile = f
	Init(f, opts)
	return nil
}

// Close releases the log file opened by InitFile
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
}

func closeLocked() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// ParseLevel converts a string log level to slog.Level
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
