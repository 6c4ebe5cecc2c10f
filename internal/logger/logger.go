// Package logger holds the process-wide structured logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// L is the global logger instance. It's initialized to discard all output by default.
// Call Init() to enable logging to a file.
var L *slog.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

var current *os.File

const (
	logPrefix     = "hexchunk-"
	logSuffix     = ".log"
	retentionDays = 30
)

// Options configures the logger initialization.
type Options struct {
	Enabled bool             // If false, all logging is discarded
	LogDir  string           // Directory for log files. Default: ~/.hexchunk/logs
	Debug   bool             // Log every emitted record, not just scan boundaries
	Now     func() time.Time // Clock used for file naming and retention
}

// Init configures logging and returns the path of the log file, or "" when
// logging is disabled.
func Init(opts Options) (string, error) {
	Close()
	if !opts.Enabled {
		L = slog.New(slog.NewTextHandler(io.Discard, nil))
		return "", nil
	}

	logDir := opts.LogDir
	if logDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		logDir = filepath.Join(home, ".hexchunk", "logs")
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return "", err
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	// Best effort.
	cleanOldLogs(logDir, now())

	filename := filepath.Join(logDir, logPrefix+now().Format("2006-01-02")+logSuffix)

	f, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return "", err
	}

	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}

	current = f
	L = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	return filename, nil
}

// Close closes the log file, if any, and resets L to discard.
func Close() {
	if current != nil {
		_ = current.Close()
		current = nil
	}
	L = slog.New(slog.NewTextHandler(io.Discard, nil))
}

// cleanOldLogs removes log files older than retentionDays.
func cleanOldLogs(logDir string, now time.Time) {
	cutoff := now.AddDate(0, 0, -retentionDays)

	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, logPrefix) || !strings.HasSuffix(name, logSuffix) {
			continue
		}

		dateStr := strings.TrimSuffix(strings.TrimPrefix(name, logPrefix), logSuffix)
		logDate, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}

		if logDate.Before(cutoff) {
			os.Remove(filepath.Join(logDir, name))
		}
	}
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) { L.Error(msg, args...) }
