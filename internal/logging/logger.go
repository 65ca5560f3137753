// Package logging implements a rotating file + console logger: a
// lumberjack.Logger fanned out behind io.MultiWriter, with a
// log.Printf-with-emoji console style meant for a human operator watching a
// single process, not a log aggregator.
package logging

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps a standard *log.Logger writing to both stdout and a rotated
// file.
type Logger struct {
	*log.Logger
	rotator *lumberjack.Logger
}

// Config holds the rotating-file settings the logging section of
// EngineConfig carries.
type Config struct {
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// New builds a Logger writing to both os.Stdout and a lumberjack-rotated
// file at cfg.FilePath.
func New(cfg Config) *Logger {
	rotator := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
	writer := io.MultiWriter(os.Stdout, rotator)
	return &Logger{
		Logger:  log.New(writer, "", log.LstdFlags),
		rotator: rotator,
	}
}

// Close closes the underlying rotated file.
func (l *Logger) Close() error {
	return l.rotator.Close()
}

// Infof logs an informational line.
func (l *Logger) Infof(format string, args ...any) {
	l.Printf("ℹ️  "+format, args...)
}

// Warnf logs a warning line.
func (l *Logger) Warnf(format string, args ...any) {
	l.Printf("⚠️  "+format, args...)
}

// Errorf logs an error line.
func (l *Logger) Errorf(format string, args ...any) {
	l.Printf("❌ "+format, args...)
}

// Signalf logs an emitted trading signal.
func (l *Logger) Signalf(symbol string, format string, args ...any) {
	l.Printf("📊 [%s] "+format, append([]any{symbol}, args...)...)
}
