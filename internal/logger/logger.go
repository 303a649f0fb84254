// Package logger provides a small leveled logger used across the app.
// Levels are off (silent), normal (info and up), and verbose (adds
// debug). Safe for concurrent use.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// Level controls how much the logger emits.
type Level int

const (
	// LevelOff disables all output.
	LevelOff Level = iota
	// LevelNormal emits info, warn, and error.
	LevelNormal
	// LevelVerbose additionally emits debug.
	LevelVerbose
)

// Logger is a leveled logger safe for concurrent use.
type Logger struct {
	mu    sync.RWMutex
	level Level
	dbg   *log.Logger
	inf   *log.Logger
	wrn   *log.Logger
	err   *log.Logger
}

// New returns a logger at the given level writing to out.
// A nil out falls back to os.Stderr.
func New(level Level, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}

	flags := log.Ltime

	return &Logger{
		level: level,
		dbg:   log.New(out, "[DBG] ", flags),
		inf:   log.New(out, "[INF] ", flags),
		wrn:   log.New(out, "[WRN] ", flags),
		err:   log.New(out, "[ERR] ", flags),
	}
}

// SetLevel changes the level at runtime.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// GetLevel returns the current level.
func (l *Logger) GetLevel() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

func (l *Logger) logf(dst *log.Logger, min Level, format string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.level >= min {
		dst.Output(3, fmt.Sprintf(format, args...))
	}
}

// Debug logs at debug level. Only visible in verbose mode.
func (l *Logger) Debug(format string, args ...any) {
	l.logf(l.dbg, LevelVerbose, format, args...)
}

// Info logs at info level.
func (l *Logger) Info(format string, args ...any) {
	l.logf(l.inf, LevelNormal, format, args...)
}

// Warn logs at warn level.
func (l *Logger) Warn(format string, args ...any) {
	l.logf(l.wrn, LevelNormal, format, args...)
}

// Error logs at error level.
func (l *Logger) Error(format string, args ...any) {
	l.logf(l.err, LevelNormal, format, args...)
}
