package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// LogFilePath is the default log file, relative to the working directory (project root when run via go run ./cmd/orbit).
const LogFilePath = "logs/orbit.txt"

// maxLines caps the in-memory history kept for the HUD.
const maxLines = 200

// Logger writes leveled events to the console and a log file, and keeps the most recent
// message lines in memory for on-screen display. The embedded zerolog.Logger provides
// Info(), Debug(), Warn() and Error().
type Logger struct {
	zerolog.Logger

	mu    sync.Mutex
	lines []string
	file  *os.File
}

// New returns a Logger writing human-readable lines to stdout and appending JSON events to
// path (LogFilePath when empty). The log directory is created if missing.
func New(path string, level zerolog.Level) (*Logger, error) {
	if path == "" {
		path = LogFilePath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	mlw := zerolog.MultiLevelWriter(
		zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339},
		f,
	)
	l := NewWithWriter(mlw, level)
	l.file = f
	return l, nil
}

// NewWithWriter returns a Logger writing JSON events to w. Used by tests and tools.
func NewWithWriter(w io.Writer, level zerolog.Level) *Logger {
	l := &Logger{lines: make([]string, 0)}
	l.Logger = zerolog.New(w).Level(level).With().Timestamp().Logger().
		Hook(zerolog.HookFunc(l.record))
	return l
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(name string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// record keeps each emitted message, prefixed with [timestamp] and level, in the line buffer.
func (l *Logger) record(_ *zerolog.Event, level zerolog.Level, msg string) {
	if level < l.GetLevel() || msg == "" {
		return
	}
	ts := time.Now().Format("2006-01-02 15:04:05")
	stamped := "[" + ts + "] " + strings.ToUpper(level.String()) + " " + msg

	l.mu.Lock()
	l.lines = append(l.lines, stamped)
	if len(l.lines) > maxLines {
		l.lines = append(l.lines[:0], l.lines[len(l.lines)-maxLines:]...)
	}
	l.mu.Unlock()
}

// Log writes a plain informational line.
func (l *Logger) Log(line string) {
	l.Info().Msg(line)
}

// Lines returns a copy of all stored lines.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Last returns the most recent line, or "" when nothing has been logged.
func (l *Logger) Last() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.lines) == 0 {
		return ""
	}
	return l.lines[len(l.lines)-1]
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
