// Package logger provides leveled, module-tagged logging on top of the
// standard log package.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level is the severity of a log message.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	SILENT
)

var levelNames = map[Level]string{
	DEBUG:  "DEBUG",
	INFO:   "INFO",
	WARN:   "WARN",
	ERROR:  "ERROR",
	SILENT: "SILENT",
}

// Logger writes messages at or above its level.
type Logger struct {
	mu    sync.Mutex
	level Level
	out   *log.Logger
}

var (
	defaultLogger = New(INFO, os.Stderr)
	defaultMu     sync.RWMutex
)

// New creates a Logger writing to w. A nil writer means stderr.
func New(level Level, w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return &Logger{
		level: level,
		out:   log.New(w, "", log.Ldate|log.Ltime|log.Lmicroseconds),
	}
}

// Init replaces the package-level logger.
func Init(level Level, w io.Writer) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = New(level, w)
}

func std() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetLevel changes the minimum level.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// Level returns the minimum level.
func (l *Logger) Level() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

func (l *Logger) logf(level Level, module, format string, args ...any) {
	if level < l.Level() || level >= SILENT {
		return
	}

	prefix := "[" + levelNames[level] + "]"
	if module != "" {
		prefix += " [" + module + "]"
	}
	l.out.Printf("%s %s", prefix, fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(module, format string, args ...any) { l.logf(DEBUG, module, format, args...) }
func (l *Logger) Info(module, format string, args ...any)  { l.logf(INFO, module, format, args...) }
func (l *Logger) Warn(module, format string, args ...any)  { l.logf(WARN, module, format, args...) }
func (l *Logger) Error(module, format string, args ...any) { l.logf(ERROR, module, format, args...) }

// Package-level helpers use the logger installed by Init.

func Debug(module, format string, args ...any) { std().Debug(module, format, args...) }
func Info(module, format string, args ...any)  { std().Info(module, format, args...) }
func Warn(module, format string, args ...any)  { std().Warn(module, format, args...) }
func Error(module, format string, args ...any) { std().Error(module, format, args...) }

// ParseLevel parses a level name such as "info" or "WARN".
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DEBUG, nil
	case "INFO":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	case "SILENT", "NONE":
		return SILENT, nil
	default:
		return INFO, fmt.Errorf("invalid log level: %s", s)
	}
}

// String returns the level name.
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "UNKNOWN"
}
