package app

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"
)

// LogLevel represents the severity of a log message.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// ParseLogLevel parses a string into a LogLevel, defaulting to info.
func ParseLogLevel(s string) LogLevel {
	switch s {
	case "debug", "DEBUG":
		return LogLevelDebug
	case "info", "INFO":
		return LogLevelInfo
	case "warn", "WARN", "warning", "WARNING":
		return LogLevelWarn
	case "error", "ERROR":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// Logger provides leveled, fielded logging. The terminal belongs to
// the editor UI, so output goes to a file or is discarded, never to
// stderr while the screen is active.
type Logger struct {
	mu     sync.Mutex
	level  LogLevel
	output io.Writer
	fields map[string]any
}

// NewLogger creates a logger writing to output. A nil output discards
// everything.
func NewLogger(level LogLevel, output io.Writer) *Logger {
	if output == nil {
		output = io.Discard
	}
	return &Logger{level: level, output: output, fields: make(map[string]any)}
}

// WithField returns a logger with the field attached to every message.
func (l *Logger) WithField(key string, value any) *Logger {
	fields := make(map[string]any, len(l.fields)+1)
	for k, v := range l.fields {
		fields[k] = v
	}
	fields[key] = value
	return &Logger{level: l.level, output: l.output, fields: fields}
}

// WithComponent returns a logger with the component field set.
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithField("component", component)
}

func (l *Logger) log(level LogLevel, format string, args ...any) {
	if level < l.level {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	line := fmt.Sprintf("%s [%s] %s", time.Now().Format(time.RFC3339), level, msg)

	if len(l.fields) > 0 {
		keys := make([]string, 0, len(l.fields))
		for k := range l.fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			line += fmt.Sprintf(" %s=%v", k, l.fields[k])
		}
	}
	fmt.Fprintln(l.output, line)
}

func (l *Logger) Debugf(format string, args ...any) { l.log(LogLevelDebug, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.log(LogLevelInfo, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.log(LogLevelWarn, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.log(LogLevelError, format, args...) }
