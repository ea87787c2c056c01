// Package logx is a small JSON-lines logger. Output is discarded until
// SetOutput is called, so the TUI never writes log noise to the terminal.
package logx

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "debug"
	}
}

// ParseLevel maps "debug", "info", "warn"/"warning" and "error" to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Fields are structured key/value pairs attached to one entry.
type Fields map[string]any

var (
	mu       sync.RWMutex
	minLevel           = LevelWarn
	out      io.Writer = io.Discard
	secrets  []string
	verbose  bool
)

// SetOutput sets the destination for logs.
func SetOutput(w io.Writer) { mu.Lock(); out = w; mu.Unlock() }

// SetMinLevel sets the minimum level to emit.
func SetMinLevel(l Level) { mu.Lock(); minLevel = l; mu.Unlock() }

// SetVerbose disables truncation of long messages.
func SetVerbose(v bool) { mu.Lock(); verbose = v; mu.Unlock() }

// OpenFile appends logs to path at the given level and returns the file so
// the caller can close it on exit.
func OpenFile(path string, l Level) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	mu.Lock()
	out, minLevel = f, l
	mu.Unlock()
	return f, nil
}

// RegisterSecret adds a string to be redacted in outputs.
func RegisterSecret(s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	mu.Lock()
	secrets = append(secrets, s)
	mu.Unlock()
}

// Debugf logs a debug message.
func Debugf(format string, args ...any) { emit(LevelDebug, fmt.Sprintf(format, args...), nil) }

// Infof logs an info message.
func Infof(format string, args ...any) { emit(LevelInfo, fmt.Sprintf(format, args...), nil) }

// Warnf logs a warning message.
func Warnf(format string, args ...any) { emit(LevelWarn, fmt.Sprintf(format, args...), nil) }

// Errorf logs an error message.
func Errorf(format string, args ...any) { emit(LevelError, fmt.Sprintf(format, args...), nil) }

// Info logs msg with fields.
func Info(msg string, f Fields) { emit(LevelInfo, msg, f) }

// Debug logs msg with fields.
func Debug(msg string, f Fields) { emit(LevelDebug, msg, f) }

type entry struct {
	TS     string `json:"ts"`
	Level  string `json:"level"`
	Msg    string `json:"msg"`
	Fields Fields `json:"fields,omitempty"`
}

const maxLen = 2 * 1024

func emit(lvl Level, msg string, fields Fields) {
	mu.RLock()
	w, ml, v := out, minLevel, verbose
	mu.RUnlock()
	if lvl < ml || w == io.Discard {
		return
	}

	msg = clip(redact(msg), v)
	var clean Fields
	if len(fields) > 0 {
		clean = make(Fields, len(fields))
		for k, val := range fields {
			if s, ok := val.(string); ok {
				val = clip(redact(s), v)
			}
			clean[k] = val
		}
	}
	b, err := json.Marshal(entry{
		TS:     time.Now().Format(time.RFC3339Nano),
		Level:  lvl.String(),
		Msg:    msg,
		Fields: clean,
	})
	if err != nil {
		_, _ = io.WriteString(w, msg+"\n")
		return
	}
	_, _ = w.Write(append(b, '\n'))
}

func redact(s string) string {
	mu.RLock()
	defer mu.RUnlock()
	for _, sec := range secrets {
		s = strings.ReplaceAll(s, sec, "[REDACTED]")
	}
	return s
}

func clip(s string, verbose bool) string {
	if verbose || len(s) <= maxLen {
		return s
	}
	const suffix = "… [truncated]"
	return s[:maxLen-len(suffix)] + suffix
}
