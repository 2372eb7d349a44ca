// internal/platform/logx/logx.go
package logx

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/pterm/pterm"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Err(err error, kv ...any)
	With(kv ...any) Logger
	SetLevel(lvl Level)
}

type simpleLogger struct {
	mu    *sync.Mutex // shared by every clone produced by With
	lvl   *Level
	scope []string // fixed key=value pairs
	lg    *log.Logger
	color bool
}

var tagStyles = map[Level]*pterm.Style{
	LevelDebug: pterm.NewStyle(pterm.FgGray),
	LevelInfo:  pterm.NewStyle(pterm.FgCyan),
	LevelWarn:  pterm.NewStyle(pterm.FgYellow),
	LevelError: pterm.NewStyle(pterm.FgRed, pterm.Bold),
}

// New builds the process logger. Level comes from OPENHOURS_LOG_LEVEL and
// tags are colored unless NO_COLOR is set.
func New() Logger {
	_, noColor := os.LookupEnv("NO_COLOR")
	return newLogger(os.Stderr, parseLevel(os.Getenv("OPENHOURS_LOG_LEVEL")), !noColor)
}

// NewWithLevel creates a logger with a specific log level
func NewWithLevel(lvl Level) Logger {
	_, noColor := os.LookupEnv("NO_COLOR")
	return newLogger(os.Stderr, lvl, !noColor)
}

// NewWithWriter creates an uncolored logger writing to w.
func NewWithWriter(w io.Writer, lvl Level) Logger {
	return newLogger(w, lvl, false)
}

// NewSilent creates a logger that only outputs errors.
func NewSilent() Logger {
	return NewWithLevel(LevelError)
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() Logger {
	return newLogger(io.Discard, LevelError+1, false)
}

func newLogger(w io.Writer, lvl Level, color bool) *simpleLogger {
	return &simpleLogger{
		mu:    &sync.Mutex{},
		lvl:   &lvl,
		lg:    log.New(w, "", 0),
		color: color,
	}
}

func (s *simpleLogger) With(kv ...any) Logger {
	clone := *s
	clone.scope = append(append([]string{}, s.scope...), kvPairs(kv...)...)
	return &clone
}

func (s *simpleLogger) SetLevel(lvl Level) {
	s.mu.Lock()
	defer s.mu.Unlock()
	*s.lvl = lvl
}

func (s *simpleLogger) Debug(msg string, kv ...any) { s.log(LevelDebug, "DBG", msg, kv...) }
func (s *simpleLogger) Info(msg string, kv ...any)  { s.log(LevelInfo, "INF", msg, kv...) }
func (s *simpleLogger) Warn(msg string, kv ...any)  { s.log(LevelWarn, "WRN", msg, kv...) }
func (s *simpleLogger) Err(err error, kv ...any) {
	if err == nil {
		return
	}
	kv = append([]any{"error", err.Error()}, kv...)
	s.log(LevelError, "ERR", "", kv...)
}

func (s *simpleLogger) log(l Level, tag, msg string, kv ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l < *s.lvl {
		return
	}
	if s.color {
		tag = tagStyles[l].Sprint(tag)
	}

	fields := append([]string{}, s.scope...)
	fields = append(fields, kvPairs(kv...)...)

	parts := []string{time.Now().Format("15:04:05"), tag}
	if strings.TrimSpace(msg) != "" {
		parts = append(parts, msg)
	}
	parts = append(parts, fields...)

	s.lg.Println(strings.Join(parts, " "))
}

func kvPairs(kv ...any) []string {
	out := make([]string, 0, len(kv))
	for i := 0; i < len(kv); i += 2 {
		var k, v any
		k = kv[i]
		if i+1 < len(kv) {
			v = kv[i+1]
		} else {
			v = "(missing)"
		}
		out = append(out, fmt.Sprintf("%v=%v", k, v))
	}
	return out
}

// ParseLevel maps a user supplied level name to a Level. Unknown names fall
// back to info.
func ParseLevel(s string) Level {
	return parseLevel(s)
}

func parseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "dbg":
		return LevelDebug
	case "info", "inf", "":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "err", "error":
		return LevelError
	default:
		return LevelInfo
	}
}
