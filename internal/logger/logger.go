package logger

import (
	"fmt"
	"io"
	"log"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelError
)

func ParseLevel(s string) (Level, error) {
	switch s {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

type Logger struct {
	l       *log.Logger
	level   Level
	traceID string
}

func New(l *log.Logger) *Logger {
	return &Logger{l: l, level: LevelInfo}
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *Logger {
	return New(log.New(io.Discard, "", 0))
}

func (l *Logger) SetLevel(level Level) {
	l.level = level
}

func (l *Logger) SetOutput(w io.Writer) {
	l.l.SetOutput(w)
}

// With returns a copy of the logger that tags every line with traceID.
func (l *Logger) With(traceID string) *Logger {
	return &Logger{l: l.l, level: l.level, traceID: traceID}
}

func (l *Logger) LogErrorf(format string, v ...any) {
	l.print(LevelError, "Error", format, v...)
}

func (l *Logger) LogInfo(format string, v ...any) {
	l.print(LevelInfo, "Info", format, v...)
}

func (l *Logger) LogDebug(format string, v ...any) {
	l.print(LevelDebug, "Debug", format, v...)
}

func (l *Logger) print(level Level, tag, format string, v ...any) {
	if level < l.level {
		return
	}

	msg := fmt.Sprintf(format, v...)

	if l.traceID != "" {
		l.l.Printf("[%s] traceID: %s: %s\n", tag, l.traceID, msg)

		return
	}

	l.l.Printf("[%s]: %s\n", tag, msg)
}
