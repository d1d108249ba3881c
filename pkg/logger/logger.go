package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"pdf-text-pipeline/internal/domain"
)

// Level represents the logger verbosity threshold.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// PipelineLogger implements the domain.Logger interface with leveled
// key-value output.
type PipelineLogger struct {
	level Level
	out   *log.Logger
}

// New creates a logger with the given level ("debug", "info", "warn", "error").
func New(levelStr string) domain.Logger {
	return &PipelineLogger{
		level: parseLevel(levelStr),
		out:   log.New(os.Stdout, "", 0),
	}
}

// Debug logs a debug message.
func (l *PipelineLogger) Debug(msg string, fields ...interface{}) {
	if l.level <= LevelDebug {
		l.write("DEBUG", msg, fields...)
	}
}

// Info logs an informational message.
func (l *PipelineLogger) Info(msg string, fields ...interface{}) {
	if l.level <= LevelInfo {
		l.write("INFO", msg, fields...)
	}
}

// Warn logs a warning message.
func (l *PipelineLogger) Warn(msg string, fields ...interface{}) {
	if l.level <= LevelWarn {
		l.write("WARN", msg, fields...)
	}
}

// Error logs an error message together with the error value.
func (l *PipelineLogger) Error(msg string, err error, fields ...interface{}) {
	if l.level <= LevelError {
		all := append([]interface{}{"error", err}, fields...)
		l.write("ERROR", msg, all...)
	}
}

func (l *PipelineLogger) write(level, msg string, fields ...interface{}) {
	var sb strings.Builder
	sb.WriteString(time.Now().Format(time.RFC3339))
	sb.WriteString(" [")
	sb.WriteString(level)
	sb.WriteString("] ")
	sb.WriteString(msg)

	// Fields come in key-value pairs; a dangling key is ignored.
	for i := 0; i+1 < len(fields); i += 2 {
		sb.WriteString(fmt.Sprintf(" %v=%v", fields[i], fields[i+1]))
	}

	l.out.Println(sb.String())
}

func parseLevel(levelStr string) Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}
