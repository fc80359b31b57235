// Package logger provides the levelled, colour-tagged logger shared by the
// service components. Each component owns a Logger with its own prefix.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorGreen  = "\033[32m"
)

var (
	ErrEmptyPrefix = errors.New("logger: prefix is required")
	ErrNilWriter   = errors.New("logger: writer is required")
)

// Logger writes "[PREFIX] [LEVEL] message" lines, the prefix painted in the
// component colour.
type Logger struct {
	out *log.Logger
}

// New creates a Logger for a component. color is an ANSI escape sequence and may be empty.
func New(prefix, color string, w io.Writer) (*Logger, error) {
	if prefix == "" {
		return nil, ErrEmptyPrefix
	}
	if w == nil {
		return nil, ErrNilWriter
	}

	tag := fmt.Sprintf("[%s] ", prefix)
	if color != "" {
		tag = fmt.Sprintf("%s[%s]%s ", color, prefix, colorReset)
	}
	return &Logger{out: log.New(w, tag, log.LstdFlags|log.Lmsgprefix)}, nil
}

// Info logs a routine event.
func (l *Logger) Info(msg string) {
	l.out.Printf("%s[INFO]%s %s", colorGreen, colorReset, msg)
}

// Warning logs an unexpected but handled event.
func (l *Logger) Warning(msg string) {
	l.out.Printf("%s[WARNING]%s %s", colorYellow, colorReset, msg)
}

// Error logs a failure.
func (l *Logger) Error(msg string) {
	l.out.Printf("%s[ERROR]%s %s", colorRed, colorReset, msg)
}
