// Package logging provides the small leveled console logger used by the benchmark.
package logging

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/minio/pkg/console"
)

// Logger is the logging surface injected into every component
type Logger interface {
	Info(format string, args ...interface{})
	Debug(format string, args ...interface{})
	Error(format string, args ...interface{})
}

func init() {
	console.SetColor("INFO", color.New(color.FgGreen))
	console.SetColor("DEBUG", color.New(color.FgCyan))
	console.SetColor("ERROR", color.New(color.FgRed, color.Bold))
}

// ConsoleLogger writes one "[LEVEL] message" line per call.
// Debug lines are only written when debug is enabled.
type ConsoleLogger struct {
	out   io.Writer
	debug bool
}

// New creates a console logger writing to out
func New(out io.Writer, debug bool) *ConsoleLogger {
	return &ConsoleLogger{out: out, debug: debug}
}

// Info logs an info message
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.log("INFO", format, args...)
}

// Debug logs a debug message
func (l *ConsoleLogger) Debug(format string, args ...interface{}) {
	if l.debug {
		l.log("DEBUG", format, args...)
	}
}

// Error logs an error message
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.log("ERROR", format, args...)
}

func (l *ConsoleLogger) log(level, format string, args ...interface{}) {
	tag := console.Colorize(level, "["+level+"]")
	fmt.Fprintf(l.out, "%s %s\n", tag, fmt.Sprintf(format, args...))
}
