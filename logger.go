package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Logger receives progress and warning messages from the trimmer.
type Logger interface {
	Warn(msg string)
	Info(msg string)
}

// consoleLogger prints info lines to out and highlighted warnings to errOut.
type consoleLogger struct {
	out, errOut io.Writer
	warn        *color.Color
}

func newConsoleLogger() *consoleLogger {
	return &consoleLogger{
		out:    os.Stdout,
		errOut: os.Stderr,
		warn:   color.New(color.FgHiYellow),
	}
}

func (l *consoleLogger) Warn(msg string) {
	l.warn.Fprintln(l.errOut, "WARNING: "+msg)
}

func (l *consoleLogger) Info(msg string) {
	fmt.Fprintln(l.out, msg)
}
