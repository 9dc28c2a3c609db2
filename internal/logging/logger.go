package logging

import (
	"io"
	"os"
	"strings"

	"github.com/phuslu/log"
)

// NewWithWriter builds the process logger. format is "console" for humans or
// "json"; anything else picks console when w is a terminal.
func NewWithWriter(level, format string, w io.Writer) *log.Logger {
	lvl := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if strings.TrimSpace(level) == "" {
		lvl = log.InfoLevel
	}

	var writer log.Writer
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		writer = &log.IOWriter{Writer: w}
	case "console":
		writer = &log.ConsoleWriter{Writer: w, QuoteString: true, EndWithMessage: true}
	default:
		if f, ok := w.(*os.File); ok && log.IsTerminal(f.Fd()) {
			writer = &log.ConsoleWriter{Writer: w, ColorOutput: true, QuoteString: true, EndWithMessage: true}
		} else {
			writer = &log.IOWriter{Writer: w}
		}
	}

	return &log.Logger{
		Level:  lvl,
		Writer: writer,
	}
}

// Nop discards everything. Used where a component is built without a logger.
func Nop() *log.Logger {
	return &log.Logger{Level: log.PanicLevel, Writer: &log.IOWriter{Writer: io.Discard}}
}

// OrNop returns l, or a discarding logger when l is nil.
func OrNop(l *log.Logger) *log.Logger {
	if l == nil {
		return Nop()
	}
	return l
}
