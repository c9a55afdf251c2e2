// Package logger builds the structured logger every command uses.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to stderr, prefixed with service.
func New(service, level string) *log.Logger {
	return NewWriter(os.Stderr, service, level)
}

// NewWriter is New with an explicit destination.
func NewWriter(w io.Writer, service, level string) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		Prefix:          service,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
	l.SetLevel(ParseLevel(level))
	return l
}

// ParseLevel maps debug, info, warn and error; anything else is info.
func ParseLevel(s string) log.Level {
	switch strings.ToLower(s) {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	}
	return log.InfoLevel
}
