package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// slogLogger implements core.Logger on top of a structured logger
type slogLogger struct {
	logger *slog.Logger
}

// newSlogLogger adapts logger for packages that take a core.Logger
func newSlogLogger(logger *slog.Logger) core.Logger {
	return &slogLogger{logger: logger}
}

// Printf implements core.Logger interface
func (l *slogLogger) Printf(format string, args ...interface{}) {
	l.logger.Info(strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
}
