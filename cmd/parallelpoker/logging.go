package main

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger configures a logger writing to w in the chosen format.
func newLogger(w io.Writer, g *Globals) *log.Logger {
	level := log.InfoLevel
	if g.Debug {
		level = log.DebugLevel
	}

	formatter := log.TextFormatter
	switch g.LogFormat {
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
}

// fileLogger logs to path, or nowhere when path is empty. The returned
// function closes the file.
func fileLogger(path string, g *Globals) (*log.Logger, func() error, error) {
	if path == "" {
		return newLogger(io.Discard, g), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return newLogger(f, g), f.Close, nil
}
