// Package logger builds the application's logrus logger from LogConfig.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"preventivi/internal/config"
)

// New returns a logger writing to stdout. Format "json" selects the JSON
// formatter; anything else uses the text formatter. Unknown levels fall back
// to info.
func New(cfg config.LogConfig) *logrus.Logger {
	return NewWithOutput(cfg, os.Stdout)
}

// NewWithOutput is New with an explicit writer.
func NewWithOutput(cfg config.LogConfig, w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)

	if cfg.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)
	return l
}

// Discard returns a logger that drops every entry. Used by tests.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
