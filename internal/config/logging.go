package config

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Apply configures logger from the logging section. The returned close
// function releases the log file, if any.
func (l LoggingConfig) Apply(logger *logrus.Logger) (func() error, error) {
	if l.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(l.Level)
	if err != nil {
		logger.WithError(err).Error("Invalid log level, using INFO")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if l.File == "" {
		return func() error { return nil }, nil
	}

	f, err := os.OpenFile(l.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logger.SetOutput(io.MultiWriter(os.Stderr, f))
	return f.Close, nil
}
