// Package logging builds the process logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

const timestampLayout = "2006-01-02 15:04:05"

// New returns a logrus logger writing to stderr at the given level. format is
// "text" or "json"; anything else is treated as text.
func New(level string, format string) (*logrus.Logger, error) {
	return NewWithWriter(os.Stderr, level, format)
}

func NewWithWriter(out io.Writer, level string, format string) (*logrus.Logger, error) {
	parsedLevel := logrus.InfoLevel
	if trimmed := strings.TrimSpace(level); trimmed != "" {
		var err error
		parsedLevel, err = logrus.ParseLevel(trimmed)
		if err != nil {
			return nil, fmt.Errorf("parse log level %q: %w", trimmed, err)
		}
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(parsedLevel)

	if strings.EqualFold(strings.TrimSpace(format), "json") {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: timestampLayout})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: timestampLayout,
			DisableColors:   true,
		})
	}
	return logger, nil
}
