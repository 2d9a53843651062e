// Package logging builds the per-run diagnostic logger: every message at or
// above the configured level goes both to stdout and to a timestamped log
// file under a logs directory.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultDir is where run log files are created
const DefaultDir = "logs"

// Levels is the fixed set of accepted level names, lowest first
var Levels = []string{"DEBUG", "INFO", "WARNING", "ERROR"}

// ParseLevel maps a level name to its logrus level
func ParseLevel(name string) (logrus.Level, error) {
	switch name {
	case "DEBUG":
		return logrus.DebugLevel, nil
	case "INFO":
		return logrus.InfoLevel, nil
	case "WARNING":
		return logrus.WarnLevel, nil
	case "ERROR":
		return logrus.ErrorLevel, nil
	}
	return 0, fmt.Errorf("unknown log level %q (expected one of %v)", name, Levels)
}

// New creates the run logger writing to stdout and to
// logs/pdf_replacer_<YYYYMMDD_HHMMSS>.log, creating the logs directory if
// absent. It returns the logger and the log file path.
func New(level string) (*logrus.Logger, string, error) {
	return NewAt(DefaultDir, level, time.Now())
}

// NewAt is New with an explicit directory and start time
func NewAt(dir, level string, start time.Time) (*logrus.Logger, string, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, "", fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	logPath := filepath.Join(dir, fmt.Sprintf("pdf_replacer_%s.log", start.Format("20060102_150405")))
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create log file %s: %w", logPath, err)
	}

	log := logrus.New()
	log.SetLevel(lvl)
	log.SetOutput(io.MultiWriter(os.Stdout, f))
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   true,
	})

	log.Infof("Logging initialized. Log file: %s", logPath)
	return log, logPath, nil
}
