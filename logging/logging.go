// Package logging builds the logrus logger shared by the demo, the planner and
// the command line tools.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Config selects the level and output format. Empty fields fall back to the
// LOG_LEVEL and LOG_FORMAT environment variables, then to "info" and "text".
type Config struct {
	Level  string
	Format string
	Output io.Writer
}

// New creates a logger from cfg.
func New(cfg Config) *logrus.Logger {
	log := logrus.New()

	levelName := cfg.Level
	if levelName == "" {
		levelName = os.Getenv("LOG_LEVEL")
	}
	if levelName == "" {
		levelName = "info"
	}
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	format := cfg.Format
	if format == "" {
		format = os.Getenv("LOG_FORMAT")
	}
	if strings.ToLower(format) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	if cfg.Output != nil {
		log.SetOutput(cfg.Output)
	} else {
		log.SetOutput(os.Stdout)
	}
	return log
}

// Discard returns a logger that drops everything. Used as the default when a
// component is built without one.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	log.SetLevel(logrus.PanicLevel)
	return log
}
