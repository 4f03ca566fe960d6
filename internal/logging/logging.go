// Package logging configures the process-wide logrus logger for the command
// line tools.
package logging

import (
	"io"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var defaultLogFormatter = &log.TextFormatter{DisableTimestamp: true}

// infoFormatter prints Info events as the bare message, which keeps event
// output readable, and everything else in the standard text format.
type infoFormatter struct{}

func (f *infoFormatter) Format(entry *log.Entry) ([]byte, error) {
	if entry.Level == log.InfoLevel {
		return append([]byte(entry.Message), '\n'), nil
	}
	return defaultLogFormatter.Format(entry)
}

// Setup sets the level by name ("error", "info", "debug", ...). Levels
// above info switch back to the standard formatter so fields are visible.
func Setup(level string, out io.Writer) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "log level %q", level)
	}
	if out != nil {
		log.SetOutput(out)
	}
	log.SetLevel(lvl)
	if lvl > log.InfoLevel {
		log.SetFormatter(defaultLogFormatter)
	} else {
		log.SetFormatter(new(infoFormatter))
	}
	return nil
}
