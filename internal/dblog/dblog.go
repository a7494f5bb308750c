// Package dblog configures the single structured logger the process
// uses for lifecycle and fatal-path events, scaled down from the
// teacher corpus's xmysql-server logger package (InitLogger,
// parseLogLevel, a package-level *logrus.Logger) to the one logger an
// embedded single-process store needs.
package dblog

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the process-wide logger, configured by Init and safe to
// use immediately (it defaults to info level, text format, stderr).
var Logger = logrus.New()

func init() {
	Logger.SetOutput(os.Stderr)
	Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	Logger.SetLevel(logrus.InfoLevel)
}

// Init reconfigures Logger's level from a string such as "debug",
// "info", "warn", or "error". An unrecognized level is left at its
// current setting and returns an error.
func Init(level string) error {
	parsed, err := parseLogLevel(level)
	if err != nil {
		return err
	}
	Logger.SetLevel(parsed)
	return nil
}

func parseLogLevel(level string) (logrus.Level, error) {
	if level == "" {
		return logrus.InfoLevel, nil
	}
	return logrus.ParseLevel(level)
}

// Table returns a logger scoped to one table, for lifecycle lines that
// name the table they concern (db_open/db_close per spec.md §4.G).
func Table(name string) *logrus.Entry {
	return Logger.WithField("table", name)
}
