// README: Process-wide logrus logger setup.
package infra

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger returns a JSON logger at the given level; unknown levels fall back to info.
func NewLogger(level string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.JSONFormatter{})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	return l
}
