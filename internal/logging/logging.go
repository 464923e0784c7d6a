package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var root = newRootLogger()

func newRootLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level := logrus.InfoLevel
	if lvl := os.Getenv("AGENT_HOOKS_LOG_LEVEL"); lvl != "" {
		if parsed, err := logrus.ParseLevel(strings.ToLower(lvl)); err == nil {
			level = parsed
		}
	}
	log.SetLevel(level)

	return log
}

// NewLogger returns a structured logger scoped to a component, e.g.
// "hooks.executor" or "storage.sqlite".
func NewLogger(component string) *logrus.Entry {
	return root.WithField("component", component)
}

// SetLevel overrides the log level for the whole process.
func SetLevel(level logrus.Level) {
	root.SetLevel(level)
}
