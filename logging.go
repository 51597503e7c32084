package portfolio

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the App logger from LogLevel and LogFormat. Invalid
// values fall back to info and text; SiteConfig.Validate reports them.
func NewLogger(cfg SiteConfig) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)
	if cfg.LogFormat == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return l
}
