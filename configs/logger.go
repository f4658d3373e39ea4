package configs

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger configures the process-wide logrus logger and returns it.
func NewLogger(cfg *Config) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetOutput(os.Stdout)

	if cfg.IsProduction() {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithField("level", cfg.LogLevel).Warn("unknown LOG_LEVEL, using info")
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}
