// Package log provides the application logger, a logrus instance with an
// optional Sentry hook for warn-and-above entries.
package log

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/claimwell/claims-api/domain"
)

var logger = logrus.New()

func init() {
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	if domain.Env.GoEnv == domain.EnvDevelopment {
		logger.SetFormatter(&logrus.TextFormatter{})
		logger.SetLevel(logrus.DebugLevel)
	}

	if hook := NewSentryHook(domain.Env.GoEnv); hook != nil {
		logger.AddHook(hook)
	}
}

func WithFields(fields map[string]any) *logrus.Entry {
	return logger.WithFields(fields)
}

func Debugf(format string, args ...any) {
	logger.Debugf(format, args...)
}

func Infof(format string, args ...any) {
	logger.Infof(format, args...)
}

func Warningf(format string, args ...any) {
	logger.Warningf(format, args...)
}

func Errorf(format string, args ...any) {
	logger.Errorf(format, args...)
}

func Error(args ...any) {
	logger.Error(args...)
}

func Fatalf(format string, args ...any) {
	logger.Fatalf(format, args...)
}
