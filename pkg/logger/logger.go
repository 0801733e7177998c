// Package logger provides the structured logger that main hands to the
// optimize handler and the solver breaker. It replaces ad-hoc
// fmt.Println/log.Printf calls with logrus fields that carry run/request
// context. The request-logging middleware, the stream handler, the hub, the
// cache and the database package log through logrus's standard logger,
// which InitLogger does not configure.
package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var global *logrus.Logger

// InitLogger builds the process-wide logger from LOG_LEVEL/LOG_FORMAT
// environment variables, defaulting to info-level text output.
func InitLogger() *logrus.Logger {
	log := logrus.New()

	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	if parsed, err := logrus.ParseLevel(strings.ToLower(level)); err == nil {
		log.SetLevel(parsed)
	} else {
		log.SetLevel(logrus.InfoLevel)
		log.WithField("invalid_level", level).Warn("invalid LOG_LEVEL, defaulting to info")
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	log.SetOutput(os.Stdout)
	global = log
	return log
}

// Get returns the process-wide logger, initializing it with defaults if
// InitLogger hasn't been called yet (useful in tests).
func Get() *logrus.Logger {
	if global == nil {
		return InitLogger()
	}
	return global
}

// WithRunContext attaches the fields that identify one optimizer run to every
// log line emitted while that run is in flight.
func WithRunContext(runID, site, sport string) *logrus.Entry {
	return Get().WithFields(logrus.Fields{
		"run_id": runID,
		"site":   site,
		"sport":  sport,
	})
}

// WithRequestContext attaches the fields that identify one inbound HTTP
// request.
func WithRequestContext(requestID string) *logrus.Entry {
	return Get().WithField("request_id", requestID)
}
