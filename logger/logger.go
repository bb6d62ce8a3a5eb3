// Package logger holds the process-wide logrus loggers.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	InfoLogger  *logrus.Logger
	WarnLogger  *logrus.Logger
	ErrorLogger *logrus.Logger
)

func init() {
	// Usable before InitLoggers runs, mostly for tests.
	InfoLogger = newLogger(os.Stdout, logrus.InfoLevel)
	WarnLogger = newLogger(os.Stdout, logrus.WarnLevel)
	ErrorLogger = newLogger(os.Stderr, logrus.ErrorLevel)
}

// InitLoggers configures the loggers from LOG_LEVEL and LOG_FILE.
// When LOG_FILE is set, output is duplicated into a rotating file.
func InitLoggers() {
	level := levelFromEnv()

	var out io.Writer = os.Stdout
	var errOut io.Writer = os.Stderr
	if path := os.Getenv("LOG_FILE"); path != "" {
		rotating := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    50, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		}
		out = io.MultiWriter(os.Stdout, rotating)
		errOut = io.MultiWriter(os.Stderr, rotating)
	}

	InfoLogger = newLogger(out, level)
	WarnLogger = newLogger(out, quieter(level, logrus.WarnLevel))
	ErrorLogger = newLogger(errOut, quieter(level, logrus.ErrorLevel))
}

// Discard silences every logger.
func Discard() {
	for _, l := range []*logrus.Logger{InfoLogger, WarnLogger, ErrorLogger} {
		l.SetOutput(io.Discard)
	}
}

func newLogger(out io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(level)
	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	return l
}

// quieter returns the less verbose of the two levels.
func quieter(a, b logrus.Level) logrus.Level {
	if a < b {
		return a
	}
	return b
}

func levelFromEnv() logrus.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return logrus.DebugLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
