package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// TimeFormat renders the timestamp inside square brackets, e.g. [2025-03-01 14:30:00].
const TimeFormat = "[2006-01-02 15:04:05]"

// Logger is a wrapper around charmbracelet/log.Logger.
// Error lines are written to a dedicated stream, everything else to the
// embedded logger's stream.
type Logger struct {
	*log.Logger
	errs *log.Logger
}

var (
	instance *Logger
	once     sync.Once
)

// GetLogger returns the singleton logger writing to stdout and stderr.
func GetLogger() *Logger {
	once.Do(func() {
		instance = New(os.Stdout, os.Stderr)
	})
	return instance
}

// New creates a logger writing debug, info and warning lines to out and
// error lines to errOut.
func New(out, errOut io.Writer) *Logger {
	return &Logger{
		Logger: newBase(out),
		errs:   newBase(errOut),
	}
}

func newBase(w io.Writer) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		Level:           log.InfoLevel,
		ReportTimestamp: true,
		TimeFormat:      TimeFormat,
	})
	l.SetStyles(levelStyles())
	return l
}

func levelStyles() *log.Styles {
	styles := log.DefaultStyles()
	styles.Levels[log.DebugLevel] = lipgloss.NewStyle().SetString("[DEBUG]").Foreground(lipgloss.Color("12"))
	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().SetString("[INFO]").Foreground(lipgloss.Color("10"))
	styles.Levels[log.WarnLevel] = lipgloss.NewStyle().SetString("[WARNING]").Foreground(lipgloss.Color("11"))
	styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().SetString("[ERROR]").Foreground(lipgloss.Color("9"))
	styles.Levels[log.FatalLevel] = lipgloss.NewStyle().SetString("[FATAL]").Foreground(lipgloss.Color("9")).Bold(true)
	return styles
}

// ParseLevel maps DEBUG, INFO, WARN/WARNING and ERROR (any case) to a level.
func ParseLevel(level string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel, nil
	case "info":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return log.InfoLevel, fmt.Errorf("invalid log level %q (expected DEBUG, INFO, WARNING or ERROR)", level)
	}
}

// SetLevel sets the minimum level on both streams.
func (l *Logger) SetLevel(level log.Level) {
	l.Logger.SetLevel(level)
	l.errs.SetLevel(level)
}

// SetLogLevel sets the log level from a string.
// Unknown values fall back to info.
func (l *Logger) SetLogLevel(level string) {
	logLevel, err := ParseLevel(level)
	if err != nil {
		l.Warn("Unknown log level, using INFO", "level", level)
	}
	l.SetLevel(logLevel)
	l.Debug("Log level set", "level", level)
}

// ConfigureFromEnv configures the logger from environment variables.
func (l *Logger) ConfigureFromEnv() {
	if logLevelEnv := os.Getenv("AZOPS_LOG_LEVEL"); logLevelEnv != "" {
		l.SetLogLevel(logLevelEnv)
		l.Debug("Log level set from environment variable", "level", logLevelEnv)
	}
}

// With returns a child logger carrying keyvals on both streams.
func (l *Logger) With(keyvals ...interface{}) *Logger {
	return &Logger{
		Logger: l.Logger.With(keyvals...),
		errs:   l.errs.With(keyvals...),
	}
}

// Error logs an error message to the error stream.
func (l *Logger) Error(msg interface{}, keyvals ...interface{}) {
	l.errs.Helper()
	l.errs.Error(msg, keyvals...)
}

// Errorf logs a formatted error message to the error stream.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.errs.Helper()
	l.errs.Errorf(format, args...)
}

// Discard returns a logger that drops everything, for tests.
func Discard() *Logger {
	return New(io.Discard, io.Discard)
}
