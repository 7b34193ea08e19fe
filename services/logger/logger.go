package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Level định nghĩa các mức độ log
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// ParseLevel maps a LOG_LEVEL value to a Level, defaulting to InfoLevel.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Logger interface định nghĩa các phương thức logging
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
	WithField(key string, value interface{}) Logger
}

// DefaultLogger implement Logger interface trên nền logrus
type DefaultLogger struct {
	entry *logrus.Entry
}

// Options configures NewDefaultLogger.
type Options struct {
	Level  Level
	JSON   bool
	Output io.Writer
}

// NewDefaultLogger tạo một instance mới của DefaultLogger
func NewDefaultLogger(level Level) *DefaultLogger {
	return New(Options{Level: level})
}

func New(opts Options) *DefaultLogger {
	l := logrus.New()
	if opts.Output != nil {
		l.SetOutput(opts.Output)
	}
	if opts.JSON {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	l.SetLevel(toLogrus(opts.Level))
	return &DefaultLogger{entry: logrus.NewEntry(l)}
}

// FileOutput opens logs/app-<date>.log under dir and returns a writer that
// tees to stdout and the file.
func FileOutput(dir string) (io.Writer, io.Closer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	name := filepath.Join(dir, fmt.Sprintf("app-%s.log", time.Now().Format("2006-01-02")))
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return io.MultiWriter(os.Stdout, f), f, nil
}

func toLogrus(level Level) logrus.Level {
	switch level {
	case DebugLevel:
		return logrus.DebugLevel
	case WarnLevel:
		return logrus.WarnLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

func (l *DefaultLogger) Debug(format string, v ...interface{}) {
	l.entry.Debugf(format, v...)
}

// Info log thông tin
func (l *DefaultLogger) Info(format string, v ...interface{}) {
	l.entry.Infof(format, v...)
}

func (l *DefaultLogger) Warn(format string, v ...interface{}) {
	l.entry.Warnf(format, v...)
}

// Error log lỗi
func (l *DefaultLogger) Error(format string, v ...interface{}) {
	l.entry.Errorf(format, v...)
}

func (l *DefaultLogger) WithField(key string, value interface{}) Logger {
	return &DefaultLogger{entry: l.entry.WithField(key, value)}
}

// Nop discards everything. Used by tests and by components built without a logger.
type Nop struct{}

func (Nop) Debug(string, ...interface{})          {}
func (Nop) Info(string, ...interface{})           {}
func (Nop) Warn(string, ...interface{})           {}
func (Nop) Error(string, ...interface{})          {}
func (n Nop) WithField(string, interface{}) Logger { return n }
