// Package log provides the application-wide logging facade. It wraps logrus
// with a small fixed API: leveled printf-style functions, structured fields
// via F, and error-aware helpers that pull kind and context out of the
// application error types.
package log

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"xplor/internal/errors"

	"github.com/sirupsen/logrus"
)

var (
	isDebug = false
	logger  = NewLogger()
)

// Field is a single structured logging field
type Field struct {
	Key   string
	Value interface{}
}

// F creates a structured logging field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Logger is a leveled logger with attached fields
type Logger struct {
	core   *logrus.Logger
	fields logrus.Fields
	file   *os.File
}

// Option configures a Logger
type Option func(*Logger)

// WithOutput directs log output to w
func WithOutput(w io.Writer) Option {
	return func(l *Logger) {
		l.core.SetOutput(w)
	}
}

// WithJSON switches the logger to JSON output
func WithJSON() Option {
	return func(l *Logger) {
		l.core.SetFormatter(&jsonFormatter{})
	}
}

// WithFile mirrors log output to the given file in addition to stdout
func WithFile(path string) Option {
	return func(l *Logger) {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log: cannot open %s: %v\n", path, err)
			return
		}
		l.file = f
		l.core.SetOutput(io.MultiWriter(os.Stdout, f))
	}
}

// NewLogger creates a logger writing text-formatted lines to stdout
func NewLogger(opts ...Option) *Logger {
	core := logrus.New()
	core.SetOutput(os.Stdout)
	// Debug gating happens in log(), not via the logrus level
	core.SetLevel(logrus.TraceLevel)
	core.SetFormatter(&textFormatter{})
	l := &Logger{
		core:   core,
		fields: logrus.Fields{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Configure replaces the package-level logger
func Configure(opts ...Option) {
	logger = NewLogger(opts...)
}

// SetDebug enables or disables debug output for all loggers
func SetDebug(debug bool) {
	isDebug = debug
}

// With returns a logger that adds the given fields to every message
func (l *Logger) With(fields ...Field) *Logger {
	merged := make(logrus.Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for _, f := range fields {
		merged[f.Key] = f.Value
	}
	return &Logger{core: l.core, fields: merged, file: l.file}
}

// WithContext returns a logger associated with ctx. Context values are not
// extracted yet; this exists so call sites can thread contexts through now.
func (l *Logger) WithContext(_ context.Context) *Logger {
	return l
}

func (l *Logger) log(level logrus.Level, msg string) {
	if level == logrus.DebugLevel && !isDebug {
		return
	}
	l.core.WithFields(l.fields).WithField(callerKey, callSite()).Log(level, msg)
}

// Info logs a message at info level
func (l *Logger) Info(args ...interface{}) {
	l.log(logrus.InfoLevel, fmt.Sprint(args...))
}

// Infof logs a formatted message at info level
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(logrus.InfoLevel, fmt.Sprintf(format, args...))
}

// Debug logs a message at debug level
func (l *Logger) Debug(args ...interface{}) {
	l.log(logrus.DebugLevel, fmt.Sprint(args...))
}

// Debugf logs a formatted message at debug level
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log(logrus.DebugLevel, fmt.Sprintf(format, args...))
}

// Warn logs a message at warning level
func (l *Logger) Warn(args ...interface{}) {
	l.log(logrus.WarnLevel, fmt.Sprint(args...))
}

// Warnf logs a formatted message at warning level
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(logrus.WarnLevel, fmt.Sprintf(format, args...))
}

// Error logs a message at error level
func (l *Logger) Error(args ...interface{}) {
	l.log(logrus.ErrorLevel, fmt.Sprint(args...))
}

// Errorf logs a formatted message at error level
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(logrus.ErrorLevel, fmt.Sprintf(format, args...))
}

// Info logs a message at info level using the package logger
func Info(args ...interface{}) {
	logger.Info(args...)
}

// Infof logs a formatted message at info level using the package logger
func Infof(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

// Debug logs a message at debug level using the package logger
func Debug(args ...interface{}) {
	logger.Debug(args...)
}

// Debugf logs a formatted message at debug level using the package logger
func Debugf(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

// Warn logs a message at warning level using the package logger
func Warn(args ...interface{}) {
	logger.Warn(args...)
}

// Warnf logs a formatted message at warning level using the package logger
func Warnf(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}

// Error logs a message at error level using the package logger
func Error(args ...interface{}) {
	logger.Error(args...)
}

// Errorf logs a formatted message at error level using the package logger
func Errorf(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}

// LogWithFields returns the package logger with the given fields attached
func LogWithFields(fields ...Field) *Logger {
	return logger.With(fields...)
}

// LogWithError returns the package logger with fields describing err:
// the message, the application error kind, and any path, param or
// resource context carried by the error types.
func LogWithError(err error) *Logger {
	fields := []Field{F("error", fmt.Sprintf("%v", err))}
	if err == nil {
		return logger.With(fields...)
	}
	if ke, ok := err.(interface{ Kind() errors.ErrorKind }); ok {
		fields = append(fields, F("error_kind", int(ke.Kind())))
	}
	var fileErr *errors.FileError
	if errors.As(err, &fileErr) {
		fields = append(fields, F("path", fileErr.Path()))
	}
	var configErr *errors.ConfigError
	if errors.As(err, &configErr) {
		fields = append(fields, F("param", configErr.Param()))
	}
	var resErr *errors.ResourceError
	if errors.As(err, &resErr) {
		fields = append(fields, F("resource", resErr.Resource()))
	}
	return logger.With(fields...)
}

// LogError logs err at error level with the given message
func LogError(err error, msg string) {
	LogWithError(err).Error(msg)
}

const callerKey = "caller"

// callSite walks the stack to the first frame outside this file and logrus
func callSite() string {
	pcs := make([]uintptr, 16)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if frame.File != "" &&
			!strings.HasSuffix(frame.File, "/logger.go") &&
			!strings.Contains(frame.File, "sirupsen/logrus") {
			return fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
		}
		if !more {
			break
		}
	}
	return "unknown"
}

type textFormatter struct{}

func (f *textFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s: %s",
		e.Time.Format("2006-01-02 15:04:05"),
		strings.ToUpper(e.Level.String()),
		e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		if k != callerKey {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}
	if caller, ok := e.Data[callerKey].(string); ok {
		fmt.Fprintf(&b, " (%s)", caller)
	}
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

type jsonFormatter struct{}

func (f *jsonFormatter) Format(e *logrus.Entry) ([]byte, error) {
	entry := map[string]interface{}{
		"timestamp": e.Time.Format(time.RFC3339),
		"level":     strings.ToUpper(e.Level.String()),
		"message":   e.Message,
	}
	for k, v := range e.Data {
		if err, ok := v.(error); ok {
			entry[k] = err.Error()
			continue
		}
		entry[k] = v
	}
	b, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal log entry: %w", err)
	}
	return append(b, '\n'), nil
}
