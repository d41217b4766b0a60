package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jobtasks/dashboard/internal/infrastructure/config"
)

// Logger wraps zap.SugaredLogger to provide application-specific logging
type Logger struct {
	*zap.SugaredLogger
}

// New creates a new logger instance
func New(cfg config.LoggerConfig) (*Logger, error) {
	var zapConfig zap.Config

	if cfg.Format == "json" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)

	if cfg.Output == "file" && cfg.Filename != "" {
		zapConfig.OutputPaths = []string{cfg.Filename}
		zapConfig.ErrorOutputPaths = []string{cfg.Filename}
	} else {
		zapConfig.OutputPaths = []string{"stdout"}
		zapConfig.ErrorOutputPaths = []string{"stderr"}
	}

	// Add caller information in development
	if cfg.Format != "json" {
		zapConfig.Development = true
		zapConfig.DisableStacktrace = false
	}

	zapLogger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return &Logger{
		SugaredLogger: zapLogger.Sugar(),
	}, nil
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// WithFields adds structured fields to the logger
func (l *Logger) WithFields(fields ...interface{}) *Logger {
	return &Logger{
		SugaredLogger: l.SugaredLogger.With(fields...),
	}
}

// WithError adds an error field to the logger
func (l *Logger) WithError(err error) *Logger {
	return l.WithFields("error", err.Error())
}

// WithUserID adds a user ID field to the logger
func (l *Logger) WithUserID(userID string) *Logger {
	return l.WithFields("user_id", userID)
}

// WithComponent adds a component field to the logger
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithFields("component", component)
}

// TaskChange records a confirmed task mutation. fields names the columns a
// patch wrote and is nil for adds and deletes.
func (l *Logger) TaskChange(userID, action, taskID string, fields []string) {
	kv := []interface{}{"user_id", userID, "action", action, "task_id", taskID}
	if fields != nil {
		kv = append(kv, "fields", fields)
	}
	l.Infow("Task changed", kv...)
}

// DocumentChange records a confirmed document link mutation. docType is empty
// for removals.
func (l *Logger) DocumentChange(userID, action, documentID, docType string) {
	kv := []interface{}{"user_id", userID, "action", action, "document_id", documentID}
	if docType != "" {
		kv = append(kv, "document_type", docType)
	}
	l.Infow("Document changed", kv...)
}

// AuthRejected records a request refused by the bearer token check.
func (l *Logger) AuthRejected(reason, ip, path string, err error) {
	kv := []interface{}{"security_event", reason, "ip", ip, "path", path}
	if err != nil {
		kv = append(kv, "error", err.Error())
	}
	l.Warnw("Request rejected", kv...)
}

// Close flushes any buffered log entries
func (l *Logger) Close() error {
	return l.SugaredLogger.Sync()
}
