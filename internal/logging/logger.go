// Package logging provides structured logging for hint conversion.
package logging

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap with the events a conversion emits.
type Logger struct {
	zap *zap.Logger
}

// NewLogger creates a Logger that writes JSON lines to logPath.
// If logPath is empty, logging is disabled.
// If development is true, uses the development encoder config.
// level is a zap level name ("debug", "info", ...); empty means info.
func NewLogger(logPath string, development bool, level string) (*Logger, error) {
	if logPath == "" {
		return Nop(), nil
	}

	lvl := zapcore.InfoLevel
	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		lvl = parsed
	}

	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	var encoderConfig zapcore.EncoderConfig
	if development {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logFile),
		lvl,
	)

	return &Logger{zap: zap.New(core)}, nil
}

// New wraps an existing zap logger.
func New(z *zap.Logger) *Logger {
	if z == nil {
		return Nop()
	}
	return &Logger{zap: z}
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return &Logger{zap: zap.NewNop()}
}

// Close syncs the logger (should be called on shutdown).
func (l *Logger) Close() error {
	return l.zap.Sync()
}

// With returns a child Logger carrying the given fields.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{zap: l.zap.With(fields...)}
}

// BatchRejected logs a response that produced no edits because it could
// not be parsed or contained a malformed hint.
func (l *Logger) BatchRejected(kind string, err error) {
	l.zap.Warn("batch rejected",
		zap.String("kind", kind),
		zap.Error(err),
	)
}

// ItemRejected logs a malformed hint dropped in isolate mode.
func (l *Logger) ItemRejected(index int, field, preview string) {
	l.zap.Warn("hint rejected",
		zap.Int("index", index),
		zap.String("field", field),
		zap.String("preview", preview),
	)
}

// HintSkipped logs a valid hint that could not be placed.
func (l *Logger) HintSkipped(index int, reason, detail string) {
	l.zap.Debug("hint skipped",
		zap.Int("index", index),
		zap.String("reason", reason),
		zap.String("detail", detail),
	)
}

// EditResolved logs a hint that became an edit.
func (l *Logger) EditResolved(index int, strategy string, start, end int) {
	l.zap.Debug("edit resolved",
		zap.Int("index", index),
		zap.String("strategy", strategy),
		zap.Int("start", start),
		zap.Int("end", end),
	)
}

// ConversionDone logs the per-response summary.
func (l *Logger) ConversionDone(schema string, hints, edits, skipped int, duration time.Duration) {
	l.zap.Info("conversion done",
		zap.String("schema", schema),
		zap.Int("hints", hints),
		zap.Int("edits", edits),
		zap.Int("skipped", skipped),
		zap.Duration("duration", duration),
	)
}

// Error logs an error.
func (l *Logger) Error(msg string, err error) {
	l.zap.Error(msg, zap.Error(err))
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, fields ...zap.Field) {
	l.zap.Debug(msg, fields...)
}
