// Package gorm implements a gorm logger writing through the global zerolog logger.
package gorm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultSlowThreshold marks queries slower than this as slow.
const DefaultSlowThreshold = 200 * time.Millisecond

// Logger is a gorm logger.Interface backed by zerolog.
type Logger struct {
	SlowThreshold             time.Duration
	IgnoreRecordNotFoundError bool
	level                     gormlogger.LogLevel
}

var _ gormlogger.Interface = (*Logger)(nil)

// New returns a zerolog gorm logger logging at level.
func New(level gormlogger.LogLevel) *Logger {
	return &Logger{
		SlowThreshold:             DefaultSlowThreshold,
		IgnoreRecordNotFoundError: true,
		level:                     level,
	}
}

// LevelFromString maps the configured zerolog level onto a gorm log level.
// Statements are only traced at debug and trace.
func LevelFromString(level string) gormlogger.LogLevel {
	switch level {
	case zerolog.TraceLevel.String(), zerolog.DebugLevel.String():
		return gormlogger.Info
	case zerolog.InfoLevel.String(), zerolog.WarnLevel.String():
		return gormlogger.Warn
	case zerolog.Disabled.String():
		return gormlogger.Silent
	default:
		return gormlogger.Error
	}
}

// LogMode returns a copy of the logger using level.
func (l *Logger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	n := *l
	n.level = level

	return &n
}

// Info logs at info level.
func (l *Logger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Info {
		l.event(ctx, zerolog.InfoLevel).Msg(fmt.Sprintf(msg, data...))
	}
}

// Warn logs at warn level.
func (l *Logger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.event(ctx, zerolog.WarnLevel).Msg(fmt.Sprintf(msg, data...))
	}
}

// Error logs at error level.
func (l *Logger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Error {
		l.event(ctx, zerolog.ErrorLevel).Msg(fmt.Sprintf(msg, data...))
	}
}

// Trace logs one executed statement. Errors are logged at error level,
// slow statements at warn and everything else at debug.
func (l *Logger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	case err != nil && l.level >= gormlogger.Error &&
		(!errors.Is(err, gorm.ErrRecordNotFound) || !l.IgnoreRecordNotFoundError):
		sql, rows := fc()
		l.event(ctx, zerolog.ErrorLevel).Err(err).
			Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("gorm query failed")
	case l.SlowThreshold != 0 && elapsed > l.SlowThreshold && l.level >= gormlogger.Warn:
		sql, rows := fc()
		l.event(ctx, zerolog.WarnLevel).
			Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("gorm slow query")
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		l.event(ctx, zerolog.DebugLevel).
			Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("gorm query")
	}
}

func (l *Logger) event(ctx context.Context, level zerolog.Level) *zerolog.Event {
	logger := log.Ctx(ctx)
	if logger.GetLevel() == zerolog.Disabled || logger == zerolog.DefaultContextLogger {
		logger = &log.Logger
	}

	return logger.WithLevel(level).Str("component", "gorm")
}
