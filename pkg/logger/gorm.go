package logger

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	gormlogger "gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// GormLogger routes GORM's logging through logrus
type GormLogger struct {
	entry    *logrus.Entry
	LogLevel gormlogger.LogLevel
}

// NewGormLogger logs queries at debug, slow queries at warn and failures at error
func NewGormLogger(entry *logrus.Entry) *GormLogger {
	return &GormLogger{entry: entry.WithField("component", "gorm"), LogLevel: gormlogger.Warn}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.LogLevel = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormlogger.Info {
		l.entry.WithContext(ctx).WithField("data", data).Info(msg)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormlogger.Warn {
		l.entry.WithContext(ctx).WithField("data", data).Warn(msg)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormlogger.Error {
		l.entry.WithContext(ctx).WithField("data", data).Error(msg)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	operation := "Query"
	if i := strings.IndexByte(sql, ' '); i > 0 {
		operation = sql[:i]
	}

	fields := l.entry.WithContext(ctx).WithFields(logrus.Fields{
		"sql":     sql,
		"latency": elapsed.String(),
		"rows":    rows,
	})

	switch {
	case err != nil && !errors.Is(err, gormlogger.ErrRecordNotFound) && l.LogLevel >= gormlogger.Error:
		fields.WithError(err).Error("SQL " + operation + " failed")
	case elapsed > slowQueryThreshold && l.LogLevel >= gormlogger.Warn:
		fields.Warn("SQL " + operation + " slow")
	case l.LogLevel >= gormlogger.Info:
		fields.Debug("SQL " + operation)
	}
}
