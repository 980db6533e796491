package logger

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. Production emits one JSON object per line with the
// timestamp rendered in loc; development uses zap's console encoder.
func New(dev bool, loc *time.Location) (*zap.Logger, error) {
	if loc == nil {
		loc = time.UTC
	}

	var cfg zap.Config
	if dev {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.MessageKey = "msg"
	}
	cfg.EncoderConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.In(loc).Format(time.RFC3339Nano))
	}

	return cfg.Build()
}

// Component returns a child logger tagged with the component field used across log events.
func Component(l *zap.Logger, name string) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l.With(zap.String("component", name))
}
