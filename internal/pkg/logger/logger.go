package logger

import (
	"context"

	"github.com/maxtwis/sdh-dashboard/internal/pkg/constants"
	"go.uber.org/zap"
)

var global *zap.SugaredLogger

func init() {
	l, err := zap.NewProduction(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}
	global = l.Sugar()
}

// SetLevel swaps the global logger for one at the given level.
func SetLevel(level string) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return
	}
	global = l.Sugar()
}

func withCtx(ctx context.Context) *zap.SugaredLogger {
	if ctx == nil {
		return global
	}
	if reqID, ok := ctx.Value(constants.CtxKeyRequestID).(string); ok && reqID != "" {
		return global.With("request_id", reqID)
	}
	return global
}

func Debugf(ctx context.Context, format string, args ...interface{}) {
	withCtx(ctx).Debugf(format, args...)
}

func Infof(ctx context.Context, format string, args ...interface{}) {
	withCtx(ctx).Infof(format, args...)
}

func Warnf(ctx context.Context, format string, args ...interface{}) {
	withCtx(ctx).Warnf(format, args...)
}

func Errorf(ctx context.Context, format string, args ...interface{}) {
	withCtx(ctx).Errorf(format, args...)
}

func Error(ctx context.Context, msg string) {
	withCtx(ctx).Error(msg)
}

func Fatal(ctx context.Context, err error) {
	withCtx(ctx).Fatal(err)
}
