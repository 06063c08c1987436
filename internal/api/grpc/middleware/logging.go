package middleware

import (
	"context"
	"log/slog"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"

	"github.com/dtroode/socialnet-server/internal/logger"
)

// InterceptorLogger adapts the application logger to the go-grpc-middleware logging interface.
// Both use slog's numeric levels.
func InterceptorLogger(l *logger.Logger) logging.Logger {
	return logging.LoggerFunc(func(ctx context.Context, lvl logging.Level, msg string, fields ...any) {
		l.Log(ctx, slog.Level(lvl), msg, fields...)
	})
}

// LoggingOptions logs finished calls only; health probes are frequent.
func LoggingOptions() []logging.Option {
	return []logging.Option{
		logging.WithLogOnEvents(logging.FinishCall),
	}
}
