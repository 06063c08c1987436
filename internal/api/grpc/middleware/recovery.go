package middleware

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/socialnet-server/internal/logger"
)

// RecoveryOptions turns handler panics into codes.Internal and logs them.
func RecoveryOptions(l *logger.Logger) []recovery.Option {
	return []recovery.Option{
		recovery.WithRecoveryHandlerContext(func(ctx context.Context, p any) error {
			l.ErrorContext(ctx, "gRPC handler panicked",
				"panic", p)
			return status.Error(codes.Internal, "internal server error")
		}),
	}
}
