package server

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/dtroode/socialnet-server/internal/api/grpc/middleware"
	"github.com/dtroode/socialnet-server/internal/logger"
	"github.com/dtroode/socialnet-server/internal/model"
)

var _ model.Server = (*GRPCServer)(nil)

// GRPCServer exposes grpc.health.v1 and reflection for probes and tooling.
type GRPCServer struct {
	server *grpc.Server
	health *health.Server
	addr   string
}

// NewGRPCServer builds a server that starts out NOT_SERVING.
func NewGRPCServer(logger *logger.Logger, addr string) *GRPCServer {
	interceptorLogger := middleware.InterceptorLogger(logger)

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			recovery.UnaryServerInterceptor(middleware.RecoveryOptions(logger)...),
			logging.UnaryServerInterceptor(interceptorLogger, middleware.LoggingOptions()...),
		),
		grpc.ChainStreamInterceptor(
			recovery.StreamServerInterceptor(middleware.RecoveryOptions(logger)...),
			logging.StreamServerInterceptor(interceptorLogger, middleware.LoggingOptions()...),
		),
	)

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(s, hs)
	reflection.Register(s)

	return &GRPCServer{server: s, health: hs, addr: addr}
}

// SetServing flips the overall health status.
func (s *GRPCServer) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
}

func (s *GRPCServer) Start(securityLayer model.SecurityLayer) error {
	listener, err := securityLayer.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	return s.server.Serve(listener)
}

// Stop reports NOT_SERVING, then drains connections until ctx expires.
func (s *GRPCServer) Stop(ctx context.Context) error {
	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		s.server.Stop()
		return ctx.Err()
	}
}

func (s *GRPCServer) Address() string {
	return s.addr
}
