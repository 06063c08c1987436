package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	httpctx "github.com/dtroode/socialnet-server/internal/api/http/context"
	"github.com/dtroode/socialnet-server/internal/api/http/router"
	httpServer "github.com/dtroode/socialnet-server/internal/api/http/server"
	grpcServer "github.com/dtroode/socialnet-server/internal/api/grpc/server"
	"github.com/dtroode/socialnet-server/internal/config"
	"github.com/dtroode/socialnet-server/internal/logger"
	"github.com/dtroode/socialnet-server/internal/model"
	"github.com/dtroode/socialnet-server/internal/password"
	"github.com/dtroode/socialnet-server/internal/repository"
	"github.com/dtroode/socialnet-server/internal/server"
	"github.com/dtroode/socialnet-server/internal/service"
	"github.com/dtroode/socialnet-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.NewWithFormat(os.Stdout, cfg.Log.Level, cfg.Log.Format)

	backend, closeBackend, err := newBackend(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize storage", "backend", cfg.Store.Backend, "error", err)
	}
	defer closeBackend()

	store := repository.NewDocumentStore(backend, logger)
	if err := store.Init(ctx); err != nil {
		logger.Fatal("failed to load document store", "backend", cfg.Store.Backend, "error", err)
	}

	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)
	hasher := password.NewBcrypt(cfg.Bcrypt.Cost)

	authService := service.NewAuth(store, hasher, tokenManager, logger.With("component", "auth"), cfg.Auth.CheckUserExists)
	postService := service.NewPost(store, logger.With("component", "post"))

	r := router.New(authService, postService, httpctx.NewManager(), logger.With("component", "http"), cfg.HTTP.LegacyAuthStatus)
	servers := []model.Server{
		httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port), cfg.HTTP.ReadTimeout, cfg.HTTP.WriteTimeout),
	}

	var health *grpcServer.GRPCServer
	if cfg.GRPC.Enabled {
		health = grpcServer.NewGRPCServer(logger.With("component", "grpc"), fmt.Sprintf(":%s", cfg.GRPC.Port))
		servers = append(servers, health)
	}

	sl := server.NewSecurityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range servers {
		g.Go(func() error {
			logger.Info("Starting server on", "address", s.Address())
			if err := s.Start(sl); err != nil {
				return fmt.Errorf("server %s: %w", s.Address(), err)
			}
			return nil
		})
	}
	if health != nil {
		health.SetServing(true)
	}

	logAppVersion()

	<-gctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if health != nil {
		health.SetServing(false)
	}
	for _, s := range servers {
		if err := s.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", s.Address())
		}
	}

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", "error", err)
	}
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
