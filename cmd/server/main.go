package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/light-bringer/storefront-service/internal/config"
	"github.com/light-bringer/storefront-service/internal/pkg/logger"
	"github.com/light-bringer/storefront-service/internal/services"
)

const serviceName = "storefront"

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Load configuration from the environment
	if err := config.Load(); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := config.C()

	if err := logger.Init(cfg.Logger.Level(), cfg.Logger.AsJSON()); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info(ctx, "starting storefront service",
		logger.String("http_address", cfg.Server.Address()),
		logger.String("health_address", cfg.Health.Address()),
		logger.String("store_api", cfg.StoreAPI.BaseURL()),
	)

	// 2. Initialize service dependencies (DI container)
	serviceOpts, err := services.NewServiceOptions(ctx, services.FromConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer serviceOpts.Close()

	// 3. HTTP API
	httpServer := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           serviceOpts.Handler.Routes(),
		ReadHeaderTimeout: cfg.Server.ReadTimeout(),
		ReadTimeout:       cfg.Server.ReadTimeout(),
		WriteTimeout:      cfg.Server.WriteTimeout(),
	}

	// 4. gRPC health endpoint for orchestrators
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.Health.Address())
	if err != nil {
		return fmt.Errorf("failed to listen on health address: %w", err)
	}

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		logger.Info(egCtx, "health server listening", logger.String("address", cfg.Health.Address()))
		return grpcServer.Serve(lis)
	})

	eg.Go(func() error {
		logger.Info(egCtx, "HTTP server listening", logger.String("address", cfg.Server.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	healthServer.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	// 5. Graceful shutdown on signal or on the first server error
	eg.Go(func() error {
		<-egCtx.Done()
		logger.Info(context.Background(), "shutting down gracefully")
		healthServer.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error(shutdownCtx, "HTTP server shutdown error", logger.ErrorF(err))
		}
		grpcServer.GracefulStop()
		return nil
	})

	return eg.Wait()
}
