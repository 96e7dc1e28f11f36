package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"

	"github.com/FrederickAlmeida/Reserva-Hotel/internal/config"
	"github.com/FrederickAlmeida/Reserva-Hotel/internal/httpapi"
	"github.com/FrederickAlmeida/Reserva-Hotel/internal/reservation"
	"github.com/FrederickAlmeida/Reserva-Hotel/internal/rpc"
	"github.com/FrederickAlmeida/Reserva-Hotel/internal/wire"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger, err := config.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	registry := reservation.NewRegistry(reservation.RealClock{}, reservation.WithLogger(logger))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Seed {
		if err := reservation.SeedDefaults(ctx, registry); err != nil {
			log.Fatalf("failed to seed registry: %v", err)
		}
	}

	if cfg.CheckoutSweep > 0 {
		registry.StartCheckoutWorker(ctx, cfg.CheckoutSweep)
	}

	svc := wire.NewService(registry)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(rpc.LoggingInterceptor(logger)))
	rpc.RegisterReservationServiceServer(grpcServer, rpc.NewServer(svc))

	go func() {
		logger.Info("grpc server listening", "addr", cfg.GRPCAddr)
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatalf("failed to serve: %v", err)
		}
	}()

	var httpServer *http.Server
	if cfg.HTTPEnabled() {
		httpServer = &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           httpapi.NewRouter(svc, logger),
			ReadHeaderTimeout: cfg.RequestTimeout,
		}
		go func() {
			logger.Info("http server listening", "addr", cfg.HTTPAddr)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatalf("failed to serve http: %v", err)
			}
		}()
	}

	// graceful shutdown
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM)
	<-stopCh
	logger.Info("shutting down server...")
	cancel()

	if httpServer != nil {
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown", "error", err)
		}
		stop()
	}
	grpcServer.GracefulStop()
	logger.Info("server stopped")
}
