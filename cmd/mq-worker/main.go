package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/FrederickAlmeida/Reserva-Hotel/internal/config"
	"github.com/FrederickAlmeida/Reserva-Hotel/internal/mq"
	"github.com/FrederickAlmeida/Reserva-Hotel/internal/reservation"
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

	// o worker tem seu próprio registro, independente do servidor gRPC
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

	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("failed to open channel: %v", err)
	}
	defer ch.Close()

	if _, err := mq.DeclareQueue(ch, cfg.Queue); err != nil {
		log.Fatalf("failed to declare queue: %v", err)
	}

	msgs, err := ch.Consume(
		cfg.Queue,
		"",
		false, // auto-ack = false (vamos dar ack manualmente)
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Fatalf("failed to register consumer: %v", err)
	}

	worker := mq.NewWorker(mq.NewHandler(wire.NewService(registry)), ch, logger, cfg.RequestTimeout)

	done := make(chan struct{})
	go func() {
		defer close(done)
		worker.Run(ctx, msgs)
	}()

	logger.Info("mq worker listening", "queue", cfg.Queue)

	// captura sinais para shutdown gracioso
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-stopCh:
	case <-done:
		logger.Warn("consumer stopped")
	}
	logger.Info("shutting down mq-worker...")
	cancel()
	<-done
	logger.Info("mq-worker stopped")
}
