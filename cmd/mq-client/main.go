package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/FrederickAlmeida/Reserva-Hotel/internal/cli"
	"github.com/FrederickAlmeida/Reserva-Hotel/internal/config"
	"github.com/FrederickAlmeida/Reserva-Hotel/internal/mq"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: mq-client " + cli.Usage)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	client, err := mq.Dial(cfg.AMQPURL, cfg.Queue)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	err = cli.Run(ctx, client, os.Args[1:], os.Stdout)
	if errors.Is(err, cli.ErrUsage) {
		fmt.Println("usage: mq-client " + cli.Usage)
		os.Exit(1)
	}
	if err != nil {
		log.Fatal(err)
	}
}
