package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/FrederickAlmeida/Reserva-Hotel/internal/cli"
	"github.com/FrederickAlmeida/Reserva-Hotel/internal/config"
	"github.com/FrederickAlmeida/Reserva-Hotel/internal/rpc"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: client " + cli.Usage)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	addr := os.Getenv("BOOKING_ADDR")
	if addr == "" {
		addr = "localhost:50051"
	}

	conn, err := rpc.Dial(addr)
	if err != nil {
		log.Fatalf("failed to connect to server: %v", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	err = cli.Run(ctx, rpc.NewClient(conn), os.Args[1:], os.Stdout)
	if errors.Is(err, cli.ErrUsage) {
		fmt.Println("usage: client " + cli.Usage)
		os.Exit(1)
	}
	if err != nil {
		log.Fatal(err)
	}
}
