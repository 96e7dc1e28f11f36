package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/FrederickAlmeida/Reserva-Hotel/internal/cli"
	"github.com/FrederickAlmeida/Reserva-Hotel/internal/config"
	"github.com/FrederickAlmeida/Reserva-Hotel/internal/mq"
	"github.com/FrederickAlmeida/Reserva-Hotel/internal/reservation"
	"github.com/FrederickAlmeida/Reserva-Hotel/internal/rpc"
	"github.com/FrederickAlmeida/Reserva-Hotel/internal/wire"
)

// Os cenários assumem o registro semeado: quartos 101..110 e cliente 1.
const (
	firstRoom = 101
	rooms     = 10
	requester = 1
)

type target struct {
	name   string
	client cli.BookingClient
}

func isConflict(err error) bool {
	if status.Code(err) == codes.AlreadyExists {
		return true
	}
	var remote *mq.RemoteError
	return errors.As(err, &remote) && remote.Code == reservation.CodeConflict
}

func runPerformanceTest(t target, operation string, totalRequests, concurrency int, base time.Time) BenchmarkResult {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var (
		metrics Metrics
		mu      sync.Mutex
		booked  []string
	)
	metrics.Latencies = make([]time.Duration, 0, totalRequests)

	requestCh := make(chan int, totalRequests)
	for i := range totalRequests {
		requestCh <- i
	}
	close(requestCh)

	startTime := time.Now()

	var wg sync.WaitGroup
	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for reqID := range requestCh {
				reqStart := time.Now()
				id, err := executeOperation(ctx, t.client, operation, reqID, base)
				latency := time.Since(reqStart)

				mu.Lock()
				metrics.Latencies = append(metrics.Latencies, latency)
				if id != "" {
					booked = append(booked, id)
				}
				mu.Unlock()

				switch {
				case err == nil:
					atomic.AddInt64(&metrics.SuccessCount, 1)
				case isConflict(err):
					atomic.AddInt64(&metrics.ConflictCount, 1)
				default:
					atomic.AddInt64(&metrics.ErrorCount, 1)
				}
			}
		}()
	}

	wg.Wait()
	metrics.TotalTime = time.Since(startTime)

	release(t.client, booked)

	result := calculateMetrics(metrics)
	result.Operation = operation
	result.Middleware = t.name
	return result
}

func executeOperation(ctx context.Context, client cli.BookingClient, operation string, reqID int, base time.Time) (string, error) {
	start, end := stay(base, reqID/rooms)

	switch operation {
	case "ListAvailable":
		_, err := client.ListAvailable(ctx, wire.AvailabilityRequest{Start: start, End: end})
		return "", err
	case "Book":
		r, err := client.Book(ctx, wire.BookRequest{
			ResourceID:  firstRoom + reqID%rooms,
			RequesterID: requester,
			Start:       start,
			End:         end,
		})
		return r.ID, err
	case "ListReservations":
		_, err := client.ListReservations(ctx)
		return "", err
	default:
		return "", fmt.Errorf("unknown operation: %s", operation)
	}
}

// release desfaz as reservas criadas pelo benchmark, para que uma nova
// execução encontre o registro no mesmo estado.
func release(client cli.BookingClient, ids []string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, id := range ids {
		if _, err := client.CancelReservation(ctx, wire.CancelReservationRequest{ReservationID: id}); err != nil {
			log.Printf("failed to release %s: %v", id, err)
		}
	}
}

type BusinessFactorResult struct {
	Middleware    string
	Scenario      string
	TotalRequests int
	SuccessCount  int
	ConflictCount int
	SuccessRate   float64
	ExpectedMax   int
}

func runBusinessFactorTest(t target, sameResource bool, base time.Time) BusinessFactorResult {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	totalRequests := 200
	concurrency := 20

	var (
		successCount, conflictCount int64
		mu                          sync.Mutex
		booked                      []string
	)

	requestCh := make(chan int, totalRequests)
	for i := range totalRequests {
		requestCh <- i
	}
	close(requestCh)

	var wg sync.WaitGroup
	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for reqID := range requestCh {
				req := wire.BookRequest{ResourceID: firstRoom, RequesterID: requester}
				if sameResource {
					// todas as estadias compartilham a noite base
					req.Start, req.End = stay(base, 0)
				} else {
					req.ResourceID = firstRoom + reqID%rooms
					req.Start, req.End = stay(base, reqID/rooms)
				}

				r, err := t.client.Book(ctx, req)
				switch {
				case err == nil:
					atomic.AddInt64(&successCount, 1)
					mu.Lock()
					booked = append(booked, r.ID)
					mu.Unlock()
				case isConflict(err):
					atomic.AddInt64(&conflictCount, 1)
				}
			}
		}()
	}

	wg.Wait()
	release(t.client, booked)

	success := int(atomic.LoadInt64(&successCount))

	scenario := "Recursos Diferentes"
	expectedMax := totalRequests
	if sameResource {
		scenario = "Mesmo Recurso"
		expectedMax = 1
	}

	return BusinessFactorResult{
		Middleware:    t.name,
		Scenario:      scenario,
		TotalRequests: totalRequests,
		SuccessCount:  success,
		ConflictCount: int(atomic.LoadInt64(&conflictCount)),
		SuccessRate:   float64(success) / float64(totalRequests) * 100.0,
		ExpectedMax:   expectedMax,
	}
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Uso: benchmark [performance|business]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	grpcAddr := os.Getenv("BOOKING_ADDR")
	if grpcAddr == "" {
		grpcAddr = "localhost:50051"
	}

	conn, err := rpc.Dial(grpcAddr)
	if err != nil {
		log.Fatalf("Erro ao conectar gRPC: %v", err)
	}
	defer conn.Close()

	mqClient, err := mq.Dial(cfg.AMQPURL, cfg.Queue)
	if err != nil {
		log.Fatalf("Erro ao conectar RabbitMQ: %v", err)
	}
	defer mqClient.Close()

	targets := []target{
		{name: "gRPC", client: rpc.NewClient(conn)},
		{name: "RabbitMQ", client: mqClient},
	}

	// datas bem no futuro para não colidir com reservas reais nem com o varredor
	base := time.Now().AddDate(5, 0, 0).Truncate(24 * time.Hour)

	switch os.Args[1] {
	case "performance":
		runPerformanceBenchmark(targets, base)
	case "business":
		runBusinessFactorBenchmark(targets, base)
	default:
		fmt.Printf("Tipo de teste desconhecido: %s\n", os.Args[1])
		os.Exit(1)
	}
}

func runPerformanceBenchmark(targets []target, base time.Time) {
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("TESTE DE PERFORMANCE GERAL")
	fmt.Println(strings.Repeat("=", 80))

	operations := []string{"ListAvailable", "Book", "ListReservations"}

	var results []BenchmarkResult
	for _, t := range targets {
		fmt.Printf("\n--- Testando %s ---\n", t.name)
		for _, op := range operations {
			fmt.Printf("\nExecutando %s...\n", op)
			result := runPerformanceTest(t, op, 1000, 10, base)
			results = append(results, result)
			printResult(result)
		}
	}

	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Println("RESUMO COMPARATIVO")
	fmt.Println(strings.Repeat("=", 80))
	printComparison(operations, results)
}

func runBusinessFactorBenchmark(targets []target, base time.Time) {
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("TESTE DE FATOR DE NEGÓCIO")
	fmt.Println(strings.Repeat("=", 80))

	for _, t := range targets {
		fmt.Printf("\n--- Testando %s ---\n", t.name)
		for _, same := range []bool{false, true} {
			printBusinessResult(runBusinessFactorTest(t, same, base))
		}
	}
}

func printResult(r BenchmarkResult) {
	fmt.Printf("\n%s - %s:\n", r.Middleware, r.Operation)
	fmt.Printf("  Total de Requisições: %d\n", r.TotalRequests)
	fmt.Printf("  Taxa de Sucesso: %.2f%%\n", r.SuccessRate)
	fmt.Printf("  Conflitos: %d\n", r.Conflicts)
	fmt.Printf("  Latência Média: %v\n", r.AvgLatency)
	fmt.Printf("  P50: %v\n", r.P50Latency)
	fmt.Printf("  P95: %v\n", r.P95Latency)
	fmt.Printf("  P99: %v\n", r.P99Latency)
	fmt.Printf("  Throughput: %.2f req/s\n", r.Throughput)
}

func printBusinessResult(r BusinessFactorResult) {
	fmt.Printf("\n[%s] %s:\n", r.Middleware, r.Scenario)
	fmt.Printf("  Total de Requisições: %d\n", r.TotalRequests)
	fmt.Printf("  Sucessos: %d\n", r.SuccessCount)
	fmt.Printf("  Conflitos: %d\n", r.ConflictCount)
	fmt.Printf("  Taxa de Sucesso: %.2f%%\n", r.SuccessRate)
	fmt.Printf("  Máximo Esperado: %d\n", r.ExpectedMax)
	if r.SuccessCount > r.ExpectedMax {
		fmt.Printf("  AVISO: mais de %d reserva aceita! Possível race condition.\n", r.ExpectedMax)
	}
}

func printComparison(operations []string, results []BenchmarkResult) {
	for _, op := range operations {
		fmt.Printf("\n%s:\n", op)
		for _, r := range results {
			if r.Operation != op {
				continue
			}
			fmt.Printf("  %s: Latência Média=%v, Throughput=%.2f req/s, Sucesso=%.2f%%\n",
				r.Middleware, r.AvgLatency, r.Throughput, r.SuccessRate)
		}
	}
}
