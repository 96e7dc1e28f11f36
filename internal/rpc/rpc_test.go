package rpc_test

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/FrederickAlmeida/Reserva-Hotel/internal/reservation"
	"github.com/FrederickAlmeida/Reserva-Hotel/internal/rpc"
	"github.com/FrederickAlmeida/Reserva-Hotel/internal/wire"
)

type fixedClock struct{}

func (fixedClock) Now() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }

func startServer(t *testing.T) *rpc.Client {
	t.Helper()

	reg := reservation.NewRegistry(fixedClock{})
	require.NoError(t, reg.AddResource(context.Background(), 101, reservation.KindSingle, 100))
	require.NoError(t, reg.AddResource(context.Background(), 102, reservation.KindDouble, 150))
	require.NoError(t, reg.AddRequester(context.Background(), 1, "Ada"))

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.UnaryInterceptor(rpc.LoggingInterceptor(slog.New(slog.DiscardHandler))))
	rpc.RegisterReservationServiceServer(srv, rpc.NewServer(wire.NewService(reg)))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return rpc.NewClient(conn)
}

func Test_Client_BookCancelRoundTrip(t *testing.T) {
	// arrange
	client := startServer(t)
	ctx := context.Background()

	// act
	booked, err := client.Book(ctx, wire.BookRequest{ResourceID: 101, RequesterID: 1, Start: "2025-03-01", End: "2025-03-05"})
	require.NoError(t, err)

	listed, err := client.ListReservations(ctx)
	require.NoError(t, err)

	available, err := client.ListAvailable(ctx, wire.AvailabilityRequest{Start: "2025-03-05", End: "2025-03-06"})
	require.NoError(t, err)

	cancelled, err := client.CancelReservation(ctx, wire.CancelReservationRequest{ReservationID: booked.ID})
	require.NoError(t, err)

	resources, err := client.ListResources(ctx)
	require.NoError(t, err)

	// assert
	assert.Equal(t, "2025-03-01", booked.Start)
	assert.Equal(t, "2025-03-05", booked.End)
	require.Len(t, listed.Reservations, 1)
	assert.Equal(t, booked.ID, listed.Reservations[0].ID)

	require.Len(t, available.Resources, 1)
	assert.Equal(t, 102, available.Resources[0].ID)

	assert.Equal(t, booked.ID, cancelled.ID)
	for _, r := range resources.Resources {
		assert.True(t, r.Available, "resource %d", r.ID)
	}
}

func Test_Client_AddThenList(t *testing.T) {
	client := startServer(t)
	ctx := context.Background()

	res, err := client.AddResource(ctx, wire.AddResourceRequest{ID: 103, Kind: "suite", Price: 500})
	require.NoError(t, err)
	assert.Equal(t, wire.Resource{ID: 103, Kind: "Suite", Price: 500, Available: true}, res)

	_, err = client.AddRequester(ctx, wire.AddRequesterRequest{ID: 2, Name: "Grace"})
	require.NoError(t, err)

	people, err := client.ListRequesters(ctx)
	require.NoError(t, err)
	assert.Equal(t, []wire.Requester{{ID: 1, Name: "Ada"}, {ID: 2, Name: "Grace"}}, people.Requesters)
}

func Test_Server_StatusCodes(t *testing.T) {
	client := startServer(t)
	ctx := context.Background()

	_, err := client.Book(ctx, wire.BookRequest{ResourceID: 101, RequesterID: 1, Start: "2025-03-01", End: "2025-03-05"})
	require.NoError(t, err)

	tests := []struct {
		name string
		call func() error
		want codes.Code
	}{
		{"overlap", func() error {
			_, err := client.Book(ctx, wire.BookRequest{ResourceID: 101, RequesterID: 1, Start: "2025-03-05", End: "2025-03-07"})
			return err
		}, codes.AlreadyExists},
		{"unknown resource", func() error {
			_, err := client.Book(ctx, wire.BookRequest{ResourceID: 999, RequesterID: 1, Start: "2025-03-01", End: "2025-03-02"})
			return err
		}, codes.NotFound},
		{"unknown requester", func() error {
			_, err := client.Book(ctx, wire.BookRequest{ResourceID: 102, RequesterID: 9, Start: "2025-03-01", End: "2025-03-02"})
			return err
		}, codes.NotFound},
		{"inverted interval", func() error {
			_, err := client.Book(ctx, wire.BookRequest{ResourceID: 102, RequesterID: 1, Start: "2025-03-05", End: "2025-03-01"})
			return err
		}, codes.InvalidArgument},
		{"missing dates", func() error {
			_, err := client.Book(ctx, wire.BookRequest{ResourceID: 102, RequesterID: 1})
			return err
		}, codes.InvalidArgument},
		{"nothing to cancel", func() error {
			_, err := client.Cancel(ctx, wire.CancelRequest{ResourceID: 102})
			return err
		}, codes.FailedPrecondition},
		{"duplicate resource", func() error {
			_, err := client.AddResource(ctx, wire.AddResourceRequest{ID: 101, Kind: "single", Price: 1})
			return err
		}, codes.AlreadyExists},
		{"missing kind", func() error {
			_, err := client.AddResource(ctx, wire.AddResourceRequest{ID: 200})
			return err
		}, codes.InvalidArgument},
		{"bad reservation id", func() error {
			_, err := client.CancelReservation(ctx, wire.CancelReservationRequest{ReservationID: "nope"})
			return err
		}, codes.InvalidArgument},
		{"empty reservation id", func() error {
			_, err := client.CancelReservation(ctx, wire.CancelReservationRequest{})
			return err
		}, codes.InvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.Equal(t, tt.want, status.Code(err), err.Error())
		})
	}
}

func Test_Server_CancelledContext(t *testing.T) {
	client := startServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListResources(ctx)

	assert.Equal(t, codes.Canceled, status.Code(err))
}

func Test_Server_ConcurrentBooksOneWinner(t *testing.T) {
	client := startServer(t)
	ctx := context.Background()

	const n = 16
	errs := make(chan error, n)
	for i := range n {
		go func() {
			_, err := client.Book(ctx, wire.BookRequest{
				ResourceID:  101,
				RequesterID: 1,
				Start:       "2025-06-01",
				End:         fmt.Sprintf("2025-06-%02d", 2+i),
			})
			errs <- err
		}()
	}

	wins := 0
	for range n {
		err := <-errs
		if err == nil {
			wins++
			continue
		}
		assert.Equal(t, codes.AlreadyExists, status.Code(err))
	}
	assert.Equal(t, 1, wins)
}
