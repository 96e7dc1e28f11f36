package wire_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrederickAlmeida/Reserva-Hotel/internal/reservation"
	"github.com/FrederickAlmeida/Reserva-Hotel/internal/wire"
)

type stoppedClock struct{}

func (stoppedClock) Now() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }

func newService(t *testing.T) *wire.Service {
	t.Helper()

	svc := wire.NewService(reservation.NewRegistry(stoppedClock{}))
	ctx := context.Background()
	_, err := svc.AddResource(ctx, wire.AddResourceRequest{ID: 10, Kind: "suite", Price: 500})
	require.NoError(t, err)
	_, err = svc.AddRequester(ctx, wire.AddRequesterRequest{ID: 1, Name: "Ada"})
	require.NoError(t, err)
	return svc
}

func Test_Service_BookAndList(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	got, err := svc.Book(ctx, wire.BookRequest{ResourceID: 10, RequesterID: 1, Start: "2025-03-01", End: "2025-03-05"})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", got.Start)
	assert.Equal(t, "2025-03-05", got.End)
	assert.NotEmpty(t, got.ID)

	rooms, err := svc.ListResources(ctx, wire.Empty{})
	require.NoError(t, err)
	require.Len(t, rooms.Resources, 1)
	assert.Equal(t, wire.Resource{ID: 10, Kind: "Suite", Price: 500, Available: false}, rooms.Resources[0])

	list, err := svc.ListReservations(ctx, wire.Empty{})
	require.NoError(t, err)
	assert.Equal(t, []wire.Reservation{got}, list.Reservations)
}

func Test_Service_RejectsMalformedInput(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.AddResource(ctx, wire.AddResourceRequest{ID: 11, Kind: "penthouse"})
	assert.Equal(t, reservation.CodeInvalidArgument, reservation.ErrorKind(err))

	_, err = svc.Book(ctx, wire.BookRequest{ResourceID: 10, RequesterID: 1, Start: "2025-03-05"})
	assert.Equal(t, reservation.CodeInvalidArgument, reservation.ErrorKind(err))

	_, err = svc.CancelReservation(ctx, wire.CancelReservationRequest{ReservationID: "nope"})
	assert.Equal(t, reservation.CodeInvalidArgument, reservation.ErrorKind(err))

	_, err = svc.ListAvailable(ctx, wire.AvailabilityRequest{Start: "2025-03-05", End: "2025-03-01"})
	assert.Equal(t, reservation.CodeInvalidArgument, reservation.ErrorKind(err))
}

func Test_Service_CancelReservationRoundTrip(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	booked, err := svc.Book(ctx, wire.BookRequest{ResourceID: 10, RequesterID: 1, Start: "2025-03-01", End: "2025-03-02"})
	require.NoError(t, err)

	cancelled, err := svc.CancelReservation(ctx, wire.CancelReservationRequest{ReservationID: booked.ID})
	require.NoError(t, err)
	assert.Equal(t, booked, cancelled)

	free, err := svc.ListAvailable(ctx, wire.AvailabilityRequest{Start: "2025-03-01", End: "2025-03-02"})
	require.NoError(t, err)
	assert.Len(t, free.Resources, 1)
}

func Test_JSON_Shapes(t *testing.T) {
	body, err := wire.JSON.Marshal(wire.BookRequest{ResourceID: 10, RequesterID: 1, Start: "2025-03-01", End: "2025-03-05"})
	require.NoError(t, err)

	assert.JSONEq(t, `{"resource_id":10,"requester_id":1,"start":"2025-03-01","end":"2025-03-05"}`, string(body))
}
