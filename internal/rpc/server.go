package rpc

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/FrederickAlmeida/Reserva-Hotel/internal/reservation"
	"github.com/FrederickAlmeida/Reserva-Hotel/internal/wire"
)

type reservationServer struct {
	svc *wire.Service
}

func NewServer(svc *wire.Service) ReservationServiceServer {
	return &reservationServer{svc: svc}
}

func (s *reservationServer) AddResource(ctx context.Context, req *wire.AddResourceRequest) (*wire.Resource, error) {
	if req.Kind == "" {
		return nil, status.Error(codes.InvalidArgument, "kind is required")
	}
	return respond(s.svc.AddResource(ctx, *req))
}

func (s *reservationServer) AddRequester(ctx context.Context, req *wire.AddRequesterRequest) (*wire.Requester, error) {
	return respond(s.svc.AddRequester(ctx, *req))
}

func (s *reservationServer) Book(ctx context.Context, req *wire.BookRequest) (*wire.Reservation, error) {
	if req.Start == "" || req.End == "" {
		return nil, status.Error(codes.InvalidArgument, "start and end are required")
	}
	return respond(s.svc.Book(ctx, *req))
}

func (s *reservationServer) Cancel(ctx context.Context, req *wire.CancelRequest) (*wire.Reservation, error) {
	return respond(s.svc.Cancel(ctx, *req))
}

func (s *reservationServer) CancelReservation(ctx context.Context, req *wire.CancelReservationRequest) (*wire.Reservation, error) {
	if req.ReservationID == "" {
		return nil, status.Error(codes.InvalidArgument, "reservation_id is required")
	}
	return respond(s.svc.CancelReservation(ctx, *req))
}

func (s *reservationServer) ListResources(ctx context.Context, req *wire.Empty) (*wire.ResourceList, error) {
	return respond(s.svc.ListResources(ctx, *req))
}

func (s *reservationServer) ListRequesters(ctx context.Context, req *wire.Empty) (*wire.RequesterList, error) {
	return respond(s.svc.ListRequesters(ctx, *req))
}

func (s *reservationServer) ListReservations(ctx context.Context, req *wire.Empty) (*wire.ReservationList, error) {
	return respond(s.svc.ListReservations(ctx, *req))
}

func (s *reservationServer) ListAvailable(ctx context.Context, req *wire.AvailabilityRequest) (*wire.ResourceList, error) {
	if req.Start == "" || req.End == "" {
		return nil, status.Error(codes.InvalidArgument, "start and end are required")
	}
	return respond(s.svc.ListAvailable(ctx, *req))
}

func respond[T any](out T, err error) (*T, error) {
	if err != nil {
		return nil, statusFromDomainError(err)
	}
	return &out, nil
}

func statusFromDomainError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	}

	switch reservation.ErrorKind(err) {
	case reservation.CodeNotFound:
		return status.Error(codes.NotFound, err.Error())
	case reservation.CodeConflict, reservation.CodeDuplicateID:
		return status.Error(codes.AlreadyExists, err.Error())
	case reservation.CodeInvalidArgument:
		return status.Error(codes.InvalidArgument, err.Error())
	case reservation.CodeAlreadyBooked, reservation.CodeNotBooked:
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// LoggingInterceptor registra método, código de status e duração de cada chamada.
func LoggingInterceptor(logger reservation.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		code := status.Code(err)
		args := []any{"method", info.FullMethod, "code", code.String(), "duration", time.Since(start)}
		switch code {
		case codes.OK:
			logger.Debug("rpc handled", args...)
		case codes.Internal, codes.Unknown:
			logger.Error("rpc failed", append(args, "error", err)...)
		default:
			logger.Info("rpc rejected", append(args, "error", err)...)
		}
		return resp, err
	}
}
