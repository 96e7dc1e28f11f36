package wire

import (
	"context"

	"github.com/FrederickAlmeida/Reserva-Hotel/internal/reservation"
)

// Service executa requisições wire contra um Registry. Os transportes só
// diferem em como enquadram as requisições e reportam erros.
type Service struct {
	registry *reservation.Registry
}

func NewService(registry *reservation.Registry) *Service {
	return &Service{registry: registry}
}

func (s *Service) AddResource(ctx context.Context, req AddResourceRequest) (Resource, error) {
	kind, err := req.KindValue()
	if err != nil {
		return Resource{}, err
	}
	if err := s.registry.AddResource(ctx, req.ID, kind, req.Price); err != nil {
		return Resource{}, err
	}
	res, err := s.registry.FindResource(ctx, req.ID)
	if err != nil {
		return Resource{}, err
	}
	return FromResource(res), nil
}

func (s *Service) AddRequester(ctx context.Context, req AddRequesterRequest) (Requester, error) {
	if err := s.registry.AddRequester(ctx, req.ID, req.Name); err != nil {
		return Requester{}, err
	}
	return Requester{ID: req.ID, Name: req.Name}, nil
}

func (s *Service) Book(ctx context.Context, req BookRequest) (Reservation, error) {
	iv, err := req.IntervalValue()
	if err != nil {
		return Reservation{}, err
	}
	res, err := s.registry.Book(ctx, req.ResourceID, req.RequesterID, iv)
	if err != nil {
		return Reservation{}, err
	}
	return FromReservation(res), nil
}

func (s *Service) Cancel(ctx context.Context, req CancelRequest) (Reservation, error) {
	res, err := s.registry.Cancel(ctx, req.ResourceID)
	if err != nil {
		return Reservation{}, err
	}
	return FromReservation(res), nil
}

func (s *Service) CancelReservation(ctx context.Context, req CancelReservationRequest) (Reservation, error) {
	id, err := req.UUID()
	if err != nil {
		return Reservation{}, err
	}
	res, err := s.registry.CancelReservation(ctx, id)
	if err != nil {
		return Reservation{}, err
	}
	return FromReservation(res), nil
}

func (s *Service) ListResources(ctx context.Context, _ Empty) (ResourceList, error) {
	list, err := s.registry.ListResources(ctx)
	if err != nil {
		return ResourceList{}, err
	}
	return FromResources(list), nil
}

func (s *Service) ListRequesters(ctx context.Context, _ Empty) (RequesterList, error) {
	list, err := s.registry.ListRequesters(ctx)
	if err != nil {
		return RequesterList{}, err
	}
	return FromRequesters(list), nil
}

func (s *Service) ListReservations(ctx context.Context, _ Empty) (ReservationList, error) {
	list, err := s.registry.ListReservations(ctx)
	if err != nil {
		return ReservationList{}, err
	}
	return FromReservations(list), nil
}

func (s *Service) ListAvailable(ctx context.Context, req AvailabilityRequest) (ResourceList, error) {
	iv, err := req.IntervalValue()
	if err != nil {
		return ResourceList{}, err
	}
	list, err := s.registry.Availability(ctx, iv)
	if err != nil {
		return ResourceList{}, err
	}
	return FromResources(list), nil
}
