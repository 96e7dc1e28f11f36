// Package wire guarda os formatos JSON comuns aos transportes mq, grpc e http,
// e as conversões entre eles e o pacote reservation.
package wire

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/FrederickAlmeida/Reserva-Hotel/internal/reservation"
)

// JSON é o codec usado por todos os transportes.
var JSON = jsoniter.ConfigCompatibleWithStandardLibrary

type Resource struct {
	ID        int     `json:"id"`
	Kind      string  `json:"kind"`
	Price     float64 `json:"price"`
	Available bool    `json:"available"`
}

type Requester struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Reservation struct {
	ID          string    `json:"id"`
	ResourceID  int       `json:"resource_id"`
	RequesterID int       `json:"requester_id"`
	Start       string    `json:"start"`
	End         string    `json:"end"`
	CreatedAt   time.Time `json:"created_at"`
}

type ResourceList struct {
	Resources []Resource `json:"resources"`
}

type RequesterList struct {
	Requesters []Requester `json:"requesters"`
}

type ReservationList struct {
	Reservations []Reservation `json:"reservations"`
}

type Empty struct{}

type AddResourceRequest struct {
	ID    int     `json:"id"`
	Kind  string  `json:"kind"`
	Price float64 `json:"price"`
}

func (r AddResourceRequest) KindValue() (reservation.Kind, error) {
	return reservation.ParseKind(r.Kind)
}

type AddRequesterRequest struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type BookRequest struct {
	ResourceID  int    `json:"resource_id"`
	RequesterID int    `json:"requester_id"`
	Start       string `json:"start"`
	End         string `json:"end"`
}

func (r BookRequest) IntervalValue() (reservation.Interval, error) {
	return reservation.ParseInterval(r.Start, r.End)
}

type CancelRequest struct {
	ResourceID int `json:"resource_id"`
}

type CancelReservationRequest struct {
	ReservationID string `json:"reservation_id"`
}

func (r CancelReservationRequest) UUID() (uuid.UUID, error) {
	id, err := uuid.Parse(r.ReservationID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: reservation_id %q", reservation.ErrInvalidArgument, r.ReservationID)
	}
	return id, nil
}

type AvailabilityRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func (r AvailabilityRequest) IntervalValue() (reservation.Interval, error) {
	return reservation.ParseInterval(r.Start, r.End)
}

func FromResource(r reservation.Resource) Resource {
	return Resource{ID: r.ID, Kind: r.Kind.String(), Price: r.Price, Available: r.Available}
}

func FromResources(list []reservation.Resource) ResourceList {
	out := ResourceList{Resources: make([]Resource, 0, len(list))}
	for _, r := range list {
		out.Resources = append(out.Resources, FromResource(r))
	}
	return out
}

func FromRequesters(list []reservation.Requester) RequesterList {
	out := RequesterList{Requesters: make([]Requester, 0, len(list))}
	for _, r := range list {
		out.Requesters = append(out.Requesters, Requester{ID: r.ID, Name: r.Name})
	}
	return out
}

func FromReservation(r reservation.Reservation) Reservation {
	return Reservation{
		ID:          r.ID.String(),
		ResourceID:  r.ResourceID,
		RequesterID: r.RequesterID,
		Start:       r.Interval.Start.String(),
		End:         r.Interval.End.String(),
		CreatedAt:   r.CreatedAt,
	}
}

func FromReservations(list []reservation.Reservation) ReservationList {
	out := ReservationList{Reservations: make([]Reservation, 0, len(list))}
	for _, r := range list {
		out.Reservations = append(out.Reservations, FromReservation(r))
	}
	return out
}
