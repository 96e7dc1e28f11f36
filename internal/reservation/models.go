package reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// Today converte o instante do relógio em Date no fuso do próprio instante.
func Today(c Clock) Date {
	now := c.Now()
	return Date{Year: now.Year(), Month: int(now.Month()), Day: now.Day()}
}

type Kind int

const (
	KindSingle Kind = iota + 1
	KindDouble
	KindSuite
)

var kindLabels = map[Kind]string{
	KindSingle: "Single",
	KindDouble: "Double",
	KindSuite:  "Suite",
}

func (k Kind) String() string {
	if label, ok := kindLabels[k]; ok {
		return label
	}
	return "Unknown"
}

func (k Kind) Valid() bool {
	_, ok := kindLabels[k]
	return ok
}

// ParseKind aceita o rótulo (sem diferenciar maiúsculas) ou o código do menu
// antigo: 1=Single, 2=Double, 3=Suite.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "single":
		return KindSingle, nil
	case "2", "double":
		return KindDouble, nil
	case "3", "suite":
		return KindSuite, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
}

// Resource é uma unidade reservável (um quarto). Available significa "nenhuma
// reserva ativa"; quem decide conflito é a varredura de intervalos do Registry.
type Resource struct {
	ID        int
	Kind      Kind
	Price     float64
	Available bool
}

func (r *Resource) Book() error {
	if !r.Available {
		return fmt.Errorf("resource %d: %w", r.ID, ErrAlreadyBooked)
	}
	r.Available = false
	return nil
}

func (r *Resource) Cancel() error {
	if r.Available {
		return fmt.Errorf("resource %d: %w", r.ID, ErrNotBooked)
	}
	r.Available = true
	return nil
}

type Requester struct {
	ID   int
	Name string
}

// Reservation é imutável depois de criada; guarda ids, não ponteiros.
type Reservation struct {
	ID          uuid.UUID
	ResourceID  int
	RequesterID int
	Interval    Interval
	CreatedAt   time.Time
}

var (
	ErrNotFound            = errors.New("not found")
	ErrResourceNotFound    = fmt.Errorf("resource %w", ErrNotFound)
	ErrRequesterNotFound   = fmt.Errorf("requester %w", ErrNotFound)
	ErrReservationNotFound = fmt.Errorf("reservation %w", ErrNotFound)

	ErrConflict      = errors.New("resource is booked for the given date range")
	ErrAlreadyBooked = errors.New("resource already booked")
	ErrNotBooked     = errors.New("resource was not booked")
	ErrDuplicateID   = errors.New("duplicate id")

	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidInterval = fmt.Errorf("%w: start date after end date", ErrInvalidArgument)
	ErrInvalidKind     = fmt.Errorf("%w: unknown room kind", ErrInvalidArgument)
	ErrInvalidDate     = fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidArgument)
)

// Códigos estáveis usados pelos transportes (mq, grpc, http).
const (
	CodeNotFound         = "not_found"
	CodeConflict         = "conflict"
	CodeAlreadyBooked    = "already_booked"
	CodeNotBooked        = "not_booked"
	CodeDuplicateID      = "duplicate_id"
	CodeInvalidArgument  = "invalid_argument"
	CodeCanceled         = "canceled"
	CodeDeadlineExceeded = "deadline_exceeded"
	CodeInternal         = "internal"
)

// ErrorKind classifica um erro do domínio num código estável.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrConflict):
		return CodeConflict
	case errors.Is(err, ErrAlreadyBooked):
		return CodeAlreadyBooked
	case errors.Is(err, ErrNotBooked):
		return CodeNotBooked
	case errors.Is(err, ErrDuplicateID):
		return CodeDuplicateID
	case errors.Is(err, ErrInvalidArgument):
		return CodeInvalidArgument
	case errors.Is(err, context.Canceled):
		return CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return CodeDeadlineExceeded
	default:
		return CodeInternal
	}
}
