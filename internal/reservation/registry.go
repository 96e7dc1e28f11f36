package reservation

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Logger é satisfeito por *slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type Option func(*Registry)

func WithLogger(logger Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Registry é o agregado dono de quartos, clientes e reservas. Todas as
// mutações acontecem sob o mesmo lock: a checagem de conflito e a criação da
// reserva são um passo atômico.
type Registry struct {
	mu sync.RWMutex

	resources      map[int]*Resource
	resourceOrder  []int
	requesters     map[int]*Requester
	requesterOrder []int

	live       []*Reservation // ordem de inserção
	byResource map[int][]*Reservation
	byID       map[uuid.UUID]*Reservation

	clock  Clock
	logger Logger
}

func NewRegistry(clock Clock, opts ...Option) *Registry {
	r := &Registry{
		resources:  make(map[int]*Resource),
		requesters: make(map[int]*Requester),
		byResource: make(map[int][]*Reservation),
		byID:       make(map[uuid.UUID]*Reservation),
		clock:      clock,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AddResource cadastra um quarto. Um id repetido é rejeitado e o primeiro
// cadastro continua valendo.
func (r *Registry) AddResource(ctx context.Context, id int, kind Kind, price float64) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if !kind.Valid() {
		return fmt.Errorf("add resource %d: %w", id, ErrInvalidKind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.resources[id]; ok {
		return fmt.Errorf("add resource %d: %w", id, ErrDuplicateID)
	}

	r.resources[id] = &Resource{ID: id, Kind: kind, Price: price, Available: true}
	r.resourceOrder = append(r.resourceOrder, id)
	r.logger.Debug("resource added", "resource_id", id, "kind", kind.String(), "price", price)

	return nil
}

func (r *Registry) AddRequester(ctx context.Context, id int, name string) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.requesters[id]; ok {
		return fmt.Errorf("add requester %d: %w", id, ErrDuplicateID)
	}

	r.requesters[id] = &Requester{ID: id, Name: name}
	r.requesterOrder = append(r.requesterOrder, id)
	r.logger.Debug("requester added", "requester_id", id)

	return nil
}

func (r *Registry) FindResource(ctx context.Context, id int) (Resource, error) {
	if ctx.Err() != nil {
		return Resource{}, ctx.Err()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	res, err := r.findResourceLocked(id)
	if err != nil {
		return Resource{}, err
	}
	return *res, nil
}

func (r *Registry) FindRequester(ctx context.Context, id int) (Requester, error) {
	if ctx.Err() != nil {
		return Requester{}, ctx.Err()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	req, err := r.findRequesterLocked(id)
	if err != nil {
		return Requester{}, err
	}
	return *req, nil
}

func (r *Registry) findResourceLocked(id int) (*Resource, error) {
	res, ok := r.resources[id]
	if !ok {
		return nil, fmt.Errorf("resource %d: %w", id, ErrResourceNotFound)
	}
	return res, nil
}

func (r *Registry) findRequesterLocked(id int) (*Requester, error) {
	req, ok := r.requesters[id]
	if !ok {
		return nil, fmt.Errorf("requester %d: %w", id, ErrRequesterNotFound)
	}
	return req, nil
}

// Book reserva o quarto para o cliente no intervalo, garantindo ausência de
// conflito com qualquer reserva ativa do mesmo quarto.
func (r *Registry) Book(ctx context.Context, resourceID, requesterID int, iv Interval) (Reservation, error) {
	if ctx.Err() != nil {
		return Reservation{}, ctx.Err()
	}
	if err := iv.Validate(); err != nil {
		return Reservation{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.findResourceLocked(resourceID)
	if err != nil {
		return Reservation{}, err
	}
	if _, err := r.findRequesterLocked(requesterID); err != nil {
		return Reservation{}, err
	}

	existing := r.byResource[resourceID]
	for _, other := range existing {
		if Overlaps(other.Interval, iv) {
			r.logger.Info("booking conflict",
				"resource_id", resourceID,
				"requested", iv.String(),
				"existing", other.Interval.String(),
			)
			return Reservation{}, fmt.Errorf("book resource %d for %s: %w", resourceID, iv, ErrConflict)
		}
	}

	// só a primeira reserva ativa mexe no flag
	if len(existing) == 0 {
		if err := res.Book(); err != nil {
			return Reservation{}, err
		}
	}

	booking := &Reservation{
		ID:          uuid.New(),
		ResourceID:  resourceID,
		RequesterID: requesterID,
		Interval:    iv,
		CreatedAt:   r.clock.Now(),
	}
	r.live = append(r.live, booking)
	r.byResource[resourceID] = append(existing, booking)
	r.byID[booking.ID] = booking

	r.logger.Info("resource booked",
		"reservation_id", booking.ID.String(),
		"resource_id", resourceID,
		"requester_id", requesterID,
		"interval", iv.String(),
	)

	return *booking, nil
}

// Cancel remove a reserva mais antiga do quarto, seja qual for o cliente ou o
// intervalo. Para cancelar uma reserva específica use CancelReservation.
func (r *Registry) Cancel(ctx context.Context, resourceID int) (Reservation, error) {
	if ctx.Err() != nil {
		return Reservation{}, ctx.Err()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.findResourceLocked(resourceID); err != nil {
		return Reservation{}, err
	}

	list := r.byResource[resourceID]
	if len(list) == 0 {
		return Reservation{}, fmt.Errorf("cancel resource %d: %w", resourceID, ErrNotBooked)
	}

	first := list[0]
	if err := r.removeLocked(first); err != nil {
		return Reservation{}, err
	}
	r.logger.Info("booking cancelled", "reservation_id", first.ID.String(), "resource_id", resourceID)

	return *first, nil
}

func (r *Registry) CancelReservation(ctx context.Context, id uuid.UUID) (Reservation, error) {
	if ctx.Err() != nil {
		return Reservation{}, ctx.Err()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.byID[id]
	if !ok {
		return Reservation{}, fmt.Errorf("cancel %s: %w", id, ErrReservationNotFound)
	}
	if err := r.removeLocked(booking); err != nil {
		return Reservation{}, err
	}
	r.logger.Info("booking cancelled", "reservation_id", id.String(), "resource_id", booking.ResourceID)

	return *booking, nil
}

// removeLocked tira a reserva dos três índices. Quando era a última do quarto
// o flag volta para disponível; se o flag discordar nada é removido.
func (r *Registry) removeLocked(booking *Reservation) error {
	list := r.byResource[booking.ResourceID]
	if len(list) == 1 {
		if err := r.resources[booking.ResourceID].Cancel(); err != nil {
			return err
		}
	}

	r.byResource[booking.ResourceID] = without(list, booking)
	if len(r.byResource[booking.ResourceID]) == 0 {
		delete(r.byResource, booking.ResourceID)
	}
	r.live = without(r.live, booking)
	delete(r.byID, booking.ID)

	return nil
}

func without(list []*Reservation, target *Reservation) []*Reservation {
	out := make([]*Reservation, 0, len(list))
	for _, b := range list {
		if b != target {
			out = append(out, b)
		}
	}
	return out
}

func (r *Registry) ListResources(ctx context.Context) ([]Resource, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Resource, 0, len(r.resourceOrder))
	for _, id := range r.resourceOrder {
		out = append(out, *r.resources[id])
	}
	return out, nil
}

func (r *Registry) ListRequesters(ctx context.Context) ([]Requester, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Requester, 0, len(r.requesterOrder))
	for _, id := range r.requesterOrder {
		out = append(out, *r.requesters[id])
	}
	return out, nil
}

func (r *Registry) ListReservations(ctx context.Context) ([]Reservation, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Reservation, 0, len(r.live))
	for _, b := range r.live {
		out = append(out, *b)
	}
	return out, nil
}

// Availability retorna os quartos sem nenhuma reserva ativa que sobreponha o
// intervalo, na ordem de cadastro.
func (r *Registry) Availability(ctx context.Context, iv Interval) ([]Resource, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err := iv.Validate(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Resource
	for _, id := range r.resourceOrder {
		free := true
		for _, b := range r.byResource[id] {
			if Overlaps(b.Interval, iv) {
				free = false
				break
			}
		}
		if free {
			out = append(out, *r.resources[id])
		}
	}
	return out, nil
}

// ReleaseCompleted remove as reservas cujo checkout já passou (End antes de
// hoje segundo o relógio). Retorna quantas foram liberadas.
func (r *Registry) ReleaseCompleted(ctx context.Context) (int, error) {
	if ctx.Err() != nil {
		return 0, ctx.Err()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	today := Today(r.clock)
	released := 0

	for _, b := range append([]*Reservation(nil), r.live...) {
		if !b.Interval.End.Before(today) {
			continue
		}
		if err := r.removeLocked(b); err != nil {
			return released, err
		}
		released++
	}

	if released > 0 {
		r.logger.Info("completed reservations released", "count", released, "today", today.String())
	}
	return released, nil
}

// StartCheckoutWorker roda em background liberando reservas encerradas.
func (r *Registry) StartCheckoutWorker(ctx context.Context, every time.Duration) {
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := r.ReleaseCompleted(ctx); err != nil && ctx.Err() == nil {
					r.logger.Error("checkout sweep failed", "error", err)
				}
			}
		}
	}()
}
