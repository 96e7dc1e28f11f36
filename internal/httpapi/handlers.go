package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/FrederickAlmeida/Reserva-Hotel/internal/reservation"
	"github.com/FrederickAlmeida/Reserva-Hotel/internal/wire"
)

type handlers struct {
	svc    *wire.Service
	logger reservation.Logger
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) listResources(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.ListResources(r.Context(), wire.Empty{})
	h.respond(w, http.StatusOK, out, err)
}

func (h *handlers) addResource(w http.ResponseWriter, r *http.Request) {
	var req wire.AddResourceRequest
	if !h.decode(w, r, &req) {
		return
	}
	out, err := h.svc.AddResource(r.Context(), req)
	h.respond(w, http.StatusCreated, out, err)
}

func (h *handlers) listRequesters(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.ListRequesters(r.Context(), wire.Empty{})
	h.respond(w, http.StatusOK, out, err)
}

func (h *handlers) addRequester(w http.ResponseWriter, r *http.Request) {
	var req wire.AddRequesterRequest
	if !h.decode(w, r, &req) {
		return
	}
	out, err := h.svc.AddRequester(r.Context(), req)
	h.respond(w, http.StatusCreated, out, err)
}

func (h *handlers) listReservations(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.ListReservations(r.Context(), wire.Empty{})
	h.respond(w, http.StatusOK, out, err)
}

func (h *handlers) book(w http.ResponseWriter, r *http.Request) {
	var req wire.BookRequest
	if !h.decode(w, r, &req) {
		return
	}
	out, err := h.svc.Book(r.Context(), req)
	h.respond(w, http.StatusCreated, out, err)
}

func (h *handlers) cancelReservation(w http.ResponseWriter, r *http.Request) {
	req := wire.CancelReservationRequest{ReservationID: chi.URLParam(r, "id")}
	out, err := h.svc.CancelReservation(r.Context(), req)
	h.respond(w, http.StatusOK, out, err)
}

func (h *handlers) cancelByResource(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, fmt.Errorf("%w: resource id %q", reservation.ErrInvalidArgument, chi.URLParam(r, "id")))
		return
	}
	out, err := h.svc.Cancel(r.Context(), wire.CancelRequest{ResourceID: id})
	h.respond(w, http.StatusOK, out, err)
}

func (h *handlers) availability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := wire.AvailabilityRequest{Start: q.Get("start"), End: q.Get("end")}
	if req.Start == "" || req.End == "" {
		h.writeError(w, fmt.Errorf("%w: start and end are required", reservation.ErrInvalidArgument))
		return
	}
	out, err := h.svc.ListAvailable(r.Context(), req)
	h.respond(w, http.StatusOK, out, err)
}

func (h *handlers) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := wire.JSON.NewDecoder(r.Body).Decode(v); err != nil {
		h.writeError(w, fmt.Errorf("%w: malformed body: %v", reservation.ErrInvalidArgument, err))
		return false
	}
	return true
}

func (h *handlers) respond(w http.ResponseWriter, okStatus int, out any, err error) {
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, okStatus, out)
}

func (h *handlers) writeError(w http.ResponseWriter, err error) {
	code := reservation.ErrorKind(err)
	st := statusFor(code)
	if st == http.StatusInternalServerError {
		h.logger.Error("request failed", "error", err)
	}
	h.writeJSON(w, st, errorBody{Error: err.Error(), Code: code})
}

func statusFor(code string) int {
	switch code {
	case reservation.CodeNotFound:
		return http.StatusNotFound
	case reservation.CodeConflict, reservation.CodeDuplicateID:
		return http.StatusConflict
	case reservation.CodeInvalidArgument:
		return http.StatusBadRequest
	case reservation.CodeAlreadyBooked, reservation.CodeNotBooked:
		return http.StatusPreconditionFailed
	case reservation.CodeCanceled:
		return http.StatusServiceUnavailable
	case reservation.CodeDeadlineExceeded:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (h *handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	out, err := wire.JSON.Marshal(v)
	if err != nil {
		h.logger.Error("failed to marshal response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(out)
}
