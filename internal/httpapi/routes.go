// Package httpapi expõe o registro de reservas como uma API JSON.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/FrederickAlmeida/Reserva-Hotel/internal/reservation"
	"github.com/FrederickAlmeida/Reserva-Hotel/internal/wire"
)

func NewRouter(svc *wire.Service, logger reservation.Logger) http.Handler {
	h := &handlers{svc: svc, logger: logger}

	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.Recoverer)
	mux.Use(requestLogger(logger))

	mux.Get("/healthz", h.health)

	mux.Route("/resources", func(mux chi.Router) {
		mux.Get("/", h.listResources)
		mux.Post("/", h.addResource)
		mux.Delete("/{id}/reservation", h.cancelByResource)
	})

	mux.Route("/requesters", func(mux chi.Router) {
		mux.Get("/", h.listRequesters)
		mux.Post("/", h.addRequester)
	})

	mux.Route("/reservations", func(mux chi.Router) {
		mux.Get("/", h.listReservations)
		mux.Post("/", h.book)
		mux.Delete("/{id}", h.cancelReservation)
	})

	mux.Get("/availability", h.availability)

	return mux
}

func requestLogger(logger reservation.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
