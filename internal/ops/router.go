package ops

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SlotLister exposes the scheduler's current timers.
type SlotLister interface {
	SlotLabels() []string
}

// NewRouter serves /healthz, /metrics and /schedule.
func NewRouter(slots SlotLister) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/schedule", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		for _, label := range slots.SlotLabels() {
			_, _ = w.Write([]byte(label + "\n"))
		}
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
