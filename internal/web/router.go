package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	httpmiddleware "github.com/grooming-is/schedule-web/internal/http/middleware"
	"github.com/grooming-is/schedule-web/pkg/logging"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	Handler        *Handler
	Logger         *logging.Logger
	MetricsHandler http.Handler
}

// NewRouter creates the chi router with all pages wired.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	h := cfg.Handler

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}
	r.Handle("/static/*", StaticHandler())

	r.Get("/login", h.handleLoginPage)
	r.Post("/login", h.handleLoginSubmit)
	r.Post("/logout", h.handleLogout)

	r.Group(func(private chi.Router) {
		private.Use(h.RequireSession)
		private.Get("/", h.handleIndex)
		private.Get("/schedule", h.handleSchedule)
		private.Get("/orders/new", h.handleFormPage)
		private.Post("/orders/new", h.handleFormSubmit)
		private.Post("/orders/cancel", h.handleFormCancel)
	})

	return r
}
