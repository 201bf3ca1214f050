package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"offboard-checklist/internal/config"
	"offboard-checklist/internal/handlers"
	"offboard-checklist/internal/middleware"
	"offboard-checklist/internal/service"
)

func New(log zerolog.Logger, svc *service.Offboarding, cfg config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Origin},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{"Content-Disposition", "X-Total-Count", middleware.RequestIDHeader},
		AllowCredentials: true,
	}))
	if cfg.RateLimit > 0 {
		r.Use(httprate.LimitByIP(cfg.RateLimit, time.Minute))
	}

	// Health
	r.Get("/healthz", handlers.Health())
	r.Get("/readyz", handlers.Ready(svc.Ping))

	th := handlers.NewTicketHTTP(svc, log)
	rh := handlers.NewReportsHTTP(svc, log)

	r.Route("/api", func(r chi.Router) {
		if cfg.AuthSecret != "" {
			r.Use(middleware.WithAuth(log, cfg.AuthSecret))
			r.Use(middleware.RequireAuth)
		}

		r.Route("/tickets", func(r chi.Router) {
			r.Get("/", th.List())
			r.Post("/", th.Create())
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", th.Get())
				r.Patch("/", th.Update())
				r.Get("/export", th.Export())
				r.Patch("/checklist/bulk", th.BulkUpdateItems())
				r.Patch("/checklist/{itemId}", th.UpdateItem())
			})
		})
		r.Get("/reports/summary", rh.Summary())
	})

	return r
}
