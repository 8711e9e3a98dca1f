package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	anHnd "analytics-service/internal/analytics/handler"
	"analytics-service/internal/config"
	"analytics-service/internal/middleware"
	"analytics-service/internal/store"
	"analytics-service/server/http/handlers"
)

func NewRouter(cfg config.Config, logger zerolog.Logger, st store.Store) *chi.Mux {
	r := chi.NewRouter()

	// порядок важен: recover -> requestID -> logging -> cors -> limit -> gzip
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) * 1024 * 1024))
	r.Use(middleware.Compress())

	// health-check
	r.Get("/health", handlers.Health(st))

	r.Route("/analytics", func(r chi.Router) {
		r.Get("/summary", anHnd.Summary(st, cfg))
		r.Post("/compute", anHnd.Compute(cfg))
		r.Post("/upload", anHnd.Upload(cfg))
	})

	return r
}
