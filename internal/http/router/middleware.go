package router

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"assustadus/internal/logging"
)

func useBaseMiddlewares(r chi.Router, logger logging.Logger) {
	// Request ID / Real IP / Recover
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Use(requestLogger(logger.With("component", "http")))

	r.Use(middleware.Timeout(60 * time.Second))
}
