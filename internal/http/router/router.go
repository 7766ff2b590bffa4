package router

import (
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "assustadus/internal/http/apidocs" // registers the swagger document
	"assustadus/internal/http/handlers/health"
	"assustadus/internal/http/handlers/root"
	userhandler "assustadus/internal/http/handlers/user"
	"assustadus/internal/http/responses"
	"assustadus/internal/logging"
)

func NewRouter(
	logger logging.Logger,
	rootHandler *root.Handler,
	healthHandler *health.Handler,
	userHandler *userhandler.Handler,
) chi.Router {
	r := chi.NewRouter()

	useBaseMiddlewares(r, logger)

	r.Get("/", rootHandler.Greeting)
	r.Get("/health", healthHandler.Check)

	r.Route("/users", userHandler.Routes)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.NotFound(responses.WriteNotFound)
	r.MethodNotAllowed(responses.WriteMethodNotAllowed)

	return r
}
