package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/jobboard-api/internal/api"
	apiMiddleware "github.com/phrazzld/jobboard-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	errorHandler := api.NewErrorHandler(app.config.Server.IsProduction(), app.logger)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware)
	r.Use(middleware.Logger)
	r.Use(errorHandler.Recoverer)

	// Registered before any sub-router so mounted routers inherit them.
	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.NotFound)

	jobHandler := api.NewJobHandler(app.jobService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api/v1/job", func(r chi.Router) {
		r.Get("/get", jobHandler.GetAllJobs)
		r.Get("/get/{id}", jobHandler.GetJobByID)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Post("/post", jobHandler.PostJob)
			r.Get("/getadminjobs", jobHandler.GetAdminJobs)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
