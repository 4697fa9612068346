package routers

import (
	"interviewprep/internal/handlers"
	"interviewprep/internal/middleware"
	"interviewprep/internal/models"

	"github.com/go-chi/chi/v5"
)

func ResumeRoutes(router *chi.Mux, resumeHandler *handlers.ResumeHandler, jwtSecret string) {
	router.Route("/api/v1/resume", func(r chi.Router) {
		r.Use(middleware.RequireAuth(jwtSecret))

		r.With(middleware.ValidateRequest[*models.ResumeRequest]()).Post("/", resumeHandler.OptimizeHandler)
		r.Get("/results", resumeHandler.ResultsHandler)
	})
}
