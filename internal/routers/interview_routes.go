package routers

import (
	"interviewprep/internal/handlers"
	"interviewprep/internal/middleware"
	"interviewprep/internal/models"

	"github.com/go-chi/chi/v5"
)

func InterviewRoutes(router *chi.Mux, interviewHandler *handlers.InterviewHandler, jwtSecret string) {
	router.Route("/api/v1/coach", func(r chi.Router) {
		r.Use(middleware.RequireAuth(jwtSecret))

		r.With(middleware.ValidateRequest[*models.SessionSetupRequest]()).Post("/", interviewHandler.StartCoachHandler)
		r.Get("/question/{index}", interviewHandler.CoachQuestionHandler)
	})

	router.Route("/api/v1/practice", func(r chi.Router) {
		r.Use(middleware.RequireAuth(jwtSecret))

		r.With(middleware.ValidateRequest[*models.SessionSetupRequest]()).Post("/", interviewHandler.StartPracticeHandler)
		r.Get("/question/{index}", interviewHandler.PracticeQuestionHandler)
		r.With(middleware.ValidateRequest[*models.EvaluateRequest]()).Post("/evaluate", interviewHandler.EvaluateHandler)
		r.Get("/results", interviewHandler.ResultsHandler)
	})
}
