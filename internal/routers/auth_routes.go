package routers

import (
	"interviewprep/internal/handlers"
	"interviewprep/internal/middleware"
	"interviewprep/internal/models"

	"github.com/go-chi/chi/v5"
)

func AuthRoutes(router *chi.Mux, authHandler *handlers.AuthHandler, jwtSecret string) {
	router.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.ValidateRequest[*models.RegisterRequest]()).Post("/register", authHandler.RegisterHandler)
		r.With(middleware.ValidateRequest[*models.LoginRequest]()).Post("/login", authHandler.LoginHandler)
		r.With(middleware.RequireAuth(jwtSecret)).Post("/logout", authHandler.LogoutHandler)
	})
}
