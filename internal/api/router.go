package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/userbase/userbase-be/internal/api/handlers"
	"github.com/userbase/userbase-be/internal/auth"
	"github.com/userbase/userbase-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(authService services.AuthServiceProvider, userService services.UserServiceProvider, tokens *auth.TokenService, allowedOrigins []string, appEnv string) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	userHandler := handlers.NewUserHandler(authService, userService, tokens.TTL(), appEnv)

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/register", userHandler.Register)
		r.Post("/login", userHandler.Login)
		r.Get("/", userHandler.GetAll)

		r.With(tokens.Middleware()).Get("/me", userHandler.GetMe)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", userHandler.Get)
			r.Put("/", userHandler.Update)
			r.Delete("/", userHandler.Delete)
		})
	})

	return r
}
