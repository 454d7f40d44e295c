package mockapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates and configures the mock backend router.
func NewRouter(secret string, tokenExpiry time.Duration) (http.Handler, error) {
	tokens, err := NewTokenService(secret, tokenExpiry)
	if err != nil {
		return nil, err
	}

	store := NewStore()
	h := NewHandler(store, tokens)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(h.requireAuth)

			r.Get("/auth/me", h.Me)
			r.Get("/devices", h.ListDevices)

			r.Group(func(r chi.Router) {
				r.Use(h.requireAdmin)

				r.Get("/auth/users", h.ListUsers)
				r.Post("/auth/users", h.CreateUser)
				r.Delete("/auth/users/{id}", h.DeleteUser)
				r.Put("/auth/users/{id}/password", h.ChangePassword)
			})
		})
	})

	return r, nil
}
