package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

// NewRouter builds and returns the chi router with all routes configured.
// Health, registration, login, and public profiles are unauthenticated;
// everything else requires a valid token. The auth endpoints are rate
// limited per IP to slow down credential stuffing.
func NewRouter(h *Handlers, origins []string, storePinger, cachePinger Pinger, log *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"Authorization"},
		AllowCredentials: true,
	}))

	r.Get("/health", HealthHandlerFunc(storePinger, cachePinger, log))

	r.Group(func(r chi.Router) {
		r.Use(httprate.LimitByIP(20, time.Minute))
		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)
	})

	r.Get("/users/profile/{username}", h.PublicProfile)

	r.Group(func(r chi.Router) {
		r.Use(h.Principal)

		r.With(h.RequireAdmin).Get("/users", h.ListUsers)
		r.Get("/users/profile", h.Profile)
		r.Get("/users/favorites", h.ListFavorites)
		r.Put("/users/favorites/{roadtripID}", h.AddFavorite)
		r.Delete("/users/favorites/{roadtripID}", h.RemoveFavorite)

		r.Get("/landmarks", h.ListLandmarks)
		r.Get("/landmarks/{landmarkID}", h.GetLandmark)
		r.With(h.RequireAdmin).Post("/landmarks", h.CreateLandmark)
		r.With(h.RequireAdmin).Delete("/landmarks/{landmarkID}", h.DeleteLandmark)

		r.Get("/roadtrips", h.ListRoadtrips)
		r.Get("/roadtrips/{roadtripID}", h.GetRoadtrip)
		r.Post("/roadtrips", h.CreateRoadtrip)
		r.Patch("/roadtrips/{roadtripID}", h.UpdateRoadtrip)
		r.Delete("/roadtrips/{roadtripID}", h.DeleteRoadtrip)

		r.Get("/reviews", h.ListReviews)
		r.Post("/reviews", h.CreateReview)
		r.Patch("/reviews/{reviewID}", h.UpdateReview)
		r.Delete("/reviews/{reviewID}", h.DeleteReview)

		r.Get("/magazines", h.ListMagazines)
		r.Post("/magazines", h.CreateMagazine)
		r.Put("/magazines", h.UpdateMagazine)
		r.Delete("/magazines", h.DeleteMagazine)
	})

	return r
}

// Ensure chi.Mux implements http.Handler.
var _ http.Handler = (*chi.Mux)(nil)
