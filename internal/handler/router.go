package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// AuthRoutes serves the sign-in flow.
type AuthRoutes interface {
	SignIn(w http.ResponseWriter, r *http.Request)
	Callback(w http.ResponseWriter, r *http.Request)
	SignOut(w http.ResponseWriter, r *http.Request)
}

// Middleware is a chi-compatible middleware.
type Middleware = func(http.Handler) http.Handler

// Routes mounts every endpoint on r. session resolves the session cookie
// on all routes; requireSession guards the account area.
func (h *Handler) Routes(r chi.Router, authRoutes AuthRoutes, session, requireSession Middleware) {
	r.Get("/health", HealthCheck)

	r.Group(func(r chi.Router) {
		r.Use(session)

		r.Get("/countries", h.Countries)

		r.Route("/cabins", func(r chi.Router) {
			r.Get("/", h.ListCabins)
			r.Get("/{id}", h.GetCabin)
			r.Get("/{id}/reservation", h.ReservationPanel)
			r.Post("/{id}/bookings", h.CreateBooking)
		})

		r.Route("/api/auth", func(r chi.Router) {
			r.Get("/signin", authRoutes.SignIn)
			r.Get("/callback/google", authRoutes.Callback)
			r.Post("/signout", authRoutes.SignOut)
		})

		r.Route("/account", func(r chi.Router) {
			r.Use(requireSession)

			r.Get("/", h.Account)
			r.Get("/profile", h.Profile)
			r.Post("/profile", h.UpdateProfile)
			r.Get("/reservations", h.ListReservations)
			r.Get("/reservations/edit/{id}", h.EditReservation)
			r.Post("/reservations/{id}", h.UpdateReservation)
			r.Delete("/reservations/{id}", h.DeleteReservation)
		})
	})
}
