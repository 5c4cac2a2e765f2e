package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Shivanand-hulikatti/cabin-booking/internal/model"
	"github.com/Shivanand-hulikatti/cabin-booking/internal/service"
)

// Account handles GET /account
func (h *Handler) Account(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session(r.Context()))
}

type profileResponse struct {
	Guest     *model.Guest    `json:"guest"`
	Countries []model.Country `json:"countries"`
}

// Profile handles GET /account/profile
// Returns the guest record and the selectable nationalities.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	session := h.session(r.Context())
	if session == nil {
		h.fail(w, r, model.ErrNotAuthenticated)
		return
	}

	h.cached(w, r, service.ProfilePath, guestScope(session), func() (any, error) {
		guest, err := h.account.Profile(r.Context(), session)
		if err != nil {
			return nil, err
		}
		countries, err := h.account.Countries(r.Context())
		if err != nil {
			return nil, err
		}
		return profileResponse{Guest: guest, Countries: countries}, nil
	})
}

// UpdateProfile handles POST /account/profile
// Form fields: nationalID, nationality ("<name>%<flag>").
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	_, err := h.account.UpdateProfile(r.Context(), h.session(r.Context()), service.ProfileForm{
		NationalID:  r.PostFormValue("nationalID"),
		Nationality: r.PostFormValue("nationality"),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	redirect(w, r, service.ProfilePath)
}

// Countries handles GET /countries
func (h *Handler) Countries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.account.Countries(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, countries)
}

// ListReservations handles GET /account/reservations
func (h *Handler) ListReservations(w http.ResponseWriter, r *http.Request) {
	session := h.session(r.Context())
	if session == nil {
		h.fail(w, r, model.ErrNotAuthenticated)
		return
	}

	h.cached(w, r, service.ReservationsPath, guestScope(session), func() (any, error) {
		return h.account.Reservations(r.Context(), session)
	})
}

type editReservationResponse struct {
	Booking     *model.Booking `json:"booking"`
	MaxCapacity int            `json:"max_capacity"`
}

// EditReservation handles GET /account/reservations/edit/{id}
// Returns the booking with its cabin's capacity for the guest-count select.
func (h *Handler) EditReservation(w http.ResponseWriter, r *http.Request) {
	session := h.session(r.Context())
	if session == nil {
		h.fail(w, r, model.ErrNotAuthenticated)
		return
	}
	id, ok := pathID(r)
	if !ok {
		h.fail(w, r, model.ErrBookingNotFound)
		return
	}

	h.cached(w, r, service.EditReservationPath(id), guestScope(session), func() (any, error) {
		booking, err := h.account.Reservation(r.Context(), session, id)
		if err != nil {
			return nil, err
		}
		cabin, err := h.cabins.GetCabin(r.Context(), booking.CabinID)
		if err != nil {
			return nil, err
		}
		return editReservationResponse{Booking: booking, MaxCapacity: cabin.MaxCapacity}, nil
	})
}

// UpdateReservation handles POST /account/reservations/{id}
// Form fields: numGuests, observations.
func (h *Handler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	out, err := h.reservations.Update(r.Context(), h.session(r.Context()), service.EditReservationForm{
		BookingID:    chi.URLParam(r, "id"),
		NumGuests:    r.PostFormValue("numGuests"),
		Observations: r.PostFormValue("observations"),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	redirect(w, r, out.Redirect)
}

// DeleteReservation handles DELETE /account/reservations/{id}
func (h *Handler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.fail(w, r, model.Validation("bookingId", "Invalid booking id"))
		return
	}

	if err := h.reservations.Delete(r.Context(), h.session(r.Context()), id); err != nil {
		h.fail(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
