package handler

import (
	"net/http"

	"github.com/Shivanand-hulikatti/cabin-booking/internal/model"
	"github.com/Shivanand-hulikatti/cabin-booking/internal/service"
)

// ListCabins handles GET /cabins?capacity=all|small|medium|large
func (h *Handler) ListCabins(w http.ResponseWriter, r *http.Request) {
	cabins, err := h.cabins.ListCabins(r.Context(), r.URL.Query().Get("capacity"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	// Return an empty array rather than null for better client compatibility.
	if cabins == nil {
		cabins = []model.Cabin{}
	}

	writeJSON(w, http.StatusOK, cabins)
}

// GetCabin handles GET /cabins/{id}
func (h *Handler) GetCabin(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.fail(w, r, model.ErrCabinNotFound)
		return
	}

	h.cached(w, r, service.CabinDetailPath(id), "", func() (any, error) {
		return h.cabins.GetCabin(r.Context(), id)
	})
}

type reservationPanelResponse struct {
	*service.ReservationPanel
	User *model.Session `json:"user"`
}

// ReservationPanel handles GET /cabins/{id}/reservation
// Returns the settings and booked days for the date selector, plus the
// signed-in guest if there is one.
func (h *Handler) ReservationPanel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.fail(w, r, model.ErrCabinNotFound)
		return
	}

	panel, err := h.cabins.ReservationPanel(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, reservationPanelResponse{ReservationPanel: panel, User: h.session(r.Context())})
}

// CreateBooking handles POST /cabins/{id}/bookings
// Form fields: startDate, endDate, numGuests, observations.
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.fail(w, r, model.ErrCabinNotFound)
		return
	}

	start, err := parseDate(r, "startDate")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	end, err := parseDate(r, "endDate")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	out, err := h.reservations.Create(r.Context(), h.session(r.Context()),
		service.BookingDraft{CabinID: id, StartDate: start, EndDate: end},
		service.ReservationForm{
			NumGuests:    r.PostFormValue("numGuests"),
			Observations: r.PostFormValue("observations"),
		},
	)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	redirect(w, r, out.Redirect)
}
