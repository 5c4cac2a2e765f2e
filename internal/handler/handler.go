// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Shivanand-hulikatti/cabin-booking/internal/cache"
	"github.com/Shivanand-hulikatti/cabin-booking/internal/model"
	"github.com/Shivanand-hulikatti/cabin-booking/internal/service"
)

// CabinReader serves the public cabin pages.
type CabinReader interface {
	ListCabins(ctx context.Context, capacity string) ([]model.Cabin, error)
	GetCabin(ctx context.Context, id int64) (*model.Cabin, error)
	ReservationPanel(ctx context.Context, cabinID int64) (*service.ReservationPanel, error)
}

// AccountReader serves the guest account area.
type AccountReader interface {
	Profile(ctx context.Context, session *model.Session) (*model.Guest, error)
	UpdateProfile(ctx context.Context, session *model.Session, form service.ProfileForm) (*model.Guest, error)
	Reservations(ctx context.Context, session *model.Session) ([]model.GuestBooking, error)
	Reservation(ctx context.Context, session *model.Session, bookingID int64) (*model.Booking, error)
	Countries(ctx context.Context) ([]model.Country, error)
}

// Reservations performs the booking mutations.
type Reservations interface {
	Create(ctx context.Context, session *model.Session, draft service.BookingDraft, form service.ReservationForm) (*service.Outcome, error)
	Update(ctx context.Context, session *model.Session, form service.EditReservationForm) (*service.Outcome, error)
	Delete(ctx context.Context, session *model.Session, bookingID int64) error
}

// SessionFunc extracts the authenticated session of a request, or nil.
type SessionFunc func(ctx context.Context) *model.Session

// Handler holds all HTTP handlers for the cabin booking API.
type Handler struct {
	cabins       CabinReader
	account      AccountReader
	reservations Reservations
	views        cache.Store
	session      SessionFunc
	log          *slog.Logger
}

// New constructs a Handler.
func New(
	cabins CabinReader,
	account AccountReader,
	reservations Reservations,
	views cache.Store,
	session SessionFunc,
	log *slog.Logger,
) *Handler {
	return &Handler{
		cabins:       cabins,
		account:      account,
		reservations: reservations,
		views:        views,
		session:      session,
		log:          log,
	}
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, field string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg, Field: field})
}

// fail maps a domain error to its HTTP status. Backend causes are logged
// by the repositories; only the fixed message reaches the client.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var de *model.Error
	if !errors.As(err, &de) {
		h.log.ErrorContext(r.Context(), "unclassified error", slog.String("path", r.URL.Path), slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "Something went wrong", "")
		return
	}
	writeError(w, statusOf(de), de.Message, de.Field)
}

func statusOf(e *model.Error) int {
	switch e.Kind {
	case model.KindValidation:
		return http.StatusBadRequest
	case model.KindAuthorization:
		if errors.Is(e, model.ErrNotAuthenticated) {
			return http.StatusUnauthorized
		}
		return http.StatusForbidden
	case model.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

// parseDate reads an optional date form field. Empty means not picked.
func parseDate(r *http.Request, field string) (*time.Time, error) {
	raw := r.PostFormValue(field)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, model.Validation(field, "Invalid date")
}

func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// cached answers from the view cache when it holds path for scope and
// otherwise renders load and stores the result. path must be the canonical
// form the services revalidate, not the raw request path.
func (h *Handler) cached(w http.ResponseWriter, r *http.Request, path, scope string, load func() (any, error)) {
	ctx := r.Context()

	body, ok, err := h.views.Get(ctx, path, scope)
	if err != nil {
		h.log.WarnContext(ctx, "view cache read failed", slog.String("path", path), slog.Any("error", err))
	}
	if ok {
		w.Header().Set("X-Cache", "HIT")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
		return
	}

	v, err := load()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	body, err = json.Marshal(v)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.views.Set(ctx, path, scope, body); err != nil {
		h.log.WarnContext(ctx, "view cache write failed", slog.String("path", path), slog.Any("error", err))
	}

	w.Header().Set("X-Cache", "MISS")
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

func guestScope(s *model.Session) string {
	return strconv.FormatInt(s.GuestID, 10)
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
