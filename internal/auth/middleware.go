package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Shivanand-hulikatti/cabin-booking/internal/model"
)

// SessionCookie holds the signed session token.
const SessionCookie = "session"

type contextKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s *model.Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session of the request, or nil.
func FromContext(ctx context.Context) *model.Session {
	s, _ := ctx.Value(contextKey{}).(*model.Session)
	return s
}

// Middleware resolves the session cookie on every request. Requests
// without a valid cookie continue anonymously; a valid cookie whose guest
// cannot be resolved fails the request.
func Middleware(tokens *Tokens, bridge *Bridge, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(SessionCookie)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			profile, err := tokens.Parse(c.Value)
			if err != nil {
				if !errors.Is(err, ErrMissingToken) {
					log.DebugContext(r.Context(), "ignoring session cookie", slog.Any("error", err))
				}
				next.ServeHTTP(w, r)
				return
			}

			session, err := bridge.Session(r.Context(), profile)
			if err != nil {
				log.ErrorContext(r.Context(), "resolve session failed",
					slog.String("email", profile.Email),
					slog.Any("error", err),
				)
				writeError(w, http.StatusInternalServerError, "Something went wrong")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

// RequireSession answers 401 to anonymous requests.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if FromContext(r.Context()) == nil {
			writeError(w, http.StatusUnauthorized, model.ErrNotAuthenticated.Message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.ErrorResponse{Error: msg})
}
