package auth

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	stateCookie   = "oauth_state"
	stateTTL      = 10 * time.Minute
	afterSignIn   = "/account"
	afterSignOut  = "/"
	signInFailure = "/login?error=AccessDenied"
)

// Handler serves the sign-in, callback and sign-out endpoints.
type Handler struct {
	provider Provider
	bridge   *Bridge
	tokens   *Tokens
	secure   bool
	log      *slog.Logger
}

// NewHandler constructs a Handler. secure marks cookies Secure.
func NewHandler(provider Provider, bridge *Bridge, tokens *Tokens, secure bool, log *slog.Logger) *Handler {
	return &Handler{provider: provider, bridge: bridge, tokens: tokens, secure: secure, log: log}
}

// SignIn handles GET /api/auth/signin
// Redirects to the provider's consent page.
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/api/auth",
		MaxAge:   int(stateTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.provider.AuthCodeURL(state), http.StatusFound)
}

// Callback handles GET /api/auth/callback/google
// Completes the code exchange, provisions the guest and issues the session cookie.
func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	c, err := r.Cookie(stateCookie)
	state := r.URL.Query().Get("state")
	if err != nil || state == "" || subtle.ConstantTimeCompare([]byte(c.Value), []byte(state)) != 1 {
		writeError(w, http.StatusBadRequest, "invalid oauth state")
		return
	}
	h.clearCookie(w, stateCookie, "/api/auth")

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Redirect(w, r, signInFailure, http.StatusFound)
		return
	}

	profile, err := h.provider.Exchange(ctx, code)
	if err != nil {
		h.log.ErrorContext(ctx, "oauth exchange failed", slog.Any("error", err))
		http.Redirect(w, r, signInFailure, http.StatusFound)
		return
	}

	if !h.bridge.SignIn(ctx, profile) {
		http.Redirect(w, r, signInFailure, http.StatusFound)
		return
	}

	token, expires, err := h.tokens.Issue(profile)
	if err != nil {
		h.log.ErrorContext(ctx, "issue session failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	h.log.InfoContext(ctx, "signed in", slog.String("email", profile.Email))
	http.Redirect(w, r, afterSignIn, http.StatusFound)
}

// SignOut handles POST /api/auth/signout
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	h.clearCookie(w, SessionCookie, "/")
	http.Redirect(w, r, afterSignOut, http.StatusSeeOther)
}

func (h *Handler) clearCookie(w http.ResponseWriter, name, path string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     path,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
