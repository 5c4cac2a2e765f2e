// Package auth correlates identity-provider accounts with guest records
// and carries the resulting session through HTTP requests.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Shivanand-hulikatti/cabin-booking/internal/model"
)

// ErrSessionUnresolved means an authenticated account has no usable
// guest record. Requests carrying such a session cannot proceed.
var ErrSessionUnresolved = errors.New("session could not be resolved to a guest")

// Profile is what the identity provider tells us about the account.
type Profile struct {
	Email string
	Name  string
	Image string
}

// GuestStore is the guest lookup and provisioning the bridge needs.
type GuestStore interface {
	GetByEmail(ctx context.Context, email string) (*model.Guest, error)
	Create(ctx context.Context, g model.NewGuest) (*model.Guest, error)
}

// Bridge turns provider profiles into guests and sessions.
type Bridge struct {
	guests GuestStore
	log    *slog.Logger
}

// NewBridge constructs a Bridge.
func NewBridge(guests GuestStore, log *slog.Logger) *Bridge {
	return &Bridge{guests: guests, log: log}
}

// SignIn provisions a guest for p on first sign-in. It returns false,
// rejecting the sign-in, when the profile is incomplete or storage fails.
func (b *Bridge) SignIn(ctx context.Context, p Profile) bool {
	email := strings.TrimSpace(p.Email)
	if email == "" {
		b.log.WarnContext(ctx, "sign-in rejected: profile has no email")
		return false
	}

	guest, err := b.guests.GetByEmail(ctx, email)
	if err != nil {
		b.log.ErrorContext(ctx, "sign-in guest lookup failed", slog.String("email", email), slog.Any("error", err))
		return false
	}
	if guest != nil {
		return true
	}

	name := strings.TrimSpace(p.Name)
	if name == "" {
		b.log.WarnContext(ctx, "sign-in rejected: profile has no name", slog.String("email", email))
		return false
	}

	guest, err = b.guests.Create(ctx, model.NewGuest{Email: email, FullName: name})
	if err != nil {
		b.log.ErrorContext(ctx, "create guest failed", slog.String("email", email), slog.Any("error", err))
		return false
	}

	b.log.InfoContext(ctx, "guest created", slog.Int64("guest_id", guest.ID), slog.String("email", email))
	return true
}

// Session resolves p to a session carrying the guest id.
func (b *Bridge) Session(ctx context.Context, p Profile) (*model.Session, error) {
	guest, err := b.guests.GetByEmail(ctx, strings.TrimSpace(p.Email))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionUnresolved, err)
	}
	if guest == nil || guest.ID <= 0 {
		return nil, ErrSessionUnresolved
	}

	return &model.Session{
		Email:   guest.Email,
		Name:    p.Name,
		Image:   p.Image,
		GuestID: guest.ID,
	}, nil
}
