package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the payload of the session cookie. The subject is the email.
type Claims struct {
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// Tokens issues and validates HS256 session tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokens creates a token issuer signing with secret.
func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(strings.TrimSpace(secret)), ttl: ttl, now: time.Now}
}

// Issue signs a session token for p and returns it with its expiry.
func (t *Tokens) Issue(p Profile) (string, time.Time, error) {
	now := t.now()
	expires := now.Add(t.ttl)

	claims := Claims{
		Name:    p.Name,
		Picture: p.Image,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.Email,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return signed, expires, nil
}

// Parse validates token and returns the profile it was issued for.
func (t *Tokens) Parse(token string) (Profile, error) {
	if strings.TrimSpace(token) == "" {
		return Profile{}, ErrMissingToken
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
		jwt.WithLeeway(5*time.Second),
	)
	if err != nil {
		return Profile{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return Profile{}, ErrInvalidToken
	}
	if claims.Subject == "" {
		return Profile{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return Profile{Email: claims.Subject, Name: claims.Name, Image: claims.Picture}, nil
}
