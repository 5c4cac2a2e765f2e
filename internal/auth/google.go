package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

// CallbackPath is where the provider sends the guest back after consent.
const CallbackPath = "/api/auth/callback/google"

const googleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

// Provider is an OAuth identity provider.
type Provider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (Profile, error)
}

// Google signs guests in with their Google account.
type Google struct {
	cfg         *oauth2.Config
	userInfoURL string
	http        *http.Client
}

// NewGoogle configures the Google provider. baseURL is the public origin
// of this service; httpClient may be nil.
func NewGoogle(clientID, clientSecret, baseURL string, httpClient *http.Client) *Google {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Google{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  strings.TrimRight(baseURL, "/") + CallbackPath,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     endpoints.Google,
		},
		userInfoURL: googleUserInfoURL,
		http:        httpClient,
	}
}

func (g *Google) AuthCodeURL(state string) string {
	return g.cfg.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades the authorization code for a token and fetches the
// account's profile with it.
func (g *Google) Exchange(ctx context.Context, code string) (Profile, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, g.http)

	tok, err := g.cfg.Exchange(ctx, code)
	if err != nil {
		return Profile{}, fmt.Errorf("exchange code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userInfoURL, nil)
	if err != nil {
		return Profile{}, fmt.Errorf("build userinfo request: %w", err)
	}
	resp, err := g.cfg.Client(ctx, tok).Do(req)
	if err != nil {
		return Profile{}, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Profile{}, fmt.Errorf("fetch userinfo: unexpected status %d", resp.StatusCode)
	}

	var info struct {
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return Profile{}, fmt.Errorf("decode userinfo: %w", err)
	}
	return Profile{Email: info.Email, Name: info.Name, Image: info.Picture}, nil
}
