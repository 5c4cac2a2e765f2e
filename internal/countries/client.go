// Package countries fetches the public country/flag list shown on the
// guest profile form.
package countries

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/cabin-booking/internal/model"
	"github.com/Shivanand-hulikatti/cabin-booking/internal/schema"
)

// DefaultURL is the flag image endpoint of countriesnow.space.
const DefaultURL = "https://countriesnow.space/api/v0.1/countries/flag/images"

// ErrFetch is the guest-facing failure for any problem reaching the API.
var ErrFetch = &model.Error{Kind: model.KindBackend, Message: "Could not fetch countries"}

// Client calls the countries API.
type Client struct {
	url     string
	http    *http.Client
	timeout time.Duration
	log     *slog.Logger
}

// NewClient builds a Client. A nil httpClient uses http.DefaultClient.
func NewClient(url string, timeout time.Duration, httpClient *http.Client, log *slog.Logger) *Client {
	if strings.TrimSpace(url) == "" {
		url = DefaultURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{url: url, http: httpClient, timeout: timeout, log: log}
}

type envelope struct {
	Error bool   `json:"error"`
	Msg   string `json:"msg"`
	Data  []any  `json:"data"`
}

// List returns every country with its flag image URL.
func (c *Client) List(ctx context.Context) ([]model.Country, error) {
	countries, err := c.fetch(ctx)
	if err != nil {
		c.log.ErrorContext(ctx, "countries fetch failed", slog.String("url", c.url), slog.Any("error", err))
		return nil, &model.Error{Kind: ErrFetch.Kind, Message: ErrFetch.Message, Err: err}
	}
	return countries, nil
}

func (c *Client) fetch(ctx context.Context) ([]model.Country, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	if env.Error {
		return nil, fmt.Errorf("api error: %s", env.Msg)
	}

	return schema.ParseCountries(env.Data)
}
