// Package client talks to the backend that produces financial snapshots
// and builds its download URLs.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/newthinker/treasury/internal/core"
)

const (
	// DefaultBaseURL is the backend address used when none is configured.
	DefaultBaseURL = "http://localhost:5000"
	defaultTimeout = 60 * time.Second
	maxBodyBytes   = 16 << 20
)

// Client fetches snapshots from the backend API.
type Client struct {
	baseURL string
	client  *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.client.Timeout = d }
}

// New creates a backend client for baseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchSnapshot calls GET /api/stock/{ticker}. A non-2xx status is a
// transport error; a payload carrying an error field is an application
// error whose message is the backend's text.
func (c *Client) FetchSnapshot(ctx context.Context, ticker string) (*core.FinancialSnapshot, error) {
	endpoint := fmt.Sprintf("%s/api/stock/%s", c.baseURL, url.PathEscape(ticker))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, core.WrapError(core.ErrTransport, fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, core.WrapError(core.ErrTransport, fmt.Errorf("fetching snapshot: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, core.WrapError(core.ErrTransport, fmt.Errorf("unexpected status: %d", resp.StatusCode))
	}

	var snap core.FinancialSnapshot
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&snap); err != nil {
		return nil, core.WrapError(core.ErrDecode, fmt.Errorf("decoding response: %w", err))
	}

	if snap.Error != "" {
		return nil, core.NewError(core.ErrApplication, snap.Error)
	}

	return &snap, nil
}

// FinancialsURL is the statement download address. Years are joined with
// literal commas.
func (c *Client) FinancialsURL(ticker, statementType string, years []string, format string) string {
	escaped := make([]string, len(years))
	for i, y := range years {
		escaped[i] = url.QueryEscape(y)
	}
	return fmt.Sprintf("%s/download/financials/%s?type=%s&years=%s&format=%s",
		c.baseURL,
		url.PathEscape(ticker),
		url.QueryEscape(statementType),
		strings.Join(escaped, ","),
		url.QueryEscape(format),
	)
}

// RatesURL is the interest rates download address.
func (c *Client) RatesURL(format string) string {
	return fmt.Sprintf("%s/download/rates?format=%s", c.baseURL, url.QueryEscape(format))
}
