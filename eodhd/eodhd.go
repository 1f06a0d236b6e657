// Package eodhd provides market data from the EOD Historical Data API (https://eodhd.com).
package eodhd

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/date"
)

// DefaultExchange is the EODHD exchange code appended to tickers without one.
const DefaultExchange = "US"

const defaultBaseURL = "https://eodhd.com/api"

// Client is a tracker.Provider backed by the EODHD API.
//
// Responses are cached on disk: prices, dividends and news for the day,
// fundamentals for the month.
type Client struct {
	apiKey  string
	baseURL string
	daily   *http.Client
	monthly *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithCacheDir stores cached responses in dir instead of the system temp dir.
func WithCacheDir(dir string) Option {
	return func(c *Client) {
		c.daily = newCachingClient(nil, dir, date.Daily)
		c.monthly = newCachingClient(nil, dir, date.Monthly)
	}
}

// WithHTTPClient disables the disk cache and sends every request through hc.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.daily, c.monthly = hc, hc }
}

// WithBaseURL changes the API root, "https://eodhd.com/api" by default.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// New returns a client authenticated with apiKey.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		daily:   newCachingClient(nil, "", date.Daily),
		monthly: newCachingClient(nil, "", date.Monthly),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// symbol returns the EODHD symbol for ticker, "SYMBOL.EXCHANGE".
func symbol(ticker string) string {
	if strings.Contains(ticker, ".") {
		return ticker
	}
	return ticker + "." + DefaultExchange
}

// endpoint returns the address of an API path, with the api token and json format set.
func (c *Client) endpoint(path string, query url.Values) string {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_token", c.apiKey)
	query.Set("fmt", "json")
	return c.baseURL + path + "?" + query.Encode()
}

var (
	_ tracker.Provider     = (*Client)(nil)
	_ tracker.NewsProvider = (*Client)(nil)
)
