package tracker

import (
	"context"

	"github.com/etnz/tracker/date"
)

// Provider is a source of market data.
//
// Implementations are called concurrently, once per ticker, and must be
// safe for concurrent use.
type Provider interface {
	// Prices returns the daily bars of ticker within window, in chronological order.
	Prices(ctx context.Context, ticker string, window date.Range) ([]Bar, error)
	// Dividends returns every known dividend of ticker. They are not
	// necessarily restricted to any window.
	Dividends(ctx context.Context, ticker string) ([]Dividend, error)
	// Profile returns the classification attributes of ticker.
	Profile(ctx context.Context, ticker string) (Profile, error)
}

// Headline is a piece of news about a security.
type Headline struct {
	Date  date.Date `json:"date"`
	Title string    `json:"title"`
	Link  string    `json:"link,omitempty"`
}

// NewsProvider is implemented by providers that can list recent news.
type NewsProvider interface {
	News(ctx context.Context, ticker string, limit int) ([]Headline, error)
}
