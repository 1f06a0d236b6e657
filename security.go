package tracker

import (
	"github.com/etnz/tracker/date"
	"github.com/shopspring/decimal"
)

// Bar is a raw daily price record as returned by market data providers.
// Missing fields are not Valid.
type Bar struct {
	Date          date.Date           `json:"date"`
	Close         decimal.NullDecimal `json:"close"`
	AdjustedClose decimal.NullDecimal `json:"adjusted_close"`
}

// Price returns the adjusted close if available, the close otherwise.
// ok is false if neither is available.
func (b Bar) Price() (price decimal.Decimal, ok bool) {
	if b.AdjustedClose.Valid {
		return b.AdjustedClose.Decimal, true
	}
	if b.Close.Valid {
		return b.Close.Decimal, true
	}
	return decimal.Zero, false
}

// Dividend is a dividend distribution, Amount is per share.
type Dividend struct {
	Date   date.Date       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// Profile holds the classification attributes of a security.
// An empty attribute is unknown.
type Profile struct {
	Name     string `json:"name,omitempty"`
	Country  string `json:"country,omitempty"`
	Industry string `json:"industry,omitempty"`
}

// Security represent a publicly tradeable asset, stock or ETF, with its market data.
type Security struct {
	ticker    string
	profile   Profile
	prices    date.History[Bar]
	dividends date.History[decimal.Decimal]
}

// NewSecurity returns an empty security for ticker.
func NewSecurity(ticker string, profile Profile) *Security {
	return &Security{ticker: ticker, profile: profile}
}

func (s *Security) Ticker() string   { return s.ticker }
func (s *Security) Profile() Profile { return s.profile }

// Prices returns the bars history of the security.
func (s *Security) Prices() *date.History[Bar] { return &s.prices }

// Dividends returns the dividend per share history of the security.
func (s *Security) Dividends() *date.History[decimal.Decimal] { return &s.dividends }

// AddBar records a bar, replacing any bar on the same day.
func (s *Security) AddBar(b Bar) *Security {
	s.prices.Append(b.Date, b)
	return s
}

// AddClose records a close only bar.
func (s *Security) AddClose(on date.Date, close decimal.Decimal) *Security {
	return s.AddBar(Bar{Date: on, Close: decimal.NewNullDecimal(close)})
}

// AddDividend records a dividend per share.
func (s *Security) AddDividend(on date.Date, amount decimal.Decimal) *Security {
	s.dividends.Append(on, amount)
	return s
}
