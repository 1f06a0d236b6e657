package tracker

import (
	"context"
	"fmt"
	"slices"

	"github.com/etnz/tracker/date"
)

// Market holds market data for a set of securities in memory.
//
// It implements Provider. A Market must not be modified once it is shared.
type Market struct {
	securities []*Security
	index      map[string]*Security
}

// NewMarket returns a new empty market data collection.
func NewMarket() *Market {
	return &Market{
		securities: make([]*Security, 0),
		index:      make(map[string]*Security),
	}
}

func (m *Market) Has(ticker string) bool {
	_, ok := m.index[ticker]
	return ok
}

func (m *Market) Get(ticker string) *Security { return m.index[ticker] }

// Add registers a security, replacing any security with the same ticker.
func (m *Market) Add(s *Security) *Market {
	if i := slices.IndexFunc(m.securities, func(x *Security) bool { return x.ticker == s.ticker }); i >= 0 {
		m.securities[i] = s
	} else {
		m.securities = append(m.securities, s)
	}
	m.index[s.ticker] = s
	return m
}

// Tickers returns the tickers in the market, in insertion order.
func (m *Market) Tickers() []string {
	tickers := make([]string, 0, len(m.securities))
	for _, s := range m.securities {
		tickers = append(tickers, s.ticker)
	}
	return tickers
}

func (m *Market) lookup(ticker string) (*Security, error) {
	sec, ok := m.index[ticker]
	if !ok {
		return nil, fmt.Errorf("ticker %q is not in the market file: %w", ticker, ErrDataUnavailable)
	}
	return sec, nil
}

func (m *Market) Prices(_ context.Context, ticker string, window date.Range) ([]Bar, error) {
	sec, err := m.lookup(ticker)
	if err != nil {
		return nil, err
	}
	var bars []Bar
	for _, b := range sec.prices.Between(window) {
		bars = append(bars, b)
	}
	return bars, nil
}

func (m *Market) Dividends(_ context.Context, ticker string) ([]Dividend, error) {
	sec, err := m.lookup(ticker)
	if err != nil {
		return nil, err
	}
	divs := make([]Dividend, 0, sec.dividends.Len())
	for on, amount := range sec.dividends.Values() {
		divs = append(divs, Dividend{Date: on, Amount: amount})
	}
	return divs, nil
}

func (m *Market) Profile(_ context.Context, ticker string) (Profile, error) {
	sec, err := m.lookup(ticker)
	if err != nil {
		return Profile{}, err
	}
	return sec.profile, nil
}

var _ Provider = (*Market)(nil)
