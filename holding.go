package tracker

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Holding is an amount of money invested in a security at the start of the window.
type Holding struct {
	Ticker   string `json:"ticker"`
	Invested Money  `json:"invested"`
}

// Portfolio is an ordered set of holdings with unique tickers.
//
// Declaration order is the natural order of every per-asset output.
type Portfolio []Holding

// NewPortfolio validates holdings and returns them as a Portfolio.
func NewPortfolio(holdings ...Holding) (Portfolio, error) {
	if len(holdings) == 0 {
		return nil, fmt.Errorf("empty portfolio: %w", ErrMalformedInput)
	}
	seen := make(map[string]bool, len(holdings))
	for _, h := range holdings {
		if h.Ticker == "" {
			return nil, fmt.Errorf("holding without ticker: %w", ErrMalformedInput)
		}
		if seen[h.Ticker] {
			return nil, fmt.Errorf("ticker %q is held twice: %w", h.Ticker, ErrMalformedInput)
		}
		seen[h.Ticker] = true
	}
	return Portfolio(holdings), nil
}

// ParseHoldings parses a free-text holdings list like "AAPL: 1000, MSFT: 500".
//
// Amounts are expressed in currency. Tickers are upper-cased.
func ParseHoldings(text, currency string) (Portfolio, error) {
	var holdings []Holding
	for pair := range strings.SplitSeq(text, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		ticker, amount, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("holding %q is not in the 'TICKER: AMOUNT' form: %w", pair, ErrMalformedInput)
		}
		ticker = strings.ToUpper(strings.TrimSpace(ticker))
		invested, err := decimal.NewFromString(strings.TrimSpace(amount))
		if err != nil {
			return nil, fmt.Errorf("invested amount for %q is not a number %q: %w", ticker, strings.TrimSpace(amount), ErrMalformedInput)
		}
		holdings = append(holdings, Holding{Ticker: ticker, Invested: M(invested, currency)})
	}
	return NewPortfolio(holdings...)
}

// Tickers returns the tickers of the portfolio in declaration order.
func (p Portfolio) Tickers() []string {
	tickers := make([]string, len(p))
	for i, h := range p {
		tickers[i] = h.Ticker
	}
	return tickers
}

// TotalInvested returns the sum of the invested amounts.
func (p Portfolio) TotalInvested() Money {
	var total Money
	for _, h := range p {
		total = total.Add(h.Invested)
	}
	return total
}

// String formats the portfolio back into the free-text form accepted by ParseHoldings.
func (p Portfolio) String() string {
	pairs := make([]string, len(p))
	for i, h := range p {
		pairs[i] = h.Ticker + ": " + h.Invested.Decimal().String()
	}
	return strings.Join(pairs, ", ")
}

// InitialWeights returns invested / total invested for each holding.
func InitialWeights(p Portfolio) Weights {
	total := p.TotalInvested()
	w := make(Weights, len(p))
	if total.IsZero() {
		return w
	}
	for _, h := range p {
		w[h.Ticker] = h.Invested.Ratio(total)
	}
	return w
}

// Weights maps tickers to a fraction of a total.
type Weights map[string]float64

// Sum returns the sum of all weights.
func (w Weights) Sum() float64 {
	var s float64
	for _, v := range w {
		s += v
	}
	return s
}
