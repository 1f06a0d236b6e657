package tracker

import (
	"testing"
	"time"

	"github.com/etnz/tracker/date"
	"github.com/shopspring/decimal"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// day returns the n-th of January 2025.
func day(n int) date.Date { return date.New(2025, time.January, n) }

// window returns the range of January days from..to.
func window(from, to int) date.Range { return date.Range{From: day(from), To: day(to)} }

// closes builds daily bars from close prices, starting on the first of January.
func closes(prices ...float64) []Bar {
	bars := make([]Bar, len(prices))
	for i, p := range prices {
		bars[i] = Bar{Date: day(i + 1), Close: decimal.NewNullDecimal(decimal.NewFromFloat(p))}
	}
	return bars
}

func mustPortfolio(t *testing.T, holdings ...Holding) Portfolio {
	t.Helper()
	p, err := NewPortfolio(holdings...)
	if err != nil {
		t.Fatalf("NewPortfolio() error = %v", err)
	}
	return p
}

func mustTable(t *testing.T, bars map[string][]Bar, tickers ...string) *PriceTable {
	t.Helper()
	var to date.Date
	for _, bs := range bars {
		for _, b := range bs {
			if b.Date.After(to) {
				to = b.Date
			}
		}
	}
	table, err := NewPriceTable(tickers, bars, date.Range{From: day(1), To: to})
	if err != nil {
		t.Fatalf("NewPriceTable() error = %v", err)
	}
	return table
}
