package tracker

import (
	"fmt"
	"slices"

	"github.com/etnz/tracker/date"
	"github.com/shopspring/decimal"
)

// PriceTable is a rectangular table of prices, one row per date and one
// column per ticker.
//
// Every cell is defined: a ticker without a bar on some row carries its
// previous price forward.
type PriceTable struct {
	tickers []string
	days    []date.Date
	cells   [][]decimal.Decimal // cells[row][column]
}

// NewPriceTable aligns the bars of each ticker on a common calendar within
// window, boundaries included.
//
// The price of a bar is its adjusted close when available, its close
// otherwise. Every ticker must be priced on the first day of window.
func NewPriceTable(tickers []string, bars map[string][]Bar, window date.Range) (*PriceTable, error) {
	if len(tickers) == 0 {
		return nil, fmt.Errorf("no ticker to price: %w", ErrMalformedInput)
	}
	histories := make([]*date.History[decimal.Decimal], len(tickers))
	for i, ticker := range tickers {
		h := new(date.History[decimal.Decimal])
		for _, b := range bars[ticker] {
			if !window.Contains(b.Date) {
				continue
			}
			if price, ok := b.Price(); ok {
				h.Append(b.Date, price)
			}
		}
		if h.Len() == 0 {
			return nil, fmt.Errorf("ticker %q has no price between %s: %w", ticker, window, ErrDataUnavailable)
		}
		if first, _ := h.First(); first.After(window.From) {
			return nil, fmt.Errorf("ticker %q is first priced on %s, after %s: %w", ticker, first, window.From, ErrDataUnavailable)
		}
		histories[i] = h
	}

	t := &PriceTable{tickers: slices.Clone(tickers)}
	for day := range date.Iterate(histories...) {
		row := make([]decimal.Decimal, len(tickers))
		for i, h := range histories {
			// Always found: every ticker is priced on the first row.
			row[i], _ = h.ValueAsOf(day)
		}
		t.days = append(t.days, day)
		t.cells = append(t.cells, row)
	}
	return t, nil
}

// Tickers returns the columns of the table.
func (t *PriceTable) Tickers() []string { return t.tickers }

// Days returns the rows of the table.
func (t *PriceTable) Days() []date.Date { return t.days }

// Len returns the number of rows.
func (t *PriceTable) Len() int { return len(t.days) }

func (t *PriceTable) column(ticker string) int { return slices.Index(t.tickers, ticker) }

// Price returns the price of ticker on row i.
func (t *PriceTable) Price(i int, ticker string) decimal.Decimal {
	return t.cells[i][t.column(ticker)]
}

// Column returns the prices of ticker, one per row, or nil if the ticker is not in the table.
func (t *PriceTable) Column(ticker string) []decimal.Decimal {
	j := t.column(ticker)
	if j < 0 {
		return nil
	}
	col := make([]decimal.Decimal, len(t.cells))
	for i, row := range t.cells {
		col[i] = row[j]
	}
	return col
}

// First returns the price of ticker on the first row.
func (t *PriceTable) First(ticker string) decimal.Decimal { return t.Price(0, ticker) }

// Last returns the price of ticker on the last row.
func (t *PriceTable) Last(ticker string) decimal.Decimal { return t.Price(len(t.days)-1, ticker) }
