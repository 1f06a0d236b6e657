package tracker

import (
	"github.com/etnz/tracker/date"
	"github.com/shopspring/decimal"
)

// DividendIncome is the dividends received on a position within a window.
type DividendIncome struct {
	Ticker string `json:"ticker"`
	Count  int    `json:"count"`
	Value  Money  `json:"value"`
}

// DividendReport aggregates the dividends received by a portfolio.
type DividendReport struct {
	Incomes []DividendIncome `json:"incomes"`
	Count   int              `json:"count"`
	Value   Money            `json:"value"`
}

// NewDividendReport counts and values the dividend events within window,
// boundaries included, for the shares held in v.
//
// Every position of v gets an income, possibly empty.
func NewDividendReport(events map[string][]Dividend, window date.Range, v *Valuation) *DividendReport {
	r := &DividendReport{Incomes: make([]DividendIncome, 0, len(v.positions))}
	for _, p := range v.positions {
		income := DividendIncome{Ticker: p.Ticker, Value: M(decimal.Zero, p.Invested.Currency())}
		for _, e := range events[p.Ticker] {
			if !window.Contains(e.Date) {
				continue
			}
			income.Count++
			income.Value = income.Value.Add(M(e.Amount, p.Invested.Currency()).Mul(p.Shares))
		}
		r.Incomes = append(r.Incomes, income)
		r.Count += income.Count
		r.Value = r.Value.Add(income.Value)
	}
	return r
}

// Income returns the dividend income of ticker.
func (r *DividendReport) Income(ticker string) (DividendIncome, bool) {
	for _, i := range r.Incomes {
		if i.Ticker == ticker {
			return i, true
		}
	}
	return DividendIncome{}, false
}
