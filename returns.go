package tracker

import (
	"fmt"
	"math"

	"github.com/etnz/tracker/date"
)

// Returns holds the daily simple returns computed from a PriceTable.
//
// Every series has one value per table row. Daily returns start with NaN,
// cumulative ones with 0.
type Returns struct {
	Assets     map[string]Series `json:"assets"`
	Portfolio  Series            `json:"portfolio"`
	Cumulative map[string]Series `json:"cumulative"` // compounded returns of every ticker
}

// NewReturns computes the daily returns of every ticker in table, and the
// portfolio return as the weighted sum of asset returns.
//
// Weights are fixed to their initial value: the portfolio is not rebalanced
// to its drifting weights. A portfolio of a single ticker gets that ticker's
// returns unweighted.
func NewReturns(table *PriceTable, weights Weights) (*Returns, error) {
	if table.Len() < 2 {
		return nil, fmt.Errorf("%d price point(s) in the table: %w", table.Len(), ErrInsufficientData)
	}
	r := &Returns{
		Assets:     make(map[string]Series, len(table.tickers)),
		Cumulative: make(map[string]Series, len(table.tickers)),
	}
	for _, ticker := range table.tickers {
		r.Assets[ticker] = dailyReturns(table, ticker)
		r.Cumulative[ticker] = Cumulative(r.Assets[ticker])
	}

	if len(table.tickers) == 1 {
		r.Portfolio = Series(append([]float64(nil), r.Assets[table.tickers[0]]...))
		return r, nil
	}

	r.Portfolio = make(Series, table.Len())
	r.Portfolio[0] = math.NaN()
	for i := 1; i < table.Len(); i++ {
		var dot float64
		for _, ticker := range table.tickers {
			dot += weights[ticker] * r.Assets[ticker][i]
		}
		r.Portfolio[i] = dot
	}
	return r, nil
}

func dailyReturns(table *PriceTable, ticker string) Series {
	j := table.column(ticker)
	s := make(Series, table.Len())
	s[0] = math.NaN()
	for i := 1; i < table.Len(); i++ {
		s[i] = table.cells[i][j].Div(table.cells[i-1][j]).InexactFloat64() - 1
	}
	return s
}

// Cumulative returns the compounded returns of r: c[t] = (1+r[0])...(1+r[t]) - 1.
//
// NaN values count as a zero return, so c[0] is 0.
func Cumulative(r []float64) []float64 {
	c := make([]float64, len(r))
	growth := 1.0
	for i, v := range r {
		if !math.IsNaN(v) {
			growth *= 1 + v
		}
		c[i] = growth - 1
	}
	return c
}

// Benchmark holds the returns of a single reference ticker.
type Benchmark struct {
	Ticker     string      `json:"ticker"`
	Days       []date.Date `json:"days"`
	Returns    Series      `json:"returns"`
	Cumulative Series      `json:"cumulative"`
}

// NewBenchmark computes the benchmark returns from its raw bars, using the
// same alignment and returns as the portfolio.
func NewBenchmark(ticker string, bars []Bar, window date.Range) (*Benchmark, error) {
	table, err := NewPriceTable([]string{ticker}, map[string][]Bar{ticker: bars}, window)
	if err != nil {
		return nil, fmt.Errorf("benchmark: %w", err)
	}
	r, err := NewReturns(table, Weights{ticker: 1})
	if err != nil {
		return nil, fmt.Errorf("benchmark: %w", err)
	}
	return &Benchmark{
		Ticker:     ticker,
		Days:       table.Days(),
		Returns:    r.Portfolio,
		Cumulative: Cumulative(r.Portfolio),
	}, nil
}
