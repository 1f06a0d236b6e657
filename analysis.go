package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/etnz/tracker/date"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Request describes a portfolio analysis.
type Request struct {
	Portfolio Portfolio  `json:"portfolio"`
	Benchmark string     `json:"benchmark"`
	Window    date.Range `json:"window"`
	// News is the number of headlines to fetch about the largest position, if
	// the provider can list news.
	News int `json:"news,omitempty"`
}

// Validate checks that every input of the request is present and consistent.
func (r Request) Validate() error {
	if len(r.Portfolio) == 0 {
		return fmt.Errorf("empty portfolio: %w", ErrMalformedInput)
	}
	if _, err := NewPortfolio(r.Portfolio...); err != nil {
		return err
	}
	if r.Benchmark == "" {
		return fmt.Errorf("missing benchmark: %w", ErrMalformedInput)
	}
	if r.Window.IsZero() {
		return fmt.Errorf("missing start or end date: %w", ErrMalformedInput)
	}
	if r.Window.From.After(r.Window.To) {
		return fmt.Errorf("start date %s is after end date %s: %w", r.Window.From, r.Window.To, ErrMalformedInput)
	}
	return nil
}

// Allocations are the allocations of the portfolio at the start and at the end of the window.
type Allocations struct {
	Initial *Allocation `json:"initial"`
	Current *Allocation `json:"current"`
}

// Analysis is the complete result of a portfolio analysis.
//
// It is computed once per request and never modified afterwards.
type Analysis struct {
	Request     Request            `json:"request"`
	Table       *PriceTable        `json:"-"`
	Days        []date.Date        `json:"days"`
	Profiles    map[string]Profile `json:"profiles"`
	Valuation   *Valuation         `json:"valuation"`
	Returns     *Returns           `json:"returns"`
	Cumulative  Series             `json:"cumulative"`
	Benchmark   *Benchmark         `json:"benchmark"`
	Dividends   *DividendReport    `json:"dividends"`
	Allocations Allocations        `json:"allocations"`
	Stats       Stats              `json:"stats"`
	News        []Headline         `json:"news,omitempty"`
}

// fetched is the market data of a single ticker.
type fetched struct {
	bars      []Bar
	dividends []Dividend
	profile   Profile
}

// Analyze fetches the market data required by req from provider and computes
// the analysis.
//
// Every fetch completes before any computation starts. The first failing
// fetch cancels the others.
func Analyze(ctx context.Context, provider Provider, req Request) (*Analysis, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	logger := zerolog.Ctx(ctx).With().Str("benchmark", req.Benchmark).Stringer("window", req.Window).Logger()
	start := time.Now()

	tickers := req.Portfolio.Tickers()
	data := make([]fetched, len(tickers))
	var benchBars []Bar

	g, gctx := errgroup.WithContext(ctx)
	for i, ticker := range tickers {
		g.Go(func() error {
			bars, err := provider.Prices(gctx, ticker, req.Window)
			if err != nil {
				return fmt.Errorf("prices of %q: %w", ticker, err)
			}
			divs, err := provider.Dividends(gctx, ticker)
			if err != nil {
				return fmt.Errorf("dividends of %q: %w", ticker, err)
			}
			prof, err := provider.Profile(gctx, ticker)
			if err != nil {
				// Unknown attributes only exclude the ticker from some allocations.
				logger.Warn().Err(err).Str("ticker", ticker).Msg("profile unavailable")
				prof = Profile{}
			}
			data[i] = fetched{bars: bars, dividends: divs, profile: prof}
			return nil
		})
	}
	g.Go(func() error {
		bars, err := provider.Prices(gctx, req.Benchmark, req.Window)
		if err != nil {
			return fmt.Errorf("prices of benchmark %q: %w", req.Benchmark, err)
		}
		benchBars = bars
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	logger.Debug().Int("tickers", len(tickers)).Dur("elapsed", time.Since(start)).Msg("market data fetched")

	bars := make(map[string][]Bar, len(tickers))
	events := make(map[string][]Dividend, len(tickers))
	profiles := make(map[string]Profile, len(tickers))
	for i, ticker := range tickers {
		bars[ticker] = data[i].bars
		events[ticker] = data[i].dividends
		profiles[ticker] = data[i].profile
	}

	a, err := compute(req, bars, events, profiles, benchBars)
	if err != nil {
		return nil, err
	}

	if news, ok := provider.(NewsProvider); ok && req.News > 0 {
		largest := a.Valuation.Largest()
		headlines, err := news.News(ctx, largest, req.News)
		if err != nil {
			logger.Warn().Err(err).Str("ticker", largest).Msg("news unavailable")
		}
		a.News = headlines
	}
	logger.Info().Int("tickers", len(tickers)).Int("days", a.Table.Len()).Dur("elapsed", time.Since(start)).Msg("portfolio analyzed")
	return a, nil
}

// compute runs the analysis on fully materialized market data.
func compute(req Request, bars map[string][]Bar, events map[string][]Dividend, profiles map[string]Profile, benchBars []Bar) (*Analysis, error) {
	table, err := NewPriceTable(req.Portfolio.Tickers(), bars, req.Window)
	if err != nil {
		return nil, err
	}
	initial := InitialWeights(req.Portfolio)
	returns, err := NewReturns(table, initial)
	if err != nil {
		return nil, err
	}
	valuation, err := NewValuation(req.Portfolio, table)
	if err != nil {
		return nil, err
	}
	bench, err := NewBenchmark(req.Benchmark, benchBars, req.Window)
	if err != nil {
		return nil, err
	}

	return &Analysis{
		Request:    req,
		Table:      table,
		Days:       table.Days(),
		Profiles:   profiles,
		Valuation:  valuation,
		Returns:    returns,
		Cumulative: Cumulative(returns.Portfolio),
		Benchmark:  bench,
		Dividends:  NewDividendReport(events, req.Window, valuation),
		Allocations: Allocations{
			Initial: NewAllocation(req.Portfolio, initial, profiles),
			Current: NewAllocation(req.Portfolio, valuation.CurrentWeights(), profiles),
		},
		Stats: NewStats(table.Days(), returns.Portfolio, bench),
	}, nil
}
