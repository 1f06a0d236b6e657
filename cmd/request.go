package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/date"
	"github.com/google/subcommands"
)

// requestFlags are the flags describing an analysis, shared by every analysis command.
type requestFlags struct {
	holdings  string
	benchmark string
	from      string
	to        string
	news      int
	timeout   time.Duration
}

func (c *requestFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.holdings, "holdings", "", `Invested amounts per ticker, like "AAPL: 1000, MSFT: 500"`)
	f.StringVar(&c.benchmark, "benchmark", "SPY", "Ticker of the benchmark")
	f.StringVar(&c.from, "from", "", "Start date of the analysis (YYYY-MM-DD). Defaults to one year before -to")
	f.StringVar(&c.to, "to", "", "End date of the analysis (YYYY-MM-DD). Defaults to today")
	f.IntVar(&c.news, "news", 0, "Number of headlines about the largest position, if the data source provides news")
	f.DurationVar(&c.timeout, "timeout", 2*time.Minute, "Maximum duration of the analysis")
}

// request returns the analysis request described by the flags.
func (c *requestFlags) request() (tracker.Request, error) {
	var req tracker.Request
	p, err := tracker.ParseHoldings(c.holdings, currency())
	if err != nil {
		return req, err
	}
	req.Portfolio = p
	req.Benchmark = strings.ToUpper(strings.TrimSpace(c.benchmark))
	req.News = c.news

	req.Window.To = date.Today()
	if c.to != "" {
		if req.Window.To, err = date.Parse(c.to); err != nil {
			return req, fmt.Errorf("parsing end date: %v: %w", err, tracker.ErrMalformedInput)
		}
	}
	to := req.Window.To
	req.Window.From = date.New(to.Year()-1, to.Month(), to.Day())
	if c.from != "" {
		if req.Window.From, err = date.Parse(c.from); err != nil {
			return req, fmt.Errorf("parsing start date: %v: %w", err, tracker.ErrMalformedInput)
		}
	}
	return req, req.Validate()
}

// analyze runs the analysis described by the flags, errors are reported on stderr.
func (c *requestFlags) analyze(ctx context.Context) (*tracker.Analysis, subcommands.ExitStatus) {
	req, err := c.request()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n%s\n", err, tracker.Describe(err))
		return nil, subcommands.ExitUsageError
	}

	provider, done, err := OpenProvider(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	defer done()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	a, err := tracker.Analyze(ctx, provider, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n%s\n", err, tracker.Describe(err))
		if errors.Is(err, tracker.ErrMalformedInput) {
			return nil, subcommands.ExitUsageError
		}
		return nil, subcommands.ExitFailure
	}
	return a, subcommands.ExitSuccess
}
