package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/etnz/tracker/date"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testMarket returns a market with two stocks and a benchmark priced on the first 3 days of January.
func testMarket() *Market {
	m := NewMarket()
	add := func(ticker string, prof Profile, prices ...float64) *Security {
		s := NewSecurity(ticker, prof)
		for _, b := range closes(prices...) {
			s.AddBar(b)
		}
		m.Add(s)
		return s
	}
	add("A", Profile{Name: "A Corp", Country: "USA", Industry: "Software"}, 100, 105, 110).
		AddDividend(day(2), decimal.NewFromInt(1))
	add("B", Profile{Name: "B Corp", Country: "Germany"}, 50, 48, 45)
	add("SPY", Profile{}, 400, 404, 408)
	return m
}

func testRequest(t *testing.T) Request {
	return Request{
		Portfolio: mustPortfolio(t, Holding{"A", USD(1000)}, Holding{"B", USD(1000)}),
		Benchmark: "SPY",
		Window:    window(1, 3),
	}
}

func TestAnalyze(t *testing.T) {
	a, err := Analyze(context.Background(), testMarket(), testRequest(t))
	require.NoError(t, err)

	assert.Len(t, a.Days, 3)
	assert.True(t, a.Valuation.CurrentValue().Equal(USD(2000)))
	assert.True(t, a.Valuation.NetGain().IsZero())
	assert.Equal(t, 0.0, a.Cumulative[0])
	assert.InDelta(t, 0.02, a.Benchmark.Cumulative.Last(), 1e-9)

	income, _ := a.Dividends.Income("A")
	assert.Equal(t, 1, income.Count)
	assert.True(t, income.Value.Equal(USD(10)))

	assert.InDelta(t, 1.0, a.Allocations.Initial.Total(ByCountry), 1e-9)
	assert.InDelta(t, 0.5, a.Allocations.Initial.Total(ByIndustry), 1e-9)
	assert.InDelta(t, 0.55, a.Allocations.Current.Total(ByIndustry), 1e-9)
	assert.Equal(t, "Germany", a.Allocations.Current.Countries[0].Label)

	data, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"benchmark":"SPY"`)
}

func TestAnalyze_DataUnavailable(t *testing.T) {
	req := testRequest(t)
	req.Window = date.Range{From: day(1).Add(-1), To: day(3)}
	_, err := Analyze(context.Background(), testMarket(), req)
	if !errors.Is(err, ErrDataUnavailable) {
		t.Errorf("Analyze() error = %v, want ErrDataUnavailable", err)
	}

	req = testRequest(t)
	req.Benchmark = "QQQ"
	_, err = Analyze(context.Background(), testMarket(), req)
	assert.ErrorIs(t, err, ErrDataUnavailable)
}

func TestRequest_Validate(t *testing.T) {
	valid := testRequest(t)
	testCases := []struct {
		name   string
		modify func(r *Request)
	}{
		{"empty portfolio", func(r *Request) { r.Portfolio = nil }},
		{"duplicate ticker", func(r *Request) { r.Portfolio = append(r.Portfolio, r.Portfolio[0]) }},
		{"missing benchmark", func(r *Request) { r.Benchmark = "" }},
		{"missing start", func(r *Request) { r.Window.From = date.Date{} }},
		{"reversed window", func(r *Request) { r.Window = window(3, 1) }},
	}
	require.NoError(t, valid.Validate())
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := testRequest(t)
			tc.modify(&r)
			if err := r.Validate(); !errors.Is(err, ErrMalformedInput) {
				t.Errorf("Validate() error = %v, want ErrMalformedInput", err)
			}
		})
	}
}

// flakyProvider fails profile lookups and serves news.
type flakyProvider struct {
	*Market
	newsFor string
}

func (p *flakyProvider) Profile(context.Context, string) (Profile, error) {
	return Profile{}, fmt.Errorf("profile service down")
}

func (p *flakyProvider) News(_ context.Context, ticker string, limit int) ([]Headline, error) {
	p.newsFor = ticker
	return []Headline{{Date: day(3), Title: ticker + " is up"}}, nil
}

func TestAnalyze_ProfileFailure(t *testing.T) {
	provider := &flakyProvider{Market: testMarket()}
	req := testRequest(t)
	req.News = 1

	a, err := Analyze(context.Background(), provider, req)
	require.NoError(t, err)

	assert.Zero(t, a.Allocations.Current.Total(ByCountry))
	assert.InDelta(t, 1.0, a.Allocations.Current.Total(ByAsset), 1e-9)
	assert.Equal(t, "A", provider.newsFor, "news are about the largest position")
	require.Len(t, a.News, 1)
	assert.Equal(t, "A is up", a.News[0].Title)
}

func TestDescribe(t *testing.T) {
	assert.Empty(t, Describe(nil))
	assert.Equal(t,
		"Data unavailable for one or all selected tickers for the given date range!",
		Describe(fmt.Errorf("ticker %q: %w", "A", ErrDataUnavailable)))
	assert.Contains(t, Describe(errors.New("boom")), "boom")
}
