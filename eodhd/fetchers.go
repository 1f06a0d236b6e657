package eodhd

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/tracker"
	"github.com/etnz/tracker/date"
	"github.com/shopspring/decimal"
)

// This file contains functions to access the EODHD API.

// Prices returns the daily bars of ticker within window.
func (c *Client) Prices(ctx context.Context, ticker string, window date.Range) ([]tracker.Bar, error) {
	// https://eodhd.com/api/eod/MCD.US?api_token=demo&fmt=json&from=2024-02-01&to=2024-02-13
	// [
	//	{
	//		"date": "2024-02-13",
	//		"open": 675.066,
	//		"high": 684.219,
	//		"low": 648.659,
	//		"close": 668.445,
	//		"adjusted_close": 67.705,
	//		"volume": 0
	//	},
	// bounds are included in the response.
	addr := c.endpoint("/eod/"+url.PathEscape(symbol(ticker)), url.Values{
		"from": {window.From.String()},
		"to":   {window.To.String()},
	})
	type Info struct {
		Date          date.Date           `json:"date"`
		Close         decimal.NullDecimal `json:"close"`
		AdjustedClose decimal.NullDecimal `json:"adjusted_close"`
	}

	content := make([]Info, 0)
	if err := jwget(ctx, c.daily, addr, &content); err != nil {
		return nil, fmt.Errorf("eodhd prices of %q: %w", ticker, err)
	}
	bars := make([]tracker.Bar, 0, len(content))
	for _, info := range content {
		bars = append(bars, tracker.Bar{Date: info.Date, Close: info.Close, AdjustedClose: info.AdjustedClose})
	}
	return bars, nil
}

// Dividends returns the whole dividend history of ticker.
func (c *Client) Dividends(ctx context.Context, ticker string) ([]tracker.Dividend, error) {
	addr := c.endpoint("/div/"+url.PathEscape(symbol(ticker)), nil)

	type apiDividend struct {
		Date     date.Date       `json:"date"` // ex-dividend date, see https://eodhd.com/financial-apis/api-splits-dividends
		Value    decimal.Decimal `json:"value"`
		Currency string          `json:"currency"`
	}

	content := make([]apiDividend, 0)
	if err := jwget(ctx, c.daily, addr, &content); err != nil {
		return nil, fmt.Errorf("eodhd dividends of %q: %w", ticker, err)
	}
	divs := make([]tracker.Dividend, 0, len(content))
	for _, d := range content {
		divs = append(divs, tracker.Dividend{Date: d.Date, Amount: d.Value})
	}
	return divs, nil
}

// Profile returns the name, country and industry of ticker from its fundamentals.
//
// Funds have no industry in their fundamentals, it is left empty.
func (c *Client) Profile(ctx context.Context, ticker string) (tracker.Profile, error) {
	// https://eodhd.com/api/fundamentals/AAPL.US?api_token=demo&fmt=json
	// {
	//   "General": {
	//     "Code": "AAPL",
	//     "Type": "Common Stock",
	//     "Name": "Apple Inc",
	//     "CountryName": "USA",
	//     "Sector": "Technology",
	//     "Industry": "Consumer Electronics",
	//     ...
	addr := c.endpoint("/fundamentals/"+url.PathEscape(symbol(ticker)), url.Values{"filter": {"General"}})

	var jobj any
	if err := jwget(ctx, c.monthly, addr, &jobj); err != nil {
		return tracker.Profile{}, fmt.Errorf("eodhd fundamentals of %q: %w", ticker, err)
	}
	// With the General filter, the payload is the General object itself.
	if m, ok := jobj.(map[string]any); ok {
		if _, filtered := m["General"]; !filtered {
			jobj = map[string]any{"General": m}
		}
	}
	return tracker.Profile{
		Name:     lookup(jobj, "$.General.Name"),
		Country:  lookup(jobj, "$.General.CountryName"),
		Industry: lookup(jobj, "$.General.Industry"),
	}, nil
}

// lookup returns the string at path in jobj, or "" if there is none.
func lookup(jobj any, path string) string {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return ""
	}
	// because jsonpath is never clear about whether it returns a list of 1 answer, or a single answer:
	// by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	s, _ := jval.(string)
	s = strings.TrimSpace(s)
	if s == "NA" {
		return ""
	}
	return s
}

// News returns the latest headlines about ticker.
func (c *Client) News(ctx context.Context, ticker string, limit int) ([]tracker.Headline, error) {
	addr := c.endpoint("/news", url.Values{
		"s":      {symbol(ticker)},
		"offset": {"0"},
		"limit":  {strconv.Itoa(limit)},
	})

	type apiNews struct {
		Date  string `json:"date"` // like "2025-09-10T14:20:00+00:00"
		Title string `json:"title"`
		Link  string `json:"link"`
	}

	content := make([]apiNews, 0)
	if err := jwget(ctx, c.daily, addr, &content); err != nil {
		return nil, fmt.Errorf("eodhd news of %q: %w", ticker, err)
	}
	headlines := make([]tracker.Headline, 0, len(content))
	for _, n := range content {
		h := tracker.Headline{Title: n.Title, Link: n.Link}
		if len(n.Date) >= 10 {
			h.Date, _ = date.Parse(n.Date[:10])
		}
		headlines = append(headlines, h)
	}
	return headlines, nil
}
