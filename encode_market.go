package tracker

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// This file persists market data as JSONL, one security per line, so that
// a market file stays human-readable and git-friendly.

// jsecurity is the object read from or written to a market file line.
type jsecurity struct {
	Ticker    string     `json:"ticker"`
	Name      string     `json:"name,omitempty"`
	Country   string     `json:"country,omitempty"`
	Industry  string     `json:"industry,omitempty"`
	Prices    []Bar      `json:"prices,omitempty"`
	Dividends []Dividend `json:"dividends,omitempty"`
}

// DecodeMarket reads a market file.
// A ticker defined twice is a format error.
func DecodeMarket(r io.Reader) (*Market, error) {
	m := NewMarket()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		var js jsecurity
		if err := json.Unmarshal(line, &js); err != nil {
			return nil, fmt.Errorf("format error on line %d: %w", lineno, err)
		}
		if js.Ticker == "" {
			return nil, fmt.Errorf("format error on line %d: missing ticker", lineno)
		}
		if m.Has(js.Ticker) {
			return nil, fmt.Errorf("format error on line %d: ticker %q is already defined", lineno, js.Ticker)
		}

		sec := NewSecurity(js.Ticker, Profile{Name: js.Name, Country: js.Country, Industry: js.Industry})
		for _, b := range js.Prices {
			sec.AddBar(b)
		}
		for _, d := range js.Dividends {
			sec.AddDividend(d.Date, d.Amount)
		}
		m.Add(sec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read market file: %w", err)
	}
	return m, nil
}

// EncodeMarket writes m as a market file, securities in insertion order.
func EncodeMarket(w io.Writer, m *Market) error {
	enc := json.NewEncoder(w)
	for _, sec := range m.securities {
		js := jsecurity{
			Ticker:   sec.ticker,
			Name:     sec.profile.Name,
			Country:  sec.profile.Country,
			Industry: sec.profile.Industry,
		}
		for _, b := range sec.prices.Values() {
			js.Prices = append(js.Prices, b)
		}
		for on, amount := range sec.dividends.Values() {
			js.Dividends = append(js.Dividends, Dividend{Date: on, Amount: amount})
		}
		if err := enc.Encode(js); err != nil {
			return fmt.Errorf("cannot encode %q: %w", sec.ticker, err)
		}
	}
	return nil
}
