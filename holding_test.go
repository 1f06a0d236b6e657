package tracker

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHoldings(t *testing.T) {
	testCases := []struct {
		name    string
		text    string
		want    string
		wantErr bool
	}{
		{"two holdings", "AAPL: 1000, MSFT: 500", "AAPL: 1000, MSFT: 500", false},
		{"no spaces", "aapl:1000,msft:500.5", "AAPL: 1000, MSFT: 500.5", false},
		{"trailing comma", "AAPL: 1000, ", "AAPL: 1000", false},
		{"empty", "", "", true},
		{"missing colon", "AAPL 1000", "", true},
		{"not a number", "AAPL: lots", "", true},
		{"duplicate", "AAPL: 1, AAPL: 2", "", true},
		{"missing ticker", ": 100", "", true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := ParseHoldings(tc.text, "USD")
			if tc.wantErr {
				if !errors.Is(err, ErrMalformedInput) {
					t.Errorf("ParseHoldings(%q) error = %v, want ErrMalformedInput", tc.text, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHoldings(%q) error = %v", tc.text, err)
			}
			if got := p.String(); got != tc.want {
				t.Errorf("ParseHoldings(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}

func TestInitialWeights(t *testing.T) {
	portfolios := []string{
		"A: 1000",
		"A: 1000, B: 1000",
		"A: 1, B: 2, C: 3",
		"A: 333.33, B: 0.01, C: 12345.678, D: 7",
	}
	for _, text := range portfolios {
		p, err := ParseHoldings(text, "USD")
		require.NoError(t, err)
		w := InitialWeights(p)
		assert.Len(t, w, len(p))
		assert.InDelta(t, 1.0, w.Sum(), 1e-9, "weights of %q", text)
	}

	p, err := ParseHoldings("A: 1, B: 3", "USD")
	require.NoError(t, err)
	w := InitialWeights(p)
	assert.InDelta(t, 0.25, w["A"], 1e-12)
	assert.InDelta(t, 0.75, w["B"], 1e-12)
}

func TestPortfolio_TotalInvested(t *testing.T) {
	p := mustPortfolio(t, Holding{"A", USD(1000)}, Holding{"B", USD(500.5)})
	if got, want := p.TotalInvested(), USD(1500.5); !got.Equal(want) {
		t.Errorf("TotalInvested() = %v, want %v", got, want)
	}
	if got := p.Tickers(); len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Errorf("Tickers() = %v, want [A B]", got)
	}
}
