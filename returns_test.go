package tracker

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReturns(t *testing.T) {
	table := mustTable(t, map[string][]Bar{"A": closes(100, 110, 99), "B": closes(50, 45, 45)}, "A", "B")
	r, err := NewReturns(table, Weights{"A": 0.5, "B": 0.5})
	require.NoError(t, err)

	assert.True(t, math.IsNaN(r.Assets["A"][0]))
	assert.InDelta(t, 0.10, r.Assets["A"][1], 1e-12)
	assert.InDelta(t, -0.10, r.Assets["A"][2], 1e-12)
	assert.InDelta(t, -0.10, r.Assets["B"][1], 1e-12)
	assert.InDelta(t, 0, r.Assets["B"][2], 1e-12)

	assert.True(t, math.IsNaN(r.Portfolio[0]))
	assert.InDelta(t, 0, r.Portfolio[1], 1e-12)
	assert.InDelta(t, -0.05, r.Portfolio[2], 1e-12)

	// A: 100 -> 110 -> 99, B: 50 -> 45 -> 45.
	for ticker, want := range map[string][]float64{"A": {0, 0.10, -0.01}, "B": {0, -0.10, -0.10}} {
		got := r.Cumulative[ticker]
		require.Len(t, got, 3, ticker)
		assert.Equal(t, 0.0, got[0], "%s starts at 0", ticker)
		for i := range want {
			assert.InDelta(t, want[i], got[i], 1e-12, "%s row %d", ticker, i)
		}
	}
}

func TestNewReturns_SingleTicker(t *testing.T) {
	table := mustTable(t, map[string][]Bar{"A": closes(100, 150, 120, 121)}, "A")
	// Weights are ignored for a single ticker.
	r, err := NewReturns(table, Weights{"A": 0.3})
	require.NoError(t, err)

	require.Len(t, r.Portfolio, 4)
	for i := range r.Portfolio {
		want, got := r.Assets["A"][i], r.Portfolio[i]
		if math.IsNaN(want) {
			assert.True(t, math.IsNaN(got), "row %d", i)
			continue
		}
		assert.Equal(t, want, got, "row %d", i)
	}
}

func TestNewReturns_InsufficientData(t *testing.T) {
	table := mustTable(t, map[string][]Bar{"A": closes(100)}, "A")
	_, err := NewReturns(table, Weights{"A": 1})
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("NewReturns() error = %v, want ErrInsufficientData", err)
	}
}

func TestCumulative(t *testing.T) {
	c := Cumulative([]float64{math.NaN(), 0.1, -0.1, 0.5})
	assert.Equal(t, 0.0, c[0])
	assert.InDelta(t, 0.1, c[1], 1e-12)
	assert.InDelta(t, -0.01, c[2], 1e-12)
	assert.InDelta(t, 0.485, c[3], 1e-12)

	assert.Empty(t, Cumulative(nil))
}

func TestNewBenchmark(t *testing.T) {
	b, err := NewBenchmark("SPY", closes(400, 440), window(1, 2))
	require.NoError(t, err)
	assert.Equal(t, "SPY", b.Ticker)
	assert.Len(t, b.Days, 2)
	assert.Equal(t, 0.0, b.Cumulative[0])
	assert.InDelta(t, 0.1, b.Cumulative[1], 1e-12)

	_, err = NewBenchmark("SPY", closes(400, 440)[1:], window(1, 2))
	assert.ErrorIs(t, err, ErrDataUnavailable)
}
