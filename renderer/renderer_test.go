package renderer

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/date"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int) date.Date { return date.New(2025, time.January, n) }

// testAnalysis analyzes a two stocks portfolio over three days.
func testAnalysis(t *testing.T) *tracker.Analysis {
	t.Helper()
	m := tracker.NewMarket()
	add := func(ticker string, prof tracker.Profile, prices ...int64) *tracker.Security {
		s := tracker.NewSecurity(ticker, prof)
		for i, p := range prices {
			s.AddClose(day(i+1), decimal.NewFromInt(p))
		}
		m.Add(s)
		return s
	}
	add("AAPL", tracker.Profile{Name: "Apple Inc", Country: "USA", Industry: "Consumer Electronics"}, 100, 105, 110).
		AddDividend(day(2), decimal.NewFromInt(1))
	add("SAP", tracker.Profile{Name: "SAP SE", Country: "Germany"}, 50, 48, 45)
	add("SPY", tracker.Profile{}, 400, 404, 408)

	p, err := tracker.ParseHoldings("AAPL: 1000, SAP: 1000", "USD")
	require.NoError(t, err)
	a, err := tracker.Analyze(context.Background(), m, tracker.Request{
		Portfolio: p,
		Benchmark: "SPY",
		Window:    date.Range{From: day(1), To: day(3)},
	})
	require.NoError(t, err)
	return a
}

func TestRenderReport(t *testing.T) {
	got := RenderReport(NewReport(testAnalysis(t)))

	for _, want := range []string{
		"# Portfolio Report from 2025-01-01 to 2025-01-03",
		"| AAPL | $1,100.00 | +10.00% | +$100.00 | 1 | $10.00 |",
		"| SAP | $900.00 | -10.00% | -$100.00 | 0 | $0.00 |",
		"| **Portfolio** | **$2,000.00** | **0.00%** | **$0.00** | **1** | **$10.00** |",
		"| AAPL (Apple Inc) | $100.00 | $110.00 | +10.00% |",
		"### Statistics",
		"| Total return",
		"### Countries",
		"| Germany | 45.00% |",
		"| **USA** | | **55.00%** |",
		"_50.00% of the initial portfolio has no known industry and is not shown._",
		"_45.00% of the current portfolio has no known industry and is not shown._",
		"_50.00% of the initial portfolio has no known country or industry and is not shown._",
		"_45.00% of the current portfolio has no known country or industry and is not shown._",
		"| AAPL | $1,100.00 | $10.00 | 1.00% |",
		"Do not use the information in this report",
	} {
		assert.Contains(t, got, want)
	}
	assert.NotContains(t, got, "no known asset", "every asset has a weight")
	assert.NotContains(t, got, "error rendering")
	assert.NotContains(t, got, "Latest News", "no news section without headlines")
}

func TestRenderReport_News(t *testing.T) {
	a := testAnalysis(t)
	a.News = []tracker.Headline{{Date: day(3), Title: "Apple unveils a new phone", Link: "https://example.com/a"}}
	got := RenderReport(NewReport(a))

	assert.Contains(t, got, "## Latest News related to AAPL")
	assert.Contains(t, got, "- 2025-01-03: [Apple unveils a new phone](https://example.com/a)")
}

func TestReportHTML_EscapesProviderText(t *testing.T) {
	a := testAnalysis(t)
	a.News = []tracker.Headline{{Date: day(3), Title: "<script>alert(document.cookie)</script>"}}

	var buf bytes.Buffer
	require.NoError(t, ReportHTML(&buf, NewReport(a)))
	got := buf.String()
	assert.NotContains(t, got, "<script>")
	assert.Contains(t, got, "Latest News related to AAPL")
}

func TestExport_JSONCumulative(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, testAnalysis(t), JSON))
	var decoded struct {
		Returns struct {
			Cumulative map[string][]float64 `json:"cumulative"`
		} `json:"returns"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	aapl := decoded.Returns.Cumulative["AAPL"]
	require.Len(t, aapl, 3)
	assert.Equal(t, 0.0, aapl[0])
	assert.InDelta(t, 0.10, aapl[2], 1e-9)
	assert.Len(t, decoded.Returns.Cumulative["SAP"], 3)
}

func TestCumulativeRows(t *testing.T) {
	rows := cumulativeRows(testAnalysis(t))
	require.Len(t, rows, 3)
	assert.Equal(t, day(3), rows[2].Date)
	assert.Equal(t, "+2.00%", rows[2].Benchmark)
}

func TestExport(t *testing.T) {
	a := testAnalysis(t)

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, a, HTML))
	html := buf.String()
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<h1>Portfolio Report from 2025-01-01 to 2025-01-03</h1>")

	buf.Reset()
	require.NoError(t, Export(&buf, a, JSON))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "valuation")
	assert.Contains(t, decoded, "allocations")

	buf.Reset()
	require.NoError(t, Export(&buf, a, Markdown))
	assert.Contains(t, buf.String(), "## Overview")
}

func TestParseFormat(t *testing.T) {
	testCases := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"md", Markdown, false},
		{".html", HTML, false},
		{"JSON", JSON, false},
		{"pdf", "", true},
	}
	for _, tc := range testCases {
		got, err := ParseFormat(tc.in)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Errorf("ParseFormat(%q) = %q, %v, want %q", tc.in, got, err, tc.want)
		}
	}
	if f, _ := FormatOf("report.htm"); f != HTML {
		t.Errorf("FormatOf(report.htm) = %q, want html", f)
	}
}
