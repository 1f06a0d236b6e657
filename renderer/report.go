package renderer

import (
	"bytes"
	"fmt"
	"math"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/date"
	md "github.com/nao1215/markdown"
)

// Report is the presentation model of a tracker.Analysis.
//
// Values keep their tracker types, formatting happens in the templates.
type Report struct {
	Window    date.Range
	Benchmark string
	Days      int

	Overview []OverviewRow
	Total    OverviewRow

	Returns         []ReturnRow
	PortfolioReturn tracker.Percent
	BenchmarkReturn tracker.Percent
	StatsTable      string
	CumulativeTable []CumulativeRow

	Allocations       []AllocationSection
	CountryIndustries AllocationPair[[]CountryRow]

	Dividends []DividendRow

	NewsTicker string
	News       []tracker.Headline
}

// OverviewRow is a line of the overview table.
type OverviewRow struct {
	Label            string
	CurrentValue     tracker.Money
	CapitalGain      tracker.Percent
	NetProfitLoss    tracker.Money
	DividendPayments int
	Dividends        tracker.Money
}

// ReturnRow is the total return of an asset over the window.
type ReturnRow struct {
	Ticker     string
	Name       string
	FirstPrice tracker.Money
	LastPrice  tracker.Money
	Return     tracker.Percent
}

// CumulativeRow is a sample of the cumulative returns.
type CumulativeRow struct {
	Date      date.Date
	Portfolio tracker.Percent
	Benchmark string // empty when the benchmark is not priced that day
}

// WeightRow is a group weight.
type WeightRow struct {
	Label  string
	Weight tracker.Percent
}

// CountryRow is a country weight with its industries.
type CountryRow struct {
	Country    string
	Weight     tracker.Percent
	Industries []WeightRow
}

// AllocationPair holds the initial and current version of an allocation.
type AllocationPair[T any] struct {
	Initial, Current T
	// Weights left out of each allocation because of unknown attributes.
	InitialExcluded, CurrentExcluded tracker.Percent
}

// AllocationSection is the allocation along a single dimension.
type AllocationSection struct {
	Title  string
	Column string
	AllocationPair[[]WeightRow]
}

// DividendRow compares the current value of an asset with its dividends.
type DividendRow struct {
	Ticker       string
	CurrentValue tracker.Money
	Dividends    tracker.Money
	Yield        tracker.Percent // dividends relative to the invested amount
}

// maxCumulativeRows is the number of samples in the cumulative returns table.
const maxCumulativeRows = 12

// NewReport builds the presentation model of a.
func NewReport(a *tracker.Analysis) *Report {
	r := &Report{
		Window:    a.Request.Window,
		Benchmark: a.Request.Benchmark,
		Days:      len(a.Days),
		News:      a.News,
	}
	if len(a.News) > 0 {
		r.NewsTicker = a.Valuation.Largest()
	}

	v := a.Valuation
	for _, p := range v.Positions() {
		income, _ := a.Dividends.Income(p.Ticker)
		r.Overview = append(r.Overview, OverviewRow{
			Label:            p.Ticker,
			CurrentValue:     p.CurrentValue,
			CapitalGain:      p.CapitalGain(),
			NetProfitLoss:    p.NetProfitLoss(),
			DividendPayments: income.Count,
			Dividends:        income.Value,
		})
		r.Returns = append(r.Returns, ReturnRow{
			Ticker:     p.Ticker,
			Name:       a.Profiles[p.Ticker].Name,
			FirstPrice: p.FirstPrice,
			LastPrice:  p.LastPrice,
			Return:     tracker.PercentOf(a.Returns.Cumulative[p.Ticker].Last()),
		})
		r.Dividends = append(r.Dividends, DividendRow{
			Ticker:       p.Ticker,
			CurrentValue: p.CurrentValue,
			Dividends:    income.Value,
			Yield:        tracker.PercentOf(income.Value.Ratio(p.Invested)),
		})
	}
	r.Total = OverviewRow{
		Label:            "Portfolio",
		CurrentValue:     v.CurrentValue(),
		CapitalGain:      v.CapitalGain(),
		NetProfitLoss:    v.NetGain(),
		DividendPayments: a.Dividends.Count,
		Dividends:        a.Dividends.Value,
	}

	r.PortfolioReturn = tracker.PercentOf(a.Cumulative.Last())
	if a.Benchmark != nil {
		r.BenchmarkReturn = tracker.PercentOf(a.Benchmark.Cumulative.Last())
	}
	r.StatsTable = statsTable(a.Stats, a.Request.Benchmark)
	r.CumulativeTable = cumulativeRows(a)

	initial, current := a.Allocations.Initial, a.Allocations.Current
	r.Allocations = []AllocationSection{
		section("Assets", "Asset", initial, current, tracker.ByAsset),
		section("Countries", "Country", initial, current, tracker.ByCountry),
		section("Industries", "Industry", initial, current, tracker.ByIndustry),
	}
	r.CountryIndustries = AllocationPair[[]CountryRow]{
		Initial:         countryRows(initial.CountryIndustries),
		Current:         countryRows(current.CountryIndustries),
		InitialExcluded: excluded(initial, tracker.ByCountryIndustry),
		CurrentExcluded: excluded(current, tracker.ByCountryIndustry),
	}
	return r
}

func weightRows(shares []tracker.Share) []WeightRow {
	rows := make([]WeightRow, len(shares))
	for i, s := range shares {
		rows[i] = WeightRow{Label: s.Label, Weight: tracker.PercentOf(s.Weight)}
	}
	return rows
}

func section(title, column string, initial, current *tracker.Allocation, d tracker.Dimension) AllocationSection {
	return AllocationSection{
		Title:  title,
		Column: column,
		AllocationPair: AllocationPair[[]WeightRow]{
			Initial:         weightRows(shares(initial, d)),
			Current:         weightRows(shares(current, d)),
			InitialExcluded: excluded(initial, d),
			CurrentExcluded: excluded(current, d),
		},
	}
}

func shares(a *tracker.Allocation, d tracker.Dimension) []tracker.Share {
	switch d {
	case tracker.ByCountry:
		return a.Countries
	case tracker.ByIndustry:
		return a.Industries
	default:
		return a.Assets
	}
}

// excluded is the weight missing from a's allocation along d.
func excluded(a *tracker.Allocation, d tracker.Dimension) tracker.Percent {
	return tracker.PercentOf(1 - a.Total(d))
}

func countryRows(countries []tracker.CountryShare) []CountryRow {
	rows := make([]CountryRow, len(countries))
	for i, c := range countries {
		rows[i] = CountryRow{Country: c.Label, Weight: tracker.PercentOf(c.Weight), Industries: weightRows(c.Industries)}
	}
	return rows
}

// cumulativeRows samples the cumulative returns at regular intervals, the last day included.
func cumulativeRows(a *tracker.Analysis) []CumulativeRow {
	n := len(a.Days)
	if n == 0 {
		return nil
	}
	bench := make(map[date.Date]float64)
	if a.Benchmark != nil {
		for i, d := range a.Benchmark.Days {
			bench[d] = a.Benchmark.Cumulative[i]
		}
	}
	step := max(1, (n+maxCumulativeRows-1)/maxCumulativeRows)
	var rows []CumulativeRow
	for i := 0; i < n; i += step {
		rows = append(rows, cumulativeRow(a, bench, i))
	}
	if (n-1)%step != 0 {
		rows = append(rows, cumulativeRow(a, bench, n-1))
	}
	return rows
}

func cumulativeRow(a *tracker.Analysis, bench map[date.Date]float64, i int) CumulativeRow {
	row := CumulativeRow{Date: a.Days[i], Portfolio: tracker.PercentOf(a.Cumulative[i])}
	if b, ok := bench[a.Days[i]]; ok {
		row.Benchmark = tracker.PercentOf(b).SignedString()
	}
	return row
}

// statsTable renders the performance statistics as a markdown table.
func statsTable(s tracker.Stats, benchmark string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	ratio := func(v float64) string {
		if math.IsNaN(v) {
			return "n/a"
		}
		return fmt.Sprintf("%.2f", v)
	}
	percent := func(v float64) string {
		if math.IsNaN(v) {
			return "n/a"
		}
		return tracker.PercentOf(v).SignedString()
	}

	doc.Table(md.TableSet{
		Header: []string{"Statistic", "Portfolio", benchmark},
		Rows: [][]string{
			{"Total return", percent(s.Return), percent(s.BenchmarkReturn)},
			{"Annualized volatility", percent(s.Volatility), percent(s.BenchmarkVolatility)},
			{"Correlation", ratio(s.Correlation), "1.00"},
			{"Beta", ratio(s.Beta), "1.00"},
		},
	})
	return doc.String()
}
