package tracker

import (
	"encoding/json"
	"math"

	"github.com/etnz/tracker/date"
	"gonum.org/v1/gonum/stat"
)

// TradingDays is the number of trading days used to annualize daily statistics.
const TradingDays = 252

// Stats summarizes the portfolio performance against its benchmark.
//
// Undefined statistics are NaN, for instance the correlation of a window
// with a single return.
type Stats struct {
	Return              float64 // cumulative return of the portfolio over the window
	BenchmarkReturn     float64
	Volatility          float64 // annualized standard deviation of daily returns
	BenchmarkVolatility float64
	Correlation         float64 // Pearson correlation with the benchmark daily returns
	Beta                float64
	Observations        int // number of days with both returns defined
}

// NewStats computes the statistics of portfolio daily returns observed on
// days against the benchmark returns. Only days known to both series are compared.
func NewStats(days []date.Date, portfolio Series, bench *Benchmark) Stats {
	s := Stats{
		Return:     Cumulative(portfolio)[len(portfolio)-1],
		Volatility: volatility(defined(portfolio)),
	}
	if bench == nil {
		s.BenchmarkReturn, s.BenchmarkVolatility, s.Correlation, s.Beta = math.NaN(), math.NaN(), math.NaN(), math.NaN()
		return s
	}
	s.BenchmarkReturn = Cumulative(bench.Returns)[len(bench.Returns)-1]
	s.BenchmarkVolatility = volatility(defined(bench.Returns))

	byDay := make(map[date.Date]float64, len(bench.Days))
	for i, day := range bench.Days {
		byDay[day] = bench.Returns[i]
	}
	var x, y []float64
	for i, day := range days {
		b, ok := byDay[day]
		if !ok || math.IsNaN(b) || math.IsNaN(portfolio[i]) {
			continue
		}
		x, y = append(x, portfolio[i]), append(y, b)
	}
	s.Observations = len(x)
	s.Correlation, s.Beta = math.NaN(), math.NaN()
	if len(x) < 2 {
		return s
	}
	s.Correlation = stat.Correlation(x, y, nil)
	if v := stat.Variance(y, nil); v != 0 {
		s.Beta = stat.Covariance(x, y, nil) / v
	}
	return s
}

// defined returns the values of s that are not NaN.
func defined(s Series) []float64 {
	values := make([]float64, 0, len(s))
	for _, v := range s {
		if !math.IsNaN(v) {
			values = append(values, v)
		}
	}
	return values
}

// volatility annualizes the standard deviation of daily returns.
func volatility(daily []float64) float64 {
	if len(daily) < 2 {
		return math.NaN()
	}
	return stat.StdDev(daily, nil) * math.Sqrt(TradingDays)
}

// finite returns nil for NaN and infinities, JSON having no literal for them.
func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func (s Stats) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Return              *float64 `json:"return"`
		BenchmarkReturn     *float64 `json:"benchmark_return"`
		Volatility          *float64 `json:"volatility"`
		BenchmarkVolatility *float64 `json:"benchmark_volatility"`
		Correlation         *float64 `json:"correlation"`
		Beta                *float64 `json:"beta"`
		Observations        int      `json:"observations"`
	}{
		finite(s.Return), finite(s.BenchmarkReturn),
		finite(s.Volatility), finite(s.BenchmarkVolatility),
		finite(s.Correlation), finite(s.Beta),
		s.Observations,
	})
}
