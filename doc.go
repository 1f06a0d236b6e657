// Package tracker analyzes a stock portfolio bought at the start of a date
// range and compares it with a benchmark.
//
// A Portfolio is a list of holdings, amounts invested in tickers on the first
// day of the window. Analyze fetches the market data of every ticker from a
// Provider, then computes:
//   - the PriceTable: one price per ticker and trading day, forward filled,
//   - the Valuation: shares bought on the first day, valued at the last price,
//   - the Returns: daily returns of each asset and of the portfolio weighted
//     by the initial weights, and their cumulative returns,
//   - the DividendReport: dividends paid within the window,
//   - the Allocations by asset, country and industry, initial and current,
//   - the Stats: volatility, correlation and beta against the benchmark.
//
// The portfolio is never rebalanced, yet its daily returns use the initial
// weights for the whole window. The valuation is exact, the returns are an
// approximation.
//
// Market is an in-memory Provider, read from JSONL market files. The eodhd
// and pgstore packages provide market data from the EODHD API and from a
// Postgres database.
package tracker
