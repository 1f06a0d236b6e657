package tracker

import "errors"

// Error kinds surfaced by the analytics engine. They are always wrapped with
// some context and must be matched with errors.Is.
var (
	// ErrDataUnavailable reports a ticker without usable prices covering the start of the window.
	ErrDataUnavailable = errors.New("data unavailable")
	// ErrInsufficientData reports fewer than two price points.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrDegenerateValuation reports a zero or negative portfolio value or invested amount.
	ErrDegenerateValuation = errors.New("degenerate valuation")
	// ErrMalformedInput reports an invalid portfolio, benchmark or date window.
	ErrMalformedInput = errors.New("malformed input")
)

// Describe returns a flat message for end users explaining why err happened.
func Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMalformedInput):
		return "Make sure to enter all required inputs: holdings, benchmark and a date range."
	case errors.Is(err, ErrDataUnavailable):
		return "Data unavailable for one or all selected tickers for the given date range!"
	case errors.Is(err, ErrInsufficientData):
		return "Not enough prices in the selected date range, select a longer period."
	case errors.Is(err, ErrDegenerateValuation):
		return "The portfolio cannot be valued: invested amounts and prices must be positive."
	default:
		return "Something went wrong while computing the portfolio: " + err.Error()
	}
}
