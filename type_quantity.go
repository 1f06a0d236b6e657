package tracker

import "github.com/shopspring/decimal"

// number is what M accepts as an amount.
type number interface {
	int | int64 | float64 | decimal.Decimal
}

func newDecimal[T number](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case float64:
		return decimal.NewFromFloat(v)
	default:
		return v.(decimal.Decimal)
	}
}

// Quantity is a number of shares, fractional since holdings are amounts
// invested rather than share counts.
type Quantity struct {
	value decimal.Decimal
}

func (q Quantity) Decimal() decimal.Decimal { return q.value }
func (q Quantity) String() string           { return q.value.String() }

func (q Quantity) MarshalJSON() ([]byte, error)     { return q.value.MarshalJSON() }
func (q *Quantity) UnmarshalJSON(data []byte) error { return q.value.UnmarshalJSON(data) }
