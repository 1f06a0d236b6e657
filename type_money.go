package tracker

import (
	"encoding/json"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency of amounts that do not declare one.
const DefaultCurrency = "USD"

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M returns value in the currency with ISO 4217 code currency.
func M[T number](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	code := m.cur
	if code == "" {
		code = DefaultCurrency
	}
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, code).Currency()
}

// String returns the string representation of the money value, like "$1,100.00".
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(dec.IntPart())
}

// SignedString returns the string representation of the money value with a sign.
func (m Money) SignedString() string {
	if m.value.Round(int32(m.currency().Fraction)).IsZero() {
		return m.String()
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Currency() string               { return m.cur }
func (m Money) Decimal() decimal.Decimal       { return m.value }
func (m Money) Equal(n Money) bool             { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                   { return m.value.IsZero() }
func (m Money) IsPositive() bool               { return m.value.IsPositive() }
func (m Money) IsNegative() bool               { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool          { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool       { return m.value.GreaterThan(n.value) }
func (m Money) Neg() Money                     { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Mul(n Quantity) Money           { return Money{value: m.value.Mul(n.value), cur: m.cur} }
func (m Money) DivPrice(n Money) Quantity      { return Quantity{value: m.value.Div(n.value)} }
func (m Money) AsFloat() float64               { return m.value.InexactFloat64() }
func (m Money) Add(n Money) Money              { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money              { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }
func (m Money) Ratio(n Money) float64          { return m.value.Div(n.value).InexactFloat64() }
func (m Money) WithCurrency(code string) Money { return Money{value: m.value, cur: code} }

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch " + A.cur + "!=" + B.cur)
	}
	return A.cur
}

// jmoney is the JSON form of Money.
type jmoney struct {
	Currency string          `json:"currency,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(jmoney{Currency: m.cur, Amount: m.value})
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var v jmoney
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid money %s: %w", data, err)
	}
	m.value, m.cur = v.Amount, v.Currency
	return nil
}
