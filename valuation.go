package tracker

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Position is the valuation of a single holding over the window.
type Position struct {
	Ticker       string   `json:"ticker"`
	Shares       Quantity `json:"shares"`
	FirstPrice   Money    `json:"first_price"`
	LastPrice    Money    `json:"last_price"`
	Invested     Money    `json:"invested"`
	CurrentValue Money    `json:"current_value"`
}

// NetProfitLoss returns the current value minus the invested amount.
func (p Position) NetProfitLoss() Money { return p.CurrentValue.Sub(p.Invested) }

// CapitalGain returns the net profit or loss as a percentage of the invested amount.
func (p Position) CapitalGain() Percent { return p.Performance().Percent() }

func (p Position) Performance() Performance { return NewPerformance(p.Invested, p.CurrentValue) }

// Valuation is the value of a portfolio at the end of a window, assuming
// every holding was bought at the first price of the window.
type Valuation struct {
	positions []Position
	invested  Money
	current   Money
}

// NewValuation buys each holding of p at its first price in table and values
// it at its last price.
func NewValuation(p Portfolio, table *PriceTable) (*Valuation, error) {
	v := &Valuation{positions: make([]Position, 0, len(p))}
	for _, h := range p {
		if !h.Invested.IsPositive() {
			return nil, fmt.Errorf("invested amount in %q is %s: %w", h.Ticker, h.Invested, ErrDegenerateValuation)
		}
		if table.column(h.Ticker) < 0 {
			return nil, fmt.Errorf("ticker %q has no prices: %w", h.Ticker, ErrDataUnavailable)
		}
		first, last := table.First(h.Ticker), table.Last(h.Ticker)
		if !first.IsPositive() {
			return nil, fmt.Errorf("first price of %q is %s: %w", h.Ticker, first, ErrDegenerateValuation)
		}
		currency := h.Invested.Currency()
		pos := Position{
			Ticker:     h.Ticker,
			FirstPrice: M(first, currency),
			LastPrice:  M(last, currency),
			Invested:   h.Invested,
		}
		pos.Shares = pos.Invested.DivPrice(pos.FirstPrice)
		pos.CurrentValue = pos.LastPrice.Mul(pos.Shares)

		v.positions = append(v.positions, pos)
		v.invested = v.invested.Add(pos.Invested)
		v.current = v.current.Add(pos.CurrentValue)
	}
	if !v.current.IsPositive() {
		return nil, fmt.Errorf("portfolio current value is %s: %w", v.current, ErrDegenerateValuation)
	}
	return v, nil
}

// Positions returns the positions in portfolio order.
func (v *Valuation) Positions() []Position { return v.positions }

// Position returns the position of ticker.
func (v *Valuation) Position(ticker string) (Position, bool) {
	for _, p := range v.positions {
		if p.Ticker == ticker {
			return p, true
		}
	}
	return Position{}, false
}

func (v *Valuation) Invested() Money          { return v.invested }
func (v *Valuation) CurrentValue() Money      { return v.current }
func (v *Valuation) NetGain() Money           { return v.current.Sub(v.invested) }
func (v *Valuation) CapitalGain() Percent     { return v.Performance().Percent() }
func (v *Valuation) Performance() Performance { return NewPerformance(v.invested, v.current) }

// CurrentWeights returns the current value of each position as a fraction of
// the portfolio current value.
func (v *Valuation) CurrentWeights() Weights {
	w := make(Weights, len(v.positions))
	for _, p := range v.positions {
		w[p.Ticker] = p.CurrentValue.Ratio(v.current)
	}
	return w
}

// Largest returns the ticker with the largest current value, the first one declared on ties.
func (v *Valuation) Largest() string {
	var (
		ticker string
		best   decimal.Decimal
	)
	for _, p := range v.positions {
		if ticker == "" || p.CurrentValue.Decimal().GreaterThan(best) {
			ticker, best = p.Ticker, p.CurrentValue.Decimal()
		}
	}
	return ticker
}

type jvaluation struct {
	Positions   []jposition `json:"positions"`
	Invested    Money       `json:"invested"`
	Current     Money       `json:"current_value"`
	NetGain     Money       `json:"net_gain"`
	CapitalGain Percent     `json:"capital_gain_pct"`
}

type jposition struct {
	Position
	NetProfitLoss Money   `json:"net_profit_loss"`
	CapitalGain   Percent `json:"capital_gain_pct"`
}

func (v *Valuation) MarshalJSON() ([]byte, error) {
	j := jvaluation{
		Invested:    v.invested,
		Current:     v.current,
		NetGain:     v.NetGain(),
		CapitalGain: v.CapitalGain(),
	}
	for _, p := range v.positions {
		j.Positions = append(j.Positions, jposition{Position: p, NetProfitLoss: p.NetProfitLoss(), CapitalGain: p.CapitalGain()})
	}
	return json.Marshal(j)
}
