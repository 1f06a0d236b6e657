package tracker

// Performance holds the starting value and the end value of an investment.
type Performance struct {
	Start, End Money
}

func NewPerformance(start, end Money) Performance {
	return Performance{Start: start, End: end}
}

// Change is the net profit or loss.
func (p Performance) Change() Money {
	return p.End.Sub(p.Start)
}

// Percent is the change relative to the start value. It is zero when the start value is zero.
func (p Performance) Percent() Percent {
	if p.Start.IsZero() {
		return 0
	}
	return Percent(p.Change().Decimal().Div(p.Start.Decimal()).Shift(2).InexactFloat64())
}
