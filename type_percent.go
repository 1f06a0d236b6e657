package tracker

import (
	"fmt"
	"math"
)

// Percent is a percentage, 50 means 50%.
type Percent float64

// PercentOf returns ratio expressed as a percentage.
func PercentOf(ratio float64) Percent { return Percent(100 * ratio) }

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	return math.Abs(float64(p-q)) < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" || res == "-0.00%" {
		return "0.00%"
	}
	return res
}
