package date

import "fmt"

// Period is a calendar period: a day, a Monday-based week or a month.
type Period int

const (
	Daily Period = iota
	Weekly
	Monthly
)

func (p Period) String() string {
	switch p {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

// Range returns the period containing d.
func (p Period) Range(d Date) Range { return NewRange(d, p) }

// StartOf returns the first day of the period containing d. Weeks start on Monday.
func (d Date) StartOf(p Period) Date {
	switch p {
	case Weekly:
		offset := (int(d.Weekday()) + 6) % 7
		return d.Add(-offset)
	case Monthly:
		return New(d.y, d.m, 1)
	default:
		return d
	}
}

// EndOf returns the last day of the period containing d.
func (d Date) EndOf(p Period) Date {
	switch p {
	case Weekly:
		return d.StartOf(Weekly).Add(6)
	case Monthly:
		return New(d.y, d.m+1, 0)
	default:
		return d
	}
}
