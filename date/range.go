package date

import "fmt"

// Range represents a range of dates, boundaries included.
type Range struct {
	From Date `json:"from"`
	To   Date `json:"to"`
}

// NewRange returns the period p that contains d.
func NewRange(d Date, p Period) Range {
	return Range{From: d.StartOf(p), To: d.EndOf(p)}
}

// Contains reports whether day is within r.
func (r Range) Contains(day Date) bool { return !day.Before(r.From) && !day.After(r.To) }

// IsZero reports whether either boundary is missing.
func (r Range) IsZero() bool { return r.From.IsZero() || r.To.IsZero() }

// Valid reports whether both boundaries are set and in chronological order.
func (r Range) Valid() bool { return !r.IsZero() && !r.From.After(r.To) }

// Days returns the number of calendar days in the range.
func (r Range) Days() int {
	return int(r.To.Time().Sub(r.From.Time()).Hours()/24) + 1
}

func (r Range) String() string { return fmt.Sprintf("%s to %s", r.From, r.To) }

// Identifier names r for use in file names: "2025-09-10" for a day,
// "2025-W37" for a week, "2025-09" for a month, "from_to" otherwise.
func (r Range) Identifier() string {
	switch {
	case r.From == r.To:
		return r.From.String()
	case r.From == r.From.StartOf(Weekly) && r.From.EndOf(Weekly) == r.To:
		year, week := r.From.Time().ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case r.From.Day() == 1 && r.From.EndOf(Monthly) == r.To:
		return r.From.Format("2006-01")
	default:
		return fmt.Sprintf("%s_%s", r.From, r.To)
	}
}
