// Package date provides a calendar date type with day granularity, ranges of
// dates and chronological histories of values.
package date

import (
	"encoding/json"
	"fmt"
	"iter"
	"slices"
	"time"
)

// DateFormat is the ISO-8601 layout dates are written in.
const DateFormat = "2006-01-02"

// lenient layout accepted on input, "2025-7-1" is as good as "2025-07-01".
const readDateFormat = "2006-1-2"

// Date is a calendar day. The zero Date is "no date".
type Date struct {
	y int
	m time.Month
	d int
}

// New returns the Date for year, month and day, normalized the way
// time.Date does: New(2025, 1, 32) is February 1st.
func New(year int, month time.Month, day int) Date {
	var d Date
	d.y, d.m, d.d = time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Date()
	return d
}

// Of returns the day of t, in t's own location.
func Of(t time.Time) Date { return New(t.Date()) }

// Today returns the current day in the local time zone.
func Today() Date { return Of(time.Now()) }

// Time returns midnight UTC of that day.
func (d Date) Time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

func (d Date) IsZero() bool      { return d == Date{} }
func (d Date) Year() int         { return d.y }
func (d Date) Month() time.Month { return d.m }
func (d Date) Day() int          { return d.d }

func (d Date) Weekday() time.Weekday { return d.Time().Weekday() }

// Compare returns -1, 0 or +1 when d is before, equal to or after x.
func (d Date) Compare(x Date) int {
	if c := d.y - x.y; c != 0 {
		return sign(c)
	}
	if c := int(d.m) - int(x.m); c != 0 {
		return sign(c)
	}
	return sign(d.d - x.d)
}

func sign(i int) int {
	switch {
	case i < 0:
		return -1
	case i > 0:
		return 1
	}
	return 0
}

func (d Date) Before(x Date) bool { return d.Compare(x) < 0 }
func (d Date) After(x Date) bool  { return d.Compare(x) > 0 }

// Add returns the day i days after d, or before when i is negative.
func (d Date) Add(i int) Date { return New(d.y, d.m, d.d+i) }

func (d Date) Format(layout string) string { return d.Time().Format(layout) }
func (d Date) String() string              { return d.Format(DateFormat) }

// Parse reads a day written "2025-07-01" or "2025-7-1".
func Parse(str string) (Date, error) {
	t, err := time.Parse(readDateFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, want format YYYY-MM-DD: %w", str, err)
	}
	return Of(t), nil
}

// MarshalJSON writes d as a "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

// UnmarshalJSON reads a string accepted by Parse.
func (d *Date) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	day, err := Parse(str)
	if err != nil {
		return err
	}
	*d = day
	return nil
}

var (
	_ json.Marshaler   = Date{}
	_ json.Unmarshaler = (*Date)(nil)
)

// Iterate yields, in chronological order, every day present in at least one
// of the histories.
func Iterate[T any](histories ...*History[T]) iter.Seq[Date] {
	var days []Date
	for _, h := range histories {
		days = append(days, h.days...)
	}
	slices.SortFunc(days, Date.Compare)
	return slices.Values(slices.Compact(days))
}
