package date

import (
	"iter"
	"slices"
)

// History is a series of values indexed by day, kept sorted with at most one
// value per day. The zero History is empty and ready to use.
type History[T any] struct {
	days   []Date
	values []T
}

// Len returns the number of items in the history.
func (h *History[T]) Len() int { return len(h.days) }

// search returns the position of day in the history, and whether it is exactly there.
func (h *History[T]) search(day Date) (int, bool) {
	return slices.BinarySearchFunc(h.days, day, Date.Compare)
}

// Append records q on day on, replacing any value already recorded that day.
func (h *History[T]) Append(on Date, q T) *History[T] {
	i, found := h.search(on)
	if found {
		h.values[i] = q
		return h
	}
	h.days = slices.Insert(h.days, i, on)
	h.values = slices.Insert(h.values, i, q)
	return h
}

// First returns the earliest entry, or zero values when h is empty.
func (h *History[T]) First() (day Date, value T) {
	if len(h.days) == 0 {
		return Date{}, value
	}
	return h.days[0], h.values[0]
}

// Values returns an iterator over all date/value pairs in the history, in chronological order.
func (h *History[T]) Values() iter.Seq2[Date, T] {
	return func(yield func(Date, T) bool) {
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}

// Between returns an iterator over the date/value pairs within r, boundaries included.
func (h *History[T]) Between(r Range) iter.Seq2[Date, T] {
	return func(yield func(Date, T) bool) {
		start, _ := h.search(r.From)
		for i := start; i < len(h.days) && !h.days[i].After(r.To); i++ {
			if !yield(h.days[i], h.values[i]) {
				return
			}
		}
	}
}

// Get returns the value recorded exactly on day.
func (h *History[T]) Get(day Date) (value T, ok bool) {
	if i, found := h.search(day); found {
		value, ok = h.values[i], true
	}
	return
}

// ValueAsOf returns the value on day or, failing that, the last one recorded
// before it. ok is false when nothing was recorded up to day.
func (h *History[T]) ValueAsOf(day Date) (value T, ok bool) {
	i, found := h.search(day)
	if !found {
		i--
	}
	if i >= 0 {
		value, ok = h.values[i], true
	}
	return
}
