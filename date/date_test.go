package date

import (
	"encoding/json"
	"testing"
	"time"
)

func TestCompare(t *testing.T) {
	testCases := []struct {
		a, b Date
		want int
	}{
		{New(2025, 7, 31), New(2025, 7, 31), 0},
		{New(2025, 7, 31), New(2025, 8, 1), -1},
		{New(2026, 1, 1), New(2025, 12, 31), 1},
		{New(2025, 2, 10), New(2025, 3, 1), -1},
	}
	for _, tc := range testCases {
		if got := tc.a.Compare(tc.b); got != tc.want {
			t.Errorf("%v.Compare(%v) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
		if got := tc.a.Before(tc.b); got != (tc.want < 0) {
			t.Errorf("%v.Before(%v) = %v", tc.a, tc.b, got)
		}
	}
	if !New(2025, 7, 31).Time().Equal(New(2025, 7, 31).Time()) {
		t.Errorf("Time() of the same day differs")
	}
}

func TestNewNormalizes(t *testing.T) {
	got := New(2025, time.February, 30)
	want := New(2025, time.March, 2)
	if got != want {
		t.Errorf("New(2025, 2, 30) = %v, want %v", got, want)
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"2025-07-01", New(2025, 7, 1), false},
		{"2025-7-1", New(2025, 7, 1), false},
		{"01/07/2025", Date{}, true},
		{"", Date{}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestJSON(t *testing.T) {
	d := New(2024, 1, 5)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `"2024-01-05"` {
		t.Errorf("Marshal() = %s, want %q", data, `"2024-01-05"`)
	}
	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back != d {
		t.Errorf("Unmarshal() = %v, want %v", back, d)
	}
}

func TestIterate(t *testing.T) {
	a := new(History[float64])
	a.Append(New(2025, 1, 2), 1).Append(New(2025, 1, 4), 2)
	b := new(History[float64])
	b.Append(New(2025, 1, 3), 1).Append(New(2025, 1, 4), 2).Append(New(2025, 1, 1), 0)

	var got []Date
	for d := range Iterate(a, b) {
		got = append(got, d)
	}
	want := []Date{New(2025, 1, 1), New(2025, 1, 2), New(2025, 1, 3), New(2025, 1, 4)}
	if len(got) != len(want) {
		t.Fatalf("Iterate() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Iterate()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
