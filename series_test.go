package tracker

import (
	"encoding/json"
	"math"
	"testing"
)

func TestSeriesJSON(t *testing.T) {
	s := Series{math.NaN(), 0.1, -0.05}
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if want := `[null,0.1,-0.05]`; string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	var back Series
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(back) != 3 || !math.IsNaN(back[0]) || back[1] != 0.1 || back[2] != -0.05 {
		t.Errorf("Unmarshal() = %v, want %v", back, s)
	}
}
