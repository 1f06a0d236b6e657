package tracker

import (
	"bytes"
	"encoding/json"
	"math"
)

// Series is a float series where NaN marks an undefined value.
// It is encoded in JSON with null in place of NaN.
type Series []float64

func (s Series) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('[')
	for i, v := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			b.WriteString("null")
			continue
		}
		data, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		b.Write(data)
	}
	b.WriteByte(']')
	return b.Bytes(), nil
}

func (s *Series) UnmarshalJSON(data []byte) error {
	var raw []*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = make(Series, len(raw))
	for i, v := range raw {
		if v == nil {
			(*s)[i] = math.NaN()
			continue
		}
		(*s)[i] = *v
	}
	return nil
}

// Last returns the last value of the series, or NaN if it is empty.
func (s Series) Last() float64 {
	if len(s) == 0 {
		return math.NaN()
	}
	return s[len(s)-1]
}
