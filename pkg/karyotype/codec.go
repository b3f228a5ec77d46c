package karyotype

import (
	"encoding/json"

	"github.com/karyoview/karyoview/pkg/errors"
)

// Intervals and bands travel as [start, end, value] triples.

func (iv Interval) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]int{iv.Start, iv.End, iv.Count})
}

func (iv *Interval) UnmarshalJSON(data []byte) error {
	t, err := decodeTriple(data, "hit cluster")
	if err != nil {
		return err
	}
	iv.Start, iv.End, iv.Count = t[0], t[1], t[2]
	return nil
}

func (b Band) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]int{b.Start, b.End, b.ColorCode})
}

func (b *Band) UnmarshalJSON(data []byte) error {
	t, err := decodeTriple(data, "giesma band")
	if err != nil {
		return err
	}
	b.Start, b.End, b.ColorCode = t[0], t[1], t[2]
	return nil
}

func decodeTriple(data []byte, what string) ([3]int, error) {
	var raw []int
	if err := json.Unmarshal(data, &raw); err != nil {
		return [3]int{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s", what)
	}
	if len(raw) != 3 {
		return [3]int{}, errors.New(errors.ErrCodeInvalidInput, "%s must have 3 elements, got %d", what, len(raw))
	}
	return [3]int{raw[0], raw[1], raw[2]}, nil
}
