package vibe

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// wireVector is the JSON form of a Vector: the scheme tag plus named axes.
type wireVector struct {
	Scheme Scheme             `json:"scheme"`
	Axes   map[string]float64 `json:"axes"`
}

// MarshalJSON encodes v as {"scheme": ..., "axes": {name: value}}.
func (v Vector) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireVector{Scheme: v.Scheme, Axes: v.Map()})
}

// UnmarshalJSON decodes the tagged form. A missing scheme is rejected rather
// than guessed from the axis names.
func (v *Vector) UnmarshalJSON(b []byte) error {
	var w wireVector
	if err := json.Unmarshal(b, &w); err != nil {
		return fmt.Errorf("decode vector: %w", err)
	}
	if w.Scheme == "" {
		return fmt.Errorf("%w: missing scheme tag", ErrUnknownScheme)
	}
	out, err := FromAxes(w.Scheme, w.Axes)
	if err != nil {
		return err
	}
	*v = out
	return nil
}
