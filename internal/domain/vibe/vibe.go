// Package vibe defines the closed axis sets used to describe emotional state
// and the tagged vector type that carries values in one of those axis sets.
//
// Three schemes exist:
//   - vibe8:   the eight-axis vibe space the profile builder produces.
//   - legacy5: the five-axis space of older catalog files.
//   - mood4:   the four-axis emotional-state space (intensity, darkness,
//     complexity, sociality).
//
// Moving between schemes always goes through an explicit mapping in this
// package or in the matcher; vectors are never coerced by field name.
package vibe

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Sentinel errors for vector handling.
var (
	ErrUnknownScheme   = errors.New("unknown vector scheme")
	ErrDimension       = errors.New("vector dimension does not match scheme")
	ErrOutOfRange      = errors.New("vector value out of range")
	ErrUnsupportedPair = errors.New("no mapping between schemes")
)

// Axis is one axis of the eight-axis vibe space.
type Axis string

// Vibe axes, in canonical order.
const (
	Melancholy Axis = "melancholy"
	Wonder     Axis = "wonder"
	Nostalgia  Axis = "nostalgia"
	Tension    Axis = "tension"
	Energy     Axis = "energy"
	Serenity   Axis = "serenity"
	Romance    Axis = "romance"
	Rebellion  Axis = "rebellion"
)

// Axes lists the vibe axes in canonical order. Index i of a vibe8 vector
// holds Axes[i].
var Axes = []Axis{Melancholy, Wonder, Nostalgia, Tension, Energy, Serenity, Romance, Rebellion} //nolint:gochecknoglobals // closed enumeration

// Index returns the position of a in Axes, or -1.
func (a Axis) Index() int {
	for i, x := range Axes {
		if x == a {
			return i
		}
	}
	return -1
}

// Scheme tags which axis set a Vector lives in.
type Scheme string

// Vector schemes.
const (
	SchemeVibe8   Scheme = "vibe8"
	SchemeLegacy5 Scheme = "legacy5"
	SchemeMood4   Scheme = "mood4"
)

// Legacy five-axis names.
const (
	LegacyMelancholy = "melancholy"
	LegacyLonging    = "longing"
	LegacyPeace      = "peace"
	LegacyNostalgia  = "nostalgia"
	LegacyAwe        = "awe"
)

// Mood four-axis names.
const (
	MoodIntensity  = "intensity"
	MoodDarkness   = "darkness"
	MoodComplexity = "complexity"
	MoodSociality  = "sociality"
)

var schemeAxes = map[Scheme][]string{ //nolint:gochecknoglobals // static tables
	SchemeVibe8:   {"melancholy", "wonder", "nostalgia", "tension", "energy", "serenity", "romance", "rebellion"},
	SchemeLegacy5: {LegacyMelancholy, LegacyLonging, LegacyPeace, LegacyNostalgia, LegacyAwe},
	SchemeMood4:   {MoodIntensity, MoodDarkness, MoodComplexity, MoodSociality},
}

// AxisNames returns the axis names of s in order, or nil for an unknown scheme.
func (s Scheme) AxisNames() []string {
	return schemeAxes[s]
}

// Dim returns the number of axes in s.
func (s Scheme) Dim() int {
	return len(schemeAxes[s])
}

// Valid reports whether s is a known scheme.
func (s Scheme) Valid() bool {
	_, ok := schemeAxes[s]
	return ok
}

// Vector is a tagged, fixed-size vector. Values are ordered as
// Scheme.AxisNames().
type Vector struct {
	Scheme Scheme
	Values []float64
}

// Zero returns the all-zero vector of scheme s.
func Zero(s Scheme) Vector {
	return Vector{Scheme: s, Values: make([]float64, s.Dim())}
}

// FromAxes builds a vector of scheme s from named values. Missing axes are 0.
func FromAxes(s Scheme, named map[string]float64) (Vector, error) {
	names := s.AxisNames()
	if names == nil {
		return Vector{}, fmt.Errorf("%w: %q", ErrUnknownScheme, s)
	}
	v := Zero(s)
	for k, val := range named {
		i := indexOf(names, k)
		if i < 0 {
			return Vector{}, fmt.Errorf("%w: axis %q not in %s", ErrDimension, k, s)
		}
		v.Values[i] = val
	}
	return v, nil
}

// Validate checks the scheme, dimension and that every value is in [0,1].
func (v Vector) Validate() error {
	if !v.Scheme.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownScheme, v.Scheme)
	}
	if len(v.Values) != v.Scheme.Dim() {
		return fmt.Errorf("%w: %s wants %d values, got %d", ErrDimension, v.Scheme, v.Scheme.Dim(), len(v.Values))
	}
	for i, x := range v.Values {
		if math.IsNaN(x) || x < 0 || x > 1 {
			return fmt.Errorf("%w: %s=%v", ErrOutOfRange, v.Scheme.AxisNames()[i], x)
		}
	}
	return nil
}

// Get returns the value of the named axis, or 0 when the axis is absent.
func (v Vector) Get(name string) float64 {
	i := indexOf(v.Scheme.AxisNames(), name)
	if i < 0 || i >= len(v.Values) {
		return 0
	}
	return v.Values[i]
}

// Axis returns the value of a vibe axis. It is only meaningful on vibe8 vectors.
func (v Vector) Axis(a Axis) float64 {
	return v.Get(string(a))
}

// Map returns the vector as axis name -> value.
func (v Vector) Map() map[string]float64 {
	names := v.Scheme.AxisNames()
	out := make(map[string]float64, len(names))
	for i, n := range names {
		if i < len(v.Values) {
			out[n] = v.Values[i]
		}
	}
	return out
}

// Clone returns a deep copy of v.
func (v Vector) Clone() Vector {
	c := Vector{Scheme: v.Scheme, Values: make([]float64, len(v.Values))}
	copy(c.Values, v.Values)
	return c
}

// IsZero reports whether every value is zero.
func (v Vector) IsZero() bool {
	for _, x := range v.Values {
		if x != 0 {
			return false
		}
	}
	return true
}

// Dominant returns the vibe axis with the largest value, ties going to the
// earlier axis. An all-zero or non-vibe8 vector yields Wonder.
func Dominant(v Vector) Axis {
	if v.Scheme != SchemeVibe8 || len(v.Values) != len(Axes) || v.IsZero() {
		return Wonder
	}
	return Axes[floats.MaxIdx(v.Values)]
}

// normEpsilon is the smallest divisor Normalize will use.
const normEpsilon = 1e-9

// roundDecimals is the number of decimals kept after normalization.
const roundDecimals = 2

// Normalize rescales values in place so that the largest lands at 1.0, then
// rounds every value to two decimals. An all-zero slice stays all-zero.
func Normalize(values []float64) {
	if len(values) == 0 {
		return
	}
	maxVal := math.Max(floats.Max(values), normEpsilon)
	floats.Scale(1/maxVal, values)
	scale := math.Pow(10, roundDecimals)
	for i, x := range values {
		values[i] = math.Round(x*scale) / scale
	}
}

// Clamp01 bounds x to [0,1].
func Clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
