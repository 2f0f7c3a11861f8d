package vibe

import (
	"fmt"

	"github.com/okian/vibematch/internal/domain/types"
)

// legacyFromVibe maps each legacy5 axis to the vibe axis it is read from.
var legacyFromVibe = [...]Axis{ //nolint:gochecknoglobals // static table
	Melancholy, // melancholy
	Romance,    // longing
	Serenity,   // peace
	Nostalgia,  // nostalgia
	Wonder,     // awe
}

// weight is one term of a mood4 row.
type weight struct {
	Axis Axis
	W    float64
}

// moodWeights holds, per mood4 axis, the vibe axis weights it is built from.
// Rows are summed in declaration order so conversion is bit-for-bit
// repeatable. Each row sums to 1 so the result stays in [0,1].
var moodWeights = [4][]weight{ //nolint:gochecknoglobals // static table
	{{Energy, 0.5}, {Tension, 0.3}, {Rebellion, 0.2}},   // intensity
	{{Melancholy, 0.6}, {Tension, 0.4}},                 // darkness
	{{Wonder, 0.5}, {Rebellion, 0.3}, {Nostalgia, 0.2}}, // complexity
	{{Romance, 0.6}, {Energy, 0.4}},                     // sociality
}

// Convert maps a vibe8 vector into scheme to. Converting a vector to its own
// scheme returns a copy. Only vibe8 sources are supported; the legacy and
// mood schemes carry less information and have no inverse.
func Convert(v Vector, to Scheme) (Vector, error) {
	if v.Scheme == to {
		return v.Clone(), nil
	}
	if v.Scheme != SchemeVibe8 {
		return Vector{}, fmt.Errorf("%w: %s -> %s", ErrUnsupportedPair, v.Scheme, to)
	}
	if len(v.Values) != len(Axes) {
		return Vector{}, fmt.Errorf("%w: vibe8 wants %d values, got %d", ErrDimension, len(Axes), len(v.Values))
	}
	switch to {
	case SchemeLegacy5:
		out := Zero(SchemeLegacy5)
		for i, a := range legacyFromVibe {
			out.Values[i] = v.Axis(a)
		}
		return out, nil
	case SchemeMood4:
		out := Zero(SchemeMood4)
		for i, row := range moodWeights {
			sum := 0.0
			for _, t := range row {
				sum += t.W * v.Axis(t.Axis)
			}
			out.Values[i] = Clamp01(sum)
		}
		return out, nil
	default:
		return Vector{}, fmt.Errorf("%w: %q", ErrUnknownScheme, to)
	}
}

// opposites pairs each axis with the axis a rejection nudges upward.
var opposites = map[Axis]Axis{ //nolint:gochecknoglobals // static table
	Tension:    Serenity,
	Energy:     Melancholy,
	Rebellion:  Nostalgia,
	Melancholy: Energy,
	Serenity:   Tension,
	Romance:    Rebellion,
	Nostalgia:  Energy,
	Wonder:     Nostalgia,
}

// Opposite returns the counter-axis of a.
func Opposite(a Axis) (Axis, bool) {
	o, ok := opposites[a]
	return o, ok
}

// Signal is a fixed increment to one axis.
type Signal struct {
	Axis  Axis
	Boost float64
}

// crossSignals lists what accepting a content type says about the vibe,
// independent of the room the card came from.
var crossSignals = map[types.ContentType][]Signal{ //nolint:gochecknoglobals // static table
	types.ContentImage:          {{Wonder, 0.06}, {Serenity, 0.04}},
	types.ContentSound:          {{Romance, 0.05}, {Nostalgia, 0.04}, {Melancholy, 0.03}},
	types.ContentVideo:          {{Energy, 0.05}, {Tension, 0.04}, {Wonder, 0.03}},
	types.ContentText:           {{Melancholy, 0.06}, {Nostalgia, 0.04}},
	types.ContentRecommendation: {{Wonder, 0.04}, {Rebellion, 0.03}},
}

// CrossSignals returns the accept cross-signals of content type c.
func CrossSignals(c types.ContentType) []Signal {
	return crossSignals[c]
}

// Label returns the phrase used in match reasons for an axis of scheme s.
func Label(s Scheme, axis string) string {
	if l, ok := labels[s][axis]; ok {
		return l
	}
	return axis
}

var labels = map[Scheme]map[string]string{ //nolint:gochecknoglobals // static table
	SchemeVibe8: {
		"melancholy": "melancholic depth",
		"wonder":     "sense of wonder",
		"nostalgia":  "nostalgic warmth",
		"tension":    "simmering tension",
		"energy":     "restless energy",
		"serenity":   "quiet serenity",
		"romance":    "romantic longing",
		"rebellion":  "rebellious edge",
	},
	SchemeLegacy5: {
		LegacyMelancholy: "melancholic depth",
		LegacyLonging:    "sense of longing",
		LegacyPeace:      "peaceful atmosphere",
		LegacyNostalgia:  "nostalgic warmth",
		LegacyAwe:        "sense of wonder",
	},
	SchemeMood4: {
		MoodIntensity:  "kinetic intensity",
		MoodDarkness:   "noir shadows",
		MoodComplexity: "layered storytelling",
		MoodSociality:  "ensemble warmth",
	},
}
