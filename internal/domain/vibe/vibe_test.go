package vibe_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/okian/vibematch/internal/domain/types"
	"github.com/okian/vibematch/internal/domain/vibe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalize(t *testing.T) {
	Convey("Given raw accumulated axis values", t, func() {
		Convey("When the values are non-zero", func() {
			values := []float64{0.2, 0.8, 0.4, 0, 0, 0, 0.32, 0}
			vibe.Normalize(values)

			Convey("Then the largest axis lands at exactly 1.0", func() {
				So(values[1], ShouldEqual, 1.0)
				So(values[0], ShouldEqual, 0.25)
				So(values[2], ShouldEqual, 0.5)
				So(values[6], ShouldEqual, 0.4)
			})
		})

		Convey("When every value is zero", func() {
			values := make([]float64, len(vibe.Axes))
			vibe.Normalize(values)

			Convey("Then the vector stays all-zero", func() {
				for _, x := range values {
					So(x, ShouldEqual, 0)
				}
			})
		})

		Convey("When the slice is empty", func() {
			So(func() { vibe.Normalize(nil) }, ShouldNotPanic)
		})
	})
}

func TestVector(t *testing.T) {
	Convey("Given a vibe8 vector built from named axes", t, func() {
		v, err := vibe.FromAxes(vibe.SchemeVibe8, map[string]float64{"wonder": 1, "tension": 0.5})
		So(err, ShouldBeNil)

		Convey("Then lookups by name and axis agree", func() {
			So(v.Get("wonder"), ShouldEqual, 1)
			So(v.Axis(vibe.Tension), ShouldEqual, 0.5)
			So(v.Get("awe"), ShouldEqual, 0)
			So(v.Validate(), ShouldBeNil)
		})

		Convey("Then the dominant axis is wonder", func() {
			So(vibe.Dominant(v), ShouldEqual, vibe.Wonder)
		})

		Convey("When a clone is modified", func() {
			c := v.Clone()
			c.Values[0] = 0.9

			Convey("Then the source vector is untouched", func() {
				So(v.Values[0], ShouldEqual, 0)
			})
		})
	})

	Convey("Given malformed input", t, func() {
		Convey("When the axis name is not part of the scheme", func() {
			_, err := vibe.FromAxes(vibe.SchemeLegacy5, map[string]float64{"tension": 1})
			So(errors.Is(err, vibe.ErrDimension), ShouldBeTrue)
		})

		Convey("When the scheme is unknown", func() {
			_, err := vibe.FromAxes("vibe12", nil)
			So(errors.Is(err, vibe.ErrUnknownScheme), ShouldBeTrue)
		})

		Convey("When a value is out of range", func() {
			v := vibe.Zero(vibe.SchemeMood4)
			v.Values[2] = 1.4
			So(errors.Is(v.Validate(), vibe.ErrOutOfRange), ShouldBeTrue)
		})

		Convey("When the dimension is wrong", func() {
			v := vibe.Vector{Scheme: vibe.SchemeMood4, Values: []float64{0.1}}
			So(errors.Is(v.Validate(), vibe.ErrDimension), ShouldBeTrue)
		})
	})

	Convey("Given an all-zero vector", t, func() {
		Convey("Then the dominant axis falls back to wonder", func() {
			So(vibe.Dominant(vibe.Zero(vibe.SchemeVibe8)), ShouldEqual, vibe.Wonder)
		})
	})

	Convey("Given tied axis values", t, func() {
		v := vibe.Zero(vibe.SchemeVibe8)
		v.Values[vibe.Nostalgia.Index()] = 1
		v.Values[vibe.Rebellion.Index()] = 1

		Convey("Then the earlier axis wins", func() {
			So(vibe.Dominant(v), ShouldEqual, vibe.Nostalgia)
		})
	})
}

func TestConvert(t *testing.T) {
	Convey("Given a vibe8 vector", t, func() {
		v, _ := vibe.FromAxes(vibe.SchemeVibe8, map[string]float64{
			"melancholy": 1, "romance": 0.4, "serenity": 0.2, "energy": 0.6, "tension": 0.5,
		})

		Convey("When converting to legacy5", func() {
			out, err := vibe.Convert(v, vibe.SchemeLegacy5)

			Convey("Then each legacy axis reads its mapped vibe axis", func() {
				So(err, ShouldBeNil)
				So(out.Scheme, ShouldEqual, vibe.SchemeLegacy5)
				So(out.Get(vibe.LegacyMelancholy), ShouldEqual, 1)
				So(out.Get(vibe.LegacyLonging), ShouldEqual, 0.4)
				So(out.Get(vibe.LegacyPeace), ShouldEqual, 0.2)
				So(out.Get(vibe.LegacyAwe), ShouldEqual, 0)
			})
		})

		Convey("When converting to mood4", func() {
			out, err := vibe.Convert(v, vibe.SchemeMood4)

			Convey("Then the weighted rows stay in range", func() {
				So(err, ShouldBeNil)
				So(out.Validate(), ShouldBeNil)
				So(out.Get(vibe.MoodIntensity), ShouldAlmostEqual, 0.45, 1e-9)
				So(out.Get(vibe.MoodDarkness), ShouldAlmostEqual, 0.8, 1e-9)
			})
		})

		Convey("When converting to its own scheme", func() {
			out, err := vibe.Convert(v, vibe.SchemeVibe8)
			So(err, ShouldBeNil)
			So(out.Values, ShouldResemble, v.Values)
		})
	})

	Convey("Given a legacy5 vector", t, func() {
		v := vibe.Zero(vibe.SchemeLegacy5)

		Convey("When converting to vibe8", func() {
			_, err := vibe.Convert(v, vibe.SchemeVibe8)

			Convey("Then the pair is unsupported", func() {
				So(errors.Is(err, vibe.ErrUnsupportedPair), ShouldBeTrue)
			})
		})
	})
}

func TestConvertRepeatable(t *testing.T) {
	Convey("Given many dense vibe8 vectors", t, func() {
		rng := rand.New(rand.NewSource(11))
		inputs := make([]vibe.Vector, 300)
		for i := range inputs {
			vals := make([]float64, len(vibe.Axes))
			for j := range vals {
				vals[j] = math.Round(rng.Float64()*100) / 100
			}
			inputs[i] = vibe.Vector{Scheme: vibe.SchemeVibe8, Values: vals}
		}

		Convey("When each is converted to mood4 repeatedly", func() {
			mismatches := 0
			for _, in := range inputs {
				first, err := vibe.Convert(in, vibe.SchemeMood4)
				So(err, ShouldBeNil)
				for range 30 {
					again, _ := vibe.Convert(in, vibe.SchemeMood4)
					for k := range first.Values {
						if math.Float64bits(first.Values[k]) != math.Float64bits(again.Values[k]) {
							mismatches++
						}
					}
				}
			}

			Convey("Then every result is bitwise identical", func() {
				So(mismatches, ShouldEqual, 0)
			})
		})
	})
}

func TestTables(t *testing.T) {
	Convey("Given the static axis tables", t, func() {
		Convey("Then every axis has an opposite distinct from itself", func() {
			for _, a := range vibe.Axes {
				o, ok := vibe.Opposite(a)
				So(ok, ShouldBeTrue)
				So(o, ShouldNotEqual, a)
			}
		})

		Convey("Then every content type carries cross-signals", func() {
			for _, c := range types.ContentTypes {
				So(vibe.CrossSignals(c), ShouldNotBeEmpty)
			}
		})

		Convey("Then labels fall back to the axis name", func() {
			So(vibe.Label(vibe.SchemeLegacy5, vibe.LegacyAwe), ShouldEqual, "sense of wonder")
			So(vibe.Label(vibe.SchemeLegacy5, "unknown"), ShouldEqual, "unknown")
		})
	})
}

func TestJSON(t *testing.T) {
	Convey("Given a tagged vector", t, func() {
		v, _ := vibe.FromAxes(vibe.SchemeLegacy5, map[string]float64{"awe": 0.9, "peace": 0.3})

		Convey("When encoded and decoded", func() {
			b, err := json.Marshal(v)
			So(err, ShouldBeNil)

			var back vibe.Vector
			So(json.Unmarshal(b, &back), ShouldBeNil)

			Convey("Then the scheme tag and values survive", func() {
				So(back.Scheme, ShouldEqual, vibe.SchemeLegacy5)
				So(back.Values, ShouldResemble, v.Values)
			})
		})

		Convey("When the scheme tag is missing", func() {
			var back vibe.Vector
			err := json.Unmarshal([]byte(`{"axes":{"awe":1}}`), &back)

			Convey("Then decoding fails instead of guessing", func() {
				So(errors.Is(err, vibe.ErrUnknownScheme), ShouldBeTrue)
			})
		})
	})
}
