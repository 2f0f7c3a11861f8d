package match

import (
	"fmt"

	"github.com/okian/vibematch/internal/domain/rooms"
	"github.com/okian/vibematch/internal/domain/vibe"
)

// Project maps the query into scheme to.
//
// A query carrying a profile is projected into mood4 from the profile fields:
// intensity is the energy level, darkness is one minus present depth,
// complexity is selectivity and sociality is the room constant. Every other
// pair goes through vibe.Convert.
func Project(q Query, to vibe.Scheme) (vibe.Vector, error) {
	if to == vibe.SchemeMood4 && q.Profile != nil {
		return vibe.FromAxes(vibe.SchemeMood4, map[string]float64{
			vibe.MoodIntensity:  vibe.Clamp01(q.Profile.EnergyLevel),
			vibe.MoodDarkness:   vibe.Clamp01(1 - q.Profile.PresentDepth),
			vibe.MoodComplexity: vibe.Clamp01(q.Profile.Selectivity),
			vibe.MoodSociality:  rooms.Sociality(q.ContextID),
		})
	}
	v, err := vibe.Convert(q.Vector, to)
	if err != nil {
		return vibe.Vector{}, fmt.Errorf("project query: %w", err)
	}
	return v, nil
}
