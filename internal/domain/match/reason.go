package match

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/okian/vibematch/internal/domain/vibe"
)

const (
	maxReasonTags = 2
	fallbackTag   = "contemplative"
)

// Reason explains a match as "<tags> · <room> vibe · N% match".
//
// For mood4 the tags describe the query's emotional state. For the other
// schemes they name the axes the query and item share most, ties going to
// the earlier axis.
func Reason(query, item vibe.Vector, contextLabel string, score float64) string {
	var tags []string
	if query.Scheme == vibe.SchemeMood4 {
		tags = MoodTags(query)
	} else {
		tags = sharedAxes(query, item)
	}
	if len(tags) == 0 {
		tags = []string{fallbackTag}
	}
	if len(tags) > maxReasonTags {
		tags = tags[:maxReasonTags]
	}

	parts := []string{strings.Join(tags, " + ")}
	if contextLabel != "" {
		parts = append(parts, contextLabel+" vibe")
	}
	parts = append(parts, fmt.Sprintf("%d%% match", int(math.Round(score*100))))
	return strings.Join(parts, " · ")
}

func sharedAxes(query, item vibe.Vector) []string {
	names := item.Scheme.AxisNames()
	type shared struct {
		idx int
		v   float64
	}
	var s []shared
	for i := range names {
		if i >= len(query.Values) || i >= len(item.Values) {
			break
		}
		if m := math.Min(query.Values[i], item.Values[i]); m > 0 {
			s = append(s, shared{idx: i, v: m})
		}
	}
	sort.SliceStable(s, func(a, b int) bool { return s[a].v > s[b].v })

	out := make([]string, 0, maxReasonTags)
	for _, x := range s {
		if len(out) == maxReasonTags {
			break
		}
		out = append(out, vibe.Label(item.Scheme, names[x.idx]))
	}
	return out
}

// MoodTags describes a mood4 state in genre words. Each axis contributes tags
// only when it sits near an extreme.
func MoodTags(state vibe.Vector) []string {
	var tags []string
	intensity := state.Get(vibe.MoodIntensity)
	darkness := state.Get(vibe.MoodDarkness)
	complexity := state.Get(vibe.MoodComplexity)
	sociality := state.Get(vibe.MoodSociality)

	switch {
	case intensity < 0.3:
		tags = append(tags, "slow-cinema", "meditative")
	case intensity > 0.7:
		tags = append(tags, "kinetic", "visceral")
	}
	switch {
	case darkness < 0.3:
		tags = append(tags, "hopeful", "warm")
	case darkness > 0.6:
		tags = append(tags, "melancholy", "noir")
	}
	switch {
	case complexity > 0.7:
		tags = append(tags, "nonlinear", "layered")
	case complexity < 0.3:
		tags = append(tags, "straightforward")
	}
	switch {
	case sociality < 0.3:
		tags = append(tags, "solitary")
	case sociality > 0.6:
		tags = append(tags, "ensemble")
	}
	if len(tags) == 0 {
		tags = append(tags, fallbackTag)
	}
	return tags
}
