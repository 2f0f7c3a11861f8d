package behavior

import (
	"github.com/okian/vibematch/internal/domain/model"
	"github.com/okian/vibematch/internal/domain/scoring"
	"github.com/okian/vibematch/internal/domain/types"
)

// Affinities returns the signed, confidence-weighted preference for every
// content type. Types with no events get 0.
func Affinities(log []model.EnrichedEvent) map[types.ContentType]float64 {
	sums := make(map[types.ContentType]float64, len(types.ContentTypes))
	counts := make(map[types.ContentType]int, len(types.ContentTypes))
	for _, e := range log {
		sums[e.ContentType] += e.DwellRatio * scoring.ActionSign(e.Action) * scoring.ConfidenceWeight(e.Confidence)
		counts[e.ContentType]++
	}

	out := make(map[types.ContentType]float64, len(types.ContentTypes))
	for _, c := range types.ContentTypes {
		if counts[c] == 0 {
			out[c] = 0
			continue
		}
		out[c] = sums[c] / float64(counts[c])
	}
	return out
}
