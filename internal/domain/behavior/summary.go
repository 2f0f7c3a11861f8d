package behavior

import (
	"math"

	"github.com/okian/vibematch/internal/domain/model"
	"github.com/okian/vibematch/internal/domain/types"
)

const (
	preferredAcceptRate = 0.5
	avoidedSkipRate     = 0.5
)

// Summarize digests a session log. A content type is preferred when more
// than half its cards were accepted, or when it held attention longer than
// average and was accepted at least once. It is avoided when more than half
// its cards were skipped.
func Summarize(log []model.EnrichedEvent, p model.BehavioralProfile) model.SessionSummary {
	s := model.SessionSummary{
		TotalSeen: len(log),
		ByContent: make(map[types.ContentType]model.ContentSummary, len(types.ContentTypes)),
		Preferred: []types.ContentType{},
		Avoided:   []types.ContentType{},
		Dominant:  p.DominantAxis,
		Profile:   p,
	}

	var totalDwell int64
	dwellByType := make(map[types.ContentType]int64, len(types.ContentTypes))
	for _, e := range log {
		cs := s.ByContent[e.ContentType]
		cs.Seen++
		switch e.Action {
		case types.ActionAccept:
			s.Accepted++
			cs.Accepted++
		case types.ActionReject:
			s.Rejected++
			cs.Rejected++
		case types.ActionSkip:
			s.Skipped++
			cs.Skipped++
		}
		s.ByContent[e.ContentType] = cs
		totalDwell += e.DwellMs
		dwellByType[e.ContentType] += e.DwellMs
	}
	if len(log) > 0 {
		s.AvgDwellMs = math.Round(float64(totalDwell) / float64(len(log)))
	}

	for _, c := range types.ContentTypes {
		cs, ok := s.ByContent[c]
		if !ok {
			continue
		}
		cs.AvgDwellMs = float64(dwellByType[c]) / float64(cs.Seen)
		s.ByContent[c] = cs

		acceptRate := float64(cs.Accepted) / float64(cs.Seen)
		skipRate := float64(cs.Skipped) / float64(cs.Seen)
		if acceptRate > preferredAcceptRate || (cs.AvgDwellMs > s.AvgDwellMs && cs.Accepted > 0) {
			s.Preferred = append(s.Preferred, c)
		}
		if skipRate > avoidedSkipRate {
			s.Avoided = append(s.Avoided, c)
		}
	}
	return s
}
