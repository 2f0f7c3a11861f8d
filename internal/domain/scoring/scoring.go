// Package scoring holds the per-event primitives: the dwell normalizer, the
// confidence classifier and the engagement scorer. Everything here depends on
// one event and the static expectation table only.
package scoring

import (
	"fmt"

	"github.com/okian/vibematch/internal/domain/model"
	"github.com/okian/vibematch/internal/domain/types"
)

// Default expected dwell per content type, in milliseconds.
const (
	defaultTextDwellMs           = 8000
	defaultImageDwellMs          = 5000
	defaultVideoDwellMs          = 12000
	defaultSoundDwellMs          = 10000
	defaultRecommendationDwellMs = 15000
)

// Confidence bands over the dwell ratio. Outside the high band on either side
// is decisive; the middle is hesitation.
const (
	highLow    = 0.2
	highHigh   = 2.0
	mediumLow  = 0.5
	mediumHigh = 1.5
)

// Engagement level cut-offs over engagement depth.
const (
	absorbedAbove = 1.2
	presentFrom   = 0.6
)

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithExpectedDwell overrides the expected dwell of individual content types.
// Unknown types and non-positive values are ignored.
func WithExpectedDwell(overrides map[types.ContentType]int64) Option {
	return func(s *Scorer) {
		for c, ms := range overrides {
			if c.Valid() && ms > 0 {
				s.expected[c] = ms
			}
		}
	}
}

// Scorer enriches raw events against an expectation table. It is immutable
// after construction and safe for concurrent use.
type Scorer struct {
	expected map[types.ContentType]int64
}

// New creates a Scorer with the default expectation table.
func New(opts ...Option) *Scorer {
	s := &Scorer{
		expected: map[types.ContentType]int64{
			types.ContentText:           defaultTextDwellMs,
			types.ContentImage:          defaultImageDwellMs,
			types.ContentVideo:          defaultVideoDwellMs,
			types.ContentSound:          defaultSoundDwellMs,
			types.ContentRecommendation: defaultRecommendationDwellMs,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExpectedDwell returns the expected dwell for c.
func (s *Scorer) ExpectedDwell(c types.ContentType) (int64, error) {
	ms, ok := s.expected[c]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidContentType, c)
	}
	return ms, nil
}

// DwellRatio divides dwellMs by the expected dwell of c.
func (s *Scorer) DwellRatio(dwellMs int64, c types.ContentType) (float64, error) {
	if dwellMs < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativeDwell, dwellMs)
	}
	exp, err := s.ExpectedDwell(c)
	if err != nil {
		return 0, err
	}
	return float64(dwellMs) / float64(exp), nil
}

// Enrich validates ev and attaches its derived fields.
func (s *Scorer) Enrich(ev model.InteractionEvent) (model.EnrichedEvent, error) {
	if !ev.Action.Valid() {
		return model.EnrichedEvent{}, fmt.Errorf("%w: %q", ErrInvalidAction, ev.Action)
	}
	ratio, err := s.DwellRatio(ev.DwellMs, ev.ContentType)
	if err != nil {
		return model.EnrichedEvent{}, err
	}
	depth := EngagementDepth(ratio, ev.Action)
	return model.EnrichedEvent{
		InteractionEvent: ev,
		DwellRatio:       ratio,
		Confidence:       ClassifyConfidence(ratio),
		EngagementDepth:  depth,
		EngagementLevel:  ClassifyEngagement(depth),
	}, nil
}

// ClassifyConfidence maps a dwell ratio to a confidence tag. Very fast and very
// slow decisions are both high confidence.
func ClassifyConfidence(ratio float64) types.Confidence {
	switch {
	case ratio < highLow || ratio > highHigh:
		return types.ConfidenceHigh
	case ratio < mediumLow || ratio > mediumHigh:
		return types.ConfidenceMedium
	default:
		return types.ConfidenceLow
	}
}

// ConfidenceWeight is the multiplier applied to confidence-weighted signals.
func ConfidenceWeight(c types.Confidence) float64 {
	switch c {
	case types.ConfidenceHigh:
		return 1.5
	case types.ConfidenceMedium:
		return 1.0
	default:
		return 0.5
	}
}

// ActionWeight is the engagement weight of an action. Skip is weakest since it
// is often reflexive.
func ActionWeight(a types.Action) float64 {
	switch a {
	case types.ActionAccept:
		return 1.0
	case types.ActionReject:
		return 0.6
	default:
		return 0.2
	}
}

// ActionSign is +1 for accept, -1 for reject and 0 for skip.
func ActionSign(a types.Action) float64 {
	switch a {
	case types.ActionAccept:
		return 1
	case types.ActionReject:
		return -1
	default:
		return 0
	}
}

// EngagementDepth is ratio scaled by the action weight.
func EngagementDepth(ratio float64, a types.Action) float64 {
	return ratio * ActionWeight(a)
}

// ClassifyEngagement maps an engagement depth to a discrete level.
func ClassifyEngagement(depth float64) types.EngagementLevel {
	switch {
	case depth > absorbedAbove:
		return types.EngagementAbsorbed
	case depth >= presentFrom:
		return types.EngagementPresent
	default:
		return types.EngagementGlancing
	}
}
