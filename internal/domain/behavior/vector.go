package behavior

import (
	"github.com/okian/vibematch/internal/domain/model"
	"github.com/okian/vibematch/internal/domain/rooms"
	"github.com/okian/vibematch/internal/domain/scoring"
	"github.com/okian/vibematch/internal/domain/types"
	"github.com/okian/vibematch/internal/domain/vibe"
)

// Accumulation steps.
const (
	seedPrimary      = 0.4
	acceptStep       = 0.12
	rejectStep       = 0.08
	oppositeStep     = 0.04
	longDwellBonus   = 0.06
	quickSkipPenalty = 0.04
	longDwellRatio   = 1.5
	quickSkipRatio   = 0.2
)

// Vibe accumulates the vibe8 vector of a session opened in contextID.
//
// The session room seeds the vector. Each event then moves the axes of its own
// room (or the session room when the event carries none): accept raises the
// primary and secondary axes plus the content-type cross-signals, reject lowers
// the primary and raises its opposite. Accept and reject steps are scaled by
// the event's confidence weight. Long dwell adds a flat bonus to the primary;
// a near-instant skip takes a flat penalty. The result is normalized so the
// dominant axis is 1.0.
//
// An empty log yields the all-zero vector.
func Vibe(log []model.EnrichedEvent, contextID string) vibe.Vector {
	v := vibe.Zero(vibe.SchemeVibe8)
	if len(log) == 0 {
		return v
	}

	if r, ok := rooms.Lookup(contextID); ok {
		set(v, r.Primary, seedPrimary)
		for _, s := range r.Secondary {
			bump(v, s.Axis, seedPrimary*s.Weight)
		}
	}

	for _, e := range log {
		ctx := e.ContextID
		if ctx == "" {
			ctx = contextID
		}
		r, ok := rooms.Lookup(ctx)
		if !ok {
			continue
		}
		w := scoring.ConfidenceWeight(e.Confidence)

		switch e.Action {
		case types.ActionAccept:
			bump(v, r.Primary, acceptStep*w)
			for _, s := range r.Secondary {
				bump(v, s.Axis, acceptStep*s.Weight*w)
			}
			for _, sig := range vibe.CrossSignals(e.ContentType) {
				bump(v, sig.Axis, sig.Boost*w)
			}
		case types.ActionReject:
			bump(v, r.Primary, -rejectStep*w)
			if opp, ok := vibe.Opposite(r.Primary); ok {
				bump(v, opp, oppositeStep*w)
			}
		case types.ActionSkip:
		}

		switch {
		case e.DwellRatio > longDwellRatio:
			bump(v, r.Primary, longDwellBonus)
		case e.Action == types.ActionSkip && e.DwellRatio < quickSkipRatio:
			bump(v, r.Primary, -quickSkipPenalty)
		}
	}

	vibe.Normalize(v.Values)
	return v
}

func set(v vibe.Vector, a vibe.Axis, x float64) {
	v.Values[a.Index()] = vibe.Clamp01(x)
}

func bump(v vibe.Vector, a vibe.Axis, dx float64) {
	i := a.Index()
	v.Values[i] = vibe.Clamp01(v.Values[i] + dx)
}
