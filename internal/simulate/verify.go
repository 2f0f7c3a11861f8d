package simulate

import (
	"fmt"
	"math"

	"github.com/okian/vibematch/internal/domain/model"
)

// verifyProfile checks ranges and counts every profile must hold.
func verifyProfile(p model.BehavioralProfile, plan SessionPlan) error {
	if p.EventCount != len(plan.Events) {
		return fmt.Errorf("%w: event_count %d, posted %d", ErrVerification, p.EventCount, len(plan.Events))
	}
	if p.ContextID != plan.ContextID {
		return fmt.Errorf("%w: context %q, want %q", ErrVerification, p.ContextID, plan.ContextID)
	}
	for name, x := range map[string]float64{
		"energy_level":       p.EnergyLevel,
		"present_depth":      p.PresentDepth,
		"selectivity":        p.Selectivity,
		"routing_confidence": p.RoutingConfidence,
	} {
		if x < 0 || x > 1 || math.IsNaN(x) {
			return fmt.Errorf("%w: %s=%v outside [0,1]", ErrVerification, name, x)
		}
	}
	if p.ContextFit < 0 {
		return fmt.Errorf("%w: negative context_fit %v", ErrVerification, p.ContextFit)
	}
	for i, x := range p.Vibe.Values {
		if x < 0 || x > 1 {
			return fmt.Errorf("%w: vibe axis %d=%v outside [0,1]", ErrVerification, i, x)
		}
	}
	return nil
}

// verifyRecommendations checks scores lie in [0,1], are sorted descending
// and the list respects the requested count.
func verifyRecommendations(recs []model.Recommendation, count int) error {
	if len(recs) > count {
		return fmt.Errorf("%w: %d recommendations, asked for %d", ErrVerification, len(recs), count)
	}
	for i, r := range recs {
		if r.Score < 0 || r.Score > 1 {
			return fmt.Errorf("%w: score %v of %s outside [0,1]", ErrVerification, r.Score, r.Item.ID)
		}
		if i > 0 && r.Score > recs[i-1].Score {
			return fmt.Errorf("%w: ranking not descending at %d", ErrVerification, i)
		}
		if r.Reason == "" {
			return fmt.Errorf("%w: empty reason for %s", ErrVerification, r.Item.ID)
		}
	}
	return nil
}
