// Package behavior turns an enriched event log into session-level signals:
// anomalies, trajectory, per-type affinity, the vibe vector, and the
// BehavioralProfile that composes them. Every function is a pure function of
// its input log.
package behavior

import (
	"math"

	"github.com/okian/vibematch/internal/domain/model"
	"github.com/okian/vibematch/internal/domain/types"
	"github.com/okian/vibematch/internal/domain/vibe"
	"gonum.org/v1/gonum/stat"
)

// Profile weights.
const (
	neutralLevel       = 0.5
	energyWindow       = 5
	energyTrendWeight  = 0.25
	depthScale         = 0.55
	selectSkipWeight   = 0.65
	selectRejectWeight = 0.35
	fitAcceptWeight    = 2.0
	fitSkipWeight      = 1.5
	reflexiveShare     = 0.55
	ambiguousShare     = 0.5
	fastRatio          = 0.2
	slowRatio          = 2.0

	engageAcceptWeight = 0.6
	engageDwellWeight  = 0.4
	engageDwellCapMs   = 8000.0
)

// Build composes the BehavioralProfile of a session opened in contextID.
// An empty log yields the neutral profile.
func Build(log []model.EnrichedEvent, contextID string) model.BehavioralProfile {
	p := model.BehavioralProfile{
		ContextID:         contextID,
		EventCount:        len(log),
		EnergyLevel:       neutralLevel,
		PresentDepth:      neutralLevel,
		Selectivity:       neutralLevel,
		ContentAffinities: Affinities(log),
		Trajectory:        types.TrajectorySearching,
		DecisionStyle:     types.DecisionAmbiguous,
		Anomalies:         []model.Anomaly{},
		Vibe:              vibe.Zero(vibe.SchemeVibe8),
		DominantAxis:      vibe.Wonder,
		Modality:          Modality(log),
	}
	if len(log) == 0 {
		return p
	}

	n := float64(len(log))
	likeRate := float64(countAction(log, types.ActionAccept)) / n
	skipRate := float64(countAction(log, types.ActionSkip)) / n

	p.EnergyLevel = vibe.Clamp01(neutralLevel + energyTrendWeight*EnergyTrend(log))
	p.PresentDepth = vibe.Clamp01(depthScale * mean(engagementDepths(log)))
	p.Selectivity = vibe.Clamp01(selectSkipWeight*skipRate + selectRejectWeight*(1-likeRate))
	p.EngagementScore = Engagement(log)

	fit := ContextFit(log)
	p.ContextFit = math.Max(0, fit)
	p.RoutingConfidence = vibe.Clamp01(math.Abs(fit-neutralLevel) * 2)

	p.Trajectory = Trajectory(log)
	p.DecisionStyle = DecisionStyle(log)
	p.Anomalies = DetectAll(log)
	p.Vibe = Vibe(log, contextID)
	p.DominantAxis = vibe.Dominant(p.Vibe)
	return p
}

// EnergyTrend is the difference between the last and first dwell ratio of the
// last five events, or 0 with fewer than two events.
func EnergyTrend(log []model.EnrichedEvent) float64 {
	window := log[len(log)-min(energyWindow, len(log)):]
	if len(window) < 2 {
		return 0
	}
	return window[len(window)-1].DwellRatio - window[0].DwellRatio
}

// Engagement blends the accept rate with raw mean dwell, which stops counting
// past eight seconds. It is 0 for an empty log.
func Engagement(log []model.EnrichedEvent) float64 {
	if len(log) == 0 {
		return 0
	}
	dwell := make([]float64, len(log))
	for i, e := range log {
		dwell[i] = float64(e.DwellMs)
	}
	likeRate := float64(countAction(log, types.ActionAccept)) / float64(len(log))
	return engageAcceptWeight*likeRate + engageDwellWeight*math.Min(1, mean(dwell)/engageDwellCapMs)
}

// ContextFit is the unclamped room-fit score: accepts count double, skips
// count against, and mean dwell ratio adds on top, all per event.
// It is 0 for an empty log.
func ContextFit(log []model.EnrichedEvent) float64 {
	if len(log) == 0 {
		return 0
	}
	accepts := float64(countAction(log, types.ActionAccept))
	skips := float64(countAction(log, types.ActionSkip))
	return (fitAcceptWeight*accepts + mean(dwellRatios(log)) - fitSkipWeight*skips) / float64(len(log))
}

// DecisionStyle classifies how the user decides.
func DecisionStyle(log []model.EnrichedEvent) types.DecisionStyle {
	if len(log) == 0 {
		return types.DecisionAmbiguous
	}
	var high, low, fast, slow int
	for _, e := range log {
		switch e.Confidence {
		case types.ConfidenceHigh:
			high++
		case types.ConfidenceLow:
			low++
		case types.ConfidenceMedium:
		}
		if e.DwellRatio < fastRatio {
			fast++
		}
		if e.DwellRatio > slowRatio {
			slow++
		}
	}
	n := float64(len(log))
	switch {
	case float64(high)/n > reflexiveShare:
		if fast > slow {
			return types.DecisionReflexive
		}
		return types.DecisionDeliberate
	case float64(low)/n > ambiguousShare:
		return types.DecisionAmbiguous
	default:
		return types.DecisionDeliberate
	}
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

func dwellRatios(log []model.EnrichedEvent) []float64 {
	out := make([]float64, len(log))
	for i, e := range log {
		out[i] = e.DwellRatio
	}
	return out
}

func engagementDepths(log []model.EnrichedEvent) []float64 {
	out := make([]float64, len(log))
	for i, e := range log {
		out[i] = e.EngagementDepth
	}
	return out
}
