package behavior

import (
	"github.com/okian/vibematch/internal/domain/model"
	"github.com/okian/vibematch/internal/domain/types"
)

// Trajectory window and thresholds.
const (
	trajectoryMinEvents    = 3
	trajectoryWindow       = 6
	absorbingTrend         = 0.3
	absorbingLikeRate      = 0.3
	settlingTrend          = 0.2
	disengagingSkipRate    = 0.5
	disengagingTrend       = -0.3
	disengagingMaxLikeRate = 0.2
)

// Trajectory classifies the direction of engagement over the recent window.
// Fewer than three events is always searching.
func Trajectory(log []model.EnrichedEvent) types.Trajectory {
	if len(log) < trajectoryMinEvents {
		return types.TrajectorySearching
	}
	window := log[len(log)-min(trajectoryWindow, len(log)):]
	ratios := dwellRatios(window)
	mid := len(ratios) / 2
	trend := mean(ratios[mid:]) - mean(ratios[:mid])

	n := float64(len(window))
	likeRate := float64(countAction(window, types.ActionAccept)) / n
	skipRate := float64(countAction(window, types.ActionSkip)) / n

	switch {
	case trend > absorbingTrend && likeRate > absorbingLikeRate:
		return types.TrajectoryAbsorbing
	case trend > settlingTrend:
		return types.TrajectorySettling
	case skipRate > disengagingSkipRate || (trend < disengagingTrend && likeRate < disengagingMaxLikeRate):
		return types.TrajectoryDisengaging
	default:
		return types.TrajectorySearching
	}
}
