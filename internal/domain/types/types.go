// Package types contains the closed enumerations shared across the engine.
package types

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for enum parsing.
var (
	ErrInvalidContentType = errors.New("invalid content type")
	ErrInvalidAction      = errors.New("invalid action")
)

// ContentType identifies the kind of card a decision was made on.
type ContentType string

// Supported content types.
const (
	ContentText           ContentType = "text"
	ContentImage          ContentType = "image"
	ContentVideo          ContentType = "video"
	ContentSound          ContentType = "sound"
	ContentRecommendation ContentType = "recommendation"
)

// ContentTypes lists every content type in a fixed order.
var ContentTypes = []ContentType{ //nolint:gochecknoglobals // closed enumeration
	ContentText,
	ContentImage,
	ContentVideo,
	ContentSound,
	ContentRecommendation,
}

// Valid reports whether c is one of the enumerated content types.
func (c ContentType) Valid() bool {
	switch c {
	case ContentText, ContentImage, ContentVideo, ContentSound, ContentRecommendation:
		return true
	default:
		return false
	}
}

// ParseContentType converts s to a ContentType.
func ParseContentType(s string) (ContentType, error) {
	c := ContentType(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidContentType, s)
	}
	return c, nil
}

// Action is the decision the user took on a card.
type Action string

// Supported actions.
const (
	ActionAccept Action = "accept"
	ActionReject Action = "reject"
	ActionSkip   Action = "skip"
)

// Valid reports whether a is one of the enumerated actions.
func (a Action) Valid() bool {
	return a == ActionAccept || a == ActionReject || a == ActionSkip
}

// ParseAction converts s to an Action. The swipe aliases "like" and
// "dislike" are accepted for accept and reject.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "accept", "like":
		return ActionAccept, nil
	case "reject", "dislike":
		return ActionReject, nil
	case "skip":
		return ActionSkip, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidAction, s)
	}
}

// Confidence tags how decisive a single decision was.
type Confidence string

// Confidence levels.
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// EngagementLevel is the discrete engagement tag of one event.
type EngagementLevel string

// Engagement levels.
const (
	EngagementAbsorbed EngagementLevel = "absorbed"
	EngagementPresent  EngagementLevel = "present"
	EngagementGlancing EngagementLevel = "glancing"
)

// Trajectory classifies where session engagement is heading.
type Trajectory string

// Trajectories.
const (
	TrajectoryAbsorbing   Trajectory = "absorbing"
	TrajectorySettling    Trajectory = "settling"
	TrajectorySearching   Trajectory = "searching"
	TrajectoryDisengaging Trajectory = "disengaging"
)

// DecisionStyle summarizes how a user tends to decide.
type DecisionStyle string

// Decision styles.
const (
	DecisionReflexive  DecisionStyle = "reflexive"
	DecisionDeliberate DecisionStyle = "deliberate"
	DecisionAmbiguous  DecisionStyle = "ambiguous"
)

// AnomalyType names a behavioral pattern found over a window of events.
type AnomalyType string

// Anomaly types.
const (
	AnomalyPause   AnomalyType = "pause"
	AnomalyStall   AnomalyType = "stall"
	AnomalyRush    AnomalyType = "rush"
	AnomalyDropOff AnomalyType = "drop-off"
)
