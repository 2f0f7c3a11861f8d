package engine

import (
	"time"

	"github.com/okian/vibematch/internal/domain/model"
)

// Observer receives structured notifications from the engine. Implementations
// must be cheap and must not call back into the engine.
type Observer interface {
	EventRecorded(sessionID string, ev model.EnrichedEvent)
	AnomalyDetected(sessionID string, a model.Anomaly)
	ProfileBuilt(p model.BehavioralProfile, took time.Duration)
	Recommended(contextID string, returned int, took time.Duration)
}

// NopObserver ignores every notification.
type NopObserver struct{}

func (NopObserver) EventRecorded(string, model.EnrichedEvent)          {}
func (NopObserver) AnomalyDetected(string, model.Anomaly)              {}
func (NopObserver) ProfileBuilt(model.BehavioralProfile, time.Duration) {}
func (NopObserver) Recommended(string, int, time.Duration)              {}

// MultiObserver fans notifications out to several observers in order.
type MultiObserver []Observer

func (m MultiObserver) EventRecorded(id string, ev model.EnrichedEvent) {
	for _, o := range m {
		o.EventRecorded(id, ev)
	}
}

func (m MultiObserver) AnomalyDetected(id string, a model.Anomaly) {
	for _, o := range m {
		o.AnomalyDetected(id, a)
	}
}

func (m MultiObserver) ProfileBuilt(p model.BehavioralProfile, took time.Duration) {
	for _, o := range m {
		o.ProfileBuilt(p, took)
	}
}

func (m MultiObserver) Recommended(contextID string, n int, took time.Duration) {
	for _, o := range m {
		o.Recommended(contextID, n, took)
	}
}
