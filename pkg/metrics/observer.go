package metrics

import (
	"time"

	"github.com/okian/vibematch/internal/domain/model"
)

// Observer records engine notifications on the global manager. It satisfies
// engine.Observer.
type Observer struct{}

// EventRecorded counts the event by content type and action.
func (Observer) EventRecorded(_ string, ev model.EnrichedEvent) {
	RecordEventRecorded(string(ev.ContentType), string(ev.Action))
}

// AnomalyDetected counts the anomaly by type.
func (Observer) AnomalyDetected(_ string, a model.Anomaly) {
	RecordAnomaly(string(a.Type))
}

// ProfileBuilt records the build latency.
func (Observer) ProfileBuilt(_ model.BehavioralProfile, took time.Duration) {
	RecordProfileBuildLatency(ms(took))
}

// Recommended records the ranking latency and list size.
func (Observer) Recommended(_ string, returned int, took time.Duration) {
	RecordRecommendLatency(ms(took))
	RecordRecommendationsReturned(returned)
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
