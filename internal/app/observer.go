package service

import (
	"context"
	"time"

	"github.com/okian/vibematch/internal/domain/model"
	"github.com/okian/vibematch/pkg/logger"
)

// logObserver writes engine notifications to the service log.
type logObserver struct {
	log logger.Logger
}

func newLogObserver(l logger.Logger) *logObserver {
	return &logObserver{log: l}
}

func (o *logObserver) EventRecorded(sessionID string, ev model.EnrichedEvent) {
	o.log.Debug(context.Background(), "event recorded",
		logger.String("session_id", sessionID),
		logger.Int("index", ev.SequenceIndex),
		logger.String("content_type", string(ev.ContentType)),
		logger.String("action", string(ev.Action)),
		logger.Float64("dwell_ratio", ev.DwellRatio),
		logger.String("confidence", string(ev.Confidence)),
	)
}

func (o *logObserver) AnomalyDetected(sessionID string, a model.Anomaly) {
	o.log.Info(context.Background(), "anomaly detected",
		logger.String("session_id", sessionID),
		logger.String("type", string(a.Type)),
		logger.Int("index", a.EventIndex),
		logger.String("description", a.Description),
	)
}

func (o *logObserver) ProfileBuilt(p model.BehavioralProfile, took time.Duration) {
	o.log.Debug(context.Background(), "profile built",
		logger.String("context_id", p.ContextID),
		logger.Int("events", p.EventCount),
		logger.String("trajectory", string(p.Trajectory)),
		logger.String("dominant_axis", string(p.DominantAxis)),
		logger.Duration("took", took),
	)
}

func (o *logObserver) Recommended(contextID string, returned int, took time.Duration) {
	o.log.Debug(context.Background(), "recommendations ranked",
		logger.String("context_id", contextID),
		logger.Int("returned", returned),
		logger.Duration("took", took),
	)
}
