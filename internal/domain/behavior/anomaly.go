package behavior

import (
	"fmt"
	"math"

	"github.com/okian/vibematch/internal/domain/model"
	"github.com/okian/vibematch/internal/domain/types"
)

// Anomaly thresholds.
const (
	pauseRatio      = 3.0
	stallRatio      = 5.0
	rushWindow      = 3
	rushMaxSpanMs   = 5000
	dropOffWindow   = 4
	dropOffSkipRate = 0.75
)

// Detect returns the anomalies that fire on the last event of log, looking
// only at log itself. At most one anomaly of each type is returned.
func Detect(log []model.EnrichedEvent) []model.Anomaly {
	n := len(log)
	if n == 0 {
		return nil
	}
	idx := n - 1
	ev := log[idx]
	var out []model.Anomaly

	if ev.Action == types.ActionReject && ev.DwellRatio > pauseRatio {
		out = append(out, anomaly(types.AnomalyPause, idx, ev,
			fmt.Sprintf("%ds on %s then rejected: ambivalent, could not commit", seconds(ev.DwellMs), ev.ContentType)))
	}

	if ev.DwellRatio > stallRatio {
		out = append(out, anomaly(types.AnomalyStall, idx, ev,
			fmt.Sprintf("%ds on %s: absorbed or distracted", seconds(ev.DwellMs), ev.ContentType)))
	}

	if n >= rushWindow {
		tail := log[n-rushWindow:]
		span := tail[len(tail)-1].Timestamp.Sub(tail[0].Timestamp).Milliseconds()
		if countAction(tail, types.ActionSkip) == rushWindow && span < rushMaxSpanMs {
			out = append(out, anomaly(types.AnomalyRush, idx, ev,
				fmt.Sprintf("%d skips in under %ds: searching, not finding it", rushWindow, rushMaxSpanMs/1000)))
		}
	}

	if n >= dropOffWindow {
		tail := log[n-dropOffWindow:]
		rate := float64(countAction(tail, types.ActionSkip)) / dropOffWindow
		if rate >= dropOffSkipRate {
			out = append(out, anomaly(types.AnomalyDropOff, idx, ev,
				fmt.Sprintf("%.0f%% skip rate over the last %d cards: disengaging", rate*100, dropOffWindow)))
		}
	}

	return out
}

// DetectAll scans every prefix of log and returns the deduplicated anomaly
// list in detection order. Feeding the same log one event at a time through
// Detect and a Set yields the same list.
func DetectAll(log []model.EnrichedEvent) []model.Anomaly {
	set := NewSet()
	for i := range log {
		set.Add(Detect(log[:i+1])...)
	}
	return set.List()
}

// Set is an append-only anomaly collection deduplicated by (type, event index).
// The zero value is not usable; call NewSet.
type Set struct {
	seen map[model.AnomalyKey]struct{}
	list []model.Anomaly
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{seen: make(map[model.AnomalyKey]struct{})}
}

// Add appends every anomaly not already present and returns the ones added.
func (s *Set) Add(as ...model.Anomaly) []model.Anomaly {
	var added []model.Anomaly
	for _, a := range as {
		k := a.Key()
		if _, ok := s.seen[k]; ok {
			continue
		}
		s.seen[k] = struct{}{}
		s.list = append(s.list, a)
		added = append(added, a)
	}
	return added
}

// Len returns the number of anomalies held.
func (s *Set) Len() int { return len(s.list) }

// List returns a copy of the anomalies in insertion order.
func (s *Set) List() []model.Anomaly {
	out := make([]model.Anomaly, len(s.list))
	copy(out, s.list)
	return out
}

func anomaly(t types.AnomalyType, idx int, ev model.EnrichedEvent, desc string) model.Anomaly {
	return model.Anomaly{Type: t, EventIndex: idx, Timestamp: ev.Timestamp, Description: desc}
}

func countAction(log []model.EnrichedEvent, a types.Action) int {
	c := 0
	for _, e := range log {
		if e.Action == a {
			c++
		}
	}
	return c
}

func seconds(ms int64) int64 {
	return int64(math.Round(float64(ms) / 1000))
}
