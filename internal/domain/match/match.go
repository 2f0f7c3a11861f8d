// Package match ranks catalog items against a profile or vibe vector.
//
// The query is projected into each item's scheme through an explicit mapping
// before scoring. vibe8 and legacy5 items are scored by cosine similarity;
// mood4 items by normalized Euclidean proximity plus a small rating bonus.
// Ranking is stable, so ties keep catalog order, and reasons are derived only
// from the inputs.
package match

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/okian/vibematch/internal/domain/model"
	"github.com/okian/vibematch/internal/domain/rooms"
	"github.com/okian/vibematch/internal/domain/vibe"
	"gonum.org/v1/gonum/floats"
)

// ErrUnknownMetric is returned by ParseMetric.
var ErrUnknownMetric = errors.New("unknown match metric")

// Metric selects the similarity function.
type Metric string

// Metrics. Auto uses distance for mood4 items and cosine otherwise.
const (
	MetricAuto     Metric = "auto"
	MetricCosine   Metric = "cosine"
	MetricDistance Metric = "distance"
)

// ParseMetric converts s to a Metric. Empty means auto.
func ParseMetric(s string) (Metric, error) {
	switch m := Metric(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return MetricAuto, nil
	case MetricAuto, MetricCosine, MetricDistance:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMetric, s)
	}
}

// Rating bonus applied under the distance metric.
const (
	ratingPivot  = 6.5
	ratingFactor = 0.05
)

// Query is what gets matched. Build it with FromProfile or FromVector.
type Query struct {
	Vector    vibe.Vector
	Profile   *model.BehavioralProfile
	ContextID string
	// Genre, when set, keeps only items carrying that genre (case-insensitive).
	Genre string
}

// FromProfile queries with a full profile. Its vibe vector is used for vibe8
// and legacy5 items; mood4 items are matched against the emotional state
// derived from the profile fields.
func FromProfile(p model.BehavioralProfile, contextID string) Query {
	return Query{Vector: p.Vibe, Profile: &p, ContextID: contextID}
}

// FromVector queries with a bare vector.
func FromVector(v vibe.Vector, contextID string) Query {
	return Query{Vector: v, ContextID: contextID}
}

// Option applies a configuration option to the Matcher.
type Option func(*Matcher)

// WithMetric sets the similarity metric.
func WithMetric(m Metric) Option {
	return func(mt *Matcher) {
		if m != "" {
			mt.metric = m
		}
	}
}

// Matcher scores and ranks catalog items. It holds no state between calls.
type Matcher struct {
	metric Metric
}

// New creates a Matcher.
func New(opts ...Option) *Matcher {
	m := &Matcher{metric: MetricAuto}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Metric returns the configured metric.
func (m *Matcher) Metric() Metric { return m.metric }

type scored struct {
	item  model.CatalogItem
	query vibe.Vector
	score float64
}

// Recommend returns at most count items ranked by descending score. An empty
// catalog or a non-positive count yields an empty list. Items whose scheme the
// query cannot be projected into are left out.
func (m *Matcher) Recommend(q Query, catalog []model.CatalogItem, count int) []model.Recommendation {
	if count <= 0 || len(catalog) == 0 {
		return []model.Recommendation{}
	}

	projected := make(map[vibe.Scheme]vibe.Vector, 3)
	ranked := make([]scored, 0, len(catalog))
	for _, item := range catalog {
		if q.Genre != "" && !hasGenre(item, q.Genre) {
			continue
		}
		qv, ok := projected[item.Vector.Scheme]
		if !ok {
			p, err := Project(q, item.Vector.Scheme)
			if err != nil {
				continue
			}
			projected[item.Vector.Scheme] = p
			qv = p
		}
		if len(qv.Values) != len(item.Vector.Values) {
			continue
		}
		ranked = append(ranked, scored{item: item, query: qv, score: m.score(qv, item)})
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	if len(ranked) > count {
		ranked = ranked[:count]
	}

	label := rooms.Label(q.ContextID)
	out := make([]model.Recommendation, len(ranked))
	for i, r := range ranked {
		out[i] = model.Recommendation{
			Item:   r.item,
			Score:  r.score,
			Reason: Reason(r.query, r.item.Vector, label, r.score),
		}
	}
	return out
}

func (m *Matcher) score(q vibe.Vector, item model.CatalogItem) float64 {
	metric := m.metric
	if metric == MetricAuto {
		metric = MetricCosine
		if item.Vector.Scheme == vibe.SchemeMood4 {
			metric = MetricDistance
		}
	}
	if metric == MetricDistance {
		return Proximity(q.Values, item.Vector.Values, item.Rating)
	}
	return Cosine(q.Values, item.Vector.Values)
}

// Cosine returns the cosine similarity of a and b clamped to [0,1]. A zero
// vector scores 0.
func Cosine(a, b []float64) float64 {
	na, nb := floats.Norm(a, 2), floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	return vibe.Clamp01(floats.Dot(a, b) / (na * nb))
}

// Proximity is 1 - distance/maxDistance inside the unit hypercube, plus a
// rating bonus centred on 6.5, clamped to [0,1]. Unrated items get no bonus.
func Proximity(a, b []float64, rating float64) float64 {
	maxDist := math.Sqrt(float64(len(a)))
	if maxDist == 0 {
		return 0
	}
	s := 1 - floats.Distance(a, b, 2)/maxDist
	if rating > 0 {
		s += (rating - ratingPivot) * ratingFactor
	}
	return vibe.Clamp01(s)
}

func hasGenre(item model.CatalogItem, genre string) bool {
	for _, g := range item.Genres {
		if strings.EqualFold(g, genre) {
			return true
		}
	}
	return false
}
