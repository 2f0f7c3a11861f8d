package simulate

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/okian/vibematch/internal/domain/model"
	"github.com/okian/vibematch/internal/domain/rooms"
	"github.com/okian/vibematch/internal/domain/scoring"
	"github.com/okian/vibematch/internal/domain/types"
)

// Persona shapes the synthetic behaviour of one session.
type Persona string

// Personas.
const (
	// PersonaImmersed accepts most cards and lingers well past the expected dwell.
	PersonaImmersed Persona = "immersed"
	// PersonaSkimmer skips in quick succession, which trips rush anomalies.
	PersonaSkimmer Persona = "skimmer"
	// PersonaSelective mixes accepts and rejects at moderate dwell.
	PersonaSelective Persona = "selective"
)

// Personas lists every persona in generation order.
var Personas = []Persona{PersonaImmersed, PersonaSkimmer, PersonaSelective} //nolint:gochecknoglobals // closed enumeration

type personaShape struct {
	accept, reject   float64 // action probabilities; the rest skips
	dwellLo, dwellHi float64 // dwell as a multiple of the expected dwell
	gapLo, gapHi     time.Duration
}

var shapes = map[Persona]personaShape{ //nolint:gochecknoglobals // static table
	PersonaImmersed:  {accept: 0.8, reject: 0.05, dwellLo: 1.2, dwellHi: 3.0, gapLo: 3 * time.Second, gapHi: 12 * time.Second},
	PersonaSkimmer:   {accept: 0.1, reject: 0.1, dwellLo: 0.05, dwellHi: 0.3, gapLo: 200 * time.Millisecond, gapHi: 900 * time.Millisecond},
	PersonaSelective: {accept: 0.45, reject: 0.35, dwellLo: 0.5, dwellHi: 1.5, gapLo: 2 * time.Second, gapHi: 6 * time.Second},
}

// SessionPlan is a generated session: its room, persona and complete log.
type SessionPlan struct {
	ContextID string
	Persona   Persona
	Events    []model.InteractionEvent
}

// Generator produces deterministic session plans from a seed.
type Generator struct {
	rng    *rand.Rand
	scorer *scoring.Scorer
	rooms  []rooms.Room
	start  time.Time
}

// NewGenerator returns a generator whose output depends only on seed and start.
func NewGenerator(seed int64, start time.Time) *Generator {
	return &Generator{
		rng:    rand.New(rand.NewSource(seed)), //nolint:gosec // synthetic data
		scorer: scoring.New(),
		rooms:  rooms.All(),
		start:  start,
	}
}

// Plan generates one session of n events. Event ids are derived from the
// generator's stream so equal seeds give equal ids.
func (g *Generator) Plan(n int) SessionPlan {
	room := g.rooms[g.rng.Intn(len(g.rooms))]
	persona := Personas[g.rng.Intn(len(Personas))]
	shape := shapes[persona]

	plan := SessionPlan{ContextID: room.Slug, Persona: persona, Events: make([]model.InteractionEvent, n)}
	ts := g.start
	for i := range n {
		ct := types.ContentTypes[g.rng.Intn(len(types.ContentTypes))]
		expected, _ := g.scorer.ExpectedDwell(ct)
		mult := shape.dwellLo + g.rng.Float64()*(shape.dwellHi-shape.dwellLo)
		gap := shape.gapLo + time.Duration(g.rng.Int63n(int64(shape.gapHi-shape.gapLo)+1))

		ts = ts.Add(gap)
		plan.Events[i] = model.InteractionEvent{
			EventID:       g.eventID(),
			ContentType:   ct,
			ContextID:     room.Slug,
			Action:        g.action(shape),
			DwellMs:       int64(float64(expected) * mult),
			Timestamp:     ts,
			SequenceIndex: i,
		}
	}
	return plan
}

func (g *Generator) action(s personaShape) types.Action {
	x := g.rng.Float64()
	switch {
	case x < s.accept:
		return types.ActionAccept
	case x < s.accept+s.reject:
		return types.ActionReject
	default:
		return types.ActionSkip
	}
}

func (g *Generator) eventID() string {
	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
