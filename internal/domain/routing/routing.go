// Package routing maps a free-text prompt to a room within a category.
package routing

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/okian/vibematch/internal/domain/rooms"
)

// ErrNoRooms is returned when a category has no rooms to fall back on.
var ErrNoRooms = errors.New("category has no rooms")

// lateNightEnd is the first hour no longer treated as late night.
const lateNightEnd = 6

type keyword struct {
	word string
	room string
}

// Keywords are tried in declaration order; the first one found wins.
var keywords = map[rooms.Category][]keyword{ //nolint:gochecknoglobals // static table
	rooms.CategoryTravel: {
		{"departure", "the-departure"}, {"airport", "the-departure"}, {"gate", "the-departure"},
		{"flight", "the-departure"}, {"leaving", "the-departure"}, {"packing", "the-departure"},
		{"nervous", "the-departure"}, {"anxious", "the-departure"}, {"waiting", "the-departure"},
		{"early", "the-departure"}, {"morning", "the-departure"}, {"boarding", "the-departure"},
		{"transit", "the-transit"}, {"train", "the-transit"}, {"window", "the-transit"},
		{"between", "the-transit"}, {"journey", "the-transit"}, {"moving", "the-transit"},
		{"floating", "the-transit"}, {"night", "the-transit"}, {"alone", "the-transit"},
		{"hours", "the-transit"}, {"long", "the-transit"}, {"clouds", "the-transit"},
	},
	rooms.CategoryMovies: {
		{"cinema", "the-last-row"}, {"theatre", "the-last-row"}, {"watching", "the-last-row"},
		{"alone", "the-last-row"}, {"silence", "the-last-row"}, {"credits", "the-last-row"},
		{"absorbed", "the-last-row"}, {"dark", "the-last-row"}, {"stayed", "the-last-row"},
		{"memory", "the-projector"}, {"nostalgic", "the-projector"}, {"remember", "the-projector"},
		{"film", "the-projector"}, {"scene", "the-projector"}, {"feeling", "the-projector"},
		{"old", "the-projector"}, {"grain", "the-projector"}, {"warmth", "the-projector"},
	},
	rooms.CategoryMusic: {
		{"practice", "the-rehearsal"}, {"playing", "the-rehearsal"}, {"writing", "the-rehearsal"},
		{"making", "the-rehearsal"}, {"restless", "the-rehearsal"}, {"stuck", "the-rehearsal"},
		{"loop", "the-rehearsal"}, {"repeat", "the-rehearsal"}, {"bars", "the-rehearsal"},
		{"album", "the-vinyl"}, {"record", "the-vinyl"}, {"familiar", "the-vinyl"},
		{"always", "the-vinyl"}, {"comfort", "the-vinyl"}, {"favourite", "the-vinyl"},
		{"memory", "the-vinyl"}, {"worn", "the-vinyl"}, {"know", "the-vinyl"},
	},
}

// Result is the routing decision.
type Result struct {
	Room    string `json:"room"`
	Keyword string `json:"keyword,omitempty"` // empty when the fallback chose
}

// Router routes prompts. The fallback draws from rng, so a seeded source
// makes routing fully reproducible. A Router is not safe for concurrent use
// because *rand.Rand is not.
type Router struct {
	rng *rand.Rand
	now func() time.Time
}

// Option configures a Router.
type Option func(*Router)

// WithClock sets the clock used for the late-night rule.
func WithClock(now func() time.Time) Option {
	return func(r *Router) {
		if now != nil {
			r.now = now
		}
	}
}

// New creates a Router drawing fallbacks from rng.
func New(rng *rand.Rand, opts ...Option) *Router {
	r := &Router{rng: rng, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Route picks a room for prompt within category. The first matching keyword
// decides. Without a match, late night (before 06:00) picks the category's
// second room and any other hour draws one at random.
func (r *Router) Route(prompt string, category rooms.Category) (Result, error) {
	table, ok := keywords[category]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", rooms.ErrUnknownCategory, category)
	}
	lower := strings.ToLower(prompt)
	for _, kw := range table {
		if strings.Contains(lower, kw.word) {
			return Result{Room: kw.room, Keyword: kw.word}, nil
		}
	}

	candidates := rooms.ByCategory(category)
	if len(candidates) == 0 {
		return Result{}, fmt.Errorf("%w: %s", ErrNoRooms, category)
	}
	if r.now().Hour() < lateNightEnd && len(candidates) > 1 {
		return Result{Room: candidates[1].Slug}, nil
	}
	return Result{Room: candidates[r.rng.Intn(len(candidates))].Slug}, nil
}
