// Package rooms holds the static context table: every room a session can be
// opened in, the vibe axes it leans toward, and the routing category it
// belongs to.
package rooms

import (
	"errors"
	"fmt"
	"strings"

	"github.com/okian/vibematch/internal/domain/vibe"
)

// ErrUnknownCategory is returned for a category outside the closed set.
var ErrUnknownCategory = errors.New("unknown category")

// Category groups rooms for prompt routing.
type Category string

// Categories.
const (
	CategoryTravel Category = "travel"
	CategoryMovies Category = "movies"
	CategoryMusic  Category = "music"
)

// ParseCategory converts s to a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case CategoryTravel, CategoryMovies, CategoryMusic:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
}

// Weighted is a secondary axis with its contribution weight.
type Weighted struct {
	Axis   vibe.Axis
	Weight float64
}

// Room is one entry of the context-axis table.
type Room struct {
	Slug      string
	Name      string
	Category  Category // empty for rooms that are not routable by prompt
	Primary   vibe.Axis
	Secondary []Weighted
	// Sociality is the room's constant for the mood4 sociality axis.
	Sociality float64
}

// Label is the short form used in recommendation reasons: the slug without a
// leading "the-" and with dashes as spaces.
func (r Room) Label() string {
	return strings.ReplaceAll(strings.TrimPrefix(r.Slug, "the-"), "-", " ")
}

// defaultSociality applies to rooms without their own constant.
const defaultSociality = 0.3

var table = []Room{ //nolint:gochecknoglobals // static table
	{Slug: "the-departure", Name: "The Departure", Category: CategoryTravel, Primary: vibe.Energy,
		Secondary: []Weighted{{vibe.Wonder, 0.4}, {vibe.Tension, 0.2}}, Sociality: 0.25},
	{Slug: "the-transit", Name: "The Transit", Category: CategoryTravel, Primary: vibe.Serenity,
		Secondary: []Weighted{{vibe.Melancholy, 0.3}, {vibe.Romance, 0.2}}, Sociality: 0.1},
	{Slug: "the-last-row", Name: "The Last Row", Category: CategoryMovies, Primary: vibe.Melancholy,
		Secondary: []Weighted{{vibe.Tension, 0.4}, {vibe.Romance, 0.2}}, Sociality: 0.15},
	{Slug: "the-projector", Name: "The Projector", Category: CategoryMovies, Primary: vibe.Nostalgia,
		Secondary: []Weighted{{vibe.Romance, 0.3}, {vibe.Serenity, 0.2}}, Sociality: 0.1},
	{Slug: "the-rehearsal", Name: "The Rehearsal", Category: CategoryMusic, Primary: vibe.Wonder,
		Secondary: []Weighted{{vibe.Energy, 0.3}, {vibe.Rebellion, 0.2}}, Sociality: 0.35},
	{Slug: "the-vinyl", Name: "The Vinyl", Category: CategoryMusic, Primary: vibe.Nostalgia,
		Secondary: []Weighted{{vibe.Romance, 0.4}, {vibe.Serenity, 0.2}}, Sociality: 0.15},

	{Slug: "the-chase", Name: "The Chase", Primary: vibe.Tension,
		Secondary: []Weighted{{vibe.Energy, 0.5}, {vibe.Rebellion, 0.3}}, Sociality: defaultSociality},
	{Slug: "the-neon-marquee", Name: "The Neon Marquee", Primary: vibe.Energy,
		Secondary: []Weighted{{vibe.Wonder, 0.4}, {vibe.Rebellion, 0.2}}, Sociality: defaultSociality},
	{Slug: "the-rewind", Name: "The Rewind", Primary: vibe.Nostalgia,
		Secondary: []Weighted{{vibe.Melancholy, 0.3}, {vibe.Romance, 0.3}}, Sociality: defaultSociality},
	{Slug: "the-fever-dream", Name: "The Fever Dream", Primary: vibe.Rebellion,
		Secondary: []Weighted{{vibe.Wonder, 0.4}, {vibe.Tension, 0.3}}, Sociality: defaultSociality},
	{Slug: "last-summer", Name: "Last Summer", Primary: vibe.Nostalgia,
		Secondary: []Weighted{{vibe.Romance, 0.4}, {vibe.Wonder, 0.3}}, Sociality: defaultSociality},
	{Slug: "neo-noir", Name: "Neo Noir", Primary: vibe.Tension,
		Secondary: []Weighted{{vibe.Rebellion, 0.4}, {vibe.Energy, 0.3}}, Sociality: defaultSociality},
	{Slug: "the-signal", Name: "The Signal", Primary: vibe.Wonder,
		Secondary: []Weighted{{vibe.Melancholy, 0.4}, {vibe.Serenity, 0.3}}, Sociality: defaultSociality},

	{Slug: "echo-chamber", Name: "The Echo Chamber", Primary: vibe.Melancholy,
		Secondary: []Weighted{{vibe.Serenity, 0.3}, {vibe.Romance, 0.2}}, Sociality: defaultSociality},
	{Slug: "neon-solitude", Name: "Neon Solitude", Primary: vibe.Romance,
		Secondary: []Weighted{{vibe.Melancholy, 0.3}, {vibe.Tension, 0.2}}, Sociality: defaultSociality},
	{Slug: "overgrown-library", Name: "The Overgrown Library", Primary: vibe.Serenity,
		Secondary: []Weighted{{vibe.Wonder, 0.3}, {vibe.Nostalgia, 0.2}}, Sociality: defaultSociality},
	{Slug: "midnight-diner", Name: "Midnight Diner", Primary: vibe.Nostalgia,
		Secondary: []Weighted{{vibe.Romance, 0.3}, {vibe.Serenity, 0.2}}, Sociality: defaultSociality},
	{Slug: "glass-observatory", Name: "The Glass Observatory", Primary: vibe.Wonder,
		Secondary: []Weighted{{vibe.Serenity, 0.3}, {vibe.Energy, 0.2}}, Sociality: defaultSociality},
}

var bySlug = func() map[string]Room { //nolint:gochecknoglobals // index over table
	m := make(map[string]Room, len(table))
	for _, r := range table {
		m[r.Slug] = r
	}
	return m
}()

// Lookup returns the room with the given slug.
func Lookup(slug string) (Room, bool) {
	r, ok := bySlug[slug]
	return r, ok
}

// All returns every room in table order.
func All() []Room {
	out := make([]Room, len(table))
	copy(out, table)
	return out
}

// ByCategory returns the rooms of c in table order.
func ByCategory(c Category) []Room {
	var out []Room
	for _, r := range table {
		if r.Category == c {
			out = append(out, r)
		}
	}
	return out
}

// Label returns the reason label for a context id. Unknown contexts are
// labelled by their own id with the same slug rules.
func Label(contextID string) string {
	if r, ok := Lookup(contextID); ok {
		return r.Label()
	}
	return Room{Slug: contextID}.Label()
}

// Sociality returns the sociality constant for a context id.
func Sociality(contextID string) float64 {
	if r, ok := Lookup(contextID); ok {
		return r.Sociality
	}
	return defaultSociality
}
