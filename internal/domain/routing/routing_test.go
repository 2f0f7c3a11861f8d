package routing_test

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/okian/vibematch/internal/domain/rooms"
	"github.com/okian/vibematch/internal/domain/routing"
	. "github.com/smartystreets/goconvey/convey"
)

func at(hour int) func() time.Time {
	return func() time.Time { return time.Date(2026, 1, 1, hour, 30, 0, 0, time.UTC) }
}

func TestRoute(t *testing.T) {
	Convey("Given a router at midday", t, func() {
		r := routing.New(rand.New(rand.NewSource(7)), routing.WithClock(at(12))) //nolint:gosec // deterministic test seed

		Convey("When the prompt contains a keyword", func() {
			res, err := r.Route("Stuck at the AIRPORT again", rooms.CategoryTravel)

			Convey("Then the keyword's room is chosen", func() {
				So(err, ShouldBeNil)
				So(res.Room, ShouldEqual, "the-departure")
				So(res.Keyword, ShouldEqual, "airport")
			})
		})

		Convey("When several keywords match", func() {
			res, _ := r.Route("an old memory from the cinema", rooms.CategoryMovies)

			Convey("Then the first keyword in table order wins", func() {
				So(res.Room, ShouldEqual, "the-last-row")
				So(res.Keyword, ShouldEqual, "cinema")
			})
		})

		Convey("When nothing matches", func() {
			res, err := r.Route("zzz", rooms.CategoryMusic)

			Convey("Then a room of the category is drawn", func() {
				So(err, ShouldBeNil)
				So(res.Keyword, ShouldBeEmpty)
				So([]string{"the-rehearsal", "the-vinyl"}, ShouldContain, res.Room)
			})
		})

		Convey("When the category is unknown", func() {
			_, err := r.Route("anything", rooms.Category("podcasts"))
			So(errors.Is(err, rooms.ErrUnknownCategory), ShouldBeTrue)
		})
	})

	Convey("Given two routers with the same seed", t, func() {
		a := routing.New(rand.New(rand.NewSource(42)), routing.WithClock(at(15))) //nolint:gosec // deterministic test seed
		b := routing.New(rand.New(rand.NewSource(42)), routing.WithClock(at(15))) //nolint:gosec // deterministic test seed

		Convey("Then their fallbacks agree draw for draw", func() {
			for i := 0; i < 20; i++ {
				ra, _ := a.Route("qqq", rooms.CategoryTravel)
				rb, _ := b.Route("qqq", rooms.CategoryTravel)
				So(ra, ShouldResemble, rb)
			}
		})
	})

	Convey("Given a router late at night", t, func() {
		r := routing.New(rand.New(rand.NewSource(1)), routing.WithClock(at(3))) //nolint:gosec // deterministic test seed

		Convey("Then the fallback is the category's second room", func() {
			res, _ := r.Route("qqq", rooms.CategoryTravel)
			So(res.Room, ShouldEqual, "the-transit")
		})
	})
}
