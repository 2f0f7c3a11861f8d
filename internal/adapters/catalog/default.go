package catalog

import (
	"github.com/okian/vibematch/internal/domain/model"
	"github.com/okian/vibematch/internal/domain/vibe"
)

// Default returns the built-in film catalog. Vectors are in the legacy5
// scheme (melancholy, longing, peace, nostalgia, awe).
func Default() []model.CatalogItem {
	out := make([]model.CatalogItem, len(defaultItems))
	copy(out, defaultItems)
	return out
}

func legacy(melancholy, longing, peace, nostalgia, awe float64) vibe.Vector {
	return vibe.Vector{
		Scheme: vibe.SchemeLegacy5,
		Values: []float64{melancholy, longing, peace, nostalgia, awe},
	}
}

var defaultItems = []model.CatalogItem{ //nolint:gochecknoglobals // static catalog
	{
		ID: "eternal-sunshine", Title: "Eternal Sunshine of the Spotless Mind", Year: 2004, Rating: 8.3, Runtime: 108,
		Director: "Michel Gondry", Genres: []string{"Drama", "Romance", "Sci-Fi"},
		Overview: "A couple undergoes a medical procedure to erase each other from their memories after a painful breakup.",
		Vector:   legacy(0.95, 0.8, 0.2, 0.7, 0.4),
	},
	{
		ID: "her", Title: "Her", Year: 2013, Rating: 8.0, Runtime: 126,
		Director: "Spike Jonze", Genres: []string{"Drama", "Romance", "Sci-Fi"},
		Overview: "A lonely writer develops an unlikely relationship with an operating system designed to meet his every need.",
		Vector:   legacy(0.85, 0.9, 0.3, 0.5, 0.6),
	},
	{
		ID: "lost-in-translation", Title: "Lost in Translation", Year: 2003, Rating: 7.7, Runtime: 102,
		Director: "Sofia Coppola", Genres: []string{"Drama", "Comedy"},
		Overview: "Two lonely Americans meet in Tokyo and form an unexpected bond amid their shared isolation.",
		Vector:   legacy(0.8, 0.85, 0.4, 0.3, 0.3),
	},
	{
		ID: "blade-runner-2049", Title: "Blade Runner 2049", Year: 2017, Rating: 8.0, Runtime: 164,
		Director: "Denis Villeneuve", Genres: []string{"Sci-Fi", "Drama", "Thriller"},
		Overview: "A new blade runner unearths a long-buried secret that leads him to track down former blade runner Rick Deckard.",
		Vector:   legacy(0.7, 0.95, 0.1, 0.4, 0.85),
	},
	{
		ID: "drive", Title: "Drive", Year: 2011, Rating: 7.8, Runtime: 100,
		Director: "Nicolas Winding Refn", Genres: []string{"Crime", "Drama", "Action"},
		Overview: "A mysterious Hollywood stuntman and mechanic moonlights as a getaway driver and finds himself in trouble.",
		Vector:   legacy(0.6, 0.8, 0.1, 0.5, 0.3),
	},
	{
		ID: "in-the-mood-for-love", Title: "In the Mood for Love", Year: 2000, Rating: 8.1, Runtime: 98,
		Director: "Wong Kar-wai", Genres: []string{"Drama", "Romance"},
		Overview: "Two neighbors discover their spouses are having an affair and develop a deep emotional connection.",
		Vector:   legacy(0.85, 0.95, 0.3, 0.9, 0.2),
	},
	{
		ID: "my-neighbor-totoro", Title: "My Neighbor Totoro", Year: 1988, Rating: 8.1, Runtime: 86,
		Director: "Hayao Miyazaki", Genres: []string{"Animation", "Family", "Fantasy"},
		Overview: "Two sisters move to the countryside and discover friendly forest spirits.",
		Vector:   legacy(0.1, 0.1, 0.95, 0.7, 0.6),
	},
	{
		ID: "the-secret-life-of-walter-mitty", Title: "The Secret Life of Walter Mitty", Year: 2013, Rating: 7.3, Runtime: 114,
		Director: "Ben Stiller", Genres: []string{"Adventure", "Comedy", "Drama"},
		Overview: "A daydreaming magazine employee embarks on a global adventure to find a missing photograph.",
		Vector:   legacy(0.2, 0.5, 0.85, 0.3, 0.9),
	},
	{
		ID: "spirited-away", Title: "Spirited Away", Year: 2001, Rating: 8.6, Runtime: 125,
		Director: "Hayao Miyazaki", Genres: []string{"Animation", "Adventure", "Fantasy"},
		Overview: "A young girl trapped in a spirit world must find a way to free herself and her parents.",
		Vector:   legacy(0.3, 0.3, 0.7, 0.5, 0.95),
	},
	{
		ID: "cinema-paradiso", Title: "Cinema Paradiso", Year: 1988, Rating: 8.5, Runtime: 155,
		Director: "Giuseppe Tornatore", Genres: []string{"Drama", "Romance"},
		Overview: "A filmmaker returns home and recalls his childhood friendship with the projectionist at the local cinema.",
		Vector:   legacy(0.6, 0.5, 0.4, 0.95, 0.3),
	},
	{
		ID: "the-grand-budapest-hotel", Title: "The Grand Budapest Hotel", Year: 2014, Rating: 8.1, Runtime: 99,
		Director: "Wes Anderson", Genres: []string{"Adventure", "Comedy", "Crime"},
		Overview: "A writer encounters the owner of an aging hotel who tells of his adventures with a legendary concierge.",
		Vector:   legacy(0.4, 0.3, 0.3, 0.9, 0.5),
	},
	{
		ID: "midnight-in-paris", Title: "Midnight in Paris", Year: 2011, Rating: 7.7, Runtime: 94,
		Director: "Woody Allen", Genres: []string{"Comedy", "Fantasy", "Romance"},
		Overview: "A nostalgic screenwriter traveling in Paris finds himself mysteriously going back to the 1920s every night.",
		Vector:   legacy(0.3, 0.6, 0.5, 0.95, 0.4),
	},
	{
		ID: "interstellar", Title: "Interstellar", Year: 2014, Rating: 8.7, Runtime: 169,
		Director: "Christopher Nolan", Genres: []string{"Sci-Fi", "Adventure", "Drama"},
		Overview: "A team of explorers travel through a wormhole in space in an attempt to ensure humanity's survival.",
		Vector:   legacy(0.6, 0.5, 0.2, 0.4, 0.95),
	},
	{
		ID: "2001-space-odyssey", Title: "2001: A Space Odyssey", Year: 1968, Rating: 8.3, Runtime: 149,
		Director: "Stanley Kubrick", Genres: []string{"Sci-Fi", "Adventure"},
		Overview: "After discovering a mysterious artifact on the Moon, humanity sets off on a quest to Jupiter.",
		Vector:   legacy(0.5, 0.4, 0.3, 0.2, 0.95),
	},
	{
		ID: "arrival", Title: "Arrival", Year: 2016, Rating: 7.9, Runtime: 116,
		Director: "Denis Villeneuve", Genres: []string{"Sci-Fi", "Drama", "Mystery"},
		Overview: "A linguist is recruited to help communicate with alien visitors and discovers a profound truth about time.",
		Vector:   legacy(0.7, 0.4, 0.5, 0.3, 0.9),
	},
	{
		ID: "se7en", Title: "Se7en", Year: 1995, Rating: 8.6, Runtime: 127,
		Director: "David Fincher", Genres: []string{"Crime", "Drama", "Mystery"},
		Overview: "Two detectives hunt a serial killer who uses the seven deadly sins as his motives.",
		Vector:   legacy(0.9, 0.3, 0.0, 0.2, 0.4),
	},
	{
		ID: "the-departed", Title: "The Departed", Year: 2006, Rating: 8.5, Runtime: 151,
		Director: "Martin Scorsese", Genres: []string{"Crime", "Drama", "Thriller"},
		Overview: "An undercover cop and a mole in the police attempt to identify each other while infiltrating a Boston crime syndicate.",
		Vector:   legacy(0.6, 0.4, 0.0, 0.3, 0.3),
	},
	{
		ID: "no-country-for-old-men", Title: "No Country for Old Men", Year: 2007, Rating: 8.2, Runtime: 122,
		Director: "Joel Coen, Ethan Coen", Genres: []string{"Crime", "Drama", "Thriller"},
		Overview: "A hunter stumbles upon a drug deal gone wrong and is pursued by a psychopathic killer.",
		Vector:   legacy(0.7, 0.2, 0.1, 0.4, 0.3),
	},
	{
		ID: "heat", Title: "Heat", Year: 1995, Rating: 8.3, Runtime: 170,
		Director: "Michael Mann", Genres: []string{"Crime", "Drama", "Action"},
		Overview: "A group of professional bank robbers start to feel the heat from a dedicated detective closing in on their trail.",
		Vector:   legacy(0.5, 0.6, 0.1, 0.3, 0.4),
	},
	{
		ID: "moonlight", Title: "Moonlight", Year: 2016, Rating: 7.4, Runtime: 111,
		Director: "Barry Jenkins", Genres: []string{"Drama"},
		Overview: "A young African-American man grapples with his identity and sexuality while growing up in Miami.",
		Vector:   legacy(0.8, 0.7, 0.4, 0.6, 0.3),
	},
	{
		ID: "the-tree-of-life", Title: "The Tree of Life", Year: 2011, Rating: 6.8, Runtime: 139,
		Director: "Terrence Malick", Genres: []string{"Drama", "Fantasy"},
		Overview: "A Texas family navigates loss and the passage of time against the backdrop of the universe's creation.",
		Vector:   legacy(0.6, 0.5, 0.7, 0.8, 0.9),
	},
	{
		ID: "the-shawshank-redemption", Title: "The Shawshank Redemption", Year: 1994, Rating: 9.3, Runtime: 142,
		Director: "Frank Darabont", Genres: []string{"Drama"},
		Overview: "Two imprisoned men bond over a number of years, finding solace and eventual redemption through acts of common decency.",
		Vector:   legacy(0.5, 0.7, 0.4, 0.6, 0.5),
	},
	{
		ID: "parasite", Title: "Parasite", Year: 2019, Rating: 8.5, Runtime: 132,
		Director: "Bong Joon-ho", Genres: []string{"Comedy", "Drama", "Thriller"},
		Overview: "Greed and class discrimination threaten the symbiotic relationship between the wealthy Park family and the destitute Kim clan.",
		Vector:   legacy(0.6, 0.3, 0.1, 0.2, 0.5),
	},
	{
		ID: "amelie", Title: "Amélie", Year: 2001, Rating: 8.3, Runtime: 122,
		Director: "Jean-Pierre Jeunet", Genres: []string{"Comedy", "Romance"},
		Overview: "A shy Parisian waitress decides to change the lives of those around her, discovering love along the way.",
		Vector:   legacy(0.2, 0.4, 0.7, 0.8, 0.5),
	},
}
