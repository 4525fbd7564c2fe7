package feed

import (
	"testing"

	"github.com/reelmate/reelmate-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func movie(id, title string) domain.Movie {
	return domain.Movie{CatalogID: id, Title: title}
}

func watched(id, title string, rating int) domain.RatedMovie {
	return domain.RatedMovie{Movie: movie(id, title), Rating: rating}
}

func TestScoreFloor(t *testing.T) {
	// Nothing in common, nothing rated: raw score is 0, presented as 10.
	a := &domain.Profile{UID: "a"}
	b := &domain.Profile{UID: "b"}
	assert.Equal(t, 10, Score(a, b))
}

func TestScoreIdenticalGenreTaste(t *testing.T) {
	ratings := domain.GenreRatings{"horror": 5, "comedy": 2, "drama": 0}
	a := &domain.Profile{UID: "a", GenreRatings: ratings}
	b := &domain.Profile{UID: "b", GenreRatings: ratings}

	// Full genre alignment and no film overlap: exactly the genre maximum.
	assert.Equal(t, 40, Score(a, b))
}

func TestGenreScoreIgnoresUnsharedGenres(t *testing.T) {
	a := &domain.Profile{GenreRatings: domain.GenreRatings{"horror": 5, "comedy": 3}}
	b := &domain.Profile{GenreRatings: domain.GenreRatings{"horror": 5, "western": 1}}

	// Only horror is shared and it matches exactly.
	assert.Equal(t, 40, genreScore(a, b))

	c := &domain.Profile{GenreRatings: domain.GenreRatings{"western": 1}}
	assert.Equal(t, 0, genreScore(a, c))
}

func TestGenreScoreExtremeDisagreementGoesNegative(t *testing.T) {
	a := &domain.Profile{GenreRatings: domain.GenreRatings{"horror": 0}}
	b := &domain.Profile{GenreRatings: domain.GenreRatings{"horror": 5}}

	// Distance 5 over the divisor 4 exceeds 1, so the sub-score dips below
	// zero. The final clamp hides it from callers of Score.
	assert.Equal(t, -10, genreScore(a, b))
	assert.Equal(t, 10, Score(a, b))
}

func TestFilmScoreWeights(t *testing.T) {
	inception := movie("27205", "Inception")

	t.Run("BothFavorite", func(t *testing.T) {
		v := &domain.Profile{Favorites: domain.MovieList{inception}}
		c := &domain.Profile{Favorites: domain.MovieList{inception}}
		assert.Equal(t, 8, filmScore(v, c))
	})

	t.Run("ViewerFavoriteTheirRecent", func(t *testing.T) {
		v := &domain.Profile{Favorites: domain.MovieList{inception}}
		c := &domain.Profile{RecentWatches: domain.WatchList{watched("27205", "Inception", 4)}}
		assert.Equal(t, 5, filmScore(v, c))
	})

	t.Run("ViewerRecentTheirFavorite", func(t *testing.T) {
		v := &domain.Profile{RecentWatches: domain.WatchList{watched("27205", "Inception", 4)}}
		c := &domain.Profile{Favorites: domain.MovieList{inception}}
		assert.Equal(t, 4, filmScore(v, c))
	})

	t.Run("BothRecent", func(t *testing.T) {
		v := &domain.Profile{RecentWatches: domain.WatchList{watched("27205", "Inception", 4)}}
		c := &domain.Profile{RecentWatches: domain.WatchList{watched("27205", "Inception", 2)}}
		assert.Equal(t, 2, filmScore(v, c))
	})

	t.Run("FavoriteOutranksRecentForSameFilm", func(t *testing.T) {
		// The film sits in every list on both sides; it still counts once,
		// at the favorite/favorite weight.
		v := &domain.Profile{
			Favorites:     domain.MovieList{inception},
			RecentWatches: domain.WatchList{watched("27205", "Inception", 5)},
		}
		c := &domain.Profile{
			Favorites:     domain.MovieList{inception},
			RecentWatches: domain.WatchList{watched("27205", "Inception", 5)},
		}
		assert.Equal(t, 8, filmScore(v, c))
	})
}

func TestScoreSingleSharedFavoriteClampsToFloor(t *testing.T) {
	inception := movie("27205", "Inception")
	a := &domain.Profile{Favorites: domain.MovieList{inception}}
	b := &domain.Profile{Favorites: domain.MovieList{inception}}

	// 8 raw points from the shared favorite, presented as the floor.
	assert.Equal(t, 10, Score(a, b))
}

func TestFilmScoreMonotonicUntilCap(t *testing.T) {
	ids := []string{"1", "2", "3", "4", "5", "6", "7"}
	prev := 0
	for n := 1; n <= len(ids); n++ {
		var shared domain.MovieList
		for _, id := range ids[:n] {
			shared = append(shared, movie(id, "film "+id))
		}
		v := &domain.Profile{Favorites: shared}
		c := &domain.Profile{Favorites: shared}

		got := filmScore(v, c)
		assert.GreaterOrEqual(t, got, prev)
		assert.LessOrEqual(t, got, 40)
		prev = got
	}
	assert.Equal(t, 40, prev)
}

func TestFilmScoreTitleOnlyOverlap(t *testing.T) {
	// Hand-entered titles match case-insensitively when neither side has a
	// catalog id.
	v := &domain.Profile{Favorites: domain.MovieList{{Title: "HEAT"}}}
	c := &domain.Profile{Favorites: domain.MovieList{{Title: "heat"}}}
	assert.Equal(t, 8, filmScore(v, c))
}

func TestFilmScoreCap(t *testing.T) {
	var favs domain.MovieList
	for _, id := range []string{"1", "2", "3", "4"} {
		favs = append(favs, movie(id, "film "+id))
	}
	var recs domain.WatchList
	for _, id := range []string{"5", "6", "7", "8", "9"} {
		recs = append(recs, watched(id, "film "+id, 3))
	}

	v := &domain.Profile{Favorites: favs, RecentWatches: recs}
	c := &domain.Profile{Favorites: favs, RecentWatches: recs}

	// 4 shared favorites and 5 shared recents is 42 raw points, capped.
	assert.Equal(t, 40, filmScore(v, c))
}

func TestDiscoveryScoreDirectionsAreIndependent(t *testing.T) {
	inception := movie("27205", "Inception")
	heat := movie("949", "Heat")

	a := &domain.Profile{
		Favorites:     domain.MovieList{heat},
		RecentWatches: domain.WatchList{watched("27205", "Inception", 5)},
	}
	b := &domain.Profile{Favorites: domain.MovieList{inception}}

	// a recently watched one of b's favorites; b has not reached into a's.
	assert.Equal(t, 10, discoveryScore(a, b))

	b.RecentWatches = domain.WatchList{watched("949", "Heat", 4)}
	assert.Equal(t, 20, discoveryScore(a, b))
}

func TestScoreCeiling(t *testing.T) {
	ratings := domain.GenreRatings{"horror": 5, "comedy": 2}
	favs := domain.MovieList{movie("1", "a"), movie("2", "b"), movie("3", "c"), movie("4", "d")}
	recs := domain.WatchList{
		watched("1", "a", 5), watched("2", "b", 5),
		watched("3", "c", 5), watched("4", "d", 5),
		watched("5", "e", 4), watched("6", "f", 4),
		watched("7", "g", 4), watched("8", "h", 4),
	}

	a := &domain.Profile{GenreRatings: ratings, Favorites: favs, RecentWatches: recs}
	b := &domain.Profile{GenreRatings: ratings, Favorites: favs, RecentWatches: recs}

	// Genre max plus film points plus both discovery bonuses overflows the
	// scale; the presented score never reaches 100.
	assert.Equal(t, 99, Score(a, b))
}
