package feed

import (
	"math"

	"github.com/reelmate/reelmate-backend/internal/domain"
)

const (
	scoreFloor   = 10
	scoreCeiling = 99

	genreMaxPoints = 40
	filmMaxPoints  = 40
	discoveryBonus = 10

	// Historical divisor for the genre distance. Ratings span 0-5 but the
	// normalization keeps 4 so existing scores stay stable.
	genreRatingSpan = 4.0

	pointsBothFavorite      = 8
	pointsViewerFavTheirRec = 5
	pointsViewerRecTheirFav = 4
	pointsBothRecent        = 2
)

// Score computes the compatibility score between the viewer and a candidate.
// Pure and deterministic; always in [10, 99]. The ceiling is 99 on purpose:
// no pair is ever shown a perfect score.
func Score(viewer, candidate *domain.Profile) int {
	total := genreScore(viewer, candidate) +
		filmScore(viewer, candidate) +
		discoveryScore(viewer, candidate)

	if total < scoreFloor {
		return scoreFloor
	}
	if total > scoreCeiling {
		return scoreCeiling
	}
	return total
}

// genreScore awards up to 40 points for rating the same genres similarly.
// Only genres rated by both users count; no shared genres means 0.
func genreScore(a, b *domain.Profile) int {
	var sum float64
	var shared int
	for genre, ra := range a.GenreRatings {
		rb, ok := b.GenreRatings[genre]
		if !ok {
			continue
		}
		sum += math.Abs(float64(ra)-float64(rb)) / genreRatingSpan
		shared++
	}
	if shared == 0 {
		return 0
	}
	avgDistance := sum / float64(shared)
	return int(math.Round((1 - avgDistance) * genreMaxPoints))
}

// filmScore awards points per movie both users know, weighted by where each
// user holds it: favorite/favorite outranks the mixed combinations, which
// outrank recent/recent. Capped at 40.
func filmScore(viewer, candidate *domain.Profile) int {
	vFav := keySet(viewer.Favorites)
	vRec := watchKeySet(viewer.RecentWatches)
	cFav := keySet(candidate.Favorites)
	cRec := watchKeySet(candidate.RecentWatches)

	points := 0
	for key := range union(vFav, vRec) {
		switch {
		case vFav[key] && cFav[key]:
			points += pointsBothFavorite
		case vFav[key] && cRec[key]:
			points += pointsViewerFavTheirRec
		case vRec[key] && cFav[key]:
			points += pointsViewerRecTheirFav
		case vRec[key] && cRec[key]:
			points += pointsBothRecent
		}
	}
	if points > filmMaxPoints {
		return filmMaxPoints
	}
	return points
}

// discoveryScore awards +10 when one user's recent watches reach into the
// other's favorites, in each direction independently.
func discoveryScore(a, b *domain.Profile) int {
	bonus := 0
	if anyOverlap(watchKeySet(a.RecentWatches), keySet(b.Favorites)) {
		bonus += discoveryBonus
	}
	if anyOverlap(watchKeySet(b.RecentWatches), keySet(a.Favorites)) {
		bonus += discoveryBonus
	}
	return bonus
}

func keySet(movies []domain.Movie) map[domain.MovieKey]bool {
	set := make(map[domain.MovieKey]bool, len(movies))
	for _, m := range movies {
		set[m.Key()] = true
	}
	return set
}

func watchKeySet(watches []domain.RatedMovie) map[domain.MovieKey]bool {
	set := make(map[domain.MovieKey]bool, len(watches))
	for _, w := range watches {
		set[w.Key()] = true
	}
	return set
}

func union(a, b map[domain.MovieKey]bool) map[domain.MovieKey]bool {
	out := make(map[domain.MovieKey]bool, len(a)+len(b))
	for k := range a {
		out[k] = true
	}
	for k := range b {
		out[k] = true
	}
	return out
}

func anyOverlap(a, b map[domain.MovieKey]bool) bool {
	for k := range a {
		if b[k] {
			return true
		}
	}
	return false
}
