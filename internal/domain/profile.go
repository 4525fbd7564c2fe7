package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Gender is a closed enumeration. Profiles with values outside it are
// rejected at the store-read boundary.
type Gender string

const (
	GenderMale      Gender = "male"
	GenderFemale    Gender = "female"
	GenderNonBinary Gender = "nonbinary"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderNonBinary:
		return true
	}
	return false
}

// Intent is what a user is looking for on the app.
type Intent string

const (
	IntentFriends Intent = "friends"
	IntentRomance Intent = "romance"
)

// AllIntents is the full intent enumeration, used as the fail-open default
// when a profile carries no intent set.
func AllIntents() []Intent {
	return []Intent{IntentFriends, IntentRomance}
}

type Profile struct {
	UID                string       `json:"uid" db:"uid"`
	DisplayName        string       `json:"display_name" db:"display_name"`
	Gender             Gender       `json:"gender" db:"gender"`
	GenderPreferences  GenderList   `json:"gender_preferences" db:"gender_preferences"`
	RelationshipIntent IntentList   `json:"relationship_intent" db:"relationship_intent"`
	City               *string      `json:"city" db:"city"`
	GenreRatings       GenreRatings `json:"genre_ratings" db:"genre_ratings"`
	Favorites          MovieList    `json:"favorites" db:"favorites"`
	RecentWatches      WatchList    `json:"recent_watches" db:"recent_watches"`
	HasProfile         bool         `json:"has_profile" db:"has_profile"`
	HasPreferences     bool         `json:"has_preferences" db:"has_preferences"`
	CreatedAt          time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at" db:"updated_at"`
}

const (
	MaxFavorites     = 4
	MaxRecentWatches = 10
)

// Movie is a film reference as supplied by the catalog, or hand-entered by
// title only.
type Movie struct {
	CatalogID string `json:"catalog_id,omitempty"`
	Title     string `json:"title"`
}

// RatedMovie is a recent watch with the user's own rating (1-5).
type RatedMovie struct {
	Movie
	Rating int `json:"rating"`
}

// MovieKey identifies a movie for overlap purposes: the catalog id when
// present, else the lowercased trimmed title. Two catalog entries sharing a
// normalized title collide; an accepted approximation.
type MovieKey string

func (m Movie) Key() MovieKey {
	if m.CatalogID != "" {
		return MovieKey("id:" + m.CatalogID)
	}
	return MovieKey("title:" + strings.ToLower(strings.TrimSpace(m.Title)))
}

// GenreRatings maps a genre name to a 0-5 rating. Stored as JSONB.
type GenreRatings map[string]int

func (g GenreRatings) Value() (driver.Value, error) {
	if g == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(g)
}

func (g *GenreRatings) Scan(src interface{}) error {
	return scanJSON(src, g)
}

// MovieList is an ordered favorites list. Stored as JSONB.
type MovieList []Movie

func (m MovieList) Value() (driver.Value, error) {
	if m == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(m)
}

func (m *MovieList) Scan(src interface{}) error {
	return scanJSON(src, m)
}

// WatchList is an ordered recent-watches list. Stored as JSONB.
type WatchList []RatedMovie

func (w WatchList) Value() (driver.Value, error) {
	if w == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(w)
}

func (w *WatchList) Scan(src interface{}) error {
	return scanJSON(src, w)
}

// GenderList is a gender-preference set. Stored as JSONB.
type GenderList []Gender

func (g GenderList) Value() (driver.Value, error) {
	if g == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(g)
}

func (g *GenderList) Scan(src interface{}) error {
	return scanJSON(src, g)
}

func (g GenderList) Contains(gender Gender) bool {
	for _, v := range g {
		if v == gender {
			return true
		}
	}
	return false
}

// IntentList is a relationship-intent set. Stored as JSONB.
type IntentList []Intent

func (i IntentList) Value() (driver.Value, error) {
	if i == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(i)
}

func (i *IntentList) Scan(src interface{}) error {
	return scanJSON(src, i)
}

// Overlaps reports whether the two intent sets share at least one element.
// An empty set overlaps with nothing.
func (i IntentList) Overlaps(other []Intent) bool {
	for _, a := range i {
		for _, b := range other {
			if a == b {
				return true
			}
		}
	}
	return false
}

func scanJSON(src, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported scan type %T", src)
	}
}
