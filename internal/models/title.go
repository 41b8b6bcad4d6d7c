package models

import (
	"fmt"
	"time"
)

// Title is the canonical local record for a movie, TV series or anime.
// The external id is only unique together with the media kind: the upstream
// catalog uses separate id spaces for movies and tv.
type Title struct {
	ID         string    `boltholdKey:"ID" json:"_id"` // internal id, a UUID, stable once assigned
	ExternalID int64     `boltholdIndex:"ExternalID" json:"tmdbId"`
	Kind       MediaKind `json:"type"`
	LookupKey  string    `boltholdUnique:"LookupKey" json:"-"` // "<externalID>:<kind>"

	Title            string   `json:"title"`
	Overview         string   `json:"overview"`
	PosterURL        string   `json:"poster_path"`
	BackdropURL      string   `json:"backdrop_path"`
	ReleaseDate      string   `json:"release_date"`
	ReleaseYear      string   `json:"release_year"`
	Rating           float64  `json:"vote_average"`
	RatingCount      int      `json:"vote_count"`
	Runtime          int      `json:"runtime"`
	Budget           int64    `json:"budget"`
	Revenue          int64    `json:"revenue"`
	Status           string   `json:"status"`
	OriginalLanguage string   `json:"original_language"`
	Genres           []string `json:"genres"`

	// Seasons is passed through untyped: the upstream shape varies and the
	// consuming UI reads it defensively. Series only.
	Seasons interface{} `json:"seasons,omitempty"`

	Cast            []CastMember           `json:"cast"`
	Directors       []string               `json:"directors"`
	Writers         []string               `json:"writers"`
	TrailerKey      string                 `json:"trailerKey,omitempty"`
	Recommendations []Recommendation       `json:"recommendations"`
	Screenshots     []string               `json:"screenshots"`
	Providers       map[string]interface{} `json:"providers"`

	// Reviews holds locally submitted reviews. Upstream public reviews are
	// merged in at read time and never persisted.
	Reviews []Review `json:"userReviews"`

	CreatedAt time.Time `json:"addedAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TitleLookupKey builds the unique storage key for (externalID, kind).
func TitleLookupKey(externalID int64, kind MediaKind) string {
	return fmt.Sprintf("%d:%s", externalID, kind)
}

// CastMember is a denormalized cast credit, capped at 15 per title.
type CastMember struct {
	ExternalID int64  `json:"id"`
	Name       string `json:"name"`
	Character  string `json:"character"`
	ProfileURL string `json:"profile_path"`
}

// Recommendation is a display stub for a related title.
type Recommendation struct {
	ExternalID int64     `json:"tmdbId"`
	Title      string    `json:"title"`
	PosterURL  string    `json:"poster_path"`
	Rating     float64   `json:"vote_average"`
	Kind       MediaKind `json:"type"`
}

// Review is a user-submitted review embedded in a Title. Immutable once
// created; there is no edit or delete path.
type Review struct {
	Author    string    `json:"author"`
	Rating    float64   `json:"rating"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"date"`
}

// WatchlistEntry is one saved title on a user's watchlist. The display
// fields are a snapshot taken at add time and are not kept in sync with
// later Title updates.
type WatchlistEntry struct {
	Key        string    `boltholdKey:"Key" json:"-"` // "<userID>:<externalID>"
	UserID     string    `boltholdIndex:"UserID" json:"userId"`
	ExternalID int64     `json:"tmdbId"`
	Kind       MediaKind `json:"type"`
	Title      string    `json:"title"`
	PosterURL  string    `json:"poster_path"`
	Rating     float64   `json:"vote_average"`
	AddedAt    time.Time `json:"addedAt"`
}

// WatchlistKey builds the storage key for (userID, externalID). Re-adding
// the same pair therefore overwrites instead of duplicating.
func WatchlistKey(userID string, externalID int64) string {
	return fmt.Sprintf("%s:%d", userID, externalID)
}
