package models

// MediaKind classifies a title. The upstream catalog only distinguishes
// movie and tv; anime is a locally tagged subset of tv. The kind is decided
// once at ingestion time and carried on every record.
type MediaKind string

const (
	KindMovie MediaKind = "movie"
	KindTV    MediaKind = "tv"
	KindAnime MediaKind = "anime"
)

// ParseKind maps a client-supplied kind string to a MediaKind.
// An empty or unknown value falls back to movie.
func ParseKind(s string) MediaKind {
	switch s {
	case "tv", "series":
		return KindTV
	case "anime":
		return KindAnime
	default:
		return KindMovie
	}
}

// Endpoint returns the upstream API path segment for this kind.
// Anime shares the tv endpoint.
func (k MediaKind) Endpoint() string {
	if k.IsSeries() {
		return "tv"
	}
	return "movie"
}

// IsSeries reports whether the kind maps to the tv side of the upstream
// id space (episode runtimes, created_by credits, no budget/revenue).
func (k MediaKind) IsSeries() bool {
	return k == KindTV || k == KindAnime
}
