package tmdb

// Upstream payload shapes. These mirror the catalog provider's JSON
// exactly and are treated as a fixed external contract; normalization into
// local records happens in the controllers package.

// Genre is a labeled genre from the detail endpoints.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CastCredit is one cast member from the credits sub-resource.
type CastCredit struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
}

// CrewCredit is one crew member from the credits sub-resource.
type CrewCredit struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

// Credits bundles cast and crew.
type Credits struct {
	Cast []CastCredit `json:"cast"`
	Crew []CrewCredit `json:"crew"`
}

// Creator is an entry of the tv "created_by" list.
type Creator struct {
	Name string `json:"name"`
}

// Video is one entry of the videos sub-resource.
type Video struct {
	Key  string `json:"key"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// VideoList wraps the videos sub-resource.
type VideoList struct {
	Results []Video `json:"results"`
}

// Image is one gallery image.
type Image struct {
	FilePath string `json:"file_path"`
}

// ImageList wraps the images sub-resource.
type ImageList struct {
	Backdrops []Image `json:"backdrops"`
}

// PublicReview is one upstream-provided public review.
type PublicReview struct {
	Author        string `json:"author"`
	Content       string `json:"content"`
	CreatedAt     string `json:"created_at"`
	AuthorDetails struct {
		Rating float64 `json:"rating"`
	} `json:"author_details"`
}

// ReviewList wraps the reviews sub-resource.
type ReviewList struct {
	Results []PublicReview `json:"results"`
}

// ListItem is the stub shape shared by search, recommendation, discover
// and popular list responses.
type ListItem struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title,omitempty"`
	Name         string  `json:"name,omitempty"`
	Overview     string  `json:"overview,omitempty"`
	PosterPath   string  `json:"poster_path,omitempty"`
	BackdropPath string  `json:"backdrop_path,omitempty"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
	VoteAverage  float64 `json:"vote_average"`
	MediaType    string  `json:"media_type,omitempty"`
	GenreIDs     []int64 `json:"genre_ids,omitempty"`
}

// ListPage is one page of a paged list endpoint.
type ListPage struct {
	Page         int        `json:"page"`
	Results      []ListItem `json:"results"`
	TotalPages   int        `json:"total_pages"`
	TotalResults int        `json:"total_results"`
}

// ProviderList wraps the watch/providers sub-resource, keyed by country
// code. The per-country shape is passed through untyped.
type ProviderList struct {
	Results map[string]interface{} `json:"results"`
}

// TitleDetails is the full detail payload for a movie or tv series with
// the expanded sub-resources. Movie-only and tv-only fields are both
// present; the zero values disambiguate.
type TitleDetails struct {
	ID               int64       `json:"id"`
	Title            string      `json:"title"`          // movies
	Name             string      `json:"name"`           // tv
	Overview         string      `json:"overview"`
	PosterPath       string      `json:"poster_path"`
	BackdropPath     string      `json:"backdrop_path"`
	ReleaseDate      string      `json:"release_date"`   // movies
	FirstAirDate     string      `json:"first_air_date"` // tv
	VoteAverage      float64     `json:"vote_average"`
	VoteCount        int         `json:"vote_count"`
	Runtime          int         `json:"runtime"`          // movies
	EpisodeRunTime   []int       `json:"episode_run_time"` // tv
	Budget           int64       `json:"budget"`
	Revenue          int64       `json:"revenue"`
	Status           string      `json:"status"`
	OriginalLanguage string      `json:"original_language"`
	Genres           []Genre     `json:"genres"`
	Seasons          interface{} `json:"seasons"` // tv, shape varies
	CreatedBy        []Creator   `json:"created_by"`

	Credits         Credits      `json:"credits"`
	Videos          VideoList    `json:"videos"`
	Images          ImageList    `json:"images"`
	Reviews         ReviewList   `json:"reviews"`
	Recommendations ListPage     `json:"recommendations"`
	WatchProviders  ProviderList `json:"watch/providers"`
}

// PersonCredit is one credit of a person's combined filmography.
type PersonCredit struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title,omitempty"`
	Name        string  `json:"name,omitempty"`
	PosterPath  string  `json:"poster_path,omitempty"`
	VoteAverage float64 `json:"vote_average"`
	Popularity  float64 `json:"popularity"`
	MediaType   string  `json:"media_type,omitempty"`
	Character   string  `json:"character,omitempty"`
}

// PersonDetails is the person detail payload with combined credits and
// external ids expanded.
type PersonDetails struct {
	ID                 int64                  `json:"id"`
	Name               string                 `json:"name"`
	Biography          string                 `json:"biography"`
	Birthday           string                 `json:"birthday,omitempty"`
	Deathday           string                 `json:"deathday,omitempty"`
	PlaceOfBirth       string                 `json:"place_of_birth,omitempty"`
	ProfilePath        string                 `json:"profile_path,omitempty"`
	Popularity         float64                `json:"popularity"`
	KnownForDepartment string                 `json:"known_for_department,omitempty"`
	ExternalIDs        map[string]interface{} `json:"external_ids,omitempty"`
	CombinedCredits    struct {
		Cast []PersonCredit `json:"cast"`
	} `json:"combined_credits"`
}
