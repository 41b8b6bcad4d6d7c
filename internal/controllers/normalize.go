package controllers

import (
	"time"

	"github.com/cinevault/cinevault/internal/models"
	"github.com/cinevault/cinevault/internal/services/tmdb"
)

// Image size variants. Posters, cast photos and recommendation stubs use
// the display size; backdrops and screenshots use the original.
const (
	sizeDisplay  = "w500"
	sizeOriginal = "original"
)

const (
	maxCast            = 15
	maxWriters         = 3
	maxUpstreamReviews = 5
	maxRecommendations = 8
	maxScreenshots     = 6
)

// writerJobs are the crew jobs counted as writer credits.
var writerJobs = map[string]bool{
	"Screenplay": true,
	"Writer":     true,
	"Story":      true,
	"Creator":    true,
}

func imageURL(base, size, path string) string {
	if path == "" {
		return ""
	}
	return base + "/" + size + path
}

// releaseYear returns the first 4 characters of the date, or "N/A" when
// the upstream record carries no date at all.
func releaseYear(date string) string {
	if len(date) >= 4 {
		return date[:4]
	}
	return "N/A"
}

// selectTrailer prefers a YouTube video of type Trailer, falls back to any
// YouTube video, and returns the empty string when neither exists.
func selectTrailer(videos []tmdb.Video) string {
	for _, v := range videos {
		if v.Type == "Trailer" && v.Site == "YouTube" {
			return v.Key
		}
	}
	for _, v := range videos {
		if v.Site == "YouTube" {
			return v.Key
		}
	}
	return ""
}

// normalizeTitle maps an upstream detail payload onto the local record
// shape for the given media kind.
func normalizeTitle(d *tmdb.TitleDetails, kind models.MediaKind, imageBase string) *models.Title {
	title := &models.Title{
		ExternalID:       d.ID,
		Kind:             kind,
		LookupKey:        models.TitleLookupKey(d.ID, kind),
		Overview:         d.Overview,
		PosterURL:        imageURL(imageBase, sizeDisplay, d.PosterPath),
		BackdropURL:      imageURL(imageBase, sizeOriginal, d.BackdropPath),
		Rating:           d.VoteAverage,
		RatingCount:      d.VoteCount,
		Status:           d.Status,
		OriginalLanguage: d.OriginalLanguage,
		TrailerKey:       selectTrailer(d.Videos.Results),
		Providers:        d.WatchProviders.Results,
	}

	if kind.IsSeries() {
		title.Title = d.Name
		title.ReleaseDate = d.FirstAirDate
		if len(d.EpisodeRunTime) > 0 {
			title.Runtime = d.EpisodeRunTime[0]
		}
		// The upstream catalog does not model money meaningfully for tv.
		title.Budget = 0
		title.Revenue = 0
		title.Seasons = d.Seasons
		for _, creator := range d.CreatedBy {
			title.Directors = append(title.Directors, creator.Name)
		}
	} else {
		title.Title = d.Title
		title.ReleaseDate = d.ReleaseDate
		title.Runtime = d.Runtime
		title.Budget = d.Budget
		title.Revenue = d.Revenue
		for _, crew := range d.Credits.Crew {
			if crew.Job == "Director" {
				title.Directors = append(title.Directors, crew.Name)
			}
		}
	}
	title.ReleaseYear = releaseYear(title.ReleaseDate)

	for _, crew := range d.Credits.Crew {
		if writerJobs[crew.Job] {
			title.Writers = append(title.Writers, crew.Name)
			if len(title.Writers) == maxWriters {
				break
			}
		}
	}

	for _, genre := range d.Genres {
		title.Genres = append(title.Genres, genre.Name)
	}

	for i, member := range d.Credits.Cast {
		if i == maxCast {
			break
		}
		title.Cast = append(title.Cast, models.CastMember{
			ExternalID: member.ID,
			Name:       member.Name,
			Character:  member.Character,
			ProfileURL: imageURL(imageBase, sizeDisplay, member.ProfilePath),
		})
	}

	for _, rec := range d.Recommendations.Results {
		if rec.PosterPath == "" {
			continue
		}
		title.Recommendations = append(title.Recommendations, models.Recommendation{
			ExternalID: rec.ID,
			Title:      stubTitle(rec),
			PosterURL:  imageURL(imageBase, sizeDisplay, rec.PosterPath),
			Rating:     rec.VoteAverage,
			Kind:       kind,
		})
		if len(title.Recommendations) == maxRecommendations {
			break
		}
	}

	for i, img := range d.Images.Backdrops {
		if i == maxScreenshots {
			break
		}
		title.Screenshots = append(title.Screenshots, imageURL(imageBase, sizeOriginal, img.FilePath))
	}

	return title
}

// normalizeStub maps a list-endpoint stub onto a sparse local record.
// Used by the bulk reseed path; a later detail sync fills in the rest.
func normalizeStub(item tmdb.ListItem, kind models.MediaKind, imageBase string) *models.Title {
	date := item.ReleaseDate
	if date == "" {
		date = item.FirstAirDate
	}
	return &models.Title{
		ExternalID:  item.ID,
		Kind:        kind,
		LookupKey:   models.TitleLookupKey(item.ID, kind),
		Title:       stubTitle(item),
		Overview:    item.Overview,
		PosterURL:   imageURL(imageBase, sizeDisplay, item.PosterPath),
		BackdropURL: imageURL(imageBase, sizeOriginal, item.BackdropPath),
		ReleaseDate: date,
		ReleaseYear: releaseYear(date),
		Rating:      item.VoteAverage,
	}
}

func stubTitle(item tmdb.ListItem) string {
	if item.Title != "" {
		return item.Title
	}
	return item.Name
}

// mergeReviews concatenates local reviews with up to 5 upstream public
// reviews, local first. The merged list is never persisted.
func mergeReviews(local []models.Review, upstream []tmdb.PublicReview) []models.Review {
	merged := make([]models.Review, 0, len(local)+maxUpstreamReviews)
	merged = append(merged, local...)
	for i, r := range upstream {
		if i == maxUpstreamReviews {
			break
		}
		createdAt, _ := time.Parse(time.RFC3339, r.CreatedAt)
		merged = append(merged, models.Review{
			Author:    r.Author,
			Rating:    r.AuthorDetails.Rating,
			Content:   r.Content,
			CreatedAt: createdAt,
		})
	}
	return merged
}
