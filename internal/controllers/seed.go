package controllers

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/cinevault/cinevault/internal/config"
	"github.com/cinevault/cinevault/internal/models"
	"github.com/cinevault/cinevault/internal/services/tmdb"
)

// seedSource is one upstream list the reseed pulls from. Anime comes
// first so it wins the dedupe over generic tv.
type seedSource struct {
	name  string
	path  string
	extra url.Values
	kind  models.MediaKind
}

// SeedController rebuilds the local title catalog from the upstream
// popular/discover lists. This is the only path that deletes titles.
type SeedController struct {
	db        *models.Database
	client    *tmdb.Client
	imageBase string
	pages     int
	logger    *logrus.Logger
}

// NewSeedController creates a new seed controller
func NewSeedController(db *models.Database, client *tmdb.Client, cfg *config.Config, logger *logrus.Logger) *SeedController {
	return &SeedController{
		db:        db,
		client:    client,
		imageBase: cfg.ImageBaseURL,
		pages:     cfg.SeedPages,
		logger:    logger,
	}
}

// Reseed fetches the configured number of pages per category, drops stubs
// without both a poster and a backdrop, dedupes by external id keeping
// the first occurrence, then replaces the stored catalog.
func (c *SeedController) Reseed(ctx context.Context) error {
	sources := []seedSource{
		{
			name: "anime",
			path: "/discover/tv",
			extra: url.Values{
				"with_genres":            {"16"},
				"with_original_language": {"ja"},
			},
			kind: models.KindAnime,
		},
		{name: "movies", path: "/movie/popular", kind: models.KindMovie},
		{name: "tv", path: "/tv/popular", kind: models.KindTV},
	}

	var collected []*models.Title
	for _, source := range sources {
		titles, err := c.fetchSource(ctx, source)
		if err != nil {
			return fmt.Errorf("failed to fetch %s: %w", source.name, err)
		}
		collected = append(collected, titles...)
	}

	seen := make(map[int64]bool, len(collected))
	deduped := collected[:0]
	for _, title := range collected {
		if seen[title.ExternalID] {
			continue
		}
		seen[title.ExternalID] = true
		deduped = append(deduped, title)
	}

	if err := c.db.DeleteAllTitles(); err != nil {
		return fmt.Errorf("failed to clear titles: %w", err)
	}

	for _, title := range deduped {
		if err := c.db.InsertTitle(title); err != nil {
			return fmt.Errorf("failed to insert title %d: %w", title.ExternalID, err)
		}
	}

	c.logger.WithField("count", len(deduped)).Info("Catalog reseeded")
	return nil
}

func (c *SeedController) fetchSource(ctx context.Context, source seedSource) ([]*models.Title, error) {
	var titles []*models.Title
	for page := 1; page <= c.pages; page++ {
		c.logger.WithFields(logrus.Fields{
			"source": source.name,
			"page":   page,
		}).Debug("Fetching seed page")

		result, err := c.client.List(ctx, source.path, source.extra, page)
		if err != nil {
			return nil, err
		}

		for _, item := range result.Results {
			title := normalizeStub(item, source.kind, c.imageBase)
			if title.PosterURL == "" || title.BackdropURL == "" {
				continue
			}
			titles = append(titles, title)
		}
	}

	c.logger.WithFields(logrus.Fields{
		"source": source.name,
		"count":  len(titles),
	}).Info("Seed source fetched")
	return titles, nil
}
