package controllers

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cinevault/cinevault/internal/cache"
	"github.com/cinevault/cinevault/internal/config"
	"github.com/cinevault/cinevault/internal/models"
	"github.com/cinevault/cinevault/internal/services/tmdb"
)

// ErrTitleNotFound is returned when neither the local store nor the
// upstream catalog knows the requested title.
var ErrTitleNotFound = errors.New("title not found")

// ErrSyncFailed is returned when a title could not be synced from the
// upstream catalog. There is no stale-local fallback: if upstream is
// unreachable the lookup fails even when a local copy exists.
var ErrSyncFailed = errors.New("catalog sync failed")

// ErrTrailerNotFound is returned when a title has no usable trailer.
var ErrTrailerNotFound = errors.New("no trailer available")

// CatalogController is the read-through proxy in front of the upstream
// catalog. Local storage is a write-back record for reviews and internal
// ids; descriptive metadata is always refreshed from upstream on a cache
// miss.
type CatalogController struct {
	db        *models.Database
	client    *tmdb.Client
	cache     cache.Cache
	imageBase string
	logger    *logrus.Logger
}

// NewCatalogController creates a new catalog controller
func NewCatalogController(db *models.Database, client *tmdb.Client, respCache cache.Cache, cfg *config.Config, logger *logrus.Logger) *CatalogController {
	return &CatalogController{
		db:        db,
		client:    client,
		cache:     respCache,
		imageBase: cfg.ImageBaseURL,
		logger:    logger,
	}
}

// GetTitle resolves id (internal UUID or external catalog id), syncs the
// title from upstream and returns the stored record with local and
// upstream reviews merged, local first.
func (c *CatalogController) GetTitle(ctx context.Context, id string, kindHint string) (*models.Title, error) {
	var local *models.Title

	// An input in internal-id format is tried against the local store
	// first. External catalog ids are plain integers, so the two id
	// spaces cannot collide.
	if _, err := uuid.Parse(id); err == nil {
		local, _ = c.db.GetTitleByID(id)
	}

	var externalID int64
	if local != nil {
		externalID = local.ExternalID
	} else {
		parsed, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return nil, ErrTitleNotFound
		}
		externalID = parsed
	}

	var kind models.MediaKind
	switch {
	case kindHint != "":
		kind = models.ParseKind(kindHint)
	case local != nil:
		kind = local.Kind
	default:
		// No hint and no internal-id hit: a stored copy still decides
		// the kind, otherwise movie is assumed.
		if stored, err := c.db.GetTitleByExternalIDAny(externalID); err == nil {
			kind = stored.Kind
		} else {
			kind = models.KindMovie
		}
	}

	key := cache.TitleKey(externalID, kind)
	if cached, found := c.cache.Get(key); found {
		if title, ok := cached.(*models.Title); ok {
			return title, nil
		}
	}

	details, err := c.client.Details(ctx, kind.Endpoint(), externalID)
	if err != nil {
		if errors.Is(err, tmdb.ErrNotFound) {
			return nil, ErrTitleNotFound
		}
		c.logger.WithError(err).WithFields(logrus.Fields{
			"external_id": externalID,
			"kind":        kind,
		}).Error("Failed to fetch title from upstream")
		return nil, fmt.Errorf("%w: %v", ErrSyncFailed, err)
	}

	stored, err := c.db.UpsertTitle(normalizeTitle(details, kind, c.imageBase))
	if err != nil {
		c.logger.WithError(err).Error("Failed to upsert title")
		return nil, fmt.Errorf("%w: %v", ErrSyncFailed, err)
	}

	response := *stored
	response.Reviews = mergeReviews(stored.Reviews, details.Reviews.Results)

	c.cache.Set(key, &response)
	return &response, nil
}

// ListTitles returns every locally known title, served from the response
// cache when possible.
func (c *CatalogController) ListTitles(ctx context.Context) ([]*models.Title, error) {
	if cached, found := c.cache.Get(cache.AllTitlesKey); found {
		if titles, ok := cached.([]*models.Title); ok {
			return titles, nil
		}
	}

	titles, err := c.db.GetAllTitles()
	if err != nil {
		return nil, fmt.Errorf("failed to list titles: %w", err)
	}

	c.cache.Set(cache.AllTitlesKey, titles)
	return titles, nil
}

// Trailer returns the preferred trailer key for a title.
func (c *CatalogController) Trailer(ctx context.Context, externalID int64, kindHint string) (string, error) {
	kind := models.ParseKind(kindHint)
	videos, err := c.client.Videos(ctx, kind.Endpoint(), externalID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch videos: %w", err)
	}

	key := selectTrailer(videos.Results)
	if key == "" {
		return "", ErrTrailerNotFound
	}
	return key, nil
}

// PersonView is a person detail payload with a known_for list attached.
type PersonView struct {
	*tmdb.PersonDetails
	KnownFor []tmdb.PersonCredit `json:"known_for"`
}

const maxKnownFor = 20

// Person returns a person's details with their best-known credits:
// credits with a poster, most popular first, capped at 20.
func (c *CatalogController) Person(ctx context.Context, personID int64) (*PersonView, error) {
	person, err := c.client.Person(ctx, personID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch person: %w", err)
	}

	knownFor := make([]tmdb.PersonCredit, 0, maxKnownFor)
	for _, credit := range person.CombinedCredits.Cast {
		if credit.PosterPath != "" {
			knownFor = append(knownFor, credit)
		}
	}
	sort.SliceStable(knownFor, func(i, j int) bool {
		return knownFor[i].Popularity > knownFor[j].Popularity
	})
	if len(knownFor) > maxKnownFor {
		knownFor = knownFor[:maxKnownFor]
	}

	return &PersonView{PersonDetails: person, KnownFor: knownFor}, nil
}

// Season returns one season of a series, passed through untyped.
func (c *CatalogController) Season(ctx context.Context, seriesID int64, season int) (map[string]interface{}, error) {
	payload, err := c.client.Season(ctx, seriesID, season)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch season: %w", err)
	}
	return payload, nil
}

// Episode returns one episode with the show's streaming availability map
// merged in under "providers".
func (c *CatalogController) Episode(ctx context.Context, seriesID int64, season, episode int) (map[string]interface{}, error) {
	payload, err := c.client.Episode(ctx, seriesID, season, episode)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch episode: %w", err)
	}

	providers, err := c.client.WatchProviders(ctx, seriesID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch providers: %w", err)
	}

	payload["providers"] = providers.Results
	return payload, nil
}
