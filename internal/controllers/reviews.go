package controllers

import (
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cinevault/cinevault/internal/cache"
	"github.com/cinevault/cinevault/internal/models"
)

// ReviewController appends user reviews onto title records and keeps the
// response cache honest about them.
type ReviewController struct {
	db     *models.Database
	cache  cache.Cache
	logger *logrus.Logger
}

// NewReviewController creates a new review controller
func NewReviewController(db *models.Database, respCache cache.Cache, logger *logrus.Logger) *ReviewController {
	return &ReviewController{
		db:     db,
		cache:  respCache,
		logger: logger,
	}
}

// Submit appends a review to the title matching (externalID, kind) and
// returns the updated review list. A blank author is stored as
// "Anonymous"; the creation time is stamped server-side. The cache entry
// for the title is evicted so the next read re-merges.
func (c *ReviewController) Submit(externalID int64, kindHint string, author string, rating float64, content string) ([]models.Review, error) {
	if strings.TrimSpace(author) == "" {
		author = "Anonymous"
	}

	review := models.Review{
		Author:    author,
		Rating:    rating,
		Content:   content,
		CreatedAt: time.Now(),
	}

	kind := models.ParseKind(kindHint)
	title, err := c.db.AppendReview(externalID, kind, review)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}

	// Evict using the stored record's kind: the append may have landed on
	// a record found by the external-id fallback.
	c.cache.Delete(cache.TitleKey(title.ExternalID, title.Kind))

	c.logger.WithFields(logrus.Fields{
		"external_id": title.ExternalID,
		"kind":        title.Kind,
		"reviews":     len(title.Reviews),
	}).Info("Review submitted")

	return title.Reviews, nil
}
