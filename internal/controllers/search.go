package controllers

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cinevault/cinevault/internal/services/tmdb"
)

const maxSearchResults = 10

// SearchController forwards free-text queries to the upstream multi
// search and trims the results for display.
type SearchController struct {
	client *tmdb.Client
	logger *logrus.Logger
}

// NewSearchController creates a new search controller
func NewSearchController(client *tmdb.Client, logger *logrus.Logger) *SearchController {
	return &SearchController{
		client: client,
		logger: logger,
	}
}

// Search returns up to 10 movie/tv results that have a poster, in
// upstream order. An empty query returns an empty list without an
// upstream call.
func (c *SearchController) Search(ctx context.Context, query string) ([]tmdb.ListItem, error) {
	results := []tmdb.ListItem{}
	if query == "" {
		return results, nil
	}

	page, err := c.client.SearchMulti(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	for _, item := range page.Results {
		if item.MediaType != "movie" && item.MediaType != "tv" {
			continue
		}
		if item.PosterPath == "" {
			continue
		}
		results = append(results, item)
		if len(results) == maxSearchResults {
			break
		}
	}

	c.logger.WithFields(logrus.Fields{
		"query": query,
		"count": len(results),
	}).Debug("Search completed")

	return results, nil
}
