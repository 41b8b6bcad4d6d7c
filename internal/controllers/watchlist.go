package controllers

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/cinevault/cinevault/internal/models"
)

// ErrInvalidEntry is returned when a watchlist add is missing its user or
// title identity.
var ErrInvalidEntry = errors.New("invalid watchlist data")

// WatchlistController manages per-user saved titles. Entries carry a
// point-in-time snapshot of display fields and belong to the referencing
// user only.
type WatchlistController struct {
	db     *models.Database
	logger *logrus.Logger
}

// NewWatchlistController creates a new watchlist controller
func NewWatchlistController(db *models.Database, logger *logrus.Logger) *WatchlistController {
	return &WatchlistController{
		db:     db,
		logger: logger,
	}
}

// Add saves an entry for the user. Re-adding the same title replaces the
// stored snapshot instead of erroring or duplicating.
func (c *WatchlistController) Add(userID string, entry *models.WatchlistEntry) error {
	if userID == "" || entry == nil || entry.ExternalID == 0 {
		return ErrInvalidEntry
	}

	entry.UserID = userID
	if err := c.db.UpsertWatchlistEntry(entry); err != nil {
		return err
	}

	c.logger.WithFields(logrus.Fields{
		"user_id":     userID,
		"external_id": entry.ExternalID,
	}).Info("Saved to watchlist")
	return nil
}

// Remove deletes an entry. Removing an absent entry succeeds.
func (c *WatchlistController) Remove(userID string, externalID int64) error {
	return c.db.DeleteWatchlistEntry(userID, externalID)
}

// List returns the user's entries, newest first.
func (c *WatchlistController) List(userID string) ([]*models.WatchlistEntry, error) {
	return c.db.GetWatchlist(userID)
}

// Contains reports whether the user has saved the title.
func (c *WatchlistController) Contains(userID string, externalID int64) (bool, error) {
	return c.db.WatchlistContains(userID, externalID)
}
