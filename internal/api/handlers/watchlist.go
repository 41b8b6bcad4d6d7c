package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/cinevault/cinevault/internal/controllers"
	"github.com/cinevault/cinevault/internal/models"
)

// WatchlistHandler handles per-user watchlist requests
type WatchlistHandler struct {
	watchlistCtrl *controllers.WatchlistController
	logger        *logrus.Logger
}

// NewWatchlistHandler creates a new watchlist handler
func NewWatchlistHandler(watchlistCtrl *controllers.WatchlistController, logger *logrus.Logger) *WatchlistHandler {
	return &WatchlistHandler{
		watchlistCtrl: watchlistCtrl,
		logger:        logger,
	}
}

type watchlistAddRequest struct {
	UserID string                 `json:"userId"`
	Movie  *models.WatchlistEntry `json:"movie"`
}

// Add handles POST /api/watchlist
func (h *WatchlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req watchlistAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid data")
		return
	}

	if err := h.watchlistCtrl.Add(req.UserID, req.Movie); err != nil {
		if errors.Is(err, controllers.ErrInvalidEntry) {
			writeError(w, http.StatusBadRequest, "Invalid data")
			return
		}
		h.logger.WithError(err).Error("Failed to add watchlist entry")
		writeError(w, http.StatusInternalServerError, "Failed to add")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Remove handles DELETE /api/watchlist/{userID}/{externalID}
func (h *WatchlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	externalID, err := strconv.ParseInt(chi.URLParam(r, "externalID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid data")
		return
	}

	if err := h.watchlistCtrl.Remove(userID, externalID); err != nil {
		h.logger.WithError(err).Error("Failed to remove watchlist entry")
		writeError(w, http.StatusInternalServerError, "Failed to remove")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// List handles GET /api/watchlist/{userID}
func (h *WatchlistHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	entries, err := h.watchlistCtrl.List(userID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch watchlist")
		writeError(w, http.StatusInternalServerError, "Failed to fetch list")
		return
	}

	if entries == nil {
		entries = []*models.WatchlistEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// Contains handles GET /api/watchlist/{userID}/{externalID}
func (h *WatchlistHandler) Contains(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	externalID, err := strconv.ParseInt(chi.URLParam(r, "externalID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]bool{"saved": false})
		return
	}

	saved, err := h.watchlistCtrl.Contains(userID, externalID)
	if err != nil {
		// A failed check degrades to "not saved" rather than erroring.
		saved = false
	}

	writeJSON(w, http.StatusOK, map[string]bool{"saved": saved})
}
