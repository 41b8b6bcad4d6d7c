package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/cinevault/cinevault/internal/controllers"
)

// DiscoverHandler handles the upstream passthrough endpoints: trailers,
// people, seasons and episodes.
type DiscoverHandler struct {
	catalogCtrl *controllers.CatalogController
	logger      *logrus.Logger
}

// NewDiscoverHandler creates a new discover handler
func NewDiscoverHandler(catalogCtrl *controllers.CatalogController, logger *logrus.Logger) *DiscoverHandler {
	return &DiscoverHandler{
		catalogCtrl: catalogCtrl,
		logger:      logger,
	}
}

// Trailer handles GET /api/trailer/{externalID}
func (h *DiscoverHandler) Trailer(w http.ResponseWriter, r *http.Request) {
	externalID, err := strconv.ParseInt(chi.URLParam(r, "externalID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid title id")
		return
	}

	key, err := h.catalogCtrl.Trailer(r.Context(), externalID, r.URL.Query().Get("type"))
	if err != nil {
		if errors.Is(err, controllers.ErrTrailerNotFound) {
			writeError(w, http.StatusNotFound, "No trailer")
			return
		}
		h.logger.WithError(err).WithField("external_id", externalID).Error("Trailer lookup failed")
		writeError(w, http.StatusNotFound, "Trailer unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"key": key})
}

// Person handles GET /api/person/{id}
func (h *DiscoverHandler) Person(w http.ResponseWriter, r *http.Request) {
	personID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid person id")
		return
	}

	person, err := h.catalogCtrl.Person(r.Context(), personID)
	if err != nil {
		h.logger.WithError(err).WithField("person_id", personID).Error("Person lookup failed")
		writeError(w, http.StatusInternalServerError, "Failed to fetch person")
		return
	}

	writeJSON(w, http.StatusOK, person)
}

// Season handles GET /api/tv/{id}/season/{season}
func (h *DiscoverHandler) Season(w http.ResponseWriter, r *http.Request) {
	seriesID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid series id")
		return
	}
	season, err := strconv.Atoi(chi.URLParam(r, "season"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid season number")
		return
	}

	payload, err := h.catalogCtrl.Season(r.Context(), seriesID, season)
	if err != nil {
		h.logger.WithError(err).WithField("series_id", seriesID).Error("Season lookup failed")
		writeError(w, http.StatusInternalServerError, "Failed to fetch season")
		return
	}

	writeJSON(w, http.StatusOK, payload)
}

// Episode handles GET /api/tv/{id}/season/{season}/episode/{episode}
func (h *DiscoverHandler) Episode(w http.ResponseWriter, r *http.Request) {
	seriesID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid series id")
		return
	}
	season, err := strconv.Atoi(chi.URLParam(r, "season"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid season number")
		return
	}
	episode, err := strconv.Atoi(chi.URLParam(r, "episode"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid episode number")
		return
	}

	payload, err := h.catalogCtrl.Episode(r.Context(), seriesID, season, episode)
	if err != nil {
		h.logger.WithError(err).WithField("series_id", seriesID).Error("Episode lookup failed")
		writeError(w, http.StatusInternalServerError, "Failed to fetch episode")
		return
	}

	writeJSON(w, http.StatusOK, payload)
}
