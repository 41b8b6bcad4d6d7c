package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/cinevault/cinevault/internal/controllers"
	"github.com/cinevault/cinevault/internal/models"
)

// TitleHandler handles title list and lookup requests
type TitleHandler struct {
	catalogCtrl *controllers.CatalogController
	logger      *logrus.Logger
}

// NewTitleHandler creates a new title handler
func NewTitleHandler(catalogCtrl *controllers.CatalogController, logger *logrus.Logger) *TitleHandler {
	return &TitleHandler{
		catalogCtrl: catalogCtrl,
		logger:      logger,
	}
}

// List handles GET /api/movies
func (h *TitleHandler) List(w http.ResponseWriter, r *http.Request) {
	titles, err := h.catalogCtrl.ListTitles(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list titles")
		writeError(w, http.StatusInternalServerError, "Failed to fetch titles")
		return
	}

	if titles == nil {
		titles = []*models.Title{}
	}
	writeJSON(w, http.StatusOK, titles)
}

// Get handles GET /api/movies/{id}
func (h *TitleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	kindHint := r.URL.Query().Get("type")

	title, err := h.catalogCtrl.GetTitle(r.Context(), id, kindHint)
	if err != nil {
		if errors.Is(err, controllers.ErrTitleNotFound) {
			writeError(w, http.StatusNotFound, "Title not found")
			return
		}
		h.logger.WithError(err).WithField("id", id).Error("Title sync failed")
		writeError(w, http.StatusInternalServerError, "Sync failed")
		return
	}

	writeJSON(w, http.StatusOK, title)
}
