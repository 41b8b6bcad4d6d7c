package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/cinevault/cinevault/internal/controllers"
)

// ReviewHandler handles review submissions
type ReviewHandler struct {
	reviewCtrl *controllers.ReviewController
	logger     *logrus.Logger
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewCtrl *controllers.ReviewController, logger *logrus.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewCtrl: reviewCtrl,
		logger:     logger,
	}
}

type reviewRequest struct {
	Author  string      `json:"author"`
	Rating  interface{} `json:"rating"` // clients send numbers or numeric strings
	Content string      `json:"content"`
	Type    string      `json:"type"`
}

// Submit handles POST /api/reviews/{externalID}
func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	externalID, err := strconv.ParseInt(chi.URLParam(r, "externalID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid title id")
		return
	}

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	reviews, err := h.reviewCtrl.Submit(externalID, req.Type, req.Author, coerceRating(req.Rating), req.Content)
	if err != nil {
		if errors.Is(err, controllers.ErrTitleNotFound) {
			writeError(w, http.StatusNotFound, "Movie record not found")
			return
		}
		h.logger.WithError(err).WithField("external_id", externalID).Error("Failed to post review")
		writeError(w, http.StatusInternalServerError, "Failed to post review")
		return
	}

	writeJSON(w, http.StatusOK, reviews)
}

// coerceRating accepts the rating as a JSON number or a numeric string.
// Out-of-range values are stored as-is; the range is not validated.
func coerceRating(v interface{}) float64 {
	switch rating := v.(type) {
	case float64:
		return rating
	case string:
		parsed, err := strconv.ParseFloat(rating, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
