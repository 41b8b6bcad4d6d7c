package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/cinevault/cinevault/internal/controllers"
	"github.com/cinevault/cinevault/internal/models"
)

func watchlistRouter(t *testing.T) (*chi.Mux, *models.Database) {
	t.Helper()
	db := testDatabase(t)
	handler := NewWatchlistHandler(controllers.NewWatchlistController(db, testLogger()), testLogger())

	router := chi.NewRouter()
	router.Post("/api/watchlist", handler.Add)
	router.Get("/api/watchlist/{userID}", handler.List)
	router.Get("/api/watchlist/{userID}/{externalID}", handler.Contains)
	router.Delete("/api/watchlist/{userID}/{externalID}", handler.Remove)
	return router, db
}

func TestWatchlistAddAndContains(t *testing.T) {
	router, _ := watchlistRouter(t)

	body := strings.NewReader(`{"userId": "user1", "movie": {"tmdbId": 603, "type": "movie", "title": "The Matrix"}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/watchlist", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var addResp map[string]bool
	if err := json.NewDecoder(rec.Body).Decode(&addResp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !addResp["success"] {
		t.Error("Expected success=true")
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/watchlist/user1/603", nil))
	var saved map[string]bool
	if err := json.NewDecoder(rec.Body).Decode(&saved); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !saved["saved"] {
		t.Error("Expected saved=true after add")
	}
}

func TestWatchlistAddMissingUser(t *testing.T) {
	router, _ := watchlistRouter(t)

	body := strings.NewReader(`{"movie": {"tmdbId": 603}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/watchlist", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error body: %v", err)
	}
	if resp["error"] != "Invalid data" {
		t.Errorf("Unexpected error message %q", resp["error"])
	}
}

func TestWatchlistListEmptyIsArray(t *testing.T) {
	router, _ := watchlistRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/watchlist/user1", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("Expected empty JSON array, got %q", body)
	}
}

func TestWatchlistRemove(t *testing.T) {
	router, db := watchlistRouter(t)

	entry := &models.WatchlistEntry{UserID: "user1", ExternalID: 603}
	if err := db.UpsertWatchlistEntry(entry); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/watchlist/user1/603", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/watchlist/user1/603", nil))
	var saved map[string]bool
	if err := json.NewDecoder(rec.Body).Decode(&saved); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if saved["saved"] {
		t.Error("Expected saved=false after remove")
	}
}

func TestWatchlistContainsBadIDDegrades(t *testing.T) {
	router, _ := watchlistRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/watchlist/user1/abc", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var saved map[string]bool
	if err := json.NewDecoder(rec.Body).Decode(&saved); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if saved["saved"] {
		t.Error("Expected saved=false for malformed id")
	}
}
