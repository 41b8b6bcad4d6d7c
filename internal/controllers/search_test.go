package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cinevault/cinevault/internal/config"
	"github.com/cinevault/cinevault/internal/services/tmdb"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testClient(t *testing.T, handler http.Handler) *tmdb.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		TMDBAPIKey:      "test-key",
		TMDBBaseURL:     srv.URL,
		ImageBaseURL:    testImageBase,
		UpstreamTimeout: 5 * time.Second,
	}
	client, err := tmdb.NewClient(cfg, testLogger())
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	return client
}

func TestSearchEmptyQueryShortCircuit(t *testing.T) {
	var calls int64
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		json.NewEncoder(w).Encode(tmdb.ListPage{})
	}))

	ctrl := NewSearchController(client, testLogger())
	results, err := ctrl.Search(context.Background(), "")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected empty result list, got %d", len(results))
	}
	if atomic.LoadInt64(&calls) != 0 {
		t.Errorf("Expected no upstream call for empty query, got %d", calls)
	}
}

func TestSearchFiltersAndTruncates(t *testing.T) {
	page := tmdb.ListPage{}
	// A person result and a posterless movie, both of which must be
	// dropped, followed by 15 valid results.
	page.Results = append(page.Results,
		tmdb.ListItem{ID: 1, MediaType: "person", Name: "Someone", PosterPath: "/p.jpg"},
		tmdb.ListItem{ID: 2, MediaType: "movie", Title: "No Poster"},
	)
	for i := int64(10); i < 25; i++ {
		page.Results = append(page.Results, tmdb.ListItem{
			ID: i, MediaType: "movie", Title: "Valid", PosterPath: "/p.jpg",
		})
	}

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/multi" {
			t.Errorf("Unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("query") != "matrix" {
			t.Errorf("Unexpected query %q", r.URL.Query().Get("query"))
		}
		json.NewEncoder(w).Encode(page)
	}))

	ctrl := NewSearchController(client, testLogger())
	results, err := ctrl.Search(context.Background(), "matrix")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(results) != 10 {
		t.Fatalf("Expected results capped at 10, got %d", len(results))
	}
	// Upstream ordering preserved: first valid item is id 10
	if results[0].ID != 10 {
		t.Errorf("Expected upstream order preserved, first id %d", results[0].ID)
	}
	for _, item := range results {
		if item.PosterPath == "" || item.MediaType == "person" {
			t.Errorf("Invalid item passed the filter: %+v", item)
		}
	}
}
