package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/cinevault/cinevault/internal/config"
	"github.com/cinevault/cinevault/internal/models"
)

func TestReseed(t *testing.T) {
	pages := map[string]map[string]interface{}{
		"/discover/tv": pageOf(
			item(100, "tv", "Anime Show", "/p.jpg", "/b.jpg"),
			item(200, "tv", "Posterless", "", "/b.jpg"),
		),
		"/movie/popular": pageOf(
			item(300, "movie", "Big Movie", "/p.jpg", "/b.jpg"),
			item(301, "movie", "No Backdrop", "/p.jpg", ""),
		),
		"/tv/popular": pageOf(
			// Duplicate of the anime id: the anime record must win
			item(100, "tv", "Anime Show", "/p.jpg", "/b.jpg"),
			item(400, "tv", "Drama Show", "/p.jpg", "/b.jpg"),
		),
	}

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		if r.URL.Path == "/discover/tv" && r.URL.Query().Get("with_genres") != "16" {
			t.Errorf("Expected anime genre filter, got %q", r.URL.Query().Get("with_genres"))
		}
		json.NewEncoder(w).Encode(page)
	}))

	db, err := models.NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// A stale record that the reseed must replace
	stale := &models.Title{ExternalID: 999, Kind: models.KindMovie, LookupKey: models.TitleLookupKey(999, models.KindMovie)}
	if err := db.InsertTitle(stale); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	cfg := &config.Config{ImageBaseURL: testImageBase, SeedPages: 1}
	ctrl := NewSeedController(db, client, cfg, testLogger())
	if err := ctrl.Reseed(context.Background()); err != nil {
		t.Fatalf("Reseed failed: %v", err)
	}

	all, err := db.GetAllTitles()
	if err != nil {
		t.Fatalf("GetAllTitles failed: %v", err)
	}

	byExternal := make(map[int64]*models.Title, len(all))
	for _, title := range all {
		byExternal[title.ExternalID] = title
	}

	if len(all) != 3 {
		t.Fatalf("Expected 3 titles after reseed, got %d", len(all))
	}
	if _, ok := byExternal[999]; ok {
		t.Error("Expected stale record cleared by reseed")
	}
	if _, ok := byExternal[200]; ok {
		t.Error("Expected posterless stub dropped")
	}
	if _, ok := byExternal[301]; ok {
		t.Error("Expected backdropless stub dropped")
	}
	if got := byExternal[100]; got == nil || got.Kind != models.KindAnime {
		t.Errorf("Expected duplicate id kept as anime, got %+v", got)
	}
	if got := byExternal[300]; got == nil || got.Kind != models.KindMovie {
		t.Errorf("Expected movie stub stored, got %+v", got)
	}
}

func pageOf(items ...map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"page":        1,
		"results":     items,
		"total_pages": 1,
	}
}

func item(id int64, mediaType, name, poster, backdrop string) map[string]interface{} {
	entry := map[string]interface{}{
		"id":           id,
		"vote_average": 7.0,
	}
	if mediaType == "movie" {
		entry["title"] = name
		entry["release_date"] = "2020-01-01"
	} else {
		entry["name"] = name
		entry["first_air_date"] = "2020-01-01"
	}
	if poster != "" {
		entry["poster_path"] = poster
	}
	if backdrop != "" {
		entry["backdrop_path"] = backdrop
	}
	return entry
}
