package controllers

import (
	"context"
	"net/http"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cinevault/cinevault/internal/cache"
	"github.com/cinevault/cinevault/internal/config"
	"github.com/cinevault/cinevault/internal/models"
)

const movieDetailJSON = `{
	"id": 603,
	"title": "The Matrix",
	"overview": "A computer hacker learns about the true nature of reality.",
	"poster_path": "/matrix.jpg",
	"backdrop_path": "/matrix-bg.jpg",
	"release_date": "1999-03-30",
	"vote_average": 8.1,
	"vote_count": 21000,
	"runtime": 136,
	"budget": 63000000,
	"revenue": 463517383,
	"status": "Released",
	"original_language": "en",
	"genres": [{"id": 28, "name": "Action"}, {"id": 878, "name": "Science Fiction"}],
	"credits": {
		"cast": [{"id": 6384, "name": "Keanu Reeves", "character": "Neo", "profile_path": "/keanu.jpg"}],
		"crew": [
			{"name": "Lana Wachowski", "job": "Director"},
			{"name": "Lilly Wachowski", "job": "Director"},
			{"name": "Lana Wachowski", "job": "Screenplay"}
		]
	},
	"videos": {"results": [{"key": "vKQi3bBA1y8", "site": "YouTube", "type": "Trailer"}]},
	"images": {"backdrops": [{"file_path": "/shot1.jpg"}, {"file_path": "/shot2.jpg"}]},
	"reviews": {"results": [{"author": "critic", "content": "Groundbreaking.", "created_at": "2019-06-01T00:00:00Z", "author_details": {"rating": 9}}]},
	"recommendations": {"results": [{"id": 604, "title": "Reloaded", "poster_path": "/reloaded.jpg", "vote_average": 7.0}]},
	"watch/providers": {"results": {"US": {"link": "https://example.com"}}}
}`

type catalogFixture struct {
	ctrl       *CatalogController
	reviewCtrl *ReviewController
	db         *models.Database
	calls      *int64
}

func newCatalogFixture(t *testing.T, respCache cache.Cache) *catalogFixture {
	t.Helper()

	var calls int64
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/603" {
			http.NotFound(w, r)
			return
		}
		atomic.AddInt64(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(movieDetailJSON))
	}))

	db, err := models.NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{ImageBaseURL: testImageBase}
	return &catalogFixture{
		ctrl:       NewCatalogController(db, client, respCache, cfg, testLogger()),
		reviewCtrl: NewReviewController(db, respCache, testLogger()),
		db:         db,
		calls:      &calls,
	}
}

func TestGetTitleSyncsAndPersists(t *testing.T) {
	f := newCatalogFixture(t, cache.Noop{})

	title, err := f.ctrl.GetTitle(context.Background(), "603", "movie")
	if err != nil {
		t.Fatalf("GetTitle failed: %v", err)
	}

	if title.Title != "The Matrix" {
		t.Errorf("Unexpected title %q", title.Title)
	}
	if title.ReleaseYear != "1999" {
		t.Errorf("Unexpected release year %q", title.ReleaseYear)
	}
	if title.TrailerKey != "vKQi3bBA1y8" {
		t.Errorf("Unexpected trailer key %q", title.TrailerKey)
	}
	if len(title.Directors) != 2 {
		t.Errorf("Unexpected directors %v", title.Directors)
	}
	if title.ID == "" {
		t.Error("Expected internal id assigned")
	}
	// Upstream public review merged into the response
	if len(title.Reviews) != 1 || title.Reviews[0].Author != "critic" {
		t.Errorf("Expected merged upstream review, got %v", title.Reviews)
	}

	// Persisted record must not contain the upstream reviews
	stored, err := f.db.GetTitleByExternalID(603, models.KindMovie)
	if err != nil {
		t.Fatalf("Stored lookup failed: %v", err)
	}
	if len(stored.Reviews) != 0 {
		t.Errorf("Upstream reviews must not be persisted, got %v", stored.Reviews)
	}
}

func TestGetTitleByInternalID(t *testing.T) {
	f := newCatalogFixture(t, cache.Noop{})

	first, err := f.ctrl.GetTitle(context.Background(), "603", "movie")
	if err != nil {
		t.Fatalf("GetTitle failed: %v", err)
	}

	// Lookup by internal id with no kind hint resolves through the store
	second, err := f.ctrl.GetTitle(context.Background(), first.ID, "")
	if err != nil {
		t.Fatalf("GetTitle by internal id failed: %v", err)
	}
	if second.ExternalID != 603 || second.Kind != models.KindMovie {
		t.Errorf("Internal id lookup resolved wrong record: %+v", second)
	}
	if second.ID != first.ID {
		t.Errorf("Internal id changed: %q vs %q", first.ID, second.ID)
	}
}

func TestGetTitleRefetchPreservesReviews(t *testing.T) {
	f := newCatalogFixture(t, cache.Noop{})
	ctx := context.Background()

	if _, err := f.ctrl.GetTitle(ctx, "603", "movie"); err != nil {
		t.Fatalf("GetTitle failed: %v", err)
	}
	if _, err := f.reviewCtrl.Submit(603, "movie", "", 9, "Great"); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	title, err := f.ctrl.GetTitle(ctx, "603", "movie")
	if err != nil {
		t.Fatalf("GetTitle failed: %v", err)
	}

	// Local review first, upstream public review after
	if len(title.Reviews) != 2 {
		t.Fatalf("Expected 2 merged reviews, got %d", len(title.Reviews))
	}
	if title.Reviews[0].Author != "Anonymous" || title.Reviews[0].Rating != 9 || title.Reviews[0].Content != "Great" {
		t.Errorf("Unexpected local review %+v", title.Reviews[0])
	}
	if title.Reviews[0].CreatedAt.IsZero() {
		t.Error("Expected server-assigned review timestamp")
	}
	if title.Reviews[1].Author != "critic" {
		t.Errorf("Expected upstream review after local, got %+v", title.Reviews[1])
	}
}

func TestGetTitleCacheAndInvalidation(t *testing.T) {
	f := newCatalogFixture(t, cache.NewTTLCache(time.Hour))
	ctx := context.Background()

	if _, err := f.ctrl.GetTitle(ctx, "603", "movie"); err != nil {
		t.Fatalf("GetTitle failed: %v", err)
	}
	if got := atomic.LoadInt64(f.calls); got != 1 {
		t.Fatalf("Expected 1 upstream call, got %d", got)
	}

	// Second read is served from the cache
	if _, err := f.ctrl.GetTitle(ctx, "603", "movie"); err != nil {
		t.Fatalf("GetTitle failed: %v", err)
	}
	if got := atomic.LoadInt64(f.calls); got != 1 {
		t.Fatalf("Expected cached read, upstream calls = %d", got)
	}

	// A review submission evicts the entry, so the next read must not
	// see the pre-submission response.
	if _, err := f.reviewCtrl.Submit(603, "movie", "bob", 8, "Nice"); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	title, err := f.ctrl.GetTitle(ctx, "603", "movie")
	if err != nil {
		t.Fatalf("GetTitle failed: %v", err)
	}
	if got := atomic.LoadInt64(f.calls); got != 2 {
		t.Errorf("Expected re-fetch after invalidation, upstream calls = %d", got)
	}
	if len(title.Reviews) == 0 || title.Reviews[0].Author != "bob" {
		t.Errorf("Expected fresh response to include the new review, got %v", title.Reviews)
	}
}

func TestGetTitleNotFound(t *testing.T) {
	f := newCatalogFixture(t, cache.Noop{})

	_, err := f.ctrl.GetTitle(context.Background(), "999", "movie")
	if err != ErrTitleNotFound {
		t.Errorf("Expected ErrTitleNotFound, got %v", err)
	}
}

func TestListTitlesCached(t *testing.T) {
	f := newCatalogFixture(t, cache.NewTTLCache(time.Hour))
	ctx := context.Background()

	if _, err := f.ctrl.GetTitle(ctx, "603", "movie"); err != nil {
		t.Fatalf("GetTitle failed: %v", err)
	}

	titles, err := f.ctrl.ListTitles(ctx)
	if err != nil {
		t.Fatalf("ListTitles failed: %v", err)
	}
	if len(titles) != 1 {
		t.Fatalf("Expected 1 title, got %d", len(titles))
	}

	// Served from cache on the second call even if the store changes
	// underneath: the all-titles key is not invalidated by review writes.
	again, err := f.ctrl.ListTitles(ctx)
	if err != nil {
		t.Fatalf("ListTitles failed: %v", err)
	}
	if len(again) != 1 {
		t.Errorf("Expected cached list of 1, got %d", len(again))
	}
}
