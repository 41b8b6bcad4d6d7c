package cache

import (
	"testing"
	"time"

	"github.com/cinevault/cinevault/internal/models"
)

func TestTTLCacheRoundTrip(t *testing.T) {
	c := NewTTLCache(time.Minute)

	c.Set("key", "value")
	got, found := c.Get("key")
	if !found || got != "value" {
		t.Errorf("Expected hit with value, got %v found=%v", got, found)
	}

	c.Delete("key")
	if _, found := c.Get("key"); found {
		t.Error("Expected miss after delete")
	}
}

func TestTTLCacheExpiry(t *testing.T) {
	c := NewTTLCache(20 * time.Millisecond)

	c.Set("key", "value")
	time.Sleep(50 * time.Millisecond)

	if _, found := c.Get("key"); found {
		t.Error("Expected expired entry to never be returned")
	}
}

func TestNoopAlwaysMisses(t *testing.T) {
	var c Cache = Noop{}

	c.Set("key", "value")
	if _, found := c.Get("key"); found {
		t.Error("Noop cache must always miss")
	}
	c.Delete("key") // must not panic
}

func TestTitleKey(t *testing.T) {
	if key := TitleKey(603, models.KindMovie); key != "title:603:movie" {
		t.Errorf("Unexpected key %q", key)
	}
	if key := TitleKey(603, models.KindTV); key == TitleKey(603, models.KindMovie) {
		t.Error("Keys for different kinds must not collide")
	}
}
