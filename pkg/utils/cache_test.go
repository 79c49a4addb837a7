package utils

import (
	"testing"
	"time"
)

func TestTTLCache_Expiry(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewTTLCache[string](time.Minute).WithClock(func() time.Time { return now })

	c.Set("home", "v1")
	if v, ok := c.Get("home"); !ok || v != "v1" {
		t.Fatalf("Get() = %q, %v, want v1, true", v, ok)
	}

	now = now.Add(61 * time.Second)
	if _, ok := c.Get("home"); ok {
		t.Error("过期后仍能读到缓存")
	}
}

func TestTTLCache_DeleteAndPurge(t *testing.T) {
	c := NewTTLCache[int](time.Hour)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("Delete 后仍存在")
	}

	c.Purge()
	if _, ok := c.Get("b"); ok {
		t.Error("Purge 后仍存在")
	}
}
