package cache

import (
	"errors"
	"testing"
	"time"
)

func TestInMemoryCache_GetSet(t *testing.T) {
	c := NewInMemoryCache(time.Minute)
	defer c.Stop()

	if _, ok := c.Get("missing"); ok {
		t.Error("expected miss for unknown key")
	}

	c.Set("page", "<html>", time.Minute)
	value, ok := c.Get("page")
	if !ok {
		t.Fatal("expected hit")
	}
	if value.(string) != "<html>" {
		t.Errorf("got %v", value)
	}
	if c.Size() != 1 {
		t.Errorf("size = %d, want 1", c.Size())
	}
}

func TestInMemoryCache_Expiry(t *testing.T) {
	c := NewInMemoryCache(time.Minute)
	defer c.Stop()

	c.Set("page", "<html>", 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("page"); ok {
		t.Error("expected expired entry to miss")
	}
}

func TestInMemoryCache_GetOrSet(t *testing.T) {
	c := NewInMemoryCache(time.Minute)
	defer c.Stop()

	calls := 0
	compute := func() (interface{}, error) {
		calls++
		return "rendered", nil
	}

	for i := 0; i < 3; i++ {
		value, err := c.GetOrSet("page", time.Minute, compute)
		if err != nil {
			t.Fatal(err)
		}
		if value.(string) != "rendered" {
			t.Errorf("got %v", value)
		}
	}
	if calls != 1 {
		t.Errorf("compute ran %d times, want 1", calls)
	}
}

func TestInMemoryCache_GetOrSetError(t *testing.T) {
	c := NewInMemoryCache(time.Minute)
	defer c.Stop()

	wantErr := errors.New("render failed")
	_, err := c.GetOrSet("page", time.Minute, func() (interface{}, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("got %v, want %v", err, wantErr)
	}

	// Failures are not cached
	if _, ok := c.Get("page"); ok {
		t.Error("error result should not be cached")
	}
}

func TestInMemoryCache_Delete(t *testing.T) {
	c := NewInMemoryCache(time.Minute)
	defer c.Stop()

	c.Set("page", "<html>", time.Minute)
	c.Delete("page")
	if _, ok := c.Get("page"); ok {
		t.Error("expected miss after delete")
	}
}
