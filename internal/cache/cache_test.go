package cache

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

func TestCacheGetSet(t *testing.T) {
	c := New[string, int](0)
	if _, ok := c.Get("a"); ok {
		t.Error("Get on empty cache found a value")
	}
	c.Set("a", 1)
	c.Set("a", 2)
	if v, ok := c.Get("a"); !ok || v != 2 {
		t.Errorf("Get(a) = %d, %v; want 2, true", v, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if !c.Delete("a") || c.Delete("a") {
		t.Error("Delete should report presence once")
	}
}

func TestCacheGetOrCreate(t *testing.T) {
	c := New[string, int](0)
	calls := 0
	create := func() (int, error) {
		calls++
		return 7, nil
	}
	for range 3 {
		v, err := c.GetOrCreate("k", create)
		if err != nil || v != 7 {
			t.Fatalf("GetOrCreate = %d, %v", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}

	errBoom := errors.New("boom")
	if _, err := c.GetOrCreate("bad", func() (int, error) { return 0, errBoom }); !errors.Is(err, errBoom) {
		t.Errorf("GetOrCreate error = %v, want boom", err)
	}
	if _, ok := c.Get("bad"); ok {
		t.Error("failed create was cached")
	}
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int, int](4)
	for i := range 4 {
		c.Set(i, i)
	}
	// Touch 0 so 1 becomes the oldest.
	c.Get(0)
	c.Set(4, 4)

	if c.Len() != 3 {
		t.Fatalf("Len() after eviction = %d, want 3", c.Len())
	}
	for _, k := range []int{1, 2} {
		if _, ok := c.Get(k); ok {
			t.Errorf("key %d survived eviction", k)
		}
	}
	for _, k := range []int{0, 4} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("key %d was evicted", k)
		}
	}
}

func TestCacheStats(t *testing.T) {
	c := New[string, int](10)
	if got := c.Stats().HitRate(); got != 0 {
		t.Errorf("HitRate() before lookups = %v, want 0", got)
	}
	c.Set("a", 1)
	c.Get("a")
	c.Get("b")
	s := c.Stats()
	if s.Hits != 1 || s.Misses != 1 || s.Len != 1 || s.Capacity != 10 {
		t.Errorf("Stats() = %+v", s)
	}
	if s.HitRate() != 0.5 {
		t.Errorf("HitRate() = %v, want 0.5", s.HitRate())
	}
	c.Clear()
	if c.Len() != 0 || c.Stats().Hits != 1 {
		t.Errorf("Clear() dropped stats or kept entries: %+v", c.Stats())
	}
}

func TestCacheConcurrentGetOrCreate(t *testing.T) {
	c := New[string, string](0)
	var mu sync.Mutex
	created := map[string]int{}

	var wg sync.WaitGroup
	for i := range 64 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%4)
			_, _ = c.GetOrCreate(key, func() (string, error) {
				mu.Lock()
				created[key]++
				mu.Unlock()
				return key, nil
			})
		}()
	}
	wg.Wait()

	for key, n := range created {
		if n != 1 {
			t.Errorf("%s created %d times, want 1", key, n)
		}
	}
	if len(created) != 4 {
		t.Errorf("created %d keys, want 4", len(created))
	}
}
