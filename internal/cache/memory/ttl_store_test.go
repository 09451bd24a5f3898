package memory

import (
	"fmt"
	"testing"
	"time"
)

func TestStore_SetGet_HitMiss(t *testing.T) {
	s := NewStore[string]("categories", 5*time.Minute, 10)

	// miss
	if _, ok := s.Get("categories-normal"); ok {
		t.Fatalf("expected miss before Set")
	}

	// hit после Set
	s.Set("categories-normal", "data")
	got, ok := s.Get("categories-normal")
	if !ok || got != "data" {
		t.Fatalf("expected hit, got %q ok=%v", got, ok)
	}
}

func TestStore_TTL_Expiry(t *testing.T) {
	s := NewStore[string]("pricing", 100*time.Millisecond, 10)

	s.Set("pricing-normal", "v")
	if _, ok := s.Get("pricing-normal"); !ok {
		t.Fatalf("expected hit right after Set")
	}
	time.Sleep(150 * time.Millisecond)
	if _, ok := s.Get("pricing-normal"); ok {
		t.Fatalf("expected miss after TTL expires")
	}
}

// 11 различных ключей: остаётся не больше 10, первым вытесняется самый старый.
func TestStore_BoundedEviction_OldestFirst(t *testing.T) {
	s := NewStore[int]("images", 5*time.Minute, 10)

	for i := 0; i < 11; i++ {
		s.Set(fmt.Sprintf("images-key-%d", i), i)
		time.Sleep(time.Millisecond) // различимые отметки времени
	}

	if n := s.Len(); n > 10 {
		t.Fatalf("expected at most 10 entries, got %d", n)
	}
	if _, ok := s.Get("images-key-0"); ok {
		t.Fatalf("expected oldest entry to be evicted first")
	}
	if _, ok := s.Get("images-key-10"); !ok {
		t.Fatalf("expected newest entry to survive")
	}
}

// Мутация холодного кэша — тихий no-op (cache-aside).
func TestStore_Mutate_ColdCacheNoop(t *testing.T) {
	s := NewStore[[]string]("categories", 5*time.Minute, 10)

	if changed := s.Mutate("categories-normal", func(v []string) []string {
		return append(v, "x")
	}); changed {
		t.Fatalf("mutate on cold cache must be a no-op")
	}
	if _, ok := s.Get("categories-normal"); ok {
		t.Fatalf("mutate must not populate a cold cache")
	}

	s.Set("categories-normal", []string{"a"})
	if changed := s.Mutate("categories-normal", func(v []string) []string {
		return append(v, "b")
	}); !changed {
		t.Fatalf("mutate on warm cache must apply")
	}
	got, _ := s.Get("categories-normal")
	if len(got) != 2 || got[1] != "b" {
		t.Fatalf("unexpected mutated value: %v", got)
	}
}

func TestStore_Invalidate_Pattern(t *testing.T) {
	s := NewStore[int]("images", 5*time.Minute, 10)

	s.Set("images-normal", 1)
	s.Set("images-refresh", 2)
	s.Set("other-normal", 3)

	s.Invalidate("images")

	if _, ok := s.Get("images-normal"); ok {
		t.Fatalf("images-normal should be invalidated")
	}
	if _, ok := s.Get("images-refresh"); ok {
		t.Fatalf("images-refresh should be invalidated")
	}
	if _, ok := s.Get("other-normal"); !ok {
		t.Fatalf("other-normal should survive")
	}
}

func TestStore_Stats(t *testing.T) {
	s := NewStore[string]("pricing", 5*time.Minute, 10)

	s.Set("pricing-normal", "abc")
	st := s.Stats()
	if st.TotalEntries != 1 || st.ExpiredEntries != 0 {
		t.Fatalf("unexpected stats: %+v", st)
	}
	if st.MemoryUsage == 0 {
		t.Fatalf("memory usage should account for serialized data")
	}
}

func TestCell_RefreshAndNormalKeysAreSeparate(t *testing.T) {
	s := NewStore[string]("categories", 5*time.Minute, 10)
	c := NewCell(s, "categories")

	c.SetCache("normal", false)
	if _, ok := c.GetFromCache(true); ok {
		t.Fatalf("refresh key must be independent from normal key")
	}

	c.SetCache("refreshed", true)
	got, ok := c.GetFromCache(true)
	if !ok || got != "refreshed" {
		t.Fatalf("expected refreshed entry, got %q ok=%v", got, ok)
	}
}

// Два потребителя над одним Store видят общее состояние.
func TestCell_SharedStore(t *testing.T) {
	s := NewStore[string]("categories", 5*time.Minute, 10)
	a := NewCell(s, "categories")
	b := NewCell(s, "categories")

	a.SetCache("shared", false)
	got, ok := b.GetFromCache(false)
	if !ok || got != "shared" {
		t.Fatalf("consumers over one store must observe the same cache state")
	}
}
