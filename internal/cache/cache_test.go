package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/douessay/internal/model"
)

func TestKey_PrefixAndStability(t *testing.T) {
	a := Key("grammar", "en-CA", "some text")
	b := Key("grammar", "en-CA", "some text")
	c := Key("grammar", "en-US", "some text")

	if !strings.HasPrefix(a, "douessay:v1:grammar:") {
		t.Errorf("Expected versioned prefix, got %s", a)
	}
	if a != b {
		t.Error("Expected identical keys for identical input")
	}
	if a == c {
		t.Error("Expected different keys for different parts")
	}
	if Key("g", "ab", "c") == Key("g", "a", "bc") {
		t.Error("Expected part boundaries to affect the key")
	}
}

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	got, ok := c.Get("k")
	if !ok || string(got) != "v" {
		t.Errorf("Expected v, got %q (found=%v)", got, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Expected 1 item, got %d", c.Len())
	}

	_ = c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Error("Expected key to be deleted")
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)

	if err := c.Set("douessay:v1:x", []byte("payload"), time.Millisecond); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Get("douessay:v1:x"); ok {
		t.Error("Expected expired entry to miss")
	}
	if _, err := os.Stat(c.path("douessay:v1:x")); !os.IsNotExist(err) {
		t.Error("Expected expired entry file to be removed")
	}
}

func TestDiskCache_ClearKeepsOtherFiles(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)
	_ = c.Set("a", []byte("1"), 0)
	_ = c.Set("b", []byte("2"), 0)

	other := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(other, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, ok := c.Get("a"); ok {
		t.Error("Expected cache entries to be cleared")
	}
	if _, err := os.Stat(other); err != nil {
		t.Errorf("Expected unrelated file to survive, got %v", err)
	}
}

func TestDiskCache_GroupsByNamespace(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)
	key := Key("grammar", "en-CA", "Their is a problem.")
	if err := c.Set(key, []byte("[]"), 0); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if filepath.Base(filepath.Dir(c.path(key))) != "grammar" {
		t.Errorf("Expected entry under grammar/, got %s", c.path(key))
	}
	if got, ok := c.Get(key); !ok || string(got) != "[]" {
		t.Errorf("Expected hit, got %q (found=%v)", got, ok)
	}
	if ns := namespaceOf("k"); ns != "misc" {
		t.Errorf("Expected misc namespace for bare key, got %s", ns)
	}
}

func TestDiskCache_CorruptEntryIsRemoved(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)
	_ = c.Set("k", []byte("v"), 0)
	if err := os.WriteFile(c.path("k"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, ok := c.Get("k"); ok {
		t.Error("Expected corrupt entry to miss")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("Expected corrupt entry file to be removed")
	}
}

func TestDiskCache_Prune(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_ = c.Set("fresh", []byte("1"), time.Hour)
	_ = c.Set("stale", []byte("2"), time.Minute)

	now = now.Add(10 * time.Minute)
	removed, err := c.Prune()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if removed != 1 {
		t.Errorf("Expected 1 pruned entry, got %d", removed)
	}
	if _, ok := c.Get("fresh"); !ok {
		t.Error("Expected fresh entry to survive pruning")
	}
}

func TestDiskCache_PruneMissingDir(t *testing.T) {
	c := NewDiskCache(filepath.Join(t.TempDir(), "absent"), time.Hour)
	if removed, err := c.Prune(); err != nil || removed != 0 {
		t.Errorf("Expected nothing to prune, got %d, %v", removed, err)
	}
}

func TestDiskCache_DeleteMissing(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)
	if err := c.Delete("missing"); err != nil {
		t.Errorf("Expected no error deleting a missing key, got %v", err)
	}
}

func TestLayeredCache_PromotesFromDisk(t *testing.T) {
	dir := t.TempDir()
	disk := NewDiskCache(dir, time.Hour)
	_ = disk.Set("k", []byte("from-disk"), 0)

	memory := NewMemoryCache(time.Hour, time.Minute)
	c := &LayeredCache{memory: memory, disk: disk}

	got, ok := c.Get("k")
	if !ok || string(got) != "from-disk" {
		t.Fatalf("Expected disk hit, got %q (found=%v)", got, ok)
	}
	if _, ok := memory.Get("k"); !ok {
		t.Error("Expected disk hit to be promoted to memory")
	}

	_, _ = c.Get("k")
	_, _ = c.Get("missing")
	stats := c.Stats()
	if stats.DiskHits != 1 || stats.MemoryHits != 1 || stats.Misses != 1 {
		t.Errorf("Expected 1 disk hit, 1 memory hit and 1 miss, got %+v", stats)
	}
	if rate := stats.HitRate(); rate < 0.66 || rate > 0.67 {
		t.Errorf("Expected hit rate near 0.667, got %f", rate)
	}
}

func TestBoundedMemoryCache_DropsNewKeysWhenFull(t *testing.T) {
	c := NewBoundedMemoryCache(time.Minute, time.Minute, 2)
	_ = c.Set("a", []byte("1"), 0)
	_ = c.Set("b", []byte("2"), 0)
	_ = c.Set("c", []byte("3"), 0)

	if _, ok := c.Get("c"); ok {
		t.Error("Expected write past the bound to be dropped")
	}
	if c.Dropped() != 1 {
		t.Errorf("Expected 1 dropped write, got %d", c.Dropped())
	}

	// Overwriting an existing key is always allowed
	_ = c.Set("a", []byte("updated"), 0)
	if got, _ := c.Get("a"); string(got) != "updated" {
		t.Errorf("Expected overwrite to succeed, got %q", got)
	}
}

func TestBoundedMemoryCache_ReclaimsExpired(t *testing.T) {
	c := NewBoundedMemoryCache(time.Minute, time.Hour, 1)
	_ = c.Set("old", []byte("1"), time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	_ = c.Set("new", []byte("2"), 0)
	if _, ok := c.Get("new"); !ok {
		t.Error("Expected expired entry to make room")
	}
}

func TestLayeredCache_MemoryOnly(t *testing.T) {
	c := NewLayeredCache(model.CacheConfig{Enabled: true, MemoryTTL: time.Minute})
	_ = c.Set("k", []byte("v"), 0)
	if got, ok := c.Get("k"); !ok || string(got) != "v" {
		t.Errorf("Expected memory hit, got %q (found=%v)", got, ok)
	}
	if _, ok := c.disk.(Noop); !ok {
		t.Errorf("Expected no disk layer without a dir, got %T", c.disk)
	}
}

func TestNew_DisabledIsNoop(t *testing.T) {
	c := New(model.CacheConfig{Enabled: false})
	_ = c.Set("k", []byte("v"), 0)
	if _, ok := c.Get("k"); ok {
		t.Error("Expected disabled cache to store nothing")
	}

	enabled := New(model.CacheConfig{Enabled: true, Dir: t.TempDir(), MemoryTTL: time.Minute, DiskTTL: time.Hour})
	if _, ok := enabled.(*LayeredCache); !ok {
		t.Errorf("Expected layered cache, got %T", enabled)
	}
	if _, ok := enabled.(Reporter); !ok {
		t.Error("Expected layered cache to report stats")
	}
}
