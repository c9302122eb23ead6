package repoconfig

import (
	"path/filepath"
	"testing"
	"time"
)

func TestRecordOperationCreatesAndAppends(t *testing.T) {
	dir := t.TempDir()

	if err := RecordOperation(dir, "init", "", time.Now()); err != nil {
		t.Fatalf("RecordOperation: %v", err)
	}
	if err := RecordOperation(dir, "unlock", "team-A", time.Now()); err != nil {
		t.Fatalf("RecordOperation: %v", err)
	}

	var cache Cache
	if err := LoadTOML(CachePath(dir), &cache); err != nil {
		t.Fatalf("LoadTOML: %v", err)
	}
	if len(cache.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(cache.Entries))
	}
	if cache.Entries[0].ID == "" {
		t.Fatal("entry missing correlation ID")
	}
	if cache.Entries[1].Operation != "unlock" || cache.Entries[1].KeyName != "team-A" {
		t.Fatalf("unexpected second entry: %+v", cache.Entries[1])
	}
}

func TestRecordOperationTrimsToMaxEntries(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < maxEntries+5; i++ {
		if err := RecordOperation(dir, "status", "", time.Now()); err != nil {
			t.Fatalf("RecordOperation: %v", err)
		}
	}

	var cache Cache
	if err := LoadTOML(CachePath(dir), &cache); err != nil {
		t.Fatalf("LoadTOML: %v", err)
	}
	if len(cache.Entries) != maxEntries {
		t.Fatalf("entries = %d, want %d", len(cache.Entries), maxEntries)
	}
}

func TestCachePath(t *testing.T) {
	got := CachePath("/repo/.git")
	want := filepath.Join("/repo/.git", "git-crypt", "config.toml")
	if got != want {
		t.Fatalf("CachePath = %q, want %q", got, want)
	}
}
