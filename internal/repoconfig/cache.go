package repoconfig

import (
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Cache is the repository-local activity record written to
// <ctrl>/git-crypt/config.toml.
type Cache struct {
	Entries []Entry `toml:"entry"`
}

// Entry records one lifecycle operation.
type Entry struct {
	// ID is a random UUID generated for this entry, so that entries with
	// the same operation, key name and timestamp remain distinguishable.
	ID        string    `toml:"id"`
	Operation string    `toml:"operation"`
	KeyName   string    `toml:"key_name"`
	At        time.Time `toml:"at"`
}

// maxEntries bounds the cache so it cannot grow without limit across the
// life of a repository.
const maxEntries = 50

// CachePath returns the cache file's location under the repository's
// control directory.
func CachePath(controlDir string) string {
	return filepath.Join(controlDir, "git-crypt", "config.toml")
}

// RecordOperation appends a new entry, generating its correlation ID,
// and trims the cache to maxEntries. A missing cache file is treated as
// an empty one; any other load error is returned.
func RecordOperation(controlDir, operation, keyName string, at time.Time) error {
	path := CachePath(controlDir)

	var cache Cache
	if err := LoadTOML(path, &cache); err != nil && !os.IsNotExist(err) {
		return err
	}

	cache.Entries = append(cache.Entries, Entry{
		ID:        uuid.NewString(),
		Operation: operation,
		KeyName:   keyName,
		At:        at,
	})
	if len(cache.Entries) > maxEntries {
		cache.Entries = cache.Entries[len(cache.Entries)-maxEntries:]
	}

	return SaveTOML(path, &cache)
}
