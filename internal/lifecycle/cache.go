package lifecycle

import (
	"time"

	"github.com/gitcrypt-go/gitcrypt/internal/repoconfig"
)

// recordCache appends a best-effort activity entry to the repository's
// non-authoritative TOML cache. A failure here never fails the
// surrounding operation — the cache is diagnostic only.
func recordCache(repoPath, operation, keyName string) {
	_ = repoconfig.RecordOperation(controlDir(repoPath), operation, keyName, time.Now())
}
