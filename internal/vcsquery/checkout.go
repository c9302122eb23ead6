package vcsquery

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/gitcrypt-go/gitcrypt/internal/procchannel"
)

// batchSize is the fixed number of paths per checkout invocation.
const batchSize = 100

// Checkout re-materializes paths from the index through the host VCS's
// own checkout, which is the only thing that runs the configured
// clean/smudge filters — go-git's built-in worktree checkout does not.
// Paths are touched first so a checkout that leaves content unchanged
// (same mtime-insensitive filter output) is still observably re-read on
// the next status check.
func (r *Repository) Checkout(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	for _, p := range paths {
		full := filepath.Join(r.path, p)
		now := time.Now()
		_ = os.Chtimes(full, now, now)
	}

	for start := 0; start < len(paths); start += batchSize {
		end := start + batchSize
		if end > len(paths) {
			end = len(paths)
		}
		batch := paths[start:end]

		args := append([]string{"checkout", "--"}, batch...)
		if _, err := procchannel.Run(ctx, procchannel.Options{
			Name: "git",
			Args: args,
			Dir:  r.path,
		}, nil); err != nil {
			return err
		}
	}
	return nil
}
