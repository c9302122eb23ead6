package lifecycle

import (
	"context"
	"fmt"
	"os"

	kerrors "github.com/gitcrypt-go/gitcrypt/internal/errors"
	"github.com/gitcrypt-go/gitcrypt/internal/vcsquery"
)

// LockOptions configures the lock operation.
type LockOptions struct {
	RepoPath string
	KeyName  string
}

// LockResult describes what Lock did.
type LockResult struct {
	ReEncryptedPaths []string
}

// Lock removes the installed key file for KeyName, un-installs its
// filter configuration, and re-checks-out the paths it covered; with the
// filter configuration gone, the host VCS writes them out as the stored
// ciphertext without running smudge.
func Lock(ctx context.Context, opts LockOptions) (*LockResult, error) {
	repoPath, err := resolveRepoPath(opts.RepoPath)
	if err != nil {
		return nil, err
	}

	repo, err := vcsquery.Open(repoPath)
	if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}

	clean, err := repo.IsClean()
	if err != nil {
		return nil, fmt.Errorf("checking working directory: %w", err)
	}
	if !clean {
		return nil, kerrors.ErrWorkingDirectoryDirty
	}

	dest := keyPath(repoPath, opts.KeyName)
	if _, err := os.Stat(dest); os.IsNotExist(err) {
		return nil, kerrors.ErrNotInitialized
	}

	paths, err := boundPaths(ctx, repo, opts.KeyName)
	if err != nil {
		return nil, fmt.Errorf("resolving bound paths: %w", err)
	}

	if err := os.Remove(dest); err != nil {
		return nil, fmt.Errorf("removing key file: %w", kerrors.ErrIoFailure)
	}
	if err := repo.RemoveFilter(opts.KeyName); err != nil {
		return nil, fmt.Errorf("removing filter configuration: %w", err)
	}

	if err := repo.Checkout(ctx, paths); err != nil {
		return nil, fmt.Errorf("checking out re-encrypted content: %w", err)
	}

	recordCache(repoPath, "lock", opts.KeyName)
	return &LockResult{ReEncryptedPaths: paths}, nil
}
