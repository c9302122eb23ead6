package lifecycle

import (
	"context"
	"fmt"
	"os"

	kerrors "github.com/gitcrypt-go/gitcrypt/internal/errors"
	"github.com/gitcrypt-go/gitcrypt/internal/keyfile"
	"github.com/gitcrypt-go/gitcrypt/internal/vcsquery"
)

// UnlockOptions configures the unlock operation.
type UnlockOptions struct {
	RepoPath string
	// KeyFiles are the paths supplied on the command line, in the order
	// they were given. At least one is required; this spec does not
	// implement the asymmetric-key fallback for an empty list.
	KeyFiles []string
}

// UnlockResult describes what Unlock did.
type UnlockResult struct {
	// InstalledKeyNames is every key name installed, in KeyFiles order.
	InstalledKeyNames []string
	// MaterializedPaths is every path checked out to plaintext.
	MaterializedPaths []string
}

// Unlock installs every supplied key file under its embedded name and
// checks out the paths bound to that name so the configured smudge
// filter materializes their plaintext.
//
// Keys are installed in the order given. If a later key fails to parse
// or install, the keys already installed are left in place — unlock
// does not roll back partial progress; the user reruns.
func Unlock(ctx context.Context, opts UnlockOptions) (*UnlockResult, error) {
	if len(opts.KeyFiles) == 0 {
		return nil, kerrors.ErrNoKeyFilesGiven
	}

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

	exePath, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("resolving own executable path: %w", err)
	}

	result := &UnlockResult{}
	var toCheckout []string

	for _, src := range opts.KeyFiles {
		data, err := os.ReadFile(src)
		if err != nil {
			return result, fmt.Errorf("reading %s: %w", src, kerrors.ErrIoFailure)
		}
		file, err := keyfile.Parse(data)
		if err != nil {
			return result, fmt.Errorf("parsing %s: %w", src, err)
		}

		dest := keyPath(repoPath, file.Name)
		if err := writeKeyFile(dest, file); err != nil {
			return result, err
		}
		if err := repo.InstallFilter(file.Name, exePath); err != nil {
			return result, fmt.Errorf("installing filter for %q: %w", file.Name, err)
		}
		result.InstalledKeyNames = append(result.InstalledKeyNames, file.Name)
		recordCache(repoPath, "unlock", file.Name)

		paths, err := boundPaths(ctx, repo, file.Name)
		if err != nil {
			return result, fmt.Errorf("resolving bound paths for %q: %w", file.Name, err)
		}
		toCheckout = append(toCheckout, paths...)
	}

	if err := repo.Checkout(ctx, toCheckout); err != nil {
		return result, fmt.Errorf("checking out decrypted content: %w", err)
	}
	result.MaterializedPaths = toCheckout

	return result, nil
}

// boundPaths returns every tracked path whose filter attribute resolves
// to keyName.
func boundPaths(ctx context.Context, repo *vcsquery.Repository, keyName string) ([]string, error) {
	entries, err := repo.ListTrackedFiles()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}

	bindings, err := repo.ResolveBindings(ctx, names)
	if err != nil {
		return nil, err
	}

	var bound []string
	for _, b := range bindings {
		if b.Bound && b.KeyName == keyName {
			bound = append(bound, b.Path)
		}
	}
	return bound, nil
}
