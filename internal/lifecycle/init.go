package lifecycle

import (
	"context"
	"fmt"
	"os"

	kerrors "github.com/gitcrypt-go/gitcrypt/internal/errors"
	"github.com/gitcrypt-go/gitcrypt/internal/keyfile"
	"github.com/gitcrypt-go/gitcrypt/internal/vcsquery"
)

// InitOptions configures the init operation.
type InitOptions struct {
	// RepoPath is the working-tree root. Defaults to the current
	// directory when empty.
	RepoPath string
	// KeyName selects a named key instead of the default key.
	KeyName string
}

// InitResult describes what Init did.
type InitResult struct {
	KeyName string
	KeyPath string
}

// Init generates a fresh key file for KeyName and installs the host-VCS
// filter configuration that routes clean/smudge/diff through this
// program. Fails with ErrAlreadyInitialized if a key file for KeyName is
// already installed, and with ErrWorkingDirectoryDirty if the tree is
// not clean.
func Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
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
	if _, err := os.Stat(dest); err == nil {
		return nil, kerrors.ErrAlreadyInitialized
	}

	file, err := keyfile.GenerateFile(opts.KeyName)
	if err != nil {
		return nil, fmt.Errorf("generating key file: %w", err)
	}
	defer file.Destroy()

	if err := writeKeyFile(dest, file); err != nil {
		return nil, err
	}

	exePath, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("resolving own executable path: %w", err)
	}
	if err := repo.InstallFilter(opts.KeyName, exePath); err != nil {
		return nil, fmt.Errorf("installing filter configuration: %w", err)
	}

	recordCache(repoPath, "init", opts.KeyName)
	return &InitResult{KeyName: opts.KeyName, KeyPath: dest}, nil
}

// writeKeyFile serializes file and writes it to dest with 0o600
// permissions, creating parent directories as needed.
func writeKeyFile(dest string, file *keyfile.File) error {
	if err := os.MkdirAll(dirOf(dest), 0o700); err != nil {
		return fmt.Errorf("creating key directory: %w", kerrors.ErrIoFailure)
	}
	data, err := file.Serialize()
	if err != nil {
		return fmt.Errorf("serializing key file: %w", err)
	}
	if err := os.WriteFile(dest, data, 0o600); err != nil {
		return fmt.Errorf("writing key file: %w", kerrors.ErrIoFailure)
	}
	return nil
}

func resolveRepoPath(repoPath string) (string, error) {
	if repoPath != "" {
		return repoPath, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", kerrors.ErrIoFailure)
	}
	return wd, nil
}
