package lifecycle

import (
	"context"
	"fmt"
	"os"

	kerrors "github.com/gitcrypt-go/gitcrypt/internal/errors"
	"github.com/gitcrypt-go/gitcrypt/internal/keyfile"
)

// ExportKeyOptions configures the export-key operation.
type ExportKeyOptions struct {
	RepoPath string
	KeyName  string
	Path     string
}

// ExportKeyResult describes what ExportKey did.
type ExportKeyResult struct {
	Path string
}

// ExportKey loads the installed key file for KeyName and writes it
// verbatim to Path with 0o600 permissions. Fails with
// ErrNotInitialized if KeyName is not installed.
func ExportKey(ctx context.Context, opts ExportKeyOptions) (*ExportKeyResult, error) {
	repoPath, err := resolveRepoPath(opts.RepoPath)
	if err != nil {
		return nil, err
	}

	src := keyPath(repoPath, opts.KeyName)
	data, err := os.ReadFile(src)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, kerrors.ErrNotInitialized
		}
		return nil, fmt.Errorf("reading installed key file: %w", kerrors.ErrIoFailure)
	}

	if _, err := keyfile.Parse(data); err != nil {
		return nil, fmt.Errorf("installed key file is corrupt: %w", err)
	}

	if err := os.MkdirAll(dirOf(opts.Path), 0o700); err != nil {
		return nil, fmt.Errorf("creating destination directory: %w", kerrors.ErrIoFailure)
	}
	if err := os.WriteFile(opts.Path, data, 0o600); err != nil {
		return nil, fmt.Errorf("writing exported key file: %w", kerrors.ErrIoFailure)
	}

	return &ExportKeyResult{Path: opts.Path}, nil
}
