package lifecycle

import (
	"context"
	"fmt"
	"os"

	kerrors "github.com/gitcrypt-go/gitcrypt/internal/errors"
	"github.com/gitcrypt-go/gitcrypt/internal/keyfile"
)

// KeygenOptions configures the keygen operation.
type KeygenOptions struct {
	// Path is the destination file for the generated key.
	Path string
}

// KeygenResult describes what Keygen did.
type KeygenResult struct {
	Path string
}

// Keygen generates a fresh, unnamed key file and writes it to Path with
// 0o600 permissions. Unlike Init, it does not touch any repository state
// — the result is meant to be handed to a collaborator out of band.
func Keygen(ctx context.Context, opts KeygenOptions) (*KeygenResult, error) {
	if opts.Path == "" {
		return nil, fmt.Errorf("keygen: %w", kerrors.ErrIoFailure)
	}

	if _, err := os.Stat(opts.Path); err == nil {
		return nil, fmt.Errorf("%s already exists: %w", opts.Path, kerrors.ErrIoFailure)
	}

	file, err := keyfile.GenerateFile("")
	if err != nil {
		return nil, fmt.Errorf("generating key file: %w", err)
	}
	defer file.Destroy()

	if err := writeKeyFile(opts.Path, file); err != nil {
		return nil, err
	}

	return &KeygenResult{Path: opts.Path}, nil
}
