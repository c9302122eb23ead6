package lifecycle

import (
	"context"
	"fmt"
	"os"

	"github.com/gitcrypt-go/gitcrypt/internal/vcsquery"
)

// StatusOptions configures the status operation.
type StatusOptions struct {
	RepoPath string
	// EncryptedOnly restricts the result to paths with a binding.
	EncryptedOnly bool
	// Fix reports .gitattributes inconsistencies it finds without
	// correcting them; actually rewriting .gitattributes is out of scope.
	Fix bool
}

// PathStatus is one tracked path's encryption state.
type PathStatus struct {
	Path    string
	KeyName string
	Bound   bool
	// Installed reports whether the key this path is bound to currently
	// has its key file present, i.e. whether the working-tree copy of the
	// file is expected to be plaintext right now.
	Installed bool
}

// StatusResult is the full status report.
type StatusResult struct {
	Paths []PathStatus
	// Inconsistent lists, when Fix is set, paths bound to a key whose key
	// file is not currently installed (never initialized, or locked).
	Inconsistent []string
}

// Status enumerates tracked paths and reports, for each, whether it is
// bound to a key and whether that key is currently installed.
func Status(ctx context.Context, opts StatusOptions) (*StatusResult, error) {
	repoPath, err := resolveRepoPath(opts.RepoPath)
	if err != nil {
		return nil, err
	}

	repo, err := vcsquery.Open(repoPath)
	if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}

	entries, err := repo.ListTrackedFiles()
	if err != nil {
		return nil, fmt.Errorf("listing tracked files: %w", err)
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}

	bindings, err := repo.ResolveBindings(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("resolving filter attributes: %w", err)
	}

	result := &StatusResult{}
	for _, b := range bindings {
		if opts.EncryptedOnly && !b.Bound {
			continue
		}
		installed := false
		if b.Bound {
			if _, err := os.Stat(keyPath(repoPath, b.KeyName)); err == nil {
				installed = true
			}
		}
		result.Paths = append(result.Paths, PathStatus{
			Path:      b.Path,
			KeyName:   b.KeyName,
			Bound:     b.Bound,
			Installed: installed,
		})
		if b.Bound && !installed && opts.Fix {
			result.Inconsistent = append(result.Inconsistent, b.Path)
		}
	}

	return result, nil
}
