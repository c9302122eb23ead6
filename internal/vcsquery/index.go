package vcsquery

import (
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"

	kerrors "github.com/gitcrypt-go/gitcrypt/internal/errors"
)

// IndexEntry is one tracked regular-file entry from the host VCS index.
type IndexEntry struct {
	Mode filemode.FileMode
	Hash plumbing.Hash
	// Stage is the merge stage; 0 for an ordinary, unconflicted entry.
	Stage uint8
	Name  string
}

// Repository wraps an opened host-VCS repository and the operations
// vcsquery needs from it.
type Repository struct {
	repo *git.Repository
	path string
}

// Open opens the repository rooted at path.
func Open(path string) (*Repository, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, kerrors.ErrHostVcsFailure
	}
	return &Repository{repo: repo, path: path}, nil
}

// Path returns the working-tree root this Repository was opened against.
func (r *Repository) Path() string {
	return r.path
}

// ListTrackedFiles returns every regular-file entry in the index, in the
// order the index stores them. Entries whose mode is not a regular file
// (symlinks, submodules, directories) are omitted.
func (r *Repository) ListTrackedFiles() ([]IndexEntry, error) {
	idx, err := r.repo.Storer.Index()
	if err != nil {
		return nil, kerrors.ErrHostVcsFailure
	}

	entries := make([]IndexEntry, 0, len(idx.Entries))
	for _, e := range idx.Entries {
		if !isRegularFile(e.Mode) {
			continue
		}
		entries = append(entries, IndexEntry{
			Mode:  e.Mode,
			Hash:  e.Hash,
			Stage: uint8(e.Stage),
			Name:  e.Name,
		})
	}
	return entries, nil
}

func isRegularFile(mode filemode.FileMode) bool {
	return mode == filemode.Regular || mode == filemode.Executable
}

// IsClean reports whether the working directory has no staged or
// unstaged modifications, the precondition init, unlock and lock enforce
// before touching files.
func (r *Repository) IsClean() (bool, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return false, kerrors.ErrHostVcsFailure
	}
	status, err := wt.Status()
	if err != nil {
		return false, kerrors.ErrHostVcsFailure
	}
	return status.IsClean(), nil
}
