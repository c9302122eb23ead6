package lifecycle

import (
	"fmt"
	"os"

	kerrors "github.com/gitcrypt-go/gitcrypt/internal/errors"
	"github.com/gitcrypt-go/gitcrypt/internal/keyfile"
)

// LoadInstalledKey reads and parses the key file installed for keyName in
// the repository rooted at repoPath. Filter-driver subcommands use this
// directly rather than going through Init/Unlock, since the host VCS
// invokes them independently of any lifecycle operation.
func LoadInstalledKey(repoPath, keyName string) (*keyfile.File, error) {
	root, err := resolveRepoPath(repoPath)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(keyPath(root, keyName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, kerrors.ErrKeyUnavailable
		}
		return nil, fmt.Errorf("reading installed key file: %w", kerrors.ErrIoFailure)
	}
	return keyfile.Parse(data)
}
