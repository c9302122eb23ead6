package repoconfig

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	kerrors "github.com/gitcrypt-go/gitcrypt/internal/errors"
)

// SaveTOML writes data to filePath as TOML. It writes to a sibling
// temporary file first and renames it into place, so a process killed
// mid-write never leaves the cache file truncated or half-encoded.
func SaveTOML(filePath string, data interface{}) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return kerrors.ErrIoFailure
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(filePath)+".*.tmp")
	if err != nil {
		return kerrors.ErrIoFailure
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := toml.NewEncoder(tmp).Encode(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return kerrors.ErrIoFailure
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		return kerrors.ErrIoFailure
	}
	return nil
}

// LoadTOML decodes filePath into data. A missing file is reported as the
// underlying os.IsNotExist-compatible error; callers that treat an absent
// cache as empty check for that directly.
func LoadTOML(filePath string, data interface{}) error {
	_, err := toml.DecodeFile(filePath, data)
	return err
}
