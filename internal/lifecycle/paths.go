package lifecycle

import "path/filepath"

// controlDir returns the repository's private control directory, the
// root under which per-repository git-crypt state is kept.
func controlDir(repoRoot string) string {
	return filepath.Join(repoRoot, ".git")
}

// keysDir returns the directory holding installed key files.
func keysDir(repoRoot string) string {
	return filepath.Join(controlDir(repoRoot), "git-crypt", "keys")
}

// keyPath returns the on-disk path for the key file named keyName ("" for
// the default key).
func keyPath(repoRoot, keyName string) string {
	name := keyName
	if name == "" {
		name = "default"
	}
	return filepath.Join(keysDir(repoRoot), name)
}

// dirOf returns the parent directory of path.
func dirOf(path string) string {
	return filepath.Dir(path)
}
