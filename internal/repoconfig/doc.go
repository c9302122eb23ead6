// Package repoconfig persists a small, non-authoritative TOML cache of
// recent git-crypt activity for a repository, plus the generic
// SaveTOML/LoadTOML helpers other packages can reuse for any TOML file.
//
// The cache never gates a decision: every lifecycle operation derives
// its behavior from the key files and host-VCS config on disk, never
// from this cache. It exists purely as a short, human-readable trail of
// the init, unlock and lock operations that last touched the repository;
// no command reads it back.
package repoconfig
