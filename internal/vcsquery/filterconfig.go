package vcsquery

import (
	"fmt"

	kerrors "github.com/gitcrypt-go/gitcrypt/internal/errors"
)

const filterSection = "filter"

// InstallFilter registers clean/smudge/diff commands for the filter
// named FilterNameFor(keyName), invoking exePath with keyName so the
// host VCS drives this program's own clean/smudge/diff subcommands.
func (r *Repository) InstallFilter(keyName, exePath string) error {
	cfg, err := r.repo.Config()
	if err != nil {
		return kerrors.ErrHostVcsFailure
	}

	filterName := FilterNameFor(keyName)
	keyFlag := ""
	if keyName != "" {
		keyFlag = fmt.Sprintf(" --key-name=%s", keyName)
	}

	sub := cfg.Raw.Section(filterSection).Subsection(filterName)
	sub.SetOption("smudge", fmt.Sprintf("%q smudge%s", exePath, keyFlag))
	sub.SetOption("clean", fmt.Sprintf("%q clean%s", exePath, keyFlag))
	sub.SetOption("textconv", fmt.Sprintf("%q diff%s", exePath, keyFlag))
	sub.SetOption("required", "true")

	if err := r.repo.Storer.SetConfig(cfg); err != nil {
		return kerrors.ErrHostVcsFailure
	}
	return nil
}

// RemoveFilter un-installs the filter config for keyName. It is not an
// error for the filter to already be absent.
func (r *Repository) RemoveFilter(keyName string) error {
	cfg, err := r.repo.Config()
	if err != nil {
		return kerrors.ErrHostVcsFailure
	}

	filterName := FilterNameFor(keyName)
	cfg.Raw.Section(filterSection).RemoveSubsection(filterName)

	if err := r.repo.Storer.SetConfig(cfg); err != nil {
		return kerrors.ErrHostVcsFailure
	}
	return nil
}
