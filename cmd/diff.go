package cmd

import (
	"errors"
	"os"

	kerrors "github.com/gitcrypt-go/gitcrypt/internal/errors"
	"github.com/gitcrypt-go/gitcrypt/internal/filter"
	"github.com/gitcrypt-go/gitcrypt/internal/keyfile"
	"github.com/gitcrypt-go/gitcrypt/internal/lifecycle"

	"github.com/spf13/cobra"
)

var diffKeyName string

func init() {
	diffCmd.Flags().StringVar(&diffKeyName, "key-name", "", "the key this filter instance was configured with")
}

// diffCmd is invoked by the host VCS's textconv machinery with a path to
// a blob materialized to a temporary file.
var diffCmd = &cobra.Command{
	Use:    "diff PATH",
	Short:  "Filter driver: decrypt a named file to standard output for diffing",
	Args:   cobra.ExactArgs(1),
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := lifecycle.LoadInstalledKey("", diffKeyName)
		if err != nil {
			if !errors.Is(err, kerrors.ErrKeyUnavailable) {
				return fail("diff", err)
			}
			file, err = keyfile.NewFile("")
			if err != nil {
				return fail("diff", err)
			}
		}
		if err := filter.Diff(args[0], file, os.Stdout); err != nil {
			return fail("diff", err)
		}
		return nil
	},
}
