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

var smudgeKeyName string

func init() {
	smudgeCmd.Flags().StringVar(&smudgeKeyName, "key-name", "", "the key this filter instance was configured with")
}

// smudgeCmd is invoked by the host VCS on checkout. Input that is not an
// envelope is copied through unchanged rather than treated as an error.
var smudgeCmd = &cobra.Command{
	Use:    "smudge",
	Short:  "Filter driver: decrypt standard input to standard output",
	Args:   cobra.NoArgs,
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := lifecycle.LoadInstalledKey("", smudgeKeyName)
		if err != nil {
			if !errors.Is(err, kerrors.ErrKeyUnavailable) {
				return fail("smudge", err)
			}
			// No key installed: still fall through on unencrypted input,
			// and let Smudge report ErrKeyUnavailable only if the stream
			// actually opens with the magic tag.
			file, err = keyfile.NewFile("")
			if err != nil {
				return fail("smudge", err)
			}
		}
		if err := filter.Smudge(os.Stdin, file, os.Stdout); err != nil {
			return fail("smudge", err)
		}
		return nil
	},
}
