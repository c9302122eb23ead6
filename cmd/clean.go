package cmd

import (
	"os"

	kerrors "github.com/gitcrypt-go/gitcrypt/internal/errors"
	"github.com/gitcrypt-go/gitcrypt/internal/filter"
	"github.com/gitcrypt-go/gitcrypt/internal/lifecycle"

	"github.com/spf13/cobra"
)

var cleanKeyName string

func init() {
	cleanCmd.Flags().StringVar(&cleanKeyName, "key-name", "", "the key this filter instance was configured with")
}

// cleanCmd is invoked by the host VCS on stage; its standard output is
// the file's new blob content, so nothing but envelope bytes may reach
// it.
var cleanCmd = &cobra.Command{
	Use:    "clean",
	Short:  "Filter driver: encrypt standard input to standard output",
	Args:   cobra.NoArgs,
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := lifecycle.LoadInstalledKey("", cleanKeyName)
		if err != nil {
			return fail("clean", err)
		}
		entry, err := file.Latest()
		if err != nil {
			return fail("clean", kerrors.ErrKeyUnavailable)
		}
		if err := filter.Clean(os.Stdin, entry, os.Stdout); err != nil {
			return fail("clean", err)
		}
		return nil
	},
}
