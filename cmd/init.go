package cmd

import (
	"fmt"

	"github.com/gitcrypt-go/gitcrypt/internal/lifecycle"
	"github.com/gitcrypt-go/gitcrypt/internal/ui"

	"github.com/spf13/cobra"
)

var initKeyName string

func init() {
	initCmd.Flags().StringVarP(&initKeyName, "key-name", "k", "", "use a named key instead of the default")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a key and prepare this repository to use git-crypt",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		spin, cleanup := startSpinner("Initializing git-crypt...", verbose)
		defer cleanup()

		result, err := lifecycle.Init(cmd.Context(), lifecycle.InitOptions{KeyName: initKeyName})
		if err != nil {
			spin.FinalMSG = ""
			return fail("initializing", err)
		}

		spin.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(" git-crypt initialized, key written to %s\n", ui.Path.Sprint(result.KeyPath))
		spin.FinalMSG += fmt.Sprintf("  %s hand this key file to a collaborator, then have them run %s\n",
			ui.Info.Sprint("→"), ui.Code.Sprint("git-crypt unlock "+result.KeyPath))
		return nil
	},
}
