package cmd

import (
	"fmt"

	"github.com/gitcrypt-go/gitcrypt/internal/lifecycle"
	"github.com/gitcrypt-go/gitcrypt/internal/ui"
	"github.com/gitcrypt-go/gitcrypt/internal/utils"

	"github.com/spf13/cobra"
)

var unlockCmd = &cobra.Command{
	Use:   "unlock [KEYFILE...]",
	Short: "Decrypt files bound to the supplied key(s)",
	RunE: func(cmd *cobra.Command, args []string) error {
		spin, cleanup := startSpinner("Unlocking...", verbose)
		defer cleanup()

		result, err := lifecycle.Unlock(cmd.Context(), lifecycle.UnlockOptions{KeyFiles: args})
		if err != nil {
			spin.FinalMSG = ""
			return fail("unlocking", err)
		}

		spin.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(
			" unlocked %d key(s), materialized %d file(s)\n",
			len(result.InstalledKeyNames), len(result.MaterializedPaths),
		)
		if verbose {
			spin.FinalMSG += utils.FormatPaths(result.MaterializedPaths)
		}
		return nil
	},
}
