package cmd

import (
	"fmt"

	"github.com/gitcrypt-go/gitcrypt/internal/lifecycle"
	"github.com/gitcrypt-go/gitcrypt/internal/ui"
	"github.com/gitcrypt-go/gitcrypt/internal/utils"

	"github.com/spf13/cobra"
)

var lockKeyName string

func init() {
	lockCmd.Flags().StringVarP(&lockKeyName, "key-name", "k", "", "lock a named key instead of the default")
}

var lockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Remove the local key and re-encrypt working-tree files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		spin, cleanup := startSpinner("Locking...", verbose)
		defer cleanup()

		result, err := lifecycle.Lock(cmd.Context(), lifecycle.LockOptions{KeyName: lockKeyName})
		if err != nil {
			spin.FinalMSG = ""
			return fail("locking", err)
		}

		spin.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(" re-encrypted %d file(s)\n", len(result.ReEncryptedPaths))
		if verbose {
			spin.FinalMSG += utils.FormatPaths(result.ReEncryptedPaths)
		}
		return nil
	},
}
