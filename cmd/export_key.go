package cmd

import (
	"fmt"

	"github.com/gitcrypt-go/gitcrypt/internal/lifecycle"
	"github.com/gitcrypt-go/gitcrypt/internal/ui"

	"github.com/spf13/cobra"
)

var exportKeyName string

func init() {
	exportKeyCmd.Flags().StringVarP(&exportKeyName, "key-name", "k", "", "export a named key instead of the default")
}

var exportKeyCmd = &cobra.Command{
	Use:   "export-key KEYFILE",
	Short: "Export the currently installed key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := lifecycle.ExportKey(cmd.Context(), lifecycle.ExportKeyOptions{
			KeyName: exportKeyName,
			Path:    args[0],
		})
		if err != nil {
			return fail("exporting key", err)
		}
		fmt.Printf("%s key exported to %s\n", ui.Success.Sprint("✓"), ui.Path.Sprint(result.Path))
		return nil
	},
}
