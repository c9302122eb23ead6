package cmd

import (
	"fmt"

	"github.com/gitcrypt-go/gitcrypt/internal/lifecycle"
	"github.com/gitcrypt-go/gitcrypt/internal/ui"

	"github.com/spf13/cobra"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen KEYFILE",
	Short: "Generate a key file without touching a repository",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := lifecycle.Keygen(cmd.Context(), lifecycle.KeygenOptions{Path: args[0]})
		if err != nil {
			return fail("generating key", err)
		}
		fmt.Printf("%s key written to %s\n", ui.Success.Sprint("✓"), ui.Path.Sprint(result.Path))
		return nil
	},
}
