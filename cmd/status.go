package cmd

import (
	"fmt"

	"github.com/gitcrypt-go/gitcrypt/internal/lifecycle"
	"github.com/gitcrypt-go/gitcrypt/internal/ui"

	"github.com/spf13/cobra"
)

var (
	statusEncryptedOnly bool
	statusFix           bool
)

func init() {
	statusCmd.Flags().BoolVarP(&statusEncryptedOnly, "encrypted-only", "e", false, "list only encrypted files")
	statusCmd.Flags().BoolVarP(&statusFix, "fix", "f", false, "report .gitattributes inconsistencies")
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which files are encrypted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := lifecycle.Status(cmd.Context(), lifecycle.StatusOptions{
			EncryptedOnly: statusEncryptedOnly,
			Fix:           statusFix,
		})
		if err != nil {
			return fail("checking status", err)
		}

		for _, p := range result.Paths {
			state := ui.Muted.Sprint("not encrypted")
			if p.Bound {
				state = ui.Success.Sprint("encrypted") + " " + ui.Highlight.Sprint(p.KeyName)
				if !p.Installed {
					state = ui.Warning.Sprint("encrypted, key not installed") + " " + ui.Highlight.Sprint(p.KeyName)
				}
			}
			fmt.Printf("%s: %s\n", ui.Path.Sprint(p.Path), state)
		}

		if statusFix && len(result.Inconsistent) > 0 {
			fmt.Printf("%s %d path(s) bound to an uninstalled key; %s does not rewrite .gitattributes\n",
				ui.Warning.Sprint("!"), len(result.Inconsistent), ui.Flag.Sprint("--fix"))
		}
		return nil
	},
}
