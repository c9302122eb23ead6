// Package cmd wires the command-line surface to the internal lifecycle
// and filter packages. Every command here is a thin translation from
// cobra flags to a single call into internal/lifecycle or internal/filter;
// none of them hold business logic of their own.
package cmd

import (
	"fmt"
	"os"

	logger "github.com/gitcrypt-go/gitcrypt/internal/logging"
	"github.com/gitcrypt-go/gitcrypt/internal/ui"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	debug   bool
	// Logger is shared by every lifecycle subcommand's PersistentPreRun.
	Logger logger.Logger
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "git-crypt",
	Short: "Transparent file encryption in git",
	Long: `git-crypt enables transparent encryption of tracked files.
Files are decrypted when checked out and encrypted when committed,
using a filter driver configured by init and unlock.

Usage:
  git-crypt <command> [flags]

Available Commands:
  init         Generate a key and prepare a repository to use git-crypt
  keygen       Generate a key without touching a repository
  export-key   Export the currently installed key
  unlock       Decrypt files bound to a supplied key
  lock         Remove the local key and re-encrypt working-tree files
  status       Show which files are encrypted

Run 'git-crypt help <command>' for more details on a specific command.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		Logger = logger.Logger{Verbose: verbose, Debug: debug}
		Logger.Debugf("git-crypt invoked: %s", cmd.Name())
	},
}

// OperationError wraps a failure from a lifecycle or filter operation so
// main can distinguish it from a usage error and map it to exit code 1
// instead of 2. The message has already been printed to standard error
// by the time this is returned; main only inspects its type.
type OperationError struct{ Err error }

func (e OperationError) Error() string { return e.Err.Error() }
func (e OperationError) Unwrap() error { return e.Err }

// fail prints action's error and returns an OperationError so Execute's
// caller maps it to exit code 1.
func fail(action string, err error) error {
	printError(action, err)
	return OperationError{Err: err}
}

func init() {
	RootCmd.SilenceUsage = true
	RootCmd.SilenceErrors = true

	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	RootCmd.AddCommand(initCmd)
	RootCmd.AddCommand(keygenCmd)
	RootCmd.AddCommand(exportKeyCmd)
	RootCmd.AddCommand(unlockCmd)
	RootCmd.AddCommand(lockCmd)
	RootCmd.AddCommand(statusCmd)
	RootCmd.AddCommand(cleanCmd)
	RootCmd.AddCommand(smudgeCmd)
	RootCmd.AddCommand(diffCmd)
}

// printError prints an operation failure to standard error in the
// application's error color; the exit code is decided by fail's returned
// OperationError, not here. It never
// writes to standard output, which the clean/smudge/diff commands treat
// as reserved for payload bytes.
func printError(action string, err error) {
	fmt.Fprintf(os.Stderr, "%s %s: %v\n", ui.Error.Sprint("✗"), action, err)
}

