package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/gitcrypt-go/gitcrypt/cmd"
)

func main() {
	err := cmd.RootCmd.Execute()
	if err == nil {
		os.Exit(0)
	}

	var opErr cmd.OperationError
	if errors.As(err, &opErr) {
		// The failing command has already printed its own diagnostic.
		os.Exit(1)
	}

	// Everything else is a usage error: bad flags, wrong argument count.
	fmt.Fprintln(os.Stderr, err)
	os.Exit(2)
}
