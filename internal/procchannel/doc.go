// Package procchannel runs the host VCS binary (and its attribute/filter
// subcommands) as a child process. A naive sequential write-then-read
// against an exec.Cmd's pipes deadlocks once either side fills its OS pipe
// buffer; Run avoids that by writing stdin and reading stdout in two
// concurrent goroutines under golang.org/x/sync/errgroup, while stderr is
// either inherited or collected into a buffer by os/exec. Start returns a
// Channel whose caller does its own interleaving of writes and reads.
package procchannel
