package procchannel

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	kerrors "github.com/gitcrypt-go/gitcrypt/internal/errors"
	"golang.org/x/sync/errgroup"
)

// Channel represents one child process invocation with concurrently
// drained standard streams. It is the sole point in this module that
// touches os/exec.
type Channel struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.ReadCloser
	done   bool
}

// Options configures a child process invocation.
type Options struct {
	// Name is the executable to run, resolved via PATH.
	Name string
	// Args are the command-line arguments, not including Name.
	Args []string
	// Dir is the working directory for the child, or "" for the caller's.
	Dir string
	// CaptureStderr routes the child's stderr into the returned error
	// instead of the parent's own stderr. Only Run honors it; a Channel
	// from Start always inherits the parent's stderr.
	CaptureStderr bool
}

// Run starts opts.Name, streams the given input to its standard input,
// waits for it to exit, and returns its standard output. Standard
// input and standard output are drained concurrently via an errgroup so
// that a child which fills its output pipe before consuming all of its
// input cannot deadlock the invocation.
func Run(ctx context.Context, opts Options, input io.Reader) ([]byte, error) {
	cmd := exec.CommandContext(ctx, opts.Name, opts.Args...)
	cmd.Dir = opts.Dir

	var stderrBuf bytes.Buffer
	if opts.CaptureStderr {
		cmd.Stderr = &stderrBuf
	} else {
		cmd.Stderr = os.Stderr
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, kerrors.ErrHostVcsFailure
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, kerrors.ErrHostVcsFailure
	}

	if err := cmd.Start(); err != nil {
		return nil, kerrors.ErrHostVcsFailure
	}

	group, _ := errgroup.WithContext(ctx)
	var output []byte

	group.Go(func() error {
		defer stdin.Close()
		if input == nil {
			return nil
		}
		_, err := io.Copy(stdin, input)
		return err
	})
	group.Go(func() error {
		var err error
		output, err = io.ReadAll(stdout)
		return err
	})

	drainErr := group.Wait()
	waitErr := cmd.Wait()

	if waitErr != nil {
		if opts.CaptureStderr && stderrBuf.Len() > 0 {
			return nil, fmt.Errorf("%s: %w: %s", opts.Name, kerrors.ErrHostVcsFailure, bytes.TrimSpace(stderrBuf.Bytes()))
		}
		return nil, fmt.Errorf("%s: %w", opts.Name, kerrors.ErrHostVcsFailure)
	}
	if drainErr != nil {
		return nil, kerrors.ErrIoFailure
	}
	return output, nil
}

// Start opens a long-lived Channel for callers that need to interleave
// writes and reads themselves, such as a batch attribute query that
// streams names in and reads triples out on the same connection.
func Start(ctx context.Context, opts Options) (*Channel, error) {
	cmd := exec.CommandContext(ctx, opts.Name, opts.Args...)
	cmd.Dir = opts.Dir
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, kerrors.ErrHostVcsFailure
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, kerrors.ErrHostVcsFailure
	}
	if err := cmd.Start(); err != nil {
		return nil, kerrors.ErrHostVcsFailure
	}
	return &Channel{cmd: cmd, stdin: stdin, stdout: stdout}, nil
}

// Write sends p to the child's standard input.
func (c *Channel) Write(p []byte) (int, error) {
	return c.stdin.Write(p)
}

// Read reads from the child's standard output.
func (c *Channel) Read(p []byte) (int, error) {
	return c.stdout.Read(p)
}

// CloseWrite signals end-of-input to the child without waiting for exit,
// which most attribute-query and filter subcommands require before they
// will flush their final output.
func (c *Channel) CloseWrite() error {
	return c.stdin.Close()
}

// Wait closes the read side and waits for the child to exit.
func (c *Channel) Wait() error {
	_ = c.stdout.Close()
	err := c.cmd.Wait()
	c.done = true
	if err != nil {
		return kerrors.ErrHostVcsFailure
	}
	return nil
}

// Kill terminates the child immediately. Safe to call after Wait (a
// no-op in that case); used on cancellation to ensure waiting on a
// killed child never hangs.
func (c *Channel) Kill() error {
	if c.done || c.cmd.Process == nil {
		return nil
	}
	return c.cmd.Process.Kill()
}
