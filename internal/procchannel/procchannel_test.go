package procchannel

import (
	"bytes"
	"context"
	"errors"
	"testing"

	kerrors "github.com/gitcrypt-go/gitcrypt/internal/errors"
)

func TestRunEchoesInput(t *testing.T) {
	out, err := Run(context.Background(), Options{Name: "cat"}, bytes.NewReader([]byte("hello\n")))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if string(out) != "hello\n" {
		t.Fatalf("output = %q, want %q", out, "hello\n")
	}
}

func TestRunNonzeroExitIsHostVcsFailure(t *testing.T) {
	_, err := Run(context.Background(), Options{Name: "false"}, nil)
	if !errors.Is(err, kerrors.ErrHostVcsFailure) {
		t.Fatalf("got %v, want ErrHostVcsFailure", err)
	}
}

func TestRunCapturesStderrOnFailure(t *testing.T) {
	_, err := Run(context.Background(), Options{
		Name:          "sh",
		Args:          []string{"-c", "echo boom >&2; exit 1"},
		CaptureStderr: true,
	}, nil)
	if !errors.Is(err, kerrors.ErrHostVcsFailure) {
		t.Fatalf("got %v, want ErrHostVcsFailure", err)
	}
	if err == nil || !bytes.Contains([]byte(err.Error()), []byte("boom")) {
		t.Fatalf("expected captured stderr in error, got %v", err)
	}
}

func TestStartWriteReadWait(t *testing.T) {
	ch, err := Start(context.Background(), Options{Name: "cat"})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := ch.Write([]byte("ping")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := ch.CloseWrite(); err != nil {
		t.Fatalf("CloseWrite: %v", err)
	}
	buf := make([]byte, 4)
	n, err := ch.Read(buf)
	if err != nil && n == 0 {
		t.Fatalf("Read: %v", err)
	}
	if string(buf[:n]) != "ping" {
		t.Fatalf("read = %q, want %q", buf[:n], "ping")
	}
	if err := ch.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
}

func TestKillAfterWaitIsSafe(t *testing.T) {
	ch, err := Start(context.Background(), Options{Name: "cat"})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	_ = ch.CloseWrite()
	_ = ch.Wait()
	if err := ch.Kill(); err != nil {
		t.Fatalf("Kill after Wait should be safe, got %v", err)
	}
}
