package envelope

import (
	"bytes"
	"testing"

	kerrors "github.com/gitcrypt-go/gitcrypt/internal/errors"
	"github.com/gitcrypt-go/gitcrypt/internal/keyfile"
)

func newTestFile(t *testing.T) (*keyfile.File, *keyfile.Entry) {
	t.Helper()
	f, err := keyfile.GenerateFile("")
	if err != nil {
		t.Fatalf("GenerateFile: %v", err)
	}
	entry, err := f.Latest()
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	return f, entry
}

func TestEmptyPlaintextYieldsTwentyTwoOctets(t *testing.T) {
	_, entry := newTestFile(t)
	var out bytes.Buffer
	if err := Encrypt(bytes.NewReader(nil), entry, &out); err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if out.Len() != 22 {
		t.Fatalf("envelope length = %d, want 22", out.Len())
	}
}

func TestRoundTrip(t *testing.T) {
	f, entry := newTestFile(t)
	plaintext := []byte("the quick brown fox jumps over the lazy dog")

	var ciphertext bytes.Buffer
	if err := Encrypt(bytes.NewReader(plaintext), entry, &ciphertext); err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	var recovered bytes.Buffer
	if err := Decrypt(bytes.NewReader(ciphertext.Bytes()), f, &recovered); err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if !bytes.Equal(recovered.Bytes(), plaintext) {
		t.Fatalf("round trip mismatch: got %q, want %q", recovered.Bytes(), plaintext)
	}
}

func TestEncryptIsDeterministic(t *testing.T) {
	_, entry := newTestFile(t)
	plaintext := []byte("stable content across commits")

	var first, second bytes.Buffer
	if err := Encrypt(bytes.NewReader(plaintext), entry, &first); err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if err := Encrypt(bytes.NewReader(plaintext), entry, &second); err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Fatal("encrypting identical plaintext under the same entry produced different envelopes")
	}
}

func TestEncryptOneBlockCiphertextLength(t *testing.T) {
	_, entry := newTestFile(t)
	plaintext := bytes.Repeat([]byte{'a'}, 16)

	var out bytes.Buffer
	if err := Encrypt(bytes.NewReader(plaintext), entry, &out); err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if out.Len() != 22+16 {
		t.Fatalf("envelope length = %d, want %d", out.Len(), 22+16)
	}
}

func TestDecryptFallsThroughOnMissingMagic(t *testing.T) {
	f, _ := newTestFile(t)
	plain := []byte("hello")

	var out bytes.Buffer
	if err := Decrypt(bytes.NewReader(plain), f, &out); err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if !bytes.Equal(out.Bytes(), plain) {
		t.Fatalf("fall-through output = %q, want %q", out.Bytes(), plain)
	}
}

func TestDecryptFallsThroughOnEmptyInput(t *testing.T) {
	f, _ := newTestFile(t)
	var out bytes.Buffer
	if err := Decrypt(bytes.NewReader(nil), f, &out); err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected empty output, got %d octets", out.Len())
	}
}

func TestDecryptFailsWhenKeyUnavailable(t *testing.T) {
	_, entry := newTestFile(t)
	plaintext := []byte("secret content")

	var ciphertext bytes.Buffer
	if err := Encrypt(bytes.NewReader(plaintext), entry, &ciphertext); err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	empty, err := keyfile.NewFile("")
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}

	var out bytes.Buffer
	err = Decrypt(bytes.NewReader(ciphertext.Bytes()), empty, &out)
	if err != kerrors.ErrKeyUnavailable {
		t.Fatalf("got %v, want ErrKeyUnavailable", err)
	}
}

func TestDecryptTriesEveryEntryForOlderCiphertext(t *testing.T) {
	f, err := keyfile.GenerateFile("")
	if err != nil {
		t.Fatalf("GenerateFile: %v", err)
	}
	original, err := f.Latest()
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}

	plaintext := []byte("encrypted before the key was rotated")
	var ciphertext bytes.Buffer
	if err := Encrypt(bytes.NewReader(plaintext), original, &ciphertext); err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	if _, err := f.AddGenerated(); err != nil {
		t.Fatalf("AddGenerated: %v", err)
	}

	var recovered bytes.Buffer
	if err := Decrypt(bytes.NewReader(ciphertext.Bytes()), f, &recovered); err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if !bytes.Equal(recovered.Bytes(), plaintext) {
		t.Fatalf("round trip through rotated key file mismatch: got %q, want %q", recovered.Bytes(), plaintext)
	}
}

func TestFallThroughDetection(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want bool
	}{
		{"empty", nil, true},
		{"short", []byte("ab"), true},
		{"wrong magic", bytes.Repeat([]byte{'x'}, magicSize), true},
		{"correct magic", []byte(Magic), false},
	}
	for _, c := range cases {
		if got := FallThrough(c.data); got != c.want {
			t.Errorf("FallThrough(%s) = %v, want %v", c.name, got, c.want)
		}
	}
}
