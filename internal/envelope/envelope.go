package envelope

import (
	"bytes"
	"io"

	"github.com/gitcrypt-go/gitcrypt/internal/bytesutil"
	kerrors "github.com/gitcrypt-go/gitcrypt/internal/errors"
	"github.com/gitcrypt-go/gitcrypt/internal/keyfile"
	"github.com/gitcrypt-go/gitcrypt/internal/streamcrypto"
)

// Magic is the fixed 10-octet ASCII literal that opens every envelope.
const Magic = "\x00GITCRYPT\x00"

const (
	magicSize = len(Magic)
	nonceSize = streamcrypto.NonceSize
	headerSize = magicSize + nonceSize
)

// Encrypt reads all of r, derives a deterministic nonce from the
// plaintext under entry's MAC key, and writes magic || nonce || ciphertext
// to w. Identical plaintext under the same entry always yields identical
// output.
func Encrypt(r io.Reader, entry *keyfile.Entry, w io.Writer) error {
	plaintext, err := io.ReadAll(r)
	if err != nil {
		return kerrors.ErrIoFailure
	}

	tag, err := streamcrypto.Sum(entry.MacKey, plaintext)
	if err != nil {
		return err
	}
	nonce := tag[:nonceSize]

	counter := make([]byte, streamcrypto.CounterSize)
	copy(counter, nonce)

	cipher, err := streamcrypto.NewCTRCipher(entry.CipherKey, counter)
	if err != nil {
		return err
	}

	if _, err := w.Write([]byte(Magic)); err != nil {
		return kerrors.ErrIoFailure
	}
	if _, err := w.Write(nonce); err != nil {
		return kerrors.ErrIoFailure
	}

	if err := cipher.StreamCopy(w, bytes.NewReader(plaintext)); err != nil {
		return err
	}
	return nil
}

// FallThrough reports whether header does NOT open with the envelope magic
// tag (including input shorter than the tag). When it returns true, callers
// must copy the input verbatim rather than attempt decryption.
func FallThrough(header []byte) bool {
	if len(header) < magicSize {
		return true
	}
	return string(header[:magicSize]) != Magic
}

// Decrypt reads an envelope from r and writes the recovered plaintext to
// w, trying every entry in file in turn until one of them decrypts the
// stream (see decryptWithAnyEntry). This is what keeps ciphertext
// encrypted under an older, rotated-away key version readable for as
// long as that entry is still present in the installed key file — the
// format never records which version was used at encryption time. If r
// does not begin with the magic tag, its bytes are copied to w verbatim
// and nil is returned (fall-through, not an error). Returns
// ErrKeyUnavailable if the envelope is well-formed but no entry in file
// decrypts it.
func Decrypt(r io.Reader, file *keyfile.File, w io.Writer) error {
	buffered, err := io.ReadAll(r)
	if err != nil {
		return kerrors.ErrIoFailure
	}

	if FallThrough(buffered) {
		_, err := w.Write(buffered)
		if err != nil {
			return kerrors.ErrIoFailure
		}
		return nil
	}

	if len(buffered) < headerSize {
		return kerrors.ErrKeyUnavailable
	}
	nonce := buffered[magicSize:headerSize]
	body := buffered[headerSize:]

	if file == nil || !file.IsFilled() {
		return kerrors.ErrKeyUnavailable
	}

	plaintext, err := decryptWithAnyEntry(file, nonce, body)
	if err != nil {
		return err
	}

	if _, err := w.Write(plaintext); err != nil {
		return kerrors.ErrIoFailure
	}
	return nil
}

// decryptWithAnyEntry tries every entry in file, newest version first,
// and returns the plaintext recovered under the first entry that
// actually matches this envelope.
//
// The format carries no separate integrity tag by design, so "matches"
// is determined by recomputing the nonce: decrypt the body
// with the candidate entry's cipher key, then recompute
// HMAC-SHA1(candidate.MacKey, candidatePlaintext) and compare its first
// NonceSize octets against the envelope's stored nonce. Only the entry
// whose keys actually produced this envelope will reproduce that nonce;
// every other entry yields garbage plaintext that fails the comparison.
func decryptWithAnyEntry(file *keyfile.File, nonce, body []byte) ([]byte, error) {
	versions := file.Versions()
	for i := len(versions) - 1; i >= 0; i-- {
		entry, ok := file.Get(versions[i])
		if !ok {
			continue
		}

		counter := make([]byte, streamcrypto.CounterSize)
		copy(counter, nonce)

		cipher, err := streamcrypto.NewCTRCipher(entry.CipherKey, counter)
		if err != nil {
			continue
		}

		var candidate bytes.Buffer
		if err := cipher.StreamCopy(&candidate, bytes.NewReader(body)); err != nil {
			continue
		}
		plaintext := candidate.Bytes()

		tag, err := streamcrypto.Sum(entry.MacKey, plaintext)
		if err != nil {
			continue
		}
		if bytesutil.ConstantTimeEqual(tag[:nonceSize], nonce) {
			return plaintext, nil
		}
	}
	return nil, kerrors.ErrKeyUnavailable
}
