package filter

import (
	"io"
	"os"

	"github.com/gitcrypt-go/gitcrypt/internal/envelope"
	kerrors "github.com/gitcrypt-go/gitcrypt/internal/errors"
	"github.com/gitcrypt-go/gitcrypt/internal/keyfile"
)

// Clean reads all of r (plaintext) and writes the encrypted envelope to
// w. Buffering the whole input is required: the nonce is derived from a
// MAC over the complete plaintext. A read failure is reported as
// ErrIoFailure and nothing is written to w.
func Clean(r io.Reader, entry *keyfile.Entry, w io.Writer) error {
	return envelope.Encrypt(r, entry, w)
}

// Smudge reads an envelope from r and writes plaintext to w. Input that
// does not open with the magic tag is copied through unchanged, which is
// how smudge behaves harmlessly on files that were never encrypted or
// that cannot yet be decrypted because the repository is locked.
func Smudge(r io.Reader, file *keyfile.File, w io.Writer) error {
	return envelope.Decrypt(r, file, w)
}

// Diff opens path and writes plaintext to w if the file is an encrypted
// envelope and the key is available, otherwise writes the file's bytes
// verbatim. This mirrors the host VCS's textconv contract: best-effort,
// never fatal to the surrounding diff machinery for an unreadable key.
func Diff(path string, file *keyfile.File, w io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return kerrors.ErrIoFailure
	}
	defer f.Close()

	err = envelope.Decrypt(f, file, w)
	if err == kerrors.ErrKeyUnavailable {
		if _, seekErr := f.Seek(0, io.SeekStart); seekErr != nil {
			return kerrors.ErrIoFailure
		}
		_, copyErr := io.Copy(w, f)
		if copyErr != nil {
			return kerrors.ErrIoFailure
		}
		return nil
	}
	return err
}
