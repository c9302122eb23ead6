package keyfile

import (
	"crypto/rand"
	"io"

	"github.com/gitcrypt-go/gitcrypt/internal/bytesutil"
	"github.com/gitcrypt-go/gitcrypt/internal/streamcrypto"
)

// Entry is one (cipher key, MAC key, version) triple. CipherKey is always
// streamcrypto.KeySize octets and MacKey always streamcrypto.MacKeySize
// octets; both are secret and must be wiped with Destroy once no longer
// needed.
type Entry struct {
	Version   uint32
	CipherKey []byte
	MacKey    []byte
}

// GenerateEntry creates a fresh entry at the given version with
// cryptographically random cipher and MAC keys.
func GenerateEntry(version uint32) (*Entry, error) {
	cipherKey := make([]byte, streamcrypto.KeySize)
	if _, err := io.ReadFull(rand.Reader, cipherKey); err != nil {
		return nil, err
	}
	macKey := make([]byte, streamcrypto.MacKeySize)
	if _, err := io.ReadFull(rand.Reader, macKey); err != nil {
		return nil, err
	}
	return &Entry{Version: version, CipherKey: cipherKey, MacKey: macKey}, nil
}

// Destroy wipes both secret buffers. The entry must not be used afterward.
func (e *Entry) Destroy() {
	bytesutil.Wipe(e.CipherKey)
	bytesutil.Wipe(e.MacKey)
}
