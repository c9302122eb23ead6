package streamcrypto

import (
	"crypto/hmac"
	"crypto/sha1" //nolint:gosec // required by the wire format: 64-octet key, 20-octet tag.
	"hash"

	kerrors "github.com/gitcrypt-go/gitcrypt/internal/errors"
)

const (
	// MacKeySize is the length in octets of the MAC key.
	MacKeySize = 64

	// TagSize is the length in octets of a finalized MAC tag.
	TagSize = 20
)

// MAC is an incremental message authentication code over a 64-octet key,
// fed by any number of Update calls and consumed by exactly one Finalize.
type MAC struct {
	h hash.Hash
}

// NewMAC constructs a MAC keyed by key, which must be exactly MacKeySize
// octets.
func NewMAC(key []byte) (*MAC, error) {
	if len(key) != MacKeySize {
		return nil, kerrors.ErrInvalidKeyLength
	}
	return &MAC{h: hmac.New(sha1.New, key)}, nil
}

// Update feeds additional octets into the running MAC state. It never
// fails: hash.Hash.Write never returns an error for in-memory hashes.
func (m *MAC) Update(p []byte) {
	m.h.Write(p)
}

// Finalize consumes the MAC state and returns the TagSize-octet tag. The
// MAC must not be reused after Finalize.
func (m *MAC) Finalize() []byte {
	return m.h.Sum(nil)
}

// Sum computes the MAC of a single buffer in one call, a convenience
// wrapper around NewMAC/Update/Finalize for callers that already have the
// whole plaintext buffered (as clean's nonce derivation does).
func Sum(key, data []byte) ([]byte, error) {
	m, err := NewMAC(key)
	if err != nil {
		return nil, err
	}
	m.Update(data)
	return m.Finalize(), nil
}
