package streamcrypto

import (
	"crypto/aes"
	"crypto/cipher"
	"io"

	kerrors "github.com/gitcrypt-go/gitcrypt/internal/errors"
)

const (
	// KeySize is the length in octets of the AES-256 cipher key.
	KeySize = 32

	// CounterSize is the length in octets of the initial counter block:
	// a 12-octet nonce followed by a 4-octet big-endian block index.
	CounterSize = 16

	// NonceSize is the length in octets of the nonce portion of the counter.
	NonceSize = 12

	// blockSize is the AES block size in octets.
	blockSize = aes.BlockSize

	// maxBlocks bounds the 4-octet big-endian block index: once it would
	// wrap past its 32-bit range, the (key, nonce) pair has been exhausted
	// and processing must stop rather than reuse a counter value.
	maxBlocks = 1 << 32

	// MaxStreamOctets is the largest plaintext/ciphertext length this
	// cipher will process under a single (key, nonce) pair.
	MaxStreamOctets = maxBlocks * blockSize
)

// CTRCipher streams AES-256-CTR encryption or decryption; the operation is
// symmetric, so the same type serves both directions.
type CTRCipher struct {
	stream    cipher.Stream
	processed int64
}

// NewCTRCipher constructs a counter-mode stream keyed by key, starting at
// the given 16-octet initial counter (nonce || block-index-zero).
func NewCTRCipher(key, counter []byte) (*CTRCipher, error) {
	if len(key) != KeySize {
		return nil, kerrors.ErrInvalidKeyLength
	}
	if len(counter) != CounterSize {
		return nil, kerrors.ErrInvalidNonceLength
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	iv := make([]byte, CounterSize)
	copy(iv, counter)

	return &CTRCipher{stream: cipher.NewCTR(block, iv)}, nil
}

// XORKeyStream encrypts (or decrypts) src into dst, which must be at least
// len(src) long. It returns ErrCryptoLimitExceeded once the cumulative
// number of octets processed under this counter would exceed
// MaxStreamOctets, refusing to silently wrap the block index.
func (c *CTRCipher) XORKeyStream(dst, src []byte) error {
	next := c.processed + int64(len(src))
	if next > MaxStreamOctets {
		return kerrors.ErrCryptoLimitExceeded
	}
	c.stream.XORKeyStream(dst, src)
	c.processed = next
	return nil
}

// StreamCopy reads all of r, encrypting/decrypting through c, and writes
// the result to w in bounded chunks so arbitrarily large streams need only
// a small working buffer.
func (c *CTRCipher) StreamCopy(w io.Writer, r io.Reader) error {
	buf := make([]byte, 64*1024)
	out := make([]byte, 64*1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if xerr := c.XORKeyStream(out[:n], buf[:n]); xerr != nil {
				return xerr
			}
			if _, werr := w.Write(out[:n]); werr != nil {
				return werr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
