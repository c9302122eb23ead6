// Package streamcrypto implements the two stream-oriented primitives the
// envelope codec composes: an AES-256 counter-mode cipher over a 16-octet
// initial counter, and an incremental HMAC-SHA1-shaped MAC over a 64-octet
// key.
//
// Both primitives operate on crypto/aes, crypto/cipher, crypto/hmac, and
// crypto/sha1 directly. The envelope's wire format (32-octet cipher key,
// 64-octet MAC key, 20-octet tag, 16-octet counter split into a 12-octet
// nonce and a 4-octet big-endian block index) is fixed bit-for-bit by the
// key-file and envelope wire format; there is no third-party construction
// to substitute; see DESIGN.md for the fuller justification.
package streamcrypto
