// Package envelope implements the on-disk encrypted file format: a fixed
// magic tag, a 12-octet nonce derived deterministically from the
// plaintext, and a counter-mode ciphertext body.
//
// Encrypt buffers the entire plaintext (the nonce is a function of the
// whole input, so streaming encryption from the first octet is not
// possible). Decrypt falls through — copying input to output verbatim —
// whenever the input does not open with the magic tag, which is what
// lets the filter driver run harmlessly over files that were never
// encrypted, or that are being processed while the repository is locked.
//
// The construction is deliberately non-AEAD and deterministic: the nonce
// is an HMAC-SHA1 over the plaintext rather than random, because the
// design goal is identical plaintext producing identical ciphertext
// (stable diffs across commits of unchanged content).
package envelope
