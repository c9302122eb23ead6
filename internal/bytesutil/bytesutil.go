// Package bytesutil provides the small, dependency-free primitives that
// the key-file and envelope codecs build on: big-endian integer framing, a
// constant-time comparison for secrets, and a wipe routine for zeroing
// buffers that held key material.
package bytesutil

import "runtime"

// PutUint32BE writes v into the first 4 bytes of b in big-endian order.
// It panics if b is shorter than 4 bytes, matching encoding/binary's
// behavior for the same class of helper.
func PutUint32BE(b []byte, v uint32) {
	_ = b[3]
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}

// Uint32BE reads a big-endian uint32 from the first 4 bytes of b.
// It panics if b is shorter than 4 bytes.
func Uint32BE(b []byte) uint32 {
	_ = b[3]
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

// ConstantTimeEqual reports whether a and b are equal, taking time
// dependent only on len(a) and not on the position of the first mismatch.
// Unequal lengths are reported unequal without inspecting either slice's
// full contents beyond determining len.
func ConstantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var diff byte
	for i := range a {
		diff |= a[i] ^ b[i]
	}
	return diff == 0
}

// Wipe overwrites every byte of buf with zero. runtime.KeepAlive after the
// loop stops the compiler from proving the writes are dead and eliding
// them, which a plain "clear before drop" would otherwise be vulnerable to.
func Wipe(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
	runtime.KeepAlive(buf)
}
