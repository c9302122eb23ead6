// Package keyfile implements the key-entry and key-file binary format:
// parsing, serialization, generation, and the versioned tagged-field
// discipline that lets the format grow without breaking old readers.
//
// # Wire format
//
// New format:
//
//	preamble: 12 octets "\x00GITCRYPTKEY" + u32be format version (2)
//	header:   (field_id:u32be, field_len:u32be, payload)* terminated by field_id==0
//	entries:  zero or more, each its own tagged-field record sequence
//
// Header field 1 is the key name. Entry fields are 1 (version, 4 octets),
// 3 (cipher key, 32 octets), 5 (MAC key, 64 octets). An odd, unrecognized
// field_id is critical and fails parsing with ErrIncompatibleKeyFile; an
// even one is skipped. Any field_len over 2^20 is rejected as malformed.
//
// Legacy format (read-only): exactly 96 octets, a single entry at version
// 0 with the cipher key at offset 0 and the MAC key at offset 32.
//
// # Unknown-field discipline
//
// This is the format's forward-compatibility mechanism: each field read by
// readField is classified as recognized, skippable-unknown, or
// critical-unknown by the switch in parseEntry and parseHeader.
package keyfile
