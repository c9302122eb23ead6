// Package filter implements the three operations the host VCS invokes as
// a configured filter driver: clean (stage-time encryption), smudge
// (checkout-time decryption), and diff (best-effort decryption for a
// named file, used by textconv).
//
// Every operation here writes only payload bytes to its designated
// output stream. None of them may use internal/logging for anything
// destined for standard output — the host VCS treats that stream as the
// file's literal contents.
package filter
