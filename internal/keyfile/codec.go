package keyfile

import (
	"bufio"
	"bytes"
	"io"

	"github.com/gitcrypt-go/gitcrypt/internal/bytesutil"
	kerrors "github.com/gitcrypt-go/gitcrypt/internal/errors"
	"github.com/gitcrypt-go/gitcrypt/internal/streamcrypto"
)

// preamble is the fixed 12-octet magic that opens a new-format key file:
// NUL followed by the ASCII literal "GITCRYPTKEY".
var preamble = []byte("\x00GITCRYPTKEY")

// CurrentFormatVersion is the new-format key-file version this package
// writes and the only one it understands how to read.
const CurrentFormatVersion uint32 = 2

// legacySize is the exact length of a legacy key file: a 32-octet cipher
// key followed by a 64-octet MAC key.
const legacySize = streamcrypto.KeySize + streamcrypto.MacKeySize

// maxFieldLen caps any single tagged-field payload to guard against a
// corrupt or hostile length prefix causing an unbounded allocation.
const maxFieldLen = 1 << 20

const (
	headerFieldName = 1

	entryFieldVersion   = 1
	entryFieldCipherKey = 3
	entryFieldMacKey    = 5

	fieldTerminator = 0
)

// Parse decodes a key file from data, trying the new tagged-field format
// first and falling back to the fixed 96-octet legacy format. It never
// retains partial state on error.
func Parse(data []byte) (*File, error) {
	if len(data) >= len(preamble) && bytes.Equal(data[:len(preamble)], preamble) {
		return parseNewFormat(data)
	}
	return parseLegacyFormat(data)
}

func parseLegacyFormat(data []byte) (*File, error) {
	if len(data) != legacySize {
		return nil, kerrors.ErrMalformedKeyFile
	}
	entry := &Entry{
		Version:   0,
		CipherKey: append([]byte(nil), data[:streamcrypto.KeySize]...),
		MacKey:    append([]byte(nil), data[streamcrypto.KeySize:]...),
	}
	f, err := NewFile("")
	if err != nil {
		return nil, err
	}
	if err := f.Add(entry); err != nil {
		return nil, err
	}
	return f, nil
}

func parseNewFormat(data []byte) (*File, error) {
	r := bufio.NewReader(bytes.NewReader(data[len(preamble):]))

	version, err := readU32(r)
	if err != nil {
		return nil, kerrors.ErrMalformedKeyFile
	}
	if version != CurrentFormatVersion {
		return nil, kerrors.ErrIncompatibleKeyFile
	}

	name, err := parseHeader(r)
	if err != nil {
		return nil, err
	}

	f, err := NewFile(name)
	if err != nil {
		return nil, err
	}

	for {
		more, err := r.Peek(1)
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, kerrors.ErrMalformedKeyFile
		}
		if len(more) == 0 {
			break
		}
		entry, err := parseEntry(r)
		if err != nil {
			return nil, err
		}
		if err := f.Add(entry); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func parseHeader(r *bufio.Reader) (string, error) {
	name := ""
	for {
		id, payload, term, err := readField(r)
		if err != nil {
			return "", err
		}
		if term {
			return name, nil
		}
		switch {
		case id == headerFieldName:
			if len(payload) > MaxNameLength {
				return "", kerrors.ErrMalformedKeyFile
			}
			name = string(payload)
		case id%2 == 1:
			return "", kerrors.ErrIncompatibleKeyFile
		default:
			// Even, unrecognized: skip (already consumed).
		}
	}
}

func parseEntry(r *bufio.Reader) (*Entry, error) {
	var (
		version   uint32
		haveVer   bool
		cipherKey []byte
		macKey    []byte
	)
	for {
		id, payload, term, err := readField(r)
		if err != nil {
			return nil, err
		}
		if term {
			if !haveVer || cipherKey == nil || macKey == nil {
				return nil, kerrors.ErrMalformedKeyFile
			}
			return &Entry{Version: version, CipherKey: cipherKey, MacKey: macKey}, nil
		}
		switch {
		case id == entryFieldVersion:
			if len(payload) != 4 {
				return nil, kerrors.ErrMalformedKeyFile
			}
			version = bytesutil.Uint32BE(payload)
			haveVer = true
		case id == entryFieldCipherKey:
			if len(payload) != streamcrypto.KeySize {
				return nil, kerrors.ErrMalformedKeyFile
			}
			cipherKey = payload
		case id == entryFieldMacKey:
			if len(payload) != streamcrypto.MacKeySize {
				return nil, kerrors.ErrMalformedKeyFile
			}
			macKey = payload
		case id%2 == 1:
			return nil, kerrors.ErrIncompatibleKeyFile
		default:
			// Even, unrecognized: skip.
		}
	}
}

// readField reads one tagged-field record: a 4-octet big-endian id, and,
// unless id is the terminator, a 4-octet big-endian length followed by
// that many octets of payload.
func readField(r *bufio.Reader) (id uint32, payload []byte, terminator bool, err error) {
	id, err = readU32(r)
	if err != nil {
		return 0, nil, false, kerrors.ErrMalformedKeyFile
	}
	if id == fieldTerminator {
		return 0, nil, true, nil
	}
	length, err := readU32(r)
	if err != nil {
		return 0, nil, false, kerrors.ErrMalformedKeyFile
	}
	if length > maxFieldLen {
		return 0, nil, false, kerrors.ErrMalformedKeyFile
	}
	payload = make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return 0, nil, false, kerrors.ErrMalformedKeyFile
	}
	return id, payload, false, nil
}

func readU32(r io.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return bytesutil.Uint32BE(b[:]), nil
}

// Serialize encodes the key file into the new tagged-field wire format.
// Entries are written in descending version order.
func (f *File) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(preamble)
	writeU32(&buf, CurrentFormatVersion)

	if f.Name != "" {
		writeField(&buf, headerFieldName, []byte(f.Name))
	}
	writeU32(&buf, fieldTerminator)

	versions := f.Versions()
	for i, j := 0, len(versions)-1; i < j; i, j = i+1, j-1 {
		versions[i], versions[j] = versions[j], versions[i]
	}
	for _, v := range versions {
		entry := f.entries[v]
		var verBuf [4]byte
		bytesutil.PutUint32BE(verBuf[:], entry.Version)
		writeField(&buf, entryFieldVersion, verBuf[:])
		writeField(&buf, entryFieldCipherKey, entry.CipherKey)
		writeField(&buf, entryFieldMacKey, entry.MacKey)
		writeU32(&buf, fieldTerminator)
	}

	return buf.Bytes(), nil
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	bytesutil.PutUint32BE(b[:], v)
	buf.Write(b[:])
}

func writeField(buf *bytes.Buffer, id uint32, payload []byte) {
	writeU32(buf, id)
	writeU32(buf, uint32(len(payload)))
	buf.Write(payload)
}
