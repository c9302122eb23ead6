package keyfile

import (
	"bytes"
	"testing"

	kerrors "github.com/gitcrypt-go/gitcrypt/internal/errors"
	"github.com/gitcrypt-go/gitcrypt/internal/streamcrypto"
)

func TestGenerateFileRoundTrip(t *testing.T) {
	f, err := GenerateFile("")
	if err != nil {
		t.Fatalf("GenerateFile: %v", err)
	}
	data, err := f.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	parsed, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	latest, err := parsed.Latest()
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	want, err := f.Latest()
	if err != nil {
		t.Fatalf("Latest (original): %v", err)
	}
	if !bytes.Equal(latest.CipherKey, want.CipherKey) || !bytes.Equal(latest.MacKey, want.MacKey) {
		t.Fatal("round-tripped entry keys do not match the original")
	}
}

func TestNamedFileWithTwoEntriesRoundTrip(t *testing.T) {
	f, err := NewFile("team-A")
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	e1, err := GenerateEntry(1)
	if err != nil {
		t.Fatalf("GenerateEntry(1): %v", err)
	}
	if err := f.Add(e1); err != nil {
		t.Fatalf("Add(1): %v", err)
	}
	e2, err := GenerateEntry(2)
	if err != nil {
		t.Fatalf("GenerateEntry(2): %v", err)
	}
	if err := f.Add(e2); err != nil {
		t.Fatalf("Add(2): %v", err)
	}

	data, err := f.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	parsed, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if parsed.Name != "team-A" {
		t.Fatalf("Name = %q, want team-A", parsed.Name)
	}
	latest, err := parsed.Latest()
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest.Version != 2 {
		t.Fatalf("latest version = %d, want 2", latest.Version)
	}
	if _, ok := parsed.Get(1); !ok {
		t.Fatal("version 1 missing after round trip")
	}
}

func TestParseLegacyKeyFile(t *testing.T) {
	data := make([]byte, streamcrypto.KeySize+streamcrypto.MacKeySize)
	for i := range data {
		data[i] = byte(i)
	}
	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse legacy: %v", err)
	}
	latest, err := f.Latest()
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest.Version != 0 {
		t.Fatalf("legacy entry version = %d, want 0", latest.Version)
	}
	if !bytes.Equal(latest.CipherKey, data[:streamcrypto.KeySize]) {
		t.Fatal("legacy cipher key mismatch")
	}
	if !bytes.Equal(latest.MacKey, data[streamcrypto.KeySize:]) {
		t.Fatal("legacy MAC key mismatch")
	}
}

func TestParseLegacyRejectsWrongLength(t *testing.T) {
	data := make([]byte, legacySize-1)
	if _, err := Parse(data); err != kerrors.ErrMalformedKeyFile {
		t.Fatalf("got %v, want ErrMalformedKeyFile", err)
	}
}

func TestParseTruncatedEntryIsMalformed(t *testing.T) {
	f, err := GenerateFile("")
	if err != nil {
		t.Fatalf("GenerateFile: %v", err)
	}
	data, err := f.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	truncated := data[:len(data)-4]
	if _, err := Parse(truncated); err != kerrors.ErrMalformedKeyFile {
		t.Fatalf("got %v, want ErrMalformedKeyFile", err)
	}
}

func TestParseUnknownEvenFieldIsSkipped(t *testing.T) {
	f, err := GenerateFile("")
	if err != nil {
		t.Fatalf("GenerateFile: %v", err)
	}
	data, err := f.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	// Splice an unknown, even (skippable) field into the header, just
	// before its terminator, which sits right after the preamble + version.
	headerStart := len(preamble) + 4
	var spliced []byte
	spliced = append(spliced, data[:headerStart]...)
	spliced = appendField(spliced, 200, []byte("future-use"))
	spliced = append(spliced, data[headerStart:]...)

	if _, err := Parse(spliced); err != nil {
		t.Fatalf("Parse with unknown even field: %v", err)
	}
}

func TestParseUnknownOddFieldIsIncompatible(t *testing.T) {
	f, err := GenerateFile("")
	if err != nil {
		t.Fatalf("GenerateFile: %v", err)
	}
	data, err := f.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	headerStart := len(preamble) + 4
	var spliced []byte
	spliced = append(spliced, data[:headerStart]...)
	spliced = appendField(spliced, 201, []byte("future-critical"))
	spliced = append(spliced, data[headerStart:]...)

	if _, err := Parse(spliced); err != kerrors.ErrIncompatibleKeyFile {
		t.Fatalf("got %v, want ErrIncompatibleKeyFile", err)
	}
}

func TestParseRejectsOversizedField(t *testing.T) {
	var buf []byte
	buf = append(buf, preamble...)
	buf = appendU32(buf, CurrentFormatVersion)
	buf = appendField(buf, headerFieldName, bytes.Repeat([]byte{'a'}, 1)) // placeholder, will overwrite length below
	// Overwrite the length prefix we just wrote with an over-the-cap value.
	lenOffset := len(buf) - 1 - 4
	appendU32InPlace(buf[lenOffset:lenOffset+4], maxFieldLen+1)

	if _, err := Parse(buf); err != kerrors.ErrMalformedKeyFile {
		t.Fatalf("got %v, want ErrMalformedKeyFile", err)
	}
}

func TestParseRejectsNewerFormatVersion(t *testing.T) {
	var buf []byte
	buf = append(buf, preamble...)
	buf = appendU32(buf, CurrentFormatVersion+1)
	buf = appendU32(buf, fieldTerminator)

	if _, err := Parse(buf); err != kerrors.ErrIncompatibleKeyFile {
		t.Fatalf("got %v, want ErrIncompatibleKeyFile", err)
	}
}

func TestAddDuplicateVersionFails(t *testing.T) {
	f, err := NewFile("")
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	e1, err := GenerateEntry(0)
	if err != nil {
		t.Fatalf("GenerateEntry: %v", err)
	}
	if err := f.Add(e1); err != nil {
		t.Fatalf("Add: %v", err)
	}
	e2, err := GenerateEntry(0)
	if err != nil {
		t.Fatalf("GenerateEntry: %v", err)
	}
	if err := f.Add(e2); err != kerrors.ErrVersionExists {
		t.Fatalf("got %v, want ErrVersionExists", err)
	}
}

func TestAddGeneratedExtendsVersions(t *testing.T) {
	f, err := GenerateFile("")
	if err != nil {
		t.Fatalf("GenerateFile: %v", err)
	}
	entry, err := f.AddGenerated()
	if err != nil {
		t.Fatalf("AddGenerated: %v", err)
	}
	if entry.Version != 1 {
		t.Fatalf("generated version = %d, want 1", entry.Version)
	}
	latest, err := f.Latest()
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest.Version != 1 {
		t.Fatalf("latest version = %d, want 1", latest.Version)
	}
}

func TestValidateNameRejectsBadCharacters(t *testing.T) {
	cases := []string{"", "a/b", "a\\b", "a:b", "a\x00b", string(make([]byte, MaxNameLength+1))}
	for _, name := range cases {
		if err := ValidateName(name); err != kerrors.ErrInvalidKeyName {
			t.Errorf("ValidateName(%q) = %v, want ErrInvalidKeyName", name, err)
		}
	}
}

func TestValidateNameAcceptsOrdinaryName(t *testing.T) {
	if err := ValidateName("team-A"); err != nil {
		t.Fatalf("ValidateName(team-A) = %v, want nil", err)
	}
}

func TestDestroyWipesKeyMaterial(t *testing.T) {
	f, err := GenerateFile("")
	if err != nil {
		t.Fatalf("GenerateFile: %v", err)
	}
	entry, err := f.Latest()
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	cipherKey := entry.CipherKey
	f.Destroy()
	zero := make([]byte, len(cipherKey))
	if !bytes.Equal(cipherKey, zero) {
		t.Fatal("cipher key not wiped after Destroy")
	}
	if f.IsFilled() {
		t.Fatal("file still reports entries after Destroy")
	}
}

// appendField and appendU32 are small test-only helpers for constructing
// malformed or forward-compatible wire fragments by hand.

func appendU32(buf []byte, v uint32) []byte {
	var b [4]byte
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
	return append(buf, b[:]...)
}

func appendU32InPlace(dst []byte, v uint32) {
	dst[0] = byte(v >> 24)
	dst[1] = byte(v >> 16)
	dst[2] = byte(v >> 8)
	dst[3] = byte(v)
}

func appendField(buf []byte, id uint32, payload []byte) []byte {
	buf = appendU32(buf, id)
	buf = appendU32(buf, uint32(len(payload)))
	buf = append(buf, payload...)
	return buf
}
