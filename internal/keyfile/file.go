package keyfile

import (
	kerrors "github.com/gitcrypt-go/gitcrypt/internal/errors"
)

// MaxNameLength is the maximum length in octets of a key name.
const MaxNameLength = 128

// File is a named collection of key entries. A zero-value name denotes the
// default (unnamed) key. Entries are mutated only by Add; File never
// exposes a way to edit or remove an existing entry.
type File struct {
	Name    string
	entries map[uint32]*Entry
}

// NewFile constructs an empty key file with the given name. Pass "" for
// the default key. Returns ErrInvalidKeyName if name is non-empty and
// violates the naming rules.
func NewFile(name string) (*File, error) {
	if name != "" {
		if err := ValidateName(name); err != nil {
			return nil, err
		}
	}
	return &File{Name: name, entries: make(map[uint32]*Entry)}, nil
}

// GenerateFile creates a new key file with a single freshly generated
// entry at version 0, as keygen and init do.
func GenerateFile(name string) (*File, error) {
	f, err := NewFile(name)
	if err != nil {
		return nil, err
	}
	entry, err := GenerateEntry(0)
	if err != nil {
		return nil, err
	}
	if err := f.Add(entry); err != nil {
		return nil, err
	}
	return f, nil
}

// Add inserts entry by its Version. Replacing an existing version is an
// error: entries are never edited, only added.
func (f *File) Add(entry *Entry) error {
	if _, exists := f.entries[entry.Version]; exists {
		return kerrors.ErrVersionExists
	}
	f.entries[entry.Version] = entry
	return nil
}

// AddGenerated generates a fresh entry at one past the current latest
// version (or version 0 if the file is empty) and adds it, returning the
// new entry. This is how rotation extends a key file.
func (f *File) AddGenerated() (*Entry, error) {
	next := uint32(0)
	if latest, err := f.Latest(); err == nil {
		next = latest.Version + 1
	}
	entry, err := GenerateEntry(next)
	if err != nil {
		return nil, err
	}
	if err := f.Add(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Latest returns the entry with the largest version. Returns ErrNoEntries
// if the file has no entries.
func (f *File) Latest() (*Entry, error) {
	if len(f.entries) == 0 {
		return nil, kerrors.ErrNoEntries
	}
	var best *Entry
	for _, e := range f.entries {
		if best == nil || e.Version > best.Version {
			best = e
		}
	}
	return best, nil
}

// Get returns the entry at the given version, if present.
func (f *File) Get(version uint32) (*Entry, bool) {
	e, ok := f.entries[version]
	return e, ok
}

// Versions returns every version present, in ascending order.
func (f *File) Versions() []uint32 {
	versions := make([]uint32, 0, len(f.entries))
	for v := range f.entries {
		versions = append(versions, v)
	}
	for i := 1; i < len(versions); i++ {
		for j := i; j > 0 && versions[j-1] > versions[j]; j-- {
			versions[j-1], versions[j] = versions[j], versions[j-1]
		}
	}
	return versions
}

// IsFilled reports whether the file has at least one entry.
func (f *File) IsFilled() bool {
	return len(f.entries) > 0
}

// Destroy wipes every entry's secret key material and clears the entry
// map. The file must not be used afterward.
func (f *File) Destroy() {
	for _, e := range f.entries {
		e.Destroy()
	}
	f.entries = make(map[uint32]*Entry)
}

// ValidateName reports whether name satisfies the key-name rules: non-empty,
// at most MaxNameLength octets, no control octet ([0x00-0x1F] or 0x7F), and
// none of '/', '\\', ':'.
func ValidateName(name string) error {
	if name == "" || len(name) > MaxNameLength {
		return kerrors.ErrInvalidKeyName
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c <= 0x1F || c == 0x7F || c == '/' || c == '\\' || c == ':' {
			return kerrors.ErrInvalidKeyName
		}
	}
	return nil
}
