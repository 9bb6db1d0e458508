package smbios

import (
	"bytes"
	"unicode/utf8"
)

// Strings is the string pool trailing a structure's formatted area. Fields
// refer to entries by 1-based index; index 0 means "no string".
//
// DSP0134 mandates no encoding, so text is produced by mapping every byte to
// the code point of the same value. The mapping is lossless: the original
// bytes are always available through Bytes.
type Strings struct {
	entries [][]byte
}

// decodeStrings splits the area between the formatted section and the
// terminating double NUL into pool entries.
func decodeStrings(area []byte) Strings {
	if len(area) == 0 {
		return Strings{}
	}
	entries := bytes.Split(area, []byte{0x00})
	for i, e := range entries {
		entries[i] = e[:len(e):len(e)]
	}
	return Strings{entries: entries}
}

// Len returns the number of entries in the pool.
func (s Strings) Len() int {
	return len(s.entries)
}

// Get returns the entry referenced by the 1-based index.
func (s Strings) Get(index uint8) (string, bool) {
	b, ok := s.Bytes(index)
	if !ok {
		return "", false
	}
	return widen(b), true
}

// Bytes returns the raw bytes of the entry referenced by the 1-based index.
// The slice aliases the table buffer and must not be modified.
func (s Strings) Bytes(index uint8) ([]byte, bool) {
	if index == 0 || int(index) > len(s.entries) {
		return nil, false
	}
	return s.entries[index-1], true
}

// Values returns every entry in pool order. Each call builds a new slice.
func (s Strings) Values() []string {
	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = widen(e)
	}
	return out
}

func widen(b []byte) string {
	ascii := true
	for _, c := range b {
		if c >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		return string(b)
	}

	out := make([]byte, 0, len(b)*2)
	for _, c := range b {
		out = utf8.AppendRune(out, rune(c))
	}
	return string(out)
}
