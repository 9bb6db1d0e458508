package smbios

import "encoding/binary"

// Handle identifies a structure within one table snapshot. Other structures
// refer to it through handle-typed fields.
type Handle uint16

// Fields is the formatted area of a structure: the header followed by the
// type-specific fields, exactly Length bytes. Offsets passed to its methods
// are relative to the start of the header, matching the numbering used by
// DSP0134. Every read is bounds checked and reports ok=false instead of
// reaching into the string area or a neighbouring structure.
type Fields []byte

// Len returns the declared length of the formatted area.
func (f Fields) Len() int {
	return len(f)
}

// Byte reads the uint8 at offset.
func (f Fields) Byte(offset int) (uint8, bool) {
	b, ok := f.span(offset, 1)
	if !ok {
		return 0, false
	}
	return b[0], true
}

// Word reads the little-endian uint16 at offset.
func (f Fields) Word(offset int) (uint16, bool) {
	b, ok := f.span(offset, 2)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint16(b), true
}

// DWord reads the little-endian uint32 at offset.
func (f Fields) DWord(offset int) (uint32, bool) {
	b, ok := f.span(offset, 4)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint32(b), true
}

// QWord reads the little-endian uint64 at offset.
func (f Fields) QWord(offset int) (uint64, bool) {
	b, ok := f.span(offset, 8)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint64(b), true
}

// Handle reads a handle reference at offset.
func (f Fields) Handle(offset int) (Handle, bool) {
	w, ok := f.Word(offset)
	return Handle(w), ok
}

// Raw returns the bytes in [start, end) for variable-length sub-blocks such
// as contained handle lists. The returned slice aliases the table buffer and
// must not be modified.
func (f Fields) Raw(start, end int) ([]byte, bool) {
	if start < 0 || end < start || end > len(f) {
		return nil, false
	}
	return f[start:end:end], true
}

func (f Fields) span(offset, width int) ([]byte, bool) {
	if offset < 0 || offset > len(f)-width {
		return nil, false
	}
	return f[offset : offset+width], true
}
