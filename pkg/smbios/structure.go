package smbios

import "fmt"

// headerLength is the size of the header every structure starts with.
const headerLength = 4

// Header is the fixed 4-byte prefix of every structure.
type Header struct {
	Type   Type
	Length uint8 // header plus formatted fields, excluding the string pool
	Handle Handle
}

func (h Header) String() string {
	return fmt.Sprintf("type %d (%s), length %d, handle %#04x", uint8(h.Type), h.Type, h.Length, uint16(h.Handle))
}

// Structure is one record of a structure table. It is a view into the
// buffer owned by its Table: no bytes are copied, and it stays valid for as
// long as that buffer is left unmodified.
type Structure struct {
	Header Header

	offset  int
	span    []byte
	fields  Fields
	strings Strings
}

func newStructure(offset int, span []byte) Structure {
	length := int(span[1])
	return Structure{
		Header: Header{
			Type:   Type(span[0]),
			Length: span[1],
			Handle: Handle(uint16(span[2]) | uint16(span[3])<<8),
		},
		offset:  offset,
		span:    span,
		fields:  Fields(span[:length:length]),
		strings: decodeStrings(span[length : len(span)-2]),
	}
}

// Type returns the structure type from the header.
func (s Structure) Type() Type {
	return s.Header.Type
}

// Handle returns the structure's own handle.
func (s Structure) Handle() Handle {
	return s.Header.Handle
}

// Offset returns the position of the structure within the table buffer.
func (s Structure) Offset() int {
	return s.offset
}

// Bytes returns the full encoded structure, including the string pool and
// its double NUL terminator.
func (s Structure) Bytes() []byte {
	return s.span
}

// Fields returns the formatted area.
func (s Structure) Fields() Fields {
	return s.fields
}

// Strings returns the string pool.
func (s Structure) Strings() Strings {
	return s.strings
}

// Byte reads the uint8 field at offset.
func (s Structure) Byte(offset int) (uint8, bool) { return s.fields.Byte(offset) }

// Word reads the uint16 field at offset.
func (s Structure) Word(offset int) (uint16, bool) { return s.fields.Word(offset) }

// DWord reads the uint32 field at offset.
func (s Structure) DWord(offset int) (uint32, bool) { return s.fields.DWord(offset) }

// QWord reads the uint64 field at offset.
func (s Structure) QWord(offset int) (uint64, bool) { return s.fields.QWord(offset) }

// HandleField reads a handle reference at offset.
func (s Structure) HandleField(offset int) (Handle, bool) { return s.fields.Handle(offset) }

// Raw returns the formatted bytes in [start, end).
func (s Structure) Raw(start, end int) ([]byte, bool) { return s.fields.Raw(start, end) }

// StringAt reads the string index stored at offset and resolves it in the
// pool. A zero index, an index past the pool or an offset beyond the
// formatted area all report ok=false.
func (s Structure) StringAt(offset int) (string, bool) {
	idx, ok := s.fields.Byte(offset)
	if !ok {
		return "", false
	}
	return s.strings.Get(idx)
}
