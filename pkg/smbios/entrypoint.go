package smbios

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Legacy BIOS address range searched for an entry point on systems without
// firmware tables exposed by the operating system.
const (
	LegacyScanStart int64 = 0xF0000
	LegacyScanEnd   int64 = 0x100000
)

const (
	entryPoint32MinLength = 0x1E // some 2.1 firmware reports 0x1E instead of 0x1F
	entryPoint64MinLength = 0x18

	intermediateOffset = 0x10
	intermediateLength = 0x0F

	scanAlignment = 16
	maxScanRange  = 16 << 20
)

var (
	anchor32           = []byte("_SM_")
	anchor64           = []byte("_SM3_")
	intermediateAnchor = []byte("_DMI_")
)

// Version is the SMBIOS specification version a table conforms to.
type Version struct {
	Major    uint8 `json:"major" yaml:"major"`
	Minor    uint8 `json:"minor" yaml:"minor"`
	Revision uint8 `json:"revision" yaml:"revision"`
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Revision)
}

// AtLeast reports whether v is major.minor or newer.
func (v Version) AtLeast(major, minor uint8) bool {
	if v.Major != major {
		return v.Major > major
	}
	return v.Minor >= minor
}

// An EntryPoint announces the location, size and version of a structure table.
type EntryPoint interface {
	// Version returns the SMBIOS version the table conforms to.
	Version() Version
	// Table returns the physical address of the structure table and its
	// length (32-bit form) or maximum size (64-bit form).
	Table() (address uint64, size uint32)
}

// EntryPoint32 is the legacy SMBIOS 2.1 entry point anchored by "_SM_".
type EntryPoint32 struct {
	Checksum              uint8
	Length                uint8
	Major                 uint8
	Minor                 uint8
	MaxStructureSize      uint16
	EntryPointRevision    uint8
	FormattedArea         [5]byte
	IntermediateChecksum  uint8
	StructureTableLength  uint16
	StructureTableAddress uint32
	NumberOfStructures    uint16
	BCDRevision           uint8
}

// Version implements EntryPoint. The 32-bit form carries no docrev.
func (e *EntryPoint32) Version() Version {
	return Version{Major: e.Major, Minor: e.Minor}
}

// Table implements EntryPoint.
func (e *EntryPoint32) Table() (uint64, uint32) {
	return uint64(e.StructureTableAddress), uint32(e.StructureTableLength)
}

// EntryPoint64 is the SMBIOS 3.0 entry point anchored by "_SM3_".
type EntryPoint64 struct {
	Checksum              uint8
	Length                uint8
	Major                 uint8
	Minor                 uint8
	DocRev                uint8
	EntryPointRevision    uint8
	StructureTableMaxSize uint32
	StructureTableAddress uint64
}

// Version implements EntryPoint.
func (e *EntryPoint64) Version() Version {
	return Version{Major: e.Major, Minor: e.Minor, Revision: e.DocRev}
}

// Table implements EntryPoint. The size is an upper bound; the table ends at
// its End-of-Table structure.
func (e *EntryPoint64) Table() (uint64, uint32) {
	return e.StructureTableAddress, e.StructureTableMaxSize
}

// ParseEntryPoint32 validates and decodes a "_SM_" entry point from b.
func ParseEntryPoint32(b []byte) (*EntryPoint32, error) {
	if !bytes.HasPrefix(b, anchor32) {
		return nil, newError(KindEntryPointNotFound, 0, "missing %q anchor", anchor32)
	}
	length, err := declaredLength(b, 5, entryPoint32MinLength)
	if err != nil {
		return nil, err
	}
	if sum := checksum(b[:length]); sum != 0 {
		return nil, newError(KindEntryChecksumFailed, 4, "bytes sum to %#02x", sum)
	}
	if !bytes.Equal(b[intermediateOffset:intermediateOffset+len(intermediateAnchor)], intermediateAnchor) {
		return nil, newError(KindEntryPointMalformed, intermediateOffset, "missing %q intermediate anchor", intermediateAnchor)
	}
	intermediateEnd := min(intermediateOffset+intermediateLength, len(b))
	if sum := checksum(b[intermediateOffset:intermediateEnd]); sum != 0 {
		return nil, newError(KindIntermediateChecksumFailed, 0x15, "bytes sum to %#02x", sum)
	}

	ep := &EntryPoint32{
		Checksum:              b[0x04],
		Length:                b[0x05],
		Major:                 b[0x06],
		Minor:                 b[0x07],
		MaxStructureSize:      binary.LittleEndian.Uint16(b[0x08:0x0A]),
		EntryPointRevision:    b[0x0A],
		IntermediateChecksum:  b[0x15],
		StructureTableLength:  binary.LittleEndian.Uint16(b[0x16:0x18]),
		StructureTableAddress: binary.LittleEndian.Uint32(b[0x18:0x1C]),
		NumberOfStructures:    binary.LittleEndian.Uint16(b[0x1C:0x1E]),
	}
	copy(ep.FormattedArea[:], b[0x0B:0x10])
	if len(b) > 0x1E {
		ep.BCDRevision = b[0x1E]
	}
	return ep, nil
}

// ParseEntryPoint64 validates and decodes a "_SM3_" entry point from b.
func ParseEntryPoint64(b []byte) (*EntryPoint64, error) {
	if !bytes.HasPrefix(b, anchor64) {
		return nil, newError(KindEntryPointNotFound, 0, "missing %q anchor", anchor64)
	}
	length, err := declaredLength(b, 6, entryPoint64MinLength)
	if err != nil {
		return nil, err
	}
	if sum := checksum(b[:length]); sum != 0 {
		return nil, newError(KindEntryChecksumFailed, 5, "bytes sum to %#02x", sum)
	}

	return &EntryPoint64{
		Checksum:              b[0x05],
		Length:                b[0x06],
		Major:                 b[0x07],
		Minor:                 b[0x08],
		DocRev:                b[0x09],
		EntryPointRevision:    b[0x0A],
		StructureTableMaxSize: binary.LittleEndian.Uint32(b[0x0C:0x10]),
		StructureTableAddress: binary.LittleEndian.Uint64(b[0x10:0x18]),
	}, nil
}

// ParseEntryPoint decodes whichever entry point form b starts with.
func ParseEntryPoint(b []byte) (EntryPoint, error) {
	switch {
	case bytes.HasPrefix(b, anchor64):
		ep, err := ParseEntryPoint64(b)
		if err != nil {
			return nil, err
		}
		return ep, nil
	case bytes.HasPrefix(b, anchor32):
		ep, err := ParseEntryPoint32(b)
		if err != nil {
			return nil, err
		}
		return ep, nil
	default:
		return nil, newError(KindEntryPointNotFound, 0, "no %q or %q anchor", anchor64, anchor32)
	}
}

// ScanEntryPoint searches src between the start and end addresses for a valid
// entry point. Only 16-byte aligned addresses are probed. The first valid
// 64-bit entry point in the range is returned; the first valid 32-bit one is
// used only when the range holds no 64-bit form. Candidates that fail
// validation are skipped.
func ScanEntryPoint(src io.ReaderAt, start, end int64) (EntryPoint, error) {
	if start < 0 || end <= start {
		return nil, newError(KindEntryPointNotFound, -1, "empty scan range [%#x, %#x)", start, end)
	}
	if rem := start % scanAlignment; rem != 0 {
		start += scanAlignment - rem
	}
	if end-start > maxScanRange {
		return nil, newError(KindEntryPointNotFound, -1, "scan range of %d bytes exceeds %d", end-start, maxScanRange)
	}
	if end <= start {
		return nil, newError(KindEntryPointNotFound, -1, "no aligned address in range")
	}

	buf := make([]byte, end-start)
	n, err := src.ReadAt(buf, start)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("smbios: reading scan range: %w", err)
	}
	buf = buf[:n]

	var legacy EntryPoint
	var lastErr error
	for off := 0; off+len(anchor32) <= len(buf); off += scanAlignment {
		window := buf[off:]
		switch {
		case bytes.HasPrefix(window, anchor64):
			ep, err := ParseEntryPoint64(window)
			if err == nil {
				return ep, nil
			}
			lastErr = err
		case bytes.HasPrefix(window, anchor32) && legacy == nil:
			ep, err := ParseEntryPoint32(window)
			if err == nil {
				legacy = ep
				continue
			}
			lastErr = err
		}
	}

	if legacy != nil {
		return legacy, nil
	}
	if lastErr != nil {
		return nil, newError(KindEntryPointNotFound, -1, "no valid anchor in [%#x, %#x), last candidate: %v", start, end, lastErr)
	}
	return nil, newError(KindEntryPointNotFound, -1, "no anchor in [%#x, %#x)", start, end)
}

// declaredLength reads the length byte at idx and checks it against both the
// captured bytes and the fixed layout size.
func declaredLength(b []byte, idx, minLength int) (int, error) {
	if len(b) <= idx {
		return 0, newError(KindEntryPointLengthTooBig, idx, "length byte not captured (%d bytes)", len(b))
	}
	length := int(b[idx])
	if length > len(b) {
		return 0, newError(KindEntryPointLengthTooBig, idx, "declared %d bytes, captured %d", length, len(b))
	}
	if length < minLength {
		return 0, newError(KindEntryPointMalformed, idx, "declared %d bytes, layout needs %d", length, minLength)
	}
	return length, nil
}

// checksum returns the 8-bit sum of b; a valid span sums to zero.
func checksum(b []byte) uint8 {
	var sum uint8
	for _, c := range b {
		sum += c
	}
	return sum
}
