package acquire

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/ssargent/dmidb/pkg/smbios"
)

// dumpTableOffset is where dmidecode --dump-bin places the table; the entry
// point at offset 0 is rewritten to point there.
const dumpTableOffset = 0x20

// DumpSource reads a file written by "dmidecode --dump-bin" or EncodeDump.
type DumpSource struct {
	Path string
}

// Acquire implements Source.
func (s *DumpSource) Acquire(ctx context.Context) (*RawTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dump: %w", err)
	}
	raw, err := ParseDump(data)
	if err != nil {
		return nil, fmt.Errorf("invalid dump %s: %w", s.Path, err)
	}
	return raw, nil
}

// ParseDump extracts the table from a dump-bin image held in memory.
func ParseDump(b []byte) (*RawTable, error) {
	ep, err := smbios.ParseEntryPoint(b)
	if err != nil {
		return nil, err
	}

	data, err := tableAt(ep, func(address uint64, size uint32) ([]byte, error) {
		if address >= uint64(len(b)) {
			return nil, fmt.Errorf("table address %#x beyond %d byte dump", address, len(b))
		}
		end := address + uint64(size)
		if end > uint64(len(b)) {
			if _, ok := ep.(*smbios.EntryPoint64); !ok {
				return nil, fmt.Errorf("table of %d bytes at %#x exceeds %d byte dump", size, address, len(b))
			}
			// The 64-bit size is only an upper bound.
			end = uint64(len(b))
		}
		return b[address:end:end], nil
	})
	if err != nil {
		return nil, err
	}
	return &RawTable{Data: data, Version: versionOf(ep), Source: "dump"}, nil
}

// EncodeDump writes raw in dump-bin layout behind a synthesized SMBIOS 3.0
// entry point, so the result can be read back by ParseDump or dmidecode
// --from-dump.
func EncodeDump(raw *RawTable) []byte {
	version := smbios.Version{Major: 3}
	if raw.Version != nil {
		version = *raw.Version
	}

	out := make([]byte, dumpTableOffset+len(raw.Data))
	ep := out[:0x18]
	copy(ep, "_SM3_")
	ep[0x06] = 0x18
	ep[0x07] = version.Major
	ep[0x08] = version.Minor
	ep[0x09] = version.Revision
	ep[0x0A] = 0x01
	binary.LittleEndian.PutUint32(ep[0x0C:], uint32(len(raw.Data)))
	binary.LittleEndian.PutUint64(ep[0x10:], dumpTableOffset)

	var sum uint8
	for _, c := range ep {
		sum += c
	}
	ep[0x05] = -sum

	copy(out[dumpTableOffset:], raw.Data)
	return out
}
