package acquire

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ssargent/dmidb/pkg/smbios"
	"go.uber.org/zap"
)

// DefaultMemoryPath is the physical memory device on Unix-like systems.
const DefaultMemoryPath = "/dev/mem"

// MaxTableSize bounds how much of a memory source is read for one table.
// 64-bit entry points only announce an upper bound, which may be as large as
// 4 GiB.
const MaxTableSize = 4 << 20

// MemorySource scans physical memory, or an image of it, for an entry point
// and reads the table it announces.
type MemorySource struct {
	Path  string
	Start int64 // scan window; zero values select the legacy BIOS range
	End   int64
}

// Acquire implements Source.
func (s *MemorySource) Acquire(ctx context.Context) (*RawTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := s.Path
	if path == "" {
		path = DefaultMemoryPath
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open memory: %w", err)
	}
	defer f.Close()

	// Device files report a zero size; images are bounded by their length.
	var limit int64
	if info, err := f.Stat(); err == nil && info.Mode().IsRegular() {
		limit = info.Size()
	}

	start, end := s.window()
	return readFromMemory(f, path, start, end, limit)
}

func (s *MemorySource) window() (int64, int64) {
	if s.Start == 0 && s.End == 0 {
		return smbios.LegacyScanStart, smbios.LegacyScanEnd
	}
	return s.Start, s.End
}

// readFromMemory scans mem for an entry point and reads its table. A positive
// limit is the size of mem; reads never extend past it.
func readFromMemory(mem io.ReaderAt, path string, start, end, limit int64) (*RawTable, error) {
	ep, err := smbios.ScanEntryPoint(mem, start, end)
	if err != nil {
		return nil, fmt.Errorf("no entry point in %s: %w", path, err)
	}
	Logger().Debug("found entry point",
		zap.String("path", path),
		zap.Stringer("version", ep.Version()),
	)

	data, err := tableAt(ep, func(address uint64, size uint32) ([]byte, error) {
		n := int64(size)
		if n > MaxTableSize {
			n = MaxTableSize
		}
		if limit > 0 {
			if address >= uint64(limit) {
				return nil, fmt.Errorf("table at %#x lies beyond the end of %s (%d bytes)", address, path, limit)
			}
			if rest := limit - int64(address); n > rest {
				n = rest
			}
		}

		buf := make([]byte, n)
		read, err := mem.ReadAt(buf, int64(address))
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to read table at %#x: %w", address, err)
		}
		return buf[:read], nil
	})
	if err != nil {
		return nil, err
	}
	return &RawTable{Data: data, Version: versionOf(ep), Source: "devmem"}, nil
}
