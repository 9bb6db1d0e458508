// Package acquire reads raw SMBIOS structure tables from the places operating
// systems and tools expose them: sysfs, physical memory, dmidecode dumps and
// the Windows firmware table API.
package acquire

import (
	"context"
	"errors"
	"fmt"

	"github.com/ssargent/dmidb/pkg/smbios"
	"go.uber.org/zap"
)

// ErrUnsupported is returned by sources that cannot work on this platform.
var ErrUnsupported = errors.New("acquire: source not supported on this platform")

// RawTable is an undecoded structure table and what is known about it.
type RawTable struct {
	Data    []byte
	Version *smbios.Version // nil when the source carries no entry point
	Source  string
}

// Table decodes the raw bytes on a best-effort basis.
func (r *RawTable) Table() *smbios.Table {
	return smbios.FromBytes(r.Data, r.Version)
}

// Source produces a raw structure table.
type Source interface {
	Acquire(ctx context.Context) (*RawTable, error)
}

// RawSource serves bytes already in memory.
type RawSource struct {
	Data    []byte
	Version *smbios.Version
	Label   string
}

// Acquire implements Source.
func (s *RawSource) Acquire(ctx context.Context) (*RawTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	label := s.Label
	if label == "" {
		label = "raw"
	}
	return &RawTable{Data: s.Data, Version: s.Version, Source: label}, nil
}

// tableAt reads the table an entry point announces using read. Tables from
// 64-bit entry points are trimmed to their End-of-Table structure.
func tableAt(ep smbios.EntryPoint, read func(address uint64, size uint32) ([]byte, error)) ([]byte, error) {
	address, size := ep.Table()
	if size == 0 {
		return nil, fmt.Errorf("entry point announces an empty table")
	}
	data, err := read(address, size)
	if err != nil {
		return nil, err
	}
	if _, ok := ep.(*smbios.EntryPoint64); ok {
		data = smbios.TrimToEndOfTable(data)
	}
	Logger().Debug("read structure table",
		zap.Uint64("address", address),
		zap.Uint32("announced", size),
		zap.Int("bytes", len(data)),
	)
	return data, nil
}

func versionOf(ep smbios.EntryPoint) *smbios.Version {
	v := ep.Version()
	return &v
}
