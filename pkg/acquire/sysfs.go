package acquire

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ssargent/dmidb/pkg/smbios"
	"go.uber.org/zap"
)

// DefaultSysfsDir is where Linux exposes the firmware tables.
const DefaultSysfsDir = "/sys/firmware/dmi/tables"

const (
	sysfsEntryPoint = "smbios_entry_point"
	sysfsTable      = "DMI"
)

// SysfsSource reads the entry point and table files the Linux kernel exports.
type SysfsSource struct {
	Dir string
}

// Available reports whether the sysfs files exist.
func (s *SysfsSource) Available() bool {
	_, err := os.Stat(filepath.Join(s.dir(), sysfsEntryPoint))
	return err == nil
}

// Acquire implements Source.
func (s *SysfsSource) Acquire(ctx context.Context) (*RawTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	epPath := filepath.Join(s.dir(), sysfsEntryPoint)
	epData, err := os.ReadFile(epPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read entry point: %w", err)
	}
	ep, err := smbios.ParseEntryPoint(epData)
	if err != nil {
		return nil, fmt.Errorf("invalid entry point in %s: %w", epPath, err)
	}

	tablePath := filepath.Join(s.dir(), sysfsTable)
	data, err := os.ReadFile(tablePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read structure table: %w", err)
	}
	if _, ok := ep.(*smbios.EntryPoint64); ok {
		data = smbios.TrimToEndOfTable(data)
	}

	Logger().Debug("acquired table from sysfs",
		zap.String("dir", s.dir()),
		zap.Stringer("version", ep.Version()),
		zap.Int("bytes", len(data)),
	)
	return &RawTable{Data: data, Version: versionOf(ep), Source: "sysfs"}, nil
}

func (s *SysfsSource) dir() string {
	if s.Dir == "" {
		return DefaultSysfsDir
	}
	return s.Dir
}
