package acquire

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/ssargent/dmidb/pkg/smbios"
	"go.uber.org/zap"
)

// rsmbHeaderSize is the fixed part of the RawSMBIOSData structure Windows
// returns for the 'RSMB' firmware table provider:
//
//	BYTE  Used20CallingMethod
//	BYTE  SMBIOSMajorVersion
//	BYTE  SMBIOSMinorVersion
//	BYTE  DmiRevision
//	DWORD Length
//	BYTE  SMBIOSTableData[Length]
const rsmbHeaderSize = 8

// ParseRSMB extracts the table from a RawSMBIOSData buffer.
func ParseRSMB(b []byte) (*RawTable, error) {
	if len(b) < rsmbHeaderSize {
		return nil, fmt.Errorf("RawSMBIOSData of %d bytes is shorter than its header", len(b))
	}
	length := binary.LittleEndian.Uint32(b[4:8])
	if uint64(length) > uint64(len(b)-rsmbHeaderSize) {
		return nil, fmt.Errorf("RawSMBIOSData declares %d table bytes, buffer holds %d", length, len(b)-rsmbHeaderSize)
	}
	end := rsmbHeaderSize + int(length)
	return &RawTable{
		Data:    b[rsmbHeaderSize:end:end],
		Version: &smbios.Version{Major: b[1], Minor: b[2], Revision: b[3]},
		Source:  "rsmb",
	}, nil
}

// FirmwareTableSource asks Windows for the table through
// GetSystemFirmwareTable.
type FirmwareTableSource struct{}

// Acquire implements Source.
func (s *FirmwareTableSource) Acquire(ctx context.Context) (*RawTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	buf, err := firmwareTable()
	if err != nil {
		return nil, err
	}
	raw, err := ParseRSMB(buf)
	if err != nil {
		return nil, err
	}
	Logger().Debug("acquired table from firmware table provider", zap.Int("bytes", len(raw.Data)))
	return raw, nil
}
