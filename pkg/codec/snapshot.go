package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"math"
	"time"

	"github.com/ssargent/dmidb/pkg/smbios"
)

// HeaderSize is the fixed size of an encoded snapshot header.
const HeaderSize = 22

// FlagVersion marks a snapshot whose Version field is meaningful.
const FlagVersion uint8 = 1 << 0

// ErrChecksumMismatch is returned by Validate when the stored CRC32 does not
// match the snapshot contents.
var ErrChecksumMismatch = errors.New("snapshot CRC32 mismatch")

// Snapshot is a captured SMBIOS table together with the metadata needed to
// decode it again later
type Snapshot struct {
	CRC32      uint32         // CRC32 checksum for integrity
	Flags      uint8          // FlagVersion when Version is known
	Version    smbios.Version // SMBIOS version from the entry point
	Timestamp  uint64         // Capture time, Unix nanoseconds
	SourceSize uint16         // Size of the source label in bytes
	TableSize  uint32         // Size of the table in bytes
	Source     []byte         // Where the table was read from, e.g. "sysfs"
	Data       []byte         // Raw structure table
}

// SnapshotCodec handles serialization and deserialization of snapshots
type SnapshotCodec struct{}

// NewSnapshotCodec creates a new snapshot codec instance
func NewSnapshotCodec() *SnapshotCodec {
	return &SnapshotCodec{}
}

// Encode serializes a snapshot into the binary format
// Format: [CRC32(4)][Flags(1)][Major(1)][Minor(1)][Revision(1)][Timestamp(8)][SourceSize(2)][TableSize(4)][Source][Table]
func (c *SnapshotCodec) Encode(s *Snapshot) ([]byte, error) {
	if len(s.Source) > math.MaxUint16 {
		return nil, fmt.Errorf("source label too large: %d bytes", len(s.Source))
	}
	if uint64(len(s.Data)) > math.MaxUint32 {
		return nil, fmt.Errorf("table too large: %d bytes", len(s.Data))
	}
	s.SourceSize = uint16(len(s.Source))
	s.TableSize = uint32(len(s.Data))
	s.CRC32 = s.calculateCRC32()

	buf := make([]byte, s.Size())

	binary.LittleEndian.PutUint32(buf[0:], s.CRC32)
	buf[4] = s.Flags
	buf[5] = s.Version.Major
	buf[6] = s.Version.Minor
	buf[7] = s.Version.Revision
	binary.LittleEndian.PutUint64(buf[8:], s.Timestamp)
	binary.LittleEndian.PutUint16(buf[16:], s.SourceSize)
	binary.LittleEndian.PutUint32(buf[18:], s.TableSize)
	copy(buf[HeaderSize:], s.Source)
	copy(buf[HeaderSize+int(s.SourceSize):], s.Data)

	return buf, nil
}

// Decode deserializes a binary snapshot. The returned slices alias data.
func (c *SnapshotCodec) Decode(data []byte) (*Snapshot, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("data too short for snapshot header: %d < %d", len(data), HeaderSize)
	}

	s := &Snapshot{}
	s.CRC32 = binary.LittleEndian.Uint32(data[0:4])
	s.Flags = data[4]
	s.Version = smbios.Version{Major: data[5], Minor: data[6], Revision: data[7]}
	s.Timestamp = binary.LittleEndian.Uint64(data[8:16])
	s.SourceSize = binary.LittleEndian.Uint16(data[16:18])
	s.TableSize = binary.LittleEndian.Uint32(data[18:22])

	// Validate sizes
	total := uint64(HeaderSize) + uint64(s.SourceSize) + uint64(s.TableSize)
	if uint64(len(data)) < total {
		return nil, fmt.Errorf("data too short for source/table sizes: %d < %d", len(data), total)
	}

	sourceEnd := HeaderSize + int(s.SourceSize)
	s.Source = data[HeaderSize:sourceEnd]
	s.Data = data[sourceEnd : sourceEnd+int(s.TableSize)]

	return s, nil
}

// Validate checks the integrity of a snapshot using CRC32
func (s *Snapshot) Validate() error {
	if sum := s.calculateCRC32(); s.CRC32 != sum {
		return fmt.Errorf("%w: %d != %d", ErrChecksumMismatch, s.CRC32, sum)
	}

	return nil
}

// Size returns the total size of the snapshot when encoded
func (s *Snapshot) Size() int {
	return HeaderSize + len(s.Source) + len(s.Data)
}

// CapturedAt returns the capture time.
func (s *Snapshot) CapturedAt() time.Time {
	return time.Unix(0, int64(s.Timestamp)).UTC()
}

// SMBIOSVersion returns the table version if the snapshot recorded one.
func (s *Snapshot) SMBIOSVersion() *smbios.Version {
	if s.Flags&FlagVersion == 0 {
		return nil
	}
	v := s.Version
	return &v
}

// Table decodes the snapshot's structure table on a best-effort basis.
func (s *Snapshot) Table() *smbios.Table {
	return smbios.FromBytes(s.Data, s.SMBIOSVersion())
}

// NewSnapshot creates a new snapshot with the current timestamp
func NewSnapshot(table []byte, version *smbios.Version, source string) *Snapshot {
	s := &Snapshot{
		Timestamp:  uint64(time.Now().UnixNano()),
		SourceSize: uint16(min(len(source), math.MaxUint16)),
		TableSize:  uint32(min(uint64(len(table)), math.MaxUint32)),
		Source:     []byte(source),
		Data:       table,
	}
	if version != nil {
		s.Flags |= FlagVersion
		s.Version = *version
	}
	return s
}

// calculateCRC32 computes CRC32 checksum over every field after the CRC itself
func (s *Snapshot) calculateCRC32() uint32 {
	var header [HeaderSize - 4]byte
	header[0] = s.Flags
	header[1] = s.Version.Major
	header[2] = s.Version.Minor
	header[3] = s.Version.Revision
	binary.LittleEndian.PutUint64(header[4:], s.Timestamp)
	binary.LittleEndian.PutUint16(header[12:], s.SourceSize)
	binary.LittleEndian.PutUint32(header[14:], s.TableSize)

	crc := crc32.NewIEEE()
	crc.Write(header[:])
	crc.Write(s.Source)
	crc.Write(s.Data)
	return crc.Sum32()
}
