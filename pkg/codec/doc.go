// Package codec provides snapshot serialization and deserialization for dmidb.
//
// The codec package implements the binary format used to archive captured
// SMBIOS tables with integrity checking and capture metadata. Snapshots are
// stored as values in the pebble-backed archive of package storage.
//
// # Snapshot Format
//
// Snapshots are serialized in a binary format with the following structure:
//
//	[CRC32(4)][Flags(1)][Major(1)][Minor(1)][Revision(1)][Timestamp(8)][SourceSize(2)][TableSize(4)][Source][Table]
//
// Fields:
//   - CRC32: 32-bit CRC checksum for integrity validation (little-endian)
//   - Flags: bit 0 is set when Major, Minor and Revision carry the entry point version
//   - Major, Minor, Revision: SMBIOS version of the captured table
//   - Timestamp: 64-bit Unix timestamp in nanoseconds (little-endian)
//   - SourceSize: 16-bit length of the source label (little-endian)
//   - TableSize: 32-bit length of the structure table (little-endian)
//   - Source: label naming where the table came from ("sysfs", "dump", ...)
//   - Table: the raw structure table exactly as the firmware published it
//
// The total snapshot size is: 22 bytes (header) + len(source) + len(table)
//
// # CRC32 Calculation
//
// The CRC32 checksum is calculated over all fields except the CRC32 field
// itself. Any corruption in the header, the label or the table is detected
// during validation.
//
// # Usage
//
//	codec := codec.NewSnapshotCodec()
//
//	// Encode a snapshot
//	snap := codec.NewSnapshot(raw.Data, raw.Version, raw.Source)
//	encoded, err := codec.Encode(snap)
//	if err != nil {
//	    return err
//	}
//
//	// Decode and validate
//	decoded, err := codec.Decode(encoded)
//	if err != nil {
//	    return err
//	}
//	if err := decoded.Validate(); err != nil {
//	    return err // Snapshot is corrupted
//	}
//
//	table := decoded.Table()
//
// # Thread Safety
//
// SnapshotCodec instances are safe for concurrent use. Decoded snapshots
// alias the input buffer and must be treated as read-only.
package codec
