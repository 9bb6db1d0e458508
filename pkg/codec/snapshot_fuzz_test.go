//go:build fuzz
// +build fuzz

package codec

import (
	"bytes"
	"testing"
)

// FuzzSnapshotCodec_RoundTrip tests encode/decode round-trip with random inputs
func FuzzSnapshotCodec_RoundTrip(f *testing.F) {
	codec := NewSnapshotCodec()

	// Add seed corpus
	f.Add(testTable(), "sysfs")
	f.Add([]byte{}, "")
	f.Add([]byte{0x00, 0x01, 0x02}, "dump:/tmp/x")

	f.Fuzz(func(t *testing.T, table []byte, source string) {
		// Skip extremely large inputs to avoid timeout
		if len(table) > 1<<20 || len(source) > 1024 {
			t.Skip("Input too large for fuzz test")
		}

		encoded, err := codec.Encode(NewSnapshot(table, nil, source))
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}

		snap, err := codec.Decode(encoded)
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}

		if err := snap.Validate(); err != nil {
			t.Fatalf("Snapshot validation failed: %v", err)
		}

		if !bytes.Equal(snap.Data, table) {
			t.Errorf("Table mismatch")
		}

		if string(snap.Source) != source {
			t.Errorf("Source mismatch: got %q, want %q", snap.Source, source)
		}

		// Decoding an archived table must never panic
		snap.Table()
	})
}

// FuzzSnapshotCodec_MalformedData tests decoding of arbitrary bytes
func FuzzSnapshotCodec_MalformedData(f *testing.F) {
	codec := NewSnapshotCodec()

	f.Add([]byte{})
	f.Add(make([]byte, HeaderSize))
	f.Add(bytes.Repeat([]byte{0xFF}, HeaderSize+8))

	f.Fuzz(func(t *testing.T, data []byte) {
		snap, err := codec.Decode(data)
		if err != nil {
			return
		}
		if snap.Size() > len(data) {
			t.Fatalf("decoded snapshot of %d bytes from %d", snap.Size(), len(data))
		}
		_ = snap.Validate()
	})
}
