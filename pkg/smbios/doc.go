// Package smbios decodes the SMBIOS/DMI structure table published by system
// firmware.
//
// The package works on bytes only. Getting the bytes out of the machine is
// the job of package acquire; this package locates and validates entry
// points, splits a table into structures and resolves the references between
// them. Every input is treated as untrusted: malformed firmware data yields
// an error or a shorter table, never a panic or an out-of-bounds read.
//
// # Entry Points
//
// Two entry point forms announce where the table lives:
//
//	_SM_   32-bit, SMBIOS 2.1+, with a nested _DMI_ intermediate block
//	_SM3_  64-bit, SMBIOS 3.0+
//
// ParseEntryPoint validates the anchor, the declared length and the
// checksums. ScanEntryPoint probes 16-byte aligned addresses of a physical
// memory image for either anchor.
//
// # Structure Layout
//
// Each structure is laid out as:
//
//	[Type(1)][Length(1)][Handle(2)][Fields(Length-4)][Strings...][0x00 0x00]
//
// Length covers the header and the formatted fields. The string pool that
// follows holds NUL-terminated strings referenced from fields by 1-based
// index, and ends at the first double NUL. A structure without strings ends
// in two NUL bytes right after its fields.
//
// # Usage
//
//	table := smbios.FromBytes(raw, &version)
//	if err := table.Err(); err != nil {
//	    log.Printf("table truncated: %v", err)
//	}
//
//	for it := table.Iterator(); it.Next(); {
//	    s := it.Structure()
//	    fmt.Println(s.Header)
//	}
//
//	if sys, ok := smbios.First[smbios.SystemInformation](table); ok {
//	    id, _ := sys.UUID()
//	    fmt.Println(id)
//	}
//
// # Memory Model
//
// A Table owns the buffer it was built from and every Structure, Fields and
// Strings value is a view into it. Nothing is copied during the walk. The
// caller must not modify the buffer after handing it to FromBytes or Parse.
//
// # Thread Safety
//
// Tables are immutable and safe for concurrent use. Iterators are not; take
// one per goroutine.
package smbios
