// Package export turns decoded SMBIOS tables into reports for people and
// programs.
//
// A Report lists every structure with the named fields of its type, while an
// Inventory condenses the table into a hardware summary: firmware, system
// identity, boards, processors with their caches and memory grouped by
// array. Both encode to JSON, YAML or CBOR through Encode.
package export
