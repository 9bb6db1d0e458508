package export

import (
	"encoding/binary"

	"github.com/ssargent/dmidb/pkg/smbios"
)

// record encodes one structure whose formatted area is the 4-byte header
// followed by fields.
func record(typ smbios.Type, handle smbios.Handle, fields []byte, strs ...string) []byte {
	b := []byte{byte(typ), byte(4 + len(fields)), 0, 0}
	binary.LittleEndian.PutUint16(b[2:], uint16(handle))
	b = append(b, fields...)
	if len(strs) == 0 {
		return append(b, 0x00, 0x00)
	}
	for _, s := range strs {
		b = append(b, s...)
		b = append(b, 0x00)
	}
	return append(b, 0x00)
}

// area returns a zeroed formatted area for a structure of the given length;
// put writes at header-relative offsets.
type area []byte

func newArea(length int) area { return make(area, length-4) }

func (a area) put(offset int, v ...byte) area {
	copy(a[offset-4:], v)
	return a
}

func (a area) word(offset int, v uint16) area {
	binary.LittleEndian.PutUint16(a[offset-4:], v)
	return a
}

func (a area) dword(offset int, v uint32) area {
	binary.LittleEndian.PutUint32(a[offset-4:], v)
	return a
}

// machineTable describes a one-socket machine with two populated DIMMs and
// one DIMM pointing at a missing array.
func machineTable() *smbios.Table {
	bios := newArea(0x18).put(0x04, 1, 2).put(0x08, 3, 0x0F).put(0x14, 2, 5)
	system := newArea(0x1B).put(0x04, 1, 2, 0, 3).put(0x08,
		0x33, 0x22, 0x11, 0x00, 0x55, 0x44, 0x77, 0x66,
		0x88, 0x99, 0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF,
	).put(0x19, 0, 4)
	board := newArea(0x0F).put(0x04, 1, 2).word(0x0B, 0x0300)
	chassis := newArea(0x0D).put(0x04, 1, 0x83, 0, 2)
	cpu := newArea(0x2A).put(0x04, 1).put(0x07, 2).put(0x10, 3).
		word(0x14, 4000).word(0x16, 3200).put(0x18, 0x41).
		word(0x1A, 0x0700).word(0x1C, 0x0701).word(0x1E, 0xFFFF).
		put(0x23, 8, 8, 16)
	l1 := newArea(0x13).put(0x04, 1).word(0x05, 0x0180).word(0x09, 512)
	l2 := newArea(0x13).put(0x04, 1).word(0x05, 0x0181).word(0x09, 0x8020)
	array := newArea(0x0F).put(0x05, 3).dword(0x07, 128<<20).word(0x0D, 4)
	dimm := func(parent smbios.Handle, sizeMB uint16) area {
		return newArea(0x22).word(0x04, uint16(parent)).word(0x0C, sizeMB).
			put(0x10, 1, 2, 0x1A).word(0x15, 3200).put(0x17, 3)
	}

	buf := concat(
		record(smbios.TypeBIOSInformation, 0x0000, bios, "Acme", "2.0.1", "03/04/2024"),
		record(smbios.TypeSystemInformation, 0x0001, system, "Acme", "Rack 1U", "SYS-42", "Servers"),
		record(smbios.TypeBaseboardInformation, 0x0002, board, "Acme", "MB-9"),
		record(smbios.TypeChassisInformation, 0x0300, chassis, "Acme", "CH-1"),
		record(smbios.TypeProcessorInformation, 0x0400, cpu, "CPU0", "Acme", "Acme Core 9"),
		record(smbios.TypeCacheInformation, 0x0700, l1, "L1 Cache"),
		record(smbios.TypeCacheInformation, 0x0701, l2, "L2 Cache"),
		record(smbios.TypePhysicalMemoryArray, 0x1000, array),
		record(smbios.TypeMemoryDevice, 0x1101, dimm(0x1000, 16384), "DIMM_B1", "BANK 1", "Acme"),
		record(smbios.TypeMemoryDevice, 0x1100, dimm(0x1000, 8192), "DIMM_A1", "BANK 0", "Acme"),
		record(smbios.TypeMemoryDevice, 0x1200, dimm(0x2000, 4096), "DIMM_Z9", "BANK 9", "Acme"),
		record(smbios.TypeEndOfTable, 0xFEFF, nil),
	)
	return smbios.FromBytes(buf, &smbios.Version{Major: 3, Minor: 2})
}

func concat(records ...[]byte) []byte {
	var out []byte
	for _, r := range records {
		out = append(out, r...)
	}
	return out
}
