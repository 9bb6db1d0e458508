package smbios

import "encoding/binary"

// record encodes one structure: header, formatted fields after the header,
// then the string pool and its double NUL.
func record(typ Type, handle Handle, fields []byte, strs ...string) []byte {
	b := []byte{byte(typ), byte(headerLength + len(fields)), 0, 0}
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

func concat(records ...[]byte) []byte {
	var out []byte
	for _, r := range records {
		out = append(out, r...)
	}
	return out
}

func endOfTable(handle Handle) []byte {
	return record(TypeEndOfTable, handle, nil)
}

// sampleTable is a small but realistic table: BIOS, system, board, a
// processor with one cache, a memory array with two devices and the
// terminator.
func sampleTable() []byte {
	bios := make([]byte, 0x1A-headerLength)
	bios[0x04-headerLength] = 1 // vendor
	bios[0x05-headerLength] = 2 // version
	bios[0x08-headerLength] = 3 // release date
	bios[0x09-headerLength] = 0x0F
	bios[0x14-headerLength] = 1
	bios[0x15-headerLength] = 7

	system := make([]byte, 0x1B-headerLength)
	system[0x04-headerLength] = 1
	system[0x05-headerLength] = 2
	system[0x07-headerLength] = 3
	copy(system[0x08-headerLength:], []byte{
		0x33, 0x22, 0x11, 0x00, 0x55, 0x44, 0x77, 0x66,
		0x88, 0x99, 0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF,
	})

	board := make([]byte, 0x0F-headerLength)
	board[0x04-headerLength] = 1
	board[0x05-headerLength] = 2
	binary.LittleEndian.PutUint16(board[0x0B-headerLength:], 0x0300)

	cpu := make([]byte, 0x30-headerLength)
	cpu[0x04-headerLength] = 1
	cpu[0x07-headerLength] = 2
	cpu[0x10-headerLength] = 3
	binary.LittleEndian.PutUint16(cpu[0x14-headerLength:], 4000)
	binary.LittleEndian.PutUint16(cpu[0x16-headerLength:], 2400)
	cpu[0x18-headerLength] = 0x41
	binary.LittleEndian.PutUint16(cpu[0x1A-headerLength:], 0x0700)
	binary.LittleEndian.PutUint16(cpu[0x1C-headerLength:], 0xFFFF)
	binary.LittleEndian.PutUint16(cpu[0x1E-headerLength:], 0xFFFF)
	cpu[0x23-headerLength] = 8
	cpu[0x24-headerLength] = 8
	cpu[0x25-headerLength] = 16

	cache := make([]byte, 0x13-headerLength)
	cache[0x04-headerLength] = 1
	binary.LittleEndian.PutUint16(cache[0x05-headerLength:], 0x0181)
	binary.LittleEndian.PutUint16(cache[0x09-headerLength:], 0x8010) // 16 x 64K

	array := make([]byte, 0x0F-headerLength)
	array[0x05-headerLength] = 3
	binary.LittleEndian.PutUint32(array[0x07-headerLength:], 64<<20) // 64 GiB in KiB
	binary.LittleEndian.PutUint16(array[0x0D-headerLength:], 2)

	dimm := func(sizeMB uint16, locator string) []byte {
		f := make([]byte, 0x28-headerLength)
		binary.LittleEndian.PutUint16(f[0x04-headerLength:], 0x1000)
		binary.LittleEndian.PutUint16(f[0x0C-headerLength:], sizeMB)
		f[0x10-headerLength] = 1
		f[0x12-headerLength] = 0x1A
		binary.LittleEndian.PutUint16(f[0x15-headerLength:], 3200)
		f[0x17-headerLength] = 2
		return record(TypeMemoryDevice, 0, f, locator, "Acme")
	}
	dimmA := dimm(16384, "DIMM_A1")
	binary.LittleEndian.PutUint16(dimmA[2:], 0x1100)
	dimmB := dimm(0, "DIMM_B1")
	binary.LittleEndian.PutUint16(dimmB[2:], 0x1101)

	return concat(
		record(TypeBIOSInformation, 0x0000, bios, "Acme BIOS", "1.2.3", "01/02/2024"),
		record(TypeSystemInformation, 0x0100, system, "Acme", "Model X", "SN-0001"),
		record(TypeBaseboardInformation, 0x0200, board, "Acme", "Board 7"),
		record(TypeProcessorInformation, 0x0400, cpu, "CPU0", "GenuineAcme", "Acme Core 9"),
		record(TypeCacheInformation, 0x0700, cache, "L2 Cache"),
		record(TypePhysicalMemoryArray, 0x1000, array),
		dimmA,
		dimmB,
		record(TypeOEMStart+4, 0x2000, []byte{0xAB}, "vendor"),
		endOfTable(0xFEFF),
	)
}

// entryPoint64 builds a valid "_SM3_" entry point.
func entryPoint64(address uint64, maxSize uint32) []byte {
	b := make([]byte, entryPoint64MinLength)
	copy(b, anchor64)
	b[0x06] = entryPoint64MinLength
	b[0x07] = 3
	b[0x08] = 4
	b[0x09] = 1
	b[0x0A] = 1
	binary.LittleEndian.PutUint32(b[0x0C:], maxSize)
	binary.LittleEndian.PutUint64(b[0x10:], address)
	b[0x05] = -checksum(b)
	return b
}

// entryPoint32 builds a valid "_SM_" entry point with its "_DMI_" block.
func entryPoint32(address uint32, length uint16, count uint16) []byte {
	b := make([]byte, 0x1F)
	copy(b, anchor32)
	b[0x05] = 0x1F
	b[0x06] = 2
	b[0x07] = 8
	binary.LittleEndian.PutUint16(b[0x08:], 0x80)
	copy(b[intermediateOffset:], intermediateAnchor)
	binary.LittleEndian.PutUint16(b[0x16:], length)
	binary.LittleEndian.PutUint32(b[0x18:], address)
	binary.LittleEndian.PutUint16(b[0x1C:], count)
	b[0x1E] = 0x28
	b[0x15] = -checksum(b[intermediateOffset : intermediateOffset+intermediateLength])
	b[0x04] = -checksum(b)
	return b
}
