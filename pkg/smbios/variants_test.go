package smbios

import (
	"encoding/binary"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBIOSInformation(t *testing.T) {
	table := FromBytes(sampleTable(), nil)
	bios, ok := First[BIOSInformation](table)
	require.True(t, ok)

	vendor, _ := bios.Vendor()
	version, _ := bios.Version()
	date, _ := bios.ReleaseDate()
	assert.Equal(t, "Acme BIOS", vendor)
	assert.Equal(t, "1.2.3", version)
	assert.Equal(t, "01/02/2024", date)

	size, ok := bios.ROMSize()
	require.True(t, ok)
	assert.Equal(t, uint64(16<<16), size)

	major, minor, ok := bios.SystemBIOSRelease()
	require.True(t, ok)
	assert.Equal(t, uint8(1), major)
	assert.Equal(t, uint8(7), minor)
}

func TestBIOSInformation_ExtendedROMSize(t *testing.T) {
	fields := make([]byte, 0x1A-headerLength)
	fields[0x09-headerLength] = 0xFF
	binary.LittleEndian.PutUint16(fields[0x18-headerLength:], 0x4000|2) // 2 GiB
	bios := BIOSInformation{variant{mustStructure(t, record(TypeBIOSInformation, 0, fields))}}

	size, ok := bios.ROMSize()
	require.True(t, ok)
	assert.Equal(t, uint64(2<<30), size)
}

func TestSystemInformation_UUID(t *testing.T) {
	table := FromBytes(sampleTable(), nil)
	sys, ok := First[SystemInformation](table)
	require.True(t, ok)

	id, ok := sys.UUID()
	require.True(t, ok)
	assert.Equal(t, uuid.MustParse("00112233-4455-6677-8899-aabbccddeeff"), id)

	serial, _ := sys.SerialNumber()
	assert.Equal(t, "SN-0001", serial)
	_, ok = sys.SKUNumber()
	assert.False(t, ok)
}

func TestDecodeUUID_Absent(t *testing.T) {
	_, ok := decodeUUID(make([]byte, 16))
	assert.False(t, ok)

	ones := make([]byte, 16)
	for i := range ones {
		ones[i] = 0xFF
	}
	_, ok = decodeUUID(ones)
	assert.False(t, ok)
}

func TestBaseboardInformation(t *testing.T) {
	fields := make([]byte, 0x13-headerLength)
	fields[0x04-headerLength] = 1
	binary.LittleEndian.PutUint16(fields[0x0B-headerLength:], 0x0300)
	fields[0x0E-headerLength] = 3 // only two fit in the formatted area
	binary.LittleEndian.PutUint16(fields[0x0F-headerLength:], 0x0400)
	binary.LittleEndian.PutUint16(fields[0x11-headerLength:], 0x0401)
	board := BaseboardInformation{variant{mustStructure(t, record(TypeBaseboardInformation, 2, fields, "Acme"))}}

	chassis, ok := board.ChassisHandle()
	require.True(t, ok)
	assert.Equal(t, Handle(0x0300), chassis)
	assert.Equal(t, []Handle{0x0400, 0x0401}, board.ContainedHandles())
}

func TestChassisInformation(t *testing.T) {
	fields := make([]byte, 0x09-headerLength)
	fields[0x05-headerLength] = 0x80 | 0x17
	chassis := ChassisInformation{variant{mustStructure(t, record(TypeChassisInformation, 3, fields))}}

	typ, ok := chassis.ChassisType()
	require.True(t, ok)
	assert.Equal(t, uint8(0x17), typ)
	locked, _ := chassis.Locked()
	assert.True(t, locked)
}

func TestProcessorInformation(t *testing.T) {
	table := FromBytes(sampleTable(), nil)
	cpu, ok := First[ProcessorInformation](table)
	require.True(t, ok)

	socket, _ := cpu.SocketDesignation()
	assert.Equal(t, "CPU0", socket)
	maxSpeed, _ := cpu.MaxSpeed()
	assert.Equal(t, uint16(4000), maxSpeed)
	populated, _ := cpu.Populated()
	assert.True(t, populated)

	cores, ok := cpu.CoreCount()
	require.True(t, ok)
	assert.Equal(t, uint16(8), cores)
	threads, _ := cpu.ThreadCount()
	assert.Equal(t, uint16(16), threads)
}

func TestProcessorInformation_CoreCount2(t *testing.T) {
	fields := make([]byte, 0x30-headerLength)
	fields[0x23-headerLength] = 0xFF
	binary.LittleEndian.PutUint16(fields[0x2A-headerLength:], 384)
	cpu := ProcessorInformation{variant{mustStructure(t, record(TypeProcessorInformation, 4, fields))}}

	cores, ok := cpu.CoreCount()
	require.True(t, ok)
	assert.Equal(t, uint16(384), cores)

	_, ok = cpu.CoreEnabled()
	assert.False(t, ok, "zero means unknown")
}

func TestCacheInformation(t *testing.T) {
	table := FromBytes(sampleTable(), nil)
	cache, ok := First[CacheInformation](table)
	require.True(t, ok)

	size, ok := cache.InstalledSize()
	require.True(t, ok)
	assert.Equal(t, uint64(1<<20), size)
}

func TestGroupAssociations(t *testing.T) {
	fields := []byte{1, byte(TypeProcessorInformation), 0x00, 0x04, byte(TypeCacheInformation), 0x00, 0x07, 0xAA}
	group := GroupAssociations{variant{mustStructure(t, record(TypeGroupAssociations, 9, fields, "cpu0"))}}

	name, _ := group.Name()
	assert.Equal(t, "cpu0", name)
	assert.Equal(t, []GroupMember{
		{Type: TypeProcessorInformation, Handle: 0x0400},
		{Type: TypeCacheInformation, Handle: 0x0700},
	}, group.Members())
}

func TestPhysicalMemoryArray(t *testing.T) {
	table := FromBytes(sampleTable(), nil)
	array, ok := First[PhysicalMemoryArray](table)
	require.True(t, ok)

	capacity, ok := array.MaximumCapacity()
	require.True(t, ok)
	assert.Equal(t, uint64(64<<30), capacity)

	slots, _ := array.NumberOfDevices()
	assert.Equal(t, uint16(2), slots)
}

func TestMemoryDevice_Size(t *testing.T) {
	testCases := []struct {
		name     string
		size     uint16
		extended uint32
		want     uint64
		ok       bool
	}{
		{name: "megabytes", size: 8192, want: 8 << 30, ok: true},
		{name: "kilobytes", size: 0x8000 | 512, want: 512 << 10, ok: true},
		{name: "empty slot", size: 0, want: 0, ok: true},
		{name: "unknown", size: 0xFFFF, ok: false},
		{name: "extended", size: 0x7FFF, extended: 65536, want: 64 << 30, ok: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fields := make([]byte, 0x20-headerLength)
			binary.LittleEndian.PutUint16(fields[0x0C-headerLength:], tc.size)
			binary.LittleEndian.PutUint32(fields[0x1C-headerLength:], tc.extended)
			dev := MemoryDevice{variant{mustStructure(t, record(TypeMemoryDevice, 1, fields))}}

			got, ok := dev.Size()
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMemoryArrayMappedAddress(t *testing.T) {
	fields := make([]byte, 0x1F-headerLength)
	binary.LittleEndian.PutUint32(fields[0x04-headerLength:], 0)
	binary.LittleEndian.PutUint32(fields[0x08-headerLength:], (4<<20)-1)
	binary.LittleEndian.PutUint16(fields[0x0C-headerLength:], 0x1000)
	m := MemoryArrayMappedAddress{variant{mustStructure(t, record(TypeMemoryArrayMappedAddress, 1, fields))}}

	start, _ := m.StartingAddress()
	end, _ := m.EndingAddress()
	assert.Equal(t, uint64(0), start)
	assert.Equal(t, uint64(4<<30)-1, end)
	array, _ := m.ArrayHandle()
	assert.Equal(t, Handle(0x1000), array)
}

func TestOEMStrings(t *testing.T) {
	oem := OEMStrings{variant{mustStructure(t, record(TypeOEMStrings, 1, []byte{2}, "a", "b"))}}
	assert.Equal(t, []string{"a", "b"}, oem.Values())
}

func mustStructure(t *testing.T, buf []byte) Structure {
	t.Helper()
	structures, err := Walk(buf, WalkOptions{Strict: true})
	require.NoError(t, err)
	require.Len(t, structures, 1)
	return structures[0]
}
