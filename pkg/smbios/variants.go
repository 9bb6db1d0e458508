package smbios

import "github.com/google/uuid"

// Reserved handle values used by reference fields.
const (
	// HandleNotProvided marks a reference the structure does not carry,
	// such as a cache level the processor lacks.
	HandleNotProvided Handle = 0xFFFE

	// HandleNoError marks a memory error reference with no error recorded.
	HandleNoError Handle = 0xFFFF
)

// Thin accessors for the variants the inventory layer reads. Offsets follow
// DSP0134; every getter reports ok=false when the structure predates the
// field.

// Vendor returns the BIOS vendor name.
func (b BIOSInformation) Vendor() (string, bool) { return b.StringAt(0x04) }

// Version returns the BIOS version string.
func (b BIOSInformation) Version() (string, bool) { return b.StringAt(0x05) }

// ReleaseDate returns the BIOS release date string.
func (b BIOSInformation) ReleaseDate() (string, bool) { return b.StringAt(0x08) }

// ROMSize returns the BIOS ROM size in bytes, using the extended size field
// when the legacy byte saturates.
func (b BIOSInformation) ROMSize() (uint64, bool) {
	legacy, ok := b.Byte(0x09)
	if !ok {
		return 0, false
	}
	if legacy != 0xFF {
		return (uint64(legacy) + 1) << 16, true
	}
	ext, ok := b.Word(0x18)
	if !ok {
		return 0, false
	}
	size := uint64(ext & 0x3FFF)
	switch ext >> 14 {
	case 0:
		return size << 20, true
	case 1:
		return size << 30, true
	default:
		return 0, false
	}
}

// SystemBIOSRelease returns the major and minor release of the system BIOS.
func (b BIOSInformation) SystemBIOSRelease() (major, minor uint8, ok bool) {
	major, ok1 := b.Byte(0x14)
	minor, ok2 := b.Byte(0x15)
	if !ok1 || !ok2 || (major == 0xFF && minor == 0xFF) {
		return 0, 0, false
	}
	return major, minor, true
}

// Manufacturer returns the system manufacturer.
func (s SystemInformation) Manufacturer() (string, bool) { return s.StringAt(0x04) }

// ProductName returns the system product name.
func (s SystemInformation) ProductName() (string, bool) { return s.StringAt(0x05) }

// Version returns the system version string.
func (s SystemInformation) Version() (string, bool) { return s.StringAt(0x06) }

// SerialNumber returns the system serial number.
func (s SystemInformation) SerialNumber() (string, bool) { return s.StringAt(0x07) }

// SKUNumber returns the system SKU number.
func (s SystemInformation) SKUNumber() (string, bool) { return s.StringAt(0x19) }

// Family returns the system family.
func (s SystemInformation) Family() (string, bool) { return s.StringAt(0x1A) }

// UUID returns the system UUID. The first three fields are stored
// little-endian as SMBIOS 2.6 and later require. An all-zero or all-ones
// value means the UUID is absent.
func (s SystemInformation) UUID() (uuid.UUID, bool) {
	raw, ok := s.Raw(0x08, 0x18)
	if !ok {
		return uuid.Nil, false
	}
	return decodeUUID(raw)
}

func decodeUUID(raw []byte) (uuid.UUID, bool) {
	allZero, allOnes := true, true
	for _, c := range raw {
		allZero = allZero && c == 0x00
		allOnes = allOnes && c == 0xFF
	}
	if allZero || allOnes {
		return uuid.Nil, false
	}

	var u uuid.UUID
	copy(u[:], raw)
	u[0], u[1], u[2], u[3] = raw[3], raw[2], raw[1], raw[0]
	u[4], u[5] = raw[5], raw[4]
	u[6], u[7] = raw[7], raw[6]
	return u, true
}

// Manufacturer returns the board manufacturer.
func (b BaseboardInformation) Manufacturer() (string, bool) { return b.StringAt(0x04) }

// Product returns the board product name.
func (b BaseboardInformation) Product() (string, bool) { return b.StringAt(0x05) }

// Version returns the board version.
func (b BaseboardInformation) Version() (string, bool) { return b.StringAt(0x06) }

// SerialNumber returns the board serial number.
func (b BaseboardInformation) SerialNumber() (string, bool) { return b.StringAt(0x07) }

// AssetTag returns the board asset tag.
func (b BaseboardInformation) AssetTag() (string, bool) { return b.StringAt(0x08) }

// ChassisHandle returns the handle of the chassis the board sits in.
func (b BaseboardInformation) ChassisHandle() (Handle, bool) { return b.HandleField(0x0B) }

// ContainedHandles returns the handles of the objects on the board.
func (b BaseboardInformation) ContainedHandles() []Handle {
	n, ok := b.Byte(0x0E)
	if !ok {
		return nil
	}
	return handleList(b.Fields(), 0x0F, int(n), 2)
}

// Manufacturer returns the chassis manufacturer.
func (c ChassisInformation) Manufacturer() (string, bool) { return c.StringAt(0x04) }

// ChassisType returns the enclosure type with the lock bit masked off.
func (c ChassisInformation) ChassisType() (uint8, bool) {
	t, ok := c.Byte(0x05)
	return t & 0x7F, ok
}

// Locked reports whether a chassis lock is present.
func (c ChassisInformation) Locked() (bool, bool) {
	t, ok := c.Byte(0x05)
	return t&0x80 != 0, ok
}

// Version returns the chassis version.
func (c ChassisInformation) Version() (string, bool) { return c.StringAt(0x06) }

// SerialNumber returns the chassis serial number.
func (c ChassisInformation) SerialNumber() (string, bool) { return c.StringAt(0x07) }

// AssetTag returns the chassis asset tag.
func (c ChassisInformation) AssetTag() (string, bool) { return c.StringAt(0x08) }

// SocketDesignation returns the socket label, e.g. "CPU0".
func (p ProcessorInformation) SocketDesignation() (string, bool) { return p.StringAt(0x04) }

// Manufacturer returns the processor manufacturer.
func (p ProcessorInformation) Manufacturer() (string, bool) { return p.StringAt(0x07) }

// Version returns the processor version string, usually the model name.
func (p ProcessorInformation) Version() (string, bool) { return p.StringAt(0x10) }

// ID returns the raw processor identification (CPUID on x86).
func (p ProcessorInformation) ID() (uint64, bool) { return p.QWord(0x08) }

// MaxSpeed returns the maximum supported speed in MHz.
func (p ProcessorInformation) MaxSpeed() (uint16, bool) { return p.Word(0x14) }

// CurrentSpeed returns the speed at boot in MHz.
func (p ProcessorInformation) CurrentSpeed() (uint16, bool) { return p.Word(0x16) }

// Populated reports whether the socket holds a processor.
func (p ProcessorInformation) Populated() (bool, bool) {
	status, ok := p.Byte(0x18)
	return status&0x40 != 0, ok
}

// CacheHandles returns the L1, L2 and L3 cache references.
func (p ProcessorInformation) CacheHandles() []Handle {
	var out []Handle
	for _, off := range []int{0x1A, 0x1C, 0x1E} {
		if h, ok := p.HandleField(off); ok && h < HandleNotProvided {
			out = append(out, h)
		}
	}
	return out
}

// SerialNumber returns the processor serial number.
func (p ProcessorInformation) SerialNumber() (string, bool) { return p.StringAt(0x20) }

// PartNumber returns the processor part number.
func (p ProcessorInformation) PartNumber() (string, bool) { return p.StringAt(0x22) }

// CoreCount returns the number of cores, reading the 3.0 word field when the
// byte field saturates.
func (p ProcessorInformation) CoreCount() (uint16, bool) { return p.count(0x23, 0x2A) }

// CoreEnabled returns the number of enabled cores.
func (p ProcessorInformation) CoreEnabled() (uint16, bool) { return p.count(0x24, 0x2C) }

// ThreadCount returns the number of threads.
func (p ProcessorInformation) ThreadCount() (uint16, bool) { return p.count(0x25, 0x2E) }

func (p ProcessorInformation) count(byteOffset, wordOffset int) (uint16, bool) {
	n, ok := p.Byte(byteOffset)
	if !ok || n == 0 {
		return 0, false
	}
	if n != 0xFF {
		return uint16(n), true
	}
	if w, ok := p.Word(wordOffset); ok && w != 0 && w != 0xFFFF {
		return w, true
	}
	return uint16(n), true
}

// SocketDesignation returns the cache label, e.g. "L2 Cache".
func (c CacheInformation) SocketDesignation() (string, bool) { return c.StringAt(0x04) }

// Level returns the cache level, 1 for L1.
func (c CacheInformation) Level() (uint8, bool) {
	cfg, ok := c.Word(0x05)
	return uint8(cfg&0x07) + 1, ok
}

// InstalledSize returns the installed cache size in bytes.
func (c CacheInformation) InstalledSize() (uint64, bool) {
	legacy, ok := c.Word(0x09)
	if !ok {
		return 0, false
	}
	if legacy != 0xFFFF {
		return cacheSize(uint32(legacy&0x7FFF), legacy&0x8000 != 0), true
	}
	ext, ok := c.DWord(0x17)
	if !ok {
		return 0, false
	}
	return cacheSize(ext&0x7FFFFFFF, ext&0x80000000 != 0), true
}

func cacheSize(units uint32, granularity64K bool) uint64 {
	if granularity64K {
		return uint64(units) << 16
	}
	return uint64(units) << 10
}

// Values returns the OEM strings.
func (o OEMStrings) Values() []string { return o.Strings().Values() }

// Values returns the configuration option strings.
func (c SystemConfigurationOptions) Values() []string { return c.Strings().Values() }

// GroupMember is one entry of a group association.
type GroupMember struct {
	Type   Type
	Handle Handle
}

// Name returns the group name.
func (g GroupAssociations) Name() (string, bool) { return g.StringAt(0x04) }

// Members returns the structures the group associates.
func (g GroupAssociations) Members() []GroupMember {
	f := g.Fields()
	var out []GroupMember
	for off := 0x05; off+3 <= f.Len(); off += 3 {
		t, _ := f.Byte(off)
		h, _ := f.Handle(off + 1)
		out = append(out, GroupMember{Type: Type(t), Handle: h})
	}
	return out
}

// MaximumCapacity returns the largest amount of memory the array supports,
// in bytes.
func (a PhysicalMemoryArray) MaximumCapacity() (uint64, bool) {
	kb, ok := a.DWord(0x07)
	if !ok {
		return 0, false
	}
	if kb != 0x80000000 {
		return uint64(kb) << 10, true
	}
	return a.QWord(0x0F)
}

// NumberOfDevices returns the number of slots in the array.
func (a PhysicalMemoryArray) NumberOfDevices() (uint16, bool) { return a.Word(0x0D) }

// Use returns the array's function code (3 is system memory).
func (a PhysicalMemoryArray) Use() (uint8, bool) { return a.Byte(0x05) }

// PhysicalMemoryArrayHandle returns the array the device belongs to.
func (d MemoryDevice) PhysicalMemoryArrayHandle() (Handle, bool) { return d.HandleField(0x04) }

// DeviceLocator returns the slot label.
func (d MemoryDevice) DeviceLocator() (string, bool) { return d.StringAt(0x10) }

// BankLocator returns the bank label.
func (d MemoryDevice) BankLocator() (string, bool) { return d.StringAt(0x11) }

// MemoryType returns the memory type code (0x1A is DDR4).
func (d MemoryDevice) MemoryType() (uint8, bool) { return d.Byte(0x12) }

// Speed returns the maximum speed in MT/s.
func (d MemoryDevice) Speed() (uint16, bool) { return d.Word(0x15) }

// Manufacturer returns the module manufacturer.
func (d MemoryDevice) Manufacturer() (string, bool) { return d.StringAt(0x17) }

// SerialNumber returns the module serial number.
func (d MemoryDevice) SerialNumber() (string, bool) { return d.StringAt(0x18) }

// PartNumber returns the module part number.
func (d MemoryDevice) PartNumber() (string, bool) { return d.StringAt(0x1A) }

// Size returns the installed size in bytes. An empty slot reports 0; an
// unknown size reports ok=false.
func (d MemoryDevice) Size() (uint64, bool) {
	size, ok := d.Word(0x0C)
	if !ok || size == 0xFFFF {
		return 0, false
	}
	if size == 0x7FFF {
		ext, ok := d.DWord(0x1C)
		if !ok {
			return 0, false
		}
		return uint64(ext&0x7FFFFFFF) << 20, true
	}
	if size&0x8000 != 0 {
		return uint64(size&0x7FFF) << 10, true
	}
	return uint64(size) << 20, true
}

// StartingAddress returns the first byte address mapped by the range.
func (m MemoryArrayMappedAddress) StartingAddress() (uint64, bool) {
	start, ok := m.DWord(0x04)
	if !ok {
		return 0, false
	}
	if start != 0xFFFFFFFF {
		return uint64(start) << 10, true
	}
	return m.QWord(0x0F)
}

// EndingAddress returns the last byte address mapped by the range.
func (m MemoryArrayMappedAddress) EndingAddress() (uint64, bool) {
	start, ok := m.DWord(0x04)
	if !ok {
		return 0, false
	}
	if start != 0xFFFFFFFF {
		end, ok := m.DWord(0x08)
		return uint64(end)<<10 | 0x3FF, ok
	}
	return m.QWord(0x17)
}

// ArrayHandle returns the physical memory array the range belongs to.
func (m MemoryArrayMappedAddress) ArrayHandle() (Handle, bool) { return m.HandleField(0x0C) }

// BootStatus returns the first byte of the boot status field; 0 means no
// errors were detected.
func (b SystemBootInformation) BootStatus() (uint8, bool) { return b.Byte(0x0A) }

// handleList reads n little-endian handles of the given stride starting at
// offset, stopping at the end of the formatted area.
func handleList(f Fields, offset, n, stride int) []Handle {
	var out []Handle
	for i := 0; i < n; i++ {
		h, ok := f.Handle(offset + i*stride)
		if !ok {
			break
		}
		out = append(out, h)
	}
	return out
}
