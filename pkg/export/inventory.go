package export

import (
	"fmt"
	"sort"

	"github.com/ssargent/dmidb/pkg/smbios"
)

// Inventory is a hardware summary assembled from the structures that
// describe firmware, system, boards, processors and memory.
type Inventory struct {
	Version      string        `json:"version,omitempty" yaml:"version,omitempty"`
	BIOS         *BIOS         `json:"bios,omitempty" yaml:"bios,omitempty"`
	System       *System       `json:"system,omitempty" yaml:"system,omitempty"`
	Baseboards   []Baseboard   `json:"baseboards,omitempty" yaml:"baseboards,omitempty"`
	Chassis      []Chassis     `json:"chassis,omitempty" yaml:"chassis,omitempty"`
	Processors   []Processor   `json:"processors,omitempty" yaml:"processors,omitempty"`
	MemoryArrays []MemoryArray `json:"memory_arrays,omitempty" yaml:"memory_arrays,omitempty"`

	// UnassignedDevices holds memory devices whose array handle resolves to
	// no Physical Memory Array.
	UnassignedDevices []MemoryDevice `json:"unassigned_devices,omitempty" yaml:"unassigned_devices,omitempty"`

	TotalMemoryBytes uint64 `json:"total_memory_bytes" yaml:"total_memory_bytes"`
}

// BIOS describes the firmware (type 0).
type BIOS struct {
	Vendor       string `json:"vendor" yaml:"vendor"`
	Version      string `json:"version" yaml:"version"`
	ReleaseDate  string `json:"release_date" yaml:"release_date"`
	Release      string `json:"release,omitempty" yaml:"release,omitempty"`
	ROMSizeBytes uint64 `json:"rom_size_bytes,omitempty" yaml:"rom_size_bytes,omitempty"`
}

// System identifies the machine (type 1).
type System struct {
	Manufacturer string `json:"manufacturer" yaml:"manufacturer"`
	ProductName  string `json:"product_name" yaml:"product_name"`
	Version      string `json:"version" yaml:"version"`
	SerialNumber string `json:"serial_number" yaml:"serial_number"`
	UUID         string `json:"uuid,omitempty" yaml:"uuid,omitempty"`
	SKUNumber    string `json:"sku_number,omitempty" yaml:"sku_number,omitempty"`
	Family       string `json:"family,omitempty" yaml:"family,omitempty"`
}

type Baseboard struct {
	Handle       string `json:"handle" yaml:"handle"`
	Manufacturer string `json:"manufacturer" yaml:"manufacturer"`
	Product      string `json:"product" yaml:"product"`
	Version      string `json:"version" yaml:"version"`
	SerialNumber string `json:"serial_number" yaml:"serial_number"`
	AssetTag     string `json:"asset_tag,omitempty" yaml:"asset_tag,omitempty"`
}

type Chassis struct {
	Handle       string `json:"handle" yaml:"handle"`
	Manufacturer string `json:"manufacturer" yaml:"manufacturer"`
	Type         uint8  `json:"type" yaml:"type"`
	Locked       bool   `json:"locked" yaml:"locked"`
	SerialNumber string `json:"serial_number" yaml:"serial_number"`
	AssetTag     string `json:"asset_tag,omitempty" yaml:"asset_tag,omitempty"`
}

// Processor is one socket (type 4) with its caches resolved.
type Processor struct {
	Handle          string  `json:"handle" yaml:"handle"`
	Socket          string  `json:"socket" yaml:"socket"`
	Manufacturer    string  `json:"manufacturer" yaml:"manufacturer"`
	Version         string  `json:"version" yaml:"version"`
	Populated       bool    `json:"populated" yaml:"populated"`
	MaxSpeedMHz     uint16  `json:"max_speed_mhz" yaml:"max_speed_mhz"`
	CurrentSpeedMHz uint16  `json:"current_speed_mhz" yaml:"current_speed_mhz"`
	Cores           uint16  `json:"cores,omitempty" yaml:"cores,omitempty"`
	CoresEnabled    uint16  `json:"cores_enabled,omitempty" yaml:"cores_enabled,omitempty"`
	Threads         uint16  `json:"threads,omitempty" yaml:"threads,omitempty"`
	Caches          []Cache `json:"caches,omitempty" yaml:"caches,omitempty"`
}

type Cache struct {
	Handle      string `json:"handle" yaml:"handle"`
	Designation string `json:"designation" yaml:"designation"`
	Level       uint8  `json:"level" yaml:"level"`
	SizeBytes   uint64 `json:"size_bytes" yaml:"size_bytes"`
}

// MemoryArray is a Physical Memory Array (type 16) and the devices that
// reference it.
type MemoryArray struct {
	Handle               string         `json:"handle" yaml:"handle"`
	Use                  uint8          `json:"use" yaml:"use"`
	MaximumCapacityBytes uint64         `json:"maximum_capacity_bytes" yaml:"maximum_capacity_bytes"`
	Slots                uint16         `json:"slots" yaml:"slots"`
	Devices              []MemoryDevice `json:"devices,omitempty" yaml:"devices,omitempty"`
}

type MemoryDevice struct {
	Handle       string `json:"handle" yaml:"handle"`
	Locator      string `json:"locator" yaml:"locator"`
	Bank         string `json:"bank,omitempty" yaml:"bank,omitempty"`
	Type         uint8  `json:"type" yaml:"type"`
	SpeedMTs     uint16 `json:"speed_mts,omitempty" yaml:"speed_mts,omitempty"`
	SizeBytes    uint64 `json:"size_bytes" yaml:"size_bytes"`
	Manufacturer string `json:"manufacturer,omitempty" yaml:"manufacturer,omitempty"`
	SerialNumber string `json:"serial_number,omitempty" yaml:"serial_number,omitempty"`
	PartNumber   string `json:"part_number,omitempty" yaml:"part_number,omitempty"`
}

// NewInventory summarizes t. Missing structures leave their section empty.
func NewInventory(t *smbios.Table) *Inventory {
	inv := &Inventory{}
	if v, ok := t.Version(); ok {
		inv.Version = v.String()
	}

	if b, ok := smbios.First[smbios.BIOSInformation](t); ok {
		inv.BIOS = newBIOS(b)
	}
	if s, ok := smbios.First[smbios.SystemInformation](t); ok {
		inv.System = newSystem(s)
	}
	for _, b := range smbios.Collect[smbios.BaseboardInformation](t) {
		inv.Baseboards = append(inv.Baseboards, Baseboard{
			Handle:       FormatHandle(b.Handle()),
			Manufacturer: text(b.Manufacturer()),
			Product:      text(b.Product()),
			Version:      text(b.Version()),
			SerialNumber: text(b.SerialNumber()),
			AssetTag:     text(b.AssetTag()),
		})
	}
	for _, c := range smbios.Collect[smbios.ChassisInformation](t) {
		typ, _ := c.ChassisType()
		locked, _ := c.Locked()
		inv.Chassis = append(inv.Chassis, Chassis{
			Handle:       FormatHandle(c.Handle()),
			Manufacturer: text(c.Manufacturer()),
			Type:         typ,
			Locked:       locked,
			SerialNumber: text(c.SerialNumber()),
			AssetTag:     text(c.AssetTag()),
		})
	}
	for _, p := range smbios.Collect[smbios.ProcessorInformation](t) {
		inv.Processors = append(inv.Processors, newProcessor(t, p))
	}

	arrays := make(map[smbios.Handle]int)
	for _, a := range smbios.Collect[smbios.PhysicalMemoryArray](t) {
		capacity, _ := a.MaximumCapacity()
		use, _ := a.Use()
		slots, _ := a.NumberOfDevices()
		arrays[a.Handle()] = len(inv.MemoryArrays)
		inv.MemoryArrays = append(inv.MemoryArrays, MemoryArray{
			Handle:               FormatHandle(a.Handle()),
			Use:                  use,
			MaximumCapacityBytes: capacity,
			Slots:                slots,
		})
	}
	for _, d := range smbios.Collect[smbios.MemoryDevice](t) {
		dev := newMemoryDevice(d)
		inv.TotalMemoryBytes += dev.SizeBytes

		parent, ok := d.PhysicalMemoryArrayHandle()
		idx, found := arrays[parent]
		if !ok || !found {
			inv.UnassignedDevices = append(inv.UnassignedDevices, dev)
			continue
		}
		inv.MemoryArrays[idx].Devices = append(inv.MemoryArrays[idx].Devices, dev)
	}
	for i := range inv.MemoryArrays {
		devices := inv.MemoryArrays[i].Devices
		sort.SliceStable(devices, func(a, b int) bool { return devices[a].Handle < devices[b].Handle })
	}
	return inv
}

func newBIOS(b smbios.BIOSInformation) *BIOS {
	out := &BIOS{
		Vendor:      text(b.Vendor()),
		Version:     text(b.Version()),
		ReleaseDate: text(b.ReleaseDate()),
	}
	if size, ok := b.ROMSize(); ok {
		out.ROMSizeBytes = size
	}
	if major, minor, ok := b.SystemBIOSRelease(); ok {
		out.Release = fmt.Sprintf("%d.%d", major, minor)
	}
	return out
}

func newSystem(s smbios.SystemInformation) *System {
	out := &System{
		Manufacturer: text(s.Manufacturer()),
		ProductName:  text(s.ProductName()),
		Version:      text(s.Version()),
		SerialNumber: text(s.SerialNumber()),
		SKUNumber:    text(s.SKUNumber()),
		Family:       text(s.Family()),
	}
	if id, ok := s.UUID(); ok {
		out.UUID = id.String()
	}
	return out
}

func newProcessor(t *smbios.Table, p smbios.ProcessorInformation) Processor {
	populated, _ := p.Populated()
	maxSpeed, _ := p.MaxSpeed()
	curSpeed, _ := p.CurrentSpeed()
	cores, _ := p.CoreCount()
	enabled, _ := p.CoreEnabled()
	threads, _ := p.ThreadCount()

	out := Processor{
		Handle:          FormatHandle(p.Handle()),
		Socket:          text(p.SocketDesignation()),
		Manufacturer:    text(p.Manufacturer()),
		Version:         text(p.Version()),
		Populated:       populated,
		MaxSpeedMHz:     maxSpeed,
		CurrentSpeedMHz: curSpeed,
		Cores:           cores,
		CoresEnabled:    enabled,
		Threads:         threads,
	}
	for _, h := range p.CacheHandles() {
		c, ok := smbios.Resolve[smbios.CacheInformation](t, h)
		if !ok {
			continue
		}
		level, _ := c.Level()
		size, _ := c.InstalledSize()
		out.Caches = append(out.Caches, Cache{
			Handle:      FormatHandle(h),
			Designation: text(c.SocketDesignation()),
			Level:       level,
			SizeBytes:   size,
		})
	}
	return out
}

func newMemoryDevice(d smbios.MemoryDevice) MemoryDevice {
	typ, _ := d.MemoryType()
	speed, _ := d.Speed()
	size, _ := d.Size()
	return MemoryDevice{
		Handle:       FormatHandle(d.Handle()),
		Locator:      text(d.DeviceLocator()),
		Bank:         text(d.BankLocator()),
		Type:         typ,
		SpeedMTs:     speed,
		SizeBytes:    size,
		Manufacturer: text(d.Manufacturer()),
		SerialNumber: text(d.SerialNumber()),
		PartNumber:   text(d.PartNumber()),
	}
}

// text drops the ok flag of a string accessor; absent strings render empty.
func text(s string, _ bool) string {
	return s
}
