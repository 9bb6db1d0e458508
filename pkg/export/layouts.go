package export

import "github.com/ssargent/dmidb/pkg/smbios"

type fieldKind uint8

const (
	kindByte fieldKind = iota
	kindWord
	kindDWord
	kindQWord
	kindHandle
	kindString
	kindUUID
)

// fieldSpec names one formatted field. Offsets count from the start of the
// header, as in DSP0134.
type fieldSpec struct {
	name   string
	offset int
	kind   fieldKind
}

// layouts lists the fields rendered for the commonly inspected types. Fields
// past a structure's declared length are skipped, so one layout serves every
// SMBIOS version.
var layouts = map[smbios.Type][]fieldSpec{
	smbios.TypeBIOSInformation: {
		{"Vendor", 0x04, kindString},
		{"BIOS Version", 0x05, kindString},
		{"BIOS Starting Address Segment", 0x06, kindWord},
		{"BIOS Release Date", 0x08, kindString},
		{"BIOS ROM Size", 0x09, kindByte},
		{"BIOS Characteristics", 0x0A, kindQWord},
		{"System BIOS Major Release", 0x14, kindByte},
		{"System BIOS Minor Release", 0x15, kindByte},
		{"Embedded Controller Major Release", 0x16, kindByte},
		{"Embedded Controller Minor Release", 0x17, kindByte},
		{"Extended BIOS ROM Size", 0x18, kindWord},
	},
	smbios.TypeSystemInformation: {
		{"Manufacturer", 0x04, kindString},
		{"Product Name", 0x05, kindString},
		{"Version", 0x06, kindString},
		{"Serial Number", 0x07, kindString},
		{"UUID", 0x08, kindUUID},
		{"Wake-up Type", 0x18, kindByte},
		{"SKU Number", 0x19, kindString},
		{"Family", 0x1A, kindString},
	},
	smbios.TypeBaseboardInformation: {
		{"Manufacturer", 0x04, kindString},
		{"Product", 0x05, kindString},
		{"Version", 0x06, kindString},
		{"Serial Number", 0x07, kindString},
		{"Asset Tag", 0x08, kindString},
		{"Feature Flags", 0x09, kindByte},
		{"Location in Chassis", 0x0A, kindString},
		{"Chassis Handle", 0x0B, kindHandle},
		{"Board Type", 0x0D, kindByte},
	},
	smbios.TypeChassisInformation: {
		{"Manufacturer", 0x04, kindString},
		{"Type", 0x05, kindByte},
		{"Version", 0x06, kindString},
		{"Serial Number", 0x07, kindString},
		{"Asset Tag", 0x08, kindString},
		{"Boot-up State", 0x09, kindByte},
		{"Power Supply State", 0x0A, kindByte},
		{"Thermal State", 0x0B, kindByte},
		{"Security Status", 0x0C, kindByte},
		{"OEM-defined", 0x0D, kindDWord},
		{"Height", 0x11, kindByte},
		{"Number of Power Cords", 0x12, kindByte},
	},
	smbios.TypeProcessorInformation: {
		{"Socket Designation", 0x04, kindString},
		{"Processor Type", 0x05, kindByte},
		{"Processor Family", 0x06, kindByte},
		{"Processor Manufacturer", 0x07, kindString},
		{"Processor ID", 0x08, kindQWord},
		{"Processor Version", 0x10, kindString},
		{"Voltage", 0x11, kindByte},
		{"External Clock", 0x12, kindWord},
		{"Max Speed", 0x14, kindWord},
		{"Current Speed", 0x16, kindWord},
		{"Status", 0x18, kindByte},
		{"Processor Upgrade", 0x19, kindByte},
		{"L1 Cache Handle", 0x1A, kindHandle},
		{"L2 Cache Handle", 0x1C, kindHandle},
		{"L3 Cache Handle", 0x1E, kindHandle},
		{"Serial Number", 0x20, kindString},
		{"Asset Tag", 0x21, kindString},
		{"Part Number", 0x22, kindString},
		{"Core Count", 0x23, kindByte},
		{"Core Enabled", 0x24, kindByte},
		{"Thread Count", 0x25, kindByte},
		{"Processor Characteristics", 0x26, kindWord},
		{"Processor Family 2", 0x28, kindWord},
		{"Core Count 2", 0x2A, kindWord},
		{"Core Enabled 2", 0x2C, kindWord},
		{"Thread Count 2", 0x2E, kindWord},
	},
	smbios.TypeCacheInformation: {
		{"Socket Designation", 0x04, kindString},
		{"Cache Configuration", 0x05, kindWord},
		{"Maximum Cache Size", 0x07, kindWord},
		{"Installed Size", 0x09, kindWord},
		{"Supported SRAM Type", 0x0B, kindWord},
		{"Current SRAM Type", 0x0D, kindWord},
		{"Cache Speed", 0x0F, kindByte},
		{"Error Correction Type", 0x10, kindByte},
		{"System Cache Type", 0x11, kindByte},
		{"Associativity", 0x12, kindByte},
		{"Maximum Cache Size 2", 0x13, kindDWord},
		{"Installed Cache Size 2", 0x17, kindDWord},
	},
	smbios.TypeSystemSlots: {
		{"Slot Designation", 0x04, kindString},
		{"Slot Type", 0x05, kindByte},
		{"Slot Data Bus Width", 0x06, kindByte},
		{"Current Usage", 0x07, kindByte},
		{"Slot Length", 0x08, kindByte},
		{"Slot ID", 0x09, kindWord},
		{"Slot Characteristics 1", 0x0B, kindByte},
		{"Slot Characteristics 2", 0x0C, kindByte},
		{"Segment Group Number", 0x0D, kindWord},
		{"Bus Number", 0x0F, kindByte},
		{"Device/Function Number", 0x10, kindByte},
	},
	smbios.TypePhysicalMemoryArray: {
		{"Location", 0x04, kindByte},
		{"Use", 0x05, kindByte},
		{"Memory Error Correction", 0x06, kindByte},
		{"Maximum Capacity", 0x07, kindDWord},
		{"Memory Error Information Handle", 0x0B, kindHandle},
		{"Number of Memory Devices", 0x0D, kindWord},
		{"Extended Maximum Capacity", 0x0F, kindQWord},
	},
	smbios.TypeMemoryDevice: {
		{"Physical Memory Array Handle", 0x04, kindHandle},
		{"Memory Error Information Handle", 0x06, kindHandle},
		{"Total Width", 0x08, kindWord},
		{"Data Width", 0x0A, kindWord},
		{"Size", 0x0C, kindWord},
		{"Form Factor", 0x0E, kindByte},
		{"Device Set", 0x0F, kindByte},
		{"Device Locator", 0x10, kindString},
		{"Bank Locator", 0x11, kindString},
		{"Memory Type", 0x12, kindByte},
		{"Type Detail", 0x13, kindWord},
		{"Speed", 0x15, kindWord},
		{"Manufacturer", 0x17, kindString},
		{"Serial Number", 0x18, kindString},
		{"Asset Tag", 0x19, kindString},
		{"Part Number", 0x1A, kindString},
		{"Attributes", 0x1B, kindByte},
		{"Extended Size", 0x1C, kindDWord},
		{"Configured Memory Speed", 0x20, kindWord},
	},
	smbios.TypeMemoryArrayMappedAddress: {
		{"Starting Address", 0x04, kindDWord},
		{"Ending Address", 0x08, kindDWord},
		{"Memory Array Handle", 0x0C, kindHandle},
		{"Partition Width", 0x0E, kindByte},
		{"Extended Starting Address", 0x0F, kindQWord},
		{"Extended Ending Address", 0x17, kindQWord},
	},
	smbios.TypeSystemBootInformation: {
		{"Boot Status", 0x0A, kindByte},
	},
}
