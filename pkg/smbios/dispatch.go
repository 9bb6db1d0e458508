package smbios

// Defined is a structure projected onto its DSP0134 type. Dispatch returns
// exactly one of the variant types declared in this file; Unknown covers
// unassigned and OEM codes, so the projection is total.
type Defined interface {
	// Base returns the underlying structure.
	Base() Structure
	// Kind returns the header type the variant was selected by.
	Kind() Type

	defined()
}

// variant is embedded by every Defined implementation.
type variant struct {
	Structure
}

func (v variant) Base() Structure { return v.Structure }
func (v variant) Kind() Type      { return v.Header.Type }
func (variant) defined()          {}

// Variants, one per assigned type code.
type (
	BIOSInformation                   struct{ variant }
	SystemInformation                 struct{ variant }
	BaseboardInformation              struct{ variant }
	ChassisInformation                struct{ variant }
	ProcessorInformation              struct{ variant }
	MemoryControllerInformation       struct{ variant }
	MemoryModuleInformation           struct{ variant }
	CacheInformation                  struct{ variant }
	PortConnectorInformation          struct{ variant }
	SystemSlots                       struct{ variant }
	OnBoardDevicesInformation         struct{ variant }
	OEMStrings                        struct{ variant }
	SystemConfigurationOptions        struct{ variant }
	BIOSLanguageInformation           struct{ variant }
	GroupAssociations                 struct{ variant }
	SystemEventLog                    struct{ variant }
	PhysicalMemoryArray               struct{ variant }
	MemoryDevice                      struct{ variant }
	MemoryError32                     struct{ variant }
	MemoryArrayMappedAddress          struct{ variant }
	MemoryDeviceMappedAddress         struct{ variant }
	BuiltInPointingDevice             struct{ variant }
	PortableBattery                   struct{ variant }
	SystemReset                       struct{ variant }
	HardwareSecurity                  struct{ variant }
	SystemPowerControls               struct{ variant }
	VoltageProbe                      struct{ variant }
	CoolingDevice                     struct{ variant }
	TemperatureProbe                  struct{ variant }
	ElectricalCurrentProbe            struct{ variant }
	OutOfBandRemoteAccess             struct{ variant }
	BootIntegrityServices             struct{ variant }
	SystemBootInformation             struct{ variant }
	MemoryError64                     struct{ variant }
	ManagementDevice                  struct{ variant }
	ManagementDeviceComponent         struct{ variant }
	ManagementDeviceThresholdData     struct{ variant }
	MemoryChannel                     struct{ variant }
	IPMIDeviceInformation             struct{ variant }
	SystemPowerSupply                 struct{ variant }
	AdditionalInformation             struct{ variant }
	OnboardDevicesExtendedInformation struct{ variant }
	ManagementControllerHostInterface struct{ variant }
	TPMDevice                         struct{ variant }
	ProcessorAdditionalInformation    struct{ variant }
	FirmwareInventoryInformation      struct{ variant }
	StringProperty                    struct{ variant }
	Inactive                          struct{ variant }
	EndOfTable                        struct{ variant }

	// Unknown carries structures whose type has no assigned meaning,
	// including the OEM range.
	Unknown struct{ variant }
)

type descriptor struct {
	name string
	wrap func(variant) Defined
}

// descriptors is indexed by type code. Entries without a name dispatch to
// Unknown.
var descriptors = [256]descriptor{
	TypeBIOSInformation:                   {"BIOS Information", func(v variant) Defined { return BIOSInformation{v} }},
	TypeSystemInformation:                 {"System Information", func(v variant) Defined { return SystemInformation{v} }},
	TypeBaseboardInformation:              {"Base Board Information", func(v variant) Defined { return BaseboardInformation{v} }},
	TypeChassisInformation:                {"Chassis Information", func(v variant) Defined { return ChassisInformation{v} }},
	TypeProcessorInformation:              {"Processor Information", func(v variant) Defined { return ProcessorInformation{v} }},
	TypeMemoryControllerInformation:       {"Memory Controller Information", func(v variant) Defined { return MemoryControllerInformation{v} }},
	TypeMemoryModuleInformation:           {"Memory Module Information", func(v variant) Defined { return MemoryModuleInformation{v} }},
	TypeCacheInformation:                  {"Cache Information", func(v variant) Defined { return CacheInformation{v} }},
	TypePortConnectorInformation:          {"Port Connector Information", func(v variant) Defined { return PortConnectorInformation{v} }},
	TypeSystemSlots:                       {"System Slots", func(v variant) Defined { return SystemSlots{v} }},
	TypeOnBoardDevicesInformation:         {"On Board Devices Information", func(v variant) Defined { return OnBoardDevicesInformation{v} }},
	TypeOEMStrings:                        {"OEM Strings", func(v variant) Defined { return OEMStrings{v} }},
	TypeSystemConfigurationOptions:        {"System Configuration Options", func(v variant) Defined { return SystemConfigurationOptions{v} }},
	TypeBIOSLanguageInformation:           {"BIOS Language Information", func(v variant) Defined { return BIOSLanguageInformation{v} }},
	TypeGroupAssociations:                 {"Group Associations", func(v variant) Defined { return GroupAssociations{v} }},
	TypeSystemEventLog:                    {"System Event Log", func(v variant) Defined { return SystemEventLog{v} }},
	TypePhysicalMemoryArray:               {"Physical Memory Array", func(v variant) Defined { return PhysicalMemoryArray{v} }},
	TypeMemoryDevice:                      {"Memory Device", func(v variant) Defined { return MemoryDevice{v} }},
	TypeMemoryError32:                     {"32-bit Memory Error Information", func(v variant) Defined { return MemoryError32{v} }},
	TypeMemoryArrayMappedAddress:          {"Memory Array Mapped Address", func(v variant) Defined { return MemoryArrayMappedAddress{v} }},
	TypeMemoryDeviceMappedAddress:         {"Memory Device Mapped Address", func(v variant) Defined { return MemoryDeviceMappedAddress{v} }},
	TypeBuiltInPointingDevice:             {"Built-in Pointing Device", func(v variant) Defined { return BuiltInPointingDevice{v} }},
	TypePortableBattery:                   {"Portable Battery", func(v variant) Defined { return PortableBattery{v} }},
	TypeSystemReset:                       {"System Reset", func(v variant) Defined { return SystemReset{v} }},
	TypeHardwareSecurity:                  {"Hardware Security", func(v variant) Defined { return HardwareSecurity{v} }},
	TypeSystemPowerControls:               {"System Power Controls", func(v variant) Defined { return SystemPowerControls{v} }},
	TypeVoltageProbe:                      {"Voltage Probe", func(v variant) Defined { return VoltageProbe{v} }},
	TypeCoolingDevice:                     {"Cooling Device", func(v variant) Defined { return CoolingDevice{v} }},
	TypeTemperatureProbe:                  {"Temperature Probe", func(v variant) Defined { return TemperatureProbe{v} }},
	TypeElectricalCurrentProbe:            {"Electrical Current Probe", func(v variant) Defined { return ElectricalCurrentProbe{v} }},
	TypeOutOfBandRemoteAccess:             {"Out-of-band Remote Access", func(v variant) Defined { return OutOfBandRemoteAccess{v} }},
	TypeBootIntegrityServices:             {"Boot Integrity Services Entry Point", func(v variant) Defined { return BootIntegrityServices{v} }},
	TypeSystemBootInformation:             {"System Boot Information", func(v variant) Defined { return SystemBootInformation{v} }},
	TypeMemoryError64:                     {"64-bit Memory Error Information", func(v variant) Defined { return MemoryError64{v} }},
	TypeManagementDevice:                  {"Management Device", func(v variant) Defined { return ManagementDevice{v} }},
	TypeManagementDeviceComponent:         {"Management Device Component", func(v variant) Defined { return ManagementDeviceComponent{v} }},
	TypeManagementDeviceThresholdData:     {"Management Device Threshold Data", func(v variant) Defined { return ManagementDeviceThresholdData{v} }},
	TypeMemoryChannel:                     {"Memory Channel", func(v variant) Defined { return MemoryChannel{v} }},
	TypeIPMIDeviceInformation:             {"IPMI Device Information", func(v variant) Defined { return IPMIDeviceInformation{v} }},
	TypeSystemPowerSupply:                 {"System Power Supply", func(v variant) Defined { return SystemPowerSupply{v} }},
	TypeAdditionalInformation:             {"Additional Information", func(v variant) Defined { return AdditionalInformation{v} }},
	TypeOnboardDevicesExtendedInformation: {"Onboard Devices Extended Information", func(v variant) Defined { return OnboardDevicesExtendedInformation{v} }},
	TypeManagementControllerHostInterface: {"Management Controller Host Interface", func(v variant) Defined { return ManagementControllerHostInterface{v} }},
	TypeTPMDevice:                         {"TPM Device", func(v variant) Defined { return TPMDevice{v} }},
	TypeProcessorAdditionalInformation:    {"Processor Additional Information", func(v variant) Defined { return ProcessorAdditionalInformation{v} }},
	TypeFirmwareInventoryInformation:      {"Firmware Inventory Information", func(v variant) Defined { return FirmwareInventoryInformation{v} }},
	TypeStringProperty:                    {"String Property", func(v variant) Defined { return StringProperty{v} }},
	TypeInactive:                          {"Inactive", func(v variant) Defined { return Inactive{v} }},
	TypeEndOfTable:                        {"End Of Table", func(v variant) Defined { return EndOfTable{v} }},
}

// Dispatch projects s onto the variant matching its type code.
func Dispatch(s Structure) Defined {
	if wrap := descriptors[s.Header.Type].wrap; wrap != nil {
		return wrap(variant{s})
	}
	return Unknown{variant{s}}
}
