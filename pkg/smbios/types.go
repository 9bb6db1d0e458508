package smbios

import "fmt"

// Type is the structure type stored in the first header byte.
type Type uint8

// Structure types assigned by DSP0134. Codes 128 through 255 are reserved
// for OEM-specific structures.
const (
	TypeBIOSInformation                   Type = 0
	TypeSystemInformation                 Type = 1
	TypeBaseboardInformation              Type = 2
	TypeChassisInformation                Type = 3
	TypeProcessorInformation              Type = 4
	TypeMemoryControllerInformation       Type = 5
	TypeMemoryModuleInformation           Type = 6
	TypeCacheInformation                  Type = 7
	TypePortConnectorInformation          Type = 8
	TypeSystemSlots                       Type = 9
	TypeOnBoardDevicesInformation         Type = 10
	TypeOEMStrings                        Type = 11
	TypeSystemConfigurationOptions        Type = 12
	TypeBIOSLanguageInformation           Type = 13
	TypeGroupAssociations                 Type = 14
	TypeSystemEventLog                    Type = 15
	TypePhysicalMemoryArray               Type = 16
	TypeMemoryDevice                      Type = 17
	TypeMemoryError32                     Type = 18
	TypeMemoryArrayMappedAddress          Type = 19
	TypeMemoryDeviceMappedAddress         Type = 20
	TypeBuiltInPointingDevice             Type = 21
	TypePortableBattery                   Type = 22
	TypeSystemReset                       Type = 23
	TypeHardwareSecurity                  Type = 24
	TypeSystemPowerControls               Type = 25
	TypeVoltageProbe                      Type = 26
	TypeCoolingDevice                     Type = 27
	TypeTemperatureProbe                  Type = 28
	TypeElectricalCurrentProbe            Type = 29
	TypeOutOfBandRemoteAccess             Type = 30
	TypeBootIntegrityServices             Type = 31
	TypeSystemBootInformation             Type = 32
	TypeMemoryError64                     Type = 33
	TypeManagementDevice                  Type = 34
	TypeManagementDeviceComponent         Type = 35
	TypeManagementDeviceThresholdData     Type = 36
	TypeMemoryChannel                     Type = 37
	TypeIPMIDeviceInformation             Type = 38
	TypeSystemPowerSupply                 Type = 39
	TypeAdditionalInformation             Type = 40
	TypeOnboardDevicesExtendedInformation Type = 41
	TypeManagementControllerHostInterface Type = 42
	TypeTPMDevice                         Type = 43
	TypeProcessorAdditionalInformation    Type = 44
	TypeFirmwareInventoryInformation      Type = 45
	TypeStringProperty                    Type = 46
	TypeInactive                          Type = 126
	TypeEndOfTable                        Type = 127

	// TypeOEMStart is the first type code reserved for vendors.
	TypeOEMStart Type = 128
)

// IsOEM reports whether t is in the vendor-reserved range.
func (t Type) IsOEM() bool {
	return t >= TypeOEMStart
}

// Known reports whether t has an assigned DSP0134 meaning.
func (t Type) Known() bool {
	return descriptors[t].name != ""
}

func (t Type) String() string {
	if name := descriptors[t].name; name != "" {
		return name
	}
	if t.IsOEM() {
		return fmt.Sprintf("OEM-specific Type %d", uint8(t))
	}
	return fmt.Sprintf("Unknown Type %d", uint8(t))
}
