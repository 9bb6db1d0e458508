package export

import (
	"testing"

	"github.com/ssargent/dmidb/pkg/smbios"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldMap(s StructureReport) map[string]any {
	out := make(map[string]any, len(s.Fields))
	for _, f := range s.Fields {
		out[f.Name] = f.Value
	}
	return out
}

func TestNewReport(t *testing.T) {
	report := NewReport(machineTable())

	assert.Equal(t, "3.2.0", report.Version)
	assert.Empty(t, report.Diagnostic)
	require.Len(t, report.Structures, 12)

	bios := report.Structures[0]
	assert.Equal(t, uint8(0), bios.Type)
	assert.Equal(t, "BIOS Information", bios.Name)
	assert.Equal(t, "0x0000", bios.Handle)
	assert.Equal(t, uint8(0x18), bios.Length)
	assert.Equal(t, 0, bios.Offset)
	assert.Equal(t, []string{"Acme", "2.0.1", "03/04/2024"}, bios.Strings)

	fields := fieldMap(bios)
	assert.Equal(t, "Acme", fields["Vendor"])
	assert.Equal(t, "03/04/2024", fields["BIOS Release Date"])
	assert.Equal(t, uint8(0x0F), fields["BIOS ROM Size"])
	assert.Equal(t, uint8(2), fields["System BIOS Major Release"])
	assert.NotContains(t, fields, "Extended BIOS ROM Size", "field beyond the declared length")
}

func TestNewReport_SystemFields(t *testing.T) {
	report := NewReport(machineTable())
	fields := fieldMap(report.Structures[1])

	assert.Equal(t, "00112233-4455-6677-8899-aabbccddeeff", fields["UUID"])
	assert.Equal(t, "", fields["Version"], "unset string index renders empty")
	assert.Equal(t, "", fields["SKU Number"])
	assert.Equal(t, "Servers", fields["Family"])
}

func TestNewReport_HandleFields(t *testing.T) {
	report := NewReport(machineTable())
	cpu := report.Structures[4]
	require.Equal(t, "Processor Information", cpu.Name)

	fields := fieldMap(cpu)
	assert.Equal(t, "0x0700", fields["L1 Cache Handle"])
	assert.Equal(t, "0x0701", fields["L2 Cache Handle"])
	assert.Equal(t, "0xFFFF", fields["L3 Cache Handle"])
	assert.Equal(t, uint16(4000), fields["Max Speed"])
	assert.NotContains(t, fields, "Core Count 2")
}

func TestNewReport_UnknownTypes(t *testing.T) {
	buf := concat(
		record(smbios.TypeOEMStart+2, 0x0042, []byte{0xAA, 0xBB}, "vendor data"),
		record(smbios.TypeEndOfTable, 0x0043, nil),
	)
	report := NewReport(smbios.FromBytes(buf, nil))

	require.Len(t, report.Structures, 2)
	oem := report.Structures[0]
	assert.Equal(t, "OEM-specific Type 130", oem.Name)
	assert.Empty(t, oem.Fields)
	assert.Equal(t, []string{"vendor data"}, oem.Strings)
	assert.Empty(t, report.Version)
}

func TestNewReport_Diagnostic(t *testing.T) {
	buf := concat(
		record(smbios.TypeOEMStrings, 1, []byte{1}, "kept"),
		[]byte{0x02, 0x40, 0x02, 0x00, 0x00, 0x00},
	)
	report := NewReport(smbios.FromBytes(buf, nil))

	assert.Len(t, report.Structures, 1)
	assert.NotEmpty(t, report.Diagnostic)
}

func TestFormatHandle(t *testing.T) {
	assert.Equal(t, "0x0000", FormatHandle(0))
	assert.Equal(t, "0x00AB", FormatHandle(0xAB))
	assert.Equal(t, "0xFEFF", FormatHandle(0xFEFF))
}
