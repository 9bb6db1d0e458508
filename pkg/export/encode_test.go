package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseFormat(t *testing.T) {
	testCases := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatJSON},
		{in: "json", want: FormatJSON},
		{in: " JSON ", want: FormatJSON},
		{in: "yaml", want: FormatYAML},
		{in: "yml", want: FormatYAML},
		{in: "cbor", want: FormatCBOR},
		{in: "xml", wantErr: true},
		{in: "text", wantErr: true},
	}

	for _, tc := range testCases {
		got, err := ParseFormat(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestFormat_ContentType(t *testing.T) {
	assert.Equal(t, "application/json", FormatJSON.ContentType())
	assert.Equal(t, "application/yaml", FormatYAML.ContentType())
	assert.Equal(t, "application/cbor", FormatCBOR.ContentType())
}

func TestEncode_Inventory(t *testing.T) {
	inv := NewInventory(machineTable())

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, FormatJSON, inv))

		var decoded Inventory
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, *inv, decoded)
		assert.Contains(t, buf.String(), `"total_memory_bytes": 30064771072`)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, FormatYAML, inv))

		var decoded Inventory
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, *inv, decoded)
		assert.Contains(t, buf.String(), "uuid: 00112233-4455-6677-8899-aabbccddeeff")
	})

	t.Run("cbor", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, FormatCBOR, inv))

		var decoded Inventory
		require.NoError(t, cbor.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, inv.System, decoded.System)
		assert.Equal(t, inv.MemoryArrays, decoded.MemoryArrays)
		assert.Equal(t, inv.TotalMemoryBytes, decoded.TotalMemoryBytes)
	})
}

func TestEncode_CBORDeterministic(t *testing.T) {
	report := NewReport(machineTable())

	var first, second bytes.Buffer
	require.NoError(t, Encode(&first, FormatCBOR, report))
	require.NoError(t, Encode(&second, FormatCBOR, report))
	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestEncode_Report(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatJSON, NewReport(machineTable())))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	structures, ok := decoded["structures"].([]any)
	require.True(t, ok)
	assert.Len(t, structures, 12)
}

func TestEncode_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Encode(&buf, Format("xml"), struct{}{}))
}
