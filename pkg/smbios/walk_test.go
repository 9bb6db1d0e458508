package smbios

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalk_CountsWellFormedRecords(t *testing.T) {
	for _, n := range []int{1, 2, 5, 64} {
		var records [][]byte
		for i := 0; i < n-1; i++ {
			records = append(records, record(TypeOEMStrings, Handle(i), []byte{1}, "entry"))
		}
		records = append(records, endOfTable(Handle(n)))

		structures, err := Walk(concat(records...), WalkOptions{})
		require.NoError(t, err)
		assert.Len(t, structures, n)
	}
}

func TestWalk_Idempotent(t *testing.T) {
	buf := sampleTable()

	first, err := Walk(buf, WalkOptions{})
	require.NoError(t, err)
	second, err := Walk(buf, WalkOptions{})
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Header, second[i].Header)
		assert.Equal(t, first[i].Offset(), second[i].Offset())
		assert.Equal(t, first[i].Bytes(), second[i].Bytes())
		assert.Equal(t, first[i].Strings().Values(), second[i].Strings().Values())
	}
}

func TestWalk_HiScenario(t *testing.T) {
	buf := []byte{0x01, 0x1A, 0x02, 0x00}
	buf = append(buf, make([]byte, 22)...)
	buf = append(buf, 'H', 'i', 0x00, 0x00)
	require.Len(t, buf, 30)

	structures, err := Walk(buf, WalkOptions{})
	require.NoError(t, err)
	require.Len(t, structures, 1)

	s := structures[0]
	assert.Equal(t, TypeSystemInformation, s.Type())
	assert.Equal(t, Handle(2), s.Handle())
	assert.Equal(t, 0x1A, s.Fields().Len())
	assert.Equal(t, []string{"Hi"}, s.Strings().Values())
}

func TestWalk_EmptyStringPool(t *testing.T) {
	structures, err := Walk(record(TypeSystemReset, 7, []byte{0x01}), WalkOptions{})
	require.NoError(t, err)
	require.Len(t, structures, 1)
	assert.Equal(t, 0, structures[0].Strings().Len())
	assert.Empty(t, structures[0].Strings().Values())
}

func TestWalk_MalformedTable(t *testing.T) {
	testCases := []struct {
		name string
		buf  []byte
	}{
		{name: "empty", buf: nil},
		{name: "shorter than minimum", buf: []byte{0x7F, 0x04, 0x00, 0x00, 0x00}},
		{name: "length exceeds buffer", buf: []byte{0x01, 0xFF, 0x00, 0x00, 0x00, 0x00}},
		{name: "length exceeds remaining bytes", buf: []byte{0x01, 0x05, 0x00, 0x00, 0x00, 0x00}},
		{name: "missing trailing double NUL", buf: []byte{0x01, 0x04, 0x00, 0x00, 'A', 0x00, 'B'}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var structures []Structure
			var err error
			require.NotPanics(t, func() {
				structures, err = Walk(tc.buf, WalkOptions{})
			})
			assert.ErrorIs(t, err, ErrMalformedTable)
			assert.Empty(t, structures)

			table := FromBytes(tc.buf, nil)
			assert.Equal(t, 0, table.Len())
			assert.ErrorIs(t, table.Err(), ErrMalformedTable)
		})
	}
}

func TestWalk_TruncatedRecord(t *testing.T) {
	good := record(TypeOEMStrings, 1, []byte{1}, "first")

	testCases := []struct {
		name string
		tail []byte
	}{
		{name: "length below header size", tail: []byte{0x02, 0x03, 0x02, 0x00, 0x00, 0x00}},
		{name: "fields past buffer end", tail: []byte{0x02, 0x40, 0x02, 0x00, 0x00, 0x00}},
		{name: "too few header bytes", tail: []byte{0x02, 0x00, 0x00}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf := concat(good, tc.tail)
			if !bytes.HasSuffix(buf, []byte{0x00, 0x00}) {
				buf = append(buf, 0x00, 0x00)
			}

			structures, err := Walk(buf, WalkOptions{})
			require.NoError(t, err)
			require.Len(t, structures, 1)
			assert.Equal(t, Handle(1), structures[0].Handle())

			structures, err = Walk(buf, WalkOptions{Strict: true})
			assert.ErrorIs(t, err, ErrTruncatedRecord)
			assert.Nil(t, structures)

			var decodeErr *Error
			require.True(t, errors.As(err, &decodeErr))
			assert.Equal(t, len(good), decodeErr.Offset)
		})
	}
}

func TestWalk_ScanFindsTrueTerminator(t *testing.T) {
	// The pool holds three strings; a fixed two-byte tail would cut it short.
	buf := concat(
		record(TypeOEMStrings, 1, []byte{3}, "A", "BB", "CCC"),
		endOfTable(2),
	)

	structures, err := Walk(buf, WalkOptions{})
	require.NoError(t, err)
	require.Len(t, structures, 2)
	assert.Equal(t, []string{"A", "BB", "CCC"}, structures[0].Strings().Values())
	assert.Equal(t, TypeEndOfTable, structures[1].Type())
}

func TestWalk_StopAtEndOfTable(t *testing.T) {
	buf := concat(
		record(TypeOEMStrings, 1, []byte{1}, "x"),
		endOfTable(2),
		record(TypeOEMStrings, 3, []byte{1}, "after"),
	)

	all, err := Walk(buf, WalkOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	stopped, err := Walk(buf, WalkOptions{StopAtEndOfTable: true})
	require.NoError(t, err)
	assert.Len(t, stopped, 2)
}

func TestWalk_StructuresAliasBuffer(t *testing.T) {
	buf := sampleTable()
	structures, err := Walk(buf, WalkOptions{})
	require.NoError(t, err)

	for _, s := range structures {
		span := s.Bytes()
		assert.Same(t, &buf[s.Offset()], &span[0])
	}
}

func TestTrimToEndOfTable(t *testing.T) {
	table := concat(record(TypeOEMStrings, 1, []byte{1}, "x"), endOfTable(2))

	assert.Equal(t, table, TrimToEndOfTable(append(bytes.Clone(table), 0xDE, 0xAD, 0xBE, 0xEF)))
	assert.Equal(t, table, TrimToEndOfTable(table))

	noEnd := record(TypeOEMStrings, 1, []byte{1}, "x")
	assert.Equal(t, noEnd, TrimToEndOfTable(noEnd))
	assert.Empty(t, TrimToEndOfTable(nil))
}
