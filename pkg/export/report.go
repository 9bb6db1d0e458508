package export

import (
	"fmt"

	"github.com/ssargent/dmidb/pkg/smbios"
)

// Report is a per-structure rendering of a whole table.
type Report struct {
	Version    string            `json:"version,omitempty" yaml:"version,omitempty"`
	Structures []StructureReport `json:"structures" yaml:"structures"`
	Diagnostic string            `json:"diagnostic,omitempty" yaml:"diagnostic,omitempty"`
}

// StructureReport describes one structure: its header, the named fields of
// its type and its raw string pool.
type StructureReport struct {
	Type    uint8    `json:"type" yaml:"type"`
	Name    string   `json:"name" yaml:"name"`
	Handle  string   `json:"handle" yaml:"handle"`
	Length  uint8    `json:"length" yaml:"length"`
	Offset  int      `json:"offset" yaml:"offset"`
	Fields  []Field  `json:"fields,omitempty" yaml:"fields,omitempty"`
	Strings []string `json:"strings,omitempty" yaml:"strings,omitempty"`
}

// Field is one decoded formatted field. Value holds an unsigned integer, a
// resolved string, a handle such as "0x0100" or a UUID.
type Field struct {
	Name   string `json:"name" yaml:"name"`
	Offset int    `json:"offset" yaml:"offset"`
	Value  any    `json:"value" yaml:"value"`
}

// NewReport renders every structure of t. A walk diagnostic, if any, is
// carried along.
func NewReport(t *smbios.Table) *Report {
	r := &Report{Structures: make([]StructureReport, 0, t.Len())}
	if v, ok := t.Version(); ok {
		r.Version = v.String()
	}
	if err := t.Err(); err != nil {
		r.Diagnostic = err.Error()
	}
	for it := t.Iterator(); it.Next(); {
		r.Structures = append(r.Structures, NewStructureReport(it.Structure()))
	}
	return r
}

// NewStructureReport renders a single structure.
func NewStructureReport(s smbios.Structure) StructureReport {
	return StructureReport{
		Type:    uint8(s.Type()),
		Name:    s.Type().String(),
		Handle:  FormatHandle(s.Handle()),
		Length:  s.Header.Length,
		Offset:  s.Offset(),
		Fields:  decodeFields(s),
		Strings: s.Strings().Values(),
	}
}

// FormatHandle renders h the way dmidecode does.
func FormatHandle(h smbios.Handle) string {
	return fmt.Sprintf("0x%04X", uint16(h))
}

func decodeFields(s smbios.Structure) []Field {
	var out []Field
	for _, spec := range layouts[s.Type()] {
		value, ok := decodeField(s, spec)
		if !ok {
			continue
		}
		out = append(out, Field{Name: spec.name, Offset: spec.offset, Value: value})
	}
	return out
}

func decodeField(s smbios.Structure, spec fieldSpec) (any, bool) {
	switch spec.kind {
	case kindByte:
		return s.Byte(spec.offset)
	case kindWord:
		return s.Word(spec.offset)
	case kindDWord:
		return s.DWord(spec.offset)
	case kindQWord:
		return s.QWord(spec.offset)
	case kindHandle:
		h, ok := s.HandleField(spec.offset)
		return FormatHandle(h), ok
	case kindString:
		// An unset index still occupies the field; report it as empty.
		if _, ok := s.Byte(spec.offset); !ok {
			return nil, false
		}
		str, _ := s.StringAt(spec.offset)
		return str, true
	case kindUUID:
		if _, ok := s.Raw(spec.offset, spec.offset+16); !ok {
			return nil, false
		}
		if u, ok := smbios.Dispatch(s).(smbios.SystemInformation); ok {
			if id, ok := u.UUID(); ok {
				return id.String(), true
			}
		}
		return "", true
	}
	return nil, false
}
