package smbios

// Table is a decoded structure table. It owns the buffer it was built from;
// every Structure it hands out is a view into that buffer. A Table is never
// modified after construction and is safe for concurrent readers.
type Table struct {
	buf        []byte
	version    *Version
	structures []Structure
	byHandle   map[Handle]int
	err        error
}

// FromBytes decodes buf on a best-effort basis and never fails: malformed
// input yields an empty table and a truncated walk yields the structures
// before the damage. The reason, if any, is reported by Err. The caller must
// not modify buf afterwards.
func FromBytes(buf []byte, version *Version) *Table {
	structures, err := walk(buf, WalkOptions{})
	return newTable(buf, version, structures, err)
}

// Parse decodes buf according to opts and returns the walk error, if any,
// instead of recording it.
func Parse(buf []byte, version *Version, opts WalkOptions) (*Table, error) {
	structures, err := Walk(buf, opts)
	if err != nil {
		return nil, err
	}
	return newTable(buf, version, structures, nil), nil
}

func newTable(buf []byte, version *Version, structures []Structure, err error) *Table {
	t := &Table{
		buf:        buf,
		structures: structures,
		byHandle:   make(map[Handle]int, len(structures)),
		err:        err,
	}
	if version != nil {
		v := *version
		t.version = &v
	}
	for i, s := range structures {
		// First occurrence wins when firmware repeats a handle.
		if _, dup := t.byHandle[s.Header.Handle]; !dup {
			t.byHandle[s.Header.Handle] = i
		}
	}
	return t
}

// Version returns the SMBIOS version the table was announced with, if known.
func (t *Table) Version() (Version, bool) {
	if t.version == nil {
		return Version{}, false
	}
	return *t.version, true
}

// Err returns why the best-effort walk stopped early, or nil.
func (t *Table) Err() error {
	return t.err
}

// Bytes returns the table buffer.
func (t *Table) Bytes() []byte {
	return t.buf
}

// Len returns the number of structures.
func (t *Table) Len() int {
	return len(t.structures)
}

// At returns the i-th structure in table order.
func (t *Table) At(i int) (Structure, bool) {
	if i < 0 || i >= len(t.structures) {
		return Structure{}, false
	}
	return t.structures[i], true
}

// Structures returns the structures in table order. The slice is a copy;
// the structures still alias the table buffer.
func (t *Table) Structures() []Structure {
	out := make([]Structure, len(t.structures))
	copy(out, t.structures)
	return out
}

// Iterator returns a new iterator positioned before the first structure.
func (t *Table) Iterator() *Iterator {
	return &Iterator{table: t, pos: -1}
}

// FindByHandle returns the structure with handle h. When firmware repeats a
// handle the first structure carrying it is returned.
func (t *Table) FindByHandle(h Handle) (Structure, bool) {
	i, ok := t.byHandle[h]
	if !ok {
		return Structure{}, false
	}
	return t.structures[i], true
}

// Duplicates returns handles carried by more than one structure.
func (t *Table) Duplicates() []Handle {
	seen := make(map[Handle]int, len(t.structures))
	var dups []Handle
	for _, s := range t.structures {
		seen[s.Header.Handle]++
		if seen[s.Header.Handle] == 2 {
			dups = append(dups, s.Header.Handle)
		}
	}
	return dups
}

// Dispatch projects s onto its type variant.
func (t *Table) Dispatch(s Structure) Defined {
	return Dispatch(s)
}

// Find returns the first structure matching pred.
func (t *Table) Find(pred func(Structure) bool) (Structure, bool) {
	for _, s := range t.structures {
		if pred(s) {
			return s, true
		}
	}
	return Structure{}, false
}

// Filter returns every structure matching pred, in table order.
func (t *Table) Filter(pred func(Structure) bool) []Structure {
	var out []Structure
	for _, s := range t.structures {
		if pred(s) {
			out = append(out, s)
		}
	}
	return out
}

// OfType returns every structure of type typ.
func (t *Table) OfType(typ Type) []Structure {
	return t.Filter(func(s Structure) bool { return s.Header.Type == typ })
}

// CountByType returns how many structures of each type the table holds.
func (t *Table) CountByType() map[Type]int {
	counts := make(map[Type]int)
	for _, s := range t.structures {
		counts[s.Header.Type]++
	}
	return counts
}

// Iterator walks a table's structures in order. Iterators are cheap; take a
// new one from Table.Iterator or call Reset to start over.
type Iterator struct {
	table *Table
	pos   int
}

// Next advances to the next structure and reports whether there is one.
func (it *Iterator) Next() bool {
	if it.pos+1 >= len(it.table.structures) {
		it.pos = len(it.table.structures)
		return false
	}
	it.pos++
	return true
}

// Structure returns the current structure.
func (it *Iterator) Structure() Structure {
	if it.pos < 0 || it.pos >= len(it.table.structures) {
		return Structure{}
	}
	return it.table.structures[it.pos]
}

// Reset rewinds the iterator to before the first structure.
func (it *Iterator) Reset() {
	it.pos = -1
}

// First returns the first structure that dispatches to T.
func First[T Defined](t *Table) (T, bool) {
	for _, s := range t.structures {
		if v, ok := Dispatch(s).(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Collect returns every structure that dispatches to T, in table order.
func Collect[T Defined](t *Table) []T {
	var out []T
	for _, s := range t.structures {
		if v, ok := Dispatch(s).(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// FindAs returns the first structure that dispatches to T and matches pred.
func FindAs[T Defined](t *Table, pred func(T) bool) (T, bool) {
	for _, s := range t.structures {
		if v, ok := Dispatch(s).(T); ok && pred(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Map applies fn to every dispatched structure in table order.
func Map[R any](t *Table, fn func(Defined) R) []R {
	out := make([]R, 0, len(t.structures))
	for _, s := range t.structures {
		out = append(out, fn(Dispatch(s)))
	}
	return out
}

// Resolve follows a handle reference and returns the target if it
// dispatches to T. Handles 0xFFFE and 0xFFFF mean "not provided" in most
// reference fields and never resolve.
func Resolve[T Defined](t *Table, h Handle) (T, bool) {
	var zero T
	if h >= HandleNotProvided {
		return zero, false
	}
	s, ok := t.FindByHandle(h)
	if !ok {
		return zero, false
	}
	v, ok := Dispatch(s).(T)
	return v, ok
}
