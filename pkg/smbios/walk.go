package smbios

// minTableLength is one header plus the double NUL closing its string pool.
const minTableLength = headerLength + 2

// WalkOptions tunes how a table buffer is split into structures.
type WalkOptions struct {
	// Strict surfaces ErrTruncatedRecord when a structure cannot be delimited
	// instead of returning the structures decoded before it.
	Strict bool

	// StopAtEndOfTable ends the walk after the first End-of-Table structure,
	// ignoring whatever padding follows it in the buffer.
	StopAtEndOfTable bool
}

// Walk splits buf into structures in table order.
//
// The first structure's header is checked against the whole buffer: a buffer
// shorter than six bytes, a first length claiming more than len(buf)-2 bytes
// or a buffer not ending in two NUL bytes yields ErrMalformedTable and no
// structures. Each structure's formatted area ends at its declared length;
// its string pool ends at the first double NUL found after that point.
//
// A structure that cannot be delimited stops the walk. By default the
// structures before it are returned with a nil error; with opts.Strict the
// walk returns ErrTruncatedRecord instead.
//
// The returned structures alias buf.
func Walk(buf []byte, opts WalkOptions) ([]Structure, error) {
	structures, err := walk(buf, opts)
	if err == nil {
		return structures, nil
	}
	if isKind(err, KindMalformedTable) || opts.Strict {
		return nil, err
	}
	return structures, nil
}

// walk returns every structure it could delimit together with the reason
// it stopped early, if any.
func walk(buf []byte, opts WalkOptions) ([]Structure, error) {
	if err := validateTable(buf); err != nil {
		return nil, err
	}

	var structures []Structure
	cursor := 0
	for cursor < len(buf) {
		end, err := recordEnd(buf, cursor)
		if err != nil {
			return structures, err
		}

		s := newStructure(cursor, buf[cursor:end:end])
		structures = append(structures, s)
		cursor = end

		if opts.StopAtEndOfTable && s.Header.Type == TypeEndOfTable {
			break
		}
	}
	return structures, nil
}

func validateTable(buf []byte) error {
	if len(buf) < minTableLength {
		return newError(KindMalformedTable, 0, "%d bytes is shorter than the %d byte minimum", len(buf), minTableLength)
	}
	if int(buf[1]) > len(buf)-2 {
		return newError(KindMalformedTable, 1, "first structure claims %d bytes of a %d byte table", buf[1], len(buf))
	}
	if buf[len(buf)-2] != 0x00 || buf[len(buf)-1] != 0x00 {
		return newError(KindMalformedTable, len(buf)-2, "table does not end in a double NUL")
	}
	return nil
}

// recordEnd returns the offset just past the double NUL closing the
// structure that starts at cursor.
func recordEnd(buf []byte, cursor int) (int, error) {
	if len(buf)-cursor < headerLength {
		return 0, newError(KindTruncatedRecord, cursor, "%d trailing bytes cannot hold a header", len(buf)-cursor)
	}
	length := int(buf[cursor+1])
	if length < headerLength {
		return 0, newError(KindTruncatedRecord, cursor, "declared length %d is shorter than the header", length)
	}
	fieldsEnd := cursor + length
	if fieldsEnd > len(buf) {
		return 0, newError(KindTruncatedRecord, cursor, "declared length %d runs past the table end", length)
	}

	for i := fieldsEnd; i+1 < len(buf); i++ {
		if buf[i] == 0x00 && buf[i+1] == 0x00 {
			return i + 2, nil
		}
	}
	return 0, newError(KindTruncatedRecord, cursor, "string pool is not terminated")
}

func isKind(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}

// TrimToEndOfTable returns buf cut just after its first End-of-Table
// structure. SMBIOS 3.0 entry points only give an upper bound for the table
// size, so captures made from them may carry trailing bytes. When no
// End-of-Table structure can be reached buf is returned unchanged.
func TrimToEndOfTable(buf []byte) []byte {
	cursor := 0
	for cursor < len(buf) {
		end, err := recordEnd(buf, cursor)
		if err != nil {
			return buf
		}
		if Type(buf[cursor]) == TypeEndOfTable {
			return buf[:end:end]
		}
		cursor = end
	}
	return buf
}
