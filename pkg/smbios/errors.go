package smbios

import (
	"fmt"
	"strings"
)

// Kind categorizes a decoding error.
type Kind string

const (
	KindEntryPointNotFound         Kind = "entry_point_not_found"
	KindEntryPointLengthTooBig     Kind = "entry_point_length_too_big"
	KindEntryPointMalformed        Kind = "entry_point_malformed"
	KindEntryChecksumFailed        Kind = "entry_checksum_verification_failed"
	KindIntermediateChecksumFailed Kind = "intermediate_checksum_verification_failed"
	KindMalformedTable             Kind = "malformed_table"
	KindTruncatedRecord            Kind = "truncated_record"
)

// Error is the error type returned by every fallible operation in this package.
// Two errors match under errors.Is when their kinds are equal.
type Error struct {
	Kind   Kind
	Offset int // byte offset the problem was detected at, -1 when not applicable
	Detail string
}

// Sentinels for errors.Is.
var (
	ErrEntryPointNotFound                     = &Error{Kind: KindEntryPointNotFound, Offset: -1}
	ErrEntryPointLengthTooBig                 = &Error{Kind: KindEntryPointLengthTooBig, Offset: -1}
	ErrEntryPointMalformed                    = &Error{Kind: KindEntryPointMalformed, Offset: -1}
	ErrEntryChecksumVerificationFailed        = &Error{Kind: KindEntryChecksumFailed, Offset: -1}
	ErrIntermediateChecksumVerificationFailed = &Error{Kind: KindIntermediateChecksumFailed, Offset: -1}
	ErrMalformedTable                         = &Error{Kind: KindMalformedTable, Offset: -1}
	ErrTruncatedRecord                        = &Error{Kind: KindTruncatedRecord, Offset: -1}
)

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("smbios: ")
	b.WriteString(strings.ReplaceAll(string(e.Kind), "_", " "))
	if e.Offset >= 0 {
		fmt.Fprintf(&b, " at offset %#x", e.Offset)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

func newError(kind Kind, offset int, format string, args ...any) *Error {
	return &Error{Kind: kind, Offset: offset, Detail: fmt.Sprintf(format, args...)}
}
