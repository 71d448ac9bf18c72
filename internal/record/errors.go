// Package record implements the two-pass reader and writer that walk a
// record tree following relative-pointer chains, honoring per-type
// alignment, and laying data out in strict field-declaration order (§4.3,
// §4.4). It is the generic binary layout engine's hardest component.
package record

import (
	"errors"
	"fmt"
)

// Structural errors, per §7's taxonomy. These wrap the same offset/bounds
// conditions the teacher's internal/object.Read and internal/alloc surface
// as plain fmt.Errorf-wrapped errors; this package gives each condition its
// own sentinel so callers can errors.Is/errors.As against them.
var (
	// ErrNegativeOffset is returned when a relative offset field's value is
	// negative (other than the null encoding of exactly zero).
	ErrNegativeOffset = errors.New("ssbh: negative relative offset")
	// ErrOffsetOutOfBounds is returned when a resolved absolute offset
	// falls outside the buffer.
	ErrOffsetOutOfBounds = errors.New("ssbh: offset out of bounds")
	// ErrInvalidArray is returned when an array's (offset, count) pair is
	// not one of the two canonical forms: {0,0} or {nonzero, >0}.
	ErrInvalidArray = errors.New("ssbh: invalid array offset/count pair")
	// ErrNulMissing is returned when a string's NUL terminator is not
	// found before the end of the buffer.
	ErrNulMissing = errors.New("ssbh: string missing NUL terminator")
)

// InvalidDiscriminantError is returned when a tagged union's discriminant
// field does not map to any known variant (§4.3, §4.5). It carries the
// enum name and offending value so callers can report a precise diagnostic,
// per SPEC_FULL.md's "typed error carrying the offending value" supplement.
type InvalidDiscriminantError struct {
	Enum  string
	Value uint64
}

func (e *InvalidDiscriminantError) Error() string {
	return fmt.Sprintf("ssbh: invalid discriminant %d for %s", e.Value, e.Enum)
}

// TrailingGarbage is the sole warning-class condition (§7): the reader
// completed successfully but the cursor did not reach the end of the
// buffer. It is never returned as the fatal error from a Read call; it is
// surfaced alongside a successfully decoded value.
type TrailingGarbage struct {
	// Bytes is the number of unconsumed bytes remaining after the read.
	Bytes int64
}

func (w TrailingGarbage) Error() string {
	return fmt.Sprintf("ssbh: %d trailing byte(s) after a complete read", w.Bytes)
}
