package ssbh

import (
	"errors"
	"fmt"
)

// ErrUnknownMagic is returned when a file's four format-magic bytes (the
// four bytes following the shared HBSS container header) don't match any
// registered SSBH member.
var ErrUnknownMagic = errors.New("ssbh: unrecognized format magic")

// ErrNotHBSS is returned when a file doesn't even start with the shared
// container magic, before any format-specific dispatch is attempted.
var ErrNotHBSS = errors.New("ssbh: missing HBSS container magic")

// UnsupportedVersionError is returned when a file's format magic is known
// but its (major, minor) pair has no matching schema.
type UnsupportedVersionError struct {
	Magic        string
	Major, Minor uint16
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("ssbh: %s: unsupported version %d.%d", e.Magic, e.Major, e.Minor)
}
