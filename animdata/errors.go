package animdata

import (
	"fmt"

	"github.com/ultimate-research/ssbh-go/formats"
)

// UnsupportedAnimVersionError is returned when the caller asks for encoding
// or decoding semantics of an Anim version this package doesn't implement.
type UnsupportedAnimVersionError struct {
	Version formats.Version
}

func (e *UnsupportedAnimVersionError) Error() string {
	return fmt.Sprintf("animdata: unsupported anim version %d.%d", e.Version.Major, e.Version.Minor)
}

// UnknownTrackTypeError is returned for a track type this package doesn't
// recognize.
type UnknownTrackTypeError struct {
	TrackType uint64
}

func (e *UnknownTrackTypeError) Error() string {
	return fmt.Sprintf("animdata: unknown track type %d", e.TrackType)
}

// TrackDataOutOfBoundsError is returned when a track's declared data range
// falls outside its source buffer.
type TrackDataOutOfBoundsError struct {
	Track string
}

func (e *TrackDataOutOfBoundsError) Error() string {
	return fmt.Sprintf("animdata: track %q data range is out of bounds", e.Track)
}
