package formats

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/ultimate-research/ssbh-go/internal/binary"
	"github.com/ultimate-research/ssbh-go/internal/record"
)

func writeAnimToBytes(t *testing.T, a *Anim) []byte {
	t.Helper()
	sink := binary.NewSink()
	w := record.NewWriter(sink)
	if err := WriteAnim(w, a); err != nil {
		t.Fatalf("WriteAnim: %v", err)
	}
	return sink.Bytes()
}

func TestAnimV12RoundTrip(t *testing.T) {
	original := &Anim{
		Version:         Version{Major: 1, Minor: 2},
		Name:            "anim",
		Unk1:            1,
		FinalFrameIndex: 59.0,
		Unk2V12:         0,
		Tracks: []TrackV1{
			{
				Name:      "Transform",
				TrackType: TrackTypeV1Transform,
				Properties: []Property{
					{Name: "Value", BufferIndex: 0},
				},
			},
		},
		Buffers: [][]byte{{1, 2, 3, 4}},
	}

	data := writeAnimToBytes(t, original)

	got, err := ReadAnim(record.NewReader(data), original.Version)
	if err != nil {
		t.Fatalf("ReadAnim: %v", err)
	}
	if !reflect.DeepEqual(got, original) {
		t.Fatalf("round trip mismatch:\n got: %+v\nwant: %+v", got, original)
	}
}

func TestAnimV21RoundTripReservesGameGapAndPadsToMultipleOf4(t *testing.T) {
	original := &Anim{
		Version:         Version{Major: 2, Minor: 1},
		Name:            "anim",
		FinalFrameIndex: 10.0,
		Unk1V2:          1,
		Unk2V2:          3,
		Groups: []Group{
			{
				GroupType: GroupTypeTransform,
				Nodes: []Node{
					{
						Name: "Hip",
						Tracks: []TrackV2{
							{
								Name:       "Transform",
								Flags:      TrackFlags{TrackType: TrackTypeV2Transform, CompressionType: CompressionConstant},
								FrameCount: 1,
								DataOffset: 0,
								DataSize:   8,
							},
						},
					},
				},
			},
		},
		Buffer: []byte{1, 2, 3, 4, 5, 6, 7, 8},
		UnkData: UnkData{
			Unk1: []UnkItem1{
				{Unk1: 7, Unk2: []UnkSubItem{{Unk1: 0, Unk2: 59}}},
			},
			Unk2: []UnkItem2{
				{Unk1: "tag", Unk2: []UnkSubItem{{Unk1: 1, Unk2: 2}}},
			},
		},
	}

	data := writeAnimToBytes(t, original)

	sizeInBytes := original.SizeInBytes()
	if sizeInBytes != 80 {
		t.Fatalf("SizeInBytes() = %d, want 80", sizeInBytes)
	}

	gap := data[sizeInBytes : sizeInBytes+anim21GamePadding]
	if !bytes.Equal(gap, make([]byte, anim21GamePadding)) {
		t.Fatalf("expected 32 zero bytes reserved at offset %d, got %v", sizeInBytes, gap)
	}

	if rem := int64(len(data)) % 4; rem != 0 {
		t.Fatalf("expected file length to be a multiple of 4, got %d bytes (remainder %d)", len(data), rem)
	}

	got, err := ReadAnim(record.NewReader(data), original.Version)
	if err != nil {
		t.Fatalf("ReadAnim: %v", err)
	}
	if !reflect.DeepEqual(got, original) {
		t.Fatalf("round trip mismatch:\n got: %+v\nwant: %+v", got, original)
	}

	roundTripped := writeAnimToBytes(t, got)
	if !bytes.Equal(roundTripped, data) {
		t.Fatalf("write(read(data)) != data: got %d bytes, want %d bytes", len(roundTripped), len(data))
	}
}

func TestAnimV20RoundTripHasNoGameGap(t *testing.T) {
	original := &Anim{
		Version:         Version{Major: 2, Minor: 0},
		Name:            "anim",
		FinalFrameIndex: 1.0,
		Buffer:          []byte{9, 9, 9, 9},
	}

	data := writeAnimToBytes(t, original)

	// Unlike 2.1, a 2.0 Anim has no reserved gap: real content starts at
	// most a few alignment-padding bytes after the fixed fields, never a
	// full 32-byte zero run.
	sizeInBytes := original.SizeInBytes()
	if int64(len(data)) >= sizeInBytes+anim21GamePadding {
		gap := data[sizeInBytes : sizeInBytes+anim21GamePadding]
		if bytes.Equal(gap, make([]byte, anim21GamePadding)) {
			t.Fatalf("v2.0 output unexpectedly contains a 32-byte reserved gap at offset %d", sizeInBytes)
		}
	}

	got, err := ReadAnim(record.NewReader(data), original.Version)
	if err != nil {
		t.Fatalf("ReadAnim: %v", err)
	}
	if !reflect.DeepEqual(got, original) {
		t.Fatalf("round trip mismatch:\n got: %+v\nwant: %+v", got, original)
	}
}
