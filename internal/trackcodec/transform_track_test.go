package trackcodec

import (
	"bytes"
	"testing"

	"github.com/ultimate-research/ssbh-go/formats"
	"github.com/ultimate-research/ssbh-go/internal/binary"
)

func directTransformBytes(t *testing.T, frames []Transform) []byte {
	t.Helper()
	sink := binary.NewSink()
	w := binary.NewWriter(sink)
	for _, f := range frames {
		if err := writeTransform(w, f); err != nil {
			t.Fatalf("write direct transform: %v", err)
		}
	}
	return sink.Bytes()
}

func identityFrames(n int) []Transform {
	out := make([]Transform, n)
	for i := range out {
		out[i] = Transform{
			Scale:       formats.Vector3{X: 1, Y: 1, Z: 1},
			Rotation:    formats.Vector4{X: 0, Y: 0, Z: 0, W: 1},
			Translation: formats.Vector3{X: float32(i), Y: 0, Z: 0},
		}
	}
	return out
}

// A constant rotation track quantizes each rotation channel to bit width 0
// and reconstructs the exact input quaternion on decode; re-encoding the
// decoded result byte for byte matches the first encoding.
func TestConstantRotationRoundTripsExactlyAndReencodesIdentically(t *testing.T) {
	frames := identityFrames(5)
	// Hold translation fixed as well, so no channel is quantized lossily.
	for i := range frames {
		frames[i].Translation = formats.Vector3{X: 1, Y: 2, Z: 3}
	}

	encoded, err := EncodeTransformTrack(frames)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	decoded, err := DecodeTransformTrack(encoded, formats.CompressionCompressed, uint32(len(frames)))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for i, got := range decoded {
		want := frames[i].Rotation
		if got.Rotation != want {
			t.Fatalf("frame %d: rotation want %+v, got %+v", i, want, got.Rotation)
		}
	}

	reencoded, err := EncodeTransformTrack(decoded)
	if err != nil {
		t.Fatalf("reencode: %v", err)
	}
	if !bytes.Equal(encoded, reencoded) {
		t.Fatal("expected re-encoding a decoded constant rotation track to be byte-identical")
	}
}

func TestTransformTrackUniformScaleRoundTrips(t *testing.T) {
	frames := identityFrames(4)
	for i := range frames {
		s := 1 + float32(i)*0.5
		frames[i].Scale = formats.Vector3{X: s, Y: s, Z: s}
	}

	encoded, err := EncodeTransformTrack(frames)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeTransformTrack(encoded, formats.CompressionCompressed, uint32(len(frames)))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for i, got := range decoded {
		want := frames[i].Scale
		const eps = 0.0001
		if abs32(got.Scale.X-want.X) > eps || abs32(got.Scale.Y-want.Y) > eps || abs32(got.Scale.Z-want.Z) > eps {
			t.Errorf("frame %d: scale want %+v, got %+v", i, want, got.Scale)
		}
	}
}

func TestEncodeTransformTrackRejectsNonUnitRotation(t *testing.T) {
	frames := identityFrames(1)
	frames[0].Rotation = formats.Vector4{X: 1, Y: 1, Z: 1, W: 1}
	_, err := EncodeTransformTrack(frames)
	if _, ok := err.(*NonUnitQuaternionError); !ok {
		t.Fatalf("expected *NonUnitQuaternionError, got %v", err)
	}
}

func TestDirectAndConstantTransformTracks(t *testing.T) {
	frames := identityFrames(3)
	sink := directTransformBytes(t, frames)
	decoded, err := DecodeTransformTrack(sink, formats.CompressionDirect, uint32(len(frames)))
	if err != nil {
		t.Fatalf("decode direct: %v", err)
	}
	for i, got := range decoded {
		if got != frames[i] {
			t.Errorf("frame %d: want %+v, got %+v", i, frames[i], got)
		}
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
