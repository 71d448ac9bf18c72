package trackcodec

import (
	"testing"

	"github.com/ultimate-research/ssbh-go/formats"
)

func TestFloatTrackCompressedRoundTrip(t *testing.T) {
	values := []float32{0, 0.5, 1, 0.25, 0.75}
	data, _, err := EncodeFloatTrack(values)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeFloatTrack(data, formats.CompressionCompressed, uint32(len(values)))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for i, v := range values {
		if diff := abs32(got[i] - v); diff > DefaultErrorBound {
			t.Errorf("index %d: want %v, got %v", i, v, got[i])
		}
	}
}

func TestPatternIndexTrackCompressedRoundTrip(t *testing.T) {
	values := []uint32{2, 0, 1, 2, 3}
	data, err := EncodePatternIndexTrack(values)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodePatternIndexTrack(data, formats.CompressionCompressed, uint32(len(values)))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for i, v := range values {
		if got[i] != v {
			t.Errorf("index %d: want %d, got %d", i, v, got[i])
		}
	}
}

func TestBooleanTrackCompressedRoundTrip(t *testing.T) {
	values := []bool{true, false, false, true, true, true, false}
	data, err := EncodeBooleanTrack(values)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeBooleanTrack(data, formats.CompressionCompressed, uint32(len(values)))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for i, v := range values {
		if got[i] != v {
			t.Errorf("index %d: want %v, got %v", i, v, got[i])
		}
	}
}

func TestVector4TrackCompressedRoundTrip(t *testing.T) {
	values := []formats.Vector4{
		{X: 0, Y: 0, Z: 0, W: 1},
		{X: 0.5, Y: 0.25, Z: -0.5, W: 0.9},
	}
	data, err := EncodeVector4Track(values)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeVector4Track(data, formats.CompressionCompressed, uint32(len(values)))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for i, v := range values {
		if abs32(got[i].X-v.X) > DefaultErrorBound || abs32(got[i].Y-v.Y) > DefaultErrorBound ||
			abs32(got[i].Z-v.Z) > DefaultErrorBound || abs32(got[i].W-v.W) > DefaultErrorBound {
			t.Errorf("index %d: want %+v, got %+v", i, v, got[i])
		}
	}
}

func TestUvTransformTrackCompressedRoundTrip(t *testing.T) {
	values := []UvTransform{
		{ScaleU: 1, ScaleV: 1, Rotation: 0, TranslateU: 0, TranslateV: 0},
		{ScaleU: 0.5, ScaleV: 2, Rotation: 0.1, TranslateU: 0.2, TranslateV: -0.2},
	}
	data, err := EncodeUvTransformTrack(values)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeUvTransformTrack(data, formats.CompressionCompressed, uint32(len(values)))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for i, v := range values {
		if abs32(got[i].ScaleU-v.ScaleU) > DefaultErrorBound || abs32(got[i].TranslateV-v.TranslateV) > DefaultErrorBound {
			t.Errorf("index %d: want %+v, got %+v", i, v, got[i])
		}
	}
}
