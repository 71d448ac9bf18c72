package schema

import "testing"

func TestBitFieldGetSet(t *testing.T) {
	uniformScale := BitField{Name: "uniform_scale", Offset: 0, Width: 1}
	hasRotation := BitField{Name: "has_rotation", Offset: 1, Width: 1}
	trackType := BitField{Name: "track_type", Offset: 2, Width: 4}

	var word uint32
	word = uniformScale.Set(word, 1)
	word = hasRotation.Set(word, 1)
	word = trackType.Set(word, 9)

	if uniformScale.Get(word) != 1 {
		t.Errorf("uniformScale: expected 1, got %d", uniformScale.Get(word))
	}
	if hasRotation.Get(word) != 1 {
		t.Errorf("hasRotation: expected 1, got %d", hasRotation.Get(word))
	}
	if trackType.Get(word) != 9 {
		t.Errorf("trackType: expected 9, got %d", trackType.Get(word))
	}
}

func TestBitFieldSetTruncatesToWidth(t *testing.T) {
	f := BitField{Offset: 0, Width: 2}
	word := f.Set(0, 0b1111)
	if f.Get(word) != 0b11 {
		t.Errorf("expected value truncated to width, got %b", f.Get(word))
	}
}

func TestBitFieldDoesNotDisturbOtherBits(t *testing.T) {
	low := BitField{Offset: 0, Width: 4}
	high := BitField{Offset: 4, Width: 4}
	word := high.Set(0, 0xf)
	word = low.Set(word, 0x3)
	if high.Get(word) != 0xf {
		t.Errorf("expected high nibble preserved, got %x", high.Get(word))
	}
	if word != 0xf3 {
		t.Errorf("expected 0xf3, got %x", word)
	}
}
