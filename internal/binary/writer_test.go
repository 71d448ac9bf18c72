package binary

import (
	"bytes"
	"testing"
)

func TestWriterWriteU8AndU16(t *testing.T) {
	sink := NewSink()
	w := NewWriter(sink)

	if err := w.WriteU8(0x42); err != nil {
		t.Fatalf("WriteU8 failed: %v", err)
	}
	if err := w.WriteU16(0x0102); err != nil {
		t.Fatalf("WriteU16 failed: %v", err)
	}

	want := []byte{0x42, 0x02, 0x01}
	if !bytes.Equal(sink.Bytes(), want) {
		t.Errorf("expected % x, got % x", want, sink.Bytes())
	}
}

func TestWriterSeekWritesAtOffset(t *testing.T) {
	sink := NewSink()
	w := NewWriter(sink)

	w.WriteU32(0) // reserve 4 bytes
	saved := w.Pos()
	w.Seek(0)
	w.WriteU32(0xdeadbeef)
	w.Seek(saved)

	want := []byte{0xef, 0xbe, 0xad, 0xde}
	if !bytes.Equal(sink.Bytes(), want) {
		t.Errorf("expected % x, got % x", want, sink.Bytes())
	}
}

func TestWriterAlignAndPadding(t *testing.T) {
	sink := NewSink()
	w := NewWriter(sink)
	w.WriteU8(1)
	if err := w.WritePadding(8); err != nil {
		t.Fatalf("WritePadding failed: %v", err)
	}
	if w.Pos() != 8 {
		t.Fatalf("expected pos 8, got %d", w.Pos())
	}
	if len(sink.Bytes()) != 8 {
		t.Fatalf("expected 8 bytes written, got %d", len(sink.Bytes()))
	}
	for _, b := range sink.Bytes()[1:] {
		if b != 0 {
			t.Fatalf("padding bytes must be zero, got % x", sink.Bytes())
		}
	}
}

func TestAlignUp(t *testing.T) {
	cases := []struct{ p, a, want int64 }{
		{0, 8, 0},
		{1, 8, 8},
		{8, 8, 8},
		{9, 8, 16},
		{3, 4, 4},
		{5, 1, 5},
	}
	for _, c := range cases {
		if got := AlignUp(c.p, c.a); got != c.want {
			t.Errorf("AlignUp(%d, %d) = %d, want %d", c.p, c.a, got, c.want)
		}
	}
}

func TestF16RoundTripThroughWriterAndReader(t *testing.T) {
	values := []float32{0, 1, -1, 2.5, -2.5, 65504, 0.00006103515625}
	sink := NewSink()
	w := NewWriter(sink)
	for _, v := range values {
		if err := w.WriteF16(v); err != nil {
			t.Fatalf("WriteF16 failed: %v", err)
		}
	}

	r := NewReader(sink.Bytes())
	for _, want := range values {
		got, err := r.ReadF16()
		if err != nil {
			t.Fatalf("ReadF16 failed: %v", err)
		}
		if got != want {
			t.Errorf("expected %v, got %v", want, got)
		}
	}
}
