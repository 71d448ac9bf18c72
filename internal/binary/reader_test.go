package binary

import "testing"

func TestReaderReadU8(t *testing.T) {
	r := NewReader([]byte{0x42, 0xff, 0x00})

	v, err := r.ReadU8()
	if err != nil {
		t.Fatalf("ReadU8 failed: %v", err)
	}
	if v != 0x42 {
		t.Errorf("expected 0x42, got 0x%02x", v)
	}

	v, err = r.ReadU8()
	if err != nil {
		t.Fatalf("ReadU8 failed: %v", err)
	}
	if v != 0xff {
		t.Errorf("expected 0xff, got 0x%02x", v)
	}
}

func TestReaderReadU16LittleEndian(t *testing.T) {
	// 0x0102 stored little-endian as [0x02, 0x01].
	r := NewReader([]byte{0x02, 0x01, 0xff, 0xff})

	v, err := r.ReadU16()
	if err != nil {
		t.Fatalf("ReadU16 failed: %v", err)
	}
	if v != 0x0102 {
		t.Errorf("expected 0x0102, got 0x%04x", v)
	}

	v, err = r.ReadU16()
	if err != nil {
		t.Fatalf("ReadU16 failed: %v", err)
	}
	if v != 0xffff {
		t.Errorf("expected 0xffff, got 0x%04x", v)
	}
}

func TestReaderReadI64Negative(t *testing.T) {
	r := NewReader([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff})
	v, err := r.ReadI64()
	if err != nil {
		t.Fatalf("ReadI64 failed: %v", err)
	}
	if v != -1 {
		t.Errorf("expected -1, got %d", v)
	}
}

func TestReaderEOF(t *testing.T) {
	r := NewReader([]byte{0x01})
	if _, err := r.ReadU32(); err != ErrEOF {
		t.Fatalf("expected ErrEOF, got %v", err)
	}
}

func TestReaderSeekAndPos(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4, 5})
	r.Skip(2)
	if r.Pos() != 2 {
		t.Fatalf("expected pos 2, got %d", r.Pos())
	}
	v, err := r.ReadU8()
	if err != nil || v != 3 {
		t.Fatalf("expected 3, got %d err %v", v, err)
	}
	r.Seek(0)
	v, err = r.ReadU8()
	if err != nil || v != 1 {
		t.Fatalf("expected 1 after seek, got %d err %v", v, err)
	}
}

func TestReaderAlign(t *testing.T) {
	r := NewReader(make([]byte, 16))
	r.Skip(3)
	r.Align(8)
	if r.Pos() != 8 {
		t.Fatalf("expected pos 8, got %d", r.Pos())
	}
	r.Align(8)
	if r.Pos() != 8 {
		t.Fatalf("align on an already-aligned position should be a no-op, got %d", r.Pos())
	}
}

func TestReaderReadUntilNUL(t *testing.T) {
	r := NewReader([]byte{'h', 'i', 0, 'X'})
	s, err := r.ReadUntilNUL()
	if err != nil {
		t.Fatalf("ReadUntilNUL failed: %v", err)
	}
	if string(s) != "hi" {
		t.Errorf("expected %q, got %q", "hi", s)
	}
	if r.Pos() != 3 {
		t.Errorf("expected cursor past the NUL at 3, got %d", r.Pos())
	}
}

func TestReaderReadUntilNULMissing(t *testing.T) {
	r := NewReader([]byte{'h', 'i'})
	if _, err := r.ReadUntilNUL(); err != ErrNulMissing {
		t.Fatalf("expected ErrNulMissing, got %v", err)
	}
}

func TestReaderF32RoundTrip(t *testing.T) {
	r := NewReader([]byte{0x00, 0x00, 0x80, 0x3f}) // 1.0f
	v, err := r.ReadF32()
	if err != nil {
		t.Fatalf("ReadF32 failed: %v", err)
	}
	if v != 1.0 {
		t.Errorf("expected 1.0, got %v", v)
	}
}

func TestReaderF16Values(t *testing.T) {
	cases := []struct {
		bits uint16
		want float32
	}{
		{0x0000, 0},
		{0x3c00, 1.0},
		{0xc000, -2.0},
	}
	for _, c := range cases {
		r := NewReader([]byte{byte(c.bits), byte(c.bits >> 8)})
		v, err := r.ReadF16()
		if err != nil {
			t.Fatalf("ReadF16 failed: %v", err)
		}
		if v != c.want {
			t.Errorf("bits 0x%04x: expected %v, got %v", c.bits, c.want, v)
		}
	}
}
