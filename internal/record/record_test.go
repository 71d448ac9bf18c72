package record

import (
	"errors"
	"testing"

	"github.com/ultimate-research/ssbh-go/internal/binary"
)

// writeU32Record writes a single {relative_offset i64, count u64} header
// followed by count u32 elements at the writer's data pointer, exercising
// WriteArray the way a real record type's WriteFields would.
func writeU32Record(w *Writer, values []uint32) error {
	start := w.Reserve(16)
	err := w.WriteArray(4, len(values), 4, func(w *Writer, i int) error {
		return w.WriteU32(values[i])
	})
	if err != nil {
		return err
	}
	return w.Finish(start, 16)
}

func TestWriteArraySingleElement(t *testing.T) {
	sink := binary.NewSink()
	w := NewWriter(sink)
	if err := writeU32Record(w, []uint32{0xDEADBEEF}); err != nil {
		t.Fatalf("write: %v", err)
	}

	got := sink.Bytes()
	if len(got) != 20 {
		t.Fatalf("expected 20 bytes, got %d", len(got))
	}

	r := NewReader(got)
	count, err := r.ReadArray(func(r *Reader, i int) error {
		v, err := r.ReadU32()
		if err != nil {
			return err
		}
		if v != 0xDEADBEEF {
			t.Errorf("element %d: expected 0xDEADBEEF, got %#x", i, v)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected count 1, got %d", count)
	}
}

func TestWriteArrayEmptyEncodesAsZeroZero(t *testing.T) {
	sink := binary.NewSink()
	w := NewWriter(sink)
	if err := writeU32Record(w, nil); err != nil {
		t.Fatalf("write: %v", err)
	}

	got := sink.Bytes()
	for i, b := range got {
		if b != 0 {
			t.Errorf("expected all-zero empty-array header, byte %d = %#x", i, b)
		}
	}

	r := NewReader(got)
	count, err := r.ReadArray(func(r *Reader, i int) error {
		t.Fatalf("decodeElem should not be called for an empty array")
		return nil
	})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected count 0, got %d", count)
	}
}

func TestWriteStringNullVsEmpty(t *testing.T) {
	sink := binary.NewSink()
	w := NewWriter(sink)
	start := w.Reserve(16)

	if err := w.WriteString(8, nil); err != nil {
		t.Fatalf("write null string: %v", err)
	}
	empty := ""
	if err := w.WriteString(8, &empty); err != nil {
		t.Fatalf("write empty string: %v", err)
	}
	if err := w.Finish(start, 16); err != nil {
		t.Fatalf("finish: %v", err)
	}

	got := sink.Bytes()
	if len(got) != 24 {
		t.Fatalf("expected 24 bytes (16-byte header + 8 zero bytes), got %d", len(got))
	}
	for i := 0; i < 8; i++ {
		if got[i] != 0 {
			t.Errorf("null string field byte %d: expected 0, got %#x", i, got[i])
		}
	}
	// name_empty's relative offset is at position 8, target at position 16:
	// relative value 8, little-endian.
	want := []byte{8, 0, 0, 0, 0, 0, 0, 0}
	for i, b := range want {
		if got[8+i] != b {
			t.Errorf("empty string offset byte %d: expected %#x, got %#x", i, b, got[8+i])
		}
	}
	for i := 16; i < 24; i++ {
		if got[i] != 0 {
			t.Errorf("empty string target byte %d: expected 0, got %#x", i, got[i])
		}
	}

	r := NewReader(got)
	nullStr, err := r.ReadString()
	if err != nil {
		t.Fatalf("read null string: %v", err)
	}
	if nullStr != nil {
		t.Errorf("expected nil for null string, got %q", *nullStr)
	}
	emptyStr, err := r.ReadString()
	if err != nil {
		t.Fatalf("read empty string: %v", err)
	}
	if emptyStr == nil || *emptyStr != "" {
		t.Errorf("expected empty string, got %v", emptyStr)
	}
}

func TestWriteStringRoundTrip(t *testing.T) {
	for _, s := range []string{"a", "seven!!", "eightbyt", "ninebytes"} {
		s := s
		sink := binary.NewSink()
		w := NewWriter(sink)
		if err := w.WriteString(8, &s); err != nil {
			t.Fatalf("write %q: %v", s, err)
		}
		r := NewReader(sink.Bytes())
		got, err := r.ReadString()
		if err != nil {
			t.Fatalf("read %q: %v", s, err)
		}
		if got == nil || *got != s {
			t.Errorf("expected %q, got %v", s, got)
		}
	}
}

// nestedOffsetElement encodes {string_offset i64} per array element,
// exercising order preservation across elements (§3, invariant 3; §8,
// scenario 4): element 0's string must land before element 1's.
func writeNestedOffsetArray(w *Writer, values []string) error {
	start := w.Reserve(16)
	err := w.WriteArray(8, len(values), 8, func(w *Writer, i int) error {
		return w.WriteString(8, &values[i])
	})
	if err != nil {
		return err
	}
	return w.Finish(start, 16)
}

func TestNestedOffsetsInArrayElementsPreserveOrder(t *testing.T) {
	sink := binary.NewSink()
	w := NewWriter(sink)
	if err := writeNestedOffsetArray(w, []string{"first", "second"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	r := NewReader(sink.Bytes())
	var strPositions []int64
	var strs []string
	_, err := r.ReadArray(func(r *Reader, i int) error {
		fieldPos := r.Pos()
		s, err := r.ReadString()
		if err != nil {
			return err
		}
		if s == nil {
			t.Fatalf("element %d: unexpected null string", i)
		}
		strs = append(strs, *s)
		// Record where this element's offset field sits, purely to assert
		// ordering below.
		strPositions = append(strPositions, fieldPos)
		return nil
	})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(strs) != 2 || strs[0] != "first" || strs[1] != "second" {
		t.Fatalf("expected [first second], got %v", strs)
	}
	if !(strPositions[0] < strPositions[1]) {
		t.Fatalf("expected element 0's offset field before element 1's")
	}
}

func TestReadArrayRejectsMismatchedOffsetCountPair(t *testing.T) {
	sink := binary.NewSink()
	w := NewWriter(sink)
	// offset nonzero, count zero: invalid per §3.
	if err := w.WriteI64(8); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteU64(0); err != nil {
		t.Fatal(err)
	}

	r := NewReader(sink.Bytes())
	_, err := r.ReadArray(func(r *Reader, i int) error { return nil })
	if !errors.Is(err, ErrInvalidArray) {
		t.Fatalf("expected ErrInvalidArray, got %v", err)
	}
}

func TestReadPointerRejectsNegativeOffset(t *testing.T) {
	sink := binary.NewSink()
	w := NewWriter(sink)
	if err := w.WriteI64(-8); err != nil {
		t.Fatal(err)
	}

	r := NewReader(sink.Bytes())
	_, err := r.ReadPointer(func(r *Reader) error { return nil })
	if !errors.Is(err, ErrNegativeOffset) {
		t.Fatalf("expected ErrNegativeOffset, got %v", err)
	}
}

func TestReadPointerRejectsOutOfBoundsOffset(t *testing.T) {
	sink := binary.NewSink()
	w := NewWriter(sink)
	if err := w.WriteI64(1000); err != nil {
		t.Fatal(err)
	}

	r := NewReader(sink.Bytes())
	_, err := r.ReadPointer(func(r *Reader) error { return nil })
	if !errors.Is(err, ErrOffsetOutOfBounds) {
		t.Fatalf("expected ErrOffsetOutOfBounds, got %v", err)
	}
}

func TestReaderWriterAlignmentEightByDefault(t *testing.T) {
	sink := binary.NewSink()
	w := NewWriter(sink)
	start := w.Reserve(9)
	if err := w.WriteBytes(make([]byte, 9)); err != nil {
		t.Fatal(err)
	}
	if err := w.Finish(start, 9); err != nil {
		t.Fatal(err)
	}
	one := "x"
	if err := w.WriteString(8, &one); err != nil {
		t.Fatal(err)
	}

	got := sink.Bytes()
	// The string's offset field sits at bytes 9-16; its target must be
	// 8-byte aligned and past the field, so it lands at byte 24, giving a
	// relative value of 15.
	r := NewReader(got)
	r.Seek(9)
	rel, err := r.ReadI64()
	if err != nil {
		t.Fatal(err)
	}
	if target := 9 + rel; target%8 != 0 {
		t.Errorf("expected 8-byte aligned target, got position %d", target)
	}
}

func TestPointerFieldRoundTrip(t *testing.T) {
	sink := binary.NewSink()
	w := NewWriter(sink)
	start := w.Reserve(8)
	if err := w.WritePointer(8, true, func(w *Writer) error {
		return w.WriteU32(42)
	}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Finish(start, 8); err != nil {
		t.Fatal(err)
	}

	r := NewReader(sink.Bytes())
	var got uint32
	present2, err := r.ReadPointer(func(r *Reader) error {
		v, err := r.ReadU32()
		got = v
		return err
	})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !present2 {
		t.Fatalf("expected pointer present")
	}
	if got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestNullPointerNotDecoded(t *testing.T) {
	sink := binary.NewSink()
	w := NewWriter(sink)
	if err := w.WritePointer(8, false, func(w *Writer) error {
		t.Fatalf("encode should not be called for a null pointer")
		return nil
	}); err != nil {
		t.Fatalf("write: %v", err)
	}

	r := NewReader(sink.Bytes())
	present, err := r.ReadPointer(func(r *Reader) error {
		t.Fatalf("decode should not be called for a null pointer")
		return nil
	})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if present {
		t.Fatalf("expected pointer absent")
	}
}
