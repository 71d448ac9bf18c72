package record

import (
	"github.com/ultimate-research/ssbh-go/internal/binary"
	"github.com/ultimate-research/ssbh-go/internal/schema"
)

// Writer implements §4.4's algorithm: a strictly-monotonic-within-a-record
// cursor plus a monotonically non-decreasing dataPtr marking where the next
// pointer target will land. Every WritePointer/WriteArray/WriteString call
// aligns dataPtr, writes the offset (and count) inline at the cursor, then
// diverts to dataPtr to write the target before restoring the cursor.
//
// dataPtr lives on the Writer itself rather than being threaded explicitly
// through every call (as the original's &mut u64 parameter does) because Go
// methods on a shared receiver give the same "one mutable frontier, visible
// to every recursive call" effect without the extra parameter.
type Writer struct {
	*binary.Writer
	dataPtr int64
}

// NewWriter creates a Writer over sink with its data pointer at zero.
func NewWriter(sink *binary.Sink) *Writer {
	return &Writer{Writer: binary.NewWriter(sink)}
}

// Reserve implements the per-record top-of-algorithm check: "ensure
// data_ptr >= start + size_in_bytes(r)". Every record type's write function
// (WriteX or its write method) calls this once, before writing any of its own fields, so that no
// pointer target computed while writing this record (or anything nested
// inside it) can land inside the record's own footprint — the argument
// that makes invariant 2 (non-aliasing) hold recursively.
func (w *Writer) Reserve(sizeInBytes int64) (start int64) {
	start = w.Pos()
	if end := start + sizeInBytes; w.dataPtr < end {
		w.dataPtr = end
	}
	return start
}

// Finish pads the cursor out to start+sizeInBytes with zero bytes (used by
// discriminated unions whose selected variant is smaller than another
// variant's shape might suggest) and reports ErrOverrun if the fields
// written so far already exceeded that bound.
func (w *Writer) Finish(start, sizeInBytes int64) error {
	end := start + sizeInBytes
	if w.Pos() > end {
		return binary.ErrOverrun
	}
	if w.Pos() < end {
		return w.WriteZeros(end - w.Pos())
	}
	return nil
}

// bump advances dataPtr to at least the current cursor position. Called
// after every write that lands at dataPtr, so dataPtr always reflects the
// high-water mark of bytes claimed so far.
func (w *Writer) bump() {
	if w.Pos() > w.dataPtr {
		w.dataPtr = w.Pos()
	}
}

// WritePointer writes a pointer field (§3's "Pointer field" edge kind).
// If present is false, it writes the null encoding (an 8-byte zero) and
// does not call encode. Otherwise it aligns dataPtr to alignment, writes
// the relative offset, diverts to dataPtr, calls encode, and restores the
// cursor.
func (w *Writer) WritePointer(alignment int64, present bool, encode func(w *Writer) error) error {
	if !present {
		return w.WriteI64(0)
	}
	w.dataPtr = binary.AlignUp(w.dataPtr, alignment)
	fieldPos := w.Pos()
	rel := w.dataPtr - fieldPos
	if err := w.WriteI64(rel); err != nil {
		return err
	}
	saved := w.Pos()
	w.Seek(w.dataPtr)
	if err := encode(w); err != nil {
		return err
	}
	w.bump()
	w.Seek(saved)
	return nil
}

// WriteArray writes an array field (§3's "Array" edge kind): a relative
// offset plus a count. An empty array is encoded as {0,0} without invoking
// encodeElem or reserving any space (§3, invariant 5). elementSize is used
// for the ≥-check that keeps a pointer target inside one of the array's
// elements from landing before the array itself ends.
func (w *Writer) WriteArray(alignment int64, count int, elementSize int64, encodeElem func(w *Writer, index int) error) error {
	if count == 0 {
		if err := w.WriteI64(0); err != nil {
			return err
		}
		return w.WriteU64(0)
	}

	w.dataPtr = binary.AlignUp(w.dataPtr, alignment)
	fieldPos := w.Pos()
	rel := w.dataPtr - fieldPos
	if err := w.WriteI64(rel); err != nil {
		return err
	}
	if err := w.WriteU64(uint64(count)); err != nil {
		return err
	}

	saved := w.Pos()
	w.Seek(w.dataPtr)
	arrayStart := w.Reserve(int64(count) * elementSize)
	for i := 0; i < count; i++ {
		if err := encodeElem(w, i); err != nil {
			return err
		}
	}
	if err := w.Finish(arrayStart, int64(count)*elementSize); err != nil {
		return err
	}
	w.bump()
	w.Seek(saved)
	return nil
}

// WriteByteArray writes a raw byte array field: an 8-byte relative offset
// plus an 8-byte count, with the bytes copied in bulk. The counterpart to
// Reader.ReadByteArray.
func (w *Writer) WriteByteArray(alignment int64, data []byte) error {
	if len(data) == 0 {
		if err := w.WriteI64(0); err != nil {
			return err
		}
		return w.WriteU64(0)
	}

	w.dataPtr = binary.AlignUp(w.dataPtr, alignment)
	fieldPos := w.Pos()
	rel := w.dataPtr - fieldPos
	if err := w.WriteI64(rel); err != nil {
		return err
	}
	if err := w.WriteU64(uint64(len(data))); err != nil {
		return err
	}

	saved := w.Pos()
	w.Seek(w.dataPtr)
	if err := w.WriteBytes(data); err != nil {
		return err
	}
	w.bump()
	w.Seek(saved)
	return nil
}

// WriteEnum64 writes an SsbhEnum64 field: a pointer field followed by an
// 8-byte data-type discriminant naming which variant the pointer target
// holds. The discriminant is written even when present is false, since
// some formats carry a meaningful data_type alongside a null pointer.
func (w *Writer) WriteEnum64(alignment int64, dataType uint64, present bool, encode func(w *Writer) error) error {
	if !present {
		if err := w.WriteI64(0); err != nil {
			return err
		}
		return w.WriteU64(dataType)
	}
	w.dataPtr = binary.AlignUp(w.dataPtr, alignment)
	fieldPos := w.Pos()
	rel := w.dataPtr - fieldPos
	if err := w.WriteI64(rel); err != nil {
		return err
	}
	if err := w.WriteU64(dataType); err != nil {
		return err
	}
	saved := w.Pos()
	w.Seek(w.dataPtr)
	if err := encode(w); err != nil {
		return err
	}
	w.bump()
	w.Seek(saved)
	return nil
}

// WriteString writes a string field (§3's "String" edge kind). A nil s
// writes the null encoding. A non-nil empty string writes alignment-many
// zero bytes at its target (§3, invariant 5). A non-empty string writes its
// bytes followed by a single NUL terminator.
func (w *Writer) WriteString(alignment int64, s *string) error {
	if s == nil {
		return w.WriteI64(0)
	}

	// The target never overlaps the 8-byte offset field itself, even when
	// the caller reserved nothing.
	if end := w.Pos() + 8; w.dataPtr < end {
		w.dataPtr = end
	}
	w.dataPtr = binary.AlignUp(w.dataPtr, alignment)
	fieldPos := w.Pos()
	rel := w.dataPtr - fieldPos
	if err := w.WriteI64(rel); err != nil {
		return err
	}

	saved := w.Pos()
	w.Seek(w.dataPtr)
	if *s == "" {
		if err := w.WriteZeros(alignment); err != nil {
			return err
		}
	} else {
		if err := w.WriteBytes([]byte(*s)); err != nil {
			return err
		}
		if err := w.WriteU8(0); err != nil {
			return err
		}
	}
	w.bump()
	w.Seek(saved)
	return nil
}

// DefaultAlignment re-exports schema.DefaultAlignment for callers that only
// import package record.
const DefaultAlignment = schema.DefaultAlignment
