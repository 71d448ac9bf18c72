package record

import (
	"github.com/ultimate-research/ssbh-go/internal/binary"
)

// Reader wraps a primitive binary.Reader with the offset-resolution
// vocabulary the data model's four edge kinds need: pointer, array, and
// string fields all read an 8-byte relative offset (§3, invariant 1) and
// temporarily divert the cursor to the resolved absolute position before
// restoring it, exactly as internal/object.Read seeks to a message's
// address and back in the teacher.
type Reader struct {
	*binary.Reader
}

// NewReader creates a Reader over data.
func NewReader(data []byte) *Reader {
	return &Reader{Reader: binary.NewReader(data)}
}

// resolveOffset reads a relative i64 at the current position and returns
// the absolute position it refers to, or ok=false for the null encoding.
func (r *Reader) resolveOffset() (abs int64, ok bool, err error) {
	fieldPos := r.Pos()
	rel, err := r.ReadI64()
	if err != nil {
		return 0, false, err
	}
	if rel == 0 {
		return 0, false, nil
	}
	if rel < 0 {
		return 0, false, ErrNegativeOffset
	}
	abs = fieldPos + rel
	if abs < 0 || abs > r.Len() {
		return 0, false, ErrOffsetOutOfBounds
	}
	return abs, true, nil
}

// ReadPointer resolves a pointer field (§3's "Pointer field" edge kind).
// If the field is null, decode is not called. Otherwise the cursor is
// seeked to the resolved absolute position, decode is invoked, and the
// cursor is restored to just after the offset field.
func (r *Reader) ReadPointer(decode func(r *Reader) error) (present bool, err error) {
	abs, ok, err := r.resolveOffset()
	if err != nil || !ok {
		return false, err
	}
	saved := r.Pos()
	r.Seek(abs)
	if err := decode(r); err != nil {
		return true, err
	}
	r.Seek(saved)
	return true, nil
}

// ReadArray resolves an array field (§3's "Array" edge kind): an 8-byte
// relative offset followed by an 8-byte element count. decodeElem is
// called once per element with the element's index, cursor positioned at
// the start of that element's contiguous storage.
func (r *Reader) ReadArray(decodeElem func(r *Reader, index int) error) (count int, err error) {
	fieldPos := r.Pos()
	rel, err := r.ReadI64()
	if err != nil {
		return 0, err
	}
	n, err := r.ReadU64()
	if err != nil {
		return 0, err
	}

	switch {
	case rel == 0 && n == 0:
		return 0, nil
	case rel == 0 && n != 0:
		return 0, ErrInvalidArray
	case rel != 0 && n == 0:
		return 0, ErrInvalidArray
	case rel < 0:
		return 0, ErrNegativeOffset
	}

	abs := fieldPos + rel
	if abs < 0 || abs > r.Len() {
		return 0, ErrOffsetOutOfBounds
	}

	saved := r.Pos()
	r.Seek(abs)
	for i := 0; i < int(n); i++ {
		if err := decodeElem(r, i); err != nil {
			return int(n), err
		}
	}
	r.Seek(saved)
	return int(n), nil
}

// ReadString resolves a string field (§3's "String" edge kind): an 8-byte
// relative offset to a NUL-terminated byte run. Returns nil for a null
// string (offset 0).
func (r *Reader) ReadString() (*string, error) {
	abs, ok, err := r.resolveOffset()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	saved := r.Pos()
	r.Seek(abs)
	raw, err := r.ReadUntilNUL()
	if err != nil {
		return nil, ErrNulMissing
	}
	r.Seek(saved)
	s := string(raw)
	return &s, nil
}

// ReadEnum64 resolves an SsbhEnum64 field: an 8-byte relative offset
// followed by an 8-byte data-type discriminant, in that order (the
// discriminant trails the offset field rather than preceding it, unlike a
// C-style tagged union). If the offset is null, decode is not called and
// present is false; the discriminant is still returned since some formats
// carry a meaningful data_type alongside a null pointer.
func (r *Reader) ReadEnum64(decode func(r *Reader, dataType uint64) error) (dataType uint64, present bool, err error) {
	fieldPos := r.Pos()
	rel, err := r.ReadI64()
	if err != nil {
		return 0, false, err
	}
	dataType, err = r.ReadU64()
	if err != nil {
		return 0, false, err
	}
	if rel == 0 {
		return dataType, false, nil
	}
	if rel < 0 {
		return dataType, false, ErrNegativeOffset
	}
	abs := fieldPos + rel
	if abs < 0 || abs > r.Len() {
		return dataType, false, ErrOffsetOutOfBounds
	}
	saved := r.Pos()
	r.Seek(abs)
	if err := decode(r, dataType); err != nil {
		return dataType, true, err
	}
	r.Seek(saved)
	return dataType, true, nil
}

// ReadByteArray resolves a raw byte array field: an 8-byte relative offset
// plus an 8-byte count, same as ReadArray, but reads the target region in
// one bulk copy rather than one element at a time. This is the shape
// SsbhByteBuffer uses for opaque vertex/index/shader-binary blobs.
func (r *Reader) ReadByteArray() ([]byte, error) {
	fieldPos := r.Pos()
	rel, err := r.ReadI64()
	if err != nil {
		return nil, err
	}
	n, err := r.ReadU64()
	if err != nil {
		return nil, err
	}

	switch {
	case rel == 0 && n == 0:
		return nil, nil
	case rel == 0 && n != 0:
		return nil, ErrInvalidArray
	case rel != 0 && n == 0:
		return nil, ErrInvalidArray
	case rel < 0:
		return nil, ErrNegativeOffset
	}

	abs := fieldPos + rel
	if abs < 0 || abs > r.Len() {
		return nil, ErrOffsetOutOfBounds
	}

	saved := r.Pos()
	r.Seek(abs)
	data, err := r.ReadBytes(int(n))
	if err != nil {
		return nil, err
	}
	r.Seek(saved)
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}
