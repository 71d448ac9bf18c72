// Package binary provides little-endian primitive read/write operations for
// SSBH binary data: fixed-width integers, IEEE-754 floats (including
// half-precision f16), and fixed-length byte runs.
package binary

import (
	"encoding/binary"
	"errors"
	"math"
)

// ErrEOF is returned when a read would consume bytes past the end of the buffer.
var ErrEOF = errors.New("ssbh: unexpected end of buffer")

// ErrNulMissing is returned when a NUL-terminated string runs off the end of
// the buffer before a terminator is found.
var ErrNulMissing = errors.New("ssbh: string is missing its NUL terminator")

// Reader reads little-endian primitives from an in-memory buffer.
//
// Unlike a plain io.Reader, Reader exposes its cursor position (Pos) and
// supports seeking, which the record engine needs to follow relative
// offsets and return to the point a pointer field was read from.
type Reader struct {
	data []byte
	pos  int64
	// touched is the furthest position any read has advanced the cursor to,
	// regardless of where the cursor currently sits. A pointer/array/string
	// field's target is read with the cursor temporarily diverted away from
	// the field's own position and then restored (see package record), so
	// Pos alone can't tell how much of the buffer has genuinely been
	// consumed; Remaining is computed from touched instead.
	touched int64
}

// NewReader creates a Reader over data. The cursor starts at position 0.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Len returns the total number of bytes in the underlying buffer.
func (r *Reader) Len() int64 {
	return int64(len(r.data))
}

// Pos returns the current read position.
func (r *Reader) Pos() int64 {
	return r.pos
}

// Seek moves the cursor to an absolute position. It does not validate that
// pos is within bounds; a subsequent read will fail with ErrEOF if it is not.
func (r *Reader) Seek(pos int64) {
	r.pos = pos
}

// Skip advances the cursor by n bytes without reading them.
func (r *Reader) Skip(n int64) {
	r.pos += n
	r.markTouched()
}

// Align advances the cursor to the next multiple of alignment.
func (r *Reader) Align(alignment int64) {
	if alignment <= 1 {
		return
	}
	if rem := r.pos % alignment; rem != 0 {
		r.pos += alignment - rem
		r.markTouched()
	}
}

func (r *Reader) markTouched() {
	if r.pos > r.touched {
		r.touched = r.pos
	}
}

// ReadBytes reads exactly n bytes at the cursor and advances it.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	if r.pos < 0 || r.pos+int64(n) > int64(len(r.data)) {
		return nil, ErrEOF
	}
	buf := r.data[r.pos : r.pos+int64(n)]
	r.pos += int64(n)
	r.markTouched()
	return buf, nil
}

// Peek reads n bytes without advancing the cursor.
func (r *Reader) Peek(n int) ([]byte, error) {
	if r.pos < 0 || r.pos+int64(n) > int64(len(r.data)) {
		return nil, ErrEOF
	}
	return r.data[r.pos : r.pos+int64(n)], nil
}

// ReadU8 reads an unsigned 8-bit integer.
func (r *Reader) ReadU8() (uint8, error) {
	b, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadI8 reads a signed 8-bit integer.
func (r *Reader) ReadI8() (int8, error) {
	v, err := r.ReadU8()
	return int8(v), err
}

// ReadU16 reads an unsigned 16-bit little-endian integer.
func (r *Reader) ReadU16() (uint16, error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadI16 reads a signed 16-bit little-endian integer.
func (r *Reader) ReadI16() (int16, error) {
	v, err := r.ReadU16()
	return int16(v), err
}

// ReadU32 reads an unsigned 32-bit little-endian integer.
func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadI32 reads a signed 32-bit little-endian integer.
func (r *Reader) ReadI32() (int32, error) {
	v, err := r.ReadU32()
	return int32(v), err
}

// ReadU64 reads an unsigned 64-bit little-endian integer.
func (r *Reader) ReadU64() (uint64, error) {
	b, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadI64 reads a signed 64-bit little-endian integer.
func (r *Reader) ReadI64() (int64, error) {
	v, err := r.ReadU64()
	return int64(v), err
}

// ReadF32 reads an IEEE-754 binary32 float.
func (r *Reader) ReadF32() (float32, error) {
	v, err := r.ReadU32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadF64 reads an IEEE-754 binary64 float.
func (r *Reader) ReadF64() (float64, error) {
	v, err := r.ReadU64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ReadF16 reads an IEEE-754 binary16 float and widens it to float32.
// Every bit pattern (including subnormals, infinities and NaN) is preserved
// exactly by the widening conversion.
func (r *Reader) ReadF16() (float32, error) {
	bits, err := r.ReadU16()
	if err != nil {
		return 0, err
	}
	return F16ToF32(bits), nil
}

// ReadUntilNUL scans forward from the cursor for a NUL byte and returns the
// bytes preceding it, advancing the cursor past the terminator. Returns
// ErrNulMissing if the buffer is exhausted before a NUL is found.
func (r *Reader) ReadUntilNUL() ([]byte, error) {
	start := r.pos
	for r.pos < int64(len(r.data)) {
		if r.data[r.pos] == 0 {
			out := r.data[start:r.pos]
			r.pos++
			r.markTouched()
			return out, nil
		}
		r.pos++
	}
	return nil, ErrNulMissing
}

// Remaining reports how many bytes lie beyond the furthest position any read
// has touched so far. Used to surface TrailingGarbage warnings after a
// top-level read: since pointer/array/string targets are read with the
// cursor diverted away and back (package record), this is Len() minus the
// high-water mark, not Len() minus the current cursor position.
func (r *Reader) Remaining() int64 {
	return int64(len(r.data)) - r.touched
}
