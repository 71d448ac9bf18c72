package trackcodec

import (
	"github.com/ultimate-research/ssbh-go/formats"
	"github.com/ultimate-research/ssbh-go/internal/binary"
)

// UvTransform is one frame of an UvTransform track: a 2D scale, rotation
// and translation applied to texture coordinates.
type UvTransform struct {
	ScaleU, ScaleV                 float32
	Rotation                       float32
	TranslateU, TranslateV         float32
}

// Transform is one frame of a Transform track: scale, rotation (as a
// quaternion) and translation, plus the compensate-scale value used to
// cancel a parent bone's scale from propagating to children.
type Transform struct {
	Scale           formats.Vector3
	Rotation        formats.Vector4
	Translation     formats.Vector3
	CompensateScale float32
}

// compressedHeader is the 16-byte header that precedes every compressed
// track's channel-compression struct, default frame and bit-packed data.
// The three offsets are absolute, counted from the start of this header,
// and are always laid out back to back with no gaps: compression struct,
// then default value, then bit-packed frames.
type compressedHeader struct {
	unk4            uint16
	flags           uint16
	defaultOffset   uint16
	bitsPerEntry    uint16
	compressedOffset uint32
	frameCount      uint32
}

const compressedHeaderSize = 16

func readCompressedHeader(r *binary.Reader) (compressedHeader, error) {
	var h compressedHeader
	var err error
	if h.unk4, err = r.ReadU16(); err != nil {
		return h, err
	}
	if h.flags, err = r.ReadU16(); err != nil {
		return h, err
	}
	if h.defaultOffset, err = r.ReadU16(); err != nil {
		return h, err
	}
	if h.bitsPerEntry, err = r.ReadU16(); err != nil {
		return h, err
	}
	if h.compressedOffset, err = r.ReadU32(); err != nil {
		return h, err
	}
	h.frameCount, err = r.ReadU32()
	return h, err
}

func writeCompressedHeader(w *binary.Writer, h compressedHeader) error {
	if err := w.WriteU16(h.unk4); err != nil {
		return err
	}
	if err := w.WriteU16(h.flags); err != nil {
		return err
	}
	if err := w.WriteU16(h.defaultOffset); err != nil {
		return err
	}
	if err := w.WriteU16(h.bitsPerEntry); err != nil {
		return err
	}
	if err := w.WriteU32(h.compressedOffset); err != nil {
		return err
	}
	return w.WriteU32(h.frameCount)
}

// --- Float tracks ---

// DecodeFloatTrack decodes a track whose data buffer holds frameCount
// float32 values under the given compression scheme.
func DecodeFloatTrack(data []byte, compression formats.CompressionType, frameCount uint32) ([]float32, error) {
	r := binary.NewReader(data)
	switch compression {
	case formats.CompressionDirect:
		out := make([]float32, frameCount)
		for i := range out {
			v, err := r.ReadF32()
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case formats.CompressionConstant, formats.CompressionConstTransform:
		v, err := r.ReadF32()
		if err != nil {
			return nil, err
		}
		return repeatF32(v, frameCount), nil
	case formats.CompressionCompressed:
		h, err := readCompressedHeader(r)
		if err != nil {
			return nil, err
		}
		var min, max float32
		var bitWidth uint64
		if min, err = r.ReadF32(); err != nil {
			return nil, err
		}
		if max, err = r.ReadF32(); err != nil {
			return nil, err
		}
		if bitWidth, err = r.ReadU64(); err != nil {
			return nil, err
		}
		comp := F32Compression{Min: min, Max: max, BitWidth: bitWidth}
		def, err := r.ReadF32()
		if err != nil {
			return nil, err
		}
		bits := NewBitReader(data[h.compressedOffset:])
		out := make([]float32, h.frameCount)
		for i := range out {
			if comp.BitWidth == 0 {
				out[i] = def
				continue
			}
			out[i] = comp.Dequantize(bits.ReadU64(comp.BitWidth))
		}
		return out, nil
	default:
		return nil, &UnknownCompressionTypeError{CompressionType: uint8(compression)}
	}
}

// EncodeFloatTrack encodes values as a Compressed track buffer, choosing the
// smallest bit width that keeps every value within DefaultErrorBound.
func EncodeFloatTrack(values []float32) ([]byte, uint16, error) {
	comp, err := ChooseF32Compression(values, DefaultErrorBound)
	if err != nil {
		return nil, 0, err
	}
	var def float32
	if len(values) > 0 {
		def = values[0]
	}
	bits := NewBitWriter()
	for _, v := range values {
		if comp.BitWidth > 0 {
			bits.WriteU64(comp.Quantize(v), comp.BitWidth)
		}
	}
	sink := binary.NewSink()
	w := binary.NewWriter(sink)
	const compSize = 4 + 4 + 8
	h := compressedHeader{
		unk4:             4,
		bitsPerEntry:     uint16(comp.BitWidth),
		defaultOffset:    compressedHeaderSize + compSize,
		compressedOffset: compressedHeaderSize + compSize + 4,
		frameCount:       uint32(len(values)),
	}
	if err := writeCompressedHeader(w, h); err != nil {
		return nil, 0, err
	}
	if err := w.WriteF32(comp.Min); err != nil {
		return nil, 0, err
	}
	if err := w.WriteF32(comp.Max); err != nil {
		return nil, 0, err
	}
	if err := w.WriteU64(comp.BitWidth); err != nil {
		return nil, 0, err
	}
	if err := w.WriteF32(def); err != nil {
		return nil, 0, err
	}
	if err := w.WriteBytes(bits.Bytes()); err != nil {
		return nil, 0, err
	}
	return sink.Bytes(), uint16(comp.BitWidth), nil
}

func repeatF32(v float32, n uint32) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// --- PatternIndex (u32) tracks ---

// DecodePatternIndexTrack decodes a track of frameCount uint32 values.
func DecodePatternIndexTrack(data []byte, compression formats.CompressionType, frameCount uint32) ([]uint32, error) {
	r := binary.NewReader(data)
	switch compression {
	case formats.CompressionDirect:
		out := make([]uint32, frameCount)
		for i := range out {
			v, err := r.ReadU32()
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case formats.CompressionConstant, formats.CompressionConstTransform:
		v, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		out := make([]uint32, frameCount)
		for i := range out {
			out[i] = v
		}
		return out, nil
	case formats.CompressionCompressed:
		h, err := readCompressedHeader(r)
		if err != nil {
			return nil, err
		}
		var min, max uint32
		var bitWidth uint64
		if min, err = r.ReadU32(); err != nil {
			return nil, err
		}
		if max, err = r.ReadU32(); err != nil {
			return nil, err
		}
		if bitWidth, err = r.ReadU64(); err != nil {
			return nil, err
		}
		comp := U32Compression{Min: min, Max: max, BitWidth: bitWidth}
		def, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		bits := NewBitReader(data[h.compressedOffset:])
		out := make([]uint32, h.frameCount)
		for i := range out {
			if comp.BitWidth == 0 {
				out[i] = def
				continue
			}
			out[i] = comp.Dequantize(bits.ReadU64(comp.BitWidth))
		}
		return out, nil
	default:
		return nil, &UnknownCompressionTypeError{CompressionType: uint8(compression)}
	}
}

// EncodePatternIndexTrack encodes values as a Compressed track buffer using
// the exact bit width their range requires.
func EncodePatternIndexTrack(values []uint32) ([]byte, error) {
	comp := ChooseU32Compression(values)
	var def uint32
	if len(values) > 0 {
		def = values[0]
	}
	bits := NewBitWriter()
	for _, v := range values {
		if comp.BitWidth > 0 {
			bits.WriteU64(comp.Quantize(v), comp.BitWidth)
		}
	}
	sink := binary.NewSink()
	w := binary.NewWriter(sink)
	const compSize = 4 + 4 + 8
	h := compressedHeader{
		unk4:             4,
		bitsPerEntry:     uint16(comp.BitWidth),
		defaultOffset:    compressedHeaderSize + compSize,
		compressedOffset: compressedHeaderSize + compSize + 4,
		frameCount:       uint32(len(values)),
	}
	if err := writeCompressedHeader(w, h); err != nil {
		return nil, err
	}
	if err := w.WriteU32(comp.Min); err != nil {
		return nil, err
	}
	if err := w.WriteU32(comp.Max); err != nil {
		return nil, err
	}
	if err := w.WriteU64(comp.BitWidth); err != nil {
		return nil, err
	}
	if err := w.WriteU32(def); err != nil {
		return nil, err
	}
	if err := w.WriteBytes(bits.Bytes()); err != nil {
		return nil, err
	}
	return sink.Bytes(), nil
}

// --- Boolean tracks ---

// DecodeBooleanTrack decodes a track of frameCount booleans.
func DecodeBooleanTrack(data []byte, compression formats.CompressionType, frameCount uint32) ([]bool, error) {
	r := binary.NewReader(data)
	switch compression {
	case formats.CompressionDirect:
		out := make([]bool, frameCount)
		for i := range out {
			v, err := r.ReadU8()
			if err != nil {
				return nil, err
			}
			out[i] = v != 0
		}
		return out, nil
	case formats.CompressionConstant, formats.CompressionConstTransform:
		v, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		out := make([]bool, frameCount)
		for i := range out {
			out[i] = v != 0
		}
		return out, nil
	case formats.CompressionCompressed:
		h, err := readCompressedHeader(r)
		if err != nil {
			return nil, err
		}
		bits := NewBitReader(data[h.compressedOffset:])
		out := make([]bool, h.frameCount)
		for i := range out {
			out[i] = bits.ReadBit()
		}
		return out, nil
	default:
		return nil, &UnknownCompressionTypeError{CompressionType: uint8(compression)}
	}
}

// EncodeBooleanDirect encodes values as a flat sequence of one byte per
// frame, the representation Anim 1.2 and Direct-compressed 2.0/2.1 tracks
// use.
func EncodeBooleanDirect(values []bool) ([]byte, error) {
	sink := binary.NewSink()
	w := binary.NewWriter(sink)
	for _, v := range values {
		var b uint8
		if v {
			b = 1
		}
		if err := w.WriteU8(b); err != nil {
			return nil, err
		}
	}
	return sink.Bytes(), nil
}

// EncodeBooleanTrack encodes values as a Compressed track buffer, one bit
// per frame.
func EncodeBooleanTrack(values []bool) ([]byte, error) {
	bits := NewBitWriter()
	for _, v := range values {
		bits.WriteBit(v)
	}
	sink := binary.NewSink()
	w := binary.NewWriter(sink)
	var def uint8
	if len(values) > 0 && values[0] {
		def = 1
	}
	h := compressedHeader{
		unk4:             4,
		bitsPerEntry:     1,
		defaultOffset:    compressedHeaderSize,
		compressedOffset: compressedHeaderSize + 1,
		frameCount:       uint32(len(values)),
	}
	if err := writeCompressedHeader(w, h); err != nil {
		return nil, err
	}
	if err := w.WriteU8(def); err != nil {
		return nil, err
	}
	if err := w.WriteBytes(bits.Bytes()); err != nil {
		return nil, err
	}
	return sink.Bytes(), nil
}

// --- Vector4 tracks ---

// DecodeVector4Track decodes a track of frameCount Vector4 values.
func DecodeVector4Track(data []byte, compression formats.CompressionType, frameCount uint32) ([]formats.Vector4, error) {
	r := binary.NewReader(data)
	readVec4 := func() (formats.Vector4, error) {
		var v formats.Vector4
		var err error
		if v.X, err = r.ReadF32(); err != nil {
			return v, err
		}
		if v.Y, err = r.ReadF32(); err != nil {
			return v, err
		}
		if v.Z, err = r.ReadF32(); err != nil {
			return v, err
		}
		v.W, err = r.ReadF32()
		return v, err
	}
	switch compression {
	case formats.CompressionDirect:
		out := make([]formats.Vector4, frameCount)
		for i := range out {
			v, err := readVec4()
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case formats.CompressionConstant, formats.CompressionConstTransform:
		v, err := readVec4()
		if err != nil {
			return nil, err
		}
		out := make([]formats.Vector4, frameCount)
		for i := range out {
			out[i] = v
		}
		return out, nil
	case formats.CompressionCompressed:
		h, err := readCompressedHeader(r)
		if err != nil {
			return nil, err
		}
		comps := make([]F32Compression, 4)
		for i := range comps {
			if comps[i].Min, err = r.ReadF32(); err != nil {
				return nil, err
			}
			if comps[i].Max, err = r.ReadF32(); err != nil {
				return nil, err
			}
			if comps[i].BitWidth, err = r.ReadU64(); err != nil {
				return nil, err
			}
		}
		def, err := readVec4()
		if err != nil {
			return nil, err
		}
		bits := NewBitReader(data[h.compressedOffset:])
		out := make([]formats.Vector4, h.frameCount)
		defComponents := [4]float32{def.X, def.Y, def.Z, def.W}
		for i := range out {
			var components [4]float32
			for c := 0; c < 4; c++ {
				if comps[c].BitWidth == 0 {
					components[c] = defComponents[c]
					continue
				}
				components[c] = comps[c].Dequantize(bits.ReadU64(comps[c].BitWidth))
			}
			out[i] = formats.Vector4{X: components[0], Y: components[1], Z: components[2], W: components[3]}
		}
		return out, nil
	default:
		return nil, &UnknownCompressionTypeError{CompressionType: uint8(compression)}
	}
}

// EncodeVector4Track encodes values as a Compressed track buffer, each
// component quantized independently.
func EncodeVector4Track(values []formats.Vector4) ([]byte, error) {
	xs := make([]float32, len(values))
	ys := make([]float32, len(values))
	zs := make([]float32, len(values))
	ws := make([]float32, len(values))
	for i, v := range values {
		xs[i], ys[i], zs[i], ws[i] = v.X, v.Y, v.Z, v.W
	}
	comps := make([]F32Compression, 4)
	channels := [][]float32{xs, ys, zs, ws}
	for i, ch := range channels {
		c, err := ChooseF32Compression(ch, DefaultErrorBound)
		if err != nil {
			return nil, err
		}
		comps[i] = c
	}
	var def formats.Vector4
	if len(values) > 0 {
		def = values[0]
	}

	bits := NewBitWriter()
	for i := range values {
		frame := [4]float32{xs[i], ys[i], zs[i], ws[i]}
		for c := 0; c < 4; c++ {
			if comps[c].BitWidth > 0 {
				bits.WriteU64(comps[c].Quantize(frame[c]), comps[c].BitWidth)
			}
		}
	}

	sink := binary.NewSink()
	w := binary.NewWriter(sink)
	const compSize = 4 * (4 + 4 + 8)
	h := compressedHeader{
		unk4:             4,
		bitsPerEntry:     uint16(comps[0].BitWidth + comps[1].BitWidth + comps[2].BitWidth + comps[3].BitWidth),
		defaultOffset:    compressedHeaderSize + compSize,
		compressedOffset: compressedHeaderSize + compSize + 16,
		frameCount:       uint32(len(values)),
	}
	if err := writeCompressedHeader(w, h); err != nil {
		return nil, err
	}
	for _, c := range comps {
		if err := w.WriteF32(c.Min); err != nil {
			return nil, err
		}
		if err := w.WriteF32(c.Max); err != nil {
			return nil, err
		}
		if err := w.WriteU64(c.BitWidth); err != nil {
			return nil, err
		}
	}
	if err := w.WriteF32(def.X); err != nil {
		return nil, err
	}
	if err := w.WriteF32(def.Y); err != nil {
		return nil, err
	}
	if err := w.WriteF32(def.Z); err != nil {
		return nil, err
	}
	if err := w.WriteF32(def.W); err != nil {
		return nil, err
	}
	if err := w.WriteBytes(bits.Bytes()); err != nil {
		return nil, err
	}
	return sink.Bytes(), nil
}
