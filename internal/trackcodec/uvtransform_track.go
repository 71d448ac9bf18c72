package trackcodec

import (
	"github.com/ultimate-research/ssbh-go/formats"
	"github.com/ultimate-research/ssbh-go/internal/binary"
)

// UvTransformFrameSize is the byte size of one uncompressed UvTransform frame.
const UvTransformFrameSize = 5 * 4

func uvComponents(v UvTransform) [5]float32 {
	return [5]float32{v.ScaleU, v.ScaleV, v.Rotation, v.TranslateU, v.TranslateV}
}

func uvFromComponents(c [5]float32) UvTransform {
	return UvTransform{ScaleU: c[0], ScaleV: c[1], Rotation: c[2], TranslateU: c[3], TranslateV: c[4]}
}

func readUvTransform(r *binary.Reader) (UvTransform, error) {
	var c [5]float32
	var err error
	for i := range c {
		if c[i], err = r.ReadF32(); err != nil {
			return UvTransform{}, err
		}
	}
	return uvFromComponents(c), nil
}

func writeUvTransform(w *binary.Writer, v UvTransform) error {
	for _, c := range uvComponents(v) {
		if err := w.WriteF32(c); err != nil {
			return err
		}
	}
	return nil
}

// EncodeUvTransformDirect encodes values as a flat sequence of uncompressed
// UvTransform frames, the only representation Anim 1.2 supports.
func EncodeUvTransformDirect(values []UvTransform) ([]byte, error) {
	sink := binary.NewSink()
	w := binary.NewWriter(sink)
	for _, v := range values {
		if err := writeUvTransform(w, v); err != nil {
			return nil, err
		}
	}
	return sink.Bytes(), nil
}

// DecodeUvTransformTrack decodes a track of frameCount UvTransform frames.
func DecodeUvTransformTrack(data []byte, compression formats.CompressionType, frameCount uint32) ([]UvTransform, error) {
	r := binary.NewReader(data)
	switch compression {
	case formats.CompressionDirect:
		out := make([]UvTransform, frameCount)
		for i := range out {
			v, err := readUvTransform(r)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case formats.CompressionConstant, formats.CompressionConstTransform:
		v, err := readUvTransform(r)
		if err != nil {
			return nil, err
		}
		out := make([]UvTransform, frameCount)
		for i := range out {
			out[i] = v
		}
		return out, nil
	case formats.CompressionCompressed:
		h, err := readCompressedHeader(r)
		if err != nil {
			return nil, err
		}
		var comps [5]F32Compression
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
		def, err := readUvTransform(r)
		if err != nil {
			return nil, err
		}
		defComponents := uvComponents(def)
		bits := NewBitReader(data[h.compressedOffset:])
		out := make([]UvTransform, h.frameCount)
		for i := range out {
			var frame [5]float32
			for c := 0; c < 5; c++ {
				if comps[c].BitWidth == 0 {
					frame[c] = defComponents[c]
					continue
				}
				frame[c] = comps[c].Dequantize(bits.ReadU64(comps[c].BitWidth))
			}
			out[i] = uvFromComponents(frame)
		}
		return out, nil
	default:
		return nil, &UnknownCompressionTypeError{CompressionType: uint8(compression)}
	}
}

// EncodeUvTransformTrack encodes values as a Compressed track buffer, each
// of the five channels quantized independently.
func EncodeUvTransformTrack(values []UvTransform) ([]byte, error) {
	channels := [5][]float32{}
	for i := range channels {
		channels[i] = make([]float32, len(values))
	}
	for i, v := range values {
		c := uvComponents(v)
		for k := 0; k < 5; k++ {
			channels[k][i] = c[k]
		}
	}
	var comps [5]F32Compression
	for i, ch := range channels {
		c, err := ChooseF32Compression(ch, DefaultErrorBound)
		if err != nil {
			return nil, err
		}
		comps[i] = c
	}
	var def UvTransform
	if len(values) > 0 {
		def = values[0]
	}

	bits := NewBitWriter()
	for i := range values {
		c := uvComponents(values[i])
		for k := 0; k < 5; k++ {
			if comps[k].BitWidth > 0 {
				bits.WriteU64(comps[k].Quantize(c[k]), comps[k].BitWidth)
			}
		}
	}

	sink := binary.NewSink()
	w := binary.NewWriter(sink)
	const compSize = 5 * (4 + 4 + 8)
	const defSize = 5 * 4
	var totalBits uint64
	for _, c := range comps {
		totalBits += c.BitWidth
	}
	h := compressedHeader{
		unk4:             4,
		bitsPerEntry:     uint16(totalBits),
		defaultOffset:    compressedHeaderSize + compSize,
		compressedOffset: compressedHeaderSize + compSize + defSize,
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
	if err := writeUvTransform(w, def); err != nil {
		return nil, err
	}
	if err := w.WriteBytes(bits.Bytes()); err != nil {
		return nil, err
	}
	return sink.Bytes(), nil
}
