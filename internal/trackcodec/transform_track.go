package trackcodec

import (
	"github.com/ultimate-research/ssbh-go/formats"
	"github.com/ultimate-research/ssbh-go/internal/binary"
)

// QuaternionTolerance bounds how far a rotation frame's length may stray
// from 1 before EncodeTransformTrack rejects it: the compressed format
// drops W and reconstructs it from X, Y, Z, which only works for
// (approximately) unit quaternions.
const QuaternionTolerance = 0.002

const transformFrameSize = 12 + 16 + 12 + 4 // Scale + Rotation + Translation + CompensateScale

// TransformFrameSize is the byte size of one uncompressed Transform frame.
const TransformFrameSize = transformFrameSize

func readTransform(r *binary.Reader) (Transform, error) {
	var t Transform
	var err error
	if t.Scale.X, err = r.ReadF32(); err != nil {
		return t, err
	}
	if t.Scale.Y, err = r.ReadF32(); err != nil {
		return t, err
	}
	if t.Scale.Z, err = r.ReadF32(); err != nil {
		return t, err
	}
	if t.Rotation.X, err = r.ReadF32(); err != nil {
		return t, err
	}
	if t.Rotation.Y, err = r.ReadF32(); err != nil {
		return t, err
	}
	if t.Rotation.Z, err = r.ReadF32(); err != nil {
		return t, err
	}
	if t.Rotation.W, err = r.ReadF32(); err != nil {
		return t, err
	}
	if t.Translation.X, err = r.ReadF32(); err != nil {
		return t, err
	}
	if t.Translation.Y, err = r.ReadF32(); err != nil {
		return t, err
	}
	if t.Translation.Z, err = r.ReadF32(); err != nil {
		return t, err
	}
	t.CompensateScale, err = r.ReadF32()
	return t, err
}

func writeTransform(w *binary.Writer, t Transform) error {
	fields := []float32{
		t.Scale.X, t.Scale.Y, t.Scale.Z,
		t.Rotation.X, t.Rotation.Y, t.Rotation.Z, t.Rotation.W,
		t.Translation.X, t.Translation.Y, t.Translation.Z,
		t.CompensateScale,
	}
	for _, f := range fields {
		if err := w.WriteF32(f); err != nil {
			return err
		}
	}
	return nil
}

// DecodeTransformTrack decodes a track of frameCount Transform frames.
func DecodeTransformTrack(data []byte, compression formats.CompressionType, frameCount uint32) ([]Transform, error) {
	r := binary.NewReader(data)
	switch compression {
	case formats.CompressionDirect:
		out := make([]Transform, frameCount)
		for i := range out {
			v, err := readTransform(r)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case formats.CompressionConstant, formats.CompressionConstTransform:
		v, err := readTransform(r)
		if err != nil {
			return nil, err
		}
		out := make([]Transform, frameCount)
		for i := range out {
			out[i] = v
		}
		return out, nil
	case formats.CompressionCompressed:
		return decodeCompressedTransform(data)
	default:
		return nil, &UnknownCompressionTypeError{CompressionType: uint8(compression)}
	}
}

func decodeCompressedTransform(data []byte) ([]Transform, error) {
	r := binary.NewReader(data)
	h, err := readCompressedHeader(r)
	if err != nil {
		return nil, err
	}
	flags := UnpackCompressionFlags(h.flags)

	var scaleComps []F32Compression
	switch {
	case flags.ScaleType == ScaleTypeUniformScale:
		scaleComps = make([]F32Compression, 1)
	case flags.HasScale():
		scaleComps = make([]F32Compression, 3)
	}
	for i := range scaleComps {
		if scaleComps[i], err = readF32Compression(r); err != nil {
			return nil, err
		}
	}

	var rotComps []F32Compression
	if flags.HasRotation {
		rotComps = make([]F32Compression, 3)
		for i := range rotComps {
			if rotComps[i], err = readF32Compression(r); err != nil {
				return nil, err
			}
		}
	}

	var transComps []F32Compression
	if flags.HasTranslation {
		transComps = make([]F32Compression, 3)
		for i := range transComps {
			if transComps[i], err = readF32Compression(r); err != nil {
				return nil, err
			}
		}
	}

	var compScaleComp F32Compression
	if flags.HasCompensateScale {
		if compScaleComp, err = readF32Compression(r); err != nil {
			return nil, err
		}
	}

	def, err := readTransform(r)
	if err != nil {
		return nil, err
	}

	bits := NewBitReader(data[h.compressedOffset:])
	out := make([]Transform, h.frameCount)
	for i := range out {
		t := def
		switch {
		case flags.ScaleType == ScaleTypeUniformScale:
			v := scaleComps[0].Dequantize(bits.ReadU64(scaleComps[0].BitWidth))
			t.Scale = formats.Vector3{X: v, Y: v, Z: v}
		case flags.HasScale():
			t.Scale = formats.Vector3{
				X: scaleComps[0].Dequantize(bits.ReadU64(scaleComps[0].BitWidth)),
				Y: scaleComps[1].Dequantize(bits.ReadU64(scaleComps[1].BitWidth)),
				Z: scaleComps[2].Dequantize(bits.ReadU64(scaleComps[2].BitWidth)),
			}
		}
		if flags.HasRotation {
			x := rotComps[0].Dequantize(bits.ReadU64(rotComps[0].BitWidth))
			y := rotComps[1].Dequantize(bits.ReadU64(rotComps[1].BitWidth))
			z := rotComps[2].Dequantize(bits.ReadU64(rotComps[2].BitWidth))
			negative := bits.ReadBit()
			t.Rotation = formats.Vector4{X: x, Y: y, Z: z, W: ReconstructW(x, y, z, negative)}
		}
		if flags.HasTranslation {
			t.Translation = formats.Vector3{
				X: transComps[0].Dequantize(bits.ReadU64(transComps[0].BitWidth)),
				Y: transComps[1].Dequantize(bits.ReadU64(transComps[1].BitWidth)),
				Z: transComps[2].Dequantize(bits.ReadU64(transComps[2].BitWidth)),
			}
		}
		if flags.HasCompensateScale {
			t.CompensateScale = compScaleComp.Dequantize(bits.ReadU64(compScaleComp.BitWidth))
		}
		out[i] = t
	}
	return out, nil
}

func readF32Compression(r *binary.Reader) (F32Compression, error) {
	var c F32Compression
	var err error
	if c.Min, err = r.ReadF32(); err != nil {
		return c, err
	}
	if c.Max, err = r.ReadF32(); err != nil {
		return c, err
	}
	c.BitWidth, err = r.ReadU64()
	return c, err
}

func writeF32Compression(w *binary.Writer, c F32Compression) error {
	if err := w.WriteF32(c.Min); err != nil {
		return err
	}
	if err := w.WriteF32(c.Max); err != nil {
		return err
	}
	return w.WriteU64(c.BitWidth)
}

// EncodeTransformDirect encodes values as a flat sequence of uncompressed
// Transform frames, the only representation Anim 1.2 supports.
func EncodeTransformDirect(values []Transform) ([]byte, error) {
	sink := binary.NewSink()
	w := binary.NewWriter(sink)
	for _, v := range values {
		if err := writeTransform(w, v); err != nil {
			return nil, err
		}
	}
	return sink.Bytes(), nil
}

// EncodeTransformTrack encodes values as a Compressed track buffer. Scale
// channels collapse to ScaleTypeUniformScale when every frame's X, Y and Z
// components match, and CompensateScale is dropped from the bitstream
// entirely when every frame leaves it at zero. Every rotation frame must be
// within QuaternionTolerance of a unit quaternion, since W is reconstructed
// rather than stored.
func EncodeTransformTrack(values []Transform) ([]byte, error) {
	uniform := true
	for _, t := range values {
		if t.Scale.X != t.Scale.Y || t.Scale.Y != t.Scale.Z {
			uniform = false
			break
		}
	}
	hasCompensateScale := false
	for _, t := range values {
		if t.CompensateScale != 0 {
			hasCompensateScale = true
			break
		}
	}
	for _, t := range values {
		if err := ValidateUnitQuaternion(t.Rotation.X, t.Rotation.Y, t.Rotation.Z, t.Rotation.W, QuaternionTolerance); err != nil {
			return nil, err
		}
	}

	flags := CompressionFlags{
		HasRotation:        true,
		HasTranslation:     true,
		HasCompensateScale: hasCompensateScale,
	}
	if uniform {
		flags.ScaleType = ScaleTypeUniformScale
	} else {
		flags.ScaleType = ScaleTypeScale
	}

	var scaleComps []F32Compression
	if uniform {
		xs := make([]float32, len(values))
		for i, t := range values {
			xs[i] = t.Scale.X
		}
		c, err := ChooseF32Compression(xs, DefaultErrorBound)
		if err != nil {
			return nil, err
		}
		scaleComps = []F32Compression{c}
	} else {
		axes := [3][]float32{make([]float32, len(values)), make([]float32, len(values)), make([]float32, len(values))}
		for i, t := range values {
			axes[0][i], axes[1][i], axes[2][i] = t.Scale.X, t.Scale.Y, t.Scale.Z
		}
		scaleComps = make([]F32Compression, 3)
		for i, axis := range axes {
			c, err := ChooseF32Compression(axis, DefaultErrorBound)
			if err != nil {
				return nil, err
			}
			scaleComps[i] = c
		}
	}

	rotAxes := [3][]float32{make([]float32, len(values)), make([]float32, len(values)), make([]float32, len(values))}
	for i, t := range values {
		rotAxes[0][i], rotAxes[1][i], rotAxes[2][i] = t.Rotation.X, t.Rotation.Y, t.Rotation.Z
	}
	rotComps := make([]F32Compression, 3)
	for i, axis := range rotAxes {
		c, err := ChooseF32Compression(axis, DefaultErrorBound)
		if err != nil {
			return nil, err
		}
		rotComps[i] = c
	}

	transAxes := [3][]float32{make([]float32, len(values)), make([]float32, len(values)), make([]float32, len(values))}
	for i, t := range values {
		transAxes[0][i], transAxes[1][i], transAxes[2][i] = t.Translation.X, t.Translation.Y, t.Translation.Z
	}
	transComps := make([]F32Compression, 3)
	for i, axis := range transAxes {
		c, err := ChooseF32Compression(axis, DefaultErrorBound)
		if err != nil {
			return nil, err
		}
		transComps[i] = c
	}

	var compScaleComp F32Compression
	if hasCompensateScale {
		cs := make([]float32, len(values))
		for i, t := range values {
			cs[i] = t.CompensateScale
		}
		c, err := ChooseF32Compression(cs, DefaultErrorBound)
		if err != nil {
			return nil, err
		}
		compScaleComp = c
	}

	bits := NewBitWriter()
	for _, t := range values {
		if uniform {
			bits.WriteU64(scaleComps[0].Quantize(t.Scale.X), scaleComps[0].BitWidth)
		} else {
			bits.WriteU64(scaleComps[0].Quantize(t.Scale.X), scaleComps[0].BitWidth)
			bits.WriteU64(scaleComps[1].Quantize(t.Scale.Y), scaleComps[1].BitWidth)
			bits.WriteU64(scaleComps[2].Quantize(t.Scale.Z), scaleComps[2].BitWidth)
		}
		bits.WriteU64(rotComps[0].Quantize(t.Rotation.X), rotComps[0].BitWidth)
		bits.WriteU64(rotComps[1].Quantize(t.Rotation.Y), rotComps[1].BitWidth)
		bits.WriteU64(rotComps[2].Quantize(t.Rotation.Z), rotComps[2].BitWidth)
		bits.WriteBit(t.Rotation.W < 0)
		bits.WriteU64(transComps[0].Quantize(t.Translation.X), transComps[0].BitWidth)
		bits.WriteU64(transComps[1].Quantize(t.Translation.Y), transComps[1].BitWidth)
		bits.WriteU64(transComps[2].Quantize(t.Translation.Z), transComps[2].BitWidth)
		if hasCompensateScale {
			bits.WriteU64(compScaleComp.Quantize(t.CompensateScale), compScaleComp.BitWidth)
		}
	}

	var totalBits uint64
	for _, c := range scaleComps {
		totalBits += c.BitWidth
	}
	for _, c := range rotComps {
		totalBits += c.BitWidth
	}
	totalBits++ // rotation sign bit
	for _, c := range transComps {
		totalBits += c.BitWidth
	}
	if hasCompensateScale {
		totalBits += compScaleComp.BitWidth
	}

	compSize := len(scaleComps)*16 + len(rotComps)*16 + len(transComps)*16
	if hasCompensateScale {
		compSize += 16
	}

	sink := binary.NewSink()
	w := binary.NewWriter(sink)
	var def Transform
	if len(values) > 0 {
		def = values[0]
	}
	h := compressedHeader{
		unk4:             4,
		flags:            flags.Pack(),
		bitsPerEntry:     uint16(totalBits),
		defaultOffset:    compressedHeaderSize + uint16(compSize),
		compressedOffset: compressedHeaderSize + uint32(compSize) + transformFrameSize,
		frameCount:       uint32(len(values)),
	}
	if err := writeCompressedHeader(w, h); err != nil {
		return nil, err
	}
	for _, c := range scaleComps {
		if err := writeF32Compression(w, c); err != nil {
			return nil, err
		}
	}
	for _, c := range rotComps {
		if err := writeF32Compression(w, c); err != nil {
			return nil, err
		}
	}
	for _, c := range transComps {
		if err := writeF32Compression(w, c); err != nil {
			return nil, err
		}
	}
	if hasCompensateScale {
		if err := writeF32Compression(w, compScaleComp); err != nil {
			return nil, err
		}
	}
	if err := writeTransform(w, def); err != nil {
		return nil, err
	}
	if err := w.WriteBytes(bits.Bytes()); err != nil {
		return nil, err
	}
	return sink.Bytes(), nil
}
