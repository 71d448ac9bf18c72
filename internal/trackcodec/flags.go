package trackcodec

// ScaleType distinguishes how a Transform track's scale channels are
// stored: uniform scale shares one channel across X, Y and Z instead of
// compressing all three independently, and can silently miscount a track's
// bit width if dropped, so it is carried explicitly rather than folded into
// a single "has scale" bool.
type ScaleType uint8

const (
	ScaleTypeNone ScaleType = iota
	ScaleTypeNoInheritance
	ScaleTypeScale
	ScaleTypeUniformScale
)

// CompressionFlags is the packed per-track header describing which
// Transform channels are present in the compressed bitstream. It is stored
// as a 16-bit field: bits 0-1 hold the ScaleType, and single bits above
// that record whether rotation, translation and compensate-scale channels
// were compressed at all (a track can omit a channel entirely and leave it
// at its default value).
type CompressionFlags struct {
	ScaleType           ScaleType
	HasRotation         bool
	HasTranslation      bool
	HasCompensateScale  bool
}

const (
	scaleTypeMask          = 0x3
	hasRotationBit         = 1 << 2
	hasTranslationBit      = 1 << 3
	hasCompensateScaleBit  = 1 << 4
)

// Pack encodes the flags into their on-disk 16-bit representation.
func (f CompressionFlags) Pack() uint16 {
	v := uint16(f.ScaleType) & scaleTypeMask
	if f.HasRotation {
		v |= hasRotationBit
	}
	if f.HasTranslation {
		v |= hasTranslationBit
	}
	if f.HasCompensateScale {
		v |= hasCompensateScaleBit
	}
	return v
}

// UnpackCompressionFlags decodes a 16-bit on-disk flags value.
func UnpackCompressionFlags(v uint16) CompressionFlags {
	return CompressionFlags{
		ScaleType:          ScaleType(v & scaleTypeMask),
		HasRotation:        v&hasRotationBit != 0,
		HasTranslation:     v&hasTranslationBit != 0,
		HasCompensateScale: v&hasCompensateScaleBit != 0,
	}
}

// HasScale reports whether any scale channel (uniform or per-axis) is
// present in the bitstream.
func (f CompressionFlags) HasScale() bool {
	return f.ScaleType != ScaleTypeNone
}
