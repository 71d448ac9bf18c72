package formats

import (
	"github.com/ultimate-research/ssbh-go/internal/record"
	"github.com/ultimate-research/ssbh-go/internal/schema"
)

// ParamId names a shader input a material Attribute assigns a value to.
// This is a representative subset of the full parameter space; unlisted
// values still round-trip since ParamId is stored as a plain uint64.
type ParamId uint64

const (
	ParamDiffuse                     ParamId = 0
	ParamSpecular                    ParamId = 1
	ParamAmbient                     ParamId = 2
	ParamBlendMap                    ParamId = 3
	ParamTransparency                ParamId = 4
	ParamDiffuseMapLayer1            ParamId = 5
	ParamDiffuseMap                  ParamId = 30
	ParamSpecularMap                 ParamId = 31
	ParamNormalMap                   ParamId = 36
	ParamDiffuseSampler              ParamId = 64
	ParamSpecularSampler             ParamId = 65
	ParamNormalSampler                ParamId = 66
	ParamTexture0                    ParamId = 92
	ParamTexture1                    ParamId = 93
	ParamTexture2                    ParamId = 94
	ParamTexture3                    ParamId = 95
	ParamTexture4                    ParamId = 96
	ParamTexture5                    ParamId = 97
	ParamTexture6                    ParamId = 98
	ParamTexture7                    ParamId = 99
	ParamSampler0                    ParamId = 108
	ParamSampler1                    ParamId = 109
	ParamCustomVector0               ParamId = 152
	ParamCustomVector8               ParamId = 160
	ParamCustomVector13               ParamId = 165
	ParamCustomVector14               ParamId = 166
	ParamCustomColor0                ParamId = 172
	ParamCustomFloat0                ParamId = 192
	ParamCustomFloat8                ParamId = 200
	ParamCustomBoolean0              ParamId = 232
	ParamCustomBoolean1              ParamId = 233
	ParamCustomBoolean3              ParamId = 235
	ParamCustomBoolean4              ParamId = 236
	ParamUvTransform0                ParamId = 252
	ParamBlendState0                 ParamId = 280
	ParamRasterizerState0            ParamId = 291
)

// FillMode determines how a rasterizer state shades polygons.
type FillMode uint32

const (
	FillModeLine  FillMode = 0
	FillModeSolid FillMode = 1
)

// CullMode determines which faces a rasterizer state culls.
type CullMode uint32

const (
	CullModeBack  CullMode = 0
	CullModeFront CullMode = 1
	CullModeNone  CullMode = 2
)

// WrapMode determines how out-of-range texture coordinates are handled.
type WrapMode uint32

const (
	WrapModeRepeat         WrapMode = 0
	WrapModeClampToEdge    WrapMode = 1
	WrapModeMirroredRepeat WrapMode = 2
	WrapModeClampToBorder  WrapMode = 3
)

// MinFilter selects a texture's minification filter.
type MinFilter uint32

const (
	MinFilterNearest             MinFilter = 0
	MinFilterLinearMipmapLinear  MinFilter = 1
	MinFilterLinearMipmapLinear2 MinFilter = 2
)

// MagFilter selects a texture's magnification filter.
type MagFilter uint32

const (
	MagFilterNearest MagFilter = 0
	MagFilterLinear  MagFilter = 1
	MagFilterLinear2 MagFilter = 2
)

// FilteringType selects whether anisotropic filtering is active.
type FilteringType uint32

const (
	FilteringTypeDefault               FilteringType = 0
	FilteringTypeDefault2              FilteringType = 1
	FilteringTypeAnisotropicFiltering  FilteringType = 2
)

// MaxAnisotropy is the anisotropy level for anisotropic texture filtering.
type MaxAnisotropy uint32

const (
	MaxAnisotropyOne      MaxAnisotropy = 1
	MaxAnisotropyTwo      MaxAnisotropy = 2
	MaxAnisotropyFour     MaxAnisotropy = 4
	MaxAnisotropyEight    MaxAnisotropy = 8
	MaxAnisotropySixteen  MaxAnisotropy = 16
)

// BlendFactor is a source or destination factor for alpha blending.
type BlendFactor uint32

const (
	BlendFactorZero                     BlendFactor = 0
	BlendFactorOne                      BlendFactor = 1
	BlendFactorSourceAlpha              BlendFactor = 2
	BlendFactorDestinationAlpha         BlendFactor = 3
	BlendFactorSourceColor              BlendFactor = 4
	BlendFactorDestinationColor         BlendFactor = 5
	BlendFactorOneMinusSourceAlpha      BlendFactor = 6
	BlendFactorOneMinusDestinationAlpha BlendFactor = 7
	BlendFactorOneMinusSourceColor      BlendFactor = 8
	BlendFactorOneMinusDestinationColor BlendFactor = 9
	BlendFactorSourceAlphaSaturate      BlendFactor = 10
)

const (
	paramTypeFloat           = 1
	paramTypeBoolean         = 2
	paramTypeVector4         = 5
	paramTypeUnk7Color4f     = 7
	paramTypeString          = 11
	paramTypeSampler         = 14
	paramTypeUvTransform     = 16
	paramTypeBlendState      = 17
	paramTypeRasterizerState = 18
)

// Sampler configures how a texture is sampled.
type Sampler struct {
	WrapS, WrapT, WrapR   WrapMode
	MinFilter             MinFilter
	MagFilter             MagFilter
	TextureFilteringType  FilteringType
	BorderColor           Color4f
	Unk11, Unk12          uint32
	LodBias               float32
	MaxAnisotropy         MaxAnisotropy
}

const samplerSize = 4*6 + 16 + 4 + 4 + 4 + 4

func readSampler(r *record.Reader) (s Sampler, err error) {
	u32 := func() (uint32, error) { return r.ReadU32() }
	v, err := u32()
	if err != nil {
		return s, err
	}
	s.WrapS = WrapMode(v)
	if v, err = u32(); err != nil {
		return s, err
	}
	s.WrapT = WrapMode(v)
	if v, err = u32(); err != nil {
		return s, err
	}
	s.WrapR = WrapMode(v)
	if v, err = u32(); err != nil {
		return s, err
	}
	s.MinFilter = MinFilter(v)
	if v, err = u32(); err != nil {
		return s, err
	}
	s.MagFilter = MagFilter(v)
	if v, err = u32(); err != nil {
		return s, err
	}
	s.TextureFilteringType = FilteringType(v)
	if s.BorderColor, err = readColor4f(r); err != nil {
		return s, err
	}
	if s.Unk11, err = r.ReadU32(); err != nil {
		return s, err
	}
	if s.Unk12, err = r.ReadU32(); err != nil {
		return s, err
	}
	if s.LodBias, err = r.ReadF32(); err != nil {
		return s, err
	}
	if v, err = u32(); err != nil {
		return s, err
	}
	s.MaxAnisotropy = MaxAnisotropy(v)
	return s, nil
}

func (s Sampler) write(w *record.Writer) error {
	fields := []uint32{uint32(s.WrapS), uint32(s.WrapT), uint32(s.WrapR), uint32(s.MinFilter), uint32(s.MagFilter), uint32(s.TextureFilteringType)}
	for _, f := range fields {
		if err := w.WriteU32(f); err != nil {
			return err
		}
	}
	if err := s.BorderColor.write(w); err != nil {
		return err
	}
	if err := w.WriteU32(s.Unk11); err != nil {
		return err
	}
	if err := w.WriteU32(s.Unk12); err != nil {
		return err
	}
	if err := w.WriteF32(s.LodBias); err != nil {
		return err
	}
	return w.WriteU32(uint32(s.MaxAnisotropy))
}

// UvTransform is a 2D affine transform applied to a texture's UV
// coordinates.
type UvTransform struct {
	X, Y, Z, W, V float32
}

const uvTransformSize = 5 * 4

func readUvTransform(r *record.Reader) (u UvTransform, err error) {
	fields := []*float32{&u.X, &u.Y, &u.Z, &u.W, &u.V}
	for _, f := range fields {
		if *f, err = r.ReadF32(); err != nil {
			return u, err
		}
	}
	return u, nil
}

func (u UvTransform) write(w *record.Writer) error {
	fields := []float32{u.X, u.Y, u.Z, u.W, u.V}
	for _, f := range fields {
		if err := w.WriteF32(f); err != nil {
			return err
		}
	}
	return nil
}

// BlendStateV15 holds the raw alpha blending fields used by 1.5-format
// materials, before the shared BlendFactor enum was adopted.
type BlendStateV15 struct {
	Unk1                                     uint64
	Unk2, Unk3, Unk4, Unk5                   uint32
	Unk6                                     uint64
	Unk7, Unk8, Unk9                          uint32
}

const blendStateV15Size = 8 + 4*4 + 8 + 4*3

func readBlendStateV15(r *record.Reader) (b BlendStateV15, err error) {
	if b.Unk1, err = r.ReadU64(); err != nil {
		return b, err
	}
	u32s := []*uint32{&b.Unk2, &b.Unk3, &b.Unk4, &b.Unk5}
	for _, f := range u32s {
		if *f, err = r.ReadU32(); err != nil {
			return b, err
		}
	}
	if b.Unk6, err = r.ReadU64(); err != nil {
		return b, err
	}
	u32s2 := []*uint32{&b.Unk7, &b.Unk8, &b.Unk9}
	for _, f := range u32s2 {
		if *f, err = r.ReadU32(); err != nil {
			return b, err
		}
	}
	return b, nil
}

func (b BlendStateV15) write(w *record.Writer) error {
	if err := w.WriteU64(b.Unk1); err != nil {
		return err
	}
	for _, f := range []uint32{b.Unk2, b.Unk3, b.Unk4, b.Unk5} {
		if err := w.WriteU32(f); err != nil {
			return err
		}
	}
	if err := w.WriteU64(b.Unk6); err != nil {
		return err
	}
	for _, f := range []uint32{b.Unk7, b.Unk8, b.Unk9} {
		if err := w.WriteU32(f); err != nil {
			return err
		}
	}
	return nil
}

// BlendStateV16 holds 1.6-format alpha blending settings.
type BlendStateV16 struct {
	SourceColor            BlendFactor
	Unk2                   uint32
	DestinationColor       BlendFactor
	Unk4, Unk5, Unk6       uint32
	AlphaSampleToCoverage  uint32
	Unk8, Unk9, Unk10      uint32
}

const blendStateV16Size = 4*10 + 8 // fields(40) + pad_after(8)

func readBlendStateV16(r *record.Reader) (b BlendStateV16, err error) {
	v, err := r.ReadU32()
	if err != nil {
		return b, err
	}
	b.SourceColor = BlendFactor(v)
	if b.Unk2, err = r.ReadU32(); err != nil {
		return b, err
	}
	if v, err = r.ReadU32(); err != nil {
		return b, err
	}
	b.DestinationColor = BlendFactor(v)
	fields := []*uint32{&b.Unk4, &b.Unk5, &b.Unk6, &b.AlphaSampleToCoverage, &b.Unk8, &b.Unk9, &b.Unk10}
	for _, f := range fields {
		if *f, err = r.ReadU32(); err != nil {
			return b, err
		}
	}
	r.Skip(8)
	return b, nil
}

func (b BlendStateV16) write(w *record.Writer) error {
	if err := w.WriteU32(uint32(b.SourceColor)); err != nil {
		return err
	}
	if err := w.WriteU32(b.Unk2); err != nil {
		return err
	}
	if err := w.WriteU32(uint32(b.DestinationColor)); err != nil {
		return err
	}
	for _, f := range []uint32{b.Unk4, b.Unk5, b.Unk6, b.AlphaSampleToCoverage, b.Unk8, b.Unk9, b.Unk10} {
		if err := w.WriteU32(f); err != nil {
			return err
		}
	}
	return w.WriteZeros(8)
}

// RasterizerStateV15 holds the raw rasterizer fields used by 1.5-format
// materials, before the FillMode/CullMode enums were adopted.
type RasterizerStateV15 struct {
	Unk1, Unk2 uint32
}

const rasterizerStateV15Size = 4 + 4

func readRasterizerStateV15(r *record.Reader) (rs RasterizerStateV15, err error) {
	if rs.Unk1, err = r.ReadU32(); err != nil {
		return rs, err
	}
	rs.Unk2, err = r.ReadU32()
	return rs, err
}

func (rs RasterizerStateV15) write(w *record.Writer) error {
	if err := w.WriteU32(rs.Unk1); err != nil {
		return err
	}
	return w.WriteU32(rs.Unk2)
}

// RasterizerStateV16 holds 1.6-format rasterizer settings.
type RasterizerStateV16 struct {
	FillMode         FillMode
	CullMode         CullMode
	DepthBias        float32
	Unk4, Unk5       float32
	Unk6             uint32
}

const rasterizerStateV16Size = 4*6 + 4 // fields(24) + pad_after(4)

func readRasterizerStateV16(r *record.Reader) (rs RasterizerStateV16, err error) {
	v, err := r.ReadU32()
	if err != nil {
		return rs, err
	}
	rs.FillMode = FillMode(v)
	if v, err = r.ReadU32(); err != nil {
		return rs, err
	}
	rs.CullMode = CullMode(v)
	if rs.DepthBias, err = r.ReadF32(); err != nil {
		return rs, err
	}
	if rs.Unk4, err = r.ReadF32(); err != nil {
		return rs, err
	}
	if rs.Unk5, err = r.ReadF32(); err != nil {
		return rs, err
	}
	if rs.Unk6, err = r.ReadU32(); err != nil {
		return rs, err
	}
	r.Skip(4)
	return rs, nil
}

func (rs RasterizerStateV16) write(w *record.Writer) error {
	if err := w.WriteU32(uint32(rs.FillMode)); err != nil {
		return err
	}
	if err := w.WriteU32(uint32(rs.CullMode)); err != nil {
		return err
	}
	if err := w.WriteF32(rs.DepthBias); err != nil {
		return err
	}
	if err := w.WriteF32(rs.Unk4); err != nil {
		return err
	}
	if err := w.WriteF32(rs.Unk5); err != nil {
		return err
	}
	if err := w.WriteU32(rs.Unk6); err != nil {
		return err
	}
	return w.WriteZeros(4)
}

// Param is a tagged-union material value. Exactly one of the typed fields
// is meaningful, selected by Type.
type Param struct {
	Type            uint64
	Float           float32
	Boolean         uint32
	Vector4         Vector4
	Unk7Color       Color4f
	String          string
	Sampler         Sampler
	UvTransform     UvTransform
	BlendStateV15   BlendStateV15
	BlendStateV16   BlendStateV16
	RasterizerV15   RasterizerStateV15
	RasterizerV16   RasterizerStateV16
}

func readParam(r *record.Reader, minor uint16) (p Param, err error) {
	dataType, present, err := r.ReadEnum64(func(r *record.Reader, dataType uint64) error {
		switch dataType {
		case paramTypeFloat:
			p.Float, err = r.ReadF32()
		case paramTypeBoolean:
			p.Boolean, err = r.ReadU32()
		case paramTypeVector4:
			p.Vector4, err = readVector4(r)
		case paramTypeUnk7Color4f:
			p.Unk7Color, err = readColor4f(r)
		case paramTypeString:
			var s *string
			if s, err = r.ReadString(); err == nil && s != nil {
				p.String = *s
			}
		case paramTypeSampler:
			p.Sampler, err = readSampler(r)
		case paramTypeUvTransform:
			p.UvTransform, err = readUvTransform(r)
		case paramTypeBlendState:
			if minor == 5 {
				p.BlendStateV15, err = readBlendStateV15(r)
			} else {
				p.BlendStateV16, err = readBlendStateV16(r)
			}
		case paramTypeRasterizerState:
			if minor == 5 {
				p.RasterizerV15, err = readRasterizerStateV15(r)
			} else {
				p.RasterizerV16, err = readRasterizerStateV16(r)
			}
		default:
			return &record.InvalidDiscriminantError{Enum: "Param.data_type", Value: dataType}
		}
		return err
	})
	p.Type = dataType
	_ = present
	return p, err
}

func writeParam(w *record.Writer, p Param, minor uint16) error {
	return w.WriteEnum64(record.DefaultAlignment, p.Type, true, func(w *record.Writer) error {
		switch p.Type {
		case paramTypeFloat:
			return w.WriteF32(p.Float)
		case paramTypeBoolean:
			return w.WriteU32(p.Boolean)
		case paramTypeVector4:
			return p.Vector4.write(w)
		case paramTypeUnk7Color4f:
			return p.Unk7Color.write(w)
		case paramTypeString:
			s := p.String
			return w.WriteString(record.DefaultAlignment, &s)
		case paramTypeSampler:
			return p.Sampler.write(w)
		case paramTypeUvTransform:
			return p.UvTransform.write(w)
		case paramTypeBlendState:
			if minor == 5 {
				return p.BlendStateV15.write(w)
			}
			return p.BlendStateV16.write(w)
		case paramTypeRasterizerState:
			if minor == 5 {
				return p.RasterizerV15.write(w)
			}
			return p.RasterizerV16.write(w)
		default:
			return &record.InvalidDiscriminantError{Enum: "Param.data_type", Value: p.Type}
		}
	})
}

// MatlAttribute is a named material parameter.
type MatlAttribute struct {
	ParamID ParamId
	Param   Param
}

func readMatlAttribute(r *record.Reader, minor uint16) (a MatlAttribute, err error) {
	id, err := r.ReadU64()
	if err != nil {
		return a, err
	}
	a.ParamID = ParamId(id)
	a.Param, err = readParam(r, minor)
	return a, err
}

func writeMatlAttribute(w *record.Writer, a MatlAttribute, minor uint16) error {
	if err := w.WriteU64(uint64(a.ParamID)); err != nil {
		return err
	}
	return writeParam(w, a.Param, minor)
}

// MatlEntry is one named material: a shader assignment and the parameter
// values that configure it.
type MatlEntry struct {
	MaterialLabel string
	Attributes    []MatlAttribute
	ShaderLabel   string
}

func readMatlEntry(r *record.Reader, minor uint16) (m MatlEntry, err error) {
	label, err := r.ReadString()
	if err != nil {
		return m, err
	}
	if label != nil {
		m.MaterialLabel = *label
	}
	if _, err = r.ReadArray(func(r *record.Reader, i int) error {
		a, err := readMatlAttribute(r, minor)
		if err != nil {
			return err
		}
		m.Attributes = append(m.Attributes, a)
		return nil
	}); err != nil {
		return m, err
	}
	shader, err := r.ReadString()
	if err != nil {
		return m, err
	}
	if shader != nil {
		m.ShaderLabel = *shader
	}
	return m, nil
}

func writeMatlEntry(w *record.Writer, m MatlEntry, minor uint16) error {
	if err := w.WriteString(record.DefaultAlignment, &m.MaterialLabel); err != nil {
		return err
	}
	attributeSize := int64(8 + 16) // param_id(8) + SsbhEnum64 (offset+type, 16)
	if err := w.WriteArray(record.DefaultAlignment, len(m.Attributes), attributeSize, func(w *record.Writer, i int) error {
		return writeMatlAttribute(w, m.Attributes[i], minor)
	}); err != nil {
		return err
	}
	return w.WriteString(record.DefaultAlignment, &m.ShaderLabel)
}

// Matl is a collection of materials, each assigning parameter values to a
// named shader.
type Matl struct {
	Version Version
	Entries []MatlEntry
}

var matlSchema = schema.RecordSchema{
	Name: "Matl",
	Fields: []schema.Field{
		{Name: "entries", Kind: schema.KindArray, Size: 16},
	},
}

// SizeInBytes implements schema.Sized.
func (m *Matl) SizeInBytes() int64 {
	return matlSchema.SizeInBytes(schema.Version{Major: m.Version.Major, Minor: m.Version.Minor})
}

// ReadMatl reads a Matl record body for versions 1.5 or 1.6.
func ReadMatl(r *record.Reader, v Version) (*Matl, error) {
	if v.Major != 1 || (v.Minor != 5 && v.Minor != 6) {
		return nil, &record.InvalidDiscriminantError{Enum: "Matl.version", Value: uint64(v.Major)<<16 | uint64(v.Minor)}
	}
	m := &Matl{Version: v}
	_, err := r.ReadArray(func(r *record.Reader, i int) error {
		e, err := readMatlEntry(r, v.Minor)
		if err != nil {
			return err
		}
		m.Entries = append(m.Entries, e)
		return nil
	})
	return m, err
}

// WriteMatl writes a Matl record body.
func WriteMatl(w *record.Writer, m *Matl) error {
	sizeInBytes := m.SizeInBytes()
	start := w.Reserve(sizeInBytes)

	matlEntrySize := int64(32) // material_label(8) + attributes array(16) + shader_label(8)
	if err := w.WriteArray(record.DefaultAlignment, len(m.Entries), matlEntrySize, func(w *record.Writer, i int) error {
		return writeMatlEntry(w, m.Entries[i], m.Version.Minor)
	}); err != nil {
		return err
	}

	return w.Finish(start, sizeInBytes)
}
