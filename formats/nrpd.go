package formats

import (
	"github.com/ultimate-research/ssbh-go/internal/record"
	"github.com/ultimate-research/ssbh-go/internal/schema"
)

const (
	frameBufferTypeFramebuffer0  = 0
	frameBufferTypeFramebuffer1  = 1
	frameBufferTypeUniformBuffer = 2
	frameBufferTypeFramebuffer3  = 3
	frameBufferTypeFramebuffer4  = 4
)

// Framebuffer0 through Framebuffer4 and UniformBuffer are the render
// target descriptor variants an Nrpd frame buffer entry can hold.
type Framebuffer0 struct {
	Name          string
	Width, Height uint32
	Unk1          uint64
	Unk2, Unk3    uint32
}

func readFramebuffer0(r *record.Reader) (f Framebuffer0, err error) {
	name, err := r.ReadString()
	if err != nil {
		return f, err
	}
	if name != nil {
		f.Name = *name
	}
	if f.Width, err = r.ReadU32(); err != nil {
		return f, err
	}
	if f.Height, err = r.ReadU32(); err != nil {
		return f, err
	}
	if f.Unk1, err = r.ReadU64(); err != nil {
		return f, err
	}
	if f.Unk2, err = r.ReadU32(); err != nil {
		return f, err
	}
	f.Unk3, err = r.ReadU32()
	return f, err
}

func (f Framebuffer0) write(w *record.Writer) error {
	if err := w.WriteString(record.DefaultAlignment, &f.Name); err != nil {
		return err
	}
	if err := w.WriteU32(f.Width); err != nil {
		return err
	}
	if err := w.WriteU32(f.Height); err != nil {
		return err
	}
	if err := w.WriteU64(f.Unk1); err != nil {
		return err
	}
	if err := w.WriteU32(f.Unk2); err != nil {
		return err
	}
	return w.WriteU32(f.Unk3)
}

// UniformBuffer describes a GPU uniform buffer render resource.
type UniformBuffer struct {
	Name       string
	Unk1, Unk2 uint32
	Unk3       uint64
}

func readUniformBuffer(r *record.Reader) (u UniformBuffer, err error) {
	name, err := r.ReadString()
	if err != nil {
		return u, err
	}
	if name != nil {
		u.Name = *name
	}
	if u.Unk1, err = r.ReadU32(); err != nil {
		return u, err
	}
	if u.Unk2, err = r.ReadU32(); err != nil {
		return u, err
	}
	u.Unk3, err = r.ReadU64()
	return u, err
}

func (u UniformBuffer) write(w *record.Writer) error {
	if err := w.WriteString(record.DefaultAlignment, &u.Name); err != nil {
		return err
	}
	if err := w.WriteU32(u.Unk1); err != nil {
		return err
	}
	if err := w.WriteU32(u.Unk2); err != nil {
		return err
	}
	return w.WriteU64(u.Unk3)
}

// Framebuffer3 is a variant frame buffer descriptor with four trailing
// unknown u32 fields instead of Framebuffer0's u64+u32+u32 shape.
type Framebuffer3 struct {
	Name                            string
	Width, Height                   uint32
	Unk1, Unk2, Unk3, Unk4          uint32
}

func readFramebuffer3(r *record.Reader) (f Framebuffer3, err error) {
	name, err := r.ReadString()
	if err != nil {
		return f, err
	}
	if name != nil {
		f.Name = *name
	}
	fields := []*uint32{&f.Width, &f.Height, &f.Unk1, &f.Unk2, &f.Unk3, &f.Unk4}
	for _, field := range fields {
		if *field, err = r.ReadU32(); err != nil {
			return f, err
		}
	}
	return f, nil
}

func (f Framebuffer3) write(w *record.Writer) error {
	if err := w.WriteString(record.DefaultAlignment, &f.Name); err != nil {
		return err
	}
	for _, field := range []uint32{f.Width, f.Height, f.Unk1, f.Unk2, f.Unk3, f.Unk4} {
		if err := w.WriteU32(field); err != nil {
			return err
		}
	}
	return nil
}

// Framebuffer4 is the smallest frame buffer descriptor variant.
type Framebuffer4 struct {
	Name          string
	Width, Height uint32
	Unk3          uint64
}

func readFramebuffer4(r *record.Reader) (f Framebuffer4, err error) {
	name, err := r.ReadString()
	if err != nil {
		return f, err
	}
	if name != nil {
		f.Name = *name
	}
	if f.Width, err = r.ReadU32(); err != nil {
		return f, err
	}
	if f.Height, err = r.ReadU32(); err != nil {
		return f, err
	}
	f.Unk3, err = r.ReadU64()
	return f, err
}

func (f Framebuffer4) write(w *record.Writer) error {
	if err := w.WriteString(record.DefaultAlignment, &f.Name); err != nil {
		return err
	}
	if err := w.WriteU32(f.Width); err != nil {
		return err
	}
	if err := w.WriteU32(f.Height); err != nil {
		return err
	}
	return w.WriteU64(f.Unk3)
}

// FrameBuffer is a tagged-union render target descriptor.
type FrameBuffer struct {
	Type          uint64
	Framebuffer0  Framebuffer0
	Framebuffer1  Framebuffer0 // same shape as Framebuffer0 upstream
	UniformBuffer UniformBuffer
	Framebuffer3  Framebuffer3
	Framebuffer4  Framebuffer4
}

func readFrameBuffer(r *record.Reader) (f FrameBuffer, present bool, err error) {
	dataType, present, err := r.ReadEnum64(func(r *record.Reader, dataType uint64) error {
		var err error
		switch dataType {
		case frameBufferTypeFramebuffer0:
			f.Framebuffer0, err = readFramebuffer0(r)
		case frameBufferTypeFramebuffer1:
			f.Framebuffer1, err = readFramebuffer0(r)
		case frameBufferTypeUniformBuffer:
			f.UniformBuffer, err = readUniformBuffer(r)
		case frameBufferTypeFramebuffer3:
			f.Framebuffer3, err = readFramebuffer3(r)
		case frameBufferTypeFramebuffer4:
			f.Framebuffer4, err = readFramebuffer4(r)
		default:
			return &record.InvalidDiscriminantError{Enum: "FrameBuffer.data_type", Value: dataType}
		}
		return err
	})
	f.Type = dataType
	return f, present, err
}

func writeFrameBuffer(w *record.Writer, f FrameBuffer) error {
	return w.WriteEnum64(record.DefaultAlignment, f.Type, true, func(w *record.Writer) error {
		switch f.Type {
		case frameBufferTypeFramebuffer0:
			return f.Framebuffer0.write(w)
		case frameBufferTypeFramebuffer1:
			return f.Framebuffer1.write(w)
		case frameBufferTypeUniformBuffer:
			return f.UniformBuffer.write(w)
		case frameBufferTypeFramebuffer3:
			return f.Framebuffer3.write(w)
		case frameBufferTypeFramebuffer4:
			return f.Framebuffer4.write(w)
		default:
			return &record.InvalidDiscriminantError{Enum: "FrameBuffer.data_type", Value: f.Type}
		}
	})
}

const (
	stateTypeSampler         = 0
	stateTypeRasterizerState = 1
	stateTypeDepthState      = 2
	stateTypeBlendState      = 3
)

// NrpdSampler pairs a name with a full Matl-style Sampler config.
type NrpdSampler struct {
	Name  string
	Data  Sampler
	Unk13 uint64
}

func readNrpdSampler(r *record.Reader) (s NrpdSampler, err error) {
	name, err := r.ReadString()
	if err != nil {
		return s, err
	}
	if name != nil {
		s.Name = *name
	}
	if s.Data, err = readSampler(r); err != nil {
		return s, err
	}
	s.Unk13, err = r.ReadU64()
	return s, err
}

func (s NrpdSampler) write(w *record.Writer) error {
	if err := w.WriteString(record.DefaultAlignment, &s.Name); err != nil {
		return err
	}
	if err := s.Data.write(w); err != nil {
		return err
	}
	return w.WriteU64(s.Unk13)
}

// NrpdRasterizerState pairs a name with rasterizer settings (a variant
// shape of Matl's RasterizerStateV16, without the trailing padding).
type NrpdRasterizerState struct {
	Name             string
	FillMode         FillMode
	CullMode         CullMode
	DepthBias        float32
	Unk4, Unk5       float32
	Unk6             uint32
}

func readNrpdRasterizerState(r *record.Reader) (rs NrpdRasterizerState, err error) {
	name, err := r.ReadString()
	if err != nil {
		return rs, err
	}
	if name != nil {
		rs.Name = *name
	}
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
	rs.Unk6, err = r.ReadU32()
	return rs, err
}

func (rs NrpdRasterizerState) write(w *record.Writer) error {
	if err := w.WriteString(record.DefaultAlignment, &rs.Name); err != nil {
		return err
	}
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
	return w.WriteU32(rs.Unk6)
}

// NrpdBlendState pairs a name with a variant shape of Matl's
// BlendStateV16, without the trailing padding.
type NrpdBlendState struct {
	Name                  string
	SourceColor           BlendFactor
	Unk2                  uint32
	DestinationColor      BlendFactor
	Unk4, Unk5, Unk6      uint32
	AlphaSampleToCoverage uint32
	Unk8, Unk9, Unk10     uint32
}

func readNrpdBlendState(r *record.Reader) (b NrpdBlendState, err error) {
	name, err := r.ReadString()
	if err != nil {
		return b, err
	}
	if name != nil {
		b.Name = *name
	}
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
	return b, nil
}

func (b NrpdBlendState) write(w *record.Writer) error {
	if err := w.WriteString(record.DefaultAlignment, &b.Name); err != nil {
		return err
	}
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
	return nil
}

// DepthState pairs a name with depth/stencil test settings. Only a single
// instance of this variant has been observed in practice.
type DepthState struct {
	Name                                                        string
	Unk2, Unk3, Unk4, Unk5, Unk6, Unk7                          uint32
	Unk8, Unk9, Unk10, Unk11                                    uint64
}

func readDepthState(r *record.Reader) (d DepthState, err error) {
	name, err := r.ReadString()
	if err != nil {
		return d, err
	}
	if name != nil {
		d.Name = *name
	}
	u32s := []*uint32{&d.Unk2, &d.Unk3, &d.Unk4, &d.Unk5, &d.Unk6, &d.Unk7}
	for _, f := range u32s {
		if *f, err = r.ReadU32(); err != nil {
			return d, err
		}
	}
	u64s := []*uint64{&d.Unk8, &d.Unk9, &d.Unk10, &d.Unk11}
	for _, f := range u64s {
		if *f, err = r.ReadU64(); err != nil {
			return d, err
		}
	}
	return d, nil
}

func (d DepthState) write(w *record.Writer) error {
	if err := w.WriteString(record.DefaultAlignment, &d.Name); err != nil {
		return err
	}
	for _, f := range []uint32{d.Unk2, d.Unk3, d.Unk4, d.Unk5, d.Unk6, d.Unk7} {
		if err := w.WriteU32(f); err != nil {
			return err
		}
	}
	for _, f := range []uint64{d.Unk8, d.Unk9, d.Unk10, d.Unk11} {
		if err := w.WriteU64(f); err != nil {
			return err
		}
	}
	return nil
}

// State is a tagged-union GPU pipeline state descriptor.
type State struct {
	Type            uint64
	Sampler         NrpdSampler
	RasterizerState NrpdRasterizerState
	DepthState      DepthState
	BlendState      NrpdBlendState
}

func readState(r *record.Reader) (s State, present bool, err error) {
	dataType, present, err := r.ReadEnum64(func(r *record.Reader, dataType uint64) error {
		var err error
		switch dataType {
		case stateTypeSampler:
			s.Sampler, err = readNrpdSampler(r)
		case stateTypeRasterizerState:
			s.RasterizerState, err = readNrpdRasterizerState(r)
		case stateTypeDepthState:
			s.DepthState, err = readDepthState(r)
		case stateTypeBlendState:
			s.BlendState, err = readNrpdBlendState(r)
		default:
			return &record.InvalidDiscriminantError{Enum: "State.data_type", Value: dataType}
		}
		return err
	})
	s.Type = dataType
	return s, present, err
}

func writeState(w *record.Writer, s State) error {
	return w.WriteEnum64(record.DefaultAlignment, s.Type, true, func(w *record.Writer) error {
		switch s.Type {
		case stateTypeSampler:
			return s.Sampler.write(w)
		case stateTypeRasterizerState:
			return s.RasterizerState.write(w)
		case stateTypeDepthState:
			return s.DepthState.write(w)
		case stateTypeBlendState:
			return s.BlendState.write(w)
		default:
			return &record.InvalidDiscriminantError{Enum: "State.data_type", Value: s.Type}
		}
	})
}

// StringPair is a plain pair of SsbhStrings, shared by several
// RenderPassData variants and the unk_string_list1 tail.
type StringPair struct {
	Item1, Item2 string
}

func readStringPair(r *record.Reader) (p StringPair, err error) {
	a, err := r.ReadString()
	if err != nil {
		return p, err
	}
	if a != nil {
		p.Item1 = *a
	}
	b, err := r.ReadString()
	if err != nil {
		return p, err
	}
	if b != nil {
		p.Item2 = *b
	}
	return p, nil
}

func (p StringPair) write(w *record.Writer) error {
	if err := w.WriteString(record.DefaultAlignment, &p.Item1); err != nil {
		return err
	}
	return w.WriteString(record.DefaultAlignment, &p.Item2)
}

// UnkItem3 is a name/value string pair nested inside NrpdUnkItem1.
type UnkItem3 struct {
	Name, Value string
}

func readUnkItem3(r *record.Reader) (u UnkItem3, err error) {
	p, err := readStringPair(r)
	return UnkItem3{Name: p.Item1, Value: p.Item2}, err
}

func (u UnkItem3) write(w *record.Writer) error {
	return StringPair{Item1: u.Name, Item2: u.Value}.write(w)
}

// NrpdUnkItem1 names an unclassified list of name/value pairs.
type NrpdUnkItem1 struct {
	Unk1 string
	Unk2 []UnkItem3
}

func readNrpdUnkItem1(r *record.Reader) (u NrpdUnkItem1, err error) {
	name, err := r.ReadString()
	if err != nil {
		return u, err
	}
	if name != nil {
		u.Unk1 = *name
	}
	_, err = r.ReadArray(func(r *record.Reader, i int) error {
		item, err := readUnkItem3(r)
		if err != nil {
			return err
		}
		u.Unk2 = append(u.Unk2, item)
		return nil
	})
	return u, err
}

func writeNrpdUnkItem1(w *record.Writer, u NrpdUnkItem1) error {
	if err := w.WriteString(record.DefaultAlignment, &u.Unk1); err != nil {
		return err
	}
	return w.WriteArray(record.DefaultAlignment, len(u.Unk2), 16, func(w *record.Writer, i int) error {
		return u.Unk2[i].write(w)
	})
}

// NrpdUnkItem2 wraps an optional StringPair pointer alongside an unknown u64.
type NrpdUnkItem2 struct {
	Unk1     *StringPair
	Unk2     uint64
}

func readNrpdUnkItem2(r *record.Reader) (u NrpdUnkItem2, err error) {
	present, err := r.ReadPointer(func(r *record.Reader) error {
		p, err := readStringPair(r)
		if err != nil {
			return err
		}
		u.Unk1 = &p
		return nil
	})
	if err != nil {
		return u, err
	}
	if !present {
		u.Unk1 = nil
	}
	u.Unk2, err = r.ReadU64()
	return u, err
}

func writeNrpdUnkItem2(w *record.Writer, u NrpdUnkItem2) error {
	if err := w.WritePointer(record.DefaultAlignment, u.Unk1 != nil, func(w *record.Writer) error {
		return u.Unk1.write(w)
	}); err != nil {
		return err
	}
	return w.WriteU64(u.Unk2)
}

const (
	renderPassDataTypeFramebufferRtp          = 0
	renderPassDataTypePassUnk1                = 1
	renderPassDataTypeUnkTexture1              = 2
	renderPassDataTypeUnkLight                 = 3
	renderPassDataTypeUnk8                     = 8
	renderPassDataTypeColorClear              = 9
	renderPassDataTypeDepthStencilClear        = 10
	renderPassDataTypeViewport                = 12
	renderPassDataTypeSampler13                = 13
	renderPassDataTypeBlendState               = 14
	renderPassDataTypeRasterizerState           = 15
	renderPassDataTypeDepthStencilState         = 16
	renderPassDataTypeFramebufferRenderTarget   = 17
	renderPassDataTypeFramebufferDepthStencil   = 18
	renderPassDataTypeUnkTexture2               = 19
)

// RenderPassData0 is discriminant 0's payload: a best-guess framebuffer
// render-target-pair descriptor (two names plus an unknown u64).
type RenderPassData0 struct {
	Unk1, Unk2 string
	Unk3       uint64
}

func readRenderPassData0(r *record.Reader) (d RenderPassData0, err error) {
	a, err := r.ReadString()
	if err != nil {
		return d, err
	}
	if a != nil {
		d.Unk1 = *a
	}
	b, err := r.ReadString()
	if err != nil {
		return d, err
	}
	if b != nil {
		d.Unk2 = *b
	}
	d.Unk3, err = r.ReadU64()
	return d, err
}

func (d RenderPassData0) write(w *record.Writer) error {
	if err := w.WriteString(record.DefaultAlignment, &d.Unk1); err != nil {
		return err
	}
	if err := w.WriteString(record.DefaultAlignment, &d.Unk2); err != nil {
		return err
	}
	return w.WriteU64(d.Unk3)
}

// Unk8Data is the pointee of the two RelPtr64<u64>-shaped RenderPassData
// variants' unk3/unk5 fields when they instead point at a pair of u32s
// (discriminant 3 only; 2/8/13 point at a bare u64).
type Unk8Data struct {
	Unk1, Unk2 uint32
}

func readUnk8Data(r *record.Reader) (u Unk8Data, err error) {
	if u.Unk1, err = r.ReadU32(); err != nil {
		return u, err
	}
	u.Unk2, err = r.ReadU32()
	return u, err
}

func (u Unk8Data) write(w *record.Writer) error {
	if err := w.WriteU32(u.Unk1); err != nil {
		return err
	}
	return w.WriteU32(u.Unk2)
}

// RenderPassDataU64PtrPair is the shared shape of discriminants 2, 8, and
// 13: two names followed by two nullable-pointer-to-u64/inline-u64 pairs.
type RenderPassDataU64PtrPair struct {
	Unk1, Unk2 string
	Unk3       *uint64
	Unk4       uint64
	Unk5       *uint64
	Unk6       uint64
}

func readRenderPassDataU64PtrPair(r *record.Reader) (d RenderPassDataU64PtrPair, err error) {
	a, err := r.ReadString()
	if err != nil {
		return d, err
	}
	if a != nil {
		d.Unk1 = *a
	}
	b, err := r.ReadString()
	if err != nil {
		return d, err
	}
	if b != nil {
		d.Unk2 = *b
	}
	present, err := r.ReadPointer(func(r *record.Reader) error {
		v, err := r.ReadU64()
		if err != nil {
			return err
		}
		d.Unk3 = &v
		return nil
	})
	if err != nil {
		return d, err
	}
	if !present {
		d.Unk3 = nil
	}
	if d.Unk4, err = r.ReadU64(); err != nil {
		return d, err
	}
	present, err = r.ReadPointer(func(r *record.Reader) error {
		v, err := r.ReadU64()
		if err != nil {
			return err
		}
		d.Unk5 = &v
		return nil
	})
	if err != nil {
		return d, err
	}
	if !present {
		d.Unk5 = nil
	}
	d.Unk6, err = r.ReadU64()
	return d, err
}

func (d RenderPassDataU64PtrPair) write(w *record.Writer) error {
	if err := w.WriteString(record.DefaultAlignment, &d.Unk1); err != nil {
		return err
	}
	if err := w.WriteString(record.DefaultAlignment, &d.Unk2); err != nil {
		return err
	}
	if err := w.WritePointer(record.DefaultAlignment, d.Unk3 != nil, func(w *record.Writer) error {
		return w.WriteU64(*d.Unk3)
	}); err != nil {
		return err
	}
	if err := w.WriteU64(d.Unk4); err != nil {
		return err
	}
	if err := w.WritePointer(record.DefaultAlignment, d.Unk5 != nil, func(w *record.Writer) error {
		return w.WriteU64(*d.Unk5)
	}); err != nil {
		return err
	}
	return w.WriteU64(d.Unk6)
}

// RenderPassDataUnk8DataPair is discriminant 3's payload: the same
// two-names-plus-two-pointer-pairs shape as RenderPassDataU64PtrPair, but
// pointing at Unk8Data pairs instead of bare u64s.
type RenderPassDataUnk8DataPair struct {
	Unk1, Unk2 string
	Unk3       *Unk8Data
	Unk4       uint64
	Unk5       *Unk8Data
	Unk6       uint64
}

func readRenderPassDataUnk8DataPair(r *record.Reader) (d RenderPassDataUnk8DataPair, err error) {
	a, err := r.ReadString()
	if err != nil {
		return d, err
	}
	if a != nil {
		d.Unk1 = *a
	}
	b, err := r.ReadString()
	if err != nil {
		return d, err
	}
	if b != nil {
		d.Unk2 = *b
	}
	present, err := r.ReadPointer(func(r *record.Reader) error {
		v, err := readUnk8Data(r)
		if err != nil {
			return err
		}
		d.Unk3 = &v
		return nil
	})
	if err != nil {
		return d, err
	}
	if !present {
		d.Unk3 = nil
	}
	if d.Unk4, err = r.ReadU64(); err != nil {
		return d, err
	}
	present, err = r.ReadPointer(func(r *record.Reader) error {
		v, err := readUnk8Data(r)
		if err != nil {
			return err
		}
		d.Unk5 = &v
		return nil
	})
	if err != nil {
		return d, err
	}
	if !present {
		d.Unk5 = nil
	}
	d.Unk6, err = r.ReadU64()
	return d, err
}

func (d RenderPassDataUnk8DataPair) write(w *record.Writer) error {
	if err := w.WriteString(record.DefaultAlignment, &d.Unk1); err != nil {
		return err
	}
	if err := w.WriteString(record.DefaultAlignment, &d.Unk2); err != nil {
		return err
	}
	if err := w.WritePointer(record.DefaultAlignment, d.Unk3 != nil, func(w *record.Writer) error {
		return d.Unk3.write(w)
	}); err != nil {
		return err
	}
	if err := w.WriteU64(d.Unk4); err != nil {
		return err
	}
	if err := w.WritePointer(record.DefaultAlignment, d.Unk5 != nil, func(w *record.Writer) error {
		return d.Unk5.write(w)
	}); err != nil {
		return err
	}
	return w.WriteU64(d.Unk6)
}

// RenderPassData19 is discriminant 19's payload: a name and an unknown u64.
type RenderPassData19 struct {
	Unk1 string
	Unk2 uint64
}

func readRenderPassData19(r *record.Reader) (d RenderPassData19, err error) {
	a, err := r.ReadString()
	if err != nil {
		return d, err
	}
	if a != nil {
		d.Unk1 = *a
	}
	d.Unk2, err = r.ReadU64()
	return d, err
}

func (d RenderPassData19) write(w *record.Writer) error {
	if err := w.WriteString(record.DefaultAlignment, &d.Unk1); err != nil {
		return err
	}
	return w.WriteU64(d.Unk2)
}

// ColorClear names a render target and the color it is cleared to.
type ColorClear struct {
	Name  string
	Color Color4f
	Unk1  uint64
}

func readColorClear(r *record.Reader) (c ColorClear, err error) {
	name, err := r.ReadString()
	if err != nil {
		return c, err
	}
	if name != nil {
		c.Name = *name
	}
	if c.Color, err = readColor4f(r); err != nil {
		return c, err
	}
	c.Unk1, err = r.ReadU64()
	return c, err
}

func (c ColorClear) write(w *record.Writer) error {
	if err := w.WriteString(record.DefaultAlignment, &c.Name); err != nil {
		return err
	}
	if err := c.Color.write(w); err != nil {
		return err
	}
	return w.WriteU64(c.Unk1)
}

// DepthStencilClear names a render target and its clear depth/stencil.
type DepthStencilClear struct {
	Name    string
	Depth   float32
	Stencil uint32
}

func readDepthStencilClear(r *record.Reader) (d DepthStencilClear, err error) {
	name, err := r.ReadString()
	if err != nil {
		return d, err
	}
	if name != nil {
		d.Name = *name
	}
	if d.Depth, err = r.ReadF32(); err != nil {
		return d, err
	}
	d.Stencil, err = r.ReadU32()
	return d, err
}

func (d DepthStencilClear) write(w *record.Writer) error {
	if err := w.WriteString(record.DefaultAlignment, &d.Name); err != nil {
		return err
	}
	if err := w.WriteF32(d.Depth); err != nil {
		return err
	}
	return w.WriteU32(d.Stencil)
}

// Viewport describes a render pass's screen-space viewport rectangle.
type Viewport struct {
	Name                 string
	Unk2                 uint64
	Width, Height        float32
	UnkMin, UnkMax        float32
	Unk4                 uint64
}

func readViewport(r *record.Reader) (v Viewport, err error) {
	name, err := r.ReadString()
	if err != nil {
		return v, err
	}
	if name != nil {
		v.Name = *name
	}
	if v.Unk2, err = r.ReadU64(); err != nil {
		return v, err
	}
	if v.Width, err = r.ReadF32(); err != nil {
		return v, err
	}
	if v.Height, err = r.ReadF32(); err != nil {
		return v, err
	}
	if v.UnkMin, err = r.ReadF32(); err != nil {
		return v, err
	}
	if v.UnkMax, err = r.ReadF32(); err != nil {
		return v, err
	}
	v.Unk4, err = r.ReadU64()
	return v, err
}

func (v Viewport) write(w *record.Writer) error {
	if err := w.WriteString(record.DefaultAlignment, &v.Name); err != nil {
		return err
	}
	if err := w.WriteU64(v.Unk2); err != nil {
		return err
	}
	if err := w.WriteF32(v.Width); err != nil {
		return err
	}
	if err := w.WriteF32(v.Height); err != nil {
		return err
	}
	if err := w.WriteF32(v.UnkMin); err != nil {
		return err
	}
	if err := w.WriteF32(v.UnkMax); err != nil {
		return err
	}
	return w.WriteU64(v.Unk4)
}

// RenderPassData is a tagged-union render pass step. Variant names beyond
// the well-understood ones (ColorClear, DepthStencilClear, Viewport, and
// the two framebuffer-name variants) are best guesses based on their
// string payloads upstream, but every one of the 14 discriminants the
// game actually writes is modeled and round-trips byte-for-byte.
type RenderPassData struct {
	Type              uint64
	FramebufferRtp    RenderPassData0            // FramebufferRtp(0)
	PassUnk1          StringPair                 // PassUnk1(1)
	UnkTexture1       RenderPassDataU64PtrPair   // UnkTexture1(2)
	UnkLight          RenderPassDataUnk8DataPair // UnkLight(3)
	Unk8              RenderPassDataU64PtrPair   // Unk8(8)
	ColorClear        ColorClear                 // ColorClear(9)
	DepthStencilClear DepthStencilClear          // DepthStencilClear(10)
	Viewport          Viewport                   // Viewport(12)
	Sampler13         RenderPassDataU64PtrPair   // Sampler(13)
	StatePair         StringPair                 // BlendState(14), RasterizerState(15), DepthStencilState(16)
	FramebufferName   string                     // FramebufferRenderTarget(17), FramebufferDepthStencil(18)
	UnkTexture2       RenderPassData19           // UnkTexture2(19)
}

func readRenderPassData(r *record.Reader) (rp RenderPassData, present bool, err error) {
	dataType, present, err := r.ReadEnum64(func(r *record.Reader, dataType uint64) error {
		var err error
		switch dataType {
		case renderPassDataTypeFramebufferRtp:
			rp.FramebufferRtp, err = readRenderPassData0(r)
		case renderPassDataTypePassUnk1:
			rp.PassUnk1, err = readStringPair(r)
		case renderPassDataTypeUnkTexture1:
			rp.UnkTexture1, err = readRenderPassDataU64PtrPair(r)
		case renderPassDataTypeUnkLight:
			rp.UnkLight, err = readRenderPassDataUnk8DataPair(r)
		case renderPassDataTypeUnk8:
			rp.Unk8, err = readRenderPassDataU64PtrPair(r)
		case renderPassDataTypeColorClear:
			rp.ColorClear, err = readColorClear(r)
		case renderPassDataTypeDepthStencilClear:
			rp.DepthStencilClear, err = readDepthStencilClear(r)
		case renderPassDataTypeViewport:
			rp.Viewport, err = readViewport(r)
		case renderPassDataTypeSampler13:
			rp.Sampler13, err = readRenderPassDataU64PtrPair(r)
		case renderPassDataTypeBlendState, renderPassDataTypeRasterizerState, renderPassDataTypeDepthStencilState:
			rp.StatePair, err = readStringPair(r)
		case renderPassDataTypeFramebufferRenderTarget, renderPassDataTypeFramebufferDepthStencil:
			var s *string
			s, err = r.ReadString()
			if err == nil && s != nil {
				rp.FramebufferName = *s
			}
		case renderPassDataTypeUnkTexture2:
			rp.UnkTexture2, err = readRenderPassData19(r)
		default:
			return &record.InvalidDiscriminantError{Enum: "RenderPassData.data_type", Value: dataType}
		}
		return err
	})
	rp.Type = dataType
	return rp, present, err
}

func writeRenderPassData(w *record.Writer, rp RenderPassData) error {
	return w.WriteEnum64(record.DefaultAlignment, rp.Type, true, func(w *record.Writer) error {
		switch rp.Type {
		case renderPassDataTypeFramebufferRtp:
			return rp.FramebufferRtp.write(w)
		case renderPassDataTypePassUnk1:
			return rp.PassUnk1.write(w)
		case renderPassDataTypeUnkTexture1:
			return rp.UnkTexture1.write(w)
		case renderPassDataTypeUnkLight:
			return rp.UnkLight.write(w)
		case renderPassDataTypeUnk8:
			return rp.Unk8.write(w)
		case renderPassDataTypeColorClear:
			return rp.ColorClear.write(w)
		case renderPassDataTypeDepthStencilClear:
			return rp.DepthStencilClear.write(w)
		case renderPassDataTypeViewport:
			return rp.Viewport.write(w)
		case renderPassDataTypeSampler13:
			return rp.Sampler13.write(w)
		case renderPassDataTypeBlendState, renderPassDataTypeRasterizerState, renderPassDataTypeDepthStencilState:
			return rp.StatePair.write(w)
		case renderPassDataTypeFramebufferRenderTarget, renderPassDataTypeFramebufferDepthStencil:
			return w.WriteString(record.DefaultAlignment, &rp.FramebufferName)
		case renderPassDataTypeUnkTexture2:
			return rp.UnkTexture2.write(w)
		default:
			return &record.InvalidDiscriminantError{Enum: "RenderPassData.data_type", Value: rp.Type}
		}
	})
}

// RenderPassContainer names one render pass and its ordered steps.
type RenderPassContainer struct {
	Name string
	Unk1 []RenderPassData
	Unk2 []RenderPassData
	// Unk3 is a tagged union: type 0 carries no payload, any other type
	// carries a StringPair-like unk descriptor. Only the discriminant is
	// preserved when the payload isn't one of the two known shapes.
	Unk3Type uint64
	Unk3     Unk3Data
}

// Unk3Data is RenderPassContainer's trailing tagged-union payload for the
// non-empty discriminant (observed value 3).
type Unk3Data struct {
	Unk1, Unk2         string
	Unk3, Unk4, Unk5, Unk6 float32
}

func readUnk3Data(r *record.Reader) (u Unk3Data, err error) {
	a, err := r.ReadString()
	if err != nil {
		return u, err
	}
	if a != nil {
		u.Unk1 = *a
	}
	b, err := r.ReadString()
	if err != nil {
		return u, err
	}
	if b != nil {
		u.Unk2 = *b
	}
	fields := []*float32{&u.Unk3, &u.Unk4, &u.Unk5, &u.Unk6}
	for _, f := range fields {
		if *f, err = r.ReadF32(); err != nil {
			return u, err
		}
	}
	return u, nil
}

func (u Unk3Data) write(w *record.Writer) error {
	if err := w.WriteString(record.DefaultAlignment, &u.Unk1); err != nil {
		return err
	}
	if err := w.WriteString(record.DefaultAlignment, &u.Unk2); err != nil {
		return err
	}
	for _, f := range []float32{u.Unk3, u.Unk4, u.Unk5, u.Unk6} {
		if err := w.WriteF32(f); err != nil {
			return err
		}
	}
	return nil
}

func readRenderPassContainer(r *record.Reader) (c RenderPassContainer, err error) {
	name, err := r.ReadString()
	if err != nil {
		return c, err
	}
	if name != nil {
		c.Name = *name
	}
	if _, err = r.ReadArray(func(r *record.Reader, i int) error {
		d, _, err := readRenderPassData(r)
		if err != nil {
			return err
		}
		c.Unk1 = append(c.Unk1, d)
		return nil
	}); err != nil {
		return c, err
	}
	if _, err = r.ReadArray(func(r *record.Reader, i int) error {
		d, _, err := readRenderPassData(r)
		if err != nil {
			return err
		}
		c.Unk2 = append(c.Unk2, d)
		return nil
	}); err != nil {
		return c, err
	}
	dataType, _, err := r.ReadEnum64(func(r *record.Reader, dataType uint64) error {
		if dataType == 3 {
			var err error
			c.Unk3, err = readUnk3Data(r)
			return err
		}
		return nil
	})
	if err != nil {
		return c, err
	}
	c.Unk3Type = dataType
	r.Skip(8) // pad_after(8) following the trailing SsbhEnum64
	return c, nil
}

func writeRenderPassContainer(w *record.Writer, c RenderPassContainer) error {
	if err := w.WriteString(record.DefaultAlignment, &c.Name); err != nil {
		return err
	}
	renderPassDataSize := int64(16) // SsbhEnum64 (offset+type)
	if err := w.WriteArray(record.DefaultAlignment, len(c.Unk1), renderPassDataSize, func(w *record.Writer, i int) error {
		return writeRenderPassData(w, c.Unk1[i])
	}); err != nil {
		return err
	}
	if err := w.WriteArray(record.DefaultAlignment, len(c.Unk2), renderPassDataSize, func(w *record.Writer, i int) error {
		return writeRenderPassData(w, c.Unk2[i])
	}); err != nil {
		return err
	}
	if err := w.WriteEnum64(record.DefaultAlignment, c.Unk3Type, c.Unk3Type == 3, func(w *record.Writer) error {
		return c.Unk3.write(w)
	}); err != nil {
		return err
	}
	return w.WriteZeros(8)
}

// Nrpd describes a set of GPU render passes: frame buffers, pipeline
// states, and the ordered render pass steps that reference them.
type Nrpd struct {
	Version          Version
	FrameBuffers     []FrameBuffer
	StateContainers  []State
	RenderPasses     []RenderPassContainer
	UnkStringList1   []StringPair
	UnkStringList2   []NrpdUnkItem2
	UnkList          []NrpdUnkItem1
	UnkWidth1        uint32
	UnkHeight1       uint32
	Unk3, Unk4, Unk5 uint32
	Unk6, Unk7, Unk8 uint32
	Unk9             string
	UnkWidth2        uint32
	UnkHeight2       uint32
	Unk10            uint64
}

var nrpdSchema = schema.RecordSchema{
	Name: "Nrpd",
	Fields: []schema.Field{
		{Name: "frame_buffers", Kind: schema.KindArray, Size: 16},
		{Name: "state_containers", Kind: schema.KindArray, Size: 16},
		{Name: "render_passes", Kind: schema.KindArray, Size: 16},
		{Name: "unk_string_list1", Kind: schema.KindArray, Size: 16},
		{Name: "unk_string_list2", Kind: schema.KindArray, Size: 16},
		{Name: "unk_list", Kind: schema.KindArray, Size: 16},
		{Name: "unk_width1", Kind: schema.KindInline, Size: 4},
		{Name: "unk_height1", Kind: schema.KindInline, Size: 4},
		{Name: "unk3", Kind: schema.KindInline, Size: 4},
		{Name: "unk4", Kind: schema.KindInline, Size: 4},
		{Name: "unk5", Kind: schema.KindInline, Size: 4},
		{Name: "unk6", Kind: schema.KindInline, Size: 4},
		{Name: "unk7", Kind: schema.KindInline, Size: 4},
		{Name: "unk8", Kind: schema.KindInline, Size: 4},
		{Name: "unk9", Kind: schema.KindString, Size: 8},
		{Name: "unk_width2", Kind: schema.KindInline, Size: 4},
		{Name: "unk_height2", Kind: schema.KindInline, Size: 4},
		{Name: "unk10", Kind: schema.KindInline, Size: 8},
	},
}

// SizeInBytes implements schema.Sized.
func (n *Nrpd) SizeInBytes() int64 {
	return nrpdSchema.SizeInBytes(schema.Version{Major: n.Version.Major, Minor: n.Version.Minor})
}

// ReadNrpd reads an Nrpd record body for version 1.6.
func ReadNrpd(r *record.Reader, v Version) (*Nrpd, error) {
	if v.Major != 1 || v.Minor != 6 {
		return nil, &record.InvalidDiscriminantError{Enum: "Nrpd.version", Value: uint64(v.Major)<<16 | uint64(v.Minor)}
	}
	n := &Nrpd{Version: v}

	if _, err := r.ReadArray(func(r *record.Reader, i int) error {
		f, _, err := readFrameBuffer(r)
		if err != nil {
			return err
		}
		n.FrameBuffers = append(n.FrameBuffers, f)
		return nil
	}); err != nil {
		return nil, err
	}
	if _, err := r.ReadArray(func(r *record.Reader, i int) error {
		s, _, err := readState(r)
		if err != nil {
			return err
		}
		n.StateContainers = append(n.StateContainers, s)
		return nil
	}); err != nil {
		return nil, err
	}
	if _, err := r.ReadArray(func(r *record.Reader, i int) error {
		c, err := readRenderPassContainer(r)
		if err != nil {
			return err
		}
		n.RenderPasses = append(n.RenderPasses, c)
		return nil
	}); err != nil {
		return nil, err
	}
	if _, err := r.ReadArray(func(r *record.Reader, i int) error {
		p, err := readStringPair(r)
		if err != nil {
			return err
		}
		n.UnkStringList1 = append(n.UnkStringList1, p)
		return nil
	}); err != nil {
		return nil, err
	}
	if _, err := r.ReadArray(func(r *record.Reader, i int) error {
		u, err := readNrpdUnkItem2(r)
		if err != nil {
			return err
		}
		n.UnkStringList2 = append(n.UnkStringList2, u)
		return nil
	}); err != nil {
		return nil, err
	}
	if _, err := r.ReadArray(func(r *record.Reader, i int) error {
		u, err := readNrpdUnkItem1(r)
		if err != nil {
			return err
		}
		n.UnkList = append(n.UnkList, u)
		return nil
	}); err != nil {
		return nil, err
	}

	var err error
	u32s := []*uint32{&n.UnkWidth1, &n.UnkHeight1, &n.Unk3, &n.Unk4, &n.Unk5, &n.Unk6, &n.Unk7, &n.Unk8}
	for _, f := range u32s {
		if *f, err = r.ReadU32(); err != nil {
			return nil, err
		}
	}
	name, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	if name != nil {
		n.Unk9 = *name
	}
	if n.UnkWidth2, err = r.ReadU32(); err != nil {
		return nil, err
	}
	if n.UnkHeight2, err = r.ReadU32(); err != nil {
		return nil, err
	}
	n.Unk10, err = r.ReadU64()
	return n, err
}

// WriteNrpd writes an Nrpd record body.
func WriteNrpd(w *record.Writer, n *Nrpd) error {
	sizeInBytes := n.SizeInBytes()
	start := w.Reserve(sizeInBytes)

	if err := w.WriteArray(record.DefaultAlignment, len(n.FrameBuffers), 16, func(w *record.Writer, i int) error {
		return writeFrameBuffer(w, n.FrameBuffers[i])
	}); err != nil {
		return err
	}
	if err := w.WriteArray(record.DefaultAlignment, len(n.StateContainers), 16, func(w *record.Writer, i int) error {
		return writeState(w, n.StateContainers[i])
	}); err != nil {
		return err
	}
	renderPassContainerSize := int64(8 + 16 + 16 + 16 + 8) // name + unk1 + unk2 + unk3(enum64) + pad_after(8)
	if err := w.WriteArray(record.DefaultAlignment, len(n.RenderPasses), renderPassContainerSize, func(w *record.Writer, i int) error {
		return writeRenderPassContainer(w, n.RenderPasses[i])
	}); err != nil {
		return err
	}
	if err := w.WriteArray(record.DefaultAlignment, len(n.UnkStringList1), 16, func(w *record.Writer, i int) error {
		return n.UnkStringList1[i].write(w)
	}); err != nil {
		return err
	}
	if err := w.WriteArray(record.DefaultAlignment, len(n.UnkStringList2), 16, func(w *record.Writer, i int) error {
		return writeNrpdUnkItem2(w, n.UnkStringList2[i])
	}); err != nil {
		return err
	}
	if err := w.WriteArray(record.DefaultAlignment, len(n.UnkList), 24, func(w *record.Writer, i int) error {
		return writeNrpdUnkItem1(w, n.UnkList[i])
	}); err != nil {
		return err
	}

	for _, f := range []uint32{n.UnkWidth1, n.UnkHeight1, n.Unk3, n.Unk4, n.Unk5, n.Unk6, n.Unk7, n.Unk8} {
		if err := w.WriteU32(f); err != nil {
			return err
		}
	}
	if err := w.WriteString(record.DefaultAlignment, &n.Unk9); err != nil {
		return err
	}
	if err := w.WriteU32(n.UnkWidth2); err != nil {
		return err
	}
	if err := w.WriteU32(n.UnkHeight2); err != nil {
		return err
	}
	if err := w.WriteU64(n.Unk10); err != nil {
		return err
	}

	return w.Finish(start, sizeInBytes)
}
