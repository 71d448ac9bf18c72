// Package matldata converts between the wire-level Matl record and
// MatlData, which groups a material's parameters by type instead of
// carrying one flat, dynamically-typed attribute list. Reading accepts
// both 1.5 and 1.6 materials; writing only ever produces 1.6, matching
// the format's own move away from the untyped 1.5 blend/rasterizer state
// encoding (see DESIGN.md).
package matldata

import (
	"fmt"

	"github.com/ultimate-research/ssbh-go/formats"
)

// ParamData pairs a shader parameter's ID with its typed value.
type ParamData[T any] struct {
	ParamID formats.ParamId
	Data    T
}

// Type aliases mirroring ssbh_data's named ParamData instantiations.
type (
	BlendStateParam      = ParamData[BlendStateData]
	FloatParam           = ParamData[float32]
	BooleanParam         = ParamData[bool]
	Vector4Param         = ParamData[formats.Vector4]
	RasterizerStateParam = ParamData[RasterizerStateData]
	SamplerParam         = ParamData[SamplerData]
	TextureParam         = ParamData[string]
	UvTransformParam     = ParamData[formats.UvTransform]
)

// SamplerData configures how a texture is sampled. MaxAnisotropy is nil
// unless the sampler's filtering type is anisotropic, folding
// formats.FilteringType into a single optional field.
type SamplerData struct {
	WrapS, WrapT, WrapR formats.WrapMode
	MinFilter           formats.MinFilter
	MagFilter           formats.MagFilter
	BorderColor         formats.Color4f
	LodBias             float32
	MaxAnisotropy       *formats.MaxAnisotropy
}

// BlendStateData holds a material's alpha blending settings.
type BlendStateData struct {
	SourceColor           formats.BlendFactor
	DestinationColor      formats.BlendFactor
	AlphaSampleToCoverage bool
}

// RasterizerStateData holds a material's rasterizer settings.
type RasterizerStateData struct {
	FillMode  formats.FillMode
	CullMode  formats.CullMode
	DepthBias float32
}

// MatlEntryData is one material's shader assignment and parameters,
// grouped by parameter type.
type MatlEntryData struct {
	MaterialLabel     string
	ShaderLabel       string
	BlendStates       []BlendStateParam
	Floats            []FloatParam
	Booleans          []BooleanParam
	Vectors           []Vector4Param
	RasterizerStates  []RasterizerStateParam
	Samplers          []SamplerParam
	Textures          []TextureParam
	UvTransforms      []UvTransformParam
}

// MatlData is the data-layer view of a Matl file.
type MatlData struct {
	MajorVersion uint16
	MinorVersion uint16
	Entries      []MatlEntryData
}

// UnsupportedMatlVersionError reports that ToMatl was asked to write a
// version other than 1.6, the only version the format's typed blend and
// rasterizer states are defined for.
type UnsupportedMatlVersionError struct {
	MajorVersion, MinorVersion uint16
}

func (e *UnsupportedMatlVersionError) Error() string {
	return fmt.Sprintf("creating a version %d.%d matl is not supported", e.MajorVersion, e.MinorVersion)
}

func samplerFromWire(s formats.Sampler) SamplerData {
	d := SamplerData{
		WrapS:       s.WrapS,
		WrapT:       s.WrapT,
		WrapR:       s.WrapR,
		MinFilter:   s.MinFilter,
		MagFilter:   s.MagFilter,
		BorderColor: s.BorderColor,
		LodBias:     s.LodBias,
	}
	if s.TextureFilteringType == formats.FilteringTypeAnisotropicFiltering {
		anisotropy := s.MaxAnisotropy
		d.MaxAnisotropy = &anisotropy
	}
	return d
}

func samplerToWire(d SamplerData) formats.Sampler {
	s := formats.Sampler{
		WrapS:       d.WrapS,
		WrapT:       d.WrapT,
		WrapR:       d.WrapR,
		MinFilter:   d.MinFilter,
		MagFilter:   d.MagFilter,
		BorderColor: d.BorderColor,
		LodBias:     d.LodBias,
		Unk11:       0,
		Unk12:       2139095022,
	}
	if d.MaxAnisotropy != nil {
		s.TextureFilteringType = formats.FilteringTypeAnisotropicFiltering
		s.MaxAnisotropy = *d.MaxAnisotropy
	} else {
		s.TextureFilteringType = formats.FilteringTypeDefault
		s.MaxAnisotropy = formats.MaxAnisotropyOne
	}
	return s
}

func blendStateV16ToData(b formats.BlendStateV16) BlendStateData {
	return BlendStateData{
		SourceColor:           b.SourceColor,
		DestinationColor:      b.DestinationColor,
		AlphaSampleToCoverage: b.AlphaSampleToCoverage != 0,
	}
}

func blendStateDataToV16(d BlendStateData) formats.BlendStateV16 {
	alphaSampleToCoverage := uint32(0)
	if d.AlphaSampleToCoverage {
		alphaSampleToCoverage = 1
	}
	return formats.BlendStateV16{
		SourceColor:           d.SourceColor,
		Unk2:                  0,
		DestinationColor:      d.DestinationColor,
		Unk4:                  1,
		Unk5:                  0,
		Unk6:                  0,
		AlphaSampleToCoverage: alphaSampleToCoverage,
		Unk8:                  0,
		Unk9:                  0,
		Unk10:                 5,
	}
}

// blendStateV15ToData produces a default blend state for a 1.5 material.
// Unlike RasterizerStateV15 (which keeps a recognizable cull-mode field),
// this schema's BlendStateV15 was captured as nine opaque Unk fields with
// no confirmed correspondence to BlendFactor/blend-operation values, so
// there is nothing meaningful to decode here (see DESIGN.md).
func blendStateV15ToData() BlendStateData {
	return BlendStateData{SourceColor: formats.BlendFactorOne, DestinationColor: formats.BlendFactorZero}
}

func rasterizerStateV16ToData(rs formats.RasterizerStateV16) RasterizerStateData {
	return RasterizerStateData{FillMode: rs.FillMode, CullMode: rs.CullMode, DepthBias: rs.DepthBias}
}

func rasterizerStateDataToV16(d RasterizerStateData) formats.RasterizerStateV16 {
	return formats.RasterizerStateV16{
		FillMode:  d.FillMode,
		CullMode:  d.CullMode,
		DepthBias: d.DepthBias,
		Unk4:      0,
		Unk5:      0,
		Unk6:      16777217,
	}
}

// rasterizerStateV15ToData recovers the cull mode from the second raw word
// of a 1.5 rasterizer state; fill mode and depth bias were not part of the
// 1.5 encoding.
func rasterizerStateV15ToData(rs formats.RasterizerStateV15) RasterizerStateData {
	return RasterizerStateData{FillMode: formats.FillModeSolid, CullMode: formats.CullMode(rs.Unk2)}
}

// FromMatl converts a wire-level Matl (1.5 or 1.6) into MatlData.
func FromMatl(m *formats.Matl) *MatlData {
	d := &MatlData{MajorVersion: m.Version.Major, MinorVersion: m.Version.Minor}
	isV15 := m.Version.Minor == 5

	for _, entry := range m.Entries {
		e := MatlEntryData{MaterialLabel: entry.MaterialLabel, ShaderLabel: entry.ShaderLabel}
		for _, attr := range entry.Attributes {
			p := attr.Param
			switch p.Type {
			case 1: // float
				e.Floats = append(e.Floats, FloatParam{ParamID: attr.ParamID, Data: p.Float})
			case 2: // boolean
				e.Booleans = append(e.Booleans, BooleanParam{ParamID: attr.ParamID, Data: p.Boolean != 0})
			case 5: // vector4
				e.Vectors = append(e.Vectors, Vector4Param{ParamID: attr.ParamID, Data: p.Vector4})
			case 11: // string (texture)
				e.Textures = append(e.Textures, TextureParam{ParamID: attr.ParamID, Data: p.String})
			case 14: // sampler
				e.Samplers = append(e.Samplers, SamplerParam{ParamID: attr.ParamID, Data: samplerFromWire(p.Sampler)})
			case 16: // uv transform
				e.UvTransforms = append(e.UvTransforms, UvTransformParam{ParamID: attr.ParamID, Data: p.UvTransform})
			case 17: // blend state
				var data BlendStateData
				if isV15 {
					data = blendStateV15ToData()
				} else {
					data = blendStateV16ToData(p.BlendStateV16)
				}
				e.BlendStates = append(e.BlendStates, BlendStateParam{ParamID: attr.ParamID, Data: data})
			case 18: // rasterizer state
				var data RasterizerStateData
				if isV15 {
					data = rasterizerStateV15ToData(p.RasterizerV15)
				} else {
					data = rasterizerStateV16ToData(p.RasterizerV16)
				}
				e.RasterizerStates = append(e.RasterizerStates, RasterizerStateParam{ParamID: attr.ParamID, Data: data})
			}
			// Type 7 (an always-zero Color4f) carries no known meaning and is
			// dropped, matching how ssbh_data ignores it in MatlEntryData.
		}
		d.Entries = append(d.Entries, e)
	}
	return d
}

// ToMatl converts MatlData into a wire-level 1.6 Matl. Any other version
// returns an *UnsupportedMatlVersionError, since the 1.5 blend/rasterizer
// state encoding has no typed representation to write back to.
func ToMatl(d *MatlData) (*formats.Matl, error) {
	if d.MajorVersion != 1 || d.MinorVersion != 6 {
		return nil, &UnsupportedMatlVersionError{MajorVersion: d.MajorVersion, MinorVersion: d.MinorVersion}
	}
	m := &formats.Matl{Version: formats.Version{Major: 1, Minor: 6}}

	for _, e := range d.Entries {
		entry := formats.MatlEntry{MaterialLabel: e.MaterialLabel, ShaderLabel: e.ShaderLabel}
		for _, p := range e.BlendStates {
			entry.Attributes = append(entry.Attributes, formats.MatlAttribute{
				ParamID: p.ParamID,
				Param:   formats.Param{Type: 17, BlendStateV16: blendStateDataToV16(p.Data)},
			})
		}
		for _, p := range e.Floats {
			entry.Attributes = append(entry.Attributes, formats.MatlAttribute{
				ParamID: p.ParamID,
				Param:   formats.Param{Type: 1, Float: p.Data},
			})
		}
		for _, p := range e.Booleans {
			boolean := uint32(0)
			if p.Data {
				boolean = 1
			}
			entry.Attributes = append(entry.Attributes, formats.MatlAttribute{
				ParamID: p.ParamID,
				Param:   formats.Param{Type: 2, Boolean: boolean},
			})
		}
		for _, p := range e.Vectors {
			entry.Attributes = append(entry.Attributes, formats.MatlAttribute{
				ParamID: p.ParamID,
				Param:   formats.Param{Type: 5, Vector4: p.Data},
			})
		}
		for _, p := range e.RasterizerStates {
			entry.Attributes = append(entry.Attributes, formats.MatlAttribute{
				ParamID: p.ParamID,
				Param:   formats.Param{Type: 18, RasterizerV16: rasterizerStateDataToV16(p.Data)},
			})
		}
		for _, p := range e.Samplers {
			entry.Attributes = append(entry.Attributes, formats.MatlAttribute{
				ParamID: p.ParamID,
				Param:   formats.Param{Type: 14, Sampler: samplerToWire(p.Data)},
			})
		}
		for _, p := range e.Textures {
			entry.Attributes = append(entry.Attributes, formats.MatlAttribute{
				ParamID: p.ParamID,
				Param:   formats.Param{Type: 11, String: p.Data},
			})
		}
		for _, p := range e.UvTransforms {
			entry.Attributes = append(entry.Attributes, formats.MatlAttribute{
				ParamID: p.ParamID,
				Param:   formats.Param{Type: 16, UvTransform: p.Data},
			})
		}
		m.Entries = append(m.Entries, entry)
	}
	return m, nil
}
