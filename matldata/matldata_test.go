package matldata

import (
	"testing"

	"github.com/ultimate-research/ssbh-go/formats"
)

func TestMatlDataRoundTripsThroughV16Matl(t *testing.T) {
	anisotropy := formats.MaxAnisotropyFour
	data := &MatlData{
		MajorVersion: 1,
		MinorVersion: 6,
		Entries: []MatlEntryData{
			{
				MaterialLabel: "a",
				ShaderLabel:   "b",
				Floats:        []FloatParam{{ParamID: formats.ParamCustomFloat0, Data: 1.5}},
				Booleans:      []BooleanParam{{ParamID: formats.ParamCustomBoolean0, Data: true}},
				Vectors:       []Vector4Param{{ParamID: formats.ParamCustomVector0, Data: formats.Vector4{X: 1, Y: 2, Z: 3, W: 4}}},
				Textures:      []TextureParam{{ParamID: formats.ParamDiffuseMap, Data: "tex.png"}},
				BlendStates: []BlendStateParam{
					{ParamID: formats.ParamBlendState0, Data: BlendStateData{
						SourceColor: formats.BlendFactorSourceAlpha, DestinationColor: formats.BlendFactorOneMinusSourceAlpha, AlphaSampleToCoverage: true,
					}},
				},
				RasterizerStates: []RasterizerStateParam{
					{ParamID: formats.ParamRasterizerState0, Data: RasterizerStateData{
						FillMode: formats.FillModeSolid, CullMode: formats.CullModeBack, DepthBias: 0.5,
					}},
				},
				Samplers: []SamplerParam{
					{ParamID: formats.ParamDiffuseSampler, Data: SamplerData{
						WrapS: formats.WrapModeRepeat, WrapT: formats.WrapModeRepeat, WrapR: formats.WrapModeRepeat,
						MinFilter: formats.MinFilterLinearMipmapLinear, MagFilter: formats.MagFilterLinear,
						MaxAnisotropy: &anisotropy,
					}},
				},
				UvTransforms: []UvTransformParam{
					{ParamID: formats.ParamUvTransform0, Data: formats.UvTransform{X: 1, Y: 0, Z: 0, W: 1, V: 0}},
				},
			},
		},
	}

	m, err := ToMatl(data)
	if err != nil {
		t.Fatalf("ToMatl: %v", err)
	}
	if len(m.Entries[0].Attributes) != 8 {
		t.Fatalf("expected 8 attributes, got %d", len(m.Entries[0].Attributes))
	}

	got := FromMatl(m)
	entry := got.Entries[0]

	if len(entry.Floats) != 1 || entry.Floats[0].Data != 1.5 {
		t.Errorf("floats mismatch: %+v", entry.Floats)
	}
	if len(entry.Booleans) != 1 || !entry.Booleans[0].Data {
		t.Errorf("booleans mismatch: %+v", entry.Booleans)
	}
	if len(entry.Samplers) != 1 || entry.Samplers[0].Data.MaxAnisotropy == nil || *entry.Samplers[0].Data.MaxAnisotropy != formats.MaxAnisotropyFour {
		t.Errorf("sampler anisotropy mismatch: %+v", entry.Samplers)
	}
	if len(entry.BlendStates) != 1 || !entry.BlendStates[0].Data.AlphaSampleToCoverage {
		t.Errorf("blend state mismatch: %+v", entry.BlendStates)
	}
	if len(entry.RasterizerStates) != 1 || entry.RasterizerStates[0].Data.DepthBias != 0.5 {
		t.Errorf("rasterizer state mismatch: %+v", entry.RasterizerStates)
	}
}

func TestSamplerWithoutAnisotropyDefaultsFilteringType(t *testing.T) {
	data := SamplerData{WrapS: formats.WrapModeRepeat}
	wire := samplerToWire(data)
	if wire.TextureFilteringType != formats.FilteringTypeDefault {
		t.Errorf("filtering type = %v, want FilteringTypeDefault", wire.TextureFilteringType)
	}

	back := samplerFromWire(wire)
	if back.MaxAnisotropy != nil {
		t.Errorf("expected nil MaxAnisotropy, got %v", *back.MaxAnisotropy)
	}
}

func TestToMatlRejectsUnsupportedVersion(t *testing.T) {
	data := &MatlData{MajorVersion: 1, MinorVersion: 5}
	if _, err := ToMatl(data); err == nil {
		t.Fatal("expected an error writing a 1.5 matl")
	}
}
