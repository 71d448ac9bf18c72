package formats

import (
	"errors"
	"reflect"
	"testing"

	"github.com/ultimate-research/ssbh-go/internal/binary"
	"github.com/ultimate-research/ssbh-go/internal/record"
)

func TestNrpdRoundTrip(t *testing.T) {
	unk5 := uint64(42)
	original := &Nrpd{
		Version: Version{Major: 1, Minor: 6},
		FrameBuffers: []FrameBuffer{
			{
				Type: frameBufferTypeFramebuffer0,
				Framebuffer0: Framebuffer0{
					Name: "RenderTarget0", Width: 1920, Height: 1080, Unk1: 1, Unk2: 2, Unk3: 3,
				},
			},
			{
				Type:          frameBufferTypeUniformBuffer,
				UniformBuffer: UniformBuffer{Name: "Ubo", Unk1: 1, Unk2: 2, Unk3: 256},
			},
		},
		StateContainers: []State{
			{
				Type: stateTypeSampler,
				Sampler: NrpdSampler{
					Name: "Sampler0",
					Data: Sampler{WrapS: WrapModeRepeat, WrapT: WrapModeClampToEdge, WrapR: WrapModeMirroredRepeat,
						MinFilter: MinFilterNearest, MagFilter: MagFilterLinear, TextureFilteringType: FilteringTypeDefault,
						BorderColor: Color4f{R: 1, G: 1, B: 1, A: 1}, LodBias: 0.5, MaxAnisotropy: MaxAnisotropyFour},
					Unk13: 3,
				},
			},
		},
		RenderPasses: []RenderPassContainer{
			{
				Name: "MainPass",
				Unk1: []RenderPassData{
					{Type: renderPassDataTypeFramebufferRtp, FramebufferRtp: RenderPassData0{Unk1: "a", Unk2: "b", Unk3: 7}},
					{Type: renderPassDataTypeColorClear, ColorClear: ColorClear{Name: "Color0", Color: Color4f{R: 0, G: 0, B: 0, A: 1}, Unk1: 1}},
					{Type: renderPassDataTypeDepthStencilClear, DepthStencilClear: DepthStencilClear{Name: "Depth0", Depth: 1, Stencil: 0}},
					{Type: renderPassDataTypeViewport, Viewport: Viewport{Name: "Viewport0", Unk2: 1, Width: 1920, Height: 1080, UnkMin: 0, UnkMax: 1, Unk4: 0}},
					{Type: renderPassDataTypeBlendState, StatePair: StringPair{Item1: "BlendState0", Item2: ""}},
					{Type: renderPassDataTypeFramebufferRenderTarget, FramebufferName: "RenderTarget0"},
					{Type: renderPassDataTypeUnkTexture2, UnkTexture2: RenderPassData19{Unk1: "Texture2", Unk2: 99}},
					{Type: renderPassDataTypeUnk8, Unk8: RenderPassDataU64PtrPair{Unk1: "c", Unk2: "d", Unk3: &unk5, Unk4: 1, Unk5: nil, Unk6: 0}},
					{Type: renderPassDataTypeUnkLight, UnkLight: RenderPassDataUnk8DataPair{Unk1: "e", Unk2: "f", Unk3: &Unk8Data{Unk1: 1, Unk2: 2}, Unk4: 3, Unk5: nil, Unk6: 0}},
				},
				Unk2:     nil,
				Unk3Type: 3,
				Unk3:     Unk3Data{Unk1: "u1", Unk2: "u2", Unk3: 1, Unk4: 2, Unk5: 3, Unk6: 4},
			},
		},
		UnkStringList1: []StringPair{{Item1: "x", Item2: "y"}},
		UnkStringList2: []NrpdUnkItem2{
			{Unk1: &StringPair{Item1: "n", Item2: "v"}, Unk2: 5},
		},
		UnkList: []NrpdUnkItem1{
			{Unk1: "list0", Unk2: []UnkItem3{{Name: "k", Value: "v"}}},
		},
		UnkWidth1: 1920, UnkHeight1: 1080,
		Unk3: 1, Unk4: 2, Unk5: 3,
		Unk6: 4, Unk7: 5, Unk8: 6,
		Unk9:       "",
		UnkWidth2:  1920,
		UnkHeight2: 1080,
		Unk10:      7,
	}

	sink := binary.NewSink()
	w := record.NewWriter(sink)
	if err := WriteNrpd(w, original); err != nil {
		t.Fatalf("WriteNrpd: %v", err)
	}
	data := sink.Bytes()

	got, err := ReadNrpd(record.NewReader(data), original.Version)
	if err != nil {
		t.Fatalf("ReadNrpd: %v", err)
	}
	if !reflect.DeepEqual(got, original) {
		t.Fatalf("round trip mismatch:\n got: %+v\nwant: %+v", got, original)
	}
}

func TestNrpdRejectsUnsupportedVersion(t *testing.T) {
	_, err := ReadNrpd(record.NewReader(nil), Version{Major: 1, Minor: 0})
	var invalid *record.InvalidDiscriminantError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidDiscriminantError, got %v", err)
	}
}
