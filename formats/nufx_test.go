package formats

import (
	"reflect"
	"testing"

	"github.com/ultimate-research/ssbh-go/internal/binary"
	"github.com/ultimate-research/ssbh-go/internal/record"
)

func TestNufxV10RoundTrip(t *testing.T) {
	original := &Nufx{
		Version: Version{Major: 1, Minor: 0},
		ProgramsV0: []ShaderProgramV0{
			{
				Name:       "Program0",
				RenderPass: "RenderPassA",
				Shaders: ShaderStages{
					VertexShader: "vs_0", Unk1Shader: "", Unk2Shader: "",
					GeometryShader: "", PixelShader: "ps_0", ComputeShader: "",
				},
				MaterialParameters: []MaterialParameter{
					{ParamID: 1, ParameterName: "diffuseMap"},
					{ParamID: 2, ParameterName: "normalMap"},
				},
			},
		},
		UnkStringList: []UnkItem{
			{Name: "tag0", Unk1: []string{"a", "b"}},
		},
	}

	sink := binary.NewSink()
	w := record.NewWriter(sink)
	if err := WriteNufx(w, original); err != nil {
		t.Fatalf("WriteNufx: %v", err)
	}
	data := sink.Bytes()

	got, err := ReadNufx(record.NewReader(data), original.Version)
	if err != nil {
		t.Fatalf("ReadNufx: %v", err)
	}
	if !reflect.DeepEqual(got, original) {
		t.Fatalf("round trip mismatch:\n got: %+v\nwant: %+v", got, original)
	}
}

func TestNufxV11RoundTrip(t *testing.T) {
	original := &Nufx{
		Version: Version{Major: 1, Minor: 1},
		ProgramsV1: []ShaderProgramV1{
			{
				Name:       "Program1",
				RenderPass: "RenderPassB",
				Shaders: ShaderStages{
					VertexShader: "vs_1", PixelShader: "ps_1",
				},
				VertexAttributes: []VertexAttribute{
					{Name: "Position0", AttributeName: "position"},
					{Name: "Normal0", AttributeName: "normal"},
				},
				MaterialParameters: []MaterialParameter{
					{ParamID: 3, ParameterName: "emissiveMap"},
				},
			},
		},
	}

	sink := binary.NewSink()
	w := record.NewWriter(sink)
	if err := WriteNufx(w, original); err != nil {
		t.Fatalf("WriteNufx: %v", err)
	}
	data := sink.Bytes()

	got, err := ReadNufx(record.NewReader(data), original.Version)
	if err != nil {
		t.Fatalf("ReadNufx: %v", err)
	}
	if !reflect.DeepEqual(got, original) {
		t.Fatalf("round trip mismatch:\n got: %+v\nwant: %+v", got, original)
	}
}

func TestWriteNufxRejectsUnsupportedVersion(t *testing.T) {
	n := &Nufx{Version: Version{Major: 2, Minor: 0}}
	sink := binary.NewSink()
	w := record.NewWriter(sink)
	if err := WriteNufx(w, n); err == nil {
		t.Fatal("expected an error for an unsupported Nufx version, got nil")
	}
}
