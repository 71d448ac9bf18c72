package meshdata

import (
	"testing"

	"github.com/ultimate-research/ssbh-go/formats"
	"github.com/ultimate-research/ssbh-go/internal/vertexcodec"
)

func sampleObject() MeshObjectData {
	return MeshObjectData{
		Name:          "object0",
		VertexIndices: []uint32{0, 1, 2},
		Positions: []AttributeData{
			{Name: "p0", Values: [][]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}},
		},
		Normals: []AttributeData{
			{Name: "n0", Values: [][]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}}},
		},
	}
}

func TestMeshAttributeRepackAcrossVersions(t *testing.T) {
	data := &MeshData{ModelName: "model", Objects: []MeshObjectData{sampleObject()}}

	meshV8, err := ToMesh(data, formats.Version{Major: 1, Minor: 8})
	if err != nil {
		t.Fatalf("encode v1.8: %v", err)
	}
	if len(meshV8.VertexBuffers) != 4 {
		t.Fatalf("expected 4 vertex buffers, got %d", len(meshV8.VertexBuffers))
	}
	// Positions and normals both land in buffer 0 (interleaved) for 1.8.
	for _, a := range meshV8.Objects[0].Attributes {
		if a.BufferIndex != 0 {
			t.Fatalf("expected 1.8 to interleave position+normal into buffer 0, got attribute in buffer %d", a.BufferIndex)
		}
	}

	decoded, err := FromMesh(meshV8)
	if err != nil {
		t.Fatalf("decode v1.8: %v", err)
	}

	meshV10, err := ToMesh(decoded, formats.Version{Major: 1, Minor: 10})
	if err != nil {
		t.Fatalf("encode v1.10: %v", err)
	}

	final, err := FromMesh(meshV10)
	if err != nil {
		t.Fatalf("decode v1.10: %v", err)
	}

	original := data.Objects[0]
	got := final.Objects[0]
	assertVectorsEqual(t, "positions", original.Positions[0].Values, got.Positions[0].Values)
	assertVectorsEqual(t, "normals", original.Normals[0].Values, got.Normals[0].Values)
	if len(got.VertexIndices) != len(original.VertexIndices) {
		t.Fatalf("expected %d indices, got %d", len(original.VertexIndices), len(got.VertexIndices))
	}
}

func assertVectorsEqual(t *testing.T, label string, want, got [][]float32) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("%s: expected %d vertices, got %d", label, len(want), len(got))
	}
	for i := range want {
		for c := range want[i] {
			if want[i][c] != got[i][c] {
				t.Errorf("%s: vertex %d component %d: want %v, got %v", label, i, c, want[i][c], got[i][c])
			}
		}
	}
}

func TestToMeshRejectsUnsupportedVersion(t *testing.T) {
	data := &MeshData{Objects: []MeshObjectData{sampleObject()}}
	_, err := ToMesh(data, formats.Version{Major: 1, Minor: 3})
	if _, ok := err.(*vertexcodec.UnsupportedMeshVersionError); !ok {
		t.Fatalf("expected *vertexcodec.UnsupportedMeshVersionError, got %v", err)
	}
}

func TestFromMeshRejectsUnsupportedVersion(t *testing.T) {
	m := &formats.Mesh{Version: formats.Version{Major: 1, Minor: 3}}
	_, err := FromMesh(m)
	if _, ok := err.(*vertexcodec.UnsupportedMeshVersionError); !ok {
		t.Fatalf("expected *vertexcodec.UnsupportedMeshVersionError, got %v", err)
	}
}

func TestColorSetNarrowsToByte4OnEveryVersion(t *testing.T) {
	obj := sampleObject()
	obj.ColorSets = []AttributeData{
		{Name: "color1", Values: [][]float32{{1, 1, 1, 1}, {0, 0, 0, 1}, {0.5, 0.5, 0.5, 1}}},
	}
	data := &MeshData{Objects: []MeshObjectData{obj}}

	for _, minor := range []uint16{8, 9, 10} {
		mesh, err := ToMesh(data, formats.Version{Major: 1, Minor: minor})
		if err != nil {
			t.Fatalf("minor %d: encode: %v", minor, err)
		}
		var found bool
		for _, a := range mesh.Objects[0].Attributes {
			if a.Usage == formats.AttributeUsageColorSet {
				found = true
				if a.DataType != formats.AttributeDataTypeByte4 {
					t.Errorf("minor %d: expected Byte4 color data type, got %v", minor, a.DataType)
				}
			}
		}
		if !found {
			t.Fatalf("minor %d: expected a ColorSet attribute", minor)
		}
	}
}
