// Package meshdata is the normalized, version-independent view of a
// formats.Mesh: named vertex attribute streams and index buffers instead of
// raw byte offsets into shared buffers. FromMesh/ToMesh implement the
// vertex-buffer codec (interleaving/deinterleaving, component-type
// selection) on top of internal/vertexcodec.
package meshdata

import (
	"github.com/ultimate-research/ssbh-go/formats"
	"github.com/ultimate-research/ssbh-go/internal/binary"
	"github.com/ultimate-research/ssbh-go/internal/vertexcodec"
)

// AttributeData is one named vertex attribute stream: a sequence of
// fixed-width component vectors, one per vertex.
type AttributeData struct {
	Name   string
	Values [][]float32
}

// VertexWeight assigns one bone's influence weight to one vertex.
type VertexWeight struct {
	VertexIndex uint32
	Weight      float32
}

// BoneInfluence is the set of vertex weights one bone contributes to a
// MeshObjectData's rigging.
type BoneInfluence struct {
	BoneName      string
	VertexWeights []VertexWeight
}

// MeshObjectData is the normalized form of one formats.MeshObject: named
// attribute streams grouped by semantic category instead of a flat
// (usage, data type, buffer offset) list, and vertex indices as plain
// uint32s instead of a raw byte buffer sliced by DrawElementType.
type MeshObjectData struct {
	Name               string
	SubIndex           uint64
	ParentBoneName     string
	VertexIndices      []uint32
	Positions          []AttributeData
	Normals            []AttributeData
	Binormals          []AttributeData
	Tangents           []AttributeData
	TextureCoordinates []AttributeData
	ColorSets          []AttributeData
	BoneInfluences     []BoneInfluence
	SortBias           int32
	DisableDepthWrite  bool
	DisableDepthTest   bool
	BoundingInfo       formats.BoundingInfo
}

// MeshData is the normalized form of a whole formats.Mesh.
type MeshData struct {
	ModelName string
	Objects   []MeshObjectData
}

func boolToU8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// FromMesh decodes m's raw attribute streams into a normalized MeshData,
// grouping attributes by usage and resolving each MeshObject's rigging
// group by (name, sub-index).
func FromMesh(m *formats.Mesh) (*MeshData, error) {
	if m.Version.Major != 1 || (m.Version.Minor != 8 && m.Version.Minor != 9 && m.Version.Minor != 10) {
		return nil, &vertexcodec.UnsupportedMeshVersionError{Minor: m.Version.Minor}
	}

	d := &MeshData{ModelName: m.ModelName}
	for i := range m.Objects {
		obj := &m.Objects[i]
		od := MeshObjectData{
			Name:              obj.Name,
			SubIndex:          obj.SubIndex,
			ParentBoneName:    obj.ParentBoneName,
			SortBias:          obj.SortBias,
			DisableDepthWrite: obj.DepthFlags.DisableDepthWrite != 0,
			DisableDepthTest:  obj.DepthFlags.DisableDepthTest != 0,
			BoundingInfo:      obj.BoundingInfo,
		}

		indices, err := decodeIndices(m.IndexBuffer, obj.IndexBufferOffset, obj.VertexIndexCount, obj.DrawElementType)
		if err != nil {
			return nil, err
		}
		od.VertexIndices = indices

		for _, attr := range obj.Attributes {
			values, err := vertexcodec.DecodeAttribute(m, obj, attr)
			if err != nil {
				return nil, err
			}
			name := attributeName(attr, m.Version.Minor)
			ad := AttributeData{Name: name, Values: values}
			switch attr.Usage {
			case formats.AttributeUsagePosition:
				od.Positions = append(od.Positions, ad)
			case formats.AttributeUsageNormal:
				od.Normals = append(od.Normals, ad)
			case formats.AttributeUsageBinormal:
				od.Binormals = append(od.Binormals, ad)
			case formats.AttributeUsageTangent:
				od.Tangents = append(od.Tangents, ad)
			case formats.AttributeUsageTextureCoordinate:
				od.TextureCoordinates = append(od.TextureCoordinates, ad)
			case formats.AttributeUsageColorSet:
				od.ColorSets = append(od.ColorSets, ad)
			default:
				return nil, &vertexcodec.UnknownAttributeSemanticError{DataType: uint32(attr.Usage)}
			}
		}

		for _, g := range m.RiggingBuffers {
			if g.MeshObjectName != obj.Name || g.MeshObjectSubIndex != obj.SubIndex {
				continue
			}
			for _, bb := range g.Buffers {
				bi := BoneInfluence{BoneName: bb.BoneName}
				if m.Version.Minor == 10 {
					weights, err := decodeVertexWeightsV10(bb.RawData)
					if err != nil {
						return nil, err
					}
					bi.VertexWeights = weights
				} else {
					for _, w := range bb.Weights {
						bi.VertexWeights = append(bi.VertexWeights, VertexWeight{VertexIndex: w.VertexIndex, Weight: w.Weight})
					}
				}
				od.BoneInfluences = append(od.BoneInfluences, bi)
			}
			break
		}

		d.Objects = append(d.Objects, od)
	}
	return d, nil
}

// attributeName reconstructs the per-attribute name a MeshObject stores for
// 1.9/1.10 (the field is absent on 1.8, so this synthesizes a stable
// placeholder from usage and sub-index instead).
func attributeName(attr formats.Attribute, minor uint16) string {
	if minor != 8 && attr.Name != "" {
		return attr.Name
	}
	return attr.Usage.String() + itoa(int(attr.SubIndex))
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := [20]byte{}
	i := len(digits)
	neg := n < 0
	if neg {
		n = -n
	}
	for n > 0 {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		digits[i] = '-'
	}
	return string(digits[i:])
}

func decodeIndices(buf []byte, offset uint32, count uint32, det formats.DrawElementType) ([]uint32, error) {
	elemSize := 2
	if det == formats.DrawElementTypeUnsignedInt {
		elemSize = 4
	}
	end := int(offset) + int(count)*elemSize
	if int(offset) < 0 || end > len(buf) {
		return nil, &vertexcodec.AttributeOutOfBoundsError{}
	}
	r := binary.NewReader(buf)
	r.Seek(int64(offset))
	out := make([]uint32, count)
	for i := range out {
		if det == formats.DrawElementTypeUnsignedInt {
			v, err := r.ReadU32()
			if err != nil {
				return nil, err
			}
			out[i] = v
		} else {
			v, err := r.ReadU16()
			if err != nil {
				return nil, err
			}
			out[i] = uint32(v)
		}
	}
	return out, nil
}

func decodeVertexWeightsV10(raw []byte) ([]VertexWeight, error) {
	const recordSize = 6 // u16 vertex_index + f32 weight
	if len(raw)%recordSize != 0 {
		return nil, &vertexcodec.AttributeOutOfBoundsError{}
	}
	r := binary.NewReader(raw)
	out := make([]VertexWeight, len(raw)/recordSize)
	for i := range out {
		idx, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		weight, err := r.ReadF32()
		if err != nil {
			return nil, err
		}
		out[i] = VertexWeight{VertexIndex: uint32(idx), Weight: weight}
	}
	return out, nil
}

func encodeVertexWeightsV10(weights []VertexWeight) ([]byte, error) {
	sink := binary.NewSink()
	w := binary.NewWriter(sink)
	for _, v := range weights {
		if err := w.WriteU16(uint16(v.VertexIndex)); err != nil {
			return nil, err
		}
		if err := w.WriteF32(v.Weight); err != nil {
			return nil, err
		}
	}
	return sink.Bytes(), nil
}
