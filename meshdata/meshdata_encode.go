package meshdata

import (
	"math"

	"github.com/ultimate-research/ssbh-go/formats"
	"github.com/ultimate-research/ssbh-go/internal/binary"
	"github.com/ultimate-research/ssbh-go/internal/vertexcodec"
)

// unusedBufferStride is the stride the game's own tools leave on Mesh
// 1.8/1.9's unused third vertex buffer even though it carries no attribute
// data; 1.10 drops it to zero. Grounded on mesh_attributes.rs's
// create_attributes_v8/v9/v10, which hard-code this constant per version.
func unusedBufferStride(minor uint16) uint32 {
	if minor == 10 {
		return 0
	}
	return 32
}

// ToMesh encodes d into a formats.Mesh for the given (major, minor)
// version, choosing an interleaving policy and per-attribute component
// type deterministically from the version and attribute shapes so that
// decode(encode(x)) round trips and encode(decode(encode(x))) == encode(x).
func ToMesh(d *MeshData, version formats.Version) (*formats.Mesh, error) {
	if version.Major != 1 || (version.Minor != 8 && version.Minor != 9 && version.Minor != 10) {
		return nil, &vertexcodec.UnsupportedMeshVersionError{Minor: version.Minor}
	}
	minor := version.Minor

	m := &formats.Mesh{
		Version:   version,
		ModelName: d.ModelName,
	}

	var buf0, buf1 []byte
	var indexBuf []byte

	for oi := range d.Objects {
		od := &d.Objects[oi]

		buffer0Attrs := buildBuffer0(od, minor)
		buffer1Attrs := buildBuffer1(od, minor)

		bytes0, stride0, err := vertexcodec.EncodeBuffer(buffer0Attrs)
		if err != nil {
			return nil, err
		}
		bytes1, stride1, err := vertexcodec.EncodeBuffer(buffer1Attrs)
		if err != nil {
			return nil, err
		}

		obj := formats.MeshObject{
			Name:             od.Name,
			SubIndex:         od.SubIndex,
			ParentBoneName:   od.ParentBoneName,
			VertexCount:      uint32(vertexCount(od)),
			VertexIndexCount: uint32(len(od.VertexIndices)),
			SortBias:         od.SortBias,
			DepthFlags: formats.DepthFlags{
				DisableDepthWrite: boolToU8(od.DisableDepthWrite),
				DisableDepthTest:  boolToU8(od.DisableDepthTest),
			},
			BoundingInfo: od.BoundingInfo,
			Strides:      [4]uint32{stride0, stride1, unusedBufferStride(minor), 0},
		}

		obj.VertexBufferOffsets[0] = uint32(len(buf0))
		buf0 = append(buf0, bytes0...)
		obj.VertexBufferOffsets[1] = uint32(len(buf1))
		buf1 = append(buf1, bytes1...)

		obj.DrawElementType = indexElementType(od.VertexIndices)
		obj.IndexBufferOffset = uint32(len(indexBuf))
		encodedIndices, err := encodeIndices(od.VertexIndices, obj.DrawElementType)
		if err != nil {
			return nil, err
		}
		indexBuf = append(indexBuf, encodedIndices...)

		obj.Attributes = collectAttributes(buffer0Attrs, buffer1Attrs, minor)

		m.Objects = append(m.Objects, obj)

		if len(od.BoneInfluences) > 0 {
			g := formats.RiggingGroup{
				MeshObjectName:     od.Name,
				MeshObjectSubIndex: od.SubIndex,
				Flags:              formats.RiggingFlags{MaxInfluences: maxInfluences(od)},
			}
			for _, bi := range od.BoneInfluences {
				bb := formats.BoneBuffer{BoneName: bi.BoneName}
				if minor == 10 {
					raw, err := encodeVertexWeightsV10(bi.VertexWeights)
					if err != nil {
						return nil, err
					}
					bb.RawData = raw
				} else {
					for _, w := range bi.VertexWeights {
						bb.Weights = append(bb.Weights, formats.VertexWeight{VertexIndex: w.VertexIndex, Weight: w.Weight})
					}
				}
				g.Buffers = append(g.Buffers, bb)
			}
			m.RiggingBuffers = append(m.RiggingBuffers, g)
		}
	}

	m.VertexBuffers = [][]byte{buf0, buf1, nil, nil}
	for _, b := range m.VertexBuffers {
		m.BufferSizes = append(m.BufferSizes, uint32(len(b)))
	}
	m.IndexBuffer = indexBuf
	m.PolygonIndexSize = uint64(len(indexBuf))
	m.BoundingInfo = combineBoundingInfo(d.Objects)
	return m, nil
}

func vertexCount(od *MeshObjectData) int {
	for _, group := range [][]AttributeData{od.Positions, od.Normals, od.Tangents, od.TextureCoordinates} {
		if len(group) > 0 {
			return len(group[0].Values)
		}
	}
	return 0
}

func maxInfluences(od *MeshObjectData) uint8 {
	var max int
	for _, bi := range od.BoneInfluences {
		if len(bi.VertexWeights) > max {
			max = len(bi.VertexWeights)
		}
	}
	if max > 255 {
		return 255
	}
	return uint8(max)
}

// buildBuffer0 orders positions, normals, binormals (1.9/1.10 only), then
// tangents into one interleaved stream, mirroring create_attributes_v8/v9/v10.
func buildBuffer0(od *MeshObjectData, minor uint16) []*vertexcodec.EncodedAttribute {
	var attrs []*vertexcodec.EncodedAttribute
	attrs = append(attrs, toEncoded(od.Positions, "position", minor)...)
	attrs = append(attrs, toEncoded(od.Normals, "vector", minor)...)
	if minor != 8 {
		attrs = append(attrs, toEncoded(od.Binormals, "vector", minor)...)
	}
	attrs = append(attrs, toEncoded(od.Tangents, "vector", minor)...)
	return attrs
}

func buildBuffer1(od *MeshObjectData, minor uint16) []*vertexcodec.EncodedAttribute {
	var attrs []*vertexcodec.EncodedAttribute
	attrs = append(attrs, toEncoded(od.TextureCoordinates, "texcoord", minor)...)
	attrs = append(attrs, toEncoded(od.ColorSets, "color", minor)...)
	return attrs
}

func toEncoded(group []AttributeData, category string, minor uint16) []*vertexcodec.EncodedAttribute {
	usage := categoryUsage(category)
	out := make([]*vertexcodec.EncodedAttribute, 0, len(group))
	for i, a := range group {
		n := 4
		if len(a.Values) > 0 {
			n = len(a.Values[0])
		}
		out = append(out, &vertexcodec.EncodedAttribute{
			Usage:    usage,
			Name:     a.Name,
			SubIndex: uint64(i),
			DataType: chooseDataType(category, minor, n),
			Values:   a.Values,
		})
	}
	return out
}

func categoryUsage(category string) formats.AttributeUsage {
	switch category {
	case "position":
		return formats.AttributeUsagePosition
	case "texcoord":
		return formats.AttributeUsageTextureCoordinate
	case "color":
		return formats.AttributeUsageColorSet
	default:
		return formats.AttributeUsageNormal
	}
}

// chooseDataType implements the per-category, per-version component-type
// table observed in mesh_attributes.rs's VectorDataV8/VectorDataV10
// from_positions/from_vectors/from_colors: positions always keep full f32
// precision; "vector" and "color" streams narrow to half floats at 2
// components on 1.10 only, and colors narrow further to a normalized byte4
// at 4 components on every version.
func chooseDataType(category string, minor uint16, n int) formats.AttributeDataType {
	if category == "position" {
		switch n {
		case 2:
			return formats.AttributeDataTypeFloat2
		case 3:
			return formats.AttributeDataTypeFloat3
		default:
			return formats.AttributeDataTypeFloat4
		}
	}
	switch n {
	case 2:
		if minor == 10 {
			return formats.AttributeDataTypeHalfFloat2
		}
		return formats.AttributeDataTypeFloat2
	case 3:
		return formats.AttributeDataTypeFloat3
	default:
		if category == "color" {
			return formats.AttributeDataTypeByte4
		}
		return formats.AttributeDataTypeHalfFloat4
	}
}

func collectAttributes(buffer0, buffer1 []*vertexcodec.EncodedAttribute, minor uint16) []formats.Attribute {
	var out []formats.Attribute
	for bufIdx, group := range [][]*vertexcodec.EncodedAttribute{buffer0, buffer1} {
		for _, a := range group {
			attr := formats.Attribute{
				Usage:        a.Usage,
				DataType:     a.DataType,
				BufferIndex:  uint32(bufIdx),
				BufferOffset: a.BufferOffset,
				SubIndex:     a.SubIndex,
			}
			if minor != 8 {
				attr.Name = a.Name
				attr.AttributeNames = []string{a.Name}
			}
			out = append(out, attr)
		}
	}
	return out
}

func indexElementType(indices []uint32) formats.DrawElementType {
	for _, v := range indices {
		if v > 0xffff {
			return formats.DrawElementTypeUnsignedInt
		}
	}
	return formats.DrawElementTypeUnsignedShort
}

func encodeIndices(indices []uint32, det formats.DrawElementType) ([]byte, error) {
	sink := binary.NewSink()
	w := binary.NewWriter(sink)
	for _, v := range indices {
		if det == formats.DrawElementTypeUnsignedInt {
			if err := w.WriteU32(v); err != nil {
				return nil, err
			}
		} else {
			if err := w.WriteU16(uint16(v)); err != nil {
				return nil, err
			}
		}
	}
	return sink.Bytes(), nil
}

func combineBoundingInfo(objects []MeshObjectData) formats.BoundingInfo {
	if len(objects) == 0 {
		return formats.BoundingInfo{}
	}
	min := objects[0].BoundingInfo.Volume.Min
	max := objects[0].BoundingInfo.Volume.Max
	for _, od := range objects[1:] {
		v := od.BoundingInfo.Volume
		min.X, max.X = minf(min.X, v.Min.X), maxf(max.X, v.Max.X)
		min.Y, max.Y = minf(min.Y, v.Min.Y), maxf(max.Y, v.Max.Y)
		min.Z, max.Z = minf(min.Z, v.Min.Z), maxf(max.Z, v.Max.Z)
	}
	center := formats.Vector3{X: (min.X + max.X) / 2, Y: (min.Y + max.Y) / 2, Z: (min.Z + max.Z) / 2}
	radius := distance(center, max)
	return formats.BoundingInfo{
		Sphere: formats.BoundingSphere{Center: center, Radius: radius},
		Volume: formats.BoundingVolume{Min: min, Max: max},
		OrientedBoundingBox: formats.OrientedBoundingBox{
			Center: center,
			Transform: formats.Matrix3x3{
				Row0: formats.Vector3{X: 1},
				Row1: formats.Vector3{Y: 1},
				Row2: formats.Vector3{Z: 1},
			},
			Size: formats.Vector3{X: (max.X - min.X) / 2, Y: (max.Y - min.Y) / 2, Z: (max.Z - min.Z) / 2},
		},
	}
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func distance(a, b formats.Vector3) float32 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return float32(math.Sqrt(float64(dx*dx + dy*dy + dz*dz)))
}
