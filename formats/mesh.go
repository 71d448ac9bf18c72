package formats

import (
	"github.com/ultimate-research/ssbh-go/internal/record"
	"github.com/ultimate-research/ssbh-go/internal/schema"
)

// AttributeUsage identifies what a vertex attribute stream feeds in the
// shader. Version 1.8 and versions 1.9/1.10 use different numeric spaces;
// both are folded into this one type since a schema's version is already
// known by the time an Attribute is decoded.
type AttributeUsage uint32

const (
	AttributeUsagePosition          AttributeUsage = 0
	AttributeUsageNormal            AttributeUsage = 1
	AttributeUsageBinormal          AttributeUsage = 2 // 1.9/1.10 only
	AttributeUsageTangent           AttributeUsage = 3
	AttributeUsageTextureCoordinate AttributeUsage = 4
	AttributeUsageColorSet          AttributeUsage = 5 // 8 on 1.8
)

func (u AttributeUsage) String() string {
	switch u {
	case AttributeUsagePosition:
		return "Position"
	case AttributeUsageNormal:
		return "Normal"
	case AttributeUsageBinormal:
		return "Binormal"
	case AttributeUsageTangent:
		return "Tangent"
	case AttributeUsageTextureCoordinate:
		return "TextureCoordinate"
	case AttributeUsageColorSet:
		return "ColorSet"
	default:
		return "Unknown"
	}
}

// AttributeDataType identifies the component type and count backing an
// attribute stream. Versions 1.8/1.9 and 1.10 use different numeric
// spaces for the same semantic meaning.
type AttributeDataType uint32

const (
	AttributeDataTypeFloat3    AttributeDataType = 0
	AttributeDataTypeByte4     AttributeDataType = 2
	AttributeDataTypeFloat4    AttributeDataType = 4
	AttributeDataTypeHalfFloat4 AttributeDataType = 5
	AttributeDataTypeFloat2    AttributeDataType = 7
	AttributeDataTypeHalfFloat2 AttributeDataType = 8
)

// legacy v1.8 data-type constants, translated to the AttributeDataType
// values above on read so downstream code has one numbering to reason
// about; WriteMesh translates back for 1.8 output.
const (
	legacyDataTypeFloat3     = 820
	legacyDataTypeFloat4     = 1076
	legacyDataTypeHalfFloat4 = 1077
	legacyDataTypeFloat2     = 1079
	legacyDataTypeByte4      = 1024
)

func fromLegacyDataType(v uint32) AttributeDataType {
	switch v {
	case legacyDataTypeFloat3:
		return AttributeDataTypeFloat3
	case legacyDataTypeFloat4:
		return AttributeDataTypeFloat4
	case legacyDataTypeHalfFloat4:
		return AttributeDataTypeHalfFloat4
	case legacyDataTypeFloat2:
		return AttributeDataTypeFloat2
	case legacyDataTypeByte4:
		return AttributeDataTypeByte4
	default:
		return AttributeDataType(v)
	}
}

func toLegacyDataType(v AttributeDataType) uint32 {
	switch v {
	case AttributeDataTypeFloat3:
		return legacyDataTypeFloat3
	case AttributeDataTypeFloat4:
		return legacyDataTypeFloat4
	case AttributeDataTypeHalfFloat4:
		return legacyDataTypeHalfFloat4
	case AttributeDataTypeFloat2:
		return legacyDataTypeFloat2
	case AttributeDataTypeByte4:
		return legacyDataTypeByte4
	default:
		return uint32(v)
	}
}

// Attribute describes one vertex attribute stream's storage. Name and
// AttributeNames are only populated for Mesh 1.9/1.10.
type Attribute struct {
	Usage          AttributeUsage
	DataType       AttributeDataType
	BufferIndex    uint32
	BufferOffset   uint32
	SubIndex       uint64
	Name           string
	AttributeNames []string
}

func readAttribute(r *record.Reader, minor uint16) (a Attribute, err error) {
	usage, err := r.ReadU32()
	if err != nil {
		return a, err
	}
	dataType, err := r.ReadU32()
	if err != nil {
		return a, err
	}
	if a.BufferIndex, err = r.ReadU32(); err != nil {
		return a, err
	}
	if a.BufferOffset, err = r.ReadU32(); err != nil {
		return a, err
	}

	if minor == 8 {
		a.Usage = AttributeUsage(usage)
		a.DataType = fromLegacyDataType(dataType)
		sub, err := r.ReadU32()
		if err != nil {
			return a, err
		}
		a.SubIndex = uint64(sub)
		return a, nil
	}

	a.Usage = AttributeUsage(usage)
	if minor == 9 {
		a.DataType = fromLegacyDataType(dataType)
	} else {
		a.DataType = AttributeDataType(dataType)
	}
	if a.SubIndex, err = r.ReadU64(); err != nil {
		return a, err
	}
	name, err := r.ReadString()
	if err != nil {
		return a, err
	}
	if name != nil {
		a.Name = *name
	}
	a.AttributeNames, err = readStringArray(r)
	return a, err
}

func attributeSize(minor uint16) int64 {
	if minor == 8 {
		return 4 + 4 + 4 + 4 + 4
	}
	return 4 + 4 + 4 + 4 + 8 + 8 + 16
}

func writeAttribute(w *record.Writer, a Attribute, minor uint16) error {
	size := attributeSize(minor)
	start := w.Reserve(size)
	if err := w.WriteU32(uint32(a.Usage)); err != nil {
		return err
	}
	dataType := uint32(a.DataType)
	if minor == 8 || minor == 9 {
		dataType = toLegacyDataType(a.DataType)
	}
	if err := w.WriteU32(dataType); err != nil {
		return err
	}
	if err := w.WriteU32(a.BufferIndex); err != nil {
		return err
	}
	if err := w.WriteU32(a.BufferOffset); err != nil {
		return err
	}
	if minor == 8 {
		if err := w.WriteU32(uint32(a.SubIndex)); err != nil {
			return err
		}
		return w.Finish(start, size)
	}
	if err := w.WriteU64(a.SubIndex); err != nil {
		return err
	}
	if err := w.WriteString(record.DefaultAlignment, &a.Name); err != nil {
		return err
	}
	if err := writeStringArray(w, a.AttributeNames); err != nil {
		return err
	}
	return w.Finish(start, size)
}

// DrawElementType selects the index buffer's element width.
type DrawElementType uint32

const (
	DrawElementTypeUnsignedShort DrawElementType = 0
	DrawElementTypeUnsignedInt   DrawElementType = 1
)

// DepthFlags controls per-object depth write/test behavior.
type DepthFlags struct {
	DisableDepthWrite uint8
	DisableDepthTest  uint8
}

func readDepthFlags(r *record.Reader) (d DepthFlags, err error) {
	if d.DisableDepthWrite, err = r.ReadU8(); err != nil {
		return d, err
	}
	if d.DisableDepthTest, err = r.ReadU8(); err != nil {
		return d, err
	}
	r.Skip(2)
	return d, err
}

func (d DepthFlags) write(w *record.Writer) error {
	if err := w.WriteU8(d.DisableDepthWrite); err != nil {
		return err
	}
	if err := w.WriteU8(d.DisableDepthTest); err != nil {
		return err
	}
	return w.WriteZeros(2)
}

// MeshObject is one indexed vertex collection within a Mesh, identified by
// name and sub-index, with its own attribute list, buffer placement, and
// bounding info.
type MeshObject struct {
	Name              string
	SubIndex          uint64
	ParentBoneName    string
	VertexCount       uint32
	VertexIndexCount  uint32
	Unk2              uint32
	VertexBufferOffsets [4]uint32
	Strides           [4]uint32
	IndexBufferOffset uint32
	Unk8              uint32
	DrawElementType   DrawElementType
	UseVertexSkinning uint32
	SortBias          int32
	DepthFlags        DepthFlags
	BoundingInfo      BoundingInfo
	Attributes        []Attribute
}

// meshObjectSize is the fixed footprint of a MeshObject record, matching
// writeMeshObject's field order: name(8) + subindex(8) + parent_bone(8) +
// vertex_count(4) + vertex_index_count(4) + unk2(4) + 4 buffer offsets(16) +
// 4 strides(16) + index_buffer_offset(4) + unk8(4) + draw_element_type(4) +
// use_vertex_skinning(4) + sort_bias(4) + depth_flags(4) +
// bounding_info(sphere 16 + volume 24 + obb 60 = 100) + attributes array(16).
func meshObjectSize() int64 {
	return 8 + 8 + 8 + 4 + 4 + 4 + 16 + 16 + 4 + 4 + 4 + 4 + 4 + 4 + 100 + 16
}

func readMeshObject(r *record.Reader, minor uint16) (m MeshObject, err error) {
	name, err := r.ReadString()
	if err != nil {
		return m, err
	}
	if name != nil {
		m.Name = *name
	}
	if m.SubIndex, err = r.ReadU64(); err != nil {
		return m, err
	}
	parent, err := r.ReadString()
	if err != nil {
		return m, err
	}
	if parent != nil {
		m.ParentBoneName = *parent
	}
	if m.VertexCount, err = r.ReadU32(); err != nil {
		return m, err
	}
	if m.VertexIndexCount, err = r.ReadU32(); err != nil {
		return m, err
	}
	if m.Unk2, err = r.ReadU32(); err != nil {
		return m, err
	}
	for i := range m.VertexBufferOffsets {
		if m.VertexBufferOffsets[i], err = r.ReadU32(); err != nil {
			return m, err
		}
	}
	for i := range m.Strides {
		if m.Strides[i], err = r.ReadU32(); err != nil {
			return m, err
		}
	}
	if m.IndexBufferOffset, err = r.ReadU32(); err != nil {
		return m, err
	}
	if m.Unk8, err = r.ReadU32(); err != nil {
		return m, err
	}
	det, err := r.ReadU32()
	if err != nil {
		return m, err
	}
	m.DrawElementType = DrawElementType(det)
	if m.UseVertexSkinning, err = r.ReadU32(); err != nil {
		return m, err
	}
	if m.SortBias, err = r.ReadI32(); err != nil {
		return m, err
	}
	if m.DepthFlags, err = readDepthFlags(r); err != nil {
		return m, err
	}
	if m.BoundingInfo, err = readBoundingInfo(r); err != nil {
		return m, err
	}
	_, err = r.ReadArray(func(r *record.Reader, i int) error {
		a, err := readAttribute(r, minor)
		if err != nil {
			return err
		}
		m.Attributes = append(m.Attributes, a)
		return nil
	})
	return m, err
}

func writeMeshObject(w *record.Writer, m MeshObject, minor uint16) error {
	size := meshObjectSize()
	start := w.Reserve(size)
	if err := w.WriteString(record.DefaultAlignment, &m.Name); err != nil {
		return err
	}
	if err := w.WriteU64(m.SubIndex); err != nil {
		return err
	}
	if err := w.WriteString(record.DefaultAlignment, &m.ParentBoneName); err != nil {
		return err
	}
	if err := w.WriteU32(m.VertexCount); err != nil {
		return err
	}
	if err := w.WriteU32(m.VertexIndexCount); err != nil {
		return err
	}
	if err := w.WriteU32(m.Unk2); err != nil {
		return err
	}
	for _, off := range m.VertexBufferOffsets {
		if err := w.WriteU32(off); err != nil {
			return err
		}
	}
	for _, s := range m.Strides {
		if err := w.WriteU32(s); err != nil {
			return err
		}
	}
	if err := w.WriteU32(m.IndexBufferOffset); err != nil {
		return err
	}
	if err := w.WriteU32(m.Unk8); err != nil {
		return err
	}
	if err := w.WriteU32(uint32(m.DrawElementType)); err != nil {
		return err
	}
	if err := w.WriteU32(m.UseVertexSkinning); err != nil {
		return err
	}
	if err := w.WriteI32(m.SortBias); err != nil {
		return err
	}
	if err := m.DepthFlags.write(w); err != nil {
		return err
	}
	if err := m.BoundingInfo.write(w); err != nil {
		return err
	}
	attrSize := attributeSize(minor)
	if err := w.WriteArray(record.DefaultAlignment, len(m.Attributes), attrSize, func(w *record.Writer, i int) error {
		return writeAttribute(w, m.Attributes[i], minor)
	}); err != nil {
		return err
	}
	return w.Finish(start, size)
}

// VertexWeight is one bone-buffer entry for Mesh 1.8/1.9 rigging: a vertex
// index and its influence weight from the owning bone.
type VertexWeight struct {
	VertexIndex uint32
	Weight      float32
}

// BoneBuffer holds the vertex weights one bone contributes to a
// RiggingGroup. For Mesh 1.10, weights are u16-indexed and stored as an
// opaque byte blob rather than a typed VertexWeight array (grounded on
// VertexWeightV10 in the original schema; SPEC_FULL.md's data layer is
// responsible for interpreting it).
type BoneBuffer struct {
	BoneName string
	Weights  []VertexWeight // 1.8/1.9
	RawData  []byte         // 1.10
}

const vertexWeightSize = 4 + 4

func readBoneBuffer(r *record.Reader, minor uint16) (b BoneBuffer, err error) {
	name, err := r.ReadString()
	if err != nil {
		return b, err
	}
	if name != nil {
		b.BoneName = *name
	}
	if minor == 10 {
		b.RawData, err = r.ReadByteArray()
		return b, err
	}
	_, err = r.ReadArray(func(r *record.Reader, i int) error {
		var v VertexWeight
		var e error
		if v.VertexIndex, e = r.ReadU32(); e != nil {
			return e
		}
		if v.Weight, e = r.ReadF32(); e != nil {
			return e
		}
		b.Weights = append(b.Weights, v)
		return nil
	})
	return b, err
}

func writeBoneBuffer(w *record.Writer, b BoneBuffer, minor uint16) error {
	if err := w.WriteString(record.DefaultAlignment, &b.BoneName); err != nil {
		return err
	}
	if minor == 10 {
		return w.WriteByteArray(record.DefaultAlignment, b.RawData)
	}
	return w.WriteArray(record.DefaultAlignment, len(b.Weights), vertexWeightSize, func(w *record.Writer, i int) error {
		v := b.Weights[i]
		if err := w.WriteU32(v.VertexIndex); err != nil {
			return err
		}
		return w.WriteF32(v.Weight)
	})
}

// RiggingFlags carries the maximum bone influence count for a rigging group.
type RiggingFlags struct {
	MaxInfluences uint8
	Unk1          uint8
}

func readRiggingFlags(r *record.Reader) (f RiggingFlags, err error) {
	if f.MaxInfluences, err = r.ReadU8(); err != nil {
		return f, err
	}
	if f.Unk1, err = r.ReadU8(); err != nil {
		return f, err
	}
	r.Skip(6)
	return f, err
}

func (f RiggingFlags) write(w *record.Writer) error {
	if err := w.WriteU8(f.MaxInfluences); err != nil {
		return err
	}
	if err := w.WriteU8(f.Unk1); err != nil {
		return err
	}
	return w.WriteZeros(6)
}

// RiggingGroup is the vertex-skinning data for one MeshObject, given as a
// per-bone list of vertex/weight buffers.
type RiggingGroup struct {
	MeshObjectName     string
	MeshObjectSubIndex uint64
	Flags              RiggingFlags
	Buffers            []BoneBuffer
}

func readRiggingGroup(r *record.Reader, minor uint16) (g RiggingGroup, err error) {
	name, err := r.ReadString()
	if err != nil {
		return g, err
	}
	if name != nil {
		g.MeshObjectName = *name
	}
	if g.MeshObjectSubIndex, err = r.ReadU64(); err != nil {
		return g, err
	}
	if g.Flags, err = readRiggingFlags(r); err != nil {
		return g, err
	}
	_, err = r.ReadArray(func(r *record.Reader, i int) error {
		b, err := readBoneBuffer(r, minor)
		if err != nil {
			return err
		}
		g.Buffers = append(g.Buffers, b)
		return nil
	})
	return g, err
}

func writeRiggingGroup(w *record.Writer, g RiggingGroup, minor uint16) error {
	if err := w.WriteString(record.DefaultAlignment, &g.MeshObjectName); err != nil {
		return err
	}
	if err := w.WriteU64(g.MeshObjectSubIndex); err != nil {
		return err
	}
	if err := g.Flags.write(w); err != nil {
		return err
	}
	boneBufferSize := int64(8 + 16) // name offset(8) + weights/raw-data array or byte-buffer (offset+count, 16)
	return w.WriteArray(record.DefaultAlignment, len(g.Buffers), boneBufferSize, func(w *record.Writer, i int) error {
		return writeBoneBuffer(w, g.Buffers[i], minor)
	})
}

// Mesh is the geometric data for a model: named objects with attribute
// streams into shared vertex/index buffers, plus per-object rigging.
type Mesh struct {
	Version          Version
	ModelName        string
	BoundingInfo     BoundingInfo
	Unk1             uint32
	Objects          []MeshObject
	BufferSizes      []uint32
	PolygonIndexSize uint64
	VertexBuffers    [][]byte
	IndexBuffer      []byte
	RiggingBuffers   []RiggingGroup
}

var meshSchema = schema.RecordSchema{
	Name: "Mesh",
	Fields: []schema.Field{
		{Name: "model_name", Kind: schema.KindString, Size: 8},
		{Name: "bounding_info", Kind: schema.KindInline, Size: 100},
		{Name: "unk1", Kind: schema.KindInline, Size: 4},
		{Name: "objects", Kind: schema.KindArray, Size: 16},
		{Name: "buffer_sizes", Kind: schema.KindArray, Size: 16},
		{Name: "polygon_index_size", Kind: schema.KindInline, Size: 8},
		{Name: "vertex_buffers", Kind: schema.KindArray, Size: 16},
		{Name: "index_buffer", Kind: schema.KindArray, Size: 16},
		{Name: "rigging_buffers", Kind: schema.KindArray, Size: 16},
	},
}

// SizeInBytes implements schema.Sized. The top-level layout is identical
// across 1.8/1.9/1.10; only nested MeshObject and RiggingGroup shapes vary.
func (m *Mesh) SizeInBytes() int64 {
	return meshSchema.SizeInBytes(schema.Version{Major: m.Version.Major, Minor: m.Version.Minor})
}

// ReadMesh reads a Mesh record body for versions 1.8, 1.9, or 1.10.
func ReadMesh(r *record.Reader, v Version) (*Mesh, error) {
	if v.Major != 1 || (v.Minor != 8 && v.Minor != 9 && v.Minor != 10) {
		return nil, &record.InvalidDiscriminantError{Enum: "Mesh.version", Value: uint64(v.Major)<<16 | uint64(v.Minor)}
	}
	m := &Mesh{Version: v}

	name, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	if name != nil {
		m.ModelName = *name
	}
	if m.BoundingInfo, err = readBoundingInfo(r); err != nil {
		return nil, err
	}
	if m.Unk1, err = r.ReadU32(); err != nil {
		return nil, err
	}
	if _, err = r.ReadArray(func(r *record.Reader, i int) error {
		obj, err := readMeshObject(r, v.Minor)
		if err != nil {
			return err
		}
		m.Objects = append(m.Objects, obj)
		return nil
	}); err != nil {
		return nil, err
	}
	if _, err = r.ReadArray(func(r *record.Reader, i int) error {
		u, err := r.ReadU32()
		if err != nil {
			return err
		}
		m.BufferSizes = append(m.BufferSizes, u)
		return nil
	}); err != nil {
		return nil, err
	}
	if m.PolygonIndexSize, err = r.ReadU64(); err != nil {
		return nil, err
	}
	if _, err = r.ReadArray(func(r *record.Reader, i int) error {
		buf, err := r.ReadByteArray()
		if err != nil {
			return err
		}
		m.VertexBuffers = append(m.VertexBuffers, buf)
		return nil
	}); err != nil {
		return nil, err
	}
	if m.IndexBuffer, err = r.ReadByteArray(); err != nil {
		return nil, err
	}
	if _, err = r.ReadArray(func(r *record.Reader, i int) error {
		g, err := readRiggingGroup(r, v.Minor)
		if err != nil {
			return err
		}
		m.RiggingBuffers = append(m.RiggingBuffers, g)
		return nil
	}); err != nil {
		return nil, err
	}
	return m, nil
}

// WriteMesh writes a Mesh record body.
func WriteMesh(w *record.Writer, m *Mesh) error {
	sizeInBytes := m.SizeInBytes()
	start := w.Reserve(sizeInBytes)

	if err := w.WriteString(record.DefaultAlignment, &m.ModelName); err != nil {
		return err
	}
	if err := m.BoundingInfo.write(w); err != nil {
		return err
	}
	if err := w.WriteU32(m.Unk1); err != nil {
		return err
	}
	if err := w.WriteArray(record.DefaultAlignment, len(m.Objects), meshObjectSize(), func(w *record.Writer, i int) error {
		return writeMeshObject(w, m.Objects[i], m.Version.Minor)
	}); err != nil {
		return err
	}
	if err := w.WriteArray(record.DefaultAlignment, len(m.BufferSizes), 4, func(w *record.Writer, i int) error {
		return w.WriteU32(m.BufferSizes[i])
	}); err != nil {
		return err
	}
	if err := w.WriteU64(m.PolygonIndexSize); err != nil {
		return err
	}
	if err := w.WriteArray(record.DefaultAlignment, len(m.VertexBuffers), 16, func(w *record.Writer, i int) error {
		return w.WriteByteArray(record.DefaultAlignment, m.VertexBuffers[i])
	}); err != nil {
		return err
	}
	if err := w.WriteByteArray(record.DefaultAlignment, m.IndexBuffer); err != nil {
		return err
	}
	riggingGroupSize := int64(8 + 8 + 8 + 16)
	if err := w.WriteArray(record.DefaultAlignment, len(m.RiggingBuffers), riggingGroupSize, func(w *record.Writer, i int) error {
		return writeRiggingGroup(w, m.RiggingBuffers[i], m.Version.Minor)
	}); err != nil {
		return err
	}

	return w.Finish(start, sizeInBytes)
}
