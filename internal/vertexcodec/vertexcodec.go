// Package vertexcodec decodes and encodes the raw interleaved byte buffers
// a Mesh object's attributes point into. It knows nothing about SsbhArray
// offsets or record alignment; formats.Mesh has already resolved those. Its
// only job is turning (buffer, stride, offset, data type) into per-vertex
// float slices and back.
package vertexcodec

import (
	"github.com/ultimate-research/ssbh-go/formats"
	"github.com/ultimate-research/ssbh-go/internal/binary"
)

// byteSize returns the on-disk footprint of one attribute value, or 0 for
// an unrecognized data type.
func byteSize(dt formats.AttributeDataType) int64 {
	switch dt {
	case formats.AttributeDataTypeFloat2:
		return 8
	case formats.AttributeDataTypeFloat3:
		return 12
	case formats.AttributeDataTypeFloat4:
		return 16
	case formats.AttributeDataTypeHalfFloat2:
		return 4
	case formats.AttributeDataTypeHalfFloat4:
		return 8
	case formats.AttributeDataTypeByte4:
		return 4
	default:
		return 0
	}
}

// ComponentCount returns how many scalar components a data type packs, or 0
// if unrecognized.
func ComponentCount(dt formats.AttributeDataType) int {
	switch dt {
	case formats.AttributeDataTypeFloat2, formats.AttributeDataTypeHalfFloat2:
		return 2
	case formats.AttributeDataTypeFloat3:
		return 3
	case formats.AttributeDataTypeFloat4, formats.AttributeDataTypeHalfFloat4, formats.AttributeDataTypeByte4:
		return 4
	default:
		return 0
	}
}

func readComponents(r *binary.Reader, dt formats.AttributeDataType) ([]float32, error) {
	n := ComponentCount(dt)
	if n == 0 {
		return nil, &UnknownAttributeSemanticError{DataType: uint32(dt)}
	}
	out := make([]float32, n)
	switch dt {
	case formats.AttributeDataTypeFloat2, formats.AttributeDataTypeFloat3, formats.AttributeDataTypeFloat4:
		for i := range out {
			v, err := r.ReadF32()
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
	case formats.AttributeDataTypeHalfFloat2, formats.AttributeDataTypeHalfFloat4:
		for i := range out {
			v, err := r.ReadF16()
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
	case formats.AttributeDataTypeByte4:
		for i := range out {
			b, err := r.ReadU8()
			if err != nil {
				return nil, err
			}
			out[i] = float32(b) / 255
		}
	}
	return out, nil
}

func writeComponents(w *binary.Writer, dt formats.AttributeDataType, values []float32) error {
	switch dt {
	case formats.AttributeDataTypeFloat2, formats.AttributeDataTypeFloat3, formats.AttributeDataTypeFloat4:
		for _, v := range values {
			if err := w.WriteF32(v); err != nil {
				return err
			}
		}
	case formats.AttributeDataTypeHalfFloat2, formats.AttributeDataTypeHalfFloat4:
		for _, v := range values {
			if err := w.WriteF16(v); err != nil {
				return err
			}
		}
	case formats.AttributeDataTypeByte4:
		for _, v := range values {
			if err := w.WriteU8(quantizeByte(v)); err != nil {
				return err
			}
		}
	default:
		return &UnknownAttributeSemanticError{DataType: uint32(dt)}
	}
	return nil
}

func quantizeByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// DecodeAttribute extracts one attribute's per-vertex component values from
// the mesh's shared vertex buffers, for a MeshObject's declared VertexCount.
func DecodeAttribute(mesh *formats.Mesh, obj *formats.MeshObject, attr formats.Attribute) ([][]float32, error) {
	if int(attr.BufferIndex) >= len(mesh.VertexBuffers) {
		return nil, &AttributeOutOfBoundsError{Usage: attr.Usage, BufferIndex: attr.BufferIndex}
	}
	buf := mesh.VertexBuffers[attr.BufferIndex]
	size := byteSize(attr.DataType)
	if size == 0 {
		return nil, &UnknownAttributeSemanticError{DataType: uint32(attr.DataType)}
	}
	stride := int64(obj.Strides[attr.BufferIndex])
	base := int64(obj.VertexBufferOffsets[attr.BufferIndex]) + int64(attr.BufferOffset)

	r := binary.NewReader(buf)
	out := make([][]float32, obj.VertexCount)
	for i := uint32(0); i < obj.VertexCount; i++ {
		pos := base + int64(i)*stride
		if pos < 0 || pos+size > int64(len(buf)) {
			return nil, &AttributeOutOfBoundsError{Usage: attr.Usage, BufferIndex: attr.BufferIndex, VertexIndex: i}
		}
		r.Seek(pos)
		vals, err := readComponents(r, attr.DataType)
		if err != nil {
			return nil, err
		}
		out[i] = vals
	}
	return out, nil
}

// EncodedAttribute is one attribute stream awaiting interleaving into a
// shared buffer: BufferOffset and stride are filled in by EncodeBuffer.
type EncodedAttribute struct {
	Usage        formats.AttributeUsage
	Name         string
	SubIndex     uint64
	DataType     formats.AttributeDataType
	BufferOffset uint32
	Values       [][]float32
}

// EncodeBuffer tightly interleaves a set of attribute streams that share one
// vertex buffer, assigning each attribute a cumulative BufferOffset the way
// the game's own tools lay out vertex data. All streams must carry the same
// vertex count. Returns the packed bytes and the resulting per-vertex stride.
func EncodeBuffer(attrs []*EncodedAttribute) ([]byte, uint32, error) {
	if len(attrs) == 0 {
		return nil, 0, nil
	}
	vertexCount := len(attrs[0].Values)
	var stride uint32
	for _, a := range attrs {
		if len(a.Values) != vertexCount {
			return nil, 0, &AttributeOutOfBoundsError{Usage: a.Usage}
		}
		a.BufferOffset = stride
		size := byteSize(a.DataType)
		if size == 0 {
			return nil, 0, &UnknownAttributeSemanticError{DataType: uint32(a.DataType)}
		}
		stride += uint32(size)
	}

	sink := binary.NewSink()
	w := binary.NewWriter(sink)
	if vertexCount > 0 {
		if err := w.WriteZeros(int64(stride) * int64(vertexCount)); err != nil {
			return nil, 0, err
		}
	}
	for _, a := range attrs {
		for i, vals := range a.Values {
			w.Seek(int64(i)*int64(stride) + int64(a.BufferOffset))
			if err := writeComponents(w, a.DataType, vals); err != nil {
				return nil, 0, err
			}
		}
	}
	return sink.Bytes(), stride, nil
}
