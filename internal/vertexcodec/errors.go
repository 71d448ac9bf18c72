package vertexcodec

import (
	"fmt"

	"github.com/ultimate-research/ssbh-go/formats"
)

// AttributeOutOfBoundsError is returned when an attribute's declared
// (buffer index, stride, offset) would read past the end of its buffer, or
// when two streams destined for the same buffer disagree on vertex count.
type AttributeOutOfBoundsError struct {
	Usage       formats.AttributeUsage
	BufferIndex uint32
	VertexIndex uint32
}

func (e *AttributeOutOfBoundsError) Error() string {
	return fmt.Sprintf("vertexcodec: attribute %v out of bounds in buffer %d at vertex %d", e.Usage, e.BufferIndex, e.VertexIndex)
}

// UnknownAttributeSemanticError is returned for a data type this codec
// doesn't recognize.
type UnknownAttributeSemanticError struct {
	DataType uint32
}

func (e *UnknownAttributeSemanticError) Error() string {
	return fmt.Sprintf("vertexcodec: unknown attribute data type %d", e.DataType)
}

// UnsupportedMeshVersionError is returned when the caller asks for encoding
// semantics of a Mesh minor version the codec doesn't implement.
type UnsupportedMeshVersionError struct {
	Minor uint16
}

func (e *UnsupportedMeshVersionError) Error() string {
	return fmt.Sprintf("vertexcodec: unsupported mesh version 1.%d", e.Minor)
}
