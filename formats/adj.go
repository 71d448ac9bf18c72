package formats

import "github.com/ultimate-research/ssbh-go/internal/binary"

// AdjEntry marks where one Mesh object's adjacency indices begin in
// Adj's flat index buffer.
type AdjEntry struct {
	MeshObjectIndex    int32
	IndexBufferOffset  uint32
}

// Adj stores per-vertex adjacent-face vertex indices for a Mesh's
// objects, keyed by byte offset into a single flat index buffer rather
// than the offset-based encoding the rest of the format family uses:
// there is no HBSS container, and the trailing index buffer runs to the
// end of the file instead of carrying its own length.
type Adj struct {
	Entries     []AdjEntry
	IndexBuffer []int16
}

// ReadAdj parses an Adj file body.
func ReadAdj(data []byte) (*Adj, error) {
	r := binary.NewReader(data)
	count, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	a := &Adj{}
	for i := uint32(0); i < count; i++ {
		idx, err := r.ReadI32()
		if err != nil {
			return nil, err
		}
		offset, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		a.Entries = append(a.Entries, AdjEntry{MeshObjectIndex: idx, IndexBufferOffset: offset})
	}
	for r.Remaining() >= 2 {
		v, err := r.ReadI16()
		if err != nil {
			return nil, err
		}
		a.IndexBuffer = append(a.IndexBuffer, v)
	}
	return a, nil
}

// WriteAdj serializes a to a standalone Adj file.
func WriteAdj(a *Adj) ([]byte, error) {
	sink := binary.NewSink()
	w := binary.NewWriter(sink)
	if err := w.WriteU32(uint32(len(a.Entries))); err != nil {
		return nil, err
	}
	for _, e := range a.Entries {
		if err := w.WriteI32(e.MeshObjectIndex); err != nil {
			return nil, err
		}
		if err := w.WriteU32(e.IndexBufferOffset); err != nil {
			return nil, err
		}
	}
	for _, v := range a.IndexBuffer {
		if err := w.WriteI16(v); err != nil {
			return nil, err
		}
	}
	return sink.Bytes(), nil
}
