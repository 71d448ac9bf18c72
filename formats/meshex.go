package formats

import (
	"github.com/ultimate-research/ssbh-go/internal/binary"
	"github.com/ultimate-research/ssbh-go/internal/record"
)

// meshExAlignment is the whole-file alignment MeshEx pads its output to,
// and the alignment every top-level pointer target inside it uses.
const meshExAlignment = 16

// MeshEntry associates one Mesh object with the mesh object group its
// bounding sphere was merged into.
type MeshEntry struct {
	MeshObjectGroupIndex uint32
	Unk1                 Vector3
}

const meshEntrySize = 4 + 12

func readMeshEntry(r *record.Reader) (m MeshEntry, err error) {
	if m.MeshObjectGroupIndex, err = r.ReadU32(); err != nil {
		return m, err
	}
	m.Unk1, err = readVector3(r)
	return m, err
}

func writeMeshEntry(w *record.Writer, m MeshEntry) error {
	if err := w.WriteU32(m.MeshObjectGroupIndex); err != nil {
		return err
	}
	return m.Unk1.write(w)
}

// AllData is a single record combining the file's overall bounding
// sphere and name.
type AllData struct {
	BoundingSphere BoundingSphere
	Name           string
}

func readAllData(r *record.Reader) (a AllData, err error) {
	if a.BoundingSphere, err = readBoundingSphere(r); err != nil {
		return a, err
	}
	name, err := r.ReadString()
	if err != nil {
		return a, err
	}
	if name != nil {
		a.Name = *name
	}
	return a, nil
}

func writeAllData(w *record.Writer, a AllData) error {
	if err := a.BoundingSphere.write(w); err != nil {
		return err
	}
	return w.WriteString(meshExAlignment, &a.Name)
}

// MeshObjectGroup merges the bounding spheres of every Mesh object sharing
// one name.
type MeshObjectGroup struct {
	BoundingSphere     BoundingSphere
	MeshObjectFullName string
	MeshObjectName     string
}

func readMeshObjectGroup(r *record.Reader) (g MeshObjectGroup, err error) {
	if g.BoundingSphere, err = readBoundingSphere(r); err != nil {
		return g, err
	}
	full, err := r.ReadString()
	if err != nil {
		return g, err
	}
	if full != nil {
		g.MeshObjectFullName = *full
	}
	name, err := r.ReadString()
	if err != nil {
		return g, err
	}
	if name != nil {
		g.MeshObjectName = *name
	}
	return g, nil
}

func writeMeshObjectGroup(w *record.Writer, g MeshObjectGroup) error {
	if err := g.BoundingSphere.write(w); err != nil {
		return err
	}
	if err := w.WriteString(4, &g.MeshObjectFullName); err != nil {
		return err
	}
	return w.WriteString(4, &g.MeshObjectName)
}

// EntryFlag is a per-MeshEntry visibility/shadow bitfield.
type EntryFlag struct {
	DrawModel  bool
	CastShadow bool
	Unk3       bool
	Unk4       bool
	Unk5       bool
}

func readEntryFlag(r *record.Reader) (f EntryFlag, err error) {
	word, err := r.ReadU16()
	if err != nil {
		return f, err
	}
	f.DrawModel = word&1 != 0
	f.CastShadow = word&2 != 0
	f.Unk3 = word&8 != 0
	f.Unk4 = word&16 != 0
	f.Unk5 = word&32 != 0
	return f, nil
}

func writeEntryFlag(w *record.Writer, f EntryFlag) error {
	var word uint16
	if f.DrawModel {
		word |= 1
	}
	if f.CastShadow {
		word |= 2
	}
	if f.Unk3 {
		word |= 8
	}
	if f.Unk4 {
		word |= 16
	}
	if f.Unk5 {
		word |= 32
	}
	return w.WriteU16(word)
}

// MeshEx bundles extended bounding-sphere and visibility data for a
// Mesh's objects. Unlike the rest of the format family, MeshEx has no
// HBSS container header: its pointer targets carry no embedded lengths
// and instead take their counts from the header's entry_count and
// mesh_object_group_count fields, and the whole file is padded to a
// 16-byte boundary with its total length recorded at offset 0.
type MeshEx struct {
	AllData          AllData
	MeshObjectGroups []MeshObjectGroup
	Entries          []MeshEntry
	EntryFlags       []EntryFlag
	Unk1             uint32
}

// ReadMeshEx parses a MeshEx file body (called directly by the top-level
// dispatcher, bypassing the HBSS magic/version resolution the rest of the
// family uses).
func ReadMeshEx(data []byte) (*MeshEx, error) {
	r := record.NewReader(data)
	if _, err := r.ReadU64(); err != nil { // file_length, recomputed on write
		return nil, err
	}
	entryCount, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	groupCount, err := r.ReadU32()
	if err != nil {
		return nil, err
	}

	m := &MeshEx{}
	if _, err := r.ReadPointer(func(r *record.Reader) error {
		m.AllData, err = readAllData(r)
		return err
	}); err != nil {
		return nil, err
	}
	if _, err := r.ReadPointer(func(r *record.Reader) error {
		for i := uint32(0); i < groupCount; i++ {
			g, err := readMeshObjectGroup(r)
			if err != nil {
				return err
			}
			m.MeshObjectGroups = append(m.MeshObjectGroups, g)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if _, err := r.ReadPointer(func(r *record.Reader) error {
		for i := uint32(0); i < entryCount; i++ {
			e, err := readMeshEntry(r)
			if err != nil {
				return err
			}
			m.Entries = append(m.Entries, e)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if _, err := r.ReadPointer(func(r *record.Reader) error {
		for i := uint32(0); i < entryCount; i++ {
			f, err := readEntryFlag(r)
			if err != nil {
				return err
			}
			m.EntryFlags = append(m.EntryFlags, f)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	m.Unk1, err = r.ReadU32()
	return m, err
}

// WriteMeshEx serializes m to a standalone MeshEx file, recomputing
// file_length and padding the whole output to a 16-byte boundary.
func WriteMeshEx(m *MeshEx) ([]byte, error) {
	if len(m.Entries) != len(m.EntryFlags) {
		return nil, record.ErrInvalidArray
	}

	sink := binary.NewSink()
	w := record.NewWriter(sink)
	w.Reserve(52) // file_length(8) + 2 counts(4+4) + 4 pointers(8 each) + unk1(4)

	if err := w.WriteU64(0); err != nil { // file_length placeholder
		return nil, err
	}
	if err := w.WriteU32(uint32(len(m.Entries))); err != nil {
		return nil, err
	}
	if err := w.WriteU32(uint32(len(m.MeshObjectGroups))); err != nil {
		return nil, err
	}
	if err := w.WritePointer(meshExAlignment, true, func(w *record.Writer) error {
		return writeAllData(w, m.AllData)
	}); err != nil {
		return nil, err
	}
	if err := w.WritePointer(meshExAlignment, len(m.MeshObjectGroups) > 0, func(w *record.Writer) error {
		for _, g := range m.MeshObjectGroups {
			if err := writeMeshObjectGroup(w, g); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if err := w.WritePointer(meshExAlignment, len(m.Entries) > 0, func(w *record.Writer) error {
		for _, e := range m.Entries {
			if err := writeMeshEntry(w, e); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if err := w.WritePointer(meshExAlignment, len(m.EntryFlags) > 0, func(w *record.Writer) error {
		for _, f := range m.EntryFlags {
			if err := writeEntryFlag(w, f); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if err := w.WriteU32(m.Unk1); err != nil {
		return nil, err
	}

	size := sink.Len()
	newSize := binary.AlignUp(size, meshExAlignment)
	if newSize > size {
		w.Seek(size)
		if err := w.WriteZeros(newSize - size); err != nil {
			return nil, err
		}
	}
	w.Seek(0)
	if err := w.WriteU64(uint64(newSize)); err != nil {
		return nil, err
	}
	return sink.Bytes(), nil
}
