package formats

import (
	"github.com/ultimate-research/ssbh-go/internal/record"
	"github.com/ultimate-research/ssbh-go/internal/schema"
)

// ModlEntry associates one Mesh object (by name and sub-index) with a Matl
// material label.
type ModlEntry struct {
	MeshObjectName    string
	MeshObjectSubIndex uint64
	MaterialLabel     string
}

const modlEntrySize = 8 + 8 + 8

func readModlEntry(r *record.Reader) (m ModlEntry, err error) {
	name, err := r.ReadString()
	if err != nil {
		return m, err
	}
	if name != nil {
		m.MeshObjectName = *name
	}
	if m.MeshObjectSubIndex, err = r.ReadU64(); err != nil {
		return m, err
	}
	label, err := r.ReadString()
	if err != nil {
		return m, err
	}
	if label != nil {
		m.MaterialLabel = *label
	}
	return m, nil
}

func writeModlEntry(w *record.Writer, m ModlEntry) error {
	start := w.Reserve(modlEntrySize)
	if err := w.WriteString(record.DefaultAlignment, &m.MeshObjectName); err != nil {
		return err
	}
	if err := w.WriteU64(m.MeshObjectSubIndex); err != nil {
		return err
	}
	if err := w.WriteString(record.DefaultAlignment, &m.MaterialLabel); err != nil {
		return err
	}
	return w.Finish(start, modlEntrySize)
}

// Modl ties together the mesh, skeleton, materials, and (optionally)
// animation that make up one model.
type Modl struct {
	Version            Version
	ModelName          string
	SkeletonFileName   string
	MaterialFileNames  []string
	AnimationFileName  *string // nil when absent (pointer field, not just an empty string)
	MeshFileName       string  // stored 4-byte aligned (SsbhString8) per the original schema
	Entries            []ModlEntry
}

var modlSchema = schema.RecordSchema{
	Name: "Modl",
	Fields: []schema.Field{
		{Name: "model_name", Kind: schema.KindString, Size: 8},
		{Name: "skeleton_file_name", Kind: schema.KindString, Size: 8},
		{Name: "material_file_names", Kind: schema.KindArray, Size: 16},
		{Name: "animation_file_name", Kind: schema.KindPointer, Size: 8},
		{Name: "mesh_file_name", Kind: schema.KindString, Size: 8, Alignment: 4},
		{Name: "entries", Kind: schema.KindArray, Size: 16},
	},
}

// SizeInBytes implements schema.Sized.
func (m *Modl) SizeInBytes() int64 {
	return modlSchema.SizeInBytes(schema.Version{Major: m.Version.Major, Minor: m.Version.Minor})
}

// ReadModl reads a Modl record body.
func ReadModl(r *record.Reader, v Version) (*Modl, error) {
	if v.Major != 1 || v.Minor != 7 {
		return nil, &record.InvalidDiscriminantError{Enum: "Modl.version", Value: uint64(v.Major)<<16 | uint64(v.Minor)}
	}
	m := &Modl{Version: v}

	name, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	if name != nil {
		m.ModelName = *name
	}

	skel, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	if skel != nil {
		m.SkeletonFileName = *skel
	}

	if m.MaterialFileNames, err = readStringArray(r); err != nil {
		return nil, err
	}

	present, err := r.ReadPointer(func(r *record.Reader) error {
		s, err := r.ReadString()
		if err != nil {
			return err
		}
		val := ""
		if s != nil {
			val = *s
		}
		m.AnimationFileName = &val
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !present {
		m.AnimationFileName = nil
	}

	mesh, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	if mesh != nil {
		m.MeshFileName = *mesh
	}

	if _, err = r.ReadArray(func(r *record.Reader, i int) error {
		e, err := readModlEntry(r)
		if err != nil {
			return err
		}
		m.Entries = append(m.Entries, e)
		return nil
	}); err != nil {
		return nil, err
	}

	return m, nil
}

// WriteModl writes a Modl record body.
func WriteModl(w *record.Writer, m *Modl) error {
	sizeInBytes := m.SizeInBytes()
	start := w.Reserve(sizeInBytes)

	if err := w.WriteString(record.DefaultAlignment, &m.ModelName); err != nil {
		return err
	}
	if err := w.WriteString(record.DefaultAlignment, &m.SkeletonFileName); err != nil {
		return err
	}
	if err := writeStringArray(w, m.MaterialFileNames); err != nil {
		return err
	}
	if err := w.WritePointer(record.DefaultAlignment, m.AnimationFileName != nil, func(w *record.Writer) error {
		return w.WriteString(record.DefaultAlignment, m.AnimationFileName)
	}); err != nil {
		return err
	}
	if err := w.WriteString(4, &m.MeshFileName); err != nil {
		return err
	}
	if err := w.WriteArray(record.DefaultAlignment, len(m.Entries), modlEntrySize, func(w *record.Writer, i int) error {
		return writeModlEntry(w, m.Entries[i])
	}); err != nil {
		return err
	}

	return w.Finish(start, sizeInBytes)
}
