package formats

import (
	"github.com/ultimate-research/ssbh-go/internal/record"
	"github.com/ultimate-research/ssbh-go/internal/schema"
)

// BillboardType controls how a bone-parented mesh object is reoriented to
// face the camera.
type BillboardType uint8

const (
	BillboardDisabled                BillboardType = 0
	BillboardXAxisViewPointAligned   BillboardType = 1
	BillboardYAxisViewPointAligned   BillboardType = 2
	BillboardUnk3                    BillboardType = 3
	BillboardXYAxisViewPointAligned  BillboardType = 4
	BillboardYAxisViewPlaneAligned   BillboardType = 6
	BillboardXYAxisViewPlaneAligned  BillboardType = 8
)

// SkelEntryFlags is a packed 4-byte flag word: unk1, billboard type, and two
// pad bytes.
type SkelEntryFlags struct {
	Unk1          uint8
	BillboardType BillboardType
}

func readSkelEntryFlags(r *record.Reader) (f SkelEntryFlags, err error) {
	if f.Unk1, err = r.ReadU8(); err != nil {
		return f, err
	}
	b, err := r.ReadU8()
	if err != nil {
		return f, err
	}
	f.BillboardType = BillboardType(b)
	r.Skip(2)
	return f, nil
}

func (f SkelEntryFlags) write(w *record.Writer) error {
	if err := w.WriteU8(f.Unk1); err != nil {
		return err
	}
	if err := w.WriteU8(uint8(f.BillboardType)); err != nil {
		return err
	}
	return w.WriteZeros(2)
}

// SkelBoneEntry names one bone and places it in the skeleton's hierarchy.
type SkelBoneEntry struct {
	Name        string
	Index       uint16
	ParentIndex int16
	Flags       SkelEntryFlags
}

const skelBoneEntrySize = 8 + 2 + 2 + 4

func readSkelBoneEntry(r *record.Reader) (b SkelBoneEntry, err error) {
	name, err := r.ReadString()
	if err != nil {
		return b, err
	}
	if name != nil {
		b.Name = *name
	}
	if b.Index, err = r.ReadU16(); err != nil {
		return b, err
	}
	if b.ParentIndex, err = r.ReadI16(); err != nil {
		return b, err
	}
	b.Flags, err = readSkelEntryFlags(r)
	return b, err
}

func writeSkelBoneEntry(w *record.Writer, b SkelBoneEntry) error {
	start := w.Reserve(skelBoneEntrySize)
	if err := w.WriteString(record.DefaultAlignment, &b.Name); err != nil {
		return err
	}
	if err := w.WriteU16(b.Index); err != nil {
		return err
	}
	if err := w.WriteI16(b.ParentIndex); err != nil {
		return err
	}
	if err := b.Flags.write(w); err != nil {
		return err
	}
	return w.Finish(start, skelBoneEntrySize)
}

// Skel is the model's skeleton: an ordered bone hierarchy plus the world,
// inverse-world, local, and inverse-local transform for each bone, in
// parallel arrays indexed the same way as BoneEntries.
type Skel struct {
	Version           Version
	BoneEntries       []SkelBoneEntry
	WorldTransforms   []Matrix4x4
	InvWorldTransforms []Matrix4x4
	Transforms        []Matrix4x4
	InvTransforms     []Matrix4x4
}

var skelSchema = schema.RecordSchema{
	Name: "Skel",
	Fields: []schema.Field{
		{Name: "bone_entries", Kind: schema.KindArray, Size: 16},
		{Name: "world_transforms", Kind: schema.KindArray, Size: 16},
		{Name: "inv_world_transforms", Kind: schema.KindArray, Size: 16},
		{Name: "transforms", Kind: schema.KindArray, Size: 16},
		{Name: "inv_transforms", Kind: schema.KindArray, Size: 16},
	},
}

// SizeInBytes implements schema.Sized.
func (s *Skel) SizeInBytes() int64 {
	return skelSchema.SizeInBytes(schema.Version{Major: s.Version.Major, Minor: s.Version.Minor})
}

func readMatrix4x4Array(r *record.Reader) ([]Matrix4x4, error) {
	var out []Matrix4x4
	_, err := r.ReadArray(func(r *record.Reader, i int) error {
		m, err := readMatrix4x4(r)
		if err != nil {
			return err
		}
		out = append(out, m)
		return nil
	})
	return out, err
}

func writeMatrix4x4Array(w *record.Writer, values []Matrix4x4) error {
	return w.WriteArray(record.DefaultAlignment, len(values), 64, func(w *record.Writer, i int) error {
		return values[i].write(w)
	})
}

// ReadSkel reads a Skel record body.
func ReadSkel(r *record.Reader, v Version) (*Skel, error) {
	if v.Major != 1 || v.Minor != 0 {
		return nil, &record.InvalidDiscriminantError{Enum: "Skel.version", Value: uint64(v.Major)<<16 | uint64(v.Minor)}
	}
	s := &Skel{Version: v}
	var err error
	if _, err = r.ReadArray(func(r *record.Reader, i int) error {
		b, err := readSkelBoneEntry(r)
		if err != nil {
			return err
		}
		s.BoneEntries = append(s.BoneEntries, b)
		return nil
	}); err != nil {
		return nil, err
	}
	if s.WorldTransforms, err = readMatrix4x4Array(r); err != nil {
		return nil, err
	}
	if s.InvWorldTransforms, err = readMatrix4x4Array(r); err != nil {
		return nil, err
	}
	if s.Transforms, err = readMatrix4x4Array(r); err != nil {
		return nil, err
	}
	if s.InvTransforms, err = readMatrix4x4Array(r); err != nil {
		return nil, err
	}
	return s, nil
}

// WriteSkel writes a Skel record body.
func WriteSkel(w *record.Writer, s *Skel) error {
	sizeInBytes := s.SizeInBytes()
	start := w.Reserve(sizeInBytes)

	if err := w.WriteArray(record.DefaultAlignment, len(s.BoneEntries), skelBoneEntrySize, func(w *record.Writer, i int) error {
		return writeSkelBoneEntry(w, s.BoneEntries[i])
	}); err != nil {
		return err
	}
	if err := writeMatrix4x4Array(w, s.WorldTransforms); err != nil {
		return err
	}
	if err := writeMatrix4x4Array(w, s.InvWorldTransforms); err != nil {
		return err
	}
	if err := writeMatrix4x4Array(w, s.Transforms); err != nil {
		return err
	}
	if err := writeMatrix4x4Array(w, s.InvTransforms); err != nil {
		return err
	}

	return w.Finish(start, sizeInBytes)
}
