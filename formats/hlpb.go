package formats

import (
	"github.com/ultimate-research/ssbh-go/internal/record"
	"github.com/ultimate-research/ssbh-go/internal/schema"
)

// ConstraintType discriminates the two kinds of helper-bone constraint a
// Hlpb file's constraint_types array can name.
type ConstraintType uint32

const (
	ConstraintTypeAim    ConstraintType = 0
	ConstraintTypeOrient ConstraintType = 1
)

// AimConstraint programmatically aims one bone at another. Most fields are
// fixed constants observed in shipped files rather than meaningfully
// variable parameters; they are preserved verbatim for round-trip fidelity.
type AimConstraint struct {
	Name            string
	AimBoneName1    string
	AimBoneName2    string
	AimType1        string
	AimType2        string
	TargetBoneName1 string
	TargetBoneName2 string
	Unk1            int32
	Unk2            int32
	Unk3            float32
	Unk4            float32
	Unk5            float32
	Unk6            float32
	Unk7            float32
	Unk8            float32
	Unk9            float32
	Unk10           float32
	Unk11           float32
	Unk12           float32
	Unk13           float32
	Unk14           float32
	Unk15           float32
	Unk16           float32
	Unk17           float32
	Unk18           float32
	Unk19           float32
	Unk20           float32
	Unk21           float32
	Unk22           float32
}

const aimConstraintSize = 7*8 + 2*4 + 20*4

func readAimConstraint(r *record.Reader) (a AimConstraint, err error) {
	strs := make([]*string, 7)
	for i := range strs {
		if strs[i], err = r.ReadString(); err != nil {
			return a, err
		}
	}
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	a.Name = deref(strs[0])
	a.AimBoneName1 = deref(strs[1])
	a.AimBoneName2 = deref(strs[2])
	a.AimType1 = deref(strs[3])
	a.AimType2 = deref(strs[4])
	a.TargetBoneName1 = deref(strs[5])
	a.TargetBoneName2 = deref(strs[6])

	if a.Unk1, err = r.ReadI32(); err != nil {
		return a, err
	}
	if a.Unk2, err = r.ReadI32(); err != nil {
		return a, err
	}
	floats := []*float32{
		&a.Unk3, &a.Unk4, &a.Unk5, &a.Unk6, &a.Unk7, &a.Unk8, &a.Unk9, &a.Unk10,
		&a.Unk11, &a.Unk12, &a.Unk13, &a.Unk14, &a.Unk15, &a.Unk16, &a.Unk17,
		&a.Unk18, &a.Unk19, &a.Unk20, &a.Unk21, &a.Unk22,
	}
	for _, f := range floats {
		if *f, err = r.ReadF32(); err != nil {
			return a, err
		}
	}
	return a, nil
}

func writeAimConstraint(w *record.Writer, a AimConstraint) error {
	start := w.Reserve(aimConstraintSize)
	strs := []string{
		a.Name, a.AimBoneName1, a.AimBoneName2, a.AimType1, a.AimType2,
		a.TargetBoneName1, a.TargetBoneName2,
	}
	for i := range strs {
		if err := w.WriteString(record.DefaultAlignment, &strs[i]); err != nil {
			return err
		}
	}
	if err := w.WriteI32(a.Unk1); err != nil {
		return err
	}
	if err := w.WriteI32(a.Unk2); err != nil {
		return err
	}
	floats := []float32{
		a.Unk3, a.Unk4, a.Unk5, a.Unk6, a.Unk7, a.Unk8, a.Unk9, a.Unk10,
		a.Unk11, a.Unk12, a.Unk13, a.Unk14, a.Unk15, a.Unk16, a.Unk17,
		a.Unk18, a.Unk19, a.Unk20, a.Unk21, a.Unk22,
	}
	for _, f := range floats {
		if err := w.WriteF32(f); err != nil {
			return err
		}
	}
	return w.Finish(start, aimConstraintSize)
}

// OrientConstraint constrains a bone's orientation to follow another bone,
// similar to Maya's orient constraint.
type OrientConstraint struct {
	Name            string
	BoneName        string
	RootBoneName    string
	ParentBoneName  string
	DriverBoneName  string
	UnkType         uint32
	ConstraintAxes  Vector3
	Quat1           Vector4
	Quat2           Vector4
	RangeMin        Vector3
	RangeMax        Vector3
}

const orientConstraintSize = 5*8 + 4 + 3*4 + 4*4 + 4*4 + 3*4 + 3*4

func readOrientConstraint(r *record.Reader) (o OrientConstraint, err error) {
	strs := make([]*string, 5)
	for i := range strs {
		if strs[i], err = r.ReadString(); err != nil {
			return o, err
		}
	}
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	o.Name = deref(strs[0])
	o.BoneName = deref(strs[1])
	o.RootBoneName = deref(strs[2])
	o.ParentBoneName = deref(strs[3])
	o.DriverBoneName = deref(strs[4])

	if o.UnkType, err = r.ReadU32(); err != nil {
		return o, err
	}
	if o.ConstraintAxes, err = readVector3(r); err != nil {
		return o, err
	}
	if o.Quat1, err = readVector4(r); err != nil {
		return o, err
	}
	if o.Quat2, err = readVector4(r); err != nil {
		return o, err
	}
	if o.RangeMin, err = readVector3(r); err != nil {
		return o, err
	}
	o.RangeMax, err = readVector3(r)
	return o, err
}

func writeOrientConstraint(w *record.Writer, o OrientConstraint) error {
	start := w.Reserve(orientConstraintSize)
	strs := []string{o.Name, o.BoneName, o.RootBoneName, o.ParentBoneName, o.DriverBoneName}
	for i := range strs {
		if err := w.WriteString(record.DefaultAlignment, &strs[i]); err != nil {
			return err
		}
	}
	if err := w.WriteU32(o.UnkType); err != nil {
		return err
	}
	if err := o.ConstraintAxes.write(w); err != nil {
		return err
	}
	if err := o.Quat1.write(w); err != nil {
		return err
	}
	if err := o.Quat2.write(w); err != nil {
		return err
	}
	if err := o.RangeMin.write(w); err != nil {
		return err
	}
	if err := o.RangeMax.write(w); err != nil {
		return err
	}
	return w.Finish(start, orientConstraintSize)
}

// Hlpb holds helper-bone constraints. Only version 1.1 is defined; the
// single-variant tagged union still models version gating explicitly so
// adding 1.2 later is a matter of adding a case, not restructuring.
type Hlpb struct {
	Version            Version
	AimConstraints     []AimConstraint
	OrientConstraints  []OrientConstraint
	ConstraintIndices  []uint32
	ConstraintTypes    []ConstraintType
}

var hlpbSchema = schema.RecordSchema{
	Name: "Hlpb",
	Fields: []schema.Field{
		{Name: "aim_constraints", Kind: schema.KindArray, Size: 16},
		{Name: "orient_constraints", Kind: schema.KindArray, Size: 16},
		{Name: "constraint_indices", Kind: schema.KindArray, Size: 16},
		{Name: "constraint_types", Kind: schema.KindArray, Size: 16},
	},
}

// SizeInBytes implements schema.Sized: the record's own footprint before
// its four arrays' targets, per hlpbSchema.
func (h *Hlpb) SizeInBytes() int64 {
	return hlpbSchema.SizeInBytes(schema.Version{Major: h.Version.Major, Minor: h.Version.Minor})
}

// ReadHlpb reads a Hlpb record body (the caller has already consumed the
// SSBH container header and dispatched on version).
func ReadHlpb(r *record.Reader, v Version) (*Hlpb, error) {
	if v.Major != 1 || v.Minor != 1 {
		return nil, &record.InvalidDiscriminantError{Enum: "Hlpb.version", Value: uint64(v.Major)<<16 | uint64(v.Minor)}
	}
	h := &Hlpb{Version: v}

	if _, err := r.ReadArray(func(r *record.Reader, i int) error {
		a, err := readAimConstraint(r)
		if err != nil {
			return err
		}
		h.AimConstraints = append(h.AimConstraints, a)
		return nil
	}); err != nil {
		return nil, err
	}

	if _, err := r.ReadArray(func(r *record.Reader, i int) error {
		o, err := readOrientConstraint(r)
		if err != nil {
			return err
		}
		h.OrientConstraints = append(h.OrientConstraints, o)
		return nil
	}); err != nil {
		return nil, err
	}

	if _, err := r.ReadArray(func(r *record.Reader, i int) error {
		v, err := r.ReadU32()
		if err != nil {
			return err
		}
		h.ConstraintIndices = append(h.ConstraintIndices, v)
		return nil
	}); err != nil {
		return nil, err
	}

	if _, err := r.ReadArray(func(r *record.Reader, i int) error {
		v, err := r.ReadU32()
		if err != nil {
			return err
		}
		h.ConstraintTypes = append(h.ConstraintTypes, ConstraintType(v))
		return nil
	}); err != nil {
		return nil, err
	}

	return h, nil
}

// WriteHlpb writes a Hlpb record body.
func WriteHlpb(w *record.Writer, h *Hlpb) error {
	sizeInBytes := h.SizeInBytes()
	start := w.Reserve(sizeInBytes)

	if err := w.WriteArray(schema.DefaultAlignment, len(h.AimConstraints), aimConstraintSize, func(w *record.Writer, i int) error {
		return writeAimConstraint(w, h.AimConstraints[i])
	}); err != nil {
		return err
	}
	if err := w.WriteArray(schema.DefaultAlignment, len(h.OrientConstraints), orientConstraintSize, func(w *record.Writer, i int) error {
		return writeOrientConstraint(w, h.OrientConstraints[i])
	}); err != nil {
		return err
	}
	if err := w.WriteArray(schema.DefaultAlignment, len(h.ConstraintIndices), 4, func(w *record.Writer, i int) error {
		return w.WriteU32(h.ConstraintIndices[i])
	}); err != nil {
		return err
	}
	if err := w.WriteArray(schema.DefaultAlignment, len(h.ConstraintTypes), 4, func(w *record.Writer, i int) error {
		return w.WriteU32(uint32(h.ConstraintTypes[i]))
	}); err != nil {
		return err
	}

	return w.Finish(start, sizeInBytes)
}
