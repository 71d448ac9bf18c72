// Package hlpbdata converts between the wire-level Hlpb record and
// HlpbData, decomposing each AimConstraint's block of otherwise-opaque
// Unk floats into the aim vector, up vector, and two orientation
// quaternions they actually carry, and dropping the constant zero padding
// (Unk17-22) that every shipped file carries. ConstraintIndices and
// ConstraintTypes are not part of HlpbData: they are derived from the
// aim/orient slice lengths when converting back to Hlpb.
package hlpbdata

import "github.com/ultimate-research/ssbh-go/formats"

// AimConstraintData is the data-layer view of formats.AimConstraint.
type AimConstraintData struct {
	Name            string
	AimBoneName1    string
	AimBoneName2    string
	AimType1        string
	AimType2        string
	TargetBoneName1 string
	TargetBoneName2 string
	Unk1            int32
	Unk2            int32
	Aim             formats.Vector3
	Up              formats.Vector3
	Quat1           formats.Vector4
	Quat2           formats.Vector4
}

// OrientConstraintData is the data-layer view of formats.OrientConstraint,
// renamed to match ssbh_data's naming for the same fields.
type OrientConstraintData struct {
	Name            string
	ParentBoneName1 string
	ParentBoneName2 string
	SourceBoneName  string
	TargetBoneName  string
	UnkType         uint32
	ConstraintAxes  formats.Vector3
	Quat1           formats.Vector4
	Quat2           formats.Vector4
	RangeMin        formats.Vector3
	RangeMax        formats.Vector3
}

// HlpbData is the data-layer view of a Hlpb file's helper-bone constraints.
type HlpbData struct {
	MajorVersion      uint16
	MinorVersion      uint16
	AimConstraints    []AimConstraintData
	OrientConstraints []OrientConstraintData
}

// FromHlpb converts a wire-level Hlpb into HlpbData.
func FromHlpb(h *formats.Hlpb) *HlpbData {
	d := &HlpbData{
		MajorVersion: h.Version.Major,
		MinorVersion: h.Version.Minor,
	}
	for _, a := range h.AimConstraints {
		d.AimConstraints = append(d.AimConstraints, AimConstraintData{
			Name:            a.Name,
			AimBoneName1:    a.AimBoneName1,
			AimBoneName2:    a.AimBoneName2,
			AimType1:        a.AimType1,
			AimType2:        a.AimType2,
			TargetBoneName1: a.TargetBoneName1,
			TargetBoneName2: a.TargetBoneName2,
			Unk1:            a.Unk1,
			Unk2:            a.Unk2,
			Aim:             formats.Vector3{X: a.Unk3, Y: a.Unk4, Z: a.Unk5},
			Up:              formats.Vector3{X: a.Unk6, Y: a.Unk7, Z: a.Unk8},
			Quat1:           formats.Vector4{X: a.Unk9, Y: a.Unk10, Z: a.Unk11, W: a.Unk12},
			Quat2:           formats.Vector4{X: a.Unk13, Y: a.Unk14, Z: a.Unk15, W: a.Unk16},
		})
	}
	for _, o := range h.OrientConstraints {
		d.OrientConstraints = append(d.OrientConstraints, OrientConstraintData{
			Name:            o.Name,
			ParentBoneName1: o.BoneName,
			ParentBoneName2: o.RootBoneName,
			SourceBoneName:  o.ParentBoneName,
			TargetBoneName:  o.DriverBoneName,
			UnkType:         o.UnkType,
			ConstraintAxes:  o.ConstraintAxes,
			Quat1:           o.Quat1,
			Quat2:           o.Quat2,
			RangeMin:        o.RangeMin,
			RangeMax:        o.RangeMax,
		})
	}
	return d
}

// ToHlpb converts HlpbData into a wire-level Hlpb, synthesizing
// ConstraintIndices and ConstraintTypes from the aim/orient slice order:
// aim constraints are listed first (indices 0..len(aim)), followed by
// orient constraints (indices 0..len(orient)).
func ToHlpb(d *HlpbData) *formats.Hlpb {
	h := &formats.Hlpb{
		Version: formats.Version{Major: d.MajorVersion, Minor: d.MinorVersion},
	}
	for _, a := range d.AimConstraints {
		h.AimConstraints = append(h.AimConstraints, formats.AimConstraint{
			Name:            a.Name,
			AimBoneName1:    a.AimBoneName1,
			AimBoneName2:    a.AimBoneName2,
			AimType1:        a.AimType1,
			AimType2:        a.AimType2,
			TargetBoneName1: a.TargetBoneName1,
			TargetBoneName2: a.TargetBoneName2,
			Unk1:            a.Unk1,
			Unk2:            a.Unk2,
			Unk3:            a.Aim.X,
			Unk4:            a.Aim.Y,
			Unk5:            a.Aim.Z,
			Unk6:            a.Up.X,
			Unk7:            a.Up.Y,
			Unk8:            a.Up.Z,
			Unk9:            a.Quat1.X,
			Unk10:           a.Quat1.Y,
			Unk11:           a.Quat1.Z,
			Unk12:           a.Quat1.W,
			Unk13:           a.Quat2.X,
			Unk14:           a.Quat2.Y,
			Unk15:           a.Quat2.Z,
			Unk16:           a.Quat2.W,
		})
	}
	for _, o := range d.OrientConstraints {
		h.OrientConstraints = append(h.OrientConstraints, formats.OrientConstraint{
			Name:           o.Name,
			BoneName:       o.ParentBoneName1,
			RootBoneName:   o.ParentBoneName2,
			ParentBoneName: o.SourceBoneName,
			DriverBoneName: o.TargetBoneName,
			UnkType:        o.UnkType,
			ConstraintAxes: o.ConstraintAxes,
			Quat1:          o.Quat1,
			Quat2:          o.Quat2,
			RangeMin:       o.RangeMin,
			RangeMax:       o.RangeMax,
		})
	}
	for i := range d.AimConstraints {
		h.ConstraintIndices = append(h.ConstraintIndices, uint32(i))
		h.ConstraintTypes = append(h.ConstraintTypes, formats.ConstraintTypeAim)
	}
	for i := range d.OrientConstraints {
		h.ConstraintIndices = append(h.ConstraintIndices, uint32(i))
		h.ConstraintTypes = append(h.ConstraintTypes, formats.ConstraintTypeOrient)
	}
	return h
}
