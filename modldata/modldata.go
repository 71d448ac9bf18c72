// Package modldata converts between the wire-level Modl record and
// ModlData, a flattened representation that trades the wire form's
// pointer-vs-string distinction for a single *string field.
package modldata

import "github.com/ultimate-research/ssbh-go/formats"

// ModlEntryData associates one mesh object (by name and sub-index) with a
// material label, mirroring formats.ModlEntry.
type ModlEntryData struct {
	MeshObjectName     string
	MeshObjectSubIndex uint64
	MaterialLabel      string
}

// ModlData is the data-layer view of a Modl file: the mesh, skeleton,
// materials, and optional animation that make up one model.
type ModlData struct {
	MajorVersion      uint16
	MinorVersion      uint16
	ModelName         string
	SkeletonFileName  string
	MaterialFileNames []string
	AnimationFileName *string
	MeshFileName      string
	Entries           []ModlEntryData
}

// FromModl converts a wire-level Modl into ModlData.
func FromModl(m *formats.Modl) *ModlData {
	d := &ModlData{
		MajorVersion:      m.Version.Major,
		MinorVersion:      m.Version.Minor,
		ModelName:         m.ModelName,
		SkeletonFileName:  m.SkeletonFileName,
		MeshFileName:      m.MeshFileName,
		AnimationFileName: m.AnimationFileName,
	}
	d.MaterialFileNames = append(d.MaterialFileNames, m.MaterialFileNames...)
	for _, e := range m.Entries {
		d.Entries = append(d.Entries, ModlEntryData{
			MeshObjectName:     e.MeshObjectName,
			MeshObjectSubIndex: e.MeshObjectSubIndex,
			MaterialLabel:      e.MaterialLabel,
		})
	}
	return d
}

// ToModl converts ModlData into a wire-level Modl using the data's own
// recorded version.
func ToModl(d *ModlData) *formats.Modl {
	m := &formats.Modl{
		Version:           formats.Version{Major: d.MajorVersion, Minor: d.MinorVersion},
		ModelName:         d.ModelName,
		SkeletonFileName:  d.SkeletonFileName,
		MeshFileName:      d.MeshFileName,
		AnimationFileName: d.AnimationFileName,
	}
	m.MaterialFileNames = append(m.MaterialFileNames, d.MaterialFileNames...)
	for _, e := range d.Entries {
		m.Entries = append(m.Entries, formats.ModlEntry{
			MeshObjectName:     e.MeshObjectName,
			MeshObjectSubIndex: e.MeshObjectSubIndex,
			MaterialLabel:      e.MaterialLabel,
		})
	}
	return m
}
