// Package skeldata converts between the wire-level Skel record and
// SkelData, a flattened bone hierarchy that stores each bone's transform
// relative to its parent instead of the four redundant world/inverse-world/
// local/inverse-local arrays Skel carries for fast lookup.
package skeldata

import "github.com/ultimate-research/ssbh-go/formats"

// BoneData names one bone, its transform relative to its parent, and its
// parent's index into the same slice (nil for a root bone).
type BoneData struct {
	Name        string
	Transform   formats.Matrix4x4
	ParentIndex *int
}

// SkelData is the data-layer view of a Skel file's bone hierarchy.
type SkelData struct {
	MajorVersion uint16
	MinorVersion uint16
	Bones        []BoneData
}

// BoneCycleError reports that walking a bone's ancestor chain revisited a
// bone already seen, so CalculateWorldTransform stopped rather than
// looping forever.
type BoneCycleError struct {
	Index int
}

func (e *BoneCycleError) Error() string {
	return "cyclical bone chains are not supported: a cycle was detected"
}

// CalculateWorldTransform accumulates bone's transform with its ancestors'
// transforms by walking up the hierarchy, returning bone.Transform *
// parent.Transform * grandparent.Transform * ... A parent index that is out
// of range for d.Bones silently stops the walk, treating that bone as the
// effective root. A cycle in the parent chain is reported as a
// *BoneCycleError instead of looping forever.
func (d *SkelData) CalculateWorldTransform(bone *BoneData) (formats.Matrix4x4, error) {
	transform := fromMatrix4x4(bone.Transform)
	current := bone

	visited := make(map[int]bool)
	for current.ParentIndex != nil {
		parentIndex := *current.ParentIndex
		if visited[parentIndex] {
			return formats.Matrix4x4{}, &BoneCycleError{Index: parentIndex}
		}
		visited[parentIndex] = true

		if parentIndex < 0 || parentIndex >= len(d.Bones) {
			break
		}
		parent := &d.Bones[parentIndex]
		transform = transform.mul(fromMatrix4x4(parent.Transform))
		current = parent
	}
	return transform.toMatrix4x4(), nil
}

// CalculateRelativeTransform returns worldTransform expressed relative to
// parentWorldTransform (inverse(parentWorldTransform) * worldTransform), or
// a copy of worldTransform unchanged when parentWorldTransform is nil.
func CalculateRelativeTransform(worldTransform formats.Matrix4x4, parentWorldTransform *formats.Matrix4x4) formats.Matrix4x4 {
	if parentWorldTransform == nil {
		return worldTransform
	}
	parentInv := fromMatrix4x4(*parentWorldTransform).inverse()
	return parentInv.mul(fromMatrix4x4(worldTransform)).toMatrix4x4()
}

// FromSkel converts a wire-level Skel into SkelData. The relative transform
// for each bone is read directly from Skel.Transforms; the world and
// inverse arrays are redundant caches this conversion discards, since
// CalculateWorldTransform can always reconstruct them.
func FromSkel(s *formats.Skel) *SkelData {
	d := &SkelData{
		MajorVersion: s.Version.Major,
		MinorVersion: s.Version.Minor,
	}
	for i, entry := range s.BoneEntries {
		var transform formats.Matrix4x4
		if i < len(s.Transforms) {
			transform = s.Transforms[i]
		}
		var parent *int
		if entry.ParentIndex >= 0 {
			p := int(entry.ParentIndex)
			parent = &p
		}
		d.Bones = append(d.Bones, BoneData{
			Name:        entry.Name,
			Transform:   transform,
			ParentIndex: parent,
		})
	}
	return d
}

// ToSkel converts SkelData into a wire-level Skel, recomputing the world,
// inverse-world, and inverse-local transform arrays that Skel caches
// alongside each bone's relative transform. A cycle in the parent chain
// aborts the conversion with a *BoneCycleError.
func ToSkel(d *SkelData) (*formats.Skel, error) {
	s := &formats.Skel{
		Version: formats.Version{Major: d.MajorVersion, Minor: d.MinorVersion},
	}

	for i, bone := range d.Bones {
		parentIndex := int16(-1)
		if bone.ParentIndex != nil {
			parentIndex = int16(*bone.ParentIndex)
		}
		s.BoneEntries = append(s.BoneEntries, formats.SkelBoneEntry{
			Name:        bone.Name,
			Index:       uint16(i),
			ParentIndex: parentIndex,
			Flags:       formats.SkelEntryFlags{Unk1: 1, BillboardType: formats.BillboardDisabled},
		})

		world, err := d.CalculateWorldTransform(&d.Bones[i])
		if err != nil {
			return nil, err
		}
		s.WorldTransforms = append(s.WorldTransforms, world)
		s.InvWorldTransforms = append(s.InvWorldTransforms, fromMatrix4x4(world).inverse().toMatrix4x4())
		s.Transforms = append(s.Transforms, bone.Transform)
		s.InvTransforms = append(s.InvTransforms, fromMatrix4x4(bone.Transform).inverse().toMatrix4x4())
	}

	return s, nil
}
