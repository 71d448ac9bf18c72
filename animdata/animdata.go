// Package animdata is a version-independent façade over formats.Anim: it
// normalizes 1.2's flat Track/Property/buffer-index scheme and 2.0/2.1's
// Group/Node/TrackV2 scheme into one shape, decoding every track's frame
// buffer (Direct, Constant, ConstTransform or Compressed) into plain Go
// slices via internal/trackcodec.
package animdata

import (
	"github.com/ultimate-research/ssbh-go/formats"
	"github.com/ultimate-research/ssbh-go/internal/trackcodec"
)

// AnimData is a fully decoded animation: every group's every node's every
// track has its frame buffer expanded into a TrackValues slice, regardless
// of how compactly the source file stored it.
type AnimData struct {
	Version         formats.Version
	Name            string
	FinalFrameIndex float32
	Groups          []GroupData
}

// GroupData is one top-level animation category (Transform, Visibility,
// Material, Camera) containing named nodes.
type GroupData struct {
	Type  formats.GroupType
	Nodes []NodeData
}

// NodeData names one animated target (a bone or material handle) and its
// tracks.
type NodeData struct {
	Name   string
	Tracks []TrackData
}

// TrackData names one animated property and holds its decoded values.
type TrackData struct {
	Name   string
	Values TrackValues
}

// TrackValues is a tagged union over the six track payload shapes the
// format supports; Kind says which of the slices below is populated.
type TrackValues struct {
	Kind         formats.TrackTypeV2
	Transform    []trackcodec.Transform
	UvTransform  []trackcodec.UvTransform
	Float        []float32
	PatternIndex []uint32
	Boolean      []bool
	Vector4      []formats.Vector4
}

// FrameCount reports how many frames this track's values slice holds,
// regardless of which kind is populated.
func (v TrackValues) FrameCount() int {
	switch v.Kind {
	case formats.TrackTypeV2Transform:
		return len(v.Transform)
	case formats.TrackTypeV2UvTransform:
		return len(v.UvTransform)
	case formats.TrackTypeV2Float:
		return len(v.Float)
	case formats.TrackTypeV2PatternIndex:
		return len(v.PatternIndex)
	case formats.TrackTypeV2Boolean:
		return len(v.Boolean)
	case formats.TrackTypeV2Vector4:
		return len(v.Vector4)
	default:
		return 0
	}
}

// groupTypeForV1 guesses a 2.0-style GroupType for a 1.2 track from its
// TrackTypeV1, since 1.2 has no group concept of its own but 2.0 groups the
// same track kinds under matching categories.
func groupTypeForV1(t formats.TrackTypeV1) formats.GroupType {
	switch t {
	case formats.TrackTypeV1UvTransform:
		return formats.GroupTypeMaterial
	case formats.TrackTypeV1Boolean:
		return formats.GroupTypeVisibility
	default:
		return formats.GroupTypeTransform
	}
}

func v2KindForV1(t formats.TrackTypeV1) formats.TrackTypeV2 {
	switch t {
	case formats.TrackTypeV1UvTransform:
		return formats.TrackTypeV2UvTransform
	case formats.TrackTypeV1Boolean:
		return formats.TrackTypeV2Boolean
	default:
		return formats.TrackTypeV2Transform
	}
}

// FromAnim decodes every track in a into a version-independent AnimData.
func FromAnim(a *formats.Anim) (*AnimData, error) {
	d := &AnimData{
		Version:         a.Version,
		Name:            a.Name,
		FinalFrameIndex: a.FinalFrameIndex,
	}

	switch {
	case a.Version.Major == 1 && a.Version.Minor == 2:
		for _, t := range a.Tracks {
			values, err := decodeV1Track(a, t)
			if err != nil {
				return nil, err
			}
			d.Groups = append(d.Groups, GroupData{
				Type: groupTypeForV1(t.TrackType),
				Nodes: []NodeData{{
					Name:   t.Name,
					Tracks: []TrackData{{Name: t.Name, Values: values}},
				}},
			})
		}
		return d, nil

	case a.Version.Major == 2 && (a.Version.Minor == 0 || a.Version.Minor == 1):
		for _, g := range a.Groups {
			gd := GroupData{Type: g.GroupType}
			for _, n := range g.Nodes {
				nd := NodeData{Name: n.Name}
				for _, t := range n.Tracks {
					if int(t.DataOffset)+int(t.DataSize) > len(a.Buffer) {
						return nil, &TrackDataOutOfBoundsError{Track: t.Name}
					}
					data := a.Buffer[t.DataOffset : t.DataOffset+uint32(t.DataSize)]
					values, err := decodeV2Track(data, t.Flags.TrackType, t.Flags.CompressionType, t.FrameCount)
					if err != nil {
						return nil, err
					}
					nd.Tracks = append(nd.Tracks, TrackData{Name: t.Name, Values: values})
				}
				gd.Nodes = append(gd.Nodes, nd)
			}
			d.Groups = append(d.Groups, gd)
		}
		return d, nil

	default:
		return nil, &UnsupportedAnimVersionError{Version: a.Version}
	}
}

func decodeV1Track(a *formats.Anim, t formats.TrackV1) (TrackValues, error) {
	kind := v2KindForV1(t.TrackType)
	if len(t.Properties) == 0 {
		return TrackValues{Kind: kind}, nil
	}
	idx := t.Properties[0].BufferIndex
	if int(idx) >= len(a.Buffers) {
		return TrackValues{}, &TrackDataOutOfBoundsError{Track: t.Name}
	}
	buf := a.Buffers[idx]

	switch t.TrackType {
	case formats.TrackTypeV1Transform:
		count := len(buf) / trackcodec.TransformFrameSize
		values, err := trackcodec.DecodeTransformTrack(buf, formats.CompressionDirect, uint32(count))
		return TrackValues{Kind: kind, Transform: values}, err
	case formats.TrackTypeV1UvTransform:
		count := len(buf) / trackcodec.UvTransformFrameSize
		values, err := trackcodec.DecodeUvTransformTrack(buf, formats.CompressionDirect, uint32(count))
		return TrackValues{Kind: kind, UvTransform: values}, err
	case formats.TrackTypeV1Boolean:
		values, err := trackcodec.DecodeBooleanTrack(buf, formats.CompressionDirect, uint32(len(buf)))
		return TrackValues{Kind: kind, Boolean: values}, err
	default:
		return TrackValues{}, &UnknownTrackTypeError{TrackType: uint64(t.TrackType)}
	}
}

func decodeV2Track(data []byte, kind formats.TrackTypeV2, compression formats.CompressionType, frameCount uint32) (TrackValues, error) {
	switch kind {
	case formats.TrackTypeV2Transform:
		values, err := trackcodec.DecodeTransformTrack(data, compression, frameCount)
		return TrackValues{Kind: kind, Transform: values}, err
	case formats.TrackTypeV2UvTransform:
		values, err := trackcodec.DecodeUvTransformTrack(data, compression, frameCount)
		return TrackValues{Kind: kind, UvTransform: values}, err
	case formats.TrackTypeV2Float:
		values, err := trackcodec.DecodeFloatTrack(data, compression, frameCount)
		return TrackValues{Kind: kind, Float: values}, err
	case formats.TrackTypeV2PatternIndex:
		values, err := trackcodec.DecodePatternIndexTrack(data, compression, frameCount)
		return TrackValues{Kind: kind, PatternIndex: values}, err
	case formats.TrackTypeV2Boolean:
		values, err := trackcodec.DecodeBooleanTrack(data, compression, frameCount)
		return TrackValues{Kind: kind, Boolean: values}, err
	case formats.TrackTypeV2Vector4:
		values, err := trackcodec.DecodeVector4Track(data, compression, frameCount)
		return TrackValues{Kind: kind, Vector4: values}, err
	default:
		return TrackValues{}, &UnknownTrackTypeError{TrackType: uint64(kind)}
	}
}
