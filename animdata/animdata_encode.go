package animdata

import (
	"github.com/ultimate-research/ssbh-go/formats"
	"github.com/ultimate-research/ssbh-go/internal/trackcodec"
)

// TrackKindNotSupportedForVersionError is returned when encoding a track
// whose kind Anim 1.2's flat scheme has no representation for.
type TrackKindNotSupportedForVersionError struct {
	Kind formats.TrackTypeV2
}

func (e *TrackKindNotSupportedForVersionError) Error() string {
	return "animdata: track kind is not representable in anim version 1.2"
}

// ToAnim encodes d into a formats.Anim for the given version, choosing
// Compressed frame buffers for 2.0/2.1 tracks and the only representation
// 1.2 has (uncompressed, one buffer per track).
func ToAnim(d *AnimData, version formats.Version) (*formats.Anim, error) {
	a := &formats.Anim{
		Version:         version,
		Name:            d.Name,
		FinalFrameIndex: d.FinalFrameIndex,
	}

	switch {
	case version.Major == 1 && version.Minor == 2:
		for _, g := range d.Groups {
			for _, n := range g.Nodes {
				for _, t := range n.Tracks {
					trackType, buf, err := encodeV1Track(t.Values)
					if err != nil {
						return nil, err
					}
					bufferIndex := uint64(len(a.Buffers))
					a.Buffers = append(a.Buffers, buf)
					a.Tracks = append(a.Tracks, formats.TrackV1{
						Name:      t.Name,
						TrackType: trackType,
						Properties: []formats.Property{
							{Name: t.Name, BufferIndex: bufferIndex},
						},
					})
				}
			}
		}
		return a, nil

	case version.Major == 2 && (version.Minor == 0 || version.Minor == 1):
		for _, g := range d.Groups {
			group := formats.Group{GroupType: g.Type}
			for _, n := range g.Nodes {
				node := formats.Node{Name: n.Name}
				for _, t := range n.Tracks {
					buf, err := encodeV2Track(t.Values)
					if err != nil {
						return nil, err
					}
					offset := uint32(len(a.Buffer))
					a.Buffer = append(a.Buffer, buf...)
					node.Tracks = append(node.Tracks, formats.TrackV2{
						Name: t.Name,
						Flags: formats.TrackFlags{
							TrackType:       t.Values.Kind,
							CompressionType: formats.CompressionCompressed,
						},
						FrameCount: uint32(t.Values.FrameCount()),
						DataOffset: offset,
						DataSize:   uint64(len(buf)),
					})
				}
				group.Nodes = append(group.Nodes, node)
			}
			a.Groups = append(a.Groups, group)
		}
		return a, nil

	default:
		return nil, &UnsupportedAnimVersionError{Version: version}
	}
}

func encodeV1Track(v TrackValues) (formats.TrackTypeV1, []byte, error) {
	switch v.Kind {
	case formats.TrackTypeV2Transform:
		buf, err := trackcodec.EncodeTransformDirect(v.Transform)
		return formats.TrackTypeV1Transform, buf, err
	case formats.TrackTypeV2UvTransform:
		buf, err := trackcodec.EncodeUvTransformDirect(v.UvTransform)
		return formats.TrackTypeV1UvTransform, buf, err
	case formats.TrackTypeV2Boolean:
		buf, err := trackcodec.EncodeBooleanDirect(v.Boolean)
		return formats.TrackTypeV1Boolean, buf, err
	default:
		return 0, nil, &TrackKindNotSupportedForVersionError{Kind: v.Kind}
	}
}

func encodeV2Track(v TrackValues) ([]byte, error) {
	switch v.Kind {
	case formats.TrackTypeV2Transform:
		return trackcodec.EncodeTransformTrack(v.Transform)
	case formats.TrackTypeV2UvTransform:
		return trackcodec.EncodeUvTransformTrack(v.UvTransform)
	case formats.TrackTypeV2Float:
		buf, _, err := trackcodec.EncodeFloatTrack(v.Float)
		return buf, err
	case formats.TrackTypeV2PatternIndex:
		return trackcodec.EncodePatternIndexTrack(v.PatternIndex)
	case formats.TrackTypeV2Boolean:
		return trackcodec.EncodeBooleanTrack(v.Boolean)
	case formats.TrackTypeV2Vector4:
		return trackcodec.EncodeVector4Track(v.Vector4)
	default:
		return nil, &UnknownTrackTypeError{TrackType: uint64(v.Kind)}
	}
}
