package animdata

import (
	"testing"

	"github.com/ultimate-research/ssbh-go/formats"
	"github.com/ultimate-research/ssbh-go/internal/trackcodec"
)

func identityTransforms(n int) []trackcodec.Transform {
	out := make([]trackcodec.Transform, n)
	for i := range out {
		out[i] = trackcodec.Transform{
			Scale:       formats.Vector3{X: 1, Y: 1, Z: 1},
			Rotation:    formats.Vector4{X: 0, Y: 0, Z: 0, W: 1},
			Translation: formats.Vector3{X: float32(i), Y: 0, Z: 0},
		}
	}
	return out
}

// A rotation track with min=max=(0,0,0,1) encodes with bit_width=0 and a
// single constant; decoding produces (0,0,0,1) for every frame, and
// re-encoding the decoded data reproduces the same bytes.
func TestConstantRotationTrackRoundTripsThroughAnimData(t *testing.T) {
	frames := identityTransforms(6)
	d := &AnimData{
		Version:         formats.Version{Major: 2, Minor: 0},
		Name:            "c00master",
		FinalFrameIndex: float32(len(frames) - 1),
		Groups: []GroupData{{
			Type: formats.GroupTypeTransform,
			Nodes: []NodeData{{
				Name: "root",
				Tracks: []TrackData{{
					Name:   "Transform",
					Values: TrackValues{Kind: formats.TrackTypeV2Transform, Transform: frames},
				}},
			}},
		}},
	}

	a, err := ToAnim(d, formats.Version{Major: 2, Minor: 0})
	if err != nil {
		t.Fatalf("ToAnim: %v", err)
	}

	got, err := FromAnim(a)
	if err != nil {
		t.Fatalf("FromAnim: %v", err)
	}
	decoded := got.Groups[0].Nodes[0].Tracks[0].Values.Transform
	for i, f := range decoded {
		if f.Rotation != (formats.Vector4{X: 0, Y: 0, Z: 0, W: 1}) {
			t.Fatalf("frame %d: expected identity rotation, got %+v", i, f.Rotation)
		}
	}

	a2, err := ToAnim(got, formats.Version{Major: 2, Minor: 0})
	if err != nil {
		t.Fatalf("re-encode ToAnim: %v", err)
	}
	if len(a.Buffer) != len(a2.Buffer) {
		t.Fatalf("expected re-encoding to produce a buffer of the same length, got %d vs %d", len(a.Buffer), len(a2.Buffer))
	}
	for i := range a.Buffer {
		if a.Buffer[i] != a2.Buffer[i] {
			t.Fatalf("re-encoding a decoded constant-rotation track did not reproduce the same bytes at index %d", i)
		}
	}
}

func TestAnimDataRoundTripsThroughV1Scheme(t *testing.T) {
	frames := identityTransforms(3)
	frames[1].Translation = formats.Vector3{X: 1, Y: 2, Z: 3}
	d := &AnimData{
		Version: formats.Version{Major: 1, Minor: 2},
		Name:    "vis_c00",
		Groups: []GroupData{{
			Type: formats.GroupTypeTransform,
			Nodes: []NodeData{{
				Name: "Trans1",
				Tracks: []TrackData{{
					Name:   "Trans1",
					Values: TrackValues{Kind: formats.TrackTypeV2Transform, Transform: frames},
				}},
			}},
		}},
	}

	a, err := ToAnim(d, formats.Version{Major: 1, Minor: 2})
	if err != nil {
		t.Fatalf("ToAnim: %v", err)
	}
	if len(a.Tracks) != 1 || len(a.Buffers) != 1 {
		t.Fatalf("expected one flat track and one buffer, got %d tracks, %d buffers", len(a.Tracks), len(a.Buffers))
	}

	got, err := FromAnim(a)
	if err != nil {
		t.Fatalf("FromAnim: %v", err)
	}
	decoded := got.Groups[0].Nodes[0].Tracks[0].Values.Transform
	if len(decoded) != len(frames) {
		t.Fatalf("expected %d frames, got %d", len(frames), len(decoded))
	}
	for i, f := range frames {
		if decoded[i].Translation != f.Translation {
			t.Errorf("frame %d: want translation %+v, got %+v", i, f.Translation, decoded[i].Translation)
		}
	}
}

func TestToAnimRejectsUnsupportedVersion(t *testing.T) {
	d := &AnimData{}
	_, err := ToAnim(d, formats.Version{Major: 3, Minor: 0})
	if _, ok := err.(*UnsupportedAnimVersionError); !ok {
		t.Fatalf("expected *UnsupportedAnimVersionError, got %v", err)
	}
}

func TestToAnimV1RejectsUnsupportedTrackKind(t *testing.T) {
	d := &AnimData{
		Groups: []GroupData{{
			Nodes: []NodeData{{
				Tracks: []TrackData{{
					Values: TrackValues{Kind: formats.TrackTypeV2Vector4, Vector4: []formats.Vector4{{}}},
				}},
			}},
		}},
	}
	_, err := ToAnim(d, formats.Version{Major: 1, Minor: 2})
	if _, ok := err.(*TrackKindNotSupportedForVersionError); !ok {
		t.Fatalf("expected *TrackKindNotSupportedForVersionError, got %v", err)
	}
}

func TestFromAnimRejectsUnsupportedVersion(t *testing.T) {
	a := &formats.Anim{Version: formats.Version{Major: 9, Minor: 9}}
	_, err := FromAnim(a)
	if _, ok := err.(*UnsupportedAnimVersionError); !ok {
		t.Fatalf("expected *UnsupportedAnimVersionError, got %v", err)
	}
}
