package formats

import (
	"reflect"
	"testing"

	"github.com/ultimate-research/ssbh-go/internal/binary"
	"github.com/ultimate-research/ssbh-go/internal/record"
)

func TestModlRoundTrip(t *testing.T) {
	animFile := "a01waitloop.nuanmb"
	original := &Modl{
		Version:           Version{Major: 1, Minor: 7},
		ModelName:         "model",
		SkeletonFileName:  "model.nusktb",
		MaterialFileNames: []string{"model.numatb"},
		AnimationFileName: &animFile,
		MeshFileName:      "model.numshb",
		Entries: []ModlEntry{
			{MeshObjectName: "FaceN", MeshObjectSubIndex: 0, MaterialLabel: "face_mat"},
			{MeshObjectName: "Hat", MeshObjectSubIndex: 1, MaterialLabel: "hat_mat"},
		},
	}

	sink := binary.NewSink()
	w := record.NewWriter(sink)
	if err := WriteModl(w, original); err != nil {
		t.Fatalf("WriteModl: %v", err)
	}
	data := sink.Bytes()

	got, err := ReadModl(record.NewReader(data), original.Version)
	if err != nil {
		t.Fatalf("ReadModl: %v", err)
	}
	if !reflect.DeepEqual(got, original) {
		t.Fatalf("round trip mismatch:\n got: %+v\nwant: %+v", got, original)
	}
}

func TestModlRoundTripWithoutAnimationFile(t *testing.T) {
	original := &Modl{
		Version:           Version{Major: 1, Minor: 7},
		ModelName:         "model2",
		SkeletonFileName:  "model2.nusktb",
		MaterialFileNames: nil,
		AnimationFileName: nil,
		MeshFileName:      "model2.numshb",
		Entries:           nil,
	}

	sink := binary.NewSink()
	w := record.NewWriter(sink)
	if err := WriteModl(w, original); err != nil {
		t.Fatalf("WriteModl: %v", err)
	}
	data := sink.Bytes()

	got, err := ReadModl(record.NewReader(data), original.Version)
	if err != nil {
		t.Fatalf("ReadModl: %v", err)
	}
	if !reflect.DeepEqual(got, original) {
		t.Fatalf("round trip mismatch:\n got: %+v\nwant: %+v", got, original)
	}
}
