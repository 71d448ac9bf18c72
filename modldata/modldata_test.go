package modldata

import (
	"reflect"
	"testing"

	"github.com/ultimate-research/ssbh-go/formats"
)

func sampleModlData() *ModlData {
	anim := "c"
	return &ModlData{
		MajorVersion:      1,
		MinorVersion:      7,
		ModelName:         "a",
		SkeletonFileName:  "b",
		MaterialFileNames: []string{"f1", "f2"},
		AnimationFileName: &anim,
		MeshFileName:      "d",
		Entries: []ModlEntryData{
			{MeshObjectName: "a", MeshObjectSubIndex: 2, MaterialLabel: "b"},
		},
	}
}

func TestModlDataRoundTripsThroughModl(t *testing.T) {
	data := sampleModlData()

	m := ToModl(data)
	if m.Version != (formats.Version{Major: 1, Minor: 7}) {
		t.Fatalf("unexpected version: %+v", m.Version)
	}
	if m.AnimationFileName == nil || *m.AnimationFileName != "c" {
		t.Fatalf("expected animation file name %q, got %v", "c", m.AnimationFileName)
	}

	got := FromModl(m)
	if !reflect.DeepEqual(data, got) {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, data)
	}
}

func TestModlDataHandlesAbsentAnimationFileName(t *testing.T) {
	data := sampleModlData()
	data.AnimationFileName = nil

	m := ToModl(data)
	if m.AnimationFileName != nil {
		t.Fatalf("expected nil animation file name, got %v", m.AnimationFileName)
	}

	got := FromModl(m)
	if got.AnimationFileName != nil {
		t.Errorf("expected nil animation file name after round trip, got %v", got.AnimationFileName)
	}
}
