package formats

import (
	"reflect"
	"testing"

	"github.com/ultimate-research/ssbh-go/internal/binary"
	"github.com/ultimate-research/ssbh-go/internal/record"
)

func TestHlpbRoundTrip(t *testing.T) {
	original := &Hlpb{
		Version: Version{Major: 1, Minor: 1},
		AimConstraints: []AimConstraint{
			{
				Name: "Mario_Aim1", AimBoneName1: "ArmL", AimBoneName2: "ArmR",
				AimType1: "DEFAULT", AimType2: "DEFAULT",
				TargetBoneName1: "Hip", TargetBoneName2: "Head",
				Unk1: 1, Unk2: 0,
				Unk3: 1, Unk4: 0, Unk5: 0, Unk6: 0, Unk7: 1, Unk8: 0, Unk9: 0, Unk10: 0,
				Unk11: 0, Unk12: 0, Unk13: 1, Unk14: 0, Unk15: 0, Unk16: 0, Unk17: 0,
				Unk18: 0, Unk19: 0, Unk20: 0, Unk21: 0, Unk22: 0,
			},
		},
		OrientConstraints: []OrientConstraint{
			{
				Name: "Mario_Orient1", BoneName: "Head", RootBoneName: "Hip",
				ParentBoneName: "Waist", DriverBoneName: "Chest",
				UnkType:        1,
				ConstraintAxes: Vector3{X: 1, Y: 0, Z: 0},
				Quat1:          Vector4{X: 0, Y: 0, Z: 0, W: 1},
				Quat2:          Vector4{X: 0, Y: 0, Z: 0, W: 1},
				RangeMin:       Vector3{X: -90, Y: -90, Z: -90},
				RangeMax:       Vector3{X: 90, Y: 90, Z: 90},
			},
		},
		ConstraintIndices: []uint32{0, 1},
		ConstraintTypes:   []ConstraintType{ConstraintTypeAim, ConstraintTypeOrient},
	}

	sink := binary.NewSink()
	w := record.NewWriter(sink)
	if err := WriteHlpb(w, original); err != nil {
		t.Fatalf("WriteHlpb: %v", err)
	}
	data := sink.Bytes()

	got, err := ReadHlpb(record.NewReader(data), original.Version)
	if err != nil {
		t.Fatalf("ReadHlpb: %v", err)
	}
	if !reflect.DeepEqual(got, original) {
		t.Fatalf("round trip mismatch:\n got: %+v\nwant: %+v", got, original)
	}
}
