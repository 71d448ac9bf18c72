package skeldata

import (
	"math"
	"testing"

	"github.com/ultimate-research/ssbh-go/formats"
)

func mat4Identity() formats.Matrix4x4 {
	return formats.Matrix4x4{
		Row0: formats.Vector4{X: 1, Y: 0, Z: 0, W: 0},
		Row1: formats.Vector4{X: 0, Y: 1, Z: 0, W: 0},
		Row2: formats.Vector4{X: 0, Y: 0, Z: 1, W: 0},
		Row3: formats.Vector4{X: 0, Y: 0, Z: 0, W: 1},
	}
}

func mat4Rows(rows [4][4]float32) formats.Matrix4x4 {
	return formats.Matrix4x4{
		Row0: formats.Vector4{X: rows[0][0], Y: rows[0][1], Z: rows[0][2], W: rows[0][3]},
		Row1: formats.Vector4{X: rows[1][0], Y: rows[1][1], Z: rows[1][2], W: rows[1][3]},
		Row2: formats.Vector4{X: rows[2][0], Y: rows[2][1], Z: rows[2][2], W: rows[2][3]},
		Row3: formats.Vector4{X: rows[3][0], Y: rows[3][1], Z: rows[3][2], W: rows[3][3]},
	}
}

func assertMatricesApproxEqual(t *testing.T, got, want formats.Matrix4x4) {
	t.Helper()
	g, w := fromMatrix4x4(got), fromMatrix4x4(want)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if math.Abs(float64(g[i][j]-w[i][j])) > 0.0001 {
				t.Errorf("matrix mismatch at [%d][%d]: got %v, want %v\nfull got:  %v\nfull want: %v", i, j, g[i][j], w[i][j], g, w)
				return
			}
		}
	}
}

func TestFromSkelBoneWithNoParent(t *testing.T) {
	s := &formats.Skel{
		Version: formats.Version{Major: 1, Minor: 0},
		BoneEntries: []formats.SkelBoneEntry{
			{Name: "abc", Index: 2, ParentIndex: -1},
		},
		Transforms: []formats.Matrix4x4{mat4Identity()},
	}
	data := FromSkel(s)
	if data.Bones[0].Name != "abc" {
		t.Errorf("name = %q, want %q", data.Bones[0].Name, "abc")
	}
	if data.Bones[0].ParentIndex != nil {
		t.Errorf("parent index = %v, want nil", data.Bones[0].ParentIndex)
	}
	assertMatricesApproxEqual(t, data.Bones[0].Transform, mat4Identity())
}

func TestFromSkelTreatsNegativeParentIndexAsNoParent(t *testing.T) {
	s := &formats.Skel{
		Version:     formats.Version{Major: 1, Minor: 0},
		BoneEntries: []formats.SkelBoneEntry{{Name: "abc", Index: 2, ParentIndex: -5}},
		Transforms:  []formats.Matrix4x4{mat4Identity()},
	}
	data := FromSkel(s)
	if data.Bones[0].ParentIndex != nil {
		t.Errorf("parent index = %v, want nil", data.Bones[0].ParentIndex)
	}
}

func TestCalculateRelativeTransformWithParent(t *testing.T) {
	world := mat4Rows([4][4]float32{
		{2, 0, 0, 0},
		{0, 4, 0, 0},
		{0, 0, 8, 0},
		{0, 0, 0, 1},
	})
	parentWorld := mat4Rows([4][4]float32{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{1, 2, 3, 1},
	})
	want := mat4Rows([4][4]float32{
		{2, 0, 0, 0},
		{0, 4, 0, 0},
		{0, 0, 8, 0},
		{-2, -8, -24, 1},
	})

	got := CalculateRelativeTransform(world, &parentWorld)
	assertMatricesApproxEqual(t, got, want)
}

func TestCalculateRelativeTransformNoParent(t *testing.T) {
	world := mat4Rows([4][4]float32{
		{0, 1, 2, 3},
		{4, 5, 6, 7},
		{8, 9, 10, 11},
		{12, 13, 14, 15},
	})
	got := CalculateRelativeTransform(world, nil)
	assertMatricesApproxEqual(t, got, world)
}

func TestCalculateWorldTransformNoParent(t *testing.T) {
	transform := mat4Rows([4][4]float32{
		{0, 1, 2, 3},
		{4, 5, 6, 7},
		{8, 9, 10, 11},
		{12, 13, 14, 15},
	})
	data := &SkelData{
		MajorVersion: 1,
		Bones:        []BoneData{{Name: "root", Transform: transform, ParentIndex: nil}},
	}
	got, err := data.CalculateWorldTransform(&data.Bones[0])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertMatricesApproxEqual(t, got, transform)
}

func intPtr(i int) *int { return &i }

func TestCalculateWorldTransformDetectsSelfReferentialBone(t *testing.T) {
	data := &SkelData{
		MajorVersion: 1,
		Bones:        []BoneData{{Name: "root", ParentIndex: intPtr(0)}},
	}
	_, err := data.CalculateWorldTransform(&data.Bones[0])
	cycleErr, ok := err.(*BoneCycleError)
	if !ok {
		t.Fatalf("expected *BoneCycleError, got %v (%T)", err, err)
	}
	if cycleErr.Index != 0 {
		t.Errorf("cycle index = %d, want 0", cycleErr.Index)
	}
}

func TestCalculateWorldTransformDetectsBoneCycle(t *testing.T) {
	data := &SkelData{
		MajorVersion: 1,
		Bones: []BoneData{
			{Name: "a", ParentIndex: nil},
			{Name: "b", ParentIndex: intPtr(2)},
			{Name: "c", ParentIndex: intPtr(1)},
			{Name: "d", ParentIndex: intPtr(2)},
		},
	}
	_, err := data.CalculateWorldTransform(&data.Bones[2])
	cycleErr, ok := err.(*BoneCycleError)
	if !ok {
		t.Fatalf("expected *BoneCycleError, got %v (%T)", err, err)
	}
	if cycleErr.Index != 1 {
		t.Errorf("cycle index = %d, want 1", cycleErr.Index)
	}
}

func TestCalculateWorldTransformMultiParentChain(t *testing.T) {
	// Cloud c00 model.nusktb.
	data := &SkelData{
		MajorVersion: 1,
		Bones: []BoneData{
			{
				Name:        "Trans",
				Transform:   mat4Identity(),
				ParentIndex: nil,
			},
			{
				Name: "Rot",
				Transform: mat4Rows([4][4]float32{
					{1, 0, 0, 0},
					{0, 1, 0, 0},
					{0, 0, 1, 0},
					{0, 11.241, 0.268775, 1},
				}),
				ParentIndex: intPtr(0),
			},
			{
				Name: "Hip",
				Transform: mat4Rows([4][4]float32{
					{0, 1, 0, 0},
					{0, 0, 1, 0},
					{1, 0, 0, 0},
					{0, 0, 0, 1},
				}),
				ParentIndex: intPtr(1),
			},
			{
				Name: "Waist",
				Transform: mat4Rows([4][4]float32{
					{0.999954, -0.00959458, 0, 0},
					{0.00959458, 0.999954, 0, 0},
					{0, 0, 1, 0},
					{1.38263, 0, 0, 1},
				}),
				ParentIndex: intPtr(2),
			},
		},
	}

	want := mat4Rows([4][4]float32{
		{0, 0.999954, -0.00959458, 0},
		{0, 0.00959458, 0.999954, 0},
		{1, 0, 0, 0},
		{0, 12.6236, 0.268775, 1},
	})

	got, err := data.CalculateWorldTransform(&data.Bones[3])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertMatricesApproxEqual(t, got, want)
}

func TestSkelDataRoundTripsThroughSkel(t *testing.T) {
	data := &SkelData{
		MajorVersion: 1,
		MinorVersion: 0,
		Bones: []BoneData{
			{Name: "root", Transform: mat4Identity(), ParentIndex: nil},
			{Name: "child", Transform: mat4Rows([4][4]float32{
				{1, 0, 0, 0},
				{0, 1, 0, 0},
				{0, 0, 1, 0},
				{1, 2, 3, 1},
			}), ParentIndex: intPtr(0)},
		},
	}

	s, err := ToSkel(data)
	if err != nil {
		t.Fatalf("ToSkel: %v", err)
	}
	if len(s.WorldTransforms) != 2 || len(s.InvWorldTransforms) != 2 || len(s.InvTransforms) != 2 {
		t.Fatalf("expected cached transform arrays for both bones, got world=%d invWorld=%d invLocal=%d",
			len(s.WorldTransforms), len(s.InvWorldTransforms), len(s.InvTransforms))
	}

	got := FromSkel(s)
	if len(got.Bones) != len(data.Bones) {
		t.Fatalf("expected %d bones, got %d", len(data.Bones), len(got.Bones))
	}
	for i := range data.Bones {
		if got.Bones[i].Name != data.Bones[i].Name {
			t.Errorf("bone %d name = %q, want %q", i, got.Bones[i].Name, data.Bones[i].Name)
		}
		assertMatricesApproxEqual(t, got.Bones[i].Transform, data.Bones[i].Transform)
	}
	if got.Bones[0].ParentIndex != nil {
		t.Errorf("bone 0 parent index = %v, want nil", got.Bones[0].ParentIndex)
	}
	if got.Bones[1].ParentIndex == nil || *got.Bones[1].ParentIndex != 0 {
		t.Errorf("bone 1 parent index = %v, want 0", got.Bones[1].ParentIndex)
	}
}

func TestToSkelDetectsBoneCycle(t *testing.T) {
	data := &SkelData{
		MajorVersion: 1,
		Bones: []BoneData{
			{Name: "a", ParentIndex: intPtr(1)},
			{Name: "b", ParentIndex: intPtr(0)},
		},
	}
	if _, err := ToSkel(data); err == nil {
		t.Fatal("expected an error for a cyclical bone chain")
	}
}
