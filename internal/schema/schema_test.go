package schema

import "testing"

func TestFieldEffectiveAlignment(t *testing.T) {
	f := Field{Name: "name_offset", Kind: KindString}
	if got := f.EffectiveAlignment(); got != DefaultAlignment {
		t.Errorf("expected default alignment %d, got %d", DefaultAlignment, got)
	}

	f.Alignment = 4
	if got := f.EffectiveAlignment(); got != 4 {
		t.Errorf("expected overridden alignment 4, got %d", got)
	}
}

func TestFieldPresentAt(t *testing.T) {
	f := Field{
		Name:       "unk_v9_only",
		MinVersion: Version{Major: 1, Minor: 9},
	}
	if f.PresentAt(Version{Major: 1, Minor: 8}) {
		t.Errorf("field should not be present before its MinVersion")
	}
	if !f.PresentAt(Version{Major: 1, Minor: 9}) {
		t.Errorf("field should be present at exactly its MinVersion")
	}
	if !f.PresentAt(Version{Major: 1, Minor: 10}) {
		t.Errorf("field should be present after its MinVersion when MaxVersion is unbounded")
	}
}

func TestFieldPresentAtBoundedRange(t *testing.T) {
	f := Field{
		Name:       "v8_and_v9_only",
		MinVersion: Version{Major: 1, Minor: 8},
		MaxVersion: Version{Major: 1, Minor: 9},
	}
	if f.PresentAt(Version{Major: 1, Minor: 10}) {
		t.Errorf("field should not be present past its MaxVersion")
	}
	if !f.PresentAt(Version{Major: 1, Minor: 8}) || !f.PresentAt(Version{Major: 1, Minor: 9}) {
		t.Errorf("field should be present across its full [Min, Max] range")
	}
}

func TestRecordSchemaSizeInBytesSkipsAbsentFields(t *testing.T) {
	s := RecordSchema{
		Name: "example",
		Fields: []Field{
			{Name: "name_offset", Kind: KindString, Size: 8},
			{Name: "count", Kind: KindInline, Size: 4},
			{Name: "unk_v9_only", Kind: KindInline, Size: 4, MinVersion: Version{Major: 1, Minor: 9}},
		},
	}
	if got := s.SizeInBytes(Version{Major: 1, Minor: 8}); got != 12 {
		t.Errorf("size at 1.8 = %d, want 12", got)
	}
	if got := s.SizeInBytes(Version{Major: 1, Minor: 9}); got != 16 {
		t.Errorf("size at 1.9 = %d, want 16", got)
	}
}

type fakeSized struct{ size int64 }

func (f fakeSized) SizeInBytes() int64 { return f.size }

type fakeAligned struct{ align int64 }

func (f fakeAligned) Alignment() int64 { return f.align }

func TestAlignmentOfDefaultsWhenUnimplemented(t *testing.T) {
	if got := AlignmentOf(fakeSized{}); got != DefaultAlignment {
		t.Errorf("expected default alignment, got %d", got)
	}
	if got := AlignmentOf(fakeAligned{align: 4}); got != 4 {
		t.Errorf("expected 4, got %d", got)
	}
}
