package formats

import (
	"reflect"
	"testing"

	"github.com/ultimate-research/ssbh-go/internal/binary"
	"github.com/ultimate-research/ssbh-go/internal/record"
)

func TestNlstRoundTrip(t *testing.T) {
	original := &Nlst{
		Version:   Version{Major: 1, Minor: 0},
		FileNames: []string{"def_mario_001_col.nutexb", "def_mario_001_nor.nutexb", "def_mario_001_emi.nutexb"},
	}

	sink := binary.NewSink()
	w := record.NewWriter(sink)
	if err := WriteNlst(w, original); err != nil {
		t.Fatalf("WriteNlst: %v", err)
	}
	data := sink.Bytes()

	got, err := ReadNlst(record.NewReader(data), original.Version)
	if err != nil {
		t.Fatalf("ReadNlst: %v", err)
	}
	if !reflect.DeepEqual(got, original) {
		t.Fatalf("round trip mismatch:\n got: %+v\nwant: %+v", got, original)
	}
}

func TestReadNlstRejectsUnsupportedVersion(t *testing.T) {
	_, err := ReadNlst(record.NewReader(nil), Version{Major: 2, Minor: 0})
	if err == nil {
		t.Fatal("expected an error for an unsupported Nlst version, got nil")
	}
}
