// Package ssbh implements the top-level SSBH container: the shared HBSS
// header, the magic-plus-version dispatch to one of the ten member
// schemas in package formats, and the two non-SSBH siblings (MeshEx and
// Adj) that skip the container entirely.
package ssbh

import (
	"strings"

	"github.com/ultimate-research/ssbh-go/formats"
	"github.com/ultimate-research/ssbh-go/internal/binary"
	"github.com/ultimate-research/ssbh-go/internal/record"
)

// Kind identifies which of the ten SSBH member schemas a Ssbh holds.
type Kind uint8

const (
	KindHlpb Kind = iota + 1
	KindMatl
	KindModl
	KindMesh
	KindSkel
	KindAnim
	KindNlst
	KindNrpd
	KindNufx
	KindShdr
)

func (k Kind) String() string {
	switch k {
	case KindHlpb:
		return "Hlpb"
	case KindMatl:
		return "Matl"
	case KindModl:
		return "Modl"
	case KindMesh:
		return "Mesh"
	case KindSkel:
		return "Skel"
	case KindAnim:
		return "Anim"
	case KindNlst:
		return "Nlst"
	case KindNrpd:
		return "Nrpd"
	case KindNufx:
		return "Nufx"
	case KindShdr:
		return "Shdr"
	default:
		return "Unknown"
	}
}

// magic pairs each Kind with its four-byte format magic: the format's
// uppercase name spelled backwards, following every observed SSBH member.
type magicEntry struct {
	bytes string
	kind  Kind
}

var magicTable = []magicEntry{
	{"BPLH", KindHlpb},
	{"LTAM", KindMatl},
	{"LDOM", KindModl},
	{"HSEM", KindMesh},
	{"LEKS", KindSkel},
	{"MINA", KindAnim},
	{"TSLN", KindNlst},
	{"DPRN", KindNrpd},
	{"XFUN", KindNufx},
	{"RDHS", KindShdr},
}

func kindForMagic(magic string) (Kind, bool) {
	for _, e := range magicTable {
		if e.bytes == magic {
			return e.kind, true
		}
	}
	return 0, false
}

func magicForKind(kind Kind) string {
	for _, e := range magicTable {
		if e.kind == kind {
			return e.bytes
		}
	}
	return ""
}

// Ssbh is a decoded SSBH file: the container header plus exactly one of
// the ten member schemas, selected by Kind.
type Ssbh struct {
	Kind Kind

	Hlpb *formats.Hlpb
	Matl *formats.Matl
	Modl *formats.Modl
	Mesh *formats.Mesh
	Skel *formats.Skel
	Anim *formats.Anim
	Nlst *formats.Nlst
	Nrpd *formats.Nrpd
	Nufx *formats.Nufx
	Shdr *formats.Shdr
}

// headerReserved1 and headerReserved2 are the constant filler values every
// shipped SSBH file carries between the container magic and the format
// magic. Their purpose is undocumented; they are preserved verbatim on
// write for byte-exact round trips.
const (
	headerReserved1 = uint64(64)
	headerReserved2 = uint32(0)
)

// ReadSsbh parses a complete SSBH file: the HBSS container header, the
// format magic, the (major, minor) version, and the matching member
// schema. A successful parse that doesn't consume the whole buffer
// returns the decoded value alongside a non-nil record.TrailingGarbage,
// per the reader's warning convention; every other non-nil error means
// the returned *Ssbh is nil.
func ReadSsbh(data []byte) (*Ssbh, error) {
	r := record.NewReader(data)

	magic, err := r.ReadBytes(4)
	if err != nil {
		return nil, err
	}
	if string(magic) != "HBSS" {
		return nil, ErrNotHBSS
	}
	if _, err := r.ReadU64(); err != nil { // reserved
		return nil, err
	}
	if _, err := r.ReadU32(); err != nil { // reserved
		return nil, err
	}
	formatMagic, err := r.ReadBytes(4)
	if err != nil {
		return nil, err
	}
	kind, ok := kindForMagic(string(formatMagic))
	if !ok {
		return nil, ErrUnknownMagic
	}
	major, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	minor, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	v := formats.Version{Major: major, Minor: minor}

	s := &Ssbh{Kind: kind}
	switch kind {
	case KindHlpb:
		s.Hlpb, err = formats.ReadHlpb(r, v)
	case KindMatl:
		s.Matl, err = formats.ReadMatl(r, v)
	case KindModl:
		s.Modl, err = formats.ReadModl(r, v)
	case KindMesh:
		s.Mesh, err = formats.ReadMesh(r, v)
	case KindSkel:
		s.Skel, err = formats.ReadSkel(r, v)
	case KindAnim:
		s.Anim, err = formats.ReadAnim(r, v)
	case KindNlst:
		s.Nlst, err = formats.ReadNlst(r, v)
	case KindNrpd:
		s.Nrpd, err = formats.ReadNrpd(r, v)
	case KindNufx:
		s.Nufx, err = formats.ReadNufx(r, v)
	case KindShdr:
		s.Shdr, err = formats.ReadShdr(r, v)
	}
	if err != nil {
		if d, isDiscriminant := err.(*record.InvalidDiscriminantError); isDiscriminant && strings.HasSuffix(d.Enum, ".version") {
			return nil, &UnsupportedVersionError{Magic: string(formatMagic), Major: major, Minor: minor}
		}
		return nil, err
	}

	if remaining := r.Remaining(); remaining > 0 {
		return s, record.TrailingGarbage{Bytes: remaining}
	}
	return s, nil
}

// WriteSsbh serializes s to a complete SSBH file, including the shared
// HBSS container header. The (major, minor) version written comes from
// the selected member's own Version field.
func WriteSsbh(s *Ssbh) ([]byte, error) {
	sink := binary.NewSink()
	w := record.NewWriter(sink)

	if err := w.WriteBytes([]byte("HBSS")); err != nil {
		return nil, err
	}
	if err := w.WriteU64(headerReserved1); err != nil {
		return nil, err
	}
	if err := w.WriteU32(headerReserved2); err != nil {
		return nil, err
	}
	if err := w.WriteBytes([]byte(magicForKind(s.Kind))); err != nil {
		return nil, err
	}

	var v formats.Version
	switch s.Kind {
	case KindHlpb:
		v = s.Hlpb.Version
	case KindMatl:
		v = s.Matl.Version
	case KindModl:
		v = s.Modl.Version
	case KindMesh:
		v = s.Mesh.Version
	case KindSkel:
		v = s.Skel.Version
	case KindAnim:
		v = s.Anim.Version
	case KindNlst:
		v = s.Nlst.Version
	case KindNrpd:
		v = s.Nrpd.Version
	case KindNufx:
		v = s.Nufx.Version
	case KindShdr:
		v = s.Shdr.Version
	}
	if err := w.WriteU16(v.Major); err != nil {
		return nil, err
	}
	if err := w.WriteU16(v.Minor); err != nil {
		return nil, err
	}

	var err error
	switch s.Kind {
	case KindHlpb:
		err = formats.WriteHlpb(w, s.Hlpb)
	case KindMatl:
		err = formats.WriteMatl(w, s.Matl)
	case KindModl:
		err = formats.WriteModl(w, s.Modl)
	case KindMesh:
		err = formats.WriteMesh(w, s.Mesh)
	case KindSkel:
		err = formats.WriteSkel(w, s.Skel)
	case KindAnim:
		err = formats.WriteAnim(w, s.Anim)
	case KindNlst:
		err = formats.WriteNlst(w, s.Nlst)
	case KindNrpd:
		err = formats.WriteNrpd(w, s.Nrpd)
	case KindNufx:
		err = formats.WriteNufx(w, s.Nufx)
	case KindShdr:
		err = formats.WriteShdr(w, s.Shdr)
	}
	if err != nil {
		return nil, err
	}
	return sink.Bytes(), nil
}

// ReadMeshEx parses a standalone MeshEx file (no HBSS container).
func ReadMeshEx(data []byte) (*formats.MeshEx, error) {
	return formats.ReadMeshEx(data)
}

// WriteMeshEx serializes a standalone MeshEx file.
func WriteMeshEx(m *formats.MeshEx) ([]byte, error) {
	return formats.WriteMeshEx(m)
}

// ReadAdj parses a standalone Adj file (no HBSS container).
func ReadAdj(data []byte) (*formats.Adj, error) {
	return formats.ReadAdj(data)
}

// WriteAdj serializes a standalone Adj file.
func WriteAdj(a *formats.Adj) ([]byte, error) {
	return formats.WriteAdj(a)
}
