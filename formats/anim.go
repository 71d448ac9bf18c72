package formats

import (
	"github.com/ultimate-research/ssbh-go/internal/record"
	"github.com/ultimate-research/ssbh-go/internal/schema"
)

// TrackTypeV1 discriminates a 1.2-format track's payload shape.
type TrackTypeV1 uint64

const (
	TrackTypeV1Transform   TrackTypeV1 = 0
	TrackTypeV1UvTransform TrackTypeV1 = 2
	TrackTypeV1Boolean     TrackTypeV1 = 5
)

// TrackTypeV2 discriminates a 2.0/2.1-format track's payload shape.
type TrackTypeV2 uint8

const (
	TrackTypeV2Transform    TrackTypeV2 = 1
	TrackTypeV2UvTransform  TrackTypeV2 = 2
	TrackTypeV2Float        TrackTypeV2 = 3
	TrackTypeV2PatternIndex TrackTypeV2 = 5
	TrackTypeV2Boolean      TrackTypeV2 = 8
	TrackTypeV2Vector4      TrackTypeV2 = 9
)

// CompressionType selects how a 2.0/2.1-format track's frame buffer is
// encoded (see internal/trackcodec for the bit-packed Compressed case).
type CompressionType uint8

const (
	CompressionDirect        CompressionType = 1
	CompressionConstTransform CompressionType = 2
	CompressionCompressed    CompressionType = 4
	CompressionConstant      CompressionType = 5
)

// GroupType categorizes a Group's purpose, usually matching the TrackType
// its nodes' tracks carry.
type GroupType uint64

const (
	GroupTypeTransform  GroupType = 1
	GroupTypeVisibility GroupType = 2
	GroupTypeMaterial   GroupType = 4
	GroupTypeCamera     GroupType = 5
)

// TrackFlags packs a track's type and compression scheme into 4 bytes
// (type, compression, 2 pad bytes).
type TrackFlags struct {
	TrackType       TrackTypeV2
	CompressionType CompressionType
}

func readTrackFlags(r *record.Reader) (f TrackFlags, err error) {
	t, err := r.ReadU8()
	if err != nil {
		return f, err
	}
	f.TrackType = TrackTypeV2(t)
	c, err := r.ReadU8()
	if err != nil {
		return f, err
	}
	f.CompressionType = CompressionType(c)
	r.Skip(2)
	return f, nil
}

func (f TrackFlags) write(w *record.Writer) error {
	if err := w.WriteU8(uint8(f.TrackType)); err != nil {
		return err
	}
	if err := w.WriteU8(uint8(f.CompressionType)); err != nil {
		return err
	}
	return w.WriteZeros(2)
}

// UnkTrackFlags is a 4-byte bitfield: bit 0 unknown, bit 1
// disable-rotation, bit 2 disable-scale, bit 3 disable-compensate-scale,
// remaining bits reserved.
type UnkTrackFlags struct {
	Unk1                    bool
	DisableRotation         bool
	DisableScale            bool
	DisableCompensateScale  bool
}

func readUnkTrackFlags(r *record.Reader) (f UnkTrackFlags, err error) {
	word, err := r.ReadU32()
	if err != nil {
		return f, err
	}
	f.Unk1 = word&1 != 0
	f.DisableRotation = word&2 != 0
	f.DisableScale = word&4 != 0
	f.DisableCompensateScale = word&8 != 0
	return f, nil
}

func (f UnkTrackFlags) write(w *record.Writer) error {
	var word uint32
	if f.Unk1 {
		word |= 1
	}
	if f.DisableRotation {
		word |= 2
	}
	if f.DisableScale {
		word |= 4
	}
	if f.DisableCompensateScale {
		word |= 8
	}
	return w.WriteU32(word)
}

// TrackV2 names a 2.0/2.1-format track and points at its frame buffer
// (data_offset is relative to the whole-file frame buffer, not this
// record).
type TrackV2 struct {
	Name      string
	Flags     TrackFlags
	FrameCount uint32
	UnkFlags  UnkTrackFlags
	DataOffset uint32
	DataSize  uint64
}

const trackV2Size = 8 + 4 + 4 + 4 + 4 + 8

func readTrackV2(r *record.Reader) (t TrackV2, err error) {
	name, err := r.ReadString()
	if err != nil {
		return t, err
	}
	if name != nil {
		t.Name = *name
	}
	if t.Flags, err = readTrackFlags(r); err != nil {
		return t, err
	}
	if t.FrameCount, err = r.ReadU32(); err != nil {
		return t, err
	}
	if t.UnkFlags, err = readUnkTrackFlags(r); err != nil {
		return t, err
	}
	if t.DataOffset, err = r.ReadU32(); err != nil {
		return t, err
	}
	t.DataSize, err = r.ReadU64()
	return t, err
}

func writeTrackV2(w *record.Writer, t TrackV2) error {
	start := w.Reserve(trackV2Size)
	if err := w.WriteString(record.DefaultAlignment, &t.Name); err != nil {
		return err
	}
	if err := t.Flags.write(w); err != nil {
		return err
	}
	if err := w.WriteU32(t.FrameCount); err != nil {
		return err
	}
	if err := t.UnkFlags.write(w); err != nil {
		return err
	}
	if err := w.WriteU32(t.DataOffset); err != nil {
		return err
	}
	if err := w.WriteU64(t.DataSize); err != nil {
		return err
	}
	return w.Finish(start, trackV2Size)
}

// Node groups a 2.0/2.1-format Group's tracks under one named target (a
// bone or material handle).
type Node struct {
	Name   string
	Tracks []TrackV2
}

func readNode(r *record.Reader) (n Node, err error) {
	name, err := r.ReadString()
	if err != nil {
		return n, err
	}
	if name != nil {
		n.Name = *name
	}
	_, err = r.ReadArray(func(r *record.Reader, i int) error {
		t, err := readTrackV2(r)
		if err != nil {
			return err
		}
		n.Tracks = append(n.Tracks, t)
		return nil
	})
	return n, err
}

func writeNode(w *record.Writer, n Node) error {
	if err := w.WriteString(record.DefaultAlignment, &n.Name); err != nil {
		return err
	}
	return w.WriteArray(record.DefaultAlignment, len(n.Tracks), trackV2Size, func(w *record.Writer, i int) error {
		return writeTrackV2(w, n.Tracks[i])
	})
}

// Group is a top-level animation category (Transform, Visibility,
// Material, Camera) containing named Nodes.
type Group struct {
	GroupType GroupType
	Nodes     []Node
}

func readGroup(r *record.Reader) (g Group, err error) {
	t, err := r.ReadU64()
	if err != nil {
		return g, err
	}
	g.GroupType = GroupType(t)
	_, err = r.ReadArray(func(r *record.Reader, i int) error {
		n, err := readNode(r)
		if err != nil {
			return err
		}
		g.Nodes = append(g.Nodes, n)
		return nil
	})
	return g, err
}

func writeGroup(w *record.Writer, g Group) error {
	if err := w.WriteU64(uint64(g.GroupType)); err != nil {
		return err
	}
	nodeSize := int64(24) // name(8) + tracks array(16)
	return w.WriteArray(record.DefaultAlignment, len(g.Nodes), nodeSize, func(w *record.Writer, i int) error {
		return writeNode(w, g.Nodes[i])
	})
}

// Property is a named reference into a 1.2-format Anim's flat buffer list.
type Property struct {
	Name        string
	BufferIndex uint64
}

const propertySize = 8 + 8

func readProperty(r *record.Reader) (p Property, err error) {
	name, err := r.ReadString()
	if err != nil {
		return p, err
	}
	if name != nil {
		p.Name = *name
	}
	p.BufferIndex, err = r.ReadU64()
	return p, err
}

func writeProperty(w *record.Writer, p Property) error {
	start := w.Reserve(propertySize)
	if err := w.WriteString(record.DefaultAlignment, &p.Name); err != nil {
		return err
	}
	if err := w.WriteU64(p.BufferIndex); err != nil {
		return err
	}
	return w.Finish(start, propertySize)
}

// TrackV1 names a 1.2-format track and its properties, each pointing at a
// buffer in the Anim's flat buffer list.
type TrackV1 struct {
	Name       string
	TrackType  TrackTypeV1
	Properties []Property
}

func readTrackV1(r *record.Reader) (t TrackV1, err error) {
	name, err := r.ReadString()
	if err != nil {
		return t, err
	}
	if name != nil {
		t.Name = *name
	}
	tt, err := r.ReadU64()
	if err != nil {
		return t, err
	}
	t.TrackType = TrackTypeV1(tt)
	_, err = r.ReadArray(func(r *record.Reader, i int) error {
		p, err := readProperty(r)
		if err != nil {
			return err
		}
		t.Properties = append(t.Properties, p)
		return nil
	})
	return t, err
}

func writeTrackV1(w *record.Writer, t TrackV1) error {
	if err := w.WriteString(record.DefaultAlignment, &t.Name); err != nil {
		return err
	}
	if err := w.WriteU64(uint64(t.TrackType)); err != nil {
		return err
	}
	return w.WriteArray(record.DefaultAlignment, len(t.Properties), propertySize, func(w *record.Writer, i int) error {
		return writeProperty(w, t.Properties[i])
	})
}

// UnkSubItem is a pair of frame indices whose exact meaning is
// undocumented upstream (start/end frame is the working hypothesis).
type UnkSubItem struct {
	Unk1, Unk2 uint32
}

func readUnkSubItem(r *record.Reader) (u UnkSubItem, err error) {
	if u.Unk1, err = r.ReadU32(); err != nil {
		return u, err
	}
	u.Unk2, err = r.ReadU32()
	return u, err
}

func writeUnkSubItem(w *record.Writer, u UnkSubItem) error {
	if err := w.WriteU32(u.Unk1); err != nil {
		return err
	}
	return w.WriteU32(u.Unk2)
}

// UnkItem1 and UnkItem2 back a 2.1-format Anim's UnkData tail, whose
// purpose (likely a compressed-region or looping-range annotation) is not
// fully understood upstream.
type UnkItem1 struct {
	Unk1 uint64
	Unk2 []UnkSubItem
}

type UnkItem2 struct {
	Unk1 string
	Unk2 []UnkSubItem
}

func readUnkItem1(r *record.Reader) (u UnkItem1, err error) {
	if u.Unk1, err = r.ReadU64(); err != nil {
		return u, err
	}
	_, err = r.ReadArray(func(r *record.Reader, i int) error {
		s, err := readUnkSubItem(r)
		if err != nil {
			return err
		}
		u.Unk2 = append(u.Unk2, s)
		return nil
	})
	return u, err
}

func writeUnkItem1(w *record.Writer, u UnkItem1) error {
	if err := w.WriteU64(u.Unk1); err != nil {
		return err
	}
	return w.WriteArray(record.DefaultAlignment, len(u.Unk2), 8, func(w *record.Writer, i int) error {
		return writeUnkSubItem(w, u.Unk2[i])
	})
}

func readUnkItem2(r *record.Reader) (u UnkItem2, err error) {
	name, err := r.ReadString()
	if err != nil {
		return u, err
	}
	if name != nil {
		u.Unk1 = *name
	}
	_, err = r.ReadArray(func(r *record.Reader, i int) error {
		s, err := readUnkSubItem(r)
		if err != nil {
			return err
		}
		u.Unk2 = append(u.Unk2, s)
		return nil
	})
	return u, err
}

func writeUnkItem2(w *record.Writer, u UnkItem2) error {
	if err := w.WriteString(record.DefaultAlignment, &u.Unk1); err != nil {
		return err
	}
	return w.WriteArray(record.DefaultAlignment, len(u.Unk2), 8, func(w *record.Writer, i int) error {
		return writeUnkSubItem(w, u.Unk2[i])
	})
}

// UnkData is the 2.1-format Anim's tail structure beyond the shared
// 2.0 groups/buffer shape.
type UnkData struct {
	Unk1 []UnkItem1
	Unk2 []UnkItem2
}

func readUnkData(r *record.Reader) (u UnkData, err error) {
	if _, err = r.ReadArray(func(r *record.Reader, i int) error {
		item, err := readUnkItem1(r)
		if err != nil {
			return err
		}
		u.Unk1 = append(u.Unk1, item)
		return nil
	}); err != nil {
		return u, err
	}
	_, err = r.ReadArray(func(r *record.Reader, i int) error {
		item, err := readUnkItem2(r)
		if err != nil {
			return err
		}
		u.Unk2 = append(u.Unk2, item)
		return nil
	})
	return u, err
}

func writeUnkData(w *record.Writer, u UnkData) error {
	item1Size := int64(24) // unk1(8) + array(16)
	if err := w.WriteArray(record.DefaultAlignment, len(u.Unk1), item1Size, func(w *record.Writer, i int) error {
		return writeUnkItem1(w, u.Unk1[i])
	}); err != nil {
		return err
	}
	item2Size := int64(24) // name(8) + array(16)
	return w.WriteArray(record.DefaultAlignment, len(u.Unk2), item2Size, func(w *record.Writer, i int) error {
		return writeUnkItem2(w, u.Unk2[i])
	})
}

// Anim holds per-frame skeletal and material animation data. Version 1.2
// uses a flat Track/Property/buffer-index scheme; 2.0 and 2.1 introduce
// the Group -> Node -> TrackV2 hierarchy with a single shared frame
// buffer, and 2.1 adds the UnkData tail.
type Anim struct {
	Version         Version
	Name            string
	FinalFrameIndex float32

	// V12 only.
	Unk1     uint32
	Unk2V12  uint64
	Tracks   []TrackV1
	Buffers  [][]byte

	// V20/V21 only.
	Unk1V2 uint16
	Unk2V2 uint16
	Groups []Group
	Buffer []byte

	// V21 only.
	UnkData UnkData
}

var animV12Schema = schema.RecordSchema{
	Name: "AnimV12",
	Fields: []schema.Field{
		{Name: "name", Kind: schema.KindString, Size: 8},
		{Name: "unk1", Kind: schema.KindInline, Size: 4},
		{Name: "final_frame_index", Kind: schema.KindInline, Size: 4},
		{Name: "unk2_v12", Kind: schema.KindInline, Size: 8},
		{Name: "tracks", Kind: schema.KindArray, Size: 16},
		{Name: "buffers", Kind: schema.KindArray, Size: 16},
	},
}

var animV2Schema = schema.RecordSchema{
	Name: "AnimV2",
	Fields: []schema.Field{
		{Name: "final_frame_index", Kind: schema.KindInline, Size: 4},
		{Name: "unk1_v2", Kind: schema.KindInline, Size: 2},
		{Name: "unk2_v2", Kind: schema.KindInline, Size: 2},
		{Name: "name", Kind: schema.KindString, Size: 8},
		{Name: "groups", Kind: schema.KindArray, Size: 16},
		{Name: "buffer", Kind: schema.KindArray, Size: 16},
		{Name: "unk_data_unk1", Kind: schema.KindArray, Size: 16, MinVersion: schema.Version{Major: 2, Minor: 1}},
		{Name: "unk_data_unk2", Kind: schema.KindArray, Size: 16, MinVersion: schema.Version{Major: 2, Minor: 1}},
	},
}

// anim21GamePadding is the game-specific data-pointer reservation Smash
// Ultimate's own exporter leaves before a 2.1-format Anim's first pointer
// target, on top of the record's own fixed-field footprint. It is never a
// pointer target itself, so it is reserved but never addressed by any
// offset; WriteAnim zero-fills it explicitly once the fixed fields are done.
const anim21GamePadding = 32

// SizeInBytes implements schema.Sized. For a 2.1 Anim this is the fixed
// field footprint only; the extra 32-byte game reservation is added
// separately in WriteAnim, mirroring the original writer's split between
// size_in_bytes() and the version-specific data_ptr bump.
func (a *Anim) SizeInBytes() int64 {
	v := schema.Version{Major: a.Version.Major, Minor: a.Version.Minor}
	if a.Version.Major == 1 {
		return animV12Schema.SizeInBytes(v)
	}
	return animV2Schema.SizeInBytes(v)
}

// ReadAnim reads an Anim record body for versions 1.2, 2.0, or 2.1.
func ReadAnim(r *record.Reader, v Version) (*Anim, error) {
	a := &Anim{Version: v}
	switch {
	case v.Major == 1 && v.Minor == 2:
		name, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		if name != nil {
			a.Name = *name
		}
		if a.Unk1, err = r.ReadU32(); err != nil {
			return nil, err
		}
		if a.FinalFrameIndex, err = r.ReadF32(); err != nil {
			return nil, err
		}
		if a.Unk2V12, err = r.ReadU64(); err != nil {
			return nil, err
		}
		if _, err = r.ReadArray(func(r *record.Reader, i int) error {
			t, err := readTrackV1(r)
			if err != nil {
				return err
			}
			a.Tracks = append(a.Tracks, t)
			return nil
		}); err != nil {
			return nil, err
		}
		if _, err = r.ReadArray(func(r *record.Reader, i int) error {
			buf, err := r.ReadByteArray()
			if err != nil {
				return err
			}
			a.Buffers = append(a.Buffers, buf)
			return nil
		}); err != nil {
			return nil, err
		}
		return a, nil

	case v.Major == 2 && (v.Minor == 0 || v.Minor == 1):
		var err error
		if a.FinalFrameIndex, err = r.ReadF32(); err != nil {
			return nil, err
		}
		if a.Unk1V2, err = r.ReadU16(); err != nil {
			return nil, err
		}
		if a.Unk2V2, err = r.ReadU16(); err != nil {
			return nil, err
		}
		name, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		if name != nil {
			a.Name = *name
		}
		if _, err = r.ReadArray(func(r *record.Reader, i int) error {
			g, err := readGroup(r)
			if err != nil {
				return err
			}
			a.Groups = append(a.Groups, g)
			return nil
		}); err != nil {
			return nil, err
		}
		if a.Buffer, err = r.ReadByteArray(); err != nil {
			return nil, err
		}
		if v.Minor == 1 {
			if a.UnkData, err = readUnkData(r); err != nil {
				return nil, err
			}
		}
		return a, nil

	default:
		return nil, &record.InvalidDiscriminantError{Enum: "Anim.version", Value: uint64(v.Major)<<16 | uint64(v.Minor)}
	}
}

// WriteAnim writes an Anim record body. A 2.1 Anim additionally reserves 32
// bytes right after its own fields (never itself a pointer target, just a
// game-specific gap before the first real one) and pads the whole file out
// to a multiple of 4 bytes at the end, matching the original exporter's
// write_anim exactly.
func WriteAnim(w *record.Writer, a *Anim) error {
	switch {
	case a.Version.Major == 1 && a.Version.Minor == 2:
		sizeInBytes := a.SizeInBytes()
		start := w.Reserve(sizeInBytes)

		if err := w.WriteString(record.DefaultAlignment, &a.Name); err != nil {
			return err
		}
		if err := w.WriteU32(a.Unk1); err != nil {
			return err
		}
		if err := w.WriteF32(a.FinalFrameIndex); err != nil {
			return err
		}
		if err := w.WriteU64(a.Unk2V12); err != nil {
			return err
		}
		trackV1Size := int64(32) // name offset(8) + track_type(8) + properties array(16)
		if err := w.WriteArray(record.DefaultAlignment, len(a.Tracks), trackV1Size, func(w *record.Writer, i int) error {
			return writeTrackV1(w, a.Tracks[i])
		}); err != nil {
			return err
		}
		if err := w.WriteArray(record.DefaultAlignment, len(a.Buffers), 16, func(w *record.Writer, i int) error {
			return w.WriteByteArray(record.DefaultAlignment, a.Buffers[i])
		}); err != nil {
			return err
		}

		return w.Finish(start, sizeInBytes)

	case a.Version.Major == 2 && (a.Version.Minor == 0 || a.Version.Minor == 1):
		sizeInBytes := a.SizeInBytes()
		reserveSize := sizeInBytes
		if a.Version.Minor == 1 {
			reserveSize += anim21GamePadding
		}
		start := w.Reserve(reserveSize)

		if err := w.WriteF32(a.FinalFrameIndex); err != nil {
			return err
		}
		if err := w.WriteU16(a.Unk1V2); err != nil {
			return err
		}
		if err := w.WriteU16(a.Unk2V2); err != nil {
			return err
		}
		if err := w.WriteString(record.DefaultAlignment, &a.Name); err != nil {
			return err
		}
		groupSize := int64(24) // group_type(8) + nodes array(16)
		if err := w.WriteArray(record.DefaultAlignment, len(a.Groups), groupSize, func(w *record.Writer, i int) error {
			return writeGroup(w, a.Groups[i])
		}); err != nil {
			return err
		}
		if err := w.WriteByteArray(record.DefaultAlignment, a.Buffer); err != nil {
			return err
		}
		if a.Version.Minor == 1 {
			if err := writeUnkData(w, a.UnkData); err != nil {
				return err
			}
		}

		if err := w.Finish(start, sizeInBytes); err != nil {
			return err
		}
		if a.Version.Minor != 1 {
			return nil
		}

		// The cursor now sits right after the record's own fields, at the
		// start of the reserved gap: fill it, then round the whole file up
		// to a multiple of 4 bytes.
		if err := w.WriteZeros(anim21GamePadding); err != nil {
			return err
		}
		total := w.Len()
		if rem := total % 4; rem != 0 {
			w.Seek(total)
			return w.WriteZeros(4 - rem)
		}
		return nil

	default:
		return &record.InvalidDiscriminantError{Enum: "Anim.version", Value: uint64(a.Version.Major)<<16 | uint64(a.Version.Minor)}
	}
}
