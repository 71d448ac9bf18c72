package formats

import (
	"github.com/ultimate-research/ssbh-go/internal/record"
	"github.com/ultimate-research/ssbh-go/internal/schema"
)

// Nlst is a flat list of file names, used as a texture/material dependency
// manifest.
type Nlst struct {
	Version   Version
	FileNames []string
}

var nlstSchema = schema.RecordSchema{
	Name: "Nlst",
	Fields: []schema.Field{
		{Name: "file_names", Kind: schema.KindArray, Size: 16},
	},
}

// SizeInBytes implements schema.Sized.
func (n *Nlst) SizeInBytes() int64 {
	return nlstSchema.SizeInBytes(schema.Version{Major: n.Version.Major, Minor: n.Version.Minor})
}

// ReadNlst reads an Nlst record body.
func ReadNlst(r *record.Reader, v Version) (*Nlst, error) {
	if v.Major != 1 || v.Minor != 0 {
		return nil, &record.InvalidDiscriminantError{Enum: "Nlst.version", Value: uint64(v.Major)<<16 | uint64(v.Minor)}
	}
	names, err := readStringArray(r)
	if err != nil {
		return nil, err
	}
	return &Nlst{Version: v, FileNames: names}, nil
}

// WriteNlst writes an Nlst record body.
func WriteNlst(w *record.Writer, n *Nlst) error {
	sizeInBytes := n.SizeInBytes()
	start := w.Reserve(sizeInBytes)
	if err := writeStringArray(w, n.FileNames); err != nil {
		return err
	}
	return w.Finish(start, sizeInBytes)
}
