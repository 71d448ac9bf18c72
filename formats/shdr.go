package formats

import (
	"github.com/ultimate-research/ssbh-go/internal/record"
	"github.com/ultimate-research/ssbh-go/internal/schema"
)

// ShaderType identifies which pipeline stage a Shdr entry's binary targets.
type ShaderType uint32

const (
	ShaderTypeVertex   ShaderType = 0
	ShaderTypeGeometry ShaderType = 3
	ShaderTypeFragment ShaderType = 4
	ShaderTypeCompute  ShaderType = 5
)

// Shader is one compiled shader binary and its metadata.
type Shader struct {
	Name         string
	ShaderType   ShaderType
	Unk3         uint32
	ShaderBinary []byte
	BinarySize   uint64
	Unk4         uint64
	Unk5         uint64
}

const shaderSize = 8 + 4 + 4 + 16 + 8 + 8 + 8

func readShader(r *record.Reader) (s Shader, err error) {
	name, err := r.ReadString()
	if err != nil {
		return s, err
	}
	if name != nil {
		s.Name = *name
	}
	t, err := r.ReadU32()
	if err != nil {
		return s, err
	}
	s.ShaderType = ShaderType(t)
	if s.Unk3, err = r.ReadU32(); err != nil {
		return s, err
	}
	if s.ShaderBinary, err = r.ReadByteArray(); err != nil {
		return s, err
	}
	if s.BinarySize, err = r.ReadU64(); err != nil {
		return s, err
	}
	if s.Unk4, err = r.ReadU64(); err != nil {
		return s, err
	}
	s.Unk5, err = r.ReadU64()
	return s, err
}

func writeShader(w *record.Writer, s Shader) error {
	start := w.Reserve(shaderSize)
	if err := w.WriteString(record.DefaultAlignment, &s.Name); err != nil {
		return err
	}
	if err := w.WriteU32(uint32(s.ShaderType)); err != nil {
		return err
	}
	if err := w.WriteU32(s.Unk3); err != nil {
		return err
	}
	if err := w.WriteByteArray(record.DefaultAlignment, s.ShaderBinary); err != nil {
		return err
	}
	if err := w.WriteU64(s.BinarySize); err != nil {
		return err
	}
	if err := w.WriteU64(s.Unk4); err != nil {
		return err
	}
	if err := w.WriteU64(s.Unk5); err != nil {
		return err
	}
	return w.Finish(start, shaderSize)
}

// Shdr is a bundle of compiled shader binaries, one per stage instance a
// Nufx program references.
type Shdr struct {
	Version Version
	Shaders []Shader
}

var shdrSchema = schema.RecordSchema{
	Name: "Shdr",
	Fields: []schema.Field{
		{Name: "shaders", Kind: schema.KindArray, Size: 16},
	},
}

// SizeInBytes implements schema.Sized.
func (s *Shdr) SizeInBytes() int64 {
	return shdrSchema.SizeInBytes(schema.Version{Major: s.Version.Major, Minor: s.Version.Minor})
}

// ReadShdr reads a Shdr record body.
func ReadShdr(r *record.Reader, v Version) (*Shdr, error) {
	if v.Major != 1 || v.Minor != 2 {
		return nil, &record.InvalidDiscriminantError{Enum: "Shdr.version", Value: uint64(v.Major)<<16 | uint64(v.Minor)}
	}
	s := &Shdr{Version: v}
	_, err := r.ReadArray(func(r *record.Reader, i int) error {
		sh, err := readShader(r)
		if err != nil {
			return err
		}
		s.Shaders = append(s.Shaders, sh)
		return nil
	})
	return s, err
}

// WriteShdr writes a Shdr record body.
func WriteShdr(w *record.Writer, s *Shdr) error {
	sizeInBytes := s.SizeInBytes()
	start := w.Reserve(sizeInBytes)
	if err := w.WriteArray(record.DefaultAlignment, len(s.Shaders), shaderSize, func(w *record.Writer, i int) error {
		return writeShader(w, s.Shaders[i])
	}); err != nil {
		return err
	}
	return w.Finish(start, sizeInBytes)
}
