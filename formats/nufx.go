package formats

import (
	"github.com/ultimate-research/ssbh-go/internal/record"
	"github.com/ultimate-research/ssbh-go/internal/schema"
)

// VertexAttribute names one vertex input a shader program expects and the
// Mesh attribute name it binds to.
type VertexAttribute struct {
	Name          string
	AttributeName string
}

const vertexAttributeSize = 8 + 8

func readVertexAttribute(r *record.Reader) (v VertexAttribute, err error) {
	name, err := r.ReadString()
	if err != nil {
		return v, err
	}
	if name != nil {
		v.Name = *name
	}
	attr, err := r.ReadString()
	if err != nil {
		return v, err
	}
	if attr != nil {
		v.AttributeName = *attr
	}
	return v, nil
}

func writeVertexAttribute(w *record.Writer, v VertexAttribute) error {
	start := w.Reserve(vertexAttributeSize)
	if err := w.WriteString(record.DefaultAlignment, &v.Name); err != nil {
		return err
	}
	if err := w.WriteString(record.DefaultAlignment, &v.AttributeName); err != nil {
		return err
	}
	return w.Finish(start, vertexAttributeSize)
}

// MaterialParameter names one material parameter a shader program reads,
// keyed by the same ParamId space Matl uses.
type MaterialParameter struct {
	ParamID       uint64
	ParameterName string
}

const materialParameterSize = 8 + 8 + 8 // param_id(8) + name offset(8) + 8 bytes padding

func readMaterialParameter(r *record.Reader) (m MaterialParameter, err error) {
	if m.ParamID, err = r.ReadU64(); err != nil {
		return m, err
	}
	name, err := r.ReadString()
	if err != nil {
		return m, err
	}
	if name != nil {
		m.ParameterName = *name
	}
	r.Skip(8)
	return m, nil
}

func writeMaterialParameter(w *record.Writer, m MaterialParameter) error {
	start := w.Reserve(materialParameterSize)
	if err := w.WriteU64(m.ParamID); err != nil {
		return err
	}
	if err := w.WriteString(4, &m.ParameterName); err != nil {
		return err
	}
	if err := w.WriteZeros(8); err != nil {
		return err
	}
	return w.Finish(start, materialParameterSize)
}

// ShaderStages names the shader files a program links, one SsbhString per
// pipeline stage (two of the six are unused/reserved upstream).
type ShaderStages struct {
	VertexShader   string
	Unk1Shader     string
	Unk2Shader     string
	GeometryShader string
	PixelShader    string
	ComputeShader  string
}

func readShaderStages(r *record.Reader) (s ShaderStages, err error) {
	fields := []*string{&s.VertexShader, &s.Unk1Shader, &s.Unk2Shader, &s.GeometryShader, &s.PixelShader, &s.ComputeShader}
	for _, f := range fields {
		v, err := r.ReadString()
		if err != nil {
			return s, err
		}
		if v != nil {
			*f = *v
		}
	}
	return s, nil
}

func (s ShaderStages) write(w *record.Writer) error {
	fields := []string{s.VertexShader, s.Unk1Shader, s.Unk2Shader, s.GeometryShader, s.PixelShader, s.ComputeShader}
	for _, f := range fields {
		v := f
		if err := w.WriteString(record.DefaultAlignment, &v); err != nil {
			return err
		}
	}
	return nil
}

// ShaderProgramV0 is the 1.0-format shader program: named stages and the
// material parameters they read.
type ShaderProgramV0 struct {
	Name               string
	RenderPass         string
	Shaders            ShaderStages
	MaterialParameters []MaterialParameter
}

func readShaderProgramV0(r *record.Reader) (s ShaderProgramV0, err error) {
	name, err := r.ReadString()
	if err != nil {
		return s, err
	}
	if name != nil {
		s.Name = *name
	}
	pass, err := r.ReadString()
	if err != nil {
		return s, err
	}
	if pass != nil {
		s.RenderPass = *pass
	}
	if s.Shaders, err = readShaderStages(r); err != nil {
		return s, err
	}
	_, err = r.ReadArray(func(r *record.Reader, i int) error {
		p, err := readMaterialParameter(r)
		if err != nil {
			return err
		}
		s.MaterialParameters = append(s.MaterialParameters, p)
		return nil
	})
	return s, err
}

func writeShaderProgramV0(w *record.Writer, s ShaderProgramV0) error {
	if err := w.WriteString(record.DefaultAlignment, &s.Name); err != nil {
		return err
	}
	if err := w.WriteString(record.DefaultAlignment, &s.RenderPass); err != nil {
		return err
	}
	if err := s.Shaders.write(w); err != nil {
		return err
	}
	return w.WriteArray(record.DefaultAlignment, len(s.MaterialParameters), materialParameterSize, func(w *record.Writer, i int) error {
		return writeMaterialParameter(w, s.MaterialParameters[i])
	})
}

// ShaderProgramV1 is the 1.1-format shader program, adding an explicit
// vertex attribute binding list.
type ShaderProgramV1 struct {
	Name               string
	RenderPass         string
	Shaders            ShaderStages
	VertexAttributes   []VertexAttribute
	MaterialParameters []MaterialParameter
}

func readShaderProgramV1(r *record.Reader) (s ShaderProgramV1, err error) {
	name, err := r.ReadString()
	if err != nil {
		return s, err
	}
	if name != nil {
		s.Name = *name
	}
	pass, err := r.ReadString()
	if err != nil {
		return s, err
	}
	if pass != nil {
		s.RenderPass = *pass
	}
	if s.Shaders, err = readShaderStages(r); err != nil {
		return s, err
	}
	if _, err = r.ReadArray(func(r *record.Reader, i int) error {
		v, err := readVertexAttribute(r)
		if err != nil {
			return err
		}
		s.VertexAttributes = append(s.VertexAttributes, v)
		return nil
	}); err != nil {
		return s, err
	}
	_, err = r.ReadArray(func(r *record.Reader, i int) error {
		p, err := readMaterialParameter(r)
		if err != nil {
			return err
		}
		s.MaterialParameters = append(s.MaterialParameters, p)
		return nil
	})
	return s, err
}

func writeShaderProgramV1(w *record.Writer, s ShaderProgramV1) error {
	if err := w.WriteString(record.DefaultAlignment, &s.Name); err != nil {
		return err
	}
	if err := w.WriteString(record.DefaultAlignment, &s.RenderPass); err != nil {
		return err
	}
	if err := s.Shaders.write(w); err != nil {
		return err
	}
	if err := w.WriteArray(record.DefaultAlignment, len(s.VertexAttributes), vertexAttributeSize, func(w *record.Writer, i int) error {
		return writeVertexAttribute(w, s.VertexAttributes[i])
	}); err != nil {
		return err
	}
	return w.WriteArray(record.DefaultAlignment, len(s.MaterialParameters), materialParameterSize, func(w *record.Writer, i int) error {
		return writeMaterialParameter(w, s.MaterialParameters[i])
	})
}

// UnkItem is an unclassified named string list found in some Nufx files,
// preserved for round-trip fidelity.
type UnkItem struct {
	Name string
	Unk1 []string
}

func readUnkItem(r *record.Reader) (u UnkItem, err error) {
	name, err := r.ReadString()
	if err != nil {
		return u, err
	}
	if name != nil {
		u.Name = *name
	}
	u.Unk1, err = readStringArray(r)
	return u, err
}

func writeUnkItem(w *record.Writer, u UnkItem) error {
	if err := w.WriteString(record.DefaultAlignment, &u.Name); err != nil {
		return err
	}
	return writeStringArray(w, u.Unk1)
}

// Nufx lists the shader programs a model's materials can select and
// (rarely) an unclassified string-list tail.
type Nufx struct {
	Version       Version
	ProgramsV0    []ShaderProgramV0 // v1.0 only
	ProgramsV1    []ShaderProgramV1 // v1.1 only
	UnkStringList []UnkItem
}

var nufxSchema = schema.RecordSchema{
	Name: "Nufx",
	Fields: []schema.Field{
		{Name: "programs", Kind: schema.KindArray, Size: 16},
		{Name: "unk_string_list", Kind: schema.KindArray, Size: 16},
	},
}

// SizeInBytes implements schema.Sized. The programs field's element shape
// differs between ProgramsV0 (v1.0) and ProgramsV1 (v1.1), but its own
// offset+count footprint is the same either way.
func (n *Nufx) SizeInBytes() int64 {
	return nufxSchema.SizeInBytes(schema.Version{Major: n.Version.Major, Minor: n.Version.Minor})
}

// ReadNufx reads an Nufx record body for versions 1.0 or 1.1.
func ReadNufx(r *record.Reader, v Version) (*Nufx, error) {
	n := &Nufx{Version: v}
	switch {
	case v.Major == 1 && v.Minor == 0:
		if _, err := r.ReadArray(func(r *record.Reader, i int) error {
			p, err := readShaderProgramV0(r)
			if err != nil {
				return err
			}
			n.ProgramsV0 = append(n.ProgramsV0, p)
			return nil
		}); err != nil {
			return nil, err
		}
	case v.Major == 1 && v.Minor == 1:
		if _, err := r.ReadArray(func(r *record.Reader, i int) error {
			p, err := readShaderProgramV1(r)
			if err != nil {
				return err
			}
			n.ProgramsV1 = append(n.ProgramsV1, p)
			return nil
		}); err != nil {
			return nil, err
		}
	default:
		return nil, &record.InvalidDiscriminantError{Enum: "Nufx.version", Value: uint64(v.Major)<<16 | uint64(v.Minor)}
	}

	if _, err := r.ReadArray(func(r *record.Reader, i int) error {
		u, err := readUnkItem(r)
		if err != nil {
			return err
		}
		n.UnkStringList = append(n.UnkStringList, u)
		return nil
	}); err != nil {
		return nil, err
	}
	return n, nil
}

// WriteNufx writes an Nufx record body.
func WriteNufx(w *record.Writer, n *Nufx) error {
	if n.Version.Major != 1 || (n.Version.Minor != 0 && n.Version.Minor != 1) {
		return &record.InvalidDiscriminantError{Enum: "Nufx.version", Value: uint64(n.Version.Major)<<16 | uint64(n.Version.Minor)}
	}

	sizeInBytes := n.SizeInBytes()
	start := w.Reserve(sizeInBytes)

	switch {
	case n.Version.Minor == 0:
		if err := w.WriteArray(record.DefaultAlignment, len(n.ProgramsV0), shaderProgramV0Size(), func(w *record.Writer, i int) error {
			return writeShaderProgramV0(w, n.ProgramsV0[i])
		}); err != nil {
			return err
		}
	case n.Version.Minor == 1:
		if err := w.WriteArray(record.DefaultAlignment, len(n.ProgramsV1), shaderProgramV1Size(), func(w *record.Writer, i int) error {
			return writeShaderProgramV1(w, n.ProgramsV1[i])
		}); err != nil {
			return err
		}
	}

	if err := w.WriteArray(record.DefaultAlignment, len(n.UnkStringList), 24, func(w *record.Writer, i int) error {
		return writeUnkItem(w, n.UnkStringList[i])
	}); err != nil {
		return err
	}

	return w.Finish(start, sizeInBytes)
}

// shaderProgramV0Size returns the byte footprint of a ShaderProgramV0
// element: name(8) + render_pass(8) + 6 shader strings(48) + params array(16).
func shaderProgramV0Size() int64 {
	return 8 + 8 + 6*8 + 16
}

// shaderProgramV1Size adds the vertex attributes array to shaderProgramV0Size.
func shaderProgramV1Size() int64 {
	return shaderProgramV0Size() + 16
}
