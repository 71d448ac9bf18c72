// Package formats declares the per-member schemas of the SSBH file family:
// one Go type and one read/write pair per format, built on top of
// internal/record's offset-resolution primitives. Field-level detail
// mirrors the layout of the game's own binary tools.
package formats

import "github.com/ultimate-research/ssbh-go/internal/record"

// Version identifies a format's on-disk revision.
type Version struct {
	Major uint16
	Minor uint16
}

// Vector2 is an inline pair of f32 components.
type Vector2 struct {
	X, Y float32
}

func readVector2(r *record.Reader) (v Vector2, err error) {
	if v.X, err = r.ReadF32(); err != nil {
		return v, err
	}
	v.Y, err = r.ReadF32()
	return v, err
}

func (v Vector2) write(w *record.Writer) error {
	if err := w.WriteF32(v.X); err != nil {
		return err
	}
	return w.WriteF32(v.Y)
}

// Vector3 is an inline triple of f32 components.
type Vector3 struct {
	X, Y, Z float32
}

func readVector3(r *record.Reader) (v Vector3, err error) {
	if v.X, err = r.ReadF32(); err != nil {
		return v, err
	}
	if v.Y, err = r.ReadF32(); err != nil {
		return v, err
	}
	v.Z, err = r.ReadF32()
	return v, err
}

func (v Vector3) write(w *record.Writer) error {
	if err := w.WriteF32(v.X); err != nil {
		return err
	}
	if err := w.WriteF32(v.Y); err != nil {
		return err
	}
	return w.WriteF32(v.Z)
}

// Vector4 is an inline quadruple of f32 components, also used for
// unnormalized quaternions in some record fields.
type Vector4 struct {
	X, Y, Z, W float32
}

func readVector4(r *record.Reader) (v Vector4, err error) {
	if v.X, err = r.ReadF32(); err != nil {
		return v, err
	}
	if v.Y, err = r.ReadF32(); err != nil {
		return v, err
	}
	if v.Z, err = r.ReadF32(); err != nil {
		return v, err
	}
	v.W, err = r.ReadF32()
	return v, err
}

func (v Vector4) write(w *record.Writer) error {
	if err := w.WriteF32(v.X); err != nil {
		return err
	}
	if err := w.WriteF32(v.Y); err != nil {
		return err
	}
	if err := w.WriteF32(v.Z); err != nil {
		return err
	}
	return w.WriteF32(v.W)
}

// Color4f is an inline RGBA color of f32 components.
type Color4f struct {
	R, G, B, A float32
}

func readColor4f(r *record.Reader) (c Color4f, err error) {
	v, err := readVector4(r)
	return Color4f{R: v.X, G: v.Y, B: v.Z, A: v.W}, err
}

func (c Color4f) write(w *record.Writer) error {
	return Vector4{X: c.R, Y: c.G, Z: c.B, W: c.A}.write(w)
}

// Matrix3x3 is an inline 3x3 matrix stored row-major.
type Matrix3x3 struct {
	Row0, Row1, Row2 Vector3
}

func readMatrix3x3(r *record.Reader) (m Matrix3x3, err error) {
	if m.Row0, err = readVector3(r); err != nil {
		return m, err
	}
	if m.Row1, err = readVector3(r); err != nil {
		return m, err
	}
	m.Row2, err = readVector3(r)
	return m, err
}

func (m Matrix3x3) write(w *record.Writer) error {
	if err := m.Row0.write(w); err != nil {
		return err
	}
	if err := m.Row1.write(w); err != nil {
		return err
	}
	return m.Row2.write(w)
}

// Matrix4x4 is an inline 4x4 matrix stored row-major.
type Matrix4x4 struct {
	Row0, Row1, Row2, Row3 Vector4
}

func readMatrix4x4(r *record.Reader) (m Matrix4x4, err error) {
	if m.Row0, err = readVector4(r); err != nil {
		return m, err
	}
	if m.Row1, err = readVector4(r); err != nil {
		return m, err
	}
	if m.Row2, err = readVector4(r); err != nil {
		return m, err
	}
	m.Row3, err = readVector4(r)
	return m, err
}

func (m Matrix4x4) write(w *record.Writer) error {
	if err := m.Row0.write(w); err != nil {
		return err
	}
	if err := m.Row1.write(w); err != nil {
		return err
	}
	if err := m.Row2.write(w); err != nil {
		return err
	}
	return m.Row3.write(w)
}

// BoundingSphere is a center point and radius.
type BoundingSphere struct {
	Center Vector3
	Radius float32
}

func readBoundingSphere(r *record.Reader) (b BoundingSphere, err error) {
	if b.Center, err = readVector3(r); err != nil {
		return b, err
	}
	b.Radius, err = r.ReadF32()
	return b, err
}

func (b BoundingSphere) write(w *record.Writer) error {
	if err := b.Center.write(w); err != nil {
		return err
	}
	return w.WriteF32(b.Radius)
}

// BoundingVolume is an axis-aligned min/max box.
type BoundingVolume struct {
	Min, Max Vector3
}

func readBoundingVolume(r *record.Reader) (b BoundingVolume, err error) {
	if b.Min, err = readVector3(r); err != nil {
		return b, err
	}
	b.Max, err = readVector3(r)
	return b, err
}

func (b BoundingVolume) write(w *record.Writer) error {
	if err := b.Min.write(w); err != nil {
		return err
	}
	return b.Max.write(w)
}

// OrientedBoundingBox is a center, rotation, and half-extents.
type OrientedBoundingBox struct {
	Center    Vector3
	Transform Matrix3x3
	Size      Vector3
}

func readOrientedBoundingBox(r *record.Reader) (o OrientedBoundingBox, err error) {
	if o.Center, err = readVector3(r); err != nil {
		return o, err
	}
	if o.Transform, err = readMatrix3x3(r); err != nil {
		return o, err
	}
	o.Size, err = readVector3(r)
	return o, err
}

func (o OrientedBoundingBox) write(w *record.Writer) error {
	if err := o.Center.write(w); err != nil {
		return err
	}
	if err := o.Transform.write(w); err != nil {
		return err
	}
	return o.Size.write(w)
}

// BoundingInfo groups the three bounding-volume representations a Mesh
// header and each MeshObject carry.
type BoundingInfo struct {
	Sphere              BoundingSphere
	Volume              BoundingVolume
	OrientedBoundingBox OrientedBoundingBox
}

func readBoundingInfo(r *record.Reader) (b BoundingInfo, err error) {
	if b.Sphere, err = readBoundingSphere(r); err != nil {
		return b, err
	}
	if b.Volume, err = readBoundingVolume(r); err != nil {
		return b, err
	}
	b.OrientedBoundingBox, err = readOrientedBoundingBox(r)
	return b, err
}

func (b BoundingInfo) write(w *record.Writer) error {
	if err := b.Sphere.write(w); err != nil {
		return err
	}
	if err := b.Volume.write(w); err != nil {
		return err
	}
	return b.OrientedBoundingBox.write(w)
}

// readStringArray/writeStringArray implement SsbhArray<SsbhString>, a shape
// shared by several formats (Modl's material file names, Nlst, Nufx's
// unknown string lists).
func readStringArray(r *record.Reader) ([]string, error) {
	var out []string
	_, err := r.ReadArray(func(r *record.Reader, i int) error {
		s, err := r.ReadString()
		if err != nil {
			return err
		}
		if s == nil {
			out = append(out, "")
		} else {
			out = append(out, *s)
		}
		return nil
	})
	return out, err
}

func writeStringArray(w *record.Writer, values []string) error {
	return w.WriteArray(record.DefaultAlignment, len(values), 8, func(w *record.Writer, i int) error {
		s := values[i]
		return w.WriteString(record.DefaultAlignment, &s)
	})
}
