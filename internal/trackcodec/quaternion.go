package trackcodec

import "math"

// ReconstructW recovers a compressed rotation track's W component from its
// stored X, Y, Z and a sign bit, using the unit-quaternion identity
// x^2+y^2+z^2+w^2=1. Floating point error in the compressed x/y/z can push
// the radicand slightly negative for near-unit quaternions; that case is
// treated as w=0 rather than propagating a NaN.
func ReconstructW(x, y, z float32, negative bool) float32 {
	radicand := 1 - (x*x + y*y + z*z)
	var w float32
	if radicand > 0 {
		w = float32(math.Sqrt(float64(radicand)))
	}
	if negative {
		w = -w
	}
	return w
}

// QuaternionLength returns the magnitude of (x,y,z,w). Rotation tracks
// carry quaternions as four independent float32 components rather than a
// distinct type, so this is a plain Euclidean norm rather than a method on
// some quaternion struct.
func QuaternionLength(x, y, z, w float32) float32 {
	sum := float64(x)*float64(x) + float64(y)*float64(y) + float64(z)*float64(z) + float64(w)*float64(w)
	return float32(math.Sqrt(sum))
}

// ValidateUnitQuaternion returns a NonUnitQuaternionError if (x,y,z,w) is
// not within tolerance of a unit quaternion, which the compressed rotation
// format requires since it discards W and reconstructs it from the others.
func ValidateUnitQuaternion(x, y, z, w float32, tolerance float32) error {
	length := QuaternionLength(x, y, z, w)
	diff := length - 1
	if diff < 0 {
		diff = -diff
	}
	if diff > tolerance {
		return &NonUnitQuaternionError{Length: length}
	}
	return nil
}
