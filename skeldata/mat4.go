package skeldata

import "github.com/ultimate-research/ssbh-go/formats"

// mat4 is a row-major 4x4 matrix, mat[row][col], matching the mathematical
// convention formats.Matrix4x4 stores on the wire.
type mat4 [4][4]float32

func fromMatrix4x4(m formats.Matrix4x4) mat4 {
	return mat4{
		{m.Row0.X, m.Row0.Y, m.Row0.Z, m.Row0.W},
		{m.Row1.X, m.Row1.Y, m.Row1.Z, m.Row1.W},
		{m.Row2.X, m.Row2.Y, m.Row2.Z, m.Row2.W},
		{m.Row3.X, m.Row3.Y, m.Row3.Z, m.Row3.W},
	}
}

func (m mat4) toMatrix4x4() formats.Matrix4x4 {
	return formats.Matrix4x4{
		Row0: formats.Vector4{X: m[0][0], Y: m[0][1], Z: m[0][2], W: m[0][3]},
		Row1: formats.Vector4{X: m[1][0], Y: m[1][1], Z: m[1][2], W: m[1][3]},
		Row2: formats.Vector4{X: m[2][0], Y: m[2][1], Z: m[2][2], W: m[2][3]},
		Row3: formats.Vector4{X: m[3][0], Y: m[3][1], Z: m[3][2], W: m[3][3]},
	}
}

// mul returns a*b using standard matrix multiplication.
func (a mat4) mul(b mat4) mat4 {
	var out mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[i][k] * b[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

// inverse returns the general inverse of m via the cofactor/adjugate method.
// Singular matrices produce a matrix of Inf/NaN, mirroring what IEEE 754
// division by a zero determinant already does elsewhere in this package.
func (m mat4) inverse() mat4 {
	a := m
	var c [4][4]float32
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			c[i][j] = cofactor3x3(a, i, j)
		}
	}
	det := a[0][0]*c[0][0] + a[0][1]*c[0][1] + a[0][2]*c[0][2] + a[0][3]*c[0][3]

	var out mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			// adjugate is the transpose of the cofactor matrix.
			out[i][j] = c[j][i] / det
		}
	}
	return out
}

// cofactor3x3 returns the (row, col) cofactor of m: the signed determinant
// of the 3x3 minor left after removing that row and column.
func cofactor3x3(m mat4, row, col int) float32 {
	var minor [3][3]float32
	mi := 0
	for i := 0; i < 4; i++ {
		if i == row {
			continue
		}
		mj := 0
		for j := 0; j < 4; j++ {
			if j == col {
				continue
			}
			minor[mi][mj] = m[i][j]
			mj++
		}
		mi++
	}
	det := minor[0][0]*(minor[1][1]*minor[2][2]-minor[1][2]*minor[2][1]) -
		minor[0][1]*(minor[1][0]*minor[2][2]-minor[1][2]*minor[2][0]) +
		minor[0][2]*(minor[1][0]*minor[2][1]-minor[1][1]*minor[2][0])
	if (row+col)%2 != 0 {
		det = -det
	}
	return det
}
