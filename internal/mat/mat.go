// Package mat provides the small amount of float32 linear algebra the
// demos need: 3-vectors and column-major 4x4 matrices with left-handed,
// zero-to-one depth camera helpers.
package mat

import (
	"github.com/chewxy/math32"
)

// Vec3 is a 3-component vector.
type Vec3 [3]float32

// Sub returns a - b.
func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Dot returns the dot product.
func (a Vec3) Dot(b Vec3) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Cross returns the cross product a x b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Len returns the Euclidean length.
func (a Vec3) Len() float32 {
	return math32.Sqrt(a.Dot(a))
}

// Normalize returns a unit vector, or the zero vector for zero input.
func (a Vec3) Normalize() Vec3 {
	l := a.Len()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{a[0] / l, a[1] / l, a[2] / l}
}

// Mat4 is a 4x4 matrix stored column-major, the layout WGSL expects for a
// mat4x4<f32> uniform. Element (row r, column c) is m[c*4+r].
type Mat4 [16]float32

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// At returns element (row, col).
func (m Mat4) At(row, col int) float32 {
	return m[col*4+row]
}

func (m *Mat4) set(row, col int, v float32) {
	m[col*4+row] = v
}

// Mul returns m * n.
func (m Mat4) Mul(n Mat4) Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m.At(r, k) * n.At(k, c)
			}
			out.set(r, c, sum)
		}
	}
	return out
}

// MulVec4 returns m * v.
func (m Mat4) MulVec4(v [4]float32) [4]float32 {
	var out [4]float32
	for r := 0; r < 4; r++ {
		out[r] = m.At(r, 0)*v[0] + m.At(r, 1)*v[1] + m.At(r, 2)*v[2] + m.At(r, 3)*v[3]
	}
	return out
}

// PerspectiveLH returns a left-handed perspective projection mapping depth
// to [0, 1]. fovY is in radians.
func PerspectiveLH(fovY, aspect, near, far float32) Mat4 {
	f := 1 / math32.Tan(fovY/2)
	var m Mat4
	m.set(0, 0, f/aspect)
	m.set(1, 1, f)
	m.set(2, 2, far/(far-near))
	m.set(2, 3, -(near*far)/(far-near))
	m.set(3, 2, 1)
	return m
}

// LookAtLH returns a left-handed view matrix looking from eye at target.
func LookAtLH(eye, target, up Vec3) Mat4 {
	f := target.Sub(eye).Normalize()
	s := up.Cross(f).Normalize()
	u := f.Cross(s)

	m := Identity()
	m.set(0, 0, s[0])
	m.set(0, 1, s[1])
	m.set(0, 2, s[2])
	m.set(1, 0, u[0])
	m.set(1, 1, u[1])
	m.set(1, 2, u[2])
	m.set(2, 0, f[0])
	m.set(2, 1, f[1])
	m.set(2, 2, f[2])
	m.set(0, 3, -s.Dot(eye))
	m.set(1, 3, -u.Dot(eye))
	m.set(2, 3, -f.Dot(eye))
	return m
}

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * math32.Pi / 180
}
