package demo

import (
	"github.com/chewxy/math32"
)

// Torus tessellation used by the Model3D demo.
const (
	torusRings       = 24
	torusSides       = 24
	torusMajorRadius = 1.0
	torusMinorRadius = 0.25
)

// torusVertexStride is position (vec3<f32>) followed by normal (vec3<f32>).
const torusVertexStride = 24

// torusMesh returns interleaved position/normal floats and triangle-list
// indices for a torus lying in the XY plane around the Z axis.
// The mesh has rings*sides vertices and rings*sides*6 indices.
func torusMesh(rings, sides int, major, minor float32) ([]float32, []uint32) {
	vertices := make([]float32, 0, rings*sides*6)
	for i := 0; i < rings; i++ {
		u := 2 * math32.Pi * float32(i) / float32(rings)
		cu, su := math32.Cos(u), math32.Sin(u)
		for j := 0; j < sides; j++ {
			v := 2 * math32.Pi * float32(j) / float32(sides)
			cv, sv := math32.Cos(v), math32.Sin(v)
			ring := major + minor*cv
			vertices = append(vertices,
				ring*cu, ring*su, minor*sv,
				cv*cu, cv*su, sv,
			)
		}
	}

	indices := make([]uint32, 0, rings*sides*6)
	for i := 0; i < rings; i++ {
		next := (i + 1) % rings
		for j := 0; j < sides; j++ {
			nj := (j + 1) % sides
			a := uint32(i*sides + j)
			b := uint32(next*sides + j)
			c := uint32(next*sides + nj)
			d := uint32(i*sides + nj)
			indices = append(indices, a, b, c, a, c, d)
		}
	}
	return vertices, indices
}
