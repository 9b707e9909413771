package portfolio

import "math"

// TriangleParams holds the editable state of the triangle demo.
type TriangleParams struct {
	// Color is the fill color, each channel in [0, 1].
	Color [3]float32
}

// DefaultTriangleParams returns white, the color the triangle starts with.
func DefaultTriangleParams() TriangleParams {
	return TriangleParams{Color: [3]float32{1, 1, 1}}
}

// RGBA returns the color with an opaque alpha, laid out as the shader's
// vec4 uniform.
func (p TriangleParams) RGBA() [4]float32 {
	return [4]float32{p.Color[0], p.Color[1], p.Color[2], 1}
}

// Model3DParams holds the camera orbit of the torus demo.
type Model3DParams struct {
	// Angle is the camera orbit angle around +Z in degrees.
	// 45 places the eye at (2, 2, 1.5).
	Angle float32
}

// DefaultModel3DParams returns the initial camera orbit.
func DefaultModel3DParams() Model3DParams {
	return Model3DParams{Angle: 45}
}

// Params is the set of per-demo parameter types stored in a Workspace.
type Params interface {
	TriangleParams | Model3DParams
}

// ParamsKind returns the DemoKind that owns parameter type P.
func ParamsKind[P Params]() DemoKind {
	var zero P
	switch any(zero).(type) {
	case TriangleParams:
		return KindTriangle
	default:
		return KindModel3D
	}
}

func clampUnit(v float32) float32 {
	switch {
	case v != v: // NaN
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// wrapDegrees maps an angle into [0, 360). NaN and infinities map to 0.
func wrapDegrees(a float32) float32 {
	d := float64(a)
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return 0
	}
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	// Tiny negative inputs round up to 360 in float32.
	if r := float32(d); r < 360 {
		return r
	}
	return 0
}
