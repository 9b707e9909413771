package portfolio

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned when a demo name does not match any DemoKind.
var ErrUnknownKind = errors.New("portfolio: unknown demo kind")

// DemoKind identifies which showcase is active. The set is closed.
type DemoKind uint8

const (
	// KindTriangle draws a single triangle in a uniform color.
	KindTriangle DemoKind = iota

	// KindMandelbrot draws the Mandelbrot set on a full-screen quad.
	KindMandelbrot

	// KindModel3D draws a lit torus with a depth buffer.
	KindModel3D

	// KindPhysics is selectable but draws nothing.
	KindPhysics

	// KindTetris is selectable but draws nothing.
	KindTetris

	kindCount
)

var kindLabels = [kindCount]string{
	KindTriangle:   "Triangle",
	KindMandelbrot: "Mandelbrot",
	KindModel3D:    "Model3d",
	KindPhysics:    "Physics",
	KindTetris:     "Tetris",
}

// String returns the display label of the kind.
func (k DemoKind) String() string {
	if k >= kindCount {
		return fmt.Sprintf("DemoKind(%d)", uint8(k))
	}
	return kindLabels[k]
}

// Valid reports whether k is one of the declared kinds.
func (k DemoKind) Valid() bool {
	return k < kindCount
}

// Implemented reports whether the kind has a renderer. Physics and Tetris
// are valid selections without one.
func (k DemoKind) Implemented() bool {
	switch k {
	case KindTriangle, KindMandelbrot, KindModel3D:
		return true
	default:
		return false
	}
}

// Kinds returns every DemoKind in list order.
func Kinds() []DemoKind {
	kinds := make([]DemoKind, 0, kindCount)
	for k := DemoKind(0); k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// ParseDemoKind resolves a label such as "mandelbrot" or "Model3D".
// Matching ignores case; "model3d", "model_3d" and "model-3d" are accepted.
func ParseDemoKind(s string) (DemoKind, error) {
	name := strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.TrimSpace(s))
	for k := DemoKind(0); k < kindCount; k++ {
		if strings.EqualFold(name, kindLabels[k]) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k DemoKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, uint8(k))
	}
	return []byte(strings.ToLower(kindLabels[k])), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *DemoKind) UnmarshalText(text []byte) error {
	parsed, err := ParseDemoKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
