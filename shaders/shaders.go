// Package shaders embeds the WGSL sources of every demo pipeline and turns
// them into HAL shader sources, either as WGSL text or as SPIR-V compiled
// with naga.
package shaders

import (
	"embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/portfolio/internal/cache"
)

//go:embed *.wgsl
var sources embed.FS

// Entry points shared by every shader in this package.
const (
	VertexEntry   = "vs_main"
	FragmentEntry = "fs_main"
)

// Name identifies an embedded shader.
type Name string

// Embedded shaders.
const (
	Triangle    Name = "triangle"
	Mandelbrot  Name = "mandelbrot"
	Model3D     Name = "model_3d"
	DrawTexture Name = "draw_texture"
)

// Mode selects how a shader is handed to the HAL.
type Mode uint8

const (
	// ModeWGSL passes WGSL text and lets the backend compile it.
	ModeWGSL Mode = iota

	// ModeSPIRV compiles to SPIR-V up front with naga.
	ModeSPIRV
)

// ErrUnknownShader is returned for a name with no embedded source.
var ErrUnknownShader = errors.New("shaders: unknown shader")

// ErrUnknownMode is returned by ParseMode.
var ErrUnknownMode = errors.New("shaders: unknown mode")

// String returns "wgsl" or "spirv".
func (m Mode) String() string {
	switch m {
	case ModeWGSL:
		return "wgsl"
	case ModeSPIRV:
		return "spirv"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode parses "wgsl" or "spirv".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "wgsl":
		return ModeWGSL, nil
	case "spirv", "spv":
		return ModeSPIRV, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Names lists the embedded shaders in sorted order.
func Names() []Name {
	entries, err := sources.ReadDir(".")
	if err != nil {
		return nil
	}
	names := make([]Name, 0, len(entries))
	for _, e := range entries {
		if n, ok := strings.CutSuffix(e.Name(), ".wgsl"); ok {
			names = append(names, Name(n))
		}
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Source returns the WGSL text of an embedded shader.
func Source(name Name) (string, error) {
	data, err := sources.ReadFile(string(name) + ".wgsl")
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownShader, name)
	}
	return string(data), nil
}

// spirvCache holds SPIR-V words per shader; compilation happens once.
var spirvCache = cache.New[Name, []uint32](0)

// Module returns a HAL shader source for name in the given mode.
func Module(name Name, mode Mode) (hal.ShaderSource, error) {
	src, err := Source(name)
	if err != nil {
		return hal.ShaderSource{}, err
	}
	switch mode {
	case ModeWGSL:
		return hal.ShaderSource{WGSL: src}, nil
	case ModeSPIRV:
		code, err := spirv(name, src)
		if err != nil {
			return hal.ShaderSource{}, err
		}
		return hal.ShaderSource{SPIRV: code}, nil
	default:
		return hal.ShaderSource{}, fmt.Errorf("%w: %v", ErrUnknownMode, mode)
	}
}

func spirv(name Name, src string) ([]uint32, error) {
	return spirvCache.GetOrCreate(name, func() ([]uint32, error) {
		code, err := CompileSPIRV(src)
		if err != nil {
			return nil, fmt.Errorf("compile %s: %w", name, err)
		}
		return code, nil
	})
}

// CompileSPIRV compiles WGSL to SPIR-V words.
func CompileSPIRV(wgsl string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgsl)
	if err != nil {
		return nil, err
	}
	return Words(spirvBytes), nil
}

// Words converts a little-endian SPIR-V byte stream to 32-bit words.
// Trailing bytes that do not form a whole word are dropped.
func Words(b []byte) []uint32 {
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = uint32(b[i*4]) |
			uint32(b[i*4+1])<<8 |
			uint32(b[i*4+2])<<16 |
			uint32(b[i*4+3])<<24
	}
	return words
}
