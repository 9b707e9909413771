// Package shaderc is the offline shader pipeline behind cmd/shaderc.
//
// Each embedded shader is compiled once per pipeline stage. The WGSL source
// goes through naga (parse, lower, validate) and the result is written as a
// stage-specific SPIR-V binary plus optional GLSL, MSL and HLSL text:
//
//	triangle.vs.spv  triangle.fs.spv  triangle.vs.glsl  ...
//
// Defines are injected as WGSL const declarations before parsing.
package shaderc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/naga/ir"

	"github.com/gogpu/portfolio/shaders"
)

// ErrUnknownTarget is returned by ParseTargets for a name that matches no
// shader or stage.
var ErrUnknownTarget = errors.New("shaderc: unknown target")

// Stage is a pipeline stage.
type Stage uint8

const (
	StageVertex Stage = iota
	StageFragment
)

// String returns the short stage suffix used in output names.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vs"
	case StageFragment:
		return "fs"
	default:
		return fmt.Sprintf("Stage(%d)", uint8(s))
	}
}

// Entry returns the WGSL entry point compiled for the stage.
func (s Stage) Entry() string {
	if s == StageFragment {
		return shaders.FragmentEntry
	}
	return shaders.VertexEntry
}

func (s Stage) ir() ir.ShaderStage {
	if s == StageFragment {
		return ir.StageFragment
	}
	return ir.StageVertex
}

// Target is one shader compiled for one stage.
type Target struct {
	Shader shaders.Name
	Stage  Stage
}

// String returns the output base name, e.g. "triangle.vs".
func (t Target) String() string {
	return string(t.Shader) + "." + t.Stage.String()
}

var buildShaders = []shaders.Name{
	shaders.Triangle,
	shaders.Mandelbrot,
	shaders.Model3D,
	shaders.DrawTexture,
}

// Targets returns every build target: each shader with its vertex and
// fragment stage, in build order.
func Targets() []Target {
	targets := make([]Target, 0, 2*len(buildShaders))
	for _, name := range buildShaders {
		targets = append(targets,
			Target{Shader: name, Stage: StageVertex},
			Target{Shader: name, Stage: StageFragment},
		)
	}
	return targets
}

// ParseTargets selects targets by name. A name is either a shader
// ("triangle", both stages) or a single target ("triangle.fs").
// No names selects every target.
func ParseTargets(names []string) ([]Target, error) {
	all := Targets()
	if len(names) == 0 {
		return all, nil
	}
	var out []Target
	seen := make(map[Target]bool)
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		matched := false
		for _, t := range all {
			if string(t.Shader) != name && t.String() != name {
				continue
			}
			matched = true
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
		if !matched {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTarget, raw)
		}
	}
	return out, nil
}

// TargetsFor returns the targets of one shader.
func TargetsFor(name shaders.Name) []Target {
	var out []Target
	for _, t := range Targets() {
		if t.Shader == name {
			out = append(out, t)
		}
	}
	return out
}
