package shaderc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/glsl"
	"github.com/gogpu/naga/hlsl"
	"github.com/gogpu/naga/ir"
	"github.com/gogpu/naga/msl"
	"github.com/gogpu/naga/spirv"

	"github.com/gogpu/portfolio"
)

// ErrNoEntryPoint is returned when the source lacks the stage's entry point.
var ErrNoEntryPoint = errors.New("shaderc: entry point not found")

// ErrUnknownFormat is returned by ParseFormats.
var ErrUnknownFormat = errors.New("shaderc: unknown format")

// Format is a set of output formats.
type Format uint8

const (
	FormatSPIRV Format = 1 << iota
	FormatGLSL
	FormatMSL
	FormatHLSL

	FormatAll = FormatSPIRV | FormatGLSL | FormatMSL | FormatHLSL
)

var formatNames = []struct {
	f    Format
	name string
	ext  string
}{
	{FormatSPIRV, "spirv", ".spv"},
	{FormatGLSL, "glsl", ".glsl"},
	{FormatMSL, "msl", ".metal"},
	{FormatHLSL, "hlsl", ".hlsl"},
}

// Has reports whether every format in o is set in f.
func (f Format) Has(o Format) bool { return f&o == o }

// String joins the set format names with commas.
func (f Format) String() string {
	var parts []string
	for _, n := range formatNames {
		if f.Has(n.f) {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ",")
}

// ParseFormats parses a comma-separated list such as "spirv,glsl".
// "all" selects every format.
func ParseFormats(s string) (Format, error) {
	var f Format
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		switch part {
		case "":
			continue
		case "all":
			f |= FormatAll
			continue
		case "spv":
			part = "spirv"
		case "metal":
			part = "msl"
		}
		found := false
		for _, n := range formatNames {
			if n.name == part {
				f |= n.f
				found = true
			}
		}
		if !found {
			return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, part)
		}
	}
	if f == 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
	return f, nil
}

// Output is the result of compiling one target.
type Output struct {
	Target Target
	SPIRV  []byte
	GLSL   string
	MSL    string
	HLSL   string
}

// Compile compiles WGSL source for one target. Only the formats in f are
// produced. Any parse, lowering or validation failure is returned with the
// failing step as prefix.
func Compile(t Target, src string, defines map[string]string, f Format) (*Output, error) {
	src = ApplyDefines(src, defines)

	ast, err := naga.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", t.Shader, err)
	}
	module, err := naga.LowerWithSource(ast, src)
	if err != nil {
		return nil, fmt.Errorf("lower %s: %w", t.Shader, err)
	}
	verrs, err := naga.Validate(module)
	if err != nil {
		return nil, fmt.Errorf("validate %s: %w", t.Shader, err)
	}
	if len(verrs) > 0 {
		return nil, fmt.Errorf("validate %s: %w", t.Shader, &verrs[0])
	}

	stage, err := stageModule(module, t)
	if err != nil {
		return nil, err
	}

	out := &Output{Target: t}
	if f.Has(FormatSPIRV) {
		out.SPIRV, err = naga.GenerateSPIRV(stage, spirv.Options{Version: spirv.Version1_3})
		if err != nil {
			return nil, fmt.Errorf("spirv %s: %w", t, err)
		}
	}
	if f.Has(FormatGLSL) {
		opts := glsl.DefaultOptions()
		opts.EntryPoint = t.Stage.Entry()
		out.GLSL, _, err = glsl.Compile(module, opts)
		if err != nil {
			return nil, fmt.Errorf("glsl %s: %w", t, err)
		}
	}
	if f.Has(FormatMSL) {
		out.MSL, _, err = msl.CompileWithPipeline(module, msl.DefaultOptions(), msl.PipelineOptions{
			EntryPoint: &msl.EntryPointSelector{Stage: t.Stage.ir(), Name: t.Stage.Entry()},
		})
		if err != nil {
			return nil, fmt.Errorf("msl %s: %w", t, err)
		}
	}
	if f.Has(FormatHLSL) {
		opts := hlsl.DefaultOptions()
		opts.EntryPoint = t.Stage.Entry()
		out.HLSL, _, err = hlsl.Compile(module, opts)
		if err != nil {
			return nil, fmt.Errorf("hlsl %s: %w", t, err)
		}
	}

	portfolio.Logger().Debug("shaderc: compiled",
		"target", t.String(),
		"formats", f.String(),
		"spirv_bytes", len(out.SPIRV))
	return out, nil
}

// stageModule returns a shallow copy of module that keeps only the entry
// point of t's stage.
func stageModule(module *ir.Module, t Target) (*ir.Module, error) {
	for _, ep := range module.EntryPoints {
		if ep.Name == t.Stage.Entry() && ep.Stage == t.Stage.ir() {
			m := *module
			m.EntryPoints = []ir.EntryPoint{ep}
			return &m, nil
		}
	}
	return nil, fmt.Errorf("%w: %s in %s", ErrNoEntryPoint, t.Stage.Entry(), t.Shader)
}

// files returns the output file names of o for the formats in f, paired
// with their contents.
func (o *Output) files(f Format) []outputFile {
	var files []outputFile
	for _, n := range formatNames {
		if !f.Has(n.f) {
			continue
		}
		var data []byte
		switch n.f {
		case FormatSPIRV:
			data = o.SPIRV
		case FormatGLSL:
			data = []byte(o.GLSL)
		case FormatMSL:
			data = []byte(o.MSL)
		case FormatHLSL:
			data = []byte(o.HLSL)
		}
		files = append(files, outputFile{name: o.Target.String() + n.ext, data: data})
	}
	return files
}

type outputFile struct {
	name string
	data []byte
}

// outputNames lists the file names a target produces for f.
func outputNames(t Target, f Format) []string {
	var names []string
	for _, n := range formatNames {
		if f.Has(n.f) {
			names = append(names, t.String()+n.ext)
		}
	}
	return names
}
