// Package config holds the settings of the portfolio binary and loads them
// from an optional TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/portfolio"
	"github.com/gogpu/portfolio/internal/gpu"
	"github.com/gogpu/portfolio/shaders"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the complete configuration.
type Config struct {
	Window   Window   `toml:"window"`
	Demo     Demo     `toml:"demo"`
	GPU      GPU      `toml:"gpu"`
	Snapshot Snapshot `toml:"snapshot"`
}

// Window describes the window layout: a list panel, the demo canvas and a
// property panel side by side.
type Window struct {
	Title        string `toml:"title"`
	CanvasWidth  int    `toml:"canvas_width"`
	CanvasHeight int    `toml:"canvas_height"`
	PanelWidth   int    `toml:"panel_width"`

	// Continuous redraws every frame instead of on input only.
	Continuous bool `toml:"continuous"`
}

// Width returns the window width.
func (w Window) Width() int {
	return 2*w.PanelWidth + w.CanvasWidth
}

// Height returns the window height.
func (w Window) Height() int {
	return w.CanvasHeight
}

// Demo holds the initial workspace state.
type Demo struct {
	Initial       string     `toml:"initial"`
	TriangleColor [3]float32 `toml:"triangle_color"`
	ModelAngle    float32    `toml:"model_angle"`
}

// GPU selects the backend and the shader representation.
type GPU struct {
	Backends []string `toml:"backends"`
	Shaders  string   `toml:"shaders"`
}

// Snapshot configures headless rendering.
type Snapshot struct {
	Output string `toml:"output"`
}

// Default returns the built-in configuration.
func Default() Config {
	triangle := portfolio.DefaultTriangleParams()
	return Config{
		Window: Window{
			Title:        "My Window",
			CanvasWidth:  700,
			CanvasHeight: 700,
			PanelWidth:   150,
			Continuous:   true,
		},
		Demo: Demo{
			Initial:       strings.ToLower(portfolio.KindTriangle.String()),
			TriangleColor: triangle.Color,
			ModelAngle:    portfolio.DefaultModel3DParams().Angle,
		},
		GPU: GPU{
			Backends: slices.Clone(gpu.DefaultPreference),
			Shaders:  shaders.ModeWGSL.String(),
		},
		Snapshot: Snapshot{
			Output: "snapshot.png",
		},
	}
}

// Load reads path over the defaults and validates the result. An empty
// path returns the defaults. Unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := Decode(bytes.NewReader(data), &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode reads TOML from r into cfg, keeping fields r does not set.
func Decode(r io.Reader, cfg *Config) error {
	return toml.NewDecoder(r).DisallowUnknownFields().Decode(cfg)
}

// Encode writes cfg as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Window.CanvasWidth > 0 && c.Window.CanvasHeight > 0,
		"canvas size %dx%d must be positive", c.Window.CanvasWidth, c.Window.CanvasHeight)
	check(c.Window.PanelWidth >= 0, "panel width %d must not be negative", c.Window.PanelWidth)

	if _, err := c.Kind(); err != nil {
		errs = append(errs, err)
	}
	for i, v := range c.Demo.TriangleColor {
		check(v >= 0 && v <= 1, "triangle color channel %d = %v is outside [0, 1]", i, v)
	}
	angle := float64(c.Demo.ModelAngle)
	check(!math.IsNaN(angle) && !math.IsInf(angle, 0), "model angle %v must be finite", c.Demo.ModelAngle)

	if _, err := c.ShaderMode(); err != nil {
		errs = append(errs, err)
	}
	for _, b := range c.GPU.Backends {
		check(slices.Contains(gpu.DefaultPreference, strings.ToLower(b)), "unknown backend %q", b)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

// Kind parses the initial demo.
func (c Config) Kind() (portfolio.DemoKind, error) {
	return portfolio.ParseDemoKind(c.Demo.Initial)
}

// ShaderMode parses the shader representation.
func (c Config) ShaderMode() (shaders.Mode, error) {
	return shaders.ParseMode(c.GPU.Shaders)
}

// Apply copies the initial demo state into ws. The configuration must be
// valid.
func (c Config) Apply(ws *portfolio.Workspace) error {
	kind, err := c.Kind()
	if err != nil {
		return err
	}
	ws.SetKind(kind)
	rgb := c.Demo.TriangleColor
	ws.SetTriangleColor(rgb[0], rgb[1], rgb[2])
	ws.SetModelAngle(c.Demo.ModelAngle)
	return nil
}
