package panel

import (
	"image"
	"image/color"
	"math"
	"sync"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/portfolio"
)

const (
	testPanelWidth  = 150
	testPanelHeight = 700
)

// newTestController places the list at the window origin.
func newTestController(t *testing.T) (*Controller, *portfolio.Workspace) {
	t.Helper()
	ws := portfolio.NewWorkspace()
	list := NewList(ws, testPanelWidth, testPanelHeight)
	props := NewProperties(ws, testPanelWidth, testPanelHeight)
	c := NewController(ws, list, props, image.Pt(0, 0))
	return c, ws
}

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestListRows(t *testing.T) {
	ws := portfolio.NewWorkspace()
	ws.SetKind(portfolio.KindMandelbrot)
	l := NewList(ws, testPanelWidth, testPanelHeight)

	rows := l.Rows()
	want := []string{"Triangle", "Mandelbrot", "Model3d", "Physics", "Tetris"}
	if len(rows) != len(want) {
		t.Fatalf("rows = %d, want %d", len(rows), len(want))
	}
	selected := 0
	for i, r := range rows {
		if r.Label != want[i] {
			t.Errorf("row %d label = %q, want %q", i, r.Label, want[i])
		}
		if r.Selected {
			selected++
			if r.Kind != portfolio.KindMandelbrot {
				t.Errorf("selected row = %v, want Mandelbrot", r.Kind)
			}
		}
		if r.Bounds.Dy() != RowHeight {
			t.Errorf("row %d height = %d, want %d", i, r.Bounds.Dy(), RowHeight)
		}
	}
	if selected != 1 {
		t.Errorf("selected rows = %d, want 1", selected)
	}
}

func TestListKindAt(t *testing.T) {
	l := NewList(portfolio.NewWorkspace(), testPanelWidth, testPanelHeight)
	for _, r := range l.Rows() {
		c := r.Bounds.Min.Add(image.Pt(10, RowHeight/2))
		if got, ok := l.KindAt(c.X, c.Y); !ok || got != r.Kind {
			t.Errorf("KindAt(%v) = %v, %v; want %v", c, got, ok, r.Kind)
		}
	}
	if _, ok := l.KindAt(10, testPanelHeight-1); ok {
		t.Error("KindAt below the rows reported a kind")
	}
}

func TestPropertiesRows(t *testing.T) {
	tests := []struct {
		kind  portfolio.DemoKind
		label string
	}{
		{portfolio.KindTriangle, "Color"},
		{portfolio.KindMandelbrot, "Nothing"},
		{portfolio.KindModel3D, "Angle"},
		{portfolio.KindPhysics, ""},
		{portfolio.KindTetris, ""},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			ws := portfolio.NewWorkspace()
			ws.SetKind(tt.kind)
			rows := NewProperties(ws, testPanelWidth, testPanelHeight).Rows()
			if tt.label == "" {
				if len(rows) != 0 {
					t.Errorf("rows = %v, want none", rows)
				}
				return
			}
			if len(rows) != 1 || rows[0].Label != tt.label {
				t.Errorf("rows = %v, want one %q row", rows, tt.label)
			}
		})
	}
}

func TestPropertiesColorValue(t *testing.T) {
	ws := portfolio.NewWorkspace()
	ws.SetTriangleColor(0.1, 0.2, 0.3)
	rows := NewProperties(ws, testPanelWidth, testPanelHeight).Rows()
	if got, want := rows[0].Value, "0.10 0.20 0.30"; got != want {
		t.Errorf("value = %q, want %q", got, want)
	}
}

func TestRenderSizesAndReuse(t *testing.T) {
	ws := portfolio.NewWorkspace()
	l := NewList(ws, testPanelWidth, testPanelHeight)
	p := NewProperties(ws, testPanelWidth, testPanelHeight)

	for _, kind := range portfolio.Kinds() {
		ws.SetKind(kind)
		li := l.Render()
		pi := p.Render()
		for _, img := range []*image.RGBA{li, pi} {
			if img.Bounds().Dx() != testPanelWidth || img.Bounds().Dy() != testPanelHeight {
				t.Fatalf("image bounds = %v", img.Bounds())
			}
		}
	}
	first := l.Render()
	if l.Render() != first {
		t.Error("Render allocated a new image for the same size")
	}
}

func TestListHighlightsSelection(t *testing.T) {
	ws := portfolio.NewWorkspace()
	ws.SetKind(portfolio.KindPhysics)
	l := NewList(ws, testPanelWidth, testPanelHeight)
	img := l.Render()

	rows := l.Rows()
	// The last column before the separator is never covered by text.
	x := testPanelWidth - 2
	sel := img.RGBAAt(x, rows[portfolio.KindPhysics].Bounds.Min.Y+1)
	other := img.RGBAAt(x, rows[portfolio.KindTriangle].Bounds.Min.Y+1)
	if sel != selection {
		t.Errorf("selected row color = %v, want %v", sel, selection)
	}
	if other != background {
		t.Errorf("unselected row color = %v, want %v", other, background)
	}
}

func TestPropertiesSwatch(t *testing.T) {
	ws := portfolio.NewWorkspace()
	ws.SetTriangleColor(1, 0, 0)
	p := NewProperties(ws, testPanelWidth, testPanelHeight)
	img := p.Render()

	// Heading row, separator gap, label row, then the swatch row.
	top := padding + RowHeight + padding + RowHeight
	y := top + RowHeight/2
	if got := img.RGBAAt(padding+swatch/2, y); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("swatch color = %v, want red", got)
	}
}

func TestControllerDigitKeys(t *testing.T) {
	c, ws := newTestController(t)
	for i, want := range portfolio.Kinds() {
		c.KeyPress(gpucontext.Key1+gpucontext.Key(i), 0)
		if got := ws.CurrentKind(); got != want {
			t.Errorf("key %d selected %v, want %v", i+1, got, want)
		}
	}
	c.KeyPress(gpucontext.Key6, 0)
	if got := ws.CurrentKind(); got != portfolio.KindTetris {
		t.Errorf("key 6 changed kind to %v", got)
	}
}

func TestControllerCycle(t *testing.T) {
	c, ws := newTestController(t)

	c.KeyPress(gpucontext.KeyUp, 0)
	if got := ws.CurrentKind(); got != portfolio.KindTetris {
		t.Errorf("Up from Triangle = %v, want Tetris", got)
	}
	c.KeyPress(gpucontext.KeyDown, 0)
	c.KeyPress(gpucontext.KeyDown, 0)
	if got := ws.CurrentKind(); got != portfolio.KindMandelbrot {
		t.Errorf("Down twice = %v, want Mandelbrot", got)
	}
}

func TestControllerColorStep(t *testing.T) {
	c, ws := newTestController(t)

	c.KeyPress(gpucontext.KeyG, 0)
	if c.props.Channel() != ChannelG {
		t.Fatalf("channel = %v, want g", c.props.Channel())
	}
	c.KeyPress(gpucontext.KeyLeft, 0)
	got := ws.TriangleParams().Color
	if got[0] != 1 || !near(got[1], 0.95) || got[2] != 1 {
		t.Errorf("color = %v, want [1 0.95 1]", got)
	}

	// Overshoot is clamped.
	c.KeyPress(gpucontext.KeyRight, gpucontext.ModShift)
	if got := ws.TriangleParams().Color[1]; got != 1 {
		t.Errorf("green after overshoot = %v, want 1", got)
	}
	for range 30 {
		c.KeyPress(gpucontext.KeyLeft, 0)
	}
	if got := ws.TriangleParams().Color[1]; got != 0 {
		t.Errorf("green after undershoot = %v, want 0", got)
	}
}

func TestControllerAngleStep(t *testing.T) {
	c, ws := newTestController(t)
	ws.SetKind(portfolio.KindModel3D)

	c.KeyPress(gpucontext.KeyRight, 0)
	if got := ws.Model3DParams().Angle; got != 50 {
		t.Errorf("angle = %v, want 50", got)
	}
	for range 10 {
		c.KeyPress(gpucontext.KeyLeft, 0)
	}
	if got := ws.Model3DParams().Angle; got != 0 {
		t.Errorf("angle = %v, want 0", got)
	}
}

func TestControllerArrowsIgnoredWithoutParams(t *testing.T) {
	c, ws := newTestController(t)
	ws.SetKind(portfolio.KindMandelbrot)
	before := ws.Snapshot()

	c.KeyPress(gpucontext.KeyLeft, 0)
	c.KeyPress(gpucontext.KeyRight, 0)
	if ws.Revision() != before.Revision {
		t.Error("arrow keys changed the workspace for Mandelbrot")
	}
}

func TestControllerMouse(t *testing.T) {
	c, ws := newTestController(t)
	rows := c.list.Rows()

	model := rows[portfolio.KindModel3D].Bounds
	c.MousePress(gpucontext.MouseButtonLeft, float64(model.Min.X+5), float64(model.Min.Y+5))
	if got := ws.CurrentKind(); got != portfolio.KindModel3D {
		t.Errorf("click selected %v, want Model3d", got)
	}

	tetris := rows[portfolio.KindTetris].Bounds
	c.MousePress(gpucontext.MouseButtonRight, float64(tetris.Min.X+5), float64(tetris.Min.Y+5))
	c.MousePress(gpucontext.MouseButtonLeft, 900, float64(tetris.Min.Y+5))
	if got := ws.CurrentKind(); got != portfolio.KindModel3D {
		t.Errorf("ignored clicks changed kind to %v", got)
	}
}

func TestChannelString(t *testing.T) {
	if ChannelR.String() != "r" || ChannelG.String() != "g" || ChannelB.String() != "b" {
		t.Error("unexpected channel names")
	}
	if got := Channel(7).String(); got != "Channel(7)" {
		t.Errorf("Channel(7) = %q", got)
	}
}

// captureSource records the handlers a Controller registers.
type captureSource struct {
	gpucontext.NullEventSource
	key   func(gpucontext.Key, gpucontext.Modifiers)
	mouse func(gpucontext.MouseButton, float64, float64)
}

func (s *captureSource) OnKeyPress(fn func(gpucontext.Key, gpucontext.Modifiers)) { s.key = fn }

func (s *captureSource) OnMousePress(fn func(gpucontext.MouseButton, float64, float64)) {
	s.mouse = fn
}

func TestControllerAttach(t *testing.T) {
	c, ws := newTestController(t)
	src := &captureSource{}
	c.Attach(src)

	if src.key == nil || src.mouse == nil {
		t.Fatal("Attach did not register key and mouse handlers")
	}
	src.key(gpucontext.Key3, 0)
	if got := ws.CurrentKind(); got != portfolio.KindModel3D {
		t.Errorf("key 3 via source selected %v, want Model3d", got)
	}
}

func TestControllerConcurrentSteps(t *testing.T) {
	c, ws := newTestController(t)
	ws.SetKind(portfolio.KindModel3D)
	ws.SetModelAngle(0)

	const n = 40
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.KeyPress(gpucontext.KeyRight, 0)
		}()
	}
	wg.Wait()
	if got, want := ws.Model3DParams().Angle, float32(n*AngleStep%360); got != want {
		t.Errorf("angle = %v, want %v", got, want)
	}
}
