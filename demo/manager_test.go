package demo

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/portfolio"
)

func newTestManager(t *testing.T) (*Manager, *portfolio.Workspace) {
	t.Helper()
	device, queue, cleanup := createNoopDevice(t)
	ws := portfolio.NewWorkspace()
	m := NewManager(ws, device, queue, DefaultTarget())
	t.Cleanup(func() {
		m.Close()
		cleanup()
	})
	return m, ws
}

// frame runs one update and draw and returns what was recorded.
func frame(t *testing.T, m *Manager) *recordingPass {
	t.Helper()
	if err := m.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	pass := &recordingPass{}
	m.Draw(pass)
	return pass
}

func TestManagerNothingBeforeUpdate(t *testing.T) {
	m, _ := newTestManager(t)

	var pass recordingPass
	m.Draw(&pass)
	if len(pass.draws) != 0 {
		t.Errorf("draw calls = %d, want 0", len(pass.draws))
	}
	if got := m.Active(); len(got) != 0 {
		t.Errorf("Active() = %v, want none", got)
	}
}

func TestManagerLazyConstruction(t *testing.T) {
	m, ws := newTestManager(t)

	frame(t, m)
	if got := m.Active(); !slices.Equal(got, []portfolio.DemoKind{portfolio.KindTriangle}) {
		t.Errorf("Active() = %v, want [Triangle]", got)
	}

	ws.SetKind(portfolio.KindModel3D)
	frame(t, m)
	want := []portfolio.DemoKind{portfolio.KindTriangle, portfolio.KindModel3D}
	if got := m.Active(); !slices.Equal(got, want) {
		t.Errorf("Active() = %v, want %v", got, want)
	}
}

func TestManagerMandelbrotFrame(t *testing.T) {
	m, ws := newTestManager(t)
	ws.SetKind(portfolio.KindMandelbrot)

	pass := frame(t, m)
	if len(pass.draws) != 1 {
		t.Fatalf("draw calls = %d, want 1", len(pass.draws))
	}
	if d := pass.draws[0]; !d.indexed || d.count != 6 {
		t.Errorf("draw = %+v, want indexed quad", d)
	}
}

func TestManagerTriangleColorBeforeFrame(t *testing.T) {
	m, ws := newTestManager(t)
	ws.SetTriangleColor(0.1, 0.2, 0.3)

	pass := frame(t, m)
	if len(pass.draws) != 1 || pass.draws[0].count != 3 {
		t.Fatalf("draws = %+v, want one 3-vertex draw", pass.draws)
	}
	got := readFloats(t, m.device, m.triangle.colorBuf, 4)
	want := []float32{0.1, 0.2, 0.3, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("color[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestManagerColorChangeAfterConstruction(t *testing.T) {
	m, ws := newTestManager(t)
	frame(t, m)

	ws.SetTriangleColor(1, 0, 0)
	frame(t, m)

	got := readFloats(t, m.device, m.triangle.colorBuf, 4)
	if got[0] != 1 || got[1] != 0 || got[2] != 0 {
		t.Errorf("color = %v, want red", got)
	}
}

func TestManagerUnimplementedKinds(t *testing.T) {
	for _, kind := range []portfolio.DemoKind{portfolio.KindPhysics, portfolio.KindTetris} {
		t.Run(kind.String(), func(t *testing.T) {
			m, ws := newTestManager(t)
			ws.SetKind(kind)

			pass := frame(t, m)
			if len(pass.draws) != 0 || pass.pipelines != 0 {
				t.Errorf("recorded %+v, want nothing", pass)
			}
			if m.ActiveKind() != kind {
				t.Errorf("ActiveKind() = %v, want %v", m.ActiveKind(), kind)
			}
			if got := m.Active(); len(got) != 0 {
				t.Errorf("Active() = %v, want none", got)
			}
		})
	}
}

func TestManagerSwitchDrawsOnlyCurrent(t *testing.T) {
	m, ws := newTestManager(t)

	ws.SetKind(portfolio.KindMandelbrot)
	frame(t, m)
	ws.SetKind(portfolio.KindTriangle)

	pass := frame(t, m)
	if len(pass.draws) != 1 {
		t.Fatalf("draw calls = %d, want 1", len(pass.draws))
	}
	if d := pass.draws[0]; d.indexed || d.count != 3 {
		t.Errorf("draw = %+v, want triangle", d)
	}
	if pass.pipelines != 1 {
		t.Errorf("pipelines bound = %d, want 1", pass.pipelines)
	}
}

func TestManagerKeepsInstanceAcrossSwitches(t *testing.T) {
	m, ws := newTestManager(t)

	frame(t, m)
	first := m.triangle
	ws.SetKind(portfolio.KindMandelbrot)
	frame(t, m)
	ws.SetKind(portfolio.KindTriangle)
	frame(t, m)

	if m.triangle != first {
		t.Error("triangle was reconstructed after switching back")
	}
}

func TestManagerUnknownKind(t *testing.T) {
	m, ws := newTestManager(t)
	ws.SetKind(portfolio.DemoKind(200))

	err := m.Update()
	if !errors.Is(err, portfolio.ErrUnknownKind) {
		t.Fatalf("Update() = %v, want ErrUnknownKind", err)
	}
	var pass recordingPass
	m.Draw(&pass)
	if len(pass.draws) != 0 {
		t.Errorf("draw calls = %d, want 0", len(pass.draws))
	}
}

func TestManagerClose(t *testing.T) {
	m, ws := newTestManager(t)
	ws.SetKind(portfolio.KindModel3D)
	frame(t, m)

	m.Close()
	m.Close()

	if err := m.Update(); !errors.Is(err, ErrClosed) {
		t.Errorf("Update() after Close = %v, want ErrClosed", err)
	}
	var pass recordingPass
	m.Draw(&pass)
	if len(pass.draws) != 0 {
		t.Errorf("draw calls after Close = %d, want 0", len(pass.draws))
	}
	if got := m.Active(); len(got) != 0 {
		t.Errorf("Active() after Close = %v, want none", got)
	}
}
