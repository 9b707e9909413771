package portfolio

import (
	"sync"
)

// Workspace is the shared state of the application: the active demo and
// the parameters of every demo that has any. The UI mutates it from event
// callbacks and the render loop reads it once per frame. All methods are
// safe for concurrent use and never block while holding the lock.
type Workspace struct {
	mu       sync.Mutex
	kind     DemoKind
	revision uint64

	triangle TriangleParams
	model    Model3DParams
}

// Snapshot is a consistent copy of the Workspace taken under one lock.
type Snapshot struct {
	Kind     DemoKind
	Revision uint64
	Triangle TriangleParams
	Model3D  Model3DParams
}

// NewWorkspace creates a Workspace with the triangle selected and default
// parameters for every demo.
func NewWorkspace() *Workspace {
	return &Workspace{
		kind:     KindTriangle,
		triangle: DefaultTriangleParams(),
		model:    DefaultModel3DParams(),
	}
}

// CurrentKind returns the active demo.
func (w *Workspace) CurrentKind() DemoKind {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.kind
}

// SetKind selects the active demo. Any declared kind is accepted,
// including kinds that draw nothing.
func (w *Workspace) SetKind(k DemoKind) {
	w.mu.Lock()
	changed := w.kind != k
	if changed {
		w.kind = k
		w.revision++
	}
	w.mu.Unlock()

	if changed {
		Logger().Info("demo selected", "kind", k)
	}
}

// Revision returns a counter bumped by every state change.
func (w *Workspace) Revision() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.revision
}

// Snapshot copies the whole state.
func (w *Workspace) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Snapshot{
		Kind:     w.kind,
		Revision: w.revision,
		Triangle: w.triangle,
		Model3D:  w.model,
	}
}

// TriangleParams returns the triangle parameters.
func (w *Workspace) TriangleParams() TriangleParams {
	return ParamsOf[TriangleParams](w)
}

// SetTriangleColor sets the triangle color, clamping each channel to [0, 1].
func (w *Workspace) SetTriangleColor(r, g, b float32) {
	UpdateParams(w, func(p *TriangleParams) {
		p.Color = [3]float32{clampUnit(r), clampUnit(g), clampUnit(b)}
	})
}

// AdjustTriangleChannel adds delta to color channel i (0 red, 1 green,
// 2 blue) and clamps the result, as one update. Other channels are ignored.
func (w *Workspace) AdjustTriangleChannel(i int, delta float32) {
	if i < 0 || i > 2 {
		return
	}
	UpdateParams(w, func(p *TriangleParams) {
		p.Color[i] = clampUnit(p.Color[i] + delta)
	})
}

// Model3DParams returns the torus camera parameters.
func (w *Workspace) Model3DParams() Model3DParams {
	return ParamsOf[Model3DParams](w)
}

// SetModelAngle sets the torus camera orbit angle in degrees.
func (w *Workspace) SetModelAngle(deg float32) {
	UpdateParams(w, func(p *Model3DParams) {
		p.Angle = wrapDegrees(deg)
	})
}

// RotateModel adds delta degrees to the camera orbit angle as one update.
func (w *Workspace) RotateModel(delta float32) {
	UpdateParams(w, func(p *Model3DParams) {
		p.Angle = wrapDegrees(p.Angle + delta)
	})
}

// ParamsOf returns a copy of the parameters of type P.
func ParamsOf[P Params](w *Workspace) P {
	w.mu.Lock()
	defer w.mu.Unlock()
	return *paramsPtr[P](w)
}

// SetParams replaces the parameters of type P.
func SetParams[P Params](w *Workspace, p P) {
	w.mu.Lock()
	defer w.mu.Unlock()
	*paramsPtr[P](w) = p
	w.revision++
}

// UpdateParams mutates the parameters of type P in place under the lock.
// fn must not call back into the Workspace.
func UpdateParams[P Params](w *Workspace, fn func(*P)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn(paramsPtr[P](w))
	w.revision++
}

// paramsPtr maps a parameter type to its slot. Caller holds w.mu.
func paramsPtr[P Params](w *Workspace) *P {
	var slot any
	switch ParamsKind[P]() {
	case KindTriangle:
		slot = &w.triangle
	case KindModel3D:
		slot = &w.model
	}
	return slot.(*P)
}
