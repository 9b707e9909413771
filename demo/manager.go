// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package demo

import (
	"fmt"

	"github.com/gogpu/portfolio"
	"github.com/gogpu/wgpu/hal"
)

// Manager owns one instance of every demo that has been selected so far
// and routes update and draw calls to the one the Workspace selects.
//
// Demos are constructed on first selection and kept until Close. A Manager
// is driven from the render thread only; the Workspace is the thread-safe
// boundary with the UI.
type Manager struct {
	ws     *portfolio.Workspace
	device hal.Device
	queue  hal.Queue
	target Target

	triangle   *Triangle
	mandelbrot *Mandelbrot
	model      *Model3D
	physics    Physics
	tetris     Tetris

	// active is the demo chosen by the last Update. Draw uses it so that a
	// frame's update and draw always hit the same demo.
	active     Demo
	activeKind portfolio.DemoKind

	// uploaded holds the workspace revision whose parameters each demo
	// last received.
	uploaded map[portfolio.DemoKind]uint64
	closed   bool
}

// NewManager creates a Manager. No GPU resources are allocated until the
// first Update.
func NewManager(ws *portfolio.Workspace, device hal.Device, queue hal.Queue, target Target) *Manager {
	return &Manager{
		ws:       ws,
		device:   device,
		queue:    queue,
		target:   target,
		uploaded: make(map[portfolio.DemoKind]uint64),
	}
}

// Workspace returns the workspace the manager reads.
func (m *Manager) Workspace() *portfolio.Workspace {
	return m.ws
}

// Update reads the workspace, constructs the selected demo if needed and
// pushes changed parameters to it. A construction failure is returned and
// leaves nothing active.
func (m *Manager) Update() error {
	if m.closed {
		return ErrClosed
	}
	snap := m.ws.Snapshot()

	d, err := m.demo(snap.Kind)
	if err != nil {
		m.active = nil
		return err
	}
	if m.activeKind != snap.Kind || m.active == nil {
		portfolio.Logger().Debug("demo activated", "kind", snap.Kind)
	}
	m.active = d
	m.activeKind = snap.Kind

	if rev, ok := m.uploaded[snap.Kind]; ok && rev == snap.Revision {
		return nil
	}
	if err := pushParams(d, snap); err != nil {
		return err
	}
	m.uploaded[snap.Kind] = snap.Revision
	return nil
}

// Draw records the active demo into pass. Nothing is recorded before the
// first Update, after Close, or when the active demo has no renderer.
func (m *Manager) Draw(pass Pass) {
	if m.closed || m.active == nil {
		return
	}
	m.active.Draw(pass)
}

// ActiveKind returns the kind selected by the last Update.
func (m *Manager) ActiveKind() portfolio.DemoKind {
	return m.activeKind
}

// Active lists the kinds whose GPU resources exist.
func (m *Manager) Active() []portfolio.DemoKind {
	var kinds []portfolio.DemoKind
	if m.triangle != nil {
		kinds = append(kinds, portfolio.KindTriangle)
	}
	if m.mandelbrot != nil {
		kinds = append(kinds, portfolio.KindMandelbrot)
	}
	if m.model != nil {
		kinds = append(kinds, portfolio.KindModel3D)
	}
	return kinds
}

// Close destroys every constructed demo. Safe to call more than once.
func (m *Manager) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.active = nil
	if m.model != nil {
		m.model.Destroy()
		m.model = nil
	}
	if m.mandelbrot != nil {
		m.mandelbrot.Destroy()
		m.mandelbrot = nil
	}
	if m.triangle != nil {
		m.triangle.Destroy()
		m.triangle = nil
	}
}

// demo returns the instance for kind, constructing it on first use.
// The switch is exhaustive over DemoKind.
func (m *Manager) demo(kind portfolio.DemoKind) (Demo, error) {
	var err error
	switch kind {
	case portfolio.KindTriangle:
		if m.triangle == nil {
			m.triangle, err = NewTriangle(m.device, m.queue, m.target)
		}
		return m.triangle, err
	case portfolio.KindMandelbrot:
		if m.mandelbrot == nil {
			m.mandelbrot, err = NewMandelbrot(m.device, m.queue, m.target)
		}
		return m.mandelbrot, err
	case portfolio.KindModel3D:
		if m.model == nil {
			m.model, err = NewModel3D(m.device, m.queue, m.target)
		}
		return m.model, err
	case portfolio.KindPhysics:
		return m.physics, nil
	case portfolio.KindTetris:
		return m.tetris, nil
	default:
		return nil, fmt.Errorf("%w: %v", portfolio.ErrUnknownKind, kind)
	}
}

func pushParams(d Demo, snap portfolio.Snapshot) error {
	switch d := d.(type) {
	case *Triangle:
		return d.Update(snap.Triangle)
	case *Model3D:
		return d.Update(snap.Model3D)
	default:
		return nil
	}
}
