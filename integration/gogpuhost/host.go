// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gogpuhost

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/portfolio"
	"github.com/gogpu/portfolio/internal/gpu"
	"github.com/gogpu/portfolio/internal/session"
	"github.com/gogpu/portfolio/render"
)

// ErrHostClosed is returned by Draw after Close.
var ErrHostClosed = errors.New("gogpuhost: host is closed")

// Host presents a session through a window's texture drawer. The GPU side
// of the session is opened lazily on the host device the first time the
// window has one.
type Host struct {
	mu sync.Mutex

	session   *session.Session
	device    *gpu.Device
	presenter render.Presenter

	// err is the first error that stopped drawing.
	err    error
	closed bool
}

// New returns a host for s. The session must not be open yet.
func New(s *session.Session) *Host {
	return &Host{session: s}
}

// Draw renders one frame and hands it to dc. A nil provider means the
// window has no device yet and the frame is skipped. Once opening the
// session fails, every later Draw returns the same error without drawing.
func (h *Host) Draw(dc gpucontext.TextureDrawer, provider gpucontext.DeviceProvider) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHostClosed
	}
	if h.err != nil {
		return h.err
	}
	if h.device == nil {
		if provider == nil {
			return nil
		}
		if err := h.open(provider); err != nil {
			h.err = err
			return err
		}
	}

	img, err := h.session.Render()
	if err != nil {
		return fmt.Errorf("render frame: %w", err)
	}
	layout := h.session.Layout()
	if err := h.presenter.Present(dc, img, 0, 0); err != nil {
		return fmt.Errorf("present %dx%d: %w", layout.Size().X, layout.Size().Y, err)
	}
	return nil
}

func (h *Host) open(provider gpucontext.DeviceProvider) error {
	dev, err := gpu.FromProvider(provider)
	if err != nil {
		return fmt.Errorf("adopt host device: %w", err)
	}
	if err := h.session.Open(dev.Device, dev.Queue); err != nil {
		dev.Close()
		return err
	}
	h.device = dev
	portfolio.Logger().Info("window device ready", "adapter", dev.Info.Name)
	return nil
}

// Resize fits the session to a width x height window.
func (h *Host) Resize(width, height int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrHostClosed
	}
	return h.session.Resize(width, height)
}

// Err returns the error that stopped drawing, if any.
func (h *Host) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Close releases the presented texture and the session. The host device
// belongs to the window and stays open. Safe to call more than once.
func (h *Host) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	h.presenter.Release()
	h.session.Close()
	if h.device != nil {
		h.device.Close()
		h.device = nil
	}
}
