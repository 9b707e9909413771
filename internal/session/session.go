// Package session assembles one running portfolio: the workspace, the demo
// manager, the offscreen canvas frame, both panels and the compositor that
// lays them out side by side. Hosts drive it one frame at a time.
package session

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/portfolio"
	"github.com/gogpu/portfolio/demo"
	"github.com/gogpu/portfolio/internal/config"
	"github.com/gogpu/portfolio/panel"
	"github.com/gogpu/portfolio/render"
	"github.com/gogpu/wgpu/hal"
)

// Session errors.
var (
	// ErrNotOpen is returned by Render before Open.
	ErrNotOpen = errors.New("session: no gpu device")

	// ErrAlreadyOpen is returned by a second Open.
	ErrAlreadyOpen = errors.New("session: already open")
)

// Compositor keys of the panel images.
const (
	listKey       = "list"
	propertiesKey = "properties"
)

// Layout places the list panel, the canvas and the property panel from
// left to right.
type Layout struct {
	Panel  int
	Canvas image.Point
}

// LayoutOf returns the layout of a window configuration.
func LayoutOf(w config.Window) Layout {
	return Layout{Panel: w.PanelWidth, Canvas: image.Pt(w.CanvasWidth, w.CanvasHeight)}
}

// Size returns the window size.
func (l Layout) Size() image.Point {
	return image.Pt(2*l.Panel+l.Canvas.X, l.Canvas.Y)
}

// List returns the list panel rectangle.
func (l Layout) List() image.Rectangle {
	return image.Rect(0, 0, l.Panel, l.Canvas.Y)
}

// CanvasRect returns the demo canvas rectangle.
func (l Layout) CanvasRect() image.Rectangle {
	return image.Rect(l.Panel, 0, l.Panel+l.Canvas.X, l.Canvas.Y)
}

// Properties returns the property panel rectangle.
func (l Layout) Properties() image.Rectangle {
	x := l.Panel + l.Canvas.X
	return image.Rect(x, 0, x+l.Panel, l.Canvas.Y)
}

// Session owns everything one window shows. The CPU side (workspace,
// panels, input controller) exists from New on; the GPU side is created by
// Open.
type Session struct {
	ws     *portfolio.Workspace
	cfg    config.Config
	layout Layout

	list       *panel.List
	props      *panel.Properties
	controller *panel.Controller

	manager    *demo.Manager
	bridge     *render.Bridge
	frame      *render.Frame
	compositor *render.Compositor
}

// New validates cfg, applies its initial demo state to ws and creates the
// panels.
func New(ws *portfolio.Workspace, cfg config.Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Apply(ws); err != nil {
		return nil, err
	}
	layout := LayoutOf(cfg.Window)
	s := &Session{ws: ws, cfg: cfg, layout: layout}
	if layout.Panel > 0 {
		s.list = panel.NewList(ws, layout.Panel, layout.Canvas.Y)
		s.props = panel.NewProperties(ws, layout.Panel, layout.Canvas.Y)
		s.controller = panel.NewController(ws, s.list, s.props, layout.List().Min)
	}
	return s, nil
}

// Workspace returns the shared workspace.
func (s *Session) Workspace() *portfolio.Workspace { return s.ws }

// Layout returns the window layout.
func (s *Session) Layout() Layout { return s.layout }

// Controller returns the input controller, or nil without panels.
func (s *Session) Controller() *panel.Controller { return s.controller }

// Manager returns the demo manager, or nil before Open.
func (s *Session) Manager() *demo.Manager { return s.manager }

// Open creates the demo manager, the canvas frame and the compositor on
// device. On error everything created so far is released.
func (s *Session) Open(device hal.Device, queue hal.Queue) error {
	if s.manager != nil {
		return ErrAlreadyOpen
	}
	mode, err := s.cfg.ShaderMode()
	if err != nil {
		return err
	}
	target := demo.DefaultTarget()
	target.Shaders = mode

	frame, err := render.NewFrame(device, queue, s.layout.Canvas.X, s.layout.Canvas.Y, target.Format)
	if err != nil {
		return fmt.Errorf("create canvas frame: %w", err)
	}
	size := s.layout.Size()
	compositor, err := render.NewCompositor(device, queue, size.X, size.Y, mode)
	if err != nil {
		frame.Close()
		return fmt.Errorf("create compositor: %w", err)
	}

	s.manager = demo.NewManager(s.ws, device, queue, target)
	s.bridge = render.NewBridge(s.manager)
	s.frame = frame
	s.compositor = compositor
	portfolio.Logger().Info("session opened",
		"width", size.X, "height", size.Y, "shaders", mode.String())
	return nil
}

// Resize fits the layout to a width x height window. The panels keep their
// width and the canvas takes the rest. On error the previous layout stays
// in effect.
func (s *Session) Resize(width, height int) error {
	next := Layout{Panel: s.layout.Panel, Canvas: image.Pt(width-2*s.layout.Panel, height)}
	if next == s.layout {
		return nil
	}
	if next.Canvas.X <= 0 || next.Canvas.Y <= 0 {
		return fmt.Errorf("%w: window %dx%d leaves no canvas", render.ErrInvalidSize, width, height)
	}
	if s.manager != nil {
		if err := s.frame.Resize(next.Canvas.X, next.Canvas.Y); err != nil {
			return fmt.Errorf("resize canvas: %w", err)
		}
		size := next.Size()
		if err := s.compositor.Resize(size.X, size.Y); err != nil {
			return fmt.Errorf("resize compositor: %w", err)
		}
	}
	if s.list != nil {
		s.list.SetSize(next.Panel, next.Canvas.Y)
		s.props.SetSize(next.Panel, next.Canvas.Y)
	}
	s.layout = next
	portfolio.Logger().Debug("session resized", "width", width, "height", height)
	return nil
}

// Render draws one frame of the current demo, lays it out with both panels
// and returns the window image.
func (s *Session) Render() (*image.RGBA, error) {
	if s.manager == nil {
		return nil, ErrNotOpen
	}
	if err := s.frame.Render(s.bridge); err != nil {
		return nil, err
	}

	layers := []render.Layer{{View: s.frame.ColorView(), Rect: s.layout.CanvasRect()}}
	if s.list != nil {
		listView, err := s.compositor.Upload(listKey, s.list.Render())
		if err != nil {
			return nil, err
		}
		propsView, err := s.compositor.Upload(propertiesKey, s.props.Render())
		if err != nil {
			return nil, err
		}
		layers = append(layers,
			render.Layer{View: listView, Rect: s.layout.List()},
			render.Layer{View: propsView, Rect: s.layout.Properties()},
		)
	}
	if err := s.compositor.Compose(layers); err != nil {
		return nil, err
	}
	return s.compositor.Pixels()
}

// RenderCanvas draws one frame of the current demo and returns the canvas
// alone.
func (s *Session) RenderCanvas() (*image.RGBA, error) {
	if s.manager == nil {
		return nil, ErrNotOpen
	}
	if err := s.frame.Render(s.bridge); err != nil {
		return nil, err
	}
	return s.frame.Pixels()
}

// Close releases the GPU side in reverse creation order. The device itself
// is left to its owner. Safe to call more than once.
func (s *Session) Close() {
	if s.manager == nil {
		return
	}
	s.manager.Close()
	s.compositor.Close()
	s.frame.Close()
	s.manager, s.bridge, s.frame, s.compositor = nil, nil, nil, nil
}
