// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/portfolio"
	"github.com/gogpu/portfolio/demo"
	"github.com/gogpu/wgpu/hal"
)

// Frame errors.
var (
	// ErrInvalidSize is returned for a zero or negative target size.
	ErrInvalidSize = errors.New("render: width and height must be positive")

	// ErrFrameClosed is returned by a Frame after Close.
	ErrFrameClosed = errors.New("render: frame is closed")
)

// DefaultClearColor is the background behind every demo.
var DefaultClearColor = gputypes.Color{R: 0.1, G: 0.1, B: 0.1, A: 1}

// Frame is an offscreen color and depth target the demos are drawn into.
// The color texture can be sampled by the Compositor and read back.
type Frame struct {
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat

	width   int
	height  int
	targets frameTargets

	// Clear is the color the pass starts from.
	Clear gputypes.Color

	frames uint64
	closed bool
}

// NewFrame allocates the color and depth textures for a width x height
// canvas.
func NewFrame(device hal.Device, queue hal.Queue, width, height int, format gputypes.TextureFormat) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	f := &Frame{
		device: device,
		queue:  queue,
		format: format,
		Clear:  DefaultClearColor,
	}
	t, err := f.allocate(width, height)
	if err != nil {
		return nil, err
	}
	f.targets = t
	f.width, f.height = width, height
	return f, nil
}

// Width returns the canvas width in pixels.
func (f *Frame) Width() int { return f.width }

// Height returns the canvas height in pixels.
func (f *Frame) Height() int { return f.height }

// Format returns the color format.
func (f *Frame) Format() gputypes.TextureFormat { return f.format }

// ColorView returns the view of the color target.
func (f *Frame) ColorView() hal.TextureView { return f.targets.colorView }

// Frames returns the number of frames rendered so far.
func (f *Frame) Frames() uint64 { return f.frames }

// Resize reallocates the targets when the size changed. The contents are
// not preserved. On error the frame keeps its previous targets and size.
func (f *Frame) Resize(width, height int) error {
	if f.closed {
		return ErrFrameClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if width == f.width && height == f.height {
		return nil
	}
	t, err := f.allocate(width, height)
	if err != nil {
		return err
	}
	f.release()
	f.targets = t
	f.width, f.height = width, height
	return nil
}

// frameTargets are the textures of one frame size.
type frameTargets struct {
	color     hal.Texture
	colorView hal.TextureView
	depth     hal.Texture
	depthView hal.TextureView
}

func (t *frameTargets) destroy(device hal.Device) {
	if t.depthView != nil {
		device.DestroyTextureView(t.depthView)
	}
	if t.depth != nil {
		device.DestroyTexture(t.depth)
	}
	if t.colorView != nil {
		device.DestroyTextureView(t.colorView)
	}
	if t.color != nil {
		device.DestroyTexture(t.color)
	}
	*t = frameTargets{}
}

// allocate creates the targets for a width x height frame. On error
// nothing is left allocated.
func (f *Frame) allocate(width, height int) (t frameTargets, err error) {
	defer func() {
		if err != nil {
			t.destroy(f.device)
		}
	}()
	size := hal.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1}

	t.color, err = f.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "frame_color",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        f.format,
		Usage: gputypes.TextureUsageRenderAttachment |
			gputypes.TextureUsageTextureBinding |
			gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return t, fmt.Errorf("create frame color: %w", err)
	}
	if t.colorView, err = f.device.CreateTextureView(t.color, &hal.TextureViewDescriptor{
		Label:     "frame_color_view",
		Format:    f.format,
		Dimension: gputypes.TextureViewDimension2D,
		Aspect:    gputypes.TextureAspectAll,
	}); err != nil {
		return t, fmt.Errorf("create frame color view: %w", err)
	}

	t.depth, err = f.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "frame_depth",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        demo.DepthFormat,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		return t, fmt.Errorf("create frame depth: %w", err)
	}
	if t.depthView, err = f.device.CreateTextureView(t.depth, &hal.TextureViewDescriptor{
		Label:     "frame_depth_view",
		Format:    demo.DepthFormat,
		Dimension: gputypes.TextureViewDimension2D,
		Aspect:    gputypes.TextureAspectDepthOnly,
	}); err != nil {
		return t, fmt.Errorf("create frame depth view: %w", err)
	}

	portfolio.Logger().Debug("frame allocated", "width", width, "height", height, "format", f.format)
	return t, nil
}

// Render runs one frame: prepare, a single render pass cleared to Clear
// and depth 1.0, paint, submit and wait. A prepare error aborts the frame
// before any command is recorded.
func (f *Frame) Render(b *Bridge) error {
	if f.closed {
		return ErrFrameClosed
	}
	if err := b.Prepare(); err != nil {
		return fmt.Errorf("prepare frame: %w", err)
	}

	encoder, err := f.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "frame_encoder"})
	if err != nil {
		return fmt.Errorf("create frame encoder: %w", err)
	}
	defer encoder.Destroy()
	if err := encoder.BeginEncoding("frame"); err != nil {
		return fmt.Errorf("begin frame encoding: %w", err)
	}

	pass := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "frame_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       f.targets.colorView,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: f.Clear,
			},
		},
		DepthStencilAttachment: &hal.RenderPassDepthStencilAttachment{
			View:            f.targets.depthView,
			DepthLoadOp:     gputypes.LoadOpClear,
			DepthStoreOp:    gputypes.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	})
	b.Paint(pass)
	pass.End()

	if err := submitAndWait(f.device, f.queue, encoder); err != nil {
		return fmt.Errorf("submit frame: %w", err)
	}
	f.frames++
	return nil
}

// Pixels reads the color target back into a new RGBA image.
func (f *Frame) Pixels() (*image.RGBA, error) {
	if f.closed {
		return nil, ErrFrameClosed
	}
	return readTexture(f.device, f.queue, f.targets.color, f.width, f.height, f.format)
}

// Close releases the textures. Safe to call more than once.
func (f *Frame) Close() {
	if f.closed {
		return
	}
	f.closed = true
	f.release()
}

func (f *Frame) release() {
	f.targets.destroy(f.device)
}
