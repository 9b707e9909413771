// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"encoding/binary"
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/portfolio"
	"github.com/gogpu/portfolio/shaders"
	"github.com/gogpu/wgpu/hal"
)

// blitUniformSize is the destination rect, one vec4<f32>.
const blitUniformSize = 16

// Layer is one texture placed on the composed output.
type Layer struct {
	// View is the texture to sample.
	View hal.TextureView

	// Rect is the destination in output pixels, origin top-left.
	Rect image.Rectangle
}

// Compositor draws textured quads into a window-sized RGBA target using the
// draw_texture blit shader. It also owns the textures that CPU images are
// uploaded into.
type Compositor struct {
	device hal.Device
	queue  hal.Queue

	width  int
	height int

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline
	sampler    hal.Sampler

	output     hal.Texture
	outputView hal.TextureView

	images map[string]*imageTexture
}

// imageTexture is a sampled texture holding an uploaded CPU image.
type imageTexture struct {
	tex    hal.Texture
	view   hal.TextureView
	bounds image.Rectangle
}

// NewCompositor creates the blit pipeline and a width x height output.
func NewCompositor(device hal.Device, queue hal.Queue, width, height int, mode shaders.Mode) (*Compositor, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	c := &Compositor{
		device: device,
		queue:  queue,
		images: make(map[string]*imageTexture),
	}
	if err := c.createPipeline(mode); err != nil {
		c.Close()
		return nil, fmt.Errorf("create blit pipeline: %w", err)
	}
	if err := c.allocateOutput(width, height); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Compositor) createPipeline(mode shaders.Mode) error {
	src, err := shaders.Module(shaders.DrawTexture, mode)
	if err != nil {
		return err
	}
	if c.shader, err = c.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "draw_texture_shader",
		Source: src,
	}); err != nil {
		return err
	}

	if c.bindLayout, err = c.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "draw_texture_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	}); err != nil {
		return err
	}

	if c.pipeLayout, err = c.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "draw_texture_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{c.bindLayout},
	}); err != nil {
		return err
	}

	if c.pipeline, err = c.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "draw_texture_pipeline",
		Layout: c.pipeLayout,
		Vertex: hal.VertexState{
			Module:     c.shader,
			EntryPoint: shaders.VertexEntry,
		},
		Fragment: &hal.FragmentState{
			Module:     c.shader,
			EntryPoint: shaders.FragmentEntry,
			Targets: []gputypes.ColorTargetState{
				{Format: gputypes.TextureFormatRGBA8Unorm, WriteMask: gputypes.ColorWriteMaskAll},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleStrip,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
	}); err != nil {
		return err
	}

	c.sampler, err = c.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "draw_texture_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
		LodMaxClamp:  32,
		Anisotropy:   1,
	})
	return err
}

// allocateOutput creates a width x height output and swaps it in. On
// error the previous output is kept.
func (c *Compositor) allocateOutput(width, height int) error {
	tex, err := c.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "composite_output",
		Size:          hal.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create composite output: %w", err)
	}
	view, err := c.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:     "composite_output_view",
		Format:    gputypes.TextureFormatRGBA8Unorm,
		Dimension: gputypes.TextureViewDimension2D,
		Aspect:    gputypes.TextureAspectAll,
	})
	if err != nil {
		c.device.DestroyTexture(tex)
		return fmt.Errorf("create composite output view: %w", err)
	}
	c.releaseOutput()
	c.output, c.outputView = tex, view
	c.width, c.height = width, height
	return nil
}

// Size returns the output size.
func (c *Compositor) Size() (width, height int) {
	return c.width, c.height
}

// Resize reallocates the output when the size changed. On error the
// previous output and size stay in use.
func (c *Compositor) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if width == c.width && height == c.height {
		return nil
	}
	return c.allocateOutput(width, height)
}

// Upload copies img into the texture stored under key, creating or
// replacing it when the size changed, and returns its view.
func (c *Compositor) Upload(key string, img *image.RGBA) (hal.TextureView, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: image %q is empty", ErrInvalidSize, key)
	}
	it, ok := c.images[key]
	if !ok || it.bounds.Size() != b.Size() {
		if ok {
			c.destroyImage(it)
		}
		var err error
		if it, err = c.createImage(key, b); err != nil {
			return nil, err
		}
		c.images[key] = it
	}

	w, h := b.Dx(), b.Dy()
	if err := c.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: it.tex, Aspect: gputypes.TextureAspectAll},
		tightPixels(img),
		&hal.ImageDataLayout{BytesPerRow: uint32(w * 4), RowsPerImage: uint32(h)},
		&hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1},
	); err != nil {
		return nil, fmt.Errorf("upload %s: %w", key, err)
	}
	return it.view, nil
}

func (c *Compositor) createImage(key string, b image.Rectangle) (*imageTexture, error) {
	tex, err := c.device.CreateTexture(&hal.TextureDescriptor{
		Label:         key + "_image",
		Size:          hal.Extent3D{Width: uint32(b.Dx()), Height: uint32(b.Dy()), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s texture: %w", key, err)
	}
	view, err := c.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:     key + "_image_view",
		Format:    gputypes.TextureFormatRGBA8Unorm,
		Dimension: gputypes.TextureViewDimension2D,
		Aspect:    gputypes.TextureAspectAll,
	})
	if err != nil {
		c.device.DestroyTexture(tex)
		return nil, fmt.Errorf("create %s view: %w", key, err)
	}
	portfolio.Logger().Debug("compositor image created", "key", key, "size", b.Size())
	return &imageTexture{tex: tex, view: view, bounds: b}, nil
}

func (c *Compositor) destroyImage(it *imageTexture) {
	c.device.DestroyTextureView(it.view)
	c.device.DestroyTexture(it.tex)
}

// layerBinding is the per-layer uniform and bind group of one Compose call.
type layerBinding struct {
	uniform hal.Buffer
	group   hal.BindGroup
}

// Compose clears the output to black and draws the layers in order, each
// stretched over its Rect. Layers with an empty Rect are skipped.
func (c *Compositor) Compose(layers []Layer) error {
	bindings := make([]layerBinding, 0, len(layers))
	defer func() {
		for _, lb := range bindings {
			c.device.DestroyBindGroup(lb.group)
			c.device.DestroyBuffer(lb.uniform)
		}
	}()

	for i, l := range layers {
		if l.Rect.Empty() || l.View == nil {
			continue
		}
		lb, err := c.bindLayer(i, l)
		if err != nil {
			return err
		}
		bindings = append(bindings, lb)
	}

	encoder, err := c.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "composite_encoder"})
	if err != nil {
		return fmt.Errorf("create composite encoder: %w", err)
	}
	defer encoder.Destroy()
	if err := encoder.BeginEncoding("composite"); err != nil {
		return fmt.Errorf("begin composite encoding: %w", err)
	}

	pass := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "composite_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       c.outputView,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: gputypes.Color{A: 1},
			},
		},
	})
	pass.SetPipeline(c.pipeline)
	for _, lb := range bindings {
		pass.SetBindGroup(0, lb.group, nil)
		pass.Draw(4, 1, 0, 0)
	}
	pass.End()

	if err := submitAndWait(c.device, c.queue, encoder); err != nil {
		return fmt.Errorf("submit composite: %w", err)
	}
	return nil
}

func (c *Compositor) bindLayer(i int, l Layer) (layerBinding, error) {
	label := fmt.Sprintf("composite_layer_%d", i)
	rect := ndcRect(l.Rect, c.width, c.height)

	buf, err := c.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  blitUniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return layerBinding{}, fmt.Errorf("create %s uniform: %w", label, err)
	}
	if err := c.queue.WriteBuffer(buf, 0, rectBytes(rect)); err != nil {
		c.device.DestroyBuffer(buf)
		return layerBinding{}, fmt.Errorf("write %s uniform: %w", label, err)
	}
	group, err := c.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  label,
		Layout: c.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{Buffer: buf.NativeHandle(), Size: blitUniformSize}},
			{Binding: 1, Resource: gputypes.TextureViewBinding{TextureView: l.View.NativeHandle()}},
			{Binding: 2, Resource: gputypes.SamplerBinding{Sampler: c.sampler.NativeHandle()}},
		},
	})
	if err != nil {
		c.device.DestroyBuffer(buf)
		return layerBinding{}, fmt.Errorf("create %s bind group: %w", label, err)
	}
	return layerBinding{uniform: buf, group: group}, nil
}

// Pixels reads the composed output back.
func (c *Compositor) Pixels() (*image.RGBA, error) {
	return readTexture(c.device, c.queue, c.output, c.width, c.height, gputypes.TextureFormatRGBA8Unorm)
}

// Close releases every GPU object. Safe to call more than once.
func (c *Compositor) Close() {
	for key, it := range c.images {
		c.destroyImage(it)
		delete(c.images, key)
	}
	c.releaseOutput()
	if c.sampler != nil {
		c.device.DestroySampler(c.sampler)
		c.sampler = nil
	}
	if c.pipeline != nil {
		c.device.DestroyRenderPipeline(c.pipeline)
		c.pipeline = nil
	}
	if c.pipeLayout != nil {
		c.device.DestroyPipelineLayout(c.pipeLayout)
		c.pipeLayout = nil
	}
	if c.bindLayout != nil {
		c.device.DestroyBindGroupLayout(c.bindLayout)
		c.bindLayout = nil
	}
	if c.shader != nil {
		c.device.DestroyShaderModule(c.shader)
		c.shader = nil
	}
}

func (c *Compositor) releaseOutput() {
	if c.outputView != nil {
		c.device.DestroyTextureView(c.outputView)
		c.outputView = nil
	}
	if c.output != nil {
		c.device.DestroyTexture(c.output)
		c.output = nil
	}
}

// ndcRect maps a pixel rectangle on a width x height output to NDC as
// left, top, right, bottom.
func ndcRect(r image.Rectangle, width, height int) [4]float32 {
	w, h := float32(width), float32(height)
	return [4]float32{
		2*float32(r.Min.X)/w - 1,
		1 - 2*float32(r.Min.Y)/h,
		2*float32(r.Max.X)/w - 1,
		1 - 2*float32(r.Max.Y)/h,
	}
}

func rectBytes(r [4]float32) []byte {
	buf := make([]byte, blitUniformSize)
	for i, v := range r {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// tightPixels returns the pixels of img without row padding.
func tightPixels(img *image.RGBA) []byte {
	b := img.Bounds()
	row := b.Dx() * 4
	if img.Stride == row && b.Min == (image.Point{}) {
		return img.Pix[:row*b.Dy()]
	}
	out := make([]byte, row*b.Dy())
	for y := 0; y < b.Dy(); y++ {
		start := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(out[y*row:], img.Pix[start:start+row])
	}
	return out
}
