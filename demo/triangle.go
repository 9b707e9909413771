// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package demo

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/portfolio"
	"github.com/gogpu/portfolio/shaders"
	"github.com/gogpu/wgpu/hal"
)

// triangleUniformSize is one vec4<f32> color.
const triangleUniformSize = 16

// triangleVertices are the three corners in clip space, two floats each.
var triangleVertices = []float32{
	-0.5, -0.5,
	0.5, -0.5,
	0.0, 0.5,
}

// Triangle draws one triangle filled with a uniform color.
type Triangle struct {
	device hal.Device
	queue  hal.Queue

	pipe      pipelineSet
	vertexBuf hal.Buffer
	colorBuf  hal.Buffer
	bindGroup hal.BindGroup
}

var _ Demo = (*Triangle)(nil)

// NewTriangle creates the triangle pipeline and buffers. The color uniform
// starts white.
func NewTriangle(device hal.Device, queue hal.Queue, target Target) (*Triangle, error) {
	t := &Triangle{device: device, queue: queue}
	if err := t.create(target); err != nil {
		t.Destroy()
		return nil, fmt.Errorf("create triangle pipeline: %w", err)
	}
	portfolio.Logger().Debug("triangle demo created", "format", target.Format)
	return t, nil
}

func (t *Triangle) create(target Target) error {
	var err error
	if t.pipe.shader, err = createShader(t.device, shaders.Triangle, target.Shaders); err != nil {
		return err
	}
	if t.pipe.bindLayout, err = uniformLayout(t.device, "triangle_uniform_layout", gputypes.ShaderStageFragment); err != nil {
		return err
	}
	if t.pipe.pipeLayout, err = t.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "triangle_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{t.pipe.bindLayout},
	}); err != nil {
		return err
	}
	if t.pipe.pipeline, err = t.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "triangle_pipeline",
		Layout: t.pipe.pipeLayout,
		Vertex: hal.VertexState{
			Module:     t.pipe.shader,
			EntryPoint: shaders.VertexEntry,
			Buffers: []gputypes.VertexBufferLayout{
				{
					ArrayStride: 8,
					StepMode:    gputypes.VertexStepModeVertex,
					Attributes: []gputypes.VertexAttribute{
						{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
					},
				},
			},
		},
		Fragment: &hal.FragmentState{
			Module:     t.pipe.shader,
			EntryPoint: shaders.FragmentEntry,
			Targets:    colorTargets(target.Format),
		},
		DepthStencil: depthState(false, gputypes.CompareFunctionAlways),
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
	}); err != nil {
		return err
	}

	if t.vertexBuf, err = createBufferInit(t.device, t.queue, "triangle_vertices",
		float32Bytes(triangleVertices...), gputypes.BufferUsageVertex); err != nil {
		return err
	}
	white := portfolio.DefaultTriangleParams().RGBA()
	if t.colorBuf, err = createBufferInit(t.device, t.queue, "triangle_color",
		float32Bytes(white[:]...), gputypes.BufferUsageUniform); err != nil {
		return err
	}
	t.bindGroup, err = uniformBindGroup(t.device, "triangle_bind", t.pipe.bindLayout, t.colorBuf, triangleUniformSize)
	return err
}

// Update queues a write of the new color into the uniform buffer.
func (t *Triangle) Update(p portfolio.TriangleParams) error {
	rgba := p.RGBA()
	if err := t.queue.WriteBuffer(t.colorBuf, 0, float32Bytes(rgba[:]...)); err != nil {
		return fmt.Errorf("write triangle color: %w", err)
	}
	return nil
}

// Draw records one three-vertex draw.
func (t *Triangle) Draw(pass Pass) {
	pass.SetPipeline(t.pipe.pipeline)
	pass.SetBindGroup(0, t.bindGroup, nil)
	pass.SetVertexBuffer(0, t.vertexBuf, 0)
	pass.Draw(3, 1, 0, 0)
}

// Destroy releases the GPU resources.
func (t *Triangle) Destroy() {
	if t.device == nil {
		return
	}
	if t.bindGroup != nil {
		t.device.DestroyBindGroup(t.bindGroup)
		t.bindGroup = nil
	}
	if t.colorBuf != nil {
		t.device.DestroyBuffer(t.colorBuf)
		t.colorBuf = nil
	}
	if t.vertexBuf != nil {
		t.device.DestroyBuffer(t.vertexBuf)
		t.vertexBuf = nil
	}
	t.pipe.destroy(t.device)
}
