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

// quadVertices cover the whole viewport: top-left, bottom-left,
// bottom-right, top-right.
var quadVertices = []float32{
	-1.0, 1.0,
	-1.0, -1.0,
	1.0, -1.0,
	1.0, 1.0,
}

var quadIndices = []uint16{0, 1, 2, 0, 2, 3}

// Mandelbrot draws the Mandelbrot set on a full-screen quad. The fractal is
// evaluated entirely in the fragment shader; there are no parameters.
type Mandelbrot struct {
	device hal.Device
	queue  hal.Queue

	pipe      pipelineSet
	vertexBuf hal.Buffer
	indexBuf  hal.Buffer
}

var _ Demo = (*Mandelbrot)(nil)

// NewMandelbrot creates the fractal pipeline and the quad buffers.
func NewMandelbrot(device hal.Device, queue hal.Queue, target Target) (*Mandelbrot, error) {
	m := &Mandelbrot{device: device, queue: queue}
	if err := m.create(target); err != nil {
		m.Destroy()
		return nil, fmt.Errorf("create mandelbrot pipeline: %w", err)
	}
	portfolio.Logger().Debug("mandelbrot demo created", "format", target.Format)
	return m, nil
}

func (m *Mandelbrot) create(target Target) error {
	var err error
	if m.pipe.shader, err = createShader(m.device, shaders.Mandelbrot, target.Shaders); err != nil {
		return err
	}
	if m.pipe.pipeLayout, err = m.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: "mandelbrot_pipe_layout",
	}); err != nil {
		return err
	}
	if m.pipe.pipeline, err = m.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "mandelbrot_pipeline",
		Layout: m.pipe.pipeLayout,
		Vertex: hal.VertexState{
			Module:     m.pipe.shader,
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
			Module:     m.pipe.shader,
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

	if m.vertexBuf, err = createBufferInit(m.device, m.queue, "mandelbrot_vertices",
		float32Bytes(quadVertices...), gputypes.BufferUsageVertex); err != nil {
		return err
	}
	m.indexBuf, err = createBufferInit(m.device, m.queue, "mandelbrot_indices",
		uint16Bytes(quadIndices...), gputypes.BufferUsageIndex)
	return err
}

// Draw records one indexed quad.
func (m *Mandelbrot) Draw(pass Pass) {
	pass.SetPipeline(m.pipe.pipeline)
	pass.SetVertexBuffer(0, m.vertexBuf, 0)
	pass.SetIndexBuffer(m.indexBuf, gputypes.IndexFormatUint16, 0)
	pass.DrawIndexed(uint32(len(quadIndices)), 1, 0, 0, 0)
}

// Destroy releases the GPU resources.
func (m *Mandelbrot) Destroy() {
	if m.device == nil {
		return
	}
	if m.indexBuf != nil {
		m.device.DestroyBuffer(m.indexBuf)
		m.indexBuf = nil
	}
	if m.vertexBuf != nil {
		m.device.DestroyBuffer(m.vertexBuf)
		m.vertexBuf = nil
	}
	m.pipe.destroy(m.device)
}
