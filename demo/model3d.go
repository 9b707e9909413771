// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package demo

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/portfolio"
	"github.com/gogpu/portfolio/internal/mat"
	"github.com/gogpu/portfolio/shaders"
	"github.com/gogpu/wgpu/hal"
)

// model3DUniformSize is one mat4x4<f32>.
const model3DUniformSize = 64

// Camera of the torus demo: the eye orbits the Z axis at a fixed distance
// and height and always looks at the origin.
const (
	cameraHeight = 1.5
	cameraFovY   = 60
	cameraNear   = 0.1
	cameraFar    = 100
)

var cameraOrbitRadius = 2 * math32.Sqrt(2)

// Model3D draws a lit torus with depth testing.
type Model3D struct {
	device hal.Device
	queue  hal.Queue

	pipe       pipelineSet
	vertexBuf  hal.Buffer
	indexBuf   hal.Buffer
	uniformBuf hal.Buffer
	bindGroup  hal.BindGroup
	indexCount uint32
}

var _ Demo = (*Model3D)(nil)

// NewModel3D creates the torus mesh, its depth-tested pipeline and the MVP
// uniform for the default camera.
func NewModel3D(device hal.Device, queue hal.Queue, target Target) (*Model3D, error) {
	m := &Model3D{device: device, queue: queue}
	if err := m.create(target); err != nil {
		m.Destroy()
		return nil, fmt.Errorf("create model3d pipeline: %w", err)
	}
	portfolio.Logger().Debug("model3d demo created", "format", target.Format, "indices", m.indexCount)
	return m, nil
}

func (m *Model3D) create(target Target) error {
	var err error
	if m.pipe.shader, err = createShader(m.device, shaders.Model3D, target.Shaders); err != nil {
		return err
	}
	if m.pipe.bindLayout, err = uniformLayout(m.device, "model3d_uniform_layout", gputypes.ShaderStageVertex); err != nil {
		return err
	}
	if m.pipe.pipeLayout, err = m.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "model3d_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{m.pipe.bindLayout},
	}); err != nil {
		return err
	}
	if m.pipe.pipeline, err = m.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "model3d_pipeline",
		Layout: m.pipe.pipeLayout,
		Vertex: hal.VertexState{
			Module:     m.pipe.shader,
			EntryPoint: shaders.VertexEntry,
			Buffers: []gputypes.VertexBufferLayout{
				{
					ArrayStride: torusVertexStride,
					StepMode:    gputypes.VertexStepModeVertex,
					Attributes: []gputypes.VertexAttribute{
						{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},  // position
						{Format: gputypes.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1}, // normal
					},
				},
			},
		},
		Fragment: &hal.FragmentState{
			Module:     m.pipe.shader,
			EntryPoint: shaders.FragmentEntry,
			Targets:    colorTargets(target.Format),
		},
		DepthStencil: depthState(true, gputypes.CompareFunctionLessEqual),
		Primitive: gputypes.PrimitiveState{
			Topology:  gputypes.PrimitiveTopologyTriangleList,
			FrontFace: gputypes.FrontFaceCCW,
			CullMode:  gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
	}); err != nil {
		return err
	}

	vertices, indices := torusMesh(torusRings, torusSides, torusMajorRadius, torusMinorRadius)
	m.indexCount = uint32(len(indices))
	if m.vertexBuf, err = createBufferInit(m.device, m.queue, "model3d_vertices",
		float32Bytes(vertices...), gputypes.BufferUsageVertex); err != nil {
		return err
	}
	if m.indexBuf, err = createBufferInit(m.device, m.queue, "model3d_indices",
		uint32Bytes(indices), gputypes.BufferUsageIndex); err != nil {
		return err
	}
	mvp := CameraMVP(portfolio.DefaultModel3DParams().Angle)
	if m.uniformBuf, err = createBufferInit(m.device, m.queue, "model3d_mvp",
		float32Bytes(mvp[:]...), gputypes.BufferUsageUniform); err != nil {
		return err
	}
	m.bindGroup, err = uniformBindGroup(m.device, "model3d_bind", m.pipe.bindLayout, m.uniformBuf, model3DUniformSize)
	return err
}

// CameraMVP returns projection * view for the camera orbiting at angle
// degrees. An angle of 45 puts the eye at (2, 2, 1.5).
func CameraMVP(angle float32) mat.Mat4 {
	rad := mat.Radians(angle)
	eye := mat.Vec3{
		cameraOrbitRadius * math32.Cos(rad),
		cameraOrbitRadius * math32.Sin(rad),
		cameraHeight,
	}
	proj := mat.PerspectiveLH(mat.Radians(cameraFovY), 1, cameraNear, cameraFar)
	view := mat.LookAtLH(eye, mat.Vec3{}, mat.Vec3{0, 0, 1})
	return proj.Mul(view)
}

// Update uploads the MVP for the current camera angle.
func (m *Model3D) Update(p portfolio.Model3DParams) error {
	mvp := CameraMVP(p.Angle)
	if err := m.queue.WriteBuffer(m.uniformBuf, 0, float32Bytes(mvp[:]...)); err != nil {
		return fmt.Errorf("write model3d mvp: %w", err)
	}
	return nil
}

// Draw records one indexed draw of the whole torus.
func (m *Model3D) Draw(pass Pass) {
	pass.SetPipeline(m.pipe.pipeline)
	pass.SetBindGroup(0, m.bindGroup, nil)
	pass.SetVertexBuffer(0, m.vertexBuf, 0)
	pass.SetIndexBuffer(m.indexBuf, gputypes.IndexFormatUint32, 0)
	pass.DrawIndexed(m.indexCount, 1, 0, 0, 0)
}

// Destroy releases the GPU resources.
func (m *Model3D) Destroy() {
	if m.device == nil {
		return
	}
	if m.bindGroup != nil {
		m.device.DestroyBindGroup(m.bindGroup)
		m.bindGroup = nil
	}
	for _, buf := range []*hal.Buffer{&m.uniformBuf, &m.indexBuf, &m.vertexBuf} {
		if *buf != nil {
			m.device.DestroyBuffer(*buf)
			*buf = nil
		}
	}
	m.pipe.destroy(m.device)
}
