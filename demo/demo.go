// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package demo implements the GPU showcases and the Manager that routes
// per-frame update and draw calls to whichever one the Workspace selects.
//
// Every variant owns its pipeline and buffers. Variants record draw calls
// into a render pass supplied by the caller; they never submit work.
package demo

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/portfolio/shaders"
	"github.com/gogpu/wgpu/hal"
)

// DepthFormat is the depth attachment format of every frame the demos
// draw into. Pipelines without depth testing still declare it so they are
// compatible with the shared render pass.
const DepthFormat = gputypes.TextureFormatDepth32Float

// ErrClosed is returned by a Manager after Close.
var ErrClosed = errors.New("demo: manager is closed")

// Pass is the part of hal.RenderPassEncoder the demos record into.
// hal.RenderPassEncoder satisfies it.
type Pass interface {
	SetPipeline(pipeline hal.RenderPipeline)
	SetBindGroup(index uint32, group hal.BindGroup, offsets []uint32)
	SetVertexBuffer(slot uint32, buffer hal.Buffer, offset uint64)
	SetIndexBuffer(buffer hal.Buffer, format gputypes.IndexFormat, offset uint64)
	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32)
	DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32)
}

var _ Pass = hal.RenderPassEncoder(nil)

// Demo is one showcase. The set of implementations is closed: Triangle,
// Mandelbrot, Model3D, Physics and Tetris.
type Demo interface {
	// Draw records the demo's draw calls into pass.
	Draw(pass Pass)

	// Destroy releases the GPU resources. Safe to call more than once.
	Destroy()
}

// Target describes the frame the demos render into.
type Target struct {
	// Format is the color attachment format.
	Format gputypes.TextureFormat

	// Shaders selects WGSL or precompiled SPIR-V modules.
	Shaders shaders.Mode
}

// DefaultTarget returns an RGBA8 target using WGSL shaders.
func DefaultTarget() Target {
	return Target{Format: gputypes.TextureFormatRGBA8Unorm, Shaders: shaders.ModeWGSL}
}

// pipelineSet holds the objects every demo pipeline is built from.
// Fields are released in reverse creation order.
type pipelineSet struct {
	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline
}

func (p *pipelineSet) destroy(device hal.Device) {
	if p.pipeline != nil {
		device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.bindLayout != nil {
		device.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
	if p.shader != nil {
		device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

// createShader builds the HAL module for one of the embedded shaders.
func createShader(device hal.Device, name shaders.Name, mode shaders.Mode) (hal.ShaderModule, error) {
	src, err := shaders.Module(name, mode)
	if err != nil {
		return nil, err
	}
	return device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  string(name) + "_shader",
		Source: src,
	})
}

// uniformLayout creates a bind group layout with one uniform buffer at
// binding 0.
func uniformLayout(device hal.Device, label string, visibility gputypes.ShaderStages) (hal.BindGroupLayout, error) {
	return device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: label,
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: visibility,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
}

// uniformBindGroup binds the whole of buf at binding 0.
func uniformBindGroup(device hal.Device, label string, layout hal.BindGroupLayout, buf hal.Buffer, size uint64) (hal.BindGroup, error) {
	return device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  label,
		Layout: layout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: buf.NativeHandle(), Offset: 0, Size: size,
			}},
		},
	})
}

// createBufferInit creates a buffer and uploads data into it.
func createBufferInit(device hal.Device, queue hal.Queue, label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	if err := queue.WriteBuffer(buf, 0, data); err != nil {
		device.DestroyBuffer(buf)
		return nil, fmt.Errorf("upload %s: %w", label, err)
	}
	return buf, nil
}

// depthState returns a depth state on DepthFormat. The stencil is unused.
func depthState(write bool, compare gputypes.CompareFunction) *hal.DepthStencilState {
	keep := hal.StencilFaceState{
		Compare:     gputypes.CompareFunctionAlways,
		FailOp:      hal.StencilOperationKeep,
		DepthFailOp: hal.StencilOperationKeep,
		PassOp:      hal.StencilOperationKeep,
	}
	return &hal.DepthStencilState{
		Format:            DepthFormat,
		DepthWriteEnabled: write,
		DepthCompare:      compare,
		StencilFront:      keep,
		StencilBack:       keep,
	}
}

func colorTargets(format gputypes.TextureFormat) []gputypes.ColorTargetState {
	return []gputypes.ColorTargetState{
		{Format: format, WriteMask: gputypes.ColorWriteMaskAll},
	}
}

func float32Bytes(values ...float32) []byte {
	buf := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

func uint16Bytes(values ...uint16) []byte {
	buf := make([]byte, 2*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint16(buf[i*2:], v)
	}
	return buf
}

func uint32Bytes(values []uint32) []byte {
	buf := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], v)
	}
	return buf
}
