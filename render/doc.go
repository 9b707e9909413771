// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package render turns the active demo into pixels.
//
// A frame has two phases. The Bridge prepares the active demo, then a
// Frame opens one render pass over its offscreen color and depth targets
// and lets the Bridge paint into it. The Compositor places the frame and
// the CPU-drawn panel images into a single window-sized image, which a
// Presenter hands to the host's gpucontext.TextureDrawer.
//
//	frame, _ := render.NewFrame(device, queue, 700, 700, gputypes.TextureFormatRGBA8Unorm)
//	if err := frame.Render(render.NewBridge(manager)); err != nil {
//	    return err
//	}
//	img, _ := frame.Pixels()
//
// Every submission is waited on before the call returns. Frames never
// overlap.
package render
