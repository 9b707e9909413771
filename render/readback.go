package render

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// copyPitchAlignment is the row alignment required for texture-to-buffer
// copies.
const copyPitchAlignment = 256

// alignedBytesPerRow rounds a row of width RGBA pixels up to the copy
// pitch.
func alignedBytesPerRow(width int) uint32 {
	row := uint32(width) * 4 //nolint:gosec // width is a validated texture size
	return (row + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
}

// submitAndWait finishes encoder, submits it and blocks until the device
// is idle.
func submitAndWait(device hal.Device, queue hal.Queue, encoder hal.CommandEncoder) error {
	cmd, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer device.FreeCommandBuffer(cmd)

	if _, err := queue.Submit([]hal.CommandBuffer{cmd}); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	if err := device.WaitIdle(); err != nil {
		return fmt.Errorf("wait idle: %w", err)
	}
	return nil
}

// readTexture copies a width x height color texture into a new RGBA image.
// BGRA textures are swizzled on the way out.
func readTexture(device hal.Device, queue hal.Queue, tex hal.Texture, width, height int, format gputypes.TextureFormat) (*image.RGBA, error) {
	pitch := alignedBytesPerRow(width)
	size := uint64(pitch) * uint64(height) //nolint:gosec // height is a validated texture size

	staging, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "readback_staging",
		Size:  size,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create readback buffer: %w", err)
	}
	defer device.DestroyBuffer(staging)

	encoder, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "readback_encoder"})
	if err != nil {
		return nil, fmt.Errorf("create readback encoder: %w", err)
	}
	defer encoder.Destroy()
	if err := encoder.BeginEncoding("readback"); err != nil {
		return nil, fmt.Errorf("begin readback encoding: %w", err)
	}

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	encoder.CopyTextureToBuffer(tex, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{
			BytesPerRow:  pitch,
			RowsPerImage: uint32(height), //nolint:gosec // validated size
		},
		TextureBase: hal.ImageCopyTexture{Texture: tex, Aspect: gputypes.TextureAspectAll},
		Size: hal.Extent3D{
			Width:              uint32(width),  //nolint:gosec // validated size
			Height:             uint32(height), //nolint:gosec // validated size
			DepthOrArrayLayers: 1,
		},
	}})
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	if err := submitAndWait(device, queue, encoder); err != nil {
		return nil, fmt.Errorf("readback: %w", err)
	}

	mapping, err := device.MapBuffer(staging, 0, size)
	if err != nil {
		return nil, fmt.Errorf("map readback buffer: %w", err)
	}
	defer func() { _ = device.UnmapBuffer(staging) }()

	raw := unsafe.Slice((*byte)(mapping.Ptr), size)
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		src := raw[uint64(y)*uint64(pitch):]
		copy(img.Pix[y*img.Stride:(y+1)*img.Stride], src[:width*4])
	}
	if format == gputypes.TextureFormatBGRA8Unorm || format == gputypes.TextureFormatBGRA8UnormSrgb {
		swapRB(img.Pix)
	}
	return img, nil
}

// swapRB converts BGRA to RGBA in place.
func swapRB(pix []byte) {
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i], pix[i+2] = pix[i+2], pix[i]
	}
}
