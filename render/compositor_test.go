package render

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/portfolio/shaders"
)

func TestNDCRect(t *testing.T) {
	tests := []struct {
		name string
		rect image.Rectangle
		want [4]float32
	}{
		{"full", image.Rect(0, 0, 1000, 700), [4]float32{-1, 1, 1, -1}},
		{"left panel", image.Rect(0, 0, 150, 700), [4]float32{-1, 1, -0.7, -1}},
		{"center", image.Rect(250, 175, 750, 525), [4]float32{-0.5, 0.5, 0.5, -0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ndcRect(tt.rect, 1000, 700)
			for i := range tt.want {
				if d := got[i] - tt.want[i]; d > 1e-6 || d < -1e-6 {
					t.Errorf("ndcRect() = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestTightPixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.SetRGBA(1, 1, color.RGBA{R: 9, A: 255})

	if got := tightPixels(img); len(got) != 64 || &got[0] != &img.Pix[0] {
		t.Error("tightPixels copied a tightly packed image")
	}

	sub := img.SubImage(image.Rect(1, 1, 3, 3)).(*image.RGBA)
	got := tightPixels(sub)
	if len(got) != 16 {
		t.Fatalf("len = %d, want 16", len(got))
	}
	if got[0] != 9 || got[3] != 255 {
		t.Errorf("first pixel = %v, want R=9 A=255", got[:4])
	}
}

func TestCompositorInvalidSize(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	if _, err := NewCompositor(device, queue, 0, 10, shaders.ModeWGSL); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("NewCompositor() error = %v, want ErrInvalidSize", err)
	}
}

func TestCompositorUploadReusesTexture(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	c, err := NewCompositor(device, queue, 100, 50, shaders.ModeWGSL)
	if err != nil {
		t.Fatalf("NewCompositor failed: %v", err)
	}
	defer c.Close()

	img := image.NewRGBA(image.Rect(0, 0, 20, 50))
	if _, err := c.Upload("list", img); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	first := c.images["list"]
	if _, err := c.Upload("list", img); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if c.images["list"] != first {
		t.Error("same-size upload created a new texture")
	}

	if _, err := c.Upload("list", image.NewRGBA(image.Rect(0, 0, 30, 50))); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if c.images["list"] == first {
		t.Error("resized upload reused the old texture")
	}
	if len(c.images) != 1 {
		t.Errorf("images = %d, want 1", len(c.images))
	}

	if _, err := c.Upload("empty", &image.RGBA{}); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Upload(empty) error = %v, want ErrInvalidSize", err)
	}
}

func TestCompositorCompose(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	frame, err := NewFrame(device, queue, 60, 50, gputypes.TextureFormatRGBA8Unorm)
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}
	defer frame.Close()

	c, err := NewCompositor(device, queue, 100, 50, shaders.ModeWGSL)
	if err != nil {
		t.Fatalf("NewCompositor failed: %v", err)
	}
	defer c.Close()

	panelView, err := c.Upload("list", image.NewRGBA(image.Rect(0, 0, 20, 50)))
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	layers := []Layer{
		{View: panelView, Rect: image.Rect(0, 0, 20, 50)},
		{View: frame.ColorView(), Rect: image.Rect(20, 0, 80, 50)},
		{View: nil, Rect: image.Rect(80, 0, 100, 50)},
	}
	if err := c.Compose(layers); err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	img, err := c.Pixels()
	if err != nil {
		t.Fatalf("Pixels failed: %v", err)
	}
	if w, h := c.Size(); img.Bounds().Dx() != w || img.Bounds().Dy() != h {
		t.Errorf("image bounds = %v, want %dx%d", img.Bounds(), w, h)
	}

	if err := c.Resize(120, 60); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if w, h := c.Size(); w != 120 || h != 60 {
		t.Errorf("Size() = %dx%d, want 120x60", w, h)
	}
}

func TestCompositorFailedResizeKeepsOutput(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()
	flaky := &flakyDevice{Device: device}

	c, err := NewCompositor(flaky, queue, 40, 30, shaders.ModeWGSL)
	if err != nil {
		t.Fatalf("NewCompositor failed: %v", err)
	}
	defer c.Close()
	live := flaky.textures

	flaky.failViews = true
	if err := c.Resize(80, 60); !errors.Is(err, errViewFailed) {
		t.Fatalf("Resize error = %v, want errViewFailed", err)
	}
	flaky.failViews = false

	if w, h := c.Size(); w != 40 || h != 30 {
		t.Errorf("Size() after failed Resize = %dx%d, want 40x30", w, h)
	}
	if flaky.textures != live {
		t.Errorf("live textures = %d, want %d", flaky.textures, live)
	}
	if err := c.Compose(nil); err != nil {
		t.Errorf("Compose after failed Resize: %v", err)
	}
}
