package gogpuhost

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/portfolio"
	"github.com/gogpu/portfolio/internal/config"
	"github.com/gogpu/portfolio/internal/gpu"
	"github.com/gogpu/portfolio/internal/session"
	"github.com/gogpu/portfolio/render"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

func createNoopDevice(t *testing.T) (hal.Device, hal.Queue) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	return openDev.Device, openDev.Queue
}

// windowProvider is a window device without HAL access.
type windowProvider struct{}

func (windowProvider) Device() gpucontext.Device { return nil }

func (windowProvider) Queue() gpucontext.Queue { return nil }

func (windowProvider) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatBGRA8Unorm
}

func (windowProvider) Adapter() gpucontext.Adapter { return nil }

func (windowProvider) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "window", Type: gpucontext.AdapterTypeDiscrete}
}

// halWindowProvider shares its HAL device and queue.
type halWindowProvider struct {
	windowProvider
	device hal.Device
	queue  hal.Queue
}

func (p halWindowProvider) HalDevice() any { return p.device }

func (p halWindowProvider) HalQueue() any { return p.queue }

type fakeTexture struct {
	w, h    int
	updates int
}

func (t *fakeTexture) Width() int { return t.w }

func (t *fakeTexture) Height() int { return t.h }

func (t *fakeTexture) UpdateData([]byte) error {
	t.updates++
	return nil
}

type fakeDrawer struct {
	created []*fakeTexture
	drawn   int
}

func (d *fakeDrawer) DrawTexture(gpucontext.Texture, float32, float32) error {
	d.drawn++
	return nil
}

func (d *fakeDrawer) TextureCreator() gpucontext.TextureCreator { return d }

func (d *fakeDrawer) NewTextureFromRGBA(w, h int, _ []byte) (gpucontext.Texture, error) {
	tex := &fakeTexture{w: w, h: h}
	d.created = append(d.created, tex)
	return tex, nil
}

func newTestHost(t *testing.T) (*Host, *portfolio.Workspace) {
	t.Helper()
	cfg := config.Default()
	cfg.Window.CanvasWidth, cfg.Window.CanvasHeight, cfg.Window.PanelWidth = 32, 24, 8
	ws := portfolio.NewWorkspace()
	s, err := session.New(ws, cfg)
	if err != nil {
		t.Fatalf("session.New error = %v", err)
	}
	h := New(s)
	t.Cleanup(h.Close)
	return h, ws
}

func TestHostSkipsWithoutDevice(t *testing.T) {
	h, _ := newTestHost(t)
	dc := &fakeDrawer{}
	if err := h.Draw(dc, nil); err != nil {
		t.Fatalf("Draw(nil provider) error = %v", err)
	}
	if dc.drawn != 0 {
		t.Errorf("drawn = %d, want 0", dc.drawn)
	}
}

func TestHostPresentsFrames(t *testing.T) {
	device, queue := createNoopDevice(t)
	h, ws := newTestHost(t)
	dc := &fakeDrawer{}
	provider := halWindowProvider{device: device, queue: queue}

	for _, kind := range []portfolio.DemoKind{portfolio.KindTriangle, portfolio.KindModel3D, portfolio.KindTetris} {
		ws.SetKind(kind)
		if err := h.Draw(dc, provider); err != nil {
			t.Fatalf("Draw(%v) error = %v", kind, err)
		}
	}
	if dc.drawn != 3 {
		t.Errorf("drawn = %d, want 3", dc.drawn)
	}
	if len(dc.created) != 1 {
		t.Fatalf("created %d textures, want 1", len(dc.created))
	}
	tex := dc.created[0]
	if tex.w != 48 || tex.h != 24 {
		t.Errorf("texture size = %dx%d, want 48x24", tex.w, tex.h)
	}
	if tex.updates != 2 {
		t.Errorf("updates = %d, want 2", tex.updates)
	}
}

func TestHostOpenErrorIsSticky(t *testing.T) {
	h, _ := newTestHost(t)
	dc := &fakeDrawer{}
	err := h.Draw(dc, windowProvider{})
	if !errors.Is(err, gpu.ErrNoHalDevice) {
		t.Fatalf("Draw error = %v, want ErrNoHalDevice", err)
	}
	if err := h.Draw(dc, windowProvider{}); !errors.Is(err, gpu.ErrNoHalDevice) {
		t.Errorf("second Draw error = %v, want the same error", err)
	}
	if !errors.Is(h.Err(), gpu.ErrNoHalDevice) {
		t.Errorf("Err() = %v", h.Err())
	}
	if dc.drawn != 0 {
		t.Errorf("drawn = %d, want 0", dc.drawn)
	}
}

func TestHostClose(t *testing.T) {
	device, queue := createNoopDevice(t)
	h, _ := newTestHost(t)
	dc := &fakeDrawer{}
	if err := h.Draw(dc, halWindowProvider{device: device, queue: queue}); err != nil {
		t.Fatal(err)
	}
	h.Close()
	h.Close()
	if err := h.Draw(dc, halWindowProvider{device: device, queue: queue}); !errors.Is(err, ErrHostClosed) {
		t.Errorf("Draw after Close error = %v, want ErrHostClosed", err)
	}
}

func TestHostFollowsWindowSize(t *testing.T) {
	device, queue := createNoopDevice(t)
	h, _ := newTestHost(t)
	dc := &fakeDrawer{}
	provider := halWindowProvider{device: device, queue: queue}

	if err := h.Draw(dc, provider); err != nil {
		t.Fatal(err)
	}
	if err := h.Resize(64, 30); err != nil {
		t.Fatalf("Resize error = %v", err)
	}
	if err := h.Draw(dc, provider); err != nil {
		t.Fatal(err)
	}
	if err := h.Resize(10, 30); !errors.Is(err, render.ErrInvalidSize) {
		t.Errorf("Resize(10, 30) error = %v, want ErrInvalidSize", err)
	}
	if err := h.Draw(dc, provider); err != nil {
		t.Fatal(err)
	}

	if len(dc.created) != 2 {
		t.Fatalf("created %d textures, want 2", len(dc.created))
	}
	if tex := dc.created[1]; tex.w != 64 || tex.h != 30 {
		t.Errorf("texture size = %dx%d, want 64x30", tex.w, tex.h)
	}

	h.Close()
	if err := h.Resize(64, 30); !errors.Is(err, ErrHostClosed) {
		t.Errorf("Resize after Close error = %v, want ErrHostClosed", err)
	}
}
