package render

import (
	"errors"
	"image"
	"testing"

	"github.com/gogpu/gpucontext"
)

type fakeTexture struct {
	w, h      int
	updates   int
	destroyed bool
}

func (t *fakeTexture) Width() int  { return t.w }
func (t *fakeTexture) Height() int { return t.h }

func (t *fakeTexture) UpdateData([]byte) error {
	t.updates++
	return nil
}

func (t *fakeTexture) Destroy() { t.destroyed = true }

type fakeDrawer struct {
	created []*fakeTexture
	drawn   int
	noMaker bool
}

func (d *fakeDrawer) DrawTexture(gpucontext.Texture, float32, float32) error {
	d.drawn++
	return nil
}

func (d *fakeDrawer) TextureCreator() gpucontext.TextureCreator {
	if d.noMaker {
		return nil
	}
	return d
}

func (d *fakeDrawer) NewTextureFromRGBA(w, h int, _ []byte) (gpucontext.Texture, error) {
	tex := &fakeTexture{w: w, h: h}
	d.created = append(d.created, tex)
	return tex, nil
}

func TestPresenterCreatesThenUpdates(t *testing.T) {
	var p Presenter
	dc := &fakeDrawer{}
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))

	for range 3 {
		if err := p.Present(dc, img, 0, 0); err != nil {
			t.Fatalf("Present failed: %v", err)
		}
	}
	if len(dc.created) != 1 {
		t.Fatalf("textures created = %d, want 1", len(dc.created))
	}
	if dc.created[0].updates != 2 {
		t.Errorf("updates = %d, want 2", dc.created[0].updates)
	}
	if dc.drawn != 3 {
		t.Errorf("draws = %d, want 3", dc.drawn)
	}
}

func TestPresenterRecreatesOnResize(t *testing.T) {
	var p Presenter
	dc := &fakeDrawer{}

	if err := p.Present(dc, image.NewRGBA(image.Rect(0, 0, 4, 4)), 0, 0); err != nil {
		t.Fatalf("Present failed: %v", err)
	}
	if err := p.Present(dc, image.NewRGBA(image.Rect(0, 0, 8, 4)), 0, 0); err != nil {
		t.Fatalf("Present failed: %v", err)
	}
	if len(dc.created) != 2 {
		t.Fatalf("textures created = %d, want 2", len(dc.created))
	}
	if !dc.created[0].destroyed {
		t.Error("old texture not destroyed")
	}

	p.Release()
	if !dc.created[1].destroyed {
		t.Error("Release did not destroy the texture")
	}
}

func TestPresenterNoCreator(t *testing.T) {
	var p Presenter
	err := p.Present(&fakeDrawer{noMaker: true}, image.NewRGBA(image.Rect(0, 0, 1, 1)), 0, 0)
	if !errors.Is(err, ErrNoTextureCreator) {
		t.Errorf("Present() error = %v, want ErrNoTextureCreator", err)
	}
}
