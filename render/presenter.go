package render

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gpucontext"
)

// ErrNoTextureCreator is returned when the drawer cannot create textures.
var ErrNoTextureCreator = errors.New("render: drawer has no texture creator")

// textureDestroyer is implemented by host textures that own GPU memory.
type textureDestroyer interface {
	Destroy()
}

// Presenter draws composed images through a host gpucontext.TextureDrawer.
// The host texture is created on the first call and updated in place
// afterwards; it is recreated when the image size changes.
type Presenter struct {
	texture gpucontext.Texture
	width   int
	height  int
}

// Present uploads img and draws it at (x, y).
func (p *Presenter) Present(dc gpucontext.TextureDrawer, img *image.RGBA, x, y float32) error {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	data := tightPixels(img)

	if p.texture != nil && (w != p.width || h != p.height) {
		p.Release()
	}

	if p.texture != nil {
		if up, ok := p.texture.(gpucontext.TextureUpdater); ok {
			if err := up.UpdateData(data); err != nil {
				return fmt.Errorf("update presented texture: %w", err)
			}
		} else {
			p.Release()
		}
	}

	if p.texture == nil {
		creator := dc.TextureCreator()
		if creator == nil {
			return ErrNoTextureCreator
		}
		tex, err := creator.NewTextureFromRGBA(w, h, data)
		if err != nil {
			return fmt.Errorf("create presented texture: %w", err)
		}
		p.texture, p.width, p.height = tex, w, h
	}

	return dc.DrawTexture(p.texture, x, y)
}

// Release destroys the host texture if it owns GPU memory.
func (p *Presenter) Release() {
	if p.texture == nil {
		return
	}
	if d, ok := p.texture.(textureDestroyer); ok {
		d.Destroy()
	}
	p.texture = nil
	p.width, p.height = 0, 0
}
