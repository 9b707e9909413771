package panel

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Layout metrics in pixels.
const (
	RowHeight = 20
	padding   = 8
	swatch    = 14
)

var (
	background = color.RGBA{R: 0x1e, G: 0x1e, B: 0x22, A: 0xff}
	foreground = color.RGBA{R: 0xdc, G: 0xdc, B: 0xdc, A: 0xff}
	dimmed     = color.RGBA{R: 0x8c, G: 0x8c, B: 0x96, A: 0xff}
	selection  = color.RGBA{R: 0x2f, G: 0x4f, B: 0x7f, A: 0xff}
	separator  = color.RGBA{R: 0x3a, G: 0x3a, B: 0x40, A: 0xff}
)

var titleCaser = cases.Title(language.English)

// title formats a label the way the panels display it.
func title(s string) string {
	return titleCaser.String(s)
}

func fill(dst draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// text draws s with its baseline centered in a RowHeight row starting at
// top.
func text(dst draw.Image, x, top int, s string, c color.Color) {
	tf := labels()
	metrics := tf.metrics()
	ascent := metrics.Ascent.Ceil()
	height := ascent + metrics.Descent.Ceil()
	tf.draw(dst, fixed.P(x, top+(RowHeight-height)/2+ascent), s, image.NewUniform(c))
}

// textWidth returns the advance of s in pixels.
func textWidth(s string) int {
	return labels().advance(s).Ceil()
}

// canvas returns img when it already has the requested size, otherwise a
// new image.
func canvas(img *image.RGBA, width, height int) *image.RGBA {
	if img != nil && img.Bounds().Dx() == width && img.Bounds().Dy() == height {
		return img
	}
	return image.NewRGBA(image.Rect(0, 0, width, height))
}
