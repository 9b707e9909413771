package panel

import (
	"bytes"
	"fmt"
	"image"
	"sync"

	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	gtlang "github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/portfolio"
)

// labelSize is the label font size in pixels.
const labelSize = 12

// typeface draws panel labels. Pen positions come from HarfBuzz shaping,
// glyph masks from an x/image face over the same font data. Without a
// shaping face it lays runes out with the raster face's own advances.
//
// Neither face is safe for concurrent use, so every call takes mu.
type typeface struct {
	mu     sync.Mutex
	shaper shaping.HarfbuzzShaper
	shape  *gtfont.Face
	size   fixed.Int26_6
	raster font.Face
}

type placedGlyph struct {
	r    rune
	x, y fixed.Int26_6
}

var labels = sync.OnceValue(func() *typeface {
	tf, err := newTypeface(goregular.TTF, labelSize)
	if err != nil {
		portfolio.Logger().Warn("panel: label font unavailable, using basicfont", "err", err)
		return fallbackTypeface()
	}
	return tf
})

func newTypeface(ttf []byte, size float64) (*typeface, error) {
	shape, err := gtfont.ParseTTF(bytes.NewReader(ttf))
	if err != nil {
		return nil, fmt.Errorf("parse label font: %w", err)
	}
	parsed, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse label font: %w", err)
	}
	raster, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("label face: %w", err)
	}
	return &typeface{
		shape:  shape,
		size:   fixed.Int26_6(size * 64),
		raster: raster,
	}, nil
}

func fallbackTypeface() *typeface {
	return &typeface{raster: basicfont.Face7x13}
}

func (tf *typeface) metrics() font.Metrics {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	return tf.raster.Metrics()
}

// advance returns the shaped width of s.
func (tf *typeface) advance(s string) fixed.Int26_6 {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	_, adv := tf.layout(s)
	return adv
}

// draw paints s with its baseline origin at dot.
func (tf *typeface) draw(dst draw.Image, dot fixed.Point26_6, s string, src image.Image) {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	glyphs, _ := tf.layout(s)
	for _, g := range glyphs {
		at := fixed.Point26_6{X: dot.X + g.x, Y: dot.Y + g.y}
		dr, mask, maskp, _, ok := tf.raster.Glyph(at, g.r)
		if !ok {
			continue
		}
		draw.DrawMask(dst, dr, src, image.Point{}, mask, maskp, draw.Over)
	}
}

// Caller holds tf.mu.
func (tf *typeface) layout(s string) ([]placedGlyph, fixed.Int26_6) {
	runes := []rune(s)
	if len(runes) == 0 {
		return nil, 0
	}
	if tf.shape == nil {
		return tf.layoutRaster(runes)
	}

	out := tf.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      tf.shape,
		Size:      tf.size,
		Script:    scriptOf(runes),
		Language:  gtlang.NewLanguage("en"),
	})
	glyphs := make([]placedGlyph, 0, len(out.Glyphs))
	var x fixed.Int26_6
	for _, g := range out.Glyphs {
		// Go Regular has no ligatures, so a cluster starts with the rune
		// the glyph renders.
		glyphs = append(glyphs, placedGlyph{
			r: runes[g.ClusterIndex],
			x: x + g.XOffset,
			y: -g.YOffset,
		})
		x += g.Advance
	}
	return glyphs, x
}

func (tf *typeface) layoutRaster(runes []rune) ([]placedGlyph, fixed.Int26_6) {
	glyphs := make([]placedGlyph, 0, len(runes))
	var x fixed.Int26_6
	prev := rune(-1)
	for _, r := range runes {
		if prev >= 0 {
			x += tf.raster.Kern(prev, r)
		}
		glyphs = append(glyphs, placedGlyph{r: r, x: x})
		adv, _ := tf.raster.GlyphAdvance(r)
		x += adv
		prev = r
	}
	return glyphs, x
}

// scriptOf returns the script of the first non-space rune.
func scriptOf(runes []rune) gtlang.Script {
	for _, r := range runes {
		if r != ' ' && r != '\t' {
			return gtlang.LookupScript(r)
		}
	}
	return gtlang.Latin
}
