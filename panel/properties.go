package panel

import (
	"fmt"
	"image"
	"image/color"
	"sync/atomic"

	"github.com/gogpu/portfolio"
)

// Heading is the title of the property panel.
const Heading = "Properties"

// Channel is the triangle color channel the arrow keys edit.
type Channel uint32

// Color channels.
const (
	ChannelR Channel = iota
	ChannelG
	ChannelB
)

func (c Channel) String() string {
	switch c {
	case ChannelR:
		return "r"
	case ChannelG:
		return "g"
	case ChannelB:
		return "b"
	default:
		return fmt.Sprintf("Channel(%d)", uint32(c))
	}
}

// PropertyRow is one line of the property panel.
type PropertyRow struct {
	Label string
	Value string
}

// Properties shows the parameters of the active demo in the right panel.
type Properties struct {
	ws      *portfolio.Workspace
	width   int
	height  int
	channel atomic.Uint32
	img     *image.RGBA
}

// NewProperties creates a width x height property panel over ws.
func NewProperties(ws *portfolio.Workspace, width, height int) *Properties {
	return &Properties{ws: ws, width: width, height: height}
}

// Size returns the panel size.
func (p *Properties) Size() (width, height int) {
	return p.width, p.height
}

// SetSize changes the panel size.
func (p *Properties) SetSize(width, height int) {
	p.width, p.height = width, height
}

// Channel returns the color channel being edited.
func (p *Properties) Channel() Channel {
	return Channel(p.channel.Load())
}

// SetChannel selects the color channel to edit.
func (p *Properties) SetChannel(c Channel) {
	if c > ChannelB {
		return
	}
	p.channel.Store(uint32(c))
}

// Rows returns the rows for the active demo. Physics and Tetris have none.
func (p *Properties) Rows() []PropertyRow {
	snap := p.ws.Snapshot()
	switch snap.Kind {
	case portfolio.KindTriangle:
		c := snap.Triangle.Color
		return []PropertyRow{{
			Label: "Color",
			Value: fmt.Sprintf("%.2f %.2f %.2f", c[0], c[1], c[2]),
		}}
	case portfolio.KindMandelbrot:
		return []PropertyRow{{Label: "Nothing"}}
	case portfolio.KindModel3D:
		return []PropertyRow{{
			Label: "Angle",
			Value: fmt.Sprintf("%.0f deg", snap.Model3D.Angle),
		}}
	default:
		return nil
	}
}

// Render draws the panel and returns its image. The image is reused
// between calls of the same size.
func (p *Properties) Render() *image.RGBA {
	p.img = canvas(p.img, p.width, p.height)
	p.Draw(p.img)
	return p.img
}

// Draw paints the panel into dst.
func (p *Properties) Draw(dst *image.RGBA) {
	b := dst.Bounds()
	fill(dst, b, background)
	fill(dst, image.Rect(b.Min.X, b.Min.Y, b.Min.X+1, b.Max.Y), separator)

	x := b.Min.X + padding
	top := b.Min.Y + padding
	text(dst, x, top, Heading, foreground)
	top += RowHeight
	fill(dst, image.Rect(x, top, b.Max.X-padding, top+1), separator)
	top += padding

	snap := p.ws.Snapshot()
	for _, row := range p.Rows() {
		text(dst, x, top, row.Label, foreground)
		top += RowHeight
		if snap.Kind == portfolio.KindTriangle {
			p.drawColor(dst, x, top, snap.Triangle)
			top += RowHeight
			continue
		}
		if row.Value != "" {
			text(dst, x, top, row.Value, dimmed)
			top += RowHeight
		}
	}
}

// drawColor draws the swatch and the three channels, the edited one in
// brackets.
func (p *Properties) drawColor(dst *image.RGBA, x, top int, params portfolio.TriangleParams) {
	rgba := params.RGBA()
	sw := color.RGBA{
		R: unitByte(rgba[0]),
		G: unitByte(rgba[1]),
		B: unitByte(rgba[2]),
		A: 0xff,
	}
	y := top + (RowHeight-swatch)/2
	fill(dst, image.Rect(x, y, x+swatch, y+swatch), sw)
	x += swatch + padding/2

	editing := p.Channel()
	for i, ch := range []Channel{ChannelR, ChannelG, ChannelB} {
		label := fmt.Sprintf("%s%.2f", ch, params.Color[i])
		c := dimmed
		if ch == editing {
			label = "[" + label + "]"
			c = foreground
		}
		text(dst, x, top, label, c)
		x += textWidth(label) + 2
	}
}

func unitByte(v float32) uint8 {
	return uint8(v*255 + 0.5)
}
