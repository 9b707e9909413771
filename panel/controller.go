package panel

import (
	"image"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/portfolio"
)

// Step sizes of the arrow keys. Shift multiplies them by shiftFactor.
const (
	ColorStep   = 0.05
	AngleStep   = 5
	shiftFactor = 4
)

// Controller maps window input to Workspace changes. It knows where the
// list panel sits in window coordinates for mouse hit testing.
type Controller struct {
	ws    *portfolio.Workspace
	list  *List
	props *Properties

	listOrigin image.Point
}

// NewController creates a Controller. listOrigin is the top-left corner
// of the list panel in the window.
func NewController(ws *portfolio.Workspace, list *List, props *Properties, listOrigin image.Point) *Controller {
	return &Controller{
		ws:         ws,
		list:       list,
		props:      props,
		listOrigin: listOrigin,
	}
}

// Attach subscribes the controller to key and mouse events of src.
func (c *Controller) Attach(src gpucontext.EventSource) {
	src.OnKeyPress(c.KeyPress)
	src.OnMousePress(c.MousePress)
}

// KeyPress handles one key press.
//
//	Up/Down      previous/next demo (wraps)
//	1-5          select demo by position
//	R, G, B      choose the edited color channel
//	Left/Right   step the active demo's parameter
func (c *Controller) KeyPress(key gpucontext.Key, mods gpucontext.Modifiers) {
	switch {
	case key == gpucontext.KeyUp:
		c.cycle(-1)
	case key == gpucontext.KeyDown:
		c.cycle(1)
	case key >= gpucontext.Key1 && key < gpucontext.Key1+gpucontext.Key(len(portfolio.Kinds())):
		c.ws.SetKind(portfolio.Kinds()[key-gpucontext.Key1])
	case key == gpucontext.KeyR:
		c.props.SetChannel(ChannelR)
	case key == gpucontext.KeyG:
		c.props.SetChannel(ChannelG)
	case key == gpucontext.KeyB:
		c.props.SetChannel(ChannelB)
	case key == gpucontext.KeyLeft:
		c.step(-1, mods)
	case key == gpucontext.KeyRight:
		c.step(1, mods)
	}
}

// MousePress selects a demo when the left button hits a list row.
func (c *Controller) MousePress(button gpucontext.MouseButton, x, y float64) {
	if button != gpucontext.MouseButtonLeft {
		return
	}
	p := image.Pt(int(x), int(y)).Sub(c.listOrigin)
	w, h := c.list.Size()
	if !p.In(image.Rect(0, 0, w, h)) {
		return
	}
	if kind, ok := c.list.KindAt(p.X, p.Y); ok {
		c.ws.SetKind(kind)
	}
}

func (c *Controller) cycle(delta int) {
	kinds := portfolio.Kinds()
	n := len(kinds)
	i := (int(c.ws.CurrentKind()) + delta + n) % n
	c.ws.SetKind(kinds[i])
}

func (c *Controller) step(dir float32, mods gpucontext.Modifiers) {
	if mods.HasShift() {
		dir *= shiftFactor
	}
	switch c.ws.CurrentKind() {
	case portfolio.KindTriangle:
		c.ws.AdjustTriangleChannel(int(c.props.Channel()), dir*ColorStep)
	case portfolio.KindModel3D:
		c.ws.RotateModel(dir * AngleStep)
	}
}
