package panel

import (
	"image"

	"github.com/gogpu/portfolio"
)

// Row is one entry of the demo list.
type Row struct {
	Kind     portfolio.DemoKind
	Label    string
	Selected bool

	// Bounds is the row rectangle in panel coordinates.
	Bounds image.Rectangle
}

// List is the single-choice demo selector shown in the left panel.
type List struct {
	ws     *portfolio.Workspace
	width  int
	height int
	img    *image.RGBA
}

// NewList creates a width x height list panel over ws.
func NewList(ws *portfolio.Workspace, width, height int) *List {
	return &List{ws: ws, width: width, height: height}
}

// Size returns the panel size.
func (l *List) Size() (width, height int) {
	return l.width, l.height
}

// SetSize changes the panel size. The next Render allocates a new image.
func (l *List) SetSize(width, height int) {
	l.width, l.height = width, height
}

// Rows returns every demo kind in list order with the current selection
// marked.
func (l *List) Rows() []Row {
	current := l.ws.CurrentKind()
	kinds := portfolio.Kinds()
	rows := make([]Row, len(kinds))
	for i, k := range kinds {
		top := padding + i*RowHeight
		rows[i] = Row{
			Kind:     k,
			Label:    title(k.String()),
			Selected: k == current,
			Bounds:   image.Rect(0, top, l.width, top+RowHeight),
		}
	}
	return rows
}

// KindAt returns the kind whose row contains the panel point (x, y).
func (l *List) KindAt(x, y int) (portfolio.DemoKind, bool) {
	p := image.Pt(x, y)
	for _, r := range l.Rows() {
		if p.In(r.Bounds) {
			return r.Kind, true
		}
	}
	return 0, false
}

// Render draws the panel and returns its image. The image is reused
// between calls of the same size.
func (l *List) Render() *image.RGBA {
	l.img = canvas(l.img, l.width, l.height)
	l.Draw(l.img)
	return l.img
}

// Draw paints the panel into dst.
func (l *List) Draw(dst *image.RGBA) {
	b := dst.Bounds()
	fill(dst, b, background)
	fill(dst, image.Rect(b.Max.X-1, b.Min.Y, b.Max.X, b.Max.Y), separator)

	for _, r := range l.Rows() {
		row := r.Bounds.Add(b.Min)
		marker := "( )"
		if r.Selected {
			fill(dst, row, selection)
			marker = "(*)"
		}
		text(dst, row.Min.X+padding, row.Min.Y, marker+" "+r.Label, foreground)
	}
}
