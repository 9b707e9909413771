package demo

// Physics is a selectable demo without a renderer. It owns no GPU
// resources and records nothing.
type Physics struct{}

// Draw records nothing.
func (Physics) Draw(Pass) {}

// Destroy does nothing.
func (Physics) Destroy() {}

// Tetris is a selectable demo without a renderer. It owns no GPU
// resources and records nothing.
type Tetris struct{}

// Draw records nothing.
func (Tetris) Draw(Pass) {}

// Destroy does nothing.
func (Tetris) Destroy() {}

var (
	_ Demo = Physics{}
	_ Demo = Tetris{}
)
