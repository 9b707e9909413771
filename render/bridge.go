package render

import (
	"github.com/gogpu/portfolio/demo"
)

// Bridge adapts a demo.Manager to the two phases of a frame: Prepare runs
// before any command is recorded and Paint records into the frame's render
// pass. It holds no state of its own.
type Bridge struct {
	manager *demo.Manager
}

// NewBridge returns a Bridge driving m.
func NewBridge(m *demo.Manager) *Bridge {
	return &Bridge{manager: m}
}

// Prepare updates the active demo from the workspace.
func (b *Bridge) Prepare() error {
	return b.manager.Update()
}

// Paint records the active demo into pass.
func (b *Bridge) Paint(pass demo.Pass) {
	b.manager.Draw(pass)
}
