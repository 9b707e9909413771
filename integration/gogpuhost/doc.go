// Package gogpuhost runs the portfolio inside a gogpu window.
//
// The window's device is adopted through gpucontext.DeviceProvider on the
// first frame. Every frame renders the active demo into an offscreen canvas,
// composes it between the demo list and the property panel, and draws the
// result with the window's texture drawer:
//
//	Workspace -> demo.Manager -> render.Frame -> render.Compositor -> TextureDrawer
//
// Keyboard and mouse events from the window go to panel.Controller.
//
// Example:
//
//	ws := portfolio.NewWorkspace()
//	if err := gogpuhost.Run(ws, config.Default()); err != nil {
//	    log.Fatal(err)
//	}
package gogpuhost
