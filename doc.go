// Package portfolio is a small GPU demo portfolio built on the GoGPU stack.
//
// # Overview
//
// A window shows one showcase at a time (a flat-colored triangle, a
// Mandelbrot fractal, a lit torus) between a demo list and a property panel.
// The selection and the per-demo parameters live in a [Workspace], a single
// lock-guarded state object shared by the UI callbacks and the render loop.
//
// # Quick Start
//
//	ws := portfolio.NewWorkspace()
//	ws.SetKind(portfolio.KindMandelbrot)
//
//	mgr := demo.NewManager(ws, device, queue, format)
//	bridge := render.NewBridge(mgr)
//	frame.Render(bridge)
//
// # Demo kinds
//
// The set of demos is closed: [KindTriangle], [KindMandelbrot],
// [KindModel3D], [KindPhysics] and [KindTetris]. Physics and Tetris are
// selectable but draw nothing.
//
// # Architecture
//
// The module is organized into:
//   - portfolio: DemoKind, Workspace, demo parameters, logging
//   - demo: GPU demo variants and the Manager that dispatches to them
//   - render: per-frame bridge, offscreen frame target, compositor
//   - panel: demo list and property panel drawn on the CPU
//   - shaders: embedded WGSL sources and runtime SPIR-V compilation
//   - cmd/portfolio, cmd/shaderc: the window app and the shader build tool
package portfolio
