// Command portfolio shows the GPU demo portfolio in a window, renders
// headless snapshots of it and reports the available GPU backends.
//
// Usage:
//
//	portfolio run [--demo mandelbrot] [--shaders spirv]
//	portfolio snapshot --demo model3d --output torus.png
//	portfolio backends
//	portfolio config
package main

import (
	"os"

	_ "github.com/gogpu/wgpu/hal/allbackends"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
