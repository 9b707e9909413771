// Command shaderc compiles the portfolio shaders ahead of time.
//
// Every shader is compiled per stage to SPIR-V and, on request, to GLSL,
// MSL and HLSL:
//
//	shaderc build -o out                      # all targets, SPIR-V
//	shaderc build -f all -D MAX_ITER=256 mandelbrot
//	shaderc watch -s shaders -o out           # rebuild on change
//	shaderc list
//
// A compile error exits with status 1.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
