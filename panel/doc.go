// Package panel draws the two side panels of the portfolio window and
// turns keyboard and mouse input into Workspace changes.
//
// The List panel is a single-choice control over every demo kind. The
// Properties panel shows the parameters of the active demo: the triangle
// color, the torus camera angle, or nothing. Both render into CPU images
// that the render package composes next to the demo canvas.
package panel
