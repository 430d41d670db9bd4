// Package poly is a small toolkit for interactive 2D demos.
//
// The pieces live in sub-packages. render, loop and input do not depend on
// each other; window joins render and input:
//
//   - render: a software drawing surface with canvas-style helpers
//   - loop: a cancellable fixed-interval task for redrawing
//   - input: keyboard state tracking
//   - geom: angle and vector helpers
//   - window: presents a surface in an OpenGL window and feeds key events
//
// A typical program builds a render.Canvas, starts a loop.Task that draws
// into it, and lets a window.Window show the result:
//
//	canvas, _ := render.NewCanvas(320, 240)
//	task, _ := loop.Every(ctx, 10*time.Millisecond, func() error {
//		canvas.BeginDraw()
//		canvas.Clear(colornames.Red)
//		return nil
//	})
//	defer task.Stop()
//
// This package only holds the shared logger.
package poly
