// Package gp provides a minimal immediate-mode 2D renderer that batches
// drawing calls into as few GPU draw calls as possible.
//
// # Overview
//
// gp sits on top of a GPU abstraction (see [Backend]). A caller opens a pass
// with [Context.Begin], issues state changes and drawing calls, and replays
// them with [Context.Flush]. Nothing reaches the GPU until Flush.
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/gp"
//		"github.com/gogpu/gp/backend/native"
//	)
//
//	b, _ := native.New()
//	ctx, err := gp.New(b)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer ctx.Shutdown()
//
//	b.BeginPass(view, 800, 600, native.LoadClear, gp.Black)
//	ctx.Begin(800, 600)
//	ctx.SetColor(1, 0, 0, 1)
//	ctx.DrawFilledRect(10, 10, 50, 50)
//	ctx.DrawFilledRect(70, 10, 50, 50) // merged with the previous rect
//	ctx.Flush()
//	ctx.End()
//	b.EndPass()
//
// # Batching
//
// Every vertex is transformed to clip space when it is submitted. Draw calls
// that follow each other with the same pipeline, image and color are merged
// into a single draw command, and the flush only rebinds pipelines, images and
// uniforms when they actually change.
//
// # Coordinate System
//
// Pixel space with the origin at the top-left corner:
//   - X increases right
//   - Y increases down
//   - Angles in radians; positive angles rotate clockwise on screen
//
// # Errors
//
// Drawing calls never fail loudly. Capacity exhaustion and stack misuse set
// the context's last error (see [Context.Err]) and turn the offending call
// into a no-op. Flush skips replay while an error is set; the error is
// cleared by the next outermost Begin.
//
// # Thread Safety
//
// A Context is not safe for concurrent use. Use one Context per rendering
// goroutine.
package gp

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
