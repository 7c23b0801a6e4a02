// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package avatarcanvas hosts an avatar.Widget in a gogpu window.
//
// Canvas plays the part of the view the widget lives in: it answers the
// widget's redraw and layout requests, drives the long-press pulse one
// frame at a time, and uploads each rendered frame to a GPU texture. The
// data flow is:
//
//	avatar.Widget (draw) -> RGBA frame (CPU) -> GPU Texture -> Window
//
// # Usage
//
//	w, _ := avatar.NewWidget(avatar.WithStrategy(avatar.StrategyMask))
//	canvas, _ := avatarcanvas.New(app.GPUContextProvider(), w, 96)
//	defer canvas.Close()
//
//	w.SetSource(src)
//
//	app.OnDraw(func(dc *gogpu.Context) {
//		canvas.Step()
//		canvas.RenderTo(dc.AsTextureDrawer())
//	})
//
// # Thread Safety
//
// Canvas is NOT safe for concurrent use. It must be driven from the
// goroutine that owns the widget.
//
// # Integration Without Circular Imports
//
// This package uses interfaces to avoid importing gogpu directly:
//
//   - gpucontext.DeviceProvider for the surface format
//   - Local interfaces for texture creation and drawing
package avatarcanvas
