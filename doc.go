// Package avatar renders circular avatars: a rectangular source image
// cropped to a circle, an optional stroked ring around it, and a colored
// initials badge shown instead of the image after a long press.
//
// # Quick Start
//
//	import "github.com/gogpu/avatar"
//
//	w, err := avatar.NewWidget(avatar.WithStrategy(avatar.StrategyMask))
//	if err != nil {
//		return err
//	}
//	defer w.Close()
//
//	src, err := avatar.LoadSource("face.jpg")
//	if err != nil {
//		return err
//	}
//	w.OnSizeChanged(128, 128)
//	w.SetSource(src)
//
//	img := w.Render() // *image.RGBA, 128x128
//
// # Compositing Strategies
//
// Three Compositor implementations produce the same picture with different
// trade-offs, selected once at construction:
//   - StrategyShader fills an anti-aliased oval with a clamped image pattern
//   - StrategyMask builds a circular coverage mask, composites the source
//     through it with source-in and caches the result until the bounds size
//     or the source changes
//   - StrategyPlain clips to a hard-edged oval and draws the source beneath it
//
// Every strategy center-crops the source: it is scaled uniformly until its
// shorter side fits the bounds, and the overflow of the longer side is
// cropped evenly from both ends.
//
// # Host Integration
//
// A Widget holds no timers and does no I/O. The host view forwards layout
// (OnMeasure, OnSizeChanged), drawing (OnDraw), input (OnLongPress) and the
// values of the pulse animation it plays (OnAnimationTick,
// OnAnimationRepeat, OnAnimationEnd). The widget calls back through Host
// when it needs a redraw or a new layout pass. See integration/avatarcanvas
// for a host that uploads frames to a GPU texture.
//
// # Display Modes
//
// A widget starts in ModeAvatar. Each long press plays a Pulse that grows
// the widget to twice its resting size and back; the mode flips between
// ModeAvatar and ModeInitials at the turning point. Long presses during a
// pulse are ignored.
//
// # Coordinate System
//
// Bounds are in device pixels with the origin at the top-left. Styles and
// border widths are given in density-independent units (dp) and converted
// with the widget's Density.
//
// # Logging
//
// The package logs through log/slog and is silent by default. Call
// SetLogger to see cache rebuilds and recoverable input problems.
package avatar

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
