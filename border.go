package avatar

import (
	"image"
	"image/draw"

	"github.com/gogpu/avatar/internal/oval"
)

// Default border parameters, applied when no style overrides them.
const (
	DefaultBorderWidthDp = 2
)

// DefaultBorderColor is the border color used when no style overrides it.
var DefaultBorderColor = White

// Border is the stroked ring drawn around the avatar.
type Border struct {
	// Width is the stroke width in device pixels. Zero disables the ring.
	Width float64

	// Color is the stroke color.
	Color RGBA
}

// Inset returns how far the ring's drawing rectangle is inset from the
// bounds: half the stroke width, truncated to whole pixels.
func (b Border) Inset() int {
	return int(b.Width / 2)
}

// Rect returns the rectangle whose inscribed oval the ring is stroked along.
func (b Border) Rect(bounds Bounds) Bounds {
	return bounds.Inset(b.Inset())
}

// Draw strokes the ring over dst. The stroke is centered on the oval of
// Rect(bounds) and clipped to bounds.
func (b Border) Draw(dst draw.Image, bounds Bounds) {
	if bounds.Empty() || b.Width <= 0 || b.Color.A <= 0 {
		return
	}
	ring := b.Rect(bounds)
	if ring.Empty() {
		return
	}
	clip := bounds.Rect()
	src := image.NewUniform(b.Color.Color())
	oval.Stroke(dst, clip, oval.RectOf(ring.Rect(), clip.Min), float32(b.Width), src, image.Point{})
}
