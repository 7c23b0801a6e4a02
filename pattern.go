package avatar

import (
	"image"
	"image/color"
	"math"
)

// Pattern represents an unbounded fill pattern.
// It implements image.Image with effectively infinite bounds so it can be
// used as the source of any fill.
type Pattern interface {
	image.Image

	// ColorAt returns the premultiplied color at the given pixel.
	ColorAt(x, y int) color.RGBA
}

// infinite covers every coordinate a fill can sample.
var infinite = image.Rect(math.MinInt32/2, math.MinInt32/2, math.MaxInt32/2, math.MaxInt32/2)

// ClampPattern samples an image and repeats its edge pixels outside its
// bounds, like a bitmap shader with clamp tiling on both axes.
type ClampPattern struct {
	img *image.RGBA
}

// NewClampPattern creates a clamped pattern over img. Pixel (0, 0) of the
// pattern is img.Bounds().Min. It returns nil when img has no pixels.
func NewClampPattern(img *image.RGBA) *ClampPattern {
	if img == nil || img.Bounds().Empty() {
		return nil
	}
	return &ClampPattern{img: img}
}

// Size returns the dimensions of the sampled image.
func (p *ClampPattern) Size() (width, height int) {
	b := p.img.Bounds()
	return b.Dx(), b.Dy()
}

// ColorAt implements Pattern.
func (p *ClampPattern) ColorAt(x, y int) color.RGBA {
	b := p.img.Bounds()
	x = clampInt(x+b.Min.X, b.Min.X, b.Max.X-1)
	y = clampInt(y+b.Min.Y, b.Min.Y, b.Max.Y-1)
	return p.img.RGBAAt(x, y)
}

// At implements the image.Image interface.
func (p *ClampPattern) At(x, y int) color.Color {
	return p.ColorAt(x, y)
}

// RGBA64At implements the image.RGBA64Image interface.
func (p *ClampPattern) RGBA64At(x, y int) color.RGBA64 {
	r, g, b, a := p.ColorAt(x, y).RGBA()
	return color.RGBA64{R: uint16(r), G: uint16(g), B: uint16(b), A: uint16(a)}
}

// Bounds implements the image.Image interface.
func (p *ClampPattern) Bounds() image.Rectangle {
	return infinite
}

// ColorModel implements the image.Image interface.
func (p *ClampPattern) ColorModel() color.Model {
	return color.RGBAModel
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
