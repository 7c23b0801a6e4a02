package avatar

import (
	"image"
	"image/draw"

	"github.com/disintegration/imaging"

	"github.com/gogpu/avatar/internal/oval"
)

// ShaderCompositor fills an anti-aliased oval with a clamped image pattern.
//
// The pattern is the center-cropped source sized to the bounds; it is
// rebuilt whenever the bounds size or the source changes so that it stays
// aligned with the circle.
type ShaderCompositor struct {
	filter  imaging.ResampleFilter
	key     cacheKey
	bounds  Bounds
	pattern *ClampPattern
}

// Strategy implements Compositor.
func (c *ShaderCompositor) Strategy() Strategy { return StrategyShader }

// Composite implements Compositor.
func (c *ShaderCompositor) Composite(b Bounds, src *Source) {
	if !usable(b, src) {
		c.Reset()
		return
	}
	c.bounds = b
	k := keyOf(b, src)
	if c.pattern != nil && k == c.key {
		return
	}

	c.pattern = NewClampPattern(CenterCrop(src.Image(), b.Width(), b.Height(), c.filter))
	c.key = k
	Logger().Debug("avatar: shader pattern rebuilt",
		"width", b.Width(), "height", b.Height(), "source", src.gen)
}

// Pattern returns the current fill pattern, or nil when nothing is prepared.
func (c *ShaderCompositor) Pattern() *ClampPattern { return c.pattern }

// Draw implements Compositor.
func (c *ShaderCompositor) Draw(dst draw.Image) {
	if c.pattern == nil {
		return
	}
	r := c.bounds.Rect()
	oval.Fill(dst, r, oval.RectOf(r, r.Min), c.pattern, image.Point{})
}

// Reset implements Compositor.
func (c *ShaderCompositor) Reset() {
	c.key = cacheKey{}
	c.bounds = Bounds{}
	c.pattern = nil
}
